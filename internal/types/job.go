// Package types provides type definitions for structured data used throughout the resume-tailor system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "github.com/go-playground/validator/v10"

// Requirement priority values. Must-haves use a stricter coverage threshold
// than nice-to-haves.
const (
	PriorityMustHave   = "must_have"
	PriorityNiceToHave = "nice_to_have"
)

// Requirement category values used for gap remediation hints.
const (
	CategoryTechnical     = "technical"
	CategorySoftSkill     = "soft_skill"
	CategoryExperience    = "experience"
	CategoryCertification = "certification"
	CategoryOther         = "other"
)

// Requirement represents a single requirement extracted from a job description.
// Requirements are immutable once extracted.
type Requirement struct {
	Text     string   `json:"text" validate:"required"`
	Category string   `json:"category,omitempty" validate:"omitempty,oneof=technical soft_skill experience certification other"`
	Priority string   `json:"priority" validate:"required,oneof=must_have nice_to_have"`
	Keywords []string `json:"keywords,omitempty"`
}

// ExtractedJob represents a structured job description with its requirements
// partitioned by priority.
type ExtractedJob struct {
	JobID      string        `json:"job_id" validate:"required"`
	Company    string        `json:"company,omitempty"`
	RoleTitle  string        `json:"role_title,omitempty"`
	MustHave   []Requirement `json:"must_have" validate:"dive"`
	NiceToHave []Requirement `json:"nice_to_have" validate:"dive"`
}

// AllRequirements returns every requirement, must-haves first.
func (j *ExtractedJob) AllRequirements() []Requirement {
	all := make([]Requirement, 0, len(j.MustHave)+len(j.NiceToHave))
	all = append(all, j.MustHave...)
	all = append(all, j.NiceToHave...)
	return all
}

// Validate validates the ExtractedJob using the validator.
func (j *ExtractedJob) Validate() error {
	validate := validator.New()
	return validate.Struct(j)
}
