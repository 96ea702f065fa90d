// Package types provides type definitions for structured data used throughout the resume-tailor system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "github.com/go-playground/validator/v10"

// Evidence source types. Each evidence span traces back to one of these
// profile sections.
const (
	SourceExperience    = "experience"
	SourceEducation     = "education"
	SourceProject       = "project"
	SourceCertification = "certification"
)

// Profile represents a candidate profile: the canonical store of everything
// generated bullets may be grounded on.
type Profile struct {
	ID             string          `json:"id" validate:"required"`
	Name           string          `json:"name,omitempty"`
	Experiences    []Experience    `json:"experiences,omitempty"`
	Projects       []Project       `json:"projects,omitempty"`
	Education      []Education     `json:"education,omitempty"`
	Certifications []Certification `json:"certifications,omitempty"`
}

// Experience represents one role with its achievement bullets.
// EvidenceIDs, when present, carry stable per-bullet identifiers assigned at
// ingestion time; missing entries fall back to positional IDs.
type Experience struct {
	ID          string   `json:"id" validate:"required"`
	Company     string   `json:"company,omitempty"`
	Role        string   `json:"role,omitempty"`
	Bullets     []string `json:"bullets,omitempty"`
	EvidenceIDs []string `json:"evidence_ids,omitempty"`
}

// Project represents a side or work project with its achievements.
type Project struct {
	ID           string   `json:"id" validate:"required"`
	Name         string   `json:"name,omitempty"`
	Description  string   `json:"description,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
	EvidenceIDs  []string `json:"evidence_ids,omitempty"`
}

// Education represents a degree plus relevant coursework.
type Education struct {
	ID          string   `json:"id" validate:"required"`
	Degree      string   `json:"degree,omitempty"`
	Institution string   `json:"institution,omitempty"`
	Coursework  []string `json:"coursework,omitempty"`
}

// Certification represents a professional credential.
type Certification struct {
	ID     string `json:"id" validate:"required"`
	Name   string `json:"name,omitempty"`
	Issuer string `json:"issuer,omitempty"`
}

// EvidenceSpan is an atomic, attributable piece of candidate history with a
// stable identifier. Spans are extracted from a Profile at the start of an
// analysis run and never mutated afterwards.
type EvidenceSpan struct {
	ID         string `json:"id"`
	SourceType string `json:"source_type"`
	SourceID   string `json:"source_id"`
	Text       string `json:"text"`
	Category   string `json:"category,omitempty"`

	// Embedding is attached lazily by the coverage mapper and is not part of
	// the serialized shape.
	Embedding []float64 `json:"-"`
}

// Validate validates the Profile using the validator.
func (p *Profile) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}
