// Package types provides type definitions for structured data used throughout the resume-tailor system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// AMOT component names. Every resume bullet is verified one component at a
// time so feedback can say exactly which parts are supported.
const (
	ComponentAction  = "action"
	ComponentMetric  = "metric"
	ComponentOutcome = "outcome"
	ComponentTool    = "tool"
)

// Verification methods, ordered roughly by strength of evidence.
const (
	MethodExactMatch       = "exact_match"
	MethodSemanticMatch    = "semantic_match"
	MethodKeywordMatch     = "keyword_match"
	MethodPlaceholderMatch = "placeholder_match"
	MethodNoMatch          = "no_match"
)

// Bullet recommendations produced by the verification aggregator.
const (
	RecommendAccept        = "accept"
	RecommendAcceptNote    = "accept_with_note"
	RecommendFlagForReview = "flag_for_review"
	RecommendReject        = "reject"
)

// AMOTComponents holds the Action, Metric, Outcome, and Tool parts parsed
// from one bullet. Components that could not be located carry placeholder
// strings rather than being empty.
type AMOTComponents struct {
	Action   string `json:"action"`
	Metric   string `json:"metric"`
	Outcome  string `json:"outcome"`
	Tool     string `json:"tool"`
	FullText string `json:"full_text"`
}

// ComponentVerification is the verification result for a single AMOT
// component.
type ComponentVerification struct {
	ComponentName      string  `json:"component_name"`
	ComponentText      string  `json:"component_text"`
	IsVerified         bool    `json:"is_verified"`
	SupportingEvidence string  `json:"supporting_evidence,omitempty"`
	VerificationMethod string  `json:"verification_method"`
	Confidence         float64 `json:"confidence"`
	Explanation        string  `json:"explanation,omitempty"`
}

// BulletVerificationResult aggregates the four component verifications of one
// bullet into an overall rate and a recommendation.
type BulletVerificationResult struct {
	BulletText             string                  `json:"bullet_text"`
	AMOTComponents         AMOTComponents          `json:"amot_components"`
	ComponentVerifications []ComponentVerification `json:"component_verifications"`

	OverallVerificationRate float64 `json:"overall_verification_rate"`
	IsFullyVerified         bool    `json:"is_fully_verified"`
	IsAcceptable            bool    `json:"is_acceptable"`

	Recommendation string   `json:"recommendation"`
	Explanation    string   `json:"explanation"`
	EvidenceIDs    []string `json:"evidence_ids,omitempty"`
}

// UnverifiedComponents returns the names of components that failed
// verification, in component order.
func (r *BulletVerificationResult) UnverifiedComponents() []string {
	var names []string
	for _, cv := range r.ComponentVerifications {
		if !cv.IsVerified {
			names = append(names, cv.ComponentName)
		}
	}
	return names
}
