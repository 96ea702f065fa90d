// Package types provides type definitions for structured data used throughout the resume-tailor system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// Bullet status values. Proposed bullets passed verification and can go on
// the resume as-is; suggested edits need user approval first.
const (
	StatusProposed      = "proposed"
	StatusSuggestedEdit = "suggested_edit"
)

// ProvenanceBullet is a generated resume bullet that keeps its full
// provenance chain: the requirement it addresses, the evidence it was
// grounded on, and the component-level verification outcome.
type ProvenanceBullet struct {
	ID   string `json:"id"`
	Text string `json:"text"`

	RequirementText  string    `json:"requirement_text"`
	EvidenceIDs      []string  `json:"evidence_ids"`
	EvidenceTexts    []string  `json:"evidence_texts"`
	SimilarityScores []float64 `json:"similarity_scores"`

	Action  string `json:"action"`
	Metric  string `json:"metric"`
	Outcome string `json:"outcome"`
	Tool    string `json:"tool"`

	Verification     *BulletVerificationResult `json:"verification"`
	IsVerified       bool                      `json:"is_verified"`
	VerificationRate float64                   `json:"verification_rate"`

	Status         string `json:"status"`
	Recommendation string `json:"recommendation"`

	GeneratedBy string    `json:"generated_by"`
	GeneratedAt time.Time `json:"generated_at"`
}

// GenerationMetadata carries stats about one generation run.
type GenerationMetadata struct {
	TotalGenerated        int   `json:"total_generated"`
	ProposedCount         int   `json:"proposed_count"`
	SuggestedEditCount    int   `json:"suggested_edit_count"`
	GenerationTimeMS      int64 `json:"generation_time_ms"`
	RequirementsProcessed int   `json:"requirements_processed"`
	RequirementsSkipped   int   `json:"requirements_skipped"`
}

// BulletGenerationResult partitions generated bullets by verification status.
type BulletGenerationResult struct {
	ProposedBullets []ProvenanceBullet `json:"proposed_bullets"`
	SuggestedEdits  []ProvenanceBullet `json:"suggested_edits"`
	Metadata        GenerationMetadata `json:"generation_metadata"`
}

// AllBullets returns every generated bullet regardless of status.
func (r *BulletGenerationResult) AllBullets() []ProvenanceBullet {
	all := make([]ProvenanceBullet, 0, len(r.ProposedBullets)+len(r.SuggestedEdits))
	all = append(all, r.ProposedBullets...)
	all = append(all, r.SuggestedEdits...)
	return all
}

// VerificationStats summarizes verification quality across a generation run.
type VerificationStats struct {
	TotalBullets            int     `json:"total_bullets"`
	ProposedCount           int     `json:"proposed_count"`
	SuggestedEditCount      int     `json:"suggested_edit_count"`
	AverageVerificationRate float64 `json:"average_verification_rate"`
	FullyVerifiedRate       float64 `json:"fully_verified_rate"`
}

// Stats computes verification statistics for the run.
func (r *BulletGenerationResult) Stats() VerificationStats {
	all := r.AllBullets()
	if len(all) == 0 {
		return VerificationStats{}
	}

	var rateSum float64
	fullyVerified := 0
	for _, b := range all {
		rateSum += b.VerificationRate
		if b.IsVerified {
			fullyVerified++
		}
	}

	return VerificationStats{
		TotalBullets:            len(all),
		ProposedCount:           len(r.ProposedBullets),
		SuggestedEditCount:      len(r.SuggestedEdits),
		AverageVerificationRate: rateSum / float64(len(all)),
		FullyVerifiedRate:       float64(fullyVerified) / float64(len(all)),
	}
}
