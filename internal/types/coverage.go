// Package types provides type definitions for structured data used throughout the resume-tailor system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "sort"

// Gap severity values for requirements without sufficient evidence.
const (
	GapSeverityHigh   = "high"
	GapSeverityMedium = "medium"
	GapSeverityLow    = "low"
)

// EvidenceMatch links one piece of profile evidence to a job requirement with
// a semantic similarity score. Matches are derived data, recomputed on every
// coverage analysis.
type EvidenceMatch struct {
	EvidenceID       string   `json:"evidence_id"`
	EvidenceText     string   `json:"evidence_text"`
	EvidenceSource   string   `json:"evidence_source"`
	EvidenceSourceID string   `json:"evidence_source_id"`
	SimilarityScore  float64  `json:"similarity_score"`
	KeywordsMatched  []string `json:"keywords_matched,omitempty"`
}

// RequirementCoverage is the coverage analysis for a single job requirement:
// the evidence that could address it, whether it counts as covered, and the
// gap analysis when it does not.
//
// Invariant: BestMatchScore equals the top MatchedEvidence score, or 0 when
// there are no matches. MatchedEvidence is sorted descending by score.
type RequirementCoverage struct {
	RequirementText     string   `json:"requirement_text"`
	RequirementPriority string   `json:"requirement_priority"`
	RequirementKeywords []string `json:"requirement_keywords,omitempty"`

	MatchedEvidence []EvidenceMatch `json:"matched_evidence"`
	BestMatchScore  float64         `json:"best_match_score"`

	IsCovered          bool    `json:"is_covered"`
	CoverageConfidence float64 `json:"coverage_confidence"`

	GapSeverity      string   `json:"gap_severity,omitempty"`
	SuggestedActions []string `json:"suggested_actions,omitempty"`
}

// TopEvidence returns the n strongest evidence matches.
func (rc *RequirementCoverage) TopEvidence(n int) []EvidenceMatch {
	matches := make([]EvidenceMatch, len(rc.MatchedEvidence))
	copy(matches, rc.MatchedEvidence)
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].SimilarityScore > matches[j].SimilarityScore
	})
	if n > len(matches) {
		n = len(matches)
	}
	return matches[:n]
}

// HasStrongEvidence reports whether at least one match exceeds the threshold.
func (rc *RequirementCoverage) HasStrongEvidence(threshold float64) bool {
	return rc.BestMatchScore >= threshold
}

// CoverageMap is the complete coverage analysis for one (job, profile) pair.
// It is the aggregate root consumed by bullet generation, gap analysis, and
// resume ordering.
type CoverageMap struct {
	JobID     string `json:"job_id"`
	ProfileID string `json:"profile_id"`

	RequirementCoverage []RequirementCoverage `json:"requirement_coverage"`

	CoveredRequirements []string `json:"covered_requirements"`
	GapRequirements     []string `json:"gap_requirements"`

	OverallCoverageScore    float64 `json:"overall_coverage_score"`
	MustHaveCoverageScore   float64 `json:"must_have_coverage_score"`
	NiceToHaveCoverageScore float64 `json:"nice_to_have_coverage_score"`

	TopMatchingEvidence []EvidenceMatch       `json:"top_matching_evidence"`
	CriticalGaps        []RequirementCoverage `json:"critical_gaps"`
}

// MustHaveCoverage returns coverage entries for must-have requirements only.
func (cm *CoverageMap) MustHaveCoverage() []RequirementCoverage {
	var out []RequirementCoverage
	for _, rc := range cm.RequirementCoverage {
		if rc.RequirementPriority == PriorityMustHave {
			out = append(out, rc)
		}
	}
	return out
}

// NiceToHaveCoverage returns coverage entries for nice-to-have requirements only.
func (cm *CoverageMap) NiceToHaveCoverage() []RequirementCoverage {
	var out []RequirementCoverage
	for _, rc := range cm.RequirementCoverage {
		if rc.RequirementPriority == PriorityNiceToHave {
			out = append(out, rc)
		}
	}
	return out
}

// IsStrongMatch reports whether the candidate likely qualifies, judged on
// must-have coverage alone.
func (cm *CoverageMap) IsStrongMatch(threshold float64) bool {
	return cm.MustHaveCoverageScore >= threshold
}

// PrioritizedRequirements returns requirements in generation order:
// covered must-haves (best evidence first), covered nice-to-haves (best
// evidence first), then uncovered must-haves for gap analysis.
func (cm *CoverageMap) PrioritizedRequirements() []RequirementCoverage {
	var coveredMust, coveredNice, uncoveredMust []RequirementCoverage
	for _, rc := range cm.RequirementCoverage {
		switch {
		case rc.RequirementPriority == PriorityMustHave && rc.IsCovered:
			coveredMust = append(coveredMust, rc)
		case rc.RequirementPriority == PriorityNiceToHave && rc.IsCovered:
			coveredNice = append(coveredNice, rc)
		case rc.RequirementPriority == PriorityMustHave:
			uncoveredMust = append(uncoveredMust, rc)
		}
	}

	sort.SliceStable(coveredMust, func(i, j int) bool {
		return coveredMust[i].BestMatchScore > coveredMust[j].BestMatchScore
	})
	sort.SliceStable(coveredNice, func(i, j int) bool {
		return coveredNice[i].BestMatchScore > coveredNice[j].BestMatchScore
	})

	out := make([]RequirementCoverage, 0, len(coveredMust)+len(coveredNice)+len(uncoveredMust))
	out = append(out, coveredMust...)
	out = append(out, coveredNice...)
	out = append(out, uncoveredMust...)
	return out
}

// CoverageForRequirement finds the coverage entry for a specific requirement
// text, or nil if not present.
func (cm *CoverageMap) CoverageForRequirement(requirementText string) *RequirementCoverage {
	for i := range cm.RequirementCoverage {
		if cm.RequirementCoverage[i].RequirementText == requirementText {
			return &cm.RequirementCoverage[i]
		}
	}
	return nil
}

// CoverageMapResult wraps a CoverageMap with execution metadata. Evidence
// carries the extracted spans with their embeddings attached, for callers
// that persist or reuse them; it is not part of the serialized shape.
type CoverageMapResult struct {
	CoverageMap        *CoverageMap `json:"coverage_map"`
	ExecutionTimeMS    int64        `json:"execution_time_ms"`
	EmbeddingModel     string       `json:"embedding_model"`
	TotalEvidenceItems int          `json:"total_evidence_items"`
	TotalRequirements  int          `json:"total_requirements"`

	Evidence []EvidenceSpan `json:"-"`
}
