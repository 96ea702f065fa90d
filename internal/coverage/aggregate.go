package coverage

import (
	"sort"

	"github.com/jonathan/resume-tailor/internal/types"
)

// topEvidenceLimit caps the summary evidence list on the coverage map.
const topEvidenceLimit = 10

// BuildCoverageMap aggregates per-requirement coverage into job-level
// metrics: priority coverage scores, the overall weighted score, the top
// matching evidence for bullet generation, and the critical gap list.
//
// The overall score weights must-haves at 70% and nice-to-haves at 30%; when
// only one priority class is present its score stands alone.
func BuildCoverageMap(
	jobID, profileID string,
	coverageList []types.RequirementCoverage,
	evidence []types.EvidenceSpan,
	matrix [][]float64,
	th Thresholds,
) *types.CoverageMap {
	var mustHave, niceToHave []types.RequirementCoverage
	for _, rc := range coverageList {
		if rc.RequirementPriority == types.PriorityMustHave {
			mustHave = append(mustHave, rc)
		} else {
			niceToHave = append(niceToHave, rc)
		}
	}

	mustScore := coveredFraction(mustHave)
	niceScore := coveredFraction(niceToHave)

	var overall float64
	switch {
	case len(mustHave) > 0 && len(niceToHave) > 0:
		overall = mustScore*0.7 + niceScore*0.3
	case len(mustHave) > 0:
		overall = mustScore
	case len(niceToHave) > 0:
		overall = niceScore
	}

	var covered, gaps []string
	for _, rc := range coverageList {
		if rc.IsCovered {
			covered = append(covered, rc.RequirementText)
		} else {
			gaps = append(gaps, rc.RequirementText)
		}
	}

	var criticalGaps []types.RequirementCoverage
	for _, rc := range mustHave {
		if !rc.IsCovered {
			criticalGaps = append(criticalGaps, rc)
		}
	}

	return &types.CoverageMap{
		JobID:                   jobID,
		ProfileID:               profileID,
		RequirementCoverage:     coverageList,
		CoveredRequirements:     covered,
		GapRequirements:         gaps,
		OverallCoverageScore:    overall,
		MustHaveCoverageScore:   mustScore,
		NiceToHaveCoverageScore: niceScore,
		TopMatchingEvidence:     topMatchingEvidence(evidence, matrix, th),
		CriticalGaps:            criticalGaps,
	}
}

func coveredFraction(list []types.RequirementCoverage) float64 {
	if len(list) == 0 {
		return 0
	}
	covered := 0
	for _, rc := range list {
		if rc.IsCovered {
			covered++
		}
	}
	return float64(covered) / float64(len(list))
}

// topMatchingEvidence ranks evidence by its best similarity against any
// requirement and returns up to ten entries above the weak-match floor, each
// scored by that column maximum.
func topMatchingEvidence(
	evidence []types.EvidenceSpan,
	matrix [][]float64,
	th Thresholds,
) []types.EvidenceMatch {
	if len(matrix) == 0 {
		return nil
	}

	type ranked struct {
		idx   int
		score float64
	}
	cols := make([]ranked, len(evidence))
	for j := range evidence {
		best := 0.0
		for i := range matrix {
			if matrix[i][j] > best {
				best = matrix[i][j]
			}
		}
		cols[j] = ranked{idx: j, score: best}
	}

	sort.SliceStable(cols, func(i, j int) bool {
		return cols[i].score > cols[j].score
	})

	var top []types.EvidenceMatch
	for _, c := range cols {
		if len(top) >= topEvidenceLimit {
			break
		}
		if c.score < th.WeakMatch {
			continue
		}
		ev := evidence[c.idx]
		top = append(top, types.EvidenceMatch{
			EvidenceID:       ev.ID,
			EvidenceText:     ev.Text,
			EvidenceSource:   ev.SourceType,
			EvidenceSourceID: ev.SourceID,
			SimilarityScore:  c.score,
		})
	}
	return top
}
