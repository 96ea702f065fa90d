package coverage

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/resume-tailor/internal/types"
)

// stopWords are excluded from keyword overlap so matches are explained by
// meaningful terms only.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {},
	"with": {}, "by": {},
}

// AnalyzeRequirements determines per-requirement coverage from the
// similarity matrix. For each requirement it collects evidence above the
// weak-match floor, ranks it, decides coverage against the priority's
// threshold, and fills in gap severity plus suggested actions for anything
// uncovered.
func AnalyzeRequirements(
	requirements []types.Requirement,
	evidence []types.EvidenceSpan,
	matrix [][]float64,
	th Thresholds,
) []types.RequirementCoverage {
	out := make([]types.RequirementCoverage, 0, len(requirements))

	for reqIdx, req := range requirements {
		scores := matrix[reqIdx]

		var matched []types.EvidenceMatch
		for evIdx, score := range scores {
			if score < th.WeakMatch {
				continue
			}
			ev := evidence[evIdx]
			matched = append(matched, types.EvidenceMatch{
				EvidenceID:       ev.ID,
				EvidenceText:     ev.Text,
				EvidenceSource:   ev.SourceType,
				EvidenceSourceID: ev.SourceID,
				SimilarityScore:  score,
				KeywordsMatched:  commonKeywords(req.Text, ev.Text),
			})
		}

		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].SimilarityScore > matched[j].SimilarityScore
		})

		bestScore := 0.0
		if len(matched) > 0 {
			bestScore = matched[0].SimilarityScore
		}

		threshold := th.ForPriority(req.Priority)
		isCovered := bestScore >= threshold

		// Confidence is high when the best match sits well away from the
		// threshold, low when it lands inside the ambiguity window.
		confidence := (bestScore - threshold)
		if confidence < 0 {
			confidence = -confidence
		}
		confidence /= th.AmbiguityWindow
		if confidence > 1 {
			confidence = 1
		}

		rc := types.RequirementCoverage{
			RequirementText:     req.Text,
			RequirementPriority: req.Priority,
			RequirementKeywords: req.Keywords,
			MatchedEvidence:     matched,
			BestMatchScore:      bestScore,
			IsCovered:           isCovered,
			CoverageConfidence:  confidence,
		}

		if !isCovered {
			if req.Priority == types.PriorityMustHave {
				rc.GapSeverity = types.GapSeverityHigh
				rc.SuggestedActions = append(rc.SuggestedActions,
					fmt.Sprintf("CRITICAL: Add evidence of '%s' to your profile", req.Text))
			} else {
				rc.GapSeverity = types.GapSeverityLow
				if bestScore < th.WeakMatch {
					rc.GapSeverity = types.GapSeverityMedium
				}
				rc.SuggestedActions = append(rc.SuggestedActions,
					fmt.Sprintf("Consider adding examples of '%s' if applicable", req.Text))
			}

			switch req.Category {
			case types.CategoryTechnical:
				rc.SuggestedActions = append(rc.SuggestedActions,
					"Add projects, certifications, or work examples demonstrating this skill")
			case types.CategoryExperience:
				rc.SuggestedActions = append(rc.SuggestedActions,
					"Highlight any relevant experience, even if from different roles")
			}
		}

		out = append(out, rc)
	}

	return out
}

// commonKeywords returns the meaningful words shared by both texts, sorted.
// This explains WHY a requirement and evidence matched.
func commonKeywords(a, b string) []string {
	wordsA := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(a)) {
		wordsA[w] = struct{}{}
	}

	seen := make(map[string]struct{})
	var common []string
	for _, w := range strings.Fields(strings.ToLower(b)) {
		if _, ok := wordsA[w]; !ok {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		common = append(common, w)
	}

	sort.Strings(common)
	return common
}
