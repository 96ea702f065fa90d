package verification

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-tailor/internal/types"
)

// BuildResult aggregates component verifications into the overall assessment
// for one bullet.
//
// Recommendation thresholds:
//   - 4/4 verified: accept
//   - >=75% verified: accept_with_note
//   - >=50% verified: flag_for_review
//   - below 50%: reject (move to suggested edits)
func BuildResult(
	bulletText string,
	components types.AMOTComponents,
	verifications []types.ComponentVerification,
) *types.BulletVerificationResult {
	verified := 0
	for _, cv := range verifications {
		if cv.IsVerified {
			verified++
		}
	}

	rate := 0.0
	if len(verifications) > 0 {
		rate = float64(verified) / float64(len(verifications))
	}

	result := &types.BulletVerificationResult{
		BulletText:              bulletText,
		AMOTComponents:          components,
		ComponentVerifications:  verifications,
		OverallVerificationRate: rate,
		IsFullyVerified:         verified == 4,
		IsAcceptable:            rate >= 0.75,
	}

	switch {
	case result.IsFullyVerified:
		result.Recommendation = types.RecommendAccept
		result.Explanation = "All AMOT components verified against evidence"
	case result.IsAcceptable:
		result.Recommendation = types.RecommendAcceptNote
		result.Explanation = fmt.Sprintf("Mostly verified (%d/4). Unverified: %s",
			verified, strings.Join(result.UnverifiedComponents(), ", "))
	case rate >= 0.5:
		result.Recommendation = types.RecommendFlagForReview
		result.Explanation = fmt.Sprintf("Partially verified (%d/4). User should review.", verified)
	default:
		result.Recommendation = types.RecommendReject
		result.Explanation = fmt.Sprintf("Insufficiently verified (%d/4). Move to suggested edits.", verified)
	}

	seen := make(map[string]struct{})
	for _, cv := range verifications {
		if !cv.IsVerified || cv.SupportingEvidence == "" {
			continue
		}
		if _, dup := seen[cv.SupportingEvidence]; dup {
			continue
		}
		seen[cv.SupportingEvidence] = struct{}{}
		result.EvidenceIDs = append(result.EvidenceIDs, cv.SupportingEvidence)
	}

	return result
}
