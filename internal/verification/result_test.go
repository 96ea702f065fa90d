package verification

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-tailor/internal/types"
)

func verifications(verified ...bool) []types.ComponentVerification {
	names := []string{types.ComponentAction, types.ComponentMetric, types.ComponentOutcome, types.ComponentTool}
	out := make([]types.ComponentVerification, len(verified))
	for i, ok := range verified {
		out[i] = types.ComponentVerification{
			ComponentName:      names[i],
			IsVerified:         ok,
			SupportingEvidence: "ev-" + names[i],
		}
		if !ok {
			out[i].SupportingEvidence = ""
		}
	}
	return out
}

func TestBuildResult_Recommendations(t *testing.T) {
	tests := []struct {
		name           string
		verified       []bool
		wantRate       float64
		wantRec        string
		wantAcceptable bool
	}{
		{"all verified", []bool{true, true, true, true}, 1.0, types.RecommendAccept, true},
		{"three of four", []bool{true, true, true, false}, 0.75, types.RecommendAcceptNote, true},
		{"two of four", []bool{true, true, false, false}, 0.5, types.RecommendFlagForReview, false},
		{"one of four", []bool{true, false, false, false}, 0.25, types.RecommendReject, false},
		{"none", []bool{false, false, false, false}, 0.0, types.RecommendReject, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := BuildResult("bullet", types.AMOTComponents{}, verifications(tt.verified...))
			assert.InDelta(t, tt.wantRate, result.OverallVerificationRate, 1e-9)
			assert.Equal(t, tt.wantRec, result.Recommendation)
			assert.Equal(t, tt.wantAcceptable, result.IsAcceptable)
			assert.NotEmpty(t, result.Explanation)
		})
	}
}

func TestBuildResult_FullyVerifiedOnlyAtFour(t *testing.T) {
	assert.True(t, BuildResult("b", types.AMOTComponents{}, verifications(true, true, true, true)).IsFullyVerified)
	assert.False(t, BuildResult("b", types.AMOTComponents{}, verifications(true, true, true, false)).IsFullyVerified)
}

func TestBuildResult_ExplanationNamesUnverified(t *testing.T) {
	result := BuildResult("b", types.AMOTComponents{}, verifications(true, true, true, false))
	assert.Contains(t, result.Explanation, types.ComponentTool)
}

func TestBuildResult_EvidenceIDsDeduped(t *testing.T) {
	cvs := []types.ComponentVerification{
		{ComponentName: types.ComponentAction, IsVerified: true, SupportingEvidence: "ev-1"},
		{ComponentName: types.ComponentMetric, IsVerified: true, SupportingEvidence: "ev-1"},
		{ComponentName: types.ComponentOutcome, IsVerified: true, SupportingEvidence: "ev-2"},
		{ComponentName: types.ComponentTool, IsVerified: false, SupportingEvidence: ""},
	}
	result := BuildResult("b", types.AMOTComponents{}, cvs)
	assert.Equal(t, []string{"ev-1", "ev-2"}, result.EvidenceIDs)
}

func TestBuildResult_EmptyVerifications(t *testing.T) {
	result := BuildResult("b", types.AMOTComponents{}, nil)
	assert.Equal(t, 0.0, result.OverallVerificationRate)
	assert.Equal(t, types.RecommendReject, result.Recommendation)
}
