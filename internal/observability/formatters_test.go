package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-tailor/internal/types"
)

func TestPrintCoverageMap(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCoverageMap(&types.CoverageMapResult{
		CoverageMap: &types.CoverageMap{
			OverallCoverageScore:  0.85,
			MustHaveCoverageScore: 1.0,
			CoveredRequirements:   []string{"Python"},
			CriticalGaps: []types.RequirementCoverage{
				{RequirementText: "Kubernetes"},
			},
		},
		TotalEvidenceItems: 7,
		TotalRequirements:  3,
	})

	out := buf.String()
	assert.Contains(t, out, "COVERAGE MAP")
	assert.Contains(t, out, "85%")
	assert.Contains(t, out, "Python")
	assert.Contains(t, out, "Kubernetes")
}

func TestPrintCoverageMap_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintCoverageMap(nil)
	assert.Empty(t, buf.String())
}

func TestPrintVerificationResult(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintVerificationResult(&types.BulletVerificationResult{
		BulletText: "Led Python team of 8",
		ComponentVerifications: []types.ComponentVerification{
			{ComponentName: types.ComponentAction, ComponentText: "Led", IsVerified: true},
			{ComponentName: types.ComponentMetric, ComponentText: "[metric not found]", IsVerified: false},
		},
		OverallVerificationRate: 0.5,
		Recommendation:          types.RecommendFlagForReview,
	})

	out := buf.String()
	assert.Contains(t, out, "BULLET VERIFICATION")
	assert.Contains(t, out, "flag_for_review")
	assert.Contains(t, out, "action")
}

func TestPrintGeneratedBullets(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintGeneratedBullets(&types.BulletGenerationResult{
		ProposedBullets: []types.ProvenanceBullet{
			{Text: "Led Python team of 8", VerificationRate: 1.0, Status: types.StatusProposed},
		},
		SuggestedEdits: []types.ProvenanceBullet{
			{Text: "Boosted revenue 80%", VerificationRate: 0.25, Status: types.StatusSuggestedEdit},
		},
		Metadata: types.GenerationMetadata{TotalGenerated: 2},
	})

	out := buf.String()
	assert.Contains(t, out, "GENERATED BULLETS")
	assert.Contains(t, out, "Led Python team of 8")
	assert.Contains(t, out, "Suggested edits")
}

func TestPrintGeneratedBullets_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintGeneratedBullets(&types.BulletGenerationResult{})
	assert.Empty(t, buf.String())
}
