package generation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/jonathan/resume-tailor/internal/verification"
)

func generationFixtures() (*types.CoverageMap, *types.Profile) {
	profile := &types.Profile{
		ID: "profile-1",
		Experiences: []types.Experience{
			{
				ID:          "exp-1",
				Bullets:     []string{"Led Python team of 8 for 6 years with Agile, improving delivery speed by 35%"},
				EvidenceIDs: []string{"ev-1"},
			},
		},
	}

	coverageMap := &types.CoverageMap{
		JobID:     "job-1",
		ProfileID: "profile-1",
		RequirementCoverage: []types.RequirementCoverage{
			{
				RequirementText:     "5+ years Python experience",
				RequirementPriority: types.PriorityMustHave,
				IsCovered:           true,
				BestMatchScore:      0.92,
				MatchedEvidence: []types.EvidenceMatch{
					{
						EvidenceID:      "ev-1",
						EvidenceText:    "Led Python team of 8 for 6 years with Agile, improving delivery speed by 35%",
						EvidenceSource:  types.SourceExperience,
						SimilarityScore: 0.92,
					},
				},
			},
		},
	}
	return coverageMap, profile
}

func newGenerator(client llm.Client) *Generator {
	return NewGenerator(client, verification.NewVerifier(nil, nil), nil)
}

func TestGenerateWithProvenance(t *testing.T) {
	client := &llm.MockClient{Responses: []string{
		"Led Python team of 8 for 6 years, resulting in 35% delivery speedup using Agile",
	}}
	g := newGenerator(client)
	coverageMap, profile := generationFixtures()

	result, err := g.GenerateWithProvenance(context.Background(), coverageMap, profile, Options{})
	require.NoError(t, err)

	require.Len(t, result.ProposedBullets, 1)
	assert.Empty(t, result.SuggestedEdits)

	b := result.ProposedBullets[0]
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, "5+ years Python experience", b.RequirementText)
	assert.Equal(t, []string{"ev-1"}, b.EvidenceIDs)
	assert.Equal(t, []float64{0.92}, b.SimilarityScores)
	assert.Equal(t, "Led", b.Action)
	assert.Equal(t, "35%", b.Metric)
	assert.True(t, b.IsVerified)
	assert.Equal(t, 1.0, b.VerificationRate)
	assert.Equal(t, types.StatusProposed, b.Status)
	assert.Equal(t, types.RecommendAccept, b.Recommendation)
	assert.Equal(t, "mock-advanced", b.GeneratedBy)
	assert.False(t, b.GeneratedAt.IsZero())
	require.NotNil(t, b.Verification)
	assert.True(t, b.Verification.IsFullyVerified)

	// Generation request used the creative tier with evidence in the prompt
	require.Len(t, client.Calls, 1)
	call := client.Calls[0]
	assert.Equal(t, llm.TierAdvanced, call.Tier)
	assert.Equal(t, int32(200), call.MaxOutputTokens)
	require.NotNil(t, call.Temperature)
	assert.Equal(t, float32(0.7), *call.Temperature)
	assert.Contains(t, call.Prompt, "5+ years Python experience")
	assert.Contains(t, call.Prompt, "- Led Python team of 8")

	md := result.Metadata
	assert.Equal(t, 1, md.TotalGenerated)
	assert.Equal(t, 1, md.ProposedCount)
	assert.Equal(t, 0, md.SuggestedEditCount)
	assert.Equal(t, 1, md.RequirementsProcessed)
	assert.Equal(t, 0, md.RequirementsSkipped)
}

func TestGenerateWithProvenance_UnverifiableBecomesSuggestedEdit(t *testing.T) {
	// The generated bullet claims a number and tool absent from evidence
	client := &llm.MockClient{Responses: []string{
		"Boosted revenue 80%, resulting in major wins using Salesforce",
	}}
	g := newGenerator(client)
	coverageMap, profile := generationFixtures()

	result, err := g.GenerateWithProvenance(context.Background(), coverageMap, profile, Options{})
	require.NoError(t, err)

	assert.Empty(t, result.ProposedBullets)
	require.Len(t, result.SuggestedEdits, 1)
	b := result.SuggestedEdits[0]
	assert.Equal(t, types.StatusSuggestedEdit, b.Status)
	assert.False(t, b.IsVerified)
	assert.Less(t, b.VerificationRate, 0.75)
}

func TestGenerateWithProvenance_RequireFullVerificationDrops(t *testing.T) {
	client := &llm.MockClient{Responses: []string{
		"Boosted revenue 80%, resulting in major wins using Salesforce",
	}}
	g := newGenerator(client)
	coverageMap, profile := generationFixtures()

	result, err := g.GenerateWithProvenance(context.Background(), coverageMap, profile,
		Options{RequireFullVerification: true})
	require.NoError(t, err)

	assert.Empty(t, result.ProposedBullets)
	assert.Empty(t, result.SuggestedEdits)
	assert.Equal(t, 0, result.Metadata.TotalGenerated)
	assert.Equal(t, 1, result.Metadata.RequirementsProcessed)
}

func TestGenerateWithProvenance_NoCoveredRequirements(t *testing.T) {
	g := newGenerator(&llm.MockClient{})
	_, profile := generationFixtures()

	coverageMap := &types.CoverageMap{
		JobID:     "job-1",
		ProfileID: "profile-1",
		RequirementCoverage: []types.RequirementCoverage{
			{RequirementText: "Kubernetes", RequirementPriority: types.PriorityMustHave, IsCovered: false},
		},
	}

	_, err := g.GenerateWithProvenance(context.Background(), coverageMap, profile, Options{})
	assert.ErrorIs(t, err, ErrNoCoveredRequirements)
}

func TestGenerateWithProvenance_MaxBulletsCap(t *testing.T) {
	coverageMap, profile := generationFixtures()
	rc := coverageMap.RequirementCoverage[0]

	// Three covered requirements, cap of two
	second, third := rc, rc
	second.RequirementText = "Python scripting"
	second.BestMatchScore = 0.80
	third.RequirementText = "Python tooling"
	third.BestMatchScore = 0.78
	coverageMap.RequirementCoverage = append(coverageMap.RequirementCoverage, second, third)

	client := &llm.MockClient{Responses: []string{
		"Led Python team of 8 for 6 years, resulting in 35% delivery speedup using Agile",
		"Led Python team of 8 for 6 years, resulting in 35% delivery speedup using Agile",
	}}
	g := newGenerator(client)

	result, err := g.GenerateWithProvenance(context.Background(), coverageMap, profile,
		Options{MaxBulletsPerRole: 2})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Metadata.RequirementsProcessed)
	assert.Equal(t, 1, result.Metadata.RequirementsSkipped)
	assert.Len(t, client.Calls, 2)

	// Best-scoring requirement generated first
	assert.Contains(t, client.Calls[0].Prompt, "5+ years Python experience")
	assert.Contains(t, client.Calls[1].Prompt, "Python scripting")
}

func TestGenerateWithProvenance_GenerationFailureContinues(t *testing.T) {
	coverageMap, profile := generationFixtures()
	rc := coverageMap.RequirementCoverage[0]
	second := rc
	second.RequirementText = "Python scripting"
	second.BestMatchScore = 0.80
	coverageMap.RequirementCoverage = append(coverageMap.RequirementCoverage, second)

	// First call succeeds, second exhausts the mock queue
	client := &llm.MockClient{Responses: []string{
		"Led Python team of 8 for 6 years, resulting in 35% delivery speedup using Agile",
	}}
	g := newGenerator(client)

	result, err := g.GenerateWithProvenance(context.Background(), coverageMap, profile, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Metadata.TotalGenerated)
	assert.Equal(t, 2, result.Metadata.RequirementsProcessed)
}
