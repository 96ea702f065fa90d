package verification

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/types"
)

func evidenceFixture() []types.EvidenceSpan {
	return []types.EvidenceSpan{
		{
			ID:         "ev-1",
			SourceType: types.SourceExperience,
			SourceID:   "exp-1",
			Text:       "Led Python team of 8 for 6 years with Agile, improving delivery speed by 35%",
		},
		{
			ID:         "ev-2",
			SourceType: types.SourceExperience,
			SourceID:   "exp-1",
			Text:       "Organized quarterly planning sessions",
		},
	}
}

func findComponent(t *testing.T, result *types.BulletVerificationResult, name string) types.ComponentVerification {
	t.Helper()
	for _, cv := range result.ComponentVerifications {
		if cv.ComponentName == name {
			return cv
		}
	}
	t.Fatalf("component %q not found", name)
	return types.ComponentVerification{}
}

func TestVerifyBullet_FullyVerified(t *testing.T) {
	v := NewVerifier(nil, nil)

	result, err := v.VerifyBullet(context.Background(),
		"Led Python team of 8 for 6 years, resulting in 35% delivery speedup using Agile",
		evidenceFixture(), nil)
	require.NoError(t, err)

	assert.True(t, result.IsFullyVerified)
	assert.True(t, result.IsAcceptable)
	assert.Equal(t, 1.0, result.OverallVerificationRate)
	assert.Equal(t, types.RecommendAccept, result.Recommendation)
	assert.Equal(t, []string{"ev-1"}, result.EvidenceIDs)

	action := findComponent(t, result, types.ComponentAction)
	assert.Equal(t, types.MethodExactMatch, action.VerificationMethod)
	assert.Equal(t, 1.0, action.Confidence)

	metric := findComponent(t, result, types.ComponentMetric)
	assert.Equal(t, types.MethodExactMatch, metric.VerificationMethod)

	outcome := findComponent(t, result, types.ComponentOutcome)
	assert.Equal(t, types.MethodKeywordMatch, outcome.VerificationMethod)
	assert.Equal(t, 0.9, outcome.Confidence)

	tool := findComponent(t, result, types.ComponentTool)
	assert.Equal(t, types.MethodExactMatch, tool.VerificationMethod)
}

func TestVerifyBullet_EmptyText(t *testing.T) {
	v := NewVerifier(nil, nil)
	_, err := v.VerifyBullet(context.Background(), "   ", evidenceFixture(), nil)
	assert.ErrorIs(t, err, ErrEmptyBullet)
}

func TestVerifyBullet_MetricMismatchRejected(t *testing.T) {
	v := NewVerifier(nil, nil)

	// 40% is not in evidence; 35% is. Metrics must match exactly.
	result, err := v.VerifyBullet(context.Background(),
		"Led Python team of 8 for 6 years, resulting in 40% delivery speedup using Agile",
		evidenceFixture(), nil)
	require.NoError(t, err)

	metric := findComponent(t, result, types.ComponentMetric)
	assert.False(t, metric.IsVerified)
	assert.Equal(t, types.MethodNoMatch, metric.VerificationMethod)
	assert.False(t, result.IsFullyVerified)
}

func TestVerifyBullet_ClaimedEvidenceFilter(t *testing.T) {
	v := NewVerifier(nil, nil)

	// Restricting to ev-2 removes the supporting evidence
	result, err := v.VerifyBullet(context.Background(),
		"Led Python team of 8, resulting in 35% delivery speedup using Agile",
		evidenceFixture(), []string{"ev-2"})
	require.NoError(t, err)
	assert.False(t, findComponent(t, result, types.ComponentMetric).IsVerified)
	assert.False(t, findComponent(t, result, types.ComponentTool).IsVerified)
}

func TestVerifyBullet_UnknownClaimedIDsFallBack(t *testing.T) {
	v := NewVerifier(nil, nil)

	// Unknown claimed IDs fall back to all evidence
	result, err := v.VerifyBullet(context.Background(),
		"Led Python team of 8, resulting in 35% delivery speedup using Agile",
		evidenceFixture(), []string{"missing-id"})
	require.NoError(t, err)
	assert.True(t, findComponent(t, result, types.ComponentMetric).IsVerified)
}

func TestVerifyAction_SemanticFallback(t *testing.T) {
	client := &llm.MockClient{Responses: []string{"NO", "YES"}}
	v := NewVerifier(client, nil)

	cv := v.verifyAction(context.Background(), "Spearheaded", evidenceFixture())
	assert.True(t, cv.IsVerified)
	assert.Equal(t, types.MethodSemanticMatch, cv.VerificationMethod)
	assert.Equal(t, 0.85, cv.Confidence)
	assert.Equal(t, "ev-2", cv.SupportingEvidence)

	// Prompt carried the claim and evidence
	require.Len(t, client.Calls, 2)
	assert.Contains(t, client.Calls[0].Prompt, "Action: Spearheaded")
	assert.Equal(t, int32(10), client.Calls[0].MaxOutputTokens)
	require.NotNil(t, client.Calls[0].Temperature)
	assert.Equal(t, float32(0), *client.Calls[0].Temperature)
}

func TestVerifyAction_NoClientNoSemantic(t *testing.T) {
	v := NewVerifier(nil, nil)
	cv := v.verifyAction(context.Background(), "Spearheaded", evidenceFixture())
	assert.False(t, cv.IsVerified)
	assert.Equal(t, types.MethodNoMatch, cv.VerificationMethod)
}

func TestVerifyAction_ClientErrorDegradesToUnverified(t *testing.T) {
	client := &llm.MockClient{Err: assert.AnError}
	v := NewVerifier(client, nil)

	cv := v.verifyAction(context.Background(), "Spearheaded", evidenceFixture())
	assert.False(t, cv.IsVerified)
}

func TestVerifyMetric_FlexibleNumberMatch(t *testing.T) {
	v := NewVerifier(nil, nil)
	evidence := []types.EvidenceSpan{{ID: "ev-1", Text: "Cut costs by 35.0 percent year over year"}}

	cv := v.verifyMetric("35%", evidence)
	assert.True(t, cv.IsVerified)
	assert.Equal(t, types.MethodExactMatch, cv.VerificationMethod)
}

func TestVerifyMetric_PlaceholderMatch(t *testing.T) {
	v := NewVerifier(nil, nil)
	evidence := []types.EvidenceSpan{{ID: "ev-1", Text: "Improved conversion by 12% in Q3"}}

	cv := v.verifyMetric("[X%]", evidence)
	assert.True(t, cv.IsVerified)
	assert.Equal(t, types.MethodPlaceholderMatch, cv.VerificationMethod)
	assert.Equal(t, 0.7, cv.Confidence)
}

func TestVerifyMetric_PlaceholderNoNumericEvidence(t *testing.T) {
	v := NewVerifier(nil, nil)
	evidence := []types.EvidenceSpan{{ID: "ev-1", Text: "Improved conversion substantially"}}

	cv := v.verifyMetric("[X%]", evidence)
	assert.False(t, cv.IsVerified)
	assert.Equal(t, types.MethodNoMatch, cv.VerificationMethod)
}

func TestVerifyOutcome_SemanticFallback(t *testing.T) {
	client := &llm.MockClient{Responses: []string{"YES"}}
	v := NewVerifier(client, nil)
	evidence := []types.EvidenceSpan{{ID: "ev-1", Text: "Grew quarterly sales substantially"}}

	cv := v.verifyOutcome(context.Background(), "driving revenue growth", evidence)
	assert.True(t, cv.IsVerified)
	assert.Equal(t, types.MethodSemanticMatch, cv.VerificationMethod)
}

func TestVerifyTool_StripsPreposition(t *testing.T) {
	v := NewVerifier(nil, nil)
	evidence := []types.EvidenceSpan{{ID: "ev-1", Text: "Managed pipeline in Salesforce daily"}}

	cv := v.verifyTool("via Salesforce", evidence)
	assert.True(t, cv.IsVerified)
	assert.Equal(t, "via Salesforce", cv.ComponentText)
	assert.Equal(t, "ev-1", cv.SupportingEvidence)
}

func TestVerifyTool_NoSemanticFallback(t *testing.T) {
	// Tools require explicit mention even when a client is available
	client := &llm.MockClient{Responses: []string{"YES"}}
	v := NewVerifier(client, nil)
	evidence := []types.EvidenceSpan{{ID: "ev-1", Text: "Managed customer pipeline daily"}}

	cv := v.verifyTool("via Salesforce", evidence)
	assert.False(t, cv.IsVerified)
	assert.Empty(t, client.Calls)
}
