// Package generation produces resume bullets grounded in profile evidence.
// Every bullet keeps its provenance chain: the requirement it addresses, the
// evidence it was generated from, and its verification outcome. Bullets that
// fail verification become suggested edits instead of silently shipping.
package generation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/resume-tailor/internal/amot"
	"github.com/jonathan/resume-tailor/internal/coverage"
	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/logger"
	"github.com/jonathan/resume-tailor/internal/prompts"
	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/jonathan/resume-tailor/internal/verification"
)

// evidencePerBullet is how many top evidence matches feed each generation
// prompt.
const evidencePerBullet = 3

// Options control one generation run.
type Options struct {
	// MaxBulletsPerRole caps how many bullets are generated. Zero or
	// negative uses the default of 5.
	MaxBulletsPerRole int
	// RequireFullVerification drops any bullet that is not 4/4 verified
	// instead of routing it to suggested edits.
	RequireFullVerification bool
}

func (o Options) maxBullets() int {
	if o.MaxBulletsPerRole <= 0 {
		return 5
	}
	return o.MaxBulletsPerRole
}

// Generator generates provenance-backed bullets from a coverage map.
type Generator struct {
	client   llm.Client
	verifier *verification.Verifier
	log      *zap.Logger
}

// NewGenerator creates a bullet generator. A nil logger disables logging.
func NewGenerator(client llm.Client, verifier *verification.Verifier, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{client: client, verifier: verifier, log: log}
}

// GenerateWithProvenance generates bullets for the covered requirements in
// priority order: covered must-haves first (best evidence first), then
// covered nice-to-haves. Each bullet is verified against the full evidence
// set before being categorized as proposed or suggested edit.
func (g *Generator) GenerateWithProvenance(
	ctx context.Context,
	coverageMap *types.CoverageMap,
	profile *types.Profile,
	opts Options,
) (*types.BulletGenerationResult, error) {
	start := time.Now()

	g.log.Info("starting bullet generation",
		zap.String("job_id", coverageMap.JobID),
		zap.String("profile_id", coverageMap.ProfileID),
		zap.Int("max_bullets", opts.maxBullets()))

	var covered []types.RequirementCoverage
	for _, rc := range coverageMap.PrioritizedRequirements() {
		if rc.IsCovered {
			covered = append(covered, rc)
		}
	}
	if len(covered) == 0 {
		return nil, ErrNoCoveredRequirements
	}

	toUse := covered
	if len(toUse) > opts.maxBullets() {
		toUse = toUse[:opts.maxBullets()]
	}

	allEvidence := coverage.ExtractEvidence(profile)

	var generated []types.ProvenanceBullet
	for _, rc := range toUse {
		bullet, err := g.generateForRequirement(ctx, rc, allEvidence, opts.RequireFullVerification)
		if err != nil {
			g.log.Error("failed to generate bullet",
				zap.String("requirement", rc.RequirementText),
				zap.Error(err))
			continue
		}
		if bullet == nil {
			continue
		}
		generated = append(generated, *bullet)
		g.log.Info("generated bullet",
			zap.Bool("verified", bullet.IsVerified),
			zap.Float64("rate", bullet.VerificationRate),
			zap.String("requirement", logger.Truncate(rc.RequirementText, 50)))
	}

	result := &types.BulletGenerationResult{}
	for _, b := range generated {
		if b.Status == types.StatusProposed {
			result.ProposedBullets = append(result.ProposedBullets, b)
		} else {
			result.SuggestedEdits = append(result.SuggestedEdits, b)
		}
	}

	result.Metadata = types.GenerationMetadata{
		TotalGenerated:        len(generated),
		ProposedCount:         len(result.ProposedBullets),
		SuggestedEditCount:    len(result.SuggestedEdits),
		GenerationTimeMS:      time.Since(start).Milliseconds(),
		RequirementsProcessed: len(toUse),
		RequirementsSkipped:   len(covered) - len(toUse),
	}

	g.log.Info("bullet generation complete",
		zap.Int("proposed", result.Metadata.ProposedCount),
		zap.Int("suggested_edits", result.Metadata.SuggestedEditCount),
		zap.Int64("time_ms", result.Metadata.GenerationTimeMS))

	return result, nil
}

// generateForRequirement generates, parses, and verifies one bullet. A nil
// bullet with nil error means the requirement was skipped.
func (g *Generator) generateForRequirement(
	ctx context.Context,
	rc types.RequirementCoverage,
	allEvidence []types.EvidenceSpan,
	requireFullVerification bool,
) (*types.ProvenanceBullet, error) {
	topEvidence := rc.TopEvidence(evidencePerBullet)
	if len(topEvidence) == 0 {
		g.log.Warn("no evidence matches for requirement",
			zap.String("requirement", rc.RequirementText))
		return nil, nil
	}

	evidenceTexts := make([]string, len(topEvidence))
	evidenceIDs := make([]string, len(topEvidence))
	scores := make([]float64, len(topEvidence))
	for i, m := range topEvidence {
		evidenceTexts[i] = m.EvidenceText
		evidenceIDs[i] = m.EvidenceID
		scores[i] = m.SimilarityScore
	}

	bulletText, modelUsed, err := g.callGenerationAPI(ctx, rc.RequirementText, evidenceTexts)
	if err != nil {
		return nil, fmt.Errorf("generation API failed: %w", err)
	}

	components := amot.Parse(bulletText)

	verificationResult, err := g.verifier.VerifyBullet(ctx, bulletText, allEvidence, evidenceIDs)
	if err != nil {
		return nil, fmt.Errorf("verification failed: %w", err)
	}

	if requireFullVerification && !verificationResult.IsFullyVerified {
		g.log.Info("bullet not fully verified, skipping",
			zap.Float64("rate", verificationResult.OverallVerificationRate))
		return nil, nil
	}

	status := types.StatusSuggestedEdit
	if verificationResult.IsAcceptable {
		status = types.StatusProposed
	}

	return &types.ProvenanceBullet{
		ID:               uuid.NewString(),
		Text:             bulletText,
		RequirementText:  rc.RequirementText,
		EvidenceIDs:      evidenceIDs,
		EvidenceTexts:    evidenceTexts,
		SimilarityScores: scores,
		Action:           components.Action,
		Metric:           components.Metric,
		Outcome:          components.Outcome,
		Tool:             components.Tool,
		Verification:     verificationResult,
		IsVerified:       verificationResult.IsFullyVerified,
		VerificationRate: verificationResult.OverallVerificationRate,
		Status:           status,
		Recommendation:   verificationResult.Recommendation,
		GeneratedBy:      modelUsed,
		GeneratedAt:      time.Now().UTC(),
	}, nil
}

// callGenerationAPI asks the LLM for one bullet grounded in the evidence.
// Moderate temperature: some phrasing variety without inventing facts.
func (g *Generator) callGenerationAPI(ctx context.Context, requirement string, evidenceTexts []string) (string, string, error) {
	template, err := prompts.Get("generation.json", "amot_bullet")
	if err != nil {
		return "", "", err
	}

	var evidenceList strings.Builder
	for _, t := range evidenceTexts {
		evidenceList.WriteString("- ")
		evidenceList.WriteString(t)
		evidenceList.WriteString("\n")
	}

	prompt := prompts.Format(template, map[string]string{
		"Requirement": requirement,
		"Evidence":    strings.TrimRight(evidenceList.String(), "\n"),
	})

	text, err := g.client.Complete(ctx, llm.CompletionRequest{
		Prompt:          prompt,
		Tier:            llm.TierAdvanced,
		Temperature:     llm.Temp(0.7),
		MaxOutputTokens: 200,
	})
	if err != nil {
		return "", "", err
	}

	return strings.TrimSpace(text), g.client.GetModel(llm.TierAdvanced), nil
}
