// Package verification checks resume bullets against profile evidence so
// every claim on the resume is backed by something the candidate actually
// did. Metrics demand exact number matches; actions and outcomes may pass on
// semantic equivalence; tools need an explicit mention.
package verification

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/jonathan/resume-tailor/internal/amot"
	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/logger"
	"github.com/jonathan/resume-tailor/internal/prompts"
	"github.com/jonathan/resume-tailor/internal/types"
)

var (
	numberPattern     = regexp.MustCompile(`\d+(?:\.\d+)?`)
	numericEvidence   = regexp.MustCompile(`\d+%|\$\d+`)
	toolPrefixPattern = regexp.MustCompile(`(?i)^(via|using|through|leveraging)\s+`)
)

// Verifier verifies bullets against evidence. The LLM client is optional:
// without one, verification falls back to exact matching only.
type Verifier struct {
	client llm.Client
	log    *zap.Logger
}

// NewVerifier creates a bullet verifier. A nil client disables semantic
// matching; a nil logger disables logging.
func NewVerifier(client llm.Client, log *zap.Logger) *Verifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &Verifier{client: client, log: log}
}

// VerifyBullet verifies one bullet against evidence. When claimedIDs is
// non-empty, verification runs against just that evidence; if none of the
// claimed IDs exist, it falls back to all evidence with a warning.
//
// The four components are verified independently so feedback stays granular:
// "3 out of 4 components verified" names the failing component.
func (v *Verifier) VerifyBullet(
	ctx context.Context,
	bulletText string,
	evidence []types.EvidenceSpan,
	claimedIDs []string,
) (*types.BulletVerificationResult, error) {
	if strings.TrimSpace(bulletText) == "" {
		return nil, ErrEmptyBullet
	}

	v.log.Info("verifying bullet", zap.String("bullet", logger.Truncate(bulletText, 50)))

	components := amot.Parse(bulletText)

	relevant := evidence
	if len(claimedIDs) > 0 {
		claimed := make(map[string]struct{}, len(claimedIDs))
		for _, id := range claimedIDs {
			claimed[id] = struct{}{}
		}
		var filtered []types.EvidenceSpan
		for _, ev := range evidence {
			if _, ok := claimed[ev.ID]; ok {
				filtered = append(filtered, ev)
			}
		}
		if len(filtered) == 0 {
			v.log.Warn("none of claimed evidence IDs found, falling back to all evidence",
				zap.Strings("claimed_ids", claimedIDs))
		} else {
			relevant = filtered
		}
	}

	verifications := make([]types.ComponentVerification, 4)
	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		verifications[0] = v.verifyAction(ctx, components.Action, relevant)
	}()
	go func() {
		defer wg.Done()
		verifications[1] = v.verifyMetric(components.Metric, relevant)
	}()
	go func() {
		defer wg.Done()
		verifications[2] = v.verifyOutcome(ctx, components.Outcome, relevant)
	}()
	go func() {
		defer wg.Done()
		verifications[3] = v.verifyTool(components.Tool, relevant)
	}()
	wg.Wait()

	result := BuildResult(bulletText, components, verifications)

	verified := 0
	for _, cv := range verifications {
		if cv.IsVerified {
			verified++
		}
	}
	v.log.Info("verification complete",
		zap.Float64("rate", result.OverallVerificationRate),
		zap.Int("verified", verified))

	return result, nil
}

// verifyAction checks the action verb: exact word match first, then semantic
// equivalence ("Led" and "Managed" count as the same claim).
func (v *Verifier) verifyAction(ctx context.Context, action string, evidence []types.EvidenceSpan) types.ComponentVerification {
	for _, ev := range evidence {
		if strings.Contains(strings.ToLower(ev.Text), strings.ToLower(action)) {
			return types.ComponentVerification{
				ComponentName:      types.ComponentAction,
				ComponentText:      action,
				IsVerified:         true,
				SupportingEvidence: ev.ID,
				VerificationMethod: types.MethodExactMatch,
				Confidence:         1.0,
				Explanation:        fmt.Sprintf("Action '%s' found in evidence: %s", action, logger.Truncate(ev.Text, 50)),
			}
		}
	}

	if v.client != nil {
		for _, ev := range evidence {
			if v.semanticEquivalent(ctx, "Action: "+action, ev.Text, types.ComponentAction) {
				return types.ComponentVerification{
					ComponentName:      types.ComponentAction,
					ComponentText:      action,
					IsVerified:         true,
					SupportingEvidence: ev.ID,
					VerificationMethod: types.MethodSemanticMatch,
					Confidence:         0.85,
					Explanation:        fmt.Sprintf("Action '%s' semantically equivalent to evidence", action),
				}
			}
		}
	}

	return types.ComponentVerification{
		ComponentName:      types.ComponentAction,
		ComponentText:      action,
		IsVerified:         false,
		VerificationMethod: types.MethodNoMatch,
		Confidence:         1.0,
		Explanation:        fmt.Sprintf("Action '%s' not found in evidence", action),
	}
}

// verifyMetric checks the metric strictly. Numbers must match: 35% is not
// 40%, however close. 35 matches 35.0 and 35.00. A placeholder metric with
// no digits passes at reduced confidence when the evidence carries any
// numerical data.
func (v *Verifier) verifyMetric(metric string, evidence []types.EvidenceSpan) types.ComponentVerification {
	numbers := numberPattern.FindAllString(metric, -1)

	if len(numbers) == 0 {
		for _, ev := range evidence {
			if numericEvidence.MatchString(ev.Text) {
				return types.ComponentVerification{
					ComponentName:      types.ComponentMetric,
					ComponentText:      metric,
					IsVerified:         true,
					SupportingEvidence: ev.ID,
					VerificationMethod: types.MethodPlaceholderMatch,
					Confidence:         0.7,
					Explanation:        "Placeholder metric, found numerical data in evidence",
				}
			}
		}
	}

	for _, ev := range evidence {
		for _, number := range numbers {
			pattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(number) + `(?:\.0+)?\b`)
			if pattern.MatchString(ev.Text) {
				return types.ComponentVerification{
					ComponentName:      types.ComponentMetric,
					ComponentText:      metric,
					IsVerified:         true,
					SupportingEvidence: ev.ID,
					VerificationMethod: types.MethodExactMatch,
					Confidence:         1.0,
					Explanation:        fmt.Sprintf("Metric '%s' found in evidence: %s", metric, logger.Truncate(ev.Text, 50)),
				}
			}
		}
	}

	return types.ComponentVerification{
		ComponentName:      types.ComponentMetric,
		ComponentText:      metric,
		IsVerified:         false,
		VerificationMethod: types.MethodNoMatch,
		Confidence:         1.0,
		Explanation:        fmt.Sprintf("Metric '%s' numbers not found in evidence", metric),
	}
}

// verifyOutcome checks the outcome phrase: keyword overlap first, then
// semantic equivalence ("revenue growth" and "increased sales" convey the
// same result).
func (v *Verifier) verifyOutcome(ctx context.Context, outcome string, evidence []types.EvidenceSpan) types.ComponentVerification {
	outcomeWords := strings.Fields(strings.ToLower(outcome))
	for _, ev := range evidence {
		text := strings.ToLower(ev.Text)
		matches := 0
		for _, word := range outcomeWords {
			if strings.Contains(text, word) {
				matches++
			}
		}
		if matches >= 2 {
			return types.ComponentVerification{
				ComponentName:      types.ComponentOutcome,
				ComponentText:      outcome,
				IsVerified:         true,
				SupportingEvidence: ev.ID,
				VerificationMethod: types.MethodKeywordMatch,
				Confidence:         0.9,
				Explanation:        "Outcome keywords found in evidence",
			}
		}
	}

	if v.client != nil {
		for _, ev := range evidence {
			if v.semanticEquivalent(ctx, "Outcome: "+outcome, ev.Text, types.ComponentOutcome) {
				return types.ComponentVerification{
					ComponentName:      types.ComponentOutcome,
					ComponentText:      outcome,
					IsVerified:         true,
					SupportingEvidence: ev.ID,
					VerificationMethod: types.MethodSemanticMatch,
					Confidence:         0.85,
					Explanation:        "Outcome semantically supported by evidence",
				}
			}
		}
	}

	return types.ComponentVerification{
		ComponentName:      types.ComponentOutcome,
		ComponentText:      outcome,
		IsVerified:         false,
		VerificationMethod: types.MethodNoMatch,
		Confidence:         1.0,
		Explanation:        fmt.Sprintf("Outcome '%s' not supported by evidence", outcome),
	}
}

// verifyTool checks the tool. Tools need an explicit mention: we cannot
// infer someone used Salesforce if they never wrote it down, so there is no
// semantic fallback here.
func (v *Verifier) verifyTool(tool string, evidence []types.EvidenceSpan) types.ComponentVerification {
	toolName := strings.TrimSpace(toolPrefixPattern.ReplaceAllString(tool, ""))

	for _, ev := range evidence {
		if strings.Contains(strings.ToLower(ev.Text), strings.ToLower(toolName)) {
			return types.ComponentVerification{
				ComponentName:      types.ComponentTool,
				ComponentText:      tool,
				IsVerified:         true,
				SupportingEvidence: ev.ID,
				VerificationMethod: types.MethodExactMatch,
				Confidence:         1.0,
				Explanation:        fmt.Sprintf("Tool '%s' mentioned in evidence", toolName),
			}
		}
	}

	return types.ComponentVerification{
		ComponentName:      types.ComponentTool,
		ComponentText:      tool,
		IsVerified:         false,
		VerificationMethod: types.MethodNoMatch,
		Confidence:         1.0,
		Explanation:        fmt.Sprintf("Tool '%s' not mentioned in evidence", toolName),
	}
}

// semanticEquivalent asks the LLM whether a claim is substantially supported
// by evidence. Failures degrade to false so errors never inflate
// verification.
func (v *Verifier) semanticEquivalent(ctx context.Context, claim, evidenceText, componentType string) bool {
	template, err := prompts.Get("verification.json", "semantic_equivalence")
	if err != nil {
		v.log.Error("failed to load verification prompt", zap.Error(err))
		return false
	}
	prompt := prompts.Format(template, map[string]string{
		"Claim":         claim,
		"Evidence":      evidenceText,
		"ComponentType": componentType,
	})

	resp, err := v.client.Complete(ctx, llm.CompletionRequest{
		Prompt:          prompt,
		Tier:            llm.TierLite,
		Temperature:     llm.Temp(0),
		MaxOutputTokens: 10,
	})
	if err != nil {
		v.log.Error("semantic verification failed", zap.Error(err))
		return false
	}

	return strings.ToUpper(strings.TrimSpace(resp)) == "YES"
}
