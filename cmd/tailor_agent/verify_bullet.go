package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tailor/internal/coverage"
	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/logger"
	"github.com/jonathan/resume-tailor/internal/observability"
	"github.com/jonathan/resume-tailor/internal/verification"
)

var verifyBulletCmd = &cobra.Command{
	Use:   "verify-bullet",
	Short: "Verify a resume bullet against profile evidence",
	Long:  "Decompose a resume bullet into action, metric, outcome, and tool components and verify each one against the candidate's profile evidence. Produces a recommendation: accept, accept with note, flag for review, or reject.",
	RunE:  runVerifyBullet,
}

var (
	verifyBulletText    string
	verifyProfileFile   string
	verifyEvidenceIDs   []string
	verifyOutputFile    string
	verifyAPIKey        string
	verifyVerboseOutput bool
)

func init() {
	verifyBulletCmd.Flags().StringVarP(&verifyBulletText, "bullet", "b", "", "Resume bullet text to verify (required)")
	verifyBulletCmd.Flags().StringVarP(&verifyProfileFile, "profile", "p", "", "Path to candidate profile JSON file (required)")
	verifyBulletCmd.Flags().StringSliceVar(&verifyEvidenceIDs, "evidence-ids", nil, "Restrict verification to these evidence IDs (optional)")
	verifyBulletCmd.Flags().StringVarP(&verifyOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	verifyBulletCmd.Flags().StringVar(&verifyAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	verifyBulletCmd.Flags().BoolVarP(&verifyVerboseOutput, "verbose", "v", false, "Print a human-readable verification summary")

	_ = verifyBulletCmd.MarkFlagRequired("bullet")
	_ = verifyBulletCmd.MarkFlagRequired("profile")

	rootCmd.AddCommand(verifyBulletCmd)
}

func runVerifyBullet(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	apiKey, err := resolveAPIKey(verifyAPIKey)
	if err != nil {
		return err
	}

	profile, err := loadProfile(verifyProfileFile)
	if err != nil {
		return err
	}

	evidence := coverage.ExtractEvidence(profile)
	if len(evidence) == 0 {
		return fmt.Errorf("profile has no evidence to verify against")
	}

	log, err := logger.New(true, verifyVerboseOutput)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	client, err := llm.NewClient(ctx, nil, apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	verifier := verification.NewVerifier(client, log)
	result, err := verifier.VerifyBullet(ctx, verifyBulletText, evidence, verifyEvidenceIDs)
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}

	if verifyVerboseOutput {
		observability.NewPrinter(os.Stderr).PrintVerificationResult(result)
	}

	if err := validateOutputSchema("schemas/bullet_verification.schema.json", result); err != nil {
		return err
	}
	if err := writeJSONOutput(verifyOutputFile, result); err != nil {
		return err
	}

	if verifyOutputFile != "" {
		_, _ = fmt.Fprintf(os.Stdout, "Successfully verified bullet (%s)\n", result.Recommendation)
		_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", verifyOutputFile)
	}
	return nil
}
