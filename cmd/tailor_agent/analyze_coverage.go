package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tailor/internal/cache"
	"github.com/jonathan/resume-tailor/internal/coverage"
	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/logger"
	"github.com/jonathan/resume-tailor/internal/observability"
)

var analyzeCoverageCmd = &cobra.Command{
	Use:   "analyze-coverage",
	Short: "Compute a coverage map for a job-profile pair",
	Long:  "Compute a coverage map showing how well candidate evidence covers each job requirement, which requirements are gaps, and which evidence is strongest overall.",
	RunE:  runAnalyzeCoverage,
}

var (
	coverageJobFile       string
	coverageProfileFile   string
	coverageOutputFile    string
	coverageAPIKey        string
	coverageRedisURL      string
	coverageMustThresh    float64
	coverageNiceThresh    float64
	coverageWeakThresh    float64
	coverageVerboseOutput bool
)

func init() {
	analyzeCoverageCmd.Flags().StringVarP(&coverageJobFile, "job", "j", "", "Path to extracted job JSON file (required)")
	analyzeCoverageCmd.Flags().StringVarP(&coverageProfileFile, "profile", "p", "", "Path to candidate profile JSON file (required)")
	analyzeCoverageCmd.Flags().StringVarP(&coverageOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	analyzeCoverageCmd.Flags().StringVar(&coverageAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	analyzeCoverageCmd.Flags().StringVar(&coverageRedisURL, "redis-url", "", "Redis URL for the embedding cache (optional, defaults to REDIS_URL env var)")
	analyzeCoverageCmd.Flags().Float64Var(&coverageMustThresh, "must-threshold", 0, "Similarity threshold for must-have coverage (default 0.75)")
	analyzeCoverageCmd.Flags().Float64Var(&coverageNiceThresh, "nice-threshold", 0, "Similarity threshold for nice-to-have coverage (default 0.65)")
	analyzeCoverageCmd.Flags().Float64Var(&coverageWeakThresh, "weak-threshold", 0, "Similarity floor for listing evidence matches (default 0.50)")
	analyzeCoverageCmd.Flags().BoolVarP(&coverageVerboseOutput, "verbose", "v", false, "Print a human-readable coverage summary")

	_ = analyzeCoverageCmd.MarkFlagRequired("job")
	_ = analyzeCoverageCmd.MarkFlagRequired("profile")

	rootCmd.AddCommand(analyzeCoverageCmd)
}

func runAnalyzeCoverage(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	apiKey, err := resolveAPIKey(coverageAPIKey)
	if err != nil {
		return err
	}

	job, err := loadJob(coverageJobFile)
	if err != nil {
		return err
	}
	profile, err := loadProfile(coverageProfileFile)
	if err != nil {
		return err
	}

	log, err := logger.New(true, coverageVerboseOutput)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	embedder, err := llm.NewGeminiEmbedder(ctx, nil, apiKey)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}
	defer func() { _ = embedder.Close() }()

	redisURL := coverageRedisURL
	if redisURL == "" {
		redisURL = os.Getenv("REDIS_URL")
	}
	embCache, closeCache, cacheErr := cache.Open(ctx, redisURL)
	if cacheErr != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: %v\nContinuing with in-memory embedding cache...\n", cacheErr)
	}
	defer closeCache()

	thresholds := thresholdsFromFlags(coverageMustThresh, coverageNiceThresh, coverageWeakThresh)

	mapper := coverage.NewMapper(embedder, embCache, thresholds, log)
	result, err := mapper.ComputeCoverageMap(ctx, job, profile)
	if err != nil {
		return fmt.Errorf("coverage mapping failed: %w", err)
	}

	if coverageVerboseOutput {
		observability.NewPrinter(os.Stderr).PrintCoverageMap(result)
	}

	if err := validateOutputSchema("schemas/coverage_map.schema.json", result.CoverageMap); err != nil {
		return err
	}
	if err := writeJSONOutput(coverageOutputFile, result); err != nil {
		return err
	}

	if coverageOutputFile != "" {
		_, _ = fmt.Fprintf(os.Stdout, "Successfully computed coverage map\n")
		_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", coverageOutputFile)
	}
	return nil
}

// thresholdsFromFlags builds coverage thresholds from flag values, leaving
// defaults in place for zero values.
func thresholdsFromFlags(must, nice, weak float64) coverage.Thresholds {
	th := coverage.DefaultThresholds()
	if must > 0 {
		th.MustHaveCovered = must
	}
	if nice > 0 {
		th.NiceToHaveCovered = nice
	}
	if weak > 0 {
		th.WeakMatch = weak
	}
	return th
}
