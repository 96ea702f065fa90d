package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tailor/internal/cache"
	"github.com/jonathan/resume-tailor/internal/coverage"
	"github.com/jonathan/resume-tailor/internal/generation"
	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/logger"
	"github.com/jonathan/resume-tailor/internal/observability"
	"github.com/jonathan/resume-tailor/internal/verification"
)

var generateBulletsCmd = &cobra.Command{
	Use:   "generate-bullets",
	Short: "Generate verified resume bullets for a job-profile pair",
	Long:  "Compute a coverage map, then generate a resume bullet for each covered requirement in priority order. Every bullet is verified against profile evidence; bullets that fail verification are returned as suggested edits rather than proposed bullets.",
	RunE:  runGenerateBullets,
}

var (
	generateJobFile       string
	generateProfileFile   string
	generateOutputFile    string
	generateAPIKey        string
	generateRedisURL      string
	generateMaxBullets    int
	generateRequireFull   bool
	generateVerboseOutput bool
)

func init() {
	generateBulletsCmd.Flags().StringVarP(&generateJobFile, "job", "j", "", "Path to extracted job JSON file (required)")
	generateBulletsCmd.Flags().StringVarP(&generateProfileFile, "profile", "p", "", "Path to candidate profile JSON file (required)")
	generateBulletsCmd.Flags().StringVarP(&generateOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	generateBulletsCmd.Flags().StringVar(&generateAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	generateBulletsCmd.Flags().StringVar(&generateRedisURL, "redis-url", "", "Redis URL for the embedding cache (optional, defaults to REDIS_URL env var)")
	generateBulletsCmd.Flags().IntVar(&generateMaxBullets, "max-bullets", 0, "Maximum bullets to generate (default 5)")
	generateBulletsCmd.Flags().BoolVar(&generateRequireFull, "require-full-verification", false, "Drop bullets that are not fully verified instead of returning them as suggested edits")
	generateBulletsCmd.Flags().BoolVarP(&generateVerboseOutput, "verbose", "v", false, "Print a human-readable generation summary")

	_ = generateBulletsCmd.MarkFlagRequired("job")
	_ = generateBulletsCmd.MarkFlagRequired("profile")

	rootCmd.AddCommand(generateBulletsCmd)
}

func runGenerateBullets(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	apiKey, err := resolveAPIKey(generateAPIKey)
	if err != nil {
		return err
	}

	job, err := loadJob(generateJobFile)
	if err != nil {
		return err
	}
	profile, err := loadProfile(generateProfileFile)
	if err != nil {
		return err
	}

	log, err := logger.New(true, generateVerboseOutput)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	client, err := llm.NewClient(ctx, nil, apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	embedder, err := llm.NewGeminiEmbedder(ctx, nil, apiKey)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}
	defer func() { _ = embedder.Close() }()

	redisURL := generateRedisURL
	if redisURL == "" {
		redisURL = os.Getenv("REDIS_URL")
	}
	embCache, closeCache, cacheErr := cache.Open(ctx, redisURL)
	if cacheErr != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: %v\nContinuing with in-memory embedding cache...\n", cacheErr)
	}
	defer closeCache()

	mapper := coverage.NewMapper(embedder, embCache, coverage.DefaultThresholds(), log)
	coverageResult, err := mapper.ComputeCoverageMap(ctx, job, profile)
	if err != nil {
		return fmt.Errorf("coverage mapping failed: %w", err)
	}

	verifier := verification.NewVerifier(client, log)
	generator := generation.NewGenerator(client, verifier, log)
	result, err := generator.GenerateWithProvenance(ctx, coverageResult.CoverageMap, profile, generation.Options{
		MaxBulletsPerRole:       generateMaxBullets,
		RequireFullVerification: generateRequireFull,
	})
	if err != nil {
		return fmt.Errorf("bullet generation failed: %w", err)
	}

	if generateVerboseOutput {
		observability.NewPrinter(os.Stderr).PrintGeneratedBullets(result)
	}

	if err := writeJSONOutput(generateOutputFile, result); err != nil {
		return err
	}

	if generateOutputFile != "" {
		_, _ = fmt.Fprintf(os.Stdout, "Successfully generated %d bullets (%d proposed, %d suggested edits)\n",
			result.Metadata.TotalGenerated, result.Metadata.ProposedCount, result.Metadata.SuggestedEditCount)
		_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", generateOutputFile)
	}
	return nil
}
