package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tailor/internal/config"
	"github.com/jonathan/resume-tailor/internal/logger"
	"github.com/jonathan/resume-tailor/internal/pipeline"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full tailoring pipeline end-to-end",
	Long: `Orchestrates the tailoring process: coverage mapping -> bullet generation -> verification.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runPipelineCmd,
}

var (
	runConfigPath  string
	runJob         string
	runProfile     string
	runMaxBullets  int
	runRequireFull bool
	runAPIKey      string
	runVerbose     bool
	runDatabaseURL string
	runRedisURL    string
	runMustThresh  float64
	runNiceThresh  float64
	runWeakThresh  float64
)

func init() {
	// Config file flag (processed first)
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringVarP(&runJob, "job", "j", "", "Path to extracted job JSON file")
	runCommand.Flags().StringVarP(&runProfile, "profile", "p", "", "Path to candidate profile JSON file")
	runCommand.Flags().IntVar(&runMaxBullets, "max-bullets", 0, "Maximum bullets to generate (default 5)")
	runCommand.Flags().BoolVar(&runRequireFull, "require-full-verification", false, "Drop bullets that are not fully verified")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed debug information")
	runCommand.Flags().Float64Var(&runMustThresh, "must-threshold", 0, "Similarity threshold for must-have coverage (default 0.75)")
	runCommand.Flags().Float64Var(&runNiceThresh, "nice-threshold", 0, "Similarity threshold for nice-to-have coverage (default 0.65)")
	runCommand.Flags().Float64Var(&runWeakThresh, "weak-threshold", 0, "Similarity floor for listing evidence matches (default 0.50)")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	// Persistence backends
	runCommand.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	runCommand.Flags().StringVar(&runRedisURL, "redis-url", "", "Redis URL for the embedding cache (optional, defaults to REDIS_URL env var)")

	rootCmd.AddCommand(runCommand)
}

func runPipelineCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if runConfigPath != "" {
		loadedCfg, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return err
		}

		cfg = *loadedCfg
		if runVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", runConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("job") {
		cfg.Job = runJob
	}
	if cmd.Flags().Changed("profile") {
		cfg.Profile = runProfile
	}
	if cmd.Flags().Changed("max-bullets") {
		cfg.MaxBullets = runMaxBullets
	}
	if cmd.Flags().Changed("require-full-verification") {
		cfg.RequireFullVerification = runRequireFull
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = runAPIKey
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = runDatabaseURL
	}
	if cmd.Flags().Changed("redis-url") {
		cfg.RedisURL = runRedisURL
	}
	if cmd.Flags().Changed("must-threshold") {
		cfg.MustHaveThreshold = runMustThresh
	}
	if cmd.Flags().Changed("nice-threshold") {
		cfg.NiceToHaveThreshold = runNiceThresh
	}
	if cmd.Flags().Changed("weak-threshold") {
		cfg.WeakMatchThreshold = runWeakThresh
	}

	// Step 3: Validate required fields
	if cfg.Job == "" {
		return fmt.Errorf("--job must be provided (via flag or config)")
	}
	if cfg.Profile == "" {
		return fmt.Errorf("--profile must be provided (via flag or config)")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Step 4: API Key handling
	apiKey, err := resolveAPIKey(cfg.APIKey)
	if err != nil {
		return err
	}

	// Step 5: Persistence backends default to env vars
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.RedisURL == "" {
		cfg.RedisURL = os.Getenv("REDIS_URL")
	}

	job, err := loadJob(cfg.Job)
	if err != nil {
		return err
	}
	profile, err := loadProfile(cfg.Profile)
	if err != nil {
		return err
	}

	log, err := logger.New(true, cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	result, err := pipeline.Run(ctx, pipeline.RunOptions{
		Job:                     job,
		Profile:                 profile,
		APIKey:                  apiKey,
		DatabaseURL:             cfg.DatabaseURL,
		RedisURL:                cfg.RedisURL,
		Thresholds:              cfg.Thresholds(),
		MaxBullets:              cfg.MaxBullets,
		RequireFullVerification: cfg.RequireFullVerification,
		Verbose:                 cfg.Verbose,
		Log:                     log,
	})
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "Coverage: %.0f%% overall, %d proposed bullets, %d suggested edits\n",
		result.Coverage.CoverageMap.OverallCoverageScore*100,
		result.Bullets.Metadata.ProposedCount,
		result.Bullets.Metadata.SuggestedEditCount)
	return nil
}
