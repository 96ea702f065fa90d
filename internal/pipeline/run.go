// Package pipeline provides the high-level orchestration for the tailoring process.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/resume-tailor/internal/cache"
	"github.com/jonathan/resume-tailor/internal/coverage"
	"github.com/jonathan/resume-tailor/internal/db"
	"github.com/jonathan/resume-tailor/internal/generation"
	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/observability"
	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/jonathan/resume-tailor/internal/verification"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for running the pipeline.
//
// Client and Embedder may be injected directly; when nil they are built from
// APIKey. Injected clients are not closed by the pipeline.
type RunOptions struct {
	Job     *types.ExtractedJob
	Profile *types.Profile

	APIKey   string
	Client   llm.Client
	Embedder llm.Embedder

	DatabaseURL string
	RedisURL    string

	Thresholds              coverage.Thresholds
	MaxBullets              int
	RequireFullVerification bool
	Verbose                 bool

	Log        *zap.Logger
	OnProgress ProgressCallback
}

// RunResult holds the outputs of a completed pipeline run.
type RunResult struct {
	RunID    uuid.UUID
	Coverage *types.CoverageMapResult
	Bullets  *types.BulletGenerationResult
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, step, category, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:     step,
			Category: category,
			Message:  message,
			Content:  content,
		})
	}
}

// Run orchestrates the full tailoring pipeline: coverage mapping, then
// verified bullet generation. Database and Redis are optional; the pipeline
// degrades to no persistence and an in-memory embedding cache when they are
// unavailable.
func Run(ctx context.Context, opts RunOptions) (*RunResult, error) {
	if opts.Job == nil {
		return nil, fmt.Errorf("job is required")
	}
	if opts.Profile == nil {
		return nil, fmt.Errorf("profile is required")
	}

	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Thresholds == (coverage.Thresholds{}) {
		opts.Thresholds = coverage.DefaultThresholds()
	}

	// Initialize observability printer for verbose output
	printer := observability.NewPrinter(os.Stdout)

	// Initialize database connection if configured
	var database *db.DB
	var runID uuid.UUID
	if opts.DatabaseURL != "" {
		var err error
		database, err = db.Connect(ctx, opts.DatabaseURL)
		if err != nil {
			fmt.Printf("Warning: Failed to connect to database: %v\n", err)
			fmt.Printf("Continuing without database persistence...\n")
		} else {
			defer database.Close()
			if opts.Verbose {
				fmt.Printf("[VERBOSE] Connected to database\n")
			}
		}
	}

	embCache, closeCache, cacheErr := cache.Open(ctx, opts.RedisURL)
	if cacheErr != nil {
		fmt.Printf("Warning: %v\n", cacheErr)
		fmt.Printf("Continuing with in-memory embedding cache...\n")
	} else if opts.RedisURL != "" && opts.Verbose {
		fmt.Printf("[VERBOSE] Connected to Redis embedding cache\n")
	}
	defer closeCache()

	client := opts.Client
	if client == nil {
		var err error
		client, err = llm.NewClient(ctx, nil, opts.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		defer func() { _ = client.Close() }()
	}

	embedder := opts.Embedder
	if embedder == nil {
		var err error
		embedder, err = llm.NewGeminiEmbedder(ctx, nil, opts.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create embedder: %w", err)
		}
		defer func() { _ = embedder.Close() }()
	}

	if database != nil {
		var err error
		runID, err = database.CreateRun(ctx, opts.Job.JobID, opts.Profile.ID)
		if err != nil {
			fmt.Printf("Warning: Failed to create database run: %v\n", err)
		} else if opts.Verbose {
			fmt.Printf("[VERBOSE] Created database run: %s\n", runID)
		}
	}

	// Step 1: Coverage mapping
	fmt.Printf("Step 1/2: Computing coverage map...\n")
	mapper := coverage.NewMapper(embedder, embCache, opts.Thresholds, log)
	coverageResult, err := mapper.ComputeCoverageMap(ctx, opts.Job, opts.Profile)
	if err != nil {
		return nil, fmt.Errorf("coverage mapping failed: %w", err)
	}
	if opts.Verbose {
		printer.PrintCoverageMap(coverageResult)
	}
	emitProgress(&opts, db.StepCoverage, db.CategoryAnalysis,
		fmt.Sprintf("Coverage %.0f%% overall, %d critical gaps",
			coverageResult.CoverageMap.OverallCoverageScore*100,
			len(coverageResult.CoverageMap.CriticalGaps)),
		coverageResult)

	if database != nil && runID != uuid.Nil {
		_ = database.SaveArtifact(ctx, runID, db.StepCoverage, db.CategoryAnalysis, coverageResult)
		for _, ev := range coverageResult.Evidence {
			if len(ev.Embedding) == 0 {
				continue
			}
			if err := database.SaveEvidenceEmbedding(ctx, ev.ID, opts.Profile.ID, coverageResult.EmbeddingModel, ev.Embedding); err != nil {
				log.Warn("failed to persist evidence embedding",
					zap.String("evidence_id", ev.ID), zap.Error(err))
			}
		}
	}

	// Step 2: Verified bullet generation
	fmt.Printf("Step 2/2: Generating verified bullets...\n")
	verifier := verification.NewVerifier(client, log)
	generator := generation.NewGenerator(client, verifier, log)

	bullets, err := generator.GenerateWithProvenance(ctx, coverageResult.CoverageMap, opts.Profile, generation.Options{
		MaxBulletsPerRole:       opts.MaxBullets,
		RequireFullVerification: opts.RequireFullVerification,
	})
	if err != nil {
		if !errors.Is(err, generation.ErrNoCoveredRequirements) {
			return nil, fmt.Errorf("bullet generation failed: %w", err)
		}
		fmt.Printf("Warning: No covered requirements, skipping bullet generation.\n")
		bullets = &types.BulletGenerationResult{}
	}
	if opts.Verbose {
		printer.PrintGeneratedBullets(bullets)
	}
	emitProgress(&opts, db.StepGeneration, db.CategoryOutput,
		fmt.Sprintf("Generated %d bullets (%d proposed, %d suggested edits)",
			bullets.Metadata.TotalGenerated,
			bullets.Metadata.ProposedCount,
			bullets.Metadata.SuggestedEditCount),
		bullets)

	if database != nil && runID != uuid.Nil {
		_ = database.SaveArtifact(ctx, runID, db.StepGeneration, db.CategoryOutput, bullets)

		var verifications []*types.BulletVerificationResult
		for _, b := range bullets.AllBullets() {
			if b.Verification != nil {
				verifications = append(verifications, b.Verification)
			}
		}
		if len(verifications) > 0 {
			_ = database.SaveArtifact(ctx, runID, db.StepVerification, db.CategoryAnalysis, verifications)
		}

		_ = database.CompleteRun(ctx, runID, "completed")
	}

	fmt.Printf("Done.\n")
	return &RunResult{
		RunID:    runID,
		Coverage: coverageResult,
		Bullets:  bullets,
	}, nil
}
