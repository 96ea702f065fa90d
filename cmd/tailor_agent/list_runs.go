package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tailor/internal/db"
)

var listRunsCmd = &cobra.Command{
	Use:   "list-runs",
	Short: "List recent tailoring runs from the database",
	RunE:  runListRuns,
}

var showRunCmd = &cobra.Command{
	Use:   "show-run",
	Short: "Show a tailoring run and optionally dump one of its artifacts",
	Long:  "Show a tailoring run's status. With --step, print the stored artifact JSON for that step (coverage_map, bullet_verification, or generated_bullets).",
	RunE:  runShowRun,
}

var (
	listDatabaseURL string
	listLimit       int

	showDatabaseURL string
	showRunID       string
	showStep        string
)

func init() {
	listRunsCmd.Flags().StringVar(&listDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	listRunsCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum runs to list (default 50)")
	rootCmd.AddCommand(listRunsCmd)

	showRunCmd.Flags().StringVar(&showDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	showRunCmd.Flags().StringVar(&showRunID, "run-id", "", "Run ID to show (required)")
	showRunCmd.Flags().StringVar(&showStep, "step", "", "Artifact step to dump (optional)")
	_ = showRunCmd.MarkFlagRequired("run-id")
	rootCmd.AddCommand(showRunCmd)
}

func connectDatabase(ctx context.Context, flagURL string) (*db.DB, error) {
	url := flagURL
	if url == "" {
		url = os.Getenv("DATABASE_URL")
	}
	if url == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required")
	}
	return db.Connect(ctx, url)
}

func runListRuns(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	database, err := connectDatabase(ctx, listDatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	runs, err := database.ListRuns(ctx, listLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		_, _ = fmt.Fprintln(os.Stdout, "No runs found.")
		return nil
	}

	for _, run := range runs {
		completed := "-"
		if run.CompletedAt != nil {
			completed = run.CompletedAt.Format("2006-01-02 15:04:05")
		}
		_, _ = fmt.Fprintf(os.Stdout, "%s  %-9s  job=%s profile=%s  created=%s completed=%s\n",
			run.ID, run.Status, run.JobID, run.ProfileID,
			run.CreatedAt.Format("2006-01-02 15:04:05"), completed)
	}
	return nil
}

func runShowRun(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	runID, err := uuid.Parse(showRunID)
	if err != nil {
		return fmt.Errorf("invalid run-id: %w", err)
	}

	database, err := connectDatabase(ctx, showDatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	run, err := database.GetRun(ctx, runID)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("run not found: %s", runID)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Run %s: status=%s job=%s profile=%s\n",
		run.ID, run.Status, run.JobID, run.ProfileID)

	if showStep == "" {
		return nil
	}

	artifact, err := database.GetArtifact(ctx, runID, showStep)
	if err != nil {
		return err
	}
	if artifact == nil {
		return fmt.Errorf("no %s artifact stored for run %s", showStep, runID)
	}
	_, _ = fmt.Fprintln(os.Stdout, string(artifact))
	return nil
}
