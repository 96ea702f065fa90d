package coverage

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-tailor/internal/cache"
	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/similarity"
	"github.com/jonathan/resume-tailor/internal/types"
)

// Mapper computes coverage maps for job-profile pairs. Embeddings go through
// the cache first; evidence embeddings in particular are reusable across
// jobs.
type Mapper struct {
	embedder   llm.Embedder
	cache      cache.EmbeddingCache
	thresholds Thresholds
	log        *zap.Logger
}

// NewMapper creates a coverage mapper. A nil cache disables caching; a nil
// logger disables logging.
func NewMapper(embedder llm.Embedder, c cache.EmbeddingCache, th Thresholds, log *zap.Logger) *Mapper {
	if log == nil {
		log = zap.NewNop()
	}
	return &Mapper{
		embedder:   embedder,
		cache:      c,
		thresholds: th,
		log:        log,
	}
}

// ComputeCoverageMap runs the full coverage analysis for one job-profile
// pair: extract evidence, embed both sides, compute the similarity matrix,
// analyze per-requirement coverage, and aggregate.
func (m *Mapper) ComputeCoverageMap(
	ctx context.Context,
	job *types.ExtractedJob,
	profile *types.Profile,
) (*types.CoverageMapResult, error) {
	start := time.Now()

	m.log.Info("starting coverage mapping",
		zap.String("job_id", job.JobID),
		zap.String("profile_id", profile.ID))

	evidence := ExtractEvidence(profile)
	if len(evidence) == 0 {
		return nil, ErrNoEvidence
	}

	requirements := job.AllRequirements()
	if len(requirements) == 0 {
		return nil, ErrNoRequirements
	}

	m.log.Debug("extracted inputs",
		zap.Int("evidence_items", len(evidence)),
		zap.Int("requirements", len(requirements)))

	reqTexts := make([]string, len(requirements))
	for i, r := range requirements {
		reqTexts[i] = r.Text
	}
	evTexts := make([]string, len(evidence))
	for i, ev := range evidence {
		evTexts[i] = ev.Text
	}

	var reqEmbeddings, evEmbeddings [][]float64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		reqEmbeddings, err = m.embedTexts(gctx, reqTexts)
		return err
	})
	g.Go(func() error {
		var err error
		evEmbeddings, err = m.embedTexts(gctx, evTexts)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to generate embeddings: %w", err)
	}

	for i := range evidence {
		evidence[i].Embedding = evEmbeddings[i]
	}

	matrix, err := similarity.Matrix(reqEmbeddings, evEmbeddings)
	if err != nil {
		return nil, fmt.Errorf("failed to compute similarity matrix: %w", err)
	}

	coverageList := AnalyzeRequirements(requirements, evidence, matrix, m.thresholds)
	coverageMap := BuildCoverageMap(job.JobID, profile.ID, coverageList, evidence, matrix, m.thresholds)

	elapsed := time.Since(start).Milliseconds()
	m.log.Info("coverage mapping complete",
		zap.Float64("overall", coverageMap.OverallCoverageScore),
		zap.Float64("must_have", coverageMap.MustHaveCoverageScore),
		zap.Int64("time_ms", elapsed))

	return &types.CoverageMapResult{
		CoverageMap:        coverageMap,
		ExecutionTimeMS:    elapsed,
		EmbeddingModel:     m.embedder.ModelName(),
		TotalEvidenceItems: len(evidence),
		TotalRequirements:  len(requirements),
		Evidence:           evidence,
	}, nil
}

// embedTexts returns one vector per text, serving from the cache where
// possible and embedding only the misses in a single batch.
func (m *Mapper) embedTexts(ctx context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))

	var missing []int
	for i, t := range texts {
		if m.cache == nil {
			missing = append(missing, i)
			continue
		}
		v, ok, err := m.cache.Get(ctx, t)
		if err != nil {
			m.log.Warn("embedding cache get failed", zap.Error(err))
		}
		if ok {
			out[i] = v
			continue
		}
		missing = append(missing, i)
	}

	if len(missing) == 0 {
		return out, nil
	}

	batch := make([]string, len(missing))
	for i, idx := range missing {
		batch[i] = texts[idx]
	}

	m.log.Debug("embedding batch", zap.Int("texts", len(batch)), zap.Int("cached", len(texts)-len(batch)))

	vectors, err := m.embedder.EmbedBatch(ctx, batch)
	if err != nil {
		return nil, err
	}

	for i, idx := range missing {
		out[idx] = vectors[i]
		if m.cache != nil {
			if err := m.cache.Set(ctx, texts[idx], vectors[i]); err != nil {
				m.log.Warn("embedding cache set failed", zap.Error(err))
			}
		}
	}
	return out, nil
}
