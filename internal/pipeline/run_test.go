package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/types"
)

func fixtureJob() *types.ExtractedJob {
	return &types.ExtractedJob{
		JobID: "job-1",
		MustHave: []types.Requirement{
			{Text: "Python development experience", Priority: types.PriorityMustHave, Category: types.CategoryTechnical},
		},
	}
}

func fixtureProfile() *types.Profile {
	return &types.Profile{
		ID: "profile-1",
		Experiences: []types.Experience{
			{
				ID:          "exp-1",
				Bullets:     []string{"Led Python team of 8 for 6 years with Agile, improving delivery speed by 35%"},
				EvidenceIDs: []string{"ev-1"},
			},
		},
	}
}

// pythonAwareEmbedder maps texts mentioning Python onto one axis and
// everything else onto an orthogonal one, so similarity is 1 or 0.
func pythonAwareEmbedder() *llm.MockEmbedder {
	return &llm.MockEmbedder{
		Fn: func(text string) []float64 {
			if strings.Contains(text, "Python") {
				return []float64{1, 0}
			}
			return []float64{0, 1}
		},
	}
}

func TestRun_EndToEnd(t *testing.T) {
	client := &llm.MockClient{
		Responses: []string{
			"Led Python team of 8 for 6 years, resulting in 35% delivery speedup using Agile",
		},
	}

	var events []ProgressEvent
	result, err := Run(context.Background(), RunOptions{
		Job:      fixtureJob(),
		Profile:  fixtureProfile(),
		Client:   client,
		Embedder: pythonAwareEmbedder(),
		OnProgress: func(e ProgressEvent) {
			events = append(events, e)
		},
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, uuid.Nil, result.RunID)

	require.NotNil(t, result.Coverage)
	cm := result.Coverage.CoverageMap
	assert.InDelta(t, 1.0, cm.MustHaveCoverageScore, 1e-6)
	assert.Len(t, cm.CoveredRequirements, 1)
	assert.Empty(t, cm.CriticalGaps)

	require.NotNil(t, result.Bullets)
	require.Len(t, result.Bullets.ProposedBullets, 1)
	bullet := result.Bullets.ProposedBullets[0]
	assert.True(t, bullet.IsVerified)
	assert.Equal(t, types.StatusProposed, bullet.Status)
	assert.Equal(t, []string{"ev-1"}, bullet.EvidenceIDs)

	require.Len(t, events, 2)
	assert.Equal(t, "coverage_map", events[0].Step)
	assert.Equal(t, "generated_bullets", events[1].Step)
}

func TestRun_NoCoveredRequirements(t *testing.T) {
	job := &types.ExtractedJob{
		JobID: "job-2",
		MustHave: []types.Requirement{
			{Text: "Kubernetes administration", Priority: types.PriorityMustHave},
		},
	}

	result, err := Run(context.Background(), RunOptions{
		Job:      job,
		Profile:  fixtureProfile(),
		Client:   &llm.MockClient{},
		Embedder: pythonAwareEmbedder(),
	})
	require.NoError(t, err)

	assert.Zero(t, result.Bullets.Metadata.TotalGenerated)
	assert.Len(t, result.Coverage.CoverageMap.CriticalGaps, 1)
}

func TestRun_MissingInputs(t *testing.T) {
	_, err := Run(context.Background(), RunOptions{Profile: fixtureProfile()})
	assert.Error(t, err)

	_, err = Run(context.Background(), RunOptions{Job: fixtureJob()})
	assert.Error(t, err)
}

func TestRun_EmbedderFailure(t *testing.T) {
	_, err := Run(context.Background(), RunOptions{
		Job:      fixtureJob(),
		Profile:  fixtureProfile(),
		Client:   &llm.MockClient{},
		Embedder: &llm.MockEmbedder{Err: assert.AnError},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "coverage mapping failed")
}
