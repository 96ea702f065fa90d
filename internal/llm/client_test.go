package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain json", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"whitespace", "  {\"a\": 1}  ", `{"a": 1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanJSONBlock(tt.input))
		})
	}
}

func TestConfigGetModel(t *testing.T) {
	cfg := DefaultGeminiConfig()
	assert.Equal(t, "gemini-2.5-flash-lite", cfg.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-pro", cfg.GetModel(TierAdvanced))
	assert.Equal(t, "text-embedding-004", cfg.EmbeddingModel)

	// Unknown tier falls back to standard
	assert.Equal(t, "gemini-2.5-flash", cfg.GetModel(ModelTier("unknown")))
}

func TestConfigWithModel(t *testing.T) {
	cfg := DefaultGeminiConfig()
	updated := cfg.WithModel(TierAdvanced, "gemini-custom")

	assert.Equal(t, "gemini-custom", updated.GetModel(TierAdvanced))
	assert.Equal(t, "gemini-2.5-pro", cfg.GetModel(TierAdvanced))
}

func TestMockClient(t *testing.T) {
	m := &MockClient{Responses: []string{"YES", "NO"}}

	got, err := m.Complete(context.Background(), CompletionRequest{Prompt: "p1", Tier: TierLite})
	require.NoError(t, err)
	assert.Equal(t, "YES", got)

	got, err = m.Complete(context.Background(), CompletionRequest{Prompt: "p2", Tier: TierLite})
	require.NoError(t, err)
	assert.Equal(t, "NO", got)

	_, err = m.Complete(context.Background(), CompletionRequest{Prompt: "p3", Tier: TierLite})
	assert.Error(t, err)

	require.Len(t, m.Calls, 3)
	assert.Equal(t, "p1", m.Calls[0].Prompt)
}

func TestMockEmbedder(t *testing.T) {
	m := &MockEmbedder{Fn: func(text string) []float64 {
		return []float64{float64(len(text)), 1}
	}}

	vecs, err := m.EmbedBatch(context.Background(), []string{"ab", "abcd"})
	require.NoError(t, err)
	require.Len(t, vecs, 2)
	assert.Equal(t, []float64{2, 1}, vecs[0])
	assert.Equal(t, []float64{4, 1}, vecs[1])
}
