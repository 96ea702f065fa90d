package llm

import (
	"context"
	"fmt"
	"sync"
)

// MockClient is a Client implementation for tests. Responses are returned in
// order; once exhausted, Err (or a default error) is returned.
type MockClient struct {
	mu        sync.Mutex
	Responses []string
	Err       error
	Calls     []CompletionRequest
}

// Complete returns the next queued response and records the request.
func (m *MockClient) Complete(_ context.Context, req CompletionRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Responses) == 0 {
		return "", fmt.Errorf("mock: no responses queued")
	}
	resp := m.Responses[0]
	m.Responses = m.Responses[1:]
	return resp, nil
}

// GetModel returns a fixed mock model name.
func (m *MockClient) GetModel(tier ModelTier) string {
	return "mock-" + string(tier)
}

// Close is a no-op.
func (m *MockClient) Close() error { return nil }

// MockEmbedder is an Embedder implementation for tests. Fn, when set, computes
// the vector for each text; otherwise Vectors maps texts to fixed vectors.
type MockEmbedder struct {
	Fn      func(text string) []float64
	Vectors map[string][]float64
	Err     error
}

// EmbedBatch embeds each text via Fn or the Vectors map.
func (m *MockEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float64, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([][]float64, len(texts))
	for i, t := range texts {
		switch {
		case m.Fn != nil:
			out[i] = m.Fn(t)
		case m.Vectors != nil:
			v, ok := m.Vectors[t]
			if !ok {
				return nil, fmt.Errorf("mock: no vector for %q", t)
			}
			out[i] = v
		default:
			return nil, fmt.Errorf("mock: no Fn or Vectors configured")
		}
	}
	return out, nil
}

// ModelName returns a fixed mock model name.
func (m *MockEmbedder) ModelName() string { return "mock-embedding" }

// Close is a no-op.
func (m *MockEmbedder) Close() error { return nil }
