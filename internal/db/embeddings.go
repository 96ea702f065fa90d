package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"
)

// SaveEvidenceEmbedding persists an evidence span's embedding. Upserts by
// evidence ID and model so re-runs refresh stale vectors.
func (db *DB) SaveEvidenceEmbedding(ctx context.Context, evidenceID, profileID, model string, vector []float64) error {
	v := make([]float32, len(vector))
	for i, x := range vector {
		v[i] = float32(x)
	}

	_, err := db.pool.Exec(ctx,
		`INSERT INTO evidence_embeddings (evidence_id, profile_id, model, embedding)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (evidence_id, model) DO UPDATE SET embedding = $4, created_at = NOW()`,
		evidenceID, profileID, model, pgvector.NewVector(v),
	)
	if err != nil {
		return fmt.Errorf("failed to save evidence embedding %s: %w", evidenceID, err)
	}
	return nil
}

// GetEvidenceEmbedding loads an evidence span's embedding, or nil when none
// is stored for the given model.
func (db *DB) GetEvidenceEmbedding(ctx context.Context, evidenceID, model string) ([]float64, error) {
	var vec pgvector.Vector
	err := db.pool.QueryRow(ctx,
		`SELECT embedding FROM evidence_embeddings WHERE evidence_id = $1 AND model = $2`,
		evidenceID, model,
	).Scan(&vec)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get evidence embedding %s: %w", evidenceID, err)
	}

	raw := vec.Slice()
	out := make([]float64, len(raw))
	for i, x := range raw {
		out[i] = float64(x)
	}
	return out, nil
}
