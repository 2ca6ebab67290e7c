package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pgvector/pgvector-go"

	"github.com/lookalike-labs/facematch/internal/domain"
)

// PgxPool is the subset of pgxpool.Pool the repositories use; pgxmock
// satisfies it in tests.
type PgxPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// EmbeddingRepository persists gallery embeddings keyed by
// (model_id, identifier) so restarts skip re-extraction. It implements
// gallery.EmbeddingStore.
type EmbeddingRepository struct {
	pool PgxPool
}

func NewEmbeddingRepository(pool PgxPool) *EmbeddingRepository {
	return &EmbeddingRepository{pool: pool}
}

func (r *EmbeddingRepository) Get(ctx context.Context, modelID, identifier string) ([]float64, error) {
	query := `
		SELECT embedding
		FROM gallery_embeddings
		WHERE model_id = $1 AND identifier = $2
	`

	var embedding pgvector.Vector
	err := r.pool.QueryRow(ctx, query, modelID, identifier).Scan(&embedding)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get gallery embedding: %w", err)
	}

	return toFloat64(embedding.Slice()), nil
}

func (r *EmbeddingRepository) Upsert(ctx context.Context, modelID, identifier string, embedding []float64) error {
	query := `
		INSERT INTO gallery_embeddings (model_id, identifier, embedding, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (model_id, identifier)
		DO UPDATE SET embedding = EXCLUDED.embedding, updated_at = NOW()
	`

	_, err := r.pool.Exec(ctx, query, modelID, identifier, pgvector.NewVector(toFloat32(embedding)))
	if err != nil {
		return fmt.Errorf("upsert gallery embedding: %w", err)
	}

	return nil
}

func (r *EmbeddingRepository) DeleteModel(ctx context.Context, modelID string) error {
	query := `
		DELETE FROM gallery_embeddings
		WHERE model_id = $1
	`

	if _, err := r.pool.Exec(ctx, query, modelID); err != nil {
		return fmt.Errorf("delete gallery embeddings: %w", err)
	}

	return nil
}

func toFloat32(embedding []float64) []float32 {
	floats := make([]float32, len(embedding))
	for i, v := range embedding {
		floats[i] = float32(v)
	}
	return floats
}

func toFloat64(embedding []float32) []float64 {
	floats := make([]float64, len(embedding))
	for i, v := range embedding {
		floats[i] = float64(v)
	}
	return floats
}
