package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lookalike-labs/facematch/internal/domain"
)

func TestEmbeddingRepository_Get(t *testing.T) {
	tests := []struct {
		name      string
		mockSetup func(mock pgxmock.PgxPoolIface)
		want      []float64
		wantErr   error
	}{
		{
			name: "successful retrieval",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{"embedding"}).
					AddRow(pgvector.NewVector([]float32{0.1, 0.2, 0.3}))

				mock.ExpectQuery(`SELECT embedding FROM gallery_embeddings WHERE model_id = \$1 AND identifier = \$2`).
					WithArgs("facenet512", "face_001.jpg").
					WillReturnRows(rows)
			},
			want: []float64{
				float64(float32(0.1)),
				float64(float32(0.2)),
				float64(float32(0.3)),
			},
		},
		{
			name: "embedding not found",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT embedding FROM gallery_embeddings WHERE model_id = \$1 AND identifier = \$2`).
					WithArgs("facenet512", "face_001.jpg").
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "database error",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT embedding FROM gallery_embeddings WHERE model_id = \$1 AND identifier = \$2`).
					WithArgs("facenet512", "face_001.jpg").
					WillReturnError(errors.New("connection refused"))
			},
			wantErr: errors.New("get gallery embedding: connection refused"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.mockSetup(mock)

			repo := NewEmbeddingRepository(mock)
			got, err := repo.Get(context.Background(), "facenet512", "face_001.jpg")

			if tt.wantErr != nil {
				require.Error(t, err)
				if errors.Is(tt.wantErr, domain.ErrNotFound) {
					assert.ErrorIs(t, err, domain.ErrNotFound)
				} else {
					assert.Contains(t, err.Error(), "get gallery embedding")
				}
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEmbeddingRepository_Upsert(t *testing.T) {
	embedding := []float64{0.5, -0.25, 0.75}

	t.Run("successful upsert", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`INSERT INTO gallery_embeddings`).
			WithArgs("facenet512", "face_001.jpg", pgvector.NewVector([]float32{0.5, -0.25, 0.75})).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		repo := NewEmbeddingRepository(mock)
		err = repo.Upsert(context.Background(), "facenet512", "face_001.jpg", embedding)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`INSERT INTO gallery_embeddings`).
			WithArgs("facenet512", "face_001.jpg", pgvector.NewVector([]float32{0.5, -0.25, 0.75})).
			WillReturnError(errors.New("disk full"))

		repo := NewEmbeddingRepository(mock)
		err = repo.Upsert(context.Background(), "facenet512", "face_001.jpg", embedding)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "upsert gallery embedding")
	})
}

func TestEmbeddingRepository_DeleteModel(t *testing.T) {
	t.Run("successful delete", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`DELETE FROM gallery_embeddings WHERE model_id = \$1`).
			WithArgs("facenet512").
			WillReturnResult(pgxmock.NewResult("DELETE", 12))

		repo := NewEmbeddingRepository(mock)
		err = repo.DeleteModel(context.Background(), "facenet512")

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`DELETE FROM gallery_embeddings WHERE model_id = \$1`).
			WithArgs("facenet512").
			WillReturnError(errors.New("connection reset"))

		repo := NewEmbeddingRepository(mock)
		err = repo.DeleteModel(context.Background(), "facenet512")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "delete gallery embeddings")
	})
}
