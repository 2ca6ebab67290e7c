package mock

import (
	"context"
	"crypto/sha256"
	"math"

	"github.com/lookalike-labs/facematch/internal/domain"
	"github.com/lookalike-labs/facematch/internal/provider"
)

const embeddingDimension = 512

// Provider implements provider.Embedder for tests and local development.
// Embeddings are derived deterministically from the image hash, so the
// same bytes always embed to the same unit vector.
type Provider struct{}

func New() *Provider {
	return &Provider{}
}

func (p *Provider) Embed(ctx context.Context, image []byte) ([]float64, error) {
	if len(image) < 1000 {
		return nil, domain.ErrNoFaceDetected
	}

	return generateEmbedding(image), nil
}

func (p *Provider) ModelID() string {
	return "mock"
}

// generateEmbedding derives a normalized embedding from the image hash
func generateEmbedding(image []byte) []float64 {
	hash := sha256.Sum256(image)
	embedding := make([]float64, embeddingDimension)
	hashLen := len(hash)

	for i := 0; i < embeddingDimension; i++ {
		idx := i % hashLen
		embedding[i] = (float64(hash[idx])/255.0)*2 - 1
	}

	norm := 0.0
	for _, v := range embedding {
		norm += v * v
	}
	norm = math.Sqrt(norm)

	for i := range embedding {
		embedding[i] /= norm
	}

	return embedding
}

var _ provider.Embedder = (*Provider)(nil)
