package domain

import (
	"github.com/google/uuid"
)

// Embedding is a fixed-length feature vector for one face. Embeddings are
// only comparable when produced by the same model.
type Embedding []float64

// GalleryEntry pairs a gallery image identifier (its filename) with the
// embedding extracted from it.
type GalleryEntry struct {
	Identifier string
	Embedding  Embedding
}

// GallerySnapshot is an immutable view of the gallery cache for one
// ranking pass.
type GallerySnapshot struct {
	ModelID string
	Entries []GalleryEntry
}

// Candidate is one gallery entry scored against a query embedding.
// Similarity is a display percentage in [40, 99]; Distance is the raw
// model-space dissimilarity the percentage was derived from.
type Candidate struct {
	Identifier string  `json:"identifier"`
	Distance   float64 `json:"distance"`
	Similarity int     `json:"similarity"`
}

// Match is a candidate enriched for presentation.
type Match struct {
	Identifier  string  `json:"identifier"`
	DisplayName string  `json:"name"`
	ImageURL    string  `json:"image_url"`
	Distance    float64 `json:"distance"`
	Similarity  int     `json:"similarity"`
}

// MatchResult is the complete response for one uploaded photo.
type MatchResult struct {
	SearchID     uuid.UUID `json:"search_id"`
	Matches      []Match   `json:"matches"`
	TotalGallery int       `json:"total_gallery"`
	LatencyMs    int64     `json:"latency_ms"`
}
