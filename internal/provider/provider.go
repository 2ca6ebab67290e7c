package provider

import "context"

// Embedder is the single capability the match core consumes from its
// environment: turn image bytes into a face embedding.
//
// Implementations return domain.ErrNoFaceDetected when the image contains
// no extractable face and domain.ErrExtractorUnavailable when the
// extraction capability itself fails. Embeddings from different ModelIDs
// are never comparable.
type Embedder interface {
	// Embed extracts the embedding of the most prominent face in the image.
	Embed(ctx context.Context, image []byte) ([]float64, error)

	// ModelID identifies the embedding model, e.g. "facenet512". It selects
	// the distance metric and score curve used for ranking.
	ModelID() string
}
