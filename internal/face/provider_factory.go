package face

import (
	"fmt"

	"github.com/lookalike-labs/facematch/internal/config"
	"github.com/lookalike-labs/facematch/internal/provider"
	"github.com/lookalike-labs/facematch/internal/provider/deepface"
	"github.com/lookalike-labs/facematch/internal/provider/dlib"
	"github.com/lookalike-labs/facematch/internal/provider/mock"
)

// ProviderType defines supported embedding provider types
type ProviderType string

const (
	// ProviderTypeDeepFace embeds through a DeepFace API sidecar (cosine family)
	ProviderTypeDeepFace ProviderType = "deepface"
	// ProviderTypeDlib embeds locally with dlib ResNet descriptors (Euclidean family)
	ProviderTypeDlib ProviderType = "dlib"
	// ProviderTypeMock embeds deterministically from the image hash (tests/dev)
	ProviderTypeMock ProviderType = "mock"
)

// NewEmbedder creates the configured embedding provider. The choice is a
// configuration-time decision; there is no runtime fallback between
// providers, since their embeddings are not comparable.
//
// Environment variables:
//   - PROVIDER: "deepface", "dlib" or "mock" (default: "deepface")
//   - DEEPFACE_URL: DeepFace API URL (default: "http://localhost:5005")
//   - DLIB_MODELS_DIR: directory with the dlib model files (default: "models")
func NewEmbedder(cfg *config.Config) (provider.Embedder, error) {
	switch ProviderType(cfg.Provider) {
	case ProviderTypeDlib:
		embedder, err := dlib.NewProvider(cfg.DlibModelsDir)
		if err != nil {
			return nil, fmt.Errorf("create dlib provider: %w", err)
		}
		return embedder, nil

	case ProviderTypeMock:
		return mock.New(), nil

	case ProviderTypeDeepFace, "":
		deepfaceConfig := deepface.DefaultConfig()
		if cfg.DeepFaceURL != "" {
			deepfaceConfig.BaseURL = cfg.DeepFaceURL
		}
		return deepface.NewProvider(deepfaceConfig), nil

	default:
		return nil, fmt.Errorf("unknown provider type: %s (supported: %s, %s, %s)",
			cfg.Provider, ProviderTypeDeepFace, ProviderTypeDlib, ProviderTypeMock)
	}
}
