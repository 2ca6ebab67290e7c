package deepface

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/lookalike-labs/facematch/internal/domain"
	"github.com/lookalike-labs/facematch/internal/provider"
)

// Provider implements provider.Embedder against a DeepFace API sidecar.
type Provider struct {
	client  *Client
	modelID string
}

// NewProvider creates a new DeepFace provider
func NewProvider(config Config) *Provider {
	if config.Model == "" {
		config.Model = DefaultConfig().Model
	}
	return &Provider{
		client:  NewClient(config),
		modelID: strings.ToLower(config.Model),
	}
}

// Embed extracts a face embedding via POST /represent. When DeepFace finds
// several faces, the one covering the largest area wins.
func (p *Provider) Embed(ctx context.Context, image []byte) ([]float64, error) {
	imageBase64 := base64.StdEncoding.EncodeToString(image)

	resp, err := p.client.Represent(ctx, imageBase64)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, domain.ErrExtractorUnavailable.WithError(err)
	}

	if len(resp.Results) == 0 {
		return nil, domain.ErrNoFaceDetected
	}

	best := resp.Results[0]
	for _, result := range resp.Results[1:] {
		if result.FacialArea.W*result.FacialArea.H > best.FacialArea.W*best.FacialArea.H {
			best = result
		}
	}

	return best.Embedding, nil
}

func (p *Provider) ModelID() string {
	return p.modelID
}

// Ensure Provider implements provider.Embedder
var _ provider.Embedder = (*Provider)(nil)
