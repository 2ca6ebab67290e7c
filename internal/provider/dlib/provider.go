package dlib

import (
	"context"
	"fmt"

	goface "github.com/Kagami/go-face"

	"github.com/lookalike-labs/facematch/internal/domain"
	"github.com/lookalike-labs/facematch/internal/provider"
)

// Provider implements provider.Embedder with local dlib ResNet descriptors
// (128 dimensions, Euclidean family). The recognizer needs the dlib model
// files (shape_predictor_5_face_landmarks.dat, dlib_face_recognition
// _resnet_model_v1.dat) in modelsDir, and only accepts JPEG input.
type Provider struct {
	rec *goface.Recognizer
}

func NewProvider(modelsDir string) (*Provider, error) {
	rec, err := goface.NewRecognizer(modelsDir)
	if err != nil {
		return nil, fmt.Errorf("load dlib models from %s: %w", modelsDir, err)
	}
	return &Provider{rec: rec}, nil
}

// Embed extracts the descriptor of the largest face in the image. The
// recognizer has no cancellation support, so the context is only checked
// up front.
func (p *Provider) Embed(ctx context.Context, image []byte) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	faces, err := p.rec.Recognize(image)
	if err != nil {
		return nil, domain.ErrInvalidImage.WithError(err)
	}

	if len(faces) == 0 {
		return nil, domain.ErrNoFaceDetected
	}

	best := faces[0]
	for _, f := range faces[1:] {
		if f.Rectangle.Dx()*f.Rectangle.Dy() > best.Rectangle.Dx()*best.Rectangle.Dy() {
			best = f
		}
	}

	embedding := make([]float64, len(best.Descriptor))
	for i, v := range best.Descriptor {
		embedding[i] = float64(v)
	}

	return embedding, nil
}

func (p *Provider) ModelID() string {
	return "dlib-resnet"
}

// Close releases the dlib recognizer.
func (p *Provider) Close() {
	p.rec.Close()
}

var _ provider.Embedder = (*Provider)(nil)
