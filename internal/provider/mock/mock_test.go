package mock

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/lookalike-labs/facematch/internal/domain"
)

func TestProvider_Embed(t *testing.T) {
	p := New()
	ctx := context.Background()

	tests := []struct {
		name    string
		image   []byte
		wantErr bool
	}{
		{
			name:    "valid image",
			image:   make([]byte, 5000),
			wantErr: false,
		},
		{
			name:    "image too small",
			image:   make([]byte, 100),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			embedding, err := p.Embed(ctx, tt.image)
			if (err != nil) != tt.wantErr {
				t.Errorf("Embed() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				if !errors.Is(err, domain.ErrNoFaceDetected) {
					t.Errorf("Embed() error = %v, want ErrNoFaceDetected", err)
				}
				return
			}
			if len(embedding) != embeddingDimension {
				t.Errorf("Embed() got %d dimensions, want %d", len(embedding), embeddingDimension)
			}
		})
	}
}

func TestProvider_EmbedDeterministic(t *testing.T) {
	p := New()
	ctx := context.Background()

	image := make([]byte, 5000)
	for i := range image {
		image[i] = byte(i % 256)
	}

	first, err := p.Embed(ctx, image)
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}

	second, err := p.Embed(ctx, image)
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("Embed() not deterministic at index %d: %v != %v", i, first[i], second[i])
		}
	}
}

func TestProvider_EmbedNormalized(t *testing.T) {
	p := New()

	embedding, err := p.Embed(context.Background(), make([]byte, 5000))
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}

	var norm float64
	for _, v := range embedding {
		norm += v * v
	}
	norm = math.Sqrt(norm)

	if math.Abs(norm-1.0) > 1e-9 {
		t.Errorf("Embed() norm = %v, want 1.0", norm)
	}
}

func TestProvider_EmbedDifferentImages(t *testing.T) {
	p := New()
	ctx := context.Background()

	a := make([]byte, 5000)
	b := make([]byte, 5000)
	b[0] = 1

	embA, err := p.Embed(ctx, a)
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	embB, err := p.Embed(ctx, b)
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}

	same := true
	for i := range embA {
		if embA[i] != embB[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("Embed() produced identical embeddings for different images")
	}
}

func TestProvider_ModelID(t *testing.T) {
	if got := New().ModelID(); got != "mock" {
		t.Errorf("ModelID() = %q, want %q", got, "mock")
	}
}
