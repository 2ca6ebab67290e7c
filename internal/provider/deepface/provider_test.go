package deepface

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lookalike-labs/facematch/internal/domain"
)

func newTestProvider(baseURL string) *Provider {
	return NewProvider(testConfig(baseURL))
}

func TestProviderEmbedSingleFace(t *testing.T) {
	want := []float64{0.1, 0.2, 0.3}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(RepresentResponse{
			Results: []RepresentResult{
				{Embedding: want, FacialArea: FacialArea{W: 100, H: 120}},
			},
		})
	}))
	defer server.Close()

	provider := newTestProvider(server.URL)
	embedding, err := provider.Embed(context.Background(), []byte("image bytes"))

	require.NoError(t, err)
	assert.Equal(t, want, embedding)
}

func TestProviderEmbedPicksLargestFace(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(RepresentResponse{
			Results: []RepresentResult{
				{Embedding: []float64{1}, FacialArea: FacialArea{W: 50, H: 50}},
				{Embedding: []float64{2}, FacialArea: FacialArea{W: 200, H: 180}},
				{Embedding: []float64{3}, FacialArea: FacialArea{W: 90, H: 90}},
			},
		})
	}))
	defer server.Close()

	provider := newTestProvider(server.URL)
	embedding, err := provider.Embed(context.Background(), []byte("group photo"))

	require.NoError(t, err)
	assert.Equal(t, []float64{2}, embedding)
}

func TestProviderEmbedNoFace(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(RepresentResponse{Results: []RepresentResult{}})
	}))
	defer server.Close()

	provider := newTestProvider(server.URL)
	_, err := provider.Embed(context.Background(), []byte("landscape"))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoFaceDetected)
}

func TestProviderEmbedServiceDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	server.Close() // connection refused from here on

	provider := newTestProvider(server.URL)
	_, err := provider.Embed(context.Background(), []byte("image bytes"))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtractorUnavailable)
}

func TestProviderModelID(t *testing.T) {
	provider := NewProvider(Config{BaseURL: "http://localhost:5005", Model: "Facenet512"})
	assert.Equal(t, "facenet512", provider.ModelID())

	defaulted := NewProvider(Config{BaseURL: "http://localhost:5005"})
	assert.Equal(t, "facenet512", defaulted.ModelID())
}
