package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lookalike-labs/facematch/internal/domain"
	"github.com/lookalike-labs/facematch/internal/match"
	"github.com/lookalike-labs/facematch/internal/provider"
)

const defaultTopK = 5

// GalleryCache is the read surface of the gallery the service consumes.
type GalleryCache interface {
	EnsureReady(ctx context.Context) error
	Snapshot() domain.GallerySnapshot
	Populate(ctx context.Context, force bool) error
}

type MatchService struct {
	gallery  GalleryCache
	embedder provider.Embedder
	ranker   *match.Ranker
	urlBase  string
	topK     int
}

func NewMatchService(gallery GalleryCache, embedder provider.Embedder, ranker *match.Ranker, galleryURLBase string) *MatchService {
	return &MatchService{
		gallery:  gallery,
		embedder: embedder,
		ranker:   ranker,
		urlBase:  strings.TrimSuffix(galleryURLBase, "/"),
		topK:     defaultTopK,
	}
}

func (s *MatchService) WithTopK(topK int) *MatchService {
	if topK > 0 {
		s.topK = topK
	}
	return s
}

// Match embeds the uploaded photo, ranks it against the full gallery and
// returns the top-K candidates. topK <= 0 selects the configured default.
func (s *MatchService) Match(ctx context.Context, imageBytes []byte, topK int) (*domain.MatchResult, error) {
	start := time.Now()

	if err := s.gallery.EnsureReady(ctx); err != nil {
		return nil, domain.ErrInternal.WithError(err)
	}

	snapshot := s.gallery.Snapshot()
	if len(snapshot.Entries) == 0 {
		// Ready-but-empty is a deployment problem, not "zero matches found".
		return nil, domain.ErrEmptyGallery
	}

	query, err := s.embedder.Embed(ctx, imageBytes)
	if err != nil {
		var appErr *domain.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, domain.ErrExtractorUnavailable.WithError(err)
	}

	candidates, err := s.ranker.Rank(snapshot.ModelID, query, snapshot.Entries)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, domain.ErrInternal.WithError(errors.New("every gallery candidate was filtered out"))
	}

	if topK <= 0 {
		topK = s.topK
	}
	if topK > len(candidates) {
		topK = len(candidates)
	}

	matches := make([]domain.Match, 0, topK)
	for _, candidate := range candidates[:topK] {
		matches = append(matches, domain.Match{
			Identifier:  candidate.Identifier,
			DisplayName: displayName(candidate.Identifier),
			ImageURL:    s.urlBase + "/" + candidate.Identifier,
			Distance:    candidate.Distance,
			Similarity:  candidate.Similarity,
		})
	}

	return &domain.MatchResult{
		SearchID:     uuid.New(),
		Matches:      matches,
		TotalGallery: len(snapshot.Entries),
		LatencyMs:    time.Since(start).Milliseconds(),
	}, nil
}

// ReloadGallery rebuilds the gallery cache; force bypasses and resets the
// persistent embedding store.
func (s *MatchService) ReloadGallery(ctx context.Context, force bool) error {
	if err := s.gallery.Populate(ctx, force); err != nil {
		return domain.ErrInternal.WithError(err)
	}
	return nil
}
