package gallery

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/lookalike-labs/facematch/internal/domain"
	"github.com/lookalike-labs/facematch/internal/provider"
)

// allowedExtensions are the gallery image files considered during
// population; anything else in the directory is ignored.
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".jfif": true,
}

// EmbeddingStore persists extracted gallery embeddings so process restarts
// skip re-extraction. Get returns domain.ErrNotFound on a miss. A nil
// store means every populate extracts from scratch.
type EmbeddingStore interface {
	Get(ctx context.Context, modelID, identifier string) ([]float64, error)
	Upsert(ctx context.Context, modelID, identifier string, embedding []float64) error
	DeleteModel(ctx context.Context, modelID string) error
}

// Cache holds one embedding per gallery image. It is populated by a full
// sweep of the gallery directory and published atomically: readers always
// see either the previous complete snapshot or the new one, never a
// partially built map. Only Populate writes; request handlers only read.
type Cache struct {
	dir      string
	embedder provider.Embedder
	store    EmbeddingStore
	logger   *slog.Logger

	mu    sync.Mutex // serializes Populate
	snap  atomic.Pointer[domain.GallerySnapshot]
	ready atomic.Bool
}

func New(dir string, embedder provider.Embedder, store EmbeddingStore, logger *slog.Logger) *Cache {
	return &Cache{
		dir:      dir,
		embedder: embedder,
		store:    store,
		logger:   logger,
	}
}

// Populate rebuilds the cache from the gallery directory. Each call fully
// replaces the previous contents; it never merges. Per-image failures
// (no face, extractor error) are logged and skipped so one bad gallery
// image never aborts the sweep. A missing directory or nil embedder
// completes the population with an empty snapshot: the cache is then
// ready-but-empty, which callers must treat as EmptyGallery at match time.
//
// With force set, the persistent store is bypassed and the model's rows
// are dropped before re-extraction.
func (c *Cache) Populate(ctx context.Context, force bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.populateLocked(ctx, force)
}

func (c *Cache) populateLocked(ctx context.Context, force bool) error {
	modelID := ""
	if c.embedder != nil {
		modelID = c.embedder.ModelID()
	}

	entries, err := c.buildEntries(ctx, modelID, force)
	if err != nil {
		return err
	}

	c.snap.Store(&domain.GallerySnapshot{ModelID: modelID, Entries: entries})
	c.ready.Store(true)

	c.logger.Info("gallery populated",
		slog.String("dir", c.dir),
		slog.String("model_id", modelID),
		slog.Int("entries", len(entries)),
		slog.Bool("force", force),
	)

	return nil
}

func (c *Cache) buildEntries(ctx context.Context, modelID string, force bool) ([]domain.GalleryEntry, error) {
	if c.embedder == nil {
		c.logger.Warn("no embedder configured, gallery stays empty")
		return nil, nil
	}

	files, err := os.ReadDir(c.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			c.logger.Warn("gallery directory not found", slog.String("dir", c.dir))
			return nil, nil
		}
		return nil, err
	}

	if force && c.store != nil {
		if err := c.store.DeleteModel(ctx, modelID); err != nil {
			c.logger.Warn("failed to clear stored embeddings",
				slog.String("model_id", modelID),
				slog.Any("error", err),
			)
		}
	}

	entries := make([]domain.GalleryEntry, 0, len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if file.IsDir() || !allowedExtensions[strings.ToLower(filepath.Ext(file.Name()))] {
			continue
		}

		name := file.Name()

		if !force {
			if embedding, ok := c.storedEmbedding(ctx, modelID, name); ok {
				entries = append(entries, domain.GalleryEntry{Identifier: name, Embedding: embedding})
				continue
			}
		}

		image, err := os.ReadFile(filepath.Join(c.dir, name))
		if err != nil {
			c.logger.Warn("skipping unreadable gallery image",
				slog.String("identifier", name),
				slog.Any("error", err),
			)
			continue
		}

		embedding, err := c.embedder.Embed(ctx, image)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			// A skipped image is never compared against and never shows up
			// in results.
			if errors.Is(err, domain.ErrNoFaceDetected) {
				c.logger.Info("skipping gallery image without a detectable face",
					slog.String("identifier", name))
			} else {
				c.logger.Warn("skipping gallery image, extraction failed",
					slog.String("identifier", name),
					slog.Any("error", err),
				)
			}
			continue
		}

		entries = append(entries, domain.GalleryEntry{Identifier: name, Embedding: embedding})

		if c.store != nil {
			if err := c.store.Upsert(ctx, modelID, name, embedding); err != nil {
				c.logger.Warn("failed to persist gallery embedding",
					slog.String("identifier", name),
					slog.Any("error", err),
				)
			}
		}
	}

	return entries, nil
}

// storedEmbedding looks the identifier up in the persistent store; any
// failure is treated as a miss.
func (c *Cache) storedEmbedding(ctx context.Context, modelID, identifier string) ([]float64, bool) {
	if c.store == nil {
		return nil, false
	}

	embedding, err := c.store.Get(ctx, modelID, identifier)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			c.logger.Warn("embedding store lookup failed",
				slog.String("identifier", identifier),
				slog.Any("error", err),
			)
		}
		return nil, false
	}
	return embedding, true
}

// EnsureReady lazily populates the cache on first use. Ready checks are
// double-checked around the populate mutex so concurrent first requests
// trigger exactly one sweep.
func (c *Cache) EnsureReady(ctx context.Context) error {
	if c.ready.Load() {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ready.Load() {
		return nil
	}

	return c.populateLocked(ctx, false)
}

// Snapshot returns the current published snapshot for one ranking pass.
// Before the first completed Populate it is empty.
func (c *Cache) Snapshot() domain.GallerySnapshot {
	if snap := c.snap.Load(); snap != nil {
		return *snap
	}
	return domain.GallerySnapshot{}
}

// Ready reports whether at least one Populate has completed, even one that
// cached zero embeddings.
func (c *Cache) Ready() bool {
	return c.ready.Load()
}
