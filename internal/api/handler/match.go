package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/lookalike-labs/facematch/internal/domain"
)

const (
	maxImageSize = 10 * 1024 * 1024 // 10MB
	maxTopK      = 50
)

var validImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// MatchService interface for the service
type MatchService interface {
	Match(ctx context.Context, imageBytes []byte, topK int) (*domain.MatchResult, error)
	ReloadGallery(ctx context.Context, force bool) error
}

// MatchHandler handles face match requests
type MatchHandler struct {
	service MatchService
	logger  *slog.Logger
}

func NewMatchHandler(service MatchService, logger *slog.Logger) *MatchHandler {
	return &MatchHandler{
		service: service,
		logger:  logger,
	}
}

// MatchEntry is one ranked gallery face in the response
type MatchEntry struct {
	Name       string  `json:"name"`
	ImageURL   string  `json:"image_url"`
	Identifier string  `json:"identifier"`
	Similarity int     `json:"similarity"`
	Distance   float64 `json:"distance"`
}

// MatchResponse response for the match endpoint
type MatchResponse struct {
	SearchID     string       `json:"search_id"`
	Matches      []MatchEntry `json:"matches"`
	TotalGallery int          `json:"total_gallery"`
	LatencyMs    int64        `json:"latency_ms"`
}

// ReloadResponse response for the gallery reload endpoint
type ReloadResponse struct {
	Status string `json:"status"`
	Forced bool   `json:"forced"`
}

// Analyze POST /v1/match - match an uploaded photo against the gallery
func (h *MatchHandler) Analyze(c *fiber.Ctx) error {
	topK, err := extractTopK(c)
	if err != nil {
		return err
	}

	imageBytes, err := extractAndValidateImage(c)
	if err != nil {
		return fmt.Errorf("match face: %w", err)
	}

	result, err := h.service.Match(c.Context(), imageBytes, topK)
	if err != nil {
		return err
	}

	matches := make([]MatchEntry, 0, len(result.Matches))
	for _, m := range result.Matches {
		matches = append(matches, MatchEntry{
			Name:       m.DisplayName,
			ImageURL:   m.ImageURL,
			Identifier: m.Identifier,
			Similarity: m.Similarity,
			Distance:   m.Distance,
		})
	}

	return c.JSON(MatchResponse{
		SearchID:     result.SearchID.String(),
		Matches:      matches,
		TotalGallery: result.TotalGallery,
		LatencyMs:    result.LatencyMs,
	})
}

// ReloadGallery POST /v1/gallery/reload - rebuild the gallery cache.
// ?force=true bypasses and resets the persistent embedding store.
func (h *MatchHandler) ReloadGallery(c *fiber.Ctx) error {
	force := c.QueryBool("force")

	if err := h.service.ReloadGallery(c.Context(), force); err != nil {
		return err
	}

	h.logger.Info("gallery reloaded", slog.Bool("force", force))

	return c.JSON(ReloadResponse{
		Status: "reloaded",
		Forced: force,
	})
}

// extractTopK reads top_k from the form or query string; 0 means "use the
// service default".
func extractTopK(c *fiber.Ctx) (int, error) {
	raw := strings.TrimSpace(c.FormValue("top_k"))
	if raw == "" {
		raw = strings.TrimSpace(c.Query("top_k"))
	}
	if raw == "" {
		return 0, nil
	}

	topK, err := strconv.Atoi(raw)
	if err != nil || topK < 1 || topK > maxTopK {
		return 0, domain.ErrValidationFailed.WithError(fmt.Errorf("top_k must be an integer between 1 and %d", maxTopK))
	}
	return topK, nil
}

// extractAndValidateImage extracts and validates the image from the form.
// The legacy field name "user_image" is still accepted.
func extractAndValidateImage(c *fiber.Ctx) ([]byte, error) {
	file, err := c.FormFile("image")
	if err != nil {
		file, err = c.FormFile("user_image")
	}
	if err != nil {
		return nil, domain.ErrValidationFailed.WithError(errors.New("image file is required"))
	}

	if file.Size == 0 || file.Size > maxImageSize {
		return nil, domain.ErrInvalidImage.WithError(nil)
	}

	contentType := file.Header.Get("Content-Type")
	if !validImageTypes[contentType] {
		return nil, domain.ErrInvalidImage.WithError(nil)
	}

	f, err := file.Open()
	if err != nil {
		return nil, domain.ErrInvalidImage.WithError(err)
	}
	defer func() {
		_ = f.Close()
	}()

	imageBytes, err := io.ReadAll(f)
	if err != nil {
		return nil, domain.ErrInvalidImage.WithError(err)
	}

	return imageBytes, nil
}
