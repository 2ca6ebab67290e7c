package handler

import (
	"github.com/gofiber/fiber/v2"
)

// ReadinessChecker reports whether the gallery cache finished its first
// population.
type ReadinessChecker interface {
	Ready() bool
}

type HealthHandler struct {
	gallery ReadinessChecker
}

func NewHealthHandler(gallery ReadinessChecker) *HealthHandler {
	return &HealthHandler{gallery: gallery}
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status:  "ok",
		Version: "0.1.0",
	})
}

// Ready reports 503 until the gallery cache has completed one population
// sweep. An empty-but-populated gallery still counts as ready; matching
// then fails per request with EMPTY_GALLERY.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	if h.gallery != nil && !h.gallery.Ready() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(HealthResponse{
			Status: "loading gallery",
		})
	}
	return c.JSON(HealthResponse{
		Status: "ready",
	})
}
