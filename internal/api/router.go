package api

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	swagger "github.com/go-swagno/swagno-fiber/swagger"
	"github.com/lookalike-labs/facematch/internal/api/docs"
	"github.com/lookalike-labs/facematch/internal/api/handler"
	"github.com/lookalike-labs/facematch/internal/api/middleware"
)

type Dependencies struct {
	MatchService handler.MatchService
	Gallery      handler.ReadinessChecker
	GalleryDir   string
	GalleryPath  string
}

type Router struct {
	app    *fiber.App
	logger *slog.Logger
	deps   *Dependencies
}

func NewRouter(logger *slog.Logger, deps *Dependencies) *Router {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(logger),
		AppName:      "FaceMatch API",
	})

	return &Router{
		app:    app,
		logger: logger,
		deps:   deps,
	}
}

func (r *Router) Setup() {
	// Global middlewares
	r.app.Use(requestid.New())
	r.app.Use(middleware.Recover(r.logger))
	r.app.Use(middleware.Logger(r.logger))
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Swagger documentation
	sw := docs.NewSwagger()
	swagger.SwaggerHandler(r.app, sw.MustToJson())

	// Health check endpoints
	var gallery handler.ReadinessChecker
	if r.deps != nil {
		gallery = r.deps.Gallery
	}
	healthHandler := handler.NewHealthHandler(gallery)
	r.app.Get("/health", healthHandler.Health)
	r.app.Get("/ready", healthHandler.Ready)

	// Only configure the match routes if dependencies were provided
	if r.deps != nil {
		// The gallery images themselves, for match_image_url links
		if r.deps.GalleryDir != "" && r.deps.GalleryPath != "" {
			r.app.Static(r.deps.GalleryPath, r.deps.GalleryDir)
		}

		matchHandler := handler.NewMatchHandler(r.deps.MatchService, r.logger)

		v1 := r.app.Group("/v1")
		v1.Post("/match", matchHandler.Analyze)
		v1.Post("/gallery/reload", matchHandler.ReloadGallery)
	}
}

func (r *Router) App() *fiber.App {
	return r.app
}

func (r *Router) Listen(addr string) error {
	return r.app.Listen(addr)
}

func (r *Router) Shutdown() error {
	return r.app.Shutdown()
}
