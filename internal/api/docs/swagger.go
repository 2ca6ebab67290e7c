package docs

import (
	"github.com/go-swagno/swagno"
	"github.com/go-swagno/swagno/components/endpoint"
	"github.com/go-swagno/swagno/components/http/response"
	"github.com/go-swagno/swagno/components/mime"
	"github.com/go-swagno/swagno/components/parameter"
)

// MatchEntryData represents one ranked gallery face
type MatchEntryData struct {
	Name       string  `json:"name" example:"Alex P."`
	ImageURL   string  `json:"image_url" example:"/static/gallery/face_012.jpg"`
	Identifier string  `json:"identifier" example:"face_012.jpg"`
	Similarity int     `json:"similarity" example:"87"`
	Distance   float64 `json:"distance" example:"0.34"`
}

// MatchResponseData represents the response for a match request
type MatchResponseData struct {
	SearchID     string           `json:"search_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Matches      []MatchEntryData `json:"matches"`
	TotalGallery int              `json:"total_gallery" example:"24"`
	LatencyMs    int64            `json:"latency_ms" example:"312"`
}

// ReloadResponseData represents the response for a gallery reload
type ReloadResponseData struct {
	Status string `json:"status" example:"reloaded"`
	Forced bool   `json:"forced" example:"false"`
}

// HealthResponseData represents the health/readiness response
type HealthResponseData struct {
	Status  string `json:"status" example:"ok"`
	Version string `json:"version,omitempty" example:"0.1.0"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Code    string `json:"code" example:"VALIDATION_FAILED"`
	Message string `json:"message" example:"Request validation failed"`
}

// NewSwagger creates and configures the Swagger documentation
func NewSwagger() *swagno.Swagger {
	sw := swagno.New(swagno.Config{
		Title:       "FaceMatch API",
		Version:     "v0.1.0",
		Description: "Face match demo: compares an uploaded photo against a fixed gallery of preloaded faces",
		Host:        "localhost:3000",
	})

	endpoints := []*endpoint.EndPoint{
		// POST /v1/match - Match uploaded photo
		endpoint.New(
			endpoint.POST,
			"/v1/match",
			endpoint.WithTags("Match"),
			endpoint.WithSummary("Match an uploaded photo against the gallery"),
			endpoint.WithDescription("Embeds the uploaded face and returns the top-K gallery faces ordered by similarity. The optional top_k field (1-50, default 5) truncates the ranked list."),
			endpoint.WithConsume([]mime.MIME{mime.MIME("multipart/form-data")}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(MatchResponseData{}, "200", "Match completed successfully"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "Request validation failed"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "NO_FACE_DETECTED", Message: "No face detected in the image"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "EMPTY_GALLERY", Message: "No gallery faces available for matching"}, "503", "Service Unavailable"),
				response.New(ErrorResponse{Code: "EXTRACTOR_UNAVAILABLE", Message: "Could not reach the face analysis service"}, "503", "Service Unavailable"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// POST /v1/gallery/reload - Rebuild gallery cache
		endpoint.New(
			endpoint.POST,
			"/v1/gallery/reload",
			endpoint.WithTags("Gallery"),
			endpoint.WithSummary("Rebuild the gallery embedding cache"),
			endpoint.WithDescription("Re-sweeps the gallery directory. With force=true the persistent embedding store is reset and every image is re-extracted."),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.BoolParam("force", parameter.Query, parameter.WithDescription("Reset the persistent embedding store and re-extract every image (default: false)")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(ReloadResponseData{}, "200", "Gallery reloaded"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// GET /health
		endpoint.New(
			endpoint.GET,
			"/health",
			endpoint.WithTags("Health"),
			endpoint.WithSummary("Liveness check"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(HealthResponseData{}, "200", "Service is up"),
			}),
		),

		// GET /ready
		endpoint.New(
			endpoint.GET,
			"/ready",
			endpoint.WithTags("Health"),
			endpoint.WithSummary("Readiness check"),
			endpoint.WithDescription("Returns 503 until the gallery cache finished its first population sweep."),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(HealthResponseData{}, "200", "Gallery cache populated"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(HealthResponseData{}, "503", "Gallery still loading"),
			}),
		),
	}

	sw.AddEndpoints(endpoints)

	return sw
}
