package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Server
	Port        int    `envconfig:"PORT" default:"3000"`
	Environment string `envconfig:"ENV" default:"development"`

	// Gallery
	GalleryDir     string `envconfig:"GALLERY_DIR" default:"static/gallery"`
	GalleryURLBase string `envconfig:"GALLERY_URL_BASE" default:"/static/gallery"`
	GalleryPreload bool   `envconfig:"GALLERY_PRELOAD" default:"true"`
	TopK           int    `envconfig:"TOP_K" default:"5"`

	// Provider
	Provider      string `envconfig:"PROVIDER" default:"deepface"`
	DeepFaceURL   string `envconfig:"DEEPFACE_URL" default:"http://localhost:5005"`
	DlibModelsDir string `envconfig:"DLIB_MODELS_DIR" default:"models"`

	// Database (optional; empty disables the persistent embedding store)
	DatabaseURL string `envconfig:"DATABASE_URL"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
