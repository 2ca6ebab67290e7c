package config

import (
	"os"
	"testing"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		wantErr bool
		check   func(*Config) bool
	}{
		{
			name: "loads explicit values",
			envVars: map[string]string{
				"PORT":         "8080",
				"ENV":          "production",
				"GALLERY_DIR":  "/data/gallery",
				"TOP_K":        "10",
				"PROVIDER":     "mock",
				"DATABASE_URL": "postgres://localhost/facematch",
			},
			check: func(c *Config) bool {
				return c.Port == 8080 &&
					c.Environment == "production" &&
					c.GalleryDir == "/data/gallery" &&
					c.TopK == 10 &&
					c.Provider == "mock" &&
					c.DatabaseURL == "postgres://localhost/facematch"
			},
		},
		{
			name:    "uses defaults when vars missing",
			envVars: map[string]string{},
			check: func(c *Config) bool {
				return c.Port == 3000 &&
					c.Environment == "development" &&
					c.GalleryDir == "static/gallery" &&
					c.GalleryURLBase == "/static/gallery" &&
					c.GalleryPreload &&
					c.TopK == 5 &&
					c.Provider == "deepface" &&
					c.DeepFaceURL == "http://localhost:5005" &&
					c.DatabaseURL == ""
			},
		},
		{
			name: "disables preload",
			envVars: map[string]string{
				"GALLERY_PRELOAD": "false",
			},
			check: func(c *Config) bool {
				return !c.GalleryPreload
			},
		},
		{
			name: "invalid port fails",
			envVars: map[string]string{
				"PORT": "not-a-number",
			},
			wantErr: true,
		},
	}

	configVars := []string{
		"PORT", "ENV", "GALLERY_DIR", "GALLERY_URL_BASE", "GALLERY_PRELOAD",
		"TOP_K", "PROVIDER", "DEEPFACE_URL", "DLIB_MODELS_DIR", "DATABASE_URL",
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range configVars {
				os.Unsetenv(key)
			}
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if tt.check != nil && !tt.check(cfg) {
				t.Errorf("Load() = %+v, failed check", cfg)
			}
		})
	}
}

func TestEnvironmentHelpers(t *testing.T) {
	dev := &Config{Environment: "development"}
	if !dev.IsDevelopment() || dev.IsProduction() {
		t.Error("development environment misclassified")
	}

	prod := &Config{Environment: "production"}
	if !prod.IsProduction() || prod.IsDevelopment() {
		t.Error("production environment misclassified")
	}
}
