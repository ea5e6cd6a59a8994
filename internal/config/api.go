package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/JaimeStill/stock-navigator/pkg/middleware"
	"github.com/JaimeStill/stock-navigator/pkg/openapi"
)

// EnvAPIBasePath overrides the prefix the lookup API is mounted under.
const EnvAPIBasePath = "API_BASE_PATH"

var corsEnv = &middleware.CORSEnv{
	Enabled:          "API_CORS_ENABLED",
	Origins:          "API_CORS_ORIGINS",
	AllowedMethods:   "API_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "API_CORS_ALLOWED_HEADERS",
	AllowCredentials: "API_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "API_CORS_MAX_AGE",
}

var openAPIEnv = &openapi.ConfigEnv{
	Title:       "API_OPENAPI_TITLE",
	Description: "API_OPENAPI_DESCRIPTION",
}

// APIConfig configures the JSON lookup API.
type APIConfig struct {
	BasePath string                `toml:"base_path"`
	CORS     middleware.CORSConfig `toml:"cors"`
	OpenAPI  openapi.Config        `toml:"openapi"`
}

// Finalize applies defaults, loads environment overrides, and validates the
// API configuration.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.OpenAPI.Finalize(openAPIEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	c.CORS.Merge(&overlay.CORS)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.OpenAPI.Title == "" {
		c.OpenAPI.Title = "Stock Navigator API"
	}
	if c.OpenAPI.Description == "" {
		c.OpenAPI.Description = "Read-only lookup over the stock navigator route table."
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv(EnvAPIBasePath); v != "" {
		c.BasePath = v
	}
}

func (c *APIConfig) validate() error {
	if len(c.BasePath) > 1 {
		c.BasePath = strings.TrimRight(c.BasePath, "/")
	}
	switch {
	case !strings.HasPrefix(c.BasePath, "/"):
		return fmt.Errorf("invalid base_path %q: must start with /", c.BasePath)
	case c.BasePath == "/" || c.BasePath == "":
		return fmt.Errorf("invalid base_path %q: the api cannot be mounted at the root", c.BasePath)
	case strings.Contains(c.BasePath, "//"):
		return fmt.Errorf("invalid base_path %q: empty segment", c.BasePath)
	}
	return nil
}
