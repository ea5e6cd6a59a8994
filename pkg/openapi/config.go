package openapi

import (
	"errors"
	"os"
)

// ConfigEnv maps environment variable names for document metadata.
type ConfigEnv struct {
	Title       string
	Description string
}

// Config holds the metadata written into a generated document's info block.
type Config struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
}

// Finalize loads environment overrides and validates the configuration.
func (c *Config) Finalize(env *ConfigEnv) error {
	c.loadEnv(env)
	if c.Title == "" {
		return errors.New("title required")
	}
	return nil
}

// Merge applies non-zero values from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
	if overlay.Description != "" {
		c.Description = overlay.Description
	}
}

// NewSpec creates an empty document carrying the configured title and
// description.
func (c *Config) NewSpec(version string) *Spec {
	spec := NewSpec(c.Title, version)
	spec.SetDescription(c.Description)
	return spec
}

func (c *Config) loadEnv(env *ConfigEnv) {
	if env == nil {
		return
	}
	if v := os.Getenv(env.Title); v != "" {
		c.Title = v
	}
	if v := os.Getenv(env.Description); v != "" {
		c.Description = v
	}
}
