package logging

import (
	"fmt"
	"maps"
	"os"
	"strings"
)

// Env maps environment variable names for logging configuration.
// Modules holds comma-separated module=level pairs, for example
// "app=debug,api=warn".
type Env struct {
	Level   string
	Format  string
	Modules string
}

// Config holds logging configuration settings. Modules overrides Level for
// the named subsystem loggers (app, api, server).
type Config struct {
	Level   Level            `toml:"level"`
	Format  Format           `toml:"format"`
	Modules map[string]Level `toml:"modules"`
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if err := c.loadEnv(env); err != nil {
		return err
	}
	return c.validate()
}

// Merge applies non-zero values from the overlay configuration. Module
// overrides merge per key.
func (c *Config) Merge(overlay *Config) {
	if overlay.Level != "" {
		c.Level = overlay.Level
	}
	if overlay.Format != "" {
		c.Format = overlay.Format
	}
	if len(overlay.Modules) > 0 {
		if c.Modules == nil {
			c.Modules = make(map[string]Level, len(overlay.Modules))
		}
		maps.Copy(c.Modules, overlay.Modules)
	}
}

// LevelFor returns the level for the named module, falling back to Level.
func (c *Config) LevelFor(module string) Level {
	if l, ok := c.Modules[module]; ok {
		return l
	}
	return c.Level
}

// ForModule returns a copy of the configuration whose Level is the
// module's effective level.
func (c *Config) ForModule(module string) *Config {
	return &Config{
		Level:  c.LevelFor(module),
		Format: c.Format,
	}
}

func (c *Config) loadDefaults() {
	if c.Level == "" {
		c.Level = LevelInfo
	}
	if c.Format == "" {
		c.Format = FormatText
	}
}

func (c *Config) loadEnv(env *Env) error {
	if env == nil {
		return nil
	}
	if v := os.Getenv(env.Level); v != "" {
		c.Level = Level(v)
	}
	if v := os.Getenv(env.Format); v != "" {
		c.Format = Format(v)
	}
	if v := os.Getenv(env.Modules); v != "" {
		modules, err := parseModules(v)
		if err != nil {
			return err
		}
		if c.Modules == nil {
			c.Modules = make(map[string]Level, len(modules))
		}
		maps.Copy(c.Modules, modules)
	}
	return nil
}

func (c *Config) validate() error {
	if err := c.Level.Validate(); err != nil {
		return err
	}
	for name, l := range c.Modules {
		if name == "" {
			return fmt.Errorf("module level override with empty name")
		}
		if err := l.Validate(); err != nil {
			return fmt.Errorf("module %s: %w", name, err)
		}
	}
	return c.Format.Validate()
}

func parseModules(v string) (map[string]Level, error) {
	modules := make(map[string]Level)
	for _, pair := range strings.Split(v, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, level, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid module level %q (want module=level)", pair)
		}
		modules[strings.TrimSpace(name)] = Level(strings.TrimSpace(level))
	}
	return modules, nil
}
