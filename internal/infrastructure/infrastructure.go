// Package infrastructure provides core service initialization for application startup.
// It assembles the dependencies (lifecycle, logging) that modules require.
package infrastructure

import (
	"io"
	"log/slog"
	"os"

	"github.com/JaimeStill/stock-navigator/internal/config"
	"github.com/JaimeStill/stock-navigator/pkg/lifecycle"
	"github.com/JaimeStill/stock-navigator/pkg/logging"
)

// Infrastructure holds the core systems required by all modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger

	logging *logging.Config
	out     io.Writer
	version string
}

// New creates an Infrastructure from the application configuration.
func New(cfg *config.Config) *Infrastructure {
	return NewWriter(cfg, os.Stdout)
}

// NewWriter creates an Infrastructure whose loggers write to w.
func NewWriter(cfg *config.Config, w io.Writer) *Infrastructure {
	return &Infrastructure{
		Lifecycle: lifecycle.New(),
		Logger:    logging.NewWriter(&cfg.Logging, w).With("version", cfg.Version),
		logging:   &cfg.Logging,
		out:       w,
		version:   cfg.Version,
	}
}

// ModuleLogger returns a logger for the named module at the level set by
// its [logging.modules] override, or the service level without one.
func (i *Infrastructure) ModuleLogger(module string) *slog.Logger {
	return logging.NewModule(i.logging, i.out, module).With("version", i.version)
}
