// Package api exposes the navigation table as a read-only JSON API.
package api

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/stock-navigator/internal/config"
	"github.com/JaimeStill/stock-navigator/pkg/middleware"
	"github.com/JaimeStill/stock-navigator/pkg/module"
	"github.com/JaimeStill/stock-navigator/pkg/navigation"
	"github.com/JaimeStill/stock-navigator/pkg/openapi"
	"github.com/JaimeStill/stock-navigator/pkg/routes"
)

// NewModule creates the API module serving table under cfg.BasePath. The
// OpenAPI document is rendered once here and served from /openapi.json.
// Cross-origin requests are answered according to cfg.CORS so a separately
// hosted front-end can query the table.
func NewModule[V any](table *navigation.Table[V], cfg *config.APIConfig, version string, logger *slog.Logger) (*module.Module, error) {
	handler := NewHandler(table, logger)
	group := handler.Routes()

	spec := cfg.OpenAPI.NewSpec(version)
	spec.AddServer(cfg.BasePath)
	addSchemas(spec)
	routes.Document(spec, group)

	specBytes, err := openapi.MarshalJSON(spec)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	routes.Register(mux, group)
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(specBytes))

	m := module.New(cfg.BasePath, mux)
	m.Use(middleware.CORS(&cfg.CORS))
	m.Use(middleware.RequestID())
	m.Use(middleware.Logger(logger))

	return m, nil
}
