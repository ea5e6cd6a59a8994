package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JaimeStill/stock-navigator/internal/api"
	"github.com/JaimeStill/stock-navigator/internal/config"
	"github.com/JaimeStill/stock-navigator/internal/infrastructure"
	"github.com/JaimeStill/stock-navigator/pkg/middleware"
	"github.com/JaimeStill/stock-navigator/pkg/module"
	"github.com/JaimeStill/stock-navigator/web/app"
)

type Modules struct {
	API *module.Module
	App *app.App

	appLogger *slog.Logger
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	appLogger := infra.ModuleLogger("app")
	appSys, err := app.New(&cfg.Router, appLogger)
	if err != nil {
		return nil, fmt.Errorf("app init failed: %w", err)
	}

	base, apiBase := appSys.Table().Base(), cfg.API.BasePath
	if overlaps(base, apiBase) {
		return nil, fmt.Errorf("app base path %s overlaps api path %s", base, apiBase)
	}

	apiModule, err := api.NewModule(appSys.Table(), &cfg.API, cfg.Version, infra.ModuleLogger("api"))
	if err != nil {
		return nil, fmt.Errorf("api init failed: %w", err)
	}

	return &Modules{
		API:       apiModule,
		App:       appSys,
		appLogger: appLogger,
	}, nil
}

// overlaps reports whether either prefix would shadow the other. A root app
// base is served as the catch-all and never shadows the api.
func overlaps(appBase, apiBase string) bool {
	if appBase == "/" {
		return false
	}
	return appBase == apiBase ||
		strings.HasPrefix(appBase, apiBase+"/") ||
		strings.HasPrefix(apiBase, appBase+"/")
}

// Mount registers the modules on router. An app served from the root is
// registered as the native catch-all since modules require a non-root prefix.
func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)

	if m.App.Table().Base() == "/" {
		mw := middleware.New()
		mw.Use(middleware.RequestID())
		mw.Use(middleware.Logger(m.appLogger))
		router.HandleNative("/", mw.Apply(m.App.Handler()).ServeHTTP)
		return
	}

	appModule := m.App.Module()
	appModule.Use(middleware.RequestID())
	appModule.Use(middleware.Logger(m.appLogger))
	router.Mount(appModule)
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("NOT READY"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("READY"))
	})

	return router
}
