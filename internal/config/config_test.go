package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/JaimeStill/stock-navigator/internal/config"
	"github.com/JaimeStill/stock-navigator/pkg/logging"
	"github.com/JaimeStill/stock-navigator/pkg/navigation"
)

func chdirRoot(t *testing.T) {
	t.Helper()
	oldDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	t.Cleanup(func() { os.Chdir(oldDir) })

	if err := os.Chdir("../../"); err != nil {
		t.Fatalf("Failed to change to repo root: %v", err)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestLoad_BaseConfig(t *testing.T) {
	chdirRoot(t)
	t.Setenv(config.EnvServiceEnv, "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Router.History != navigation.HistoryWeb {
		t.Errorf("Router.History = %q, want %q", cfg.Router.History, navigation.HistoryWeb)
	}
	if len(cfg.Router.Routes) != 8 {
		t.Errorf("len(Router.Routes) = %d, want 8", len(cfg.Router.Routes))
	}
	if cfg.Server.MaxHeaderBytes() <= 0 {
		t.Error("Server.MaxHeaderBytes not parsed")
	}
	if cfg.API.BasePath != "/api" {
		t.Errorf("API.BasePath = %q, want %q", cfg.API.BasePath, "/api")
	}
	if cfg.API.OpenAPI.Title != "Stock Navigator API" {
		t.Errorf("API.OpenAPI.Title = %q", cfg.API.OpenAPI.Title)
	}
	if cfg.Logging.LevelFor("app") != logging.LevelInfo {
		t.Errorf("Logging.LevelFor(app) = %q", cfg.Logging.LevelFor("app"))
	}
}

func TestLoad_WithOverlay(t *testing.T) {
	chdirRoot(t)

	overlay := `shutdown_timeout = "60s"

[server]
port = 9090

[router]
base_path = "/stock/"

[logging.modules]
app = "debug"

[api]
base_path = "/lookup/"

[api.cors]
enabled = true
origins = ["https://stock.example"]
`
	if err := os.WriteFile("config.overlaytest.toml", []byte(overlay), 0644); err != nil {
		t.Fatalf("Failed to write test overlay: %v", err)
	}
	t.Cleanup(func() { os.Remove("config.overlaytest.toml") })

	t.Setenv(config.EnvServiceEnv, "overlaytest")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() with overlay failed: %v", err)
	}

	if cfg.ShutdownTimeoutDuration() != 60*time.Second {
		t.Errorf("ShutdownTimeout = %q, want %q", cfg.ShutdownTimeout, "60s")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Router.BasePath != "/stock" {
		t.Errorf("Router.BasePath = %q, want %q", cfg.Router.BasePath, "/stock")
	}
	if cfg.API.BasePath != "/lookup" {
		t.Errorf("API.BasePath = %q, want %q", cfg.API.BasePath, "/lookup")
	}
	if !cfg.API.CORS.Enabled || len(cfg.API.CORS.Origins) != 1 || cfg.API.CORS.Origins[0] != "https://stock.example" {
		t.Errorf("API.CORS = %+v", cfg.API.CORS)
	}
	if cfg.API.OpenAPI.Title != "Stock Navigator API" {
		t.Errorf("API.OpenAPI.Title = %q, want base value", cfg.API.OpenAPI.Title)
	}
	if cfg.Logging.LevelFor("app") != logging.LevelDebug {
		t.Errorf("Logging.LevelFor(app) = %q, want %q", cfg.Logging.LevelFor("app"), logging.LevelDebug)
	}
	if cfg.Env() != "overlaytest" {
		t.Errorf("Env() = %q", cfg.Env())
	}
}

func TestFinalize_Defaults(t *testing.T) {
	cfg := &config.Config{}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.ShutdownTimeoutDuration() != 30*time.Second {
		t.Errorf("ShutdownTimeout = %q", cfg.ShutdownTimeout)
	}
	if cfg.Server.Addr() != "0.0.0.0:8080" {
		t.Errorf("Addr() = %q", cfg.Server.Addr())
	}
	if cfg.Server.ReadTimeoutDuration() != 30*time.Second || cfg.Server.WriteTimeoutDuration() != 30*time.Second {
		t.Errorf("timeouts = %s/%s", cfg.Server.ReadTimeout, cfg.Server.WriteTimeout)
	}
	if cfg.Server.MaxHeaderBytes() != 1000000 {
		t.Errorf("MaxHeaderBytes() = %d, want 1000000", cfg.Server.MaxHeaderBytes())
	}
	if cfg.Logging.Level == "" {
		t.Error("Logging.Level not set to default")
	}
	if cfg.Router.BasePath != "/app" {
		t.Errorf("Router.BasePath = %q, want %q", cfg.Router.BasePath, "/app")
	}
	if cfg.API.BasePath != "/api" {
		t.Errorf("API.BasePath = %q, want %q", cfg.API.BasePath, "/api")
	}
	if cfg.API.CORS.Enabled || cfg.API.CORS.MaxAge != 3600 {
		t.Errorf("API.CORS = %+v", cfg.API.CORS)
	}
	if cfg.API.OpenAPI.Title == "" {
		t.Error("API.OpenAPI.Title not set to default")
	}

	table, err := cfg.Router.Table()
	if err != nil {
		t.Fatalf("Table() error = %v", err)
	}
	href, err := table.Href("StockItemView", nil)
	if err != nil || href != "/app/stockitem" {
		t.Errorf("Href(StockItemView) = %q, %v", href, err)
	}
}

func TestFinalize_EnvOverrides(t *testing.T) {
	t.Setenv(config.EnvRouterBasePath, "/portfolio/")
	t.Setenv(config.EnvRouterHistory, "memory")
	t.Setenv(config.EnvServerPort, "9191")
	t.Setenv(config.EnvServerMaxHeaderSize, "64kB")
	t.Setenv(config.EnvAPIBasePath, "/lookup")
	t.Setenv("API_CORS_ENABLED", "true")
	t.Setenv("API_CORS_ORIGINS", "http://localhost:5173")
	t.Setenv("API_OPENAPI_TITLE", "Route Lookup")
	t.Setenv("LOGGING_MODULES", "api=debug")

	cfg := &config.Config{}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.Router.BasePath != "/portfolio" {
		t.Errorf("Router.BasePath = %q, want %q", cfg.Router.BasePath, "/portfolio")
	}
	if cfg.Router.History != navigation.HistoryMemory {
		t.Errorf("Router.History = %q", cfg.Router.History)
	}
	if cfg.Server.Port != 9191 {
		t.Errorf("Server.Port = %d", cfg.Server.Port)
	}
	if cfg.Server.MaxHeaderBytes() != 64000 {
		t.Errorf("MaxHeaderBytes() = %d, want 64000", cfg.Server.MaxHeaderBytes())
	}
	if cfg.API.BasePath != "/lookup" {
		t.Errorf("API.BasePath = %q", cfg.API.BasePath)
	}
	if !cfg.API.CORS.Enabled || len(cfg.API.CORS.Origins) != 1 {
		t.Errorf("API.CORS = %+v", cfg.API.CORS)
	}
	if cfg.API.OpenAPI.Title != "Route Lookup" {
		t.Errorf("API.OpenAPI.Title = %q", cfg.API.OpenAPI.Title)
	}
	if cfg.Logging.LevelFor("api") != logging.LevelDebug {
		t.Errorf("Logging.LevelFor(api) = %q", cfg.Logging.LevelFor("api"))
	}
}

func TestFinalize_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
	}{
		{"shutdown timeout", config.Config{ShutdownTimeout: "soon"}},
		{"port", config.Config{Server: config.ServerConfig{Port: 70000}}},
		{"read timeout", config.Config{Server: config.ServerConfig{ReadTimeout: "x"}}},
		{"header size", config.Config{Server: config.ServerConfig{MaxHeaderSize: "lots"}}},
		{"history", config.Config{Router: config.RouterConfig{History: "hash"}}},
		{"base path", config.Config{Router: config.RouterConfig{BasePath: "/app?x=1"}}},
		{"routes file", config.Config{Router: config.RouterConfig{RoutesFile: "missing.yaml"}}},
		{"api base path relative", config.Config{API: config.APIConfig{BasePath: "api"}}},
		{"api base path root", config.Config{API: config.APIConfig{BasePath: "/"}}},
		{"module log level", config.Config{Logging: logging.Config{Modules: map[string]logging.Level{"app": "chatty"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Finalize(); err == nil {
				t.Error("Finalize() error = nil, want error")
			}
		})
	}
}

func TestFinalize_HistoryIsConfigurationError(t *testing.T) {
	cfg := &config.Config{Router: config.RouterConfig{History: "hash"}}

	err := cfg.Finalize()
	if !errors.Is(err, navigation.ErrConfiguration) {
		t.Errorf("error = %v, want ErrConfiguration", err)
	}
}

func TestRouterConfig_ViewDefaultsToName(t *testing.T) {
	cfg := &config.RouterConfig{
		Routes: []config.RouteConfig{{Path: "/", Name: "HomeView"}},
	}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	if cfg.Routes[0].View != "HomeView" {
		t.Errorf("View = %q, want %q", cfg.Routes[0].View, "HomeView")
	}
}

func TestRouterConfig_Merge(t *testing.T) {
	base := &config.RouterConfig{
		History:  navigation.HistoryWeb,
		BasePath: "/app",
		Routes:   config.DefaultRoutes(),
	}
	base.Merge(&config.RouterConfig{
		Routes: []config.RouteConfig{{Path: "/", Name: "HomeView"}},
	})

	if base.BasePath != "/app" || base.History != navigation.HistoryWeb {
		t.Errorf("unexpected overwrite: %+v", base)
	}
	if len(base.Routes) != 1 {
		t.Errorf("len(Routes) = %d, want 1", len(base.Routes))
	}
}

func TestRouterConfig_DuplicateNameRejectedByTable(t *testing.T) {
	cfg := &config.RouterConfig{
		Routes: []config.RouteConfig{
			{Path: "/", Name: "HomeView"},
			{Path: "/home", Name: "HomeView"},
		},
	}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	_, err := cfg.Table()
	if !errors.Is(err, navigation.ErrConfiguration) {
		t.Errorf("Table() error = %v, want ErrConfiguration", err)
	}
}

func TestLoadRoutes(t *testing.T) {
	tomlRoutes := `
[[routes]]
path = "/"
name = "HomeView"

[[routes]]
path = "/themeitem"
name = "ThemeItemView"
view = "ThemeItem"
`
	yamlRoutes := `
routes:
  - path: /
    name: HomeView
  - path: /themeitem
    name: ThemeItemView
    view: ThemeItem
`

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"toml", "routes.toml", tomlRoutes},
		{"yaml", "routes.yaml", yamlRoutes},
		{"yml", "routes.yml", yamlRoutes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			routes, err := config.LoadRoutes(writeFile(t, tt.file, tt.content))
			if err != nil {
				t.Fatalf("LoadRoutes() error = %v", err)
			}
			if len(routes) != 2 {
				t.Fatalf("len(routes) = %d, want 2", len(routes))
			}
			if routes[1].Path != "/themeitem" || routes[1].Name != "ThemeItemView" || routes[1].View != "ThemeItem" {
				t.Errorf("routes[1] = %+v", routes[1])
			}
		})
	}
}

func TestLoadRoutes_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"extension", "routes.json", `{"routes": []}`},
		{"syntax", "routes.toml", `[[routes]`},
		{"empty", "routes.yaml", `routes: []`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := config.LoadRoutes(writeFile(t, tt.file, tt.content)); err == nil {
				t.Error("LoadRoutes() error = nil, want error")
			}
		})
	}

	if _, err := config.LoadRoutes(filepath.Join(t.TempDir(), "none.toml")); err == nil {
		t.Error("LoadRoutes() on missing file error = nil, want error")
	}
}

func TestFinalize_RoutesFileReplacesInline(t *testing.T) {
	path := writeFile(t, "routes.yaml", "routes:\n  - path: /\n    name: HomeView\n")

	cfg := &config.RouterConfig{
		RoutesFile: path,
		Routes:     config.DefaultRoutes(),
	}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	if len(cfg.Routes) != 1 {
		t.Errorf("len(Routes) = %d, want 1", len(cfg.Routes))
	}
}
