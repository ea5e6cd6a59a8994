package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/JaimeStill/stock-navigator/pkg/navigation"
)

const (
	EnvRouterBasePath   = "APP_BASE_URL"
	EnvRouterHistory    = "APP_ROUTER_HISTORY"
	EnvRouterRoutesFile = "APP_ROUTES_FILE"
)

// RouteConfig is a single route definition as it appears in configuration.
// View names the view rendered for the route and defaults to Name.
type RouteConfig struct {
	Path string `toml:"path" yaml:"path"`
	Name string `toml:"name" yaml:"name"`
	View string `toml:"view" yaml:"view"`
}

// RouterConfig configures the navigation table served by the web app.
type RouterConfig struct {
	History    navigation.HistoryMode `toml:"history"`
	BasePath   string                 `toml:"base_path"`
	RoutesFile string                 `toml:"routes_file"`
	Routes     []RouteConfig          `toml:"routes"`
}

// DefaultRoutes returns the stock navigator route table.
func DefaultRoutes() []RouteConfig {
	return []RouteConfig{
		{Path: "/", Name: "HomeView", View: "HomeView"},
		{Path: "/login", Name: "LogInView", View: "LogInView"},
		{Path: "/signup", Name: "SignUpView", View: "SignUpView"},
		{Path: "/userselect", Name: "UserSelectView", View: "UserSelectView"},
		{Path: "/loading", Name: "LoadingView", View: "LoadingView"},
		{Path: "/themelist", Name: "ThemeListView", View: "ThemeListView"},
		{Path: "/themeitem", Name: "ThemeItemView", View: "ThemeItemView"},
		{Path: "/stockitem", Name: "StockItemView", View: "StockItemView"},
	}
}

// Definitions converts the configured routes into navigation definitions
// whose view is the configured view name.
func (c *RouterConfig) Definitions() []navigation.Route[string] {
	defs := make([]navigation.Route[string], len(c.Routes))
	for i, r := range c.Routes {
		defs[i] = navigation.Route[string]{Path: r.Path, Name: r.Name, View: r.View}
	}
	return defs
}

// Table builds a validated navigation table from the configuration.
func (c *RouterConfig) Table() (*navigation.Table[string], error) {
	return navigation.New(c.History, c.BasePath, c.Definitions())
}

// Finalize applies defaults, loads environment overrides, reads the routes
// file when one is configured, and validates the router configuration.
func (c *RouterConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if c.RoutesFile != "" {
		routes, err := LoadRoutes(c.RoutesFile)
		if err != nil {
			return err
		}
		c.Routes = routes
	}
	if len(c.Routes) == 0 {
		c.Routes = DefaultRoutes()
	}
	for i := range c.Routes {
		if c.Routes[i].View == "" {
			c.Routes[i].View = c.Routes[i].Name
		}
	}

	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
// Overlay routes replace the base routes as a whole.
func (c *RouterConfig) Merge(overlay *RouterConfig) {
	if overlay.History != "" {
		c.History = overlay.History
	}
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.RoutesFile != "" {
		c.RoutesFile = overlay.RoutesFile
	}
	if len(overlay.Routes) > 0 {
		c.Routes = overlay.Routes
	}
}

func (c *RouterConfig) loadDefaults() {
	if c.History == "" {
		c.History = navigation.HistoryWeb
	}
	if c.BasePath == "" {
		c.BasePath = "/app"
	}
}

func (c *RouterConfig) loadEnv() {
	if v := os.Getenv(EnvRouterBasePath); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv(EnvRouterHistory); v != "" {
		c.History = navigation.HistoryMode(v)
	}
	if v := os.Getenv(EnvRouterRoutesFile); v != "" {
		c.RoutesFile = v
	}
}

func (c *RouterConfig) validate() error {
	if err := c.History.Validate(); err != nil {
		return err
	}
	if strings.ContainsAny(c.BasePath, "?#") {
		return fmt.Errorf("invalid base_path %q: must not contain a query or fragment", c.BasePath)
	}
	c.BasePath = "/" + strings.Trim(c.BasePath, "/")
	return nil
}

type routesFile struct {
	Routes []RouteConfig `toml:"routes" yaml:"routes"`
}

// LoadRoutes reads route definitions from a TOML or YAML file. The format
// is chosen by extension: .toml, .yaml or .yml.
func LoadRoutes(path string) ([]RouteConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read routes: %w", err)
	}

	var file routesFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &file)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &file)
	default:
		return nil, fmt.Errorf("unsupported routes file extension %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse routes %s: %w", path, err)
	}

	if len(file.Routes) == 0 {
		return nil, fmt.Errorf("routes file %s defines no routes", path)
	}
	return file.Routes, nil
}
