// Package app provides the stock navigator web application: embedded view
// templates served through a validated navigation table.
package app

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JaimeStill/stock-navigator/internal/config"
	"github.com/JaimeStill/stock-navigator/pkg/module"
	"github.com/JaimeStill/stock-navigator/pkg/navigation"
	"github.com/JaimeStill/stock-navigator/pkg/web"
)

//go:embed server/layouts/*
var layoutFS embed.FS

//go:embed server/views/*
var viewFS embed.FS

//go:embed static/*
var staticFS embed.FS

const layout = "app.html"

var views = []web.ViewDef{
	{Name: "HomeView", Template: "home.html", Title: "Home"},
	{Name: "LogInView", Template: "login.html", Title: "Log In"},
	{Name: "SignUpView", Template: "signup.html", Title: "Sign Up"},
	{Name: "UserSelectView", Template: "userselect.html", Title: "Select User"},
	{Name: "LoadingView", Template: "loading.html", Title: "Loading"},
	{Name: "ThemeListView", Template: "themelist.html", Title: "Themes"},
	{Name: "ThemeItemView", Template: "themeitem.html", Title: "Theme"},
	{Name: "StockItemView", Template: "stockitem.html", Title: "Stock"},
}

var notFoundView = web.ViewDef{Name: "NotFound", Template: "404.html", Title: "Not Found"}

type navLink struct {
	Name string
	Href string
}

// App serves the configured routes. Each route's view is an http.Handler
// rendering the matching template.
type App struct {
	table    *navigation.Table[http.Handler]
	notFound http.HandlerFunc
	logger   *slog.Logger
}

// New parses the embedded templates and builds the navigation table from
// cfg. A route naming an unknown view is a configuration error.
func New(cfg *config.RouterConfig, logger *slog.Logger) (*App, error) {
	a := &App{logger: logger}

	funcs := template.FuncMap{
		"href": func(name string) (string, error) {
			return a.table.Href(name, nil)
		},
		"routes": a.links,
	}

	ts, err := web.NewTemplateSet(
		layoutFS,
		viewFS,
		"server/layouts/*.html",
		"server/views",
		strings.TrimRight(cfg.BasePath, "/"),
		append(views, notFoundView),
		funcs,
	)
	if err != nil {
		return nil, err
	}

	defs := make([]navigation.Route[http.Handler], len(cfg.Routes))
	for i, r := range cfg.Routes {
		view, ok := ts.Lookup(r.View)
		if !ok || r.View == notFoundView.Name {
			return nil, &navigation.ConfigError{
				Index:  i,
				Field:  "view",
				Value:  r.View,
				Reason: "unknown view",
			}
		}
		defs[i] = navigation.Route[http.Handler]{
			Path: r.Path,
			Name: r.Name,
			View: ts.ViewHandler(layout, view),
		}
	}

	table, err := navigation.New(cfg.History, cfg.BasePath, defs)
	if err != nil {
		return nil, err
	}

	a.table = table
	a.notFound = ts.ErrorHandler(layout, notFoundView, http.StatusNotFound)

	a.logger.Info(
		"route table initialized",
		"routes", table.Len(),
		"base", table.Base(),
		"history", table.Mode(),
	)

	return a, nil
}

// Table returns the navigation table backing the app.
func (a *App) Table() *navigation.Table[http.Handler] {
	return a.table
}

// Handler returns the app's HTTP handler. Paths are relative to the base
// path; static assets live under /static/ and every other request is
// resolved through the navigation table.
func (a *App) Handler() http.Handler {
	r := web.NewRouter()
	r.Handle("GET /static/", http.FileServer(http.FS(staticFS)))
	r.SetFallback(a.serveView)
	return r
}

// Module returns the app mounted at the table's base path. Callers serving
// the app at the root should register Handler directly instead.
func (a *App) Module() *module.Module {
	return module.New(a.table.Base(), a.Handler())
}

func (a *App) serveView(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	view, err := a.table.Resolve(r.URL.Path)
	if err != nil {
		a.logger.Debug("view not resolved", "path", r.URL.Path, "error", err)
		a.notFound(w, r)
		return
	}
	view.ServeHTTP(w, r)
}

func (a *App) links() []navLink {
	routes := a.table.Routes()
	links := make([]navLink, 0, len(routes))
	for _, r := range routes {
		href, err := a.table.Href(r.Name, nil)
		if err != nil {
			continue
		}
		links = append(links, navLink{Name: r.Name, Href: href})
	}
	return links
}
