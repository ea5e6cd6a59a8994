package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/stock-navigator/pkg/handlers"
	"github.com/JaimeStill/stock-navigator/pkg/navigation"
	"github.com/JaimeStill/stock-navigator/pkg/routes"
)

// ErrPathRequired is returned when a resolve request omits the path query parameter.
var ErrPathRequired = errors.New("path query parameter required")

// RouteEntry describes one route in a TableResponse. Href is empty for
// routes whose path has parameters.
type RouteEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Href string `json:"href,omitempty"`
}

// TableResponse is the body of GET /routes.
type TableResponse struct {
	Base    string                 `json:"base"`
	History navigation.HistoryMode `json:"history"`
	Routes  []RouteEntry           `json:"routes"`
}

// MatchResponse is the body of GET /routes/resolve.
type MatchResponse struct {
	Name   string            `json:"name"`
	Path   string            `json:"path"`
	Params map[string]string `json:"params"`
}

// HrefResponse is the body of GET /routes/{name}/href.
type HrefResponse struct {
	Name string `json:"name"`
	Href string `json:"href"`
}

type Handler[V any] struct {
	table  *navigation.Table[V]
	logger *slog.Logger
}

func NewHandler[V any](table *navigation.Table[V], logger *slog.Logger) *Handler[V] {
	return &Handler[V]{
		table:  table,
		logger: logger,
	}
}

func (h *Handler[V]) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/routes",
		Tags:        []string{"Routes"},
		Description: "Navigation table lookup",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: Spec.List},
			{Method: "GET", Pattern: "/resolve", Handler: h.Resolve, OpenAPI: Spec.Resolve},
			{Method: "GET", Pattern: "/{name}/href", Handler: h.Href, OpenAPI: Spec.Href},
		},
	}
}

func (h *Handler[V]) List(w http.ResponseWriter, r *http.Request) {
	infos := h.table.Routes()
	entries := make([]RouteEntry, len(infos))
	for i, info := range infos {
		entries[i] = RouteEntry{Name: info.Name, Path: info.Path}
		if href, err := h.table.Href(info.Name, nil); err == nil {
			entries[i].Href = href
		}
	}

	handlers.RespondJSON(w, http.StatusOK, TableResponse{
		Base:    h.table.Base(),
		History: h.table.Mode(),
		Routes:  entries,
	})
}

// Resolve matches a browser URL path, including the base path, against the table.
func (h *Handler[V]) Resolve(w http.ResponseWriter, r *http.Request) {
	urlPath := r.URL.Query().Get("path")
	if urlPath == "" {
		handlers.RespondError(w, r, h.logger, http.StatusBadRequest, ErrPathRequired)
		return
	}

	path, ok := h.table.Locate(urlPath)
	if !ok {
		err := fmt.Errorf("%w: %s is outside base path %s", navigation.ErrNotFound, urlPath, h.table.Base())
		handlers.RespondError(w, r, h.logger, http.StatusNotFound, err)
		return
	}

	m, err := h.table.Match(path)
	if err != nil {
		handlers.RespondError(w, r, h.logger, navigation.MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, MatchResponse{
		Name:   m.Route.Name,
		Path:   m.Route.Path,
		Params: m.Params,
	})
}

// Href builds the URL for a named route. Query parameters supply values
// for path placeholders.
func (h *Handler[V]) Href(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	params := make(map[string]string)
	for k, v := range r.URL.Query() {
		if len(v) > 0 {
			params[k] = v[0]
		}
	}

	href, err := h.table.Href(name, params)
	if err != nil {
		handlers.RespondError(w, r, h.logger, navigation.MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, HrefResponse{Name: name, Href: href})
}
