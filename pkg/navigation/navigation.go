// Package navigation provides an immutable route table that binds URL paths
// to symbolic names and opaque view handlers.
//
// A Table is built once with New, validated up front, and passed explicitly
// to whatever needs to resolve locations. It exposes no mutating methods, so
// concurrent reads need no synchronization.
package navigation

import (
	"fmt"
	"net/url"
	"strings"
)

// Route binds a path pattern to a unique name and a view handler.
// Path segments written as {param} match any single segment.
type Route[V any] struct {
	Path string
	Name string
	View V
}

// RouteInfo is a view-less snapshot of a registered route.
type RouteInfo struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

// Match is the result of resolving a path against the table.
type Match[V any] struct {
	Route  Route[V]
	Params map[string]string
}

// Table is the validated, read-only route registry.
type Table[V any] struct {
	mode     HistoryMode
	base     string
	routes   []Route[V]
	byPath   map[string]int
	byName   map[string]int
	patterns []int
}

// New validates the definitions and builds a Table rooted at base.
// Duplicate names or paths, empty names and malformed paths are rejected
// with a *ConfigError wrapping ErrConfiguration.
func New[V any](mode HistoryMode, base string, routes []Route[V]) (*Table[V], error) {
	if err := mode.Validate(); err != nil {
		return nil, err
	}

	t := &Table[V]{
		mode:   mode,
		base:   normalizeBase(base),
		routes: make([]Route[V], len(routes)),
		byPath: make(map[string]int, len(routes)),
		byName: make(map[string]int, len(routes)),
	}

	shapes := make(map[string]int, len(routes))

	for i, r := range routes {
		if r.Name == "" {
			return nil, &ConfigError{Index: i, Field: "name", Value: r.Name, Reason: "name required"}
		}
		if !strings.HasPrefix(r.Path, "/") {
			return nil, &ConfigError{Index: i, Field: "path", Value: r.Path, Reason: "path must start with /"}
		}
		if strings.ContainsAny(r.Path, "?#") {
			return nil, &ConfigError{Index: i, Field: "path", Value: r.Path, Reason: "path must not contain a query or fragment"}
		}
		if prev, ok := t.byName[r.Name]; ok {
			return nil, &ConfigError{
				Index:  i,
				Field:  "name",
				Value:  r.Name,
				Reason: fmt.Sprintf("duplicate of route %d", prev),
			}
		}

		path := normalizePath(r.Path)
		shape := pathShape(path)
		if prev, ok := shapes[shape]; ok {
			return nil, &ConfigError{
				Index:  i,
				Field:  "path",
				Value:  r.Path,
				Reason: fmt.Sprintf("duplicate of route %d (%s)", prev, routes[prev].Path),
			}
		}
		shapes[shape] = i

		r.Path = path
		t.routes[i] = r
		t.byName[r.Name] = i

		if hasParams(path) {
			t.patterns = append(t.patterns, i)
		} else {
			t.byPath[path] = i
		}
	}

	return t, nil
}

// Mode returns the history mode the table was initialized with.
func (t *Table[V]) Mode() HistoryMode {
	return t.mode
}

// Base returns the normalized base path.
func (t *Table[V]) Base() string {
	return t.base
}

// Len returns the number of registered routes.
func (t *Table[V]) Len() int {
	return len(t.routes)
}

// Routes returns the registered routes in definition order.
func (t *Table[V]) Routes() []RouteInfo {
	out := make([]RouteInfo, len(t.routes))
	for i, r := range t.routes {
		out[i] = RouteInfo{Path: r.Path, Name: r.Name}
	}
	return out
}

// Resolve returns the view handler bound to path.
func (t *Table[V]) Resolve(path string) (V, error) {
	m, err := t.Match(path)
	if err != nil {
		var zero V
		return zero, err
	}
	return m.Route.View, nil
}

// Match finds the route for path along with any extracted parameters.
// Literal routes take precedence over parameterized ones.
func (t *Table[V]) Match(path string) (Match[V], error) {
	path = normalizePath(stripQuery(path))
	if !strings.HasPrefix(path, "/") {
		return Match[V]{}, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	if i, ok := t.byPath[path]; ok {
		return Match[V]{Route: t.routes[i], Params: map[string]string{}}, nil
	}

	for _, i := range t.patterns {
		if params, ok := matchPattern(t.routes[i].Path, path); ok {
			return Match[V]{Route: t.routes[i], Params: params}, nil
		}
	}

	return Match[V]{}, fmt.Errorf("%w: %s", ErrNotFound, path)
}

// ResolveByName returns the path for the named route with params
// substituted into its placeholders. Unused params are ignored.
func (t *Table[V]) ResolveByName(name string, params map[string]string) (string, error) {
	i, ok := t.byName[name]
	if !ok {
		return "", fmt.Errorf("%w: name %s", ErrNotFound, name)
	}

	path := t.routes[i].Path
	if !hasParams(path) {
		return path, nil
	}

	segments := strings.Split(path, "/")
	for j, seg := range segments {
		key, ok := paramName(seg)
		if !ok {
			continue
		}
		v, ok := params[key]
		if !ok || v == "" {
			return "", fmt.Errorf("%w: %s for route %s", ErrMissingParam, key, name)
		}
		segments[j] = url.PathEscape(v)
	}
	return strings.Join(segments, "/"), nil
}

// Href returns the full URL path for the named route, including the base path.
func (t *Table[V]) Href(name string, params map[string]string) (string, error) {
	path, err := t.ResolveByName(name, params)
	if err != nil {
		return "", err
	}
	return joinBase(t.base, path), nil
}

// Locate converts a full URL path into a route-relative path by removing
// the base path. It reports false when urlPath lies outside the base.
func (t *Table[V]) Locate(urlPath string) (string, bool) {
	urlPath = stripQuery(urlPath)
	if t.base == "/" {
		return normalizePath(urlPath), strings.HasPrefix(urlPath, "/")
	}
	if urlPath == t.base || urlPath == t.base+"/" {
		return "/", true
	}
	if rest, ok := strings.CutPrefix(urlPath, t.base+"/"); ok {
		return normalizePath("/" + rest), true
	}
	return "", false
}
