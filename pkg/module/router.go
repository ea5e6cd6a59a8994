package module

import (
	"net/http"
	"sort"
	"strings"
)

// Router dispatches requests to mounted modules by prefix and falls back to
// a native ServeMux for everything else (health checks, root redirects).
type Router struct {
	native  *http.ServeMux
	modules []*Module
}

// NewRouter creates an empty Router.
func NewRouter() *Router {
	return &Router{
		native: http.NewServeMux(),
	}
}

// HandleNative registers a handler on the fallback ServeMux.
func (r *Router) HandleNative(pattern string, handler http.HandlerFunc) {
	r.native.HandleFunc(pattern, handler)
}

// Mount adds a module. When prefixes nest, the longest prefix wins.
func (r *Router) Mount(m *Module) {
	r.modules = append(r.modules, m)
	sort.SliceStable(r.modules, func(i, j int) bool {
		return len(r.modules[i].prefix) > len(r.modules[j].prefix)
	})
}

// ServeHTTP implements http.Handler. Trailing slashes are dropped before
// dispatch so module handlers see one canonical form of each path. The
// caller's request is left untouched.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path
	if len(path) > 1 && strings.HasSuffix(path, "/") {
		path = strings.TrimSuffix(path, "/")
		req = req.Clone(req.Context())
		req.URL.Path = path
		req.URL.RawPath = ""
	}

	for _, m := range r.modules {
		if m.owns(path) {
			m.Serve(w, req)
			return
		}
	}

	r.native.ServeHTTP(w, req)
}
