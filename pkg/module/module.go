// Package module mounts self-contained HTTP handlers under URL prefixes.
// Each module owns its middleware chain and sees request paths relative to
// its prefix, so a handler can be deployed under any base path unchanged.
package module

import (
	"net/http"
	"strings"
)

// Module is an HTTP handler bound to a URL prefix with its own middleware.
type Module struct {
	prefix     string
	handler    http.Handler
	middleware []func(http.Handler) http.Handler
}

// New creates a module for prefix. The prefix must start with a slash,
// must not end with one, and must not be the root path; New panics otherwise
// because a malformed prefix is a programming error at startup.
func New(prefix string, handler http.Handler) *Module {
	if err := validatePrefix(prefix); err != "" {
		panic("module: " + err + ": " + prefix)
	}
	return &Module{
		prefix:  prefix,
		handler: handler,
	}
}

// Prefix returns the mount prefix.
func (m *Module) Prefix() string {
	return m.prefix
}

// Use appends middleware. Middleware registered first runs outermost.
func (m *Module) Use(mw func(http.Handler) http.Handler) {
	m.middleware = append(m.middleware, mw)
}

// Handler returns the module handler wrapped in its middleware chain.
func (m *Module) Handler() http.Handler {
	h := m.handler
	for i := len(m.middleware) - 1; i >= 0; i-- {
		h = m.middleware[i](h)
	}
	return h
}

// Serve strips the module prefix from the request path and dispatches it.
func (m *Module) Serve(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, m.prefix)
	if path == "" {
		path = "/"
	}

	r2 := r.Clone(r.Context())
	r2.URL.Path = path
	r2.URL.RawPath = ""

	m.Handler().ServeHTTP(w, r2)
}

func (m *Module) owns(path string) bool {
	return path == m.prefix || strings.HasPrefix(path, m.prefix+"/")
}

func validatePrefix(prefix string) string {
	switch {
	case prefix == "" || prefix == "/":
		return "prefix required"
	case !strings.HasPrefix(prefix, "/"):
		return "prefix must start with /"
	case strings.HasSuffix(prefix, "/"):
		return "prefix must not end with /"
	case strings.Contains(prefix, "//"):
		return "prefix contains empty segment"
	}
	return ""
}
