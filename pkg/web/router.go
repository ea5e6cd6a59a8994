package web

import (
	"net/http"
	"path"
	"strings"
)

// Router wraps a ServeMux and sends unmatched requests to a fallback
// handler instead of the default 404 response.
//
// With a fallback set, redirects the ServeMux would issue on its own (adding a trailing slash to
// a subtree pattern, cleaning the path) are treated as unmatched. Those
// redirects use the handler-relative path, which points outside the base
// once the router is mounted under a prefix.
type Router struct {
	mux      *http.ServeMux
	patterns map[string]bool
	fallback http.HandlerFunc
}

// NewRouter creates a Router with no fallback.
func NewRouter() *Router {
	return &Router{
		mux:      http.NewServeMux(),
		patterns: make(map[string]bool),
	}
}

// Handle registers handler for pattern.
func (r *Router) Handle(pattern string, handler http.Handler) {
	r.mux.Handle(pattern, handler)
	r.patterns[pattern] = true
}

// HandleFunc registers fn for pattern.
func (r *Router) HandleFunc(pattern string, fn http.HandlerFunc) {
	r.mux.HandleFunc(pattern, fn)
	r.patterns[pattern] = true
}

// SetFallback sets the handler for requests no pattern matches.
func (r *Router) SetFallback(fn http.HandlerFunc) {
	r.fallback = fn
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if r.fallback != nil && !r.matches(req) {
		r.fallback(w, req)
		return
	}
	r.mux.ServeHTTP(w, req)
}

func (r *Router) matches(req *http.Request) bool {
	if req.URL.Path != cleanPath(req.URL.Path) {
		return false
	}
	_, pattern := r.mux.Handler(req)
	return r.patterns[pattern]
}

func cleanPath(p string) string {
	if p == "" {
		return "/"
	}
	if p[0] != '/' {
		p = "/" + p
	}
	np := path.Clean(p)
	if strings.HasSuffix(p, "/") && np != "/" {
		np += "/"
	}
	return np
}
