// Package routes describes HTTP endpoints as data and registers them on a ServeMux.
package routes

import (
	"net/http"

	"github.com/JaimeStill/stock-navigator/pkg/openapi"
)

// Group represents a collection of routes under a common URL prefix.
// Groups can contain child groups for hierarchical route organization.
type Group struct {
	Prefix      string
	Tags        []string
	Description string
	Routes      []Route
	Children    []Group
}

// Route is a single method and pattern bound to a handler. OpenAPI is
// optional; routes without it are left out of generated documents.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
}

// Register adds every route in groups to mux, joining nested prefixes.
func Register(mux *http.ServeMux, groups ...Group) {
	for _, g := range groups {
		register(mux, "", g)
	}
}

func register(mux *http.ServeMux, parent string, g Group) {
	prefix := parent + g.Prefix
	for _, r := range g.Routes {
		mux.HandleFunc(r.Method+" "+prefix+r.Pattern, r.Handler)
	}
	for _, child := range g.Children {
		register(mux, prefix, child)
	}
}

// Document adds the documented GET operations in groups to spec. Group
// tags are applied to operations that declare none.
func Document(spec *openapi.Spec, groups ...Group) {
	for _, g := range groups {
		document(spec, "", g)
	}
}

func document(spec *openapi.Spec, parent string, g Group) {
	prefix := parent + g.Prefix
	for _, r := range g.Routes {
		if r.OpenAPI == nil || r.Method != http.MethodGet {
			continue
		}
		op := *r.OpenAPI
		if len(op.Tags) == 0 {
			op.Tags = g.Tags
		}
		spec.AddGet(prefix+r.Pattern, &op)
	}
	for _, child := range g.Children {
		document(spec, prefix, child)
	}
}
