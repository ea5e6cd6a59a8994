package api

import "github.com/JaimeStill/stock-navigator/pkg/openapi"

type spec struct {
	List    *openapi.Operation
	Resolve *openapi.Operation
	Href    *openapi.Operation
}

var Spec = spec{
	List: &openapi.Operation{
		Summary: "List the route table",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Route table", "Table"),
		},
	},
	Resolve: &openapi.Operation{
		Summary: "Resolve a browser path to its route",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("path", "string", "URL path including the base path", true),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Matched route", "Match"),
			400: openapi.ResponseJSON("Missing path parameter", "Error"),
			404: openapi.ResponseJSON("No route matches", "Error"),
		},
	},
	Href: &openapi.Operation{
		Summary: "Build the URL for a named route",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("name", "Route name"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Route URL", "Href"),
			400: openapi.ResponseJSON("Missing route parameter", "Error"),
			404: openapi.ResponseJSON("Unknown route name", "Error"),
		},
	},
}

func str(desc string) *openapi.Schema {
	return &openapi.Schema{Type: "string", Description: desc}
}

func addSchemas(s *openapi.Spec) {
	s.AddSchema("RouteEntry", &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"name": str("Route name"),
			"path": str("Route path relative to the base"),
			"href": str("Full URL path; omitted for parameterized routes"),
		},
		Required: []string{"name", "path"},
	})
	s.AddSchema("Table", &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"base":    str("Deployment base path"),
			"history": str("History mode"),
			"routes":  {Type: "array", Items: openapi.SchemaRef("RouteEntry")},
		},
		Required: []string{"base", "history", "routes"},
	})
	s.AddSchema("Match", &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"name":   str("Route name"),
			"path":   str("Route path"),
			"params": {Type: "object", AdditionalProperties: &openapi.Schema{Type: "string"}},
		},
		Required: []string{"name", "path", "params"},
	})
	s.AddSchema("Href", &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"name": str("Route name"),
			"href": str("Full URL path"),
		},
		Required: []string{"name", "href"},
	})
	s.AddSchema("Error", &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"error":      str("Error message"),
			"request_id": str("Request identifier"),
		},
		Required: []string{"error"},
	})
}
