// Package web renders server-side views from embedded Go templates.
// Templates are parsed once at startup so a missing or malformed view fails
// fast instead of on first request.
package web

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
)

// ViewDef names a view and the template that renders it.
type ViewDef struct {
	Name     string
	Template string
	Title    string
}

// ViewData is the data passed to every template execution.
// BasePath enables portable URL generation via {{ .BasePath }}.
type ViewData struct {
	Title    string
	View     string
	BasePath string
	Data     any
}

// TemplateSet holds one pre-parsed template tree per view.
type TemplateSet struct {
	views    map[string]*template.Template
	defs     map[string]ViewDef
	basePath string
}

// NewTemplateSet parses the layouts once and clones them for each view.
// funcs is installed before parsing so layouts and views may call it.
func NewTemplateSet(layoutFS, viewFS fs.FS, layoutGlob, viewSubdir, basePath string, views []ViewDef, funcs template.FuncMap) (*TemplateSet, error) {
	layouts, err := template.New("").Funcs(funcs).ParseFS(layoutFS, layoutGlob)
	if err != nil {
		return nil, err
	}

	viewSub, err := fs.Sub(viewFS, viewSubdir)
	if err != nil {
		return nil, err
	}

	ts := &TemplateSet{
		views:    make(map[string]*template.Template, len(views)),
		defs:     make(map[string]ViewDef, len(views)),
		basePath: basePath,
	}

	for _, v := range views {
		t, err := layouts.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layouts for %s: %w", v.Template, err)
		}
		if _, err := t.ParseFS(viewSub, v.Template); err != nil {
			return nil, fmt.Errorf("parse template: %s: %w", v.Template, err)
		}
		ts.views[v.Name] = t
		ts.defs[v.Name] = v
	}

	return ts, nil
}

// Lookup returns the definition registered for a view name.
func (ts *TemplateSet) Lookup(name string) (ViewDef, bool) {
	v, ok := ts.defs[name]
	return v, ok
}

// ViewHandler returns an HTTP handler that renders the named view.
func (ts *TemplateSet) ViewHandler(layout string, view ViewDef) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := ViewData{
			Title:    view.Title,
			View:     view.Name,
			BasePath: ts.basePath,
		}
		if err := ts.Render(w, layout, view.Name, data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

// ErrorHandler returns an HTTP handler that renders view with status.
func (ts *TemplateSet) ErrorHandler(layout string, view ViewDef, status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		data := ViewData{
			Title:    view.Title,
			View:     view.Name,
			BasePath: ts.basePath,
			Data:     r.URL.Path,
		}
		if err := ts.execute(w, layout, view.Name, data); err != nil {
			fmt.Fprint(w, http.StatusText(status))
		}
	}
}

// Render executes the layout for the named view and sets the Content-Type.
func (ts *TemplateSet) Render(w http.ResponseWriter, layout, view string, data ViewData) error {
	if _, ok := ts.views[view]; !ok {
		return fmt.Errorf("template not found: %s", view)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return ts.execute(w, layout, view, data)
}

func (ts *TemplateSet) execute(w http.ResponseWriter, layout, view string, data ViewData) error {
	t, ok := ts.views[view]
	if !ok {
		return fmt.Errorf("template not found: %s", view)
	}
	return t.ExecuteTemplate(w, layout, data)
}
