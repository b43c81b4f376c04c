package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/Raymond9734/community-site/internal/nav"
)

// Page templates; each is parsed together with base.tmpl
var pageTemplates = []string{"home", "services", "about", "products", "lightbox", "enquiries", "error"}

// PageData is the layout view model shared by every page
type PageData struct {
	Title       string
	Description string
	Path        string
	Nav         []nav.RenderedItem
	Breadcrumbs []nav.Crumb
	Content     any
}

// Renderer executes the page templates inside the base layout
type Renderer struct {
	pages  map[string]*template.Template
	logger *slog.Logger
}

// NewRenderer parses every page template from fsys
func NewRenderer(fsys fs.FS, logger *slog.Logger) (*Renderer, error) {
	pages := make(map[string]*template.Template, len(pageTemplates))
	for _, name := range pageTemplates {
		t, err := template.New(name).ParseFS(fsys, "base.tmpl", name+".tmpl")
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		pages[name] = t
	}
	return &Renderer{pages: pages, logger: logger}, nil
}

// Render writes page with status; navigation is resolved from the request path
func (rd *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, page, title string, content any) {
	t, ok := rd.pages[page]
	if !ok {
		rd.logger.Error("unknown page template", slog.String("page", page))
		http.Error(w, "An unexpected error occurred", http.StatusInternalServerError)
		return
	}

	data := PageData{
		Title:       title,
		Description: title,
		Path:        r.URL.Path,
		Nav:         nav.Build(r.URL.Path),
		Breadcrumbs: nav.Breadcrumbs(r.URL.Path),
		Content:     content,
	}

	// Render into a buffer so a template failure never leaves half a page
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		rd.logger.Error("failed to execute template",
			slog.String("page", page),
			slog.String("error", err.Error()),
		)
		http.Error(w, "An unexpected error occurred", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

type errorPage struct {
	Heading string
	Message string
}

// RenderError renders the error page for status
func (rd *Renderer) RenderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	rd.Render(w, r, status, "error", http.StatusText(status), errorPage{
		Heading: http.StatusText(status),
		Message: message,
	})
}
