package handler

import (
	"net/http"

	"github.com/Raymond9734/community-site/internal/site"
)

// PageHandler serves the static pages
type PageHandler struct {
	renderer *Renderer
}

// NewPageHandler creates a new page handler
func NewPageHandler(renderer *Renderer) *PageHandler {
	return &PageHandler{renderer: renderer}
}

type homePage struct {
	Hero []site.HeroStep
}

// Serve returns the handler of a static page
func (h *PageHandler) Serve(page site.Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var content any
		if page.Template == "home" {
			content = homePage{Hero: site.HeroSequence()}
		}
		h.renderer.Render(w, r, http.StatusOK, page.Template, page.Title, content)
	}
}

// NotFound renders the 404 page
func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.renderer.RenderError(w, r, http.StatusNotFound, "The page you are looking for does not exist.")
}
