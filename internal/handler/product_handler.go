package handler

import (
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Raymond9734/community-site/internal/models"
	"github.com/Raymond9734/community-site/internal/service"
)

// ProductHandler handles the product list, search and lightbox
type ProductHandler struct {
	catalog  service.CatalogService
	renderer *Renderer
	logger   *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(catalog service.CatalogService, renderer *Renderer, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		catalog:  catalog,
		renderer: renderer,
		logger:   logger,
	}
}

type productItem struct {
	Slug        string
	Name        string
	ImageURL    string
	AltText     string
	Description template.HTML
}

type productsPage struct {
	Term       string
	Products   []productItem
	Pagination models.PaginationResult
	NextPage   int
}

type lightboxPage struct {
	Src       string
	Caption   template.HTML
	CloseHref string
}

func filterFromQuery(query url.Values) models.ProductFilter {
	page, _ := strconv.Atoi(query.Get("page"))
	pageSize, _ := strconv.Atoi(query.Get("page_size"))
	return models.ProductFilter{
		Term:     query.Get("q"),
		Page:     page,
		PageSize: pageSize,
	}
}

// List handles GET /products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.catalog.Search(r.Context(), filterFromQuery(r.URL.Query()))
	if err != nil {
		handleHTMLError(w, r, err, h.renderer, h.logger)
		return
	}

	items := make([]productItem, 0, len(result.Data))
	for _, p := range result.Data {
		items = append(items, productItem{
			Slug:     p.Slug,
			Name:     p.Name,
			ImageURL: p.ImageURL,
			AltText:  p.AltText,
			// Sanitised by the catalogue service
			Description: template.HTML(p.DescriptionHTML),
		})
	}

	h.renderer.Render(w, r, http.StatusOK, "products", "Products", productsPage{
		Term:       result.Term,
		Products:   items,
		Pagination: result.Pagination,
		NextPage:   result.Pagination.Page + 1,
	})
}

// Lightbox handles GET /products/{slug}
func (h *ProductHandler) Lightbox(w http.ResponseWriter, r *http.Request) {
	view, err := h.catalog.Lightbox(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		handleHTMLError(w, r, err, h.renderer, h.logger)
		return
	}

	closeHref := "/products"
	if term := r.URL.Query().Get("q"); term != "" {
		closeHref += "?" + url.Values{"q": {term}}.Encode()
	}

	h.renderer.Render(w, r, http.StatusOK, "lightbox", "Products", lightboxPage{
		Src:       view.Src,
		Caption:   template.HTML(view.Caption),
		CloseHref: closeHref,
	})
}

// SearchAPI handles GET /api/products
func (h *ProductHandler) SearchAPI(w http.ResponseWriter, r *http.Request) {
	result, err := h.catalog.Search(r.Context(), filterFromQuery(r.URL.Query()))
	if err != nil {
		handleError(w, err, h.logger)
		return
	}
	respondSuccess(w, result)
}

// LightboxAPI handles GET /api/products/{slug}/lightbox
func (h *ProductHandler) LightboxAPI(w http.ResponseWriter, r *http.Request) {
	view, err := h.catalog.Lightbox(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		handleError(w, err, h.logger)
		return
	}
	respondSuccess(w, view)
}
