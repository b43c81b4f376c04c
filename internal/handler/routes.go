package handler

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Raymond9734/community-site/internal/site"
)

// RouterDeps holds everything the router needs
type RouterDeps struct {
	Pages     *PageHandler
	Products  *ProductHandler
	Enquiries *EnquiryHandler
	Health    *HealthHandler
	Static    fs.FS
	Logger    *slog.Logger
}

// NewRouter registers the site and API routes
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RecoveryMiddleware(deps.Logger))
	r.Use(LoggingMiddleware(deps.Logger))

	r.Get("/health", deps.Health.Health)

	for _, page := range site.Pages {
		r.Get(page.Path, deps.Pages.Serve(page))
	}
	r.Get("/index.html", deps.Pages.Serve(site.Pages[0]))

	r.Get("/products", deps.Products.List)
	r.Get("/products/{slug}", deps.Products.Lightbox)

	r.Get("/enquiries", deps.Enquiries.ShowForm)
	r.Post("/enquiries", deps.Enquiries.SubmitForm)

	r.Route("/api", func(r chi.Router) {
		r.Use(CORSMiddleware)
		r.Get("/products", deps.Products.SearchAPI)
		r.Get("/products/{slug}/lightbox", deps.Products.LightboxAPI)
		r.Post("/enquiries", deps.Enquiries.SubmitAPI)
	})

	if deps.Static != nil {
		r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.FS(deps.Static))))
	}

	r.NotFound(deps.Pages.NotFound)

	return r
}
