package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"github.com/Raymond9734/community-site/internal/models"
	"github.com/Raymond9734/community-site/internal/repository"
)

// CatalogService serves the product list, its search filter and the lightbox
type CatalogService interface {
	Search(ctx context.Context, filter models.ProductFilter) (*ProductListResult, error)
	Lightbox(ctx context.Context, slug string) (*models.LightboxView, error)
	Import(ctx context.Context, products []*models.Product) error
}

type catalogService struct {
	productRepo repository.ProductRepository
	markdown    goldmark.Markdown
	bodyPolicy  *bluemonday.Policy
	textPolicy  *bluemonday.Policy
	logger      *slog.Logger
}

// NewCatalogService creates a new catalogue service
func NewCatalogService(productRepo repository.ProductRepository, logger *slog.Logger) CatalogService {
	return &catalogService{
		productRepo: productRepo,
		markdown:    goldmark.New(),
		bodyPolicy:  bluemonday.UGCPolicy(),
		textPolicy:  bluemonday.StrictPolicy(),
		logger:      logger,
	}
}

// Search lists products whose name contains the term, ignoring case
func (s *catalogService) Search(ctx context.Context, filter models.ProductFilter) (*ProductListResult, error) {
	filter.Term = strings.TrimSpace(filter.Term)
	models.ValidateAndSetDefaults(&filter.Page, &filter.PageSize)

	products, totalCount, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	views := make([]*models.ProductView, 0, len(products))
	for _, p := range products {
		view, err := s.toView(p)
		if err != nil {
			s.logger.Error("failed to render product",
				slog.String("slug", p.Slug),
				slog.String("error", err.Error()),
			)
			return nil, err
		}
		views = append(views, view)
	}

	return &ProductListResult{
		Data:       views,
		Term:       filter.Term,
		Pagination: models.NewPaginationResult(filter.Page, filter.PageSize, totalCount),
	}, nil
}

// Lightbox returns the enlarged image of a product, captioned with its alt text
func (s *catalogService) Lightbox(ctx context.Context, slug string) (*models.LightboxView, error) {
	if slug == "" {
		return nil, models.ErrInvalidInput("product slug is required")
	}

	product, err := s.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	return &models.LightboxView{
		Slug:    product.Slug,
		Src:     product.ImageURL,
		Caption: s.textPolicy.Sanitize(product.AltText),
	}, nil
}

// Import validates products and writes them to the repository in order
func (s *catalogService) Import(ctx context.Context, products []*models.Product) error {
	for _, p := range products {
		if err := p.Validate(); err != nil {
			return err
		}
	}

	if err := s.productRepo.UpsertBatch(ctx, products); err != nil {
		return fmt.Errorf("failed to import catalogue: %w", err)
	}

	s.logger.Info("catalogue imported", slog.Int("products", len(products)))
	return nil
}

func (s *catalogService) toView(p *models.Product) (*models.ProductView, error) {
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(p.Description), &buf); err != nil {
		return nil, fmt.Errorf("failed to render description of %q: %w", p.Slug, err)
	}

	return &models.ProductView{
		Slug:            p.Slug,
		Name:            p.Name,
		ImageURL:        p.ImageURL,
		AltText:         p.AltText,
		DescriptionHTML: string(s.bodyPolicy.SanitizeBytes(buf.Bytes())),
	}, nil
}
