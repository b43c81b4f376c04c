package repository

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/Raymond9734/community-site/internal/models"
)

type catalogFile struct {
	Products []*models.Product `yaml:"products"`
}

// yamlProductRepository serves the catalogue from a YAML document held in memory
type yamlProductRepository struct {
	mu       sync.RWMutex
	products []*models.Product
}

// LoadCatalogFile reads the YAML catalogue at path
func LoadCatalogFile(path string) ([]*models.Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalogue: %w", err)
	}
	defer f.Close()

	return DecodeCatalog(f)
}

// DecodeCatalog parses a YAML catalogue and validates every entry
func DecodeCatalog(r io.Reader) ([]*models.Product, error) {
	var doc catalogFile
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to decode catalogue: %w", err)
	}

	seen := make(map[string]bool, len(doc.Products))
	for i, product := range doc.Products {
		if product == nil {
			return nil, models.ErrInvalidInput(fmt.Sprintf("catalogue entry %d is empty", i))
		}
		if err := product.Validate(); err != nil {
			return nil, fmt.Errorf("catalogue entry %d: %w", i, err)
		}
		if seen[product.Slug] {
			return nil, models.ErrInvalidInput(fmt.Sprintf("duplicate product slug %q", product.Slug))
		}
		seen[product.Slug] = true
		if product.ID == 0 {
			product.ID = int64(i + 1)
		}
	}

	return doc.Products, nil
}

// NewYAMLProductRepository creates a repository over an already decoded catalogue
func NewYAMLProductRepository(products []*models.Product) ProductRepository {
	return &yamlProductRepository{products: products}
}

// List returns the products whose name contains filter.Term, in file order
func (r *yamlProductRepository) List(ctx context.Context, filter models.ProductFilter) ([]*models.Product, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := []*models.Product{}
	for _, p := range r.products {
		if p.Matches(filter.Term) {
			matched = append(matched, p)
		}
	}

	totalCount := int64(len(matched))

	models.ValidateAndSetDefaults(&filter.Page, &filter.PageSize)
	start := models.CalculateOffset(filter.Page, filter.PageSize)
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.PageSize
	if end > len(matched) {
		end = len(matched)
	}

	return matched[start:end], totalCount, nil
}

// GetBySlug retrieves a product by its slug
func (r *yamlProductRepository) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, models.ErrNotFoundWithMsg(fmt.Sprintf("product %q not found", slug))
}

// UpsertBatch replaces entries with the same slug and appends new ones
func (r *yamlProductRepository) UpsertBatch(ctx context.Context, products []*models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, incoming := range products {
		replaced := false
		for i, existing := range r.products {
			if existing.Slug == incoming.Slug {
				incoming.ID = existing.ID
				r.products[i] = incoming
				replaced = true
				break
			}
		}
		if !replaced {
			incoming.ID = int64(len(r.products) + 1)
			r.products = append(r.products, incoming)
		}
	}
	return nil
}
