package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Raymond9734/community-site/internal/models"
)

// ProductRepository defines the interface for catalogue data access
type ProductRepository interface {
	List(ctx context.Context, filter models.ProductFilter) ([]*models.Product, int64, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	UpsertBatch(ctx context.Context, products []*models.Product) error
}

// productRepository implements ProductRepository using PostgreSQL
type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new PostgreSQL product repository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

// List returns the products whose name contains filter.Term, in catalogue order
func (r *productRepository) List(ctx context.Context, filter models.ProductFilter) ([]*models.Product, int64, error) {
	query := `
		SELECT id, slug, name, image_url, alt_text, description
		FROM products
		WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM products WHERE 1=1`

	args := []interface{}{}
	argPos := 1

	if filter.Term != "" {
		query += fmt.Sprintf(` AND name ILIKE $%d ESCAPE '\'`, argPos)
		countQuery += fmt.Sprintf(` AND name ILIKE $%d ESCAPE '\'`, argPos)
		args = append(args, "%"+escapeLike(filter.Term)+"%")
		argPos++
	}

	var totalCount int64
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	models.ValidateAndSetDefaults(&filter.Page, &filter.PageSize)
	offset := models.CalculateOffset(filter.Page, filter.PageSize)
	query += fmt.Sprintf(" ORDER BY position, id LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, filter.PageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*models.Product{}
	for rows.Next() {
		product := &models.Product{}
		err := rows.Scan(
			&product.ID,
			&product.Slug,
			&product.Name,
			&product.ImageURL,
			&product.AltText,
			&product.Description,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating products: %w", err)
	}

	return products, totalCount, nil
}

// GetBySlug retrieves a product by its slug
func (r *productRepository) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	query := `
		SELECT id, slug, name, image_url, alt_text, description
		FROM products
		WHERE slug = $1`

	product := &models.Product{}
	err := r.db.QueryRowContext(ctx, query, slug).Scan(
		&product.ID,
		&product.Slug,
		&product.Name,
		&product.ImageURL,
		&product.AltText,
		&product.Description,
	)

	if err == sql.ErrNoRows {
		return nil, models.ErrNotFoundWithMsg(fmt.Sprintf("product %q not found", slug))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return product, nil
}

// UpsertBatch inserts or updates products by slug inside one transaction.
// Slice order becomes catalogue order.
func (r *productRepository) UpsertBatch(ctx context.Context, products []*models.Product) error {
	if len(products) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO products (slug, name, image_url, alt_text, description, position)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (slug) DO UPDATE
		SET name = EXCLUDED.name,
			image_url = EXCLUDED.image_url,
			alt_text = EXCLUDED.alt_text,
			description = EXCLUDED.description,
			position = EXCLUDED.position
		RETURNING id`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for i, product := range products {
		err := stmt.QueryRowContext(
			ctx,
			product.Slug,
			product.Name,
			product.ImageURL,
			product.AltText,
			product.Description,
			i,
		).Scan(&product.ID)
		if err != nil {
			return fmt.Errorf("failed to upsert product %q: %w", product.Slug, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit products: %w", err)
	}

	return nil
}

// escapeLike escapes LIKE wildcards so the term is matched literally
func escapeLike(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(term)
}
