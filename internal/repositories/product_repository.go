package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/maisonlux/storefront/internal/models"
	"github.com/maisonlux/storefront/internal/utils"
)

// ProductRepository reads the catalog out of Postgres. It serves as a
// product source for the catalog engine; all filtering happens in memory,
// so the queries stay flat scans.
type ProductRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) *ProductRepository {
	return &ProductRepository{DB: db}
}

const productColumns = `id, name, category, brand, color, size, price, discount, stock,
	rating, is_new, is_exclusive, is_limited, image_url, description, created_at`

// Products loads the full record set, newest first.
func (r *ProductRepository) Products(ctx context.Context) ([]models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}

	defer rows.Close()

	var products []models.Product

	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading products: %w", err)
	}

	return products, nil
}

// GetProductByID fetches a single record. A missing id yields sql.ErrNoRows.
func (r *ProductRepository) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	row := r.DB.QueryRowContext(dbCtx, query, id)

	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		return nil, fmt.Errorf("querying product %s: %w", id, err)
	}

	return &product, nil
}

// CountProducts reports the catalog size; used by the health surface.
func (r *ProductRepository) CountProducts(ctx context.Context) (int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	if err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM products`).Scan(&total); err != nil {
		return 0, fmt.Errorf("counting products: %w", err)
	}

	return total, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (models.Product, error) {
	var p models.Product

	err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Brand, &p.Color, &p.Size,
		&p.Price, &p.Discount, &p.Stock, &p.Rating,
		&p.IsNew, &p.IsExclusive, &p.IsLimited,
		&p.ImageURL, &p.Description, &p.CreatedAt)
	if err != nil {
		return models.Product{}, err
	}

	return p, nil
}
