package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/invoicedesk/invoicedesk-api/internal/domain/entity"
	"github.com/invoicedesk/invoicedesk-api/internal/domain/repository"
	"github.com/jackc/pgx/v5"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, company_id, category, name, description, unit, rate, hsn_code,
	created_at, updated_at`

// ProductRepo implements ProductRepository over PostgreSQL (pool or tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository builds the adapter. Pass a pool or tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persists a new product.
func (r *ProductRepo) Create(product *entity.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	query := `
		INSERT INTO products (id, company_id, category, name, description, unit, rate, hsn_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.CompanyID, product.Category, product.Name, product.Description,
		product.Unit, product.Rate, nullIfEmpty(product.HSNCode),
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var hsn *string
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.Category, &p.Name, &p.Description, &p.Unit, &p.Rate, &hsn,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.HSNCode = derefStr(hsn)
	return &p, nil
}

// GetByID fetches one product by ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// List fetches products ordered by category, then name.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY category, name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// ListByCompany fetches one company's products.
func (r *ProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE company_id = $1 ORDER BY category, name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products by company: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// ListByCategory fetches products in one category.
func (r *ProductRepo) ListByCategory(category string) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE category = $1 ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, category)
	if err != nil {
		return nil, fmt.Errorf("list products by category: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// ListAll fetches every product, for exports.
func (r *ProductRepo) ListAll() ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY category, name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list all products: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// Categories returns distinct non-empty categories.
func (r *ProductRepo) Categories() ([]string, error) {
	query := `SELECT DISTINCT category FROM products WHERE category <> '' ORDER BY category`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Search matches name, category or HSN code, case-insensitive.
func (r *ProductRepo) Search(q string, limit int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE name ILIKE '%' || $1 || '%' OR category ILIKE '%' || $1 || '%' OR hsn_code ILIKE '%' || $1 || '%'
		ORDER BY name LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, q, limit)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

func collectProducts(rows pgx.Rows) ([]*entity.Product, error) {
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update rewrites all mutable fields. company_id is immutable and absent.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET category = $2, name = $3, description = $4, unit = $5, rate = $6,
		    hsn_code = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Category, product.Name, product.Description, product.Unit,
		product.Rate, nullIfEmpty(product.HSNCode), product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete removes one product.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// DeleteByCompany removes all of a company's products (cascade path).
func (r *ProductRepo) DeleteByCompany(companyID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE company_id = $1`, companyID)
	if err != nil {
		return fmt.Errorf("delete products by company: %w", err)
	}
	return nil
}

// Stats aggregates product figures in one query.
func (r *ProductRepo) Stats() (*repository.ProductStats, error) {
	query := `
		SELECT count(*),
		       count(DISTINCT category) FILTER (WHERE category <> ''),
		       COALESCE(avg(rate), 0)
		FROM products`
	var s repository.ProductStats
	if err := r.q.QueryRow(context.Background(), query).Scan(&s.Total, &s.Categories, &s.AverageRate); err != nil {
		return nil, fmt.Errorf("product stats: %w", err)
	}
	s.AverageRate = s.AverageRate.Round(2)
	return &s, nil
}
