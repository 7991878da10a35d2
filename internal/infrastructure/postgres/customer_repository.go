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

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `id, company_id, name, address, city, state, pincode, gstin,
	contact_person, phone, email, created_at, updated_at`

// CustomerRepo implements CustomerRepository over PostgreSQL (pool or tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository builds the adapter. Pass a pool or tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persists a new customer.
func (r *CustomerRepo) Create(customer *entity.Customer) error {
	if customer.ID == "" {
		customer.ID = uuid.New().String()
	}
	query := `
		INSERT INTO customers (id, company_id, name, address, city, state, pincode, gstin,
			contact_person, phone, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.CompanyID, customer.Name, customer.Address, customer.City,
		customer.State, customer.Pincode, nullIfEmpty(customer.GSTIN),
		customer.ContactPerson, customer.Phone, customer.Email,
		customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	var gstin *string
	err := row.Scan(
		&c.ID, &c.CompanyID, &c.Name, &c.Address, &c.City, &c.State, &c.Pincode, &gstin,
		&c.ContactPerson, &c.Phone, &c.Email, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.GSTIN = derefStr(gstin)
	return &c, nil
}

// GetByID fetches one customer by ID.
func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	c, err := scanCustomer(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// List fetches customers ordered by name.
func (r *CustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	return collectCustomers(rows)
}

// ListByCompany fetches one company's customers.
func (r *CustomerRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers
		WHERE company_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customers by company: %w", err)
	}
	defer rows.Close()
	return collectCustomers(rows)
}

// ListAll fetches every customer, for exports.
func (r *CustomerRepo) ListAll() ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list all customers: %w", err)
	}
	defer rows.Close()
	return collectCustomers(rows)
}

// Search matches name, city or GSTIN, case-insensitive.
func (r *CustomerRepo) Search(q string, limit int) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers
		WHERE name ILIKE '%' || $1 || '%' OR city ILIKE '%' || $1 || '%' OR gstin ILIKE '%' || $1 || '%'
		ORDER BY name LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, q, limit)
	if err != nil {
		return nil, fmt.Errorf("search customers: %w", err)
	}
	defer rows.Close()
	return collectCustomers(rows)
}

func collectCustomers(rows pgx.Rows) ([]*entity.Customer, error) {
	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update rewrites all mutable fields. company_id is immutable and absent.
func (r *CustomerRepo) Update(customer *entity.Customer) error {
	query := `
		UPDATE customers
		SET name = $2, address = $3, city = $4, state = $5, pincode = $6, gstin = $7,
		    contact_person = $8, phone = $9, email = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.Name, customer.Address, customer.City, customer.State,
		customer.Pincode, nullIfEmpty(customer.GSTIN), customer.ContactPerson,
		customer.Phone, customer.Email, customer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

// Delete removes one customer.
func (r *CustomerRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}

// DeleteByCompany removes all of a company's customers (cascade path).
func (r *CustomerRepo) DeleteByCompany(companyID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM customers WHERE company_id = $1`, companyID)
	if err != nil {
		return fmt.Errorf("delete customers by company: %w", err)
	}
	return nil
}

// Stats aggregates customer figures in one query.
func (r *CustomerRepo) Stats() (*repository.CustomerStats, error) {
	query := `
		SELECT count(*), count(*) FILTER (WHERE gstin IS NOT NULL AND gstin <> '')
		FROM customers`
	var s repository.CustomerStats
	if err := r.q.QueryRow(context.Background(), query).Scan(&s.Total, &s.WithGSTIN); err != nil {
		return nil, fmt.Errorf("customer stats: %w", err)
	}
	return &s, nil
}
