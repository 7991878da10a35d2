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

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

const companyColumns = `id, name, address, city, state, pincode, gstin, contact_phone, email,
	bank_name, account_number, ifsc_code, created_at, updated_at`

// CompanyRepo implements CompanyRepository over PostgreSQL (pool or tx).
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository builds the adapter. Pass a pool or tx (Querier).
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Create persists a new company.
func (r *CompanyRepo) Create(company *entity.Company) error {
	if company.ID == "" {
		company.ID = uuid.New().String()
	}
	query := `
		INSERT INTO companies (id, name, address, city, state, pincode, gstin, contact_phone, email,
			bank_name, account_number, ifsc_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		company.ID, company.Name, company.Address, company.City, company.State, company.Pincode,
		nullIfEmpty(company.GSTIN), company.ContactPhone, company.Email,
		company.BankName, company.AccountNumber, company.IFSCCode,
		company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

func scanCompany(row pgx.Row) (*entity.Company, error) {
	var c entity.Company
	var gstin *string
	err := row.Scan(
		&c.ID, &c.Name, &c.Address, &c.City, &c.State, &c.Pincode, &gstin,
		&c.ContactPhone, &c.Email, &c.BankName, &c.AccountNumber, &c.IFSCCode,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.GSTIN = derefStr(gstin)
	return &c, nil
}

// GetByID fetches one company by ID.
func (r *CompanyRepo) GetByID(id string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	c, err := scanCompany(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return c, nil
}

// List fetches companies ordered by name.
func (r *CompanyRepo) List(limit, offset int) ([]*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()
	return collectCompanies(rows)
}

// Search matches name or GSTIN, case-insensitive.
func (r *CompanyRepo) Search(q string, limit int) ([]*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies
		WHERE name ILIKE '%' || $1 || '%' OR gstin ILIKE '%' || $1 || '%'
		ORDER BY name LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, q, limit)
	if err != nil {
		return nil, fmt.Errorf("search companies: %w", err)
	}
	defer rows.Close()
	return collectCompanies(rows)
}

func collectCompanies(rows pgx.Rows) ([]*entity.Company, error) {
	var list []*entity.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update rewrites all mutable fields.
func (r *CompanyRepo) Update(company *entity.Company) error {
	query := `
		UPDATE companies
		SET name = $2, address = $3, city = $4, state = $5, pincode = $6, gstin = $7,
		    contact_phone = $8, email = $9, bank_name = $10, account_number = $11,
		    ifsc_code = $12, updated_at = $13
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		company.ID, company.Name, company.Address, company.City, company.State,
		company.Pincode, nullIfEmpty(company.GSTIN), company.ContactPhone, company.Email,
		company.BankName, company.AccountNumber, company.IFSCCode, company.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	return nil
}

// Delete removes the company row only; owned rows are the use case's job.
func (r *CompanyRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	return nil
}

// Stats aggregates company figures in one query.
func (r *CompanyRepo) Stats() (*repository.CompanyStats, error) {
	query := `
		SELECT count(*),
		       count(*) FILTER (WHERE gstin IS NOT NULL AND gstin <> ''),
		       count(*) FILTER (WHERE EXISTS (SELECT 1 FROM invoices i WHERE i.company_id = companies.id))
		FROM companies`
	var s repository.CompanyStats
	err := r.q.QueryRow(context.Background(), query).Scan(&s.Total, &s.WithGSTIN, &s.WithInvoices)
	if err != nil {
		return nil, fmt.Errorf("company stats: %w", err)
	}
	return &s, nil
}
