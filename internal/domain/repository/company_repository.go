package repository

import "github.com/invoicedesk/invoicedesk-api/internal/domain/entity"

// CompanyStats aggregate figures for the companies dashboard.
type CompanyStats struct {
	Total        int64
	WithGSTIN    int64
	WithInvoices int64
}

// CompanyRepository is the persistence port for Company.
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	List(limit, offset int) ([]*entity.Company, error)
	Search(query string, limit int) ([]*entity.Company, error)
	Update(company *entity.Company) error
	// Delete removes only the company row. Cascading to owned customers,
	// products and invoices is the use case's job, inside one transaction.
	Delete(id string) error
	Stats() (*CompanyStats, error)
}
