package repository

import "github.com/invoicedesk/invoicedesk-api/internal/domain/entity"

// CustomerStats aggregate figures for the customers dashboard.
type CustomerStats struct {
	Total     int64
	WithGSTIN int64
}

// CustomerRepository is the persistence port for Customer.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	List(limit, offset int) ([]*entity.Customer, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Customer, error)
	ListAll() ([]*entity.Customer, error)
	Search(query string, limit int) ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
	Delete(id string) error
	DeleteByCompany(companyID string) error
	Stats() (*CustomerStats, error)
}
