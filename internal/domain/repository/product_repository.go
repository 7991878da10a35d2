package repository

import (
	"github.com/invoicedesk/invoicedesk-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductStats aggregate figures for the products dashboard.
type ProductStats struct {
	Total       int64
	Categories  int64
	AverageRate decimal.Decimal
}

// ProductRepository is the persistence port for Product.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error)
	ListByCategory(category string) ([]*entity.Product, error)
	ListAll() ([]*entity.Product, error)
	Categories() ([]string, error)
	Search(query string, limit int) ([]*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error
	DeleteByCompany(companyID string) error
	Stats() (*ProductStats, error)
}
