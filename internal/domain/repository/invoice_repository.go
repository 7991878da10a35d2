package repository

import (
	"github.com/invoicedesk/invoicedesk-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// InvoiceFilter narrows invoice listings. Zero values mean "any".
type InvoiceFilter struct {
	CompanyID  string
	CustomerID string
	Status     string
	Limit      int
	Offset     int
}

// InvoiceStats aggregate figures for the invoices dashboard.
type InvoiceStats struct {
	Total            int64
	ByStatus         map[string]int64
	TotalInvoiced    decimal.Decimal // sum of totals, cancelled excluded
	TotalPaid        decimal.Decimal
	TotalOutstanding decimal.Decimal // sent but not yet paid
}

// InvoiceRepository is the persistence port for Invoice and its items.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	GetByID(id string) (*entity.Invoice, error)
	// GetByIDForUpdate loads the invoice taking a row lock. Only meaningful
	// on a tx-bound repository; it is the per-invoice mutual-exclusion
	// boundary for item mutation, recomputation and status changes.
	GetByIDForUpdate(id string) (*entity.Invoice, error)
	List(filter InvoiceFilter) ([]*entity.Invoice, error)
	Search(query string, limit int) ([]*entity.Invoice, error)
	UpdateHeader(invoice *entity.Invoice) error
	UpdateTotals(invoice *entity.Invoice) error
	UpdateStatus(id, status string) error
	Delete(id string) error
	DeleteByCompany(companyID string) error

	CreateItem(item *entity.InvoiceItem) error
	GetItem(itemID string) (*entity.InvoiceItem, error)
	ListItems(invoiceID string) ([]*entity.InvoiceItem, error)
	CountItems(invoiceID string) (int, error)
	UpdateItem(item *entity.InvoiceItem) error
	DeleteItem(itemID string) error

	Stats() (*InvoiceStats, error)
}

// SequenceRepository allocates per-company invoice sequence numbers.
// NextSequence must be called inside the creating transaction: the sequence
// row lock is what serializes concurrent invoice creation for one company.
type SequenceRepository interface {
	NextSequence(companyID string) (int64, error)
	// Peek returns the number NextSequence would allocate, without
	// allocating it. Advisory only: another creation may claim it first.
	Peek(companyID string) (int64, error)
}
