package ports

import (
	"context"

	"github.com/invoicedesk/invoicedesk-api/internal/domain/repository"
)

// RepoSet is the bundle of repositories bound to one transaction.
type RepoSet struct {
	Companies repository.CompanyRepository
	Customers repository.CustomerRepository
	Products  repository.ProductRepository
	Invoices  repository.InvoiceRepository
	Sequences repository.SequenceRepository
}

// TxRunner executes fn inside a database transaction; the RepoSet it passes
// is bound to that transaction. Returning an error rolls everything back.
// This is the all-or-nothing boundary for invoice mutation, sequence
// allocation and cascade deletes.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx RepoSet) error) error
}
