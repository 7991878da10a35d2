package billing

import (
	"context"

	"github.com/invoicedesk/invoicedesk-api/internal/domain/entity"
)

// ItemSnapshot is one resolved invoice line for document generation:
// the persisted line plus the product fields documents print.
type ItemSnapshot struct {
	entity.InvoiceItem
	HSNCode string
}

// InvoiceSnapshot is a fully resolved, already validated invoice handed to
// document generators. Plain data, no behavior: generators only lay it out.
type InvoiceSnapshot struct {
	Invoice       entity.Invoice
	Company       entity.Company
	Customer      entity.Customer
	Items         []ItemSnapshot
	AmountInWords string
}

// InvoiceDocumentGenerator renders one invoice into an opaque byte stream
// plus its content type. Implemented by the PDF and Excel generators.
type InvoiceDocumentGenerator interface {
	InvoiceDocument(ctx context.Context, snap InvoiceSnapshot) (data []byte, contentType string, err error)
}

// ReportGenerator renders tabular exports of whole collections.
type ReportGenerator interface {
	CustomersReport(ctx context.Context, customers []*entity.Customer) (data []byte, contentType string, err error)
	ProductsReport(ctx context.Context, products []*entity.Product) (data []byte, contentType string, err error)
	InvoicesReport(ctx context.Context, invoices []*entity.Invoice) (data []byte, contentType string, err error)
}
