package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/invoicedesk/invoicedesk-api/internal/domain"
	"github.com/invoicedesk/invoicedesk-api/internal/domain/repository"
	"github.com/invoicedesk/invoicedesk-api/pkg/numwords"
)

// ExportUseCase resolves an invoice into a complete snapshot and hands it to
// a document generator. The generators never compute anything beyond layout
// and the amount-in-words line, which is precomputed here too.
type ExportUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	companyRepo  repository.CompanyRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	pdf          InvoiceDocumentGenerator
	excel        InvoiceDocumentGenerator
	reports      ReportGenerator
}

// NewExportUseCase builds the use case.
func NewExportUseCase(
	invoiceRepo repository.InvoiceRepository,
	companyRepo repository.CompanyRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	pdf InvoiceDocumentGenerator,
	excel InvoiceDocumentGenerator,
	reports ReportGenerator,
) *ExportUseCase {
	return &ExportUseCase{
		invoiceRepo:  invoiceRepo,
		companyRepo:  companyRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		pdf:          pdf,
		excel:        excel,
		reports:      reports,
	}
}

// Snapshot resolves every piece of data a document needs: header, company,
// customer, items enriched with product HSN codes, and the total in words.
func (uc *ExportUseCase) Snapshot(ctx context.Context, invoiceID string) (*InvoiceSnapshot, error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, fmt.Errorf("export: load invoice: %w", err)
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	company, err := uc.companyRepo.GetByID(inv.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("export: load company: %w", err)
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	customer, err := uc.customerRepo.GetByID(inv.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("export: load customer: %w", err)
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	rawItems, err := uc.invoiceRepo.ListItems(invoiceID)
	if err != nil {
		return nil, fmt.Errorf("export: load items: %w", err)
	}

	items := make([]ItemSnapshot, 0, len(rawItems))
	for _, it := range rawItems {
		snap := ItemSnapshot{InvoiceItem: *it}
		if it.ProductID != "" {
			if product, pErr := uc.productRepo.GetByID(it.ProductID); pErr == nil && product != nil {
				snap.HSNCode = product.HSNCode
			}
		}
		items = append(items, snap)
	}

	return &InvoiceSnapshot{
		Invoice:       *inv,
		Company:       *company,
		Customer:      *customer,
		Items:         items,
		AmountInWords: numwords.Rupees(inv.TotalAmount),
	}, nil
}

// InvoicePDF renders the invoice as a PDF.
func (uc *ExportUseCase) InvoicePDF(ctx context.Context, invoiceID string) (data []byte, contentType, filename string, err error) {
	return uc.invoiceDocument(ctx, invoiceID, uc.pdf, "pdf")
}

// InvoiceExcel renders the invoice as a spreadsheet.
func (uc *ExportUseCase) InvoiceExcel(ctx context.Context, invoiceID string) (data []byte, contentType, filename string, err error) {
	return uc.invoiceDocument(ctx, invoiceID, uc.excel, "xlsx")
}

func (uc *ExportUseCase) invoiceDocument(
	ctx context.Context,
	invoiceID string,
	gen InvoiceDocumentGenerator,
	ext string,
) (data []byte, contentType, filename string, err error) {
	snap, err := uc.Snapshot(ctx, invoiceID)
	if err != nil {
		return nil, "", "", err
	}
	data, contentType, err = gen.InvoiceDocument(ctx, *snap)
	if err != nil {
		return nil, "", "", fmt.Errorf("export: generate document: %w", err)
	}
	safe := strings.ReplaceAll(snap.Invoice.Number, "/", "_")
	return data, contentType, fmt.Sprintf("invoice_%s.%s", safe, ext), nil
}

// CustomersReport exports all customers as a spreadsheet.
func (uc *ExportUseCase) CustomersReport(ctx context.Context) (data []byte, contentType, filename string, err error) {
	customers, err := uc.customerRepo.ListAll()
	if err != nil {
		return nil, "", "", fmt.Errorf("export: load customers: %w", err)
	}
	data, contentType, err = uc.reports.CustomersReport(ctx, customers)
	if err != nil {
		return nil, "", "", fmt.Errorf("export: customers report: %w", err)
	}
	return data, contentType, "customers_report.xlsx", nil
}

// ProductsReport exports all products as a spreadsheet.
func (uc *ExportUseCase) ProductsReport(ctx context.Context) (data []byte, contentType, filename string, err error) {
	products, err := uc.productRepo.ListAll()
	if err != nil {
		return nil, "", "", fmt.Errorf("export: load products: %w", err)
	}
	data, contentType, err = uc.reports.ProductsReport(ctx, products)
	if err != nil {
		return nil, "", "", fmt.Errorf("export: products report: %w", err)
	}
	return data, contentType, "products_report.xlsx", nil
}

// InvoicesReport exports all invoice headers as a spreadsheet.
func (uc *ExportUseCase) InvoicesReport(ctx context.Context) (data []byte, contentType, filename string, err error) {
	invoices, err := uc.invoiceRepo.List(repository.InvoiceFilter{})
	if err != nil {
		return nil, "", "", fmt.Errorf("export: load invoices: %w", err)
	}
	data, contentType, err = uc.reports.InvoicesReport(ctx, invoices)
	if err != nil {
		return nil, "", "", fmt.Errorf("export: invoices report: %w", err)
	}
	return data, contentType, "invoices_report.xlsx", nil
}
