// Package excel renders invoices and collection reports as .xlsx workbooks
// using excelize.
package excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	appbilling "github.com/invoicedesk/invoicedesk-api/internal/application/billing"
	"github.com/invoicedesk/invoicedesk-api/internal/domain/entity"
)

// ContentType of the generated workbooks.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExcelizeGenerator implements billing.InvoiceDocumentGenerator and
// billing.ReportGenerator.
type ExcelizeGenerator struct{}

// NewExcelizeGenerator builds the generator.
func NewExcelizeGenerator() *ExcelizeGenerator { return &ExcelizeGenerator{} }

var (
	_ appbilling.InvoiceDocumentGenerator = (*ExcelizeGenerator)(nil)
	_ appbilling.ReportGenerator          = (*ExcelizeGenerator)(nil)
)

// InvoiceDocument renders one invoice as a single-sheet workbook.
func (g *ExcelizeGenerator) InvoiceDocument(
	_ context.Context,
	snap appbilling.InvoiceSnapshot,
) ([]byte, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Invoice"
	f.SetSheetName(f.GetSheetName(0), sheet)

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, "", fmt.Errorf("excel: create style: %w", err)
	}

	set := func(cell string, value any) {
		// SetCellValue only errors on malformed references; ours are fixed.
		_ = f.SetCellValue(sheet, cell, value)
	}
	setBold := func(cell string, value any) {
		set(cell, value)
		_ = f.SetCellStyle(sheet, cell, cell, bold)
	}

	setBold("A1", snap.Company.Name)
	set("A2", "GSTIN: "+snap.Company.GSTIN)
	setBold("F1", "TAX INVOICE")
	set("F2", snap.Invoice.Number)
	set("F3", "Date: "+snap.Invoice.Date.Format("02/01/2006"))

	setBold("A4", "Bill To")
	set("A5", snap.Customer.Name)
	set("A6", "GSTIN: "+snap.Customer.GSTIN)
	set("A7", "PO No: "+snap.Invoice.PONumber)
	set("A8", "Payment Mode: "+snap.Invoice.PaymentMode)

	headers := []string{"#", "Description", "HSN", "Qty", "Unit", "Rate", "Disc%", "Amount"}
	const headerRow = 10
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		setBold(cell, h)
	}

	r := headerRow + 1
	for i, it := range snap.Items {
		values := []any{
			i + 1, it.Description, it.HSNCode,
			it.Quantity.InexactFloat64(), it.Unit,
			it.Rate.InexactFloat64(), it.DiscountPercent.InexactFloat64(),
			it.Amount.InexactFloat64(),
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r)
			set(cell, v)
		}
		r++
	}

	r++
	setBold(fmt.Sprintf("G%d", r), "Subtotal")
	set(fmt.Sprintf("H%d", r), snap.Invoice.Subtotal.InexactFloat64())
	r++
	setBold(fmt.Sprintf("G%d", r), fmt.Sprintf("GST @ %s%%", snap.Invoice.GSTRate.StringFixed(0)))
	set(fmt.Sprintf("H%d", r), snap.Invoice.GSTAmount.InexactFloat64())
	r++
	setBold(fmt.Sprintf("G%d", r), "Grand Total")
	setBold(fmt.Sprintf("H%d", r), snap.Invoice.TotalAmount.InexactFloat64())
	r += 2
	set(fmt.Sprintf("A%d", r), "Amount in words: "+snap.AmountInWords)

	_ = f.SetColWidth(sheet, "B", "B", 40)
	_ = f.SetColWidth(sheet, "F", "H", 12)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("excel: write workbook: %w", err)
	}
	return buf.Bytes(), ContentType, nil
}

// CustomersReport renders the customer list as a workbook.
func (g *ExcelizeGenerator) CustomersReport(
	_ context.Context,
	customers []*entity.Customer,
) ([]byte, string, error) {
	headers := []string{"Name", "City", "State", "GSTIN", "Contact Person", "Phone", "Email"}
	return g.report("Customers", headers, len(customers), func(i int) []any {
		c := customers[i]
		return []any{c.Name, c.City, c.State, c.GSTIN, c.ContactPerson, c.Phone, c.Email}
	})
}

// ProductsReport renders the product catalog as a workbook.
func (g *ExcelizeGenerator) ProductsReport(
	_ context.Context,
	products []*entity.Product,
) ([]byte, string, error) {
	headers := []string{"Category", "Name", "Description", "Unit", "Rate", "HSN Code"}
	return g.report("Products", headers, len(products), func(i int) []any {
		p := products[i]
		return []any{p.Category, p.Name, p.Description, p.Unit, p.Rate.InexactFloat64(), p.HSNCode}
	})
}

// InvoicesReport renders the invoice register as a workbook.
func (g *ExcelizeGenerator) InvoicesReport(
	_ context.Context,
	invoices []*entity.Invoice,
) ([]byte, string, error) {
	headers := []string{"Number", "Date", "Status", "Subtotal", "GST", "Total"}
	return g.report("Invoices", headers, len(invoices), func(i int) []any {
		inv := invoices[i]
		return []any{
			inv.Number, inv.Date.Format("02/01/2006"), inv.Status,
			inv.Subtotal.InexactFloat64(), inv.GSTAmount.InexactFloat64(),
			inv.TotalAmount.InexactFloat64(),
		}
	})
}

// report writes one header row plus n data rows produced by rowAt.
func (g *ExcelizeGenerator) report(
	sheet string,
	headers []string,
	n int,
	rowAt func(i int) []any,
) ([]byte, string, error) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName(f.GetSheetName(0), sheet)

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, "", fmt.Errorf("excel: create style: %w", err)
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
		_ = f.SetCellStyle(sheet, cell, cell, bold)
	}
	for i := 0; i < n; i++ {
		for c, v := range rowAt(i) {
			cell, _ := excelize.CoordinatesToCellName(c+1, i+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}
	last, _ := excelize.ColumnNumberToName(len(headers))
	_ = f.SetColWidth(sheet, "A", last, 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("excel: write workbook: %w", err)
	}
	return buf.Bytes(), ContentType, nil
}
