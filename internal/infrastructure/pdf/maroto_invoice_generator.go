// Package pdf renders tax invoices with Maroto v2.
//
// A4 page layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Company name + GSTIN  │  Invoice no. + Date         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SELLER: address / phone / email / bank details              │
//	│  BILL TO: customer name + GSTIN + contact                    │
//	│  PO / payment mode / transport / dispatch                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: # | Description | HSN | Qty | Unit | Rate | Disc | Amt│
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALS: Subtotal / GST / GRAND TOTAL + amount in words      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appbilling "github.com/invoicedesk/invoicedesk-api/internal/application/billing"
	"github.com/invoicedesk/invoicedesk-api/internal/domain/entity"
)

// ContentType of the generated documents.
const ContentType = "application/pdf"

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoInvoiceGenerator implements billing.InvoiceDocumentGenerator using
// Maroto v2.
type MarotoInvoiceGenerator struct{}

// NewMarotoInvoiceGenerator builds the generator.
func NewMarotoInvoiceGenerator() *MarotoInvoiceGenerator { return &MarotoInvoiceGenerator{} }

var _ appbilling.InvoiceDocumentGenerator = (*MarotoInvoiceGenerator)(nil)

// InvoiceDocument renders the invoice and returns the PDF bytes.
func (g *MarotoInvoiceGenerator) InvoiceDocument(
	_ context.Context,
	snap appbilling.InvoiceSnapshot,
) ([]byte, string, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Tax Invoice "+snap.Invoice.Number, true).
		WithAuthor(snap.Company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(&snap.Invoice, &snap.Company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(sellerRow(&snap.Company))
	m.AddRows(billToRow(&snap.Customer))
	m.AddRows(dispatchRow(&snap.Invoice))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(snap.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(&snap.Invoice))
	m.AddRows(amountInWordsRow(snap.AmountInWords))
	m.AddRows(line.NewRow(2))
	m.AddRows(bankAndSignatureRow(&snap.Company))

	doc, err := m.Generate()
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), ContentType, nil
}

// headerRow: company name + GSTIN (left), invoice number + date (right).
func headerRow(invoice *entity.Invoice, company *entity.Company) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("GSTIN: "+nonEmpty(company.GSTIN, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("TAX INVOICE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(invoice.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Date: "+invoice.Date.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// sellerRow: issuing company's address and contact.
func sellerRow(company *entity.Company) core.Row {
	addr := company.Address
	if company.City != "" {
		addr += ", " + company.City
	}
	if company.State != "" {
		addr += ", " + company.State
	}
	if company.Pincode != "" {
		addr += " - " + company.Pincode
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("SELLER", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Address: %s   |   Phone: %s   |   Email: %s",
				nonEmpty(addr, "—"),
				nonEmpty(company.ContactPhone, "—"),
				nonEmpty(company.Email, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// billToRow: buyer block.
func billToRow(customer *entity.Customer) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("BILL TO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(customer.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("GSTIN: %s   |   Contact: %s   |   Phone: %s",
				nonEmpty(customer.GSTIN, "—"),
				nonEmpty(customer.ContactPerson, "—"),
				nonEmpty(customer.Phone, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// dispatchRow: purchase order and shipping references.
func dispatchRow(invoice *entity.Invoice) core.Row {
	poDate := "—"
	if invoice.PODate != nil {
		poDate = invoice.PODate.Format("02/01/2006")
	}
	return row.New(10).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("PO No: %s   |   PO Date: %s   |   Payment: %s   |   Transport: %s   |   Dispatch From: %s",
				nonEmpty(invoice.PONumber, "—"),
				poDate,
				nonEmpty(invoice.PaymentMode, "—"),
				nonEmpty(invoice.Transport, "—"),
				nonEmpty(invoice.DispatchFrom, "—"),
			), props.Text{Size: 8, Top: 2, Color: colorGray}),
		),
	)
}

// tableHeaderRow: item table header.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Description", 4, align.Left),
		h("HSN", 1, align.Center),
		h("Qty", 1, align.Right),
		h("Unit", 1, align.Center),
		h("Rate", 2, align.Right),
		h("Disc%", 1, align.Center),
		h("Amount", 1, align.Right),
	)
}

// tableItemRows: one row per invoice line, in display position order.
func tableItemRows(items []appbilling.ItemSnapshot) []core.Row {
	result := make([]core.Row, 0, len(items))
	for i, it := range items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", i+1),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(4).Add(text.New(
				it.Description,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				nonEmpty(it.HSNCode, "—"),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(1).Add(text.New(
				it.Quantity.String(),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				it.Unit,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				it.Rate.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				it.DiscountPercent.StringFixed(0),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(1).Add(text.New(
				it.Amount.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: right-aligned totals block.
func totalsRow(invoice *entity.Invoice) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(26).Add(
		col.New(5),
		col.New(4).Add(
			label("Subtotal:"),
			label(fmt.Sprintf("GST @ %s%%:", invoice.GSTRate.StringFixed(0))),
			grandLabel("GRAND TOTAL:"),
		),
		col.New(3).Add(
			value(invoice.Subtotal.StringFixed(2)),
			value(invoice.GSTAmount.StringFixed(2)),
			grandValue(invoice.TotalAmount.StringFixed(2)),
		),
	)
}

// amountInWordsRow: the total spelled out.
func amountInWordsRow(words string) core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New("Amount in words: "+words, props.Text{
				Style: fontstyle.Italic, Size: 8, Top: 2, Color: colorGray,
			}),
		),
	)
}

// bankAndSignatureRow: remittance details and the signature box.
func bankAndSignatureRow(company *entity.Company) core.Row {
	bank := "—"
	if company.BankName != "" {
		bank = fmt.Sprintf("%s   |   A/c No: %s   |   IFSC: %s",
			company.BankName,
			nonEmpty(company.AccountNumber, "—"),
			nonEmpty(company.IFSCCode, "—"),
		)
	}
	return row.New(22).Add(
		col.New(8).Add(
			text.New("BANK DETAILS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(bank, props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("For "+company.Name, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1,
			}),
			text.New("Authorised Signatory", props.Text{
				Size: 8, Align: align.Right, Top: 18, Color: colorGray,
			}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
