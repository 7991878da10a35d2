package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceItemRequest one line of an invoice, as submitted. Rate falls back
// to the referenced product's rate when zero; Unit falls back to the
// product's unit.
type InvoiceItemRequest struct {
	ProductID       string          `json:"product_id"`
	Description     string          `json:"description"`
	Quantity        decimal.Decimal `json:"quantity"`
	Unit            string          `json:"unit"`
	Rate            decimal.Decimal `json:"rate"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}

// CreateInvoiceRequest payload for POST /api/invoices. The invoice number is
// allocated server-side; Date defaults to today.
type CreateInvoiceRequest struct {
	CompanyID    string               `json:"company_id"`
	CustomerID   string               `json:"customer_id"`
	Date         string               `json:"invoice_date"` // YYYY-MM-DD
	PONumber     string               `json:"po_number"`
	PODate       string               `json:"po_date"` // YYYY-MM-DD
	PaymentMode  string               `json:"payment_mode"`
	Transport    string               `json:"transport"`
	DispatchFrom string               `json:"dispatch_from"`
	Items        []InvoiceItemRequest `json:"items"`
}

// UpdateInvoiceRequest payload for PUT /api/invoices/:id. Header fields only;
// company, number and totals are never writable, status has its own endpoint.
type UpdateInvoiceRequest struct {
	CustomerID   *string `json:"customer_id"`
	Date         *string `json:"invoice_date"`
	PONumber     *string `json:"po_number"`
	PODate       *string `json:"po_date"`
	PaymentMode  *string `json:"payment_mode"`
	Transport    *string `json:"transport"`
	DispatchFrom *string `json:"dispatch_from"`
}

// UpdateInvoiceStatusRequest payload for PUT /api/invoices/:id/status.
// Override requests the administrative bypass of the workflow table.
type UpdateInvoiceStatusRequest struct {
	Status   string `json:"status"`
	Override bool   `json:"override"`
}

// InvoiceItemResponse serialized invoice line.
type InvoiceItemResponse struct {
	ID              string          `json:"id"`
	InvoiceID       string          `json:"invoice_id"`
	ProductID       string          `json:"product_id,omitempty"`
	Description     string          `json:"description"`
	Quantity        decimal.Decimal `json:"quantity"`
	Unit            string          `json:"unit"`
	Rate            decimal.Decimal `json:"rate"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	Amount          decimal.Decimal `json:"amount"`
}

// InvoiceResponse serialized invoice with items.
type InvoiceResponse struct {
	ID           string                `json:"id"`
	CompanyID    string                `json:"company_id"`
	CustomerID   string                `json:"customer_id"`
	Number       string                `json:"invoice_number"`
	Date         string                `json:"invoice_date"`
	PONumber     string                `json:"po_number,omitempty"`
	PODate       string                `json:"po_date,omitempty"`
	PaymentMode  string                `json:"payment_mode,omitempty"`
	Transport    string                `json:"transport,omitempty"`
	DispatchFrom string                `json:"dispatch_from,omitempty"`
	Status       string                `json:"status"`
	Subtotal     decimal.Decimal       `json:"subtotal"`
	GSTAmount    decimal.Decimal       `json:"gst_amount"`
	TotalAmount  decimal.Decimal       `json:"total_amount"`
	GSTRate      decimal.Decimal       `json:"gst_rate"`
	Items        []InvoiceItemResponse `json:"items"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// InvoiceListResponse paginated invoice listing (headers only).
type InvoiceListResponse struct {
	Items []InvoiceResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// InvoiceStatsResponse aggregate invoice figures.
type InvoiceStatsResponse struct {
	Total            int64            `json:"total"`
	ByStatus         map[string]int64 `json:"status_breakdown"`
	TotalInvoiced    decimal.Decimal  `json:"total_invoiced"`
	TotalPaid        decimal.Decimal  `json:"total_paid"`
	TotalOutstanding decimal.Decimal  `json:"total_outstanding"`
}

// NextNumberResponse preview of the next invoice number for a company.
type NextNumberResponse struct {
	CompanyID string `json:"company_id"`
	Number    string `json:"next_invoice_number"`
}
