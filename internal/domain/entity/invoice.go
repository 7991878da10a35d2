package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/invoicedesk/invoicedesk-api/internal/domain"
	"github.com/shopspring/decimal"
)

// Invoice lifecycle states. The workflow is DRAFT -> SENT -> PAID;
// CANCELLED is reachable only through the administrative status override.
const (
	StatusDraft     = "DRAFT"
	StatusSent      = "SENT"
	StatusPaid      = "PAID"
	StatusCancelled = "CANCELLED"
)

// DefaultPaymentMode is assumed when the request does not specify one.
const DefaultPaymentMode = "RTGS/NEFT"

// ValidStatus reports whether s is a known invoice status.
func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

// Invoice is the header of a tax invoice. Sequence is unique and monotonic
// within a company; Number is its display form. Subtotal, GSTAmount and
// TotalAmount are derived from the items and the GSTRate snapshot, never set
// directly by callers.
type Invoice struct {
	ID           string
	CompanyID    string
	CustomerID   string
	Sequence     int64
	Number       string
	Date         time.Time
	PONumber     string
	PODate       *time.Time
	PaymentMode  string
	Transport    string
	DispatchFrom string
	Status       string
	Subtotal     decimal.Decimal
	GSTAmount    decimal.Decimal
	TotalAmount  decimal.Decimal
	GSTRate      decimal.Decimal // percent snapshot the totals were computed with
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FormatNumber renders the display number for a sequence allocated in year.
func FormatNumber(year int, sequence int64) string {
	return fmt.Sprintf("INV-%d-%04d", year, sequence)
}

// Validate checks the invoice header invariants before persisting.
func (inv *Invoice) Validate() error {
	if inv.CompanyID == "" {
		return domain.NewValidationError("company_id", "company is required")
	}
	if inv.CustomerID == "" {
		return domain.NewValidationError("customer_id", "customer is required")
	}
	if strings.TrimSpace(inv.Number) == "" {
		return domain.NewValidationError("invoice_number", "invoice number is required")
	}
	if inv.Date.IsZero() {
		return domain.NewValidationError("invoice_date", "invoice date is required")
	}
	if inv.Date.After(endOfToday()) {
		return domain.NewValidationError("invoice_date", "invoice date cannot be in the future")
	}
	if !ValidStatus(inv.Status) {
		return domain.NewValidationError("status", "invalid status")
	}
	return nil
}

// endOfToday returns the last instant of the current local day, so a date of
// "today" at any clock time passes the not-in-the-future check.
func endOfToday() time.Time {
	now := time.Now()
	y, m, d := now.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), now.Location())
}
