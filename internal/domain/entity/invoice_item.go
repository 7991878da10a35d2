package entity

import (
	"strings"
	"time"

	"github.com/invoicedesk/invoicedesk-api/internal/domain"
	"github.com/shopspring/decimal"
)

// InvoiceItem is one line of an invoice. Position preserves insertion order
// for display. Amount is derived (quantity x rate less discount, rounded to
// two decimals), never set directly by callers.
type InvoiceItem struct {
	ID              string
	InvoiceID       string
	ProductID       string // optional product reference; description/rate are snapshots
	Description     string
	Quantity        decimal.Decimal
	Unit            string
	Rate            decimal.Decimal
	DiscountPercent decimal.Decimal
	Amount          decimal.Decimal
	Position        int
	CreatedAt       time.Time
}

// Validate checks the line invariants before persisting.
func (it *InvoiceItem) Validate() error {
	if strings.TrimSpace(it.Description) == "" {
		return domain.NewValidationError("description", "item description is required")
	}
	if !it.Quantity.IsPositive() {
		return domain.NewValidationError("quantity", "quantity must be greater than 0")
	}
	if !it.Rate.IsPositive() {
		return domain.NewValidationError("rate", "rate must be greater than 0")
	}
	if it.DiscountPercent.IsNegative() || it.DiscountPercent.GreaterThan(decimal.NewFromInt(100)) {
		return domain.NewValidationError("discount_percent", "discount percent must be between 0 and 100")
	}
	if strings.TrimSpace(it.Unit) == "" {
		return domain.NewValidationError("unit", "unit is required")
	}
	return nil
}
