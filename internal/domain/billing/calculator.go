// Package billing holds the pure invoice rules: total derivation and the
// status workflow. Nothing here touches the database or the clock.
package billing

import (
	"github.com/invoicedesk/invoicedesk-api/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// LineInput is one line's contribution to the totals.
type LineInput struct {
	Quantity        decimal.Decimal
	Rate            decimal.Decimal
	DiscountPercent decimal.Decimal
}

// Totals is the derived money of an invoice. LineTotals is ordered like the
// input lines.
type Totals struct {
	LineTotals []decimal.Decimal
	Subtotal   decimal.Decimal
	GSTAmount  decimal.Decimal
	Total      decimal.Decimal
}

// LineTotal derives one line's amount: quantity x rate less the discount,
// rounded to two decimals. Each line is rounded before summation so that the
// subtotal is exactly the sum of the printed line amounts.
func LineTotal(in LineInput) (decimal.Decimal, error) {
	if !in.Quantity.IsPositive() {
		return decimal.Zero, domain.NewValidationError("quantity", "quantity must be greater than 0")
	}
	if in.Rate.IsNegative() {
		return decimal.Zero, domain.NewValidationError("rate", "rate cannot be negative")
	}
	if in.DiscountPercent.IsNegative() || in.DiscountPercent.GreaterThan(hundred) {
		return decimal.Zero, domain.NewValidationError("discount_percent", "discount percent must be between 0 and 100")
	}
	base := in.Quantity.Mul(in.Rate)
	discount := base.Mul(in.DiscountPercent).Div(hundred)
	return base.Sub(discount).Round(2), nil
}

// Calculate derives all totals for an ordered set of lines and a GST rate
// given in percent (18 means 18%). It is deterministic and side-effect free;
// recomputing over unchanged input yields identical output.
func Calculate(lines []LineInput, gstRatePercent decimal.Decimal) (Totals, error) {
	if gstRatePercent.IsNegative() {
		return Totals{}, domain.NewValidationError("gst_rate", "GST rate cannot be negative")
	}

	lineTotals := make([]decimal.Decimal, 0, len(lines))
	subtotal := decimal.Zero
	for _, line := range lines {
		amount, err := LineTotal(line)
		if err != nil {
			return Totals{}, err
		}
		lineTotals = append(lineTotals, amount)
		subtotal = subtotal.Add(amount)
	}

	gst := subtotal.Mul(gstRatePercent).Div(hundred).Round(2)
	return Totals{
		LineTotals: lineTotals,
		Subtotal:   subtotal,
		GSTAmount:  gst,
		Total:      subtotal.Add(gst),
	}, nil
}
