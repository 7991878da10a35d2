package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoicedesk/invoicedesk-api/internal/domain"
	"github.com/invoicedesk/invoicedesk-api/internal/domain/billing"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name     string
		qty      string
		rate     string
		discount string
		want     string
	}{
		{"no discount", "2", "50", "0", "100"},
		{"ten percent discount", "10", "100", "10", "900"},
		{"full discount", "4", "25", "100", "0"},
		{"fractional quantity", "2.5", "99.99", "0", "249.98"},
		{"rounds half up", "1", "33.335", "0", "33.34"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := billing.LineTotal(billing.LineInput{
				Quantity:        dec(tt.qty),
				Rate:            dec(tt.rate),
				DiscountPercent: dec(tt.discount),
			})
			require.NoError(t, err)
			assert.True(t, got.Equal(dec(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestLineTotalRejectsBadInput(t *testing.T) {
	tests := []struct {
		name     string
		qty      string
		rate     string
		discount string
	}{
		{"zero quantity", "0", "10", "0"},
		{"negative quantity", "-1", "10", "0"},
		{"negative rate", "1", "-10", "0"},
		{"discount above 100", "1", "10", "101"},
		{"negative discount", "1", "10", "-5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := billing.LineTotal(billing.LineInput{
				Quantity:        dec(tt.qty),
				Rate:            dec(tt.rate),
				DiscountPercent: dec(tt.discount),
			})
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))
		})
	}
}

func TestCalculate(t *testing.T) {
	lines := []billing.LineInput{
		{Quantity: dec("10"), Rate: dec("100"), DiscountPercent: dec("10")},
		{Quantity: dec("2"), Rate: dec("50"), DiscountPercent: dec("0")},
	}

	totals, err := billing.Calculate(lines, dec("18"))
	require.NoError(t, err)

	require.Len(t, totals.LineTotals, 2)
	assert.True(t, totals.LineTotals[0].Equal(dec("900")))
	assert.True(t, totals.LineTotals[1].Equal(dec("100")))
	assert.True(t, totals.Subtotal.Equal(dec("1000")))
	assert.True(t, totals.GSTAmount.Equal(dec("180")))
	assert.True(t, totals.Total.Equal(dec("1180")))
}

// The subtotal must equal the sum of rounded line amounts, not the rounded
// sum of exact amounts.
func TestCalculateSumsRoundedLines(t *testing.T) {
	lines := []billing.LineInput{
		{Quantity: dec("1"), Rate: dec("33.333")},
		{Quantity: dec("1"), Rate: dec("33.333")},
		{Quantity: dec("1"), Rate: dec("33.333")},
	}

	totals, err := billing.Calculate(lines, dec("0"))
	require.NoError(t, err)

	// Each line rounds to 33.33; 3 x 33.33 = 99.99, never 100.00.
	assert.True(t, totals.Subtotal.Equal(dec("99.99")), "got %s", totals.Subtotal)
	assert.True(t, totals.Total.Equal(dec("99.99")))
}

func TestCalculateEmptyInvoiceIsZero(t *testing.T) {
	totals, err := billing.Calculate(nil, dec("18"))
	require.NoError(t, err)
	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.GSTAmount.IsZero())
	assert.True(t, totals.Total.IsZero())
}

func TestCalculateIsDeterministic(t *testing.T) {
	lines := []billing.LineInput{
		{Quantity: dec("7"), Rate: dec("129.95"), DiscountPercent: dec("12.5")},
	}
	first, err := billing.Calculate(lines, dec("18"))
	require.NoError(t, err)
	second, err := billing.Calculate(lines, dec("18"))
	require.NoError(t, err)
	assert.True(t, first.Total.Equal(second.Total))
}

func TestCalculateRejectsNegativeGSTRate(t *testing.T) {
	_, err := billing.Calculate(nil, dec("-1"))
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}
