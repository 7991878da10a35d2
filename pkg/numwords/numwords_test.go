package numwords_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/invoicedesk/invoicedesk-api/pkg/numwords"
)

func TestWords(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "Zero"},
		{7, "Seven"},
		{13, "Thirteen"},
		{40, "Forty"},
		{99, "Ninety Nine"},
		{100, "One Hundred"},
		{118, "One Hundred Eighteen"},
		{900, "Nine Hundred"},
		{1000, "One Thousand"},
		{1180, "One Thousand One Hundred Eighty"},
		{99999, "Ninety Nine Thousand Nine Hundred Ninety Nine"},
		{100000, "One Lakh"},
		{2550000, "Twenty Five Lakh Fifty Thousand"},
		{10000000, "One Crore"},
		{12345678, "One Crore Twenty Three Lakh Forty Five Thousand Six Hundred Seventy Eight"},
		{990000000, "Ninety Nine Crore"},
		{1000000000, "One Hundred Crore"},
		{10250000000, "One Thousand Twenty Five Crore"},
		{100000000000000, "One Crore Crore"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, numwords.Words(tt.n), "n=%d", tt.n)
	}
}

func TestWordsNegative(t *testing.T) {
	assert.Equal(t, "Minus Forty Two", numwords.Words(-42))
}

func TestRupees(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"1180", "One Thousand One Hundred Eighty Rupees Only"},
		{"1180.00", "One Thousand One Hundred Eighty Rupees Only"},
		{"12.34", "Twelve Rupees And Thirty Four Paise Only"},
		{"0.50", "Zero Rupees And Fifty Paise Only"},
		{"0", "Zero Rupees Only"},
		// Rounded to two decimals before spelling.
		{"99.999", "One Hundred Rupees Only"},
		{"1000000000", "One Hundred Crore Rupees Only"},
	}
	for _, tt := range tests {
		d, err := decimal.NewFromString(tt.amount)
		assert.NoError(t, err)
		assert.Equal(t, tt.want, numwords.Rupees(d), "amount=%s", tt.amount)
	}
}
