// Package numwords converts decimal amounts into English words using the
// Indian numbering system (thousand, lakh, crore). Invoice documents print
// the grand total as e.g. "One Thousand One Hundred Eighty Rupees Only".
package numwords

import (
	"strings"

	"github.com/shopspring/decimal"
)

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// belowHundred spells 0..99. Empty string for zero (callers handle it).
func belowHundred(n int64) string {
	if n < 20 {
		return ones[n]
	}
	if n%10 == 0 {
		return tens[n/10]
	}
	return tens[n/10] + " " + ones[n%10]
}

// belowThousand spells 0..999.
func belowThousand(n int64) string {
	if n < 100 {
		return belowHundred(n)
	}
	s := ones[n/100] + " Hundred"
	if rest := n % 100; rest != 0 {
		s += " " + belowHundred(rest)
	}
	return s
}

// Words spells a non-negative integer in the Indian system.
// Grouping after the first three digits is by twos: crore, lakh, thousand.
func Words(n int64) string {
	if n == 0 {
		return "Zero"
	}
	if n < 0 {
		return "Minus " + Words(-n)
	}

	var parts []string
	appendPart := func(v int64, label string) {
		if v != 0 {
			p := belowHundred(v)
			if label != "" {
				p += " " + label
			}
			parts = append(parts, p)
		}
	}

	// The crore group carries everything above 1e7 and can itself exceed
	// two digits, so it recurses ("One Hundred Crore", "One Crore Crore").
	if crore := n / 10000000; crore != 0 {
		parts = append(parts, Words(crore)+" Crore")
	}
	appendPart((n/100000)%100, "Lakh")
	appendPart((n/1000)%100, "Thousand")
	if h := n % 1000; h != 0 {
		parts = append(parts, belowThousand(h))
	}
	return strings.Join(parts, " ")
}

// Rupees spells a monetary amount as rupees and paise, ending in "Only".
// The amount is rounded to two decimals first, matching invoice totals.
func Rupees(amount decimal.Decimal) string {
	amount = amount.Round(2)
	neg := amount.IsNegative()
	if neg {
		amount = amount.Neg()
	}

	rupees := amount.IntPart()
	paise := amount.Sub(decimal.NewFromInt(rupees)).Mul(decimal.NewFromInt(100)).IntPart()

	s := Words(rupees) + " Rupees"
	if paise != 0 {
		s += " And " + Words(paise) + " Paise"
	}
	s += " Only"
	if neg {
		s = "Minus " + s
	}
	return s
}
