package entity

import (
	"strings"
	"time"

	"github.com/invoicedesk/invoicedesk-api/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultUnit is the unit of measure assumed when none is given.
const DefaultUnit = "KG"

// Product represents a sellable item. It belongs to exactly one company;
// CompanyID is set at creation and never changes. Invoice items reference
// products but snapshot their own description and rate.
type Product struct {
	ID          string
	CompanyID   string
	Category    string
	Name        string
	Description string
	Unit        string
	Rate        decimal.Decimal
	HSNCode     string // Harmonized System Nomenclature code, for tax classification
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the product's invariants before persisting.
func (p *Product) Validate() error {
	if p.CompanyID == "" {
		return domain.NewValidationError("company_id", "company is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return domain.NewValidationError("name", "product name is required")
	}
	if p.Rate.IsNegative() {
		return domain.NewValidationError("rate", "rate cannot be negative")
	}
	if strings.TrimSpace(p.Unit) == "" {
		return domain.NewValidationError("unit", "unit is required")
	}
	if p.HSNCode != "" && !isAlphanumeric(strings.ReplaceAll(p.HSNCode, " ", "")) {
		return domain.NewValidationError("hsn_code", "HSN code must be alphanumeric")
	}
	return nil
}

// DisplayName prefixes the category when one is set.
func (p *Product) DisplayName() string {
	if p.Category != "" {
		return p.Category + " - " + p.Name
	}
	return p.Name
}
