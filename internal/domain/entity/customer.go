package entity

import (
	"strings"
	"time"

	"github.com/invoicedesk/invoicedesk-api/internal/domain"
)

// Customer represents a buyer. It belongs to exactly one company; CompanyID
// is set at creation and never changes.
type Customer struct {
	ID            string
	CompanyID     string
	Name          string
	Address       string
	City          string
	State         string
	Pincode       string
	GSTIN         string
	ContactPerson string
	Phone         string
	Email         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate checks the customer's invariants before persisting.
func (c *Customer) Validate() error {
	if c.CompanyID == "" {
		return domain.NewValidationError("company_id", "company is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return domain.NewValidationError("name", "customer name is required")
	}
	if c.Email != "" && !validEmail(c.Email) {
		return domain.NewValidationError("email", "invalid email format")
	}
	if c.GSTIN != "" && len(c.GSTIN) != 15 {
		return domain.NewValidationError("gstin", "GSTIN must be 15 characters")
	}
	if c.Pincode != "" && !isDigits(c.Pincode) {
		return domain.NewValidationError("pincode", "pincode must be numeric")
	}
	return nil
}
