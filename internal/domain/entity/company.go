package entity

import (
	"strings"
	"time"

	"github.com/invoicedesk/invoicedesk-api/internal/domain"
)

// Company represents the issuing organization. It owns customers, products
// and invoices: deleting a company cascades to all of them, and nothing is
// visible across company boundaries.
type Company struct {
	ID            string
	Name          string
	Address       string
	City          string
	State         string
	Pincode       string
	GSTIN         string // 15-character GST identification number
	ContactPhone  string
	Email         string
	BankName      string
	AccountNumber string
	IFSCCode      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate checks the company's invariants before persisting.
func (c *Company) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return domain.NewValidationError("name", "company name is required")
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
	if c.IFSCCode != "" && len(c.IFSCCode) != 11 {
		return domain.NewValidationError("ifsc_code", "IFSC code must be 11 characters")
	}
	return nil
}
