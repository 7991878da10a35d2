package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoicedesk/invoicedesk-api/internal/domain"
	"github.com/invoicedesk/invoicedesk-api/internal/domain/entity"
)

func validCompany() *entity.Company {
	return &entity.Company{
		ID:      "c1",
		Name:    "Acme Traders",
		Email:   "billing@acme.example",
		GSTIN:   "22AAAAA0000A1Z5",
		Pincode: "400001",
	}
}

func TestCompanyValidate(t *testing.T) {
	require.NoError(t, validCompany().Validate())

	tests := []struct {
		name   string
		mutate func(*entity.Company)
	}{
		{"empty name", func(c *entity.Company) { c.Name = "  " }},
		{"bad email", func(c *entity.Company) { c.Email = "not-an-email" }},
		{"short gstin", func(c *entity.Company) { c.GSTIN = "22AAAAA" }},
		{"alpha pincode", func(c *entity.Company) { c.Pincode = "40OO01" }},
		{"short ifsc", func(c *entity.Company) { c.IFSCCode = "SBIN04" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCompany()
			tt.mutate(c)
			err := c.Validate()
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))
		})
	}
}

func TestCompanyOptionalFieldsMayBeEmpty(t *testing.T) {
	c := &entity.Company{Name: "Bare Minimum Pvt Ltd"}
	require.NoError(t, c.Validate())
}

func TestCustomerValidate(t *testing.T) {
	cust := &entity.Customer{CompanyID: "c1", Name: "Buyer & Co"}
	require.NoError(t, cust.Validate())

	cust.CompanyID = ""
	require.Error(t, cust.Validate())

	cust.CompanyID = "c1"
	cust.GSTIN = "too-short"
	require.Error(t, cust.Validate())
}

func TestProductValidate(t *testing.T) {
	p := &entity.Product{
		CompanyID: "c1",
		Name:      "Steel Rod",
		Unit:      "KG",
		Rate:      decimal.NewFromInt(250),
		HSNCode:   "7214",
	}
	require.NoError(t, p.Validate())

	p.Rate = decimal.NewFromInt(-1)
	require.Error(t, p.Validate())

	p.Rate = decimal.NewFromInt(250)
	p.HSNCode = "72-14"
	require.Error(t, p.Validate())
}

func TestInvoiceValidate(t *testing.T) {
	inv := &entity.Invoice{
		CompanyID:  "c1",
		CustomerID: "cu1",
		Number:     "INV-2026-0001",
		Date:       time.Now(),
		Status:     entity.StatusDraft,
	}
	require.NoError(t, inv.Validate())

	t.Run("today at any clock time passes", func(t *testing.T) {
		late := *inv
		y, m, d := time.Now().Date()
		late.Date = time.Date(y, m, d, 23, 0, 0, 0, time.Local)
		assert.NoError(t, late.Validate())
	})

	t.Run("tomorrow fails", func(t *testing.T) {
		future := *inv
		future.Date = time.Now().AddDate(0, 0, 1)
		assert.Error(t, future.Validate())
	})

	t.Run("unknown status fails", func(t *testing.T) {
		bad := *inv
		bad.Status = "ARCHIVED"
		assert.Error(t, bad.Validate())
	})
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "INV-2026-0001", entity.FormatNumber(2026, 1))
	assert.Equal(t, "INV-2026-0042", entity.FormatNumber(2026, 42))
	assert.Equal(t, "INV-2026-12345", entity.FormatNumber(2026, 12345))
}

func TestInvoiceItemValidate(t *testing.T) {
	item := &entity.InvoiceItem{
		Description:     "Steel Rod 12mm",
		Quantity:        decimal.NewFromInt(10),
		Unit:            "KG",
		Rate:            decimal.NewFromInt(250),
		DiscountPercent: decimal.NewFromInt(5),
	}
	require.NoError(t, item.Validate())

	tests := []struct {
		name   string
		mutate func(*entity.InvoiceItem)
	}{
		{"empty description", func(it *entity.InvoiceItem) { it.Description = "" }},
		{"zero quantity", func(it *entity.InvoiceItem) { it.Quantity = decimal.Zero }},
		{"zero rate", func(it *entity.InvoiceItem) { it.Rate = decimal.Zero }},
		{"discount above 100", func(it *entity.InvoiceItem) { it.DiscountPercent = decimal.NewFromInt(101) }},
		{"empty unit", func(it *entity.InvoiceItem) { it.Unit = " " }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := *item
			tt.mutate(&bad)
			assert.Error(t, bad.Validate())
		})
	}
}

func TestUserValidate(t *testing.T) {
	u := &entity.User{Username: "operator1", Email: "op@desk.example", Role: entity.RoleRegular}
	require.NoError(t, u.Validate())

	u.Role = "root"
	require.Error(t, u.Validate())

	u.Role = entity.RoleAdmin
	u.Username = "ab"
	require.Error(t, u.Validate())
}

func TestUserFullName(t *testing.T) {
	u := &entity.User{Username: "operator1", FirstName: "Asha", LastName: "Patel"}
	assert.Equal(t, "Asha Patel", u.FullName())

	u.FirstName, u.LastName = "", ""
	assert.Equal(t, "operator1", u.FullName())
}
