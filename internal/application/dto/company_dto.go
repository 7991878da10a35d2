package dto

import "time"

// CreateCompanyRequest payload for POST /api/companies.
type CreateCompanyRequest struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	City          string `json:"city"`
	State         string `json:"state"`
	Pincode       string `json:"pincode"`
	GSTIN         string `json:"gstin"`
	ContactPhone  string `json:"contact_phone"`
	Email         string `json:"email"`
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	IFSCCode      string `json:"ifsc_code"`
}

// UpdateCompanyRequest payload for PUT /api/companies/:id.
// Pointers distinguish "not sent" from "clear this field".
type UpdateCompanyRequest struct {
	Name          *string `json:"name"`
	Address       *string `json:"address"`
	City          *string `json:"city"`
	State         *string `json:"state"`
	Pincode       *string `json:"pincode"`
	GSTIN         *string `json:"gstin"`
	ContactPhone  *string `json:"contact_phone"`
	Email         *string `json:"email"`
	BankName      *string `json:"bank_name"`
	AccountNumber *string `json:"account_number"`
	IFSCCode      *string `json:"ifsc_code"`
}

// CompanyResponse serialized company.
type CompanyResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Address       string    `json:"address,omitempty"`
	City          string    `json:"city,omitempty"`
	State         string    `json:"state,omitempty"`
	Pincode       string    `json:"pincode,omitempty"`
	GSTIN         string    `json:"gstin,omitempty"`
	ContactPhone  string    `json:"contact_phone,omitempty"`
	Email         string    `json:"email,omitempty"`
	BankName      string    `json:"bank_name,omitempty"`
	AccountNumber string    `json:"account_number,omitempty"`
	IFSCCode      string    `json:"ifsc_code,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CompanyListResponse paginated company listing.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CompanyStatsResponse aggregate company figures.
type CompanyStatsResponse struct {
	Total        int64 `json:"total"`
	WithGSTIN    int64 `json:"with_gstin"`
	WithInvoices int64 `json:"with_invoices"`
}
