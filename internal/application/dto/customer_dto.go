package dto

import "time"

// CreateCustomerRequest payload for POST /api/customers.
type CreateCustomerRequest struct {
	CompanyID     string `json:"company_id"`
	Name          string `json:"name"`
	Address       string `json:"address"`
	City          string `json:"city"`
	State         string `json:"state"`
	Pincode       string `json:"pincode"`
	GSTIN         string `json:"gstin"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
}

// UpdateCustomerRequest payload for PUT /api/customers/:id.
// The owning company is immutable and deliberately absent here.
type UpdateCustomerRequest struct {
	Name          *string `json:"name"`
	Address       *string `json:"address"`
	City          *string `json:"city"`
	State         *string `json:"state"`
	Pincode       *string `json:"pincode"`
	GSTIN         *string `json:"gstin"`
	ContactPerson *string `json:"contact_person"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
}

// CustomerResponse serialized customer.
type CustomerResponse struct {
	ID            string    `json:"id"`
	CompanyID     string    `json:"company_id"`
	Name          string    `json:"name"`
	Address       string    `json:"address,omitempty"`
	City          string    `json:"city,omitempty"`
	State         string    `json:"state,omitempty"`
	Pincode       string    `json:"pincode,omitempty"`
	GSTIN         string    `json:"gstin,omitempty"`
	ContactPerson string    `json:"contact_person,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Email         string    `json:"email,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CustomerListResponse paginated customer listing.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// CustomerStatsResponse aggregate customer figures.
type CustomerStatsResponse struct {
	Total     int64 `json:"total"`
	WithGSTIN int64 `json:"with_gstin"`
}
