package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest payload for POST /api/products.
type CreateProductRequest struct {
	CompanyID   string          `json:"company_id"`
	Category    string          `json:"category"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Unit        string          `json:"unit"`
	Rate        decimal.Decimal `json:"rate"`
	HSNCode     string          `json:"hsn_code"`
}

// UpdateProductRequest payload for PUT /api/products/:id.
// The owning company is immutable and deliberately absent here.
type UpdateProductRequest struct {
	Category    *string          `json:"category"`
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Unit        *string          `json:"unit"`
	Rate        *decimal.Decimal `json:"rate"`
	HSNCode     *string          `json:"hsn_code"`
}

// ProductResponse serialized product.
type ProductResponse struct {
	ID          string          `json:"id"`
	CompanyID   string          `json:"company_id"`
	Category    string          `json:"category,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Unit        string          `json:"unit"`
	Rate        decimal.Decimal `json:"rate"`
	HSNCode     string          `json:"hsn_code,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse paginated product listing.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ProductStatsResponse aggregate product figures.
type ProductStatsResponse struct {
	Total       int64           `json:"total"`
	Categories  int64           `json:"categories"`
	AverageRate decimal.Decimal `json:"average_rate"`
}
