package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/invoicedesk/invoicedesk-api/internal/application/dto"
	"github.com/invoicedesk/invoicedesk-api/internal/domain"
	"github.com/invoicedesk/invoicedesk-api/internal/domain/entity"
	"github.com/invoicedesk/invoicedesk-api/internal/domain/repository"
)

// ProductUseCase business rules for products.
type ProductUseCase struct {
	repo        repository.ProductRepository
	companyRepo repository.CompanyRepository
}

// NewProductUseCase builds the use case.
func NewProductUseCase(repo repository.ProductRepository, companyRepo repository.CompanyRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, companyRepo: companyRepo}
}

// Create validates the owning company exists and persists the product.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.CompanyID == "" {
		return nil, domain.NewValidationError("company_id", "company is required")
	}
	company, err := uc.companyRepo.GetByID(in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	unit := in.Unit
	if unit == "" {
		unit = entity.DefaultUnit
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		CompanyID:   in.CompanyID,
		Category:    in.Category,
		Name:        in.Name,
		Description: in.Description,
		Unit:        unit,
		Rate:        in.Rate,
		HSNCode:     in.HSNCode,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID loads one product.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// List lists products, optionally scoped to one company.
func (uc *ProductUseCase) List(companyID string, limit, offset int) (*dto.ProductListResponse, error) {
	var (
		list []*entity.Product
		err  error
	)
	if companyID != "" {
		list, err = uc.repo.ListByCompany(companyID, limit, offset)
	} else {
		list, err = uc.repo.List(limit, offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Categories returns the distinct product categories.
func (uc *ProductUseCase) Categories() ([]string, error) {
	return uc.repo.Categories()
}

// ListByCategory lists products within one category.
func (uc *ProductUseCase) ListByCategory(category string) (*dto.ProductListResponse, error) {
	list, err := uc.repo.ListByCategory(category)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items}, nil
}

// Search finds products by name, category or HSN code.
func (uc *ProductUseCase) Search(query string, limit int) (*dto.ProductListResponse, error) {
	if query == "" {
		return nil, domain.NewValidationError("q", "search query is required")
	}
	list, err := uc.repo.Search(query, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items, Page: dto.PageResponse{Limit: limit}}, nil
}

// Update applies the given fields. The owning company never changes.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	if in.Rate != nil {
		product.Rate = *in.Rate
	}
	if in.HSNCode != nil {
		product.HSNCode = *in.HSNCode
	}
	product.UpdatedAt = time.Now()
	if err := product.Validate(); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete removes a product.
func (uc *ProductUseCase) Delete(id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// Stats returns aggregate product figures.
func (uc *ProductUseCase) Stats() (*dto.ProductStatsResponse, error) {
	s, err := uc.repo.Stats()
	if err != nil {
		return nil, err
	}
	return &dto.ProductStatsResponse{
		Total:       s.Total,
		Categories:  s.Categories,
		AverageRate: s.AverageRate,
	}, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		CompanyID:   p.CompanyID,
		Category:    p.Category,
		Name:        p.Name,
		Description: p.Description,
		Unit:        p.Unit,
		Rate:        p.Rate,
		HSNCode:     p.HSNCode,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
