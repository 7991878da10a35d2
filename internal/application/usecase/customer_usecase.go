package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/invoicedesk/invoicedesk-api/internal/application/dto"
	"github.com/invoicedesk/invoicedesk-api/internal/domain"
	"github.com/invoicedesk/invoicedesk-api/internal/domain/entity"
	"github.com/invoicedesk/invoicedesk-api/internal/domain/repository"
)

// CustomerUseCase business rules for customers.
type CustomerUseCase struct {
	repo        repository.CustomerRepository
	companyRepo repository.CompanyRepository
}

// NewCustomerUseCase builds the use case.
func NewCustomerUseCase(repo repository.CustomerRepository, companyRepo repository.CompanyRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, companyRepo: companyRepo}
}

// Create validates the owning company exists and persists the customer.
func (uc *CustomerUseCase) Create(in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
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
	now := time.Now()
	customer := &entity.Customer{
		ID:            uuid.New().String(),
		CompanyID:     in.CompanyID,
		Name:          in.Name,
		Address:       in.Address,
		City:          in.City,
		State:         in.State,
		Pincode:       in.Pincode,
		GSTIN:         in.GSTIN,
		ContactPerson: in.ContactPerson,
		Phone:         in.Phone,
		Email:         in.Email,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := customer.Validate(); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetByID loads one customer.
func (uc *CustomerUseCase) GetByID(id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(customer), nil
}

// List lists customers, optionally scoped to one company.
func (uc *CustomerUseCase) List(companyID string, limit, offset int) (*dto.CustomerListResponse, error) {
	var (
		list []*entity.Customer
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
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCustomerResponse(c))
	}
	return &dto.CustomerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Search finds customers by name, city or GSTIN.
func (uc *CustomerUseCase) Search(query string, limit int) (*dto.CustomerListResponse, error) {
	if query == "" {
		return nil, domain.NewValidationError("q", "search query is required")
	}
	list, err := uc.repo.Search(query, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCustomerResponse(c))
	}
	return &dto.CustomerListResponse{Items: items, Page: dto.PageResponse{Limit: limit}}, nil
}

// Update applies the given fields. The owning company never changes.
func (uc *CustomerUseCase) Update(id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	applyString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	applyString(&customer.Name, in.Name)
	applyString(&customer.Address, in.Address)
	applyString(&customer.City, in.City)
	applyString(&customer.State, in.State)
	applyString(&customer.Pincode, in.Pincode)
	applyString(&customer.GSTIN, in.GSTIN)
	applyString(&customer.ContactPerson, in.ContactPerson)
	applyString(&customer.Phone, in.Phone)
	applyString(&customer.Email, in.Email)
	customer.UpdatedAt = time.Now()
	if err := customer.Validate(); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Delete removes a customer.
func (uc *CustomerUseCase) Delete(id string) error {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// Stats returns aggregate customer figures.
func (uc *CustomerUseCase) Stats() (*dto.CustomerStatsResponse, error) {
	s, err := uc.repo.Stats()
	if err != nil {
		return nil, err
	}
	return &dto.CustomerStatsResponse{Total: s.Total, WithGSTIN: s.WithGSTIN}, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	if c == nil {
		return nil
	}
	return &dto.CustomerResponse{
		ID:            c.ID,
		CompanyID:     c.CompanyID,
		Name:          c.Name,
		Address:       c.Address,
		City:          c.City,
		State:         c.State,
		Pincode:       c.Pincode,
		GSTIN:         c.GSTIN,
		ContactPerson: c.ContactPerson,
		Phone:         c.Phone,
		Email:         c.Email,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}
