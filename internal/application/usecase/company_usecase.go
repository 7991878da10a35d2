package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/invoicedesk/invoicedesk-api/internal/application/dto"
	"github.com/invoicedesk/invoicedesk-api/internal/application/ports"
	"github.com/invoicedesk/invoicedesk-api/internal/domain"
	"github.com/invoicedesk/invoicedesk-api/internal/domain/entity"
	"github.com/invoicedesk/invoicedesk-api/internal/domain/repository"
)

// CompanyUseCase business rules for companies.
type CompanyUseCase struct {
	repo     repository.CompanyRepository
	txRunner ports.TxRunner
}

// NewCompanyUseCase builds the use case with its persistence port and the
// transaction runner used for cascade deletion.
func NewCompanyUseCase(repo repository.CompanyRepository, txRunner ports.TxRunner) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, txRunner: txRunner}
}

// Create validates and persists a new company.
func (uc *CompanyUseCase) Create(in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	now := time.Now()
	company := &entity.Company{
		ID:            uuid.New().String(),
		Name:          in.Name,
		Address:       in.Address,
		City:          in.City,
		State:         in.State,
		Pincode:       in.Pincode,
		GSTIN:         in.GSTIN,
		ContactPhone:  in.ContactPhone,
		Email:         in.Email,
		BankName:      in.BankName,
		AccountNumber: in.AccountNumber,
		IFSCCode:      in.IFSCCode,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := company.Validate(); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// GetByID loads one company.
func (uc *CompanyUseCase) GetByID(id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return toCompanyResponse(company), nil
}

// List lists companies with pagination.
func (uc *CompanyUseCase) List(limit, offset int) (*dto.CompanyListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCompanyResponse(c))
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Search finds companies by name or GSTIN.
func (uc *CompanyUseCase) Search(query string, limit int) (*dto.CompanyListResponse, error) {
	if query == "" {
		return nil, domain.NewValidationError("q", "search query is required")
	}
	list, err := uc.repo.Search(query, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCompanyResponse(c))
	}
	return &dto.CompanyListResponse{Items: items, Page: dto.PageResponse{Limit: limit}}, nil
}

// Update applies the given fields and revalidates.
func (uc *CompanyUseCase) Update(id string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	applyString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	applyString(&company.Name, in.Name)
	applyString(&company.Address, in.Address)
	applyString(&company.City, in.City)
	applyString(&company.State, in.State)
	applyString(&company.Pincode, in.Pincode)
	applyString(&company.GSTIN, in.GSTIN)
	applyString(&company.ContactPhone, in.ContactPhone)
	applyString(&company.Email, in.Email)
	applyString(&company.BankName, in.BankName)
	applyString(&company.AccountNumber, in.AccountNumber)
	applyString(&company.IFSCCode, in.IFSCCode)
	company.UpdatedAt = time.Now()
	if err := company.Validate(); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// Delete removes a company and everything it owns: invoices (with their
// items), customers and products, in one transaction. Hard deletion is the
// policy; nothing is silently kept.
func (uc *CompanyUseCase) Delete(ctx context.Context, id string) error {
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if company == nil {
		return domain.ErrNotFound
	}
	return uc.txRunner.Run(ctx, func(tx ports.RepoSet) error {
		if err := tx.Invoices.DeleteByCompany(id); err != nil {
			return err
		}
		if err := tx.Customers.DeleteByCompany(id); err != nil {
			return err
		}
		if err := tx.Products.DeleteByCompany(id); err != nil {
			return err
		}
		return tx.Companies.Delete(id)
	})
}

// Stats returns aggregate company figures.
func (uc *CompanyUseCase) Stats() (*dto.CompanyStatsResponse, error) {
	s, err := uc.repo.Stats()
	if err != nil {
		return nil, err
	}
	return &dto.CompanyStatsResponse{
		Total:        s.Total,
		WithGSTIN:    s.WithGSTIN,
		WithInvoices: s.WithInvoices,
	}, nil
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:            c.ID,
		Name:          c.Name,
		Address:       c.Address,
		City:          c.City,
		State:         c.State,
		Pincode:       c.Pincode,
		GSTIN:         c.GSTIN,
		ContactPhone:  c.ContactPhone,
		Email:         c.Email,
		BankName:      c.BankName,
		AccountNumber: c.AccountNumber,
		IFSCCode:      c.IFSCCode,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}
