package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/invoicedesk/invoicedesk-api/internal/application/billing"
	"github.com/invoicedesk/invoicedesk-api/internal/application/dto"
	"github.com/invoicedesk/invoicedesk-api/internal/application/usecase"
	"github.com/invoicedesk/invoicedesk-api/internal/domain/repository"
)

// CompanyHandler handles company endpoints.
type CompanyHandler struct {
	uc        *usecase.CompanyUseCase
	invoiceUC *billing.InvoiceUseCase
}

// NewCompanyHandler builds the handler.
func NewCompanyHandler(uc *usecase.CompanyUseCase, invoiceUC *billing.InvoiceUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc, invoiceUC: invoiceUC}
}

// Create creates a company.
// POST /api/companies
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List lists companies.
// GET /api/companies
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	out, err := h.uc.List(limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Search finds companies by name or GSTIN.
// GET /api/companies/search?q=
func (h *CompanyHandler) Search(c *fiber.Ctx) error {
	limit, _ := pagination(c)
	out, err := h.uc.Search(c.Query("q"), limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Stats returns aggregate company figures.
// GET /api/companies/stats
func (h *CompanyHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID loads one company.
// GET /api/companies/:id
func (h *CompanyHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Invoices lists the company's invoices.
// GET /api/companies/:id/invoices
func (h *CompanyHandler) Invoices(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	out, err := h.invoiceUC.List(c.Context(), repository.InvoiceFilter{
		CompanyID: c.Params("id"),
		Status:    c.Query("status"),
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update rewrites the given company fields.
// PUT /api/companies/:id
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete removes the company and everything it owns.
// DELETE /api/companies/:id
func (h *CompanyHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
