package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/invoicedesk/invoicedesk-api/internal/application/billing"
	"github.com/invoicedesk/invoicedesk-api/internal/application/dto"
	"github.com/invoicedesk/invoicedesk-api/internal/application/usecase"
	"github.com/invoicedesk/invoicedesk-api/internal/domain/repository"
)

// CustomerHandler handles customer endpoints.
type CustomerHandler struct {
	uc        *usecase.CustomerUseCase
	invoiceUC *billing.InvoiceUseCase
	exportUC  *billing.ExportUseCase
}

// NewCustomerHandler builds the handler.
func NewCustomerHandler(uc *usecase.CustomerUseCase, invoiceUC *billing.InvoiceUseCase, exportUC *billing.ExportUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc, invoiceUC: invoiceUC, exportUC: exportUC}
}

// Create creates a customer under an existing company.
// POST /api/customers
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List lists customers, optionally filtered by company.
// GET /api/customers?company_id=
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	out, err := h.uc.List(c.Query("company_id"), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Search finds customers by name, city or GSTIN.
// GET /api/customers/search?q=
func (h *CustomerHandler) Search(c *fiber.Ctx) error {
	limit, _ := pagination(c)
	out, err := h.uc.Search(c.Query("q"), limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Stats returns aggregate customer figures.
// GET /api/customers/stats
func (h *CustomerHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Export downloads the customer list as a spreadsheet.
// GET /api/customers/export
func (h *CustomerHandler) Export(c *fiber.Ctx) error {
	data, contentType, filename, err := h.exportUC.CustomersReport(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, data, contentType, filename)
}

// GetByID loads one customer.
// GET /api/customers/:id
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Invoices lists the customer's invoices.
// GET /api/customers/:id/invoices
func (h *CustomerHandler) Invoices(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	out, err := h.invoiceUC.List(c.Context(), repository.InvoiceFilter{
		CustomerID: c.Params("id"),
		Status:     c.Query("status"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update rewrites the given customer fields. The owning company is immutable.
// PUT /api/customers/:id
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete removes one customer.
// DELETE /api/customers/:id
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
