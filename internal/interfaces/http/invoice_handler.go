package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/invoicedesk/invoicedesk-api/internal/application/billing"
	"github.com/invoicedesk/invoicedesk-api/internal/application/dto"
	"github.com/invoicedesk/invoicedesk-api/internal/domain/access"
	"github.com/invoicedesk/invoicedesk-api/internal/domain/entity"
	"github.com/invoicedesk/invoicedesk-api/internal/domain/repository"
)

// InvoiceHandler handles invoice endpoints.
type InvoiceHandler struct {
	uc       *billing.InvoiceUseCase
	exportUC *billing.ExportUseCase
}

// NewInvoiceHandler builds the handler.
func NewInvoiceHandler(uc *billing.InvoiceUseCase, exportUC *billing.ExportUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, exportUC: exportUC}
}

// Create creates a DRAFT invoice, allocating the next number for the company.
// POST /api/invoices
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List lists invoice headers, filtered and paginated.
// GET /api/invoices?company_id=&customer_id=&status=
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	out, err := h.uc.List(c.Context(), repository.InvoiceFilter{
		CompanyID:  c.Query("company_id"),
		CustomerID: c.Query("customer_id"),
		Status:     c.Query("status"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Search finds invoices by invoice number or PO number.
// GET /api/invoices/search?q=
func (h *InvoiceHandler) Search(c *fiber.Ctx) error {
	limit, _ := pagination(c)
	out, err := h.uc.Search(c.Context(), c.Query("q"), limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Stats returns the invoice dashboard figures.
// GET /api/invoices/stats
func (h *InvoiceHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// NextNumber previews the next invoice number for a company.
// GET /api/invoices/next-number?company_id=
func (h *InvoiceHandler) NextNumber(c *fiber.Ctx) error {
	out, err := h.uc.NextNumber(c.Context(), c.Query("company_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Export downloads the invoice register as a spreadsheet.
// GET /api/invoices/export
func (h *InvoiceHandler) Export(c *fiber.Ctx) error {
	data, contentType, filename, err := h.exportUC.InvoicesReport(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, data, contentType, filename)
}

// GetByID loads one invoice with its items.
// GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update rewrites the invoice header fields. Company, number and totals are
// never writable here.
// PUT /api/invoices/:id
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateHeader(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete removes the invoice and its items.
// DELETE /api/invoices/:id
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddItem appends a line to a draft invoice.
// POST /api/invoices/:id/items
func (h *InvoiceHandler) AddItem(c *fiber.Ctx) error {
	var in dto.InvoiceItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddItem(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateItem replaces a line's editable fields.
// PUT /api/invoices/:id/items/:itemId
func (h *InvoiceHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.InvoiceItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateItem(c.Context(), c.Params("id"), c.Params("itemId"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteItem removes a line.
// DELETE /api/invoices/:id/items/:itemId
func (h *InvoiceHandler) DeleteItem(c *fiber.Ctx) error {
	out, err := h.uc.DeleteItem(c.Context(), c.Params("id"), c.Params("itemId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Calculate recomputes the invoice totals from its current items.
// POST /api/invoices/:id/calculate
func (h *InvoiceHandler) Calculate(c *fiber.Ctx) error {
	out, err := h.uc.Recalculate(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus applies a workflow transition. The override flag bypasses the
// transition table and requires the override_status permission.
// PUT /api/invoices/:id/status
func (h *InvoiceHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateInvoiceStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Override && !access.Authorize(GetRole(c), access.ActionOverrideStatus, access.ResourceInvoice) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "status override requires admin"})
	}
	// CANCELLED is only reachable through the override.
	if in.Status == entity.StatusCancelled && !in.Override {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "cancellation requires the admin override"})
	}
	out, err := h.uc.UpdateStatus(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Duplicate creates a fresh DRAFT copy with a new number and today's date.
// POST /api/invoices/:id/duplicate
func (h *InvoiceHandler) Duplicate(c *fiber.Ctx) error {
	out, err := h.uc.Duplicate(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ExportPDF downloads the invoice rendered as a PDF.
// GET /api/invoices/:id/export/pdf
func (h *InvoiceHandler) ExportPDF(c *fiber.Ctx) error {
	data, contentType, filename, err := h.exportUC.InvoicePDF(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, data, contentType, filename)
}

// ExportExcel downloads the invoice rendered as a spreadsheet.
// GET /api/invoices/:id/export/excel
func (h *InvoiceHandler) ExportExcel(c *fiber.Ctx) error {
	data, contentType, filename, err := h.exportUC.InvoiceExcel(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, data, contentType, filename)
}
