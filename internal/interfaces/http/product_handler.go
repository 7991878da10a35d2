package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/invoicedesk/invoicedesk-api/internal/application/billing"
	"github.com/invoicedesk/invoicedesk-api/internal/application/dto"
	"github.com/invoicedesk/invoicedesk-api/internal/application/usecase"
)

// ProductHandler handles product catalog endpoints.
type ProductHandler struct {
	uc       *usecase.ProductUseCase
	exportUC *billing.ExportUseCase
}

// NewProductHandler builds the handler.
func NewProductHandler(uc *usecase.ProductUseCase, exportUC *billing.ExportUseCase) *ProductHandler {
	return &ProductHandler{uc: uc, exportUC: exportUC}
}

// Create creates a product under an existing company.
// POST /api/products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List lists products, optionally filtered by company or category.
// GET /api/products?company_id=&category=
func (h *ProductHandler) List(c *fiber.Ctx) error {
	if category := c.Query("category"); category != "" {
		out, err := h.uc.ListByCategory(category)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
	limit, offset := pagination(c)
	out, err := h.uc.List(c.Query("company_id"), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Categories returns the distinct product categories.
// GET /api/products/categories
func (h *ProductHandler) Categories(c *fiber.Ctx) error {
	out, err := h.uc.Categories()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"categories": out})
}

// Search finds products by name, category or HSN code.
// GET /api/products/search?q=
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	limit, _ := pagination(c)
	out, err := h.uc.Search(c.Query("q"), limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Stats returns aggregate product figures.
// GET /api/products/stats
func (h *ProductHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Export downloads the product catalog as a spreadsheet.
// GET /api/products/export
func (h *ProductHandler) Export(c *fiber.Ctx) error {
	data, contentType, filename, err := h.exportUC.ProductsReport(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, data, contentType, filename)
}

// GetByID loads one product.
// GET /api/products/:id
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update rewrites the given product fields.
// PUT /api/products/:id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete removes one product.
// DELETE /api/products/:id
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
