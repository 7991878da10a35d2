package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/invoicedesk/invoicedesk-api/internal/application/dto"
	"github.com/invoicedesk/invoicedesk-api/internal/domain"
)

// writeError maps a domain error onto the uniform HTTP error body. Every
// handler funnels its use-case errors through here so the API speaks one
// error dialect.
func writeError(c *fiber.Ctx, err error) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: ve.Error()})
	}
	var te *domain.InvalidTransitionError
	if errors.As(err, &te) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: te.Error()})
	}
	var ee *domain.EmptyInvoiceError
	if errors.As(err, &ee) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMPTY_INVOICE", Message: ee.Error()})
	}
	var ie *domain.ImmutableInvoiceError
	if errors.As(err, &ie) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "IMMUTABLE_INVOICE", Message: ie.Error()})
	}
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "resource not found"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "resource already exists"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid credentials"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "access denied"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// badBody is the response for an unparseable JSON body.
func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
}

// pagination reads limit/offset query params with sane defaults and caps.
func pagination(c *fiber.Ctx) (limit, offset int) {
	limit = c.QueryInt("limit", 50)
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset = c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
