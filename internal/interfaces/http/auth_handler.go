package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/invoicedesk/invoicedesk-api/internal/application/auth"
	"github.com/invoicedesk/invoicedesk-api/internal/application/dto"
)

// AuthHandler handles authentication and user administration.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler builds the handler.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login authenticates and returns a token plus the user.
// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Login(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Register creates a user account. Admin only.
// POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Register(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Me returns the authenticated user's profile.
// GET /api/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.GetUser(GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateMe updates the authenticated user's profile. Role and active flags
// are ignored here; only the admin endpoint may change them.
// PUT /api/auth/me
func (h *AuthHandler) UpdateMe(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateUser(GetUserID(c), in, false)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ChangePassword verifies the current password and sets a new one.
// POST /api/auth/change-password
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.ChangePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.ChangePassword(GetUserID(c), in); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "password changed"})
}

// ListUsers lists user accounts.
// GET /api/auth/users
func (h *AuthHandler) ListUsers(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	out, err := h.uc.ListUsers(limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetUser loads one user account.
// GET /api/auth/users/:id
func (h *AuthHandler) GetUser(c *fiber.Ctx) error {
	out, err := h.uc.GetUser(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateUser updates any user, including role and active. Admin only.
// PUT /api/auth/users/:id
func (h *AuthHandler) UpdateUser(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateUser(c.Params("id"), in, true)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteUser removes a user account. Admin only; self-deletion is refused so
// an admin cannot lock themselves out mid-session.
// DELETE /api/auth/users/:id
func (h *AuthHandler) DeleteUser(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == GetUserID(c) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SELF_DELETE", Message: "cannot delete the authenticated account"})
	}
	if err := h.uc.DeleteUser(id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
