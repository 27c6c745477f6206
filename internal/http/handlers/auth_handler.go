package handlers

import (
	applog "spartanmarket/internal/log"
	"spartanmarket/internal/services"
	"spartanmarket/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Users *services.UserService
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8,max=72"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "malformed request body")
	}
	if vs := validate.Struct(req); len(vs) > 0 {
		return badInput(c, vs)
	}
	u, err := h.Users.Register(req.Username, req.Email, req.Password)
	if err != nil {
		return fail(c, "auth.register", err)
	}
	applog.Audit(c, "auth.register.success", map[string]any{"username": u.Username, "id": u.ID})
	return c.JSON(u)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "malformed request body")
	}
	if vs := validate.Struct(req); len(vs) > 0 {
		return badInput(c, vs)
	}
	token, u, err := h.Users.Login(req.Username, req.Password)
	if err != nil {
		return fail(c, "auth.login", err)
	}
	applog.Audit(c, "auth.login.success", map[string]any{"username": u.Username})
	return c.JSON(fiber.Map{"token": token, "username": u.Username})
}

func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "malformed request body")
	}
	if vs := validate.Struct(req); len(vs) > 0 {
		return badInput(c, vs)
	}
	u := currentUser(c)
	if err := h.Users.ChangePassword(u.ID, req.OldPassword, req.NewPassword); err != nil {
		return fail(c, "auth.change_password", err)
	}
	applog.Audit(c, "auth.change_password.success", nil)
	return c.JSON(fiber.Map{"ok": true})
}
