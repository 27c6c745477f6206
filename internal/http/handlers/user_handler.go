package handlers

import (
	"io"

	applog "spartanmarket/internal/log"
	"spartanmarket/internal/services"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	Users *services.UserService
}

func (h *UserHandler) Me(c *fiber.Ctx) error {
	return c.JSON(currentUser(c))
}

func (h *UserHandler) UpdatePicture(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "missing file")
	}
	f, err := fh.Open()
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "unreadable file")
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "unreadable file")
	}

	u := currentUser(c)
	url, err := h.Users.UpdateProfilePicture(c.Context(), u.ID, data, fh.Filename)
	if err != nil {
		return fail(c, "user.picture", err)
	}
	applog.Audit(c, "user.picture.updated", map[string]any{"url": url})
	return c.JSON(fiber.Map{"profilePicture": url})
}
