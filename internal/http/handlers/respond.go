package handlers

import (
	"errors"

	"spartanmarket/internal/domain"
	applog "spartanmarket/internal/log"
	"spartanmarket/internal/storage"
	"spartanmarket/internal/validate"

	"github.com/gofiber/fiber/v2"
)

func jsonError(c *fiber.Ctx, code int, msg string) error {
	return c.Status(code).JSON(fiber.Map{"error": msg})
}

func badInput(c *fiber.Ctx, vs []validate.Violation) error {
	applog.Security(c, "validation.fail", map[string]any{"violations": len(vs)})
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":      "validation failed",
		"violations": vs,
	})
}

func statusFor(err error) (int, bool) {
	switch {
	case errors.Is(err, domain.ErrDuplicateUsername),
		errors.Is(err, domain.ErrDuplicateEmail),
		errors.Is(err, domain.ErrInvalidEmailDomain),
		errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidRange),
		errors.Is(err, domain.ErrEmptyContent),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, storage.ErrStore):
		return fiber.StatusBadRequest, true
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrListingNotFound),
		errors.Is(err, domain.ErrMessageNotFound):
		return fiber.StatusNotFound, true
	}
	return 0, false
}

// fail maps anticipated domain errors to 4xx bodies; anything else is logged
// in full and surfaced as a generic 500.
func fail(c *fiber.Ctx, action string, err error) error {
	if code, ok := statusFor(err); ok {
		return jsonError(c, code, err.Error())
	}
	applog.Error(c, action, err, nil)
	return jsonError(c, fiber.StatusInternalServerError, "something went wrong")
}
