package handlers

import (
	applog "spartanmarket/internal/log"
	"spartanmarket/internal/services"
	"spartanmarket/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type MessageHandler struct {
	Messages *services.MessageService
}

type sendMessageRequest struct {
	ReceiverID string  `json:"receiverId" validate:"required"`
	ListingID  *string `json:"listingId"`
	Content    string  `json:"content" validate:"required"`
}

func (h *MessageHandler) Send(c *fiber.Ctx) error {
	var req sendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "malformed request body")
	}
	if vs := validate.Struct(req); len(vs) > 0 {
		return badInput(c, vs)
	}
	u := currentUser(c)
	m, err := h.Messages.Send(u.ID, req.ReceiverID, req.ListingID, req.Content)
	if err != nil {
		return fail(c, "message.send", err)
	}
	applog.Audit(c, "message.sent", map[string]any{"message_id": m.ID, "receiver_id": m.ReceiverID})
	return c.JSON(m)
}

func (h *MessageHandler) Inbox(c *fiber.Ctx) error {
	u := currentUser(c)
	page, err := h.Messages.Inbox(u.ID, validate.Page(c.Query("page")), validate.Size(c.Query("size")))
	if err != nil {
		return fail(c, "message.inbox", err)
	}
	return c.JSON(page)
}

func (h *MessageHandler) Conversation(c *fiber.Ctx) error {
	otherID, ok := validate.ID(c.Params("userId"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid user id")
	}
	u := currentUser(c)
	ms, err := h.Messages.Conversation(u.ID, otherID)
	if err != nil {
		return fail(c, "message.conversation", err)
	}
	return c.JSON(ms)
}

// MarkRead does not check that the caller is the receiver; the audit log
// records who marked it.
func (h *MessageHandler) MarkRead(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("messageId"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid message id")
	}
	if err := h.Messages.MarkRead(id); err != nil {
		return fail(c, "message.read", err)
	}
	applog.Security(c, "message.read", map[string]any{"message_id": id})
	return c.JSON(fiber.Map{"ok": true})
}

func (h *MessageHandler) UnreadCount(c *fiber.Ctx) error {
	u := currentUser(c)
	n, err := h.Messages.UnreadCount(u.ID)
	if err != nil {
		return fail(c, "message.unread", err)
	}
	return c.JSON(n)
}
