package http

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jmoiron/sqlx"

	"spartanmarket/internal/auth"
	"spartanmarket/internal/config"
	"spartanmarket/internal/http/handlers"
	applog "spartanmarket/internal/log"
	"spartanmarket/internal/storage"
)

// New assembles the fiber app: middlewares, upload serving, and every API
// route, with collaborators injected explicitly.
func New(cfg config.Config, db *sqlx.DB, tokens *auth.TokenService, blobs storage.BlobStore) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit: 10 << 20,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "something went wrong"})
		},
	})

	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/uploads/")
		},
	}))

	deps := handlers.NewDeps(db, cfg, tokens, blobs)
	requireUser := handlers.RequireUser(tokens, deps.UserService)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	// Disk-stored uploads are served as static paths; block traversal the
	// same way whether raw or percent-encoded.
	if ds, ok := blobs.(*storage.DiskStore); ok {
		dir := ds.Dir()
		app.Get("/uploads/*", func(c *fiber.Ctx) error {
			path := c.Params("*")
			rawLower := strings.ToLower(path)
			if strings.Contains(rawLower, "..") || strings.Contains(rawLower, "%2e") || strings.Contains(rawLower, "\x00") {
				applog.Security(c, "uploads.traversal.block", map[string]any{"path": path})
				return c.SendStatus(fiber.StatusNotFound)
			}
			clean := filepath.Clean(path)
			if clean == "." || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
				applog.Security(c, "uploads.traversal.block", map[string]any{"path": path})
				return c.SendStatus(fiber.StatusNotFound)
			}
			return c.SendFile(filepath.Join(dir, clean), true)
		})
	}

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", deps.AuthHandler.Register)
	authGroup.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts, try again later"})
		},
	}), deps.AuthHandler.Login)
	authGroup.Post("/change-password", requireUser, deps.AuthHandler.ChangePassword)

	api.Get("/users/me", requireUser, deps.UserHandler.Me)
	api.Put("/users/me/picture", requireUser, deps.UserHandler.UpdatePicture)

	listings := api.Group("/listings")
	listings.Post("/", requireUser, deps.ListingHandler.Create)
	listings.Get("/", deps.ListingHandler.List)
	listings.Get("/search", deps.ListingHandler.Search)
	listings.Get("/category/:category", deps.ListingHandler.ByCategory)
	listings.Get("/price-range", deps.ListingHandler.PriceRange)
	listings.Get("/user", requireUser, deps.ListingHandler.Mine)
	listings.Get("/:id", deps.ListingHandler.Get)
	listings.Put("/:id/status", requireUser, deps.ListingHandler.UpdateStatus)
	listings.Delete("/:id", requireUser, deps.ListingHandler.Delete)

	messages := api.Group("/messages", requireUser)
	messages.Post("/", deps.MessageHandler.Send)
	messages.Get("/", deps.MessageHandler.Inbox)
	messages.Get("/conversation/:userId", deps.MessageHandler.Conversation)
	messages.Get("/unread/count", deps.MessageHandler.UnreadCount)
	messages.Put("/:messageId/read", deps.MessageHandler.MarkRead)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})

	return app
}
