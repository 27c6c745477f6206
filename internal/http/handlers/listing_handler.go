package handlers

import (
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"spartanmarket/internal/domain"
	applog "spartanmarket/internal/log"
	"spartanmarket/internal/services"
	"spartanmarket/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ListingHandler struct {
	Listings *services.ListingService
}

type createListingRequest struct {
	Title       string  `validate:"required,min=3,max=100"`
	Description string  `validate:"required"`
	Price       float64 `validate:"required,gt=0"`
	Category    string  `validate:"required"`
}

func (h *ListingHandler) Create(c *fiber.Ctx) error {
	price, _ := strconv.ParseFloat(strings.TrimSpace(c.FormValue("price")), 64)
	req := createListingRequest{
		Title:       strings.TrimSpace(c.FormValue("title")),
		Description: strings.TrimSpace(c.FormValue("description")),
		Price:       price,
		Category:    strings.TrimSpace(c.FormValue("category")),
	}
	if vs := validate.Struct(req); len(vs) > 0 {
		return badInput(c, vs)
	}

	var files []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil && form != nil {
		files = form.File["images"]
	}
	uploads := make([]services.ImageUpload, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return jsonError(c, fiber.StatusBadRequest, "unreadable image upload")
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return jsonError(c, fiber.StatusBadRequest, "unreadable image upload")
		}
		uploads = append(uploads, services.ImageUpload{Data: data, Filename: fh.Filename})
	}

	l := &domain.Listing{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
	}
	created, err := h.Listings.Create(c.Context(), currentUser(c), l, uploads)
	if err != nil {
		return fail(c, "listing.create", err)
	}
	applog.Audit(c, "listing.created", map[string]any{"listing_id": created.ID, "images": len(uploads)})
	return c.JSON(created)
}

func (h *ListingHandler) List(c *fiber.Ctx) error {
	page, err := h.Listings.ListAvailable(validate.Page(c.Query("page")), validate.Size(c.Query("size")))
	if err != nil {
		return fail(c, "listing.list", err)
	}
	return c.JSON(page)
}

func (h *ListingHandler) Search(c *fiber.Ctx) error {
	keyword := strings.TrimSpace(c.Query("keyword"))
	if keyword == "" {
		return jsonError(c, fiber.StatusBadRequest, "missing keyword")
	}
	page, err := h.Listings.Search(keyword, validate.Page(c.Query("page")), validate.Size(c.Query("size")))
	if err != nil {
		return fail(c, "listing.search", err)
	}
	return c.JSON(page)
}

func (h *ListingHandler) ByCategory(c *fiber.Ctx) error {
	category := c.Params("category")
	page, err := h.Listings.ByCategory(category, validate.Page(c.Query("page")), validate.Size(c.Query("size")))
	if err != nil {
		return fail(c, "listing.category", err)
	}
	return c.JSON(page)
}

func (h *ListingHandler) PriceRange(c *fiber.Ctx) error {
	min, okMin := validate.Price(c.Query("minPrice"))
	max, okMax := validate.Price(c.Query("maxPrice"))
	if !okMin || !okMax {
		return jsonError(c, fiber.StatusBadRequest, "minPrice and maxPrice must be non-negative numbers")
	}
	page, err := h.Listings.ByPriceRange(min, max, validate.Page(c.Query("page")), validate.Size(c.Query("size")))
	if err != nil {
		return fail(c, "listing.price_range", err)
	}
	return c.JSON(page)
}

func (h *ListingHandler) Mine(c *fiber.Ctx) error {
	u := currentUser(c)
	page, err := h.Listings.BySeller(u.ID, validate.Page(c.Query("page")), validate.Size(c.Query("size")))
	if err != nil {
		return fail(c, "listing.mine", err)
	}
	return c.JSON(page)
}

func (h *ListingHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid listing id")
	}
	l, err := h.Listings.Get(id)
	if err != nil {
		return fail(c, "listing.get", err)
	}
	return c.JSON(l)
}

// UpdateStatus performs no ownership check: any authenticated caller may
// flip any listing's status. The audit log records who did it.
func (h *ListingHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid listing id")
	}
	status := domain.ListingStatus(strings.ToUpper(strings.TrimSpace(c.Query("status"))))
	l, err := h.Listings.UpdateStatus(id, status)
	if err != nil {
		return fail(c, "listing.status", err)
	}
	applog.Security(c, "listing.status.updated", map[string]any{"listing_id": id, "status": string(status)})
	return c.JSON(l)
}

// Delete performs no ownership check either; see UpdateStatus.
func (h *ListingHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid listing id")
	}
	if err := h.Listings.Delete(c.Context(), id); err != nil {
		return fail(c, "listing.delete", err)
	}
	applog.Security(c, "listing.deleted", map[string]any{"listing_id": id})
	return c.JSON(fiber.Map{"ok": true})
}
