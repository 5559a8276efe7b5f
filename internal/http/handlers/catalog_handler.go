package handlers

import (
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	applog "github.com/3DMakc/3d-makc-fishing-store/internal/log"
	"github.com/3DMakc/3d-makc-fishing-store/internal/repos"
	"github.com/3DMakc/3d-makc-fishing-store/internal/services"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
}

// GET /
func (h *CatalogHandler) Home(c *fiber.Ctx) error {
	data, err := h.Catalog.Home()
	if err != nil {
		applog.Error(c, "home.load.fail", err, nil)
		return renderNotFound(c, fiber.StatusInternalServerError, "Could not load the store")
	}
	return render(c, "home", fiber.Map{"Categories": data.Categories, "Hits": data.Hits})
}

// GET /catalog?s&category&brand&min&max&inStock&sort
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	f := repos.Filter{
		Search:       c.Query("s"),
		CategorySlug: c.Query("category"),
		Brand:        c.Query("brand"),
		InStock:      c.Query("inStock") == "1",
		Sort:         c.Query("sort"),
	}
	// A non-numeric bound is dropped rather than rejected.
	f.MinPrice = priceBound(c.Query("min"))
	f.MaxPrice = priceBound(c.Query("max"))

	data, err := h.Catalog.Catalog(f)
	if err != nil {
		applog.Error(c, "catalog.load.fail", err, nil)
		return renderNotFound(c, fiber.StatusInternalServerError, "Could not load the catalog")
	}
	return render(c, "catalog", fiber.Map{
		"Products":   data.Products,
		"Categories": data.Categories,
		"Brands":     data.Brands,
		"Filters": fiber.Map{
			"S": f.Search, "Category": f.CategorySlug, "Brand": f.Brand,
			"Min": c.Query("min"), "Max": c.Query("max"),
			"InStock": f.InStock, "Sort": f.Sort,
		},
	})
}

func priceBound(raw string) *float64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

// GET /c/:slug
func (h *CatalogHandler) CategoryRedirect(c *fiber.Ctx) error {
	return c.Redirect("/catalog?category="+url.QueryEscape(c.Params("slug")), fiber.StatusFound)
}

// GET /p/:slug
func (h *CatalogHandler) Detail(c *fiber.Ctx) error {
	p, err := h.Catalog.Product(c.Params("slug"))
	if err != nil {
		return renderNotFound(c, fiber.StatusNotFound, "Товар не найден")
	}
	return render(c, "product", fiber.Map{"P": p, "Images": p.ImageList()})
}
