package handlers

import (
	"database/sql"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	goslug "github.com/gosimple/slug"

	"github.com/3DMakc/3d-makc-fishing-store/internal/domain"
	applog "github.com/3DMakc/3d-makc-fishing-store/internal/log"
	"github.com/3DMakc/3d-makc-fishing-store/internal/repos"
	"github.com/3DMakc/3d-makc-fishing-store/internal/services"
	"github.com/3DMakc/3d-makc-fishing-store/internal/validate"
)

type AdminHandler struct {
	Store    *session.Store
	Prods    *repos.ProductRepo
	Cats     *repos.CategoryRepo
	Orders   *repos.OrderRepo
	Importer *services.ImportService
}

// authed re-checks the session on every admin operation; there is no
// route-group middleware, each handler is responsible for itself.
func (h *AdminHandler) authed(c *fiber.Ctx) bool {
	sess, err := h.Store.Get(c)
	if err != nil {
		return false
	}
	return adminUser(sess) != ""
}

func (h *AdminHandler) deny(c *fiber.Ctx) error {
	applog.Security(c, "access.denied.admin", nil)
	return c.Redirect("/admin", fiber.StatusFound)
}

// GET /admin/dashboard
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	if !h.authed(c) {
		return h.deny(c)
	}
	products, err := h.Prods.Count()
	if err != nil {
		applog.Error(c, "admin.dashboard.fail", err, nil)
		return renderNotFound(c, fiber.StatusInternalServerError, "Could not load dashboard")
	}
	ordersNew, err := h.Orders.CountByStatus("new")
	if err != nil {
		return renderNotFound(c, fiber.StatusInternalServerError, "Could not load dashboard")
	}
	ordersAll, err := h.Orders.Count()
	if err != nil {
		return renderNotFound(c, fiber.StatusInternalServerError, "Could not load dashboard")
	}
	recent, err := h.Orders.ListLatest(20)
	if err != nil {
		return renderNotFound(c, fiber.StatusInternalServerError, "Could not load dashboard")
	}
	return render(c, "admin_dashboard", fiber.Map{
		"Products": products, "OrdersNew": ordersNew, "OrdersAll": ordersAll,
		"RecentOrders": recent,
	})
}

// GET /admin/products
func (h *AdminHandler) ProductsPage(c *fiber.Ctx) error {
	if !h.authed(c) {
		return h.deny(c)
	}
	products, err := h.Prods.ListAdmin(200)
	if err != nil {
		applog.Error(c, "admin.products.list.fail", err, nil)
		return renderNotFound(c, fiber.StatusInternalServerError, "Could not load products")
	}
	cats, err := h.Cats.List()
	if err != nil {
		return renderNotFound(c, fiber.StatusInternalServerError, "Could not load products")
	}
	data := fiber.Map{"Products": products, "Categories": cats}
	if c.Query("import") == "1" {
		data["Import"] = fiber.Map{
			"Created": c.Query("created"),
			"Updated": c.Query("updated"),
			"Skipped": c.Query("skipped"),
		}
	}
	return render(c, "admin_products", data)
}

// POST /admin/products/save — id 0 creates, non-zero updates.
func (h *AdminHandler) SaveProduct(c *fiber.Ctx) error {
	if !h.authed(c) {
		return h.deny(c)
	}
	id, _ := strconv.ParseInt(c.FormValue("id", "0"), 10, 64)

	name, ok := validate.ProductName(c.FormValue("name"))
	price, perr := strconv.ParseFloat(c.FormValue("price_uah", "0"), 64)
	if !ok || perr != nil || price < 0 || math.IsInf(price, 0) || math.IsNaN(price) {
		return c.Status(fiber.StatusBadRequest).SendString("Bad data")
	}
	stock, _ := strconv.Atoi(c.FormValue("stock", "0"))

	var categoryID sql.NullInt64
	if raw := c.FormValue("category_id"); raw != "" && raw != "null" {
		if cid, err := strconv.ParseInt(raw, 10, 64); err == nil {
			categoryID = sql.NullInt64{Int64: cid, Valid: true}
		}
	}

	slug, err := h.Prods.UniqueSlug(goslug.Make(name), id)
	if err != nil {
		applog.Error(c, "admin.products.save.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).SendString("Could not save product")
	}

	p := domain.Product{
		ID:          id,
		Name:        name,
		Slug:        slug,
		SKU:         strings.TrimSpace(c.FormValue("sku")),
		PriceUAH:    price,
		Stock:       stock,
		Brand:       strings.TrimSpace(c.FormValue("brand")),
		CategoryID:  categoryID,
		Description: strings.TrimSpace(c.FormValue("description")),
		Images:      domain.JoinImages(strings.Split(c.FormValue("images"), "\n")),
		Active:      c.FormValue("is_active") == "1",
	}

	if id != 0 {
		err = h.Prods.Update(p)
	} else {
		_, err = h.Prods.Insert(p)
	}
	if err != nil {
		applog.Error(c, "admin.products.save.fail", err, map[string]any{"id": id})
		return c.Status(fiber.StatusInternalServerError).SendString("Could not save product")
	}
	applog.Audit(c, "admin.products.save", map[string]any{"id": id, "name": name})
	return c.Redirect("/admin/products", fiber.StatusFound)
}

// POST /admin/products/delete
func (h *AdminHandler) DeleteProduct(c *fiber.Ctx) error {
	if !h.authed(c) {
		return h.deny(c)
	}
	id, err := strconv.ParseInt(c.FormValue("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("missing id")
	}
	if err := h.Prods.Delete(id); err != nil {
		applog.Error(c, "admin.products.delete.fail", err, map[string]any{"id": id})
		return c.Status(fiber.StatusInternalServerError).SendString("Could not delete product")
	}
	applog.Audit(c, "admin.products.delete", map[string]any{"id": id})
	return c.Redirect("/admin/products", fiber.StatusFound)
}

// POST /admin/import — multipart CSV upload.
func (h *AdminHandler) Import(c *fiber.Ctx) error {
	if !h.authed(c) {
		return h.deny(c)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("No file")
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("No file")
	}
	defer f.Close()

	res, err := h.Importer.Import(f)
	if err != nil {
		applog.Error(c, "admin.import.fail", err, nil)
		return c.Status(fiber.StatusBadRequest).SendString("Could not parse CSV")
	}
	applog.Audit(c, "admin.import", map[string]any{
		"created": res.Created, "updated": res.Updated, "skipped": res.Skipped,
	})
	return c.Redirect(fmt.Sprintf("/admin/products?import=1&created=%d&updated=%d&skipped=%d",
		res.Created, res.Updated, res.Skipped), fiber.StatusFound)
}

// GET /admin/orders
func (h *AdminHandler) OrdersPage(c *fiber.Ctx) error {
	if !h.authed(c) {
		return h.deny(c)
	}
	orders, err := h.Orders.ListLatest(200)
	if err != nil {
		applog.Error(c, "admin.orders.list.fail", err, nil)
		return renderNotFound(c, fiber.StatusInternalServerError, "Could not load orders")
	}
	return render(c, "admin_orders", fiber.Map{"Orders": orders})
}

// GET /admin/orders/:id
func (h *AdminHandler) OrderDetail(c *fiber.Ctx) error {
	if !h.authed(c) {
		return h.deny(c)
	}
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return renderNotFound(c, fiber.StatusNotFound, "Order not found")
	}
	o, err := h.Orders.Get(id)
	if err != nil {
		return renderNotFound(c, fiber.StatusNotFound, "Order not found")
	}
	items, err := h.Orders.Items(id)
	if err != nil {
		applog.Error(c, "admin.orders.items.fail", err, map[string]any{"order_id": id})
		return renderNotFound(c, fiber.StatusInternalServerError, "Could not load order")
	}
	return render(c, "admin_order_detail", fiber.Map{"Order": o, "Items": items})
}

// POST /admin/orders/status — free-text status overwrite.
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	if !h.authed(c) {
		return h.deny(c)
	}
	id, err := strconv.ParseInt(c.FormValue("id"), 10, 64)
	status := strings.TrimSpace(c.FormValue("status"))
	if err != nil || status == "" {
		return c.Status(fiber.StatusBadRequest).SendString("missing id or status")
	}
	if err := h.Orders.UpdateStatus(id, status); err != nil {
		applog.Error(c, "admin.orders.status.fail", err, map[string]any{"order_id": id})
		return c.Status(fiber.StatusInternalServerError).SendString("Could not update status")
	}
	applog.Audit(c, "admin.orders.status", map[string]any{"order_id": id, "status": status})
	return c.Redirect(fmt.Sprintf("/admin/orders/%d", id), fiber.StatusFound)
}
