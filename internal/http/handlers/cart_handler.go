package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/3DMakc/3d-makc-fishing-store/internal/domain"
	applog "github.com/3DMakc/3d-makc-fishing-store/internal/log"
	"github.com/3DMakc/3d-makc-fishing-store/internal/repos"
	"github.com/3DMakc/3d-makc-fishing-store/internal/validate"
)

type CartHandler struct {
	Store *session.Store
	Prods *repos.ProductRepo
}

// POST /cart/add
func (h *CartHandler) Add(c *fiber.Ctx) error {
	productID, err := strconv.ParseInt(c.FormValue("product_id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Product not found")
	}
	p, err := h.Prods.Get(productID)
	if err != nil || !p.Active {
		return c.Status(fiber.StatusBadRequest).SendString("Product not found")
	}
	qty := validate.Qty(c.FormValue("qty"), 1)

	sess, err := h.Store.Get(c)
	if err != nil {
		return err
	}
	putCart(sess, cartFromSession(sess).Add(p, qty))
	if err := sess.Save(); err != nil {
		return err
	}
	return c.Redirect("/cart", fiber.StatusFound)
}

// GET /cart
func (h *CartHandler) View(c *fiber.Ctx) error {
	sess, err := h.Store.Get(c)
	if err != nil {
		return err
	}
	cart := cartFromSession(sess)
	return render(c, "cart", fiber.Map{"Cart": cart, "Total": cart.Total()})
}

// POST /cart/update with qty[<product_id>]=<qty> fields
func (h *CartHandler) Update(c *fiber.Ctx) error {
	updates := map[int64]int{}
	c.Request().PostArgs().VisitAll(func(key, val []byte) {
		k := string(key)
		if !strings.HasPrefix(k, "qty[") || !strings.HasSuffix(k, "]") {
			return
		}
		id, err := strconv.ParseInt(k[len("qty["):len(k)-1], 10, 64)
		if err != nil {
			return
		}
		// Unparseable quantities leave the line untouched.
		if q, err := strconv.Atoi(strings.TrimSpace(string(val))); err == nil {
			updates[id] = q
		}
	})

	sess, err := h.Store.Get(c)
	if err != nil {
		return err
	}
	putCart(sess, cartFromSession(sess).UpdateQuantities(updates))
	if err := sess.Save(); err != nil {
		return err
	}
	return c.Redirect("/cart", fiber.StatusFound)
}

// POST /cart/remove
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	productID, err := strconv.ParseInt(c.FormValue("product_id"), 10, 64)
	if err != nil {
		return c.Redirect("/cart", fiber.StatusFound)
	}
	sess, err := h.Store.Get(c)
	if err != nil {
		return err
	}
	putCart(sess, cartFromSession(sess).Remove(productID))
	if err := sess.Save(); err != nil {
		return err
	}
	applog.Info(c, "cart.remove", map[string]any{"product_id": productID})
	return c.Redirect("/cart", fiber.StatusFound)
}

// resetCart clears the session cart after a successful checkout.
func resetCart(sess *session.Session) error {
	putCart(sess, domain.Cart{})
	return sess.Save()
}
