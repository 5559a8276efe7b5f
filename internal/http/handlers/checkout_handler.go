package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	applog "github.com/3DMakc/3d-makc-fishing-store/internal/log"
	"github.com/3DMakc/3d-makc-fishing-store/internal/services"
)

type CheckoutHandler struct {
	Store *session.Store
	Order *services.OrderService
}

// GET /checkout
func (h *CheckoutHandler) Show(c *fiber.Ctx) error {
	sess, err := h.Store.Get(c)
	if err != nil {
		return err
	}
	cart := cartFromSession(sess)
	if cart.Empty() {
		return c.Redirect("/catalog", fiber.StatusFound)
	}
	return render(c, "checkout", fiber.Map{
		"Cart": cart, "Total": cart.Total(),
		"Errors": nil, "Form": services.CheckoutForm{},
	})
}

// POST /checkout
func (h *CheckoutHandler) Place(c *fiber.Ctx) error {
	sess, err := h.Store.Get(c)
	if err != nil {
		return err
	}
	cart := cartFromSession(sess)
	if cart.Empty() {
		return c.Redirect("/catalog", fiber.StatusFound)
	}

	form := services.CheckoutForm{
		FullName: c.FormValue("full_name"),
		Phone:    c.FormValue("phone"),
		Region:   c.FormValue("region"),
		City:     c.FormValue("city"),
		NPBranch: c.FormValue("np_branch"),
		Comment:  c.FormValue("comment"),
	}
	if errs := form.Validate(); len(errs) > 0 {
		applog.Security(c, "checkout.validation.fail", map[string]any{"errors": len(errs)})
		return render(c.Status(fiber.StatusBadRequest), "checkout", fiber.Map{
			"Cart": cart, "Total": cart.Total(),
			"Errors": errs, "Form": form,
		})
	}

	o, err := h.Order.Place(cart, form)
	if err != nil {
		applog.Error(c, "order.place.fail", err, nil)
		return renderNotFound(c, fiber.StatusInternalServerError, "Could not place the order. Please try again.")
	}
	if err := resetCart(sess); err != nil {
		applog.Error(c, "cart.reset.fail", err, map[string]any{"order_id": o.ID})
	}
	applog.Audit(c, "order.place", map[string]any{"order_id": o.ID, "total": o.TotalUAH, "items": len(cart.Items)})
	return render(c, "thankyou", fiber.Map{"OrderID": o.ID})
}
