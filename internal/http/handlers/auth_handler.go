package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	applog "github.com/3DMakc/3d-makc-fishing-store/internal/log"
	"github.com/3DMakc/3d-makc-fishing-store/internal/services"
)

type AuthHandler struct {
	Store *session.Store
	Auth  *services.AuthService
}

// GET /admin
func (h *AuthHandler) AdminHome(c *fiber.Ctx) error {
	sess, err := h.Store.Get(c)
	if err != nil {
		return err
	}
	if adminUser(sess) != "" {
		return c.Redirect("/admin/dashboard", fiber.StatusFound)
	}
	return render(c, "admin_login", fiber.Map{"Err": ""})
}

// POST /admin/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	username, err := h.Auth.Login(c.FormValue("user"), c.FormValue("pass"))
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"user": c.FormValue("user")})
		return render(c.Status(fiber.StatusUnauthorized), "admin_login",
			fiber.Map{"Err": "Неверный логин или пароль"})
	}
	sess, err := h.Store.Get(c)
	if err != nil {
		return err
	}
	sess.Set(adminKey, username)
	if err := sess.Save(); err != nil {
		return err
	}
	applog.Audit(c, "auth.login.success", map[string]any{"user": username})
	return c.Redirect("/admin/dashboard", fiber.StatusFound)
}

// POST /admin/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess, err := h.Store.Get(c)
	if err != nil {
		return err
	}
	sess.Delete(adminKey)
	if err := sess.Save(); err != nil {
		return err
	}
	applog.Audit(c, "auth.logout", nil)
	return c.Redirect("/", fiber.StatusFound)
}
