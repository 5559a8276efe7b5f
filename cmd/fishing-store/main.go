package main

import (
	"crypto/sha256"
	"encoding/base64"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"github.com/3DMakc/3d-makc-fishing-store/internal/config"
	"github.com/3DMakc/3d-makc-fishing-store/internal/format"
	"github.com/3DMakc/3d-makc-fishing-store/internal/http/handlers"
	applog "github.com/3DMakc/3d-makc-fishing-store/internal/log"
	"github.com/3DMakc/3d-makc-fishing-store/internal/repos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	if err := repos.EnsureAdmin(db, cfg.AdminUser, cfg.AdminPassword); err != nil {
		log.Fatal(err)
	}

	engine := html.New("./web/templates", ".html")
	engine.AddFunc("money", format.Money)

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Something went wrong. Please try again.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})
	app.Server().MaxRequestBodySize = 2 << 20 // 2 MiB, covers CSV uploads

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/static/")
		},
	}))
	// Cookie payloads (sid) are opaque to the client; key derived from the
	// configured session secret.
	secret := sha256.Sum256([]byte(cfg.SessionSecret))
	app.Use(encryptcookie.New(encryptcookie.Config{
		Key:    base64.StdEncoding.EncodeToString(secret[:]),
		Except: []string{"csrf_"},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", nil)
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	store := handlers.NewSessionStore()
	app.Use(handlers.Locals(store, cfg.StoreName))

	app.Static("/static", "./web/static")

	deps := handlers.NewDeps(db, cfg, store)

	// Store
	app.Get("/", deps.Catalog.Home)
	app.Get("/catalog", deps.Catalog.List)
	app.Get("/c/:slug", deps.Catalog.CategoryRedirect)
	app.Get("/p/:slug", deps.Catalog.Detail)

	// Cart & checkout
	app.Post("/cart/add", deps.Cart.Add)
	app.Get("/cart", deps.Cart.View)
	app.Post("/cart/update", deps.Cart.Update)
	app.Post("/cart/remove", deps.Cart.Remove)
	app.Get("/checkout", deps.Checkout.Show)
	app.Post("/checkout", deps.Checkout.Place)

	// API
	api := app.Group("/api/v1")
	api.Get("/availability", deps.Availability.Check)

	// Admin (each handler re-checks the session itself)
	app.Get("/admin", deps.Auth.AdminHome)
	app.Post("/admin/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("admin_login", fiber.Map{"Err": "Too many attempts. Please try again later."})
		},
	}), deps.Auth.Login)
	app.Post("/admin/logout", deps.Auth.Logout)
	app.Get("/admin/dashboard", deps.Admin.Dashboard)
	app.Get("/admin/products", deps.Admin.ProductsPage)
	app.Post("/admin/products/save", deps.Admin.SaveProduct)
	app.Post("/admin/products/delete", deps.Admin.DeleteProduct)
	app.Post("/admin/import", deps.Admin.Import)
	app.Get("/admin/orders", deps.Admin.OrdersPage)
	app.Get("/admin/orders/:id", deps.Admin.OrderDetail)
	app.Post("/admin/orders/status", deps.Admin.UpdateOrderStatus)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
