package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	html "github.com/gofiber/template/html/v2"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/3DMakc/3d-makc-fishing-store/internal/config"
	"github.com/3DMakc/3d-makc-fishing-store/internal/format"
	"github.com/3DMakc/3d-makc-fishing-store/internal/http/handlers"
	"github.com/3DMakc/3d-makc-fishing-store/internal/repos"
)

// testApp wires the real routes over an in-memory database, without the
// CSRF and rate-limit middlewares, and carries the session cookie across
// requests like a browser would.
type testApp struct {
	app *fiber.App
	db  *sqlx.DB
	sid string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	engine := html.New("../../../web/templates", ".html")
	engine.AddFunc("money", format.Money)
	app := fiber.New(fiber.Config{Views: engine})

	store := handlers.NewSessionStore()
	app.Use(handlers.Locals(store, "Test Store"))
	deps := handlers.NewDeps(db, config.Config{}, store)

	app.Get("/", deps.Catalog.Home)
	app.Get("/catalog", deps.Catalog.List)
	app.Get("/c/:slug", deps.Catalog.CategoryRedirect)
	app.Get("/p/:slug", deps.Catalog.Detail)

	app.Post("/cart/add", deps.Cart.Add)
	app.Get("/cart", deps.Cart.View)
	app.Post("/cart/update", deps.Cart.Update)
	app.Post("/cart/remove", deps.Cart.Remove)
	app.Get("/checkout", deps.Checkout.Show)
	app.Post("/checkout", deps.Checkout.Place)

	app.Get("/api/v1/availability", deps.Availability.Check)

	app.Get("/admin", deps.Auth.AdminHome)
	app.Post("/admin/login", deps.Auth.Login)
	app.Post("/admin/logout", deps.Auth.Logout)
	app.Get("/admin/dashboard", deps.Admin.Dashboard)
	app.Get("/admin/products", deps.Admin.ProductsPage)
	app.Post("/admin/products/save", deps.Admin.SaveProduct)
	app.Post("/admin/products/delete", deps.Admin.DeleteProduct)
	app.Post("/admin/import", deps.Admin.Import)
	app.Get("/admin/orders", deps.Admin.OrdersPage)
	app.Get("/admin/orders/:id", deps.Admin.OrderDetail)
	app.Post("/admin/orders/status", deps.Admin.UpdateOrderStatus)

	return &testApp{app: app, db: db}
}

func (ta *testApp) do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	if ta.sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: ta.sid})
	}
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	for _, ck := range resp.Cookies() {
		if ck.Name == "sid" {
			ta.sid = ck.Value
		}
	}
	return resp
}

func (ta *testApp) get(t *testing.T, path string) *http.Response {
	t.Helper()
	return ta.do(t, httptest.NewRequest(http.MethodGet, path, nil))
}

func (ta *testApp) postForm(t *testing.T, path string, form url.Values) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return ta.do(t, req)
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return string(b)
}
