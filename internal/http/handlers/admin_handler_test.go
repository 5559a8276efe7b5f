package handlers_test

import (
	"bytes"
	"database/sql"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/3DMakc/3d-makc-fishing-store/internal/domain"
	"github.com/3DMakc/3d-makc-fishing-store/internal/repos"
)

func login(t *testing.T, ta *testApp) {
	t.Helper()
	require.NoError(t, repos.EnsureAdmin(ta.db, "admin", "s3cret"))
	resp := ta.postForm(t, "/admin/login", url.Values{"user": {"admin"}, "pass": {"s3cret"}})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/admin/dashboard", resp.Header.Get("Location"))
}

func TestAdminPagesRequireLogin(t *testing.T) {
	ta := newTestApp(t)
	for _, path := range []string{"/admin/dashboard", "/admin/products", "/admin/orders", "/admin/orders/1"} {
		resp := ta.get(t, path)
		assert.Equal(t, http.StatusFound, resp.StatusCode, path)
		assert.Equal(t, "/admin", resp.Header.Get("Location"), path)
	}

	// a write attempt without a session changes nothing
	resp := ta.postForm(t, "/admin/products/save", url.Values{
		"name": {"Блесна"}, "price_uah": {"80"},
	})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	n, err := repos.NewProductRepo(ta.db).Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestAdminLoginLogout(t *testing.T) {
	ta := newTestApp(t)
	require.NoError(t, repos.EnsureAdmin(ta.db, "admin", "s3cret"))

	resp := ta.postForm(t, "/admin/login", url.Values{"user": {"admin"}, "pass": {"wrong"}})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body(t, resp), "Неверный логин или пароль")

	login(t, ta)
	resp = ta.get(t, "/admin/dashboard")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// logged-in visit to /admin goes straight to the dashboard
	resp = ta.get(t, "/admin")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/dashboard", resp.Header.Get("Location"))

	resp = ta.postForm(t, "/admin/logout", nil)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	resp = ta.get(t, "/admin/dashboard")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin", resp.Header.Get("Location"))
}

func TestAdminSaveProduct(t *testing.T) {
	ta := newTestApp(t)
	login(t, ta)
	prods := repos.NewProductRepo(ta.db)

	resp := ta.postForm(t, "/admin/products/save", url.Values{
		"name": {"Воблер Salmo"}, "price_uah": {"250.5"}, "stock": {"4"},
		"sku": {" SAL-1 "}, "brand": {"Salmo"}, "is_active": {"1"},
		"images": {"a.jpg\nb.jpg\n"},
	})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/products", resp.Header.Get("Location"))

	p, err := prods.BySKU("SAL-1")
	require.NoError(t, err)
	assert.Equal(t, "vobler-salmo", p.Slug)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, p.ImageList())
	assert.True(t, p.Active)

	// update in place keeps the id and the slug
	resp = ta.postForm(t, "/admin/products/save", url.Values{
		"id": {fmt.Sprint(p.ID)}, "name": {"Воблер Salmo"}, "price_uah": {"199"},
		"sku": {"SAL-1"},
	})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	p2, err := prods.Get(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "vobler-salmo", p2.Slug)
	assert.InDelta(t, 199, p2.PriceUAH, 1e-9)
	assert.False(t, p2.Active)

	for _, bad := range []url.Values{
		{"name": {"В"}, "price_uah": {"10"}},
		{"name": {"Воблер"}, "price_uah": {"дорого"}},
		{"name": {"Воблер"}, "price_uah": {"-5"}},
		{"name": {"Воблер"}, "price_uah": {"NaN"}},
	} {
		resp := ta.postForm(t, "/admin/products/save", bad)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Bad data", body(t, resp))
	}
}

func TestAdminDeleteProduct(t *testing.T) {
	ta := newTestApp(t)
	login(t, ta)
	prods := repos.NewProductRepo(ta.db)
	id, err := prods.Insert(domain.Product{Name: "Блесна", Slug: "blesna", Active: true})
	require.NoError(t, err)

	resp := ta.postForm(t, "/admin/products/delete", url.Values{"id": {fmt.Sprint(id)}})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	_, err = prods.Get(id)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestAdminImportUpload(t *testing.T) {
	ta := newTestApp(t)
	login(t, ta)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", "products.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte("name,sku,price_uah\nБлесна,BL-1,80\nКатушка,KT-1,900\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/admin/import", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp := ta.do(t, req)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/products?import=1&created=2&updated=0&skipped=0", resp.Header.Get("Location"))

	// the result banner is reflected on the products page
	page := body(t, ta.get(t, resp.Header.Get("Location")))
	assert.Contains(t, page, "Блесна")

	resp = ta.postForm(t, "/admin/import", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "No file", body(t, resp))
}

func TestAdminOrderPages(t *testing.T) {
	ta := newTestApp(t)
	login(t, ta)
	orders := repos.NewOrderRepo(ta.db)

	oid, err := orders.Create(domain.Order{
		FullName: "Иван Иванов", Phone: "+380931234567", City: "Київ", NPBranch: "12", TotalUAH: 160,
	}, []domain.OrderItem{{Name: "Блесна", PriceUAH: 80, Qty: 2}})
	require.NoError(t, err)

	page := body(t, ta.get(t, "/admin/orders"))
	assert.Contains(t, page, "Иван Иванов")

	resp := ta.get(t, fmt.Sprintf("/admin/orders/%d", oid))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), "Блесна")

	resp = ta.get(t, "/admin/orders/999")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = ta.postForm(t, "/admin/orders/status", url.Values{
		"id": {fmt.Sprint(oid)}, "status": {"shipped"},
	})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, fmt.Sprintf("/admin/orders/%d", oid), resp.Header.Get("Location"))
	o, err := orders.Get(oid)
	require.NoError(t, err)
	assert.Equal(t, "shipped", o.Status)

	resp = ta.postForm(t, "/admin/orders/status", url.Values{"id": {fmt.Sprint(oid)}, "status": {" "}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
