package services_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/3DMakc/3d-makc-fishing-store/internal/repos"
	"github.com/3DMakc/3d-makc-fishing-store/internal/services"
)

const importCSV = `name,sku,price_uah,stock,category,brand,description,images
Воблер Salmo Hornet,SAL-001,250,12,Воблеры,Salmo,"Плавающий, 4 см",a.jpg|b.jpg
"Катушка ""Дельфин""",,900,3,Катушки,,,
`

func TestImportCreatesThenUpdates(t *testing.T) {
	db := newTestDB(t)
	prods := repos.NewProductRepo(db)
	cats := repos.NewCategoryRepo(db)
	svc := services.NewImportService(prods, cats)

	res, err := svc.Import(strings.NewReader(importCSV))
	require.NoError(t, err)
	assert.Equal(t, services.ImportResult{Created: 2}, res)

	// same file again: everything matches by SKU or slug
	res, err = svc.Import(strings.NewReader(importCSV))
	require.NoError(t, err)
	assert.Equal(t, services.ImportResult{Updated: 2}, res)

	n, err := prods.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	p, err := prods.BySKU("SAL-001")
	require.NoError(t, err)
	assert.InDelta(t, 250, p.PriceUAH, 1e-9)
	assert.Equal(t, 12, p.Stock)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, p.ImageList())
	assert.True(t, p.Active)
	assert.True(t, p.CategoryID.Valid)

	// the quoted name round-trips through the slug lookup
	q, err := prods.SlugLookup("katushka-delfin")
	require.NoError(t, err)
	assert.InDelta(t, 900, q.PriceUAH, 1e-9)
}

func TestImportUpdatesPriceOnSecondRun(t *testing.T) {
	db := newTestDB(t)
	prods := repos.NewProductRepo(db)
	svc := services.NewImportService(prods, repos.NewCategoryRepo(db))

	first := "name,sku,price_uah\nБлесна,BL-1,100\n"
	second := "name,sku,price_uah\nБлесна,BL-1,150\n"

	_, err := svc.Import(strings.NewReader(first))
	require.NoError(t, err)
	res, err := svc.Import(strings.NewReader(second))
	require.NoError(t, err)
	assert.Equal(t, services.ImportResult{Updated: 1}, res)

	p, err := prods.BySKU("BL-1")
	require.NoError(t, err)
	assert.InDelta(t, 150, p.PriceUAH, 1e-9)
}

func TestImportSkipsBadRows(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewImportService(repos.NewProductRepo(db), repos.NewCategoryRepo(db))

	csv := "name,price_uah,stock\n" +
		",100,1\n" + // blank name
		"Крючок,дорого,1\n" + // unparseable price
		"Поплавок,-5,1\n" + // negative price
		"Леска,,many\n" // empty price and garbage stock are fine
	res, err := svc.Import(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, services.ImportResult{Created: 1, Skipped: 3}, res)

	p, err := repos.NewProductRepo(db).SlugLookup("leska")
	require.NoError(t, err)
	assert.Zero(t, p.PriceUAH)
	assert.Zero(t, p.Stock)
}

func TestImportCreatesCategoriesOnce(t *testing.T) {
	db := newTestDB(t)
	cats := repos.NewCategoryRepo(db)
	svc := services.NewImportService(repos.NewProductRepo(db), cats)

	csv := "name,category\nА,Воблеры\nБ,Воблеры\nВ,Катушки\n"
	res, err := svc.Import(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, services.ImportResult{Created: 3}, res)

	list, err := cats.List()
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestImportEmptyInput(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewImportService(repos.NewProductRepo(db), repos.NewCategoryRepo(db))

	res, err := svc.Import(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, services.ImportResult{}, res)

	// a header with no data rows is also a no-op
	res, err = svc.Import(strings.NewReader("name,price_uah\n"))
	require.NoError(t, err)
	assert.Equal(t, services.ImportResult{}, res)
}
