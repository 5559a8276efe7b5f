package repos

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/3DMakc/3d-makc-fishing-store/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

// ProductRow is a product joined with its category for listings.
type ProductRow struct {
	domain.Product
	CategoryName string `db:"category_name"`
	CategorySlug string `db:"category_slug"`
}

const productColumns = `
  p.id, p.name, p.slug, p.sku, p.price_uah, p.stock, p.brand, p.category_id,
  p.description, p.images, p.is_active, p.created_at,
  COALESCE(c.name,'') AS category_name, COALESCE(c.slug,'') AS category_slug`

// Filter holds the optional catalog predicates. Nil price bounds impose
// no constraint; a non-numeric query value never reaches here.
type Filter struct {
	Search       string
	CategorySlug string
	Brand        string
	MinPrice     *float64
	MaxPrice     *float64
	InStock      bool
	Sort         string
}

// List composes the filtered catalog query. Predicates are ANDed and
// bound via placeholders; only active products are eligible.
func (r *ProductRepo) List(f Filter) ([]ProductRow, error) {
	where := `p.is_active = 1`
	args := []any{}
	if f.Search != "" {
		where += ` AND (p.name LIKE ? OR p.sku LIKE ?)`
		pat := "%" + f.Search + "%"
		args = append(args, pat, pat)
	}
	if f.CategorySlug != "" {
		where += ` AND c.slug = ?`
		args = append(args, f.CategorySlug)
	}
	if f.Brand != "" {
		where += ` AND p.brand = ?`
		args = append(args, f.Brand)
	}
	if f.MinPrice != nil {
		where += ` AND p.price_uah >= ?`
		args = append(args, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		where += ` AND p.price_uah <= ?`
		args = append(args, *f.MaxPrice)
	}
	if f.InStock {
		where += ` AND p.stock > 0`
	}

	order := `p.created_at DESC`
	switch f.Sort {
	case "price_asc":
		order = `p.price_uah ASC`
	case "price_desc":
		order = `p.price_uah DESC`
	case "name_asc":
		order = `p.name ASC`
	}

	query := `SELECT ` + productColumns + `
	  FROM products p
	  LEFT JOIN categories c ON c.id = p.category_id
	  WHERE ` + where + `
	  ORDER BY ` + order + `
	  LIMIT 60`

	var out []ProductRow
	err := r.db.Select(&out, query, args...)
	return out, err
}

// Recent returns the newest active products for the home page.
func (r *ProductRepo) Recent(limit int) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT id, name, slug, sku, price_uah, stock, brand, category_id,
	         description, images, is_active, created_at
	  FROM products WHERE is_active = 1
	  ORDER BY created_at DESC LIMIT ?`, limit)
	return out, err
}

// BySlug returns an active product with its category for the detail page.
func (r *ProductRepo) BySlug(slug string) (ProductRow, error) {
	var p ProductRow
	err := r.db.Get(&p, `SELECT `+productColumns+`
	  FROM products p
	  LEFT JOIN categories c ON c.id = p.category_id
	  WHERE p.slug = ? AND p.is_active = 1`, slug)
	return p, err
}

func (r *ProductRepo) Get(id int64) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `
	  SELECT id, name, slug, sku, price_uah, stock, brand, category_id,
	         description, images, is_active, created_at
	  FROM products WHERE id = ?`, id)
	return p, err
}

func (r *ProductRepo) BySKU(sku string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `
	  SELECT id, name, slug, sku, price_uah, stock, brand, category_id,
	         description, images, is_active, created_at
	  FROM products WHERE sku = ?`, sku)
	return p, err
}

func (r *ProductRepo) SlugLookup(slug string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `
	  SELECT id, name, slug, sku, price_uah, stock, brand, category_id,
	         description, images, is_active, created_at
	  FROM products WHERE slug = ?`, slug)
	return p, err
}

// ListAdmin returns active and inactive products for the admin table.
func (r *ProductRepo) ListAdmin(limit int) ([]ProductRow, error) {
	var out []ProductRow
	err := r.db.Select(&out, `SELECT `+productColumns+`
	  FROM products p
	  LEFT JOIN categories c ON c.id = p.category_id
	  ORDER BY p.id DESC LIMIT ?`, limit)
	return out, err
}

// Brands lists the distinct non-empty brands of active products.
func (r *ProductRepo) Brands() ([]string, error) {
	var out []string
	err := r.db.Select(&out, `
	  SELECT DISTINCT brand FROM products
	  WHERE is_active = 1 AND brand <> ''
	  ORDER BY brand`)
	return out, err
}

func (r *ProductRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM products`)
	return n, err
}

func (r *ProductRepo) Insert(p domain.Product) (int64, error) {
	res, err := r.db.Exec(`
	  INSERT INTO products(name, slug, sku, price_uah, stock, brand, category_id,
	                       description, images, is_active, created_at)
	  VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, datetime('now'))`,
		p.Name, p.Slug, p.SKU, p.PriceUAH, p.Stock, p.Brand, p.CategoryID,
		p.Description, p.Images, p.Active)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *ProductRepo) Update(p domain.Product) error {
	_, err := r.db.Exec(`
	  UPDATE products
	  SET name=?, slug=?, sku=?, price_uah=?, stock=?, brand=?, category_id=?,
	      description=?, images=?, is_active=?
	  WHERE id=?`,
		p.Name, p.Slug, p.SKU, p.PriceUAH, p.Stock, p.Brand, p.CategoryID,
		p.Description, p.Images, p.Active, p.ID)
	return err
}

// Delete is a hard delete; historical order items keep their snapshot.
func (r *ProductRepo) Delete(id int64) error {
	_, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	return err
}

// UniqueSlug returns base if free, else the first free base-2, base-3, ...
// excludeID skips the row being updated so a product keeps its own slug.
func (r *ProductRepo) UniqueSlug(base string, excludeID int64) (string, error) {
	candidate := base
	for i := 2; ; i++ {
		var id int64
		err := r.db.Get(&id, `SELECT id FROM products WHERE slug = ? AND id <> ?`, candidate, excludeID)
		if err == sql.ErrNoRows {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
