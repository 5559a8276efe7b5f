package domain

import (
	"database/sql"
	"strings"
)

type Category struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
	Slug string `db:"slug"`
}

type Product struct {
	ID          int64         `db:"id"`
	Name        string        `db:"name"`
	Slug        string        `db:"slug"`
	SKU         string        `db:"sku"`
	PriceUAH    float64       `db:"price_uah"`
	Stock       int           `db:"stock"`
	Brand       string        `db:"brand"`
	CategoryID  sql.NullInt64 `db:"category_id"`
	Description string        `db:"description"`
	Images      string        `db:"images"` // pipe-joined URL list
	Active      bool          `db:"is_active"`
	CreatedAt   string        `db:"created_at"`
}

// ImageList splits the stored pipe-joined image field, dropping blanks.
func (p Product) ImageList() []string {
	return SplitImages(p.Images)
}

func SplitImages(s string) []string {
	var out []string
	for _, part := range strings.Split(s, "|") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// JoinImages normalizes a list of image URLs back into storage form.
func JoinImages(parts []string) string {
	var kept []string
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, "|")
}

type Order struct {
	ID        int64   `db:"id"`
	FullName  string  `db:"full_name"`
	Phone     string  `db:"phone"`
	Region    string  `db:"region"`
	City      string  `db:"city"`
	NPBranch  string  `db:"np_branch"`
	Comment   string  `db:"comment"`
	TotalUAH  float64 `db:"total_uah"`
	Status    string  `db:"status"`
	CreatedAt string  `db:"created_at"`
}

// OrderItem snapshots name and price at checkout time; ProductID is
// nullable so the line survives a later product deletion.
type OrderItem struct {
	ID        int64         `db:"id"`
	OrderID   int64         `db:"order_id"`
	ProductID sql.NullInt64 `db:"product_id"`
	Name      string        `db:"name"`
	PriceUAH  float64       `db:"price_uah"`
	Qty       int           `db:"qty"`
}

func (it OrderItem) Subtotal() float64 { return it.PriceUAH * float64(it.Qty) }

type Admin struct {
	ID           int64  `db:"id"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
}
