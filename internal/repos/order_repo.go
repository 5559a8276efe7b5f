package repos

import (
	"github.com/jmoiron/sqlx"

	"github.com/3DMakc/3d-makc-fishing-store/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// Create writes the order header and all line items in one transaction:
// either every row for the order becomes visible or none do.
func (r *OrderRepo) Create(o domain.Order, items []domain.OrderItem) (int64, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`
	  INSERT INTO orders(full_name, phone, region, city, np_branch, comment,
	                     total_uah, status, created_at)
	  VALUES(?, ?, ?, ?, ?, ?, ?, 'new', datetime('now'))`,
		o.FullName, o.Phone, o.Region, o.City, o.NPBranch, o.Comment, o.TotalUAH)
	if err != nil {
		return 0, err
	}
	orderID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	for _, it := range items {
		if _, err := tx.Exec(`
		  INSERT INTO order_items(order_id, product_id, name, price_uah, qty)
		  VALUES(?, ?, ?, ?, ?)`,
			orderID, it.ProductID, it.Name, it.PriceUAH, it.Qty); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return orderID, nil
}

func (r *OrderRepo) Get(id int64) (domain.Order, error) {
	var o domain.Order
	err := r.db.Get(&o, `
	  SELECT id, full_name, phone, region, city, np_branch, comment,
	         total_uah, status, created_at
	  FROM orders WHERE id = ?`, id)
	return o, err
}

func (r *OrderRepo) Items(orderID int64) ([]domain.OrderItem, error) {
	var out []domain.OrderItem
	err := r.db.Select(&out, `
	  SELECT id, order_id, product_id, name, price_uah, qty
	  FROM order_items WHERE order_id = ? ORDER BY id`, orderID)
	return out, err
}

func (r *OrderRepo) ListLatest(limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []domain.Order
	err := r.db.Select(&out, `
	  SELECT id, full_name, phone, region, city, np_branch, comment,
	         total_uah, status, created_at
	  FROM orders ORDER BY id DESC LIMIT ?`, limit)
	return out, err
}

func (r *OrderRepo) UpdateStatus(id int64, status string) error {
	_, err := r.db.Exec(`UPDATE orders SET status = ? WHERE id = ?`, status, id)
	return err
}

func (r *OrderRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM orders`)
	return n, err
}

func (r *OrderRepo) CountByStatus(status string) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM orders WHERE status = ?`, status)
	return n, err
}
