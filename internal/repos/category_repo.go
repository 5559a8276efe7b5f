package repos

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/3DMakc/3d-makc-fishing-store/internal/domain"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) List() ([]domain.Category, error) {
	var out []domain.Category
	err := r.db.Select(&out, `SELECT id, name, slug FROM categories ORDER BY name`)
	return out, err
}

// ByName matches the exact (case-sensitive) category name, the key the
// CSV importer resolves against.
func (r *CategoryRepo) ByName(name string) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, `SELECT id, name, slug FROM categories WHERE name = ?`, name)
	return c, err
}

func (r *CategoryRepo) Insert(name, slug string) (int64, error) {
	res, err := r.db.Exec(`INSERT INTO categories(name, slug) VALUES(?, ?)`, name, slug)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UniqueSlug returns base if free, else the first free base-2, base-3, ...
func (r *CategoryRepo) UniqueSlug(base string) (string, error) {
	candidate := base
	for i := 2; ; i++ {
		var id int64
		err := r.db.Get(&id, `SELECT id FROM categories WHERE slug = ?`, candidate)
		if err == sql.ErrNoRows {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
