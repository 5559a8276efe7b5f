package repos

import (
	"github.com/jmoiron/sqlx"

	"github.com/3DMakc/3d-makc-fishing-store/internal/domain"
)

type AdminRepo struct{ db *sqlx.DB }

func NewAdminRepo(db *sqlx.DB) *AdminRepo { return &AdminRepo{db: db} }

func (r *AdminRepo) ByUsername(username string) (domain.Admin, error) {
	var a domain.Admin
	err := r.db.Get(&a, `SELECT id, username, password_hash FROM admins WHERE username = ?`, username)
	return a, err
}
