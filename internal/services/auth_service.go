package services

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/3DMakc/3d-makc-fishing-store/internal/repos"
)

// ErrBadCreds deliberately covers both unknown username and wrong
// password so the response leaks nothing about which part failed.
var ErrBadCreds = errors.New("invalid username or password")

type AuthService struct {
	Admins *repos.AdminRepo
}

func NewAuthService(admins *repos.AdminRepo) *AuthService { return &AuthService{Admins: admins} }

// Login verifies the credential pair and returns the canonical username
// to store in the session.
func (s *AuthService) Login(username, password string) (string, error) {
	username = strings.TrimSpace(username)
	a, err := s.Admins.ByUsername(username)
	if err != nil {
		return "", ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) != nil {
		return "", ErrBadCreds
	}
	return a.Username, nil
}
