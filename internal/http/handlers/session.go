package handlers

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"

	"github.com/3DMakc/3d-makc-fishing-store/internal/domain"
)

const (
	cartKey  = "cart"
	adminKey = "admin"
)

func NewSessionStore() *session.Store {
	return session.New(session.Config{
		KeyLookup:      "cookie:sid",
		KeyGenerator:   uuid.NewString,
		Expiration:     14 * 24 * time.Hour,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
}

// cartFromSession decodes the JSON-held cart; a missing or corrupt value
// falls back to an empty cart (lazy creation per session).
func cartFromSession(sess *session.Session) domain.Cart {
	raw, _ := sess.Get(cartKey).(string)
	if raw == "" {
		return domain.Cart{}
	}
	var c domain.Cart
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return domain.Cart{}
	}
	return c
}

func putCart(sess *session.Session, c domain.Cart) {
	b, _ := json.Marshal(c)
	sess.Set(cartKey, string(b))
}

func adminUser(sess *session.Session) string {
	u, _ := sess.Get(adminKey).(string)
	return u
}

// Locals exposes store name, cart badge count and admin state to every
// template render.
func Locals(store *session.Store, storeName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("StoreName", storeName)
		c.Locals("CartCount", 0)
		c.Locals("Authed", false)
		if sess, err := store.Get(c); err == nil {
			c.Locals("CartCount", cartFromSession(sess).Count())
			c.Locals("Authed", adminUser(sess) != "")
		}
		return c.Next()
	}
}
