package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/aoa-site/internal/service"
)

// SessionCookieName is the cookie carrying the visitor session identifier.
const SessionCookieName = "aoa_session"

const sessionLocalKey = "session"

// SessionConfig customises the session middleware.
type SessionConfig struct {
	Secure bool
	TTL    time.Duration
}

// Sessions resolves the visitor session from its cookie and stores it in the request locals.
// Unknown identifiers are replaced by a fresh session. The cookie is re-issued
// on every request so its lifetime follows the idle timeout.
func Sessions(registry *service.SessionRegistry, cfg SessionConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, _ := registry.Resolve(c.UserContext(), c.Cookies(SessionCookieName))

		cookie := &fiber.Cookie{
			Name:     SessionCookieName,
			Value:    session.ID,
			Path:     "/",
			HTTPOnly: true,
			Secure:   cfg.Secure,
			SameSite: fiber.CookieSameSiteLaxMode,
		}
		if cfg.TTL > 0 {
			cookie.MaxAge = int(cfg.TTL.Seconds())
		}
		c.Cookie(cookie)

		c.Locals(sessionLocalKey, session)
		return c.Next()
	}
}

// SessionFromContext returns the visitor session bound to the request, if any.
func SessionFromContext(c *fiber.Ctx) *service.Session {
	if c == nil {
		return nil
	}
	if session, ok := c.Locals(sessionLocalKey).(*service.Session); ok {
		return session
	}
	return nil
}
