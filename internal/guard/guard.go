package guard

import (
	"strings"

	"backend-snapfeed/internal/session"
	"backend-snapfeed/internal/user"

	"github.com/gofiber/fiber/v2"
)

// IsAdmin reports whether a session user may use the admin panel. The
// nickname fallback keeps dev accounts working before the is_admin flag
// is provisioned.
func IsAdmin(u user.User) bool {
	if u.IsAdmin {
		return true
	}
	return u.NickName == "admin"
}

// Guard resolves sessions lazily through the store and redirects instead of
// erroring, matching browser navigation semantics.
type Guard struct {
	sessions *session.Store
}

func New(sessions *session.Store) *Guard {
	return &Guard{sessions: sessions}
}

// RequireAuth redirects unauthenticated requests to /login.
func (g *Guard) RequireAuth(c *fiber.Ctx) error {
	rec := g.resolve(c)
	if rec == nil || !rec.Authenticated {
		return c.Redirect("/login", fiber.StatusFound)
	}
	c.Locals("session", rec)
	return c.Next()
}

// RequireAdmin checks authentication first, then the admin predicate.
func (g *Guard) RequireAdmin(c *fiber.Ctx) error {
	rec := g.resolve(c)
	if rec == nil || !rec.Authenticated {
		return c.Redirect("/login", fiber.StatusFound)
	}
	if !IsAdmin(rec.User) {
		return c.Redirect("/", fiber.StatusFound)
	}
	c.Locals("session", rec)
	return c.Next()
}

// GuestOnly sends authenticated users back to the feed.
func (g *Guard) GuestOnly(c *fiber.Ctx) error {
	rec := g.resolve(c)
	if rec != nil && rec.Authenticated {
		return c.Redirect("/", fiber.StatusFound)
	}
	return c.Next()
}

func (g *Guard) resolve(c *fiber.Ctx) *session.Record {
	token := tokenFromRequest(c)
	if token == "" {
		return nil
	}
	rec, err := g.sessions.Init(c.Context(), token)
	if err != nil {
		return nil
	}
	return rec
}

func tokenFromRequest(c *fiber.Ctx) string {
	if token := c.Cookies("access_token"); token != "" {
		return token
	}
	parts := strings.SplitN(c.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
