// Package middleware provides authentication and request middleware for the application.
package middleware

import (
	"context"

	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/models"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/session"

	"github.com/gofiber/fiber/v2"
)

// LoginPath is where unauthenticated requests are sent.
const LoginPath = "/login"

// UserLoader re-fetches the user bound to a session.
type UserLoader interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

// SessionRequired gates a route on an authenticated session. The user row is
// re-read on every request; a session whose user no longer exists is destroyed.
func SessionRequired(users UserLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := session.From(c)
		if !sess.Authenticated() {
			return c.Redirect(LoginPath)
		}

		ctx := c.UserContext()
		user, err := users.GetByID(ctx, sess.UserID())
		if err != nil {
			if models.IsCode(err, models.CodeNotFound) {
				Logger.WarnContext(ctx, "session bound to missing user", "session_user_id", sess.UserID())
				sess.Destroy()
				return c.Redirect(LoginPath)
			}
			return err
		}
		if user == nil {
			sess.Destroy()
			return c.Redirect(LoginPath)
		}

		c.Locals("userID", user.ID)
		c.Locals("user", user)
		c.SetUserContext(context.WithValue(ctx, UserIDKey, user.ID))
		return c.Next()
	}
}

// CurrentUser returns the user resolved by SessionRequired.
func CurrentUser(c *fiber.Ctx) *models.User {
	u, _ := c.Locals("user").(*models.User)
	return u
}
