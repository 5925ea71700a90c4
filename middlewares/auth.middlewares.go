package middlewares

import (
	"AMALGAM_server/errors"
	"AMALGAM_server/helpers"
	"AMALGAM_server/social"

	"github.com/gofiber/fiber/v2"
)

// Authenticate resolves the caller's session to an email and rejects requests
// with no authenticated identity
func Authenticate(c *fiber.Ctx) error {

	email, err := helpers.SessionEmail(c)
	if err != nil {
		if err == social.ErrNotAuthenticated {
			return errors.HandleUnauthorizedError(c)
		}
		return errors.HandleInternalError(c, "session", "Redis: "+err.Error())
	}

	c.Locals("email", email)
	return c.Next()
}
