package helpers

import (
	"AMALGAM_server/schemas"

	"github.com/gofiber/fiber/v2"
)

// OKResponse sends a successful request/response
func OKResponse(c *fiber.Ctx) error {
	return c.JSON(schemas.Message{
		Message: "OK",
	})
}
