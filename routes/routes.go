package routes

import (
	"AMALGAM_server/config"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// SetRoutes sets all routes of server
func SetRoutes(app *fiber.App) {
	api := app.Group(config.Config.Version)
	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.Config.Origin,
		AllowCredentials: true,
	}))

	authRoutes(api)
	userRoutes(api)
	publicRoutes(api)
}
