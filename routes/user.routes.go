package routes

import (
	"AMALGAM_server/helpers"
	"AMALGAM_server/middlewares"
	"AMALGAM_server/services"

	"github.com/gofiber/fiber/v2"
)

func userRoutes(api fiber.Router) {
	user := api.Group("/user")
	user.Use(middlewares.Authenticate)

	user.Get("/authorize", helpers.OKResponse)
	user.Get("/me", services.Me)

	relationRoutes(user)
	chatRoutes(user)
}
