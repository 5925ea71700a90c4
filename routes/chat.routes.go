package routes

import (
	"AMALGAM_server/services"

	"github.com/gofiber/fiber/v2"
)

func chatRoutes(api fiber.Router) {
	chat := api.Group("/chat/:email")
	chat.Get("/", services.GetConversation)
	chat.Post("/", services.AddMessage)
}
