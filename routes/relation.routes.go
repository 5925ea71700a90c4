package routes

import (
	"AMALGAM_server/services"

	"github.com/gofiber/fiber/v2"
)

func relationRoutes(api fiber.Router) {
	relation := api.Group("/relation/:email")
	relation.Post("/request", services.RequestRelation)
	relation.Post("/accept", services.AcceptRelation)
	relation.Post("/decline", services.DeclineRelation)
}
