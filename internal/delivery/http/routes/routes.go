package routes

import (
	"hirematch/internal/delivery/http/handler"
	v1 "hirematch/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health *handler.HealthHandler
	v1     v1.Handlers
}

func NewRegistry(health *handler.HealthHandler, v1Handlers v1.Handlers) *Registry {
	if health == nil {
		health = handler.NewHealthHandler()
	}
	return &Registry{health: health, v1: v1Handlers}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	r.health.RegisterRoutes(app)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	v1.Register(api.Group("/v1"), r.v1)
}
