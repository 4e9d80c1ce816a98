package handler

import (
	"context"
	"time"

	"hirematch/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheck is a named dependency probe. Optional checks report but never fail
// the endpoint.
type HealthCheck struct {
	Name     string
	Pinger   Pinger
	Optional bool
}

type HealthHandler struct {
	checks []HealthCheck
}

func NewHealthHandler(checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	status := fiber.StatusOK
	deps := make(map[string]string, len(h.checks))
	for _, chk := range h.checks {
		if chk.Pinger == nil {
			continue
		}
		if err := chk.Pinger.Ping(ctx); err != nil {
			deps[chk.Name] = "unavailable"
			if !chk.Optional {
				status = fiber.StatusServiceUnavailable
			}
			continue
		}
		deps[chk.Name] = "ok"
	}

	if status != fiber.StatusOK {
		return response.Error(c, status, "degraded", fiber.Map{"dependencies": deps})
	}
	return response.OK(c, fiber.Map{"dependencies": deps})
}
