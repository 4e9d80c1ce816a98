package v1

import (
	"hirematch/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func RegisterUsers(r fiber.Router, profileHandler *handler.CandidateProfileHandler) {
	if r == nil {
		return
	}
	if profileHandler == nil {
		return
	}

	profileHandler.RegisterRoutes(r)
}
