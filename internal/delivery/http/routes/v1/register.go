package v1

import (
	"hirematch/internal/delivery/http/handler"
	"hirematch/internal/delivery/http/middleware"
	"hirematch/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Auth              *middleware.AuthMiddleware
	JobRecommendation *handler.JobRecommendationHandler
	Match             *handler.MatchHandler
	Jobs              *handler.JobsHandler
	CandidateProfile  *handler.CandidateProfileHandler
	WS                *ws.Handler
}

// Register mounts every v1 route behind the auth middleware.
func Register(r fiber.Router, h Handlers) {
	if r == nil || h.Auth == nil {
		return
	}

	protected := r.Group("", h.Auth.Middleware())

	RegisterJobs(protected, h.JobRecommendation, h.Match, h.Jobs)
	RegisterUsers(protected, h.CandidateProfile)

	if h.WS != nil {
		h.WS.RegisterRoutes(protected)
	}
}
