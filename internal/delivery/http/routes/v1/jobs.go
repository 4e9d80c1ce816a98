package v1

import (
	"hirematch/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

// RegisterJobs mounts job routes. Static segments go first so /jobs/recommendations
// is not captured by /jobs/:job_id.
func RegisterJobs(r fiber.Router, recommendations *handler.JobRecommendationHandler, match *handler.MatchHandler, jobs *handler.JobsHandler) {
	if r == nil {
		return
	}

	if recommendations != nil {
		recommendations.RegisterRoutes(r)
	}
	if match != nil {
		match.RegisterRoutes(r)
	}
	if jobs != nil {
		jobs.RegisterRoutes(r)
	}
}
