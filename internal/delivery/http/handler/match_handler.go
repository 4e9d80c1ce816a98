package handler

import (
	"hirematch/internal/delivery/http/dto"
	"hirematch/internal/delivery/http/middleware"
	"hirematch/internal/pkg/response"
	"hirematch/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type MatchHandler struct {
	uc usecase.MatchingUsecase
}

func NewMatchHandler(uc usecase.MatchingUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/jobs/:job_id/match", h.GetMatch)
	r.Post("/match/score", h.Score)
}

func (h *MatchHandler) GetMatch(c fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	jobID, err := parseJobID(c)
	if err != nil {
		return err
	}

	m, err := h.uc.CalculateMatch(c.Context(), userID, jobID)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.OK(c, dto.NewJobMatchResponse(m))
}

// Score rates an arbitrary candidate against an arbitrary posting without touching
// storage.
func (h *MatchHandler) Score(c fiber.Ctx) error {
	var req dto.ScoreRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	profile, ok := req.Candidate.ToDomain()
	if !ok {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", response.FieldError{
			Field:  "candidate.preferred_location",
			Reason: "must be one of Remote, Hybrid, Onsite",
		}, nil)
	}

	m := h.uc.ScoreAdHoc(profile, req.Job.ToDomain())
	return response.OK(c, dto.NewJobMatchResponse(m))
}
