package handler

import (
	"hirematch/internal/delivery/http/dto"
	"hirematch/internal/pkg/response"
	"hirematch/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobRecommendationHandler struct {
	uc usecase.JobRecommendationUsecase
}

func NewJobRecommendationHandler(uc usecase.JobRecommendationUsecase) *JobRecommendationHandler {
	return &JobRecommendationHandler{uc: uc}
}

func (h *JobRecommendationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/jobs")
	grp.Get("/recommendations", h.GetRecommendations)
}

func (h *JobRecommendationHandler) GetRecommendations(c fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	limit, err := parseQueryIntStrict(c, "limit", 20)
	if err != nil {
		return err
	}
	offset, err := parseQueryIntStrict(c, "offset", 0)
	if err != nil {
		return err
	}

	if limit == 0 {
		return mapUsecaseError(&usecase.ValidationError{Field: "limit", Reason: "must be between 1 and 50"})
	}

	params := usecase.JobRecommendationParams{Limit: limit, Offset: offset}
	if c.Query("min_score") != "" {
		minScore, err := parseQueryIntStrict(c, "min_score", 0)
		if err != nil {
			return err
		}
		params.MinScore = &minScore
	}

	page, err := h.uc.GetRecommendations(c.Context(), userID, params)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.OK(c, dto.JobRecommendationListResponse{
		Items:    dto.NewJobMatchResponses(page.Items),
		Total:    page.Total,
		Limit:    page.Limit,
		Offset:   page.Offset,
		MinScore: page.MinScore,
	})
}
