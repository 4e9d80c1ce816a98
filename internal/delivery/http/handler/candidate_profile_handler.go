package handler

import (
	"hirematch/internal/delivery/http/dto"
	"hirematch/internal/pkg/response"
	"hirematch/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type CandidateProfileHandler struct {
	uc usecase.CandidateProfileUsecase
}

func NewCandidateProfileHandler(uc usecase.CandidateProfileUsecase) *CandidateProfileHandler {
	return &CandidateProfileHandler{uc: uc}
}

func (h *CandidateProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/me")
	grp.Get("/profile", h.GetProfile)
	grp.Put("/profile", h.PutProfile)
}

func (h *CandidateProfileHandler) GetProfile(c fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	p, err := h.uc.Get(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, dto.NewCandidateProfileResponse(p))
}

func (h *CandidateProfileHandler) PutProfile(c fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req dto.CandidateProfilePayload
	if err := bindBody(c, &req); err != nil {
		return err
	}

	p, err := h.uc.Upsert(c.Context(), userID, req.ToInput())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, dto.NewCandidateProfileResponse(p))
}
