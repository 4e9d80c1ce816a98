package handler

import (
	"hirematch/internal/delivery/http/dto"
	"hirematch/internal/delivery/http/middleware"
	"hirematch/internal/pkg/jwt"
	"hirematch/internal/pkg/response"
	"hirematch/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobsHandler struct {
	uc usecase.JobPostingUsecase
}

func NewJobsHandler(uc usecase.JobPostingUsecase) *JobsHandler {
	return &JobsHandler{uc: uc}
}

func (h *JobsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/jobs")
	grp.Get("/:job_id", h.GetJob)

	recruiterOnly := middleware.RequireRole(jwt.RoleRecruiter)
	grp.Post("", recruiterOnly, h.CreateJob)
	grp.Put("/:job_id", recruiterOnly, h.UpdateJob)
	grp.Patch("/:job_id/status", recruiterOnly, h.UpdateJobStatus)
}

func (h *JobsHandler) GetJob(c fiber.Ctx) error {
	jobID, err := parseJobID(c)
	if err != nil {
		return err
	}

	p, err := h.uc.Get(c.Context(), jobID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, dto.NewJobPostingResponse(p))
}

func (h *JobsHandler) CreateJob(c fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}

	var req dto.JobPostingPayload
	if err := bindBody(c, &req); err != nil {
		return err
	}

	p, err := h.uc.Create(c.Context(), actor, req.ToInput())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, dto.NewJobPostingResponse(p))
}

func (h *JobsHandler) UpdateJob(c fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}
	jobID, err := parseJobID(c)
	if err != nil {
		return err
	}

	var req dto.JobPostingPayload
	if err := bindBody(c, &req); err != nil {
		return err
	}

	p, err := h.uc.Update(c.Context(), actor, jobID, req.ToInput())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, dto.NewJobPostingResponse(p))
}

func (h *JobsHandler) UpdateJobStatus(c fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}
	jobID, err := parseJobID(c)
	if err != nil {
		return err
	}

	var req dto.JobStatusRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	p, err := h.uc.ChangeStatus(c.Context(), actor, jobID, req.Status)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, dto.NewJobPostingResponse(p))
}

func actorFromCtx(c fiber.Ctx) (usecase.Actor, error) {
	userID, err := requireUserID(c)
	if err != nil {
		return usecase.Actor{}, err
	}
	return usecase.Actor{UserID: userID, Role: middleware.RoleFromCtx(c)}, nil
}
