package handler

import (
	"errors"
	"strconv"
	"strings"

	"hirematch/internal/delivery/http/middleware"
	"hirematch/internal/pkg/response"
	"hirematch/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	var ve *usecase.ValidationError
	switch {
	case errors.As(err, &ve):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", response.FieldError{Field: ve.Field, Reason: ve.Reason}, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrProfileNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Candidate profile not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func requireUserID(c fiber.Ctx) (uuid.UUID, error) {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return uuid.Nil, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return userID, nil
}

func parseJobID(c fiber.Ctx) (uuid.UUID, error) {
	jobID, err := uuid.Parse(strings.TrimSpace(c.Params("job_id")))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Bad request", response.FieldError{Field: "job_id", Reason: "must be a UUID"}, err)
	}
	return jobID, nil
}

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := strings.TrimSpace(c.Query(key))
	if s == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, middleware.NewAppError(fiber.StatusBadRequest, "Bad request", response.FieldError{Field: key, Reason: "must be an integer"}, err)
	}
	return v, nil
}

func bindBody(c fiber.Ctx, out any) error {
	if err := c.Bind().Body(out); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request body", nil, err)
	}
	return nil
}
