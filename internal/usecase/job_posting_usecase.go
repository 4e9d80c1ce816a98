package usecase

import (
	"context"
	"errors"
	"strings"

	"hirematch/internal/domain/job"
	"hirematch/internal/logger"
	"hirematch/internal/pkg/jwt"
	"hirematch/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Actor struct {
	UserID uuid.UUID
	Role   string
}

func (a Actor) isRecruiter() bool {
	return a.Role == jwt.RoleRecruiter
}

type JobPostingInput struct {
	Title             string
	CompanyName       string
	Description       string
	EmploymentType    string
	RequiredSkills    []string
	IsRemote          bool
	LocationCity      string
	LocationCountry   string
	MinimumExperience *int
	MaximumExperience *int
	Status            string
}

type JobUpdateNotifier interface {
	NotifyJobUpdated(jobID uuid.UUID, status job.Status)
}

type JobPostingUsecase interface {
	Get(ctx context.Context, id uuid.UUID) (job.Posting, error)
	Create(ctx context.Context, actor Actor, in JobPostingInput) (job.Posting, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, in JobPostingInput) (job.Posting, error)
	ChangeStatus(ctx context.Context, actor Actor, id uuid.UUID, status string) (job.Posting, error)
}

type JobPosting struct {
	postings repository.JobPostingRepository
	cache    RecommendationCache
	notifier JobUpdateNotifier
	logger   *zap.Logger
}

func NewJobPostingUsecase(postings repository.JobPostingRepository, cache RecommendationCache, notifier JobUpdateNotifier, log *zap.Logger) *JobPosting {
	return &JobPosting{
		postings: postings,
		cache:    cache,
		notifier: notifier,
		logger:   logger.OrNop(log).Named("job_postings"),
	}
}

func (u *JobPosting) Get(ctx context.Context, id uuid.UUID) (job.Posting, error) {
	if id == uuid.Nil {
		return job.Posting{}, ErrJobNotFound
	}
	p, err := u.postings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJobPostingNotFound) {
			return job.Posting{}, ErrJobNotFound
		}
		return job.Posting{}, ErrInternal
	}
	return p, nil
}

func (u *JobPosting) Create(ctx context.Context, actor Actor, in JobPostingInput) (job.Posting, error) {
	if actor.UserID == uuid.Nil {
		return job.Posting{}, ErrUnauthorized
	}
	if !actor.isRecruiter() {
		return job.Posting{}, ErrForbidden
	}

	p, err := buildPosting(in, job.StatusOpen)
	if err != nil {
		return job.Posting{}, err
	}
	p.CreatedBy = actor.UserID

	created, err := u.postings.Create(ctx, p)
	if err != nil {
		u.logger.Error("create job posting", zap.Error(err))
		return job.Posting{}, ErrInternal
	}

	u.afterWrite(ctx, created)
	return created, nil
}

func (u *JobPosting) Update(ctx context.Context, actor Actor, id uuid.UUID, in JobPostingInput) (job.Posting, error) {
	if actor.UserID == uuid.Nil {
		return job.Posting{}, ErrUnauthorized
	}
	if !actor.isRecruiter() {
		return job.Posting{}, ErrForbidden
	}

	if id == uuid.Nil {
		return job.Posting{}, ErrJobNotFound
	}

	// An empty status keeps the stored one.
	p, err := buildPosting(in, "")
	if err != nil {
		return job.Posting{}, err
	}
	p.ID = id

	updated, err := u.postings.Update(ctx, p)
	if err != nil {
		if errors.Is(err, repository.ErrJobPostingNotFound) {
			return job.Posting{}, ErrJobNotFound
		}
		u.logger.Error("update job posting", zap.String("job_id", id.String()), zap.Error(err))
		return job.Posting{}, ErrInternal
	}

	u.afterWrite(ctx, updated)
	return updated, nil
}

func (u *JobPosting) ChangeStatus(ctx context.Context, actor Actor, id uuid.UUID, status string) (job.Posting, error) {
	if actor.UserID == uuid.Nil {
		return job.Posting{}, ErrUnauthorized
	}
	if !actor.isRecruiter() {
		return job.Posting{}, ErrForbidden
	}
	s, ok := job.ParseStatus(status)
	if !ok {
		return job.Posting{}, invalidField("status", "must be one of open, paused, closed")
	}
	if id == uuid.Nil {
		return job.Posting{}, ErrJobNotFound
	}

	updated, err := u.postings.UpdateStatus(ctx, id, s)
	if err != nil {
		if errors.Is(err, repository.ErrJobPostingNotFound) {
			return job.Posting{}, ErrJobNotFound
		}
		u.logger.Error("update job posting status", zap.String("job_id", id.String()), zap.Error(err))
		return job.Posting{}, ErrInternal
	}

	u.afterWrite(ctx, updated)
	return updated, nil
}

// afterWrite drops every cached ranking and tells subscribers. Both are best effort.
func (u *JobPosting) afterWrite(ctx context.Context, p job.Posting) {
	if u.cache != nil {
		if err := invalidateRecommendations(ctx, u.cache, RecommendationsGlobalGenerationKey(), RecommendationsAllPattern()); err != nil {
			u.logger.Warn("invalidate recommendations", zap.Error(err))
		}
	}
	if u.notifier != nil {
		u.notifier.NotifyJobUpdated(p.ID, p.Status)
	}
}

func buildPosting(in JobPostingInput, fallbackStatus job.Status) (job.Posting, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return job.Posting{}, invalidField("title", "is required")
	}

	status := fallbackStatus
	if strings.TrimSpace(in.Status) != "" {
		s, ok := job.ParseStatus(in.Status)
		if !ok {
			return job.Posting{}, invalidField("status", "must be one of open, paused, closed")
		}
		status = s
	}

	if in.MinimumExperience != nil && *in.MinimumExperience < 0 {
		return job.Posting{}, invalidField("minimum_experience", "must not be negative")
	}
	if in.MaximumExperience != nil && *in.MaximumExperience < 0 {
		return job.Posting{}, invalidField("maximum_experience", "must not be negative")
	}
	if in.MinimumExperience != nil && in.MaximumExperience != nil && *in.MinimumExperience > *in.MaximumExperience {
		return job.Posting{}, invalidField("maximum_experience", "must not be less than minimum_experience")
	}

	return job.Posting{
		Title:             title,
		CompanyName:       strings.TrimSpace(in.CompanyName),
		Description:       strings.TrimSpace(in.Description),
		EmploymentType:    strings.TrimSpace(in.EmploymentType),
		RequiredSkills:    normalizeSkills(in.RequiredSkills),
		IsRemote:          in.IsRemote,
		LocationCity:      strings.TrimSpace(in.LocationCity),
		LocationCountry:   strings.TrimSpace(in.LocationCountry),
		MinimumExperience: in.MinimumExperience,
		MaximumExperience: in.MaximumExperience,
		Status:            status,
	}, nil
}

func normalizeSkills(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
