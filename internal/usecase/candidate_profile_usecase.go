package usecase

import (
	"context"
	"errors"
	"strings"

	"hirematch/internal/domain/candidate"
	"hirematch/internal/logger"
	"hirematch/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CandidateProfileInput struct {
	Skills            []string
	Location          string
	YearsOfExperience *int
	PreferredLocation string
}

type CandidateProfileUsecase interface {
	Get(ctx context.Context, userID uuid.UUID) (candidate.Profile, error)
	Upsert(ctx context.Context, userID uuid.UUID, in CandidateProfileInput) (candidate.Profile, error)
}

type CandidateProfile struct {
	profiles repository.CandidateProfileRepository
	cache    RecommendationCache
	logger   *zap.Logger
}

func NewCandidateProfileUsecase(profiles repository.CandidateProfileRepository, cache RecommendationCache, log *zap.Logger) *CandidateProfile {
	return &CandidateProfile{
		profiles: profiles,
		cache:    cache,
		logger:   logger.OrNop(log).Named("profiles"),
	}
}

func (u *CandidateProfile) Get(ctx context.Context, userID uuid.UUID) (candidate.Profile, error) {
	if userID == uuid.Nil {
		return candidate.Profile{}, ErrUnauthorized
	}
	p, err := u.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCandidateProfileNotFound) {
			return candidate.Profile{}, ErrProfileNotFound
		}
		return candidate.Profile{}, ErrInternal
	}
	return p, nil
}

func (u *CandidateProfile) Upsert(ctx context.Context, userID uuid.UUID, in CandidateProfileInput) (candidate.Profile, error) {
	if userID == uuid.Nil {
		return candidate.Profile{}, ErrUnauthorized
	}

	pref, ok := candidate.ParseWorkPreference(in.PreferredLocation)
	if !ok {
		return candidate.Profile{}, invalidField("preferred_location", "must be one of Remote, Hybrid, Onsite")
	}
	if in.YearsOfExperience != nil && *in.YearsOfExperience < 0 {
		return candidate.Profile{}, invalidField("years_of_experience", "must not be negative")
	}

	saved, err := u.profiles.Upsert(ctx, candidate.Profile{
		UserID:            userID,
		Skills:            normalizeSkills(in.Skills),
		Location:          strings.TrimSpace(in.Location),
		YearsOfExperience: in.YearsOfExperience,
		PreferredLocation: pref,
	})
	if err != nil {
		u.logger.Error("upsert candidate profile", zap.String("user_id", userID.String()), zap.Error(err))
		return candidate.Profile{}, ErrInternal
	}

	if u.cache != nil {
		if err := invalidateRecommendations(ctx, u.cache, RecommendationsUserGenerationKey(userID), RecommendationsUserPattern(userID)); err != nil {
			u.logger.Warn("invalidate recommendations", zap.String("user_id", userID.String()), zap.Error(err))
		}
	}

	return saved, nil
}
