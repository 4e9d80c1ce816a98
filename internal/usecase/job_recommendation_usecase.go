package usecase

import (
	"context"
	"errors"
	"time"

	"hirematch/internal/domain/candidate"
	"hirematch/internal/domain/job"
	"hirematch/internal/domain/matching"
	"hirematch/internal/logger"
	"hirematch/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultRecommendationLimit = 20
	maxRecommendationLimit     = 50
	defaultMaxJobs             = 500
)

type JobRecommendationParams struct {
	Limit  int
	Offset int
	// MinScore falls back to the configured default when nil.
	MinScore *int
}

type JobRecommendationPage struct {
	Items    []matching.JobMatch
	Total    int
	Limit    int
	Offset   int
	MinScore int
}

type JobRecommendationUsecase interface {
	GetRecommendations(ctx context.Context, userID uuid.UUID, params JobRecommendationParams) (JobRecommendationPage, error)
}

type JobRecommendationConfig struct {
	DefaultMinScore int
	MaxJobs         int
	CacheTTL        time.Duration
}

type JobRecommendation struct {
	postings repository.JobPostingRepository
	profiles repository.CandidateProfileRepository
	cache    RecommendationCache
	cfg      JobRecommendationConfig
	logger   *zap.Logger
}

func NewJobRecommendationUsecase(
	postings repository.JobPostingRepository,
	profiles repository.CandidateProfileRepository,
	cache RecommendationCache,
	cfg JobRecommendationConfig,
	log *zap.Logger,
) *JobRecommendation {
	if cfg.MaxJobs <= 0 {
		cfg.MaxJobs = defaultMaxJobs
	}
	if cfg.DefaultMinScore < 0 {
		cfg.DefaultMinScore = matching.DefaultMinScore
	}
	return &JobRecommendation{
		postings: postings,
		profiles: profiles,
		cache:    cache,
		cfg:      cfg,
		logger:   logger.OrNop(log).Named("recommendations"),
	}
}

func (u *JobRecommendation) GetRecommendations(ctx context.Context, userID uuid.UUID, params JobRecommendationParams) (JobRecommendationPage, error) {
	if userID == uuid.Nil {
		return JobRecommendationPage{}, ErrUnauthorized
	}

	limit := params.Limit
	if limit == 0 {
		limit = defaultRecommendationLimit
	}
	if limit < 1 || limit > maxRecommendationLimit {
		return JobRecommendationPage{}, invalidField("limit", "must be between 1 and 50")
	}
	if params.Offset < 0 {
		return JobRecommendationPage{}, invalidField("offset", "must not be negative")
	}

	minScore := u.cfg.DefaultMinScore
	if params.MinScore != nil {
		minScore = *params.MinScore
	}
	if minScore < 0 || minScore > 100 {
		return JobRecommendationPage{}, invalidField("min_score", "must be between 0 and 100")
	}

	ranked, err := u.ranked(ctx, userID, minScore)
	if err != nil {
		return JobRecommendationPage{}, err
	}

	return JobRecommendationPage{
		Items:    paginate(ranked, limit, params.Offset),
		Total:    len(ranked),
		Limit:    limit,
		Offset:   params.Offset,
		MinScore: minScore,
	}, nil
}

func (u *JobRecommendation) ranked(ctx context.Context, userID uuid.UUID, minScore int) ([]matching.JobMatch, error) {
	var (
		key       string
		cacheable bool
	)
	if u.cache != nil {
		var gen RecommendationGeneration
		gen, cacheable = readGeneration(ctx, u.cache, userID)
		if !cacheable {
			u.logger.Debug("recommendation generation unreadable, skipping cache", zap.String("user_id", userID.String()))
		}
		key = RecommendationsCacheKey(userID, gen, minScore)
	}

	if cacheable {
		var cached []matching.JobMatch
		ok, err := u.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			u.logger.Debug("recommendation cache read failed", zap.String("key", key), zap.Error(err))
		}
		if ok {
			return cached, nil
		}
	}

	var (
		profile  candidate.Profile
		postings []job.Posting
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := u.profiles.FindByUserID(gctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrCandidateProfileNotFound) {
				profile = candidate.Profile{UserID: userID}
				return nil
			}
			return err
		}
		profile = p
		return nil
	})
	g.Go(func() error {
		ps, err := u.postings.ListByStatus(gctx, job.StatusOpen, u.cfg.MaxJobs)
		if err != nil {
			return err
		}
		postings = ps
		return nil
	})
	if err := g.Wait(); err != nil {
		u.logger.Error("load recommendation inputs", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, ErrInternal
	}

	ranked := matching.GetRecommendedJobs(profile, postings, minScore)

	if cacheable {
		if err := u.cache.SetJSON(ctx, key, ranked, u.cfg.CacheTTL); err != nil {
			u.logger.Debug("recommendation cache write failed", zap.String("key", key), zap.Error(err))
		}
	}

	return ranked, nil
}

func paginate(items []matching.JobMatch, limit, offset int) []matching.JobMatch {
	if offset >= len(items) {
		return []matching.JobMatch{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
