package usecase

import (
	"context"
	"errors"

	"hirematch/internal/domain/candidate"
	"hirematch/internal/domain/job"
	"hirematch/internal/domain/matching"
	"hirematch/internal/repository"

	"github.com/google/uuid"
)

type MatchingUsecase interface {
	CalculateMatch(ctx context.Context, userID, jobID uuid.UUID) (matching.JobMatch, error)
	ScoreAdHoc(c candidate.Profile, p job.Posting) matching.JobMatch
}

type Matching struct {
	postings repository.JobPostingRepository
	profiles repository.CandidateProfileRepository
}

func NewMatchingUsecase(postings repository.JobPostingRepository, profiles repository.CandidateProfileRepository) *Matching {
	return &Matching{postings: postings, profiles: profiles}
}

// CalculateMatch scores the caller against one posting regardless of its status.
func (u *Matching) CalculateMatch(ctx context.Context, userID, jobID uuid.UUID) (matching.JobMatch, error) {
	if userID == uuid.Nil {
		return matching.JobMatch{}, ErrUnauthorized
	}
	if jobID == uuid.Nil {
		return matching.JobMatch{}, ErrJobNotFound
	}

	posting, err := u.postings.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobPostingNotFound) {
			return matching.JobMatch{}, ErrJobNotFound
		}
		return matching.JobMatch{}, ErrInternal
	}

	profile, err := u.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrCandidateProfileNotFound) {
			return matching.JobMatch{}, ErrInternal
		}
		profile = candidate.Profile{UserID: userID}
	}

	return matching.CalculateJobMatch(profile, posting), nil
}

func (u *Matching) ScoreAdHoc(c candidate.Profile, p job.Posting) matching.JobMatch {
	return matching.CalculateJobMatch(c, p)
}
