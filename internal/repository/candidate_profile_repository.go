package repository

import (
	"context"
	"errors"
	"time"

	"hirematch/internal/database"
	"hirematch/internal/domain/candidate"

	"github.com/google/uuid"
)

var (
	ErrCandidateProfileNotFound = errors.New("candidate profile not found")
)

type CandidateProfileRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (candidate.Profile, error)
	Upsert(ctx context.Context, p candidate.Profile) (candidate.Profile, error)
}

type PostgresCandidateProfileRepository struct {
	db database.DB
}

func NewPostgresCandidateProfileRepository(db database.DB) *PostgresCandidateProfileRepository {
	return &PostgresCandidateProfileRepository{db: db}
}

func (r *PostgresCandidateProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (candidate.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT user_id, skills, location, years_of_experience, preferred_location, updated_at
		 FROM candidate_profiles
		 WHERE user_id = $1`,
		userID,
	)
	return scanCandidateProfile(row)
}

func (r *PostgresCandidateProfileRepository) Upsert(ctx context.Context, p candidate.Profile) (candidate.Profile, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO candidate_profiles (user_id, skills, location, years_of_experience, preferred_location, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 ON CONFLICT (user_id) DO UPDATE SET
			skills = EXCLUDED.skills,
			location = EXCLUDED.location,
			years_of_experience = EXCLUDED.years_of_experience,
			preferred_location = EXCLUDED.preferred_location,
			updated_at = EXCLUDED.updated_at
		 RETURNING user_id, skills, location, years_of_experience, preferred_location, updated_at`,
		p.UserID,
		nonNilStrings(p.Skills),
		p.Location,
		p.YearsOfExperience,
		string(p.PreferredLocation),
		time.Now().UTC(),
	)
	return scanCandidateProfile(row)
}

func scanCandidateProfile(row database.Row) (candidate.Profile, error) {
	var (
		p    candidate.Profile
		pref string
	)
	if err := row.Scan(&p.UserID, &p.Skills, &p.Location, &p.YearsOfExperience, &pref, &p.UpdatedAt); err != nil {
		if isNoRows(err) {
			return candidate.Profile{}, ErrCandidateProfileNotFound
		}
		return candidate.Profile{}, err
	}
	p.PreferredLocation = candidate.WorkPreference(pref)
	return p, nil
}
