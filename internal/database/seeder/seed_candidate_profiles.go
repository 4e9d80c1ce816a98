package seeder

import (
	"context"
	"fmt"

	"hirematch/internal/database"
	"hirematch/internal/domain/candidate"

	"github.com/google/uuid"
)

type CandidateProfilesSeeder struct{}

func (CandidateProfilesSeeder) Name() string { return "candidate_profiles" }

// DemoCandidateProfiles pairs with tokens minted by `matchctl token --user-id`.
func DemoCandidateProfiles() []candidate.Profile {
	return []candidate.Profile{
		{
			UserID:            uuid.MustParse("0b9e8a44-5c1d-4e7f-8a2b-3c4d5e6f7a81"),
			Skills:            []string{"React", "TypeScript", "Node.js"},
			Location:          "San Francisco, CA",
			YearsOfExperience: intPtr(5),
			PreferredLocation: candidate.PreferHybrid,
		},
		{
			UserID:            uuid.MustParse("0b9e8a44-5c1d-4e7f-8a2b-3c4d5e6f7a82"),
			Skills:            []string{"Go", "PostgreSQL", "Docker"},
			Location:          "Jakarta, Indonesia",
			YearsOfExperience: intPtr(4),
			PreferredLocation: candidate.PreferRemote,
		},
	}
}

func (CandidateProfilesSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "candidate_profiles",
		"user_id", "skills", "location", "years_of_experience", "preferred_location",
	); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, p := range DemoCandidateProfiles() {
		_, err := tx.Exec(ctx,
			`INSERT INTO candidate_profiles (user_id, skills, location, years_of_experience, preferred_location)
			 VALUES ($1,$2,$3,$4,$5)
			 ON CONFLICT (user_id) DO NOTHING`,
			p.UserID, p.Skills, p.Location, p.YearsOfExperience, string(p.PreferredLocation),
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
