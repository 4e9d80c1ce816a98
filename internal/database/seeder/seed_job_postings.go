package seeder

import (
	"context"
	"fmt"

	"hirematch/internal/database"
	"hirematch/internal/domain/job"

	"github.com/google/uuid"
)

type JobPostingsSeeder struct{}

func (JobPostingsSeeder) Name() string { return "job_postings" }

func intPtr(v int) *int { return &v }

// DemoJobPostings have fixed ids so reseeding is a no-op.
func DemoJobPostings() []job.Posting {
	return []job.Posting{
		{
			ID:                uuid.MustParse("6f1d2c1e-3b7a-4f0e-9a51-0c8b7d1e2a01"),
			Title:             "Senior Frontend Engineer",
			CompanyName:       "Northwind Labs",
			Description:       "Own the design system and the customer dashboard.",
			EmploymentType:    "full_time",
			RequiredSkills:    []string{"React", "TypeScript", "GraphQL"},
			LocationCity:      "San Francisco",
			LocationCountry:   "CA",
			MinimumExperience: intPtr(3),
			MaximumExperience: intPtr(7),
			Status:            job.StatusOpen,
		},
		{
			ID:                uuid.MustParse("6f1d2c1e-3b7a-4f0e-9a51-0c8b7d1e2a02"),
			Title:             "Backend Engineer (Go)",
			CompanyName:       "Contoso Cloud",
			Description:       "Build matching and billing services.",
			EmploymentType:    "full_time",
			RequiredSkills:    []string{"Go", "PostgreSQL", "Redis"},
			IsRemote:          true,
			MinimumExperience: intPtr(2),
			MaximumExperience: intPtr(6),
			Status:            job.StatusOpen,
		},
		{
			ID:                uuid.MustParse("6f1d2c1e-3b7a-4f0e-9a51-0c8b7d1e2a03"),
			Title:             "Data Analyst",
			CompanyName:       "Fabrikam",
			Description:       "Reporting for the sales organisation.",
			EmploymentType:    "contract",
			RequiredSkills:    []string{"SQL", "Python"},
			LocationCity:      "Berlin",
			LocationCountry:   "Germany",
			MinimumExperience: intPtr(1),
			Status:            job.StatusOpen,
		},
		{
			ID:             uuid.MustParse("6f1d2c1e-3b7a-4f0e-9a51-0c8b7d1e2a04"),
			Title:          "Platform Engineer",
			CompanyName:    "Contoso Cloud",
			EmploymentType: "full_time",
			RequiredSkills: []string{"Kubernetes", "Terraform", "Go"},
			IsRemote:       true,
			Status:         job.StatusPaused,
		},
	}
}

func (JobPostingsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "job_postings",
		"id", "title", "company_name", "description", "employment_type", "required_skills",
		"is_remote", "location_city", "location_country", "minimum_experience", "maximum_experience", "status",
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

	for _, p := range DemoJobPostings() {
		_, err := tx.Exec(ctx,
			`INSERT INTO job_postings (id, title, company_name, description, employment_type, required_skills,
				is_remote, location_city, location_country, minimum_experience, maximum_experience, status)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
			 ON CONFLICT (id) DO NOTHING`,
			p.ID, p.Title, p.CompanyName, p.Description, p.EmploymentType, p.RequiredSkills,
			p.IsRemote, p.LocationCity, p.LocationCountry, p.MinimumExperience, p.MaximumExperience, string(p.Status),
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
