package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"hirematch/internal/database"
	"hirematch/internal/domain/job"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrJobPostingNotFound = errors.New("job posting not found")
)

type JobPostingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (job.Posting, error)
	ListByStatus(ctx context.Context, status job.Status, limit int) ([]job.Posting, error)
	Create(ctx context.Context, p job.Posting) (job.Posting, error)
	// Update replaces the descriptive fields. An empty Status keeps the stored status.
	Update(ctx context.Context, p job.Posting) (job.Posting, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status job.Status) (job.Posting, error)
}

type PostgresJobPostingRepository struct {
	db database.DB
}

func NewPostgresJobPostingRepository(db database.DB) *PostgresJobPostingRepository {
	return &PostgresJobPostingRepository{db: db}
}

const jobPostingColumns = `id, title, company_name, description, employment_type, required_skills,
	is_remote, location_city, location_country, minimum_experience, maximum_experience,
	status, created_by, created_at, updated_at`

func (r *PostgresJobPostingRepository) FindByID(ctx context.Context, id uuid.UUID) (job.Posting, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobPostingColumns+` FROM job_postings WHERE id = $1`, id)
	return scanJobPosting(row)
}

func (r *PostgresJobPostingRepository) ListByStatus(ctx context.Context, status job.Status, limit int) ([]job.Posting, error) {
	if limit <= 0 {
		limit = 500
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+jobPostingColumns+`
		 FROM job_postings
		 WHERE status = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		string(status), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Posting, 0)
	for rows.Next() {
		p, err := scanJobPosting(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobPostingRepository) Create(ctx context.Context, p job.Posting) (job.Posting, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now().UTC()

	row := r.db.QueryRow(ctx,
		`INSERT INTO job_postings (id, title, company_name, description, employment_type, required_skills,
			is_remote, location_city, location_country, minimum_experience, maximum_experience,
			status, created_by, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$14)
		 RETURNING `+jobPostingColumns,
		p.ID,
		p.Title,
		p.CompanyName,
		p.Description,
		p.EmploymentType,
		nonNilStrings(p.RequiredSkills),
		p.IsRemote,
		p.LocationCity,
		p.LocationCountry,
		p.MinimumExperience,
		p.MaximumExperience,
		string(p.Status),
		uuid.NullUUID{UUID: p.CreatedBy, Valid: p.CreatedBy != uuid.Nil},
		now,
	)
	return scanJobPosting(row)
}

func (r *PostgresJobPostingRepository) Update(ctx context.Context, p job.Posting) (job.Posting, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE job_postings
		 SET title = $2, company_name = $3, description = $4, employment_type = $5, required_skills = $6,
			is_remote = $7, location_city = $8, location_country = $9, minimum_experience = $10,
			maximum_experience = $11, status = COALESCE(NULLIF($12, ''), status), updated_at = $13
		 WHERE id = $1
		 RETURNING `+jobPostingColumns,
		p.ID,
		p.Title,
		p.CompanyName,
		p.Description,
		p.EmploymentType,
		nonNilStrings(p.RequiredSkills),
		p.IsRemote,
		p.LocationCity,
		p.LocationCountry,
		p.MinimumExperience,
		p.MaximumExperience,
		string(p.Status),
		time.Now().UTC(),
	)
	return scanJobPosting(row)
}

func (r *PostgresJobPostingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status job.Status) (job.Posting, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE job_postings SET status = $2, updated_at = $3 WHERE id = $1 RETURNING `+jobPostingColumns,
		id, string(status), time.Now().UTC(),
	)
	return scanJobPosting(row)
}

func scanJobPosting(row database.Row) (job.Posting, error) {
	var (
		p         job.Posting
		status    string
		createdBy uuid.NullUUID
	)
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.CompanyName,
		&p.Description,
		&p.EmploymentType,
		&p.RequiredSkills,
		&p.IsRemote,
		&p.LocationCity,
		&p.LocationCountry,
		&p.MinimumExperience,
		&p.MaximumExperience,
		&status,
		&createdBy,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return job.Posting{}, ErrJobPostingNotFound
		}
		return job.Posting{}, err
	}
	p.Status = job.Status(status)
	if createdBy.Valid {
		p.CreatedBy = createdBy.UUID
	}
	return p, nil
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows)
}

func nonNilStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
