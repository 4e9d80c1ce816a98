package dto

import (
	"time"

	"hirematch/internal/domain/job"
	"hirematch/internal/usecase"

	"github.com/google/uuid"
)

// JobPostingPayload is the write shape of a posting. The yaml tags let CLI fixtures
// share it.
type JobPostingPayload struct {
	ID                string   `json:"id,omitempty" yaml:"id,omitempty"`
	Title             string   `json:"title" yaml:"title"`
	CompanyName       string   `json:"company_name" yaml:"company_name"`
	Description       string   `json:"description" yaml:"description"`
	EmploymentType    string   `json:"employment_type" yaml:"employment_type"`
	RequiredSkills    []string `json:"required_skills" yaml:"required_skills"`
	IsRemote          bool     `json:"is_remote" yaml:"is_remote"`
	LocationCity      string   `json:"location_city" yaml:"location_city"`
	LocationCountry   string   `json:"location_country" yaml:"location_country"`
	MinimumExperience *int     `json:"minimum_experience" yaml:"minimum_experience"`
	MaximumExperience *int     `json:"maximum_experience" yaml:"maximum_experience"`
	Status            string   `json:"status" yaml:"status"`
}

func (p JobPostingPayload) ToInput() usecase.JobPostingInput {
	return usecase.JobPostingInput{
		Title:             p.Title,
		CompanyName:       p.CompanyName,
		Description:       p.Description,
		EmploymentType:    p.EmploymentType,
		RequiredSkills:    p.RequiredSkills,
		IsRemote:          p.IsRemote,
		LocationCity:      p.LocationCity,
		LocationCountry:   p.LocationCountry,
		MinimumExperience: p.MinimumExperience,
		MaximumExperience: p.MaximumExperience,
		Status:            p.Status,
	}
}

// ToDomain converts the payload for direct scoring. A missing status means open and
// an unparsable id is replaced by a fresh one.
func (p JobPostingPayload) ToDomain() job.Posting {
	status := job.StatusOpen
	if s, ok := job.ParseStatus(p.Status); ok {
		status = s
	} else if p.Status != "" {
		status = job.Status(p.Status)
	}

	id, err := uuid.Parse(p.ID)
	if err != nil {
		id = uuid.New()
	}

	return job.Posting{
		ID:                id,
		Title:             p.Title,
		CompanyName:       p.CompanyName,
		Description:       p.Description,
		EmploymentType:    p.EmploymentType,
		RequiredSkills:    p.RequiredSkills,
		IsRemote:          p.IsRemote,
		LocationCity:      p.LocationCity,
		LocationCountry:   p.LocationCountry,
		MinimumExperience: p.MinimumExperience,
		MaximumExperience: p.MaximumExperience,
		Status:            status,
	}
}

type JobStatusRequest struct {
	Status string `json:"status"`
}

type JobPostingResponse struct {
	ID                uuid.UUID `json:"id"`
	Title             string    `json:"title"`
	CompanyName       string    `json:"company_name"`
	Description       string    `json:"description"`
	EmploymentType    string    `json:"employment_type"`
	RequiredSkills    []string  `json:"required_skills"`
	IsRemote          bool      `json:"is_remote"`
	LocationCity      string    `json:"location_city"`
	LocationCountry   string    `json:"location_country"`
	MinimumExperience *int      `json:"minimum_experience"`
	MaximumExperience *int      `json:"maximum_experience"`
	Status            string    `json:"status"`
	CreatedAt         string    `json:"created_at,omitempty"`
	UpdatedAt         string    `json:"updated_at,omitempty"`
}

func NewJobPostingResponse(p job.Posting) JobPostingResponse {
	skills := p.RequiredSkills
	if skills == nil {
		skills = []string{}
	}
	return JobPostingResponse{
		ID:                p.ID,
		Title:             p.Title,
		CompanyName:       p.CompanyName,
		Description:       p.Description,
		EmploymentType:    p.EmploymentType,
		RequiredSkills:    skills,
		IsRemote:          p.IsRemote,
		LocationCity:      p.LocationCity,
		LocationCountry:   p.LocationCountry,
		MinimumExperience: p.MinimumExperience,
		MaximumExperience: p.MaximumExperience,
		Status:            string(p.Status),
		CreatedAt:         formatTime(p.CreatedAt),
		UpdatedAt:         formatTime(p.UpdatedAt),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
