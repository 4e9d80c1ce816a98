package dto

import (
	"hirematch/internal/domain/candidate"
	"hirematch/internal/usecase"

	"github.com/google/uuid"
)

type CandidateProfilePayload struct {
	Skills            []string `json:"skills" yaml:"skills"`
	Location          string   `json:"location" yaml:"location"`
	YearsOfExperience *int     `json:"years_of_experience" yaml:"years_of_experience"`
	PreferredLocation string   `json:"preferred_location" yaml:"preferred_location"`
}

func (p CandidateProfilePayload) ToInput() usecase.CandidateProfileInput {
	return usecase.CandidateProfileInput{
		Skills:            p.Skills,
		Location:          p.Location,
		YearsOfExperience: p.YearsOfExperience,
		PreferredLocation: p.PreferredLocation,
	}
}

// ToDomain converts the payload for direct scoring. It reports false when the
// preferred location is not a known value.
func (p CandidateProfilePayload) ToDomain() (candidate.Profile, bool) {
	pref, ok := candidate.ParseWorkPreference(p.PreferredLocation)
	if !ok {
		return candidate.Profile{}, false
	}
	return candidate.Profile{
		Skills:            p.Skills,
		Location:          p.Location,
		YearsOfExperience: p.YearsOfExperience,
		PreferredLocation: pref,
	}, true
}

type CandidateProfileResponse struct {
	UserID            uuid.UUID `json:"user_id"`
	Skills            []string  `json:"skills"`
	Location          string    `json:"location"`
	YearsOfExperience *int      `json:"years_of_experience"`
	PreferredLocation string    `json:"preferred_location"`
	UpdatedAt         string    `json:"updated_at,omitempty"`
}

func NewCandidateProfileResponse(p candidate.Profile) CandidateProfileResponse {
	skills := p.Skills
	if skills == nil {
		skills = []string{}
	}
	return CandidateProfileResponse{
		UserID:            p.UserID,
		Skills:            skills,
		Location:          p.Location,
		YearsOfExperience: p.YearsOfExperience,
		PreferredLocation: string(p.PreferredLocation),
		UpdatedAt:         formatTime(p.UpdatedAt),
	}
}
