package job

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusOpen   Status = "open"
	StatusPaused Status = "paused"
	StatusClosed Status = "closed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusPaused, StatusClosed:
		return true
	default:
		return false
	}
}

func ParseStatus(raw string) (Status, bool) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	return s, s.Valid()
}

// Posting is a job opening as stored by the product. Only RequiredSkills, IsRemote,
// the location pair, the experience bounds and Status take part in matching; the rest
// is carried through to callers unchanged.
type Posting struct {
	ID                uuid.UUID
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
	Status            Status
	CreatedBy         uuid.UUID
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (p Posting) IsOpen() bool {
	return p.Status == StatusOpen
}
