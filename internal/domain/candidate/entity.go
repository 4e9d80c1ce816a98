package candidate

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type WorkPreference string

const (
	PreferRemote WorkPreference = "Remote"
	PreferHybrid WorkPreference = "Hybrid"
	PreferOnsite WorkPreference = "Onsite"
)

func (w WorkPreference) Valid() bool {
	switch w {
	case PreferRemote, PreferHybrid, PreferOnsite:
		return true
	default:
		return false
	}
}

// ParseWorkPreference accepts any casing and returns the canonical value.
// An empty input yields "" and true: the preference is optional.
func ParseWorkPreference(raw string) (WorkPreference, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", true
	}
	for _, w := range []WorkPreference{PreferRemote, PreferHybrid, PreferOnsite} {
		if strings.EqualFold(raw, string(w)) {
			return w, true
		}
	}
	return "", false
}

// Profile holds what the matcher knows about a candidate. Every field is optional:
// nil/empty Skills, empty Location, nil YearsOfExperience and empty PreferredLocation
// all mean "not provided".
type Profile struct {
	UserID            uuid.UUID
	Skills            []string
	Location          string
	YearsOfExperience *int
	PreferredLocation WorkPreference
	UpdatedAt         time.Time
}
