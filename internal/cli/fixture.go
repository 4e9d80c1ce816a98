package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"hirematch/internal/delivery/http/dto"
	"hirematch/internal/domain/candidate"
	"hirematch/internal/domain/job"

	"gopkg.in/yaml.v3"
)

// Fixture is one candidate plus the postings to score them against.
type Fixture struct {
	Candidate dto.CandidateProfilePayload `yaml:"candidate"`
	Jobs      []dto.JobPostingPayload     `yaml:"jobs"`
}

func LoadFixture(path string) (Fixture, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Fixture{}, errors.New("fixture file is required (--file)")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("read fixture: %w", err)
	}
	return ParseFixture(data)
}

func ParseFixture(data []byte) (Fixture, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f Fixture
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return Fixture{}, errors.New("parse fixture: empty document")
		}
		return Fixture{}, fmt.Errorf("parse fixture: %w", err)
	}
	return f, nil
}

func (f Fixture) Profile() (candidate.Profile, error) {
	p, ok := f.Candidate.ToDomain()
	if !ok {
		return candidate.Profile{}, fmt.Errorf("candidate.preferred_location %q is not one of Remote, Hybrid, Onsite", f.Candidate.PreferredLocation)
	}
	return p, nil
}

func (f Fixture) Postings() []job.Posting {
	out := make([]job.Posting, 0, len(f.Jobs))
	for _, j := range f.Jobs {
		out = append(out, j.ToDomain())
	}
	return out
}
