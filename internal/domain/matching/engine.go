package matching

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"hirematch/internal/domain/candidate"
	"hirematch/internal/domain/job"
)

const (
	DefaultMinScore = 30

	skillWeight      = 40.0
	locationWeight   = 30
	locationPartial  = 10
	experienceWeight = 30
	experienceClose  = 20
	experienceAbove  = 15
	experienceBelow  = 5

	defaultMaxExperience = 100
	maxScore             = 100
)

const (
	ReasonRemote          = "Remote position"
	ReasonLocation        = "Location match"
	ReasonExperience      = "Experience level match"
	ReasonCloseExperience = "Close experience match"
	ReasonExceeds         = "Exceeds experience requirement"
)

// JobMatch is a posting annotated with the candidate's score and the reasons that
// contributed to it, in skill, location, experience order.
type JobMatch struct {
	job.Posting
	MatchScore   int
	MatchReasons []string
}

// CalculateJobMatch scores one posting for one candidate. It is total: missing
// candidate fields just skip their factor.
func CalculateJobMatch(c candidate.Profile, p job.Posting) JobMatch {
	reasons := make([]string, 0, 3)

	skills, skillReason := skillPoints(c.Skills, p.RequiredSkills)
	if skillReason != "" {
		reasons = append(reasons, skillReason)
	}

	loc, locReason := locationPoints(c.Location, p)
	if locReason != "" {
		reasons = append(reasons, locReason)
	}

	exp, expReason := experiencePoints(c.YearsOfExperience, p.MinimumExperience, p.MaximumExperience)
	if expReason != "" {
		reasons = append(reasons, expReason)
	}

	score := int(math.Round(skills + float64(loc+exp)))
	if score > maxScore {
		score = maxScore
	}

	return JobMatch{
		Posting:      p,
		MatchScore:   score,
		MatchReasons: reasons,
	}
}

// GetRecommendedJobs scores the open postings, drops those under minScore and
// returns the rest best first.
func GetRecommendedJobs(c candidate.Profile, postings []job.Posting, minScore int) []JobMatch {
	out := make([]JobMatch, 0, len(postings))
	for _, p := range postings {
		if !p.IsOpen() {
			continue
		}
		m := CalculateJobMatch(c, p)
		if m.MatchScore < minScore {
			continue
		}
		out = append(out, m)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchScore > out[j].MatchScore
	})
	return out
}

// skillPoints counts candidate skills that overlap any required skill. The count is
// over candidate skills, so duplicates or several aliases of one requirement can push
// the fraction above 1; the overall score clamp absorbs that.
func skillPoints(candidateSkills, required []string) (float64, string) {
	if len(candidateSkills) == 0 || len(required) == 0 {
		return 0, ""
	}

	req := make([]string, 0, len(required))
	for _, r := range required {
		req = append(req, strings.ToLower(r))
	}

	matches := 0
	for _, s := range candidateSkills {
		cs := strings.ToLower(s)
		for _, r := range req {
			if strings.Contains(cs, r) || strings.Contains(r, cs) {
				matches++
				break
			}
		}
	}

	points := math.Round(float64(matches) / float64(len(req)) * skillWeight)
	if matches == 0 {
		return points, ""
	}
	return points, fmt.Sprintf("%d matching skills", matches)
}

func locationPoints(candidateLocation string, p job.Posting) (int, string) {
	if p.IsRemote {
		return locationWeight, ReasonRemote
	}
	if candidateLocation == "" || p.LocationCity == "" {
		return 0, ""
	}

	cl := strings.ToLower(candidateLocation)
	jl := strings.ToLower(p.LocationCity + ", " + p.LocationCountry)
	if strings.Contains(jl, cl) || strings.Contains(cl, jl) {
		return locationWeight, ReasonLocation
	}
	return locationPartial, ""
}

// experiencePoints checks tiers in order; the "close" window is wider
// above the maximum (+2) than below the minimum (-1).
func experiencePoints(years, minimum, maximum *int) (int, string) {
	if years == nil {
		return 0, ""
	}
	y := *years

	minExp := 0
	if minimum != nil {
		minExp = *minimum
	}
	maxExp := defaultMaxExperience
	if maximum != nil {
		maxExp = *maximum
	}

	switch {
	case y >= minExp && y <= maxExp:
		return experienceWeight, ReasonExperience
	case y >= minExp-1 && y <= maxExp+2:
		return experienceClose, ReasonCloseExperience
	case y >= minExp:
		return experienceAbove, ReasonExceeds
	default:
		return experienceBelow, ""
	}
}
