package dto

import "hirematch/internal/domain/matching"

type JobMatchResponse struct {
	JobPostingResponse
	MatchScore   int      `json:"match_score"`
	MatchReasons []string `json:"match_reasons"`
	MatchColor   string   `json:"match_color"`
	MatchLabel   string   `json:"match_label"`
}

func NewJobMatchResponse(m matching.JobMatch) JobMatchResponse {
	reasons := m.MatchReasons
	if reasons == nil {
		reasons = []string{}
	}
	return JobMatchResponse{
		JobPostingResponse: NewJobPostingResponse(m.Posting),
		MatchScore:         m.MatchScore,
		MatchReasons:       reasons,
		MatchColor:         matching.MatchScoreColor(m.MatchScore),
		MatchLabel:         matching.MatchScoreLabel(m.MatchScore),
	}
}

func NewJobMatchResponses(ms []matching.JobMatch) []JobMatchResponse {
	out := make([]JobMatchResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, NewJobMatchResponse(m))
	}
	return out
}

type JobRecommendationListResponse struct {
	Items    []JobMatchResponse `json:"items"`
	Total    int                `json:"total"`
	Limit    int                `json:"limit"`
	Offset   int                `json:"offset"`
	MinScore int                `json:"min_score"`
}

type ScoreRequest struct {
	Candidate CandidateProfilePayload `json:"candidate"`
	Job       JobPostingPayload       `json:"job"`
}
