package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hirematch/internal/delivery/http/handler"
	"hirematch/internal/delivery/http/middleware"
	"hirematch/internal/delivery/http/routes"
	v1 "hirematch/internal/delivery/http/routes/v1"
	"hirematch/internal/domain/candidate"
	"hirematch/internal/domain/job"
	"hirematch/internal/domain/matching"
	"hirematch/internal/pkg/jwt"
	"hirematch/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type fakeRecommendations struct {
	page   usecase.JobRecommendationPage
	err    error
	params usecase.JobRecommendationParams
}

func (f *fakeRecommendations) GetRecommendations(_ context.Context, _ uuid.UUID, params usecase.JobRecommendationParams) (usecase.JobRecommendationPage, error) {
	f.params = params
	return f.page, f.err
}

type fakeMatching struct {
	match matching.JobMatch
	err   error
}

func (f *fakeMatching) CalculateMatch(context.Context, uuid.UUID, uuid.UUID) (matching.JobMatch, error) {
	return f.match, f.err
}

func (f *fakeMatching) ScoreAdHoc(c candidate.Profile, p job.Posting) matching.JobMatch {
	return matching.CalculateJobMatch(c, p)
}

type fakeJobs struct {
	posting job.Posting
	err     error
	actor   usecase.Actor
	input   usecase.JobPostingInput
	status  string
}

func (f *fakeJobs) Get(context.Context, uuid.UUID) (job.Posting, error) { return f.posting, f.err }

func (f *fakeJobs) Create(_ context.Context, actor usecase.Actor, in usecase.JobPostingInput) (job.Posting, error) {
	f.actor, f.input = actor, in
	return f.posting, f.err
}

func (f *fakeJobs) Update(_ context.Context, actor usecase.Actor, _ uuid.UUID, in usecase.JobPostingInput) (job.Posting, error) {
	f.actor, f.input = actor, in
	return f.posting, f.err
}

func (f *fakeJobs) ChangeStatus(_ context.Context, actor usecase.Actor, _ uuid.UUID, status string) (job.Posting, error) {
	f.actor, f.status = actor, status
	return f.posting, f.err
}

type fakeProfiles struct {
	profile candidate.Profile
	err     error
}

func (f *fakeProfiles) Get(context.Context, uuid.UUID) (candidate.Profile, error) {
	return f.profile, f.err
}

func (f *fakeProfiles) Upsert(_ context.Context, userID uuid.UUID, in usecase.CandidateProfileInput) (candidate.Profile, error) {
	if f.err != nil {
		return candidate.Profile{}, f.err
	}
	return candidate.Profile{UserID: userID, Skills: in.Skills, Location: in.Location}, nil
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	app             *fiber.App
	jwt             *jwt.HMACService
	recommendations *fakeRecommendations
	matching        *fakeMatching
	jobs            *fakeJobs
	profiles        *fakeProfiles
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	s := &testServer{
		jwt:             jwt.NewHMACService("test-secret", time.Minute),
		recommendations: &fakeRecommendations{},
		matching:        &fakeMatching{},
		jobs:            &fakeJobs{},
		profiles:        &fakeProfiles{},
	}

	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(nil).Middleware())
	routes.NewRegistry(handler.NewHealthHandler(), v1.Handlers{
		Auth:              middleware.NewAuthMiddleware(s.jwt),
		JobRecommendation: handler.NewJobRecommendationHandler(s.recommendations),
		Match:             handler.NewMatchHandler(s.matching),
		Jobs:              handler.NewJobsHandler(s.jobs),
		CandidateProfile:  handler.NewCandidateProfileHandler(s.profiles),
	}).Register(app)

	s.app = app
	return s
}

func (s *testServer) token(t *testing.T, role string) string {
	t.Helper()
	tok, err := s.jwt.GenerateAccessToken(uuid.New(), "dev@example.com", role)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	return tok
}

func (s *testServer) do(t *testing.T, method, target, token string, body any) (int, envelope) {
	t.Helper()

	var req *http.Request
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		req = httptest.NewRequest(method, target, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return resp.StatusCode, env
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	status, env := s.do(t, http.MethodGet, "/health", "", nil)
	if status != http.StatusOK || env.Status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
}

func TestAuthRequired(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name  string
		token string
		want  string
	}{
		{name: "missing", token: "", want: "Unauthorized"},
		{name: "garbage", token: "abc", want: "Invalid token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := s.do(t, http.MethodGet, "/api/v1/jobs/recommendations", tt.token, nil)
			if status != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", status)
			}
			if env.Message != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, env.Message)
			}
		})
	}
}

func TestGetRecommendations(t *testing.T) {
	s := newTestServer(t)
	posting := job.Posting{ID: uuid.New(), Title: "Backend", IsRemote: true, Status: job.StatusOpen}
	s.recommendations.page = usecase.JobRecommendationPage{
		Items:    []matching.JobMatch{{Posting: posting, MatchScore: 85, MatchReasons: []string{"Remote position"}}},
		Total:    1,
		Limit:    5,
		MinScore: 50,
	}

	status, env := s.do(t, http.MethodGet, "/api/v1/jobs/recommendations?min_score=50&limit=5", s.token(t, jwt.RoleCandidate), nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", status, env.Message)
	}
	if s.recommendations.params.MinScore == nil || *s.recommendations.params.MinScore != 50 || s.recommendations.params.Limit != 5 {
		t.Fatalf("unexpected params: %+v", s.recommendations.params)
	}

	var out struct {
		Items []struct {
			ID           string   `json:"id"`
			Title        string   `json:"title"`
			MatchScore   int      `json:"match_score"`
			MatchReasons []string `json:"match_reasons"`
			MatchColor   string   `json:"match_color"`
			MatchLabel   string   `json:"match_label"`
		} `json:"items"`
		Total int `json:"total"`
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if out.Total != 1 || len(out.Items) != 1 {
		t.Fatalf("unexpected body: %s", env.Data)
	}
	it := out.Items[0]
	if it.ID != posting.ID.String() || it.MatchScore != 85 || it.MatchColor != "green" || it.MatchLabel != "Excellent Match" {
		t.Fatalf("unexpected item: %+v", it)
	}
}

func TestGetRecommendations_DefaultMinScoreIsLeftToUsecase(t *testing.T) {
	s := newTestServer(t)
	status, _ := s.do(t, http.MethodGet, "/api/v1/jobs/recommendations", s.token(t, jwt.RoleCandidate), nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if s.recommendations.params.MinScore != nil {
		t.Fatalf("expected nil min score, got %d", *s.recommendations.params.MinScore)
	}
	if s.recommendations.params.Limit != 20 {
		t.Fatalf("expected default limit 20, got %d", s.recommendations.params.Limit)
	}
}

func TestGetRecommendations_BadQuery(t *testing.T) {
	s := newTestServer(t)
	tok := s.token(t, jwt.RoleCandidate)

	for _, q := range []string{"limit=abc", "limit=0", "min_score=high"} {
		t.Run(q, func(t *testing.T) {
			status, _ := s.do(t, http.MethodGet, "/api/v1/jobs/recommendations?"+q, tok, nil)
			if status != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", status)
			}
		})
	}
}

func TestGetMatch(t *testing.T) {
	s := newTestServer(t)
	tok := s.token(t, jwt.RoleCandidate)

	status, _ := s.do(t, http.MethodGet, "/api/v1/jobs/not-a-uuid/match", tok, nil)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}

	s.matching.err = usecase.ErrJobNotFound
	status, env := s.do(t, http.MethodGet, "/api/v1/jobs/"+uuid.NewString()+"/match", tok, nil)
	if status != http.StatusNotFound || env.Message != "Job not found" {
		t.Fatalf("expected 404 Job not found, got %d %q", status, env.Message)
	}

	s.matching.err = nil
	s.matching.match = matching.JobMatch{Posting: job.Posting{ID: uuid.New(), Title: "x"}, MatchScore: 45}
	status, env = s.do(t, http.MethodGet, "/api/v1/jobs/"+uuid.NewString()+"/match", tok, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var out map[string]any
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if out["match_color"] != "yellow" || out["match_label"] != "Fair Match" {
		t.Fatalf("unexpected presentation: %v", out)
	}
}

func TestScore(t *testing.T) {
	s := newTestServer(t)
	tok := s.token(t, jwt.RoleCandidate)

	body := map[string]any{
		"candidate": map[string]any{
			"skills":              []string{"React", "TypeScript", "Node.js"},
			"location":            "San Francisco, CA",
			"years_of_experience": 5,
		},
		"job": map[string]any{
			"title":              "Frontend",
			"required_skills":    []string{"React", "TypeScript", "GraphQL"},
			"location_city":      "San Francisco",
			"location_country":   "CA",
			"minimum_experience": 3,
			"maximum_experience": 7,
		},
	}
	status, env := s.do(t, http.MethodPost, "/api/v1/match/score", tok, body)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", status, env.Message)
	}
	var out struct {
		MatchScore   int      `json:"match_score"`
		MatchReasons []string `json:"match_reasons"`
		Status       string   `json:"status"`
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if out.MatchScore != 87 {
		t.Fatalf("expected 87, got %d", out.MatchScore)
	}
	if len(out.MatchReasons) != 3 || out.MatchReasons[0] != "2 matching skills" {
		t.Fatalf("unexpected reasons: %v", out.MatchReasons)
	}
	if out.Status != "open" {
		t.Fatalf("expected default status open, got %q", out.Status)
	}

	bad := map[string]any{"candidate": map[string]any{"preferred_location": "Mars"}, "job": map[string]any{}}
	if status, _ := s.do(t, http.MethodPost, "/api/v1/match/score", tok, bad); status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
}

func TestJobWritesRequireRecruiter(t *testing.T) {
	s := newTestServer(t)
	body := map[string]any{"title": "Backend"}

	status, _ := s.do(t, http.MethodPost, "/api/v1/jobs", s.token(t, jwt.RoleCandidate), body)
	if status != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", status)
	}

	s.jobs.posting = job.Posting{ID: uuid.New(), Title: "Backend", Status: job.StatusOpen}
	status, env := s.do(t, http.MethodPost, "/api/v1/jobs", s.token(t, jwt.RoleRecruiter), body)
	if status != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", status, env.Message)
	}
	if s.jobs.actor.Role != jwt.RoleRecruiter || s.jobs.input.Title != "Backend" {
		t.Fatalf("unexpected call: %+v %+v", s.jobs.actor, s.jobs.input)
	}
}

func TestUpdateJobStatus_ValidationError(t *testing.T) {
	s := newTestServer(t)
	s.jobs.err = &usecase.ValidationError{Field: "status", Reason: "must be one of open, paused, closed"}

	status, env := s.do(t, http.MethodPatch, "/api/v1/jobs/"+uuid.NewString()+"/status", s.token(t, jwt.RoleRecruiter), map[string]any{"status": "archived"})
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	var data map[string]string
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data["field"] != "status" {
		t.Fatalf("expected field status, got %v", data)
	}
	if s.jobs.status != "archived" {
		t.Fatalf("expected raw status to reach the usecase, got %q", s.jobs.status)
	}
}

func TestInternalErrorsAreHidden(t *testing.T) {
	s := newTestServer(t)
	s.jobs.err = errors.Join(usecase.ErrInternal, errors.New("pq: password authentication failed"))

	status, env := s.do(t, http.MethodGet, "/api/v1/jobs/"+uuid.NewString(), s.token(t, jwt.RoleCandidate), nil)
	if status != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", status)
	}
	if env.Message != "internal server error" || string(env.Data) != "null" {
		t.Fatalf("expected generic 500 envelope, got %q %s", env.Message, env.Data)
	}
}

func TestProfile(t *testing.T) {
	s := newTestServer(t)
	tok := s.token(t, jwt.RoleCandidate)

	s.profiles.err = usecase.ErrProfileNotFound
	status, _ := s.do(t, http.MethodGet, "/api/v1/me/profile", tok, nil)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}

	s.profiles.err = nil
	status, env := s.do(t, http.MethodPut, "/api/v1/me/profile", tok, map[string]any{
		"skills":   []string{"Go"},
		"location": "Berlin",
	})
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", status, env.Message)
	}
	var out struct {
		Skills   []string `json:"skills"`
		Location string   `json:"location"`
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(out.Skills) != 1 || out.Location != "Berlin" {
		t.Fatalf("unexpected profile: %+v", out)
	}
}
