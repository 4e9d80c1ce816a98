package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"hirematch/internal/app"
	"hirematch/internal/config"
	"hirematch/internal/database"
	"hirematch/internal/database/migration"
	dbpostgres "hirematch/internal/database/postgres"
	"hirematch/internal/infrastructure/cache"
	"hirematch/internal/pkg/jwt"
	"hirematch/internal/ws"
	"hirematch/migrations"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"go.uber.org/zap/zaptest"
)

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type recommendationPage struct {
	Items []struct {
		ID           uuid.UUID `json:"id"`
		Title        string    `json:"title"`
		MatchScore   int       `json:"match_score"`
		MatchReasons []string  `json:"match_reasons"`
		MatchLabel   string    `json:"match_label"`
	} `json:"items"`
	Total int `json:"total"`
}

func TestIntegration_PostingProfileRecommendations(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := connectTestDB(t, ctx)
	defer func() { _ = db.Close() }()

	if err := (migration.Runner{FS: migrations.FS}).Run(ctx, db.SQLDB()); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	cfg := config.Config{
		App:      config.AppConfig{AppName: "hirematch-integration"},
		JWT:      config.JWTConfig{AccessSecret: "integration-secret", AccessExpiresIn: time.Minute},
		Matching: config.MatchingConfig{DefaultMinScore: 30, MaxJobs: 500},
	}
	log := zaptest.NewLogger(t)
	fiberApp := app.New(&app.Container{
		Config: cfg,
		Logger: log,
		DB:     db,
		Cache:  cache.NewRedisWithClient(nil, 0, log),
		Hub:    ws.NewHub(log),
	}).Fiber

	tokens := jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiresIn)
	recruiterID, candidateID := uuid.New(), uuid.New()
	recruiterTok, err := tokens.GenerateAccessToken(recruiterID, "recruiter@example.com", jwt.RoleRecruiter)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	candidateTok, err := tokens.GenerateAccessToken(candidateID, "candidate@example.com", jwt.RoleCandidate)
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	title := "Integration Go Engineer " + uuid.NewString()[:8]
	created := doJSON(t, fiberApp, http.MethodPost, "/api/v1/jobs", recruiterTok, map[string]any{
		"title":           title,
		"required_skills": []string{"Go", " "},
		"is_remote":       true,
	})
	if created.Status != http.StatusCreated {
		t.Fatalf("create posting: expected 201, got %d (%s)", created.Status, created.Message)
	}
	var posting struct {
		ID             uuid.UUID `json:"id"`
		RequiredSkills []string  `json:"required_skills"`
		Status         string    `json:"status"`
	}
	if err := json.Unmarshal(created.Data, &posting); err != nil {
		t.Fatalf("decode posting: %v", err)
	}
	defer cleanup(t, db, posting.ID, candidateID)

	if posting.Status != "open" || len(posting.RequiredSkills) != 1 {
		t.Fatalf("unexpected posting: %+v", posting)
	}

	profile := doJSON(t, fiberApp, http.MethodPut, "/api/v1/me/profile", candidateTok, map[string]any{
		"skills":              []string{"golang"},
		"years_of_experience": 3,
		"preferred_location":  "remote",
	})
	if profile.Status != http.StatusOK {
		t.Fatalf("upsert profile: expected 200, got %d (%s)", profile.Status, profile.Message)
	}

	recs := doJSON(t, fiberApp, http.MethodGet, "/api/v1/jobs/recommendations?limit=50", candidateTok, nil)
	if recs.Status != http.StatusOK {
		t.Fatalf("recommendations: expected 200, got %d (%s)", recs.Status, recs.Message)
	}
	var page recommendationPage
	if err := json.Unmarshal(recs.Data, &page); err != nil {
		t.Fatalf("decode page: %v", err)
	}

	found := false
	for _, it := range page.Items {
		if it.ID != posting.ID {
			continue
		}
		found = true
		if it.MatchScore != 100 || it.MatchLabel != "Excellent Match" {
			t.Fatalf("unexpected match: %+v", it)
		}
	}
	if !found {
		t.Fatalf("created posting missing from recommendations (total=%d)", page.Total)
	}

	closed := doJSON(t, fiberApp, http.MethodPatch, "/api/v1/jobs/"+posting.ID.String()+"/status", recruiterTok, map[string]any{"status": "closed"})
	if closed.Status != http.StatusOK {
		t.Fatalf("close posting: expected 200, got %d", closed.Status)
	}

	recs = doJSON(t, fiberApp, http.MethodGet, "/api/v1/jobs/recommendations?limit=50", candidateTok, nil)
	page = recommendationPage{}
	if err := json.Unmarshal(recs.Data, &page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	for _, it := range page.Items {
		if it.ID == posting.ID {
			t.Fatalf("closed posting still recommended")
		}
	}

	match := doJSON(t, fiberApp, http.MethodGet, "/api/v1/jobs/"+posting.ID.String()+"/match", candidateTok, nil)
	if match.Status != http.StatusOK {
		t.Fatalf("match closed posting: expected 200, got %d", match.Status)
	}
}

func doJSON(t *testing.T, app *fiber.App, method, target, token string, body any) semanticResponse {
	t.Helper()

	var req *http.Request
	if body != nil {
		b, _ := json.Marshal(body)
		req = httptest.NewRequest(method, target, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	defer resp.Body.Close()

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("%s %s: decode: %v", method, target, err)
	}
	return sr
}

func connectTestDB(t *testing.T, ctx context.Context) database.DB {
	t.Helper()

	host := stringsOrDefault(os.Getenv("HIREMATCH_TEST_DB_HOST"), os.Getenv("DB_HOST"))
	port := stringsOrDefault(os.Getenv("HIREMATCH_TEST_DB_PORT"), os.Getenv("DB_PORT"))
	name := stringsOrDefault(os.Getenv("HIREMATCH_TEST_DB_NAME"), os.Getenv("DB_NAME"))
	user := stringsOrDefault(os.Getenv("HIREMATCH_TEST_DB_USER"), os.Getenv("DB_USER"))
	pass := stringsOrDefault(os.Getenv("HIREMATCH_TEST_DB_PASSWORD"), os.Getenv("DB_PASSWORD"))
	ssl := stringsOrDefault(os.Getenv("HIREMATCH_TEST_DB_SSL_MODE"), os.Getenv("DB_SSL_MODE"))

	if host == "" || port == "" || name == "" || user == "" {
		t.Skip("missing test DB env vars: set HIREMATCH_TEST_DB_HOST/PORT/NAME/USER/PASSWORD (or DB_HOST/DB_PORT/DB_NAME/DB_USER/DB_PASSWORD)")
	}
	if ssl == "" {
		ssl = "disable"
	}

	db, err := dbpostgres.Connect(ctx, config.DatabaseConfig{
		DBHost:     host,
		DBPort:     port,
		DBName:     name,
		DBUser:     user,
		DBPassword: pass,
		DBSSLMode:  ssl,
	}, "hirematch-integration")
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return db
}

func cleanup(t *testing.T, db database.DB, postingID, userID uuid.UUID) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := db.Exec(ctx, `DELETE FROM job_postings WHERE id = $1`, postingID); err != nil {
		t.Logf("cleanup posting: %v", err)
	}
	if _, err := db.Exec(ctx, `DELETE FROM candidate_profiles WHERE user_id = $1`, userID); err != nil {
		t.Logf("cleanup profile: %v", err)
	}
}

func stringsOrDefault(v, fallback string) string {
	if s := strings.TrimSpace(v); s != "" {
		return s
	}
	return strings.TrimSpace(fallback)
}
