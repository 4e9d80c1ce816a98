package app

import (
	"context"
	"fmt"
	"strings"

	"hirematch/internal/config"
	"hirematch/internal/delivery/http/handler"
	"hirematch/internal/delivery/http/middleware"
	"hirematch/internal/delivery/http/routes"
	v1 "hirematch/internal/delivery/http/routes/v1"
	"hirematch/internal/pkg/jwt"
	"hirematch/internal/repository"
	"hirematch/internal/usecase"
	"hirematch/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap builds the container and the HTTP app and starts the websocket hub.
// The returned cleanup stops the hub and releases the container.
func Bootstrap(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	go c.Hub.Run(hubCtx)

	app := New(c)
	cleanup := func() error {
		stopHub()
		return c.Close()
	}
	return app, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, log *zap.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(log).Middleware())
	app.Use(middleware.NewErrorMiddleware(log).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil || c == nil {
		return
	}

	cfg := c.Config
	jwtSvc := jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiresIn)

	postings := repository.NewPostgresJobPostingRepository(c.DB)
	profiles := repository.NewPostgresCandidateProfileRepository(c.DB)

	recommendationUC := usecase.NewJobRecommendationUsecase(postings, profiles, c.Cache, usecase.JobRecommendationConfig{
		DefaultMinScore: cfg.Matching.DefaultMinScore,
		MaxJobs:         cfg.Matching.MaxJobs,
		CacheTTL:        cfg.Redis.TTL,
	}, c.Logger)
	matchingUC := usecase.NewMatchingUsecase(postings, profiles)
	postingUC := usecase.NewJobPostingUsecase(postings, c.Cache, ws.NewNotifier(c.Hub), c.Logger)
	profileUC := usecase.NewCandidateProfileUsecase(profiles, c.Cache, c.Logger)

	health := handler.NewHealthHandler(
		handler.HealthCheck{Name: "database", Pinger: c.DB},
		handler.HealthCheck{Name: "cache", Pinger: c.Cache, Optional: true},
	)

	routes.NewRegistry(health, v1.Handlers{
		Auth:              middleware.NewAuthMiddleware(jwtSvc),
		JobRecommendation: handler.NewJobRecommendationHandler(recommendationUC),
		Match:             handler.NewMatchHandler(matchingUC),
		Jobs:              handler.NewJobsHandler(postingUC),
		CandidateProfile:  handler.NewCandidateProfileHandler(profileUC),
		WS:                ws.NewHandler(c.Hub, c.Logger),
	}).Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
