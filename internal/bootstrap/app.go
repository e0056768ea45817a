package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"jobmatch-backend/internal/applications"
	"jobmatch-backend/internal/jobs"
	"jobmatch-backend/internal/llm"
	"jobmatch-backend/internal/llm/gemini"
	"jobmatch-backend/internal/matching"
	"jobmatch-backend/internal/notifications"
	"jobmatch-backend/internal/resumecheck"
	"jobmatch-backend/internal/shared/config"
	"jobmatch-backend/internal/shared/server"
	"jobmatch-backend/internal/shared/storage/db"
	"jobmatch-backend/internal/shared/storage/object"
	localstore "jobmatch-backend/internal/shared/storage/object/local"
	s3store "jobmatch-backend/internal/shared/storage/object/s3"
	"jobmatch-backend/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	LLM    llm.Client

	JobsRepo         jobs.Repo
	ApplicationsRepo applications.Repo
	NotificationRepo notifications.Repo

	ApplicationsService *applications.Service

	JobsHandler         *jobs.Handler
	ApplicationsHandler *applications.Handler
	NotificationHandler *notifications.Handler
	ResumeCheckHandler  *resumecheck.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	llmClient := buildLLM(ctx, cfg)

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		LLM:    llmClient,
	}

	if sqlDB != nil {
		app.JobsRepo = &jobs.PGRepo{DB: sqlDB}
		app.ApplicationsRepo = &applications.PGRepo{DB: sqlDB}
		app.NotificationRepo = &notifications.PGRepo{DB: sqlDB}
	} else {
		app.JobsRepo = jobs.NewMemoryRepo()
		app.ApplicationsRepo = applications.NewMemoryRepo()
		app.NotificationRepo = notifications.NewMemoryRepo()
	}

	var mailer notifications.Mailer
	smtp := &notifications.SMTPMailer{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		User:     cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	}
	if smtp.Configured() {
		mailer = smtp
	}

	var oracle matching.Scorer
	if llmClient != nil {
		oracle = matching.OracleScorer{LLM: llmClient}
	}

	app.ApplicationsService = &applications.Service{
		Repo:          app.ApplicationsRepo,
		Jobs:          app.JobsRepo,
		Notifs:        app.NotificationRepo,
		Mailer:        mailer,
		Oracle:        oracle,
		LLM:           llmClient,
		Store:         store,
		AnalysisDelay: cfg.AnalysisDelay,
	}

	app.JobsHandler = jobs.NewHandler(app.JobsRepo)
	app.ApplicationsHandler = applications.NewHandler(app.ApplicationsService)
	app.NotificationHandler = notifications.NewHandler(app.NotificationRepo)
	app.ResumeCheckHandler = resumecheck.NewHandler(&resumecheck.Service{LLM: llmClient})

	app.Router = server.NewRouter(server.RouterDeps{
		Config:              cfg,
		ApplicationsHandler: app.ApplicationsHandler,
		JobsHandler:         app.JobsHandler,
		NotificationHandler: app.NotificationHandler,
		ResumeCheckHandler:  app.ResumeCheckHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildLLM(ctx context.Context, cfg config.Config) llm.Client {
	if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		telemetry.Warn("bootstrap.llm", map[string]any{
			"reason": "GEMINI_API_KEY empty; oracle disabled, deterministic fallback only",
		})
		return nil
	}
	client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		telemetry.Error("bootstrap.llm", map[string]any{"error": err.Error()})
		return nil
	}
	return client
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
