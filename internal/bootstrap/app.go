package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"relevance-backend/internal/embedding"
	geminiembed "relevance-backend/internal/embedding/gemini"
	openaiembed "relevance-backend/internal/embedding/openai"
	"relevance-backend/internal/evaluations"
	"relevance-backend/internal/jobs"
	"relevance-backend/internal/llm"
	geminillm "relevance-backend/internal/llm/gemini"
	openaillm "relevance-backend/internal/llm/openai"
	"relevance-backend/internal/match"
	"relevance-backend/internal/queue"
	"relevance-backend/internal/resumes"
	"relevance-backend/internal/scoring"
	"relevance-backend/internal/shared/config"
	"relevance-backend/internal/shared/server"
	"relevance-backend/internal/shared/storage/db"
	"relevance-backend/internal/shared/storage/object"
	localstore "relevance-backend/internal/shared/storage/object/local"
	s3store "relevance-backend/internal/shared/storage/object/s3"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	Queue  queue.Client

	JobsRepo        jobs.Repo
	ResumesRepo     resumes.Repo
	EvaluationsRepo evaluations.Repo

	JobsService        *jobs.Service
	ResumesService     *resumes.Service
	EvaluationsService *evaluations.Service

	JobsHandler        *jobs.Handler
	ResumesHandler     *resumes.Handler
	EvaluationsHandler *evaluations.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
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

	queueClient, err := buildQueue(ctx)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Queue:  queueClient,
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:             app.Config,
		JobsHandler:        app.JobsHandler,
		ResumesHandler:     app.ResumesHandler,
		EvaluationsHandler: app.EvaluationsHandler,
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

func buildQueue(ctx context.Context) (queue.Client, error) {
	if strings.TrimSpace(os.Getenv("SQS_QUEUE_URL")) == "" {
		return nil, nil
	}
	return queue.NewSQSClient(ctx)
}

func buildServices(app *App) error {
	ctx := context.Background()
	cfg := app.Config

	if app.DB != nil {
		app.JobsRepo = &jobs.PGRepo{DB: app.DB}
		app.ResumesRepo = &resumes.PGRepo{DB: app.DB}
		app.EvaluationsRepo = &evaluations.PGRepo{DB: app.DB}
	} else {
		app.JobsRepo = jobs.NewMemoryRepo()
		app.ResumesRepo = resumes.NewMemoryRepo()
		app.EvaluationsRepo = evaluations.NewMemoryRepo()
	}

	embedder, err := buildEmbedder(ctx, cfg)
	if err != nil {
		return err
	}
	llmClient, err := buildLLM(ctx, cfg)
	if err != nil {
		return err
	}

	app.JobsService = &jobs.Service{Store: app.Store, Repo: app.JobsRepo}
	app.ResumesService = &resumes.Service{Store: app.Store, Repo: app.ResumesRepo}
	app.EvaluationsService = &evaluations.Service{
		Repo:              app.EvaluationsRepo,
		Resumes:           app.ResumesRepo,
		Jobs:              app.JobsRepo,
		Hard:              match.NewHardMatcher(float64(cfg.FuzzyMatchThreshold)),
		Embedder:          embedder,
		LLM:               llmClient,
		SemanticThreshold: cfg.SemanticThreshold,
		Engine:            scoring.NewEngine(cfg.HardMatchWeight, cfg.SemanticMatchWeight),
		Queue:             app.Queue,
	}

	app.JobsHandler = jobs.NewHandler(app.JobsService)
	app.ResumesHandler = resumes.NewHandler(app.ResumesService)
	app.EvaluationsHandler = evaluations.NewHandler(app.EvaluationsService)

	return nil
}

// buildEmbedder returns nil when no API key is configured; the semantic
// signal then degrades to zero instead of failing evaluations.
func buildEmbedder(ctx context.Context, cfg config.Config) (embedding.Embedder, error) {
	switch cfg.EmbeddingProvider {
	case "openai":
		if strings.TrimSpace(cfg.OpenAIAPIKey) == "" {
			log.Printf("bootstrap: OPENAI_API_KEY empty; embeddings disabled")
			return nil, nil
		}
		return openaiembed.NewEmbedder(cfg.OpenAIAPIKey, cfg.EmbeddingModel)
	default:
		if strings.TrimSpace(cfg.GoogleAPIKey) == "" {
			log.Printf("bootstrap: GOOGLE_API_KEY empty; embeddings disabled")
			return nil, nil
		}
		return geminiembed.NewEmbedder(ctx, cfg.GoogleAPIKey, cfg.EmbeddingModel)
	}
}

// buildLLM returns nil when no API key is configured; LLM analysis then
// degrades to an error marker on the semantic result.
func buildLLM(ctx context.Context, cfg config.Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "openai":
		if strings.TrimSpace(cfg.OpenAIAPIKey) == "" {
			log.Printf("bootstrap: OPENAI_API_KEY empty; llm analysis disabled")
			return nil, nil
		}
		return openaillm.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel)
	default:
		if strings.TrimSpace(cfg.GoogleAPIKey) == "" {
			log.Printf("bootstrap: GOOGLE_API_KEY empty; llm analysis disabled")
			return nil, nil
		}
		return geminillm.NewClient(ctx, cfg.GoogleAPIKey, cfg.LLMModel)
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
