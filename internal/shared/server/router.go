package server

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"geovision-backend/internal/analysis"
	"geovision-backend/internal/assemble"
	"geovision-backend/internal/encode"
	"geovision-backend/internal/inputs"
	"geovision-backend/internal/llm"
	"geovision-backend/internal/llm/gemini"
	"geovision-backend/internal/locale"
	"geovision-backend/internal/session"
	"geovision-backend/internal/shared/config"
	"geovision-backend/internal/shared/metrics"
	"geovision-backend/internal/shared/server/middleware"
	"geovision-backend/internal/shared/server/respond"
	"geovision-backend/internal/shared/storage/db"
	"geovision-backend/internal/shared/storage/object"
	localstore "geovision-backend/internal/shared/storage/object/local"
	s3store "geovision-backend/internal/shared/storage/object/s3"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.Session(),
		middleware.RateLimit(rateLimitConfig()),
	)

	// Dependencies
	objStore := newObjectStore(cfg)

	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		dbConn, err := db.Connect(context.Background(), cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			log.Printf("failed to connect database, falling back to memory: %v", err)
		} else {
			if err := db.RunMigrations(context.Background(), dbConn); err != nil {
				log.Printf("failed to run migrations, falling back to memory: %v", err)
				dbConn = nil
			}
		}
		sqlDB = dbConn
	}

	var repo analysis.Repo
	if sqlDB != nil {
		repo = &analysis.PGRepo{DB: sqlDB}
	} else {
		repo = analysis.NewMemoryRepo()
	}

	client, configured := newLLMClient(cfg)
	assembler := assemble.NewAssembler(encode.NewEncoder(objStore))

	sessions := session.NewManager(session.Deps{
		Assembler:     assembler,
		Client:        client,
		Repo:          repo,
		Configured:    configured,
		DefaultLocale: locale.Parse(cfg.DefaultLocale),
	})

	inputsHandler := inputs.NewHandler(inputs.NewService(objStore), sessions)
	analysisHandler := analysis.NewHandler(sessions, repo)
	sessionHandler := session.NewHandler(sessions)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())
	inputsHandler.RegisterRoutes(api)
	analysisHandler.RegisterRoutes(api)
	sessionHandler.RegisterRoutes(api)

	return r
}

func newObjectStore(cfg config.Config) object.ObjectStore {
	if cfg.ObjectStoreType == "s3" {
		store, err := s3store.New(context.Background(), cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
		if err != nil {
			log.Printf("failed to init s3 store, falling back to local: %v", err)
		} else {
			return store
		}
	}
	return localstore.New(cfg.LocalStoreDir)
}

func newLLMClient(cfg config.Config) (llm.Client, bool) {
	if cfg.GeminiAPIKey == "" {
		return llm.PlaceholderClient{}, false
	}
	client, err := gemini.NewClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Printf("failed to init gemini client: %v", err)
		return llm.PlaceholderClient{}, false
	}
	return client, true
}

// The state poll runs on a short interval, so it gets its own generous
// bucket; everything else shares the default.
func rateLimitConfig() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		DefaultGroup: "DEFAULT",
		Rules: map[string]middleware.RateLimitRule{
			"DEFAULT": {Rate: 10, Burst: 30},
			"POLLING": {Rate: 10, Burst: 60},
		},
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method == http.MethodGet && c.FullPath() == "/api/v1/analyses/state" {
				return "POLLING"
			}
			return "DEFAULT"
		},
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
