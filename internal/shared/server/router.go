package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"insight-chat/internal/analysis"
	"insight-chat/internal/attachment"
	"insight-chat/internal/audit"
	"insight-chat/internal/chat"
	"insight-chat/internal/shared/config"
	"insight-chat/internal/shared/metrics"
	"insight-chat/internal/shared/server/middleware"
	"insight-chat/internal/shared/server/respond"
	"insight-chat/internal/shared/storage/db"
	localstore "insight-chat/internal/shared/storage/object/local"
	"insight-chat/internal/theme"
	"insight-chat/internal/transcript"
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
	)

	// Dependencies
	store := localstore.New(cfg.LocalStoreDir)
	selector := attachment.NewSelector(store)
	transcriptStore := transcript.NewMemoryStore()
	backend := analysis.NewClient(cfg.AnalyzeBaseURL, &http.Client{Timeout: 120 * time.Second})
	themes := theme.NewManager(cfg.Theme)

	var auditStore audit.Store = audit.NewMemoryStore()
	if cfg.DatabaseURL != "" {
		conn, err := db.Connect(context.Background(), cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			log.Printf("failed to connect database, falling back to memory audit log: %v", err)
		} else if err := db.RunMigrations(context.Background(), conn); err != nil {
			log.Printf("failed to run migrations, falling back to memory audit log: %v", err)
		} else {
			auditStore = &audit.PGStore{DB: conn}
		}
	}

	svc := &chat.Service{
		Transcript: transcriptStore,
		Selector:   selector,
		Backend:    backend,
		Audit:      auditStore,
	}
	handler := chat.NewHandler(svc, selector, themes)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())
	handler.RegisterRoutes(api)

	return r
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
