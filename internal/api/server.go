package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/jmolenaar/pharmvault/internal/api/handler"
	"github.com/jmolenaar/pharmvault/internal/api/middleware"
	"github.com/jmolenaar/pharmvault/internal/core/service"
	"github.com/jmolenaar/pharmvault/internal/core/store"
	"github.com/jmolenaar/pharmvault/internal/scheduler"
	"github.com/jmolenaar/pharmvault/pkg/config"
)

type Server struct {
	router *gin.Engine
	srv    *http.Server
	config *config.Config
	log    zerolog.Logger
}

// NewServer wires the REST surface over the backup service, scheduler,
// and in-memory store.
func NewServer(
	cfg *config.Config,
	backupService *service.BackupService,
	sched *scheduler.Scheduler,
	st *store.Store,
	log zerolog.Logger,
) *Server {
	if !cfg.IsDevMode() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler(log))
	router.Use(middleware.CORS(cfg.CORSOrigins))

	backupHandler := handler.NewBackupHandler(backupService)
	settingsHandler := handler.NewSettingsHandler(backupService, sched, log)
	storeHandler := handler.NewStoreHandler(st)

	apiGroup := router.Group("/api")
	{
		backups := apiGroup.Group("/backups")
		{
			backups.GET("", backupHandler.ListBackups)
			backups.POST("", backupHandler.CreateBackup)
			backups.GET("/latest", backupHandler.LatestBackup)
			backups.GET("/:id", backupHandler.GetBackup)
			backups.POST("/:id/restore", backupHandler.RestoreBackup)
			backups.POST("/cleanup", backupHandler.Cleanup)
		}

		apiGroup.GET("/backup-settings", settingsHandler.GetSettings)
		apiGroup.PATCH("/backup-settings", settingsHandler.UpdateSettings)

		users := apiGroup.Group("/users")
		{
			users.POST("", storeHandler.CreateUser)
			users.GET("", storeHandler.ListUsers)
			users.PUT("/:id/password", storeHandler.UpdateUserPassword)
			users.DELETE("/:id", storeHandler.DeleteUser)
		}

		categories := apiGroup.Group("/categories")
		{
			categories.POST("", storeHandler.CreateCategory)
			categories.GET("", storeHandler.ListCategories)
			categories.DELETE("/:id", storeHandler.DeleteCategory)
		}

		expenses := apiGroup.Group("/expenses")
		{
			expenses.POST("", storeHandler.CreateExpense)
			expenses.GET("", storeHandler.ListExpenses)
			expenses.DELETE("/:id", storeHandler.DeleteExpense)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		users, categories, expenses := st.Counts()
		c.JSON(http.StatusOK, gin.H{
			"status":     "ok",
			"time":       time.Now().Format(time.RFC3339),
			"armed":      sched.ArmedCadences(),
			"users":      users,
			"categories": categories,
			"expenses":   expenses,
		})
	})

	return &Server{
		router: router,
		config: cfg,
		log:    log.With().Str("component", "api").Logger(),
	}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.APIHost, s.config.APIPort)

	s.srv = &http.Server{
		Addr:           addr,
		Handler:        s.router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	if s.config.SSLCert != "" && s.config.SSLKey != "" {
		s.log.Info().Str("addr", addr).Msg("starting HTTPS server")
		return s.srv.ListenAndServeTLS(s.config.SSLCert, s.config.SSLKey)
	}

	s.log.Info().Str("addr", addr).Msg("starting HTTP server")
	return s.srv.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv != nil {
		return s.srv.Shutdown(ctx)
	}
	return nil
}
