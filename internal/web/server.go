// Package web stellt die Repositories als JSON-API für die Oberfläche bereit.
package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hufschlaeger.net/task-records/internal/config"
	"hufschlaeger.net/task-records/internal/notify"
	"hufschlaeger.net/task-records/internal/repository/apper"
	"hufschlaeger.net/task-records/internal/repository/categories"
	"hufschlaeger.net/task-records/internal/repository/tasks"
)

const shutdownTimeout = 5 * time.Second

// Server ist der HTTP-Server der Task-API
type Server struct {
	config  *config.Config
	factory *apper.Factory
	logger  *slog.Logger
	router  *gin.Engine
}

func NewServer(cfg *config.Config, factory *apper.Factory, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if !cfg.Verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	s := &Server{
		config:  cfg,
		factory: factory,
		logger:  logger,
		router:  router,
	}

	router.GET("/healthz", s.handleHealth)
	router.GET("/readyz", s.handleReady)

	api := router.Group("/api")
	{
		api.GET("/tasks", s.handleListTasks)
		api.POST("/tasks", s.handleCreateTask)
		api.POST("/tasks/reorder", s.handleReorderTasks)
		api.GET("/tasks/:id", s.handleGetTask)
		api.PUT("/tasks/:id", s.handleUpdateTask)
		api.DELETE("/tasks/:id", s.handleDeleteTask)
		api.POST("/tasks/:id/toggle", s.handleToggleTask)

		api.GET("/categories", s.handleListCategories)
		api.GET("/categories/:id", s.handleGetCategory)
	}

	return s
}

// Handler liefert den Router, z.B. für httptest
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run startet den Server und fährt ihn herunter, sobald ctx endet
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.ListenAddr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.config.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Repositories werden pro Request gebaut, damit jeder Request seine eigenen
// Benachrichtigungen sammelt.
func (s *Server) taskRepo(n notify.Notifier) *tasks.Repository {
	return tasks.NewRepository(s.factory, n, s.logger)
}

func (s *Server) categoryRepo(n notify.Notifier) *categories.Repository {
	return categories.NewRepository(s.factory, n, s.logger)
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
