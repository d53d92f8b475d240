// Package server exposes the resume matcher over HTTP: an upload form for
// people and a JSON endpoint for scripts.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/muhammadolammi/skillmatch/internal/skills"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Config holds server configuration
type Config struct {
	Port           int
	MaxUploadBytes int64
}

// Server represents the HTTP server
type Server struct {
	cfg        Config
	engine     *gin.Engine
	httpServer *http.Server
	extractor  *skills.Extractor
	logger     *zap.Logger
}

// New creates a new server instance
func New(cfg Config, extractor *skills.Extractor, logger *zap.Logger) (*Server, error) {
	if extractor == nil {
		return nil, errors.New("extractor is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	tmpl, err := template.New("").Funcs(template.FuncMap{
		"score": skills.FormatScore,
		"join":  strings.Join,
	}).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		cfg:       cfg,
		extractor: extractor,
		logger:    logger,
	}

	engine := gin.New()
	engine.MaxMultipartMemory = cfg.MaxUploadBytes
	engine.SetHTMLTemplate(tmpl)
	engine.Use(gin.Recovery(), requestID(), accessLog(logger))
	s.registerRoutes(engine)
	s.engine = engine

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

func (s *Server) registerRoutes(r *gin.Engine) {
	r.GET("/", s.handleIndex)
	r.POST("/match", s.limitBody(), s.handleMatchForm)
	r.GET("/health", s.handleHealth)

	api := r.Group("/api")
	{
		api.POST("/match", s.limitBody(), s.handleMatchJSON)
		api.GET("/skills", s.handleSkills)
	}
}

// Handler returns the HTTP handler, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}
