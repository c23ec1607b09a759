// Package server exposes puzzles, assessments and the vocabulary quiz over
// HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/dongwha/internal/assessment"
	"github.com/abhisek/dongwha/internal/logger"
	"github.com/abhisek/dongwha/internal/puzzle"
	"github.com/abhisek/dongwha/internal/quiz"
	"github.com/abhisek/dongwha/internal/store"
)

// Version is reported by the index route.
const Version = "1.0.0"

// Config holds listener and CORS settings.
type Config struct {
	Addr            string        `yaml:"addr"`
	AllowOrigins    []string      `yaml:"allow_origins"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	Debug           bool          `yaml:"debug"`
}

// DefaultConfig listens on :8000 and allows every origin.
func DefaultConfig() Config {
	return Config{
		Addr:            ":8000",
		AllowOrigins:    []string{"*"},
		ShutdownTimeout: 10 * time.Second,
	}
}

// Deps are the services behind the routes. Routes whose service is nil
// are not registered; Quiz and Events are required.
type Deps struct {
	Puzzles       *puzzle.Generator
	Vocabulary    *assessment.Vocabulary
	Comprehension *assessment.Comprehension
	Quiz          *quiz.Service
	Events        store.EventRepo
	Staircase     assessment.Staircase
	Log           *logger.Logger
}

type Server struct {
	Engine *gin.Engine
	deps   Deps
	config Config
}

// New builds the router.
func New(deps Deps, cfg Config) (*Server, error) {
	if deps.Quiz == nil || deps.Events == nil {
		return nil, errors.New("server: quiz service and event repo are required")
	}
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	if deps.Staircase == (assessment.Staircase{}) {
		deps.Staircase = assessment.DefaultStaircase()
	}
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{Engine: gin.New(), deps: deps, config: cfg}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	r := s.Engine
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(s.deps.Log))
	r.Use(CORS(s.config.AllowOrigins))

	r.GET("/", s.index)
	r.GET("/health", s.health)

	api := r.Group("/api")
	{
		if s.deps.Puzzles != nil {
			api.POST("/puzzle/generate", s.generatePuzzle)
			api.POST("/puzzle/verify", s.verifyPuzzle)
		}
		api.POST("/puzzle/hint", s.puzzleHint)
		api.POST("/puzzle/level", s.puzzleLevel)

		if s.deps.Vocabulary != nil {
			api.POST("/assessment/vocabulary", s.vocabularyQuestion)
		}
		if s.deps.Comprehension != nil {
			api.POST("/assessment/comprehension", s.comprehensionQuestion)
		}
		api.POST("/assessment/answer", s.assessmentAnswer)

		api.POST("/quiz", s.createQuiz)
		api.POST("/submit", s.submit)
		api.GET("/stats/:user_id", s.userStats)
		api.GET("/all-stats", s.allStats)
		api.DELETE("/reset", s.reset)
		api.GET("/words", s.words)
		api.GET("/age-stats", s.ageStats)
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.deps.Log.Info("listening", "addr", s.config.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen %s: %w", s.config.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	timeout := s.config.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	s.deps.Log.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
