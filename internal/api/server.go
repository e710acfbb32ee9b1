// Package api exposes the dialogue system over HTTP.
package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/doctor-dialogue-server/internal/auth"
	"github.com/doctor-dialogue-server/internal/config"
	"github.com/doctor-dialogue-server/internal/domain"
	"github.com/doctor-dialogue-server/internal/middleware"
	"github.com/doctor-dialogue-server/internal/service"
	"github.com/doctor-dialogue-server/internal/store"
)

// Deps bundles everything the HTTP layer needs.
type Deps struct {
	Config     *config.Config
	Store      store.Store
	Auth       *auth.Service
	Catalog    domain.ConditionCatalog
	Translator domain.Translator
	Speaker    domain.Speaker
	Logger     *logrus.Logger
}

// sessionEntry pairs a dialogue session with its severity selector.
type sessionEntry struct {
	id       string
	username string
	session  *service.Session
	selector *service.SeveritySelector
	mu       sync.Mutex
}

// Server is the HTTP server around the dialogue engine. Sessions live
// in process, keyed by uuid, one active session per username.
type Server struct {
	deps   Deps
	router *gin.Engine
	server *http.Server

	mu       sync.Mutex
	sessions map[string]*sessionEntry
	byUser   map[string]string
}

// NewServer builds the router and wires all routes.
func NewServer(deps Deps) *Server {
	if deps.Config.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(middleware.SecurityHeaders())

	s := &Server{
		deps:     deps,
		router:   router,
		sessions: make(map[string]*sessionEntry),
		byUser:   make(map[string]string),
	}
	s.setupRoutes()
	return s
}

// Router exposes the gin engine for tests.
func (s *Server) Router() http.Handler { return s.router }

// Start serves until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	cfg := s.deps.Config.Server
	s.server = &http.Server{
		Addr:         cfg.Address(),
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	s.deps.Logger.WithFields(logrus.Fields{
		"address": cfg.Address(),
	}).Info("HTTP server started")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	limiter := rate.NewLimiter(
		rate.Limit(s.deps.Config.RateLimit.RequestsPerSecond),
		s.deps.Config.RateLimit.Burst,
	)

	v1 := s.router.Group("/api/v1")
	v1.Use(middleware.RateLimit(limiter))
	{
		v1.POST("/auth/register", s.handleRegister)
		v1.POST("/auth/login", s.handleLogin)

		v1.POST("/sessions", s.handleCreateSession)
		v1.POST("/sessions/:id/answer", s.handleAnswer)
		v1.POST("/sessions/:id/image", s.handleImage)
		v1.POST("/sessions/:id/language", s.handleLanguage)
		v1.POST("/sessions/:id/reset", s.handleReset)
		v1.POST("/sessions/:id/prescription", s.handlePrescription)
		v1.GET("/sessions/:id/transcript/ws", s.handleTranscriptWS)

		v1.GET("/prescriptions", s.handleListPrescriptions)
		v1.GET("/prescriptions/export", s.handleExportPrescription)
		v1.DELETE("/prescriptions", s.handleDeletePrescription)
	}
}

// createSession registers a fresh session for the user, displacing any
// previous one (last one wins).
func (s *Server) createSession(ctx context.Context, username string) *sessionEntry {
	selector := service.NewSeveritySelector()
	session := service.NewSession(ctx, username, service.SessionDeps{
		Catalog:       s.deps.Catalog,
		Profiles:      s.deps.Store,
		Prescriptions: s.deps.Store,
		Severity:      selector,
		Translator:    s.deps.Translator,
		Speaker:       s.deps.Speaker,
		Logger:        s.deps.Logger,
	})

	entry := &sessionEntry{
		id:       uuid.New().String(),
		username: username,
		session:  session,
		selector: selector,
	}

	s.mu.Lock()
	if old, ok := s.byUser[username]; ok {
		delete(s.sessions, old)
	}
	s.sessions[entry.id] = entry
	s.byUser[username] = entry.id
	s.mu.Unlock()

	return entry
}

func (s *Server) getSession(id string) (*sessionEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[id]
	return entry, ok
}

func (s *Server) handleHealth(c *gin.Context) {
	if err := s.deps.Store.Health(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
	})
}
