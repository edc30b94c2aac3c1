// Package api implements the portal REST backend: accounts, reactions,
// leaderboards, message boards and favorites.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/vovakirdan/arcade-portal/internal/auth"
	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/registry"
	"github.com/vovakirdan/arcade-portal/internal/storage"
)

// Server is the portal HTTP server.
type Server struct {
	cfg     config.ServerConfig
	repo    storage.Repository
	issuer  *auth.Issuer
	logger  *log.Logger
	metrics *Metrics
	games   func() []registry.GameInfo
	router  *gin.Engine
}

// Option customizes a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithGames overrides the catalogue, which defaults to the game registry.
func WithGames(list func() []registry.GameInfo) Option {
	return func(s *Server) { s.games = list }
}

// New builds the server and its routes.
func New(cfg config.ServerConfig, repo storage.Repository, issuer *auth.Issuer, opts ...Option) *Server {
	s := &Server{
		cfg:     cfg,
		repo:    repo,
		issuer:  issuer,
		logger:  log.Default(),
		metrics: NewMetrics(),
		games:   registry.List,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Metrics exposes the server's collectors.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLogger())
	r.Use(s.cors())
	if s.cfg.MetricsEnabled {
		r.Use(s.metrics.Handler())
		r.GET("/metrics", s.metrics.Endpoint())
	}

	r.GET("/health", s.health)
	r.NoRoute(func(c *gin.Context) {
		fail(c, http.StatusNotFound, CodeNotFound, "route not found")
	})

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", s.register)
	authGroup.POST("/login", s.login)

	api.GET("/games", s.listGames)

	game := api.Group("/games/:gameId", s.knownGame())
	game.GET("/leaderboard", s.leaderboard)
	game.GET("/messages", s.messages)

	protected := game.Group("", s.bearerAuth())
	protected.POST("/like", s.react(storage.ReactionLike))
	protected.POST("/dislike", s.react(storage.ReactionDislike))
	protected.GET("/highscore", s.highScore)
	protected.POST("/scores", s.submitScore)
	protected.POST("/messages", s.postMessage)
	protected.POST("/favorite", s.toggleFavorite)

	me := api.Group("/users/me", s.bearerAuth())
	me.GET("/favorites", s.favorites)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("portal listening", "addr", s.cfg.Addr, "metrics", s.cfg.MetricsEnabled)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("stopping portal")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
