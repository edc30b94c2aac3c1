package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Context keys set by bearerAuth.
const (
	ctxUserID   = "user_id"
	ctxUsername = "username"
	ctxTraceID  = "trace_id"
)

// requestLogger tags each request with a trace id and logs one line when
// it completes.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader("X-Request-ID")
		if traceID == "" {
			traceID = uuid.NewString()
		}
		c.Set(ctxTraceID, traceID)
		c.Header("X-Request-ID", traceID)

		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		status := c.Writer.Status()
		kv := []any{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency", time.Since(start),
			"ip", c.ClientIP(),
			"trace", traceID,
		}
		if status >= 500 {
			s.logger.Error("request", kv...)
		} else {
			s.logger.Info("request", kv...)
		}
	}
}

// cors allows browser front-ends on another origin.
func (s *Server) cors() gin.HandlerFunc {
	origin := s.cfg.AllowOrigin
	return func(c *gin.Context) {
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// bearerAuth requires "Authorization: Bearer <token>" and stores the
// token's user in the context.
func (s *Server) bearerAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			fail(c, http.StatusUnauthorized, CodeUnauthorized, "missing bearer token")
			return
		}
		claims, err := s.issuer.Parse(strings.TrimSpace(token))
		if err != nil {
			fail(c, http.StatusUnauthorized, CodeUnauthorized, "invalid or expired token")
			return
		}
		c.Set(ctxUserID, claims.UserID())
		c.Set(ctxUsername, claims.Username)
		c.Next()
	}
}

// knownGame rejects requests for game ids the portal does not host.
func (s *Server) knownGame() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("gameId")
		for _, g := range s.games() {
			if g.ID == id {
				c.Next()
				return
			}
		}
		fail(c, http.StatusNotFound, CodeUnknownGame, "unknown game "+id)
	}
}
