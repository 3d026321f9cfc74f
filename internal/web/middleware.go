package web

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/vizalsl/portfolio/internal/visits"
)

const recordTimeout = 5 * time.Second

// untrackedPrefixes are never counted as page views.
var untrackedPrefixes = []string{
	"/static/",
	"/images/",
	"/api/",
	"/healthz",
	"/resume.pdf",
	"/favicon",
	"/contact",
}

// CORS admits cross-origin API calls from origins. It returns nil when no
// origin is configured, and an error for an origin cors would reject.
func CORS(origins []string) (gin.HandlerFunc, error) {
	if len(origins) == 0 {
		return nil, nil
	}
	cfg := cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "HX-Request", "HX-Target", "HX-Current-URL"},
		MaxAge:       12 * time.Hour,
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("cors: %w", err)
	}
	return cors.New(cfg), nil
}

func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.Info("request",
			"method", c.Request.Method,
			"route", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"htmx", c.GetHeader("HX-Request") == "true",
		)
	}
}

// VisitTracking records GET page views in the background. Requests with
// Do Not Track set are skipped.
func (s *Server) VisitTracking() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if s.visits == nil || c.Request.Method != "GET" || c.GetHeader("DNT") == "1" || untracked(path) {
			c.Next()
			return
		}

		v := visits.Visit{
			IP:        c.ClientIP(),
			UserAgent: c.GetHeader("User-Agent"),
			Path:      path,
			Filter:    c.Query("filter"),
			At:        s.now(),
		}
		s.tracking.Add(1)
		go func() {
			defer s.tracking.Done()
			ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
			defer cancel()
			if err := s.visits.Record(ctx, v); err != nil {
				s.logger.Warn("record visit", "path", v.Path, "error", err)
			}
		}()
		c.Next()
	}
}

func untracked(path string) bool {
	for _, prefix := range untrackedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
