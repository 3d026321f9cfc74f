// Package web serves the portfolio page, its HTMX fragments and a small
// JSON API over the same content.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vizalsl/portfolio/internal/contact"
	"github.com/vizalsl/portfolio/internal/content"
	"github.com/vizalsl/portfolio/internal/visits"
)

const shutdownTimeout = 10 * time.Second

// VisitStore is the subset of visits.Store the server uses.
type VisitStore interface {
	Record(ctx context.Context, v visits.Visit) error
	Stats(ctx context.Context, now time.Time) (visits.Stats, error)
}

// Options wires a Server. Site is required; a nil Visits disables
// tracking, a nil Sender selects the simulated one and no AllowedOrigins
// leaves the API same-origin only.
type Options struct {
	Site           *content.Site
	Visits         VisitStore
	Sender         contact.Sender
	DisplayWindow  time.Duration
	StaticDir      string
	ImagesDir      string
	ResumePath     string
	AllowedOrigins []string
	Logger         *slog.Logger
}

type Server struct {
	engine        *gin.Engine
	site          *content.Site
	visits        VisitStore
	sender        contact.Sender
	displayWindow time.Duration
	logger        *slog.Logger
	now           func() time.Time
	tracking      sync.WaitGroup
}

func NewServer(opts Options) (*Server, error) {
	if opts.Site == nil {
		return nil, errors.New("site content is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Sender == nil {
		opts.Sender = contact.SimulatedSender{Latency: contact.DefaultSimulatedLatency}
	}
	if opts.DisplayWindow <= 0 {
		opts.DisplayWindow = contact.DefaultDisplayWindow
	}

	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	corsHandler, err := CORS(opts.AllowedOrigins)
	if err != nil {
		return nil, err
	}

	s := &Server{
		site:          opts.Site,
		visits:        opts.Visits,
		sender:        opts.Sender,
		displayWindow: opts.DisplayWindow,
		logger:        opts.Logger,
		now:           time.Now,
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestLogger(opts.Logger))
	engine.Use(s.VisitTracking())
	engine.SetHTMLTemplate(tmpl)

	if opts.ImagesDir != "" {
		engine.Static("/images", opts.ImagesDir)
	}
	if opts.StaticDir != "" {
		engine.Static("/static", opts.StaticDir)
	}
	if opts.ResumePath != "" {
		engine.StaticFile("/resume.pdf", opts.ResumePath)
	}

	registerRoutes(engine, s, corsHandler)
	s.engine = engine
	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx ends, then shuts down gracefully and waits
// for in-flight visit recording.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.tracking.Wait()
	if err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
