// Package server exposes deliberations over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bnema/boardroom/internal/adapters/observability"
	"github.com/bnema/boardroom/internal/application"
	"github.com/bnema/boardroom/internal/domain"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 10 * time.Second

type DebateService interface {
	Config() application.Config
	Panel(ctx context.Context) ([]domain.Participant, error)
	Start(ctx context.Context, cmd application.RunDebateCommand) (domain.SessionID, error)
	Stop(id domain.SessionID) error
	Status(ctx context.Context, id domain.SessionID) (application.RunStatus, error)
	Active() []application.RunStatus
	ListSessions(ctx context.Context) ([]domain.SessionSummary, error)
	GetSession(ctx context.Context, id domain.SessionID) (domain.SessionSummary, domain.FinalReport, error)
	Stats(ctx context.Context) (domain.Stats, error)
}

type Options struct {
	Addr        string
	CORSOrigins []string
	Logger      zerolog.Logger
	Version     string
}

type Server struct {
	service DebateService
	router  *gin.Engine
	addr    string
	version string
	logger  zerolog.Logger
	started time.Time
}

func New(service DebateService, opts Options) *Server {
	gin.SetMode(gin.ReleaseMode)
	observability.RegisterMetrics()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(opts.Logger))
	r.Use(observability.RequestMetrics())
	r.Use(cors.New(cors.Config{
		AllowOrigins: normalizeOrigins(opts.CORSOrigins),
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	s := &Server{
		service: service,
		router:  r,
		addr:    opts.Addr,
		version: opts.Version,
		logger:  opts.Logger,
		started: time.Now(),
	}
	s.registerRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Serve listens until ctx is cancelled, then drains in-flight requests.
func (s *Server) Serve(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.addr).Msg("http server listening")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve %s: %w", s.addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	s.logger.Info().Msg("http server stopped")
	return nil
}

func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			out = append(out, strings.TrimRight(origin, "/"))
		}
	}
	if len(out) == 0 {
		return []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}
	return out
}
