package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/bnema/boardroom/internal/application"
	"github.com/bnema/boardroom/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type startDebateRequest struct {
	Topic            string `json:"topic" binding:"required"`
	MaxIterations    int    `json:"max_iterations"`
	Embodiment       *bool  `json:"embodiment"`
	AdjustmentSource string `json:"adjustment_source"`
}

type participantView struct {
	Name      domain.ParticipantName `json:"name"`
	Specialty string                 `json:"specialty"`
	Role      string                 `json:"role"`
	Goal      string                 `json:"goal"`
}

type sessionView struct {
	Summary domain.SessionSummary `json:"summary"`
	Report  *domain.FinalReport   `json:"report,omitempty"`
}

func (s *Server) registerRoutes() {
	r := s.router

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "ok",
			"uptime":      time.Since(s.started).String(),
			"version":     s.version,
			"active_runs": len(s.service.Active()),
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/panel", s.getPanel)

	debates := r.Group("/debates")
	debates.POST("", s.startDebate)
	debates.GET("", s.listDebates)
	debates.GET("/active", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"runs": s.service.Active()})
	})
	debates.GET("/stats", s.debateStats)
	debates.GET("/:id", s.getDebate)
	debates.GET("/:id/status", s.debateStatus)
	debates.POST("/:id/stop", s.stopDebate)
}

func (s *Server) getPanel(c *gin.Context) {
	participants, err := s.service.Panel(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	views := make([]participantView, 0, len(participants))
	for _, p := range participants {
		views = append(views, participantView{
			Name:      p.Name,
			Specialty: p.Specialty,
			Role:      p.Persona.Role,
			Goal:      p.Persona.Goal,
		})
	}

	cfg := s.service.Config()
	c.JSON(http.StatusOK, gin.H{
		"participants":        views,
		"max_iterations":      cfg.MaxIterations,
		"consensus_threshold": cfg.ConsensusThreshold,
	})
}

func (s *Server) startDebate(c *gin.Context) {
	var req startDebateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := s.service.Start(c.Request.Context(), application.RunDebateCommand{
		Topic:            req.Topic,
		MaxIterations:    req.MaxIterations,
		Embodiment:       req.Embodiment,
		AdjustmentSource: application.AdjustmentSource(req.AdjustmentSource),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	s.logger.Info().Str("session_id", string(id)).Str("topic", req.Topic).Msg("deliberation accepted")
	c.JSON(http.StatusAccepted, gin.H{"session_id": id, "status": domain.SessionActive})
}

func (s *Server) listDebates(c *gin.Context) {
	sessions, err := s.service.ListSessions(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if sessions == nil {
		sessions = []domain.SessionSummary{}
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

func (s *Server) debateStats(c *gin.Context) {
	stats, err := s.service.Stats(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) getDebate(c *gin.Context) {
	summary, report, err := s.service.GetSession(c.Request.Context(), domain.SessionID(c.Param("id")))
	if err != nil {
		writeError(c, err)
		return
	}

	view := sessionView{Summary: summary}
	if report.SessionID != "" {
		view.Report = &report
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) debateStatus(c *gin.Context) {
	status, err := s.service.Status(c.Request.Context(), domain.SessionID(c.Param("id")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (s *Server) stopDebate(c *gin.Context) {
	id := domain.SessionID(c.Param("id"))
	if err := s.service.Stop(id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"session_id": id, "status": "stopping"})
}

func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrConfiguration):
		status = http.StatusBadRequest
	case errors.Is(err, application.ErrHistoryUnavailable):
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
