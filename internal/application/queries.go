package application

import (
	"time"

	"github.com/bnema/boardroom/internal/domain"
)

type RunStatus struct {
	SessionID        domain.SessionID       `json:"session_id"`
	Topic            string                 `json:"topic"`
	Status           domain.SessionStatus   `json:"status"`
	State            domain.State           `json:"state,omitempty"`
	Phase            domain.Phase           `json:"phase,omitempty"`
	Iteration        int                    `json:"iteration"`
	MaxIterations    int                    `json:"max_iterations"`
	ConsensusReached bool                   `json:"consensus_reached"`
	Winner           domain.ParticipantName `json:"winner,omitempty"`
	Error            string                 `json:"error,omitempty"`
	StartedAt        time.Time              `json:"started_at"`
	CompletedAt      time.Time              `json:"completed_at,omitempty"`
}

func statusFromSummary(summary domain.SessionSummary) RunStatus {
	return RunStatus{
		SessionID:        summary.ID,
		Topic:            summary.Topic,
		Status:           summary.Status,
		Phase:            summary.Phase,
		Iteration:        summary.Iteration,
		MaxIterations:    summary.MaxIterations,
		ConsensusReached: summary.ConsensusReached,
		Winner:           summary.Winner,
		Error:            summary.FailureReason,
		StartedAt:        summary.StartedAt,
		CompletedAt:      summary.CompletedAt,
	}
}
