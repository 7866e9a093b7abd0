package domain

import (
	"fmt"
	"strings"
	"time"
)

type SessionID string

type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
	SessionFailed    SessionStatus = "failed"
)

type Session struct {
	ID            SessionID         `json:"id" yaml:"id"`
	Topic         string            `json:"topic" yaml:"topic"`
	Participants  []ParticipantName `json:"participants" yaml:"participants"`
	MaxIterations int               `json:"max_iterations" yaml:"max_iterations"`
	StartedAt     time.Time         `json:"started_at" yaml:"started_at"`
}

func (s Session) Validate() error {
	if strings.TrimSpace(string(s.ID)) == "" {
		return fmt.Errorf("session id is required")
	}
	if strings.TrimSpace(s.Topic) == "" {
		return fmt.Errorf("session topic is required")
	}

	return nil
}

type SessionSummary struct {
	ID                  SessionID       `json:"id" yaml:"id"`
	Topic               string          `json:"topic" yaml:"topic"`
	Status              SessionStatus   `json:"status" yaml:"status"`
	Phase               Phase           `json:"phase,omitempty" yaml:"phase,omitempty"`
	Iteration           int             `json:"iteration" yaml:"iteration"`
	MaxIterations       int             `json:"max_iterations" yaml:"max_iterations"`
	ConsensusReached    bool            `json:"consensus_reached" yaml:"consensus_reached"`
	Winner              ParticipantName `json:"winner,omitempty" yaml:"winner,omitempty"`
	ConsensusPercentage float64         `json:"consensus_percentage" yaml:"consensus_percentage"`
	WordCount           int             `json:"word_count" yaml:"word_count"`
	FailureReason       string          `json:"failure_reason,omitempty" yaml:"failure_reason,omitempty"`
	StartedAt           time.Time       `json:"started_at" yaml:"started_at"`
	CompletedAt         time.Time       `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
}

type Stats struct {
	Total             int     `json:"total" yaml:"total"`
	Active            int     `json:"active" yaml:"active"`
	Completed         int     `json:"completed" yaml:"completed"`
	Failed            int     `json:"failed" yaml:"failed"`
	ConsensusRate     float64 `json:"consensus_rate" yaml:"consensus_rate"`
	AverageIterations float64 `json:"average_iterations" yaml:"average_iterations"`
}

// NewStats aggregates session summaries. Rates and averages only consider
// completed sessions.
func NewStats(sessions []SessionSummary) Stats {
	stats := Stats{Total: len(sessions)}
	reached := 0
	iterations := 0
	for _, session := range sessions {
		switch session.Status {
		case SessionActive:
			stats.Active++
		case SessionCompleted:
			stats.Completed++
			iterations += session.Iteration
			if session.ConsensusReached {
				reached++
			}
		case SessionFailed:
			stats.Failed++
		}
	}

	if stats.Completed > 0 {
		stats.ConsensusRate = float64(reached) / float64(stats.Completed)
		stats.AverageIterations = float64(iterations) / float64(stats.Completed)
	}
	return stats
}
