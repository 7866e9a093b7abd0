package file

import (
	"fmt"
	"time"

	"github.com/bnema/boardroom/internal/domain"
)

const currentSchemaVersion = 1

type sessionSchema struct {
	Version             int      `toml:"version"`
	ID                  string   `toml:"id"`
	Topic               string   `toml:"topic"`
	Folder              string   `toml:"folder"`
	Participants        []string `toml:"participants"`
	MaxIterations       int      `toml:"max_iterations"`
	Status              string   `toml:"status"`
	Phase               string   `toml:"phase,omitempty"`
	Iteration           int      `toml:"iteration"`
	ConsensusReached    bool     `toml:"consensus_reached"`
	Winner              string   `toml:"winner,omitempty"`
	ConsensusPercentage float64  `toml:"consensus_percentage"`
	WordCount           int      `toml:"word_count"`
	FailureReason       string   `toml:"failure_reason,omitempty"`
	StartedAt           string   `toml:"started_at"`
	CompletedAt         string   `toml:"completed_at,omitempty"`
}

func (s sessionSchema) validate() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported session schema version %d (current %d)", s.Version, currentSchemaVersion)
	}
	if s.Phase != "" {
		if _, err := domain.ParsePhase(s.Phase); err != nil {
			return fmt.Errorf("session %s: %w", s.ID, err)
		}
	}

	return nil
}

func (s sessionSchema) summary() domain.SessionSummary {
	return domain.SessionSummary{
		ID:                  domain.SessionID(s.ID),
		Topic:               s.Topic,
		Status:              domain.SessionStatus(s.Status),
		Phase:               domain.Phase(s.Phase),
		Iteration:           s.Iteration,
		MaxIterations:       s.MaxIterations,
		ConsensusReached:    s.ConsensusReached,
		Winner:              domain.ParticipantName(s.Winner),
		ConsensusPercentage: s.ConsensusPercentage,
		WordCount:           s.WordCount,
		FailureReason:       s.FailureReason,
		StartedAt:           parseTime(s.StartedAt),
		CompletedAt:         parseTime(s.CompletedAt),
	}
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339Nano)
}
