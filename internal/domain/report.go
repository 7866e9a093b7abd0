package domain

import (
	"strings"
	"time"
)

type FinalReport struct {
	SessionID           SessionID                  `json:"session_id" yaml:"session_id"`
	Topic               string                     `json:"topic" yaml:"topic"`
	Participants        []ParticipantName          `json:"participants" yaml:"participants"`
	Strategies          map[ParticipantName]string `json:"strategies" yaml:"strategies"`
	Rounds              []DebateRoundRecord        `json:"rounds" yaml:"rounds"`
	Votes               []Vote                     `json:"votes" yaml:"votes"`
	Consensus           ConsensusResult            `json:"consensus" yaml:"consensus"`
	IterationsCompleted int                        `json:"iterations_completed" yaml:"iterations_completed"`
	ConsensusReached    bool                       `json:"consensus_reached" yaml:"consensus_reached"`
	Synthesizer         ParticipantName            `json:"synthesizer" yaml:"synthesizer"`
	Synthesis           string                     `json:"synthesis" yaml:"synthesis"`
	StartedAt           time.Time                  `json:"started_at" yaml:"started_at"`
	CompletedAt         time.Time                  `json:"completed_at" yaml:"completed_at"`
}

// WordCount counts whitespace separated words across strategies, exchanges
// and the synthesis.
func (r FinalReport) WordCount() int {
	total := CountWords(r.Synthesis)
	for _, strategy := range r.Strategies {
		total += CountWords(strategy)
	}
	for _, round := range r.Rounds {
		total += CountWords(round.Question) + CountWords(round.Response)
	}
	return total
}

func (r FinalReport) Duration() time.Duration {
	if r.StartedAt.IsZero() || r.CompletedAt.IsZero() {
		return 0
	}
	return r.CompletedAt.Sub(r.StartedAt)
}

func CountWords(text string) int {
	return len(strings.Fields(text))
}

func (r FinalReport) Summary() SessionSummary {
	return SessionSummary{
		ID:                  r.SessionID,
		Topic:               r.Topic,
		Status:              SessionCompleted,
		Phase:               PhaseSynthesis,
		Iteration:           r.IterationsCompleted,
		ConsensusReached:    r.ConsensusReached,
		Winner:              r.Consensus.Winner,
		ConsensusPercentage: r.Consensus.Percentage,
		WordCount:           r.WordCount(),
		StartedAt:           r.StartedAt,
		CompletedAt:         r.CompletedAt,
	}
}
