package domain

import "time"

type DebateRoundRecord struct {
	Round      int             `json:"round" yaml:"round"`
	Iteration  int             `json:"iteration" yaml:"iteration"`
	Questioner ParticipantName `json:"questioner" yaml:"questioner"`
	Responder  ParticipantName `json:"responder" yaml:"responder"`
	Question   string          `json:"question" yaml:"question"`
	Response   string          `json:"response" yaml:"response"`
}

// AgentOutput is one participant's text for one phase.
type AgentOutput struct {
	Participant ParticipantName `json:"participant" yaml:"participant"`
	Phase       Phase           `json:"phase" yaml:"phase"`
	Iteration   int             `json:"iteration" yaml:"iteration"`
	Round       int             `json:"round" yaml:"round"`
	Content     string          `json:"content" yaml:"content"`
	CreatedAt   time.Time       `json:"created_at" yaml:"created_at"`
}

type PhaseSummary struct {
	Phase       Phase                      `json:"phase" yaml:"phase"`
	Iteration   int                        `json:"iteration" yaml:"iteration"`
	Outputs     map[ParticipantName]string `json:"outputs,omitempty" yaml:"outputs,omitempty"`
	Exchanges   int                        `json:"exchanges,omitempty" yaml:"exchanges,omitempty"`
	Consensus   *ConsensusResult           `json:"consensus,omitempty" yaml:"consensus,omitempty"`
	Skipped     bool                       `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	CompletedAt time.Time                  `json:"completed_at" yaml:"completed_at"`
}
