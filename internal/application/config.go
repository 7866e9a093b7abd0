package application

import (
	"fmt"

	"github.com/bnema/boardroom/internal/domain"
)

type AdjustmentSource string

const (
	// AdjustFromEmbodiment revises a strategy using the participant's own
	// embodiment notes.
	AdjustFromEmbodiment AdjustmentSource = "embodiment"
	// AdjustFromStrategies revises a strategy using every other
	// participant's current strategy.
	AdjustFromStrategies AdjustmentSource = "strategies"
)

type SynthesisMode string

const (
	SynthesisDesignated SynthesisMode = "designated"
	SynthesisJoint      SynthesisMode = "joint"
)

type BallotMode string

const (
	BallotStructured BallotMode = "structured"
	BallotText       BallotMode = "text"
)

const (
	DefaultMaxIterations      = 3
	DefaultConsensusThreshold = 0.67
	DefaultHistoryWindow      = 10
)

type Config struct {
	MaxIterations      int
	ConsensusThreshold float64
	EmbodimentEnabled  bool
	AdjustmentSource   AdjustmentSource
	SynthesisMode      SynthesisMode
	// Synthesizer names the participant writing the designated synthesis.
	// Empty means the first participant in the registry.
	Synthesizer   domain.ParticipantName
	BallotMode    BallotMode
	MaxParallel   int
	HistoryWindow int
}

func DefaultConfig() Config {
	return Config{
		MaxIterations:      DefaultMaxIterations,
		ConsensusThreshold: DefaultConsensusThreshold,
		EmbodimentEnabled:  true,
		AdjustmentSource:   AdjustFromEmbodiment,
		SynthesisMode:      SynthesisJoint,
		BallotMode:         BallotStructured,
		HistoryWindow:      DefaultHistoryWindow,
	}
}

func (c Config) Validate(registry *domain.Registry) error {
	if c.MaxIterations < 1 {
		return &domain.ConfigurationError{Field: "max_iterations", Reason: fmt.Sprintf("must be at least 1, got %d", c.MaxIterations)}
	}
	if c.ConsensusThreshold <= 0 || c.ConsensusThreshold > 1 {
		return &domain.ConfigurationError{Field: "consensus_threshold", Reason: fmt.Sprintf("must be in (0, 1], got %v", c.ConsensusThreshold)}
	}
	switch c.AdjustmentSource {
	case AdjustFromEmbodiment, AdjustFromStrategies:
	default:
		return &domain.ConfigurationError{Field: "adjustment_source", Reason: fmt.Sprintf("unsupported value %q", c.AdjustmentSource)}
	}
	switch c.SynthesisMode {
	case SynthesisDesignated, SynthesisJoint:
	default:
		return &domain.ConfigurationError{Field: "synthesis_mode", Reason: fmt.Sprintf("unsupported value %q", c.SynthesisMode)}
	}
	switch c.BallotMode {
	case BallotStructured, BallotText:
	default:
		return &domain.ConfigurationError{Field: "ballot_mode", Reason: fmt.Sprintf("unsupported value %q", c.BallotMode)}
	}
	if c.MaxParallel < 0 {
		return &domain.ConfigurationError{Field: "max_parallel", Reason: fmt.Sprintf("must not be negative, got %d", c.MaxParallel)}
	}
	if c.HistoryWindow < 1 {
		return &domain.ConfigurationError{Field: "history_window", Reason: fmt.Sprintf("must be at least 1, got %d", c.HistoryWindow)}
	}
	if c.Synthesizer != "" && registry != nil {
		if _, ok := registry.Lookup(c.Synthesizer); !ok {
			return &domain.ConfigurationError{Field: "synthesizer", Reason: fmt.Sprintf("unknown participant %q", c.Synthesizer)}
		}
	}

	return nil
}
