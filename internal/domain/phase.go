package domain

import "fmt"

type Phase string

const (
	PhaseResearch         Phase = "research"
	PhasePresentation     Phase = "presentation"
	PhaseEmbodiment       Phase = "embodiment"
	PhaseAdjustment       Phase = "adjustment"
	PhaseCrossExamination Phase = "cross_examination"
	PhaseVoting           Phase = "voting"
	PhaseSynthesis        Phase = "synthesis"
)

var phaseOrder = []Phase{
	PhaseResearch,
	PhasePresentation,
	PhaseEmbodiment,
	PhaseAdjustment,
	PhaseCrossExamination,
	PhaseVoting,
	PhaseSynthesis,
}

func ParsePhase(raw string) (Phase, error) {
	for _, phase := range phaseOrder {
		if string(phase) == raw {
			return phase, nil
		}
	}
	return "", fmt.Errorf("unknown phase %q", raw)
}

// IterationBody reports whether the phase repeats on every iteration.
func (p Phase) IterationBody() bool {
	switch p {
	case PhaseAdjustment, PhaseCrossExamination, PhaseVoting:
		return true
	default:
		return false
	}
}

type State string

const (
	StateInit       State = "init"
	StateResearch   State = "research"
	StatePresent    State = "present"
	StateEmbody     State = "embody"
	StateAdjust     State = "adjust"
	StateCrossExam  State = "cross_exam"
	StateVote       State = "vote"
	StateSynthesize State = "synthesize"
	StateDone       State = "done"
	StateFailed     State = "failed"
)

func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}

// Phase maps a working state to the phase it executes. Init and the
// terminal states have no phase.
func (s State) Phase() (Phase, bool) {
	switch s {
	case StateResearch:
		return PhaseResearch, true
	case StatePresent:
		return PhasePresentation, true
	case StateEmbody:
		return PhaseEmbodiment, true
	case StateAdjust:
		return PhaseAdjustment, true
	case StateCrossExam:
		return PhaseCrossExamination, true
	case StateVote:
		return PhaseVoting, true
	case StateSynthesize:
		return PhaseSynthesis, true
	default:
		return "", false
	}
}
