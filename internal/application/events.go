package application

import (
	"time"

	"github.com/bnema/boardroom/internal/domain"
)

type EventKind string

const (
	EventTransition        EventKind = "transition"
	EventPhaseCompleted    EventKind = "phase_completed"
	EventPersistenceFailed EventKind = "persistence_failed"
	EventRunCompleted      EventKind = "run_completed"
	EventRunFailed         EventKind = "run_failed"
)

type Event struct {
	Kind      EventKind
	SessionID domain.SessionID
	From      domain.State
	To        domain.State
	Phase     domain.Phase
	Iteration int
	Duration  time.Duration
	Consensus *domain.ConsensusResult
	Err       error
	At        time.Time
}

// Observer receives run events synchronously from the orchestrator
// goroutine. Implementations must not block.
type Observer func(Event)

// Observers fans one event out to several observers in order.
func Observers(observers ...Observer) Observer {
	return func(event Event) {
		for _, observe := range observers {
			if observe != nil {
				observe(event)
			}
		}
	}
}
