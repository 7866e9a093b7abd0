package observability

import (
	"github.com/bnema/boardroom/internal/application"
	"github.com/bnema/boardroom/internal/domain"
)

// RunMetrics turns orchestrator events into prometheus samples.
func RunMetrics() application.Observer {
	return func(event application.Event) {
		switch event.Kind {
		case application.EventTransition:
			if event.From == domain.StateInit {
				RecordRunStarted()
			}
		case application.EventPhaseCompleted:
			RecordPhase(string(event.Phase), event.Duration)
		case application.EventPersistenceFailed:
			RecordPersistenceFailure()
		case application.EventRunCompleted:
			RecordRunFinished("completed", event.Consensus != nil && event.Consensus.Reached)
		case application.EventRunFailed:
			RecordRunFinished("failed", false)
		}
	}
}
