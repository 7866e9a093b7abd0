package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bnema/boardroom/internal/domain"
	"github.com/bnema/boardroom/internal/ports"
	"github.com/rs/zerolog"
)

var ErrHistoryUnavailable = errors.New("session history is not configured")

// DefaultRunRetention is how long a finished background run stays in memory.
const DefaultRunRetention = 15 * time.Minute

type ServiceDeps struct {
	Panel    ports.PanelRepository
	Provider ports.JudgmentProvider
	Sink     ports.HistorySink
	Sessions ports.SessionRepository
	Clock    ports.Clock
	Logger   zerolog.Logger
	Observer Observer

	// RunRetention bounds how long Status and Wait answer a finished run
	// from memory. Older runs are only reachable through Sessions.
	RunRetention time.Duration
}

// Service runs deliberations for the CLI and the HTTP server. Runs started
// with Start execute in the background; once finished they are evicted
// after RunRetention.
type Service struct {
	deps ServiceDeps
	cfg  Config

	mu   sync.Mutex
	runs map[domain.SessionID]*trackedRun
}

type trackedRun struct {
	status RunStatus
	cancel context.CancelFunc
	done   chan struct{}
	report domain.FinalReport
	err    error
}

func NewService(deps ServiceDeps, cfg Config) *Service {
	if deps.Clock == nil {
		deps.Clock = ports.SystemClock{}
	}
	if deps.RunRetention <= 0 {
		deps.RunRetention = DefaultRunRetention
	}

	return &Service{
		deps: deps,
		cfg:  cfg,
		runs: map[domain.SessionID]*trackedRun{},
	}
}

func (s *Service) Config() Config {
	return s.cfg
}

func (s *Service) Panel(ctx context.Context) ([]domain.Participant, error) {
	if s.deps.Panel == nil {
		return domain.DefaultPanel(), nil
	}

	participants, err := s.deps.Panel.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load panel: %w", err)
	}
	return participants, nil
}

// Run deliberates synchronously and returns the final report.
func (s *Service) Run(ctx context.Context, cmd RunDebateCommand) (domain.FinalReport, error) {
	orchestrator, err := s.orchestrator(ctx, cmd, Observers(s.deps.Observer, cmd.Observer))
	if err != nil {
		return domain.FinalReport{}, err
	}

	return orchestrator.Run(ctx, cmd.Topic, cmd.MaxIterations)
}

// Start validates the command, then deliberates in the background. The run
// outlives ctx; use Stop to cancel it.
func (s *Service) Start(ctx context.Context, cmd RunDebateCommand) (domain.SessionID, error) {
	cmd.Topic = strings.TrimSpace(cmd.Topic)
	if cmd.Topic == "" {
		return "", &domain.ConfigurationError{Field: "topic", Reason: "topic is required"}
	}

	id := newSessionID()
	orchestrator, err := s.orchestrator(ctx, cmd, Observers(s.deps.Observer, cmd.Observer, s.track(id)))
	if err != nil {
		return "", err
	}

	maxIterations := cmd.MaxIterations
	if maxIterations <= 0 {
		maxIterations = orchestrator.Config().MaxIterations
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	tracked := &trackedRun{
		status: RunStatus{
			SessionID:     id,
			Topic:         cmd.Topic,
			Status:        domain.SessionActive,
			State:         domain.StateInit,
			MaxIterations: maxIterations,
			StartedAt:     s.deps.Clock.Now(),
		},
		cancel: cancel,
		done:   make(chan struct{}),
	}

	s.mu.Lock()
	s.evictFinishedLocked(tracked.status.StartedAt)
	s.runs[id] = tracked
	s.mu.Unlock()

	go func() {
		defer cancel()
		report, err := orchestrator.RunSession(runCtx, id, cmd.Topic, maxIterations)
		s.finish(id, report, err)
	}()

	return id, nil
}

func (s *Service) Stop(id domain.SessionID) error {
	s.mu.Lock()
	tracked, ok := s.runs[id]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("stop %s: %w", id, domain.ErrSessionNotFound)
	}

	tracked.cancel()
	return nil
}

// Wait blocks until a run started with Start finishes.
func (s *Service) Wait(ctx context.Context, id domain.SessionID) (domain.FinalReport, error) {
	s.mu.Lock()
	tracked, ok := s.runs[id]
	s.mu.Unlock()
	if !ok {
		return domain.FinalReport{}, fmt.Errorf("wait %s: %w", id, domain.ErrSessionNotFound)
	}

	select {
	case <-tracked.done:
		return tracked.report, tracked.err
	case <-ctx.Done():
		return domain.FinalReport{}, ctx.Err()
	}
}

func (s *Service) Status(ctx context.Context, id domain.SessionID) (RunStatus, error) {
	s.mu.Lock()
	tracked, ok := s.runs[id]
	var status RunStatus
	if ok {
		status = tracked.status
	}
	s.mu.Unlock()
	if ok {
		return status, nil
	}

	if s.deps.Sessions == nil {
		return RunStatus{}, fmt.Errorf("status %s: %w", id, domain.ErrSessionNotFound)
	}
	summary, _, err := s.deps.Sessions.GetSession(ctx, id)
	if err != nil {
		return RunStatus{}, fmt.Errorf("status %s: %w", id, err)
	}
	return statusFromSummary(summary), nil
}

// Active lists the background runs that have not finished yet.
func (s *Service) Active() []RunStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := make([]RunStatus, 0, len(s.runs))
	for _, tracked := range s.runs {
		if tracked.status.Status == domain.SessionActive {
			active = append(active, tracked.status)
		}
	}
	return active
}

func (s *Service) ListSessions(ctx context.Context) ([]domain.SessionSummary, error) {
	if s.deps.Sessions == nil {
		return nil, ErrHistoryUnavailable
	}

	sessions, err := s.deps.Sessions.ListSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

func (s *Service) GetSession(ctx context.Context, id domain.SessionID) (domain.SessionSummary, domain.FinalReport, error) {
	if s.deps.Sessions == nil {
		return domain.SessionSummary{}, domain.FinalReport{}, ErrHistoryUnavailable
	}

	summary, report, err := s.deps.Sessions.GetSession(ctx, id)
	if err != nil {
		return domain.SessionSummary{}, domain.FinalReport{}, fmt.Errorf("get session %s: %w", id, err)
	}
	return summary, report, nil
}

func (s *Service) Stats(ctx context.Context) (domain.Stats, error) {
	if s.deps.Sessions == nil {
		return domain.Stats{}, ErrHistoryUnavailable
	}

	stats, err := s.deps.Sessions.Stats(ctx)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("session stats: %w", err)
	}
	return stats, nil
}

func (s *Service) orchestrator(ctx context.Context, cmd RunDebateCommand, observer Observer) (*Orchestrator, error) {
	participants, err := s.Panel(ctx)
	if err != nil {
		return nil, err
	}

	return NewOrchestrator(participants, s.deps.Provider, cmd.apply(s.cfg),
		WithHistorySink(s.deps.Sink),
		WithClock(s.deps.Clock),
		WithLogger(s.deps.Logger),
		WithObserver(observer),
	)
}

func (s *Service) track(id domain.SessionID) Observer {
	return func(event Event) {
		s.mu.Lock()
		defer s.mu.Unlock()

		tracked, ok := s.runs[id]
		if !ok {
			return
		}
		switch event.Kind {
		case EventTransition:
			tracked.status.State = event.To
			tracked.status.Phase = event.Phase
			tracked.status.Iteration = event.Iteration
		case EventPhaseCompleted:
			if event.Consensus != nil {
				tracked.status.ConsensusReached = event.Consensus.Reached
				tracked.status.Winner = event.Consensus.Winner
			}
		}
	}
}

func (s *Service) finish(id domain.SessionID, report domain.FinalReport, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tracked, ok := s.runs[id]
	if !ok {
		return
	}
	tracked.report = report
	tracked.err = err
	tracked.status.CompletedAt = s.deps.Clock.Now()
	if err != nil {
		tracked.status.Status = domain.SessionFailed
		tracked.status.Error = err.Error()
	} else {
		tracked.status.Status = domain.SessionCompleted
		tracked.status.ConsensusReached = report.ConsensusReached
		tracked.status.Winner = report.Consensus.Winner
		tracked.status.Iteration = report.IterationsCompleted
	}
	close(tracked.done)
	s.evictFinishedLocked(tracked.status.CompletedAt)
}

// evictFinishedLocked drops finished runs that completed at least
// RunRetention before now. Callers hold s.mu.
func (s *Service) evictFinishedLocked(now time.Time) {
	for id, tracked := range s.runs {
		if tracked.status.Status == domain.SessionActive || tracked.status.CompletedAt.IsZero() {
			continue
		}
		if now.Sub(tracked.status.CompletedAt) >= s.deps.RunRetention {
			delete(s.runs, id)
		}
	}
}
