package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/boardroom/internal/domain"
	"github.com/bnema/boardroom/internal/ports"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Orchestrator struct {
	registry *domain.Registry
	provider ports.JudgmentProvider
	sink     ports.HistorySink
	cfg      Config
	analyzer ConsensusAnalyzer
	clock    ports.Clock
	logger   zerolog.Logger
	observer Observer
	newID    func() domain.SessionID
}

type OrchestratorOption func(*Orchestrator)

func WithHistorySink(sink ports.HistorySink) OrchestratorOption {
	return func(o *Orchestrator) { o.sink = sink }
}

func WithClock(clock ports.Clock) OrchestratorOption {
	return func(o *Orchestrator) {
		if clock != nil {
			o.clock = clock
		}
	}
}

func WithLogger(logger zerolog.Logger) OrchestratorOption {
	return func(o *Orchestrator) { o.logger = logger }
}

func WithObserver(observer Observer) OrchestratorOption {
	return func(o *Orchestrator) { o.observer = observer }
}

func WithSessionIDs(newID func() domain.SessionID) OrchestratorOption {
	return func(o *Orchestrator) {
		if newID != nil {
			o.newID = newID
		}
	}
}

// NewOrchestrator validates the panel and the configuration. Any problem is
// reported as a *domain.ConfigurationError before a single phase runs.
func NewOrchestrator(participants []domain.Participant, provider ports.JudgmentProvider, cfg Config, opts ...OrchestratorOption) (*Orchestrator, error) {
	registry, err := domain.NewRegistry(participants)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(registry); err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, &domain.ConfigurationError{Field: "provider", Reason: "judgment provider is required"}
	}

	o := &Orchestrator{
		registry: registry,
		provider: provider,
		cfg:      cfg,
		analyzer: NewConsensusAnalyzer(cfg.ConsensusThreshold),
		clock:    ports.SystemClock{},
		logger:   zerolog.Nop(),
		newID:    newSessionID,
	}
	for _, opt := range opts {
		opt(o)
	}

	return o, nil
}

func (o *Orchestrator) Registry() *domain.Registry {
	return o.registry
}

func (o *Orchestrator) Config() Config {
	return o.cfg
}

// Run deliberates on topic under a fresh session ID. maxIterations <= 0
// falls back to the configured cap.
func (o *Orchestrator) Run(ctx context.Context, topic string, maxIterations int) (domain.FinalReport, error) {
	return o.RunSession(ctx, o.newID(), topic, maxIterations)
}

func (o *Orchestrator) RunSession(ctx context.Context, id domain.SessionID, topic string, maxIterations int) (domain.FinalReport, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return domain.FinalReport{}, &domain.ConfigurationError{Field: "topic", Reason: "topic is required"}
	}
	if maxIterations <= 0 {
		maxIterations = o.cfg.MaxIterations
	}

	r := o.newRun(id, topic, maxIterations)
	return r.execute(ctx)
}

type run struct {
	o             *Orchestrator
	id            domain.SessionID
	d             *Deliberation
	env           phaseEnv
	state         domain.State
	maxIterations int
	startedAt     time.Time
	logger        zerolog.Logger
}

func (o *Orchestrator) newRun(id domain.SessionID, topic string, maxIterations int) *run {
	logger := o.logger.With().Str("session_id", string(id)).Logger()
	r := &run{
		o:             o,
		id:            id,
		d:             NewDeliberation(topic, o.registry, NewContextStore(o.cfg.HistoryWindow)),
		state:         domain.StateInit,
		maxIterations: maxIterations,
		logger:        logger,
	}
	r.env = phaseEnv{
		provider: o.provider,
		cfg:      o.cfg,
		clock:    o.clock,
		history: historyRecorder{
			sink:   o.sink,
			id:     id,
			logger: logger,
			onError: func(err error) {
				r.emit(Event{Kind: EventPersistenceFailed, Err: err})
			},
		},
	}
	return r
}

func (r *run) execute(ctx context.Context) (domain.FinalReport, error) {
	r.startedAt = r.o.clock.Now()
	r.d.Store().Set("topic", r.d.Topic())
	r.env.history.beginSession(ctx, domain.Session{
		ID:            r.id,
		Topic:         r.d.Topic(),
		Participants:  r.o.registry.Names(),
		MaxIterations: r.maxIterations,
		StartedAt:     r.startedAt,
	})
	r.logger.Info().Str("topic", r.d.Topic()).Int("participants", r.o.registry.Len()).Int("max_iterations", r.maxIterations).Msg("deliberation started")

	opening := []struct {
		state domain.State
		exec  PhaseExecutor
	}{
		{domain.StateResearch, researchPhase{r.env}},
		{domain.StatePresent, presentationPhase{r.env}},
		{domain.StateEmbody, embodimentPhase{r.env}},
	}
	for _, step := range opening {
		if err := r.step(ctx, step.state, step.exec); err != nil {
			return r.fail(ctx, err)
		}
	}

	body := []struct {
		state domain.State
		exec  PhaseExecutor
	}{
		{domain.StateAdjust, adjustmentPhase{r.env}},
		{domain.StateCrossExam, crossExaminationPhase{r.env}},
		{domain.StateVote, votingPhase{phaseEnv: r.env, analyzer: r.o.analyzer}},
	}

	completed := 0
	for iteration := 1; iteration <= r.maxIterations; iteration++ {
		r.d.beginIteration(iteration)
		for _, step := range body {
			if err := r.step(ctx, step.state, step.exec); err != nil {
				return r.fail(ctx, err)
			}
		}
		completed = iteration

		consensus := r.d.Consensus()
		r.logger.Info().
			Int("iteration", iteration).
			Bool("reached", consensus.Reached).
			Str("winner", string(consensus.Winner)).
			Int("votes", consensus.WinnerVotes()).
			Int("required", consensus.Required).
			Msg("votes tallied")
		if consensus.Reached {
			break
		}
	}

	if err := r.step(ctx, domain.StateSynthesize, synthesisPhase{r.env}); err != nil {
		return r.fail(ctx, err)
	}

	report := r.report(completed)
	r.transition(domain.StateDone)
	r.env.history.finalReport(ctx, report)
	r.emit(Event{Kind: EventRunCompleted, Consensus: &report.Consensus, Duration: report.Duration()})
	r.logger.Info().
		Bool("consensus", report.ConsensusReached).
		Str("winner", string(report.Consensus.Winner)).
		Int("iterations", report.IterationsCompleted).
		Int("rounds", len(report.Rounds)).
		Msg("deliberation completed")

	return report, nil
}

func (r *run) step(ctx context.Context, state domain.State, exec PhaseExecutor) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("deliberation stopped before %s: %w", state, err)
	}

	r.transition(state)
	started := r.o.clock.Now()
	if err := exec.Execute(ctx, r.d); err != nil {
		return err
	}

	event := Event{Kind: EventPhaseCompleted, Phase: exec.Phase(), Duration: r.o.clock.Now().Sub(started)}
	if exec.Phase() == domain.PhaseVoting {
		consensus := r.d.Consensus()
		event.Consensus = &consensus
	}
	r.emit(event)
	return nil
}

func (r *run) transition(to domain.State) {
	from := r.state
	r.state = to
	r.logger.Debug().Str("from", string(from)).Str("to", string(to)).Int("iteration", r.d.Iteration()).Msg("state transition")
	r.emit(Event{Kind: EventTransition, From: from, To: to})
}

func (r *run) fail(ctx context.Context, err error) (domain.FinalReport, error) {
	r.transition(domain.StateFailed)
	r.env.history.failure(context.WithoutCancel(ctx), err.Error())
	r.emit(Event{Kind: EventRunFailed, Err: err})

	event := r.logger.Error()
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		event = r.logger.Warn()
	}
	event.Err(err).Int("iteration", r.d.Iteration()).Msg("deliberation failed")

	return domain.FinalReport{}, fmt.Errorf("deliberate %q: %w", r.d.Topic(), err)
}

func (r *run) emit(event Event) {
	if r.o.observer == nil {
		return
	}
	event.SessionID = r.id
	event.Iteration = r.d.Iteration()
	if event.To == "" {
		event.To = r.state
	}
	if event.Phase == "" {
		event.Phase, _ = r.state.Phase()
	}
	event.At = r.o.clock.Now()
	r.o.observer(event)
}

func (r *run) report(iterations int) domain.FinalReport {
	consensus := r.d.Consensus()
	synthesizer, synthesis := r.d.Synthesis()

	return domain.FinalReport{
		SessionID:           r.id,
		Topic:               r.d.Topic(),
		Participants:        r.o.registry.Names(),
		Strategies:          r.d.Strategies(),
		Rounds:              r.d.Rounds(),
		Votes:               r.d.AllVotes(),
		Consensus:           consensus,
		IterationsCompleted: iterations,
		ConsensusReached:    consensus.Reached,
		Synthesizer:         synthesizer,
		Synthesis:           synthesis,
		StartedAt:           r.startedAt,
		CompletedAt:         r.o.clock.Now(),
	}
}

func newSessionID() domain.SessionID {
	return domain.SessionID(uuid.NewString())
}
