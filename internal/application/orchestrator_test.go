package application

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bnema/boardroom/internal/domain"
	"github.com/bnema/boardroom/internal/ports"
	"github.com/bnema/boardroom/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOrchestratorNumbersCrossExaminationRounds(t *testing.T) {
	t.Parallel()

	for n := 2; n <= 6; n++ {
		t.Run(fmt.Sprintf("%d participants", n), func(t *testing.T) {
			t.Parallel()

			names := make([]string, n)
			for i := range names {
				names[i] = fmt.Sprintf("P%d", i+1)
			}
			provider := &scriptedProvider{}
			orchestrator, err := NewOrchestrator(panelOf(names...), provider, testConfig())
			require.NoError(t, err)

			report, err := orchestrator.Run(context.Background(), "pricing", 1)
			require.NoError(t, err)

			require.Len(t, report.Rounds, n*(n-1))
			round := 0
			for _, questioner := range names {
				for _, responder := range names {
					if questioner == responder {
						continue
					}
					record := report.Rounds[round]
					round++
					assert.Equal(t, round, record.Round)
					assert.Equal(t, 1, record.Iteration)
					assert.Equal(t, domain.ParticipantName(questioner), record.Questioner)
					assert.Equal(t, domain.ParticipantName(responder), record.Responder)
					assert.Equal(t, fmt.Sprintf("%s speaking in round %d", questioner, round), record.Question)
					assert.Equal(t, fmt.Sprintf("%s speaking in round %d", responder, round), record.Response)
				}
			}
		})
	}
}

func TestOrchestratorReachesConsensusInSecondIteration(t *testing.T) {
	t.Parallel()

	provider := &scriptedProvider{ballot: ballotFor(map[int]map[domain.ParticipantName]domain.ParticipantName{
		1: {"A": "B", "B": "C", "C": "A"},
		2: {"A": "A", "B": "A", "C": "A"},
	})}
	sink := &memorySink{}
	orchestrator, err := NewOrchestrator(panelOf("A", "B", "C"), provider, testConfig(), WithHistorySink(sink))
	require.NoError(t, err)

	report, err := orchestrator.Run(context.Background(), "Should we expand into Europe?", 2)
	require.NoError(t, err)

	require.Len(t, report.Rounds, 12)
	for i, record := range report.Rounds {
		assert.Equal(t, i+1, record.Round)
		assert.Equal(t, i/6+1, record.Iteration)
	}
	assert.True(t, report.ConsensusReached)
	assert.Equal(t, 2, report.IterationsCompleted)
	assert.Equal(t, domain.ParticipantName("A"), report.Consensus.Winner)
	assert.Equal(t, map[domain.ParticipantName]int{"A": 3}, report.Consensus.Distribution)
	assert.Equal(t, 2, report.Consensus.Required)
	assert.Len(t, report.Votes, 6)
	assert.Equal(t, domain.PanelParticipantName, report.Synthesizer)
	assert.Equal(t, "Board synthesis", report.Synthesis)
	assert.Equal(t, []domain.ParticipantName{"A", "B", "C"}, report.Participants)
	assert.Equal(t, "A adjustment", report.Strategies["A"])

	first, ok := sink.summary(domain.PhaseVoting, 1)
	require.True(t, ok)
	require.NotNil(t, first.Consensus)
	assert.False(t, first.Consensus.Reached)
	assert.Equal(t, map[domain.ParticipantName]int{"A": 1, "B": 1, "C": 1}, first.Consensus.Distribution)

	require.Len(t, sink.sessions, 1)
	assert.Equal(t, 2, sink.sessions[0].MaxIterations)
	assert.Len(t, sink.exchanges, 12)
	require.Len(t, sink.reports, 1)
	assert.Equal(t, report.SessionID, sink.reports[0].SessionID)
	assert.Empty(t, sink.failures)
}

// castingProvider pairs the generated mocks into a provider that also
// answers structured ballots.
type castingProvider struct {
	*mocks.MockJudgmentProvider
	*mocks.MockBallotCaster
}

func TestOrchestratorCastsStructuredBallots(t *testing.T) {
	t.Parallel()

	judge := mocks.NewMockJudgmentProvider(t)
	judge.EXPECT().Generate(mockAnyContext(), mock.Anything).RunAndReturn(func(_ context.Context, req ports.JudgmentRequest) (string, error) {
		assert.NotEqual(t, domain.PhaseVoting, req.Phase)
		return defaultReply(req), nil
	})
	caster := mocks.NewMockBallotCaster(t)
	caster.EXPECT().CastBallot(mockAnyContext(), mock.MatchedBy(func(req ports.JudgmentRequest) bool {
		return req.Phase == domain.PhaseVoting && req.Iteration == 1
	})).Return(domain.Ballot{Target: "  B ", Rationale: "steadiest plan"}, nil).Times(3)

	orchestrator, err := NewOrchestrator(panelOf("A", "B", "C"), castingProvider{judge, caster}, testConfig())
	require.NoError(t, err)

	report, err := orchestrator.Run(context.Background(), "pricing", 1)
	require.NoError(t, err)

	assert.True(t, report.ConsensusReached)
	assert.Equal(t, domain.ParticipantName("B"), report.Consensus.Winner)
	require.Len(t, report.Votes, 3)
	for _, vote := range report.Votes {
		assert.Equal(t, domain.ParticipantName("B"), vote.Target)
		assert.Equal(t, "steadiest plan", vote.Rationale)
	}
}

func TestOrchestratorStopsAtIterationCap(t *testing.T) {
	t.Parallel()

	provider := &scriptedProvider{}
	orchestrator, err := NewOrchestrator(panelOf("A", "B", "C"), provider, testConfig())
	require.NoError(t, err)

	report, err := orchestrator.Run(context.Background(), "pricing", 1)
	require.NoError(t, err)

	assert.Equal(t, 1, report.IterationsCompleted)
	assert.False(t, report.ConsensusReached)
	assert.Equal(t, "Board synthesis", report.Synthesis)
	assert.Len(t, provider.callsFor(domain.PhaseAdjustment), 3)
	assert.Len(t, provider.callsFor(domain.PhaseSynthesis), 1)
}

func TestOrchestratorUsesConfiguredIterationCap(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.MaxIterations = 2
	provider := &scriptedProvider{}
	orchestrator, err := NewOrchestrator(panelOf("A", "B"), provider, cfg)
	require.NoError(t, err)

	report, err := orchestrator.Run(context.Background(), "pricing", 0)
	require.NoError(t, err)

	assert.Equal(t, 2, report.IterationsCompleted)
	assert.Len(t, report.Rounds, 4)
}

func TestNewOrchestratorRejectsInvalidPanels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		panel  []domain.Participant
		mutate func(*Config)
		field  string
	}{
		{name: "duplicate names", panel: panelOf("A", "A"), field: "participants"},
		{name: "single participant", panel: panelOf("A"), field: "participants"},
		{name: "bad threshold", panel: panelOf("A", "B"), mutate: func(c *Config) { c.ConsensusThreshold = 1.5 }, field: "consensus_threshold"},
		{name: "unknown synthesizer", panel: panelOf("A", "B"), mutate: func(c *Config) { c.Synthesizer = "Z" }, field: "synthesizer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			provider := mocks.NewMockJudgmentProvider(t)
			cfg := testConfig()
			if tt.mutate != nil {
				tt.mutate(&cfg)
			}

			_, err := NewOrchestrator(tt.panel, provider, cfg)
			require.ErrorIs(t, err, domain.ErrConfiguration)
			var cfgErr *domain.ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestOrchestratorRejectsEmptyTopic(t *testing.T) {
	t.Parallel()

	provider := mocks.NewMockJudgmentProvider(t)
	orchestrator, err := NewOrchestrator(panelOf("A", "B"), provider, testConfig())
	require.NoError(t, err)

	_, err = orchestrator.Run(context.Background(), "   ", 1)
	require.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestOrchestratorAbortsOnProviderError(t *testing.T) {
	t.Parallel()

	boom := errors.New("rate limited")
	provider := &scriptedProvider{reply: func(_ context.Context, req ports.JudgmentRequest) (string, error) {
		if req.Participant.Name == "B" {
			return "", boom
		}
		return defaultReply(req), nil
	}}
	sink := &memorySink{}
	var kinds []EventKind
	orchestrator, err := NewOrchestrator(panelOf("A", "B", "C"), provider, testConfig(),
		WithHistorySink(sink),
		WithObserver(func(event Event) { kinds = append(kinds, event.Kind) }),
	)
	require.NoError(t, err)

	_, err = orchestrator.Run(context.Background(), "pricing", 2)
	require.ErrorIs(t, err, domain.ErrProvider)
	require.ErrorIs(t, err, boom)
	var providerErr *domain.ProviderError
	require.True(t, errors.As(err, &providerErr))
	assert.Equal(t, domain.ParticipantName("B"), providerErr.Participant)
	assert.Equal(t, domain.PhaseResearch, providerErr.Phase)

	assert.Empty(t, provider.callsFor(domain.PhaseEmbodiment))
	assert.Len(t, sink.failures, 1)
	assert.Empty(t, sink.reports)
	assert.Equal(t, EventRunFailed, kinds[len(kinds)-1])
}

func TestOrchestratorReportsMidPhaseCancelAsAbort(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		reply func(ctx context.Context) error
	}{
		{name: "provider returns context error", reply: func(ctx context.Context) error { return ctx.Err() }},
		{name: "provider returns transport error", reply: func(context.Context) error { return errors.New("connection reset") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			provider := &scriptedProvider{reply: func(ctx context.Context, req ports.JudgmentRequest) (string, error) {
				if req.Phase == domain.PhaseAdjustment && req.Participant.Name == "B" {
					cancel()
					return "", tt.reply(ctx)
				}
				return defaultReply(req), nil
			}}
			sink := &memorySink{}
			orchestrator, err := NewOrchestrator(panelOf("A", "B", "C"), provider, testConfig(), WithHistorySink(sink))
			require.NoError(t, err)

			_, err = orchestrator.Run(ctx, "pricing", 2)
			require.ErrorIs(t, err, context.Canceled)
			assert.NotErrorIs(t, err, domain.ErrProvider)
			var providerErr *domain.ProviderError
			assert.False(t, errors.As(err, &providerErr))
			assert.Len(t, sink.failures, 1)
		})
	}
}

func TestOrchestratorSwallowsHistoryFailures(t *testing.T) {
	t.Parallel()

	diskFull := errors.New("disk full")
	sink := mocks.NewMockHistorySink(t)
	sink.EXPECT().BeginSession(mockAnyContext(), mock.Anything).Return(diskFull)
	sink.EXPECT().RecordRound(mockAnyContext(), mock.Anything, mock.Anything).Return(diskFull)
	sink.EXPECT().RecordExchange(mockAnyContext(), mock.Anything, mock.Anything).Return(diskFull)
	sink.EXPECT().RecordPhaseSummary(mockAnyContext(), mock.Anything, mock.Anything).Return(diskFull)
	sink.EXPECT().RecordFinalReport(mockAnyContext(), mock.Anything, mock.Anything).Return(diskFull)

	var failures []error
	orchestrator, err := NewOrchestrator(panelOf("A", "B"), &scriptedProvider{}, testConfig(),
		WithHistorySink(sink),
		WithObserver(func(event Event) {
			if event.Kind == EventPersistenceFailed {
				failures = append(failures, event.Err)
			}
		}),
	)
	require.NoError(t, err)

	report, err := orchestrator.Run(context.Background(), "pricing", 1)
	require.NoError(t, err)

	assert.Len(t, report.Rounds, 2)
	require.NotEmpty(t, failures)
	for _, failure := range failures {
		assert.ErrorIs(t, failure, domain.ErrPersistence)
		assert.ErrorIs(t, failure, diskFull)
	}
}

func TestOrchestratorStopsBetweenPhasesOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	provider := &scriptedProvider{}
	sink := &memorySink{}
	var last domain.State
	orchestrator, err := NewOrchestrator(panelOf("A", "B"), provider, testConfig(),
		WithHistorySink(sink),
		WithObserver(func(event Event) {
			if event.Kind == EventPhaseCompleted && event.Phase == domain.PhaseResearch {
				cancel()
			}
			if event.Kind == EventTransition {
				last = event.To
			}
		}),
	)
	require.NoError(t, err)

	_, err = orchestrator.Run(ctx, "pricing", 1)
	require.ErrorIs(t, err, context.Canceled)

	assert.Equal(t, domain.StateFailed, last)
	assert.Empty(t, provider.callsFor(domain.PhaseAdjustment))
	assert.Len(t, sink.failures, 1)
}

func TestOrchestratorSkipsDisabledEmbodiment(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.EmbodimentEnabled = false
	provider := &scriptedProvider{}
	sink := &memorySink{}
	orchestrator, err := NewOrchestrator(panelOf("A", "B"), provider, cfg, WithHistorySink(sink))
	require.NoError(t, err)

	_, err = orchestrator.Run(context.Background(), "pricing", 1)
	require.NoError(t, err)

	assert.Empty(t, provider.callsFor(domain.PhaseEmbodiment))
	summary, ok := sink.summary(domain.PhaseEmbodiment, 0)
	require.True(t, ok)
	assert.True(t, summary.Skipped)
	for _, call := range provider.callsFor(domain.PhaseAdjustment) {
		assert.Contains(t, call.Prompt, "You have no notes on the other advisors yet.")
	}
}

func TestOrchestratorAdjustmentSources(t *testing.T) {
	t.Parallel()

	tests := []struct {
		source AdjustmentSource
		want   string
	}{
		{source: AdjustFromEmbodiment, want: "Your notes from studying the other advisors:\nA embodiment"},
		{source: AdjustFromStrategies, want: "The other advisors currently propose:\n\n## B\nB research"},
	}

	for _, tt := range tests {
		t.Run(string(tt.source), func(t *testing.T) {
			t.Parallel()

			cfg := testConfig()
			cfg.AdjustmentSource = tt.source
			provider := &scriptedProvider{}
			orchestrator, err := NewOrchestrator(panelOf("A", "B"), provider, cfg)
			require.NoError(t, err)

			_, err = orchestrator.Run(context.Background(), "pricing", 1)
			require.NoError(t, err)

			calls := provider.callsFor(domain.PhaseAdjustment)
			require.Len(t, calls, 2)
			for _, call := range calls {
				if call.Participant.Name == "A" {
					assert.Contains(t, call.Prompt, tt.want)
					assert.Contains(t, call.Prompt, "Round 0 - A: STRATEGY: A research")
				}
			}
		})
	}
}

func TestOrchestratorKeepsIssuanceOrderUnderConcurrency(t *testing.T) {
	t.Parallel()

	delays := map[domain.ParticipantName]time.Duration{"A": 30 * time.Millisecond, "B": 15 * time.Millisecond}
	provider := &scriptedProvider{reply: func(ctx context.Context, req ports.JudgmentRequest) (string, error) {
		select {
		case <-time.After(delays[req.Participant.Name]):
		case <-ctx.Done():
			return "", ctx.Err()
		}
		return defaultReply(req), nil
	}}
	cfg := testConfig()
	cfg.MaxParallel = 0
	orchestrator, err := NewOrchestrator(panelOf("A", "B", "C"), provider, cfg)
	require.NoError(t, err)

	report, err := orchestrator.Run(context.Background(), "pricing", 1)
	require.NoError(t, err)

	require.Len(t, report.Rounds, 6)
	for i, record := range report.Rounds {
		assert.Equal(t, i+1, record.Round)
		assert.Equal(t, fmt.Sprintf("%s speaking in round %d", record.Questioner, record.Round), record.Question)
	}
	assert.Equal(t, map[domain.ParticipantName]string{"A": "A adjustment", "B": "B adjustment", "C": "C adjustment"}, report.Strategies)
}

func TestOrchestratorTextBallots(t *testing.T) {
	t.Parallel()

	reply := func(_ context.Context, req ports.JudgmentRequest) (string, error) {
		if req.Phase != domain.PhaseVoting {
			return defaultReply(req), nil
		}
		return map[domain.ParticipantName]string{
			"A": "I vote for B because the numbers hold",
			"B": "I vote for C because it is safer",
			"C": "I vote for B because it ships first",
		}[req.Participant.Name], nil
	}
	ballotErr := func(context.Context, ports.JudgmentRequest) (domain.Ballot, error) {
		return domain.Ballot{}, errors.New("structured ballots disabled")
	}

	tests := []struct {
		name     string
		provider func() ports.JudgmentProvider
		mode     BallotMode
	}{
		{name: "provider without ballots", provider: func() ports.JudgmentProvider {
			return textOnlyProvider{p: &scriptedProvider{reply: reply}}
		}, mode: BallotStructured},
		{name: "text mode", provider: func() ports.JudgmentProvider {
			return &scriptedProvider{reply: reply, ballot: ballotErr}
		}, mode: BallotText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := testConfig()
			cfg.BallotMode = tt.mode
			orchestrator, err := NewOrchestrator(panelOf("A", "B", "C"), tt.provider(), cfg)
			require.NoError(t, err)

			report, err := orchestrator.Run(context.Background(), "pricing", 3)
			require.NoError(t, err)

			assert.True(t, report.ConsensusReached)
			assert.Equal(t, 1, report.IterationsCompleted)
			assert.Equal(t, domain.ParticipantName("B"), report.Consensus.Winner)
			assert.Equal(t, map[domain.ParticipantName]int{"B": 2, "C": 1}, report.Consensus.Distribution)
			for _, vote := range report.Votes {
				assert.Empty(t, vote.Target)
			}
		})
	}
}

func TestOrchestratorEmitsTransitionsInOrder(t *testing.T) {
	t.Parallel()

	provider := &scriptedProvider{ballot: func(context.Context, ports.JudgmentRequest) (domain.Ballot, error) {
		return domain.Ballot{Target: "A"}, nil
	}}
	var states []domain.State
	var from domain.State
	orchestrator, err := NewOrchestrator(panelOf("A", "B"), provider, testConfig(),
		WithSessionIDs(func() domain.SessionID { return "session-1" }),
		WithObserver(func(event Event) {
			if event.Kind != EventTransition {
				return
			}
			if len(states) == 0 {
				from = event.From
			}
			states = append(states, event.To)
			assert.Equal(t, domain.SessionID("session-1"), event.SessionID)
		}),
	)
	require.NoError(t, err)

	report, err := orchestrator.Run(context.Background(), "pricing", 3)
	require.NoError(t, err)

	assert.Equal(t, domain.SessionID("session-1"), report.SessionID)
	assert.Equal(t, domain.StateInit, from)
	assert.Equal(t, []domain.State{
		domain.StateResearch,
		domain.StatePresent,
		domain.StateEmbody,
		domain.StateAdjust,
		domain.StateCrossExam,
		domain.StateVote,
		domain.StateSynthesize,
		domain.StateDone,
	}, states)
}

func TestOrchestratorSynthesisAuthor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		mode        SynthesisMode
		synthesizer domain.ParticipantName
		want        domain.ParticipantName
	}{
		{name: "joint", mode: SynthesisJoint, want: domain.PanelParticipantName},
		{name: "designated", mode: SynthesisDesignated, synthesizer: "B", want: "B"},
		{name: "designated defaults to first", mode: SynthesisDesignated, want: "A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := testConfig()
			cfg.SynthesisMode = tt.mode
			cfg.Synthesizer = tt.synthesizer
			provider := &scriptedProvider{}
			orchestrator, err := NewOrchestrator(panelOf("A", "B"), provider, cfg)
			require.NoError(t, err)

			report, err := orchestrator.Run(context.Background(), "pricing", 1)
			require.NoError(t, err)

			assert.Equal(t, tt.want, report.Synthesizer)
			assert.Equal(t, string(tt.want)+" synthesis", report.Synthesis)
			calls := provider.callsFor(domain.PhaseSynthesis)
			require.Len(t, calls, 1)
			assert.Equal(t, tt.want, calls[0].Participant.Name)
		})
	}
}
