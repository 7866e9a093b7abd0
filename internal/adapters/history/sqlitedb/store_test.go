package sqlitedb

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/boardroom/internal/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var startedAt = time.Date(2026, 3, 14, 9, 30, 15, 0, time.UTC)

func openStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(context.Background(), Config{
		Path:   filepath.Join(t.TempDir(), "history.db"),
		Logger: zerolog.Nop(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func beginSession(t *testing.T, store *Store, id domain.SessionID, started time.Time) {
	t.Helper()

	require.NoError(t, store.BeginSession(context.Background(), domain.Session{
		ID:            id,
		Topic:         "Scale the lab",
		Participants:  []domain.ParticipantName{"Alpha", "Beta"},
		MaxIterations: 3,
		StartedAt:     started,
	}))
}

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), Config{})
	require.Error(t, err)
}

func TestStoreSessionLifecycle(t *testing.T) {
	t.Parallel()

	store := openStore(t)
	ctx := context.Background()
	beginSession(t, store, "s-1", startedAt)

	require.NoError(t, store.RecordRound(ctx, "s-1", domain.AgentOutput{
		Participant: "Alpha", Phase: domain.PhaseResearch, Content: "notes", CreatedAt: startedAt,
	}))
	require.NoError(t, store.RecordExchange(ctx, "s-1", domain.DebateRoundRecord{
		Round: 3, Iteration: 1, Questioner: "Alpha", Responder: "Beta", Question: "why", Response: "because",
	}))
	require.NoError(t, store.RecordPhaseSummary(ctx, "s-1", domain.PhaseSummary{Phase: domain.PhaseVoting, Iteration: 1}))

	summary, report, err := store.GetSession(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, domain.SessionActive, summary.Status)
	assert.Equal(t, domain.PhaseVoting, summary.Phase)
	assert.Equal(t, 1, summary.Iteration)
	assert.Equal(t, 3, summary.MaxIterations)
	assert.True(t, summary.StartedAt.Equal(startedAt))
	assert.Empty(t, report.SessionID)

	require.NoError(t, store.RecordFinalReport(ctx, "s-1", domain.FinalReport{
		SessionID: "s-1",
		Topic:     "Scale the lab",
		Strategies: map[domain.ParticipantName]string{
			"Alpha": "two words",
		},
		Consensus: domain.ConsensusResult{
			Reached:      true,
			Winner:       "Alpha",
			Distribution: map[domain.ParticipantName]int{"Alpha": 2},
			Required:     2,
			Percentage:   100,
		},
		IterationsCompleted: 1,
		ConsensusReached:    true,
		Synthesizer:         "Alpha",
		Synthesis:           "ship it now",
		StartedAt:           startedAt,
		CompletedAt:         startedAt.Add(time.Minute),
	}))

	summary, report, err = store.GetSession(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, domain.SessionCompleted, summary.Status)
	assert.Equal(t, domain.PhaseSynthesis, summary.Phase)
	assert.True(t, summary.ConsensusReached)
	assert.Equal(t, domain.ParticipantName("Alpha"), summary.Winner)
	assert.Equal(t, 100.0, summary.ConsensusPercentage)
	assert.Equal(t, 5, summary.WordCount)
	assert.True(t, summary.CompletedAt.Equal(startedAt.Add(time.Minute)))
	assert.Equal(t, "ship it now", report.Synthesis)
	assert.Equal(t, 2, report.Consensus.WinnerVotes())
}

func TestStoreListAndStats(t *testing.T) {
	t.Parallel()

	store := openStore(t)
	ctx := context.Background()
	beginSession(t, store, "old", startedAt)
	beginSession(t, store, "new", startedAt.Add(time.Hour))
	require.NoError(t, store.RecordFailure(ctx, "new", "provider timeout"))

	summaries, err := store.ListSessions(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, domain.SessionID("new"), summaries[0].ID)
	assert.Equal(t, domain.SessionFailed, summaries[0].Status)
	assert.Equal(t, "provider timeout", summaries[0].FailureReason)
	assert.Equal(t, domain.SessionActive, summaries[1].Status)

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Stats{Total: 2, Active: 1, Failed: 1}, stats)
}

func TestStoreUnknownSession(t *testing.T) {
	t.Parallel()

	store := openStore(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		write func() error
	}{
		{name: "round", write: func() error {
			return store.RecordRound(ctx, "missing", domain.AgentOutput{Participant: "Alpha"})
		}},
		{name: "exchange", write: func() error {
			return store.RecordExchange(ctx, "missing", domain.DebateRoundRecord{Round: 1})
		}},
		{name: "phase summary", write: func() error {
			return store.RecordPhaseSummary(ctx, "missing", domain.PhaseSummary{Phase: domain.PhaseResearch})
		}},
		{name: "failure", write: func() error {
			return store.RecordFailure(ctx, "missing", "boom")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.write(), domain.ErrSessionNotFound)
		})
	}

	_, _, err := store.GetSession(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestStoreReopenKeepsHistory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	first, err := Open(ctx, Config{Path: path, Logger: zerolog.Nop()})
	require.NoError(t, err)
	beginSession(t, first, "s-1", startedAt)
	require.NoError(t, first.Close())

	second, err := Open(ctx, Config{Path: path, Logger: zerolog.Nop()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	summaries, err := second.ListSessions(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "Scale the lab", summaries[0].Topic)
}
