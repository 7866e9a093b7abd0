package history

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/boardroom/internal/domain"
	"github.com/bnema/boardroom/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTeeForwardsToEverySink(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	first := mocks.NewMockHistorySink(t)
	second := mocks.NewMockHistorySink(t)
	session := domain.Session{ID: "s-1", Topic: "topic"}
	output := domain.AgentOutput{Participant: "Alpha", Phase: domain.PhaseResearch}

	for _, sink := range []*mocks.MockHistorySink{first, second} {
		sink.EXPECT().BeginSession(ctx, session).Return(nil).Once()
		sink.EXPECT().RecordRound(ctx, domain.SessionID("s-1"), output).Return(nil).Once()
		sink.EXPECT().RecordFailure(ctx, domain.SessionID("s-1"), "boom").Return(nil).Once()
	}

	tee := NewTee(NamedSink{Name: "file", Sink: first}, NamedSink{Name: "sqlite", Sink: second}, NamedSink{Name: "none"})
	assert.Equal(t, 2, tee.Len())

	require.NoError(t, tee.BeginSession(ctx, session))
	require.NoError(t, tee.RecordRound(ctx, "s-1", output))
	require.NoError(t, tee.RecordFailure(ctx, "s-1", "boom"))
}

func TestTeeJoinsFailures(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	broken := errors.New("disk full")
	first := mocks.NewMockHistorySink(t)
	second := mocks.NewMockHistorySink(t)

	first.EXPECT().RecordPhaseSummary(ctx, domain.SessionID("s-1"), mock.Anything).Return(broken).Once()
	second.EXPECT().RecordPhaseSummary(ctx, domain.SessionID("s-1"), mock.Anything).Return(nil).Once()

	tee := NewTee(NamedSink{Name: "file", Sink: first}, NamedSink{Name: "sqlite", Sink: second})
	err := tee.RecordPhaseSummary(ctx, "s-1", domain.PhaseSummary{Phase: domain.PhaseVoting})

	require.ErrorIs(t, err, broken)
	assert.Contains(t, err.Error(), "file history: disk full")
}

func TestEmptyTee(t *testing.T) {
	t.Parallel()

	tee := NewTee()
	require.NoError(t, tee.RecordFinalReport(context.Background(), "s-1", domain.FinalReport{}))
}
