package application

import (
	"context"

	"github.com/bnema/boardroom/internal/domain"
	"github.com/bnema/boardroom/internal/ports"
	"github.com/rs/zerolog"
)

// historyRecorder is the boundary between the deliberation and its history
// sink. Sink failures are logged as persistence errors and never returned.
type historyRecorder struct {
	sink    ports.HistorySink
	id      domain.SessionID
	logger  zerolog.Logger
	onError func(error)
}

func (h historyRecorder) beginSession(ctx context.Context, session domain.Session) {
	h.write(ctx, "begin session", func(ctx context.Context) error {
		return h.sink.BeginSession(ctx, session)
	})
}

func (h historyRecorder) round(ctx context.Context, output domain.AgentOutput) {
	h.write(ctx, "record round", func(ctx context.Context) error {
		return h.sink.RecordRound(ctx, h.id, output)
	})
}

func (h historyRecorder) exchange(ctx context.Context, record domain.DebateRoundRecord) {
	h.write(ctx, "record exchange", func(ctx context.Context) error {
		return h.sink.RecordExchange(ctx, h.id, record)
	})
}

func (h historyRecorder) phaseSummary(ctx context.Context, summary domain.PhaseSummary) {
	h.write(ctx, "record phase summary", func(ctx context.Context) error {
		return h.sink.RecordPhaseSummary(ctx, h.id, summary)
	})
}

func (h historyRecorder) finalReport(ctx context.Context, report domain.FinalReport) {
	h.write(ctx, "record final report", func(ctx context.Context) error {
		return h.sink.RecordFinalReport(ctx, h.id, report)
	})
}

func (h historyRecorder) failure(ctx context.Context, reason string) {
	h.write(ctx, "record failure", func(ctx context.Context) error {
		return h.sink.RecordFailure(ctx, h.id, reason)
	})
}

func (h historyRecorder) write(ctx context.Context, op string, fn func(context.Context) error) {
	if h.sink == nil {
		return
	}

	err := fn(ctx)
	if err == nil {
		return
	}

	persistErr := &domain.PersistenceError{Op: op, Err: err}
	h.logger.Warn().Err(persistErr).Str("session_id", string(h.id)).Msg("history write failed")
	if h.onError != nil {
		h.onError(persistErr)
	}
}
