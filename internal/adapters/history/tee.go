// Package history combines the configured history backends.
package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/boardroom/internal/domain"
	"github.com/bnema/boardroom/internal/ports"
)

type NamedSink struct {
	Name string
	Sink ports.HistorySink
}

// Tee forwards every write to all sinks, in order. A failing sink does not
// stop the others; the failures come back joined.
type Tee struct {
	sinks []NamedSink
}

var _ ports.HistorySink = (*Tee)(nil)

func NewTee(sinks ...NamedSink) *Tee {
	kept := make([]NamedSink, 0, len(sinks))
	for _, sink := range sinks {
		if sink.Sink != nil {
			kept = append(kept, sink)
		}
	}
	return &Tee{sinks: kept}
}

func (t *Tee) Len() int {
	return len(t.sinks)
}

func (t *Tee) BeginSession(ctx context.Context, session domain.Session) error {
	return t.each(func(sink ports.HistorySink) error {
		return sink.BeginSession(ctx, session)
	})
}

func (t *Tee) RecordRound(ctx context.Context, id domain.SessionID, output domain.AgentOutput) error {
	return t.each(func(sink ports.HistorySink) error {
		return sink.RecordRound(ctx, id, output)
	})
}

func (t *Tee) RecordExchange(ctx context.Context, id domain.SessionID, record domain.DebateRoundRecord) error {
	return t.each(func(sink ports.HistorySink) error {
		return sink.RecordExchange(ctx, id, record)
	})
}

func (t *Tee) RecordPhaseSummary(ctx context.Context, id domain.SessionID, summary domain.PhaseSummary) error {
	return t.each(func(sink ports.HistorySink) error {
		return sink.RecordPhaseSummary(ctx, id, summary)
	})
}

func (t *Tee) RecordFinalReport(ctx context.Context, id domain.SessionID, report domain.FinalReport) error {
	return t.each(func(sink ports.HistorySink) error {
		return sink.RecordFinalReport(ctx, id, report)
	})
}

func (t *Tee) RecordFailure(ctx context.Context, id domain.SessionID, reason string) error {
	return t.each(func(sink ports.HistorySink) error {
		return sink.RecordFailure(ctx, id, reason)
	})
}

func (t *Tee) each(fn func(ports.HistorySink) error) error {
	var errs []error
	for _, sink := range t.sinks {
		if err := fn(sink.Sink); err != nil {
			errs = append(errs, fmt.Errorf("%s history: %w", sink.Name, err))
		}
	}
	return errors.Join(errs...)
}
