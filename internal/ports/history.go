package ports

import (
	"context"

	"github.com/bnema/boardroom/internal/domain"
)

type HistorySink interface {
	BeginSession(ctx context.Context, session domain.Session) error
	RecordRound(ctx context.Context, id domain.SessionID, output domain.AgentOutput) error
	RecordExchange(ctx context.Context, id domain.SessionID, record domain.DebateRoundRecord) error
	RecordPhaseSummary(ctx context.Context, id domain.SessionID, summary domain.PhaseSummary) error
	RecordFinalReport(ctx context.Context, id domain.SessionID, report domain.FinalReport) error
	RecordFailure(ctx context.Context, id domain.SessionID, reason string) error
}

type SessionRepository interface {
	ListSessions(ctx context.Context) ([]domain.SessionSummary, error)
	GetSession(ctx context.Context, id domain.SessionID) (domain.SessionSummary, domain.FinalReport, error)
	Stats(ctx context.Context) (domain.Stats, error)
}
