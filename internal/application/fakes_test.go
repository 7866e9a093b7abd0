package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/bnema/boardroom/internal/domain"
	"github.com/bnema/boardroom/internal/ports"
	"github.com/stretchr/testify/mock"
)

type scriptedProvider struct {
	mu     sync.Mutex
	calls  []ports.JudgmentRequest
	reply  func(ctx context.Context, req ports.JudgmentRequest) (string, error)
	ballot func(ctx context.Context, req ports.JudgmentRequest) (domain.Ballot, error)
}

func (p *scriptedProvider) Generate(ctx context.Context, req ports.JudgmentRequest) (string, error) {
	p.record(req)
	if p.reply != nil {
		return p.reply(ctx, req)
	}
	return defaultReply(req), nil
}

func (p *scriptedProvider) CastBallot(ctx context.Context, req ports.JudgmentRequest) (domain.Ballot, error) {
	p.record(req)
	if p.ballot != nil {
		return p.ballot(ctx, req)
	}
	return domain.Ballot{Target: req.Participant.Name, Rationale: "my own plan"}, nil
}

func (p *scriptedProvider) record(req ports.JudgmentRequest) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.calls = append(p.calls, req)
}

func (p *scriptedProvider) callsFor(phase domain.Phase) []ports.JudgmentRequest {
	p.mu.Lock()
	defer p.mu.Unlock()

	var out []ports.JudgmentRequest
	for _, call := range p.calls {
		if call.Phase == phase {
			out = append(out, call)
		}
	}
	return out
}

// textOnlyProvider hides CastBallot so votes go through free text.
type textOnlyProvider struct {
	p *scriptedProvider
}

func (t textOnlyProvider) Generate(ctx context.Context, req ports.JudgmentRequest) (string, error) {
	return t.p.Generate(ctx, req)
}

func defaultReply(req ports.JudgmentRequest) string {
	switch req.Phase {
	case domain.PhaseCrossExamination:
		return fmt.Sprintf("%s speaking in round %d", req.Participant.Name, req.Round)
	default:
		return fmt.Sprintf("%s %s", req.Participant.Name, req.Phase)
	}
}

func ballotFor(targets map[int]map[domain.ParticipantName]domain.ParticipantName) func(context.Context, ports.JudgmentRequest) (domain.Ballot, error) {
	return func(_ context.Context, req ports.JudgmentRequest) (domain.Ballot, error) {
		target := targets[req.Iteration][req.Participant.Name]
		return domain.Ballot{Target: target, Rationale: "strongest plan"}, nil
	}
}

type memorySink struct {
	mu        sync.Mutex
	sessions  []domain.Session
	outputs   []domain.AgentOutput
	exchanges []domain.DebateRoundRecord
	summaries []domain.PhaseSummary
	reports   []domain.FinalReport
	failures  []string
}

func (s *memorySink) BeginSession(_ context.Context, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = append(s.sessions, session)
	return nil
}

func (s *memorySink) RecordRound(_ context.Context, _ domain.SessionID, output domain.AgentOutput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outputs = append(s.outputs, output)
	return nil
}

func (s *memorySink) RecordExchange(_ context.Context, _ domain.SessionID, record domain.DebateRoundRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exchanges = append(s.exchanges, record)
	return nil
}

func (s *memorySink) RecordPhaseSummary(_ context.Context, _ domain.SessionID, summary domain.PhaseSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summaries = append(s.summaries, summary)
	return nil
}

func (s *memorySink) RecordFinalReport(_ context.Context, _ domain.SessionID, report domain.FinalReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = append(s.reports, report)
	return nil
}

func (s *memorySink) RecordFailure(_ context.Context, _ domain.SessionID, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, reason)
	return nil
}

func (s *memorySink) summary(phase domain.Phase, iteration int) (domain.PhaseSummary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, summary := range s.summaries {
		if summary.Phase == phase && summary.Iteration == iteration {
			return summary, true
		}
	}
	return domain.PhaseSummary{}, false
}

func panelOf(names ...string) []domain.Participant {
	participants := make([]domain.Participant, 0, len(names))
	for _, name := range names {
		participants = append(participants, domain.Participant{Name: domain.ParticipantName(name), Specialty: name + " studies"})
	}
	return participants
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.MaxParallel = 4
	return cfg
}

func mockAnyContext() interface{} {
	return mock.Anything
}
