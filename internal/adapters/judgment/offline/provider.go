package offline

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/boardroom/internal/domain"
	"github.com/bnema/boardroom/internal/ports"
)

// Provider answers every judgment locally and deterministically. It backs
// dry runs, demos and tests that must not reach a model.
type Provider struct {
	favorite domain.ParticipantName
}

var (
	_ ports.JudgmentProvider = (*Provider)(nil)
	_ ports.BallotCaster     = (*Provider)(nil)
)

// NewProvider votes for favorite on every ballot. With no favorite each
// participant votes for itself.
func NewProvider(favorite domain.ParticipantName) *Provider {
	return &Provider{favorite: favorite}
}

func (p *Provider) Generate(ctx context.Context, req ports.JudgmentRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := req.Participant.Name
	switch req.Phase {
	case domain.PhaseCrossExamination:
		return fmt.Sprintf("%s, round %d: %s", name, req.Round, firstLine(req.Prompt)), nil
	case domain.PhaseVoting:
		return fmt.Sprintf("I vote for %s because the plan is the most complete.", p.target(req)), nil
	case domain.PhaseSynthesis:
		return fmt.Sprintf("%s synthesis after iteration %d: adopt the leading strategy and review it next quarter.", name, req.Iteration), nil
	default:
		return fmt.Sprintf("%s %s notes from a %s perspective.", name, req.Phase, specialty(req.Participant)), nil
	}
}

func (p *Provider) CastBallot(ctx context.Context, req ports.JudgmentRequest) (domain.Ballot, error) {
	if err := ctx.Err(); err != nil {
		return domain.Ballot{}, err
	}

	return domain.Ballot{
		Target:    p.target(req),
		Rationale: "the plan is the most complete",
	}, nil
}

func (p *Provider) target(req ports.JudgmentRequest) domain.ParticipantName {
	if p.favorite != "" {
		return p.favorite
	}
	return req.Participant.Name
}

func specialty(participant domain.Participant) string {
	if participant.Specialty != "" {
		return strings.ToLower(participant.Specialty)
	}
	return "general"
}

func firstLine(text string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(text), "\n")
	return line
}
