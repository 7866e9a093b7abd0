package ports

import (
	"context"

	"github.com/bnema/boardroom/internal/domain"
)

type JudgmentRequest struct {
	Participant domain.Participant
	Phase       domain.Phase
	Iteration   int
	Round       int
	Prompt      string
}

type JudgmentProvider interface {
	Generate(ctx context.Context, req JudgmentRequest) (string, error)
}

// BallotCaster is implemented by providers able to answer the voting phase
// with a structured ballot instead of free text.
type BallotCaster interface {
	CastBallot(ctx context.Context, req JudgmentRequest) (domain.Ballot, error)
}
