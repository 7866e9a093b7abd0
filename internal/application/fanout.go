package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/boardroom/internal/domain"
	"github.com/bnema/boardroom/internal/ports"
	"golang.org/x/sync/errgroup"
)

// fanOut runs n jobs concurrently and waits for all of them. The first
// failure cancels the context handed to the remaining jobs.
func fanOut(ctx context.Context, limit int, n int, job func(ctx context.Context, i int) error) error {
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return job(gctx, i)
		})
	}

	return g.Wait()
}

func generate(ctx context.Context, provider ports.JudgmentProvider, req ports.JudgmentRequest) (string, error) {
	text, err := provider.Generate(ctx, req)
	if err != nil {
		return "", asProviderError(ctx, req, err)
	}
	return text, nil
}

func castBallot(ctx context.Context, caster ports.BallotCaster, req ports.JudgmentRequest) (domain.Ballot, error) {
	ballot, err := caster.CastBallot(ctx, req)
	if err != nil {
		return domain.Ballot{}, asProviderError(ctx, req, err)
	}
	return ballot, nil
}

// asProviderError blames the provider only while ctx is live. Once the run
// is cancelled the failure is reported as the context error.
func asProviderError(ctx context.Context, req ports.JudgmentRequest, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(err, ctxErr) {
			return err
		}
		return fmt.Errorf("%w: %v", ctxErr, err)
	}
	var providerErr *domain.ProviderError
	if errors.As(err, &providerErr) {
		return err
	}
	return &domain.ProviderError{Participant: req.Participant.Name, Phase: req.Phase, Err: err}
}
