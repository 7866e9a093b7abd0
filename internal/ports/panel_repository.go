package ports

import (
	"context"

	"github.com/bnema/boardroom/internal/domain"
)

type PanelRepository interface {
	Load(ctx context.Context) ([]domain.Participant, error)
	Save(ctx context.Context, participants []domain.Participant) error
}
