package player

import (
	"context"

	domain "clubroll/internal/domain/player"
)

// Store persists Player state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Player, error)
	Save(ctx context.Context, value domain.Player) error
	Delete(ctx context.Context, id string) error
	ListByTeamID(ctx context.Context, teamID string) ([]domain.Player, error)
}
