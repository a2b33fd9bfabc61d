package event

import (
	"context"

	domain "clubroll/internal/domain/event"
)

// Store persists Event state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Event, error)
	Save(ctx context.Context, value domain.Event) error
	Delete(ctx context.Context, id string) error
	ListByTeamID(ctx context.Context, teamID string) ([]domain.Event, error)
}
