package attendance

import (
	"context"

	domain "clubroll/internal/domain/attendance"
)

// Store persists attendance Record state. Save upserts on the
// (event, player) composite key, which is what keeps the at-most-one-
// record-per-pair invariant.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Record, error)
	GetByEventAndPlayer(ctx context.Context, eventID, playerID string) (domain.Record, error)
	Save(ctx context.Context, value domain.Record) error
	Delete(ctx context.Context, id string) error
	ListByEventID(ctx context.Context, eventID string) ([]domain.Record, error)
	ListByTeamID(ctx context.Context, teamID string) ([]domain.Record, error)
}
