package team

import (
	"context"

	domain "clubroll/internal/domain/team"
)

// Store persists Team and Membership state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Team, error)
	Save(ctx context.Context, value domain.Team) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Team, error)
	ListByAccountID(ctx context.Context, accountID string) ([]domain.Team, error)

	SaveMembership(ctx context.Context, m domain.Membership) error
	DeleteMembership(ctx context.Context, teamID, accountID string) error
	GetMembership(ctx context.Context, teamID, accountID string) (domain.Membership, error)
	ListMemberships(ctx context.Context, teamID string) ([]domain.Membership, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Limit  int
	Offset int
}
