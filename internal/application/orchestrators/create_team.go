package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"clubroll/internal/domain/team"

	"github.com/google/uuid"
)

// TeamStoreForCreate defines the store interface needed by CreateTeam.
type TeamStoreForCreate interface {
	Save(ctx context.Context, t team.Team) error
	SaveMembership(ctx context.Context, m team.Membership) error
}

// CreateTeamInput carries input for the orchestrator.
type CreateTeamInput struct {
	Name      string
	Season    string
	Notes     string
	CreatorID string // account that becomes the team's first admin
}

// CreateTeamDeps holds dependencies for CreateTeam.
type CreateTeamDeps struct {
	TeamStore TeamStoreForCreate
}

// ExecuteCreateTeam creates a team and enrolls its creator as team admin.
// PRE: Input has a non-empty name and creator account ID
// POST: Team persisted; creator holds an admin membership
func ExecuteCreateTeam(ctx context.Context, input CreateTeamInput, deps CreateTeamDeps) (string, error) {
	t := team.Team{
		ID:        uuid.New().String(),
		Name:      input.Name,
		Season:    input.Season,
		Notes:     input.Notes,
		CreatedAt: time.Now(),
	}
	if err := t.Validate(); err != nil {
		return "", err
	}

	m := team.Membership{
		TeamID:    t.ID,
		AccountID: input.CreatorID,
		Role:      team.RoleAdmin,
		CreatedAt: time.Now(),
	}
	if err := m.Validate(); err != nil {
		return "", err
	}

	if err := deps.TeamStore.Save(ctx, t); err != nil {
		return "", err
	}
	if err := deps.TeamStore.SaveMembership(ctx, m); err != nil {
		return "", err
	}

	slog.Info("team_created", "team_id", t.ID, "name", t.Name, "creator", input.CreatorID)
	return t.ID, nil
}
