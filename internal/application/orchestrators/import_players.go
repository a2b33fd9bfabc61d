package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"clubroll/internal/domain/player"
	"clubroll/internal/domain/team"

	"github.com/google/uuid"
)

// PlayerStoreForImport defines the player store interface needed by ImportPlayers.
type PlayerStoreForImport interface {
	ListByTeamID(ctx context.Context, teamID string) ([]player.Player, error)
	Save(ctx context.Context, p player.Player) error
}

// TeamStoreForImport defines the team store interface needed by ImportPlayers.
type TeamStoreForImport interface {
	GetByID(ctx context.Context, id string) (team.Team, error)
}

// ImportPlayersInput carries input for the orchestrator. Raw holds
// pasted text with one name per line, comma or tab.
type ImportPlayersInput struct {
	TeamID string
	Raw    string
}

// ImportPlayersDeps holds dependencies for ImportPlayers.
type ImportPlayersDeps struct {
	PlayerStore PlayerStoreForImport
	TeamStore   TeamStoreForImport
}

// ImportPlayersResult summarizes an import run.
type ImportPlayersResult struct {
	Added   int
	Skipped int // duplicates, within the paste or against the roster
}

var importSplitter = regexp.MustCompile(`\r?\n|,|\t`)

// ExecuteImportPlayers bulk-adds players to a team's roster from pasted
// text. Names are whitespace-normalized and deduplicated
// case-insensitively against both the paste and the existing roster.
// PRE: TeamID refers to an existing team
// POST: Each new unique name persisted as a player; duplicates counted as skipped
func ExecuteImportPlayers(ctx context.Context, input ImportPlayersInput, deps ImportPlayersDeps) (ImportPlayersResult, error) {
	if _, err := deps.TeamStore.GetByID(ctx, input.TeamID); err != nil {
		return ImportPlayersResult{}, fmt.Errorf("team lookup failed: %w", err)
	}

	roster, err := deps.PlayerStore.ListByTeamID(ctx, input.TeamID)
	if err != nil {
		return ImportPlayersResult{}, err
	}

	seen := make(map[string]bool, len(roster))
	for _, p := range roster {
		seen[strings.ToLower(player.NormalizeName(p.Name))] = true
	}

	var result ImportPlayersResult
	for _, chunk := range importSplitter.Split(input.Raw, -1) {
		name := player.NormalizeName(chunk)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			result.Skipped++
			continue
		}

		p := player.Player{
			ID:        uuid.New().String(),
			TeamID:    input.TeamID,
			Name:      name,
			CreatedAt: time.Now(),
		}
		if err := p.Validate(); err != nil {
			return result, fmt.Errorf("player %q: %w", name, err)
		}
		if err := deps.PlayerStore.Save(ctx, p); err != nil {
			return result, err
		}
		seen[key] = true
		result.Added++
	}

	slog.Info("players_imported", "team_id", input.TeamID, "added", result.Added, "skipped", result.Skipped)
	return result, nil
}
