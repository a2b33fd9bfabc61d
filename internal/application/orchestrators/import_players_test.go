package orchestrators

import (
	"context"
	"errors"
	"testing"

	"clubroll/internal/domain/player"
	"clubroll/internal/domain/team"
)

// mockPlayerStore implements PlayerStoreForImport for testing.
type mockPlayerStore struct {
	players []player.Player
}

// ListByTeamID implements PlayerStoreForImport for testing.
// PRE: teamID is non-empty
// POST: Returns stored players for the team
func (m *mockPlayerStore) ListByTeamID(_ context.Context, teamID string) ([]player.Player, error) {
	var out []player.Player
	for _, p := range m.players {
		if p.TeamID == teamID {
			out = append(out, p)
		}
	}
	return out, nil
}

// Save implements PlayerStoreForImport for testing.
// PRE: entity has been validated
// POST: Entity is persisted
func (m *mockPlayerStore) Save(_ context.Context, p player.Player) error {
	m.players = append(m.players, p)
	return nil
}

// mockTeamGetter implements the team lookup interfaces for testing.
type mockTeamGetter struct {
	teams map[string]team.Team
}

// GetByID implements TeamStoreForImport for testing.
// PRE: id is non-empty
// POST: Returns the stored team or an error
func (m *mockTeamGetter) GetByID(_ context.Context, id string) (team.Team, error) {
	t, ok := m.teams[id]
	if !ok {
		return team.Team{}, errors.New("team not found")
	}
	return t, nil
}

// TestExecuteImportPlayers_SplitAndDedupe verifies the paste is split on
// newlines, commas and tabs, normalized, and deduplicated.
func TestExecuteImportPlayers_SplitAndDedupe(t *testing.T) {
	store := &mockPlayerStore{players: []player.Player{
		{ID: "p0", TeamID: "t1", Name: "Existing Player"},
	}}
	deps := ImportPlayersDeps{
		PlayerStore: store,
		TeamStore:   &mockTeamGetter{teams: map[string]team.Team{"t1": {ID: "t1", Name: "Tang A"}}},
	}

	raw := "Alice Byrne\nbob murphy,  Cara  Daly \tAlice   Byrne\r\nEXISTING player\n\n"
	result, err := ExecuteImportPlayers(context.Background(), ImportPlayersInput{TeamID: "t1", Raw: raw}, deps)
	if err != nil {
		t.Fatalf("ExecuteImportPlayers failed: %v", err)
	}

	if result.Added != 3 {
		t.Errorf("Added = %d, want 3", result.Added)
	}
	if result.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2 (duplicate paste entry + roster match)", result.Skipped)
	}

	// Names were normalized before saving.
	names := make(map[string]bool)
	for _, p := range store.players {
		names[p.Name] = true
	}
	for _, want := range []string{"Alice Byrne", "bob murphy", "Cara Daly"} {
		if !names[want] {
			t.Errorf("player %q not saved; roster = %v", want, names)
		}
	}
}

// TestExecuteImportPlayers_UnknownTeam verifies the team lookup guard.
func TestExecuteImportPlayers_UnknownTeam(t *testing.T) {
	deps := ImportPlayersDeps{
		PlayerStore: &mockPlayerStore{},
		TeamStore:   &mockTeamGetter{},
	}
	if _, err := ExecuteImportPlayers(context.Background(), ImportPlayersInput{TeamID: "ghost", Raw: "Alice"}, deps); err == nil {
		t.Error("expected an error for an unknown team")
	}
}
