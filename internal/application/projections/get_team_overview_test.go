package projections

import (
	"context"
	"strings"
	"testing"

	"clubroll/internal/domain/event"
	"clubroll/internal/domain/player"
	"clubroll/internal/domain/team"
)

// TestQueryGetTeamOverview verifies notes rendering and match rows.
func TestQueryGetTeamOverview(t *testing.T) {
	deps := GetTeamOverviewDeps{
		TeamStore: &mockTeamStore{teams: map[string]team.Team{
			"t1": {ID: "t1", Name: "Tang A", Season: "2024", Notes: "**Train hard**"},
		}},
		PlayerStore: &mockPlayerStore{players: map[string][]player.Player{
			"t1": {{ID: "p1", TeamID: "t1", Name: "Alice"}},
		}},
		EventStore: &mockEventStore{events: map[string][]event.Event{
			"t1": {
				{ID: "e1", TeamID: "t1", Category: "training", Date: "2024-01-10", Venue: "Tang"},
				{ID: "e2", TeamID: "t1", Category: "match", Date: "2024-01-17", Venue: "Maryland",
					Opposition: "St. Brigid's", TeamGoals: 2, TeamPoints: 4, OppGoals: 1, OppPoints: 2, Result: "W"},
			},
		}},
	}

	result, err := QueryGetTeamOverview(context.Background(), GetTeamOverviewQuery{TeamID: "t1"}, deps)
	if err != nil {
		t.Fatalf("QueryGetTeamOverview failed: %v", err)
	}

	if result.PlayerCount != 1 {
		t.Errorf("PlayerCount = %d, want 1", result.PlayerCount)
	}
	if !strings.Contains(result.NotesHTML, "<strong>Train hard</strong>") {
		t.Errorf("NotesHTML = %q, want rendered markdown", result.NotesHTML)
	}

	if len(result.Events) != 2 {
		t.Fatalf("events = %d, want 2", len(result.Events))
	}
	training := result.Events[0]
	if training.Category != "Training" || training.Result != "" {
		t.Errorf("training row = %+v, want no result", training)
	}
	match := result.Events[1]
	if match.Result != "W" || match.ScoreLine != "2-4 vs 1-2" {
		t.Errorf("match row = %+v, want W 2-4 vs 1-2", match)
	}
}
