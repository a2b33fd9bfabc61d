package projections

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"clubroll/internal/domain/event"
	"clubroll/internal/domain/player"
	"clubroll/internal/domain/team"
)

// notesRenderer converts team notes written in markdown to HTML for display.
var notesRenderer = goldmark.New(
	goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
)

// TeamOverviewTeamStore defines the team store interface needed by the overview projection.
type TeamOverviewTeamStore interface {
	GetByID(ctx context.Context, id string) (team.Team, error)
}

// TeamOverviewPlayerStore defines the player store interface needed by the overview projection.
type TeamOverviewPlayerStore interface {
	ListByTeamID(ctx context.Context, teamID string) ([]player.Player, error)
}

// TeamOverviewEventStore defines the event store interface needed by the overview projection.
type TeamOverviewEventStore interface {
	ListByTeamID(ctx context.Context, teamID string) ([]event.Event, error)
}

// GetTeamOverviewQuery carries input for the team overview projection.
type GetTeamOverviewQuery struct {
	TeamID string
}

// GetTeamOverviewDeps holds dependencies for the team overview projection.
type GetTeamOverviewDeps struct {
	TeamStore   TeamOverviewTeamStore
	PlayerStore TeamOverviewPlayerStore
	EventStore  TeamOverviewEventStore
}

// OverviewEvent is one event row on the team overview.
type OverviewEvent struct {
	ID        string
	Category  string // display label, e.g. "Training"
	Date      string // YYYY-MM-DD
	Venue     string
	Result    string // W/D/L for matches, empty otherwise
	ScoreLine string // "2-10 vs 1-08" for matches, empty otherwise
}

// TeamOverviewResult carries the output of the team overview projection.
type TeamOverviewResult struct {
	TeamID      string
	TeamName    string
	Season      string
	NotesHTML   string // team notes rendered from markdown
	PlayerCount int
	Players     []player.Player
	Events      []OverviewEvent
}

// QueryGetTeamOverview assembles the team landing view: roster, event
// history with match results, and rendered notes.
func QueryGetTeamOverview(ctx context.Context, query GetTeamOverviewQuery, deps GetTeamOverviewDeps) (TeamOverviewResult, error) {
	t, err := deps.TeamStore.GetByID(ctx, query.TeamID)
	if err != nil {
		return TeamOverviewResult{}, fmt.Errorf("team lookup failed: %w", err)
	}

	players, err := deps.PlayerStore.ListByTeamID(ctx, query.TeamID)
	if err != nil {
		return TeamOverviewResult{}, err
	}

	events, err := deps.EventStore.ListByTeamID(ctx, query.TeamID)
	if err != nil {
		return TeamOverviewResult{}, err
	}

	result := TeamOverviewResult{
		TeamID:      t.ID,
		TeamName:    t.Name,
		Season:      t.Season,
		PlayerCount: len(players),
		Players:     players,
	}

	if t.Notes != "" {
		var buf bytes.Buffer
		if err := notesRenderer.Convert([]byte(t.Notes), &buf); err != nil {
			return TeamOverviewResult{}, fmt.Errorf("failed to render team notes: %w", err)
		}
		result.NotesHTML = buf.String()
	}

	for _, e := range events {
		row := OverviewEvent{
			ID:       e.ID,
			Category: event.CategoryLabel(e.Category),
			Date:     e.Date,
			Venue:    event.VenueLabel(e),
		}
		if e.IsMatch() {
			row.Result = e.Result
			row.ScoreLine = e.ScoreLine()
		}
		result.Events = append(result.Events, row)
	}

	return result, nil
}
