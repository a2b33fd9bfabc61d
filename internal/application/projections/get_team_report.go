package projections

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"clubroll/internal/domain/attendance"
	"clubroll/internal/domain/event"
	"clubroll/internal/domain/player"
	"clubroll/internal/domain/report"
	"clubroll/internal/domain/team"
)

// TeamReportTeamStore defines the team store interface needed by the report projection.
type TeamReportTeamStore interface {
	GetByID(ctx context.Context, id string) (team.Team, error)
}

// TeamReportPlayerStore defines the player store interface needed by the report projection.
type TeamReportPlayerStore interface {
	ListByTeamID(ctx context.Context, teamID string) ([]player.Player, error)
}

// TeamReportEventStore defines the event store interface needed by the report projection.
type TeamReportEventStore interface {
	ListByTeamID(ctx context.Context, teamID string) ([]event.Event, error)
}

// TeamReportAttendanceStore defines the attendance store interface needed by the report projection.
type TeamReportAttendanceStore interface {
	ListByTeamID(ctx context.Context, teamID string) ([]attendance.Record, error)
}

// GetTeamReportQuery carries input for the team report projection.
type GetTeamReportQuery struct {
	TeamID string
}

// GetTeamReportDeps holds dependencies for the team report projection.
type GetTeamReportDeps struct {
	TeamStore       TeamReportTeamStore
	PlayerStore     TeamReportPlayerStore
	EventStore      TeamReportEventStore
	AttendanceStore TeamReportAttendanceStore
}

// TeamReportResult carries the output of the team report projection.
type TeamReportResult struct {
	TeamID   string
	TeamName string
	Matrix   report.RowSet
	Reasons  report.RowSet
}

// Sheets returns the report sheets in workbook order.
func (r TeamReportResult) Sheets() []report.RowSet {
	return []report.RowSet{r.Matrix, r.Reasons}
}

// QueryGetTeamReport assembles the attendance matrix and reasons-missing
// reports for a team from its roster, event history, and attendance records.
// PRE: query.TeamID is non-empty
// POST: Result sheets cover every rostered player and every event, or a
// descriptive error says what was missing
func QueryGetTeamReport(ctx context.Context, query GetTeamReportQuery, deps GetTeamReportDeps) (TeamReportResult, error) {
	t, err := deps.TeamStore.GetByID(ctx, query.TeamID)
	if err != nil {
		return TeamReportResult{}, fmt.Errorf("team lookup failed: %w", err)
	}

	players, err := deps.PlayerStore.ListByTeamID(ctx, query.TeamID)
	if err != nil {
		return TeamReportResult{}, err
	}

	events, err := deps.EventStore.ListByTeamID(ctx, query.TeamID)
	if err != nil {
		return TeamReportResult{}, err
	}

	records, err := deps.AttendanceStore.ListByTeamID(ctx, query.TeamID)
	if err != nil {
		return TeamReportResult{}, err
	}

	// Column order is chronological, row order alphabetical regardless of
	// how the stores happen to return things.
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Date != events[j].Date {
			return events[i].Date < events[j].Date
		}
		return events[i].CreatedAt.Before(events[j].CreatedAt)
	})
	sort.SliceStable(players, func(i, j int) bool {
		return strings.ToLower(players[i].Name) < strings.ToLower(players[j].Name)
	})

	idx := report.BuildIndex(records)

	matrix, err := report.BuildMatrix(players, events, idx)
	if err != nil {
		return TeamReportResult{}, err
	}
	reasons := report.BuildReasons(players, records)

	return TeamReportResult{
		TeamID:   t.ID,
		TeamName: t.Name,
		Matrix:   matrix,
		Reasons:  reasons,
	}, nil
}
