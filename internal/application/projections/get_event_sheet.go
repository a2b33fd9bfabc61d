package projections

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"clubroll/internal/domain/attendance"
	"clubroll/internal/domain/event"
	"clubroll/internal/domain/player"
)

// EventSheetEventStore defines the event store interface needed by the sheet projection.
type EventSheetEventStore interface {
	GetByID(ctx context.Context, id string) (event.Event, error)
}

// EventSheetPlayerStore defines the player store interface needed by the sheet projection.
type EventSheetPlayerStore interface {
	ListByTeamID(ctx context.Context, teamID string) ([]player.Player, error)
}

// EventSheetAttendanceStore defines the attendance store interface needed by the sheet projection.
type EventSheetAttendanceStore interface {
	ListByEventID(ctx context.Context, eventID string) ([]attendance.Record, error)
}

// GetEventSheetQuery carries input for the event sheet projection.
type GetEventSheetQuery struct {
	EventID string
}

// GetEventSheetDeps holds dependencies for the event sheet projection.
type GetEventSheetDeps struct {
	EventStore      EventSheetEventStore
	PlayerStore     EventSheetPlayerStore
	AttendanceStore EventSheetAttendanceStore
}

// SheetEntry is one editable row on the event attendance sheet.
type SheetEntry struct {
	PlayerID   string
	PlayerName string
	Status     string
	Reason     string
	Recorded   bool // true when a saved record backs this entry
}

// EventSheetResult carries the output of the event sheet projection.
type EventSheetResult struct {
	EventID       string
	TeamID        string
	Category      string
	Date          string // YYYY-MM-DD
	Venue         string
	Entries       []SheetEntry
	SuggestedList []string // reason suggestions for the absence dropdown
}

// QueryGetEventSheet builds the attendance sheet for an event: every
// rostered player gets an entry, defaulting to present when no record
// has been saved yet.
func QueryGetEventSheet(ctx context.Context, query GetEventSheetQuery, deps GetEventSheetDeps) (EventSheetResult, error) {
	e, err := deps.EventStore.GetByID(ctx, query.EventID)
	if err != nil {
		return EventSheetResult{}, fmt.Errorf("event lookup failed: %w", err)
	}

	players, err := deps.PlayerStore.ListByTeamID(ctx, e.TeamID)
	if err != nil {
		return EventSheetResult{}, err
	}
	sort.SliceStable(players, func(i, j int) bool {
		return strings.ToLower(players[i].Name) < strings.ToLower(players[j].Name)
	})

	records, err := deps.AttendanceStore.ListByEventID(ctx, query.EventID)
	if err != nil {
		return EventSheetResult{}, err
	}

	byPlayer := make(map[string]attendance.Record, len(records))
	for _, r := range records {
		byPlayer[r.PlayerID] = r
	}

	result := EventSheetResult{
		EventID:       e.ID,
		TeamID:        e.TeamID,
		Category:      event.CategoryLabel(e.Category),
		Date:          e.Date,
		Venue:         event.VenueLabel(e),
		SuggestedList: attendance.SuggestedReasons,
	}

	for _, p := range players {
		entry := SheetEntry{
			PlayerID:   p.ID,
			PlayerName: p.Name,
			Status:     attendance.StatusPresent,
		}
		if r, ok := byPlayer[p.ID]; ok {
			entry.Status = r.Status
			entry.Reason = r.Reason
			entry.Recorded = true
		}
		result.Entries = append(result.Entries, entry)
	}

	return result, nil
}
