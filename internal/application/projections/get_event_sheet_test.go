package projections

import (
	"context"
	"errors"
	"testing"

	"clubroll/internal/domain/attendance"
	"clubroll/internal/domain/event"
	"clubroll/internal/domain/player"
)

// mockSheetEventStore implements EventSheetEventStore for testing.
type mockSheetEventStore struct {
	events map[string]event.Event
}

// GetByID implements EventSheetEventStore for testing.
// PRE: id is non-empty
// POST: Returns the stored event or an error
func (m *mockSheetEventStore) GetByID(_ context.Context, id string) (event.Event, error) {
	e, ok := m.events[id]
	if !ok {
		return event.Event{}, errors.New("event not found")
	}
	return e, nil
}

// mockSheetAttendanceStore implements EventSheetAttendanceStore for testing.
type mockSheetAttendanceStore struct {
	records map[string][]attendance.Record
}

// ListByEventID implements EventSheetAttendanceStore for testing.
// PRE: eventID is non-empty
// POST: Returns the stored records
func (m *mockSheetAttendanceStore) ListByEventID(_ context.Context, eventID string) ([]attendance.Record, error) {
	return m.records[eventID], nil
}

// TestQueryGetEventSheet_DefaultsPresent verifies unrecorded players get
// a present draft while saved records keep their state.
func TestQueryGetEventSheet_DefaultsPresent(t *testing.T) {
	deps := GetEventSheetDeps{
		EventStore: &mockSheetEventStore{events: map[string]event.Event{
			"e1": {ID: "e1", TeamID: "t1", Category: "training", Date: "2024-01-10", Venue: "Tang"},
		}},
		PlayerStore: &mockPlayerStore{players: map[string][]player.Player{
			"t1": {
				{ID: "p2", TeamID: "t1", Name: "Bob"},
				{ID: "p1", TeamID: "t1", Name: "Alice"},
			},
		}},
		AttendanceStore: &mockSheetAttendanceStore{records: map[string][]attendance.Record{
			"e1": {
				{ID: "a1", EventID: "e1", PlayerID: "p2", Status: "absent", Reason: "Work"},
			},
		}},
	}

	result, err := QueryGetEventSheet(context.Background(), GetEventSheetQuery{EventID: "e1"}, deps)
	if err != nil {
		t.Fatalf("QueryGetEventSheet failed: %v", err)
	}

	if result.Venue != "Tang" || result.Category != "Training" {
		t.Errorf("event header = %q/%q, want Training/Tang", result.Category, result.Venue)
	}
	if len(result.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(result.Entries))
	}

	alice := result.Entries[0]
	if alice.PlayerName != "Alice" || alice.Status != attendance.StatusPresent || alice.Recorded {
		t.Errorf("unrecorded entry = %+v, want present draft", alice)
	}

	bob := result.Entries[1]
	if bob.Status != "absent" || bob.Reason != "Work" || !bob.Recorded {
		t.Errorf("recorded entry = %+v, want saved absent state", bob)
	}

	if len(result.SuggestedList) == 0 {
		t.Error("expected reason suggestions")
	}
}

// TestQueryGetEventSheet_UnknownEvent verifies the lookup failure path.
func TestQueryGetEventSheet_UnknownEvent(t *testing.T) {
	deps := GetEventSheetDeps{
		EventStore:      &mockSheetEventStore{},
		PlayerStore:     &mockPlayerStore{},
		AttendanceStore: &mockSheetAttendanceStore{},
	}
	if _, err := QueryGetEventSheet(context.Background(), GetEventSheetQuery{EventID: "ghost"}, deps); err == nil {
		t.Error("expected an error for an unknown event")
	}
}
