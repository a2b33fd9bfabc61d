package orchestrators

import (
	"context"
	"errors"
	"testing"

	"clubroll/internal/domain/attendance"
	"clubroll/internal/domain/event"
)

// mockEventGetter implements EventStoreForAttendance for testing.
type mockEventGetter struct {
	events map[string]event.Event
}

// GetByID implements EventStoreForAttendance for testing.
// PRE: id is non-empty
// POST: Returns the stored event or an error
func (m *mockEventGetter) GetByID(_ context.Context, id string) (event.Event, error) {
	e, ok := m.events[id]
	if !ok {
		return event.Event{}, errors.New("event not found")
	}
	return e, nil
}

// mockAttendanceStore implements AttendanceStoreForRecord for testing,
// keyed like the real upsert on (event, player).
type mockAttendanceStore struct {
	records map[[2]string]attendance.Record
}

// GetByEventAndPlayer implements AttendanceStoreForRecord for testing.
// PRE: eventID and playerID are non-empty
// POST: Returns the stored record or an error
func (m *mockAttendanceStore) GetByEventAndPlayer(_ context.Context, eventID, playerID string) (attendance.Record, error) {
	r, ok := m.records[[2]string{eventID, playerID}]
	if !ok {
		return attendance.Record{}, errors.New("record not found")
	}
	return r, nil
}

// Save implements AttendanceStoreForRecord for testing.
// PRE: entity has been validated and normalized
// POST: Exactly one record exists per (event, player) pair
func (m *mockAttendanceStore) Save(_ context.Context, r attendance.Record) error {
	if m.records == nil {
		m.records = make(map[[2]string]attendance.Record)
	}
	m.records[[2]string{r.EventID, r.PlayerID}] = r
	return nil
}

// TestExecuteRecordAttendance_SavesSheet verifies the sheet persists one
// record per entry with reasons cleared on present entries.
func TestExecuteRecordAttendance_SavesSheet(t *testing.T) {
	store := &mockAttendanceStore{}
	deps := RecordAttendanceDeps{
		EventStore: &mockEventGetter{events: map[string]event.Event{
			"e1": {ID: "e1", TeamID: "t1", Category: "training", Date: "2024-01-10"},
		}},
		AttendanceStore: store,
	}

	input := RecordAttendanceInput{
		EventID: "e1",
		Entries: []AttendanceEntry{
			{PlayerID: "p1", Status: "present", Reason: "stale reason"},
			{PlayerID: "p2", Status: "absent", Reason: "Work"},
		},
	}

	saved, err := ExecuteRecordAttendance(context.Background(), input, deps)
	if err != nil {
		t.Fatalf("ExecuteRecordAttendance failed: %v", err)
	}
	if saved != 2 {
		t.Errorf("saved = %d, want 2", saved)
	}

	p1 := store.records[[2]string{"e1", "p1"}]
	if p1.Reason != "" {
		t.Errorf("present entry kept reason %q", p1.Reason)
	}
	if p1.TeamID != "t1" {
		t.Errorf("record TeamID = %q, want t1 (denormalized from event)", p1.TeamID)
	}

	p2 := store.records[[2]string{"e1", "p2"}]
	if p2.Status != attendance.StatusAbsent || p2.Reason != "Work" {
		t.Errorf("absent entry = %+v, want absent/Work", p2)
	}
}

// TestExecuteRecordAttendance_EditsInPlace verifies re-submitting a
// sheet keeps the existing record ID rather than minting a new one.
func TestExecuteRecordAttendance_EditsInPlace(t *testing.T) {
	store := &mockAttendanceStore{}
	deps := RecordAttendanceDeps{
		EventStore: &mockEventGetter{events: map[string]event.Event{
			"e1": {ID: "e1", TeamID: "t1", Category: "training", Date: "2024-01-10"},
		}},
		AttendanceStore: store,
	}

	input := RecordAttendanceInput{
		EventID: "e1",
		Entries: []AttendanceEntry{{PlayerID: "p1", Status: "absent", Reason: "Work"}},
	}
	if _, err := ExecuteRecordAttendance(context.Background(), input, deps); err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	firstID := store.records[[2]string{"e1", "p1"}].ID

	input.Entries[0].Status = "present"
	if _, err := ExecuteRecordAttendance(context.Background(), input, deps); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	if len(store.records) != 1 {
		t.Fatalf("record count = %d, want 1", len(store.records))
	}
	second := store.records[[2]string{"e1", "p1"}]
	if second.ID != firstID {
		t.Errorf("record ID changed on edit: %q -> %q", firstID, second.ID)
	}
	if second.Status != attendance.StatusPresent || second.Reason != "" {
		t.Errorf("edited record = %+v, want present with no reason", second)
	}
}

// TestExecuteRecordAttendance_RejectsBadStatus verifies non-canonical
// statuses are refused rather than stored.
func TestExecuteRecordAttendance_RejectsBadStatus(t *testing.T) {
	deps := RecordAttendanceDeps{
		EventStore: &mockEventGetter{events: map[string]event.Event{
			"e1": {ID: "e1", TeamID: "t1"},
		}},
		AttendanceStore: &mockAttendanceStore{},
	}

	input := RecordAttendanceInput{
		EventID: "e1",
		Entries: []AttendanceEntry{{PlayerID: "p1", Status: "late"}},
	}
	if _, err := ExecuteRecordAttendance(context.Background(), input, deps); err == nil {
		t.Error("expected an error for a non-canonical status")
	}
}
