package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"clubroll/internal/domain/attendance"
	"clubroll/internal/domain/event"

	"github.com/google/uuid"
)

// EventStoreForAttendance defines the event store interface needed by RecordAttendance.
type EventStoreForAttendance interface {
	GetByID(ctx context.Context, id string) (event.Event, error)
}

// AttendanceStoreForRecord defines the attendance store interface needed by RecordAttendance.
type AttendanceStoreForRecord interface {
	GetByEventAndPlayer(ctx context.Context, eventID, playerID string) (attendance.Record, error)
	Save(ctx context.Context, r attendance.Record) error
}

// AttendanceEntry is one player's status on a submitted sheet.
type AttendanceEntry struct {
	PlayerID string
	Status   string
	Reason   string
}

// RecordAttendanceInput carries input for the orchestrator.
type RecordAttendanceInput struct {
	EventID string
	Entries []AttendanceEntry
}

// RecordAttendanceDeps holds dependencies for RecordAttendance.
type RecordAttendanceDeps struct {
	EventStore      EventStoreForAttendance
	AttendanceStore AttendanceStoreForRecord
}

// ExecuteRecordAttendance saves an event's attendance sheet. Each entry
// upserts the record for its (event, player) pair, so re-submitting a
// sheet edits in place rather than duplicating.
// PRE: EventID refers to an existing event
// POST: One record per submitted entry; reasons cleared on present entries
// INVARIANT: At most one record exists per (event, player) pair
func ExecuteRecordAttendance(ctx context.Context, input RecordAttendanceInput, deps RecordAttendanceDeps) (int, error) {
	e, err := deps.EventStore.GetByID(ctx, input.EventID)
	if err != nil {
		return 0, fmt.Errorf("event lookup failed: %w", err)
	}

	saved := 0
	for _, entry := range input.Entries {
		r := attendance.Record{
			EventID:   e.ID,
			TeamID:    e.TeamID,
			PlayerID:  entry.PlayerID,
			Status:    entry.Status,
			Reason:    entry.Reason,
			UpdatedAt: time.Now(),
		}

		// Keep the existing record's ID when one is already saved so the
		// upsert edits rather than inserts under a fresh key.
		if existing, err := deps.AttendanceStore.GetByEventAndPlayer(ctx, e.ID, entry.PlayerID); err == nil {
			r.ID = existing.ID
		} else {
			r.ID = uuid.New().String()
		}

		r.Normalize()
		if err := r.Validate(); err != nil {
			return saved, fmt.Errorf("entry for player %s: %w", entry.PlayerID, err)
		}
		if err := deps.AttendanceStore.Save(ctx, r); err != nil {
			return saved, err
		}
		saved++
	}

	slog.Info("attendance_recorded", "event_id", input.EventID, "entries", saved)
	return saved, nil
}
