package attendance

import (
	"errors"
	"strings"
	"time"
)

// Canonical status values. Storage writes these; report code additionally
// accepts the shorthand variants below when reading historical data.
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
)

// SuggestedReasons is the canonical absence vocabulary offered to UI
// pickers. Reasons are stored as an open string set; free text is valid.
var SuggestedReasons = []string{"Rugby", "Soccer", "Hurling", "Holidays", "Work", "No Apology"}

// NoReasonLabel is the sentinel used in reports when an absent record
// carries no reason.
const NoReasonLabel = "No reason"

// Domain errors
var (
	ErrNoEvent       = errors.New("attendance record must reference an event")
	ErrNoPlayer      = errors.New("attendance record must reference a player")
	ErrInvalidStatus = errors.New("status must be 'present' or 'absent'")
)

// Record holds the presence/absence status of one player at one event.
// At most one record exists per (event, player) pair; storage upserts on
// that composite key.
type Record struct {
	ID        string
	EventID   string
	TeamID    string
	PlayerID  string
	Status    string
	Reason    string // meaningful only when absent
	UpdatedAt time.Time
}

// Validate checks if the Record has valid data.
// PRE: Record struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: EventID and PlayerID must be set, Status must be canonical
func (r *Record) Validate() error {
	if r.EventID == "" {
		return ErrNoEvent
	}
	if r.PlayerID == "" {
		return ErrNoPlayer
	}
	if r.Status != StatusPresent && r.Status != StatusAbsent {
		return ErrInvalidStatus
	}
	return nil
}

// Normalize clears the reason whenever the status does not denote
// absence. Reasons are meaningful only for absent records.
// PRE: Record struct is initialized
// POST: Reason is empty unless the record marks an absence
func (r *Record) Normalize() {
	if !IsAbsentStatus(r.Status) {
		r.Reason = ""
	}
	r.Reason = strings.TrimSpace(r.Reason)
}

// IsAbsent returns true if the record explicitly marks an absence.
// INVARIANT: Record fields are not mutated
func (r *Record) IsAbsent() bool {
	return IsAbsentStatus(r.Status)
}

// IsPresentStatus reports whether a raw status value explicitly denotes
// presence. Accepts the canonical value and historical shorthand,
// case-insensitively.
func IsPresentStatus(status string) bool {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "present", "yes", "y":
		return true
	}
	return false
}

// IsAbsentStatus reports whether a raw status value explicitly denotes
// absence. Accepts the canonical value and historical shorthand,
// case-insensitively. Anything outside this set counts as present for
// matrix purposes ("not explicitly absent").
func IsAbsentStatus(status string) bool {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "absent", "no", "n":
		return true
	}
	return false
}

// ReasonLabel returns the report label for a record's reason: the
// trimmed reason text, or the no-reason sentinel when blank.
func ReasonLabel(reason string) string {
	if r := strings.TrimSpace(reason); r != "" {
		return r
	}
	return NoReasonLabel
}
