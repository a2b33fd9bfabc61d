package report

import (
	"clubroll/internal/domain/attendance"
)

// Key identifies one attendance record: one player at one event.
type Key struct {
	EventID  string
	PlayerID string
}

// Index is an O(1) lookup from (event, player) to attendance record,
// built once per report generation from an immutable snapshot.
type Index map[Key]attendance.Record

// BuildIndex builds the lookup from a team's attendance records.
// Records with a blank event or player reference are skipped; they can
// never be addressed by the matrix and indexing them would hide the
// data problem behind a bogus key.
// PRE: records are scoped to one team
// POST: Returns the index; on duplicate keys the last record wins,
// deterministic for a fixed input order
func BuildIndex(records []attendance.Record) Index {
	idx := make(Index, len(records))
	for _, r := range records {
		if r.EventID == "" || r.PlayerID == "" {
			continue
		}
		idx[Key{EventID: r.EventID, PlayerID: r.PlayerID}] = r
	}
	return idx
}

// Get looks up the record for an (event, player) pair.
// POST: Returns the record and true, or a zero record and false
func (idx Index) Get(eventID, playerID string) (attendance.Record, bool) {
	r, ok := idx[Key{EventID: eventID, PlayerID: playerID}]
	return r, ok
}

// Present evaluates the presence convention for an (event, player) pair:
// a player is present unless a record exists that explicitly marks an
// absence. A missing record means present.
func (idx Index) Present(eventID, playerID string) bool {
	r, ok := idx.Get(eventID, playerID)
	if !ok {
		return true
	}
	return !attendance.IsAbsentStatus(r.Status)
}
