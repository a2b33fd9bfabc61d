package report

import (
	"sort"

	"clubroll/internal/domain/attendance"
	"clubroll/internal/domain/player"
)

// BuildReasons produces the Reasons-Missing row-set: one row per rostered
// player tallying that player's absence reasons.
// PRE: players are sorted by display name; records are scoped to the team
// POST: Header row of discovered reasons (alphabetical) plus "Total
// Absent"; one row per player with per-reason counts and a row total.
// Players with no absences get all-zero rows.
func BuildReasons(players []player.Player, records []attendance.Record) RowSet {
	// Discover reasons across absent records and tally per player.
	reasonSet := make(map[string]bool)
	perPlayer := make(map[string]map[string]int, len(players))
	for _, p := range players {
		perPlayer[p.ID] = make(map[string]int)
	}

	for _, r := range records {
		if r.PlayerID == "" || !r.IsAbsent() {
			continue
		}
		label := attendance.ReasonLabel(r.Reason)
		reasonSet[label] = true
		tally, ok := perPlayer[r.PlayerID]
		if !ok {
			// Record for a player no longer on the roster: ignore.
			continue
		}
		tally[label]++
	}

	reasonCols := make([]string, 0, len(reasonSet))
	for r := range reasonSet {
		reasonCols = append(reasonCols, r)
	}
	sort.Strings(reasonCols)

	rows := make([][]any, 0, len(players)+1)
	header := make([]any, 0, len(reasonCols)+2)
	header = append(header, "Player")
	for _, r := range reasonCols {
		header = append(header, r)
	}
	header = append(header, "Total Absent")
	rows = append(rows, header)

	for _, p := range players {
		row := make([]any, 0, len(reasonCols)+2)
		row = append(row, p.Name)
		total := 0
		for _, r := range reasonCols {
			n := perPlayer[p.ID][r]
			row = append(row, n)
			total += n
		}
		row = append(row, total)
		rows = append(rows, row)
	}

	return RowSet{Name: SheetReasons, Rows: rows}
}
