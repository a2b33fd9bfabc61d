package report

import (
	"errors"
	"math"
	"sort"

	"clubroll/internal/domain/event"
	"clubroll/internal/domain/player"
)

// Sheet name constants for the exported workbook.
const (
	SheetMatrix  = "Attendance Matrix"
	SheetReasons = "Reasons Missing"
)

// VenueUsageHeader labels the venue summary block appended below the
// matrix.
const VenueUsageHeader = "Venue usage (by events)"

// Domain errors. The caller must surface these; an empty sheet is never
// produced silently.
var (
	ErrNoEvents  = errors.New("no events found for this team yet")
	ErrNoPlayers = errors.New("no players found for this team")
)

// BuildMatrix produces the Attendance Matrix row-set for one team.
// PRE: players are sorted by display name (case-insensitive), events by
// date ascending; idx was built from the same snapshot
// POST: Returns header rows, one body row per player, a totals row and
// the venue usage block; or ErrNoEvents/ErrNoPlayers
// INVARIANT: body row count == player count; each body row carries one
// cell per event plus name and total
func BuildMatrix(players []player.Player, events []event.Event, idx Index) (RowSet, error) {
	if len(events) == 0 {
		return RowSet{}, ErrNoEvents
	}
	if len(players) == 0 {
		return RowSet{}, ErrNoPlayers
	}

	rows := make([][]any, 0, len(players)+6)

	// Three header rows: category, date, venue.
	headerType := make([]any, 0, len(events)+2)
	headerDate := make([]any, 0, len(events)+2)
	headerVenue := make([]any, 0, len(events)+2)
	headerType = append(headerType, "Player")
	headerDate = append(headerDate, "")
	headerVenue = append(headerVenue, "")
	for _, ev := range events {
		headerType = append(headerType, event.CategoryLabel(ev.Category))
		headerDate = append(headerDate, ev.Date)
		headerVenue = append(headerVenue, event.VenueLabel(ev))
	}
	headerType = append(headerType, "Total")
	headerDate = append(headerDate, "")
	headerVenue = append(headerVenue, "")
	rows = append(rows, headerType, headerDate, headerVenue)

	// Body rows plus running per-event totals.
	perEventYes := make([]int, len(events))
	for _, p := range players {
		row := make([]any, 0, len(events)+2)
		row = append(row, p.Name)
		yesCount := 0
		for i, ev := range events {
			if idx.Present(ev.ID, p.ID) {
				row = append(row, "Yes")
				yesCount++
				perEventYes[i]++
			} else {
				row = append(row, "No")
			}
		}
		row = append(row, yesCount)
		rows = append(rows, row)
	}

	// Totals row.
	totalsRow := make([]any, 0, len(events)+2)
	totalsRow = append(totalsRow, "Total")
	grand := 0
	for _, n := range perEventYes {
		totalsRow = append(totalsRow, n)
		grand += n
	}
	totalsRow = append(totalsRow, grand)
	rows = append(rows, totalsRow)

	// Venue usage block: spacer, header, one row per distinct venue.
	rows = append(rows, []any{})
	rows = append(rows, []any{VenueUsageHeader})
	for _, vu := range venueUsage(events) {
		rows = append(rows, []any{vu.Label, vu.Count, vu.Percent})
	}

	return RowSet{Name: SheetMatrix, Rows: rows}, nil
}

type venueCount struct {
	Label   string
	Count   int
	Percent string
}

// venueUsage tallies events per resolved venue label, sorted by
// descending count with ties broken by label so re-runs are
// byte-identical.
func venueUsage(events []event.Event) []venueCount {
	counts := make(map[string]int)
	for _, ev := range events {
		counts[event.VenueLabel(ev)]++
	}

	out := make([]venueCount, 0, len(counts))
	for label, c := range counts {
		out = append(out, venueCount{Label: label, Count: c, Percent: percentOf(c, len(events))})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// percentOf renders count/total as a whole percent string, 0% when the
// total is zero.
func percentOf(count, total int) string {
	pct := 0
	if total > 0 {
		pct = int(math.Round(float64(count) / float64(total) * 100))
	}
	return formatPercent(pct)
}
