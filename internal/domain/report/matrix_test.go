package report

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"clubroll/internal/domain/attendance"
	"clubroll/internal/domain/event"
	"clubroll/internal/domain/player"
)

func tangARoster() []player.Player {
	return []player.Player{
		{ID: "p1", TeamID: "t1", Name: "Alice"},
		{ID: "p2", TeamID: "t1", Name: "Bob"},
	}
}

func tangAEvents() []event.Event {
	return []event.Event{
		{ID: "e1", TeamID: "t1", Category: "training", Date: "2024-01-10", Venue: "Tang"},
		{ID: "e2", TeamID: "t1", Category: "match", Date: "2024-01-17", Venue: "Maryland"},
	}
}

func tangARecords() []attendance.Record {
	return []attendance.Record{
		{ID: "a1", EventID: "e1", TeamID: "t1", PlayerID: "p2", Status: "absent", Reason: "Work"},
	}
}

// TestBuildMatrix_TangAScenario verifies the full matrix layout for a
// small team: header rows, body rows, totals and venue usage.
func TestBuildMatrix_TangAScenario(t *testing.T) {
	rs, err := BuildMatrix(tangARoster(), tangAEvents(), BuildIndex(tangARecords()))
	if err != nil {
		t.Fatalf("BuildMatrix failed: %v", err)
	}
	if rs.Name != SheetMatrix {
		t.Errorf("sheet name = %q, want %q", rs.Name, SheetMatrix)
	}

	want := [][]any{
		{"Player", "Training", "Match", "Total"},
		{"", "2024-01-10", "2024-01-17", ""},
		{"", "Tang", "Maryland", ""},
		{"Alice", "Yes", "Yes", 2},
		{"Bob", "No", "Yes", 1},
		{"Total", 1, 2, 3},
		{},
		{VenueUsageHeader},
		{"Maryland", 1, "50%"},
		{"Tang", 1, "50%"},
	}
	if len(rs.Rows) != len(want) {
		t.Fatalf("row count = %d, want %d", len(rs.Rows), len(want))
	}
	for i, row := range want {
		if !reflect.DeepEqual(rs.Rows[i], row) {
			t.Errorf("row %d = %v, want %v", i, rs.Rows[i], row)
		}
	}
}

// TestBuildMatrix_EmptyInputs verifies the builder refuses to produce an
// empty sheet.
func TestBuildMatrix_EmptyInputs(t *testing.T) {
	if _, err := BuildMatrix(tangARoster(), nil, Index{}); !errors.Is(err, ErrNoEvents) {
		t.Errorf("no events: err = %v, want ErrNoEvents", err)
	}
	if _, err := BuildMatrix(nil, tangAEvents(), Index{}); !errors.Is(err, ErrNoPlayers) {
		t.Errorf("no players: err = %v, want ErrNoPlayers", err)
	}
}

// TestBuildMatrix_DefaultPresent verifies a player with no records at
// all shows "Yes" in every column with a full total.
func TestBuildMatrix_DefaultPresent(t *testing.T) {
	players := []player.Player{{ID: "p9", TeamID: "t1", Name: "Zoe"}}
	events := tangAEvents()

	rs, err := BuildMatrix(players, events, BuildIndex(nil))
	if err != nil {
		t.Fatalf("BuildMatrix failed: %v", err)
	}

	body := rs.Rows[3]
	wantRow := []any{"Zoe", "Yes", "Yes", 2}
	if !reflect.DeepEqual(body, wantRow) {
		t.Errorf("body row = %v, want %v", body, wantRow)
	}
}

// TestBuildMatrix_TotalsConsistency verifies the totals row matches the
// Yes counts in the body, column by column.
func TestBuildMatrix_TotalsConsistency(t *testing.T) {
	players := []player.Player{
		{ID: "p1", Name: "Aoife"},
		{ID: "p2", Name: "Brid"},
		{ID: "p3", Name: "Ciara"},
	}
	events := []event.Event{
		{ID: "e1", Category: "training", Date: "2024-02-01", Venue: "Tang"},
		{ID: "e2", Category: "training", Date: "2024-02-08", Venue: "Tang"},
		{ID: "e3", Category: "match", Date: "2024-02-15", Venue: "Maryland"},
	}
	records := []attendance.Record{
		{EventID: "e1", PlayerID: "p1", Status: "absent"},
		{EventID: "e2", PlayerID: "p2", Status: "absent", Reason: "Holidays"},
		{EventID: "e2", PlayerID: "p3", Status: "no"},
		{EventID: "e3", PlayerID: "p1", Status: "present"},
	}

	rs, err := BuildMatrix(players, events, BuildIndex(records))
	if err != nil {
		t.Fatalf("BuildMatrix failed: %v", err)
	}

	bodyStart, bodyEnd := 3, 3+len(players)
	totals := rs.Rows[bodyEnd]
	grand := 0
	for col := 0; col < len(events); col++ {
		yes := 0
		for i := bodyStart; i < bodyEnd; i++ {
			if rs.Rows[i][col+1] == "Yes" {
				yes++
			}
		}
		if totals[col+1] != yes {
			t.Errorf("column %d total = %v, want %d", col, totals[col+1], yes)
		}
		grand += yes
	}
	if totals[len(events)+1] != grand {
		t.Errorf("grand total = %v, want %d", totals[len(events)+1], grand)
	}
}

// TestBuildMatrix_Idempotent verifies re-running the builder on the same
// snapshot yields byte-identical output.
func TestBuildMatrix_Idempotent(t *testing.T) {
	idx := BuildIndex(tangARecords())
	first, err := BuildMatrix(tangARoster(), tangAEvents(), idx)
	if err != nil {
		t.Fatalf("first build failed: %v", err)
	}
	second, err := BuildMatrix(tangARoster(), tangAEvents(), idx)
	if err != nil {
		t.Fatalf("second build failed: %v", err)
	}

	a, err := first.CSV()
	if err != nil {
		t.Fatalf("first CSV failed: %v", err)
	}
	b, err := second.CSV()
	if err != nil {
		t.Fatalf("second CSV failed: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("two builds over the same snapshot produced different bytes")
	}
}

// TestVenueUsage_Ordering verifies descending count order with
// alphabetical tie-breaks, and that percentages cover the event total.
func TestVenueUsage_Ordering(t *testing.T) {
	events := []event.Event{
		{ID: "e1", Venue: "Tang"},
		{ID: "e2", Venue: "Tang"},
		{ID: "e3", Venue: "Maryland"},
		{ID: "e4", Venue: "Croke Park"},
	}

	got := venueUsage(events)
	want := []venueCount{
		{Label: "Tang", Count: 2, Percent: "50%"},
		{Label: "Croke Park", Count: 1, Percent: "25%"},
		{Label: "Maryland", Count: 1, Percent: "25%"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("venueUsage = %v, want %v", got, want)
	}
}

// TestPercentOf_ZeroTotal verifies the zero-event guard.
func TestPercentOf_ZeroTotal(t *testing.T) {
	if got := percentOf(0, 0); got != "0%" {
		t.Errorf("percentOf(0,0) = %q, want 0%%", got)
	}
	if got := percentOf(1, 3); got != "33%" {
		t.Errorf("percentOf(1,3) = %q, want 33%%", got)
	}
	if got := percentOf(2, 3); got != "67%" {
		t.Errorf("percentOf(2,3) = %q, want 67%%", got)
	}
}
