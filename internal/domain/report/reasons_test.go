package report

import (
	"reflect"
	"testing"

	"clubroll/internal/domain/attendance"
	"clubroll/internal/domain/player"
)

// TestBuildReasons_TangAScenario verifies the reasons pivot for the
// matrix test's team: one discovered reason column plus the row total.
func TestBuildReasons_TangAScenario(t *testing.T) {
	rs := BuildReasons(tangARoster(), tangARecords())
	if rs.Name != SheetReasons {
		t.Errorf("sheet name = %q, want %q", rs.Name, SheetReasons)
	}

	want := [][]any{
		{"Player", "Work", "Total Absent"},
		{"Alice", 0, 0},
		{"Bob", 1, 1},
	}
	if !reflect.DeepEqual(rs.Rows, want) {
		t.Errorf("rows = %v, want %v", rs.Rows, want)
	}
}

// TestBuildReasons_BlankReason verifies a blank reason on an absent
// record lands in the "No reason" column.
func TestBuildReasons_BlankReason(t *testing.T) {
	players := []player.Player{{ID: "p1", Name: "Alice"}}
	records := []attendance.Record{
		{EventID: "e1", PlayerID: "p1", Status: "absent"},
		{EventID: "e2", PlayerID: "p1", Status: "absent", Reason: "Rugby"},
	}

	rs := BuildReasons(players, records)
	want := [][]any{
		{"Player", attendance.NoReasonLabel, "Rugby", "Total Absent"},
		{"Alice", 1, 1, 2},
	}
	if !reflect.DeepEqual(rs.Rows, want) {
		t.Errorf("rows = %v, want %v", rs.Rows, want)
	}
}

// TestBuildReasons_ColumnsSorted verifies discovered reasons sort
// alphabetically regardless of record order.
func TestBuildReasons_ColumnsSorted(t *testing.T) {
	players := []player.Player{{ID: "p1", Name: "Alice"}}
	records := []attendance.Record{
		{EventID: "e1", PlayerID: "p1", Status: "absent", Reason: "Work"},
		{EventID: "e2", PlayerID: "p1", Status: "absent", Reason: "Holidays"},
		{EventID: "e3", PlayerID: "p1", Status: "absent", Reason: "Rugby"},
	}

	rs := BuildReasons(players, records)
	header := rs.Rows[0]
	want := []any{"Player", "Holidays", "Rugby", "Work", "Total Absent"}
	if !reflect.DeepEqual(header, want) {
		t.Errorf("header = %v, want %v", header, want)
	}
}

// TestBuildReasons_IgnoresPresentAndOffRoster verifies present records
// and records for players no longer rostered contribute nothing.
func TestBuildReasons_IgnoresPresentAndOffRoster(t *testing.T) {
	players := []player.Player{{ID: "p1", Name: "Alice"}}
	records := []attendance.Record{
		{EventID: "e1", PlayerID: "p1", Status: "present", Reason: "Work"},
		{EventID: "e1", PlayerID: "ghost", Status: "absent", Reason: "Work"},
	}

	rs := BuildReasons(players, records)
	want := [][]any{
		{"Player", "Work", "Total Absent"},
		{"Alice", 0, 0},
	}
	if !reflect.DeepEqual(rs.Rows, want) {
		t.Errorf("rows = %v, want %v", rs.Rows, want)
	}
}

// TestBuildReasons_NoAbsences verifies the degenerate header when no
// record is an absence.
func TestBuildReasons_NoAbsences(t *testing.T) {
	rs := BuildReasons(tangARoster(), nil)
	want := [][]any{
		{"Player", "Total Absent"},
		{"Alice", 0},
		{"Bob", 0},
	}
	if !reflect.DeepEqual(rs.Rows, want) {
		t.Errorf("rows = %v, want %v", rs.Rows, want)
	}
}
