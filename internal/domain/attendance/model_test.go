package attendance

import (
	"errors"
	"testing"
)

// TestNormalize verifies reasons only survive on absent records.
func TestNormalize(t *testing.T) {
	r := Record{EventID: "e1", PlayerID: "p1", Status: StatusPresent, Reason: "Work"}
	r.Normalize()
	if r.Reason != "" {
		t.Errorf("present record kept reason %q", r.Reason)
	}

	r = Record{EventID: "e1", PlayerID: "p1", Status: StatusAbsent, Reason: "  Work  "}
	r.Normalize()
	if r.Reason != "Work" {
		t.Errorf("absent reason = %q, want trimmed Work", r.Reason)
	}
}

// TestValidate covers the record validation rules.
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		record  Record
		wantErr error
	}{
		{"valid present", Record{EventID: "e1", PlayerID: "p1", Status: StatusPresent}, nil},
		{"valid absent", Record{EventID: "e1", PlayerID: "p1", Status: StatusAbsent, Reason: "Work"}, nil},
		{"missing event", Record{PlayerID: "p1", Status: StatusPresent}, ErrNoEvent},
		{"missing player", Record{EventID: "e1", Status: StatusPresent}, ErrNoPlayer},
		{"non-canonical status", Record{EventID: "e1", PlayerID: "p1", Status: "late"}, ErrInvalidStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestStatusHelpers covers the shorthand status sets.
func TestStatusHelpers(t *testing.T) {
	for _, s := range []string{"present", "Present", "YES", "y", " present "} {
		if !IsPresentStatus(s) {
			t.Errorf("IsPresentStatus(%q) = false", s)
		}
	}
	for _, s := range []string{"absent", "ABSENT", "no", "N", " absent "} {
		if !IsAbsentStatus(s) {
			t.Errorf("IsAbsentStatus(%q) = false", s)
		}
	}
	for _, s := range []string{"late", "injured", ""} {
		if IsPresentStatus(s) || IsAbsentStatus(s) {
			t.Errorf("status %q matched a shorthand set", s)
		}
	}
}

// TestReasonLabel verifies the blank-reason sentinel.
func TestReasonLabel(t *testing.T) {
	if got := ReasonLabel("  "); got != NoReasonLabel {
		t.Errorf("blank reason = %q, want %q", got, NoReasonLabel)
	}
	if got := ReasonLabel(" Hurling "); got != "Hurling" {
		t.Errorf("reason = %q, want Hurling", got)
	}
}
