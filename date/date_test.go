package date

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		in   string
		want Date
	}{
		{"2025-07-01", New(2025, time.July, 1)},
		{"2025-7-1", New(2025, time.July, 1)},
		{"2024-12-31", New(2024, time.December, 31)},
	}
	for _, tc := range testCases {
		got, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("Parse(%q) returned unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse("not-a-date"); err == nil {
		t.Error("Parse() expected an error for invalid input, got nil")
	}
}

func TestNew_Normalizes(t *testing.T) {
	// Day overflow rolls into the next month.
	got := New(2025, time.January, 32)
	want := New(2025, time.February, 1)
	if got != want {
		t.Errorf("New(2025, January, 32) = %v, want %v", got, want)
	}
}

func TestDate_Ordering(t *testing.T) {
	a := New(2025, time.March, 1)
	b := New(2025, time.March, 2)
	if !a.Before(b) || b.Before(a) {
		t.Errorf("Before() is inconsistent for %v and %v", a, b)
	}
	if !b.After(a) {
		t.Errorf("After() is inconsistent for %v and %v", a, b)
	}
	if a.Compare(b) != -1 || b.Compare(a) != 1 || a.Compare(a) != 0 {
		t.Errorf("Compare() is inconsistent for %v and %v", a, b)
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := New(2025, time.June, 15)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal() returned unexpected error: %v", err)
	}
	if string(data) != `"2025-06-15"` {
		t.Errorf("Marshal() = %s, want %q", data, "2025-06-15")
	}
	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() returned unexpected error: %v", err)
	}
	if back != d {
		t.Errorf("round trip = %v, want %v", back, d)
	}
}
