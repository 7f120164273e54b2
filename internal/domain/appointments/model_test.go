package appointments

import (
	"testing"
	"time"
)

func TestOverlaps(t *testing.T) {
	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	at := func(min int) time.Time { return base.Add(time.Duration(min) * time.Minute) }

	cases := []struct {
		name         string
		aStart, aEnd time.Time
		bStart, bEnd time.Time
		want         bool
	}{
		{"identical", at(0), at(30), at(0), at(30), true},
		{"partial overlap", at(0), at(30), at(15), at(45), true},
		{"contained", at(0), at(60), at(15), at(30), true},
		{"adjacent after", at(0), at(30), at(30), at(60), false},
		{"adjacent before", at(30), at(60), at(0), at(30), false},
		{"disjoint", at(0), at(30), at(60), at(90), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd); got != tc.want {
				t.Fatalf("Overlaps(%v,%v,%v,%v) = %v, want %v",
					tc.aStart, tc.aEnd, tc.bStart, tc.bEnd, got, tc.want)
			}
		})
	}

	// la relación es simétrica
	for _, tc := range cases {
		if got := Overlaps(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd); got != tc.want {
			t.Fatalf("Overlaps not symmetric for %q", tc.name)
		}
	}
}

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"scheduled", "completed", "cancelled"} {
		if _, ok := ParseStatus(valid); !ok {
			t.Fatalf("expected %q to parse", valid)
		}
	}
	for _, invalid := range []string{"", "done", "Scheduled", "CANCELLED"} {
		if _, ok := ParseStatus(invalid); ok {
			t.Fatalf("expected %q to be rejected", invalid)
		}
	}
}
