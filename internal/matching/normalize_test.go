package matching

import "testing"

func TestNormalizeBoostsLowScores(t *testing.T) {
	cases := []struct {
		raw  int
		want int
	}{
		{0, 30},
		{40, 54},
		{50, 60},
		{60, 66},
		{70, 72},
		{74, 74},
	}
	for _, tc := range cases {
		got, note := Normalize(tc.raw)
		if got != tc.want {
			t.Errorf("Normalize(%d) = %d, want %d", tc.raw, got, tc.want)
		}
		if note == "" {
			t.Errorf("Normalize(%d): expected score note for adjusted score", tc.raw)
		}
	}
}

func TestNormalizePassesThroughHighScores(t *testing.T) {
	for _, raw := range []int{75, 80, 90, 98, 100} {
		got, note := Normalize(raw)
		if got != raw {
			t.Errorf("Normalize(%d) = %d, want unchanged", raw, got)
		}
		if note != "" {
			t.Errorf("Normalize(%d): expected no score note, got %q", raw, note)
		}
	}
}

func TestNormalizeNeverExceedsCap(t *testing.T) {
	for raw := 0; raw < 75; raw++ {
		got, _ := Normalize(raw)
		if got > 98 {
			t.Fatalf("Normalize(%d) = %d, exceeds cap of 98", raw, got)
		}
		if got < raw {
			t.Fatalf("Normalize(%d) = %d, boosted score below raw", raw, got)
		}
	}
}
