package utils

import "testing"

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{2.4, 2},
		{2.5, 3},
		{-2.5, -2},
		{-2.6, -3},
		{0, 0},
	}
	for _, tc := range tests {
		if got := RoundHalfUp(tc.in); got != tc.want {
			t.Errorf("RoundHalfUp(%g) = %g, want %g", tc.in, got, tc.want)
		}
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 3); got != 3 {
		t.Errorf("expected 3, got %g", got)
	}
	if got := Clamp(-1, 0, 3); got != 0 {
		t.Errorf("expected 0, got %g", got)
	}
	if got := ClampInt(8, 0, 7); got != 7 {
		t.Errorf("expected 7, got %d", got)
	}
	if got := ClampInt(-1, 0, 7); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}

func TestRoundTo(t *testing.T) {
	if got := RoundTo(12.34, 1); got != 12.3 {
		t.Errorf("expected 12.3, got %g", got)
	}
	if got := RoundTo(-3.06, 1); got != -3.1 {
		t.Errorf("expected -3.1, got %g", got)
	}
}
