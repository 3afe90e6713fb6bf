package core

import (
	"math"
	"testing"
)

func TestApplyOptions(t *testing.T) {
	cfg := ApplyOptions(WithTimeIndexPrecision(6))
	if cfg.TimeIndexPrecision != 6 {
		t.Fatalf("precision = %d, want 6", cfg.TimeIndexPrecision)
	}
}

func TestInvalidOptionsIgnored(t *testing.T) {
	cfg := ApplyOptions(WithTimeIndexPrecision(-1), WithTimeIndexPrecision(40), nil)
	if cfg != DefaultConfig() {
		t.Fatalf("cfg = %#v, want %#v", cfg, DefaultConfig())
	}
}

func TestRound(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.Round(0.1 + 0.2); got != 0.3 {
		t.Fatalf("Round(0.1+0.2)=%v, want 0.3", got)
	}
	if got := RoundTo(1.23456, 2); got != 1.23 {
		t.Fatalf("RoundTo=%v, want 1.23", got)
	}
	if !math.IsNaN(RoundTo(math.NaN(), 3)) {
		t.Fatalf("NaN must pass through")
	}

	ts := []float64{1.0000000001, 2.0000000004}
	cfg.RoundAll(ts)
	if ts[0] != 1 || ts[1] != 2 {
		t.Fatalf("RoundAll=%v", ts)
	}
}

func TestResolution(t *testing.T) {
	if got := DefaultConfig().Resolution(); math.Abs(got-1e-9) > 1e-24 {
		t.Fatalf("Resolution=%v, want 1e-9", got)
	}
	if got := ApplyOptions(WithTimeIndexPrecision(3)).Resolution(); math.Abs(got-1e-3) > 1e-18 {
		t.Fatalf("Resolution=%v, want 1e-3", got)
	}
}
