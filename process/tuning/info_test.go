package tuning

import (
	"errors"
	"math"
	"testing"
)

func TestMutualInformation(t *testing.T) {
	g, feature := rampFixture(t)

	tc, err := Compute1D(g, feature, 2, WithMinMax(0, 1))
	if err != nil {
		t.Fatal(err)
	}

	info, err := MutualInformation(tc, feature)
	if err != nil {
		t.Fatal(err)
	}

	// Unit 0 fires in half of the visited range: one bit per spike.
	if got := info[0].BitsPerSpike; math.Abs(got-1) > 1e-9 {
		t.Fatalf("unit 0 bits/spike=%v, want 1", got)
	}
	r := 0.1 * feature.Rate()
	if got := info[0].BitsPerSecond; math.Abs(got-r/2) > 1e-9 {
		t.Fatalf("unit 0 bits/s=%v, want %v", got, r/2)
	}

	// Unit 1 is untuned.
	if got := info[1].BitsPerSpike; math.Abs(got) > 1e-12 {
		t.Fatalf("unit 1 bits/spike=%v, want 0", got)
	}
}

func TestMutualInformationSilentUnit(t *testing.T) {
	_, feature := rampFixture(t)
	tc := &Curves{
		Edges:  []float64{0, 0.5, 1},
		Keys:   []int{3},
		Values: map[int][]float64{3: {0, 0}},
	}

	info, err := MutualInformation(tc, feature)
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsNaN(info[3].BitsPerSpike) || info[3].BitsPerSecond != 0 {
		t.Fatalf("info=%+v", info[3])
	}
}

func TestMutualInformationErrors(t *testing.T) {
	_, feature := rampFixture(t)

	if _, err := MutualInformation(nil, feature); !errors.Is(err, ErrNilCurves) {
		t.Fatalf("err=%v", err)
	}
	if _, err := MutualInformation(&Curves{Edges: []float64{0, 1}}, nil); !errors.Is(err, ErrNilFeature) {
		t.Fatalf("err=%v", err)
	}
	if _, err := MutualInformation(&Curves{Edges: []float64{5, 6}}, feature); !errors.Is(err, ErrEmptyFeature) {
		t.Fatalf("err=%v", err)
	}
}
