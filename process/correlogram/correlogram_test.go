package correlogram

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-neuro/internal/testutil"
)

// triangle returns the expected autocorrelogram of n regularly spaced events:
// 0, 1/n, ..., (n-1)/n, center, (n-1)/n, ..., 0.
func triangle(n int, center float64) []float64 {
	out := make([]float64, 0, 2*n+1)
	for i := 0; i < n; i++ {
		out = append(out, float64(i)/float64(n))
	}
	out = append(out, center)
	for i := n - 1; i >= 0; i-- {
		out = append(out, float64(i)/float64(n))
	}
	return out
}

func TestCrossCorrelogramSingleEvents(t *testing.T) {
	cc, _ := CrossCorrelogram([]float64{0}, []float64{1}, 1, 100)
	if math.Abs(cc[101]-1) > 1e-12 {
		t.Fatalf("cc[101]=%v, want 1", cc[101])
	}

	cc, _ = CrossCorrelogram([]float64{1}, []float64{0}, 1, 100)
	if math.Abs(cc[99]-1) > 1e-12 {
		t.Fatalf("cc[99]=%v, want 1", cc[99])
	}

	cc, _ = CrossCorrelogram([]float64{0}, []float64{100}, 1, 100)
	if math.Abs(cc[200]-1) > 1e-12 {
		t.Fatalf("cc[200]=%v, want 1", cc[200])
	}
}

func TestCrossCorrelogramSelf(t *testing.T) {
	t1 := []float64{0, 10}
	cc, centers := CrossCorrelogram(t1, t1, 1, 100)
	if cc[100] != 1 || cc[90] != 0.5 || cc[110] != 0.5 {
		t.Fatalf("cc[90,100,110] = %v %v %v", cc[90], cc[100], cc[110])
	}

	want := testutil.Arange(-100, 101, 1)
	testutil.RequireSliceNearlyEqual(t, centers, want, 1e-9)
}

func TestCrossCorrelogramRegularTrains(t *testing.T) {
	for _, n := range []int{100, 200, 1000} {
		tr := testutil.Arange(0, float64(n), 1)
		cc, _ := CrossCorrelogram(tr, tr, 1, float64(n))
		testutil.RequireSliceNearlyEqual(t, cc, triangle(n, 1), 1e-9)
	}
}

func TestCrossCorrelogramBinCount(t *testing.T) {
	tests := []struct {
		bin, window float64
		want        int
	}{
		{1, 100, 201},
		{2, 5, 5},
		{0.01, 0.05, 11},
		{3, 3, 3},
		// Quotient rounding: 2/0.1 evaluates to 20, not 19.
		{0.1, 1, 21},
		{0.01, 0.5, 101},
	}
	for _, tc := range tests {
		cc, centers := CrossCorrelogram(nil, nil, tc.bin, tc.window)
		if len(cc) != tc.want || len(centers) != tc.want {
			t.Fatalf("bin=%v window=%v: got %d bins, want %d", tc.bin, tc.window, len(cc), tc.want)
		}
		if centers[tc.want/2] != 0 {
			t.Fatalf("bin=%v window=%v: middle lag %v, want 0", tc.bin, tc.window, centers[tc.want/2])
		}
	}
}

func TestTableGet(t *testing.T) {
	tab := &Table[Pair]{
		Lags:   []float64{-1, 0, 1},
		Keys:   []Pair{{0, 1}},
		Values: [][]float64{{1, 2, 3}},
	}
	if v, ok := tab.Get(Pair{0, 1}); !ok || v[2] != 3 {
		t.Fatalf("Get=%v,%v", v, ok)
	}
	if _, ok := tab.Get(Pair{1, 0}); ok {
		t.Fatal("reversed pair must not be found")
	}
	if tab.LagIndex(1) != 2 || tab.LagIndex(5) != -1 {
		t.Fatal("LagIndex mismatch")
	}
	if (Pair{2, 3}).String() != "(2, 3)" {
		t.Fatal("Pair.String mismatch")
	}
}
