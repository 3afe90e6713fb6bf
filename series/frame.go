package series

import (
	"fmt"

	"github.com/cwbudde/algo-neuro/interval"
)

// TsdFrame is a multi-column sampled signal sharing one time axis.
type TsdFrame struct {
	index
	columns []string
	d       [][]float64 // column-major
}

// NewTsdFrame builds a frame from a time axis and one value slice per
// column. columns may be nil, in which case columns are named "0", "1", ...
func NewTsdFrame(times []float64, data [][]float64, columns []string, opts ...Option) (*TsdFrame, error) {
	if columns == nil {
		columns = make([]string, len(data))
		for i := range columns {
			columns[i] = fmt.Sprint(i)
		}
	}
	if len(columns) != len(data) {
		return nil, fmt.Errorf("%w: %d columns for %d data slices", ErrLengthMismatch, len(columns), len(data))
	}
	for i, col := range data {
		if len(col) != len(times) {
			return nil, fmt.Errorf("%w: column %q has %d values for %d times", ErrLengthMismatch, columns[i], len(col), len(times))
		}
	}

	idx, perm, err := buildIndex(times, applyOptions(opts))
	if err != nil {
		return nil, err
	}

	d := make([][]float64, len(data))
	for c, col := range data {
		d[c] = make([]float64, len(perm))
		for i, p := range perm {
			d[c][i] = col[p]
		}
	}

	return &TsdFrame{index: idx, columns: append([]string(nil), columns...), d: d}, nil
}

// Len returns the number of samples.
func (f *TsdFrame) Len() int { return len(f.t) }

// Times returns the timestamps in seconds. The slice must not be modified.
func (f *TsdFrame) Times() []float64 { return f.t }

// Columns returns the column names.
func (f *TsdFrame) Columns() []string { return append([]string(nil), f.columns...) }

// NumColumns returns the number of columns.
func (f *TsdFrame) NumColumns() int { return len(f.columns) }

// Column returns the values of column i. The slice must not be modified.
func (f *TsdFrame) Column(i int) []float64 { return f.d[i] }

// ColumnByName returns the column called name.
func (f *TsdFrame) ColumnByName(name string) (*Tsd, error) {
	for i, c := range f.columns {
		if c == name {
			return &Tsd{index: f.index, d: f.d[i]}, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
}

// TimeSupport returns the epochs over which the frame is defined.
func (f *TsdFrame) TimeSupport() interval.Set { return f.support }

// Rate returns the mean sampling rate in Hz over the time support.
func (f *TsdFrame) Rate() float64 { return f.rate() }

// Restrict keeps rows inside ep. The result's time support is ep.
func (f *TsdFrame) Restrict(ep interval.Set) *TsdFrame {
	pos := f.positionsIn(ep)
	out := &TsdFrame{
		index:   index{t: make([]float64, len(pos)), support: ep},
		columns: f.columns,
		d:       make([][]float64, len(f.d)),
	}
	for i, p := range pos {
		out.t[i] = f.t[p]
	}
	for c, col := range f.d {
		out.d[c] = make([]float64, len(pos))
		for i, p := range pos {
			out.d[c][i] = col[p]
		}
	}
	return out
}

// GetSlice returns the half-open position range of rows with
// start <= t < end.
func (f *TsdFrame) GetSlice(start, end float64) (lo, hi int) { return f.slice(start, end) }

// Slice returns rows lo..hi-1 with the time support kept.
func (f *TsdFrame) Slice(lo, hi int) *TsdFrame {
	out := &TsdFrame{
		index:   index{t: append([]float64(nil), f.t[lo:hi]...), support: f.support},
		columns: f.columns,
		d:       make([][]float64, len(f.d)),
	}
	for c, col := range f.d {
		out.d[c] = append([]float64(nil), col[lo:hi]...)
	}
	return out
}
