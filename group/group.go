// Package group holds collections of event trains that share a time support,
// usually the spike trains of the units recorded in one session.
package group

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cwbudde/algo-neuro/core"
	"github.com/cwbudde/algo-neuro/interval"
	"github.com/cwbudde/algo-neuro/series"
)

// RateKey is the metadata column holding each unit's firing rate.
const RateKey = "rate"

var (
	// ErrUnitNotFound is returned when a key is not part of the group.
	ErrUnitNotFound = errors.New("group: unit not found")
	// ErrNilUnit is returned when a unit train is nil.
	ErrNilUnit = errors.New("group: unit must not be nil")
	// ErrReservedInfo is returned when callers try to overwrite the rate column.
	ErrReservedInfo = errors.New("group: rate metadata is computed and cannot be set")
)

// TsGroup is a set of event trains keyed by unit id.
//
// Every unit is restricted to the group's time support, and the "rate"
// metadata column always reflects the unit's event rate over that support.
type TsGroup struct {
	keys    []int
	units   map[int]*series.Ts
	support interval.Set
	info    map[string]map[int]float64
}

// Option configures a TsGroup.
type Option func(*options)

type options struct {
	support    interval.Set
	hasSupport bool
	core       []core.Option
}

// WithTimeSupport fixes the group's time support instead of using the union
// of the unit supports.
func WithTimeSupport(ep interval.Set) Option {
	return func(o *options) {
		o.support = ep
		o.hasSupport = true
	}
}

// WithCoreOptions forwards precision settings to the trains built by
// [FromTimes]. [New] ignores it.
func WithCoreOptions(opts ...core.Option) Option {
	return func(o *options) {
		o.core = append(o.core, opts...)
	}
}

// New builds a group from unit trains.
func New(units map[int]*series.Ts, opts ...Option) (*TsGroup, error) {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	keys := make([]int, 0, len(units))
	for k, u := range units {
		if u == nil {
			return nil, fmt.Errorf("%w: key %d", ErrNilUnit, k)
		}
		keys = append(keys, k)
	}
	sort.Ints(keys)

	support := o.support
	if !o.hasSupport {
		support = interval.Set{}
		for _, k := range keys {
			support = support.Union(units[k].TimeSupport())
		}
	}

	g := &TsGroup{
		keys:    keys,
		units:   make(map[int]*series.Ts, len(units)),
		support: support,
		info:    map[string]map[int]float64{},
	}
	for _, k := range keys {
		g.units[k] = units[k].Restrict(support)
	}
	g.computeRates()

	return g, nil
}

// FromTimes builds a group directly from per-unit timestamp slices in unit u.
func FromTimes(times map[int][]float64, u core.TimeUnit, opts ...Option) (*TsGroup, error) {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	units := make(map[int]*series.Ts, len(times))
	for k, t := range times {
		ts, err := series.NewTs(t, series.WithTimeUnit(u), series.WithCoreOptions(o.core...))
		if err != nil {
			return nil, fmt.Errorf("unit %d: %w", k, err)
		}
		units[k] = ts
	}
	return New(units, opts...)
}

func (g *TsGroup) computeRates() {
	rates := make(map[int]float64, len(g.keys))
	d := g.support.TotLength(core.Seconds)
	for _, k := range g.keys {
		if d > 0 {
			rates[k] = float64(g.units[k].Len()) / d
		} else {
			rates[k] = 0
		}
	}
	g.info[RateKey] = rates
}

// Keys returns the sorted unit ids.
func (g *TsGroup) Keys() []int { return append([]int(nil), g.keys...) }

// Len returns the number of units.
func (g *TsGroup) Len() int { return len(g.keys) }

// TimeSupport returns the shared time support.
func (g *TsGroup) TimeSupport() interval.Set { return g.support }

// Unit returns the train of unit k.
func (g *TsGroup) Unit(k int) (*series.Ts, error) {
	u, ok := g.units[k]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnitNotFound, k)
	}
	return u, nil
}

// Rate returns the rate metadata of unit k.
func (g *TsGroup) Rate(k int) float64 { return g.info[RateKey][k] }

// Rates returns the rate of every unit in key order.
func (g *TsGroup) Rates() []float64 {
	out := make([]float64, len(g.keys))
	for i, k := range g.keys {
		out[i] = g.info[RateKey][k]
	}
	return out
}

// Subset returns a new group holding only the given units. Metadata and time
// support are carried over.
func (g *TsGroup) Subset(keys ...int) (*TsGroup, error) {
	units := make(map[int]*series.Ts, len(keys))
	for _, k := range keys {
		u, err := g.Unit(k)
		if err != nil {
			return nil, err
		}
		units[k] = u
	}
	sub, err := New(units, WithTimeSupport(g.support))
	if err != nil {
		return nil, err
	}
	sub.copyInfo(g)
	return sub, nil
}

// Restrict restricts every unit to ep. Rates are recomputed over ep.
func (g *TsGroup) Restrict(ep interval.Set) *TsGroup {
	out := &TsGroup{
		keys:    g.Keys(),
		units:   make(map[int]*series.Ts, len(g.keys)),
		support: ep,
		info:    map[string]map[int]float64{},
	}
	for _, k := range g.keys {
		out.units[k] = g.units[k].Restrict(ep)
	}
	out.copyInfo(g)
	out.computeRates()
	return out
}

func (g *TsGroup) copyInfo(from *TsGroup) {
	for name, col := range from.info {
		if name == RateKey {
			continue
		}
		c := make(map[int]float64, len(g.keys))
		for _, k := range g.keys {
			if v, ok := col[k]; ok {
				c[k] = v
			}
		}
		g.info[name] = c
	}
}

// InfoNames returns the sorted metadata column names.
func (g *TsGroup) InfoNames() []string {
	names := make([]string, 0, len(g.info))
	for n := range g.info {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// GetInfo returns a copy of metadata column name. ok is false when the
// column does not exist.
func (g *TsGroup) GetInfo(name string) (map[int]float64, bool) {
	col, ok := g.info[name]
	if !ok {
		return nil, false
	}
	out := make(map[int]float64, len(col))
	for k, v := range col {
		out[k] = v
	}
	return out, true
}

// SetInfo stores metadata column name. Values for unknown units are rejected.
func (g *TsGroup) SetInfo(name string, values map[int]float64) error {
	if name == RateKey {
		return ErrReservedInfo
	}
	col := make(map[int]float64, len(values))
	for k, v := range values {
		if _, ok := g.units[k]; !ok {
			return fmt.Errorf("%w: %d", ErrUnitNotFound, k)
		}
		col[k] = v
	}
	g.info[name] = col
	return nil
}

// Count bins every unit over ep (the group support when ep is empty) and
// returns a frame with one column per unit, named by unit id.
func (g *TsGroup) Count(binSize float64, u core.TimeUnit, ep interval.Set) (*series.TsdFrame, error) {
	if ep.Empty() {
		ep = g.support
	}
	var times []float64
	data := make([][]float64, len(g.keys))
	columns := make([]string, len(g.keys))
	for i, k := range g.keys {
		c, err := g.units[k].Count(binSize, u, ep)
		if err != nil {
			return nil, err
		}
		times = c.Times()
		data[i] = c.Values()
		columns[i] = fmt.Sprint(k)
	}
	return series.NewTsdFrame(times, data, columns, series.WithTimeSupport(ep))
}
