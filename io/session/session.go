// Package session loads recording sessions: the spike trains of every unit,
// named epochs and sampled behavioral signals.
//
// A session document is JSON validated against an embedded JSON Schema
// (draft 2020-12) before it is decoded:
//
//	{
//	  "name": "A2929-200711",
//	  "time_unit": "s",
//	  "time_support": [[0, 1200]],
//	  "units": [{"id": 0, "times": [0.1, 0.4], "metadata": {"shank": 1}}],
//	  "epochs": {"wake": [[0, 600]], "sleep": [[600, 1200]]},
//	  "signals": [{"name": "ry", "times": [0, 0.01], "values": [0.3, 0.31]}]
//	}
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/cwbudde/algo-neuro/core"
	"github.com/cwbudde/algo-neuro/group"
	"github.com/cwbudde/algo-neuro/interval"
	"github.com/cwbudde/algo-neuro/series"
)

var (
	// ErrInvalidDocument is returned when a document violates the schema.
	ErrInvalidDocument = errors.New("session: invalid document")
	// ErrDuplicateUnit is returned when two units share an id.
	ErrDuplicateUnit = errors.New("session: duplicate unit id")
	// ErrDuplicateSignal is returned when two signals share a name.
	ErrDuplicateSignal = errors.New("session: duplicate signal name")
	// ErrEpochNotFound is returned by Session.Epoch for unknown names.
	ErrEpochNotFound = errors.New("session: epoch not found")
	// ErrSignalNotFound is returned by Session.Signal for unknown names.
	ErrSignalNotFound = errors.New("session: signal not found")
)

// Session is a decoded recording session. All times are in seconds.
type Session struct {
	Name    string
	Spikes  *group.TsGroup
	Epochs  map[string]interval.Set
	Signals map[string]*series.Tsd
}

// Epoch returns the named epoch.
func (s *Session) Epoch(name string) (interval.Set, error) {
	ep, ok := s.Epochs[name]
	if !ok {
		return interval.Set{}, fmt.Errorf("%w: %q", ErrEpochNotFound, name)
	}
	return ep, nil
}

// Signal returns the named signal.
func (s *Session) Signal(name string) (*series.Tsd, error) {
	sig, ok := s.Signals[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSignalNotFound, name)
	}
	return sig, nil
}

// EpochNames returns the sorted epoch names.
func (s *Session) EpochNames() []string { return sortedKeys(s.Epochs) }

// SignalNames returns the sorted signal names.
func (s *Session) SignalNames() []string { return sortedKeys(s.Signals) }

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Document is the JSON form of a session.
type Document struct {
	Name        string                  `json:"name"`
	TimeUnit    string                  `json:"time_unit,omitempty"`
	TimeSupport [][2]float64            `json:"time_support,omitempty"`
	Units       []UnitDocument          `json:"units"`
	Epochs      map[string][][2]float64 `json:"epochs,omitempty"`
	Signals     []SignalDocument        `json:"signals,omitempty"`
}

// UnitDocument is the JSON form of one unit.
type UnitDocument struct {
	ID       int                `json:"id"`
	Times    []float64          `json:"times"`
	Metadata map[string]float64 `json:"metadata,omitempty"`
}

// SignalDocument is the JSON form of one sampled signal.
type SignalDocument struct {
	Name   string    `json:"name"`
	Times  []float64 `json:"times"`
	Values []float64 `json:"values"`
}

// Option configures how a document is built into a session.
type Option func(*buildConfig)

type buildConfig struct {
	core []core.Option
}

// WithCoreOptions sets the timestamp precision used for spikes, epochs and
// signals.
func WithCoreOptions(opts ...core.Option) Option {
	return func(c *buildConfig) {
		c.core = append(c.core, opts...)
	}
}

// Load reads and decodes the session document at path.
func Load(path string, opts ...Option) (*Session, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	defer f.Close()

	return Decode(f, opts...)
}

// Decode reads a session document from r, validates it and builds the
// session.
func Decode(r io.Reader, opts ...Option) (*Session, error) {
	doc, err := ReadDocument(r)
	if err != nil {
		return nil, err
	}
	return doc.Build(opts...)
}

// ReadDocument reads and validates a session document without building it.
func ReadDocument(r io.Reader) (*Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("session: read: %w", err)
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if err := validate(generic); err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return &doc, nil
}

// Build converts the document into a session, converting every time to
// seconds.
func (d *Document) Build(opts ...Option) (*Session, error) {
	u, err := core.ParseTimeUnit(d.TimeUnit)
	if err != nil {
		return nil, fmt.Errorf("session %q: %w", d.Name, err)
	}
	var cfg buildConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	times := make(map[int][]float64, len(d.Units))
	for _, unit := range d.Units {
		if _, dup := times[unit.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateUnit, unit.ID)
		}
		times[unit.ID] = unit.Times
	}

	groupOpts := []group.Option{group.WithCoreOptions(cfg.core...)}
	if len(d.TimeSupport) > 0 {
		sup, err := intervals(d.TimeSupport, u, cfg)
		if err != nil {
			return nil, fmt.Errorf("session %q: time support: %w", d.Name, err)
		}
		groupOpts = append(groupOpts, group.WithTimeSupport(sup))
	}

	spikes, err := group.FromTimes(times, u, groupOpts...)
	if err != nil {
		return nil, fmt.Errorf("session %q: %w", d.Name, err)
	}
	if err := setMetadata(spikes, d.Units); err != nil {
		return nil, fmt.Errorf("session %q: %w", d.Name, err)
	}

	s := &Session{
		Name:    d.Name,
		Spikes:  spikes,
		Epochs:  make(map[string]interval.Set, len(d.Epochs)),
		Signals: make(map[string]*series.Tsd, len(d.Signals)),
	}
	for name, pairs := range d.Epochs {
		ep, err := intervals(pairs, u, cfg)
		if err != nil {
			return nil, fmt.Errorf("session %q: epoch %q: %w", d.Name, name, err)
		}
		s.Epochs[name] = ep
	}
	for _, sig := range d.Signals {
		if _, dup := s.Signals[sig.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSignal, sig.Name)
		}
		tsd, err := series.NewTsd(sig.Times, sig.Values,
			series.WithTimeUnit(u), series.WithCoreOptions(cfg.core...))
		if err != nil {
			return nil, fmt.Errorf("session %q: signal %q: %w", d.Name, sig.Name, err)
		}
		s.Signals[sig.Name] = tsd
	}
	return s, nil
}

func intervals(pairs [][2]float64, u core.TimeUnit, cfg buildConfig) (interval.Set, error) {
	starts := make([]float64, len(pairs))
	ends := make([]float64, len(pairs))
	for i, p := range pairs {
		starts[i], ends[i] = p[0], p[1]
	}
	return interval.New(starts, ends, interval.WithTimeUnit(u), interval.WithCoreOptions(cfg.core...))
}

func setMetadata(g *group.TsGroup, units []UnitDocument) error {
	columns := map[string]map[int]float64{}
	for _, unit := range units {
		for name, v := range unit.Metadata {
			if columns[name] == nil {
				columns[name] = map[int]float64{}
			}
			columns[name][unit.ID] = v
		}
	}
	for _, name := range sortedKeys(columns) {
		if err := g.SetInfo(name, columns[name]); err != nil {
			return fmt.Errorf("metadata %q: %w", name, err)
		}
	}
	return nil
}

// NewDocument converts a session back into its document form, in seconds.
func NewDocument(s *Session) *Document {
	doc := &Document{
		Name:     s.Name,
		TimeUnit: string(core.Seconds),
		Units:    []UnitDocument{},
		Epochs:   make(map[string][][2]float64, len(s.Epochs)),
	}

	if s.Spikes != nil {
		doc.TimeSupport = pairs(s.Spikes.TimeSupport())
		info := map[string]map[int]float64{}
		for _, name := range s.Spikes.InfoNames() {
			if name == group.RateKey {
				continue
			}
			info[name], _ = s.Spikes.GetInfo(name)
		}
		for _, k := range s.Spikes.Keys() {
			unit, err := s.Spikes.Unit(k)
			if err != nil {
				continue
			}
			ud := UnitDocument{ID: k, Times: append([]float64{}, unit.Times()...)}
			for name, col := range info {
				if v, ok := col[k]; ok {
					if ud.Metadata == nil {
						ud.Metadata = map[string]float64{}
					}
					ud.Metadata[name] = v
				}
			}
			doc.Units = append(doc.Units, ud)
		}
	}

	for _, name := range s.EpochNames() {
		doc.Epochs[name] = pairs(s.Epochs[name])
	}
	for _, name := range s.SignalNames() {
		sig := s.Signals[name]
		doc.Signals = append(doc.Signals, SignalDocument{
			Name:   name,
			Times:  append([]float64{}, sig.Times()...),
			Values: append([]float64{}, sig.Values()...),
		})
	}
	return doc
}

func pairs(s interval.Set) [][2]float64 {
	out := make([][2]float64, s.Len())
	for i := range out {
		out[i] = [2]float64{s.Start(i), s.End(i)}
	}
	return out
}

// Encode writes s to w as an indented session document.
func Encode(w io.Writer, s *Session) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDocument(s))
}
