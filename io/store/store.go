// Package store persists sessions in a SQL database through bun.
//
// Spike times, signal samples and interval bounds are stored as msgpack
// blobs next to the rows that own them. Everything is kept in seconds.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-slug"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/cwbudde/algo-neuro/internal/logging"
	"github.com/cwbudde/algo-neuro/io/session"
)

const (
	codeNotFound = "SESSION_NOT_FOUND"
	codeStorage  = "SESSION_STORAGE_FAILED"
	codeEncoding = "SESSION_ENCODING_FAILED"
)

// ErrNotFound is wrapped into the error returned for unknown session IDs.
var ErrNotFound = errors.New("store: session not found")

// Store reads and writes sessions.
type Store struct {
	db      *bun.DB
	session []session.Option
}

// Option configures a Store.
type Option func(*Store)

// WithSessionOptions sets the options used to rebuild loaded sessions.
func WithSessionOptions(opts ...session.Option) Option {
	return func(s *Store) {
		s.session = append(s.session, opts...)
	}
}

// New returns a store backed by db.
func New(db *bun.DB, opts ...Option) *Store {
	s := &Store{db: db}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Open connects to the SQLite database at dsn and returns a bun handle.
func Open(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, storageError(err, "open database")
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())
	db.SetMaxOpenConns(1)
	return db, nil
}

// Migrate creates the tables if they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	models := []any{
		(*sessionRecord)(nil),
		(*unitRecord)(nil),
		(*epochRecord)(nil),
		(*signalRecord)(nil),
	}
	for _, m := range models {
		if _, err := s.db.NewCreateTable().Model(m).IfNotExists().Exec(ctx); err != nil {
			return storageError(err, "create table")
		}
	}
	return nil
}

// Save stores sess under a new ID.
func (s *Store) Save(ctx context.Context, sess *session.Session) (uuid.UUID, error) {
	doc := session.NewDocument(sess)
	id := uuid.New()

	rec := &sessionRecord{
		ID:        id,
		Name:      doc.Name,
		Slug:      slugOf(doc.Name),
		CreatedAt: time.Now().UTC(),
	}
	var err error
	if rec.Support, err = msgpack.Marshal(doc.TimeSupport); err != nil {
		return uuid.Nil, encodingError(err)
	}

	units := make([]unitRecord, 0, len(doc.Units))
	for _, u := range doc.Units {
		r := unitRecord{SessionID: id, Unit: u.ID}
		if r.Times, err = msgpack.Marshal(u.Times); err != nil {
			return uuid.Nil, encodingError(err)
		}
		if r.Metadata, err = msgpack.Marshal(u.Metadata); err != nil {
			return uuid.Nil, encodingError(err)
		}
		units = append(units, r)
	}

	epochs := make([]epochRecord, 0, len(doc.Epochs))
	for _, name := range sess.EpochNames() {
		r := epochRecord{SessionID: id, Name: name}
		if r.Intervals, err = msgpack.Marshal(doc.Epochs[name]); err != nil {
			return uuid.Nil, encodingError(err)
		}
		epochs = append(epochs, r)
	}

	signals := make([]signalRecord, 0, len(doc.Signals))
	for _, sig := range doc.Signals {
		r := signalRecord{SessionID: id, Name: sig.Name}
		if r.Times, err = msgpack.Marshal(sig.Times); err != nil {
			return uuid.Nil, encodingError(err)
		}
		if r.Values, err = msgpack.Marshal(sig.Values); err != nil {
			return uuid.Nil, encodingError(err)
		}
		signals = append(signals, r)
	}

	err = s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(rec).Exec(ctx); err != nil {
			return err
		}
		if len(units) > 0 {
			if _, err := tx.NewInsert().Model(&units).Exec(ctx); err != nil {
				return err
			}
		}
		if len(epochs) > 0 {
			if _, err := tx.NewInsert().Model(&epochs).Exec(ctx); err != nil {
				return err
			}
		}
		if len(signals) > 0 {
			if _, err := tx.NewInsert().Model(&signals).Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, storageError(err, "save session")
	}

	logging.FromContext(ctx).Debug("store.saved",
		"id", id, "name", doc.Name, "units", len(units), "epochs", len(epochs), "signals", len(signals))
	return id, nil
}

// Load reads the session stored under id.
func (s *Store) Load(ctx context.Context, id uuid.UUID) (*session.Session, error) {
	var rec sessionRecord
	if err := s.db.NewSelect().Model(&rec).Where("id = ?", id).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFoundError(id)
		}
		return nil, storageError(err, "load session")
	}

	var units []unitRecord
	if err := s.db.NewSelect().Model(&units).Where("session_id = ?", id).Order("unit ASC").Scan(ctx); err != nil {
		return nil, storageError(err, "load units")
	}
	var epochs []epochRecord
	if err := s.db.NewSelect().Model(&epochs).Where("session_id = ?", id).Scan(ctx); err != nil {
		return nil, storageError(err, "load epochs")
	}
	var signals []signalRecord
	if err := s.db.NewSelect().Model(&signals).Where("session_id = ?", id).Order("name ASC").Scan(ctx); err != nil {
		return nil, storageError(err, "load signals")
	}

	doc, err := document(&rec, units, epochs, signals)
	if err != nil {
		return nil, encodingError(err)
	}
	sess, err := doc.Build(s.session...)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "stored session is inconsistent").
			WithTextCode(codeEncoding)
	}
	logging.FromContext(ctx).Debug("store.loaded", "id", id, "name", sess.Name)
	return sess, nil
}

func document(rec *sessionRecord, units []unitRecord, epochs []epochRecord, signals []signalRecord) (*session.Document, error) {
	doc := &session.Document{
		Name:     rec.Name,
		TimeUnit: "s",
		Units:    make([]session.UnitDocument, 0, len(units)),
		Epochs:   make(map[string][][2]float64, len(epochs)),
	}
	if err := msgpack.Unmarshal(rec.Support, &doc.TimeSupport); err != nil {
		return nil, fmt.Errorf("time support: %w", err)
	}
	for _, u := range units {
		ud := session.UnitDocument{ID: u.Unit}
		if err := msgpack.Unmarshal(u.Times, &ud.Times); err != nil {
			return nil, fmt.Errorf("unit %d: %w", u.Unit, err)
		}
		if err := msgpack.Unmarshal(u.Metadata, &ud.Metadata); err != nil {
			return nil, fmt.Errorf("unit %d metadata: %w", u.Unit, err)
		}
		doc.Units = append(doc.Units, ud)
	}
	for _, e := range epochs {
		var pairs [][2]float64
		if err := msgpack.Unmarshal(e.Intervals, &pairs); err != nil {
			return nil, fmt.Errorf("epoch %q: %w", e.Name, err)
		}
		doc.Epochs[e.Name] = pairs
	}
	for _, sg := range signals {
		sd := session.SignalDocument{Name: sg.Name}
		if err := msgpack.Unmarshal(sg.Times, &sd.Times); err != nil {
			return nil, fmt.Errorf("signal %q: %w", sg.Name, err)
		}
		if err := msgpack.Unmarshal(sg.Values, &sd.Values); err != nil {
			return nil, fmt.Errorf("signal %q: %w", sg.Name, err)
		}
		doc.Signals = append(doc.Signals, sd)
	}
	return doc, nil
}

// List returns every stored session, oldest first.
func (s *Store) List(ctx context.Context) ([]Summary, error) {
	var recs []sessionRecord
	if err := s.db.NewSelect().Model(&recs).Column("id", "name", "slug", "created_at").
		Order("created_at ASC", "name ASC").Scan(ctx); err != nil {
		return nil, storageError(err, "list sessions")
	}
	out := make([]Summary, len(recs))
	for i, r := range recs {
		out[i] = Summary{ID: r.ID, Name: r.Name, Slug: r.Slug, CreatedAt: r.CreatedAt}
	}
	return out, nil
}

// FindByName returns the most recent session whose name or slug equals name.
func (s *Store) FindByName(ctx context.Context, name string) (uuid.UUID, error) {
	var rec sessionRecord
	err := s.db.NewSelect().Model(&rec).Column("id").
		Where("name = ? OR slug = ?", name, slugOf(name)).
		Order("created_at DESC").Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, goerrors.Wrap(fmt.Errorf("%w: %q", ErrNotFound, name), goerrors.CategoryNotFound, "session not found").
				WithTextCode(codeNotFound)
		}
		return uuid.Nil, storageError(err, "find session")
	}
	return rec.ID, nil
}

// Delete removes the session stored under id with all its rows.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewDelete().Model((*sessionRecord)(nil)).Where("id = ?", id).Exec(ctx)
		if err != nil {
			return storageError(err, "delete session")
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return notFoundError(id)
		}
		for _, m := range []any{(*unitRecord)(nil), (*epochRecord)(nil), (*signalRecord)(nil)} {
			if _, err := tx.NewDelete().Model(m).Where("session_id = ?", id).Exec(ctx); err != nil {
				return storageError(err, "delete session data")
			}
		}
		logging.FromContext(ctx).Debug("store.deleted", "id", id)
		return nil
	})
}

func slugOf(name string) string {
	s, err := slug.Normalize(name)
	if err != nil || s == "" {
		return name
	}
	return s
}

func notFoundError(id uuid.UUID) error {
	return goerrors.Wrap(fmt.Errorf("%w: %s", ErrNotFound, id), goerrors.CategoryNotFound, "session not found").
		WithTextCode(codeNotFound)
}

func storageError(err error, op string) error {
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, "store: "+op).WithTextCode(codeStorage)
}

func encodingError(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryInternal, "store: encode session").WithTextCode(codeEncoding)
}
