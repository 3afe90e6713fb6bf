package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// sessionRecord is one imported recording session. Array columns hold
// msgpack-encoded float64 slices, in seconds.
type sessionRecord struct {
	bun.BaseModel `bun:"table:sessions,alias:s"`

	ID        uuid.UUID `bun:",pk,type:uuid"`
	Name      string    `bun:"name,notnull"`
	Slug      string    `bun:"slug,notnull"`
	Support   []byte    `bun:"support"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

type unitRecord struct {
	bun.BaseModel `bun:"table:units,alias:u"`

	ID        int64     `bun:",pk,autoincrement"`
	SessionID uuid.UUID `bun:"session_id,type:uuid,notnull"`
	Unit      int       `bun:"unit,notnull"`
	Times     []byte    `bun:"times"`
	Metadata  []byte    `bun:"metadata"`
}

type epochRecord struct {
	bun.BaseModel `bun:"table:epochs,alias:e"`

	ID        int64     `bun:",pk,autoincrement"`
	SessionID uuid.UUID `bun:"session_id,type:uuid,notnull"`
	Name      string    `bun:"name,notnull"`
	Intervals []byte    `bun:"intervals"`
}

type signalRecord struct {
	bun.BaseModel `bun:"table:signals,alias:sg"`

	ID        int64     `bun:",pk,autoincrement"`
	SessionID uuid.UUID `bun:"session_id,type:uuid,notnull"`
	Name      string    `bun:"name,notnull"`
	Times     []byte    `bun:"times"`
	Values    []byte    `bun:"values"`
}

// Summary describes a stored session without loading its data.
type Summary struct {
	ID        uuid.UUID
	Name      string
	Slug      string
	CreatedAt time.Time
}
