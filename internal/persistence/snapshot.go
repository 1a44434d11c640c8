package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dpaq7/forge-steel-summoner-sub001/internal/engine"
	_ "modernc.org/sqlite"
)

const snapshotSchema = `
CREATE TABLE IF NOT EXISTS snapshots (
	hero_id     TEXT    NOT NULL,
	event_count INTEGER NOT NULL,
	label       TEXT    NOT NULL DEFAULT '',
	state_json  BLOB    NOT NULL,
	created_at  INTEGER NOT NULL,
	PRIMARY KEY (hero_id, event_count)
);`

// Snapshot is a projected state saved after EventCount events of a hero log.
type Snapshot struct {
	HeroID     string
	EventCount int
	Label      string
	State      json.RawMessage
	CreatedAt  time.Time
}

// SnapshotStore keeps projected hero states in SQLite so long logs replay from a checkpoint.
type SnapshotStore struct {
	sqlDB *sql.DB
}

// OpenSnapshots opens and migrates the snapshot database at path.
func OpenSnapshots(path string) (*SnapshotStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("snapshot path is required")
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(snapshotSchema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create snapshot schema: %w", err)
	}
	return &SnapshotStore{sqlDB: sqlDB}, nil
}

// Close releases the underlying SQLite connection.
func (s *SnapshotStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Save stores the projection of state taken after eventCount events.
func (s *SnapshotStore) Save(ctx context.Context, heroID string, eventCount int, label string, state *engine.GameState) (Snapshot, error) {
	if s == nil || s.sqlDB == nil {
		return Snapshot{}, fmt.Errorf("snapshot storage is not configured")
	}
	if state == nil || state.Hero == nil {
		return Snapshot{}, fmt.Errorf("nothing to snapshot for %s", heroID)
	}
	payload, err := json.Marshal(state)
	if err != nil {
		return Snapshot{}, fmt.Errorf("encode state: %w", err)
	}

	snap := Snapshot{
		HeroID:     heroID,
		EventCount: eventCount,
		Label:      label,
		State:      payload,
		CreatedAt:  time.Now().UTC(),
	}
	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT INTO snapshots (hero_id, event_count, label, state_json, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(hero_id, event_count) DO UPDATE SET
		    label = excluded.label,
		    state_json = excluded.state_json,
		    created_at = excluded.created_at`,
		snap.HeroID, snap.EventCount, snap.Label, []byte(snap.State), snap.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return Snapshot{}, fmt.Errorf("put snapshot: %w", err)
	}
	return snap, nil
}

// Latest returns the snapshot covering the most events of a hero log.
func (s *SnapshotStore) Latest(ctx context.Context, heroID string) (Snapshot, bool, error) {
	if s == nil || s.sqlDB == nil {
		return Snapshot{}, false, fmt.Errorf("snapshot storage is not configured")
	}
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT hero_id, event_count, label, state_json, created_at
		 FROM snapshots WHERE hero_id = ?
		 ORDER BY event_count DESC LIMIT 1`,
		heroID,
	)
	snap, err := scanSnapshot(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Snapshot{}, false, nil
		}
		return Snapshot{}, false, fmt.Errorf("get snapshot: %w", err)
	}
	return snap, true, nil
}

// List returns every snapshot of a hero, oldest first.
func (s *SnapshotStore) List(ctx context.Context, heroID string) ([]Snapshot, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("snapshot storage is not configured")
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT hero_id, event_count, label, state_json, created_at
		 FROM snapshots WHERE hero_id = ?
		 ORDER BY event_count ASC`,
		heroID,
	)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(r rowScanner) (Snapshot, error) {
	var snap Snapshot
	var payload []byte
	var createdAt int64
	if err := r.Scan(&snap.HeroID, &snap.EventCount, &snap.Label, &payload, &createdAt); err != nil {
		return Snapshot{}, err
	}
	snap.State = payload
	snap.CreatedAt = time.UnixMilli(createdAt).UTC()
	return snap, nil
}
