// Package storage provides SQLite-based save slots for game sessions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-2048/internal/engine"
)

// ErrNotFound is returned when no slot matches.
var ErrNotFound = errors.New("storage: save slot not found")

// LatestRef selects the most recently updated slot in Resolve.
const LatestRef = "latest"

// Fixed width so that text ordering matches time ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store manages the SQLite database connection for save slots.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Slot is one saved board.
type Slot struct {
	ID        string
	Label     string
	State     engine.State
	Score     int
	Moves     int
	MaxTile   int
	Status    engine.Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dbPath, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, now: time.Now}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS saves (
			id TEXT PRIMARY KEY,
			label TEXT NOT NULL DEFAULT '',
			size INTEGER NOT NULL,
			win_target INTEGER NOT NULL,
			state TEXT NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			moves INTEGER NOT NULL DEFAULT 0,
			max_tile INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_saves_updated ON saves(updated_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save stores a board state in a new slot.
func (s *Store) Save(label string, st engine.State) (Slot, error) {
	slot, blob, err := newSlot(label, st)
	if err != nil {
		return Slot{}, err
	}
	slot.ID = uuid.NewString()
	slot.CreatedAt = s.now().UTC()
	slot.UpdatedAt = slot.CreatedAt

	_, err = s.db.Exec(
		`INSERT INTO saves
		 (id, label, size, win_target, state, score, moves, max_tile, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		slot.ID, slot.Label, st.Size, st.WinTarget, blob,
		slot.Score, slot.Moves, slot.MaxTile, string(slot.Status),
		slot.CreatedAt.Format(timeLayout), slot.UpdatedAt.Format(timeLayout),
	)
	if err != nil {
		return Slot{}, fmt.Errorf("storage: cannot save slot: %w", err)
	}
	return slot, nil
}

// Update overwrites the board state of an existing slot.
func (s *Store) Update(id string, st engine.State) (Slot, error) {
	existing, err := s.Load(id)
	if err != nil {
		return Slot{}, err
	}

	slot, blob, err := newSlot(existing.Label, st)
	if err != nil {
		return Slot{}, err
	}
	slot.ID = existing.ID
	slot.CreatedAt = existing.CreatedAt
	slot.UpdatedAt = s.now().UTC()

	res, err := s.db.Exec(
		`UPDATE saves
		 SET size = ?, win_target = ?, state = ?, score = ?, moves = ?, max_tile = ?, status = ?, updated_at = ?
		 WHERE id = ?`,
		st.Size, st.WinTarget, blob, slot.Score, slot.Moves, slot.MaxTile,
		string(slot.Status), slot.UpdatedAt.Format(timeLayout), slot.ID,
	)
	if err != nil {
		return Slot{}, fmt.Errorf("storage: cannot update slot: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Slot{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return slot, nil
}

// Load returns the slot with the given ID.
func (s *Store) Load(id string) (Slot, error) {
	row := s.db.QueryRow(selectSlot+` WHERE id = ?`, id)
	slot, err := scanSlot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Slot{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return slot, err
}

// Latest returns the most recently updated slot.
func (s *Store) Latest() (Slot, error) {
	row := s.db.QueryRow(selectSlot + ` ORDER BY updated_at DESC LIMIT 1`)
	slot, err := scanSlot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Slot{}, ErrNotFound
	}
	return slot, err
}

// likeEscaper makes user input match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// Resolve finds a slot by "latest", a full ID, or a unique ID prefix.
func (s *Store) Resolve(ref string) (Slot, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.EqualFold(ref, LatestRef) {
		return s.Latest()
	}
	if _, err := uuid.Parse(ref); err == nil {
		return s.Load(ref)
	}

	rows, err := s.db.Query(selectSlot+` WHERE id LIKE ? ESCAPE '\' ORDER BY updated_at DESC LIMIT 2`, likeEscaper.Replace(ref)+"%")
	if err != nil {
		return Slot{}, fmt.Errorf("storage: cannot query slots: %w", err)
	}
	slots, err := scanSlots(rows)
	if err != nil {
		return Slot{}, err
	}
	switch len(slots) {
	case 0:
		return Slot{}, fmt.Errorf("%w: %s", ErrNotFound, ref)
	case 1:
		return slots[0], nil
	default:
		return Slot{}, fmt.Errorf("storage: slot prefix %q is ambiguous", ref)
	}
}

// List retrieves up to limit slots, most recently updated first.
func (s *Store) List(limit int) ([]Slot, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(selectSlot+` ORDER BY updated_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query slots: %w", err)
	}
	return scanSlots(rows)
}

// Delete removes a slot.
func (s *Store) Delete(id string) error {
	res, err := s.db.Exec("DELETE FROM saves WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete slot: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// newSlot validates the state by restoring it and derives the summary
// columns from the restored board.
func newSlot(label string, st engine.State) (Slot, []byte, error) {
	board, err := engine.Restore(st, engine.WithoutSpawn())
	if err != nil {
		return Slot{}, nil, fmt.Errorf("storage: %w", err)
	}
	blob, err := json.Marshal(st)
	if err != nil {
		return Slot{}, nil, fmt.Errorf("storage: cannot encode state: %w", err)
	}
	return Slot{
		Label:   label,
		State:   board.State(),
		Score:   board.Score(),
		Moves:   board.Moves(),
		MaxTile: board.MaxTile(),
		Status:  board.Status(),
	}, blob, nil
}

const selectSlot = `SELECT id, label, state, score, moves, max_tile, status, created_at, updated_at FROM saves`

type scanner interface {
	Scan(dest ...any) error
}

func scanSlot(row scanner) (Slot, error) {
	var (
		slot               Slot
		blob, status       string
		createdAt, updated any
	)
	if err := row.Scan(&slot.ID, &slot.Label, &blob, &slot.Score, &slot.Moves, &slot.MaxTile,
		&status, &createdAt, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Slot{}, err
		}
		return Slot{}, fmt.Errorf("storage: cannot scan row: %w", err)
	}

	if err := json.Unmarshal([]byte(blob), &slot.State); err != nil {
		return Slot{}, fmt.Errorf("storage: slot %s: cannot decode state: %w", slot.ID, err)
	}
	slot.Status = engine.Status(status)
	slot.CreatedAt = parseTime(createdAt)
	slot.UpdatedAt = parseTime(updated)
	return slot, nil
}

func scanSlots(rows *sql.Rows) ([]Slot, error) {
	defer rows.Close()

	var slots []Slot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return slots, nil
}

// parseTime handles both time.Time and string columns.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if t, err := time.Parse(timeLayout, v); err == nil {
			return t
		}
		if t, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return t
		}
	}
	return time.Time{}
}
