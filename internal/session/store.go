package session

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/yeymeap/L-systems/internal/settings"
)

// ErrNoSession is returned by Store.Load when no session was started.
var ErrNoSession = errors.New("no stepping session")

// State is a stepping session as persisted between commands.
type State struct {
	Settings settings.Settings
	Program  string
	Cursor   int
	OriginX  float64
	OriginY  float64
	PenDown  bool

	// Canvas size the session renders onto.
	Width, Height int
}

// Player rebuilds the player for this state with the cursor replayed.
func (st State) Player() *Player {
	p := NewPlayer(st.Settings.Interpreter(st.OriginX, st.OriginY, st.PenDown))
	p.Load(st.Program)
	p.Seek(st.Cursor)
	return p
}

// Store persists the single stepping session of a workspace.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Save replaces the stored session.
func (s *Store) Save(st State) error {
	var buf bytes.Buffer
	if err := settings.Encode(&buf, st.Settings); err != nil {
		return err
	}

	_, err := s.db.Exec(`
		INSERT INTO sessions (id, settings, program, cursor, origin_x, origin_y, pen_down, width, height)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			settings = excluded.settings,
			program = excluded.program,
			cursor = excluded.cursor,
			origin_x = excluded.origin_x,
			origin_y = excluded.origin_y,
			pen_down = excluded.pen_down,
			width = excluded.width,
			height = excluded.height,
			updated_at = datetime('now')
	`, buf.String(), st.Program, st.Cursor, st.OriginX, st.OriginY, st.PenDown, st.Width, st.Height)
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// SetCursor updates only the cursor of the stored session.
func (s *Store) SetCursor(cursor int) error {
	res, err := s.db.Exec(`UPDATE sessions SET cursor = ?, updated_at = datetime('now') WHERE id = 1`, cursor)
	if err != nil {
		return fmt.Errorf("updating cursor: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNoSession
	}
	return nil
}

// Load returns the stored session.
func (s *Store) Load() (State, error) {
	var st State
	var raw string
	err := s.db.QueryRow(`
		SELECT settings, program, cursor, origin_x, origin_y, pen_down, width, height
		FROM sessions WHERE id = 1
	`).Scan(&raw, &st.Program, &st.Cursor, &st.OriginX, &st.OriginY, &st.PenDown, &st.Width, &st.Height)
	if errors.Is(err, sql.ErrNoRows) {
		return State{}, ErrNoSession
	}
	if err != nil {
		return State{}, fmt.Errorf("loading session: %w", err)
	}

	st.Settings, err = settings.Decode(strings.NewReader(raw))
	if err != nil {
		return State{}, fmt.Errorf("loading session: %w", err)
	}
	return st, nil
}

// Delete removes the stored session, if any.
func (s *Store) Delete() error {
	if _, err := s.db.Exec(`DELETE FROM sessions WHERE id = 1`); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}
