// Package preset stores named settings in the workspace database.
package preset

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/yeymeap/L-systems/internal/settings"
)

// ErrNotFound is returned when no preset has the requested name.
var ErrNotFound = errors.New("preset not found")

// Preset is a named settings record.
type Preset struct {
	ID       int64
	Name     string
	Settings settings.Settings
}

// Store reads and writes presets.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Save inserts or replaces the preset called name.
func (s *Store) Save(name string, st settings.Settings) (int64, error) {
	if name == "" {
		return 0, fmt.Errorf("preset name is required")
	}

	_, err := s.db.Exec(`
		INSERT INTO presets (name, axiom, rules, variables, constants, iterations, angle, step, pen_width, canvas_color, pen_color)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			axiom = excluded.axiom,
			rules = excluded.rules,
			variables = excluded.variables,
			constants = excluded.constants,
			iterations = excluded.iterations,
			angle = excluded.angle,
			step = excluded.step,
			pen_width = excluded.pen_width,
			canvas_color = excluded.canvas_color,
			pen_color = excluded.pen_color,
			updated_at = datetime('now')
	`, name, st.Axiom, st.Rules, st.Variables, st.Constants, st.Iterations,
		st.Angle, st.Step, st.PenWidth, st.CanvasColor, st.PenColor)
	if err != nil {
		return 0, fmt.Errorf("saving preset %s: %w", name, err)
	}

	var id int64
	if err := s.db.QueryRow(`SELECT id FROM presets WHERE name = ?`, name).Scan(&id); err != nil {
		return 0, fmt.Errorf("reading preset id: %w", err)
	}
	return id, nil
}

const selectPreset = `
	SELECT id, name, axiom, rules, variables, constants, iterations, angle, step, pen_width, canvas_color, pen_color
	FROM presets`

type scanner interface {
	Scan(dest ...any) error
}

func scanPreset(row scanner) (Preset, error) {
	var p Preset
	st := &p.Settings
	err := row.Scan(&p.ID, &p.Name, &st.Axiom, &st.Rules, &st.Variables, &st.Constants,
		&st.Iterations, &st.Angle, &st.Step, &st.PenWidth, &st.CanvasColor, &st.PenColor)
	return p, err
}

// Get returns the preset called name.
func (s *Store) Get(name string) (Preset, error) {
	p, err := scanPreset(s.db.QueryRow(selectPreset+` WHERE name = ?`, name))
	if errors.Is(err, sql.ErrNoRows) {
		return Preset{}, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if err != nil {
		return Preset{}, fmt.Errorf("querying preset %s: %w", name, err)
	}
	return p, nil
}

// List returns every preset ordered by name.
func (s *Store) List() ([]Preset, error) {
	rows, err := s.db.Query(selectPreset + ` ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("querying presets: %w", err)
	}
	defer rows.Close()

	var presets []Preset
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning preset: %w", err)
		}
		presets = append(presets, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating presets: %w", err)
	}
	return presets, nil
}

// Delete removes the preset called name.
func (s *Store) Delete(name string) error {
	res, err := s.db.Exec(`DELETE FROM presets WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("deleting preset %s: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting preset %s: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	return nil
}
