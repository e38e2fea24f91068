package slicer

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Grid is the number of portrait rows and columns on a sheet.
type Grid struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// DefaultGrid is the 3×3 character sheet layout.
func DefaultGrid() Grid {
	return Grid{Rows: 3, Cols: 3}
}

// Cells is the number of portraits in the grid.
func (g Grid) Cells() int {
	return g.Rows * g.Cols
}

// Validate checks that the grid has at least one cell.
func (g Grid) Validate() error {
	if g.Rows <= 0 || g.Cols <= 0 {
		return fmt.Errorf("invalid grid %dx%d: rows and cols must be positive", g.Rows, g.Cols)
	}
	return nil
}

// DefaultNames returns the character names of the default sheet, row-major.
func DefaultNames() [][]string {
	return [][]string{
		{"Albert-Victor", "Lia-Startrace", "Marcus-Grayline"},
		{"Evelyn-Zero", "Knox-Ironlaw", "Sophia-Ember"},
		{"Cassian-Echo", "Mira-Dawnlight", "Renn-Chainbreaker"},
	}
}

// GeneratedNames names each cell portrait_<row>_<col>, counting from 1.
func GeneratedNames(g Grid) [][]string {
	names := make([][]string, g.Rows)
	for r := range names {
		names[r] = make([]string, g.Cols)
		for c := range names[r] {
			names[r][c] = fmt.Sprintf("portrait_%d_%d", r+1, c+1)
		}
	}
	return names
}

// LoadNames reads a YAML list of rows of names:
//
//	- [Albert-Victor, Lia-Startrace, Marcus-Grayline]
//	- [Evelyn-Zero, Knox-Ironlaw, Sophia-Ember]
func LoadNames(path string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read names file: %w", err)
	}
	var names [][]string
	if err := yaml.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("failed to parse names file %s: %w", path, err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("names file %s has no rows", path)
	}
	return names, nil
}

// ValidateNames checks that names matches the grid shape and that every name
// is a unique, non-empty file base name.
func ValidateNames(g Grid, names [][]string) error {
	if err := g.Validate(); err != nil {
		return err
	}
	if len(names) != g.Rows {
		return fmt.Errorf("names have %d rows, grid has %d", len(names), g.Rows)
	}

	var errs []error
	seen := make(map[string]bool, g.Cells())
	for r, row := range names {
		if len(row) != g.Cols {
			errs = append(errs, fmt.Errorf("row %d has %d names, grid has %d columns", r+1, len(row), g.Cols))
			continue
		}
		for c, name := range row {
			switch {
			case strings.TrimSpace(name) == "":
				errs = append(errs, fmt.Errorf("name at row %d col %d is empty", r+1, c+1))
			case strings.ContainsAny(name, `/\`) || name == "." || name == "..":
				errs = append(errs, fmt.Errorf("name %q at row %d col %d is not a file name", name, r+1, c+1))
			case seen[name]:
				errs = append(errs, fmt.Errorf("duplicate name %q", name))
			}
			seen[name] = true
		}
	}
	return errors.Join(errs...)
}
