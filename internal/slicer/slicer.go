// Package slicer cuts a character sprite sheet into one PNG per portrait.
package slicer

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	"os"
	"path/filepath"
	"time"

	"resumegraph/internal/logging"

	"github.com/fogleman/gg"
	"go.uber.org/zap"
	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds the number of cells encoded at once.
const DefaultConcurrency = 4

// Options configures a Slicer.
type Options struct {
	Grid        Grid
	Names       [][]string // nil selects DefaultNames for a 3×3 grid, generated names otherwise
	Concurrency int
	Logger      *zap.Logger
}

// Slicer crops a grid of portraits out of one image.
type Slicer struct {
	grid        Grid
	names       [][]string
	concurrency int
	log         *zap.Logger
}

// New validates the grid and names and returns a Slicer.
func New(opts Options) (*Slicer, error) {
	grid := opts.Grid
	if grid == (Grid{}) {
		grid = DefaultGrid()
	}
	if err := grid.Validate(); err != nil {
		return nil, err
	}

	names := opts.Names
	if names == nil {
		if grid == DefaultGrid() {
			names = DefaultNames()
		} else {
			names = GeneratedNames(grid)
		}
	}
	if err := ValidateNames(grid, names); err != nil {
		return nil, fmt.Errorf("invalid portrait names: %w", err)
	}

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	log := logging.OrNop(opts.Logger)
	return &Slicer{grid: grid, names: names, concurrency: concurrency, log: log}, nil
}

// Grid returns the slicer's grid.
func (s *Slicer) Grid() Grid { return s.grid }

// Names returns the portrait names in row-major order.
func (s *Slicer) Names() []string {
	out := make([]string, 0, s.grid.Cells())
	for _, row := range s.names {
		out = append(out, row...)
	}
	return out
}

// CellSize is the portrait size for an image of the given bounds. Remainder
// pixels on the right and bottom edges are dropped.
func (s *Slicer) CellSize(bounds image.Rectangle) (int, int) {
	return bounds.Dx() / s.grid.Cols, bounds.Dy() / s.grid.Rows
}

// Slice writes one <name>.png per cell into outDir and returns the paths in
// row-major order.
func (s *Slicer) Slice(ctx context.Context, img image.Image, outDir string) ([]string, error) {
	start := time.Now()
	b := img.Bounds()
	cw, ch := s.CellSize(b)
	if cw == 0 || ch == 0 {
		return nil, fmt.Errorf("image %dx%d is too small for a %dx%d grid", b.Dx(), b.Dy(), s.grid.Rows, s.grid.Cols)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	paths := make([]string, s.grid.Cells())
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for r := 0; r < s.grid.Rows; r++ {
		for c := 0; c < s.grid.Cols; c++ {
			i := r*s.grid.Cols + c
			name := s.names[r][c]
			src := image.Rect(b.Min.X+c*cw, b.Min.Y+r*ch, b.Min.X+(c+1)*cw, b.Min.Y+(r+1)*ch)

			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				cell := image.NewRGBA(image.Rect(0, 0, cw, ch))
				draw.Draw(cell, cell.Bounds(), img, src.Min, draw.Src)

				path := filepath.Join(outDir, name+".png")
				if err := gg.SavePNG(path, cell); err != nil {
					return fmt.Errorf("failed to write %s: %w", path, err)
				}
				paths[i] = path
				s.log.Debug("portrait written",
					zap.String("name", name),
					zap.Int("row", r),
					zap.Int("col", c))
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.log.Info("sheet sliced",
		zap.Int("portraits", len(paths)),
		zap.Int("cell_width", cw),
		zap.Int("cell_height", ch),
		zap.String("out_dir", outDir),
		zap.Duration("elapsed", time.Since(start)))
	return paths, nil
}

// SliceFile decodes a PNG or JPEG sheet and slices it.
func (s *Slicer) SliceFile(ctx context.Context, path, outDir string) ([]string, error) {
	img, err := gg.LoadImage(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load image %s: %w", path, err)
	}
	return s.Slice(ctx, img, outDir)
}
