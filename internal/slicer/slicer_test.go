package slicer

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/fogleman/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sheet builds a w×h image whose cells are filled with distinct colors.
func sheet(w, h int, g Grid) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	cw, ch := w/g.Cols, h/g.Rows
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, c := min(y/ch, g.Rows-1), min(x/cw, g.Cols-1)
			img.Set(x, y, cellColor(r, c))
		}
	}
	return img
}

func cellColor(r, c int) color.RGBA {
	return color.RGBA{R: uint8(40 * (r + 1)), G: uint8(40 * (c + 1)), B: 200, A: 255}
}

func TestSlice_DefaultSheet(t *testing.T) {
	s, err := New(Options{})
	require.NoError(t, err)
	dir := filepath.Join(t.TempDir(), "heads")

	paths, err := s.Slice(context.Background(), sheet(300, 300, DefaultGrid()), dir)
	require.NoError(t, err)
	require.Len(t, paths, 9)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 9)

	names := s.Names()
	for i, p := range paths {
		assert.Equal(t, filepath.Join(dir, names[i]+".png"), p)

		img, err := gg.LoadImage(p)
		require.NoError(t, err)
		assert.Equal(t, 100, img.Bounds().Dx())
		assert.Equal(t, 100, img.Bounds().Dy())

		want := cellColor(i/3, i%3)
		got := color.RGBAModel.Convert(img.At(50, 50)).(color.RGBA)
		assert.Equal(t, want, got, "cell %d (%s)", i, names[i])
	}
	assert.Equal(t, filepath.Join(dir, "Albert-Victor.png"), paths[0])
	assert.Equal(t, filepath.Join(dir, "Renn-Chainbreaker.png"), paths[8])
}

func TestSlice_RemainderDropped(t *testing.T) {
	s, err := New(Options{Grid: Grid{Rows: 2, Cols: 3}})
	require.NoError(t, err)

	paths, err := s.Slice(context.Background(), sheet(302, 201, Grid{Rows: 2, Cols: 3}), t.TempDir())
	require.NoError(t, err)
	require.Len(t, paths, 6)
	assert.Equal(t, "portrait_2_3.png", filepath.Base(paths[5]))

	img, err := gg.LoadImage(paths[5])
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 100, 100), img.Bounds())
}

func TestSlice_OffsetBounds(t *testing.T) {
	s, err := New(Options{Grid: Grid{Rows: 1, Cols: 2}, Names: [][]string{{"left", "right"}}})
	require.NoError(t, err)

	img := image.NewRGBA(image.Rect(10, 10, 50, 30))
	for y := 10; y < 30; y++ {
		for x := 10; x < 50; x++ {
			img.Set(x, y, cellColor(0, (x-10)/20))
		}
	}
	paths, err := s.Slice(context.Background(), img, t.TempDir())
	require.NoError(t, err)

	right, err := gg.LoadImage(paths[1])
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 20, 20), right.Bounds())
	assert.Equal(t, cellColor(0, 1), color.RGBAModel.Convert(right.At(5, 5)).(color.RGBA))
}

func TestSlice_TooSmall(t *testing.T) {
	s, err := New(Options{})
	require.NoError(t, err)

	_, err = s.Slice(context.Background(), image.NewRGBA(image.Rect(0, 0, 2, 2)), t.TempDir())
	assert.ErrorContains(t, err, "too small")
}

func TestSlice_CanceledContext(t *testing.T) {
	s, err := New(Options{})
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.Slice(ctx, sheet(30, 30, DefaultGrid()), t.TempDir())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSliceFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "sheet.png")
	require.NoError(t, gg.SavePNG(src, sheet(90, 90, DefaultGrid())))

	s, err := New(Options{Concurrency: 1})
	require.NoError(t, err)
	paths, err := s.SliceFile(context.Background(), src, filepath.Join(dir, "out"))
	require.NoError(t, err)
	assert.Len(t, paths, 9)

	_, err = s.SliceFile(context.Background(), filepath.Join(dir, "missing.png"), dir)
	assert.Error(t, err)
}

func TestNew_InvalidNames(t *testing.T) {
	_, err := New(Options{Grid: Grid{Rows: 1, Cols: 2}, Names: [][]string{{"a", "a"}}})
	assert.ErrorContains(t, err, "duplicate")

	_, err = New(Options{Grid: Grid{Rows: -1, Cols: 2}})
	assert.Error(t, err)
}

func TestContactSheet(t *testing.T) {
	dir := t.TempDir()
	s, err := New(Options{})
	require.NoError(t, err)
	paths, err := s.Slice(context.Background(), sheet(300, 300, DefaultGrid()), dir)
	require.NoError(t, err)

	img, err := ContactSheet(paths, s.Names(), 64, 3)
	require.NoError(t, err)
	assert.Equal(t, 3*(64+sheetPadding)+sheetPadding, img.Bounds().Dx())
	assert.Equal(t, 3*(64+sheetLabelHeight+sheetPadding)+sheetPadding, img.Bounds().Dy())

	// Top-left thumbnail keeps its cell color.
	got := color.RGBAModel.Convert(img.At(sheetPadding+32, sheetPadding+32)).(color.RGBA)
	want := cellColor(0, 0)
	assert.InDelta(t, want.R, got.R, 2)
	assert.InDelta(t, want.G, got.G, 2)
	assert.InDelta(t, want.B, got.B, 2)

	out := filepath.Join(dir, "contact_sheet.png")
	require.NoError(t, WriteContactSheet(out, paths, s.Names(), 64, 3))
	_, err = os.Stat(out)
	assert.NoError(t, err)

	_, err = ContactSheet(paths, s.Names()[:2], 64, 3)
	assert.Error(t, err)
	_, err = ContactSheet(nil, nil, 64, 3)
	assert.Error(t, err)
}
