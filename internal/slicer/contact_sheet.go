package slicer

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
)

const (
	sheetPadding     = 10
	sheetLabelHeight = 20
)

// ContactSheet lays the portraits at paths out in a grid of cols columns,
// each scaled to thumb×thumb with its label underneath.
func ContactSheet(paths, labels []string, thumb, cols int) (image.Image, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no portraits for contact sheet")
	}
	if len(labels) != len(paths) {
		return nil, fmt.Errorf("got %d labels for %d portraits", len(labels), len(paths))
	}
	if thumb <= 0 || cols <= 0 {
		return nil, fmt.Errorf("invalid contact sheet layout: thumb=%d cols=%d", thumb, cols)
	}

	rows := (len(paths) + cols - 1) / cols
	cellH := thumb + sheetLabelHeight
	width := cols*(thumb+sheetPadding) + sheetPadding
	height := rows*(cellH+sheetPadding) + sheetPadding

	dc := gg.NewContext(width, height)
	dc.SetColor(color.White)
	dc.Clear()
	dc.SetColor(color.Black)

	for i, p := range paths {
		img, err := gg.LoadImage(p)
		if err != nil {
			return nil, fmt.Errorf("failed to load portrait %s: %w", p, err)
		}
		scaled := image.NewRGBA(image.Rect(0, 0, thumb, thumb))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Over, nil)

		x := sheetPadding + (i%cols)*(thumb+sheetPadding)
		y := sheetPadding + (i/cols)*(cellH+sheetPadding)
		dc.DrawImage(scaled, x, y)
		dc.DrawStringAnchored(labels[i], float64(x)+float64(thumb)/2, float64(y+thumb)+float64(sheetLabelHeight)/2, 0.5, 0.5)
	}
	return dc.Image(), nil
}

// WriteContactSheet renders a contact sheet to a PNG file.
func WriteContactSheet(out string, paths, labels []string, thumb, cols int) error {
	img, err := ContactSheet(paths, labels, thumb, cols)
	if err != nil {
		return err
	}
	if err := gg.SavePNG(out, img); err != nil {
		return fmt.Errorf("failed to write contact sheet: %w", err)
	}
	return nil
}
