package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/yeymeap/L-systems/internal/turtle"
)

// Rasterize draws segs onto an RGBA image of opts.Width x opts.Height by
// rendering the SVG document and scanning it.
func Rasterize(segs []turtle.Segment, opts Options) (*image.RGBA, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", opts.Width, opts.Height)
	}

	var svg bytes.Buffer
	if err := WriteSVG(&svg, segs, opts); err != nil {
		return nil, err
	}

	icon, err := oksvg.ReadIconStream(&svg)
	if err != nil {
		return nil, fmt.Errorf("parsing svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(opts.Width), float64(opts.Height))

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	scanner := rasterx.NewScannerGV(opts.Width, opts.Height, img, img.Bounds())
	raster := rasterx.NewDasher(opts.Width, opts.Height, scanner)
	icon.Draw(raster, 1.0)

	return img, nil
}

// WritePNG rasterizes segs and encodes the result as PNG.
func WritePNG(w io.Writer, segs []turtle.Segment, opts Options) error {
	img, err := Rasterize(segs, opts)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}
