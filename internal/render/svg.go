// Package render turns a turtle's draw events into SVG and PNG images.
package render

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"

	"github.com/yeymeap/L-systems/internal/turtle"
)

// Options describes the canvas segments are drawn onto.
type Options struct {
	Width, Height int
	Background    color.NRGBA

	// Fit scales and centers the drawing to the canvas, leaving Margin
	// pixels on each side. Otherwise segment coordinates are canvas pixels.
	Fit    bool
	Margin float64
}

// Bounds returns the smallest rectangle containing every segment.
func Bounds(segs []turtle.Segment) (minX, minY, maxX, maxY float64) {
	if len(segs) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, s := range segs {
		minX = math.Min(minX, math.Min(s.X1, s.X2))
		minY = math.Min(minY, math.Min(s.Y1, s.Y2))
		maxX = math.Max(maxX, math.Max(s.X1, s.X2))
		maxY = math.Max(maxY, math.Max(s.Y1, s.Y2))
	}
	return minX, minY, maxX, maxY
}

// transform maps turtle coordinates to canvas coordinates.
type transform struct {
	scale, dx, dy float64
}

func (t transform) apply(x, y float64) (float64, float64) {
	return x*t.scale + t.dx, y*t.scale + t.dy
}

func fitTransform(segs []turtle.Segment, opts Options) transform {
	if !opts.Fit || len(segs) == 0 {
		return transform{scale: 1}
	}
	minX, minY, maxX, maxY := Bounds(segs)
	w, h := maxX-minX, maxY-minY
	availW := float64(opts.Width) - 2*opts.Margin
	availH := float64(opts.Height) - 2*opts.Margin

	scale := 1.0
	switch {
	case w > 0 && h > 0:
		scale = math.Min(availW/w, availH/h)
	case w > 0:
		scale = availW / w
	case h > 0:
		scale = availH / h
	}
	if scale <= 0 {
		scale = 1
	}

	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	return transform{
		scale: scale,
		dx:    float64(opts.Width)/2 - cx*scale,
		dy:    float64(opts.Height)/2 - cy*scale,
	}
}

// WriteSVG writes segs as an SVG document of line elements, in draw order.
func WriteSVG(w io.Writer, segs []turtle.Segment, opts Options) error {
	bw := bufio.NewWriter(w)
	tr := fitTransform(segs, opts)

	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		opts.Width, opts.Height, opts.Width, opts.Height)
	fmt.Fprintf(bw, `<rect x="0" y="0" width="%d" height="%d" fill="%s"%s/>`+"\n",
		opts.Width, opts.Height, hexRGB(opts.Background), opacityAttr("fill-opacity", opts.Background))

	for _, s := range segs {
		x1, y1 := tr.apply(s.X1, s.Y1)
		x2, y2 := tr.apply(s.X2, s.Y2)
		fmt.Fprintf(bw, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s"%s stroke-width="%s" stroke-linecap="round"/>`+"\n",
			num(x1), num(y1), num(x2), num(y2),
			hexRGB(s.Color), opacityAttr("stroke-opacity", s.Color), num(s.Width))
	}

	fmt.Fprintln(bw, `</svg>`)
	return bw.Flush()
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func hexRGB(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func opacityAttr(name string, c color.NRGBA) string {
	if c.A == 0xff {
		return ""
	}
	return fmt.Sprintf(` %s="%s"`, name, strconv.FormatFloat(float64(c.A)/255, 'f', 3, 64))
}
