package settings

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ARGB packs c as a signed 32-bit 0xAARRGGBB value.
func ARGB(c color.NRGBA) int32 {
	return int32(uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B))
}

// FromARGB unpacks a 0xAARRGGBB value. Channels are not premultiplied.
func FromARGB(v int32) color.NRGBA {
	u := uint32(v)
	return color.NRGBA{
		A: uint8(u >> 24),
		R: uint8(u >> 16),
		G: uint8(u >> 8),
		B: uint8(u),
	}
}

// ParseColor accepts an SVG color name ("orange"), "#rrggbb", "#aarrggbb"
// or a decimal ARGB integer.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.NRGBA{}, fmt.Errorf("empty color")
	}

	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		// Every named color is opaque, so its channels need no unpremultiplying.
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}

	if hex, ok := strings.CutPrefix(s, "#"); ok {
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
		}
		switch len(hex) {
		case 6:
			return FromARGB(int32(uint32(v) | 0xff000000)), nil
		case 8:
			return FromARGB(int32(uint32(v))), nil
		}
		return color.NRGBA{}, fmt.Errorf("invalid color %q: want #rrggbb or #aarrggbb", s)
	}

	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v < -1<<31 || v > 1<<32-1 {
		return color.NRGBA{}, fmt.Errorf("unknown color %q", s)
	}
	return FromARGB(int32(uint32(v))), nil
}

// FormatColor renders c as "#rrggbb", or "#aarrggbb" when not opaque.
func FormatColor(c color.NRGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.A, c.R, c.G, c.B)
}

func mustColor(name string) color.NRGBA {
	c, err := ParseColor(name)
	if err != nil {
		panic(err)
	}
	return c
}
