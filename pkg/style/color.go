package style

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Color is stored as ARGB (0xAARRGGBB).
type Color uint32

// RGBA8 constructs a Color from red, green, blue, alpha bytes (all 0-255).
func RGBA8(r, g, b, a uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// RGB constructs an opaque Color from red, green, blue bytes.
func RGB(r, g, b uint8) Color {
	return RGBA8(r, g, b, 0xFF)
}

// Red returns the red component byte.
func (c Color) Red() uint8 { return uint8(c >> 16) }

// Green returns the green component byte.
func (c Color) Green() uint8 { return uint8(c >> 8) }

// Blue returns the blue component byte.
func (c Color) Blue() uint8 { return uint8(c) }

// Alpha returns the alpha component byte.
func (c Color) Alpha() uint8 { return uint8(c >> 24) }

// Common colors.
const (
	ColorTransparent = Color(0x00000000)
	ColorBlack       = Color(0xFF000000)
	ColorWhite       = Color(0xFFFFFFFF)
)

// MaybeColor is a color that may be unset. Unset colors inherit the style's
// foreground color when compared or blended.
type MaybeColor struct {
	Color Color
	Set   bool
}

// SomeColor wraps a concrete color value.
func SomeColor(c Color) MaybeColor {
	return MaybeColor{Color: c, Set: true}
}

// Or returns the wrapped color, or fallback when unset.
func (m MaybeColor) Or(fallback Color) Color {
	if m.Set {
		return m.Color
	}
	return fallback
}

// ParseColor parses a color from a hex form (#RGB, #RRGGBB, #AARRGGBB) or an
// SVG 1.1 color name such as "cornflowerblue".
func ParseColor(s string) (Color, error) {
	if hex, ok := strings.CutPrefix(s, "#"); ok {
		switch len(hex) {
		case 3:
			v, err := strconv.ParseUint(hex, 16, 32)
			if err != nil {
				return 0, fmt.Errorf("invalid color %q: %w", s, err)
			}
			r := uint8(v >> 8 & 0xF)
			g := uint8(v >> 4 & 0xF)
			b := uint8(v & 0xF)
			return RGB(r<<4|r, g<<4|g, b<<4|b), nil
		case 6:
			v, err := strconv.ParseUint(hex, 16, 32)
			if err != nil {
				return 0, fmt.Errorf("invalid color %q: %w", s, err)
			}
			return Color(0xFF000000 | uint32(v)), nil
		case 8:
			v, err := strconv.ParseUint(hex, 16, 32)
			if err != nil {
				return 0, fmt.Errorf("invalid color %q: %w", s, err)
			}
			return Color(uint32(v)), nil
		default:
			return 0, fmt.Errorf("invalid color %q: hex form must have 3, 6 or 8 digits", s)
		}
	}
	if rgba, ok := colornames.Map[strings.ToLower(s)]; ok {
		return RGBA8(rgba.R, rgba.G, rgba.B, rgba.A), nil
	}
	return 0, fmt.Errorf("unknown color name %q", s)
}
