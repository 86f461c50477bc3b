package style

import (
	"fmt"
	"strconv"
	"strings"
)

// LengthUnit tags how a Length value is measured.
type LengthUnit int

const (
	// UnitAuto means the value is unset and resolved by layout.
	UnitAuto LengthUnit = iota
	// UnitPx is an absolute pixel length.
	UnitPx
	// UnitPercent is relative to the containing dimension.
	UnitPercent
)

// String returns a human-readable representation of the unit.
func (u LengthUnit) String() string {
	switch u {
	case UnitAuto:
		return "auto"
	case UnitPx:
		return "px"
	case UnitPercent:
		return "%"
	default:
		return fmt.Sprintf("LengthUnit(%d)", int(u))
	}
}

// Length is a unit-tagged dimension. The zero value is auto.
type Length struct {
	Value float64
	Unit  LengthUnit
}

// Px returns a fixed pixel length.
func Px(v float64) Length { return Length{Value: v, Unit: UnitPx} }

// Percent returns a percentage length.
func Percent(v float64) Length { return Length{Value: v, Unit: UnitPercent} }

// Auto returns the auto length.
func Auto() Length { return Length{} }

// IsAuto reports whether the length is unset.
func (l Length) IsAuto() bool { return l.Unit == UnitAuto }

// Blend interpolates from the given length toward l at position t.
// Lengths with unlike units (or auto on either side) cannot be interpolated
// and snap to the target.
func (l Length) Blend(from Length, t float64) Length {
	if l.Unit != from.Unit || l.IsAuto() {
		return l
	}
	return Length{Value: from.Value + (l.Value-from.Value)*t, Unit: l.Unit}
}

// String renders the length in CSS notation.
func (l Length) String() string {
	switch l.Unit {
	case UnitAuto:
		return "auto"
	case UnitPercent:
		return strconv.FormatFloat(l.Value, 'g', -1, 64) + "%"
	default:
		return strconv.FormatFloat(l.Value, 'g', -1, 64) + "px"
	}
}

// ParseLength parses "auto", "<n>px", "<n>%" or a bare number (pixels).
func ParseLength(s string) (Length, error) {
	s = strings.TrimSpace(s)
	if s == "auto" || s == "" {
		return Auto(), nil
	}
	unit := UnitPx
	if v, ok := strings.CutSuffix(s, "%"); ok {
		s, unit = v, UnitPercent
	} else if v, ok := strings.CutSuffix(s, "px"); ok {
		s = v
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return Length{}, fmt.Errorf("invalid length %q: %w", s, err)
	}
	return Length{Value: v, Unit: unit}, nil
}

// Size is a pair of lengths, used for border radii.
type Size struct {
	Width  Length
	Height Length
}
