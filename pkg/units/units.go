// Package units resolves catalog lengths into the document's working unit.
//
// Every length derived from one profile goes through the same Converter,
// so ratios between catalog fields are preserved exactly regardless of the
// working unit a document is configured with.
package units

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownUnit is returned when a unit token is not recognized.
var ErrUnknownUnit = errors.New("unknown length unit")

// Unit is a length unit token.
type Unit string

const (
	Millimeter Unit = "mm"
	Centimeter Unit = "cm"
	Inch       Unit = "in"
)

// millimeters of one unit.
var toMM = map[Unit]float64{
	Millimeter: 1,
	Centimeter: 10,
	Inch:       25.4,
}

// Valid reports whether u is a recognized unit token.
func (u Unit) Valid() bool {
	_, ok := toMM[u]
	return ok
}

// Length is an unresolved (magnitude, unit) pair.
type Length struct {
	Value float64
	Unit  Unit
}

// String formats the length as "<value><unit>", e.g. "500mm".
func (l Length) String() string {
	return strconv.FormatFloat(l.Value, 'g', -1, 64) + string(l.Unit)
}

// ParseLength parses expressions like "500mm", "19.5 in", or "500" (which
// assumes def). The unit suffix is case-insensitive.
func ParseLength(expr string, def Unit) (Length, error) {
	s := strings.TrimSpace(strings.ToLower(expr))
	if s == "" {
		return Length{}, fmt.Errorf("empty length expression")
	}
	unit := def
	for u := range toMM {
		if strings.HasSuffix(s, string(u)) {
			unit = u
			s = strings.TrimSpace(strings.TrimSuffix(s, string(u)))
			break
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Length{}, fmt.Errorf("parse length %q: %w", expr, err)
	}
	return Length{Value: v, Unit: unit}, nil
}

// Converter resolves lengths into a fixed working unit.
type Converter struct {
	working Unit
}

// NewConverter creates a converter targeting the given working unit.
func NewConverter(working Unit) (*Converter, error) {
	if !working.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownUnit, working)
	}
	return &Converter{working: working}, nil
}

// Working returns the converter's working unit.
func (c *Converter) Working() Unit { return c.working }

// Resolve converts magnitude in the given unit to the working unit.
func (c *Converter) Resolve(magnitude float64, unit Unit) (float64, error) {
	f, ok := toMM[unit]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, unit)
	}
	return magnitude * f / toMM[c.working], nil
}

// ResolveLength converts a Length to the working unit.
func (c *Converter) ResolveLength(l Length) (float64, error) {
	return c.Resolve(l.Value, l.Unit)
}
