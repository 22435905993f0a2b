// Package profile holds the catalog of standard T-slot extrusion
// cross-section specifications.
//
// The built-in catalog covers common 80/20, Misumi, and Bosch Rexroth
// series. A user catalog in TOML format can add or override entries; see
// [Catalog.LoadOverlay].
package profile

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/slotforge/slotforge/pkg/units"
)

var (
	// ErrInvalidSpec is returned when a catalog entry is non-positive or
	// otherwise geometrically degenerate.
	ErrInvalidSpec = errors.New("invalid profile spec")

	// ErrNotFound is returned when a profile name is not in the catalog.
	ErrNotFound = errors.New("profile not found")
)

// Spec is an immutable named cross-section specification. All magnitudes
// are in the spec's own Unit.
type Spec struct {
	Name string `toml:"-" json:"name"`

	Unit   units.Unit `toml:"unit" json:"unit"`
	Width  float64    `toml:"width" json:"width"`
	Height float64    `toml:"height" json:"height"`

	// SlotCenterFromFace is the distance from an outer face to the slot
	// centerline of the adjacent sides.
	SlotCenterFromFace float64 `toml:"slot_center_from_face" json:"slot_center_from_face"`
	SlotDepth          float64 `toml:"slot_depth" json:"slot_depth"`
	SlotNeck           float64 `toml:"slot_neck" json:"slot_neck"`
	SlotOpen           float64 `toml:"slot_open" json:"slot_open"`

	CenterBoreDiameter float64 `toml:"center_bore_d" json:"center_bore_d"`
	EndTapDiameter     float64 `toml:"end_tap_d" json:"end_tap_d"`
}

// Validate checks the spec's geometric invariants: all magnitudes strictly
// positive, the slot mouth no wider than the neck, the neck narrower than
// the bar, and bore/tap diameters smaller than the neck (a wider hole
// would self-intersect the slot cuts).
func (s Spec) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"width", s.Width},
		{"height", s.Height},
		{"slot_center_from_face", s.SlotCenterFromFace},
		{"slot_depth", s.SlotDepth},
		{"slot_neck", s.SlotNeck},
		{"slot_open", s.SlotOpen},
		{"center_bore_d", s.CenterBoreDiameter},
		{"end_tap_d", s.EndTapDiameter},
	}
	for _, f := range fields {
		if f.v <= 0 || math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s = %g", ErrInvalidSpec, f.name, f.v)
		}
	}
	if !s.Unit.Valid() {
		return fmt.Errorf("%w: unit %q", ErrInvalidSpec, s.Unit)
	}
	if s.SlotOpen > s.SlotNeck {
		return fmt.Errorf("%w: slot_open %g wider than slot_neck %g", ErrInvalidSpec, s.SlotOpen, s.SlotNeck)
	}
	if min := math.Min(s.Width, s.Height); s.SlotNeck >= min {
		return fmt.Errorf("%w: slot_neck %g not smaller than bar size %g", ErrInvalidSpec, s.SlotNeck, min)
	}
	if s.SlotDepth >= math.Min(s.Width, s.Height)/2 {
		return fmt.Errorf("%w: slot_depth %g reaches past the bar center", ErrInvalidSpec, s.SlotDepth)
	}
	if s.CenterBoreDiameter >= s.SlotNeck {
		return fmt.Errorf("%w: center_bore_d %g not smaller than slot_neck %g", ErrInvalidSpec, s.CenterBoreDiameter, s.SlotNeck)
	}
	if s.EndTapDiameter >= s.SlotNeck {
		return fmt.Errorf("%w: end_tap_d %g not smaller than slot_neck %g", ErrInvalidSpec, s.EndTapDiameter, s.SlotNeck)
	}
	return nil
}

// Resolved is a Spec with every field converted into the working unit.
type Resolved struct {
	Spec Spec // the source spec, unmodified

	Width              float64
	Height             float64
	SlotCenterFromFace float64
	SlotDepth          float64
	SlotNeck           float64
	SlotOpen           float64
	CenterBoreDiameter float64
	EndTapDiameter     float64
}

// Resolve converts every catalog field through the same converter so the
// ratios between fields survive any working-unit configuration.
func (s Spec) Resolve(conv *units.Converter) (Resolved, error) {
	r := Resolved{Spec: s}
	for _, f := range []struct {
		dst *float64
		src float64
	}{
		{&r.Width, s.Width},
		{&r.Height, s.Height},
		{&r.SlotCenterFromFace, s.SlotCenterFromFace},
		{&r.SlotDepth, s.SlotDepth},
		{&r.SlotNeck, s.SlotNeck},
		{&r.SlotOpen, s.SlotOpen},
		{&r.CenterBoreDiameter, s.CenterBoreDiameter},
		{&r.EndTapDiameter, s.EndTapDiameter},
	} {
		v, err := conv.Resolve(f.src, s.Unit)
		if err != nil {
			return Resolved{}, fmt.Errorf("resolve %q: %w", s.Name, err)
		}
		*f.dst = v
	}
	return r, nil
}

// Catalog is a named set of profile specs.
type Catalog struct {
	specs map[string]Spec
}

// NewCatalog returns a catalog preloaded with the built-in profiles.
func NewCatalog() *Catalog {
	c := &Catalog{specs: make(map[string]Spec, len(builtin))}
	for name, s := range builtin {
		s.Name = name
		c.specs[name] = s
	}
	return c
}

// Names returns all profile names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.specs))
	for n := range c.specs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Get returns the named spec. The spec is validated before being handed
// out, so callers never see a degenerate entry.
func (c *Catalog) Get(name string) (Spec, error) {
	s, ok := c.specs[name]
	if !ok {
		return Spec{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err := s.Validate(); err != nil {
		return Spec{}, fmt.Errorf("catalog entry %q: %w", name, err)
	}
	return s, nil
}

// Specs returns all specs sorted by name.
func (c *Catalog) Specs() []Spec {
	out := make([]Spec, 0, len(c.specs))
	for _, n := range c.Names() {
		out = append(out, c.specs[n])
	}
	return out
}

// overlayFile is the TOML shape of a user catalog:
//
//	[profiles."My 2040"]
//	unit = "mm"
//	width = 40.0
//	...
type overlayFile struct {
	Profiles map[string]Spec `toml:"profiles"`
}

// LoadOverlay merges profiles from a TOML file into the catalog. Entries
// with names already present override the built-ins. Every loaded entry
// is validated; the first invalid one aborts the load.
func (c *Catalog) LoadOverlay(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read catalog overlay: %w", err)
	}
	var f overlayFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse catalog overlay: %w", err)
	}
	for name, s := range f.Profiles {
		s.Name = name
		if err := s.Validate(); err != nil {
			return fmt.Errorf("overlay entry %q: %w", name, err)
		}
		c.specs[name] = s
	}
	return nil
}
