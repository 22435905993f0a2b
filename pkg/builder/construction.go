package builder

import (
	"fmt"

	"github.com/slotforge/slotforge/pkg/geom"
)

// BuildConstruction adds reference geometry marking the slot centerlines:
// one axis parallel to the extrusion direction per slot, plus one offset
// plane per slot perpendicular to the slot's face. The solid body is not
// touched.
//
// The left/right slot centerlines sit at x = ±(width/2 - offset); the
// top/bottom ones at y = ±(height/2 - offset).
func BuildConstruction(comp geom.Component, width, height, offset float64) error {
	xs := []float64{-width/2 + offset, width/2 - offset}
	ys := []float64{-height/2 + offset, height/2 - offset}

	for _, sx := range xs {
		if err := comp.AddAxis(geom.Pt(sx, 0, 0), geom.Pt(sx, 0, 1)); err != nil {
			return fmt.Errorf("slot axis at x=%g: %w", sx, err)
		}
	}
	for _, sy := range ys {
		if err := comp.AddAxis(geom.Pt(0, sy, 0), geom.Pt(0, sy, 1)); err != nil {
			return fmt.Errorf("slot axis at y=%g: %w", sy, err)
		}
	}

	for _, sx := range xs {
		if err := comp.AddOffsetPlane(geom.PlaneYZ, sx); err != nil {
			return fmt.Errorf("slot plane at x=%g: %w", sx, err)
		}
	}
	for _, sy := range ys {
		if err := comp.AddOffsetPlane(geom.PlaneXZ, sy); err != nil {
			return fmt.Errorf("slot plane at y=%g: %w", sy, err)
		}
	}
	return nil
}
