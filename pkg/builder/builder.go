// Package builder constructs the cross-section curves and subtractive
// features of a T-slot extrusion bar.
//
// Region identities are not addressable across geometry engines, so every
// builder disambiguates the regions it just drew by area: the outer
// rectangle keeps the largest finite region below a sentinel cap, slot
// islands keep everything under a cap derived from the slot dimensions,
// and bore/tap circles keep the smallest positive region on their face.
// The caps are named constants here rather than magic numbers; see each
// builder for the sizing rationale.
package builder

import (
	"fmt"
	"math"

	"github.com/slotforge/slotforge/pkg/geom"
)

// drawRect adds the four sides of an axis-aligned rectangle to the sketch.
// Corner order matches the host convention (counter-clockwise from p1).
func drawRect(sk geom.Sketch, x1, y1, x2, y2 float64) error {
	pts := []geom.Point3{
		geom.Pt(x1, y1, 0),
		geom.Pt(x2, y1, 0),
		geom.Pt(x2, y2, 0),
		geom.Pt(x1, y2, 0),
	}
	for i := range pts {
		if err := sk.AddLine(pts[i], pts[(i+1)%len(pts)]); err != nil {
			return err
		}
	}
	return nil
}

// largestRegionBelow returns the region with the maximum area that is
// still finite and below cap. This excludes the engine's unbounded
// "outside" pseudo-region, which may report an enormous or infinite area.
func largestRegionBelow(regions []geom.Region, cap float64) (geom.Region, bool) {
	var best geom.Region
	bestArea := -1.0
	for _, r := range regions {
		a := math.Abs(r.Area())
		if a > bestArea && a < cap {
			bestArea = a
			best = r
		}
	}
	return best, best != nil
}

// smallestPositiveRegion returns the region with the smallest strictly
// positive finite area. On a face sketch the freshly drawn circle is
// always smaller than the face's own boundary region, so this selects the
// circle's interior.
func smallestPositiveRegion(regions []geom.Region) (geom.Region, bool) {
	var best geom.Region
	bestArea := math.Inf(1)
	for _, r := range regions {
		a := math.Abs(r.Area())
		if a <= 0 || math.IsInf(a, 0) || math.IsNaN(a) {
			continue
		}
		if a < bestArea {
			bestArea = a
			best = r
		}
	}
	return best, best != nil
}

// regionsOf re-reads a sketch's regions, wrapping enumeration failures.
func regionsOf(sk geom.Sketch) ([]geom.Region, error) {
	regions, err := sk.Regions()
	if err != nil {
		return nil, fmt.Errorf("enumerate regions: %w", err)
	}
	return regions, nil
}
