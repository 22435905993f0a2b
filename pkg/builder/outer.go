package builder

import (
	"fmt"

	"github.com/slotforge/slotforge/pkg/geom"
)

// OuterAreaCap is the sentinel area above which a region is assumed to be
// the engine's unbounded outside pseudo-region. Any legitimate bar
// cross-section is orders of magnitude smaller in every supported working
// unit.
const OuterAreaCap = 1e8

// OuterProfile is the selected bar cross-section region plus the resolved
// outer dimensions, kept together because every downstream step needs all
// three.
type OuterProfile struct {
	Region geom.Region
	Width  float64
	Height float64
}

// BuildOuter draws the bar's rectangular cross-section centered at the
// origin of the sketch plane and selects the bounded interior region.
// Exactly one candidate is expected; none is a fatal
// [geom.ErrRegionNotFound].
func BuildOuter(sk geom.Sketch, width, height float64) (OuterProfile, error) {
	x, y := width/2, height/2
	if err := drawRect(sk, -x, -y, x, y); err != nil {
		return OuterProfile{}, fmt.Errorf("draw outer rectangle: %w", err)
	}

	regions, err := regionsOf(sk)
	if err != nil {
		return OuterProfile{}, err
	}
	r, ok := largestRegionBelow(regions, OuterAreaCap)
	if !ok {
		return OuterProfile{}, fmt.Errorf("outer profile: %w", geom.ErrRegionNotFound)
	}
	return OuterProfile{Region: r, Width: width, Height: height}, nil
}
