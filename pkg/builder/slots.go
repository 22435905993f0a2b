package builder

import (
	"fmt"
	"math"

	"github.com/slotforge/slotforge/pkg/geom"
)

const (
	// MouthDepthFactor sets how much of the slot depth the open mouth
	// takes; the rest is the wider neck.
	MouthDepthFactor = 0.35

	// MouthDepthEpsilon keeps the mouth strictly shallower than the full
	// slot depth so the neck segment never collapses to zero length.
	MouthDepthEpsilon = 1e-6

	// SlotAreaCapFactor scales neck x depth into the area cap that admits
	// slot islands. A single slot island can never exceed neck x depth;
	// the factor keeps comfortable margin above that while staying far
	// below any supported bar's cross-section area.
	SlotAreaCapFactor = 3.0

	// SlotIslandsExpected is the number of closed islands four T-slots
	// produce: a mouth and a neck rectangle per side. The pipeline warns
	// when an engine reports a different count.
	SlotIslandsExpected = 8
)

// SlotParams are the resolved dimensions the slot builder needs.
type SlotParams struct {
	Width  float64
	Height float64
	Depth  float64 // slot depth from the outer face inward
	Neck   float64 // neck width
	Open   float64 // mouth width at the face
}

// MouthDepth returns the depth of the slot's open mouth:
// min(MouthDepthFactor x depth, depth - MouthDepthEpsilon).
func (p SlotParams) MouthDepth() float64 {
	return math.Min(p.Depth*MouthDepthFactor, p.Depth-MouthDepthEpsilon)
}

// AreaCap returns the island-selection cap for these dimensions.
func (p SlotParams) AreaCap() float64 {
	return SlotAreaCapFactor * p.Neck * p.Depth
}

// BuildSlots draws four T-shaped slot cutouts, one per side, as two nested
// rectangles each (mouth then neck), and returns the slot-island regions
// selected by the area cap. Finding no island at all is a fatal
// [geom.ErrRegionNotFound]; any other island count is tolerated because
// engines differ in how they split touching loops.
func BuildSlots(sk geom.Sketch, p SlotParams) ([]geom.Region, error) {
	x, y := p.Width/2, p.Height/2
	dOpen := p.MouthDepth()

	type r4 struct{ x1, y1, x2, y2 float64 }
	rects := []r4{
		// Right (face x=+x, inward -X)
		{x, -p.Open / 2, x - dOpen, p.Open / 2},
		{x - dOpen, -p.Neck / 2, x - p.Depth, p.Neck / 2},
		// Left (face x=-x, inward +X)
		{-x, -p.Open / 2, -x + dOpen, p.Open / 2},
		{-x + dOpen, -p.Neck / 2, -x + p.Depth, p.Neck / 2},
		// Top (face y=+y, inward -Y)
		{-p.Open / 2, y, p.Open / 2, y - dOpen},
		{-p.Neck / 2, y - dOpen, p.Neck / 2, y - p.Depth},
		// Bottom (face y=-y, inward +Y)
		{-p.Open / 2, -y, p.Open / 2, -y + dOpen},
		{-p.Neck / 2, -y + dOpen, p.Neck / 2, -y + p.Depth},
	}
	for _, rc := range rects {
		if err := drawRect(sk, rc.x1, rc.y1, rc.x2, rc.y2); err != nil {
			return nil, fmt.Errorf("draw slot rectangle: %w", err)
		}
	}

	regions, err := regionsOf(sk)
	if err != nil {
		return nil, err
	}

	cap := p.AreaCap()
	var islands []geom.Region
	for _, r := range regions {
		a := math.Abs(r.Area())
		if a > 0 && a < cap {
			islands = append(islands, r)
		}
	}
	if len(islands) == 0 {
		return nil, fmt.Errorf("slot islands: %w", geom.ErrRegionNotFound)
	}
	return islands, nil
}
