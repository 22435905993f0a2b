package builder

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"

	"github.com/slotforge/slotforge/pkg/geom"
)

// Strategy selects how bore and tap holes are subtracted from the bar.
// Both strategies produce the same final geometry; the tool-body variant
// is more robust when sketching on a face a prior boolean has already
// mutated, at the cost of an extra transient body per hole.
type Strategy int

const (
	// StrategyDirectCut cuts the circular region straight into the body
	// with an oversized one-sided distance.
	StrategyDirectCut Strategy = iota

	// StrategyToolBody extrudes the circular region into an independent
	// tool body and boolean-subtracts it from the target.
	StrategyToolBody
)

// String returns the strategy's CLI token.
func (s Strategy) String() string {
	switch s {
	case StrategyDirectCut:
		return "direct"
	case StrategyToolBody:
		return "toolbody"
	default:
		return "?"
	}
}

// ParseStrategy parses a CLI strategy token.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "direct", "":
		return StrategyDirectCut, nil
	case "toolbody":
		return StrategyToolBody, nil
	default:
		return 0, fmt.Errorf("invalid strategy: %q (must be direct or toolbody)", s)
	}
}

// PilotDepthMM is the fixed end-tap pilot drilling depth in millimeters.
// Resolved through the active unit converter before use.
const PilotDepthMM = 20.0

// BoreTapParams are the resolved values the bore/tap builder needs.
type BoreTapParams struct {
	BoreDiameter float64 // center bore diameter
	TapDiameter  float64 // end-tap pilot diameter
	PilotDepth   float64 // end-tap pilot depth (PilotDepthMM resolved)
	Length       float64 // finished bar length
	Width        float64 // outer cross-section width
	Height       float64 // outer cross-section height
}

// boreCutDepth is the deliberately oversized one-sided cut distance for
// the center bore. Longer than the bar by twice the larger cross-section
// dimension, so the cut always exits the far end regardless of which end
// face hosted the sketch. A semantic through-all extent is avoided for
// cross-engine-version robustness.
func (p BoreTapParams) boreCutDepth() float64 {
	return p.Length + 2*math.Max(p.Width, p.Height)
}

// endFaces classifies the body's planar faces whose normal is parallel to
// the extrusion axis by the sign of normal·axis.
func endFaces(body geom.Body) (pos, neg []geom.Face) {
	for _, f := range body.Faces() {
		if !f.IsPlanar() {
			continue
		}
		n := f.Normal()
		if !n.IsParallelTo(geom.ZAxis) {
			continue
		}
		if n.Dot(geom.ZAxis) > 0 {
			pos = append(pos, f)
		} else {
			neg = append(neg, f)
		}
	}
	return pos, neg
}

// circleRegion sketches a circle of the given diameter centered at the
// sketch-plane origin of the face and selects its interior: the smallest
// positive region, on the assumption that a freshly drawn circle is
// always the smallest closed loop relative to pre-existing face geometry.
func circleRegion(comp geom.Component, f geom.Face, diameter float64) (geom.Region, error) {
	sk, err := comp.SketchOnFace(f)
	if err != nil {
		return nil, fmt.Errorf("sketch on end face: %w", err)
	}
	if err := sk.AddCircle(geom.Pt(0, 0, 0), diameter/2); err != nil {
		return nil, fmt.Errorf("draw circle: %w", err)
	}
	regions, err := regionsOf(sk)
	if err != nil {
		return nil, err
	}
	r, ok := smallestPositiveRegion(regions)
	if !ok {
		return nil, geom.ErrRegionNotFound
	}
	return r, nil
}

// subtractCircle removes a circular hole of the given depth starting at
// the face, using the configured strategy.
func subtractCircle(comp geom.Component, body geom.Body, r geom.Region, depth float64, strat Strategy) error {
	switch strat {
	case StrategyDirectCut:
		if _, err := comp.Extrude([]geom.Region{r}, geom.OneSided(depth), geom.OpCut); err != nil {
			return fmt.Errorf("direct cut: %w", err)
		}
		return nil
	case StrategyToolBody:
		tool, err := comp.Extrude([]geom.Region{r}, geom.OneSided(depth), geom.OpNewBody)
		if err != nil {
			return fmt.Errorf("extrude tool body: %w", err)
		}
		if err := comp.Combine(body, tool, false); err != nil {
			return fmt.Errorf("combine tool body: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("invalid strategy: %d", strat)
	}
}

// CutCenterBore drills a full-length hole of the catalog bore diameter
// along the bar's axis. The sketch goes on the positive-normal end face,
// falling back to the negative one. A body with no end face at all fails
// with [geom.ErrFaceNotFound]; an unresolvable circle region fails with
// [geom.ErrRegionNotFound].
func CutCenterBore(comp geom.Component, body geom.Body, p BoreTapParams, strat Strategy) error {
	pos, neg := endFaces(body)
	var start geom.Face
	switch {
	case len(pos) > 0:
		start = pos[0]
	case len(neg) > 0:
		start = neg[0]
	default:
		return fmt.Errorf("center bore: %w", geom.ErrFaceNotFound)
	}

	r, err := circleRegion(comp, start, p.BoreDiameter)
	if err != nil {
		return fmt.Errorf("center bore: %w", err)
	}
	if err := subtractCircle(comp, body, r, p.boreCutDepth(), strat); err != nil {
		return fmt.Errorf("center bore: %w", err)
	}
	return nil
}

// CutEndTaps drills a short pilot hole of the spec's tap diameter into
// every end face and returns how many holes were drilled. A face whose
// circle region cannot be resolved is skipped with a debug log; this is
// the pipeline's only non-fatal path.
func CutEndTaps(comp geom.Component, body geom.Body, p BoreTapParams, strat Strategy, logger *log.Logger) (int, error) {
	pos, neg := endFaces(body)
	faces := append(pos, neg...)
	if len(faces) == 0 {
		return 0, fmt.Errorf("end taps: %w", geom.ErrFaceNotFound)
	}

	drilled := 0
	for i, f := range faces {
		r, err := circleRegion(comp, f, p.TapDiameter)
		if err != nil {
			logger.Debug("skipping end face without tap region", "face", i, "err", err)
			continue
		}
		if err := subtractCircle(comp, body, r, p.PilotDepth, strat); err != nil {
			return drilled, fmt.Errorf("end tap: %w", err)
		}
		drilled++
	}
	return drilled, nil
}
