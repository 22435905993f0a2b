package sandbox

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/slotforge/slotforge/pkg/geom"
)

// extentTol absorbs floating error when deciding whether a cut fully
// traverses a body along Z.
const extentTol = 1e-9

// Hole is a recorded subtractive feature on a body.
type Hole struct {
	Diameter float64     // 0 for non-circular cuts
	Area     float64     // removed cross-section area
	Center   geom.Point3 // circle center in sketch space; zero otherwise
	ZMin     float64
	ZMax     float64
	Through  bool // true when the cut traverses the whole body
}

// Body is an analytic extrusion: a cross-section swept along Z.
type Body struct {
	id      string
	name    string
	comp    *Component
	zMin    float64
	zMax    float64
	section float64 // cross-section area after through cuts
	bbox    rect    // XY bounds of the original section
	circle  *circle // non-nil when the section is a single circle (tool bodies)
	holes   []Hole
}

// ID returns the body's stable identifier.
func (b *Body) ID() string { return b.id }

// Name returns the body's display name.
func (b *Body) Name() string { return b.name }

// SetName renames the body.
func (b *Body) SetName(name string) { b.name = name }

// Extents returns the body's Z range.
func (b *Body) Extents() (zmin, zmax float64) { return b.zMin, b.zMax }

// SectionArea returns the cross-section area after all through cuts.
func (b *Body) SectionArea() float64 { return b.section }

// Size returns the XY bounding size of the original cross-section.
func (b *Body) Size() (w, h float64) {
	return b.bbox.x1 - b.bbox.x0, b.bbox.y1 - b.bbox.y0
}

// Holes returns the body's recorded subtractive features.
func (b *Body) Holes() []Hole { return b.holes }

// Faces enumerates the body's current faces: two planar end caps with ±Z
// normals and four planar side faces with ±X/±Y normals. Faces are
// regenerated on every call; identities are not stable across features,
// matching real kernels.
func (b *Body) Faces() []geom.Face {
	length := b.zMax - b.zMin
	w, h := b.Size()
	return []geom.Face{
		&face{body: b, planar: true, normal: geom.Vector3{Z: 1}, z: b.zMax, area: b.capArea(b.zMax)},
		&face{body: b, planar: true, normal: geom.Vector3{Z: -1}, z: b.zMin, area: b.capArea(b.zMin)},
		&face{body: b, planar: true, normal: geom.Vector3{X: 1}, area: h * length},
		&face{body: b, planar: true, normal: geom.Vector3{X: -1}, area: h * length},
		&face{body: b, planar: true, normal: geom.Vector3{Y: 1}, area: w * length},
		&face{body: b, planar: true, normal: geom.Vector3{Y: -1}, area: w * length},
	}
}

// capArea returns the end-cap area at z: the through-cut section minus any
// partial hole mouths opening onto that cap.
func (b *Body) capArea(z float64) float64 {
	a := b.section
	for _, h := range b.holes {
		if h.Through {
			continue // already subtracted from section
		}
		if math.Abs(h.ZMin-z) < extentTol || math.Abs(h.ZMax-z) < extentTol {
			a -= h.Area
		}
	}
	return a
}

// clone deep-copies the body for transaction snapshots.
func (b *Body) clone(comp *Component) *Body {
	cp := *b
	cp.comp = comp
	cp.holes = append([]Hole(nil), b.holes...)
	if b.circle != nil {
		c := *b.circle
		cp.circle = &c
	}
	return &cp
}

var _ geom.Body = (*Body)(nil)

// face is one face of a sandbox body. z is only meaningful for end caps.
type face struct {
	body   *Body
	planar bool
	normal geom.Vector3
	z      float64
	area   float64
}

func (f *face) IsPlanar() bool       { return f.planar }
func (f *face) Normal() geom.Vector3 { return f.normal }
func (f *face) Area() float64        { return f.area }

var _ geom.Face = (*face)(nil)

// sweepRange resolves the Z interval an extent covers for the given
// sketch. Face sketches sweep into the body's material for positive
// distances; base-plane sketches sweep from z=0.
func sweepRange(sk *Sketch, extent geom.Extent) (zmin, zmax float64, err error) {
	switch extent.Mode {
	case geom.ExtentSymmetric:
		if extent.Distance <= 0 {
			return 0, 0, fmt.Errorf("%w: symmetric distance %g", geom.ErrDegenerateInput, extent.Distance)
		}
		if sk.onFace != nil {
			return sk.onFace.z - extent.Distance, sk.onFace.z + extent.Distance, nil
		}
		return -extent.Distance, extent.Distance, nil
	case geom.ExtentOneSided:
		if extent.Distance == 0 {
			return 0, 0, fmt.Errorf("%w: zero one-sided distance", geom.ErrDegenerateInput)
		}
		if sk.onFace != nil {
			// Positive distance digs into the material behind the face.
			depth := extent.Distance * -sk.onFace.normal.Z
			return math.Min(sk.onFace.z, sk.onFace.z+depth), math.Max(sk.onFace.z, sk.onFace.z+depth), nil
		}
		return math.Min(0, extent.Distance), math.Max(0, extent.Distance), nil
	case geom.ExtentThroughAll:
		if sk.onFace != nil {
			zmin, zmax = sk.onFace.body.zMin, sk.onFace.body.zMax
			return zmin, zmax, nil
		}
		return math.Inf(-1), math.Inf(1), nil
	default:
		return 0, 0, fmt.Errorf("%w: unknown extent mode %d", geom.ErrDegenerateInput, extent.Mode)
	}
}

// Extrude sweeps regions into a solid feature.
func (c *Component) Extrude(regions []geom.Region, extent geom.Extent, op geom.Operation) (geom.Body, error) {
	if len(regions) == 0 {
		return nil, fmt.Errorf("%w: extrude without regions", geom.ErrDegenerateInput)
	}

	rs := make([]*region, len(regions))
	var sk *Sketch
	for i, r := range regions {
		rr, ok := r.(*region)
		if !ok {
			return nil, fmt.Errorf("sandbox: foreign region type %T", r)
		}
		if math.IsInf(rr.area, 1) {
			return nil, fmt.Errorf("%w: unbounded region", geom.ErrDegenerateInput)
		}
		if sk == nil {
			sk = rr.sk
		} else if sk != rr.sk {
			return nil, fmt.Errorf("sandbox: regions from different sketches")
		}
		rs[i] = rr
	}
	if sk.onFace == nil && sk.plane != geom.PlaneXY {
		return nil, fmt.Errorf("sandbox: extrude supports XY-plane sketches, got %s", sk.plane)
	}

	zmin, zmax, err := sweepRange(sk, extent)
	if err != nil {
		return nil, err
	}

	switch op {
	case geom.OpNewBody:
		return c.extrudeNewBody(rs, zmin, zmax)
	case geom.OpCut:
		return c.extrudeCut(sk, rs, zmin, zmax)
	default:
		return nil, fmt.Errorf("%w: unknown operation %d", geom.ErrDegenerateInput, op)
	}
}

func (c *Component) extrudeNewBody(rs []*region, zmin, zmax float64) (geom.Body, error) {
	if math.IsInf(zmin, -1) || math.IsInf(zmax, 1) {
		return nil, fmt.Errorf("%w: through-all new body", geom.ErrDegenerateInput)
	}
	b := &Body{
		id:   uuid.NewString(),
		comp: c,
		zMin: zmin,
		zMax: zmax,
	}
	for _, r := range rs {
		b.section += r.area
		b.bbox = b.bbox.union(r.bbox)
	}
	if len(rs) == 1 && rs[0].kind == kindCircle {
		b.circle = &circle{center: rs[0].center, radius: rs[0].diameter / 2}
	}
	c.bodies = append(c.bodies, b)
	c.record("extrude", fmt.Sprintf("new body, %d region(s), z [%.4g, %.4g]", len(rs), zmin, zmax))
	return b, nil
}

func (c *Component) extrudeCut(sk *Sketch, rs []*region, zmin, zmax float64) (geom.Body, error) {
	var target *Body
	if sk.onFace != nil {
		target = sk.onFace.body
	} else {
		if len(c.bodies) == 0 {
			return nil, geom.ErrNoBody
		}
		target = c.bodies[0]
	}

	lo := math.Max(zmin, target.zMin)
	hi := math.Min(zmax, target.zMax)
	if hi-lo <= extentTol {
		return nil, fmt.Errorf("%w: cut does not intersect body", geom.ErrDegenerateInput)
	}
	through := zmin <= target.zMin+extentTol && zmax >= target.zMax-extentTol

	for _, r := range rs {
		h := Hole{
			Area:     r.area,
			ZMin:     lo,
			ZMax:     hi,
			Through:  through,
			Diameter: r.diameter,
			Center:   r.center,
		}
		if through {
			target.section -= r.area
		}
		target.holes = append(target.holes, h)
	}
	c.record("cut", fmt.Sprintf("cut %d region(s), z [%.4g, %.4g], through=%t", len(rs), lo, hi, through))
	return target, nil
}

// Combine boolean-subtracts tool from target and removes the tool body
// unless keepTool is set.
func (c *Component) Combine(target, tool geom.Body, keepTool bool) error {
	tb, ok := target.(*Body)
	if !ok {
		return fmt.Errorf("sandbox: foreign target body %T", target)
	}
	ob, ok := tool.(*Body)
	if !ok {
		return fmt.Errorf("sandbox: foreign tool body %T", tool)
	}

	lo := math.Max(ob.zMin, tb.zMin)
	hi := math.Min(ob.zMax, tb.zMax)
	if hi-lo <= extentTol {
		return fmt.Errorf("%w: tool does not intersect target", geom.ErrDegenerateInput)
	}
	through := ob.zMin <= tb.zMin+extentTol && ob.zMax >= tb.zMax-extentTol

	h := Hole{
		Area:    ob.section,
		ZMin:    lo,
		ZMax:    hi,
		Through: through,
	}
	if ob.circle != nil {
		h.Diameter = 2 * ob.circle.radius
		h.Center = ob.circle.center
	}
	if through {
		tb.section -= ob.section
	}
	tb.holes = append(tb.holes, h)

	if !keepTool {
		for i, b := range c.bodies {
			if b == ob {
				c.bodies = append(c.bodies[:i], c.bodies[i+1:]...)
				break
			}
		}
	}
	c.record("combine", fmt.Sprintf("subtract tool %q, z [%.4g, %.4g], through=%t", ob.name, lo, hi, through))
	return nil
}
