package sandbox

import (
	"fmt"
	"math"

	"github.com/slotforge/slotforge/pkg/geom"
)

// vertexTol is the endpoint-matching tolerance for loop tracing. Two
// segment endpoints closer than this are the same vertex.
const vertexTol = 1e-9

type segment struct {
	p1, p2 geom.Point3
}

type circle struct {
	center geom.Point3
	radius float64
}

// Sketch is a set of curves on a base plane or a planar body face.
type Sketch struct {
	comp     *Component
	plane    geom.BasePlane // valid when onFace is nil
	onFace   *face          // non-nil for face sketches
	segments []segment
	circles  []circle
}

// AddLine appends a line segment between two points in sketch space.
func (s *Sketch) AddLine(p1, p2 geom.Point3) error {
	if math.Hypot(p2.X-p1.X, p2.Y-p1.Y) < vertexTol {
		return fmt.Errorf("%w: zero-length segment", geom.ErrDegenerateInput)
	}
	s.segments = append(s.segments, segment{p1: p1, p2: p2})
	return nil
}

// AddCircle appends a circle by center and radius in sketch space.
func (s *Sketch) AddCircle(center geom.Point3, radius float64) error {
	if radius <= 0 {
		return fmt.Errorf("%w: circle radius %g", geom.ErrDegenerateInput, radius)
	}
	s.circles = append(s.circles, circle{center: center, radius: radius})
	return nil
}

// regionKind distinguishes how a region arose, so extrude features can
// record circular cuts as holes with a diameter.
type regionKind int

const (
	kindLoop regionKind = iota
	kindCircle
	kindOutside
	kindFaceBoundary
)

// region implements geom.Region for the sandbox.
type region struct {
	sk       *Sketch
	kind     regionKind
	area     float64
	center   geom.Point3 // circle center, zero otherwise
	diameter float64     // circle diameter, zero otherwise
	bbox     rect        // XY bounding box; zero for pseudo-regions
}

// rect is an axis-aligned XY bounding box.
type rect struct {
	x0, y0, x1, y1 float64
}

func (r rect) union(o rect) rect {
	if o == (rect{}) {
		return r
	}
	if r == (rect{}) {
		return o
	}
	return rect{
		x0: math.Min(r.x0, o.x0), y0: math.Min(r.y0, o.y0),
		x1: math.Max(r.x1, o.x1), y1: math.Max(r.y1, o.y1),
	}
}

// Area returns the region's area. The unbounded outside pseudo-region
// reports +Inf.
func (r *region) Area() float64 { return r.area }

// Regions enumerates the closed regions enclosed by the sketch's curves.
//
// Every closed loop of line segments and every circle yields one region.
// A base-plane sketch additionally reports the unbounded outside with
// infinite area; a face sketch additionally reports the host face's own
// boundary region with the face's remaining area. Open chains yield no
// region. Loops are assumed simple and pairwise disjoint - the caller's
// curve generators guarantee that.
func (s *Sketch) Regions() ([]geom.Region, error) {
	var out []geom.Region

	for _, lp := range s.traceLoops() {
		out = append(out, &region{sk: s, kind: kindLoop, area: lp.area, bbox: lp.bbox})
	}
	for _, c := range s.circles {
		out = append(out, &region{
			sk:       s,
			kind:     kindCircle,
			area:     math.Pi * c.radius * c.radius,
			center:   c.center,
			diameter: 2 * c.radius,
			bbox: rect{
				x0: c.center.X - c.radius, y0: c.center.Y - c.radius,
				x1: c.center.X + c.radius, y1: c.center.Y + c.radius,
			},
		})
	}

	if len(out) == 0 {
		return nil, nil
	}

	if s.onFace != nil {
		// The face's boundary closes everything drawn on it, so the
		// remainder of the face is itself a reported region.
		drawn := 0.0
		for _, r := range out {
			drawn += r.Area()
		}
		rest := s.onFace.area - drawn
		if rest > 0 {
			out = append(out, &region{sk: s, kind: kindFaceBoundary, area: rest})
		}
	} else {
		out = append(out, &region{sk: s, kind: kindOutside, area: math.Inf(1)})
	}
	return out, nil
}

// vkey is a quantized 2D vertex used to match segment endpoints.
type vkey struct {
	x, y int64
}

func quantize(p geom.Point3) vkey {
	return vkey{
		x: int64(math.Round(p.X / vertexTol)),
		y: int64(math.Round(p.Y / vertexTol)),
	}
}

// loopInfo is one traced closed cycle of line segments.
type loopInfo struct {
	area float64
	bbox rect
}

// traceLoops finds closed cycles among the sketch's line segments and
// returns their shoelace areas and bounds. Vertices are matched within
// vertexTol.
func (s *Sketch) traceLoops() []loopInfo {
	type end struct {
		seg   int
		other vkey
		pt    geom.Point3
	}
	adj := make(map[vkey][]end)
	for i, sg := range s.segments {
		k1, k2 := quantize(sg.p1), quantize(sg.p2)
		adj[k1] = append(adj[k1], end{seg: i, other: k2, pt: sg.p2})
		adj[k2] = append(adj[k2], end{seg: i, other: k1, pt: sg.p1})
	}

	used := make([]bool, len(s.segments))
	var loops []loopInfo

	for i, sg := range s.segments {
		if used[i] {
			continue
		}
		start := quantize(sg.p1)
		loop := []geom.Point3{sg.p1, sg.p2}
		used[i] = true
		cur := quantize(sg.p2)

		for cur != start {
			advanced := false
			for _, e := range adj[cur] {
				if used[e.seg] {
					continue
				}
				used[e.seg] = true
				loop = append(loop, e.pt)
				cur = e.other
				advanced = true
				break
			}
			if !advanced {
				break // open chain, no region
			}
		}
		if cur != start || len(loop) < 3 {
			continue
		}
		a := shoelace(loop)
		if a <= 0 {
			continue
		}
		loops = append(loops, loopInfo{area: a, bbox: bounds(loop)})
	}
	return loops
}

// bounds returns the XY bounding box of the points.
func bounds(pts []geom.Point3) rect {
	r := rect{x0: pts[0].X, y0: pts[0].Y, x1: pts[0].X, y1: pts[0].Y}
	for _, p := range pts[1:] {
		r.x0 = math.Min(r.x0, p.X)
		r.y0 = math.Min(r.y0, p.Y)
		r.x1 = math.Max(r.x1, p.X)
		r.y1 = math.Max(r.y1, p.Y)
	}
	return r
}

// shoelace returns the absolute polygon area of the loop's XY projection.
func shoelace(pts []geom.Point3) float64 {
	sum := 0.0
	n := len(pts)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return math.Abs(sum) / 2
}

var _ geom.Sketch = (*Sketch)(nil)
