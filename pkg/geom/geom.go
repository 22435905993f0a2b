// Package geom defines the geometry-engine contract that slotforge builds
// against, plus the small amount of vector math the builders need.
//
// The engine behind the contract owns all solid-modeling heavy lifting:
// sketch curves, closed-region discovery, extrusion, boolean cuts, and
// face/normal queries. slotforge only orchestrates it. The interfaces here
// are deliberately narrow - they cover exactly the capabilities the build
// pipeline consumes, so any host kernel (or the in-process sandbox engine
// in [github.com/slotforge/slotforge/pkg/geom/sandbox]) can satisfy them.
//
// # Region semantics
//
// Sketch.Regions reports every closed region the engine can find for the
// sketch, including pseudo-regions the builders must filter out: a sketch
// on a base plane reports the unbounded "outside" of its curves with an
// enormous (possibly infinite) area, and a sketch on a body face reports
// the face's own boundary region alongside anything freshly drawn. Region
// identities are not addressable across engines, so callers disambiguate
// by area (see the builder package).
package geom

import (
	"errors"
	"math"
)

var (
	// ErrRegionNotFound is returned when region selection finds no closed
	// region satisfying its area criterion where one was required.
	ErrRegionNotFound = errors.New("no qualifying closed region")

	// ErrFaceNotFound is returned when a body has no planar face with the
	// required normal direction.
	ErrFaceNotFound = errors.New("no planar face with required normal")

	// ErrNoBody is returned when an operation needs a solid body but the
	// component has none.
	ErrNoBody = errors.New("component has no solid body")

	// ErrDegenerateInput is returned when curve input would be degenerate
	// (zero-length segment, non-positive radius or extent distance).
	ErrDegenerateInput = errors.New("degenerate geometry input")
)

// ParallelTol is the angular tolerance used when testing whether a face
// normal is parallel to the extrusion axis. Cross-product magnitude below
// this value counts as parallel.
const ParallelTol = 1e-9

// Point3 is a point in the engine's working length unit.
type Point3 struct {
	X, Y, Z float64
}

// Pt is shorthand for constructing a Point3.
func Pt(x, y, z float64) Point3 { return Point3{X: x, Y: y, Z: z} }

// Vector3 is a direction or displacement in 3-space.
type Vector3 struct {
	X, Y, Z float64
}

// Dot returns the dot product of v and u.
func (v Vector3) Dot(u Vector3) float64 {
	return v.X*u.X + v.Y*u.Y + v.Z*u.Z
}

// Length returns the Euclidean norm of v.
func (v Vector3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// IsParallelTo reports whether v and u are parallel (either orientation)
// within ParallelTol. Zero vectors are parallel to nothing.
func (v Vector3) IsParallelTo(u Vector3) bool {
	lv, lu := v.Length(), u.Length()
	if lv == 0 || lu == 0 {
		return false
	}
	cx := v.Y*u.Z - v.Z*u.Y
	cy := v.Z*u.X - v.X*u.Z
	cz := v.X*u.Y - v.Y*u.X
	cross := math.Sqrt(cx*cx + cy*cy + cz*cz)
	return cross/(lv*lu) < ParallelTol
}

// ZAxis is the extrusion axis used throughout the pipeline. Cross-section
// sketches live in the XY plane; bars grow along ±Z.
var ZAxis = Vector3{Z: 1}

// BasePlane identifies one of the component's three origin planes.
type BasePlane int

const (
	PlaneXY BasePlane = iota
	PlaneYZ
	PlaneXZ
)

// String returns the conventional name of the plane.
func (p BasePlane) String() string {
	switch p {
	case PlaneXY:
		return "XY"
	case PlaneYZ:
		return "YZ"
	case PlaneXZ:
		return "XZ"
	default:
		return "?"
	}
}

// Operation selects what an extrude does with its swept volume.
type Operation int

const (
	// OpNewBody creates a new solid body from the swept regions.
	OpNewBody Operation = iota
	// OpCut subtracts the swept volume from the component's existing body.
	OpCut
)

// ExtentMode selects how far an extrude or cut reaches.
type ExtentMode int

const (
	// ExtentSymmetric sweeps Distance on both sides of the sketch plane.
	ExtentSymmetric ExtentMode = iota
	// ExtentOneSided sweeps Distance along the sketch normal only. A
	// negative Distance sweeps against the normal.
	ExtentOneSided
	// ExtentThroughAll sweeps until the swept volume exits the body in the
	// sweep direction. Avoided by the pipeline for cuts: its behavior is
	// not stable across engine versions (see builder package), but the
	// contract keeps it for engines and callers that want it.
	ExtentThroughAll
)

// Extent describes the reach of an extrude or cut feature.
type Extent struct {
	Mode     ExtentMode
	Distance float64 // working units; ignored for ExtentThroughAll
}

// Symmetric returns a symmetric extent of the given half-distance.
func Symmetric(half float64) Extent {
	return Extent{Mode: ExtentSymmetric, Distance: half}
}

// OneSided returns a one-sided extent of the given signed distance.
func OneSided(dist float64) Extent {
	return Extent{Mode: ExtentOneSided, Distance: dist}
}

// Region is a bounded closed planar area reported by the engine for a
// sketch. Regions are ephemeral: they are only valid until the next
// feature mutates the sketch's component.
type Region interface {
	// Area returns the region's area in working units squared. Unbounded
	// pseudo-regions may report +Inf or an arbitrarily large value.
	Area() float64
}

// Sketch is a set of curves on a plane or planar face.
type Sketch interface {
	// AddLine appends a line segment between two points in sketch space.
	AddLine(p1, p2 Point3) error

	// AddCircle appends a circle by center and radius in sketch space.
	AddCircle(center Point3, radius float64) error

	// Regions enumerates the closed regions currently enclosed by the
	// sketch's curves, including engine pseudo-regions (see package doc).
	Regions() ([]Region, error)
}

// Face is one face of a solid body.
type Face interface {
	// IsPlanar reports whether the face is planar. Normal is only
	// meaningful for planar faces.
	IsPlanar() bool

	// Normal returns the face's outward unit normal.
	Normal() Vector3

	// Area returns the face's area in working units squared.
	Area() float64
}

// Body is a solid body owned by a component. Face identities are not
// stable across boolean operations; re-enumerate after every feature.
type Body interface {
	// Faces enumerates the body's current faces.
	Faces() []Face

	// Name returns the body's display name.
	Name() string

	// SetName renames the body.
	SetName(name string)
}

// Component owns sketches, bodies, features, and construction geometry.
type Component interface {
	// SketchOnPlane starts an empty sketch on one of the base planes.
	SketchOnPlane(plane BasePlane) (Sketch, error)

	// SketchOnFace starts a sketch on a planar body face. The sketch
	// reports the face's boundary as a region (see package doc).
	SketchOnFace(face Face) (Sketch, error)

	// Extrude sweeps regions into a solid feature. For OpNewBody the
	// returned Body is the created body; for OpCut it is the mutated
	// target body.
	Extrude(regions []Region, extent Extent, op Operation) (Body, error)

	// Combine boolean-subtracts tool from target. The tool body is
	// consumed unless keepTool is set.
	Combine(target, tool Body, keepTool bool) error

	// AddAxis creates a reference axis through two points.
	AddAxis(p1, p2 Point3) error

	// AddOffsetPlane creates a reference plane offset from a base plane.
	AddOffsetPlane(base BasePlane, offset float64) error

	// Bodies returns the component's solid bodies in creation order.
	Bodies() []Body

	// Name returns the component's display name.
	Name() string

	// SetName renames the component.
	SetName(name string)
}

// Document is the host document a build session runs against. The
// transaction scope exists so a failed build can roll back every feature
// it committed instead of leaving stray bodies behind.
type Document interface {
	// NewComponent adds an empty component to the document.
	NewComponent(name string) (Component, error)

	// Begin opens a transaction scope. Scopes do not nest.
	Begin() error

	// Commit makes everything since Begin permanent.
	Commit() error

	// Rollback discards everything since Begin.
	Rollback() error
}
