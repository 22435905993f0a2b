// Package sandbox is an in-process implementation of the geom contract.
//
// It is not a B-rep kernel. Bodies are analytic extrusions: a cross-section
// area swept along Z between two caps, with every subtractive feature
// recorded as a hole. That is enough to answer every query the build
// pipeline makes - region areas, body extents, end-face normals and areas -
// so the CLI, the HTTP server, and the test suite can run without a host
// CAD process.
//
// The sandbox deliberately reproduces the awkward parts of real kernels
// that the builders' area heuristics exist for: plane sketches report an
// unbounded outside pseudo-region with infinite area, and face sketches
// report the host face's boundary region alongside freshly drawn curves.
package sandbox

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/slotforge/slotforge/pkg/geom"
)

// Feature is one committed step of a component's construction history.
type Feature struct {
	ID     string // uuid
	Kind   string // "extrude", "cut", "combine", "axis", "plane"
	Detail string // human-readable summary
}

// Document is an in-memory host document.
type Document struct {
	components []*Component
	snapshot   []*Component // non-nil while a transaction is open
}

// NewDocument creates an empty sandbox document.
func NewDocument() *Document {
	return &Document{}
}

// NewComponent adds an empty component to the document.
func (d *Document) NewComponent(name string) (geom.Component, error) {
	c := &Component{doc: d, name: name}
	d.components = append(d.components, c)
	return c, nil
}

// Components returns the document's components in creation order.
func (d *Document) Components() []*Component {
	return d.components
}

// Begin opens a transaction scope by snapshotting the document. Scopes do
// not nest.
func (d *Document) Begin() error {
	if d.snapshot != nil {
		return fmt.Errorf("transaction already open")
	}
	snap := make([]*Component, len(d.components))
	for i, c := range d.components {
		snap[i] = c.clone(d)
	}
	if snap == nil {
		snap = []*Component{}
	}
	d.snapshot = snap
	return nil
}

// Commit discards the snapshot, making everything since Begin permanent.
func (d *Document) Commit() error {
	if d.snapshot == nil {
		return fmt.Errorf("no open transaction")
	}
	d.snapshot = nil
	return nil
}

// Rollback restores the snapshot taken by Begin. Component and body
// handles obtained since Begin are invalid afterwards.
func (d *Document) Rollback() error {
	if d.snapshot == nil {
		return fmt.Errorf("no open transaction")
	}
	d.components = d.snapshot
	d.snapshot = nil
	return nil
}

var _ geom.Document = (*Document)(nil)

// Axis is a reference axis through two points.
type Axis struct {
	P1, P2 geom.Point3
}

// OffsetPlane is a reference plane offset from a base plane.
type OffsetPlane struct {
	Base   geom.BasePlane
	Offset float64
}

// Component owns sketches, bodies, features, and construction geometry.
type Component struct {
	doc      *Document
	name     string
	bodies   []*Body
	features []Feature
	axes     []Axis
	planes   []OffsetPlane
}

// Name returns the component's display name.
func (c *Component) Name() string { return c.name }

// SetName renames the component.
func (c *Component) SetName(name string) { c.name = name }

// History returns the component's construction history in commit order.
func (c *Component) History() []Feature { return c.features }

// Axes returns the component's reference axes.
func (c *Component) Axes() []Axis { return c.axes }

// OffsetPlanes returns the component's reference planes.
func (c *Component) OffsetPlanes() []OffsetPlane { return c.planes }

// Bodies returns the component's solid bodies in creation order.
func (c *Component) Bodies() []geom.Body {
	out := make([]geom.Body, len(c.bodies))
	for i, b := range c.bodies {
		out[i] = b
	}
	return out
}

// SketchOnPlane starts an empty sketch on one of the base planes.
func (c *Component) SketchOnPlane(plane geom.BasePlane) (geom.Sketch, error) {
	return &Sketch{comp: c, plane: plane}, nil
}

// SketchOnFace starts a sketch on a planar body face.
func (c *Component) SketchOnFace(f geom.Face) (geom.Sketch, error) {
	ff, ok := f.(*face)
	if !ok {
		return nil, fmt.Errorf("sandbox: foreign face type %T", f)
	}
	if !ff.planar {
		return nil, fmt.Errorf("sandbox: sketch requires a planar face")
	}
	return &Sketch{comp: c, onFace: ff}, nil
}

// AddAxis creates a reference axis through two points.
func (c *Component) AddAxis(p1, p2 geom.Point3) error {
	if p1 == p2 {
		return fmt.Errorf("%w: coincident axis points", geom.ErrDegenerateInput)
	}
	c.axes = append(c.axes, Axis{P1: p1, P2: p2})
	c.record("axis", fmt.Sprintf("axis (%.4g,%.4g,%.4g)-(%.4g,%.4g,%.4g)",
		p1.X, p1.Y, p1.Z, p2.X, p2.Y, p2.Z))
	return nil
}

// AddOffsetPlane creates a reference plane offset from a base plane.
func (c *Component) AddOffsetPlane(base geom.BasePlane, offset float64) error {
	c.planes = append(c.planes, OffsetPlane{Base: base, Offset: offset})
	c.record("plane", fmt.Sprintf("plane %s%+.4g", base, offset))
	return nil
}

// record appends a feature to the component's construction history.
func (c *Component) record(kind, detail string) {
	c.features = append(c.features, Feature{
		ID:     uuid.NewString(),
		Kind:   kind,
		Detail: detail,
	})
}

// clone deep-copies the component for transaction snapshots. Sketches are
// not carried over: regions are ephemeral and never outlive a feature.
func (c *Component) clone(doc *Document) *Component {
	cp := &Component{
		doc:      doc,
		name:     c.name,
		bodies:   make([]*Body, len(c.bodies)),
		features: append([]Feature(nil), c.features...),
		axes:     append([]Axis(nil), c.axes...),
		planes:   append([]OffsetPlane(nil), c.planes...),
	}
	for i, b := range c.bodies {
		cp.bodies[i] = b.clone(cp)
	}
	return cp
}

var _ geom.Component = (*Component)(nil)
