package sandbox

import (
	"errors"
	"math"
	"testing"

	"github.com/slotforge/slotforge/pkg/geom"
)

// newComponent creates a fresh document and component for a test.
func newComponent(t *testing.T) (*Document, geom.Component) {
	t.Helper()
	doc := NewDocument()
	comp, err := doc.NewComponent("test")
	if err != nil {
		t.Fatalf("NewComponent: %v", err)
	}
	return doc, comp
}

// drawRect adds an axis-aligned rectangle to the sketch.
func drawRect(t *testing.T, sk geom.Sketch, x1, y1, x2, y2 float64) {
	t.Helper()
	pts := []geom.Point3{
		geom.Pt(x1, y1, 0),
		geom.Pt(x2, y1, 0),
		geom.Pt(x2, y2, 0),
		geom.Pt(x1, y2, 0),
	}
	for i := range pts {
		if err := sk.AddLine(pts[i], pts[(i+1)%len(pts)]); err != nil {
			t.Fatalf("AddLine: %v", err)
		}
	}
}

func TestSketchRegionsRectangle(t *testing.T) {
	_, comp := newComponent(t)
	sk, err := comp.SketchOnPlane(geom.PlaneXY)
	if err != nil {
		t.Fatalf("SketchOnPlane: %v", err)
	}
	drawRect(t, sk, -5, -10, 5, 10)

	regions, err := sk.Regions()
	if err != nil {
		t.Fatalf("Regions: %v", err)
	}
	if len(regions) != 2 {
		t.Fatalf("regions = %d, want 2 (interior + outside)", len(regions))
	}

	var finite, infinite int
	for _, r := range regions {
		if math.IsInf(r.Area(), 1) {
			infinite++
			continue
		}
		finite++
		if got := r.Area(); math.Abs(got-200) > 1e-9 {
			t.Errorf("interior area = %g, want 200", got)
		}
	}
	if finite != 1 || infinite != 1 {
		t.Errorf("finite = %d, infinite = %d, want 1 each", finite, infinite)
	}
}

func TestSketchRegionsMultipleLoops(t *testing.T) {
	_, comp := newComponent(t)
	sk, err := comp.SketchOnPlane(geom.PlaneXY)
	if err != nil {
		t.Fatalf("SketchOnPlane: %v", err)
	}
	// Two disjoint rectangles, 6 and 2 in area.
	drawRect(t, sk, 0, 0, 3, 2)
	drawRect(t, sk, 10, 0, 11, 2)

	regions, err := sk.Regions()
	if err != nil {
		t.Fatalf("Regions: %v", err)
	}
	var areas []float64
	for _, r := range regions {
		if !math.IsInf(r.Area(), 1) {
			areas = append(areas, r.Area())
		}
	}
	if len(areas) != 2 {
		t.Fatalf("finite regions = %d, want 2", len(areas))
	}
	total := areas[0] + areas[1]
	if math.Abs(total-8) > 1e-9 {
		t.Errorf("total area = %g, want 8", total)
	}
}

func TestSketchOpenChainNoRegion(t *testing.T) {
	_, comp := newComponent(t)
	sk, err := comp.SketchOnPlane(geom.PlaneXY)
	if err != nil {
		t.Fatalf("SketchOnPlane: %v", err)
	}
	// Three sides of a square, never closed.
	if err := sk.AddLine(geom.Pt(0, 0, 0), geom.Pt(1, 0, 0)); err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	if err := sk.AddLine(geom.Pt(1, 0, 0), geom.Pt(1, 1, 0)); err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	if err := sk.AddLine(geom.Pt(1, 1, 0), geom.Pt(0, 1, 0)); err != nil {
		t.Fatalf("AddLine: %v", err)
	}

	regions, err := sk.Regions()
	if err != nil {
		t.Fatalf("Regions: %v", err)
	}
	if len(regions) != 0 {
		t.Errorf("regions = %d, want 0 for open chain", len(regions))
	}
}

func TestSketchCircleRegion(t *testing.T) {
	_, comp := newComponent(t)
	sk, err := comp.SketchOnPlane(geom.PlaneXY)
	if err != nil {
		t.Fatalf("SketchOnPlane: %v", err)
	}
	if err := sk.AddCircle(geom.Pt(0, 0, 0), 2.5); err != nil {
		t.Fatalf("AddCircle: %v", err)
	}

	regions, err := sk.Regions()
	if err != nil {
		t.Fatalf("Regions: %v", err)
	}
	if len(regions) != 2 {
		t.Fatalf("regions = %d, want 2", len(regions))
	}
	want := math.Pi * 2.5 * 2.5
	found := false
	for _, r := range regions {
		if !math.IsInf(r.Area(), 1) && math.Abs(r.Area()-want) < 1e-9 {
			found = true
		}
	}
	if !found {
		t.Errorf("no region with circle area %g", want)
	}
}

func TestSketchDegenerateInput(t *testing.T) {
	_, comp := newComponent(t)
	sk, err := comp.SketchOnPlane(geom.PlaneXY)
	if err != nil {
		t.Fatalf("SketchOnPlane: %v", err)
	}
	if err := sk.AddLine(geom.Pt(1, 1, 0), geom.Pt(1, 1, 0)); !errors.Is(err, geom.ErrDegenerateInput) {
		t.Errorf("zero-length AddLine error = %v, want ErrDegenerateInput", err)
	}
	if err := sk.AddCircle(geom.Pt(0, 0, 0), 0); !errors.Is(err, geom.ErrDegenerateInput) {
		t.Errorf("zero-radius AddCircle error = %v, want ErrDegenerateInput", err)
	}
}

// extrudeBar builds a w x h bar of the given length, symmetric about z=0.
func extrudeBar(t *testing.T, comp geom.Component, w, h, length float64) geom.Body {
	t.Helper()
	sk, err := comp.SketchOnPlane(geom.PlaneXY)
	if err != nil {
		t.Fatalf("SketchOnPlane: %v", err)
	}
	drawRect(t, sk, -w/2, -h/2, w/2, h/2)
	regions, err := sk.Regions()
	if err != nil {
		t.Fatalf("Regions: %v", err)
	}
	var interior geom.Region
	for _, r := range regions {
		if !math.IsInf(r.Area(), 1) {
			interior = r
		}
	}
	body, err := comp.Extrude([]geom.Region{interior}, geom.Symmetric(length/2), geom.OpNewBody)
	if err != nil {
		t.Fatalf("Extrude: %v", err)
	}
	return body
}

func TestExtrudeNewBody(t *testing.T) {
	_, comp := newComponent(t)
	body := extrudeBar(t, comp, 25, 25, 500)

	b := body.(*Body)
	zmin, zmax := b.Extents()
	if zmin != -250 || zmax != 250 {
		t.Errorf("extents = [%g, %g], want [-250, 250]", zmin, zmax)
	}
	if got := b.SectionArea(); math.Abs(got-625) > 1e-9 {
		t.Errorf("section area = %g, want 625", got)
	}
	w, h := b.Size()
	if w != 25 || h != 25 {
		t.Errorf("size = %g x %g, want 25 x 25", w, h)
	}
	if len(comp.Bodies()) != 1 {
		t.Errorf("bodies = %d, want 1", len(comp.Bodies()))
	}
}

func TestExtrudeRejectsUnboundedRegion(t *testing.T) {
	_, comp := newComponent(t)
	sk, err := comp.SketchOnPlane(geom.PlaneXY)
	if err != nil {
		t.Fatalf("SketchOnPlane: %v", err)
	}
	drawRect(t, sk, 0, 0, 1, 1)
	regions, err := sk.Regions()
	if err != nil {
		t.Fatalf("Regions: %v", err)
	}
	for _, r := range regions {
		if math.IsInf(r.Area(), 1) {
			_, err := comp.Extrude([]geom.Region{r}, geom.Symmetric(10), geom.OpNewBody)
			if !errors.Is(err, geom.ErrDegenerateInput) {
				t.Errorf("extrude unbounded region error = %v, want ErrDegenerateInput", err)
			}
		}
	}
}

func TestExtrudeCutWithoutBody(t *testing.T) {
	_, comp := newComponent(t)
	sk, err := comp.SketchOnPlane(geom.PlaneXY)
	if err != nil {
		t.Fatalf("SketchOnPlane: %v", err)
	}
	drawRect(t, sk, 0, 0, 1, 1)
	regions, err := sk.Regions()
	if err != nil {
		t.Fatalf("Regions: %v", err)
	}
	var interior geom.Region
	for _, r := range regions {
		if !math.IsInf(r.Area(), 1) {
			interior = r
		}
	}
	if _, err := comp.Extrude([]geom.Region{interior}, geom.Symmetric(10), geom.OpCut); !errors.Is(err, geom.ErrNoBody) {
		t.Errorf("cut without body error = %v, want ErrNoBody", err)
	}
}

func TestExtrudeThroughCutReducesSection(t *testing.T) {
	_, comp := newComponent(t)
	body := extrudeBar(t, comp, 20, 20, 100)

	sk, err := comp.SketchOnPlane(geom.PlaneXY)
	if err != nil {
		t.Fatalf("SketchOnPlane: %v", err)
	}
	drawRect(t, sk, -1, -1, 1, 1) // 4 sq units
	regions, err := sk.Regions()
	if err != nil {
		t.Fatalf("Regions: %v", err)
	}
	var interior geom.Region
	for _, r := range regions {
		if !math.IsInf(r.Area(), 1) {
			interior = r
		}
	}
	// Longer than the bar on both sides: must register as a through cut.
	if _, err := comp.Extrude([]geom.Region{interior}, geom.Symmetric(70), geom.OpCut); err != nil {
		t.Fatalf("cut: %v", err)
	}

	b := body.(*Body)
	if got := b.SectionArea(); math.Abs(got-396) > 1e-9 {
		t.Errorf("section area = %g, want 396", got)
	}
	holes := b.Holes()
	if len(holes) != 1 {
		t.Fatalf("holes = %d, want 1", len(holes))
	}
	if !holes[0].Through {
		t.Error("hole not marked through")
	}
	if holes[0].ZMin != -50 || holes[0].ZMax != 50 {
		t.Errorf("hole z = [%g, %g], want clipped to [-50, 50]", holes[0].ZMin, holes[0].ZMax)
	}
}

func TestExtrudeCutMissesBody(t *testing.T) {
	_, comp := newComponent(t)
	body := extrudeBar(t, comp, 10, 10, 10)
	_ = body

	sk, err := comp.SketchOnFace(body.Faces()[0]) // +Z cap at z=5
	if err != nil {
		t.Fatalf("SketchOnFace: %v", err)
	}
	if err := sk.AddCircle(geom.Pt(0, 0, 0), 1); err != nil {
		t.Fatalf("AddCircle: %v", err)
	}
	regions, err := sk.Regions()
	if err != nil {
		t.Fatalf("Regions: %v", err)
	}
	var circle geom.Region
	for _, r := range regions {
		if rr := r.(*region); rr.kind == kindCircle {
			circle = r
		}
	}
	// Negative distance on the +Z cap sweeps away from the material.
	if _, err := comp.Extrude([]geom.Region{circle}, geom.OneSided(-5), geom.OpCut); !errors.Is(err, geom.ErrDegenerateInput) {
		t.Errorf("cut away from body error = %v, want ErrDegenerateInput", err)
	}
}

func TestFaceSketchPilotCut(t *testing.T) {
	_, comp := newComponent(t)
	body := extrudeBar(t, comp, 25.4, 25.4, 500)
	b := body.(*Body)

	// Top cap, normal +Z, at z = 250.
	var top geom.Face
	for _, f := range body.Faces() {
		if f.Normal().Z > 0 {
			top = f
		}
	}
	if top == nil {
		t.Fatal("no +Z cap")
	}

	sk, err := comp.SketchOnFace(top)
	if err != nil {
		t.Fatalf("SketchOnFace: %v", err)
	}
	if err := sk.AddCircle(geom.Pt(0, 0, 0), 2); err != nil {
		t.Fatalf("AddCircle: %v", err)
	}
	regions, err := sk.Regions()
	if err != nil {
		t.Fatalf("Regions: %v", err)
	}
	// Face sketches report the face's own boundary remainder as a region.
	if len(regions) != 2 {
		t.Fatalf("regions = %d, want 2 (circle + face boundary)", len(regions))
	}
	var circle geom.Region
	for _, r := range regions {
		if rr := r.(*region); rr.kind == kindCircle {
			circle = r
		}
	}
	if circle == nil {
		t.Fatal("no circle region")
	}

	// Positive one-sided distance digs into the material.
	if _, err := comp.Extrude([]geom.Region{circle}, geom.OneSided(20), geom.OpCut); err != nil {
		t.Fatalf("pilot cut: %v", err)
	}

	holes := b.Holes()
	if len(holes) != 1 {
		t.Fatalf("holes = %d, want 1", len(holes))
	}
	h := holes[0]
	if h.Through {
		t.Error("pilot hole marked through")
	}
	if h.ZMin != 230 || h.ZMax != 250 {
		t.Errorf("pilot z = [%g, %g], want [230, 250]", h.ZMin, h.ZMax)
	}
	if h.Diameter != 4 {
		t.Errorf("pilot diameter = %g, want 4", h.Diameter)
	}

	// Section area is untouched by a blind hole, but the mouth cap shrinks.
	if got := b.SectionArea(); math.Abs(got-25.4*25.4) > 1e-9 {
		t.Errorf("section area = %g, want unchanged %g", got, 25.4*25.4)
	}
	wantCap := 25.4*25.4 - math.Pi*4
	for _, f := range body.Faces() {
		if f.Normal().Z > 0 {
			if math.Abs(f.Area()-wantCap) > 1e-9 {
				t.Errorf("top cap area = %g, want %g", f.Area(), wantCap)
			}
		}
		if f.Normal().Z < 0 {
			if math.Abs(f.Area()-25.4*25.4) > 1e-9 {
				t.Errorf("bottom cap area = %g, want untouched %g", f.Area(), 25.4*25.4)
			}
		}
	}
}

func TestCombineSubtract(t *testing.T) {
	_, comp := newComponent(t)
	body := extrudeBar(t, comp, 30, 30, 200)
	b := body.(*Body)

	// Tool: a circle extruded past both ends.
	sk, err := comp.SketchOnPlane(geom.PlaneXY)
	if err != nil {
		t.Fatalf("SketchOnPlane: %v", err)
	}
	if err := sk.AddCircle(geom.Pt(0, 0, 0), 3); err != nil {
		t.Fatalf("AddCircle: %v", err)
	}
	regions, err := sk.Regions()
	if err != nil {
		t.Fatalf("Regions: %v", err)
	}
	var circle geom.Region
	for _, r := range regions {
		if rr := r.(*region); rr.kind == kindCircle {
			circle = r
		}
	}
	tool, err := comp.Extrude([]geom.Region{circle}, geom.Symmetric(150), geom.OpNewBody)
	if err != nil {
		t.Fatalf("extrude tool: %v", err)
	}
	if len(comp.Bodies()) != 2 {
		t.Fatalf("bodies before combine = %d, want 2", len(comp.Bodies()))
	}

	if err := comp.Combine(body, tool, false); err != nil {
		t.Fatalf("Combine: %v", err)
	}

	if len(comp.Bodies()) != 1 {
		t.Errorf("bodies after combine = %d, want 1 (tool consumed)", len(comp.Bodies()))
	}
	holes := b.Holes()
	if len(holes) != 1 {
		t.Fatalf("holes = %d, want 1", len(holes))
	}
	if !holes[0].Through {
		t.Error("combine hole not marked through")
	}
	if holes[0].Diameter != 6 {
		t.Errorf("combine hole diameter = %g, want 6", holes[0].Diameter)
	}
	wantSection := 900 - math.Pi*9
	if got := b.SectionArea(); math.Abs(got-wantSection) > 1e-9 {
		t.Errorf("section area = %g, want %g", got, wantSection)
	}
}

func TestTransactionRollback(t *testing.T) {
	doc := NewDocument()
	comp, err := doc.NewComponent("keep")
	if err != nil {
		t.Fatalf("NewComponent: %v", err)
	}
	extrudeBar(t, comp, 10, 10, 10)

	if err := doc.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if _, err := doc.NewComponent("discard"); err != nil {
		t.Fatalf("NewComponent: %v", err)
	}
	scratch := doc.Components()[0]
	extrudeBar(t, scratch, 5, 5, 5)

	if err := doc.Rollback(); err != nil {
		t.Fatalf("Rollback: %v", err)
	}

	comps := doc.Components()
	if len(comps) != 1 {
		t.Fatalf("components after rollback = %d, want 1", len(comps))
	}
	if comps[0].Name() != "keep" {
		t.Errorf("surviving component = %q, want %q", comps[0].Name(), "keep")
	}
	if got := len(comps[0].Bodies()); got != 1 {
		t.Errorf("bodies after rollback = %d, want 1", got)
	}
}

func TestTransactionCommit(t *testing.T) {
	doc := NewDocument()
	if err := doc.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	comp, err := doc.NewComponent("built")
	if err != nil {
		t.Fatalf("NewComponent: %v", err)
	}
	extrudeBar(t, comp, 10, 10, 10)
	if err := doc.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	if got := len(doc.Components()); got != 1 {
		t.Errorf("components after commit = %d, want 1", got)
	}

	// A fresh transaction can open after commit.
	if err := doc.Begin(); err != nil {
		t.Errorf("second Begin: %v", err)
	}
	if err := doc.Commit(); err != nil {
		t.Errorf("second Commit: %v", err)
	}
}

func TestTransactionMisuse(t *testing.T) {
	doc := NewDocument()
	if err := doc.Commit(); err == nil {
		t.Error("Commit without Begin = nil, want error")
	}
	if err := doc.Rollback(); err == nil {
		t.Error("Rollback without Begin = nil, want error")
	}
	if err := doc.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := doc.Begin(); err == nil {
		t.Error("nested Begin = nil, want error")
	}
}

func TestConstructionGeometryAndHistory(t *testing.T) {
	doc := NewDocument()
	comp, err := doc.NewComponent("test")
	if err != nil {
		t.Fatalf("NewComponent: %v", err)
	}
	if err := comp.AddAxis(geom.Pt(6.5, 0, 0), geom.Pt(6.5, 0, 1)); err != nil {
		t.Fatalf("AddAxis: %v", err)
	}
	if err := comp.AddOffsetPlane(geom.PlaneYZ, 6.5); err != nil {
		t.Fatalf("AddOffsetPlane: %v", err)
	}

	c := doc.Components()[0]
	if got := len(c.Axes()); got != 1 {
		t.Errorf("axes = %d, want 1", got)
	}
	if got := len(c.OffsetPlanes()); got != 1 {
		t.Errorf("planes = %d, want 1", got)
	}

	hist := c.History()
	if len(hist) != 2 {
		t.Fatalf("history = %d entries, want 2", len(hist))
	}
	if hist[0].Kind != "axis" || hist[1].Kind != "plane" {
		t.Errorf("history kinds = %q, %q, want axis, plane", hist[0].Kind, hist[1].Kind)
	}
	for _, f := range hist {
		if f.ID == "" {
			t.Error("history entry without ID")
		}
	}
}
