package render

import (
	"bytes"
	"fmt"

	"github.com/slotforge/slotforge/pkg/builder"
)

// Section describes the 2D cross-section drawing input. All lengths are
// in the working unit; the drawing is emitted in the same unit with the
// bar centered at the viewBox origin.
type Section struct {
	Width              float64
	Height             float64
	SlotDepth          float64
	SlotNeck           float64
	SlotOpen           float64
	SlotCenterFromFace float64
	BoreDiameter       float64 // 0 omits the bore circle
	Construction       bool    // draw dashed slot centerlines
}

// SVGOption adjusts cross-section rendering.
type SVGOption func(*svgRenderer)

// WithStrokeWidth overrides the relative stroke width.
func WithStrokeWidth(w float64) SVGOption {
	return func(r *svgRenderer) { r.stroke = w }
}

type svgRenderer struct {
	stroke float64
}

// SectionSVG renders the bar's cross-section as line art: outer
// rectangle, the four T-slot cutouts, the optional center bore, and
// optional dashed construction centerlines.
func SectionSVG(s Section, opts ...SVGOption) []byte {
	r := &svgRenderer{stroke: maxf(s.Width, s.Height) / 120}
	for _, o := range opts {
		o(r)
	}

	margin := maxf(s.Width, s.Height) * 0.1
	vbX := -(s.Width/2 + margin)
	vbY := -(s.Height/2 + margin)
	vbW := s.Width + 2*margin
	vbH := s.Height + 2*margin

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.4g %.4g %.4g %.4g">`+"\n",
		vbX, vbY, vbW, vbH)
	// Sketch space is y-up; SVG is y-down.
	fmt.Fprintf(&buf, `<g transform="scale(1,-1)" fill="none" stroke="black" stroke-width="%.4g">`+"\n", r.stroke)

	rect(&buf, -s.Width/2, -s.Height/2, s.Width, s.Height, "")

	p := builder.SlotParams{
		Width:  s.Width,
		Height: s.Height,
		Depth:  s.SlotDepth,
		Neck:   s.SlotNeck,
		Open:   s.SlotOpen,
	}
	x, y := s.Width/2, s.Height/2
	dOpen := p.MouthDepth()

	// Mirror of the slot builder's eight rectangles.
	slots := [][4]float64{
		{x - dOpen, -p.Open / 2, dOpen, p.Open},
		{x - p.Depth, -p.Neck / 2, p.Depth - dOpen, p.Neck},
		{-x, -p.Open / 2, dOpen, p.Open},
		{-x + dOpen, -p.Neck / 2, p.Depth - dOpen, p.Neck},
		{-p.Open / 2, y - dOpen, p.Open, dOpen},
		{-p.Neck / 2, y - p.Depth, p.Neck, p.Depth - dOpen},
		{-p.Open / 2, -y, p.Open, dOpen},
		{-p.Neck / 2, -y + dOpen, p.Neck, p.Depth - dOpen},
	}
	for _, sl := range slots {
		rect(&buf, sl[0], sl[1], sl[2], sl[3], "")
	}

	if s.BoreDiameter > 0 {
		fmt.Fprintf(&buf, `<circle cx="0" cy="0" r="%.4g"/>`+"\n", s.BoreDiameter/2)
	}

	if s.Construction {
		dash := fmt.Sprintf(` stroke-dasharray="%.4g %.4g" stroke="gray"`, r.stroke*4, r.stroke*2)
		for _, cx := range []float64{-s.Width/2 + s.SlotCenterFromFace, s.Width/2 - s.SlotCenterFromFace} {
			fmt.Fprintf(&buf, `<line x1="%.4g" y1="%.4g" x2="%.4g" y2="%.4g"%s/>`+"\n",
				cx, -s.Height/2-margin/2, cx, s.Height/2+margin/2, dash)
		}
		for _, cy := range []float64{-s.Height/2 + s.SlotCenterFromFace, s.Height/2 - s.SlotCenterFromFace} {
			fmt.Fprintf(&buf, `<line x1="%.4g" y1="%.4g" x2="%.4g" y2="%.4g"%s/>`+"\n",
				-s.Width/2-margin/2, cy, s.Width/2+margin/2, cy, dash)
		}
	}

	buf.WriteString("</g>\n</svg>\n")
	return buf.Bytes()
}

// rect emits one SVG rectangle with optional extra attributes.
func rect(buf *bytes.Buffer, x, y, w, h float64, extra string) {
	fmt.Fprintf(buf, `<rect x="%.4g" y="%.4g" width="%.4g" height="%.4g"%s/>`+"\n", x, y, w, h, extra)
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
