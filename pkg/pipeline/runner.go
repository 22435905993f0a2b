package pipeline

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/slotforge/slotforge/pkg/builder"
	"github.com/slotforge/slotforge/pkg/geom"
	"github.com/slotforge/slotforge/pkg/observability"
	"github.com/slotforge/slotforge/pkg/profile"
	"github.com/slotforge/slotforge/pkg/session"
	"github.com/slotforge/slotforge/pkg/units"
)

// Runner executes bar builds against a session. The Runner is stateless
// apart from its catalog and logger; one Runner can serve many builds
// with different options.
type Runner struct {
	Catalog *profile.Catalog
	Logger  *log.Logger
}

// NewRunner creates a runner. A nil catalog gets the built-in one; a nil
// logger falls back to the package default.
func NewRunner(catalog *profile.Catalog, logger *log.Logger) *Runner {
	if catalog == nil {
		catalog = profile.NewCatalog()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Catalog: catalog, Logger: logger}
}

// measurer is the optional body query surface engines may implement.
// The sandbox engine does; a host kernel adapter may not, in which case
// the report simply omits the measured fields.
type measurer interface {
	Extents() (zmin, zmax float64)
	SectionArea() float64
}

// Execute runs the complete build: outer extrude, slot cut, then the
// requested construction geometry and bore/tap features, all inside the
// session's transaction scope. The first error aborts and rolls back.
func (r *Runner) Execute(ctx context.Context, sess *session.Session, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = r.Logger
	}

	spec, err := r.resolveSpec(opts)
	if err != nil {
		return nil, err
	}

	conv, err := units.NewConverter(opts.WorkingUnit)
	if err != nil {
		return nil, fmt.Errorf("working unit: %w", err)
	}
	res, err := spec.Resolve(conv)
	if err != nil {
		return nil, err
	}
	length, err := conv.ResolveLength(opts.Length)
	if err != nil {
		return nil, fmt.Errorf("resolve length: %w", err)
	}
	if length <= 0 {
		return nil, fmt.Errorf("%w: resolved length %g", ErrInvalidOptions, length)
	}
	pilotDepth, err := conv.Resolve(builder.PilotDepthMM, units.Millimeter)
	if err != nil {
		return nil, fmt.Errorf("resolve pilot depth: %w", err)
	}

	result := &Result{Resolved: res, Length: length}
	start := time.Now()

	err = sess.Build(func(doc geom.Document) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return r.build(ctx, doc, res, length, pilotDepth, opts, logger, result)
	})
	if err != nil {
		observability.Build().OnBuildComplete(ctx, spec.Name, 0, time.Since(start), err)
		return nil, err
	}

	result.Stats.TotalTime = time.Since(start)
	result.Report = buildReport(res, length, pilotDepth, opts, result)
	observability.Build().OnBuildComplete(ctx, spec.Name, len(result.Report.Holes), result.Stats.TotalTime, nil)

	logger.Info("bar built",
		"profile", spec.Name,
		"length", length,
		"holes", len(result.Report.Holes),
		"duration", result.Stats.TotalTime.Round(time.Millisecond))
	return result, nil
}

// resolveSpec picks the explicit spec or looks the profile up in the
// catalog, validating either way.
func (r *Runner) resolveSpec(opts Options) (profile.Spec, error) {
	if opts.Spec != nil {
		s := *opts.Spec
		if err := s.Validate(); err != nil {
			return profile.Spec{}, err
		}
		return s, nil
	}
	return r.Catalog.Get(opts.Profile)
}

// build runs the fixed-order feature sequence. Each step depends on the
// body state the previous one committed.
func (r *Runner) build(ctx context.Context, doc geom.Document, res profile.Resolved, length, pilotDepth float64, opts Options, logger *log.Logger, result *Result) error {
	comp, err := doc.NewComponent(componentName(res.Spec.Name, length))
	if err != nil {
		return fmt.Errorf("create component: %w", err)
	}
	result.Component = comp

	// Step 1: outer profile, extruded symmetrically so the sketch plane
	// stays the bar's longitudinal midpoint for any requested length.
	outerStart := time.Now()
	observability.Build().OnStageStart(ctx, "outer")
	sk, err := comp.SketchOnPlane(geom.PlaneXY)
	if err != nil {
		return fmt.Errorf("outer sketch: %w", err)
	}
	outer, err := builder.BuildOuter(sk, res.Width, res.Height)
	if err != nil {
		return err
	}
	body, err := comp.Extrude([]geom.Region{outer.Region}, geom.Symmetric(length/2), geom.OpNewBody)
	if err != nil {
		return fmt.Errorf("extrude bar: %w", err)
	}
	body.SetName("Extrusion")
	result.Body = body
	result.Stats.OuterTime = time.Since(outerStart)
	observability.Build().OnStageComplete(ctx, "outer", result.Stats.OuterTime, nil)
	logger.Debug("outer profile extruded", "area", outer.Region.Area(), "half_length", length/2)

	if err := ctx.Err(); err != nil {
		return err
	}

	// Step 2: slot cut. The symmetric distance runs past the bar's half
	// length by the larger cross-section dimension, so the cut always
	// traverses end to end without relying on a through-all extent.
	slotStart := time.Now()
	observability.Build().OnStageStart(ctx, "slots")
	slotSk, err := comp.SketchOnPlane(geom.PlaneXY)
	if err != nil {
		return fmt.Errorf("slot sketch: %w", err)
	}
	islands, err := builder.BuildSlots(slotSk, builder.SlotParams{
		Width:  res.Width,
		Height: res.Height,
		Depth:  res.SlotDepth,
		Neck:   res.SlotNeck,
		Open:   res.SlotOpen,
	})
	if err != nil {
		return err
	}
	if len(islands) != builder.SlotIslandsExpected {
		logger.Warn("unexpected slot island count",
			"got", len(islands), "want", builder.SlotIslandsExpected)
	}
	cutDepth := length/2 + math.Max(res.Width, res.Height)
	if _, err := comp.Extrude(islands, geom.Symmetric(cutDepth), geom.OpCut); err != nil {
		return fmt.Errorf("cut slots: %w", err)
	}
	result.SlotIslands = len(islands)
	result.Stats.SlotTime = time.Since(slotStart)
	observability.Build().OnStageComplete(ctx, "slots", result.Stats.SlotTime, nil)
	logger.Debug("slots cut", "islands", len(islands), "half_depth", cutDepth)

	if err := ctx.Err(); err != nil {
		return err
	}

	// Steps 3-4: optional construction geometry and bore/tap features.
	detailStart := time.Now()
	observability.Build().OnStageStart(ctx, "detail")
	if opts.Construction {
		if err := builder.BuildConstruction(comp, res.Width, res.Height, res.SlotCenterFromFace); err != nil {
			return err
		}
		logger.Debug("construction geometry added", "offset", res.SlotCenterFromFace)
	}

	if opts.CenterBore || opts.EndTaps {
		params := builder.BoreTapParams{
			BoreDiameter: res.CenterBoreDiameter,
			TapDiameter:  res.EndTapDiameter,
			PilotDepth:   pilotDepth,
			Length:       length,
			Width:        res.Width,
			Height:       res.Height,
		}
		if opts.CenterBore {
			if err := builder.CutCenterBore(comp, body, params, opts.Strategy); err != nil {
				return err
			}
			logger.Debug("center bore cut", "diameter", params.BoreDiameter, "strategy", opts.Strategy)
		}
		if opts.EndTaps {
			drilled, err := builder.CutEndTaps(comp, body, params, opts.Strategy, logger)
			if err != nil {
				return err
			}
			result.TapHoles = drilled
			logger.Debug("end taps cut", "drilled", drilled, "diameter", params.TapDiameter)
		}
	}
	result.Stats.DetailTime = time.Since(detailStart)
	observability.Build().OnStageComplete(ctx, "detail", result.Stats.DetailTime, nil)
	return nil
}

// buildReport assembles the serializable build summary.
func buildReport(res profile.Resolved, length, pilotDepth float64, opts Options, result *Result) Report {
	rep := Report{
		Profile:     res.Spec.Name,
		WorkingUnit: opts.WorkingUnit,
		Length:      length,
		Width:       res.Width,
		Height:      res.Height,
		SlotIslands: result.SlotIslands,
		Component:   result.Component.Name(),
	}
	if m, ok := result.Body.(measurer); ok {
		rep.ZMin, rep.ZMax = m.Extents()
		rep.SectionArea = m.SectionArea()
	}
	if opts.CenterBore {
		rep.Holes = append(rep.Holes, HoleReport{
			Diameter: res.CenterBoreDiameter,
			Depth:    length,
			Through:  true,
		})
	}
	for i := 0; i < result.TapHoles; i++ {
		rep.Holes = append(rep.Holes, HoleReport{
			Diameter: res.EndTapDiameter,
			Depth:    pilotDepth,
		})
	}
	return rep
}

// componentName formats the generated component's display name.
func componentName(profileName string, length float64) string {
	return fmt.Sprintf("%s - L=%.2f", profileName, length)
}
