// Package pipeline orchestrates the fixed-order build of a T-slot
// extrusion bar: outer profile extrude, slot cuts, then the optional
// construction geometry and bore/tap features.
//
// # Usage
//
// Create a Runner and execute the pipeline against a session:
//
//	runner := pipeline.NewRunner(profile.NewCatalog(), logger)
//	sess := session.Open(sandbox.NewDocument(), logger)
//	defer sess.Close()
//
//	result, err := runner.Execute(ctx, sess, pipeline.Options{
//	    Profile:    `80/20 1010 (1" x 1")`,
//	    Length:     units.Length{Value: 500, Unit: units.Millimeter},
//	    CenterBore: true,
//	})
//
// Every step either commits a feature or fails the whole build; the
// session rolls the document back on failure. The one non-fatal path is
// per-face tap region resolution, which skips that face.
package pipeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/slotforge/slotforge/pkg/builder"
	"github.com/slotforge/slotforge/pkg/geom"
	"github.com/slotforge/slotforge/pkg/profile"
	"github.com/slotforge/slotforge/pkg/units"
)

// ErrInvalidOptions is returned when pipeline options fail validation.
var ErrInvalidOptions = errors.New("invalid pipeline options")

// Default option values, shared by CLI and server.
const (
	// DefaultLengthMM is the bar length used when none is given.
	DefaultLengthMM = 500.0
)

// DefaultWorkingUnit is the working unit geometry is computed in when the
// document does not dictate one.
const DefaultWorkingUnit = units.Millimeter

// Options configures one bar build. The zero value plus a profile name is
// a valid request. This struct supports JSON serialization for API use.
type Options struct {
	// Profile is the catalog name of the cross-section spec.
	Profile string `json:"profile,omitempty"`

	// Spec overrides Profile with an explicit spec when non-nil.
	Spec *profile.Spec `json:"spec,omitempty"`

	// Length is the finished bar's longitudinal dimension.
	Length units.Length `json:"length"`

	// Feature toggles.
	CenterBore   bool `json:"center_bore,omitempty"`
	EndTaps      bool `json:"end_taps,omitempty"`
	Construction bool `json:"construction,omitempty"`

	// Strategy selects the bore/tap subtraction strategy.
	Strategy builder.Strategy `json:"strategy,omitempty"`

	// WorkingUnit is the unit all geometry is computed in.
	WorkingUnit units.Unit `json:"working_unit,omitempty"`

	// Runtime options (not serialized).
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has run.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// Idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Profile == "" && o.Spec == nil {
		o.Profile = profile.DefaultProfile
	}
	if o.Length == (units.Length{}) {
		o.Length = units.Length{Value: DefaultLengthMM, Unit: units.Millimeter}
	}
	if o.Length.Value <= 0 {
		return fmt.Errorf("%w: length %s", ErrInvalidOptions, o.Length)
	}
	if !o.Length.Unit.Valid() {
		return fmt.Errorf("%w: length unit %q", ErrInvalidOptions, o.Length.Unit)
	}
	if o.WorkingUnit == "" {
		o.WorkingUnit = DefaultWorkingUnit
	}
	if !o.WorkingUnit.Valid() {
		return fmt.Errorf("%w: working unit %q", ErrInvalidOptions, o.WorkingUnit)
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	o.validated = true
	return nil
}

// Result contains the outputs of one pipeline run.
type Result struct {
	// Component is the generated component.
	Component geom.Component

	// Body is the finished solid body.
	Body geom.Body

	// Resolved is the profile spec in the working unit.
	Resolved profile.Resolved

	// Length is the bar length in the working unit.
	Length float64

	// SlotIslands is the number of slot regions the cut consumed.
	SlotIslands int

	// TapHoles is the number of end-tap pilot holes actually drilled.
	TapHoles int

	// Report is the serializable summary of the build.
	Report Report

	// Stats contains per-stage timings.
	Stats Stats
}

// Stats contains pipeline execution timings.
type Stats struct {
	OuterTime  time.Duration `json:"outer_ms"`
	SlotTime   time.Duration `json:"slot_ms"`
	DetailTime time.Duration `json:"detail_ms"` // construction + bore + taps
	TotalTime  time.Duration `json:"total_ms"`
}

// Report is the serializable build summary handed to the CLI and server.
type Report struct {
	Profile     string       `json:"profile"`
	WorkingUnit units.Unit   `json:"working_unit"`
	Length      float64      `json:"length"`
	Width       float64      `json:"width"`
	Height      float64      `json:"height"`
	SectionArea float64      `json:"section_area,omitempty"`
	ZMin        float64      `json:"z_min"`
	ZMax        float64      `json:"z_max"`
	SlotIslands int          `json:"slot_islands"`
	Holes       []HoleReport `json:"holes,omitempty"`
	Component   string       `json:"component"`
}

// HoleReport describes one subtractive feature in the report.
type HoleReport struct {
	Diameter float64 `json:"diameter"`
	Depth    float64 `json:"depth"`
	Through  bool    `json:"through"`
}
