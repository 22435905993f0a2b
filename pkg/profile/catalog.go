package profile

import "github.com/slotforge/slotforge/pkg/units"

// DefaultProfile is the catalog entry selected when none is given.
const DefaultProfile = `80/20 1010 (1" x 1")`

// builtin is the standard profile library. Magnitudes are manufacturer
// catalog values in each profile's native unit.
var builtin = map[string]Spec{
	`80/20 1010 (1" x 1")`: {
		Unit: units.Inch, Width: 1.0, Height: 1.0,
		SlotCenterFromFace: 0.25,
		SlotDepth:          0.28, SlotNeck: 0.26, SlotOpen: 0.20,
		CenterBoreDiameter: 0.201, EndTapDiameter: 0.159,
	},
	`80/20 1020 (1" x 2")`: {
		Unit: units.Inch, Width: 2.0, Height: 1.0,
		SlotCenterFromFace: 0.25,
		SlotDepth:          0.28, SlotNeck: 0.26, SlotOpen: 0.20,
		CenterBoreDiameter: 0.201, EndTapDiameter: 0.159,
	},
	`80/20 1515 (1.5" x 1.5")`: {
		Unit: units.Inch, Width: 1.5, Height: 1.5,
		SlotCenterFromFace: 0.375,
		SlotDepth:          0.40, SlotNeck: 0.32, SlotOpen: 0.26,
		CenterBoreDiameter: 0.257, EndTapDiameter: 0.257,
	},
	`80/20 1530 (1.5" x 3.0")`: {
		Unit: units.Inch, Width: 3.0, Height: 1.5,
		SlotCenterFromFace: 0.375,
		SlotDepth:          0.40, SlotNeck: 0.32, SlotOpen: 0.26,
		CenterBoreDiameter: 0.257, EndTapDiameter: 0.257,
	},
	`80/20 25-2525 (25 x 25 mm)`: {
		Unit: units.Millimeter, Width: 25.0, Height: 25.0,
		SlotCenterFromFace: 6.5,
		SlotDepth:          7.5, SlotNeck: 6.0, SlotOpen: 5.0,
		CenterBoreDiameter: 5.2, EndTapDiameter: 4.2,
	},
	`80/20 25-2550 (25 x 50 mm)`: {
		Unit: units.Millimeter, Width: 50.0, Height: 25.0,
		SlotCenterFromFace: 6.5,
		SlotDepth:          7.5, SlotNeck: 6.0, SlotOpen: 5.0,
		CenterBoreDiameter: 5.2, EndTapDiameter: 4.2,
	},
	`Misumi 3030 (30 x 30 mm)`: {
		Unit: units.Millimeter, Width: 30.0, Height: 30.0,
		SlotCenterFromFace: 7.5,
		SlotDepth:          8.5, SlotNeck: 6.8, SlotOpen: 6.0,
		CenterBoreDiameter: 5.5, EndTapDiameter: 4.5,
	},
	`Misumi 4545 (45 x 45 mm)`: {
		Unit: units.Millimeter, Width: 45.0, Height: 45.0,
		SlotCenterFromFace: 10.5,
		SlotDepth:          11.0, SlotNeck: 8.2, SlotOpen: 7.0,
		CenterBoreDiameter: 6.8, EndTapDiameter: 6.8,
	},
	`Bosch 30x30 (30 x 30 mm)`: {
		Unit: units.Millimeter, Width: 30.0, Height: 30.0,
		SlotCenterFromFace: 7.5,
		SlotDepth:          8.5, SlotNeck: 6.8, SlotOpen: 6.0,
		CenterBoreDiameter: 5.5, EndTapDiameter: 4.5,
	},
	`Bosch 45x45 (45 x 45 mm)`: {
		Unit: units.Millimeter, Width: 45.0, Height: 45.0,
		SlotCenterFromFace: 10.5,
		SlotDepth:          11.0, SlotNeck: 8.2, SlotOpen: 7.0,
		CenterBoreDiameter: 6.8, EndTapDiameter: 6.8,
	},
}
