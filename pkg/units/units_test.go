package units

import (
	"errors"
	"math"
	"testing"
)

func TestParseLength(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		def     Unit
		want    Length
		wantErr bool
	}{
		{name: "BareNumber", expr: "500", def: Millimeter, want: Length{Value: 500, Unit: Millimeter}},
		{name: "MillimeterSuffix", expr: "500mm", def: Inch, want: Length{Value: 500, Unit: Millimeter}},
		{name: "InchSuffix", expr: "19.5in", def: Millimeter, want: Length{Value: 19.5, Unit: Inch}},
		{name: "CentimeterSuffix", expr: "3cm", def: Millimeter, want: Length{Value: 3, Unit: Centimeter}},
		{name: "SpaceBeforeUnit", expr: "12 in", def: Millimeter, want: Length{Value: 12, Unit: Inch}},
		{name: "UppercaseUnit", expr: "500MM", def: Inch, want: Length{Value: 500, Unit: Millimeter}},
		{name: "SurroundingSpace", expr: "  250mm  ", def: Inch, want: Length{Value: 250, Unit: Millimeter}},
		{name: "Empty", expr: "", def: Millimeter, wantErr: true},
		{name: "Garbage", expr: "abc", def: Millimeter, wantErr: true},
		{name: "UnitOnly", expr: "mm", def: Millimeter, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLength(tt.expr, tt.def)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseLength(%q) = %v, want error", tt.expr, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLength(%q): %v", tt.expr, err)
			}
			if got != tt.want {
				t.Errorf("ParseLength(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestConverterResolve(t *testing.T) {
	tests := []struct {
		name    string
		working Unit
		value   float64
		unit    Unit
		want    float64
	}{
		{name: "InchToMM", working: Millimeter, value: 1, unit: Inch, want: 25.4},
		{name: "MMToMM", working: Millimeter, value: 500, unit: Millimeter, want: 500},
		{name: "CMToMM", working: Millimeter, value: 3, unit: Centimeter, want: 30},
		{name: "MMToInch", working: Inch, value: 25.4, unit: Millimeter, want: 1},
		{name: "InchToCM", working: Centimeter, value: 1, unit: Inch, want: 2.54},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conv, err := NewConverter(tt.working)
			if err != nil {
				t.Fatalf("NewConverter(%q): %v", tt.working, err)
			}
			got, err := conv.Resolve(tt.value, tt.unit)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Resolve(%g, %q) = %g, want %g", tt.value, tt.unit, got, tt.want)
			}
		})
	}
}

func TestConverterUnknownUnit(t *testing.T) {
	if _, err := NewConverter(Unit("furlong")); !errors.Is(err, ErrUnknownUnit) {
		t.Errorf("NewConverter error = %v, want ErrUnknownUnit", err)
	}

	conv, err := NewConverter(Millimeter)
	if err != nil {
		t.Fatalf("NewConverter: %v", err)
	}
	if _, err := conv.Resolve(1, Unit("furlong")); !errors.Is(err, ErrUnknownUnit) {
		t.Errorf("Resolve error = %v, want ErrUnknownUnit", err)
	}
}

func TestLengthString(t *testing.T) {
	l := Length{Value: 500, Unit: Millimeter}
	if got := l.String(); got != "500mm" {
		t.Errorf("String() = %q, want %q", got, "500mm")
	}
}

func TestRatioPreservation(t *testing.T) {
	// Ratios between two values resolved through the same converter must
	// not depend on the working unit.
	for _, working := range []Unit{Millimeter, Centimeter, Inch} {
		conv, err := NewConverter(working)
		if err != nil {
			t.Fatalf("NewConverter(%q): %v", working, err)
		}
		a, err := conv.Resolve(0.28, Inch)
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		b, err := conv.Resolve(0.26, Inch)
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if ratio := a / b; math.Abs(ratio-0.28/0.26) > 1e-12 {
			t.Errorf("working %q: ratio = %g, want %g", working, ratio, 0.28/0.26)
		}
	}
}
