package geom

import (
	"math"
	"testing"
)

func TestVector3Dot(t *testing.T) {
	tests := []struct {
		name string
		v, u Vector3
		want float64
	}{
		{name: "Orthogonal", v: Vector3{X: 1}, u: Vector3{Y: 1}, want: 0},
		{name: "Parallel", v: Vector3{Z: 2}, u: Vector3{Z: 3}, want: 6},
		{name: "AntiParallel", v: Vector3{Z: 1}, u: Vector3{Z: -1}, want: -1},
		{name: "Mixed", v: Vector3{X: 1, Y: 2, Z: 3}, u: Vector3{X: 4, Y: 5, Z: 6}, want: 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Dot(tt.u); got != tt.want {
				t.Errorf("Dot = %g, want %g", got, tt.want)
			}
		})
	}
}

func TestVector3IsParallelTo(t *testing.T) {
	tests := []struct {
		name string
		v, u Vector3
		want bool
	}{
		{name: "Same", v: Vector3{Z: 1}, u: ZAxis, want: true},
		{name: "Opposite", v: Vector3{Z: -1}, u: ZAxis, want: true},
		{name: "Scaled", v: Vector3{Z: 42}, u: ZAxis, want: true},
		{name: "Orthogonal", v: Vector3{X: 1}, u: ZAxis, want: false},
		{name: "Slanted", v: Vector3{X: 1, Z: 1}, u: ZAxis, want: false},
		{name: "NearParallel", v: Vector3{X: 1e-12, Z: 1}, u: ZAxis, want: true},
		{name: "Zero", v: Vector3{}, u: ZAxis, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsParallelTo(tt.u); got != tt.want {
				t.Errorf("IsParallelTo = %t, want %t", got, tt.want)
			}
		})
	}
}

func TestVector3Length(t *testing.T) {
	v := Vector3{X: 3, Y: 4}
	if got := v.Length(); math.Abs(got-5) > 1e-12 {
		t.Errorf("Length = %g, want 5", got)
	}
}

func TestExtentConstructors(t *testing.T) {
	if e := Symmetric(250); e.Mode != ExtentSymmetric || e.Distance != 250 {
		t.Errorf("Symmetric(250) = %+v", e)
	}
	if e := OneSided(-20); e.Mode != ExtentOneSided || e.Distance != -20 {
		t.Errorf("OneSided(-20) = %+v", e)
	}
}

func TestBasePlaneString(t *testing.T) {
	tests := []struct {
		plane BasePlane
		want  string
	}{
		{PlaneXY, "XY"},
		{PlaneYZ, "YZ"},
		{PlaneXZ, "XZ"},
		{BasePlane(99), "?"},
	}
	for _, tt := range tests {
		if got := tt.plane.String(); got != tt.want {
			t.Errorf("String(%d) = %q, want %q", tt.plane, got, tt.want)
		}
	}
}
