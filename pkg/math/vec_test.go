package math

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestVec3Add(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}
	got := a.Add(b)
	want := Vec3{5, 7, 9}
	if got != want {
		t.Errorf("Vec3.Add() = %v, want %v", got, want)
	}
}

func TestVec3Length(t *testing.T) {
	v := Vec3{3, 4, 0}
	if got := v.Length(); got != 5 {
		t.Errorf("Vec3.Length() = %v, want 5", got)
	}
}

func TestVec3RotateX(t *testing.T) {
	got := Vec3{0, 1, 0}.RotateX(Deg2Rad(90))
	want := Vec3{0, 0, 1}
	if !got.ApproxEqual(want, eps) {
		t.Errorf("RotateX 90: got %v, want %v", got, want)
	}
}

func TestVec3RotateY(t *testing.T) {
	got := Vec3{1, 0, 0}.RotateY(Deg2Rad(90))
	want := Vec3{0, 0, -1}
	if !got.ApproxEqual(want, eps) {
		t.Errorf("RotateY 90: got %v, want %v", got, want)
	}
}

func TestVec3RotateZ(t *testing.T) {
	got := Vec3{1, 0, 0}.RotateZ(Deg2Rad(90))
	want := Vec3{0, 1, 0}
	if !got.ApproxEqual(want, eps) {
		t.Errorf("RotateZ 90: got %v, want %v", got, want)
	}
}

func TestVec3RotateXYZOrder(t *testing.T) {
	v := Vec3{1, 2, 3}
	a := v.RotateXYZ(Deg2Rad(90), Deg2Rad(90), 0)
	b := v.RotateXYZ(0, Deg2Rad(90), Deg2Rad(90))
	if a.ApproxEqual(b, 1e-6) {
		t.Errorf("rotation order should matter, both gave %v", a)
	}

	// Rotation preserves length
	if math.Abs(a.Length()-v.Length()) > eps {
		t.Errorf("rotation changed length: %v -> %v", v.Length(), a.Length())
	}
}

func TestDeg2Rad(t *testing.T) {
	if got := Deg2Rad(180); math.Abs(got-math.Pi) > eps {
		t.Errorf("Deg2Rad(180) = %v, want pi", got)
	}
}

func TestBox(t *testing.T) {
	b := EmptyBox()
	if !b.IsEmpty() {
		t.Fatal("EmptyBox should be empty")
	}
	if b.Size() != (Vec3{}) {
		t.Errorf("empty box size = %v, want zero", b.Size())
	}

	b = BoxOf([]Vec3{{-1, -1, -1}, {3, 3, 3}, {0, 2, 1}})
	if b.IsEmpty() {
		t.Fatal("box should not be empty")
	}
	if b.Center() != (Vec3{1, 1, 1}) {
		t.Errorf("Center() = %v, want (1,1,1)", b.Center())
	}
	if b.Size() != (Vec3{4, 4, 4}) {
		t.Errorf("Size() = %v, want (4,4,4)", b.Size())
	}
}
