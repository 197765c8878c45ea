package vecmath

import "testing"

func TestVec3Arithmetic(t *testing.T) {
	a := Vec3{X: 1, Y: 2, Z: 3}
	b := Vec3{X: 4, Y: -1, Z: 2}

	if got := a.Add(b); got != (Vec3{5, 1, 5}) {
		t.Errorf("Add = %+v, want {5 1 5}", got)
	}
	if got := a.Sub(b); got != (Vec3{-3, 3, 1}) {
		t.Errorf("Sub = %+v, want {-3 3 1}", got)
	}
	if got := a.Dot(b); got != 4-2+6 {
		t.Errorf("Dot = %v, want 8", got)
	}
	if got := a.Scale(2); got != (Vec3{2, 4, 6}) {
		t.Errorf("Scale = %+v, want {2 4 6}", got)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{X: 1}
	y := Vec3{Y: 1}
	got := x.Cross(y)
	want := Vec3{Z: 1}
	if got != want {
		t.Errorf("Cross(X,Y) = %+v, want %+v", got, want)
	}
}

func TestToNDC(t *testing.T) {
	clip := Vec4{X: 2, Y: 4, Z: 6, W: 2}
	got := ToNDC(clip)
	want := Vec3{X: 1, Y: 2, Z: 3}
	if got != want {
		t.Errorf("ToNDC = %+v, want %+v", got, want)
	}
}

func TestToTexelPos(t *testing.T) {
	got := ToTexelPos(Vec3{X: -1, Y: -1}, 100, 200)
	want := Vec2{X: 0, Y: 0}
	if got != want {
		t.Errorf("ToTexelPos(-1,-1) = %+v, want %+v", got, want)
	}

	got = ToTexelPos(Vec3{X: 1, Y: 1}, 100, 200)
	want = Vec2{X: 100, Y: 200}
	if got != want {
		t.Errorf("ToTexelPos(1,1) = %+v, want %+v", got, want)
	}
}

func TestBarycentricInterpolate(t *testing.T) {
	bary := Vec3{X: 1, Y: 0, Z: 0}
	if got := BarycentricInterpolate(10, 20, 30, bary); got != 10 {
		t.Errorf("BarycentricInterpolate at corner 0 = %v, want 10", got)
	}

	bary = Vec3{X: 1.0 / 3, Y: 1.0 / 3, Z: 1.0 / 3}
	got := BarycentricInterpolate(3, 6, 9, bary)
	if !ApproxEqual(got, 6, 1e-4) {
		t.Errorf("BarycentricInterpolate centroid = %v, want ~6", got)
	}
}

func TestApproxEqual(t *testing.T) {
	if !ApproxEqual(1.0, 1.0000001, 1e-5) {
		t.Error("expected values within epsilon to be approximately equal")
	}
	if ApproxEqual(1.0, 1.1, 1e-5) {
		t.Error("expected values outside epsilon to not be approximately equal")
	}
}
