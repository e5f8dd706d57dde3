package picking

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/decal-studio/pkg/math"
)

func approx(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < 1e-4
}

func TestNDCToRayThroughCenter(t *testing.T) {
	proj := math.Perspective(float32(gomath.Pi/3), 1, 0.1, 100)
	view := math.LookAt(math.Vec3{Z: 5}, math.Vec3{}, math.Vec3{Y: 1})
	inv := proj.Mul(view).Inverse()

	r := NDCToRay(0, 0, inv)

	if !approx(r.Direction.X, 0) || !approx(r.Direction.Y, 0) || !approx(r.Direction.Z, -1) {
		t.Errorf("center ray direction = %v, want (0,0,-1)", r.Direction)
	}
	if r.Origin.Distance(math.Vec3{Z: 4.9}) > 1e-3 {
		t.Errorf("center ray origin = %v, want near plane at z=4.9", r.Origin)
	}
}

func TestScreenToRayMatchesNDC(t *testing.T) {
	proj := math.Perspective(float32(gomath.Pi/4), 2, 0.1, 100)
	view := math.LookAt(math.Vec3{X: 1, Y: 2, Z: 5}, math.Vec3{}, math.Vec3{Y: 1})
	inv := proj.Mul(view).Inverse()

	a := ScreenToRay(600, 100, 800, 400, inv)
	b := NDCToRay(0.5, 0.5, inv)

	if a.Origin.Distance(b.Origin) > 1e-4 || a.Direction.Distance(b.Direction) > 1e-4 {
		t.Errorf("ScreenToRay = %+v, NDCToRay = %+v", a, b)
	}
}

func TestIntersectTriangle(t *testing.T) {
	a := math.Vec3{X: -1, Y: -1}
	b := math.Vec3{X: 1, Y: -1}
	c := math.Vec3{X: 0, Y: 1}

	tests := []struct {
		name  string
		ray   Ray
		hit   bool
		wantT float32
	}{
		{"front", Ray{Origin: math.Vec3{Z: 3}, Direction: math.Vec3{Z: -1}}, true, 3},
		{"back side", Ray{Origin: math.Vec3{Z: -2}, Direction: math.Vec3{Z: 1}}, true, 2},
		{"miss", Ray{Origin: math.Vec3{X: 2, Z: 3}, Direction: math.Vec3{Z: -1}}, false, 0},
		{"behind origin", Ray{Origin: math.Vec3{Z: 3}, Direction: math.Vec3{Z: 1}}, false, 0},
		{"parallel", Ray{Origin: math.Vec3{Z: 1}, Direction: math.Vec3{X: 1}}, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := tt.ray.IntersectTriangle(a, b, c)
			if hit != tt.hit {
				t.Fatalf("hit = %v, want %v", hit, tt.hit)
			}
			if hit && !approx(got, tt.wantT) {
				t.Errorf("t = %v, want %v", got, tt.wantT)
			}
		})
	}
}

func TestIntersectAABB(t *testing.T) {
	box := NewAABB(math.Vec3{X: 1, Y: 1, Z: 1}, math.Vec3{X: -1, Y: -1, Z: -1})

	r := Ray{Origin: math.Vec3{Z: 5}, Direction: math.Vec3{Z: -1}}
	if d, ok := r.IntersectAABB(box); !ok || !approx(d, 4) {
		t.Errorf("IntersectAABB = (%v, %v), want (4, true)", d, ok)
	}

	inside := Ray{Origin: math.Vec3{}, Direction: math.Vec3{X: 1}}
	if d, ok := inside.IntersectAABB(box); !ok || !approx(d, 1) {
		t.Errorf("IntersectAABB from inside = (%v, %v), want (1, true)", d, ok)
	}

	miss := Ray{Origin: math.Vec3{X: 3, Z: 5}, Direction: math.Vec3{Z: -1}}
	if _, ok := miss.IntersectAABB(box); ok {
		t.Error("expected miss for ray outside slab")
	}
}

func TestTransformAABB(t *testing.T) {
	local := NewAABB(math.Vec3{X: -1, Y: -1, Z: -1}, math.Vec3{X: 1, Y: 1, Z: 1})
	m := math.Translate(10, 0, 0).Mul(math.Scale(2, 1, 1))

	got := TransformAABB(local, m)
	if !approx(got.Min.X, 8) || !approx(got.Max.X, 12) || !approx(got.Min.Y, -1) || !approx(got.Max.Z, 1) {
		t.Errorf("TransformAABB = %+v", got)
	}
}

func TestRayAt(t *testing.T) {
	r := Ray{Origin: math.Vec3{X: 1}, Direction: math.Vec3{Y: 1}}
	if got := r.At(2); got != (math.Vec3{X: 1, Y: 2}) {
		t.Errorf("At(2) = %v, want (1,2,0)", got)
	}
}
