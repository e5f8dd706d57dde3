package math

import (
	"math"
	"testing"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuatNormalize(t *testing.T) {
	q := Quat{X: 1, Y: 2, Z: 3, W: 4}
	n := q.Normalize()

	length := float32(math.Sqrt(float64(n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W)))
	if math.Abs(float64(length-1.0)) > 0.0001 {
		t.Errorf("Normalized quaternion length should be 1, got %v", length)
	}
}

func TestQuatToMat4(t *testing.T) {
	// Identity quaternion should produce identity matrix
	q := QuatIdentity()
	m := q.ToMat4()

	identity := Identity()
	for i := 0; i < 16; i++ {
		if math.Abs(float64(m[i]-identity[i])) > 0.0001 {
			t.Errorf("Identity quat should produce identity matrix, element %d: got %v, want %v", i, m[i], identity[i])
		}
	}
}

func TestQuatFromAxisAngle(t *testing.T) {
	// 90 degrees around Y axis
	q := QuatFromAxisAngle(Vec3{X: 0, Y: 1, Z: 0}, float32(math.Pi/2))

	// Should have Y component and W = cos(45deg)
	expectedW := float32(math.Cos(math.Pi / 4))
	expectedY := float32(math.Sin(math.Pi / 4))

	if math.Abs(float64(q.W-expectedW)) > 0.001 {
		t.Errorf("QuatFromAxisAngle W: expected %v, got %v", expectedW, q.W)
	}
	if math.Abs(float64(q.Y-expectedY)) > 0.001 {
		t.Errorf("QuatFromAxisAngle Y: expected %v, got %v", expectedY, q.Y)
	}
}

func TestQuatRotate(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{X: 0, Y: 0, Z: 1}, float32(math.Pi/2))
	got := q.Rotate(Vec3{X: 1})

	if math.Abs(float64(got.X)) > 0.001 || math.Abs(float64(got.Y-1)) > 0.001 || math.Abs(float64(got.Z)) > 0.001 {
		t.Errorf("Rotate (1,0,0) by 90 about Z: got %v, want (0,1,0)", got)
	}
}

func TestQuatFromBasis(t *testing.T) {
	tests := []struct {
		name    string
		x, y, z Vec3
	}{
		{"identity", Vec3{X: 1}, Vec3{Y: 1}, Vec3{Z: 1}},
		{"z-quarter", Vec3{Y: 1}, Vec3{X: -1}, Vec3{Z: 1}},
		{"x-half", Vec3{X: 1}, Vec3{Y: -1}, Vec3{Z: -1}},
		{"y-facing", Vec3{X: -1}, Vec3{Z: 1}, Vec3{Y: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := QuatFromBasis(tt.x, tt.y, tt.z)
			m := q.ToMat4()
			for i, want := range []Vec3{tt.x, tt.y, tt.z} {
				got := m.Column(i)
				if got.Sub(want).Length() > 0.001 {
					t.Errorf("column %d = %v, want %v", i, got, want)
				}
			}
		})
	}
}

func TestQuatMulComposes(t *testing.T) {
	a := QuatFromAxisAngle(Vec3{Z: 1}, float32(math.Pi/4))
	got := a.Mul(a).Rotate(Vec3{X: 1})

	if math.Abs(float64(got.X)) > 0.001 || math.Abs(float64(got.Y-1)) > 0.001 {
		t.Errorf("two 45 degree turns: got %v, want (0,1,0)", got)
	}
}
