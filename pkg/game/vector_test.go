package game

import (
	"math"
	"testing"
)

func TestVec3Unit(t *testing.T) {
	if got := (Vec3{}).Unit(); got != (Vec3{}) {
		t.Errorf("zero vector Unit() = %+v, want zero", got)
	}
	u := Vec3{X: 3, Z: 4}.Unit()
	if math.Abs(u.Length()-1) > 1e-12 || math.Abs(u.X-0.6) > 1e-12 {
		t.Errorf("Unit() = %+v, want {0.6 0 0.8}", u)
	}
}

func TestQuaternionFromAxisAngle(t *testing.T) {
	if q := QuaternionFromAxisAngle(Vec3{}, 1); q != IdentityQuaternion() {
		t.Errorf("zero axis = %+v, want identity", q)
	}

	q := QuaternionFromAxisAngle(Vec3{X: 2}, math.Pi/2)
	if math.Abs(q.Norm()-1) > 1e-12 {
		t.Errorf("Norm() = %v, want 1", q.Norm())
	}
	tilt, ok := q.TiltFromUp()
	if !ok || math.Abs(tilt-math.Pi/2) > 1e-9 {
		t.Errorf("TiltFromUp() = %v, %v; want π/2, true", tilt, ok)
	}
}

func TestQuaternionTiltFromUp(t *testing.T) {
	tests := []struct {
		name   string
		q      Quaternion
		want   float64
		wantOK bool
	}{
		{"identity", IdentityQuaternion(), 0, true},
		{"spin around up keeps pin upright", QuaternionFromAxisAngle(Vec3{Y: 1}, 2), 0, true},
		{"tipped 30 degrees", QuaternionFromAxisAngle(Vec3{Z: 1}, math.Pi/6), math.Pi / 6, true},
		{"upside down", QuaternionFromAxisAngle(Vec3{X: 1}, math.Pi), math.Pi, true},
		{"unnormalized", Quaternion{W: 5}, 0, true},
		{"zero", Quaternion{}, 0, false},
		{"nan", Quaternion{X: math.NaN(), W: 1}, 0, false},
		{"inf", Quaternion{W: math.Inf(1)}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.q.TiltFromUp()
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("tilt = %v, want %v", got, tt.want)
			}
		})
	}
}
