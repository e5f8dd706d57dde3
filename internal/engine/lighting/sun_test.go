package lighting

import (
	"math"
	"testing"
)

func TestSunDirection(t *testing.T) {
	tests := []struct {
		name               string
		azimuth, elevation float32
		want               [3]float32
	}{
		{"front horizon", 0, 0, [3]float32{0, 0, 1}},
		{"right horizon", 90, 0, [3]float32{1, 0, 0}},
		{"zenith", 0, 90, [3]float32{0, 1, 0}},
		{"behind", 180, 0, [3]float32{0, 0, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SunDirection(tt.azimuth, tt.elevation)
			for i := range got {
				if math.Abs(float64(got[i]-tt.want[i])) > 1e-5 {
					t.Errorf("SunDirection(%v, %v) = %v, want %v", tt.azimuth, tt.elevation, got, tt.want)
					break
				}
			}
		})
	}
}

func TestSunDirectionIsUnit(t *testing.T) {
	for az := float32(0); az < 360; az += 37 {
		for el := float32(-80); el <= 80; el += 23 {
			d := SunDirection(az, el)
			l := math.Sqrt(float64(d[0]*d[0] + d[1]*d[1] + d[2]*d[2]))
			if math.Abs(l-1) > 1e-5 {
				t.Errorf("expected unit vector for (%v, %v), got length %v", az, el, l)
			}
		}
	}
}
