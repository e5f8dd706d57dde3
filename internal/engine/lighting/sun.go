// Package lighting provides the key light used to shade targets and decals.
package lighting

import "math"

// SunDirection converts azimuth/elevation angles in degrees to a unit vector
// pointing towards the light. Azimuth turns about +Y starting at +Z,
// elevation is measured up from the horizon.
func SunDirection(azimuth, elevation float32) [3]float32 {
	az := float64(azimuth) * math.Pi / 180.0
	el := float64(elevation) * math.Pi / 180.0

	x := float32(math.Cos(el) * math.Sin(az))
	y := float32(math.Sin(el))
	z := float32(math.Cos(el) * math.Cos(az))

	return [3]float32{x, y, z}
}
