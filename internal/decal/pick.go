package decal

import (
	"github.com/Faultbox/decal-studio/internal/engine/picking"
)

// pickEpsilon treats hits this close as coplanar so the topmost decal wins.
const pickEpsilon = 1e-5

// Pick returns the visible decal whose mesh r hits first.
func Pick(ds []*Decal, r picking.Ray) (*Decal, float32, bool) {
	var best *Decal
	var bestT float32
	for _, d := range Ordered(ds) {
		if !d.Visible() || d.Mesh() == nil {
			continue
		}
		t, ok := d.Mesh().Geometry.Raycast(r)
		if !ok {
			continue
		}
		if best == nil || t < bestT-pickEpsilon {
			best, bestT = d, t
		}
	}
	return best, bestT, best != nil
}
