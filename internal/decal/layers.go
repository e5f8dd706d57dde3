package decal

import (
	"cmp"
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/decal-studio/internal/logger"
)

// Ordered returns decals top-first: descending layer, ties in list order.
func Ordered(ds []*Decal) []*Decal {
	out := slices.Clone(ds)
	slices.SortStableFunc(out, func(a, b *Decal) int {
		return cmp.Compare(b.Layer(), a.Layer())
	})
	return out
}

// NextLayer returns the layer that places a new decal on top of ds.
func NextLayer(ds []*Decal) int {
	next := 0
	for _, d := range ds {
		if d.Layer() >= next {
			next = d.Layer() + 1
		}
	}
	return next
}

// Nudge shifts one decal's layer by delta, floored at 0. Other decals are untouched.
func Nudge(d *Decal, delta int) {
	d.SetLayer(d.Layer() + delta)
}

// MoveToIndex moves d to index in the top-first order and renumbers every
// decal to count-1-i. Only decals whose layer changes are rebuilt.
// It returns the new top-first order.
func MoveToIndex(ds []*Decal, d *Decal, index int) []*Decal {
	ordered := Ordered(ds)
	from := slices.Index(ordered, d)
	if from < 0 {
		return ordered
	}

	ordered = slices.Delete(ordered, from, from+1)
	index = max(0, min(index, len(ordered)))
	ordered = slices.Insert(ordered, index, d)

	changed := 0
	for i, x := range ordered {
		layer := len(ordered) - 1 - i
		if x.Layer() != layer {
			x.SetLayer(layer)
			changed++
		}
	}

	logger.Debug("decals reordered",
		zap.Stringer("decal", d.ID),
		zap.Int("from", from),
		zap.Int("to", index),
		zap.Int("rebuilt", changed))
	return ordered
}

// StepUp moves d one position toward the top.
func StepUp(ds []*Decal, d *Decal) []*Decal {
	return MoveToIndex(ds, d, IndexOf(ds, d)-1)
}

// StepDown moves d one position toward the bottom.
func StepDown(ds []*Decal, d *Decal) []*Decal {
	return MoveToIndex(ds, d, IndexOf(ds, d)+1)
}

// IndexOf returns d's position in the top-first order, or -1.
func IndexOf(ds []*Decal, d *Decal) int {
	return slices.Index(Ordered(ds), d)
}
