package imaging

import (
	"image"
	"slices"
)

// Operation is a replayable flood fill.
type Operation struct {
	Seed      image.Point
	Tolerance float64
}

// History wraps a raster with snapshot-based undo/redo of flood fills.
// The most recent fill can be re-run at a new tolerance without adding history.
type History struct {
	img      *image.NRGBA
	undo     [][]byte
	redo     [][]byte
	last     *Operation
	maxDepth int
}

// NewHistory takes ownership of img. maxDepth <= 0 means unbounded.
func NewHistory(img *image.NRGBA, maxDepth int) *History {
	return &History{img: img, maxDepth: maxDepth}
}

// Image returns the current raster.
func (h *History) Image() *image.NRGBA {
	return h.img
}

// CanUndo reports whether Undo would change the raster.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether Redo would change the raster.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// LastOperation returns the replayable fill, if any.
func (h *History) LastOperation() (Operation, bool) {
	if h.last == nil {
		return Operation{}, false
	}
	return *h.last, true
}

// Apply snapshots the raster, clears redo, and flood fills from seed.
// It returns the number of pixels cleared.
func (h *History) Apply(seed image.Point, tolerance float64) int {
	h.pushUndo(slices.Clone(h.img.Pix))
	h.redo = h.redo[:0]
	h.last = &Operation{Seed: seed, Tolerance: tolerance}
	return FloodFill(h.img, seed, tolerance)
}

// Undo restores the previous raster. No-op when there is nothing to undo.
func (h *History) Undo() bool {
	if len(h.undo) == 0 {
		return false
	}
	h.redo = append(h.redo, slices.Clone(h.img.Pix))
	copy(h.img.Pix, h.undo[len(h.undo)-1])
	h.undo = h.undo[:len(h.undo)-1]
	h.last = nil
	return true
}

// Redo reapplies the last undone fill. No-op when there is nothing to redo.
func (h *History) Redo() bool {
	if len(h.redo) == 0 {
		return false
	}
	h.pushUndo(slices.Clone(h.img.Pix))
	copy(h.img.Pix, h.redo[len(h.redo)-1])
	h.redo = h.redo[:len(h.redo)-1]
	h.last = nil
	return true
}

// Retune re-runs the last fill at a new tolerance from the snapshot taken
// before it. The undo target is unchanged and redo is cleared.
func (h *History) Retune(tolerance float64) bool {
	if h.last == nil || len(h.undo) == 0 {
		return false
	}
	copy(h.img.Pix, h.undo[len(h.undo)-1])
	h.redo = h.redo[:0]
	h.last.Tolerance = tolerance
	FloodFill(h.img, h.last.Seed, tolerance)
	return true
}

// Reset replaces the raster and drops all history.
func (h *History) Reset(img *image.NRGBA) {
	h.img = img
	h.undo = nil
	h.redo = nil
	h.last = nil
}

func (h *History) pushUndo(snapshot []byte) {
	h.undo = append(h.undo, snapshot)
	if h.maxDepth > 0 && len(h.undo) > h.maxDepth {
		h.undo = slices.Delete(h.undo, 0, len(h.undo)-h.maxDepth)
	}
}
