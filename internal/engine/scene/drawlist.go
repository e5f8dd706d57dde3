package scene

import (
	"cmp"
	"slices"

	"github.com/Faultbox/decal-studio/internal/decal"
)

type drawEntry struct {
	mesh *decal.Mesh
	seq  uint64
}

// DrawList holds submitted decal meshes. It never owns their geometry.
type DrawList struct {
	entries []drawEntry
	seq     uint64
}

// Add submits a mesh. Submitting the same mesh twice is a no-op.
func (l *DrawList) Add(m *decal.Mesh) {
	if l.Contains(m) {
		return
	}
	l.seq++
	l.entries = append(l.entries, drawEntry{mesh: m, seq: l.seq})
}

// Remove withdraws a mesh.
func (l *DrawList) Remove(m *decal.Mesh) {
	l.entries = slices.DeleteFunc(l.entries, func(e drawEntry) bool { return e.mesh == m })
}

// Contains reports whether m is submitted.
func (l *DrawList) Contains(m *decal.Mesh) bool {
	return slices.ContainsFunc(l.entries, func(e drawEntry) bool { return e.mesh == m })
}

// Len returns the number of submitted meshes.
func (l *DrawList) Len() int {
	return len(l.entries)
}

// Ordered returns visible, non-empty meshes in draw order: ascending render
// order, then submission order. Later meshes win on equal depth.
func (l *DrawList) Ordered() []*decal.Mesh {
	entries := slices.Clone(l.entries)
	slices.SortStableFunc(entries, func(a, b drawEntry) int {
		if c := cmp.Compare(a.mesh.RenderOrder, b.mesh.RenderOrder); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})

	out := make([]*decal.Mesh, 0, len(entries))
	for _, e := range entries {
		if e.mesh.Visible && !e.mesh.Geometry.Empty() {
			out = append(out, e.mesh)
		}
	}
	return out
}
