package model

import "github.com/Faultbox/decal-studio/internal/engine/picking"

// Collection is the set of target meshes that rays are cast against.
type Collection struct {
	meshes []*Mesh
}

// NewCollection creates a collection from the given meshes.
func NewCollection(meshes ...*Mesh) *Collection {
	return &Collection{meshes: meshes}
}

// Add appends a mesh to the collection.
func (c *Collection) Add(m *Mesh) {
	c.meshes = append(c.meshes, m)
}

// Meshes returns the meshes in insertion order.
func (c *Collection) Meshes() []*Mesh {
	return c.meshes
}

// Raycast returns the closest hit across all visible meshes.
func (c *Collection) Raycast(r picking.Ray) (Hit, bool) {
	var best Hit
	found := false
	for _, m := range c.meshes {
		if !m.Visible {
			continue
		}
		hit, ok := m.Raycast(r)
		if ok && (!found || hit.Distance < best.Distance) {
			best = hit
			found = true
		}
	}
	return best, found
}
