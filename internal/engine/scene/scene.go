// Package scene renders target meshes and the decals projected onto them.
package scene

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/decal-studio/internal/engine/lighting"
	"github.com/Faultbox/decal-studio/internal/engine/model"
	"github.com/Faultbox/decal-studio/internal/logger"
	"github.com/Faultbox/decal-studio/pkg/math"
)

// Scene composes the target and decal renderers.
type Scene struct {
	targets *model.Collection

	targetRenderer *TargetRenderer
	decalRenderer  *DecalRenderer

	// Lighting
	LightDir [3]float32
	Ambient  [3]float32
}

// New creates a scene. A GL context must be current.
func New() (*Scene, error) {
	tr, err := NewTargetRenderer()
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	dr, err := NewDecalRenderer()
	if err != nil {
		tr.Destroy()
		return nil, fmt.Errorf("scene: %w", err)
	}

	return &Scene{
		targetRenderer: tr,
		decalRenderer:  dr,
		LightDir:       lighting.SunDirection(-35, 55),
		Ambient:        [3]float32{0.35, 0.35, 0.38},
	}, nil
}

// Decals returns the render surface decals submit their meshes to.
func (s *Scene) Decals() *DecalRenderer {
	return s.decalRenderer
}

// SetTargets replaces the mesh collection drawn under the decals.
func (s *Scene) SetTargets(targets *model.Collection) {
	s.targets = targets
	s.targetRenderer.Forget(targets)
	if targets != nil {
		logger.Debug("scene targets set", zap.Int("meshes", len(targets.Meshes())))
	}
}

// Targets returns the current mesh collection.
func (s *Scene) Targets() *model.Collection {
	return s.targets
}

// Render draws targets first, then decals in render order.
func (s *Scene) Render(viewProj math.Mat4) {
	s.targetRenderer.Render(s.targets, viewProj, s.LightDir, s.Ambient)
	s.decalRenderer.Render(viewProj, s.LightDir, s.Ambient)
}

// Destroy releases all GPU resources.
func (s *Scene) Destroy() {
	s.decalRenderer.Destroy()
	s.targetRenderer.Destroy()
}
