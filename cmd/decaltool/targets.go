package main

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/decal-studio/internal/engine/model"
	"github.com/Faultbox/decal-studio/internal/engine/picking"
	"github.com/Faultbox/decal-studio/pkg/math"
)

// buildTargets returns a primitive target collection by name.
func buildTargets(kind string) (*model.Collection, error) {
	switch kind {
	case "plane":
		return model.NewCollection(model.NewPlane(2, 2, 8)), nil
	case "box":
		return model.NewCollection(model.NewBox(1, 1, 1)), nil
	case "sphere":
		return model.NewCollection(model.NewSphere(0.5, 24, 48)), nil
	case "scene":
		floor := model.NewPlane(4, 4, 8)
		floor.Name = "floor"
		floor.World = math.RotateX(-gomath.Pi / 2)
		box := model.NewBox(1, 1, 1)
		box.World = math.Translate(0, 0.5, 0)
		ball := model.NewSphere(0.4, 24, 48)
		ball.World = math.Translate(-1.2, 0.4, -0.8)
		return model.NewCollection(floor, box, ball), nil
	default:
		return nil, fmt.Errorf("unknown target %q (want plane, box, sphere or scene)", kind)
	}
}

// collectionBounds returns the world bounds of all meshes.
func collectionBounds(c *model.Collection) picking.AABB {
	meshes := c.Meshes()
	if len(meshes) == 0 {
		return picking.AABB{}
	}
	b := meshes[0].WorldBounds()
	for _, m := range meshes[1:] {
		wb := m.WorldBounds()
		b = b.Extend(wb.Min).Extend(wb.Max)
	}
	return b
}
