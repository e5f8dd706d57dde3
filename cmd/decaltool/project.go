package main

import (
	"flag"
	"fmt"
	gomath "math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/decal-studio/internal/config"
	"github.com/Faultbox/decal-studio/internal/decal"
	"github.com/Faultbox/decal-studio/internal/editor"
	"github.com/Faultbox/decal-studio/internal/engine/model"
	"github.com/Faultbox/decal-studio/internal/engine/picking"
	"github.com/Faultbox/decal-studio/pkg/math"
)

// projectReport is the YAML form of a projection result.
type projectReport struct {
	Target    string     `yaml:"target"`
	Anchor    [3]float32 `yaml:"anchor"`
	Normal    [3]float32 `yaml:"normal"`
	Width     float32    `yaml:"width"`
	Height    float32    `yaml:"height"`
	Triangles int        `yaml:"triangles"`
	Vertices  int        `yaml:"vertices"`
	BoundsMin [3]float32 `yaml:"bounds_min,flow"`
	BoundsMax [3]float32 `yaml:"bounds_max,flow"`
}

// runProject: decaltool project [-target kind] [-from x,y,z] [-dir x,y,z] [-size n] [-angle deg] [-aspect n]
// The anchor is found by casting a ray at the target, the way a click would.
func runProject(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("project", flag.ExitOnError)
	target := fs.String("target", "box", "Target mesh: plane, box, sphere or scene")
	from := fs.String("from", "0.3,0.2,5", "Ray origin x,y,z")
	dir := fs.String("dir", "0,0,-1", "Ray direction x,y,z")
	size := fs.Float64("size", float64(cfg.Decal.DefaultSize), "Decal size in world units")
	angle := fs.Float64("angle", 0, "In-plane rotation in degrees")
	aspect := fs.Float64("aspect", 1, "Texture width / height")
	fs.Parse(args)
	if fs.NArg() != 0 {
		return errUsage
	}

	targets, err := buildTargets(*target)
	if err != nil {
		return err
	}
	origin, err := parseVec3(*from)
	if err != nil {
		return fmt.Errorf("from: %w", err)
	}
	direction, err := parseVec3(*dir)
	if err != nil {
		return fmt.Errorf("dir: %w", err)
	}
	if direction.Length() == 0 {
		return fmt.Errorf("dir: must be non-zero")
	}

	hit, ok := targets.Raycast(picking.Ray{Origin: origin, Direction: direction.Normalize()})
	if !ok {
		return fmt.Errorf("ray from %v misses the %s target", origin, *target)
	}

	report := projectAt(hit, float32(*size), float32(*angle), float32(*aspect), editor.ProjectionOptions(cfg.Decal))

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(report)
}

// projectAt projects a decal anchored at hit. The size is clamped to the
// configured bounds, as decal.New does for interactive placement.
func projectAt(hit model.Hit, size, angleDeg, aspect float32, opts decal.Options) projectReport {
	p := decal.Params{
		Position:    hit.Point,
		Normal:      hit.Normal,
		Angle:       angleDeg * gomath.Pi / 180,
		Size:        decal.ClampSize(size, opts),
		AspectRatio: aspect,
		Visible:     true,
	}
	geom := decal.Build(p, hit.Mesh, opts)
	w, h := decal.Dimensions(p.Size, p.AspectRatio)

	report := projectReport{
		Target:    hit.Mesh.Name,
		Anchor:    hit.Point.Array(),
		Normal:    hit.Normal.Array(),
		Width:     w,
		Height:    h,
		Triangles: geom.TriangleCount(),
		Vertices:  len(geom.Vertices),
		BoundsMin: geom.Bounds.Min.Array(),
		BoundsMax: geom.Bounds.Max.Array(),
	}
	if geom.Empty() {
		report.BoundsMin = math.Vec3{}.Array()
		report.BoundsMax = math.Vec3{}.Array()
	}
	return report
}
