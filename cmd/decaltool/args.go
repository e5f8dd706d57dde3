package main

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/Faultbox/decal-studio/internal/imaging"
	"github.com/Faultbox/decal-studio/pkg/math"
)

// parseFloats splits a comma-separated list of exactly n numbers.
func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d comma-separated values, got %q", n, s)
	}
	out := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q: %w", p, err)
		}
		out[i] = v
	}
	return out, nil
}

func parsePoint(s string) (image.Point, error) {
	v, err := parseFloats(s, 2)
	if err != nil {
		return image.Point{}, err
	}
	return image.Pt(int(v[0]), int(v[1])), nil
}

func parseRect(s string) (imaging.Rect, error) {
	v, err := parseFloats(s, 4)
	if err != nil {
		return imaging.Rect{}, err
	}
	if v[2] <= 0 || v[3] <= 0 {
		return imaging.Rect{}, fmt.Errorf("crop size must be positive, got %q", s)
	}
	return imaging.Rect{X: v[0], Y: v[1], W: v[2], H: v[3]}, nil
}

func parseVec3(s string) (math.Vec3, error) {
	v, err := parseFloats(s, 3)
	if err != nil {
		return math.Vec3{}, err
	}
	return math.Vec3{X: float32(v[0]), Y: float32(v[1]), Z: float32(v[2])}, nil
}

// pointList is a repeatable x,y flag.
type pointList []image.Point

func (l *pointList) String() string {
	parts := make([]string, len(*l))
	for i, p := range *l {
		parts[i] = fmt.Sprintf("%d,%d", p.X, p.Y)
	}
	return strings.Join(parts, " ")
}

func (l *pointList) Set(s string) error {
	p, err := parsePoint(s)
	if err != nil {
		return err
	}
	*l = append(*l, p)
	return nil
}

// cropDrag is one press, drag, release gesture on the crop rectangle.
type cropDrag struct {
	From, To imaging.Point
}

// dragList is a repeatable x0,y0:x1,y1 flag.
type dragList []cropDrag

func (l *dragList) String() string {
	parts := make([]string, len(*l))
	for i, d := range *l {
		parts[i] = fmt.Sprintf("%g,%g:%g,%g", d.From.X, d.From.Y, d.To.X, d.To.Y)
	}
	return strings.Join(parts, " ")
}

func (l *dragList) Set(s string) error {
	from, to, ok := strings.Cut(s, ":")
	if !ok {
		return fmt.Errorf("expected x0,y0:x1,y1, got %q", s)
	}
	a, err := parseFloats(from, 2)
	if err != nil {
		return err
	}
	b, err := parseFloats(to, 2)
	if err != nil {
		return err
	}
	*l = append(*l, cropDrag{
		From: imaging.Point{X: a[0], Y: a[1]},
		To:   imaging.Point{X: b[0], Y: b[1]},
	})
	return nil
}
