package decal

import (
	"image"
	gomath "math"
)

// WrapMode selects how texture coordinates outside [0,1] are sampled.
type WrapMode int

const (
	WrapClamp WrapMode = iota
	WrapRepeat
)

// Material describes how a decal mesh samples and blends its texture.
type Material struct {
	Texture     image.Image
	Repeat      [2]float32
	Offset      [2]float32
	Wrap        WrapMode
	DepthWrite  bool
	Transparent bool
}

// NewMaterial returns a transparent, non-depth-writing material.
// A flipped axis mirrors sampling with repeat -1 and offset +1.
func NewMaterial(tex image.Image, flipH, flipV bool) Material {
	m := Material{
		Texture:     tex,
		Repeat:      [2]float32{1, 1},
		Wrap:        WrapRepeat,
		Transparent: true,
	}
	if flipH {
		m.Repeat[0], m.Offset[0] = -1, 1
	}
	if flipV {
		m.Repeat[1], m.Offset[1] = -1, 1
	}
	return m
}

// TransformUV maps a mesh texture coordinate to the sampled coordinate.
func (m Material) TransformUV(uv [2]float32) [2]float32 {
	var out [2]float32
	for i := range uv {
		v := uv[i]*m.Repeat[i] + m.Offset[i]
		if m.Wrap == WrapRepeat && (v < 0 || v > 1) {
			v -= float32(gomath.Floor(float64(v)))
		}
		out[i] = v
	}
	return out
}
