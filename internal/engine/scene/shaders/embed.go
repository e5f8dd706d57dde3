// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// TargetVertexShader is the vertex shader for target meshes.
//
//go:embed target.vert
var TargetVertexShader string

// TargetFragmentShader is the fragment shader for target meshes.
//
//go:embed target.frag
var TargetFragmentShader string

// DecalVertexShader is the vertex shader for projected decals.
//
//go:embed decal.vert
var DecalVertexShader string

// DecalFragmentShader is the fragment shader for projected decals.
//
//go:embed decal.frag
var DecalFragmentShader string
