// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// Attribute locations shared by every mesh shader. They match the
// vertex stream slots of gpu.VertexLayout.
const (
	LocationPosition = 0
	LocationNormal   = 1
	LocationTexcoord = 2
)

// MVPUniform is the name of the model-view-projection matrix uniform.
const MVPUniform = "uMVP"

// MeshVertexShader is the vertex shader for mesh rendering.
//
//go:embed mesh.vert
var MeshVertexShader string

// MeshFragmentShader is the fragment shader for mesh rendering.
// It shades by the interpolated normal.
//
//go:embed mesh.frag
var MeshFragmentShader string
