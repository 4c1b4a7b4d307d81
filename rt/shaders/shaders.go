package shaders

import (
	_ "embed"
)

const (
	CubeVertexEntry   = "vertex_main"
	CubeFragmentEntry = "fragment_main"
)

//go:embed cube.wgsl
var CubeWGSL string
