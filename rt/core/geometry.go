package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// cubeStrip is a triangle strip over the unit cube in 0/1 coordinates.
// Every vertex after the first two closes a triangle with the previous two.
var cubeStrip = [...][3]float32{
	{0, 0, 0},
	{0, 1, 0},
	{1, 0, 0},
	{1, 1, 0},
	{1, 1, 1},
	{0, 1, 0},
	{0, 1, 1},
	{0, 0, 1},
	{1, 1, 1},
	{1, 0, 1},
	{1, 0, 0},
	{0, 0, 1},
	{0, 0, 0},
	{0, 1, 0},
}

// CubeStrip returns the first n strip vertices scaled into [-1,1] with w=1.
// n is clamped to the length of the strip.
func CubeStrip(n int) []mgl32.Vec4 {
	if n > len(cubeStrip) || n <= 0 {
		n = len(cubeStrip)
	}
	out := make([]mgl32.Vec4, n)
	for i := 0; i < n; i++ {
		v := cubeStrip[i]
		out[i] = mgl32.Vec4{v[0]*2 - 1, v[1]*2 - 1, v[2]*2 - 1, 1}
	}
	return out
}

// Flatten packs vertices for upload. Stride 3 drops w; the shader fills it back in as 1.
func Flatten(vertices []mgl32.Vec4, stride int) []float32 {
	out := make([]float32, 0, len(vertices)*stride)
	for _, v := range vertices {
		out = append(out, v[:stride]...)
	}
	return out
}
