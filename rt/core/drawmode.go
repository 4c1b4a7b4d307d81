package core

import (
	"math"
)

// DrawMode selects which part of the strip is drawn each frame.
type DrawMode int

const (
	DrawFull DrawMode = iota
	// DrawTriangleSweep reveals the strip one triangle at a time.
	DrawTriangleSweep
	// DrawSingleTriangle slides a three vertex window along the strip.
	DrawSingleTriangle
)

// stepMs is how long each sweep step stays on screen.
const stepMs = 500.0

func (m DrawMode) String() string {
	switch m {
	case DrawFull:
		return "full"
	case DrawTriangleSweep:
		return "triangle-sweep"
	case DrawSingleTriangle:
		return "single-triangle"
	default:
		return "unknown"
	}
}

// Toggle switches to target, or back to DrawFull when target is already active.
func (m DrawMode) Toggle(target DrawMode) DrawMode {
	if m == target {
		return DrawFull
	}
	return target
}

type DrawCall struct {
	VertexCount   uint32
	InstanceCount uint32
	FirstVertex   uint32
	FirstInstance uint32
}

// DrawCall picks the vertex range for a strip of n vertices at elapsedMs
// of monotonic time.
func (m DrawMode) DrawCall(n int, elapsedMs float64) DrawCall {
	if elapsedMs < 0 || math.IsNaN(elapsedMs) {
		elapsedMs = 0
	}
	step := elapsedMs / stepMs

	switch m {
	case DrawTriangleSweep:
		if n <= 3 {
			return DrawCall{VertexCount: uint32(n), InstanceCount: 1}
		}
		count := int(math.Floor(math.Mod(step, float64(n-2)))) + 3
		return DrawCall{VertexCount: uint32(min(count, n)), InstanceCount: 1}
	case DrawSingleTriangle:
		if n <= 3 {
			return DrawCall{VertexCount: 3, InstanceCount: 1}
		}
		first := int(math.Floor(math.Mod(step, float64(n-3))))
		return DrawCall{VertexCount: 3, InstanceCount: 1, FirstVertex: uint32(min(first, n-4))}
	default:
		return DrawCall{VertexCount: uint32(n), InstanceCount: 1}
	}
}
