package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDrawFull(t *testing.T) {
	call := DrawFull.DrawCall(14, 123456)
	assert.Equal(t, DrawCall{VertexCount: 14, InstanceCount: 1}, call)
}

func TestTriangleSweepRange(t *testing.T) {
	for _, n := range []int{13, 14} {
		seen := map[uint32]bool{}
		for ms := 0.0; ms < 60000; ms += 37 {
			call := DrawTriangleSweep.DrawCall(n, ms)
			if call.VertexCount < 3 || call.VertexCount > uint32(n) {
				t.Fatalf("n=%d ms=%v: vertex count %d outside [3, %d]", n, ms, call.VertexCount, n)
			}
			assert.Zero(t, call.FirstVertex)
			assert.Equal(t, uint32(1), call.InstanceCount)
			seen[call.VertexCount] = true
		}
		assert.Len(t, seen, n-2, "every count from 3 to n is reached")
	}
}

func TestTriangleSweepSteps(t *testing.T) {
	assert.Equal(t, uint32(3), DrawTriangleSweep.DrawCall(14, 0).VertexCount)
	assert.Equal(t, uint32(3), DrawTriangleSweep.DrawCall(14, 499).VertexCount)
	assert.Equal(t, uint32(4), DrawTriangleSweep.DrawCall(14, 500).VertexCount)
	assert.Equal(t, uint32(14), DrawTriangleSweep.DrawCall(14, 11*500).VertexCount)
	assert.Equal(t, uint32(3), DrawTriangleSweep.DrawCall(14, 12*500).VertexCount, "wraps after the last triangle")
}

func TestSingleTriangleRange(t *testing.T) {
	for _, n := range []int{13, 14} {
		seen := map[uint32]bool{}
		for ms := 0.0; ms < 60000; ms += 41 {
			call := DrawSingleTriangle.DrawCall(n, ms)
			if call.FirstVertex > uint32(n-4) {
				t.Fatalf("n=%d ms=%v: first vertex %d outside [0, %d]", n, ms, call.FirstVertex, n-4)
			}
			assert.Equal(t, uint32(3), call.VertexCount)
			assert.Equal(t, uint32(1), call.InstanceCount)
			seen[call.FirstVertex] = true
		}
		assert.Len(t, seen, n-3)
	}
}

func TestDrawCallNegativeTime(t *testing.T) {
	assert.Equal(t, uint32(3), DrawTriangleSweep.DrawCall(14, -250).VertexCount)
	assert.Zero(t, DrawSingleTriangle.DrawCall(14, -250).FirstVertex)
}

func TestToggle(t *testing.T) {
	m := DrawFull
	m = m.Toggle(DrawTriangleSweep)
	assert.Equal(t, DrawTriangleSweep, m)
	m = m.Toggle(DrawTriangleSweep)
	assert.Equal(t, DrawFull, m)

	m = m.Toggle(DrawSingleTriangle).Toggle(DrawSingleTriangle)
	assert.Equal(t, DrawFull, m)

	m = m.Toggle(DrawTriangleSweep).Toggle(DrawSingleTriangle)
	assert.Equal(t, DrawSingleTriangle, m)
	assert.Equal(t, "single-triangle", m.String())
}
