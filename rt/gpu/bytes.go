package gpu

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// MatrixSize is the byte size of one mat4x4f uniform.
const MatrixSize = 16 * 4

// mat4ToBytes writes the matrix column-major, matching WGSL mat4x4f.
func mat4ToBytes(m mgl32.Mat4) []byte {
	buf := make([]byte, MatrixSize)
	for i, v := range m {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

func floatsToBytes(fs []float32) []byte {
	buf := make([]byte, len(fs)*4)
	for i, v := range fs {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}
