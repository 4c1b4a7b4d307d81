package gpu

import (
	"strings"
	"testing"

	"github.com/gekko3d/spinny/rt/shaders"

	"github.com/stretchr/testify/assert"
)

func cubeEntries() []EntryPoint {
	return []EntryPoint{VertexEntry(shaders.CubeVertexEntry), FragmentEntry(shaders.CubeFragmentEntry)}
}

func TestValidateCubeShader(t *testing.T) {
	assert.NoError(t, ValidateShader(shaders.CubeWGSL, cubeEntries()...))
}

func TestValidateShaderMissingEntryPoint(t *testing.T) {
	err := ValidateShader(shaders.CubeWGSL, VertexEntry("vs_main"))
	assert.ErrorContains(t, err, "vs_main")
}

func TestValidateShaderWrongStage(t *testing.T) {
	err := ValidateShader(shaders.CubeWGSL, FragmentEntry(shaders.CubeVertexEntry))
	assert.ErrorContains(t, err, "is a vertex shader, want fragment")
}

func TestValidateShaderSyntaxError(t *testing.T) {
	err := ValidateShader("@vertex fn broken( -> {")
	assert.ErrorContains(t, err, "failed to compile shader")
}

// A plain function sharing the entry point's name is not an entry point.
const helperNamedLikeEntry = `
fn vertex_main(p: vec4f) -> vec4f {
    return p;
}

@vertex
fn vs(@location(0) p: vec4f) -> @builtin(position) vec4f {
    return vertex_main(p);
}

@fragment
fn fragment_main() -> @location(0) vec4f {
    return vec4f(1.0);
}
`

func TestValidateShaderIgnoresHelperFunctions(t *testing.T) {
	err := ValidateShader(helperNamedLikeEntry, cubeEntries()...)
	assert.ErrorContains(t, err, `no entry point "vertex_main"`)
}

func TestValidateShaderAllowsSpacing(t *testing.T) {
	spaced := strings.Replace(shaders.CubeWGSL, "fn vertex_main(", "fn vertex_main (", 1)
	assert.NotEqual(t, shaders.CubeWGSL, spaced)
	assert.NoError(t, ValidateShader(spaced, cubeEntries()...))
}
