package gpu

import (
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
)

// EntryPoint names a shader function and the stage it must be declared for.
type EntryPoint struct {
	Name  string
	Stage ir.ShaderStage
}

func VertexEntry(name string) EntryPoint   { return EntryPoint{Name: name, Stage: ir.StageVertex} }
func FragmentEntry(name string) EntryPoint { return EntryPoint{Name: name, Stage: ir.StageFragment} }

var stageNames = map[ir.ShaderStage]string{
	ir.StageVertex:   "vertex",
	ir.StageTask:     "task",
	ir.StageMesh:     "mesh",
	ir.StageFragment: "fragment",
	ir.StageCompute:  "compute",
}

func stageName(s ir.ShaderStage) string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return fmt.Sprintf("stage(%d)", s)
}

// ValidateShader parses, lowers and validates the WGSL source offline and
// checks every wanted entry point is declared with its stage, so a broken
// shader is reported before any device call.
func ValidateShader(source string, entries ...EntryPoint) error {
	module, err := compileModule(source)
	if err != nil {
		return fmt.Errorf("failed to compile shader: %w", err)
	}
	declared := make(map[string]ir.ShaderStage, len(module.EntryPoints))
	for _, ep := range module.EntryPoints {
		declared[ep.Name] = ep.Stage
	}
	for _, want := range entries {
		stage, ok := declared[want.Name]
		if !ok {
			return fmt.Errorf("shader has no entry point %q", want.Name)
		}
		if stage != want.Stage {
			return fmt.Errorf("entry point %q is a %s shader, want %s", want.Name, stageName(stage), stageName(want.Stage))
		}
	}
	return nil
}

func compileModule(source string) (*ir.Module, error) {
	ast, err := naga.Parse(source)
	if err != nil {
		return nil, err
	}
	module, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return nil, fmt.Errorf("lowering error: %w", err)
	}
	problems, err := naga.Validate(module)
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}
	if len(problems) > 0 {
		return nil, fmt.Errorf("validation failed: %w", &problems[0])
	}
	return module, nil
}
