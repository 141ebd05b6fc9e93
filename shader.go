package learngpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
)

// Shader validation errors.
var (
	// ErrEmptySource is returned when a program carries no WGSL source.
	ErrEmptySource = errors.New("learngpu: empty shader source")

	// ErrMissingEntryPoint is returned when a declared entry point is not
	// present in the compiled module.
	ErrMissingEntryPoint = errors.New("learngpu: missing entry point")

	// ErrBindingMismatch is returned when the WGSL resource bindings do not
	// match the program's declared binding contract.
	ErrBindingMismatch = errors.New("learngpu: binding contract mismatch")
)

// ValidateProgram parses and lowers the program's WGSL source and checks it
// against the descriptor: both entry points must exist with the right stage,
// and the resource bindings in the source must match the declared contract
// exactly (same groups and slots, nothing extra, nothing missing).
//
// Validation failures are the compile-time error class of the system; they
// are fatal to pipeline creation and never observable at draw time.
func ValidateProgram(p Program) error {
	if p.Source == "" {
		return fmt.Errorf("%w: program %q", ErrEmptySource, p.Name)
	}

	ast, err := naga.Parse(p.Source)
	if err != nil {
		return fmt.Errorf("learngpu: parse %q: %w", p.Name, err)
	}

	module, err := naga.Lower(ast)
	if err != nil {
		return fmt.Errorf("learngpu: lower %q: %w", p.Name, err)
	}

	if err := checkEntryPoints(p, module); err != nil {
		return err
	}

	return checkBindings(p, module)
}

// checkEntryPoints verifies the vertex and fragment entry points.
func checkEntryPoints(p Program, module *ir.Module) error {
	var haveVertex, haveFragment bool
	for i := range module.EntryPoints {
		ep := &module.EntryPoints[i]
		switch {
		case ep.Name == p.VertexEntry && ep.Stage == ir.StageVertex:
			haveVertex = true
		case ep.Name == p.FragmentEntry && ep.Stage == ir.StageFragment:
			haveFragment = true
		}
	}

	if !haveVertex {
		return fmt.Errorf("%w: program %q has no @vertex %q",
			ErrMissingEntryPoint, p.Name, p.VertexEntry)
	}
	if !haveFragment {
		return fmt.Errorf("%w: program %q has no @fragment %q",
			ErrMissingEntryPoint, p.Name, p.FragmentEntry)
	}
	return nil
}

// checkBindings verifies the two-way binding contract: every declared slot
// appears in the source, and the source declares no resource slots beyond
// the contract.
func checkBindings(p Program, module *ir.Module) error {
	// Collect (group, binding) pairs of resource globals in the source.
	type slot struct{ group, binding uint32 }
	declared := make(map[slot]bool)
	for i := range module.GlobalVariables {
		gv := &module.GlobalVariables[i]
		if gv.Binding == nil {
			continue
		}
		declared[slot{gv.Binding.Group, gv.Binding.Binding}] = true
	}

	for _, want := range p.Bindings {
		s := slot{want.Group, want.Binding}
		if !declared[s] {
			return fmt.Errorf("%w: program %q missing %s at group %d binding %d",
				ErrBindingMismatch, p.Name, want.Kind, want.Group, want.Binding)
		}
		delete(declared, s)
	}

	for s := range declared {
		return fmt.Errorf("%w: program %q declares undocumented resource at group %d binding %d",
			ErrBindingMismatch, p.Name, s.group, s.binding)
	}
	return nil
}

// CompileSPIRV compiles the program's WGSL source to SPIR-V words suitable
// for hal.ShaderSource. SPIR-V is little-endian 32-bit words.
func CompileSPIRV(p Program) ([]uint32, error) {
	if p.Source == "" {
		return nil, fmt.Errorf("%w: program %q", ErrEmptySource, p.Name)
	}

	spirvBytes, err := naga.Compile(p.Source)
	if err != nil {
		return nil, fmt.Errorf("learngpu: compile %q: %w", p.Name, err)
	}

	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}
