package shader

import (
	"github.com/Carmen-Shannon/oxy-variant/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// ShaderType identifies the pipeline stage a generated source is compiled for.
type ShaderType int

const (
	// ShaderTypeVertex is the vertex stage.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is the fragment stage.
	ShaderTypeFragment
)

// Stage returns the wgpu shader stage flag for the type.
func (t ShaderType) Stage() wgpu.ShaderStage {
	switch t {
	case ShaderTypeVertex:
		return wgpu.ShaderStageVertex
	case ShaderTypeFragment:
		return wgpu.ShaderStageFragment
	}
	return wgpu.ShaderStageNone
}

// Definition is one generated shader variant: the vertex and fragment source for a
// single combination of render options, plus the metadata the device layer needs to
// compile and bind it. A Definition is not modified after it is returned by the
// generator, so it may be shared between materials with equal option keys.
type Definition struct {
	// Name is a human readable label, e.g. "standard-forward".
	Name string

	// Pass is the pass id the variant was generated for.
	Pass int

	// Hash is the 32-bit option key hash the variant was generated from.
	Hash uint32

	// VertexSource is the complete GLSL vertex stage.
	VertexSource string

	// FragmentSource is the complete GLSL fragment stage.
	FragmentSource string

	// Attributes maps vertex attribute names to their semantic, e.g.
	// "vertex_texCoord0" -> "TEXCOORD0".
	Attributes map[string]string

	// Samplers lists every sampler uniform declared by the fragment stage, in
	// declaration order.
	Samplers []string
}

// AttributeNames returns the vertex attribute names in sorted order.
func (d *Definition) AttributeNames() []string {
	return common.SortedKeys(d.Attributes)
}

// Modules builds GLSL shader module descriptors for both stages.
//
// Returns:
//   - *wgpu.ShaderModuleDescriptor: the vertex stage module
//   - *wgpu.ShaderModuleDescriptor: the fragment stage module
func (d *Definition) Modules() (vs, fs *wgpu.ShaderModuleDescriptor) {
	return d.module(ShaderTypeVertex, d.VertexSource), d.module(ShaderTypeFragment, d.FragmentSource)
}

func (d *Definition) module(t ShaderType, code string) *wgpu.ShaderModuleDescriptor {
	label := d.Name + "-vs"
	if t == ShaderTypeFragment {
		label = d.Name + "-fs"
	}
	return &wgpu.ShaderModuleDescriptor{
		Label: label,
		GLSLDescriptor: &wgpu.ShaderModuleGLSLDescriptor{
			Code:        code,
			ShaderStage: t.Stage(),
		},
	}
}
