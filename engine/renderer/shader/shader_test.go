package shader

import (
	"slices"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

func TestDefinitionModules(t *testing.T) {
	d := &Definition{
		Name:           "standard",
		VertexSource:   "void main() {}",
		FragmentSource: "void main() { }",
		Attributes:     map[string]string{"vertex_texCoord0": "TEXCOORD0", "vertex_position": "POSITION"},
	}
	vs, fs := d.Modules()
	if vs.Label != "standard-vs" || fs.Label != "standard-fs" {
		t.Fatalf("labels = %q, %q", vs.Label, fs.Label)
	}
	if vs.GLSLDescriptor.Code != d.VertexSource || vs.GLSLDescriptor.ShaderStage != wgpu.ShaderStageVertex {
		t.Errorf("vertex module = %+v", vs.GLSLDescriptor)
	}
	if fs.GLSLDescriptor.Code != d.FragmentSource || fs.GLSLDescriptor.ShaderStage != wgpu.ShaderStageFragment {
		t.Errorf("fragment module = %+v", fs.GLSLDescriptor)
	}
	if got := d.AttributeNames(); !slices.Equal(got, []string{"vertex_position", "vertex_texCoord0"}) {
		t.Errorf("AttributeNames = %v", got)
	}
}
