package material

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-variant/engine/debug"
	"github.com/Carmen-Shannon/oxy-variant/engine/renderer/shader"
)

func captureWarnings(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	debug.SetLogger(log.New(&buf, "", 0))
	debug.ResetOnce()
	t.Cleanup(func() {
		debug.SetLogger(nil)
		debug.ResetOnce()
	})
	return &buf
}

func TestUvSourceExpression(t *testing.T) {
	cases := []struct {
		name  string
		setup func(o *RenderOptions)
		f     Feature
		want  string
	}{
		{"untransformed uv0", func(o *RenderOptions) {}, FeatureDiffuse, "vUv0"},
		{"untransformed uv1", func(o *RenderOptions) { o.Maps[FeatureDiffuse].Uv = 1 }, FeatureDiffuse, "vUv1"},
		{"transformed", func(o *RenderOptions) {
			o.Maps[FeatureDiffuse].Uv = 1
			o.Maps[FeatureDiffuse].Transform = 2
		}, FeatureDiffuse, "vUV1_2"},
		{"parallax offset", func(o *RenderOptions) { o.Maps[FeatureHeight].Map = true }, FeatureDiffuse, "vUv0 + dUvOffset"},
		{"height map itself", func(o *RenderOptions) { o.Maps[FeatureHeight].Map = true }, FeatureHeight, "vUv0"},
		{"nine sliced forward", func(o *RenderOptions) {
			o.Lit.NineSlicedMode = NineSlicedSliced
			o.Maps[FeatureHeight].Map = true
			o.Maps[FeatureDiffuse].Transform = 3
		}, FeatureDiffuse, "nineSlicedUv"},
		{"nine tiled forward", func(o *RenderOptions) { o.Lit.NineSlicedMode = NineSlicedTiled }, FeatureDiffuse, "nineSlicedUv"},
		{"nine sliced depth", func(o *RenderOptions) {
			o.Pass = shader.PassDepth
			o.Lit.NineSlicedMode = NineSlicedSliced
		}, FeatureDiffuse, "vUv0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var o RenderOptions
			o.Maps[tc.f].Map = true
			tc.setup(&o)
			if got := UvSourceExpression(tc.f, &o); got != tc.want {
				t.Errorf("UvSourceExpression = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestUvFallbackShared(t *testing.T) {
	var o RenderOptions
	for _, f := range []Feature{FeatureDiffuse, FeatureGloss, FeatureAo, FeatureEmissive} {
		o.Maps[f] = MapOptions{Map: true}
	}
	want := UvSourceExpression(FeatureDiffuse, &o)
	if want != "vUv0" {
		t.Fatalf("diffuse uv = %q", want)
	}
	for _, f := range []Feature{FeatureGloss, FeatureAo, FeatureEmissive} {
		if got := UvSourceExpression(f, &o); got != want {
			t.Errorf("%v uv = %q, want %q", f, got, want)
		}
	}
}

func TestAddMapDiffuseScenario(t *testing.T) {
	var o RenderOptions
	o.Maps[FeatureDiffuse] = MapOptions{Map: true, Uv: 0, Transform: 0, Channel: "rgb"}
	a := newAssembler(&o)

	src := a.addMap(FeatureDiffuse, "diffusePS", nil, "")
	if !strings.Contains(src, "vUv0, textureBias)).rgb") {
		t.Errorf("uv/channel not substituted:\n%s", src)
	}
	if strings.Contains(src, "texture_diffuseMap") {
		t.Errorf("sampler bound without a texture mapping:\n%s", src)
	}
	if strings.Contains(src, "$") {
		t.Errorf("unresolved slot left in:\n%s", src)
	}

	mapping := NewTextureMapping()
	src = a.addMap(FeatureDiffuse, "diffusePS", mapping, "")
	if !strings.Contains(src, "texture2D(texture_diffuseMap, vUv0, textureBias)") {
		t.Errorf("sampler not bound:\n%s", src)
	}
	if mapping.Len() != 1 {
		t.Errorf("mapping has %d entries, want 1", mapping.Len())
	}
}

func TestAddMapSamplerDedup(t *testing.T) {
	var o RenderOptions
	o.Maps[FeatureDiffuse] = MapOptions{Map: true, Channel: "rgb", Identifier: "atlas"}
	o.Maps[FeatureOpacity] = MapOptions{Map: true, Channel: "a", Identifier: "atlas"}
	o.Maps[FeatureEmissive] = MapOptions{Map: true, Channel: "rgb", Identifier: "glow"}
	a := newAssembler(&o)
	mapping := NewTextureMapping()

	first := a.addMap(FeatureDiffuse, "diffusePS", mapping, "")
	second := a.addMap(FeatureDiffuse, "diffusePS", mapping, "")
	if first != second {
		t.Errorf("repeated assembly differs:\n%s\n---\n%s", first, second)
	}
	opacity := a.addMap(FeatureOpacity, "opacityPS", mapping, "")
	if !strings.Contains(opacity, "texture2D(texture_diffuseMap, vUv0, textureBias).a") {
		t.Errorf("shared identifier did not reuse the sampler:\n%s", opacity)
	}
	if mapping.Len() != 1 {
		t.Fatalf("mapping has %d entries, want 1", mapping.Len())
	}

	a.addMap(FeatureEmissive, "emissivePS", mapping, "")
	if got := mapping.Samplers(); len(got) != 2 || got[0] != "texture_diffuseMap" || got[1] != "texture_emissiveMap" {
		t.Errorf("Samplers() = %v", got)
	}
}

func TestAddMapDecode(t *testing.T) {
	cases := []struct {
		name     string
		channel  string
		gamma    bool
		encoding shader.Encoding
		want     string
	}{
		{"srgb without gamma", "rgb", false, shader.EncodingSRGB, "decodeLinear(texture2D"},
		{"srgb with gamma", "rgb", true, shader.EncodingSRGB, "decodeGamma(texture2D"},
		{"rgbm", "rgb", true, shader.EncodingRGBM, "decodeRGBM(texture2D"},
		{"unknown", "rgb", true, shader.Encoding("bogus"), "decodeGamma(texture2D"},
		{"alpha", "a", true, shader.EncodingSRGB, "passThrough(texture2D"},
		{"alpha triple", "aaa", true, shader.EncodingRGBE, "passThrough(texture2D"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var o RenderOptions
			o.Lit.Gamma = tc.gamma
			o.Maps[FeatureEmissive] = MapOptions{Map: true, Channel: tc.channel}
			src := newAssembler(&o).addMap(FeatureEmissive, "emissivePS", NewTextureMapping(), tc.encoding)
			if !strings.Contains(src, tc.want) {
				t.Errorf("missing %q in:\n%s", tc.want, src)
			}
		})
	}
}

func TestAddMapDefines(t *testing.T) {
	var o RenderOptions
	o.Maps[FeatureGloss] = MapOptions{Map: true, Channel: "g", Tint: TintFloat | TintVector, Invert: true}
	src := newAssembler(&o).addMap(FeatureGloss, "glossPS", nil, "")
	want := "#define MAPFLOAT\n#define MAPCOLOR\n#undef MAPVERTEX\n#define MAPTEXTURE\n#define MAPINVERT\n"
	if !strings.HasPrefix(src, want) {
		t.Errorf("defines = %q, want prefix %q", src[:min(len(src), len(want))], want)
	}

	o.Maps[FeatureGloss] = MapOptions{}
	src = newAssembler(&o).addMap(FeatureGloss, "glossPS", nil, "")
	want = "#undef MAPFLOAT\n#undef MAPCOLOR\n#undef MAPVERTEX\n#undef MAPTEXTURE\n#undef MAPINVERT\n"
	if !strings.HasPrefix(src, want) {
		t.Errorf("defines = %q, want prefix %q", src[:min(len(src), len(want))], want)
	}
}

func TestAddMapVertexColorAndDetailMode(t *testing.T) {
	var o RenderOptions
	o.Maps[FeatureAo] = MapOptions{VertexColor: true, VertexColorChannel: "b"}
	o.Maps[FeatureDiffuseDetail] = MapOptions{Map: true, Channel: "rgb", Mode: "overlay"}
	a := newAssembler(&o)

	if src := a.addMap(FeatureAo, "aoPS", nil, ""); !strings.Contains(src, "vVertexColor.b") {
		t.Errorf("vertex color channel not substituted:\n%s", src)
	}
	if src := a.addMap(FeatureDiffuseDetail, "diffuseDetailMapPS", nil, shader.EncodingLinear); !strings.Contains(src, "detailMode_overlay(albedo") {
		t.Errorf("detail mode not substituted:\n%s", src)
	}
}

func TestAddMapKeepsUnknownSigils(t *testing.T) {
	var o RenderOptions
	o.Maps[FeatureDiffuse] = MapOptions{Map: true, Channel: "rgb"}
	o.Chunks = map[string]string{"diffusePS": "// cost $5, $UVX stays, $UV goes"}
	src := newAssembler(&o).addMap(FeatureDiffuse, "diffusePS", nil, "")
	if !strings.Contains(src, "// cost $5, $UVX stays, vUv0 goes") {
		t.Errorf("unexpected resolution:\n%s", src)
	}
}

func TestAddMapLegacySample(t *testing.T) {
	buf := captureWarnings(t)

	var o RenderOptions
	o.Maps[FeatureDiffuse] = MapOptions{Map: true, Channel: "rgb"}
	o.Chunks = map[string]string{"diffusePS": "void getAlbedo() { dAlbedo = $texture2DSAMPLE($SAMPLER, $UV).$CH; }"}
	a := newAssembler(&o)

	src := a.addMap(FeatureDiffuse, "diffusePS", NewTextureMapping(), shader.EncodingRGBM)
	if !strings.Contains(src, "texture2DRGBM(texture_diffuseMap, vUv0).rgb") {
		t.Errorf("legacy macro not resolved:\n%s", src)
	}
	a.addMap(FeatureDiffuse, "diffusePS", NewTextureMapping(), shader.EncodingRGBM)
	if n := strings.Count(buf.String(), "[Deprecated]"); n != 1 {
		t.Errorf("deprecation logged %d times, want 1:\n%s", n, buf.String())
	}
}

func TestCorrectChannel(t *testing.T) {
	cases := []struct {
		channel string
		n       int
		want    string
	}{
		{"rgb", 3, "rgb"},
		{"rgba", 3, "rgb"},
		{"r", 3, "rrr"},
		{"ga", 3, "gaa"},
		{"rgb", 1, "r"},
		{"", 3, ""},
		{"xyz", -1, "xyz"},
		{"xyz", 0, "xyz"},
	}
	for _, tc := range cases {
		if got := correctChannel(tc.channel, tc.n); got != tc.want {
			t.Errorf("correctChannel(%q, %d) = %q, want %q", tc.channel, tc.n, got, tc.want)
		}
	}
}

func TestAnalyzeUvUsage(t *testing.T) {
	var o RenderOptions
	o.Maps[FeatureDiffuse] = MapOptions{Map: true, Uv: 5, Channel: "rgba"}
	o.Maps[FeatureGloss] = MapOptions{Map: true, Uv: 0, Channel: "rgb", Transform: 1}
	o.Maps[FeatureAo] = MapOptions{VertexColor: true, VertexColorChannel: "rg"}
	o.Maps[FeatureNormal] = MapOptions{Map: true, Channel: "xyzw"}

	u := analyzeUvUsage(&o)

	if o.Maps[FeatureDiffuse].Uv != 1 {
		t.Errorf("diffuse uv = %d, want clamped to 1", o.Maps[FeatureDiffuse].Uv)
	}
	if o.Maps[FeatureDiffuse].Channel != "rgb" {
		t.Errorf("diffuse channel = %q", o.Maps[FeatureDiffuse].Channel)
	}
	if o.Maps[FeatureGloss].Channel != "r" {
		t.Errorf("gloss channel = %q", o.Maps[FeatureGloss].Channel)
	}
	if o.Maps[FeatureAo].VertexColorChannel != "r" {
		t.Errorf("ao vertex color channel = %q", o.Maps[FeatureAo].VertexColorChannel)
	}
	if o.Maps[FeatureNormal].Channel != "xyzw" {
		t.Errorf("normal channel = %q, want unchanged", o.Maps[FeatureNormal].Channel)
	}
	if u.useUv != [maxUvSets]bool{true, true} {
		t.Errorf("useUv = %v", u.useUv)
	}
	if u.useUnmodifiedUv != [maxUvSets]bool{true, true} {
		t.Errorf("useUnmodifiedUv = %v", u.useUnmodifiedUv)
	}
	if len(u.transforms) != 1 || u.transforms[0] != (mapTransform{name: "gloss", id: 1, uv: 0}) {
		t.Errorf("transforms = %+v", u.transforms)
	}
}

func TestAnalyzeUvUsageForceUv1(t *testing.T) {
	var o RenderOptions
	o.ForceUv1 = true
	u := analyzeUvUsage(&o)
	if !u.useUv[1] || !u.useUnmodifiedUv[1] {
		t.Errorf("forced uv1: useUv=%v useUnmodifiedUv=%v", u.useUv, u.useUnmodifiedUv)
	}

	o.Maps[FeatureLight] = MapOptions{Map: true, Uv: 1, Transform: 4, Channel: "rgb"}
	u = analyzeUvUsage(&o)
	if !u.useUv[1] || u.useUnmodifiedUv[1] {
		t.Errorf("transformed uv1: useUv=%v useUnmodifiedUv=%v", u.useUv, u.useUnmodifiedUv)
	}
}
