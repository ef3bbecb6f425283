package material

import (
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-variant/engine/device"
	"github.com/Carmen-Shannon/oxy-variant/engine/light"
	"github.com/Carmen-Shannon/oxy-variant/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-variant/engine/renderer/uniform"
)

// assertOrder fails unless every needle occurs in src, in the given order.
func assertOrder(t *testing.T, src string, needles ...string) {
	t.Helper()
	last := -1
	for _, n := range needles {
		i := strings.Index(src, n)
		if i < 0 {
			t.Fatalf("missing %q in:\n%s", n, src)
		}
		if i < last {
			t.Fatalf("%q out of order in:\n%s", n, src)
		}
		last = i
	}
}

func forwardOptions() RenderOptions {
	var o RenderOptions
	o.Pass = shader.PassForward
	o.Maps[FeatureHeight] = MapOptions{Map: true, Channel: "g", Identifier: "height"}
	o.Maps[FeatureOpacity] = MapOptions{Map: true, Channel: "a", Identifier: "albedo"}
	o.Maps[FeatureNormal] = MapOptions{Map: true, Identifier: "normal"}
	o.Maps[FeatureDiffuse] = MapOptions{Map: true, Channel: "rgb", Identifier: "albedo", Encoding: shader.EncodingSRGB}
	o.Maps[FeatureGloss] = MapOptions{Map: true, Channel: "g", Identifier: "gloss", Tint: TintFloat}
	o.Maps[FeatureAo] = MapOptions{Map: true, Channel: "g", Identifier: "gloss"}
	o.Maps[FeatureEmissive] = MapOptions{Map: true, Channel: "rgb", Identifier: "glow", Encoding: shader.EncodingSRGB}
	o.Maps[FeatureLight] = MapOptions{Map: true, Uv: 1, Channel: "rgb", Identifier: "lm", Encoding: shader.EncodingRGBM}
	o.Lit = LitOptions{
		ShadingModel:   ShadingBlinn,
		BlendType:      BlendNormal,
		UseSpecular:    true,
		UseMetalness:   true,
		UseClearCoat:   true,
		HasTangents:    true,
		Gamma:          true,
		ToneMap:        ToneMapACES,
		OutputEncoding: shader.EncodingSRGB,
		Lights: []light.Light{
			light.NewLight(light.LightTypeDirectional, light.WithCastsShadows(true)),
			light.NewLight(light.LightTypeSpot, light.WithCookie("flashlight")),
		},
	}
	return o
}

func TestForwardDefinitionOrder(t *testing.T) {
	def := CreateShaderDefinition(device.NewNullDevice(), forwardOptions())

	assertOrder(t, def.FragmentSource,
		"#define FORWARD_PASS",
		"precision highp float;",
		"uniform float textureBias;",
		"struct LitShaderArguments",
		"uniform sampler2D texture_heightMap;",
		"void getParallax()",
		"void getOpacity()",
		"void getNormal()",
		"void getAlbedo()",
		"void getMetalness()",
		"void getGlossiness()",
		"void getAO()",
		"void getEmission()",
		"void getClearCoat()",
		"void getLightMap()",
		"void getTBN(",
		"LitShaderArguments evaluateFrontend() {",
		"    getParallax();",
		"    getOpacity();",
		"    getNormal();",
		"    getAlbedo();",
		"    getMetalness();",
		"    getGlossiness();",
		"    getAO();",
		"    getEmission();",
		"    getClearCoat();",
		"    getLightMap();",
		"    litArgs.opacity = dAlpha;",
		"    return litArgs;",
		"void main() {",
		"LitShaderArguments litArgs = evaluateFrontend();",
		"gl_FragColor = encodeGamma(toneMap(color));",
	)

	wantSamplers := []string{
		"texture_heightMap", "texture_opacityMap", "texture_normalMap",
		"texture_glossMap", "texture_emissiveMap", "texture_lightMap",
	}
	if !slices.Equal(def.Samplers, wantSamplers) {
		t.Errorf("Samplers = %v, want %v", def.Samplers, wantSamplers)
	}
	if strings.Contains(def.FragmentSource, "texture_diffuseMap") {
		t.Error("diffuse should share the opacity sampler")
	}
	for _, want := range []string{
		"#define TONEMAP 2",
		"#define GAMMA_CORRECT",
		"uniform vec3 light0_direction;",
		"uniform sampler2D light0_shadowMap;",
		"uniform float light1_outerConeAngle;",
		"uniform sampler2D light1_cookie;",
		"float getShadow(",
		"evaluateSpecular(lightDir, light0_color",
		"dLightmap *= decodeRGBM(texture2D(texture_lightMap, vUv1 + dUvOffset, textureBias)).rgb;",
	} {
		if !strings.Contains(def.FragmentSource, want) {
			t.Errorf("fragment missing %q", want)
		}
	}
}

func TestForwardDefinitionMetadata(t *testing.T) {
	opts := forwardOptions()
	opts.Maps[FeatureDiffuse].Transform = 1
	opts.Maps[FeatureDiffuse].Channel = "rgba"
	def := CreateShaderDefinition(device.NewNullDevice(), opts)

	if want := GenerateKey(&opts).Hash; def.Hash != want {
		t.Errorf("Hash = %08x, want %08x", def.Hash, want)
	}
	if opts.Maps[FeatureDiffuse].Channel != "rgba" {
		t.Errorf("caller options modified: channel = %q", opts.Maps[FeatureDiffuse].Channel)
	}
	if def.Pass != shader.PassForward || !strings.HasPrefix(def.Name, "standard-forward-") {
		t.Errorf("Pass = %d, Name = %q", def.Pass, def.Name)
	}
	wantAttrs := []string{"vertex_normal", "vertex_position", "vertex_tangent", "vertex_texCoord0", "vertex_texCoord1"}
	if got := def.AttributeNames(); !slices.Equal(got, wantAttrs) {
		t.Errorf("AttributeNames = %v, want %v", got, wantAttrs)
	}
	for _, want := range []string{
		"uniform vec3 texture_diffuseMapTransform0;",
		"varying vec2 vUV0_1;",
		"vUV0_1 = vec2(dot(vec3(uv0, 1), texture_diffuseMapTransform0), dot(vec3(uv0, 1), texture_diffuseMapTransform1));",
		"vUv1 = uv1;",
		"vTangentW = getTangent();",
	} {
		if !strings.Contains(def.VertexSource, want) {
			t.Errorf("vertex missing %q in:\n%s", want, def.VertexSource)
		}
	}
	if !strings.Contains(def.FragmentSource, "texture2D(texture_opacityMap, vUV0_1 + dUvOffset, textureBias)).rgb") {
		t.Errorf("diffuse not sampled through its transform with a corrected channel")
	}
}

func TestOpacityConstantWithoutBlending(t *testing.T) {
	opts := forwardOptions()
	opts.Lit.BlendType = BlendNone
	def := CreateShaderDefinition(device.NewNullDevice(), opts)
	if !strings.Contains(def.FragmentSource, "float dAlpha = 1.0;") {
		t.Error("opaque variant does not declare constant opacity")
	}
	if strings.Contains(def.FragmentSource, "getOpacity();") {
		t.Error("opaque variant evaluates opacity")
	}

	opts.Lit.AlphaTest = true
	def = CreateShaderDefinition(device.NewNullDevice(), opts)
	assertOrder(t, def.FragmentSource, "getOpacity();", "alphaTest(dAlpha);")
}

func TestSpecularFallbacks(t *testing.T) {
	opts := forwardOptions()
	def := CreateShaderDefinition(device.NewNullDevice(), opts)
	if !strings.Contains(def.FragmentSource, "dSpecularity = vec3(1);") {
		t.Error("missing unit specularity without a specular color")
	}

	opts.Lit.Lights = nil
	opts.Lit.UseSpecular = false
	def = CreateShaderDefinition(device.NewNullDevice(), opts)
	if !strings.Contains(def.FragmentSource, "vec3 dSpecularity = vec3(0.0);") {
		t.Error("unlit variant does not declare constant specularity")
	}
	if strings.Contains(def.FragmentSource, "getGlossiness();") {
		t.Error("unlit variant evaluates glossiness")
	}
}

func TestNonForwardOpacityOnly(t *testing.T) {
	opts := forwardOptions()
	opts.Pass = shader.PassDepth
	opts.Lit.AlphaTest = true
	def := CreateShaderDefinition(device.NewNullDevice(), opts)
	src := def.FragmentSource

	assertOrder(t, src, "#define DEPTH_PASS", "void getOpacity()", "void alphaTest(", "getOpacity();", "alphaTest(dAlpha);", "gl_FragColor = outputDepth();")
	for _, unwanted := range []string{"getAlbedo();", "getNormal();", "getEmission();", "basePS", "light0_color"} {
		if strings.Contains(src, unwanted) {
			t.Errorf("depth pass contains %q", unwanted)
		}
	}
	if !slices.Equal(def.Samplers, []string{"texture_opacityMap"}) {
		t.Errorf("Samplers = %v", def.Samplers)
	}

	opts.Lit.AlphaTest = false
	def = CreateShaderDefinition(device.NewNullDevice(), opts)
	if strings.Contains(def.FragmentSource, "getOpacity();") || len(def.Samplers) != 0 {
		t.Error("depth pass without clipping evaluates opacity")
	}
}

func TestShadowPassDefinition(t *testing.T) {
	opts := forwardOptions()
	opts.Pass = shader.EncodeShadowPass(light.LightTypeDirectional, light.ShadowVSM16)
	opts.Lit.OpacityShadowDither = true
	def := CreateShaderDefinition(device.NewNullDevice(), opts)
	assertOrder(t, def.FragmentSource,
		"#define SHADOW_PASS",
		"#define SHADOW_VSM",
		"getOpacity();",
		"opacityDither(dAlpha, 0.0);",
		"gl_FragColor = outputShadow();",
	)
	if strings.Contains(def.VertexSource, "vertex_normal") {
		t.Error("shadow pass vertex stage reads normals")
	}
}

func TestFresnelResolution(t *testing.T) {
	opts := forwardOptions()
	opts.Lit.ShadingModel = ShadingPhong
	opts.Lit.FresnelModel = FresnelSchlick
	opts.Lit.AmbientSH = true
	def := CreateShaderDefinition(device.NewNullDevice(), opts)
	if !strings.Contains(def.FragmentSource, "#define FRESNEL_MODEL 0") || strings.Contains(def.FragmentSource, "#define AMBIENT_SH") {
		t.Error("phong shading kept fresnel or SH ambient")
	}

	opts.Lit.ShadingModel = ShadingBlinn
	opts.Lit.FresnelModel = FresnelNone
	def = CreateShaderDefinition(device.NewNullDevice(), opts)
	if !strings.Contains(def.FragmentSource, "#define FRESNEL_MODEL 2") || !strings.Contains(def.FragmentSource, "#define AMBIENT_SH") {
		t.Error("blinn shading did not default to schlick fresnel")
	}
}

func TestDerivativeTangentBasis(t *testing.T) {
	opts := forwardOptions()
	opts.Lit.HasTangents = false
	opts.Maps[FeatureNormal].Uv = 1
	def := CreateShaderDefinition(device.NewNullDevice(), opts)
	if !strings.Contains(def.FragmentSource, "vec2 uv = vUv1 + dUvOffset;") {
		t.Errorf("derivative tangent basis not driven by the normal map uv")
	}
	if strings.Contains(def.VertexSource, "vertex_tangent") {
		t.Error("vertex stage reads tangents the mesh does not have")
	}
}

func TestNineSlicedTiled(t *testing.T) {
	opts := forwardOptions()
	opts.Lit.NineSlicedMode = NineSlicedTiled
	def := CreateShaderDefinition(device.NewNullDevice(), opts)
	for _, want := range []string{"const float textureBias = -1000.0;", "#define NINESLICETILED", "getNineSlicedUv();", "texture2D(texture_opacityMap, nineSlicedUv, textureBias)"} {
		if !strings.Contains(def.FragmentSource, want) {
			t.Errorf("fragment missing %q", want)
		}
	}
	if !strings.Contains(def.VertexSource, "vTiledUv =") {
		t.Error("vertex stage does not export the sprite uv")
	}
}

func TestClusteredLightUniforms(t *testing.T) {
	opts := forwardOptions()
	opts.Lit.ClusteredLighting = true
	def := CreateShaderDefinition(device.NewNullDevice(), opts)
	src := def.FragmentSource
	if !strings.Contains(src, "uniform vec3 light0_color;") {
		t.Error("directional light not baked")
	}
	if strings.Contains(src, "light1_") {
		t.Error("clustered spot light baked into the shader")
	}
	assertOrder(t, src, "#define CLUSTERED_LIGHTS", "vec3 evaluateClusterLights(", "diffuseLight += evaluateClusterLights(litArgs);")
}

func TestForwardHDROutput(t *testing.T) {
	opts := forwardOptions()
	opts.Pass = shader.PassForwardHDR
	def := CreateShaderDefinition(device.NewNullDevice(), opts)
	if !strings.Contains(def.FragmentSource, "gl_FragColor = encodeLinear(color);") {
		t.Error("HDR pass is tone mapped")
	}
}

func TestLegacySamplingShim(t *testing.T) {
	buf := captureWarnings(t)
	opts := forwardOptions()
	opts.Chunks = map[string]string{
		"emissivePS": "void getEmission() { dEmission = texture2DSRGB($SAMPLER, $UV).rgb; }",
	}
	def := CreateShaderDefinition(device.NewNullDevice(), opts)
	assertOrder(t, def.FragmentSource, "vec4 texture2DSRGB(sampler2D tex, vec2 uv)", "dEmission = texture2DSRGB(texture_emissiveMap")
	if !strings.Contains(buf.String(), "[Deprecated]") {
		t.Errorf("no deprecation notice:\n%s", buf.String())
	}
}

func TestSamplerLimitWarning(t *testing.T) {
	buf := captureWarnings(t)
	CreateShaderDefinition(device.NewNullDevice(device.WithMaxTextureSamplers(16)), forwardOptions())
	if buf.Len() != 0 {
		t.Fatalf("unexpected warning:\n%s", buf.String())
	}
	CreateShaderDefinition(device.NewNullDevice(device.WithMaxTextureSamplers(4)), forwardOptions())
	if !strings.Contains(buf.String(), "declares 6 samplers, the device supports 4") {
		t.Errorf("missing sampler limit warning:\n%s", buf.String())
	}
}

func TestOpacitySamplerRegisteredBeforeNormal(t *testing.T) {
	var o RenderOptions
	o.Pass = shader.PassForward
	o.Maps[FeatureOpacity] = MapOptions{Map: true, Channel: "a", Identifier: "packed"}
	o.Maps[FeatureNormal] = MapOptions{Map: true, Identifier: "packed"}
	o.Lit = LitOptions{BlendType: BlendNormal, UseSpecular: true, HasTangents: true}

	def := CreateShaderDefinition(device.NewNullDevice(), o)
	if !slices.Equal(def.Samplers, []string{"texture_opacityMap"}) {
		t.Fatalf("Samplers = %v, want the opacity sampler shared with the normal map", def.Samplers)
	}
	if !strings.Contains(def.FragmentSource, "unpackNormal(texture2D(texture_opacityMap,") {
		t.Errorf("normal map does not sample the shared opacity sampler:\n%s", def.FragmentSource)
	}
}

func TestBrokenChunkOverrideDegrades(t *testing.T) {
	buf := captureWarnings(t)
	o := forwardOptions()
	o.Chunks = map[string]string{"diffusePS": "//@oxy:include doesNotExist"}

	def := CreateShaderDefinition(device.NewNullDevice(), o)
	if strings.Contains(def.FragmentSource, "doesNotExist") {
		t.Error("unexpanded include reached the fragment source")
	}
	if !strings.Contains(buf.String(), `"diffusePS"`) {
		t.Errorf("no warning for the broken override: %q", buf.String())
	}
}

var lightUniformDecl = regexp.MustCompile(`uniform (?:float|vec3) (light\d+_\w+);`)

func TestBakedLightUniformsAreFilled(t *testing.T) {
	for _, clustered := range []bool{false, true} {
		opts := forwardOptions()
		opts.Lit.ClusteredLighting = clustered
		opts.Lit.Lights = append([]light.Light{
			light.NewLight(light.LightTypeOmni, light.WithPosition(0, 2, 0)),
			light.NewLight(light.LightTypeDirectional, light.WithEnabled(false)),
		}, opts.Lit.Lights...)
		def := CreateShaderDefinition(device.NewNullDevice(), opts)

		scope := uniform.NewScope("lights")
		for i, l := range opts.Lit.BakedLights() {
			l.UpdateUniforms(scope, i)
		}

		decls := lightUniformDecl.FindAllStringSubmatch(def.FragmentSource, -1)
		if len(decls) == 0 {
			t.Fatalf("clustered=%v: no light uniforms declared", clustered)
		}
		for _, m := range decls {
			if _, ok := scope.Resolve(m[1]).Value(); !ok {
				t.Errorf("clustered=%v: %s declared but never set", clustered, m[1])
			}
		}
	}
}
