package material

import (
	"fmt"
	"strconv"

	"github.com/Carmen-Shannon/oxy-variant/engine/device"
	"github.com/Carmen-Shannon/oxy-variant/engine/light"
	"github.com/Carmen-Shannon/oxy-variant/engine/renderer/shader"
)

// litShader generates the vertex stage and wraps a material frontend into a complete
// fragment stage for one set of render options.
type litShader struct {
	caps   device.Capabilities
	opts   *RenderOptions
	chunks *shader.ChunkLibrary

	baked       []light.Light
	lighting    bool
	reflections bool
	needsNormal bool
	vertexColor bool

	attributes map[string]string
	varyings   shader.Section

	vshader string
	fshader string
}

func newLitShader(caps device.Capabilities, opts *RenderOptions) *litShader {
	lit := &opts.Lit
	shadowPass := shader.IsShadowPass(opts.Pass)

	l := &litShader{
		caps:        caps,
		opts:        opts,
		chunks:      shader.NewChunkLibrary(opts.Chunks),
		baked:       lit.BakedLights(),
		reflections: lit.ReflectionSource != "",
		attributes:  map[string]string{"vertex_position": "POSITION"},
	}
	l.lighting = len(l.baked) > 0 || lit.DirLightMap || lit.ClusteredLighting
	l.needsNormal = (l.lighting || l.reflections || lit.UseSpecular || lit.AmbientSH || lit.UseHeights ||
		(lit.ClusteredLighting && !shadowPass) || lit.UseClearCoatNormals) && !shadowPass
	for f := Feature(0); f < FeatureCount; f++ {
		if opts.Maps[f].VertexColor {
			l.vertexColor = true
			break
		}
	}
	return l
}

func (l *litShader) forward() bool {
	return shader.IsForwardPass(l.opts.Pass)
}

func (l *litShader) nineSliced() bool {
	return l.forward() && l.opts.Lit.NineSlicedMode != NineSlicedNone
}

// generateVertexShader builds the vertex stage and records the attributes and the
// varyings shared with the fragment stage.
func (l *litShader) generateVertexShader(u uvUsage) {
	lit := &l.opts.Lit
	if l.nineSliced() {
		u.useUv[0] = true
	}

	var attrs, decls, body shader.ChunkBuilder
	var varyings shader.ChunkBuilder

	attrs.Append("attribute vec3 vertex_position;")
	decls.Append("varying vec3 vPositionW;", "vec3 dPositionW;")
	decls.Append(l.chunks.Chunk("transformVS"))
	body.Append("    gl_Position = getPosition();", "    vPositionW = getWorldPosition();")

	if l.forward() {
		l.attributes["vertex_normal"] = "NORMAL"
		attrs.Append("attribute vec3 vertex_normal;")
		decls.Append("varying vec3 vNormalW;", l.chunks.Chunk("normalVS"))
		body.Append("    vNormalW = getNormal();")

		if l.needsNormal && lit.HasTangents {
			l.attributes["vertex_tangent"] = "TANGENT"
			attrs.Append("attribute vec4 vertex_tangent;")
			varyings.Append("varying vec3 vTangentW;", "varying vec3 vBinormalW;")
			decls.Append(l.chunks.Chunk("tangentBinormalVS"))
			body.Append("    vTangentW = getTangent();", "    vBinormalW = getBinormal();")
		}
	}

	for i := range maxUvSets {
		if !u.useUv[i] {
			continue
		}
		n := strconv.Itoa(i)
		l.attributes["vertex_texCoord"+n] = "TEXCOORD" + n
		attrs.Append("attribute vec2 vertex_texCoord" + n + ";")
		decls.Append(l.chunks.Chunk("uv" + n + "VS"))
		body.Append("    vec2 uv" + n + " = getUv" + n + "();")
		if u.useUnmodifiedUv[i] {
			varyings.Append("varying vec2 vUv" + n + ";")
			body.Append("    vUv" + n + " = uv" + n + ";")
		}
	}

	seen := make(map[[2]int]bool)
	for _, t := range u.transforms {
		if seen[[2]int{t.uv, t.id}] {
			continue
		}
		seen[[2]int{t.uv, t.id}] = true
		v := fmt.Sprintf("vUV%d_%d", t.uv, t.id)
		row := fmt.Sprintf("texture_%sMapTransform", t.name)
		decls.Append("uniform vec3 "+row+"0;", "uniform vec3 "+row+"1;")
		varyings.Append("varying vec2 " + v + ";")
		body.Append(fmt.Sprintf("    %s = vec2(dot(vec3(uv%d, 1), %s0), dot(vec3(uv%d, 1), %s1));", v, t.uv, row, t.uv, row))
	}

	if l.vertexColor {
		l.attributes["vertex_color"] = "COLOR"
		attrs.Append("attribute vec4 vertex_color;")
		decls.Append("varying vec4 vVertexColor;")
		body.Append("    vVertexColor = vertex_color;")
	}

	if l.nineSliced() {
		decls.Append(l.chunks.Chunk("nineSlicedVS"))
		body.Append(
			"    vMask = atlasRect;",
			"    vTiledUv = (uv0 - innerOffset.xy) * outerScale + innerOffset.xy;",
		)
	}

	l.varyings = varyings.Section()

	var vs shader.ChunkBuilder
	vs.Append(shader.PreprocessorDefine(l.opts.Pass))
	vs.Append(attrs.Code(), l.varyings.String(), decls.Code())
	vs.Append("void main() {", body.Code(), "}")
	l.vshader = vs.Code()
}

// generateFragmentShader wraps the frontend sections into the fragment stage.
// lightingUv is the UV expression the tangent basis is derived from on meshes
// without tangents.
func (l *litShader) generateFragmentShader(decl, code, fn shader.Section, lightingUv string) {
	var fs shader.ChunkBuilder
	fs.Append(shader.PreprocessorDefine(l.opts.Pass))
	fs.Append(l.defines())
	fs.Append("precision " + string(l.caps.Precision) + " float;")
	if !l.varyings.IsEmpty() {
		fs.Append(l.varyings.String())
	}

	if !l.forward() {
		if l.vertexColor {
			fs.Append("varying vec4 vVertexColor;")
		}
		fs.Append("float saturate(float x) {", "    return clamp(x, 0.0, 1.0);", "}")
		fs.Append(decl.String(), code.String(), fn.String())
		fs.Append(l.passOutput())
		l.fshader = fs.Code()
		return
	}

	lit := &l.opts.Lit
	fs.Append(l.chunks.Chunk("basePS"), l.chunks.Chunk("decodePS"))
	if l.nineSliced() {
		fs.Append(l.chunks.Chunk("nineSlicedPS"))
	}
	fs.Append(decl.String(), code.String())

	if l.needsNormal {
		if lit.HasTangents {
			fs.Append(l.chunks.Chunk("TBNPS"))
		} else {
			uv := lightingUv
			if uv == "" {
				uv = "vec2(0.0)"
			}
			fs.Append(shader.Resolve(l.chunks.Chunk("TBNderivativePS"), shader.Slots{shader.SlotUV: uv}))
		}
	}

	fs.Append(
		l.chunks.Chunk("lightingPS"),
		l.chunks.Chunk("ambientPS"),
		l.chunks.Chunk("tonemappingPS"),
		l.chunks.Chunk("encodePS"),
	)
	if l.castsShadows() {
		fs.Append(l.chunks.Chunk("shadowPS"))
	}
	if lit.ClusteredLighting {
		fs.Append(l.chunks.Chunk("clusteredLightPS"))
	}
	if l.reflections {
		fs.Append(l.chunks.Chunk("reflectionEnvPS"))
	}
	for i, lt := range l.baked {
		fs.Append(lightUniforms(i, lt))
	}

	fs.Append(fn.String())
	fs.Append(l.forwardMain())
	l.fshader = fs.Code()
}

func (l *litShader) defines() string {
	lit := &l.opts.Lit
	var b shader.ChunkBuilder
	if l.forward() {
		b.Append("#define FRESNEL_MODEL " + strconv.Itoa(int(lit.FresnelModel)))
		b.Append("#define TONEMAP " + strconv.Itoa(int(lit.ToneMap)))
		if lit.AmbientSH {
			b.Append("#define AMBIENT_SH")
		}
		if lit.Gamma {
			b.Append("#define GAMMA_CORRECT")
		}
		if lit.ClusteredLighting {
			b.Append("#define CLUSTERED_LIGHTS")
		}
		switch lit.NineSlicedMode {
		case NineSlicedSliced:
			b.Append("#define NINESLICED")
		case NineSlicedTiled:
			b.Append("#define NINESLICED", "#define NINESLICETILED")
		}
	}
	if l.vertexColor {
		b.Append("#define VERTEX_COLOR")
	}
	if shader.IsShadowPass(l.opts.Pass) && shader.ToShadowKind(l.opts.Pass).IsVSM() {
		b.Append("#define SHADOW_VSM")
	}
	return b.Code()
}

func (l *litShader) castsShadows() bool {
	for _, lt := range l.baked {
		if lt.CastsShadows() {
			return true
		}
	}
	return false
}

func lightUniforms(i int, lt light.Light) string {
	p := "light" + strconv.Itoa(i)
	var b shader.ChunkBuilder
	b.Append("uniform vec3 " + p + "_color;")
	switch lt.Type() {
	case light.LightTypeDirectional:
		b.Append("uniform vec3 " + p + "_direction;")
	case light.LightTypeOmni:
		b.Append("uniform vec3 "+p+"_position;", "uniform float "+p+"_radius;")
	case light.LightTypeSpot:
		b.Append(
			"uniform vec3 "+p+"_position;",
			"uniform float "+p+"_radius;",
			"uniform vec3 "+p+"_direction;",
			"uniform float "+p+"_innerConeAngle;",
			"uniform float "+p+"_outerConeAngle;",
		)
	}
	if lt.CastsShadows() {
		b.Append("uniform sampler2D "+p+"_shadowMap;", "uniform mat4 "+p+"_shadowMatrix;")
		if lt.NormalOffsetBias() != 0 {
			b.Append("uniform float " + p + "_normalBias;")
		}
	}
	if lt.Cookie() != "" {
		b.Append("uniform sampler2D " + p + "_cookie;")
	}
	return b.Code()
}

// lightBody returns the main() lines that accumulate light i.
func (l *litShader) lightBody(i int, lt light.Light) string {
	p := "light" + strconv.Itoa(i)
	var b shader.ChunkBuilder
	b.Append(fmt.Sprintf("    // %s light %d", lt.Type(), i))
	b.Append("    {")
	switch lt.Type() {
	case light.LightTypeDirectional:
		b.Append("        vec3 lightDir = normalize(" + p + "_direction);")
		b.Append("        float attenuation = 1.0;")
	default:
		b.Append("        vec3 lightVec = vPositionW - " + p + "_position;")
		b.Append("        vec3 lightDir = normalize(lightVec);")
		if lt.Falloff() == light.FalloffInverseSquared {
			b.Append("        float attenuation = 1.0 / max(dot(lightVec, lightVec), 0.0001);")
		} else {
			b.Append("        float attenuation = saturate(1.0 - length(lightVec) / " + p + "_radius);")
		}
		if lt.Type() == light.LightTypeSpot {
			b.Append("        float cosAngle = dot(lightDir, normalize(" + p + "_direction));")
			b.Append("        attenuation *= smoothstep(" + p + "_outerConeAngle, " + p + "_innerConeAngle, cosAngle);")
		}
	}
	if lt.CastsShadows() {
		pos := "vPositionW"
		if lt.NormalOffsetBias() != 0 {
			pos = "vPositionW + dVertexNormalW * " + p + "_normalBias"
		}
		b.Append("        attenuation *= getShadow(" + p + "_shadowMap, (" + p + "_shadowMatrix * vec4(" + pos + ", 1.0)).xyz);")
	}
	if lt.Cookie() != "" {
		b.Append("        attenuation *= texture2D(" + p + "_cookie, (" + p + "_shadowMatrix * vec4(vPositionW, 1.0)).xy).r;")
	}
	b.Append("        diffuseLight += evaluateLight(lightDir, " + p + "_color, attenuation, litArgs);")
	if l.opts.Lit.UseSpecular && lt.AffectSpecularity() {
		b.Append("        specularLight += evaluateSpecular(lightDir, " + p + "_color, attenuation, litArgs);")
	}
	b.Append("    }")
	return b.Code()
}

func (l *litShader) forwardMain() string {
	lit := &l.opts.Lit
	var b shader.ChunkBuilder
	b.Append("void main() {", "    getViewDir();")
	if l.nineSliced() {
		b.Append("    getNineSlicedUv();")
	}
	if l.needsNormal {
		if lit.HasTangents {
			b.Append("    getTBN(vTangentW, vBinormalW, dVertexNormalW);")
		} else {
			b.Append("    getTBN(vec3(0.0), vec3(0.0), dVertexNormalW);")
		}
	}
	b.Append(
		"    LitShaderArguments litArgs = evaluateFrontend();",
		"    vec3 diffuseLight = litArgs.albedo * getAmbient(dVertexNormalW);",
		"    vec3 specularLight = vec3(0.0);",
	)
	if l.opts.Maps[FeatureAo].Map || l.opts.Maps[FeatureAo].VertexColor {
		b.Append("    diffuseLight *= litArgs.ao;")
	}
	if l.opts.Maps[FeatureLight].Map || l.opts.Maps[FeatureLight].VertexColor {
		b.Append("    diffuseLight += litArgs.albedo * litArgs.lightmap;")
	}
	for i, lt := range l.baked {
		b.Append(l.lightBody(i, lt))
	}
	if lit.ClusteredLighting {
		b.Append("    diffuseLight += evaluateClusterLights(litArgs);")
	}
	if l.reflections {
		b.Append("    specularLight += getReflection(dVertexNormalW, dGlossiness) * dSpecularity;")
	}
	b.Append("    vec3 color = diffuseLight + specularLight + litArgs.emission;")

	if l.opts.Pass == shader.PassForwardHDR {
		b.Append("    gl_FragColor = encodeLinear(color);")
	} else {
		b.Append("    gl_FragColor = " + shader.EncodeFunctionName(lit.OutputEncoding) + "(toneMap(color));")
	}
	b.Append("    gl_FragColor.a = dAlpha;", "}")
	return b.Code()
}

// passOutput returns the output chunk and main() of depth, pick, shadow and user
// passes.
func (l *litShader) passOutput() string {
	var b shader.ChunkBuilder
	output := "vec4(1.0)"
	switch shader.Classify(l.opts.Pass) {
	case shader.PassClassDepth:
		b.Append(l.chunks.Chunk("depthPS"))
		output = "outputDepth()"
	case shader.PassClassPick:
		b.Append(l.chunks.Chunk("pickPS"))
		output = "outputPick()"
	case shader.PassClassShadow:
		b.Append(l.chunks.Chunk("shadowOutputPS"))
		output = "outputShadow()"
	}
	b.Append("void main() {", "    evaluateFrontend();", "    gl_FragColor = "+output+";", "}")
	return b.Code()
}
