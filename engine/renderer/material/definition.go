// definition.go assembles standard material shader variants. Each feature block of the
// fragment frontend is built as an immutable set of sections and the blocks are
// composed in a fixed dependency order once every block has been built.
package material

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-variant/engine/debug"
	"github.com/Carmen-Shannon/oxy-variant/engine/device"
	"github.com/Carmen-Shannon/oxy-variant/engine/renderer/shader"
)

// frontend is the output of one feature block: declarations, feature code, the calls
// made by the entry function and the assignments that fill the lit arguments.
type frontend struct {
	decl  shader.Section
	code  shader.Section
	calls shader.Section
	args  shader.Section
}

func (f frontend) then(others ...frontend) frontend {
	for _, o := range others {
		f = frontend{
			decl:  f.decl.Then(o.decl),
			code:  f.code.Then(o.code),
			calls: f.calls.Then(o.calls),
			args:  f.args.Then(o.args),
		}
	}
	return f
}

func decl(lines ...string) frontend  { return frontend{decl: shader.NewSection(lines...)} }
func code(lines ...string) frontend  { return frontend{code: shader.NewSection(lines...)} }
func calls(lines ...string) frontend { return frontend{calls: shader.NewSection(lines...)} }
func args(lines ...string) frontend  { return frontend{args: shader.NewSection(lines...)} }

// CreateShaderDefinition generates the vertex and fragment source of the standard
// material variant described by opts. opts is taken by value; channel and UV set
// corrections apply to the local copy only.
//
// Parameters:
//   - dev: the device the variant is generated for
//   - opts: the render options
//
// Returns:
//   - *shader.Definition: the generated variant
func CreateShaderDefinition(dev device.Device, opts RenderOptions) *shader.Definition {
	key := GenerateKey(&opts)

	lit := &opts.Lit
	if lit.ShadingModel == ShadingPhong {
		lit.FresnelModel = FresnelNone
		lit.AmbientSH = false
	} else if lit.FresnelModel == FresnelNone {
		lit.FresnelModel = FresnelSchlick
	}

	usage := analyzeUvUsage(&opts)
	ls := newLitShader(dev.Capabilities(), &opts)
	ls.generateVertexShader(usage)

	a := newAssembler(&opts)
	mapping := NewTextureMapping()
	var fe frontend
	lightingUv := ""

	if lit.NineSlicedMode == NineSlicedTiled {
		fe = decl("const float textureBias = -1000.0;")
	} else {
		fe = decl("uniform float textureBias;")
	}

	if shader.IsForwardPass(opts.Pass) {
		fe = fe.then(a.parallaxBlock(mapping), a.opacityBlock(mapping))
		var normal frontend
		normal, lightingUv = a.normalBlock(ls, mapping)
		fe = fe.then(
			normal,
			a.sceneColorBlock(),
			a.albedoBlock(mapping),
			a.refractionBlock(mapping),
			a.iridescenceBlock(mapping),
			a.specularBlock(ls, mapping),
			a.aoBlock(mapping),
			a.emissiveBlock(mapping),
			a.clearCoatBlock(mapping),
			a.lightmapBlock(mapping),
		)
		if usesLegacySampling(fe.code) {
			fe.code = shader.NewSection(a.chunks.Chunk("textureSamplePS")).Then(fe.code)
			debug.Deprecated("Shader chunk macros texture2DSRGB, texture2DRGBM and texture2DRGBE are deprecated. Please use $DECODE(texture2D(XXX)) instead.")
		}
	} else {
		fe = fe.then(a.shadowOpacityBlock(mapping))
	}

	var fn shader.ChunkBuilder
	fn.Append("LitShaderArguments evaluateFrontend() {", "    LitShaderArguments litArgs;")
	for _, s := range []shader.Section{fe.calls, fe.args} {
		if !s.IsEmpty() {
			fn.Append(indent(s.String()))
		}
	}
	fn.Append("    return litArgs;", "}")

	samplers := mapping.Samplers()
	declSection := fe.decl.Then(shader.NewSection(a.chunks.Chunk("litShaderArgsPS")))
	for _, s := range samplers {
		declSection = declSection.Then(shader.NewSection("uniform sampler2D " + s + ";"))
	}

	ls.generateFragmentShader(declSection, fe.code, fn.Section(), lightingUv)

	caps := dev.Capabilities()
	if caps.MaxTextureSamplers > 0 && len(samplers) > caps.MaxTextureSamplers {
		debug.WarnOnce("Shader %s declares %d samplers, the device supports %d", key, len(samplers), caps.MaxTextureSamplers)
	}

	return &shader.Definition{
		Name:           fmt.Sprintf("standard-%s-%s", shader.Classify(opts.Pass), key),
		Pass:           opts.Pass,
		Hash:           key.Hash,
		VertexSource:   ls.vshader,
		FragmentSource: ls.fshader,
		Attributes:     ls.attributes,
		Samplers:       samplers,
	}
}

func (a *assembler) parallaxBlock(mapping *TextureMapping) frontend {
	if !a.opts.Maps[FeatureHeight].Map {
		return frontend{}
	}
	return decl("vec2 dUvOffset;").then(
		code(a.addMap(FeatureHeight, "parallaxPS", mapping, "")),
		calls("getParallax();"),
	)
}

func (a *assembler) opacityBlock(mapping *TextureMapping) frontend {
	lit := &a.opts.Lit
	if lit.BlendType == BlendNone && !lit.AlphaTest && !lit.AlphaToCoverage {
		return decl("float dAlpha = 1.0;")
	}
	fe := decl("float dAlpha;").then(
		code(a.addMap(FeatureOpacity, "opacityPS", mapping, "")),
		calls("getOpacity();"),
		args("litArgs.opacity = dAlpha;"),
	)
	if lit.AlphaTest {
		fe = fe.then(code(a.chunks.Chunk("alphaTestPS")), calls("alphaTest(dAlpha);"))
	}
	return fe
}

// normalBlock also returns the UV expression the lit backend derives a tangent basis
// from when the mesh has no tangents.
func (a *assembler) normalBlock(ls *litShader, mapping *TextureMapping) (frontend, string) {
	if !ls.needsNormal {
		return frontend{}, ""
	}
	o := a.opts
	var fe frontend
	lightingUv := ""
	if o.Maps[FeatureNormal].Map || o.Maps[FeatureClearCoatNormal].Map {
		if o.PackedNormal {
			fe = code(a.chunks.Chunk("normalXYPS"))
		} else {
			fe = code(a.chunks.Chunk("normalXYZPS"))
		}
		if !o.Lit.HasTangents {
			src := FeatureNormal
			if !o.Maps[FeatureNormal].Map {
				src = FeatureClearCoatNormal
			}
			lightingUv = UvSourceExpression(src, o)
		}
	}
	fe = fe.then(
		decl("vec3 dNormalW;"),
		code(a.addMap(FeatureNormalDetail, "normalDetailMapPS", mapping, "")),
		code(a.addMap(FeatureNormal, "normalMapPS", mapping, "")),
		calls("getNormal();"),
		args("litArgs.worldNormal = dNormalW;"),
	)
	return fe, lightingUv
}

func (a *assembler) sceneColorBlock() frontend {
	if !a.opts.Lit.UseDynamicRefraction {
		return frontend{}
	}
	return decl(
		"uniform sampler2D uSceneColorMap;",
		"uniform vec4 uScreenSize;",
		"uniform mat4 matrix_viewProjection;",
	)
}

func (a *assembler) albedoBlock(mapping *TextureMapping) frontend {
	o := a.opts
	fe := decl("vec3 dAlbedo;")
	if o.Maps[FeatureDiffuseDetail].Map || o.Maps[FeatureAoDetail].Map {
		fe = fe.then(code(a.chunks.Chunk("detailModesPS")))
	}
	return fe.then(
		code(a.addMap(FeatureDiffuseDetail, "diffuseDetailMapPS", mapping, o.Maps[FeatureDiffuseDetail].Encoding)),
		code(a.addMap(FeatureDiffuse, "diffusePS", mapping, o.Maps[FeatureDiffuse].Encoding)),
		calls("getAlbedo();"),
		args("litArgs.albedo = dAlbedo;"),
	)
}

func (a *assembler) refractionBlock(mapping *TextureMapping) frontend {
	if !a.opts.Lit.UseRefraction {
		return frontend{}
	}
	return decl("float dTransmission;", "float dThickness;").then(
		code(a.addMap(FeatureRefraction, "transmissionPS", mapping, "")),
		code(a.addMap(FeatureThickness, "thicknessPS", mapping, "")),
		calls("getRefraction();", "getThickness();"),
		args("litArgs.transmission = dTransmission;", "litArgs.thickness = dThickness;"),
	)
}

func (a *assembler) iridescenceBlock(mapping *TextureMapping) frontend {
	if !a.opts.Lit.UseIridescence {
		return frontend{}
	}
	return decl("float dIridescence;", "float dIridescenceThickness;").then(
		code(a.addMap(FeatureIridescence, "iridescencePS", mapping, "")),
		code(a.addMap(FeatureIridescenceThickness, "iridescenceThicknessPS", mapping, "")),
		calls("getIridescence();", "getIridescenceThickness();"),
		args("litArgs.iridescence = dIridescence;", "litArgs.iridescenceThickness = dIridescenceThickness;"),
	)
}

func (a *assembler) specularBlock(ls *litShader, mapping *TextureMapping) frontend {
	o := a.opts
	lit := &o.Lit
	if !(ls.lighting && lit.UseSpecular) && !ls.reflections {
		return decl("vec3 dSpecularity = vec3(0.0);", "float dGlossiness = 0.0;")
	}

	fe := decl("vec3 dSpecularity;", "float dGlossiness;")
	if lit.UseSheen {
		fe = fe.then(
			decl("vec3 sSpecularity;", "float sGlossiness;"),
			code(a.addMap(FeatureSheen, "sheenPS", mapping, o.Maps[FeatureSheen].Encoding)),
			code(a.addMap(FeatureSheenGloss, "sheenGlossPS", mapping, "")),
			calls("getSheen();", "getSheenGlossiness();"),
			args("litArgs.sheenSpecularity = sSpecularity;", "litArgs.sheenGloss = sGlossiness;"),
		)
	}
	if lit.UseMetalness {
		fe = fe.then(
			decl("float dMetalness;", "float dIor;"),
			code(a.addMap(FeatureMetalness, "metalnessPS", mapping, "")),
			code(a.addMap(FeatureIor, "iorPS", mapping, "")),
			calls("getMetalness();", "getIor();"),
			args("litArgs.metalness = dMetalness;", "litArgs.ior = dIor;"),
		)
	}
	if lit.UseSpecularityFactor {
		fe = fe.then(
			decl("float dSpecularityFactor;"),
			code(a.addMap(FeatureSpecularityFactor, "specularityFactorPS", mapping, "")),
			calls("getSpecularityFactor();"),
			args("litArgs.specularityFactor = dSpecularityFactor;"),
		)
	}
	if o.UseSpecularColor {
		fe = fe.then(code(a.addMap(FeatureSpecular, "specularPS", mapping, o.Maps[FeatureSpecular].Encoding)))
	} else {
		fe = fe.then(code("void getSpecularity() {", "    dSpecularity = vec3(1);", "}"))
	}
	return fe.then(
		code(a.addMap(FeatureGloss, "glossPS", mapping, "")),
		calls("getGlossiness();", "getSpecularity();"),
		args("litArgs.specularity = dSpecularity;", "litArgs.gloss = dGlossiness;"),
	)
}

func (a *assembler) aoBlock(mapping *TextureMapping) frontend {
	o := a.opts
	ao := o.Maps[FeatureAo]
	if !ao.Map && !ao.VertexColor {
		return frontend{}
	}
	return decl("float dAo;").then(
		code(a.addMap(FeatureAoDetail, "aoDetailMapPS", mapping, "")),
		code(a.addMap(FeatureAo, "aoPS", mapping, "")),
		calls("getAO();"),
		args("litArgs.ao = dAo;"),
	)
}

func (a *assembler) emissiveBlock(mapping *TextureMapping) frontend {
	return decl("vec3 dEmission;").then(
		code(a.addMap(FeatureEmissive, "emissivePS", mapping, a.opts.Maps[FeatureEmissive].Encoding)),
		calls("getEmission();"),
		args("litArgs.emission = dEmission;"),
	)
}

func (a *assembler) clearCoatBlock(mapping *TextureMapping) frontend {
	if !a.opts.Lit.UseClearCoat {
		return frontend{}
	}
	return decl("float ccSpecularity;", "float ccGlossiness;", "vec3 ccNormalW;").then(
		code(a.addMap(FeatureClearCoat, "clearCoatPS", mapping, "")),
		code(a.addMap(FeatureClearCoatGloss, "clearCoatGlossPS", mapping, "")),
		code(a.addMap(FeatureClearCoatNormal, "clearCoatNormalPS", mapping, "")),
		calls("getClearCoat();", "getClearCoatGlossiness();", "getClearCoatNormal();"),
		args(
			"litArgs.clearcoatSpecularity = ccSpecularity;",
			"litArgs.clearcoatGloss = ccGlossiness;",
			"litArgs.clearcoatWorldNormal = ccNormalW;",
		),
	)
}

func (a *assembler) lightmapBlock(mapping *TextureMapping) frontend {
	o := a.opts
	lm := o.Maps[FeatureLight]
	if !lm.Map && !lm.VertexColor {
		return frontend{}
	}
	template := "lightmapSinglePS"
	fe := decl("vec3 dLightmap;")
	lightmapDir := o.DirLightMap && o.Lit.UseSpecular
	if lightmapDir {
		template = "lightmapDirPS"
		fe = fe.then(decl("vec3 dLightmapDir;"), args("litArgs.lightmapDir = dLightmapDir;"))
	}
	return fe.then(
		code(a.addMap(FeatureLight, template, mapping, lm.Encoding)),
		calls("getLightMap();"),
		args("litArgs.lightmap = dLightmap;"),
	)
}

// shadowOpacityBlock is the frontend of depth, pick, shadow and user passes: opacity
// only, and only when fragments may be clipped.
func (a *assembler) shadowOpacityBlock(mapping *TextureMapping) frontend {
	lit := &a.opts.Lit
	if !lit.AlphaTest && !lit.OpacityShadowDither {
		return frontend{}
	}
	fe := decl("float dAlpha;")
	if a.opts.Maps[FeatureHeight].Map {
		fe = fe.then(decl("vec2 dUvOffset = vec2(0.0);"))
	}
	fe = fe.then(
		code(a.addMap(FeatureOpacity, "opacityPS", mapping, "")),
		calls("getOpacity();"),
		args("litArgs.opacity = dAlpha;"),
	)
	if lit.AlphaTest {
		fe = fe.then(code(a.chunks.Chunk("alphaTestPS")), calls("alphaTest(dAlpha);"))
	}
	if lit.OpacityShadowDither {
		fe = fe.then(code(a.chunks.Chunk("opacityDitherPS")), calls("opacityDither(dAlpha, 0.0);"))
	}
	return fe
}

func usesLegacySampling(code shader.Section) bool {
	return code.Contains("texture2DSRGB") || code.Contains("texture2DRGBM") || code.Contains("texture2DRGBE")
}

// indent prefixes every non-empty line of src with four spaces.
func indent(src string) string {
	if src == "" {
		return ""
	}
	lines := strings.Split(strings.TrimSuffix(src, "\n"), "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = "    " + l
		}
	}
	return strings.Join(lines, "\n")
}
