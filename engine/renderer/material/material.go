package material

import (
	"maps"

	"github.com/Carmen-Shannon/oxy-variant/common"
	"github.com/Carmen-Shannon/oxy-variant/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-variant/engine/renderer/uniform"
)

// TextureSlot binds a texture to one feature of a StandardMaterial.
type TextureSlot struct {
	// Identifier names the bound texture. Slots with equal identifiers share a sampler.
	Identifier string

	// Uv is the UV set the texture is sampled with.
	Uv int

	// Channel is the sampled channel mask. Empty selects the feature default.
	Channel string

	// Tiling, Offset and Rotation (degrees) form the UV transform of the slot.
	Tiling   [2]float32
	Offset   [2]float32
	Rotation float32

	// Encoding is the color encoding of the texture, used by color features.
	Encoding shader.Encoding

	// Mode is the detail blend mode of detail features. Empty selects "mul".
	Mode string
}

// identity reports whether the slot samples with an untransformed UV.
func (s *TextureSlot) identity() bool {
	return s.Tiling == [2]float32{1, 1} && s.Offset == [2]float32{} && s.Rotation == 0
}

// encodedFeatures are the features whose texels are color decoded.
var encodedFeatures = map[Feature]bool{
	FeatureDiffuse:       true,
	FeatureDiffuseDetail: true,
	FeatureSpecular:      true,
	FeatureSheen:         true,
	FeatureEmissive:      true,
	FeatureLight:         true,
}

// standardMaterial is the implementation of the StandardMaterial interface.
type standardMaterial struct {
	name string

	diffuse             [3]float32
	specular            [3]float32
	emissive            [3]float32
	emissiveIntensity   float32
	sheen               [3]float32
	opacity             float32
	alphaTest           float32
	metalness           float32
	gloss               float32
	glossInvert         bool
	bumpiness           float32
	heightMapFactor     float32
	clearCoat           float32
	clearCoatGloss      float32
	clearCoatBumpiness  float32
	refraction          float32
	refractionIndex     float32
	thickness           float32
	iridescence         float32
	specularityFactor   float32
	sheenGloss          float32
	useMetalness        bool
	useSpecular         bool
	useSheen            bool
	opacityShadowDither bool
	packedNormal        bool
	dirLightMap         bool
	forceUv1            bool
	blendType           BlendType
	shadingModel        ShadingModel
	textures            [FeatureCount]*TextureSlot
	vertexColorChannels [FeatureCount]string
	chunks              map[string]string
}

// StandardMaterial is the physically based surface description that standard
// shader variants are generated from. It translates surface parameters and texture
// slots into RenderOptions and pushes its constant parameters into a uniform scope.
type StandardMaterial interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// Texture retrieves the texture slot of a feature.
	//
	// Parameters:
	//   - f: the feature
	//
	// Returns:
	//   - TextureSlot: the slot
	//   - bool: false if no texture is bound to the feature
	Texture(f Feature) (TextureSlot, bool)

	// SetTexture binds a texture to a feature. Features that cannot be textured
	// ignore the call.
	//
	// Parameters:
	//   - f: the feature
	//   - slot: the texture slot
	SetTexture(f Feature, slot TextureSlot)

	// ClearTexture unbinds the texture of a feature.
	//
	// Parameters:
	//   - f: the feature
	ClearTexture(f Feature)

	// SetVertexColor multiplies a feature by a vertex color channel mask. An empty
	// mask disables vertex coloring of the feature.
	//
	// Parameters:
	//   - f: the feature
	//   - channel: the vertex color channel mask
	SetVertexColor(f Feature, channel string)

	// SetChunk overrides a built-in shader chunk for this material. An empty source
	// removes the override.
	//
	// Parameters:
	//   - name: the chunk name
	//   - src: the chunk source
	SetChunk(name, src string)

	// RenderOptions builds the shader variant options of the material for a pass.
	// Scene level lit options (lights, tone mapping, gamma, reflections, tangents,
	// sprite mode) are taken from lit, material level members are overwritten.
	//
	// Parameters:
	//   - pass: the shader pass id
	//   - lit: the scene lit options
	//
	// Returns:
	//   - RenderOptions: the variant options
	RenderOptions(pass int, lit LitOptions) RenderOptions

	// UpdateUniforms pushes the material constants and texture transforms into scope.
	//
	// Parameters:
	//   - scope: the uniform scope the material's uniform buffers read from
	UpdateUniforms(scope *uniform.Scope)
}

var _ StandardMaterial = &standardMaterial{}

// NewStandardMaterial creates a new StandardMaterial configured with the provided
// options.
//
// Parameters:
//   - options: variadic list of StandardMaterialBuilderOption functions
//
// Returns:
//   - StandardMaterial: a new StandardMaterial instance
func NewStandardMaterial(options ...StandardMaterialBuilderOption) StandardMaterial {
	m := &standardMaterial{
		diffuse:            [3]float32{1, 1, 1},
		specular:           [3]float32{0, 0, 0},
		emissiveIntensity:  1,
		sheen:              [3]float32{1, 1, 1},
		opacity:            1,
		metalness:          1,
		gloss:              0.25,
		bumpiness:          1,
		heightMapFactor:    1,
		clearCoatGloss:     1,
		clearCoatBumpiness: 1,
		refractionIndex:    1.0 / 1.5,
		specularityFactor:  1,
		useSpecular:        true,
		shadingModel:       ShadingBlinn,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *standardMaterial) Name() string {
	return m.name
}

func (m *standardMaterial) Texture(f Feature) (TextureSlot, bool) {
	if s := m.textures[f]; s != nil {
		return *s, true
	}
	return TextureSlot{}, false
}

func (m *standardMaterial) SetTexture(f Feature, slot TextureSlot) {
	if !features[f].Textured {
		return
	}
	if slot.Tiling == [2]float32{} {
		slot.Tiling = [2]float32{1, 1}
	}
	m.textures[f] = &slot
}

func (m *standardMaterial) ClearTexture(f Feature) {
	m.textures[f] = nil
}

func (m *standardMaterial) SetVertexColor(f Feature, channel string) {
	m.vertexColorChannels[f] = channel
}

func (m *standardMaterial) SetChunk(name, src string) {
	if src == "" {
		delete(m.chunks, name)
		return
	}
	if m.chunks == nil {
		m.chunks = make(map[string]string)
	}
	m.chunks[name] = src
}

func (m *standardMaterial) RenderOptions(pass int, lit LitOptions) RenderOptions {
	o := RenderOptions{
		Pass:         pass,
		PackedNormal: m.packedNormal,
		DirLightMap:  m.dirLightMap,
		ForceUv1:     m.forceUv1,
		Lit:          lit,
	}
	if len(m.chunks) > 0 {
		o.Chunks = maps.Clone(m.chunks)
	}

	// transform ids are 1-based per distinct (uv, transform) pair
	type transformKey struct {
		uv       int
		tiling   [2]float32
		offset   [2]float32
		rotation float32
	}
	transformIDs := make(map[transformKey]int)

	for f := Feature(0); f < FeatureCount; f++ {
		mo := &o.Maps[f]
		if ch := m.vertexColorChannels[f]; ch != "" {
			mo.VertexColor = true
			mo.VertexColorChannel = ch
		}
		s := m.textures[f]
		if s == nil {
			continue
		}
		mo.Map = true
		mo.Uv = s.Uv
		mo.Identifier = s.Identifier
		mo.Channel = common.Coalesce(s.Channel, features[f].DefaultChannel)
		if encodedFeatures[f] {
			mo.Encoding = common.Coalesce(s.Encoding, shader.EncodingSRGB)
		}
		if f == FeatureDiffuseDetail || f == FeatureAoDetail {
			mo.Mode = common.Coalesce(s.Mode, "mul")
		}
		if !s.identity() {
			k := transformKey{s.Uv, s.Tiling, s.Offset, s.Rotation}
			id, ok := transformIDs[k]
			if !ok {
				id = len(transformIDs) + 1
				transformIDs[k] = id
			}
			mo.Transform = id
		}
	}

	o.Maps[FeatureDiffuse].Tint = tintIf(m.diffuse != [3]float32{1, 1, 1}, TintVector)
	specularTint := m.specular != [3]float32{1, 1, 1}
	o.Maps[FeatureSpecular].Tint = tintIf(specularTint, TintVector)
	o.UseSpecularColor = specularTint || o.Maps[FeatureSpecular].Map || o.Maps[FeatureSpecular].VertexColor
	o.Maps[FeatureMetalness].Tint = tintIf(m.useMetalness && m.metalness < 1, TintFloat)
	o.Maps[FeatureGloss].Tint = TintFloat
	o.Maps[FeatureGloss].Invert = m.glossInvert
	o.Maps[FeatureIor].Tint = tintIf(m.refractionIndex != 1.0/1.5, TintFloat)
	o.Maps[FeatureRefraction].Tint = tintIf(m.refraction != 1, TintFloat)
	o.Maps[FeatureThickness].Tint = tintIf(m.thickness != 1, TintFloat)
	o.Maps[FeatureIridescence].Tint = tintIf(m.iridescence != 1, TintFloat)
	o.Maps[FeatureSpecularityFactor].Tint = tintIf(m.specularityFactor != 1, TintFloat)

	l := &o.Lit
	l.ShadingModel = m.shadingModel
	l.BlendType = m.blendType
	l.AlphaTest = m.alphaTest > 0
	l.OpacityShadowDither = m.opacityShadowDither
	l.UseSpecular = m.useSpecular
	l.UseMetalness = m.useMetalness
	l.UseSpecularityFactor = m.useMetalness && (m.specularityFactor != 1 || o.Maps[FeatureSpecularityFactor].Map)
	l.UseSheen = m.useSheen
	l.UseClearCoat = m.clearCoat > 0
	l.UseClearCoatNormals = l.UseClearCoat && o.Maps[FeatureClearCoatNormal].Map
	l.UseIridescence = m.iridescence > 0
	l.UseRefraction = m.refraction > 0 || o.Maps[FeatureRefraction].Map
	l.UseHeights = o.Maps[FeatureHeight].Map
	l.DirLightMap = l.DirLightMap || m.dirLightMap
	return o
}

func tintIf(cond bool, mode TintMode) TintMode {
	if cond {
		return mode
	}
	return TintNone
}

func (m *standardMaterial) UpdateUniforms(scope *uniform.Scope) {
	scope.SetValue("material_diffuse", m.diffuse[:])
	scope.SetValue("material_specular", m.specular[:])
	scope.SetValue("material_emissive", m.emissive[:])
	scope.SetValue("material_emissiveIntensity", m.emissiveIntensity)
	scope.SetValue("material_sheen", m.sheen[:])
	scope.SetValue("material_sheenGloss", m.sheenGloss)
	scope.SetValue("material_opacity", m.opacity)
	scope.SetValue("alpha_ref", m.alphaTest)
	scope.SetValue("material_metalness", m.metalness)
	scope.SetValue("material_gloss", m.gloss)
	scope.SetValue("material_bumpiness", m.bumpiness)
	scope.SetValue("material_heightMapFactor", m.heightMapFactor*0.025)
	scope.SetValue("material_clearCoat", m.clearCoat)
	scope.SetValue("material_clearCoatGloss", m.clearCoatGloss)
	scope.SetValue("material_clearCoatBumpiness", m.clearCoatBumpiness)
	scope.SetValue("material_refraction", m.refraction)
	scope.SetValue("material_refractionIndex", m.refractionIndex)
	scope.SetValue("material_thickness", m.thickness)
	scope.SetValue("material_iridescence", m.iridescence)
	scope.SetValue("material_specularityFactor", m.specularityFactor)

	for f := Feature(0); f < FeatureCount; f++ {
		s := m.textures[f]
		if s == nil || s.identity() {
			continue
		}
		row0, row1 := make([]float32, 3), make([]float32, 3)
		common.TextureTransformRows(row0, row1, s.Tiling, s.Offset, s.Rotation)
		name := "texture_" + features[f].Name + "MapTransform"
		scope.SetValue(name+"0", row0)
		scope.SetValue(name+"1", row1)
	}
}
