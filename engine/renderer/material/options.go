package material

import (
	"github.com/Carmen-Shannon/oxy-variant/engine/light"
	"github.com/Carmen-Shannon/oxy-variant/engine/renderer/shader"
)

// Feature identifies one texture-driven surface input of the standard material.
type Feature int

const (
	FeatureOpacity Feature = iota
	FeatureNormal
	FeatureNormalDetail
	FeatureHeight
	FeatureDiffuse
	FeatureDiffuseDetail
	FeatureRefraction
	FeatureThickness
	FeatureIridescence
	FeatureIridescenceThickness
	FeatureSheen
	FeatureSheenGloss
	FeatureMetalness
	FeatureIor
	FeatureSpecularityFactor
	FeatureSpecular
	FeatureGloss
	FeatureAo
	FeatureAoDetail
	FeatureEmissive
	FeatureClearCoat
	FeatureClearCoatGloss
	FeatureClearCoatNormal
	FeatureLight

	FeatureCount
)

// FeatureDescriptor is the static description of a feature.
type FeatureDescriptor struct {
	// Name is the option name prefix, e.g. "diffuse" for diffuseMap, diffuseMapUv, ...
	Name string

	// Template is the chunk the feature is assembled from.
	Template string

	// ChannelCount is the number of channels the feature samples. Channel masks are
	// truncated or padded to this length. 0 or less disables correction.
	ChannelCount int

	// DefaultChannel is the channel mask a material uses when none is configured.
	DefaultChannel string

	// Textured reports whether the feature can be driven by a texture map.
	Textured bool
}

var features = [FeatureCount]FeatureDescriptor{
	FeatureOpacity:              {Name: "opacity", Template: "opacityPS", ChannelCount: 1, DefaultChannel: "a", Textured: true},
	FeatureNormal:               {Name: "normal", Template: "normalMapPS", ChannelCount: -1, Textured: true},
	FeatureNormalDetail:         {Name: "normalDetail", Template: "normalDetailMapPS", ChannelCount: -1, Textured: true},
	FeatureHeight:               {Name: "height", Template: "parallaxPS", ChannelCount: 1, DefaultChannel: "g", Textured: true},
	FeatureDiffuse:              {Name: "diffuse", Template: "diffusePS", ChannelCount: 3, DefaultChannel: "rgb", Textured: true},
	FeatureDiffuseDetail:        {Name: "diffuseDetail", Template: "diffuseDetailMapPS", ChannelCount: 3, DefaultChannel: "rgb", Textured: true},
	FeatureRefraction:           {Name: "refraction", Template: "transmissionPS", ChannelCount: 1, DefaultChannel: "g", Textured: true},
	FeatureThickness:            {Name: "thickness", Template: "thicknessPS", ChannelCount: 1, DefaultChannel: "g", Textured: true},
	FeatureIridescence:          {Name: "iridescence", Template: "iridescencePS", ChannelCount: 1, DefaultChannel: "g", Textured: true},
	FeatureIridescenceThickness: {Name: "iridescenceThickness", Template: "iridescenceThicknessPS", ChannelCount: 1, DefaultChannel: "g", Textured: true},
	FeatureSheen:                {Name: "sheen", Template: "sheenPS", ChannelCount: 3, DefaultChannel: "rgb", Textured: true},
	FeatureSheenGloss:           {Name: "sheenGloss", Template: "sheenGlossPS", ChannelCount: 1, DefaultChannel: "g", Textured: true},
	FeatureMetalness:            {Name: "metalness", Template: "metalnessPS", ChannelCount: 1, DefaultChannel: "g", Textured: true},
	FeatureIor:                  {Name: "ior", Template: "iorPS"},
	FeatureSpecularityFactor:    {Name: "specularityFactor", Template: "specularityFactorPS", ChannelCount: 1, DefaultChannel: "g", Textured: true},
	FeatureSpecular:             {Name: "specular", Template: "specularPS", ChannelCount: 3, DefaultChannel: "rgb", Textured: true},
	FeatureGloss:                {Name: "gloss", Template: "glossPS", ChannelCount: 1, DefaultChannel: "g", Textured: true},
	FeatureAo:                   {Name: "ao", Template: "aoPS", ChannelCount: 1, DefaultChannel: "g", Textured: true},
	FeatureAoDetail:             {Name: "aoDetail", Template: "aoDetailMapPS", ChannelCount: 1, DefaultChannel: "g", Textured: true},
	FeatureEmissive:             {Name: "emissive", Template: "emissivePS", ChannelCount: 3, DefaultChannel: "rgb", Textured: true},
	FeatureClearCoat:            {Name: "clearCoat", Template: "clearCoatPS", ChannelCount: 1, DefaultChannel: "g", Textured: true},
	FeatureClearCoatGloss:       {Name: "clearCoatGloss", Template: "clearCoatGlossPS", ChannelCount: 1, DefaultChannel: "g", Textured: true},
	FeatureClearCoatNormal:      {Name: "clearCoatNormal", Template: "clearCoatNormalPS", ChannelCount: -1, Textured: true},
	FeatureLight:                {Name: "light", Template: "lightmapSinglePS", ChannelCount: 3, DefaultChannel: "rgb", Textured: true},
}

// Descriptor returns the static description of f.
func (f Feature) Descriptor() FeatureDescriptor {
	return features[f]
}

func (f Feature) String() string {
	if f >= 0 && f < FeatureCount {
		return features[f].Name
	}
	return "unknown"
}

// MapPropertyName returns the name of the feature's map option, e.g. "diffuseMap".
func (f Feature) MapPropertyName() string {
	return features[f].Name + "Map"
}

// TintMode selects which constant factors multiply a feature. It is a bit mask.
type TintMode int

const (
	TintNone   TintMode = 0
	TintFloat  TintMode = 1
	TintVector TintMode = 2
)

// MapOptions is the per-feature part of RenderOptions.
type MapOptions struct {
	// Map enables sampling the feature's texture.
	Map bool

	// Uv is the UV set the map is sampled with (0 or 1).
	Uv int

	// Identifier names the texture bound to the map. Features with equal identifiers
	// share one sampler.
	Identifier string

	// Transform is the map transform id. 0 means untransformed.
	Transform int

	// Channel is the channel mask sampled from the map, e.g. "rgb".
	Channel string

	// VertexColor multiplies the feature by a vertex color channel.
	VertexColor bool

	// VertexColorChannel is the vertex color channel mask.
	VertexColorChannel string

	// Tint selects the constant factors applied to the feature.
	Tint TintMode

	// Mode is the detail blend mode of detail features, e.g. "mul".
	Mode string

	// Invert inverts the feature value (gloss features).
	Invert bool

	// Encoding is the color encoding of the map.
	Encoding shader.Encoding
}

// ShadingModel selects the specular model.
type ShadingModel int

const (
	ShadingPhong ShadingModel = 0
	ShadingBlinn ShadingModel = 1
)

// FresnelModel selects the fresnel approximation.
type FresnelModel int

const (
	FresnelNone    FresnelModel = 0
	FresnelSchlick FresnelModel = 2
)

// BlendType is the blend state the material renders with.
type BlendType int

const (
	BlendNone BlendType = iota
	BlendNormal
	BlendAdditive
	BlendPremultiplied
	BlendMultiplicative
)

// NineSlicedMode is the sprite render mode.
type NineSlicedMode int

const (
	NineSlicedNone NineSlicedMode = iota
	NineSlicedSliced
	NineSlicedTiled
)

// ToneMap selects the tone mapping operator of forward passes.
type ToneMap int

const (
	ToneMapLinear ToneMap = iota
	ToneMapReinhard
	ToneMapACES
)

// LitOptions selects the lighting backend a shader variant is generated for.
// Members contribute to the option key in declaration order.
type LitOptions struct {
	ShadingModel         ShadingModel
	FresnelModel         FresnelModel
	BlendType            BlendType
	AlphaTest            bool
	AlphaToCoverage      bool
	OpacityShadowDither  bool
	ClusteredLighting    bool
	UseSpecular          bool
	UseMetalness         bool
	UseSpecularityFactor bool
	UseSheen             bool
	UseClearCoat         bool
	UseClearCoatNormals  bool
	UseIridescence       bool
	UseRefraction        bool
	UseDynamicRefraction bool
	UseHeights           bool
	HasTangents          bool
	NineSlicedMode       NineSlicedMode
	Gamma                bool
	ToneMap              ToneMap
	AmbientSH            bool
	ReflectionSource     string
	DirLightMap          bool
	OutputEncoding       shader.Encoding

	// Lights is the ordered light list. With clustered lighting only directional
	// lights are baked into the shader.
	Lights []light.Light
}

// BakedLights returns the enabled lights that get their own uniforms and loop body in
// the forward shader, in list order. Clustered lighting keeps directional lights only.
// Light uniforms are named by the index into this list, not into Lights.
//
// Returns:
//   - []light.Light: the baked lights
func (l *LitOptions) BakedLights() []light.Light {
	var baked []light.Light
	for _, lt := range l.Lights {
		if !lt.Enabled() {
			continue
		}
		if l.ClusteredLighting && lt.Type() != light.LightTypeDirectional {
			continue
		}
		baked = append(baked, lt)
	}
	return baked
}

// RenderOptions is the complete description of one standard material shader
// variant. It is a value: generation never modifies the caller's copy.
type RenderOptions struct {
	// Pass is the shader pass id.
	Pass int

	// Maps holds the per-feature options, indexed by Feature.
	Maps [FeatureCount]MapOptions

	// PackedNormal marks normal maps stored in two channels.
	PackedNormal bool

	// DirLightMap enables directional lightmaps.
	DirLightMap bool

	// UseSpecularColor samples the specular color feature.
	UseSpecularColor bool

	// ForceUv1 always exports the second UV set.
	ForceUv1 bool

	// Chunks overrides built-in chunks by name.
	Chunks map[string]string

	// Lit selects the lighting backend.
	Lit LitOptions
}

// Map returns the options of feature f.
func (o *RenderOptions) Map(f Feature) *MapOptions {
	return &o.Maps[f]
}
