package material

// StandardMaterialBuilderOption is a function that configures a standard material
// instance during construction.
type StandardMaterialBuilderOption func(*standardMaterial)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - StandardMaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) StandardMaterialBuilderOption {
	return func(m *standardMaterial) {
		m.name = name
	}
}

// WithDiffuse is an option builder that sets the diffuse color of the material.
//
// Parameters:
//   - color: the diffuse color as RGB float32 values
//
// Returns:
//   - StandardMaterialBuilderOption: a function that applies the diffuse option to a material
func WithDiffuse(color [3]float32) StandardMaterialBuilderOption {
	return func(m *standardMaterial) {
		m.diffuse = color
	}
}

// WithSpecular is an option builder that sets the specular color of the material.
//
// Parameters:
//   - color: the specular color as RGB float32 values
//
// Returns:
//   - StandardMaterialBuilderOption: a function that applies the specular option to a material
func WithSpecular(color [3]float32) StandardMaterialBuilderOption {
	return func(m *standardMaterial) {
		m.specular = color
	}
}

// WithEmissive is an option builder that sets the emissive color and intensity.
//
// Parameters:
//   - color: the emissive color as RGB float32 values
//   - intensity: the emissive intensity multiplier
//
// Returns:
//   - StandardMaterialBuilderOption: a function that applies the emissive option to a material
func WithEmissive(color [3]float32, intensity float32) StandardMaterialBuilderOption {
	return func(m *standardMaterial) {
		m.emissive = color
		m.emissiveIntensity = intensity
	}
}

// WithOpacity is an option builder that sets the opacity and blend type.
//
// Parameters:
//   - opacity: the constant opacity (0.0 - 1.0)
//   - blend: the blend type the material renders with
//
// Returns:
//   - StandardMaterialBuilderOption: a function that applies the opacity option to a material
func WithOpacity(opacity float32, blend BlendType) StandardMaterialBuilderOption {
	return func(m *standardMaterial) {
		m.opacity = opacity
		m.blendType = blend
	}
}

// WithAlphaTest is an option builder that clips fragments whose opacity is below ref.
// A ref of 0 disables alpha testing.
//
// Parameters:
//   - ref: the alpha reference value
//
// Returns:
//   - StandardMaterialBuilderOption: a function that applies the alpha test option to a material
func WithAlphaTest(ref float32) StandardMaterialBuilderOption {
	return func(m *standardMaterial) {
		m.alphaTest = ref
	}
}

// WithOpacityShadowDither is an option builder that dithers shadow casting by opacity.
//
// Returns:
//   - StandardMaterialBuilderOption: a function that enables opacity dithering
func WithOpacityShadowDither() StandardMaterialBuilderOption {
	return func(m *standardMaterial) {
		m.opacityShadowDither = true
	}
}

// WithMetalness is an option builder that switches the material to the metalness
// workflow.
//
// Parameters:
//   - metalness: the metalness factor (0.0 = dielectric, 1.0 = metal)
//
// Returns:
//   - StandardMaterialBuilderOption: a function that applies the metalness option to a material
func WithMetalness(metalness float32) StandardMaterialBuilderOption {
	return func(m *standardMaterial) {
		m.useMetalness = true
		m.metalness = metalness
	}
}

// WithSpecularityFactor is an option builder that sets the specularity factor of the
// metalness workflow.
//
// Parameters:
//   - factor: the specularity factor
//
// Returns:
//   - StandardMaterialBuilderOption: a function that applies the factor to a material
func WithSpecularityFactor(factor float32) StandardMaterialBuilderOption {
	return func(m *standardMaterial) {
		m.specularityFactor = factor
	}
}

// WithGloss is an option builder that sets the glossiness of the material.
//
// Parameters:
//   - gloss: the glossiness (0.0 = rough, 1.0 = smooth)
//   - invert: treat the value and gloss map as roughness
//
// Returns:
//   - StandardMaterialBuilderOption: a function that applies the gloss option to a material
func WithGloss(gloss float32, invert bool) StandardMaterialBuilderOption {
	return func(m *standardMaterial) {
		m.gloss = gloss
		m.glossInvert = invert
	}
}

// WithBumpiness is an option builder that scales the normal map strength.
//
// Parameters:
//   - bumpiness: the normal map strength
//
// Returns:
//   - StandardMaterialBuilderOption: a function that applies the bumpiness to a material
func WithBumpiness(bumpiness float32) StandardMaterialBuilderOption {
	return func(m *standardMaterial) {
		m.bumpiness = bumpiness
	}
}

// WithPackedNormal is an option builder that marks normal maps as two channel packed.
//
// Returns:
//   - StandardMaterialBuilderOption: a function that enables packed normals
func WithPackedNormal() StandardMaterialBuilderOption {
	return func(m *standardMaterial) {
		m.packedNormal = true
	}
}

// WithHeightMapFactor is an option builder that sets the parallax strength.
//
// Parameters:
//   - factor: the height map factor
//
// Returns:
//   - StandardMaterialBuilderOption: a function that applies the factor to a material
func WithHeightMapFactor(factor float32) StandardMaterialBuilderOption {
	return func(m *standardMaterial) {
		m.heightMapFactor = factor
	}
}

// WithClearCoat is an option builder that enables a clear coat layer.
//
// Parameters:
//   - strength: the clear coat strength, 0 disables the layer
//   - gloss: the clear coat glossiness
//
// Returns:
//   - StandardMaterialBuilderOption: a function that applies the clear coat to a material
func WithClearCoat(strength, gloss float32) StandardMaterialBuilderOption {
	return func(m *standardMaterial) {
		m.clearCoat = strength
		m.clearCoatGloss = gloss
	}
}

// WithSheen is an option builder that enables the sheen lobe.
//
// Parameters:
//   - color: the sheen color
//   - gloss: the sheen glossiness
//
// Returns:
//   - StandardMaterialBuilderOption: a function that applies the sheen to a material
func WithSheen(color [3]float32, gloss float32) StandardMaterialBuilderOption {
	return func(m *standardMaterial) {
		m.useSheen = true
		m.sheen = color
		m.sheenGloss = gloss
	}
}

// WithRefraction is an option builder that enables transmission.
//
// Parameters:
//   - refraction: the transmission factor, 0 disables refraction
//   - index: the index of refraction ratio
//   - thickness: the volume thickness
//
// Returns:
//   - StandardMaterialBuilderOption: a function that applies refraction to a material
func WithRefraction(refraction, index, thickness float32) StandardMaterialBuilderOption {
	return func(m *standardMaterial) {
		m.refraction = refraction
		m.refractionIndex = index
		m.thickness = thickness
	}
}

// WithIridescence is an option builder that enables thin film iridescence.
//
// Parameters:
//   - iridescence: the iridescence strength, 0 disables the effect
//
// Returns:
//   - StandardMaterialBuilderOption: a function that applies iridescence to a material
func WithIridescence(iridescence float32) StandardMaterialBuilderOption {
	return func(m *standardMaterial) {
		m.iridescence = iridescence
	}
}

// WithShadingModel is an option builder that selects the specular model.
//
// Parameters:
//   - model: the shading model
//
// Returns:
//   - StandardMaterialBuilderOption: a function that applies the shading model to a material
func WithShadingModel(model ShadingModel) StandardMaterialBuilderOption {
	return func(m *standardMaterial) {
		m.shadingModel = model
	}
}

// WithoutSpecular is an option builder that disables specular lighting.
//
// Returns:
//   - StandardMaterialBuilderOption: a function that disables specular on a material
func WithoutSpecular() StandardMaterialBuilderOption {
	return func(m *standardMaterial) {
		m.useSpecular = false
	}
}

// WithDirLightMap is an option builder that enables directional lightmaps.
//
// Returns:
//   - StandardMaterialBuilderOption: a function that enables directional lightmaps
func WithDirLightMap() StandardMaterialBuilderOption {
	return func(m *standardMaterial) {
		m.dirLightMap = true
	}
}

// WithForceUv1 is an option builder that always exports the second UV set.
//
// Returns:
//   - StandardMaterialBuilderOption: a function that forces the second UV set
func WithForceUv1() StandardMaterialBuilderOption {
	return func(m *standardMaterial) {
		m.forceUv1 = true
	}
}

// WithTexture is an option builder that binds a texture to a feature.
//
// Parameters:
//   - f: the feature
//   - slot: the texture slot
//
// Returns:
//   - StandardMaterialBuilderOption: a function that binds the texture
func WithTexture(f Feature, slot TextureSlot) StandardMaterialBuilderOption {
	return func(m *standardMaterial) {
		m.SetTexture(f, slot)
	}
}

// WithVertexColor is an option builder that multiplies a feature by vertex color.
//
// Parameters:
//   - f: the feature
//   - channel: the vertex color channel mask
//
// Returns:
//   - StandardMaterialBuilderOption: a function that enables vertex coloring
func WithVertexColor(f Feature, channel string) StandardMaterialBuilderOption {
	return func(m *standardMaterial) {
		m.SetVertexColor(f, channel)
	}
}

// WithChunk is an option builder that overrides a built-in shader chunk.
//
// Parameters:
//   - name: the chunk name
//   - src: the chunk source
//
// Returns:
//   - StandardMaterialBuilderOption: a function that applies the override
func WithChunk(name, src string) StandardMaterialBuilderOption {
	return func(m *standardMaterial) {
		m.SetChunk(name, src)
	}
}
