package material

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-variant/common"
)

// Key identifies a shader variant. Hash is a 32-bit rolling hash of Canonical and
// may collide; Equal compares the canonical strings, so caches built on Key never
// hand one variant to options that need another.
type Key struct {
	Hash      uint32
	Canonical string
}

// Equal reports whether two keys describe the same variant.
func (k Key) Equal(o Key) bool {
	return k.Hash == o.Hash && k.Canonical == o.Canonical
}

func (k Key) String() string {
	return fmt.Sprintf("%08x", k.Hash)
}

// RollingHash is the 32-bit string hash h = h*31 + c over the bytes of s, wrapping
// on overflow.
//
// Parameters:
//   - s: the string to hash
//
// Returns:
//   - uint32: the hash
func RollingHash(s string) uint32 {
	var h uint32
	for i := 0; i < len(s); i++ {
		h = h*31 + uint32(s[i])
	}
	return h
}

// property is one flattened render option. value returns "" when the option is
// unset so it is left out of the key.
type property struct {
	name  string
	value func(o *RenderOptions, shared *[FeatureCount]int) string
}

// renderProperties is the flattened RenderOptions property list in lexicographic
// order. Chunks and the light list are keyed separately.
var renderProperties = sync.OnceValue(func() []property {
	props := []property{
		{"pass", func(o *RenderOptions, _ *[FeatureCount]int) string { return itoa(o.Pass) }},
		{"packedNormal", func(o *RenderOptions, _ *[FeatureCount]int) string { return btoa(o.PackedNormal) }},
		{"dirLightMap", func(o *RenderOptions, _ *[FeatureCount]int) string { return btoa(o.DirLightMap) }},
		{"useSpecularColor", func(o *RenderOptions, _ *[FeatureCount]int) string { return btoa(o.UseSpecularColor) }},
		{"forceUv1", func(o *RenderOptions, _ *[FeatureCount]int) string { return btoa(o.ForceUv1) }},
	}
	for f := Feature(0); f < FeatureCount; f++ {
		name := features[f].Name
		props = append(props,
			property{name + "Map", func(o *RenderOptions, _ *[FeatureCount]int) string { return btoa(o.Maps[f].Map) }},
			property{name + "MapUv", func(o *RenderOptions, _ *[FeatureCount]int) string { return itoa(o.Maps[f].Uv) }},
			property{name + "MapIdentifier", func(_ *RenderOptions, shared *[FeatureCount]int) string {
				if shared[f] == int(f) {
					return ""
				}
				return strconv.Itoa(shared[f])
			}},
			property{name + "MapTransform", func(o *RenderOptions, _ *[FeatureCount]int) string { return itoa(o.Maps[f].Transform) }},
			property{name + "MapChannel", func(o *RenderOptions, _ *[FeatureCount]int) string { return o.Maps[f].Channel }},
			property{name + "VertexColor", func(o *RenderOptions, _ *[FeatureCount]int) string { return btoa(o.Maps[f].VertexColor) }},
			property{name + "VertexColorChannel", func(o *RenderOptions, _ *[FeatureCount]int) string { return o.Maps[f].VertexColorChannel }},
			property{name + "Tint", func(o *RenderOptions, _ *[FeatureCount]int) string { return itoa(int(o.Maps[f].Tint)) }},
			property{name + "Mode", func(o *RenderOptions, _ *[FeatureCount]int) string { return o.Maps[f].Mode }},
			property{name + "Invert", func(o *RenderOptions, _ *[FeatureCount]int) string { return btoa(o.Maps[f].Invert) }},
			property{name + "Encoding", func(o *RenderOptions, _ *[FeatureCount]int) string { return string(o.Maps[f].Encoding) }},
		)
	}
	slices.SortFunc(props, func(a, b property) int { return strings.Compare(a.name, b.name) })
	return props
})

// litProperties lists LitOptions members in declaration order, lights excluded.
var litProperties = []struct {
	name  string
	value func(l *LitOptions) string
}{
	{"shadingModel", func(l *LitOptions) string { return strconv.Itoa(int(l.ShadingModel)) }},
	{"fresnelModel", func(l *LitOptions) string { return strconv.Itoa(int(l.FresnelModel)) }},
	{"blendType", func(l *LitOptions) string { return strconv.Itoa(int(l.BlendType)) }},
	{"alphaTest", func(l *LitOptions) string { return strconv.FormatBool(l.AlphaTest) }},
	{"alphaToCoverage", func(l *LitOptions) string { return strconv.FormatBool(l.AlphaToCoverage) }},
	{"opacityShadowDither", func(l *LitOptions) string { return strconv.FormatBool(l.OpacityShadowDither) }},
	{"clusteredLightingEnabled", func(l *LitOptions) string { return strconv.FormatBool(l.ClusteredLighting) }},
	{"useSpecular", func(l *LitOptions) string { return strconv.FormatBool(l.UseSpecular) }},
	{"useMetalness", func(l *LitOptions) string { return strconv.FormatBool(l.UseMetalness) }},
	{"useSpecularityFactor", func(l *LitOptions) string { return strconv.FormatBool(l.UseSpecularityFactor) }},
	{"useSheen", func(l *LitOptions) string { return strconv.FormatBool(l.UseSheen) }},
	{"useClearCoat", func(l *LitOptions) string { return strconv.FormatBool(l.UseClearCoat) }},
	{"useClearCoatNormals", func(l *LitOptions) string { return strconv.FormatBool(l.UseClearCoatNormals) }},
	{"useIridescence", func(l *LitOptions) string { return strconv.FormatBool(l.UseIridescence) }},
	{"useRefraction", func(l *LitOptions) string { return strconv.FormatBool(l.UseRefraction) }},
	{"useDynamicRefraction", func(l *LitOptions) string { return strconv.FormatBool(l.UseDynamicRefraction) }},
	{"useHeights", func(l *LitOptions) string { return strconv.FormatBool(l.UseHeights) }},
	{"hasTangents", func(l *LitOptions) string { return strconv.FormatBool(l.HasTangents) }},
	{"nineSlicedMode", func(l *LitOptions) string { return strconv.Itoa(int(l.NineSlicedMode)) }},
	{"gamma", func(l *LitOptions) string { return strconv.FormatBool(l.Gamma) }},
	{"toneMap", func(l *LitOptions) string { return strconv.Itoa(int(l.ToneMap)) }},
	{"ambientSH", func(l *LitOptions) string { return strconv.FormatBool(l.AmbientSH) }},
	{"reflectionSource", func(l *LitOptions) string { return l.ReflectionSource }},
	{"dirLightMapEnabled", func(l *LitOptions) string { return strconv.FormatBool(l.DirLightMap) }},
	{"outputEncoding", func(l *LitOptions) string { return string(l.OutputEncoding) }},
}

// GenerateKey builds the variant key of o. Options that generate identical shader
// source produce equal keys.
//
// The canonical string is "standard" followed by name+value for every set render
// option in lexicographic name order, then each chunk override in name order, then
// every lit option in declaration order and finally the key of each light that is
// baked into the shader.
//
// Parameters:
//   - o: the render options
//
// Returns:
//   - Key: the variant key
func GenerateKey(o *RenderOptions) Key {
	var sb strings.Builder
	sb.WriteString("standard")

	shared := sharedSamplers(o)
	for _, p := range renderProperties() {
		if v := p.value(o, &shared); v != "" {
			sb.WriteString(p.name)
			sb.WriteString(v)
		}
	}

	if len(o.Chunks) > 0 {
		for _, name := range common.SortedKeys(o.Chunks) {
			src := o.Chunks[name]
			sb.WriteString(name)
			sb.WriteString(strconv.Itoa(len(src)))
			sb.WriteByte(':')
			sb.WriteString(src)
		}
	}

	for _, p := range litProperties {
		sb.WriteString(p.name)
		sb.WriteString(p.value(&o.Lit))
	}
	for _, l := range o.Lit.BakedLights() {
		sb.WriteString(strconv.FormatUint(uint64(l.Key()), 10))
		sb.WriteByte(',')
	}

	canonical := sb.String()
	return Key{Hash: RollingHash(canonical), Canonical: canonical}
}

// sharedSamplers maps each feature to the first textured feature that uses the same
// texture identifier, or to itself. Only the sharing pattern reaches the key, so
// materials with different textures but equal structure share a variant.
func sharedSamplers(o *RenderOptions) [FeatureCount]int {
	var shared [FeatureCount]int
	first := make(map[string]int)
	for f := Feature(0); f < FeatureCount; f++ {
		shared[f] = int(f)
		m := &o.Maps[f]
		if !m.Map || m.Identifier == "" {
			continue
		}
		if j, ok := first[m.Identifier]; ok {
			shared[f] = j
		} else {
			first[m.Identifier] = int(f)
		}
	}
	return shared
}

func itoa(v int) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}

func btoa(v bool) string {
	if v {
		return "true"
	}
	return ""
}
