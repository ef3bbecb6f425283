package material

import (
	"strconv"

	"github.com/Carmen-Shannon/oxy-variant/engine/debug"
	"github.com/Carmen-Shannon/oxy-variant/engine/renderer/shader"
)

// maxUvSets is the number of UV sets a vertex stage can export.
const maxUvSets = 2

// TextureMapping records the sampler uniform bound to each texture identifier during one
// shader assembly. Features with the same identifier share a sampler. Iteration order
// is insertion order, so generated declarations are deterministic.
type TextureMapping struct {
	byIdentifier map[string]string
	samplers     []string
}

// NewTextureMapping creates an empty TextureMapping.
func NewTextureMapping() *TextureMapping {
	return &TextureMapping{byIdentifier: make(map[string]string)}
}

// SamplerFor returns the sampler bound to identifier, binding fallback first if the
// identifier is new. An empty identifier is keyed by the fallback name itself.
//
// Parameters:
//   - identifier: the texture identifier
//   - fallback: the sampler name to bind when identifier is unbound
//
// Returns:
//   - string: the sampler name
func (m *TextureMapping) SamplerFor(identifier, fallback string) string {
	if identifier == "" {
		identifier = fallback
	}
	if name, ok := m.byIdentifier[identifier]; ok {
		return name
	}
	m.byIdentifier[identifier] = fallback
	m.samplers = append(m.samplers, fallback)
	return fallback
}

// Len returns the number of bound identifiers.
func (m *TextureMapping) Len() int {
	return len(m.samplers)
}

// Samplers returns the bound sampler names in insertion order.
func (m *TextureMapping) Samplers() []string {
	return append([]string(nil), m.samplers...)
}

// legacySampleFunctions maps a texture encoding to the deprecated sampling macro that
// decodes it.
var legacySampleFunctions = map[shader.Encoding]string{
	shader.EncodingLinear: "texture2D",
	shader.EncodingSRGB:   "texture2DSRGB",
	shader.EncodingRGBM:   "texture2DRGBM",
	shader.EncodingRGBE:   "texture2DRGBE",
}

// assembler turns feature templates into resolved shader fragments for one set of
// render options.
type assembler struct {
	opts   *RenderOptions
	chunks *shader.ChunkLibrary
}

func newAssembler(opts *RenderOptions) *assembler {
	return &assembler{opts: opts, chunks: shader.NewChunkLibrary(opts.Chunks)}
}

// addMap resolves the template of feature f against the feature's map options. A nil
// mapping leaves the sampler slot unbound. An empty encoding leaves the decode slot
// unbound.
func (a *assembler) addMap(f Feature, template string, mapping *TextureMapping, encoding shader.Encoding) string {
	m := &a.opts.Maps[f]
	src := a.chunks.Chunk(template)
	slots := shader.Slots{}

	if m.Map {
		slots[shader.SlotUV] = UvSourceExpression(f, a.opts)
		slots[shader.SlotChannel] = m.Channel

		if mapping != nil && shader.Uses(src, shader.SlotSampler) {
			slots[shader.SlotSampler] = mapping.SamplerFor(m.Identifier, "texture_"+f.MapPropertyName())
		}

		if encoding != "" {
			if m.Channel == "a" || m.Channel == "aaa" {
				slots[shader.SlotDecode] = "passThrough"
			} else {
				decode := encoding
				if !a.opts.Lit.Gamma && encoding == shader.EncodingSRGB {
					decode = shader.EncodingLinear
				}
				slots[shader.SlotDecode] = shader.DecodeFunctionName(decode)
			}

			if shader.Uses(src, shader.SlotLegacySample) {
				debug.Deprecated("Shader chunk macro $texture2DSAMPLE(XXX) is deprecated. Please use $DECODE(texture2D(XXX)) instead.")
				fn, ok := legacySampleFunctions[encoding]
				if !ok {
					fn = "texture2D"
				}
				slots[shader.SlotLegacySample] = fn
			}
		}
	}

	if m.VertexColor {
		slots[shader.SlotVertexColor] = m.VertexColorChannel
	}
	if m.Mode != "" {
		slots[shader.SlotDetailMode] = m.Mode
	}

	var b shader.ChunkBuilder
	b.Append(shader.Resolve(src, slots))
	b.Prepend(
		mapDefine("MAPFLOAT", m.Tint&TintFloat != 0),
		mapDefine("MAPCOLOR", m.Tint&TintVector != 0),
		mapDefine("MAPVERTEX", m.VertexColor),
		mapDefine("MAPTEXTURE", m.Map),
		mapDefine("MAPINVERT", m.Invert),
	)
	return b.Code()
}

func mapDefine(name string, enabled bool) string {
	if enabled {
		return "#define " + name
	}
	return "#undef " + name
}

// UvSourceExpression returns the shader expression feature f samples its map with.
//
// Forward passes of nine-sliced sprites always sample the sprite UV. Otherwise an
// untransformed map uses the shared varying of its UV set and a transformed map uses
// the varying of its (UV set, transform) pair. Every feature but the height map is
// offset by the parallax result when a height map is active.
//
// Parameters:
//   - f: the feature
//   - opts: the render options
//
// Returns:
//   - string: the UV expression
func UvSourceExpression(f Feature, opts *RenderOptions) string {
	m := &opts.Maps[f]
	if shader.IsForwardPass(opts.Pass) && opts.Lit.NineSlicedMode != NineSlicedNone {
		return "nineSlicedUv"
	}
	var expr string
	if m.Transform == 0 {
		expr = "vUv" + strconv.Itoa(m.Uv)
	} else {
		expr = "vUV" + strconv.Itoa(m.Uv) + "_" + strconv.Itoa(m.Transform)
	}
	if opts.Maps[FeatureHeight].Map && f != FeatureHeight {
		expr += " + dUvOffset"
	}
	return expr
}

// correctChannel truncates or pads a channel mask to n channels. Padding repeats the
// last channel. Masks of features with n <= 0 are returned unchanged.
func correctChannel(channel string, n int) string {
	if n <= 0 || channel == "" || len(channel) == n {
		return channel
	}
	if len(channel) > n {
		return channel[:n]
	}
	last := channel[len(channel)-1]
	out := []byte(channel)
	for len(out) < n {
		out = append(out, last)
	}
	return string(out)
}

// mapTransform is one transformed map the vertex stage must export a varying for.
type mapTransform struct {
	name string
	id   int
	uv   int
}

// uvUsage is the vertex stage UV requirement of a set of render options.
type uvUsage struct {
	useUv           [maxUvSets]bool
	useUnmodifiedUv [maxUvSets]bool
	transforms      []mapTransform
}

// analyzeUvUsage corrects the map options of o in place and collects the UV sets and
// map transforms the vertex stage has to provide.
func analyzeUvUsage(o *RenderOptions) uvUsage {
	var u uvUsage
	for f := Feature(0); f < FeatureCount; f++ {
		d := &features[f]
		if !d.Textured {
			continue
		}
		m := &o.Maps[f]
		if m.VertexColor {
			m.VertexColorChannel = correctChannel(m.VertexColorChannel, d.ChannelCount)
		}
		if !m.Map {
			continue
		}
		m.Uv = min(max(m.Uv, 0), maxUvSets-1)
		m.Channel = correctChannel(m.Channel, d.ChannelCount)
		u.useUv[m.Uv] = true
		u.useUnmodifiedUv[m.Uv] = u.useUnmodifiedUv[m.Uv] || m.Transform == 0
		if m.Transform != 0 {
			u.transforms = append(u.transforms, mapTransform{name: d.Name, id: m.Transform, uv: m.Uv})
		}
	}
	if o.ForceUv1 {
		// a map already sampling uv1 through a transform keeps its choice
		if !u.useUv[1] {
			u.useUnmodifiedUv[1] = true
		}
		u.useUv[1] = true
	}
	return u
}
