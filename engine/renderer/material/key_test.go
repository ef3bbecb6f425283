package material

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-variant/engine/device"
	"github.com/Carmen-Shannon/oxy-variant/engine/light"
	"github.com/Carmen-Shannon/oxy-variant/engine/renderer/shader"
)

func baseOptions() RenderOptions {
	var o RenderOptions
	o.Pass = shader.PassForward
	o.Maps[FeatureDiffuse] = MapOptions{Map: true, Channel: "rgb", Identifier: "albedo", Encoding: shader.EncodingSRGB}
	o.Maps[FeatureNormal] = MapOptions{Map: true, Identifier: "normal"}
	o.Maps[FeatureGloss] = MapOptions{Tint: TintFloat}
	o.Lit = LitOptions{
		ShadingModel: ShadingBlinn,
		UseSpecular:  true,
		Gamma:        true,
		Lights: []light.Light{
			light.NewLight(light.LightTypeDirectional, light.WithCastsShadows(true)),
		},
	}
	return o
}

func TestGenerateKeyStable(t *testing.T) {
	a, b := baseOptions(), baseOptions()
	ka, kb := GenerateKey(&a), GenerateKey(&b)
	if !ka.Equal(kb) {
		t.Fatalf("equal options produced different keys:\n%s\n%s", ka.Canonical, kb.Canonical)
	}
	if ka.Hash != RollingHash(ka.Canonical) {
		t.Errorf("Hash = %08x, want rolling hash of canonical string", ka.Hash)
	}
	if ka.Canonical[:len("standard")] != "standard" {
		t.Errorf("canonical string %q lacks prefix", ka.Canonical)
	}
}

func TestGenerateKeySensitivity(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(o *RenderOptions)
	}{
		{"diffuse map flag", func(o *RenderOptions) { o.Maps[FeatureDiffuse].Map = false }},
		{"ao map flag", func(o *RenderOptions) { o.Maps[FeatureAo].Map = true }},
		{"vertex color flag", func(o *RenderOptions) { o.Maps[FeatureEmissive].VertexColor = true }},
		{"gloss invert", func(o *RenderOptions) { o.Maps[FeatureGloss].Invert = true }},
		{"diffuse channel", func(o *RenderOptions) { o.Maps[FeatureDiffuse].Channel = "rrr" }},
		{"diffuse uv", func(o *RenderOptions) { o.Maps[FeatureDiffuse].Uv = 1 }},
		{"diffuse transform", func(o *RenderOptions) { o.Maps[FeatureDiffuse].Transform = 1 }},
		{"diffuse encoding", func(o *RenderOptions) { o.Maps[FeatureDiffuse].Encoding = shader.EncodingRGBM }},
		{"gloss tint", func(o *RenderOptions) { o.Maps[FeatureGloss].Tint = TintNone }},
		{"packed normal", func(o *RenderOptions) { o.PackedNormal = true }},
		{"pass", func(o *RenderOptions) { o.Pass = shader.PassDepth }},
		{"shading model", func(o *RenderOptions) { o.Lit.ShadingModel = ShadingPhong }},
		{"alpha test", func(o *RenderOptions) { o.Lit.AlphaTest = true }},
		{"gamma", func(o *RenderOptions) { o.Lit.Gamma = false }},
		{"reflection source", func(o *RenderOptions) { o.Lit.ReflectionSource = "envAtlas" }},
		{"chunk override", func(o *RenderOptions) { o.Chunks = map[string]string{"diffusePS": "void getAlbedo() {}"} }},
		{"shared sampler", func(o *RenderOptions) { o.Maps[FeatureNormal].Identifier = "albedo" }},
		{"light shadow", func(o *RenderOptions) { o.Lit.Lights[0].SetCastsShadows(false) }},
		{"extra light", func(o *RenderOptions) {
			o.Lit.Lights = append(o.Lit.Lights, light.NewLight(light.LightTypeOmni))
		}},
	}
	base := baseOptions()
	want := GenerateKey(&base)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := baseOptions()
			tc.mutate(&o)
			if got := GenerateKey(&o); got.Equal(want) {
				t.Fatalf("key unchanged: %s", got.Canonical)
			}
		})
	}
}

func TestGenerateKeyIgnoresTextureNames(t *testing.T) {
	a, b := baseOptions(), baseOptions()
	b.Maps[FeatureDiffuse].Identifier = "bricks"
	b.Maps[FeatureNormal].Identifier = "bricks_n"
	if ka, kb := GenerateKey(&a), GenerateKey(&b); !ka.Equal(kb) {
		t.Fatalf("texture names changed the key:\n%s\n%s", ka.Canonical, kb.Canonical)
	}
}

func TestGenerateKeyClusteredLights(t *testing.T) {
	o := baseOptions()
	o.Lit.ClusteredLighting = true
	base := GenerateKey(&o)

	o.Lit.Lights = append(o.Lit.Lights, light.NewLight(light.LightTypeOmni), light.NewLight(light.LightTypeSpot))
	if got := GenerateKey(&o); !got.Equal(base) {
		t.Errorf("clustered local lights changed the key")
	}

	o.Lit.Lights = append(o.Lit.Lights, light.NewLight(light.LightTypeDirectional))
	if got := GenerateKey(&o); got.Equal(base) {
		t.Errorf("clustered directional light did not change the key")
	}
}

func TestGenerateKeyChunkOverrideBoundaries(t *testing.T) {
	a, b := baseOptions(), baseOptions()
	a.Chunks = map[string]string{"a": "bc", "d": ""}
	b.Chunks = map[string]string{"a": "b", "cd": ""}
	if GenerateKey(&a).Equal(GenerateKey(&b)) {
		t.Fatal("distinct chunk overrides produced equal keys")
	}
}

func TestRollingHashCollision(t *testing.T) {
	if RollingHash("Aa") != RollingHash("BB") {
		t.Fatalf("RollingHash(Aa) = %d, RollingHash(BB) = %d", RollingHash("Aa"), RollingHash("BB"))
	}

	a, b := baseOptions(), baseOptions()
	a.Chunks = map[string]string{"x": "Aa"}
	b.Chunks = map[string]string{"x": "BB"}
	ka, kb := GenerateKey(&a), GenerateKey(&b)
	if ka.Hash != kb.Hash {
		t.Fatalf("expected colliding hashes, got %08x and %08x", ka.Hash, kb.Hash)
	}
	if ka.Equal(kb) {
		t.Fatal("colliding keys compared equal")
	}
}

func TestRenderPropertiesSorted(t *testing.T) {
	props := renderProperties()
	for i := 1; i < len(props); i++ {
		if props[i-1].name >= props[i].name {
			t.Fatalf("properties not sorted: %q before %q", props[i-1].name, props[i].name)
		}
	}
	for _, p := range props {
		if p.name == "chunks" || p.name == "lights" {
			t.Errorf("reserved property %q in key list", p.name)
		}
	}
}

func TestEqualKeysGenerateEqualSource(t *testing.T) {
	dir := func(opts ...light.LightBuilderOption) light.Light {
		return light.NewLight(light.LightTypeDirectional, opts...)
	}
	omni := func() light.Light { return light.NewLight(light.LightTypeOmni) }
	spot := func() light.Light { return light.NewLight(light.LightTypeSpot) }
	withLights := func(clustered bool, lights ...light.Light) RenderOptions {
		o := baseOptions()
		o.Lit.ClusteredLighting = clustered
		o.Lit.Lights = lights
		return o
	}

	cases := []struct {
		name      string
		a, b      func() RenderOptions
		wantEqual bool
	}{
		{
			name:      "clustered local light before directional",
			a:         func() RenderOptions { return withLights(true, omni(), dir()) },
			b:         func() RenderOptions { return withLights(true, dir()) },
			wantEqual: true,
		},
		{
			name:      "clustered local lights reordered",
			a:         func() RenderOptions { return withLights(true, spot(), dir(), omni()) },
			b:         func() RenderOptions { return withLights(true, dir(), spot()) },
			wantEqual: true,
		},
		{
			name:      "disabled light",
			a:         func() RenderOptions { return withLights(false, dir()) },
			b:         func() RenderOptions { return withLights(false, dir(light.WithEnabled(false))) },
			wantEqual: false,
		},
		{
			name: "light disabled after construction",
			a:    func() RenderOptions { return withLights(false, dir(), omni()) },
			b: func() RenderOptions {
				o := withLights(false, dir(), omni())
				o.Lit.Lights[1].SetEnabled(false)
				return o
			},
			wantEqual: false,
		},
		{
			name:      "disabled light ahead of an enabled one",
			a:         func() RenderOptions { return withLights(false, dir(light.WithEnabled(false)), omni()) },
			b:         func() RenderOptions { return withLights(false, omni()) },
			wantEqual: true,
		},
		{
			name:      "unclustered lights reordered",
			a:         func() RenderOptions { return withLights(false, omni(), dir()) },
			b:         func() RenderOptions { return withLights(false, dir(), omni()) },
			wantEqual: false,
		},
		{
			name:      "uniform-only light attributes",
			a:         func() RenderOptions { return withLights(false, dir(light.WithColor(1, 0, 0), light.WithIntensity(3))) },
			b:         func() RenderOptions { return withLights(false, dir()) },
			wantEqual: true,
		},
		{
			name: "texture identifiers",
			a:    baseOptions,
			b: func() RenderOptions {
				o := baseOptions()
				o.Maps[FeatureDiffuse].Identifier = "bricks"
				return o
			},
			wantEqual: true,
		},
	}

	dev := device.NewNullDevice()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a, b := tc.a(), tc.b()
			ka, kb := GenerateKey(&a), GenerateKey(&b)
			if ka.Equal(kb) != tc.wantEqual {
				t.Fatalf("keys equal = %v, want %v:\n%s\n%s", ka.Equal(kb), tc.wantEqual, ka.Canonical, kb.Canonical)
			}
			if !tc.wantEqual {
				return
			}
			da, db := CreateShaderDefinition(dev, a), CreateShaderDefinition(dev, b)
			if da.VertexSource != db.VertexSource {
				t.Errorf("equal keys, different vertex source")
			}
			if da.FragmentSource != db.FragmentSource {
				t.Errorf("equal keys, different fragment source:\n%s\n----\n%s", da.FragmentSource, db.FragmentSource)
			}
		})
	}
}
