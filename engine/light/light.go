package light

import (
	"strconv"

	"github.com/Carmen-Shannon/oxy-variant/common"
)

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeDirectional represents a light with no position, only direction.
	// Used for large distant sources like the sun or moon. Affects all fragments
	// uniformly with no distance attenuation.
	LightTypeDirectional LightType = iota

	// LightTypeOmni represents a light that emits in all directions from a position.
	// Attenuates with distance up to a configurable range.
	LightTypeOmni

	// LightTypeSpot represents a light that emits in a cone from a position along a direction.
	// Attenuates with both distance and angle from the cone axis.
	LightTypeSpot

	// LightTypeCount is the number of light types. It sizes the shadow pass block.
	LightTypeCount = 3
)

// String returns the lower-case name used in generated shader code.
func (t LightType) String() string {
	switch t {
	case LightTypeDirectional:
		return "directional"
	case LightTypeOmni:
		return "omni"
	case LightTypeSpot:
		return "spot"
	}
	return "unknown"
}

// FalloffMode selects the distance attenuation curve of omni and spot lights.
type FalloffMode int

const (
	// FalloffLinear attenuates linearly to zero at the light range.
	FalloffLinear FalloffMode = iota

	// FalloffInverseSquared attenuates with the inverse square of the distance.
	FalloffInverseSquared
)

// key bit layout, most significant first
const (
	keyTypeShift        = 29 // 2 bits
	keyCastsShadowShift = 28 // 1 bit
	keyShadowKindShift  = 25 // 3 bits
	keyFalloffShift     = 23 // 2 bits
	keyNormalBiasShift  = 22 // 1 bit
	keyCookieShift      = 21 // 1 bit
	keyCascadesShift    = 19 // 2 bits, cascades-1
	keySpecularShift    = 18 // 1 bit
)

// UniformSetter receives named uniform values. *uniform.Scope satisfies it.
type UniformSetter interface {
	SetValue(name string, v any)
}

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	lightType         LightType
	position          [3]float32
	direction         [3]float32
	color             [3]float32
	intensity         float32
	lightRange        float32
	innerCone         float32 // stored as cos(angle in radians)
	outerCone         float32 // stored as cos(angle in radians)
	enabled           bool
	castsShadows      bool
	shadowKind        ShadowKind
	normalOffsetBias  float32
	cookie            string
	cascades          int
	affectSpecularity bool
	falloff           FalloffMode

	key uint32
}

// Light defines the interface for a light source that takes part in shader variant
// selection.
//
// Every attribute that changes the generated shader code is folded into Key, a
// precomputed fragment the option key generator concatenates for each light in the
// lit options' light list. Attributes that only change uniform values (color,
// intensity, position, direction, range, cone) never touch the key.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type (directional, omni, or spot)
	Type() LightType

	// Position returns the world-space position of the light.
	// Meaningless for directional lights.
	//
	// Returns:
	//   - [3]float32: position as (x, y, z)
	Position() [3]float32

	// Direction returns the normalized direction of the light.
	//
	// Returns:
	//   - [3]float32: normalized direction as (x, y, z)
	Direction() [3]float32

	// Color returns the RGB color of the light.
	//
	// Returns:
	//   - [3]float32: color as (r, g, b)
	Color() [3]float32

	// Intensity returns the scalar intensity multiplier for the light.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// Range returns the maximum attenuation distance for omni and spot lights.
	//
	// Returns:
	//   - float32: the range value
	Range() float32

	// InnerCone returns the cosine of the inner cone half-angle for spot lights.
	//
	// Returns:
	//   - float32: cos(inner half-angle)
	InnerCone() float32

	// OuterCone returns the cosine of the outer cone half-angle for spot lights.
	//
	// Returns:
	//   - float32: cos(outer half-angle)
	OuterCone() float32

	// Enabled returns whether this light is active for rendering.
	//
	// Returns:
	//   - bool: true if the light is enabled
	Enabled() bool

	// CastsShadows returns whether this light renders a shadow map.
	//
	// Returns:
	//   - bool: true if the light casts shadows
	CastsShadows() bool

	// ShadowKind returns the shadow filtering algorithm of the light.
	//
	// Returns:
	//   - ShadowKind: the shadow kind
	ShadowKind() ShadowKind

	// NormalOffsetBias returns the world-space normal-offset bias used for shadow lookups.
	//
	// Returns:
	//   - float32: the normal-offset bias
	NormalOffsetBias() float32

	// Cookie returns the identifier of the projected cookie texture, or "" for none.
	//
	// Returns:
	//   - string: the cookie texture identifier
	Cookie() string

	// Cascades returns the number of shadow cascades (1..4) of a directional light.
	//
	// Returns:
	//   - int: the cascade count
	Cascades() int

	// AffectSpecularity returns whether the light contributes to specular highlights.
	//
	// Returns:
	//   - bool: true if the light affects specularity
	AffectSpecularity() bool

	// Falloff returns the distance attenuation mode.
	//
	// Returns:
	//   - FalloffMode: the falloff mode
	Falloff() FalloffMode

	// Key returns the precomputed per-light fragment of the shader variant key.
	// Two lights with equal keys generate identical shader code.
	//
	// Returns:
	//   - uint32: the bit-packed light key
	Key() uint32

	// UpdateUniforms pushes the light's values into scope under the names the forward
	// shader declares for the baked light at index: light<index>_color (premultiplied by
	// intensity), _direction, _position, _radius, _innerConeAngle, _outerConeAngle and
	// _normalBias. Only the names the light's type and shadow settings declare are set.
	// Shadow matrices and textures belong to the shadow renderer.
	//
	// Parameters:
	//   - scope: the uniform scope to write to
	//   - index: the light's position in the baked light list
	UpdateUniforms(scope UniformSetter, index int)

	// SetPosition sets the world-space position of the light.
	//
	// Parameters:
	//   - x, y, z: position components
	SetPosition(x, y, z float32)

	// SetDirection sets the direction of the light and normalizes it.
	//
	// Parameters:
	//   - x, y, z: direction components (will be normalized)
	SetDirection(x, y, z float32)

	// SetColor sets the RGB color of the light.
	//
	// Parameters:
	//   - r, g, b: color components
	SetColor(r, g, b float32)

	// SetIntensity sets the scalar intensity multiplier.
	//
	// Parameters:
	//   - intensity: the intensity value
	SetIntensity(intensity float32)

	// SetEnabled enables or disables the light for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// SetCastsShadows sets whether the light renders a shadow map. Updates the key.
	//
	// Parameters:
	//   - castsShadows: true to enable shadow casting
	SetCastsShadows(castsShadows bool)

	// SetShadowKind sets the shadow filtering algorithm. Updates the key.
	//
	// Parameters:
	//   - kind: the shadow kind
	SetShadowKind(kind ShadowKind)

	// SetCookie sets the cookie texture identifier. Updates the key.
	//
	// Parameters:
	//   - cookie: the cookie texture identifier, or "" to remove it
	SetCookie(cookie string)
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the specified type with sensible defaults and
// any provided options applied.
//
// Parameters:
//   - lightType: the kind of light to create (directional, omni, or spot)
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType:         lightType,
		direction:         [3]float32{0, -1, 0},
		color:             [3]float32{1, 1, 1},
		intensity:         1.0,
		lightRange:        10.0,
		innerCone:         0.9063, // cos(25°)
		outerCone:         0.8192, // cos(35°)
		enabled:           true,
		shadowKind:        ShadowPCF3,
		normalOffsetBias:  DefaultShadowNormalBias,
		cascades:          DefaultShadowCascades,
		affectSpecularity: true,
		falloff:           FalloffLinear,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.updateKey()
	return l
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() [3]float32 {
	return l.position
}

func (l *lightImpl) Direction() [3]float32 {
	return l.direction
}

func (l *lightImpl) Color() [3]float32 {
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) Range() float32 {
	return l.lightRange
}

func (l *lightImpl) InnerCone() float32 {
	return l.innerCone
}

func (l *lightImpl) OuterCone() float32 {
	return l.outerCone
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) CastsShadows() bool {
	return l.castsShadows
}

func (l *lightImpl) ShadowKind() ShadowKind {
	return l.shadowKind
}

func (l *lightImpl) NormalOffsetBias() float32 {
	return l.normalOffsetBias
}

func (l *lightImpl) Cookie() string {
	return l.cookie
}

func (l *lightImpl) Cascades() int {
	return l.cascades
}

func (l *lightImpl) AffectSpecularity() bool {
	return l.affectSpecularity
}

func (l *lightImpl) Falloff() FalloffMode {
	return l.falloff
}

func (l *lightImpl) Key() uint32 {
	return l.key
}

func (l *lightImpl) UpdateUniforms(scope UniformSetter, index int) {
	p := "light" + strconv.Itoa(index)
	scope.SetValue(p+"_color", []float32{
		l.color[0] * l.intensity,
		l.color[1] * l.intensity,
		l.color[2] * l.intensity,
	})
	if l.lightType != LightTypeOmni {
		scope.SetValue(p+"_direction", []float32{l.direction[0], l.direction[1], l.direction[2]})
	}
	if l.lightType != LightTypeDirectional {
		scope.SetValue(p+"_position", []float32{l.position[0], l.position[1], l.position[2]})
		scope.SetValue(p+"_radius", l.lightRange)
	}
	if l.lightType == LightTypeSpot {
		scope.SetValue(p+"_innerConeAngle", l.innerCone)
		scope.SetValue(p+"_outerConeAngle", l.outerCone)
	}
	if l.castsShadows && l.normalOffsetBias != 0 {
		scope.SetValue(p+"_normalBias", l.normalOffsetBias)
	}
}

func (l *lightImpl) SetPosition(x, y, z float32) {
	l.position = [3]float32{x, y, z}
}

func (l *lightImpl) SetDirection(x, y, z float32) {
	l.direction = common.Normalize3(x, y, z)
}

func (l *lightImpl) SetColor(r, g, b float32) {
	l.color = [3]float32{r, g, b}
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = intensity
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
}

func (l *lightImpl) SetCastsShadows(castsShadows bool) {
	l.castsShadows = castsShadows
	l.updateKey()
}

func (l *lightImpl) SetShadowKind(kind ShadowKind) {
	l.shadowKind = kind
	l.updateKey()
}

func (l *lightImpl) SetCookie(cookie string) {
	l.cookie = cookie
	l.updateKey()
}

func (l *lightImpl) updateKey() {
	cascades := min(max(l.cascades, 1), 4)
	l.key = uint32(l.lightType)<<keyTypeShift |
		b2u(l.castsShadows)<<keyCastsShadowShift |
		uint32(l.shadowKind)<<keyShadowKindShift |
		uint32(l.falloff)<<keyFalloffShift |
		b2u(l.normalOffsetBias != 0)<<keyNormalBiasShift |
		b2u(l.cookie != "")<<keyCookieShift |
		uint32(cascades-1)<<keyCascadesShift |
		b2u(l.affectSpecularity)<<keySpecularShift
}

func b2u(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
