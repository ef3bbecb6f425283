package light

import (
	"github.com/Carmen-Shannon/oxy-variant/common"
	"github.com/chewxy/math32"
)

// LightBuilderOption is a function that configures a Light instance during construction.
type LightBuilderOption func(*lightImpl)

// WithPosition is an option builder that sets the world-space position of the light.
//
// Parameters:
//   - x: the x position component
//   - y: the y position component
//   - z: the z position component
//
// Returns:
//   - LightBuilderOption: a function that applies the position option to a lightImpl
func WithPosition(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.position = [3]float32{x, y, z}
	}
}

// WithDirection is an option builder that sets the direction of the light.
// The direction is normalized before storing.
//
// Parameters:
//   - x: the x direction component
//   - y: the y direction component
//   - z: the z direction component
//
// Returns:
//   - LightBuilderOption: a function that applies the direction option to a lightImpl
func WithDirection(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.direction = common.Normalize3(x, y, z)
	}
}

// WithColor is an option builder that sets the RGB color of the light.
//
// Parameters:
//   - r: the red color component
//   - g: the green color component
//   - b: the blue color component
//
// Returns:
//   - LightBuilderOption: a function that applies the color option to a lightImpl
func WithColor(r, g, b float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = [3]float32{r, g, b}
	}
}

// WithIntensity is an option builder that sets the scalar intensity multiplier.
//
// Parameters:
//   - intensity: the intensity value
//
// Returns:
//   - LightBuilderOption: a function that applies the intensity option to a lightImpl
func WithIntensity(intensity float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.intensity = intensity
	}
}

// WithRange is an option builder that sets the maximum attenuation distance for
// point and spot lights.
//
// Parameters:
//   - lightRange: the range value
//
// Returns:
//   - LightBuilderOption: a function that applies the range option to a lightImpl
func WithRange(lightRange float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.lightRange = lightRange
	}
}

// WithSpotCone is an option builder that sets the inner and outer cone half-angles
// for spot lights. Angles are specified in degrees and converted to cosines internally,
// which is the format required by the GPU shader.
//
// Parameters:
//   - innerDeg: inner cone half-angle in degrees
//   - outerDeg: outer cone half-angle in degrees
//
// Returns:
//   - LightBuilderOption: a function that applies the spot cone option to a lightImpl
func WithSpotCone(innerDeg, outerDeg float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.innerCone = cosDeg(innerDeg)
		l.outerCone = cosDeg(outerDeg)
	}
}

// WithEnabled is an option builder that sets whether the light is active for rendering.
//
// Parameters:
//   - enabled: true to enable the light
//
// Returns:
//   - LightBuilderOption: a function that applies the enabled option to a lightImpl
func WithEnabled(enabled bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.enabled = enabled
	}
}

// WithCastsShadows is an option builder that sets whether the light is eligible for
// shadow map generation.
//
// Parameters:
//   - castsShadows: true to enable shadow casting
//
// Returns:
//   - LightBuilderOption: a function that applies the shadow casting option to a lightImpl
func WithCastsShadows(castsShadows bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.castsShadows = castsShadows
	}
}

// WithShadowKind is an option builder that sets the shadow filtering algorithm.
//
// Parameters:
//   - kind: the shadow kind
//
// Returns:
//   - LightBuilderOption: a function that applies the shadow kind option to a lightImpl
func WithShadowKind(kind ShadowKind) LightBuilderOption {
	return func(l *lightImpl) {
		l.shadowKind = kind
	}
}

// WithNormalOffsetBias is an option builder that sets the world-space normal-offset
// bias used for shadow lookups. A zero bias removes the offset code from the shader.
//
// Parameters:
//   - bias: the normal-offset bias
//
// Returns:
//   - LightBuilderOption: a function that applies the bias option to a lightImpl
func WithNormalOffsetBias(bias float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.normalOffsetBias = bias
	}
}

// WithCookie is an option builder that sets the projected cookie texture identifier.
//
// Parameters:
//   - cookie: the cookie texture identifier
//
// Returns:
//   - LightBuilderOption: a function that applies the cookie option to a lightImpl
func WithCookie(cookie string) LightBuilderOption {
	return func(l *lightImpl) {
		l.cookie = cookie
	}
}

// WithCascades is an option builder that sets the shadow cascade count of a
// directional light. Values are clamped to 1..4 when the key is computed.
//
// Parameters:
//   - cascades: the number of cascades
//
// Returns:
//   - LightBuilderOption: a function that applies the cascade option to a lightImpl
func WithCascades(cascades int) LightBuilderOption {
	return func(l *lightImpl) {
		l.cascades = cascades
	}
}

// WithAffectSpecularity is an option builder that sets whether the light contributes
// to specular highlights.
//
// Parameters:
//   - affect: true if the light affects specularity
//
// Returns:
//   - LightBuilderOption: a function that applies the option to a lightImpl
func WithAffectSpecularity(affect bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.affectSpecularity = affect
	}
}

// WithFalloff is an option builder that sets the distance attenuation mode.
//
// Parameters:
//   - mode: the falloff mode
//
// Returns:
//   - LightBuilderOption: a function that applies the falloff option to a lightImpl
func WithFalloff(mode FalloffMode) LightBuilderOption {
	return func(l *lightImpl) {
		l.falloff = mode
	}
}

// cosDeg converts an angle in degrees to the cosine of that angle in radians.
func cosDeg(deg float32) float32 {
	return math32.Cos(deg * math32.Pi / 180)
}
