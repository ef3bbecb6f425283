package light

// ShadowKind identifies the shadow-map filtering algorithm a light renders with.
// Together with LightType it selects one of the shadow render passes.
type ShadowKind int

const (
	// ShadowPCF3 is a 3x3 percentage-closer filtered depth map.
	ShadowPCF3 ShadowKind = iota

	// ShadowVSM8 is a variance shadow map packed into an 8-bit RGBA target.
	ShadowVSM8

	// ShadowVSM16 is a variance shadow map stored in a 16-bit float target.
	ShadowVSM16

	// ShadowVSM32 is a variance shadow map stored in a 32-bit float target.
	ShadowVSM32

	// ShadowPCF5 is a 5x5 percentage-closer filtered depth map.
	ShadowPCF5

	// ShadowPCF1 is a single-tap depth comparison.
	ShadowPCF1

	// ShadowPCSS is percentage-closer soft shadows.
	ShadowPCSS

	// ShadowKindCount is the number of shadow kinds. It sizes the shadow pass block.
	ShadowKindCount = 7
)

// DefaultShadowNormalBias is the world-space normal-offset bias applied to new lights.
const DefaultShadowNormalBias float32 = 0.05

// DefaultShadowCascades is the cascade count of new directional lights.
const DefaultShadowCascades = 1

// IsVSM reports whether the kind is one of the variance shadow map variants.
//
// Returns:
//   - bool: true for VSM8, VSM16 and VSM32
func (k ShadowKind) IsVSM() bool {
	return k == ShadowVSM8 || k == ShadowVSM16 || k == ShadowVSM32
}

// String returns the lower-case name used in generated shader defines.
func (k ShadowKind) String() string {
	switch k {
	case ShadowPCF3:
		return "pcf3"
	case ShadowVSM8:
		return "vsm8"
	case ShadowVSM16:
		return "vsm16"
	case ShadowVSM32:
		return "vsm32"
	case ShadowPCF5:
		return "pcf5"
	case ShadowPCF1:
		return "pcf1"
	case ShadowPCSS:
		return "pcss"
	}
	return "unknown"
}
