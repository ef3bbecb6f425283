package uniform

// UniformBufferBuilderOption is a function that configures a uniform buffer during construction.
type UniformBufferBuilderOption func(*uniformBuffer)

// WithLabel is an option builder that sets the debug label of the device buffer.
//
// Parameters:
//   - label: the buffer label
//
// Returns:
//   - UniformBufferBuilderOption: a function that applies the label option to a uniformBuffer
func WithLabel(label string) UniformBufferBuilderOption {
	return func(ub *uniformBuffer) {
		ub.label = label
	}
}
