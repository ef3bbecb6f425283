package device

// NullDeviceBuilderOption is a function that configures a null device during construction.
type NullDeviceBuilderOption func(*nullDevice)

// WithCapabilities is an option builder that sets the capabilities a null device reports.
//
// Parameters:
//   - caps: the capabilities
//
// Returns:
//   - NullDeviceBuilderOption: a function that applies the option to a nullDevice
func WithCapabilities(caps Capabilities) NullDeviceBuilderOption {
	return func(d *nullDevice) {
		d.caps = caps
	}
}

// WithMaxTextureSamplers is an option builder that sets only the sampler limit.
//
// Parameters:
//   - n: the number of samplers a fragment stage may declare
//
// Returns:
//   - NullDeviceBuilderOption: a function that applies the option to a nullDevice
func WithMaxTextureSamplers(n int) NullDeviceBuilderOption {
	return func(d *nullDevice) {
		d.caps.MaxTextureSamplers = n
	}
}

// WithFailingAllocations is an option builder that makes every buffer allocation fail.
// Used to exercise error paths.
//
// Returns:
//   - NullDeviceBuilderOption: a function that applies the option to a nullDevice
func WithFailingAllocations() NullDeviceBuilderOption {
	return func(d *nullDevice) {
		d.failAlloc = true
	}
}

// WGPUDeviceBuilderOption is a function that configures a wgpu device during construction.
type WGPUDeviceBuilderOption func(*wgpuDevice)

// WithWGPUCapabilities is an option builder that overrides the capabilities derived
// from the adapter limits.
//
// Parameters:
//   - caps: the capabilities
//
// Returns:
//   - WGPUDeviceBuilderOption: a function that applies the option to a wgpuDevice
func WithWGPUCapabilities(caps Capabilities) WGPUDeviceBuilderOption {
	return func(d *wgpuDevice) {
		d.caps = caps
	}
}

// WithLabelPrefix is an option builder that prefixes every buffer and module label.
//
// Parameters:
//   - prefix: the label prefix
//
// Returns:
//   - WGPUDeviceBuilderOption: a function that applies the option to a wgpuDevice
func WithLabelPrefix(prefix string) WGPUDeviceBuilderOption {
	return func(d *wgpuDevice) {
		d.labelPrefix = prefix
	}
}
