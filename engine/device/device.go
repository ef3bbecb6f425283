// Package device is the narrow boundary between variant generation and the graphics
// device layer. Generation code only needs three things from a device: its shader
// capabilities, its VRAM accounting counters, and a way to create the GPU side of a
// uniform buffer.
package device

import "github.com/Carmen-Shannon/oxy-variant/engine/profiler"

// Precision is the default float precision qualifier of generated fragment code.
type Precision string

const (
	PrecisionHigh   Precision = "highp"
	PrecisionMedium Precision = "mediump"
	PrecisionLow    Precision = "lowp"
)

// Capabilities describes the shader limits of a device.
type Capabilities struct {
	// Precision is the fragment float precision.
	Precision Precision

	// MaxTextureSamplers is the number of samplers one fragment stage may declare.
	MaxTextureSamplers int

	// FragmentUniformsCount is the number of vec4 uniform slots in the fragment stage.
	FragmentUniformsCount int
}

// DefaultCapabilities are the limits assumed when a device reports none.
var DefaultCapabilities = Capabilities{
	Precision:             PrecisionHigh,
	MaxTextureSamplers:    16,
	FragmentUniformsCount: 1024,
}

// BufferImpl is the device-side half of a uniform buffer.
type BufferImpl interface {
	// Unlock uploads the full contents of data to the GPU buffer. The slice is only
	// read for the duration of the call.
	//
	// Parameters:
	//   - data: the CPU-side bytes, exactly the buffer size
	Unlock(data []byte)

	// Destroy releases the GPU buffer. Calling Destroy more than once is a no-op.
	Destroy()
}

// Device is the subset of a graphics device used by variant generation and uniform
// buffers.
type Device interface {
	// Capabilities returns the shader limits of the device.
	//
	// Returns:
	//   - Capabilities: the device limits
	Capabilities() Capabilities

	// VRAM returns the device's running GPU memory counters. The same pointer is
	// returned on every call.
	//
	// Returns:
	//   - *profiler.VRAM: the counters
	VRAM() *profiler.VRAM

	// CreateUniformBufferImpl creates the GPU side of a uniform buffer.
	//
	// Parameters:
	//   - label: a debug label for the buffer
	//   - byteSize: the buffer size in bytes
	//
	// Returns:
	//   - BufferImpl: the device buffer
	//   - error: an error if the device could not allocate the buffer
	CreateUniformBufferImpl(label string, byteSize int) (BufferImpl, error)
}
