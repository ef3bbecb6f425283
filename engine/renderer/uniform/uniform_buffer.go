package uniform

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-variant/engine/debug"
	"github.com/Carmen-Shannon/oxy-variant/engine/device"
	"github.com/Carmen-Shannon/oxy-variant/engine/profiler"
	"honnef.co/go/safeish"
)

// uniformBuffer is the implementation of the UniformBuffer interface.
type uniformBuffer struct {
	label  string
	dev    device.Device
	format *UniformBufferFormat
	impl   device.BufferImpl

	// one allocation, four views
	words   []uint32
	storage []byte
	f32     []float32
	i32     []int32

	destroyed bool
}

// UniformBuffer owns the CPU copy of one uniform buffer and its device-side buffer.
// Every write places a value at the offset its format dictates, padding slots are
// never touched. The buffer is never resized; a different format needs a new buffer.
type UniformBuffer interface {
	// Format returns the layout the buffer was created with.
	//
	// Returns:
	//   - *UniformBufferFormat: the layout
	Format() *UniformBufferFormat

	// Set writes the current value of one uniform into the buffer. A uniform whose
	// value is missing, or of the wrong Go type, is skipped with a one-time warning
	// and keeps its previous bytes.
	//
	// Parameters:
	//   - u: an entry of the buffer's format
	Set(u *UniformFormat)

	// SetByName writes the uniform with the given name. Unknown names are ignored.
	//
	// Parameters:
	//   - name: the uniform name ("<name>[0]" for arrays)
	SetByName(name string)

	// Update writes every uniform in declaration order and uploads the whole buffer.
	// Unchanged values are written again.
	Update()

	// Destroy releases the device buffer and returns its bytes to the device VRAM
	// counter. Only the first call has an effect.
	Destroy()

	// Bytes returns the raw buffer contents. The slice aliases the buffer.
	Bytes() []byte

	// Float32 returns the buffer as 32-bit floats. The slice aliases the buffer.
	Float32() []float32

	// Int32 returns the buffer as 32-bit signed integers. The slice aliases the buffer.
	Int32() []int32

	// Uint32 returns the buffer as 32-bit unsigned integers. The slice aliases the buffer.
	Uint32() []uint32
}

var _ UniformBuffer = &uniformBuffer{}

// NewUniformBuffer allocates a buffer of format.ByteSize bytes on dev and records the
// allocation in the device VRAM counters.
//
// Parameters:
//   - dev: the device that owns the buffer
//   - format: the buffer layout
//   - opts: variadic list of UniformBufferBuilderOption functions
//
// Returns:
//   - UniformBuffer: the buffer
//   - error: an error if the device could not create the buffer
func NewUniformBuffer(dev device.Device, format *UniformBufferFormat, opts ...UniformBufferBuilderOption) (UniformBuffer, error) {
	if format.ByteSize%4 != 0 {
		panic(fmt.Sprintf("uniform: buffer format size %d is not a multiple of 4", format.ByteSize))
	}
	ub := &uniformBuffer{
		label:  "UniformBuffer",
		dev:    dev,
		format: format,
	}
	for _, opt := range opts {
		opt(ub)
	}

	impl, err := dev.CreateUniformBufferImpl(ub.label, format.ByteSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create uniform buffer %q: %w", ub.label, err)
	}
	ub.impl = impl

	ub.words = make([]uint32, format.ByteSize/4)
	ub.storage = safeish.SliceCast[[]byte](ub.words)
	ub.f32 = safeish.SliceCast[[]float32](ub.words)
	ub.i32 = safeish.SliceCast[[]int32](ub.words)

	dev.VRAM().Add(profiler.VRAMUniform, uint64(format.ByteSize))
	return ub, nil
}

func (ub *uniformBuffer) Format() *UniformBufferFormat {
	return ub.format
}

func (ub *uniformBuffer) Set(u *UniformFormat) {
	if ub.destroyed {
		panic(fmt.Sprintf("uniform: write of %s into destroyed buffer %q", u.Name, ub.label))
	}
	value, ok := u.ScopeID.Value()
	if ok {
		ok = ub.write(u, value)
	}
	if !ok {
		debug.WarnOnce("Value was not set when assigning to uniform [%s], expected type %v", u.Name, u.Type)
	}
}

func (ub *uniformBuffer) SetByName(name string) {
	if u := ub.format.Get(name); u != nil {
		ub.Set(u)
	}
}

func (ub *uniformBuffer) Update() {
	for _, u := range ub.format.Uniforms {
		ub.Set(u)
	}
	ub.impl.Unlock(ub.storage)
}

func (ub *uniformBuffer) Destroy() {
	if ub.destroyed {
		return
	}
	ub.destroyed = true
	ub.impl.Destroy()
	ub.dev.VRAM().Sub(profiler.VRAMUniform, uint64(ub.format.ByteSize))
}

func (ub *uniformBuffer) Bytes() []byte {
	return ub.storage
}

func (ub *uniformBuffer) Float32() []float32 {
	return ub.f32
}

func (ub *uniformBuffer) Int32() []int32 {
	return ub.i32
}

func (ub *uniformBuffer) Uint32() []uint32 {
	return ub.words
}
