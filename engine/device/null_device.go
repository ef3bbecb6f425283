package device

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-variant/engine/profiler"
)

// Upload records one Unlock call on a null device buffer.
type Upload struct {
	Label string
	Data  []byte
}

// nullDevice is the implementation of the NullDevice interface.
type nullDevice struct {
	mu        sync.Mutex
	caps      Capabilities
	vram      profiler.VRAM
	uploads   []Upload
	live      int
	failAlloc bool
}

// NullDevice is an in-memory Device that never touches a GPU. Uploads are copied and
// recorded so tests and headless tools can inspect exactly what would have been sent.
type NullDevice interface {
	Device

	// Uploads returns a copy of every upload recorded so far, oldest first.
	//
	// Returns:
	//   - []Upload: the recorded uploads
	Uploads() []Upload

	// LiveBuffers returns the number of buffers created and not yet destroyed.
	//
	// Returns:
	//   - int: the live buffer count
	LiveBuffers() int
}

var _ NullDevice = &nullDevice{}

// NewNullDevice creates a NullDevice with DefaultCapabilities and the given options applied.
//
// Parameters:
//   - opts: variadic list of NullDeviceBuilderOption functions
//
// Returns:
//   - NullDevice: the device
func NewNullDevice(opts ...NullDeviceBuilderOption) NullDevice {
	d := &nullDevice{caps: DefaultCapabilities}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *nullDevice) Capabilities() Capabilities {
	return d.caps
}

func (d *nullDevice) VRAM() *profiler.VRAM {
	return &d.vram
}

func (d *nullDevice) CreateUniformBufferImpl(label string, byteSize int) (BufferImpl, error) {
	if d.failAlloc {
		return nil, fmt.Errorf("null device: allocation of %d bytes for %q refused", byteSize, label)
	}
	d.mu.Lock()
	d.live++
	d.mu.Unlock()
	return &nullBuffer{device: d, label: label, size: byteSize}, nil
}

func (d *nullDevice) Uploads() []Upload {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Upload(nil), d.uploads...)
}

func (d *nullDevice) LiveBuffers() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.live
}

// nullBuffer is the BufferImpl handed out by a null device.
type nullBuffer struct {
	device    *nullDevice
	label     string
	size      int
	destroyed bool
}

func (b *nullBuffer) Unlock(data []byte) {
	if b.destroyed {
		panic(fmt.Sprintf("device: Unlock on destroyed buffer %q", b.label))
	}
	if len(data) != b.size {
		panic(fmt.Sprintf("device: Unlock of %d bytes into buffer %q of %d bytes", len(data), b.label, b.size))
	}
	b.device.mu.Lock()
	defer b.device.mu.Unlock()
	b.device.uploads = append(b.device.uploads, Upload{Label: b.label, Data: append([]byte(nil), data...)})
}

func (b *nullBuffer) Destroy() {
	if b.destroyed {
		return
	}
	b.destroyed = true
	b.device.mu.Lock()
	b.device.live--
	b.device.mu.Unlock()
}
