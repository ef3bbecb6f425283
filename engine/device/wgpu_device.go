package device

import (
	"fmt"
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-variant/engine/profiler"
	"github.com/Carmen-Shannon/oxy-variant/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// wgpuDevice is the implementation of the WGPUDevice interface.
type wgpuDevice struct {
	mu          sync.Mutex
	device      *wgpu.Device
	queue       *wgpu.Queue
	caps        Capabilities
	vram        profiler.VRAM
	labelPrefix string
}

// WGPUDevice is a Device backed by a live wgpu device and queue. Uniform buffers are
// created with Uniform|CopyDst usage and uploaded through the queue.
type WGPUDevice interface {
	Device

	// CreateShaderModules compiles both stages of a shader definition.
	//
	// Parameters:
	//   - def: the generated shader definition
	//
	// Returns:
	//   - *wgpu.ShaderModule: the vertex stage module
	//   - *wgpu.ShaderModule: the fragment stage module
	//   - error: an error if either stage failed to compile
	CreateShaderModules(def *shader.Definition) (*wgpu.ShaderModule, *wgpu.ShaderModule, error)
}

var _ WGPUDevice = &wgpuDevice{}

// NewWGPUDevice wraps a wgpu device and its queue. Capabilities are derived from the
// device limits unless overridden with WithWGPUCapabilities.
//
// Parameters:
//   - device: the wgpu device
//   - queue: the device queue
//   - opts: variadic list of WGPUDeviceBuilderOption functions
//
// Returns:
//   - WGPUDevice: the device
//   - error: an error if device or queue is nil
func NewWGPUDevice(device *wgpu.Device, queue *wgpu.Queue, opts ...WGPUDeviceBuilderOption) (WGPUDevice, error) {
	if device == nil || queue == nil {
		return nil, fmt.Errorf("device: wgpu device and queue are required")
	}
	d := &wgpuDevice{
		device: device,
		queue:  queue,
		caps:   capabilitiesFromLimits(device.GetLimits().Limits),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

func capabilitiesFromLimits(l wgpu.Limits) Capabilities {
	caps := DefaultCapabilities
	if l.MaxSampledTexturesPerShaderStage > 0 {
		caps.MaxTextureSamplers = int(l.MaxSampledTexturesPerShaderStage)
	}
	return caps
}

func (d *wgpuDevice) Capabilities() Capabilities {
	return d.caps
}

func (d *wgpuDevice) VRAM() *profiler.VRAM {
	return &d.vram
}

func (d *wgpuDevice) CreateUniformBufferImpl(label string, byteSize int) (BufferImpl, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	buf, err := d.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            d.labelPrefix + label,
		Size:             uint64(byteSize),
		Usage:            wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create uniform buffer %q: %w", label, err)
	}
	return &wgpuBuffer{device: d, buffer: buf, label: label}, nil
}

func (d *wgpuDevice) CreateShaderModules(def *shader.Definition) (*wgpu.ShaderModule, *wgpu.ShaderModule, error) {
	vsDesc, fsDesc := def.Modules()
	vsDesc.Label = d.labelPrefix + vsDesc.Label
	fsDesc.Label = d.labelPrefix + fsDesc.Label

	d.mu.Lock()
	defer d.mu.Unlock()
	vs, err := d.device.CreateShaderModule(vsDesc)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create vertex module %q: %w", vsDesc.Label, err)
	}
	fs, err := d.device.CreateShaderModule(fsDesc)
	if err != nil {
		vs.Release()
		return nil, nil, fmt.Errorf("failed to create fragment module %q: %w", fsDesc.Label, err)
	}
	return vs, fs, nil
}

// wgpuBuffer is the BufferImpl handed out by a wgpu device.
type wgpuBuffer struct {
	device *wgpuDevice
	buffer *wgpu.Buffer
	label  string
}

func (b *wgpuBuffer) Unlock(data []byte) {
	if b.buffer == nil {
		return
	}
	b.device.mu.Lock()
	defer b.device.mu.Unlock()
	if err := b.device.queue.WriteBuffer(b.buffer, 0, data); err != nil {
		log.Printf("[Device] failed to upload uniform buffer %q: %v", b.label, err)
	}
}

func (b *wgpuBuffer) Destroy() {
	if b.buffer == nil {
		return
	}
	b.buffer.Release()
	b.buffer = nil
}
