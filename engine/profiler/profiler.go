package profiler

import (
	"fmt"
	"log"
)

// VRAM tracks the running totals of GPU memory a device has handed out, split by
// resource kind. It is a plain counter set: resources add their byte size when they
// are created and subtract exactly the same amount when they are destroyed.
//
// VRAM is not safe for concurrent use; callers serialize access the same way they
// serialize use of the owning device.
type VRAM struct {
	Tex uint64 // textures
	VB  uint64 // vertex buffers
	IB  uint64 // index buffers
	UB  uint64 // uniform buffers
}

// VRAMKind selects one of the VRAM counters.
type VRAMKind int

const (
	// VRAMTexture selects the texture counter.
	VRAMTexture VRAMKind = iota

	// VRAMVertex selects the vertex buffer counter.
	VRAMVertex

	// VRAMIndex selects the index buffer counter.
	VRAMIndex

	// VRAMUniform selects the uniform buffer counter.
	VRAMUniform
)

func (v *VRAM) counter(kind VRAMKind) *uint64 {
	switch kind {
	case VRAMTexture:
		return &v.Tex
	case VRAMVertex:
		return &v.VB
	case VRAMIndex:
		return &v.IB
	case VRAMUniform:
		return &v.UB
	}
	panic(fmt.Sprintf("profiler: unknown VRAM kind %d", kind))
}

// Add records bytes allocated for a resource of the given kind.
//
// Parameters:
//   - kind: the resource kind
//   - bytes: the number of bytes allocated
func (v *VRAM) Add(kind VRAMKind, bytes uint64) {
	*v.counter(kind) += bytes
}

// Sub records bytes released for a resource of the given kind. Releasing more than
// was recorded means a resource was destroyed twice or never registered, which is a
// programming error and panics.
//
// Parameters:
//   - kind: the resource kind
//   - bytes: the number of bytes released
func (v *VRAM) Sub(kind VRAMKind, bytes uint64) {
	c := v.counter(kind)
	if bytes > *c {
		panic(fmt.Sprintf("profiler: VRAM underflow releasing %d bytes from kind %d holding %d", bytes, kind, *c))
	}
	*c -= bytes
}

// Total returns the sum of all counters in bytes.
//
// Returns:
//   - uint64: the total tracked bytes
func (v *VRAM) Total() uint64 {
	return v.Tex + v.VB + v.IB + v.UB
}

// Report writes the current totals to the log in megabytes.
func (v *VRAM) Report() {
	const mb = 1024 * 1024
	log.Printf("[Profiler] VRAM: %.2f MB | Tex: %.2f MB | VB: %.2f MB | IB: %.2f MB | UB: %.2f MB",
		float64(v.Total())/mb, float64(v.Tex)/mb, float64(v.VB)/mb, float64(v.IB)/mb, float64(v.UB)/mb)
}
