package uniform

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-variant/common"
)

// UniformFormat describes one uniform inside a uniform buffer.
type UniformFormat struct {
	// Name is the name the uniform is resolved by. Arrays are named "<name>[0]".
	Name string

	// ShortName is the declared name without an array suffix.
	ShortName string

	// Type is the declared element type.
	Type UniformType

	// UpdateType selects the writer. It equals Type, or the array variant of Type
	// when Count > 0.
	UpdateType UniformType

	// Count is the array length, or 0 for a non-array uniform.
	Count int

	// NumComponents is the number of 32-bit slots one element occupies.
	NumComponents int

	// ByteSize is the total size in bytes, array padding included.
	ByteSize int

	// Offset is the position inside the buffer in 4-byte units. Set by
	// NewUniformBufferFormat.
	Offset int

	// ScopeID is the value source the uniform is written from. Set by
	// NewUniformBufferFormat.
	ScopeID *ScopeID
}

// NewUniformFormat creates the format of one uniform. Array elements are padded to a
// 4-component stride.
//
// Parameters:
//   - name: the uniform name
//   - t: the element type
//   - count: the array length, or 0
//
// Returns:
//   - *UniformFormat: the format, with Offset and ScopeID unset
func NewUniformFormat(name string, t UniformType, count int) *UniformFormat {
	comps, ok := numComponents[t]
	if !ok {
		panic(fmt.Sprintf("uniform: %s cannot be declared with type %v", name, t))
	}
	if count < 0 {
		panic(fmt.Sprintf("uniform: %s declared with negative count %d", name, count))
	}
	f := &UniformFormat{
		Name:          name,
		ShortName:     name,
		Type:          t,
		UpdateType:    t,
		Count:         count,
		NumComponents: comps,
	}
	if count > 0 {
		f.Name = name + "[0]"
		at, ok := arrayTypes[t]
		if !ok {
			panic(fmt.Sprintf("uniform: %s cannot be declared as an array of %v", name, t))
		}
		f.UpdateType = at
		comps = common.RoundUp(comps, 4)
	}
	f.ByteSize = comps * 4
	if count > 0 {
		f.ByteSize *= count
	}
	return f
}

// IsArray reports whether the uniform is declared as an array.
func (f *UniformFormat) IsArray() bool {
	return f.Count > 0
}

// alignment is the std140-like byte alignment of the uniform.
func (f *UniformFormat) alignment() int {
	if f.Count > 0 || f.ByteSize > 8 {
		return 16
	}
	return f.ByteSize
}

// calculateOffset places the uniform at the first aligned position at or after byteOffset.
func (f *UniformFormat) calculateOffset(byteOffset int) {
	f.Offset = common.RoundUp(byteOffset, f.alignment()) / 4
}

// UniformBufferFormat is the ordered layout of every uniform in one buffer.
type UniformBufferFormat struct {
	// ByteSize is the total buffer size, rounded up to 16 bytes.
	ByteSize int

	// Uniforms lists the entries in declaration order.
	Uniforms []*UniformFormat

	byName map[string]*UniformFormat
}

// NewUniformBufferFormat lays out uniforms in declaration order, resolving each
// uniform's value source in scope. The format takes ownership of the entries: their
// Offset and ScopeID are set in place, and an entry that already belongs to another
// format panics.
//
// Parameters:
//   - scope: the scope uniform values are read from
//   - uniforms: the uniforms, in declaration order
//
// Returns:
//   - *UniformBufferFormat: the layout
func NewUniformBufferFormat(scope *Scope, uniforms ...*UniformFormat) *UniformBufferFormat {
	bf := &UniformBufferFormat{
		Uniforms: uniforms,
		byName:   make(map[string]*UniformFormat, len(uniforms)),
	}
	offset := 0
	for _, u := range uniforms {
		if _, dup := bf.byName[u.Name]; dup {
			panic(fmt.Sprintf("uniform: %s declared twice in one buffer format", u.Name))
		}
		if u.ScopeID != nil {
			panic(fmt.Sprintf("uniform: %s already belongs to a buffer format", u.Name))
		}
		u.calculateOffset(offset)
		offset = u.Offset*4 + u.ByteSize
		u.ScopeID = scope.Resolve(u.Name)
		bf.byName[u.Name] = u
	}
	bf.ByteSize = common.RoundUp(offset, 16)
	return bf
}

// Get returns the uniform with the given name, or nil.
//
// Parameters:
//   - name: the uniform name ("<name>[0]" for arrays)
//
// Returns:
//   - *UniformFormat: the uniform, or nil
func (bf *UniformBufferFormat) Get(name string) *UniformFormat {
	return bf.byName[name]
}
