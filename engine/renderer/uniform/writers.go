package uniform

import "fmt"

// writer stores value at offset o (in 4-byte units). It returns false when value has
// the wrong Go type or too few elements, in which case nothing is written.
type writer func(ub *uniformBuffer, value any, o, count int) bool

var writers = map[UniformType]writer{
	TypeFloat: func(ub *uniformBuffer, v any, o, _ int) bool {
		f, ok := v.(float32)
		if ok {
			ub.f32[o] = f
		}
		return ok
	},
	TypeVec2: floatVector(2),
	TypeVec3: floatVector(3),
	TypeVec4: floatVector(4),

	TypeInt: func(ub *uniformBuffer, v any, o, _ int) bool {
		i, ok := v.(int32)
		if ok {
			ub.i32[o] = i
		}
		return ok
	},
	TypeIVec2: intVector(2),
	TypeIVec3: intVector(3),
	TypeIVec4: intVector(4),

	TypeUInt: func(ub *uniformBuffer, v any, o, _ int) bool {
		u, ok := v.(uint32)
		if ok {
			ub.words[o] = u
		}
		return ok
	},
	TypeUVec2: uintVector(2),
	TypeUVec3: uintVector(3),
	TypeUVec4: uintVector(4),

	TypeBool: func(ub *uniformBuffer, v any, o, _ int) bool {
		b, ok := v.(bool)
		if ok {
			ub.words[o] = boolWord(b)
		}
		return ok
	},

	// 2x2: two rows padded to 4 floats
	TypeMat2: func(ub *uniformBuffer, v any, o, _ int) bool {
		m, ok := v.([]float32)
		if !ok || len(m) < 4 {
			return false
		}
		ub.f32[o], ub.f32[o+1] = m[0], m[1]
		ub.f32[o+4], ub.f32[o+5] = m[2], m[3]
		return true
	},

	// 3x3: three rows padded to 4 floats
	TypeMat3: func(ub *uniformBuffer, v any, o, _ int) bool {
		m, ok := v.([]float32)
		if !ok || len(m) < 9 {
			return false
		}
		copy(ub.f32[o:o+3], m[0:3])
		copy(ub.f32[o+4:o+7], m[3:6])
		copy(ub.f32[o+8:o+11], m[6:9])
		return true
	},

	TypeFloatArray: floatArray(1),
	TypeVec2Array:  floatArray(2),
	TypeVec3Array:  floatArray(3),

	TypeIntArray: func(ub *uniformBuffer, v any, o, count int) bool {
		a, ok := v.([]int32)
		if !ok || len(a) < count {
			return false
		}
		for i := range count {
			ub.i32[o+i*4] = a[i]
		}
		return true
	},
	TypeUIntArray: func(ub *uniformBuffer, v any, o, count int) bool {
		a, ok := v.([]uint32)
		if !ok || len(a) < count {
			return false
		}
		for i := range count {
			ub.words[o+i*4] = a[i]
		}
		return true
	},
	TypeBoolArray: func(ub *uniformBuffer, v any, o, count int) bool {
		a, ok := v.([]bool)
		if !ok || len(a) < count {
			return false
		}
		for i := range count {
			ub.words[o+i*4] = boolWord(a[i])
		}
		return true
	},
}

// write dispatches on the update type. Types with no dedicated writer fall back to a
// contiguous copy, which is only correct for layouts without padding; any other
// type is a programming error.
func (ub *uniformBuffer) write(u *UniformFormat, value any) bool {
	if w, ok := writers[u.UpdateType]; ok {
		return w(ub, value, u.Offset, u.Count)
	}
	if !unpadded[u.UpdateType] {
		panic(fmt.Sprintf("uniform: no writer for %s of type %v and its layout is padded", u.Name, u.UpdateType))
	}
	n := u.ByteSize / 4
	switch src := value.(type) {
	case []float32:
		copy(ub.f32[u.Offset:u.Offset+n], src)
	case []int32:
		copy(ub.i32[u.Offset:u.Offset+n], src)
	case []uint32:
		copy(ub.words[u.Offset:u.Offset+n], src)
	default:
		return false
	}
	return true
}

func floatVector(n int) writer {
	return func(ub *uniformBuffer, v any, o, _ int) bool {
		s, ok := v.([]float32)
		if !ok || len(s) < n {
			return false
		}
		copy(ub.f32[o:o+n], s[:n])
		return true
	}
}

func intVector(n int) writer {
	return func(ub *uniformBuffer, v any, o, _ int) bool {
		s, ok := v.([]int32)
		if !ok || len(s) < n {
			return false
		}
		copy(ub.i32[o:o+n], s[:n])
		return true
	}
}

func uintVector(n int) writer {
	return func(ub *uniformBuffer, v any, o, _ int) bool {
		s, ok := v.([]uint32)
		if !ok || len(s) < n {
			return false
		}
		copy(ub.words[o:o+n], s[:n])
		return true
	}
}

// floatArray writes count elements of n floats each with a 4-float stride.
func floatArray(n int) writer {
	return func(ub *uniformBuffer, v any, o, count int) bool {
		s, ok := v.([]float32)
		if !ok || len(s) < count*n {
			return false
		}
		for i := range count {
			copy(ub.f32[o+i*4:o+i*4+n], s[i*n:i*n+n])
		}
		return true
	}
}

func boolWord(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
