package uniform

// UniformType is the declared shader type of a uniform.
type UniformType int

const (
	TypeBool UniformType = iota
	TypeInt
	TypeFloat
	TypeVec2
	TypeVec3
	TypeVec4
	TypeIVec2
	TypeIVec3
	TypeIVec4
	TypeUInt
	TypeUVec2
	TypeUVec3
	TypeUVec4
	TypeMat2
	TypeMat3
	TypeMat4

	// array update types, selected by NewUniformFormat when count > 0
	TypeFloatArray
	TypeVec2Array
	TypeVec3Array
	TypeVec4Array
	TypeIntArray
	TypeUIntArray
	TypeBoolArray
	TypeIVec4Array
	TypeUVec4Array
	TypeMat4Array
)

var typeNames = [...]string{
	TypeBool:       "bool",
	TypeInt:        "int",
	TypeFloat:      "float",
	TypeVec2:       "vec2",
	TypeVec3:       "vec3",
	TypeVec4:       "vec4",
	TypeIVec2:      "ivec2",
	TypeIVec3:      "ivec3",
	TypeIVec4:      "ivec4",
	TypeUInt:       "uint",
	TypeUVec2:      "uvec2",
	TypeUVec3:      "uvec3",
	TypeUVec4:      "uvec4",
	TypeMat2:       "mat2",
	TypeMat3:       "mat3",
	TypeMat4:       "mat4",
	TypeFloatArray: "float[]",
	TypeVec2Array:  "vec2[]",
	TypeVec3Array:  "vec3[]",
	TypeVec4Array:  "vec4[]",
	TypeIntArray:   "int[]",
	TypeUIntArray:  "uint[]",
	TypeBoolArray:  "bool[]",
	TypeIVec4Array: "ivec4[]",
	TypeUVec4Array: "uvec4[]",
	TypeMat4Array:  "mat4[]",
}

func (t UniformType) String() string {
	if t >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "unknown"
}

// numComponents is the number of 32-bit slots one element of a type occupies.
// mat2 and mat3 count their row padding.
var numComponents = map[UniformType]int{
	TypeBool:  1,
	TypeInt:   1,
	TypeFloat: 1,
	TypeUInt:  1,
	TypeVec2:  2,
	TypeIVec2: 2,
	TypeUVec2: 2,
	TypeVec3:  3,
	TypeIVec3: 3,
	TypeUVec3: 3,
	TypeVec4:  4,
	TypeIVec4: 4,
	TypeUVec4: 4,
	TypeMat2:  8,
	TypeMat3:  12,
	TypeMat4:  16,
}

// arrayTypes maps an element type to the update type used when it is declared as an array.
var arrayTypes = map[UniformType]UniformType{
	TypeFloat: TypeFloatArray,
	TypeVec2:  TypeVec2Array,
	TypeVec3:  TypeVec3Array,
	TypeVec4:  TypeVec4Array,
	TypeInt:   TypeIntArray,
	TypeUInt:  TypeUIntArray,
	TypeBool:  TypeBoolArray,
	TypeIVec4: TypeIVec4Array,
	TypeUVec4: TypeUVec4Array,
	TypeMat4:  TypeMat4Array,
}

// unpadded lists the update types whose source values map one to one onto the
// buffer, so a contiguous float copy lays them out correctly.
var unpadded = map[UniformType]bool{
	TypeMat4:       true,
	TypeVec4Array:  true,
	TypeMat4Array:  true,
	TypeIVec4Array: true,
	TypeUVec4Array: true,
}
