package common

import "github.com/chewxy/math32"

// RoundUp rounds n up to the nearest multiple of multiple. A non-positive multiple
// returns n unchanged.
//
// Parameters:
//   - n: the value to round
//   - multiple: the step to round up to
//
// Returns:
//   - int: the smallest multiple of multiple that is >= n
func RoundUp(n, multiple int) int {
	if multiple <= 0 {
		return n
	}
	if rem := n % multiple; rem != 0 {
		return n + multiple - rem
	}
	return n
}

// TextureTransformRows builds the two rows of a 2x3 affine UV transform from a
// tiling, offset and rotation (degrees). The rows are laid out so that a shader
// can compute the transformed coordinate as
// vec2(dot(vec3(uv, 1), row0), dot(vec3(uv, 1), row1)).
// Rotation is applied around the texture center.
//
// Parameters:
//   - row0: destination for the first row (at least 3 elements)
//   - row1: destination for the second row (at least 3 elements)
//   - tiling: UV scale (x, y)
//   - offset: UV offset (x, y)
//   - rotationDeg: rotation in degrees
func TextureTransformRows(row0, row1 []float32, tiling, offset [2]float32, rotationDeg float32) {
	rad := rotationDeg * math32.Pi / 180
	c, s := math32.Cos(rad), math32.Sin(rad)

	// scale, then rotate around (0.5, 0.5), then translate with y flipped
	row0[0] = c * tiling[0]
	row0[1] = -s * tiling[1]
	row0[2] = offset[0] + 0.5*(1-c*tiling[0]+s*tiling[1])
	row1[0] = s * tiling[0]
	row1[1] = c * tiling[1]
	row1[2] = -offset[1] + 0.5*(1-s*tiling[0]-c*tiling[1])
}

// Normalize3 normalizes a 3-component vector. Returns a zero vector if the input
// has zero length.
//
// Parameters:
//   - x, y, z: vector components
//
// Returns:
//   - [3]float32: the unit-length vector, or zero
func Normalize3(x, y, z float32) [3]float32 {
	length := math32.Sqrt(x*x + y*y + z*z)
	if length == 0 {
		return [3]float32{0, 0, 0}
	}
	inv := 1 / length
	return [3]float32{x * inv, y * inv, z * inv}
}
