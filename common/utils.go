package common

import (
	"cmp"
	"maps"
	"slices"
)

// Coalesce returns the first value that differs from the zero value of T. Option
// layers use it to fall back from an explicit setting to a per-feature default.
//
// Parameters:
//   - values: candidates in priority order
//
// Returns:
//   - T: the first non-zero candidate, or the zero value when every candidate is zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// SortedKeys returns the keys of m in ascending order. Generated shader text and
// variant keys iterate maps through it so their output never depends on map order.
//
// Parameters:
//   - m: the map to read keys from
//
// Returns:
//   - []K: the sorted keys, empty for a nil map
func SortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	return slices.Sorted(maps.Keys(m))
}
