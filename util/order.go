package util

import (
	"cmp"
	"sort"
)

// OrderedMapEntry is a single (key, value) pair of a map.
type OrderedMapEntry[K cmp.Ordered, V any] struct {
	Key   K
	Value V
}

// OrderedKeys returns the keys of m in ascending order.
func OrderedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// OrderedEntries returns the entries of m ordered by key.
func OrderedEntries[K cmp.Ordered, V any](m map[K]V) []OrderedMapEntry[K, V] {
	result := make([]OrderedMapEntry[K, V], 0, len(m))
	for _, k := range OrderedKeys(m) {
		result = append(result, OrderedMapEntry[K, V]{Key: k, Value: m[k]})
	}
	return result
}

// OrderedSlice returns a sorted copy of values.
func OrderedSlice[V cmp.Ordered](values []V) []V {
	result := make([]V, len(values))
	copy(result, values)
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}
