package core

import "math"

// Record is one raw row keyed by field name. Values may be numbers, strings or nil.
type Record map[string]any

// Vector is a feature row in schema column order.
type Vector []float64

// Missing marks an absent or unparseable feature value.
var Missing = math.NaN()

// IsMissing reports whether v is the missing marker.
func IsMissing(v float64) bool { return math.IsNaN(v) }

// Clone returns a copy of v.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

// MissingIndices returns the positions of missing entries.
func (v Vector) MissingIndices() []int {
	var idx []int
	for i, x := range v {
		if IsMissing(x) {
			idx = append(idx, i)
		}
	}
	return idx
}

// AllMissing reports whether every entry is missing. An empty vector counts as all missing.
func (v Vector) AllMissing() bool {
	for _, x := range v {
		if !IsMissing(x) {
			return false
		}
	}
	return true
}
