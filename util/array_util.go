package util

// TransformSlice maps every element of s through fn and returns the
// resulting slice. Handy for projecting one field out of a slice of
// structs, e.g. the amounts of a list of allocations.
func TransformSlice[S ~[]E, E any, V any](s S, fn func(E) V) []V {
	out := make([]V, len(s))
	for i, v := range s {
		out[i] = fn(v)
	}
	return out
}
