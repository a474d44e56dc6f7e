package generator

// Pick returns one element of list using a single draw from r.
// An empty list yields the zero value and consumes nothing.
func Pick[T any](r *Rand, list []T) T {
	var zero T
	if len(list) == 0 {
		return zero
	}
	return list[index(r.Float64(), len(list))]
}

// Between returns an integer in [lo, hi] using a single draw from r.
func Between(r *Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + index(r.Float64(), hi-lo+1)
}

// index maps v in [0,1) onto [0, n-1], clamping values that land outside.
func index(v float64, n int) int {
	i := int(v * float64(n))
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
