package util

import (
	"math"
)

// AddUint64 adds a list of uint64s together, the second return value is
// false when the sum overflows uint64.
func AddUint64(ns ...uint64) (uint64, bool) {
	var sum uint64
	for _, n := range ns {
		if n > math.MaxUint64-sum {
			return 0, false
		}
		sum += n
	}
	return sum, true
}

// SafeAdd returns a+b and checks for overflow
func SafeAdd(a, b uint64) (uint64, bool) {
	if a > math.MaxUint64-b {
		return 0, false
	}
	return a + b, true
}

// SafeSub returns a-b and checks for underflow
func SafeSub(a, b uint64) (uint64, bool) {
	if a < b {
		return 0, false
	}
	return a - b, true
}
