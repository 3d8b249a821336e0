package omath

import (
	"iter"

	"github.com/chewxy/math32"
)

// Mean ...
func Mean(nums iter.Seq[float32]) float32 {
	var sum, count float32
	for v := range nums {
		sum += v
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / count
}

// Max returns the largest value in the sequence, or zero if it is empty.
func Max(nums iter.Seq[float32]) float32 {
	var (
		max  float32
		seen bool
	)
	for v := range nums {
		if !seen {
			max, seen = v, true
			continue
		}
		max = math32.Max(max, v)
	}
	return max
}
