package utils

import (
	"math"
	"sort"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/rand"
)

type Number interface {
	constraints.Integer | constraints.Float
}

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// MaxBy returns the first element with the greatest key, or the zero value
// and false for an empty slice.
func MaxBy[T any, K constraints.Ordered](slice []T, key func(T) K) (T, bool) {
	var best T
	if len(slice) == 0 {
		return best, false
	}
	best = slice[0]
	bestKey := key(best)
	for _, v := range slice[1:] {
		if k := key(v); k > bestKey {
			best, bestKey = v, k
		}
	}
	return best, true
}

// Sample returns a uniformly random element, or the zero value and false for an empty slice.
func Sample[T any](rng *rand.Rand, slice []T) (T, bool) {
	var zero T
	if len(slice) == 0 {
		return zero, false
	}
	return slice[rng.Intn(len(slice))], true
}

func Filter[T any](slice []T, keep func(T) bool) []T {
	var out []T
	for _, v := range slice {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func Sum[T Number](values []T) T {
	var total T
	for _, v := range values {
		total += v
	}
	return total
}

func Min[T constraints.Ordered](values []T) T {
	var m T
	for i, v := range values {
		if i == 0 || v < m {
			m = v
		}
	}
	return m
}

func Max[T constraints.Ordered](values []T) T {
	var m T
	for i, v := range values {
		if i == 0 || v > m {
			m = v
		}
	}
	return m
}

// Mean is the arithmetic mean rounded to one decimal place; 0 for no values.
func Mean[T Number](values []T) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := float64(Sum(values)) / float64(len(values))
	return math.Round(mean*10) / 10
}

// Median returns the upper median (sorted[len/2]); the zero value for no values.
func Median[T constraints.Ordered](values []T) T {
	var zero T
	if len(values) == 0 {
		return zero
	}
	sorted := append([]T(nil), values...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return sorted[len(sorted)/2]
}
