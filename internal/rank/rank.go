// Package rank selects items from a sequence by a numeric score.
package rank

import (
	"cmp"
	"errors"
	"iter"
	"reflect"
	"slices"
)

var (
	// ErrEmptyCollection is returned when there is no item to select from.
	ErrEmptyCollection = errors.New("collection is empty")
	// ErrInvalidArgument is returned for a nil sequence or projection.
	ErrInvalidArgument = errors.New("invalid argument")
)

// MaxBy returns the item of items with the highest projection.
//
// Items are scanned once. The first item becomes the running best and is
// only replaced by an item with a strictly greater score, so the earliest of
// several maxima wins. Nil pointers, maps, slices, funcs, channels and
// interfaces are skipped. The projection is not called for them.
//
// It returns ErrInvalidArgument if items or projection is nil and
// ErrEmptyCollection if no item remains after skipping nils.
func MaxBy[T any](items iter.Seq[T], projection func(T) float64) (T, error) {
	var best T

	if items == nil {
		return best, errors.Join(ErrInvalidArgument, errors.New("items is nil"))
	}

	if projection == nil {
		return best, errors.Join(ErrInvalidArgument, errors.New("projection is nil"))
	}

	var (
		bestScore float64
		found     bool
	)

	for item := range items {
		if isNil(item) {
			continue
		}

		score := projection(item)
		if !found || score > bestScore {
			best, bestScore, found = item, score, true
		}
	}

	if !found {
		return best, ErrEmptyCollection
	}

	return best, nil
}

// MaxBySlice is MaxBy over a slice. A nil slice is treated as empty.
func MaxBySlice[T any](items []T, projection func(T) float64) (T, error) {
	return MaxBy(slices.Values(items), projection)
}

// TopBy returns up to n items ordered by descending key. Items with equal
// keys keep their relative order. items is not modified.
func TopBy[T any](items []T, n int, key func(T) float64) []T {
	if n <= 0 || len(items) == 0 {
		return []T{}
	}

	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b T) int {
		return cmp.Compare(key(b), key(a))
	})

	if len(sorted) > n {
		sorted = sorted[:n]
	}

	return sorted
}

func isNil[T any](item T) bool {
	v := reflect.ValueOf(any(item))
	if !v.IsValid() {
		return true
	}

	switch v.Kind() { //nolint:exhaustive // Only nillable kinds matter.
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return v.IsNil()
	default:
		return false
	}
}
