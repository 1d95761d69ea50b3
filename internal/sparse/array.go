// Copyright (c) 2025 the uintn authors
// SPDX-License-Identifier: MIT

// Package sparse implements a popcount-compressed sparse array
// over a fixed key universe.
package sparse

import (
	"iter"

	"github.com/widebits/uintn"
)

// Array is a sparse array with payload T over the fixed key universe
// [0, universe). Presence is tracked in a fixed-width bitmap, the items
// live in a dense slice addressed by rank. The bitmap and the items are
// coupled, which is why the bitmap is not exported: an unsynchronized
// Set or Unset would disturb the coupling.
//
// example: a.Get(5) -> a.items[1]
//
//	                     ⬇
//	presence: [0|0|1|0|0|1|0|...|1] <- 3 bits set
//	items:    [*|*|*]               <- len(items) = 3
//	             ⬆
//
//	presence.Test(5):  true
//	presence.Rank(5):  2, set bits in [0,5]
//	rank0(5):          1, equal Rank(5)-1
type Array[T any] struct {
	presence uintn.Uint[uint64]
	items    []T
}

// New returns an empty sparse array over [0, universe).
// It panics if universe is 0.
func New[T any](universe uint) *Array[T] {
	return &Array[T]{presence: uintn.MustNew[uint64](universe)}
}

// Len returns the number of items in the sparse array.
func (a *Array[T]) Len() int {
	return len(a.items)
}

// Universe returns the fixed size of the key universe.
func (a *Array[T]) Universe() uint {
	return a.presence.BitLen()
}

// Test reports whether a value is present at i.
func (a *Array[T]) Test(i uint) bool {
	return a.presence.Test(i)
}

// rank0 maps the key i to its position in the dense items slice.
func (a *Array[T]) rank0(i uint) int {
	return a.presence.Rank(i) - 1
}

// Get returns the value at i and true if present.
func (a *Array[T]) Get(i uint) (value T, ok bool) {
	if a.presence.Test(i) {
		return a.items[a.rank0(i)], true
	}
	return
}

// MustGet use it only after a successful Test
// or the behavior is undefined, it may or may not panic.
func (a *Array[T]) MustGet(i uint) T {
	return a.items[a.rank0(i)]
}

// InsertAt inserts the value at i, replacing any previous value.
// It returns true if a value was already present.
func (a *Array[T]) InsertAt(i uint, value T) (wasPresent bool) {
	if a.presence.Test(i) {
		a.items[a.rank0(i)] = value
		return true
	}

	a.presence.Set(i)
	a.insertItem(a.rank0(i), value)
	return false
}

// DeleteAt removes the value at i, returning it and true if it was
// present.
func (a *Array[T]) DeleteAt(i uint) (value T, wasPresent bool) {
	if !a.presence.Test(i) {
		return
	}

	idx := a.rank0(i)
	value = a.items[idx]

	a.deleteItem(idx)
	a.presence.Unset(i)
	return value, true
}

// UpdateAt or set the value at i via callback. The new value is returned
// and true if a value was already present.
func (a *Array[T]) UpdateAt(i uint, cb func(T, bool) T) (newValue T, wasPresent bool) {
	var rank0 int

	// if already set, get current value
	var oldValue T

	if wasPresent = a.presence.Test(i); wasPresent {
		rank0 = a.rank0(i)
		oldValue = a.items[rank0]
	}

	newValue = cb(oldValue, wasPresent)

	if wasPresent {
		a.items[rank0] = newValue
		return newValue, wasPresent
	}

	// new value, insert into the bitmap ...
	a.presence.Set(i)

	// bitmap has changed, recalc rank
	rank0 = a.rank0(i)

	// ... and insert value into slice
	a.insertItem(rank0, newValue)

	return newValue, wasPresent
}

// All returns an iterator over (key, value) pairs in ascending key
// order, walking the presence bitmap.
func (a *Array[T]) All() iter.Seq2[uint, T] {
	return func(yield func(uint, T) bool) {
		for i, ok := a.presence.NextSet(0); ok; i, ok = a.presence.NextSet(i + 1) {
			if !yield(i, a.items[a.rank0(i)]) {
				return
			}
		}
	}
}

// Copy returns a shallow copy of the Array.
// The elements are copied using assignment, this is no deep clone.
func (a *Array[T]) Copy() *Array[T] {
	if a == nil {
		return nil
	}
	c := &Array[T]{presence: a.presence.Clone()}
	c.items = append(c.items, a.items...)
	return c
}

// insertItem inserts the item at index i, shifting the rest one
// position right.
func (a *Array[T]) insertItem(i int, item T) {
	if len(a.items) < cap(a.items) {
		a.items = a.items[:len(a.items)+1] // fast resize, no alloc
	} else {
		var zero T
		a.items = append(a.items, zero)
	}
	copy(a.items[i+1:], a.items[i:])
	a.items[i] = item
}

// deleteItem deletes the item at index i, shifting the rest one
// position left.
func (a *Array[T]) deleteItem(i int) {
	var zero T

	copy(a.items[i:], a.items[i+1:])
	a.items[len(a.items)-1] = zero // zero out, don't leak
	a.items = a.items[:len(a.items)-1]
}
