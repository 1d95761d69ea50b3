// Copyright (c) 2025 the uintn authors
// SPDX-License-Identifier: MIT

// Package strhash implements a flat open-addressing string hash table,
// used as bucket storage by the burst trie.
package strhash

import (
	"iter"

	"github.com/cespare/xxhash/v2"

	"github.com/widebits/uintn"
)

// number of slots in a fresh table, must be a power of two
const minSlots = 8

// max load (live + tombstones) is 3/4 of the slots
const maxLoadNum, maxLoadDen = 3, 4

// Map is a string keyed hash table with open addressing and linear
// probing. Keys are hashed with xxhash. Slot occupancy and tombstones
// are tracked in two fixed-width bitmaps sized to the slot count, the
// bitmaps are rebuilt together with the slots on every rehash.
type Map[T any] struct {
	keys []string
	vals []T

	live uintn.Uint[uint64] // occupied slots
	dead uintn.Uint[uint64] // tombstones

	mask  uint // len(keys) - 1
	n     int  // live entries
	tombs int
}

// New returns an empty map.
func New[T any]() *Map[T] {
	m := &Map[T]{}
	m.init(minSlots)
	return m
}

func (m *Map[T]) init(slots int) {
	m.keys = make([]string, slots)
	m.vals = make([]T, slots)
	m.live = uintn.MustNew[uint64](uint(slots))
	m.dead = uintn.MustNew[uint64](uint(slots))
	m.mask = uint(slots) - 1
	m.n = 0
	m.tombs = 0
}

// Len returns the number of entries.
func (m *Map[T]) Len() int {
	return m.n
}

// Get returns the value for key and true if present.
func (m *Map[T]) Get(key string) (value T, ok bool) {
	i := uint(xxhash.Sum64String(key)) & m.mask
	for {
		switch {
		case m.live.Test(i):
			if m.keys[i] == key {
				return m.vals[i], true
			}
		case !m.dead.Test(i):
			// empty slot ends the probe chain
			return value, false
		}
		i = (i + 1) & m.mask
	}
}

// Put inserts or replaces the value for key,
// returning true if the key was already present.
func (m *Map[T]) Put(key string, value T) (wasPresent bool) {
	if (m.n+m.tombs+1)*maxLoadDen > len(m.keys)*maxLoadNum {
		m.rehash()
	}

	i := uint(xxhash.Sum64String(key)) & m.mask
	insert := uint(0)
	haveTomb := false

	for {
		switch {
		case m.live.Test(i):
			if m.keys[i] == key {
				m.vals[i] = value
				return true
			}
		case m.dead.Test(i):
			// remember the first tombstone but keep probing,
			// the key may live further down the chain
			if !haveTomb {
				insert, haveTomb = i, true
			}
		default:
			if !haveTomb {
				insert = i
			}
			m.keys[insert] = key
			m.vals[insert] = value
			m.live.Set(insert)
			if haveTomb {
				m.dead.Unset(insert)
				m.tombs--
			}
			m.n++
			return false
		}
		i = (i + 1) & m.mask
	}
}

// Delete removes key, returning its value and true if it was present.
func (m *Map[T]) Delete(key string) (value T, ok bool) {
	i := uint(xxhash.Sum64String(key)) & m.mask
	for {
		switch {
		case m.live.Test(i):
			if m.keys[i] == key {
				value = m.vals[i]

				var zeroV T
				m.keys[i] = ""
				m.vals[i] = zeroV // don't leak

				m.live.Unset(i)
				m.dead.Set(i)
				m.n--
				m.tombs++
				return value, true
			}
		case !m.dead.Test(i):
			return value, false
		}
		i = (i + 1) & m.mask
	}
}

// All returns an iterator over all entries in slot order,
// walking the occupancy bitmap.
func (m *Map[T]) All() iter.Seq2[string, T] {
	return func(yield func(string, T) bool) {
		for i, ok := m.live.NextSet(0); ok; i, ok = m.live.NextSet(i + 1) {
			if !yield(m.keys[i], m.vals[i]) {
				return
			}
		}
	}
}

// rehash rebuilds the table, doubling the slots when the live load
// justifies it, at the same size when the load is mostly tombstones.
func (m *Map[T]) rehash() {
	slots := len(m.keys)
	if (m.n+1)*maxLoadDen > slots*maxLoadNum/2 {
		slots *= 2
	}

	oldKeys, oldVals, oldLive := m.keys, m.vals, m.live

	m.init(slots)
	for i, ok := oldLive.NextSet(0); ok; i, ok = oldLive.NextSet(i + 1) {
		m.Put(oldKeys[i], oldVals[i])
	}
}
