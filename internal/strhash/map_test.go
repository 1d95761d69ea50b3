// Copyright (c) 2025 the uintn authors
// SPDX-License-Identifier: MIT

package strhash

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapBasics(t *testing.T) {
	t.Parallel()
	m := New[int]()

	_, ok := m.Get("missing")
	require.False(t, ok)
	require.Equal(t, 0, m.Len())

	m.Put("a", 1)
	m.Put("b", 2)
	m.Put("a", 11) // replace
	require.Equal(t, 2, m.Len())

	v, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, 11, v)

	v, ok = m.Delete("a")
	require.True(t, ok)
	assert.Equal(t, 11, v)
	require.Equal(t, 1, m.Len())

	_, ok = m.Get("a")
	assert.False(t, ok)

	_, ok = m.Delete("a")
	assert.False(t, ok)
}

func TestMapEmptyKey(t *testing.T) {
	t.Parallel()
	m := New[int]()

	m.Put("", 42)
	v, ok := m.Get("")
	require.True(t, ok)
	assert.Equal(t, 42, v)

	_, ok = m.Delete("")
	require.True(t, ok)
	assert.Equal(t, 0, m.Len())
}

func TestMapGrowth(t *testing.T) {
	t.Parallel()
	m := New[int]()

	const count = 10_000
	for i := range count {
		m.Put(fmt.Sprintf("key-%d", i), i)
	}
	require.Equal(t, count, m.Len())

	for i := range count {
		v, ok := m.Get(fmt.Sprintf("key-%d", i))
		require.True(t, ok, "key-%d missing after growth", i)
		require.Equal(t, i, v)
	}
}

func TestMapTombstoneReuse(t *testing.T) {
	t.Parallel()
	m := New[int]()

	// churn the same small key set, the table must not grow without bound
	for round := range 1_000 {
		for i := range 4 {
			m.Put(fmt.Sprintf("k%d", i), round)
		}
		for i := range 4 {
			_, ok := m.Delete(fmt.Sprintf("k%d", i))
			require.True(t, ok)
		}
	}
	assert.Equal(t, 0, m.Len())
	assert.Less(t, len(m.keys), 64, "table grew on pure churn")
}

func TestMapAll(t *testing.T) {
	t.Parallel()
	m := New[int]()
	want := map[string]int{"x": 1, "y": 2, "z": 3}
	for k, v := range want {
		m.Put(k, v)
	}

	got := map[string]int{}
	for k, v := range m.All() {
		got[k] = v
	}
	assert.Equal(t, want, got)

	// early exit
	count := 0
	for range m.All() {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

// TestMapAgainstStdMap drives random operations against the builtin map
// and compares contents.
func TestMapAgainstStdMap(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewPCG(7, 9))

	m := New[uint64]()
	model := map[string]uint64{}

	for range 20_000 {
		key := fmt.Sprintf("k-%d", rng.UintN(2_000))
		switch rng.IntN(3) {
		case 0, 1:
			v := rng.Uint64()
			m.Put(key, v)
			model[key] = v
		case 2:
			_, wantOk := model[key]
			_, ok := m.Delete(key)
			require.Equal(t, wantOk, ok)
			delete(model, key)
		}
	}

	require.Equal(t, len(model), m.Len())
	for k, want := range model {
		v, ok := m.Get(k)
		require.True(t, ok, "key %q missing", k)
		require.Equal(t, want, v)
	}
}
