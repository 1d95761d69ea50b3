// Copyright (c) 2025 the uintn authors
// SPDX-License-Identifier: MIT

// Package burst implements a burst trie mapping byte strings to values.
//
// Keys are consumed one byte at a time. Internal nodes keep their
// children in a popcount-compressed sparse array keyed by the next
// byte, a compact child-existence map over the 256 symbol alphabet.
// Leaves are flat hash table buckets holding the remaining key
// suffixes. A bucket that outgrows the burst limit bursts into an
// internal node, redistributing its suffixes by their first byte.
//
// The trie only ever grows structurally: deleting entries empties
// buckets but never collapses internal nodes back into buckets.
package burst

import (
	"iter"

	"github.com/widebits/uintn/internal/sparse"
	"github.com/widebits/uintn/internal/strhash"
)

// alphabet is the child key universe of an internal node.
const alphabet = 256

// burstLimit is the bucket size that triggers a burst.
const burstLimit = 32

// Trie maps string keys to values of type V.
// The zero value is not ready for use, see [New].
type Trie[V any] struct {
	root *node[V]
	size int
}

// A node is either a container (bucket != nil, no children) or an
// internal node (children != nil, no bucket). Internal nodes carry the
// value for the key that ends exactly at the node, the empty suffix has
// no byte to descend on.
type node[V any] struct {
	children *sparse.Array[*node[V]]
	bucket   *strhash.Map[V]

	val    V
	hasVal bool
}

func newContainer[V any]() *node[V] {
	return &node[V]{bucket: strhash.New[V]()}
}

// New returns an empty trie.
func New[V any]() *Trie[V] {
	return &Trie[V]{root: newContainer[V]()}
}

// Len returns the number of entries.
func (t *Trie[V]) Len() int {
	return t.size
}

// Get returns the value for key and true if present.
func (t *Trie[V]) Get(key string) (value V, ok bool) {
	n := t.root
	for {
		if n.bucket != nil {
			return n.bucket.Get(key)
		}
		if key == "" {
			return n.val, n.hasVal
		}
		child, ok := n.children.Get(uint(key[0]))
		if !ok {
			return value, false
		}
		n, key = child, key[1:]
	}
}

// Put inserts or replaces the value for key.
func (t *Trie[V]) Put(key string, value V) {
	n := t.root
	for {
		if n.bucket != nil {
			if !n.bucket.Put(key, value) {
				t.size++
			}
			if n.bucket.Len() > burstLimit {
				n.burst()
			}
			return
		}
		if key == "" {
			if !n.hasVal {
				t.size++
			}
			n.val, n.hasVal = value, true
			return
		}
		child, ok := n.children.Get(uint(key[0]))
		if !ok {
			child = newContainer[V]()
			n.children.InsertAt(uint(key[0]), child)
		}
		n, key = child, key[1:]
	}
}

// Delete removes key, returning its value and true if it was present.
// Bucket space and burst nodes are not reclaimed.
func (t *Trie[V]) Delete(key string) (value V, ok bool) {
	n := t.root
	for {
		if n.bucket != nil {
			if value, ok = n.bucket.Delete(key); ok {
				t.size--
			}
			return value, ok
		}
		if key == "" {
			if !n.hasVal {
				return value, false
			}
			value, n.hasVal = n.val, false

			var zero V
			n.val = zero // don't leak
			t.size--
			return value, true
		}
		child, ok := n.children.Get(uint(key[0]))
		if !ok {
			return value, false
		}
		n, key = child, key[1:]
	}
}

// All returns an iterator over all entries. Keys below internal nodes
// come out in byte order, entries within a single bucket in no
// particular order.
func (t *Trie[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		t.root.walk("", yield)
	}
}

func (n *node[V]) walk(prefix string, yield func(string, V) bool) bool {
	if n.bucket != nil {
		for k, v := range n.bucket.All() {
			if !yield(prefix+k, v) {
				return false
			}
		}
		return true
	}

	if n.hasVal && !yield(prefix, n.val) {
		return false
	}

	for b, child := range n.children.All() {
		if !child.walk(prefix+string(byte(b)), yield) {
			return false
		}
	}
	return true
}

// burst turns a container into an internal node, redistributing the
// bucket entries into per-byte child containers. A child that ends up
// over the limit itself, all suffixes sharing their first byte, bursts
// in turn.
func (n *node[V]) burst() {
	bucket := n.bucket
	n.bucket = nil
	n.children = sparse.New[*node[V]](alphabet)

	for k, v := range bucket.All() {
		if k == "" {
			n.val, n.hasVal = v, true
			continue
		}
		child, ok := n.children.Get(uint(k[0]))
		if !ok {
			child = newContainer[V]()
			n.children.InsertAt(uint(k[0]), child)
		}
		child.bucket.Put(k[1:], v)
	}

	for _, child := range n.children.All() {
		if child.bucket.Len() > burstLimit {
			child.burst()
		}
	}
}
