// Copyright (c) 2025 the uintn authors
// SPDX-License-Identifier: MIT

package uintn

import (
	"fmt"
	"math/bits"
	"strings"

	"golang.org/x/exp/constraints"
)

// Uint is an unsigned integer of a fixed bit width, stored as a short
// sequence of machine words of type W. The width is set at construction
// and never changes.
//
// The word at index 0 is the MOST significant word, the last word is the
// least significant one. This reversed order is load-bearing: the borrow
// chain of [Uint.Dec] and the window arithmetic of [Uint.ShiftLeft] both
// rely on it, don't change it.
//
// When the width is not a multiple of the word size, the most significant
// word has filler bits above the width boundary. Filler is not kept zero:
// ShiftLeft, And and Dec operate on raw words and may leave garbage there.
// Every operation that treats the value as exactly width bits (OnesCount,
// Rank, NextSet, String, Equal) masks the filler out explicitly.
//
// The zero value has no width and no storage and is not usable,
// construct with [MustNew], [FromWords] or [FromWord].
type Uint[W constraints.Unsigned] struct {
	n     uint // logical width in bits
	words []W  // fixed length, most significant word first
}

// wordSize returns the size of W in bits.
func wordSize[W constraints.Unsigned]() uint {
	return uint(bits.Len64(uint64(^W(0))))
}

// wordsNeeded calculates the number of words of type W needed for n bits.
func wordsNeeded[W constraints.Unsigned](n uint) int {
	s := wordSize[W]()
	return int((n + s - 1) / s)
}

// MustNew returns a zero value of n bits. It panics if n is 0 by
// intention, a zero width integer is a programming error.
func MustNew[W constraints.Unsigned](n uint) Uint[W] {
	if n == 0 {
		panic("uintn: bit width must not be 0")
	}
	return Uint[W]{n: n, words: make([]W, wordsNeeded[W](n))}
}

// FromWords returns a value of n bits assembled from exactly
// wordsNeeded(n) words, most significant word first. It panics if the
// word count doesn't match. No filler masking is performed, the caller
// must not smuggle in bits above the width boundary unless it means to.
func FromWords[W constraints.Unsigned](n uint, words ...W) Uint[W] {
	x := MustNew[W](n)
	if len(words) != len(x.words) {
		panic(fmt.Sprintf("uintn: got %d words, want %d for width %d", len(words), len(x.words), n))
	}
	copy(x.words, words)
	return x
}

// FromWord returns a value of n bits with all words zero except the least
// significant one, which is set to w. Only meaningful if w fits into the
// bits available in the least significant word, no range check is done.
func FromWord[W constraints.Unsigned](n uint, w W) Uint[W] {
	x := MustNew[W](n)
	x.words[len(x.words)-1] = w
	return x
}

// Clone returns a deep copy with its own word storage.
func (x Uint[W]) Clone() Uint[W] {
	c := Uint[W]{n: x.n, words: make([]W, len(x.words))}
	copy(c.words, x.words)
	return c
}

// BitLen returns the fixed logical width in bits.
func (x Uint[W]) BitLen() uint {
	return x.n
}

// Words returns the backing words, most significant word first.
// It is not a copy, changes to the returned slice change x.
func (x Uint[W]) Words() []W {
	return x.words
}

// topMask masks the meaningful low bits of the most significant word,
// all ones if the width is a multiple of the word size.
func (x Uint[W]) topMask() W {
	if top := x.n % wordSize[W](); top != 0 {
		return W(1)<<top - 1
	}
	return ^W(0)
}

// ShiftLeft shifts x left by k bits in place. Bits falling off the top
// are discarded, vacated low bits are zero.
//
// Each destination word is assembled from a window of two source words:
// the word k/S positions to the right shifted up, or'ed with the
// overflow from the word one further right. The in-word shift amount of
// zero is special-cased, the overflow contribution would otherwise be a
// full word-size right shift.
func (x *Uint[W]) ShiftLeft(k uint) {
	s := wordSize[W]()
	whole := int(k / s)
	shift := k % s

	w := x.words
	for i := range w {
		// the window moves left to right, sources are never
		// already overwritten destinations
		src := i + whole
		if src >= len(w) {
			w[i] = 0
			continue
		}
		w[i] = w[src] << shift

		if src+1 < len(w) && shift != 0 {
			w[i] |= w[src+1] >> (s - shift)
		}
	}
}

// Shl returns a copy of x shifted left by k bits, see [Uint.ShiftLeft].
func (x Uint[W]) Shl(k uint) Uint[W] {
	c := x.Clone()
	c.ShiftLeft(k)
	return c
}

// AndAssign sets x to the bitwise AND of x and y in place.
// It panics if the widths differ. No filler masking is needed,
// AND can't introduce new set bits.
func (x *Uint[W]) AndAssign(y Uint[W]) {
	if x.n != y.n {
		panic(fmt.Sprintf("uintn: width mismatch, %d != %d", x.n, y.n))
	}
	for i, w := range y.words {
		x.words[i] &= w
	}
}

// And returns the bitwise AND of x and y, see [Uint.AndAssign].
func (x Uint[W]) And(y Uint[W]) Uint[W] {
	c := x.Clone()
	c.AndAssign(y)
	return c
}

// Dec decrements x by one in place, with unsigned wraparound semantics:
// zero wraps to all bits set, filler included.
//
// The borrow runs from the least to the most significant word and stops
// at the first word whose decrement did not wrap, only a zero word
// borrows from its left neighbor.
func (x *Uint[W]) Dec() {
	w := x.words
	for i := len(w) - 1; i >= 0; i-- {
		w[i]--
		if w[i] != ^W(0) {
			break
		}
	}
}

// OnesCount returns the number of set bits among exactly the logical
// width bits, filler excluded.
func (x Uint[W]) OnesCount() int {
	cnt := bits.OnesCount64(uint64(x.words[0] & x.topMask()))
	for _, w := range x.words[1:] {
		cnt += bits.OnesCount64(uint64(w))
	}
	return cnt
}

// IsZero reports whether no logical bit is set, filler excluded.
func (x Uint[W]) IsZero() bool {
	if x.words[0]&x.topMask() != 0 {
		return false
	}
	for _, w := range x.words[1:] {
		if w != 0 {
			return false
		}
	}
	return true
}

// Equal reports whether x and y have the same width and the same logical
// bit pattern. Filler bits are ignored, two values that differ only in
// filler are equal.
func (x Uint[W]) Equal(y Uint[W]) bool {
	if x.n != y.n {
		return false
	}
	if (x.words[0]^y.words[0])&x.topMask() != 0 {
		return false
	}
	for i := 1; i < len(x.words); i++ {
		if x.words[i] != y.words[i] {
			return false
		}
	}
	return true
}

// Test reports whether bit pos is set. pos is a logical bit index, the
// least significant bit is 0. pos must be below the width, checked only
// in debug builds.
func (x Uint[W]) Test(pos uint) bool {
	assertPos(pos, x.n)
	s := wordSize[W]()
	return x.words[len(x.words)-1-int(pos/s)]&(W(1)<<(pos%s)) != 0
}

// Set sets bit pos to 1, no other bit changes. pos must be below the
// width, checked only in debug builds.
func (x *Uint[W]) Set(pos uint) {
	assertPos(pos, x.n)
	s := wordSize[W]()
	x.words[len(x.words)-1-int(pos/s)] |= W(1) << (pos % s)
}

// Unset clears bit pos to 0, no other bit changes. pos must be below the
// width, checked only in debug builds.
func (x *Uint[W]) Unset(pos uint) {
	assertPos(pos, x.n)
	s := wordSize[W]()
	x.words[len(x.words)-1-int(pos/s)] &^= W(1) << (pos % s)
}

// Rank returns the number of set bits at or below pos, filler excluded.
// pos must be below the width, checked only in debug builds.
func (x Uint[W]) Rank(pos uint) int {
	assertPos(pos, x.n)
	s := wordSize[W]()
	wIdx := len(x.words) - 1 - int(pos/s)

	// W(1)<<s is 0 in Go, the mask is all ones when pos is the top
	// bit of its word
	mask := W(1)<<(pos%s+1) - 1

	cnt := bits.OnesCount64(uint64(x.words[wIdx] & mask))
	for _, w := range x.words[wIdx+1:] {
		cnt += bits.OnesCount64(uint64(w))
	}
	return cnt
}

// NextSet returns the next set logical bit at or above pos, including
// possibly pos itself, along with an ok code. Filler never matches.
func (x Uint[W]) NextSet(pos uint) (uint, bool) {
	if pos >= x.n {
		return 0, false
	}
	s := wordSize[W]()
	wIdx := len(x.words) - 1 - int(pos/s)

	// first, maybe partial word
	word := x.words[wIdx]
	if wIdx == 0 {
		word &= x.topMask()
	}
	if word >>= pos % s; word != 0 {
		return pos + uint(bits.TrailingZeros64(uint64(word))), true
	}

	// remaining words, right to left
	base := (pos/s + 1) * s
	for i := wIdx - 1; i >= 0; i-- {
		word := x.words[i]
		if i == 0 {
			word &= x.topMask()
		}
		if word != 0 {
			return base + uint(bits.TrailingZeros64(uint64(word))), true
		}
		base += s
	}
	return 0, false
}

// String renders x as exactly width binary digits, most significant bit
// first, with a ' between word boundaries. Filler is never rendered.
func (x Uint[W]) String() string {
	s := wordSize[W]()
	top := x.n % s
	if top == 0 {
		top = s
	}

	var sb strings.Builder
	sb.Grow(int(x.n) + len(x.words) - 1)

	writeBinary(&sb, uint64(x.words[0]&x.topMask()), top)
	for _, w := range x.words[1:] {
		sb.WriteByte('\'')
		writeBinary(&sb, uint64(w), s)
	}
	return sb.String()
}

func writeBinary(sb *strings.Builder, w uint64, digits uint) {
	for i := int(digits) - 1; i >= 0; i-- {
		sb.WriteByte('0' + byte(w>>uint(i)&1))
	}
}
