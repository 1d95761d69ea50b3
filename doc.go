// Copyright (c) 2025 the uintn authors
// SPDX-License-Identifier: MIT

// Package uintn provides a fixed-width unsigned integer, a bit-vector of
// a width chosen at construction, packed into a short fixed-length
// sequence of machine words.
//
// The type is built for compact presence bitmaps and child-existence
// maps inside latency-sensitive containers: no storage growth after
// construction, no dynamic resizing, no internal synchronization. It
// supports left shift, bitwise AND, decrement with borrow, population
// count, rank, and single-bit test/set/unset by logical index.
//
// It is deliberately not an arbitrary-precision integer: there is no
// addition, multiplication or division, and the width never changes.
//
// Widths that don't divide evenly into words leave filler bits in the
// most significant word. Mutating operations don't normalize the filler,
// only the width-aware readers (OnesCount, Rank, NextSet, String, Equal)
// mask it out. This keeps the mutation hot paths branch-free at the cost
// of a sharp edge: raw word access via Words sees the garbage. Whether
// normalizing on every write would be safer without measurable cost is
// an open question; the masking boundary is kept as is for behavior
// compatibility with existing consumers.
//
// Out of range bit indices are a caller contract. Builds with the debug
// tag compile checked variants that panic with a diagnostic, default
// builds compile the checks away entirely.
package uintn
