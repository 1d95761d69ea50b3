// Copyright (c) 2025 the uintn authors
// SPDX-License-Identifier: MIT

//go:build debug

package uintn

import "fmt"

// assertPos panics on out of range bit indices, compiled in with
// -tags debug only.
func assertPos(pos, n uint) {
	if pos >= n {
		panic(fmt.Sprintf("uintn: bit index %d out of range [0, %d)", pos, n))
	}
}
