// Copyright (c) 2025 the uintn authors
// SPDX-License-Identifier: MIT

//go:build !debug

package uintn

// assertPos compiles to nothing in default builds, out of range bit
// indices are a caller contract, not a runtime checked error.
// Build with -tags debug for the checked variant.
func assertPos(pos, n uint) {}
