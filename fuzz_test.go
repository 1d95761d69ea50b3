// Copyright (c) 2025 the uintn authors
// SPDX-License-Identifier: MIT

package uintn_test

import (
	"math/big"
	"testing"

	"github.com/widebits/uintn"
)

// FuzzWidth10 cross-checks shift, decrement and popcount on a 10 bit
// value over 8 bit words against a big.Int reference.
func FuzzWidth10(f *testing.F) {
	f.Add(uint8(0), uint8(0b10101001), uint8(3))
	f.Add(uint8(1), uint8(1), uint8(0))
	f.Add(uint8(0b11), uint8(0xff), uint8(10))

	f.Fuzz(func(t *testing.T, hi, lo, k uint8) {
		const n = 10
		mod := new(big.Int).Lsh(big.NewInt(1), n)
		mask := new(big.Int).Sub(mod, big.NewInt(1))

		x := uintn.FromWords[uint8](n, hi, lo)
		expected := big.NewInt(int64(hi)<<8 | int64(lo))
		expected.And(expected, mask)

		x.ShiftLeft(uint(k))
		expected.Lsh(expected, uint(k))
		expected.And(expected, mask)

		x.Dec()
		expected.Sub(expected, big.NewInt(1))
		if expected.Sign() < 0 {
			expected.Add(expected, mod)
		}

		for i := uint(0); i < n; i++ {
			if got, want := x.Test(i), expected.Bit(int(i)) == 1; got != want {
				t.Fatalf("hi=%#b lo=%#b k=%d: Test(%d) = %v, want %v", hi, lo, k, i, got, want)
			}
		}

		popcount := 0
		for i := 0; i < n; i++ {
			if expected.Bit(i) == 1 {
				popcount++
			}
		}
		if got := x.OnesCount(); got != popcount {
			t.Fatalf("hi=%#b lo=%#b k=%d: OnesCount() = %d, want %d", hi, lo, k, got, popcount)
		}
	})
}
