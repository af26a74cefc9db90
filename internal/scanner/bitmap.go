// Copyright 2025 Esteban Alvarez. All Rights Reserved.
//
// Created: October 2025
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package scanner implements the structural byte classifier: given a byte
// span it produces bitmaps marking structural bytes, quotes, escapes, and
// whitespace, without interpreting any byte (string-boundary knowledge is
// layered on top, in package strstate).
package scanner

import "math/bits"

// Bitmap is a dense one-bit-per-byte-position bitset sized to an input span.
type Bitmap struct {
	words []uint64
	n     int
}

// NewBitmap allocates a Bitmap covering n positions, all initially clear.
func NewBitmap(n int) Bitmap {
	return Bitmap{words: make([]uint64, (n+63)/64), n: n}
}

// Len returns the number of positions the Bitmap covers.
func (b Bitmap) Len() int { return b.n }

// Set marks position i.
func (b Bitmap) Set(i int) {
	b.words[i/64] |= 1 << uint(i%64)
}

// Get reports whether position i is marked.
func (b Bitmap) Get(i int) bool {
	return b.words[i/64]&(1<<uint(i%64)) != 0
}

// setByteMask ORs an 8-bit-per-lane SWAR match mask (as produced by
// hasEqualByte, one MSB per byte lane) into the bitmap starting at byte
// offset off.
func (b Bitmap) setByteMask(off int, mask uint64) {
	for mask != 0 {
		lane := bits.TrailingZeros64(mask) / 8
		b.Set(off + lane)
		mask &^= 0xff << uint(lane*8)
	}
}

// PopCount returns the number of set bits.
func (b Bitmap) PopCount() int {
	n := 0
	for _, w := range b.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Words exposes the backing word slice, read-only by convention, for
// packages (strstate) that need to run their own bitwise operations across
// whole words rather than bit-by-bit.
func (b Bitmap) Words() []uint64 { return b.words }
