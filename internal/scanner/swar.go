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

package scanner

import (
	"encoding/binary"

	"turbojson/internal/capabilities"
)

// Structural bytes the minifier cares about. Any byte not in one of these
// four sets is "content" and carries no classification bit.
const (
	byteLBrace   = '{'
	byteRBrace   = '}'
	byteLBracket = '['
	byteRBracket = ']'
	byteColon    = ':'
	byteComma    = ','
	byteQuote    = '"'
	byteBackslash = '\\'
	byteSpace    = ' '
	byteTab      = '\t'
	byteNewline  = '\n'
	byteCR       = '\r'
)

// repeat0101, repeat7f7f and repeat8080 are the SWAR per-lane masks: the
// lowest bit, the low seven bits, and the highest bit of every byte lane.
const (
	repeat0101 = 0x0101010101010101
	repeat7f7f = 0x7f7f7f7f7f7f7f7f
	repeat8080 = 0x8080808080808080
)

// hasEqualByte returns a mask with the high bit of lane i set wherever
// byte i of word equals b, and all other bits zero. This is the
// word-at-a-time "does any byte equal b" trick generalized to report
// which lanes matched, adapted from the scan-for-byte word loop technique
// (the same idea underlies memchr-style word scanning): XOR the target byte
// into every lane, then detect zero lanes with the exact per-lane zero test,
// whose additions never carry from one lane into the next.
func hasEqualByte(word uint64, b byte) uint64 {
	pattern := uint64(b) * repeat0101
	x := word ^ pattern
	return ^(((x & repeat7f7f) + repeat7f7f) | x) & repeat8080
}

// Classification holds the four structural bitmaps produced by Classify,
// each sized to the scanned span.
type Classification struct {
	Struct Bitmap
	Quote  Bitmap
	Escape Bitmap
	WS     Bitmap
}

// Classify scans data and marks, for every byte position, which of the four
// structural classes (if any) it belongs to. It never inspects string
// content semantically — a quote byte inside a string and a quote byte
// delimiting one look identical here; string-awareness is layered on top by
// package strstate.
func Classify(data []byte, caps capabilities.Capabilities) Classification {
	n := len(data)
	c := Classification{
		Struct: NewBitmap(n),
		Quote:  NewBitmap(n),
		Escape: NewBitmap(n),
		WS:     NewBitmap(n),
	}
	if n == 0 {
		return c
	}
	off := 0
	if caps.HasByteCompareMask {
		off = blockScanSWAR(data, &c)
	}
	blockScanScalar(data, &c, off)
	return c
}

// blockScanSWAR processes data eight bytes at a time using uint64 SWAR
// byte-equality tricks, returning the offset of the first byte it did not
// consume (always a multiple of 8, at most len(data)).
func blockScanSWAR(data []byte, c *Classification) int {
	n := len(data)
	off := 0
	for off+8 <= n {
		word := binary.LittleEndian.Uint64(data[off : off+8])

		structMask := hasEqualByte(word, byteLBrace) |
			hasEqualByte(word, byteRBrace) |
			hasEqualByte(word, byteLBracket) |
			hasEqualByte(word, byteRBracket) |
			hasEqualByte(word, byteColon) |
			hasEqualByte(word, byteComma)
		if structMask != 0 {
			c.Struct.setByteMask(off, structMask)
		}

		if quoteMask := hasEqualByte(word, byteQuote); quoteMask != 0 {
			c.Quote.setByteMask(off, quoteMask)
		}

		if escMask := hasEqualByte(word, byteBackslash); escMask != 0 {
			c.Escape.setByteMask(off, escMask)
		}

		wsMask := hasEqualByte(word, byteSpace) |
			hasEqualByte(word, byteTab) |
			hasEqualByte(word, byteNewline) |
			hasEqualByte(word, byteCR)
		if wsMask != 0 {
			c.WS.setByteMask(off, wsMask)
		}

		off += 8
	}
	return off
}

// blockScanScalar classifies data[off:] one byte at a time. It is always
// used for the tail the SWAR path can't cover (fewer than 8 remaining
// bytes), and is the sole path when the running machine reports no
// byte-compare-mask capability.
func blockScanScalar(data []byte, c *Classification, off int) {
	for i := off; i < len(data); i++ {
		switch data[i] {
		case byteLBrace, byteRBrace, byteLBracket, byteRBracket, byteColon, byteComma:
			c.Struct.Set(i)
		case byteQuote:
			c.Quote.Set(i)
		case byteBackslash:
			c.Escape.Set(i)
		case byteSpace, byteTab, byteNewline, byteCR:
			c.WS.Set(i)
		}
	}
}

// IsWhitespace reports whether b is one of the four JSON insignificant
// whitespace bytes, for callers classifying a single byte without a full
// Classification.
func IsWhitespace(b byte) bool {
	switch b {
	case byteSpace, byteTab, byteNewline, byteCR:
		return true
	default:
		return false
	}
}

// IsStructural reports whether b is one of the six JSON structural bytes.
func IsStructural(b byte) bool {
	switch b {
	case byteLBrace, byteRBrace, byteLBracket, byteRBracket, byteColon, byteComma:
		return true
	default:
		return false
	}
}
