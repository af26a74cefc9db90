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

// Package strstate layers string-boundary awareness on top of the raw
// structural classification scanner produces. It turns a flat stream of
// quote/escape bits into a running "am I inside a string literal right now"
// bit, carrying the two pieces of state (in-string, escape-pending) a caller
// needs to resume the computation at an arbitrary byte offset — exactly the
// carry TURBO's chunk boundaries require.
package strstate

import "turbojson/internal/scanner"

// Carry is the state that must cross a chunk boundary for string tracking to
// be resumable: whether the previous byte left us inside a string literal,
// and whether a trailing odd-length run of backslashes left the next byte
// pre-escaped.
type Carry struct {
	InString bool
	Escaped  bool
}

// Run walks data applying cls (the structural classification of the same
// span) and returns a bitmap marking every byte that lies inside a string
// literal — including both its delimiting quote bytes — plus the Carry a
// subsequent call covering the next chunk should pass back in as its carry
// parameter.
//
// An unescaped quote toggles the in-string state and is itself always
// marked true (it belongs to the string token it opens or closes). A
// backslash only has escaping effect while inside a string; one immediately
// following an odd-length backslash run is marked consistently with
// whatever state it appears in, same as any other content byte.
func Run(data []byte, cls scanner.Classification, carry Carry) (scanner.Bitmap, Carry) {
	n := len(data)
	inString := scanner.NewBitmap(n)
	cur := carry.InString
	escapedPending := carry.Escaped

	for i := 0; i < n; i++ {
		switch {
		case escapedPending:
			escapedPending = false
		case cls.Quote.Get(i):
			cur = !cur
			inString.Set(i)
			continue
		case cls.Escape.Get(i):
			if cur {
				escapedPending = true
			}
		}
		if cur {
			inString.Set(i)
		}
	}
	return inString, Carry{InString: cur, Escaped: escapedPending}
}
