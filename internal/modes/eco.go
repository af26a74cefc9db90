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

// Package modes implements the two single-threaded minifiers: ECO (bounded
// -memory streaming) and SPORT (single-pass buffered). Both strip
// insignificant whitespace outside strings and pass every other byte
// through unchanged; neither materializes a token stream — they work
// directly off the structural scanner and the string-state tracker, the
// same two leaves TURBO's per-chunk workers use.
package modes

import (
	"bufio"
	"io"

	"turbojson/internal/capabilities"
	"turbojson/internal/scanner"
	"turbojson/internal/sinks"
	"turbojson/internal/strstate"
)

// DefaultWindowSize is ECO's default read window: 64 KiB.
const DefaultWindowSize = 64 * 1024

var bomBytes = [3]byte{0xEF, 0xBB, 0xBF}

// ECO streams r through the minifier in fixed-size windows, writing
// surviving bytes to sink as each window completes. Its only retained
// state between windows is the strstate.Carry pair (in_string,
// escape_pending) plus the small read buffer itself — memory use is
// O(windowSize), independent of the total input length.
func ECO(r io.Reader, sink sinks.Sink, windowSize int) error {
	if windowSize <= 0 {
		windowSize = DefaultWindowSize
	}
	br := bufio.NewReaderSize(r, windowSize)
	if err := stripLeadingBOM(br); err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return err
	}

	caps := capabilities.Detect()
	buf := make([]byte, windowSize)
	var carry strstate.Carry

	for {
		n, rerr := br.Read(buf)
		if n > 0 {
			window := buf[:n]
			cls := scanner.Classify(window, caps)
			inStr, nextCarry := strstate.Run(window, cls, carry)
			out := stripWhitespace(window, cls, inStr)
			if _, werr := sink.Write(out); werr != nil {
				return werr
			}
			carry = nextCarry
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return rerr
		}
	}
	return sink.Finish()
}

// stripLeadingBOM discards a UTF-8 byte-order mark from the head of br, if
// present, without disturbing anything after it.
func stripLeadingBOM(br *bufio.Reader) error {
	head, err := br.Peek(3)
	if err != nil {
		return err
	}
	if len(head) == 3 && head[0] == bomBytes[0] && head[1] == bomBytes[1] && head[2] == bomBytes[2] {
		_, err := br.Discard(3)
		return err
	}
	return nil
}

// stripWhitespace returns the subset of data that survives minification:
// every byte that is inside a string, or is not whitespace, in that order
// of precedence (a whitespace byte inside a string is string content and
// is always kept).
func stripWhitespace(data []byte, cls scanner.Classification, inStr scanner.Bitmap) []byte {
	out := make([]byte, 0, len(data))
	for i, b := range data {
		if inStr.Get(i) || !cls.WS.Get(i) {
			out = append(out, b)
		}
	}
	return out
}
