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

package token

import "turbojson/internal/errs"

// scanString consumes the quoted run starting at s.pos (guaranteed to be a
// '"' byte) using the precomputed in-string bitmap, reclassifying the
// resulting token to Key when it is immediately followed (ignoring
// whitespace) by a colon.
func (s *Stream) scanString() (Token, scanAction, bool) {
	start := s.pos
	data := s.data
	n := len(data)

	j := start
	for j < n && s.inStr.Get(j) {
		j++
	}
	terminated := j > start && j <= n && j-1 < n && s.cls.Quote.Get(j-1) && j-1 != start
	if !terminated {
		return s.fault(errs.Lexical, start, start, n, String)
	}
	end := j

	for k := start + 1; k < end-1; k++ {
		if data[k] < 0x20 && !s.cls.Escape.Get(k) {
			if abort := s.reportFault(errs.Lexical, k); abort {
				return Token{}, scanAbort, false
			}
			break
		}
	}

	kind := String
	peek := end
	for peek < n && !s.inStr.Get(peek) && s.cls.WS.Get(peek) {
		peek++
	}
	if peek < n && data[peek] == ':' {
		kind = Key
	}

	tok := Token{Kind: kind, Start: start, End: end, Depth: s.depth}
	s.pos = end
	return tok, scanOK, false
}

// scanStructural consumes exactly one of { } [ ] : , tracking the bracket
// stack and current nesting depth.
func (s *Stream) scanStructural(b byte) (Token, scanAction, bool) {
	startDepth := s.depth
	switch b {
	case '{', '[':
		want := ObjectStart
		if b == '[' {
			want = ArrayStart
		}
		if s.depth+1 > s.maxDepth {
			return s.fault(errs.Structural, s.pos, s.pos, s.pos+1, Null)
		}
		tok := Token{Kind: want, Start: s.pos, End: s.pos + 1, Depth: startDepth}
		s.stack = append(s.stack, want)
		s.depth++
		s.pos++
		return tok, scanOK, false
	case '}', ']':
		want := ObjectStart
		kind := ObjectEnd
		if b == ']' {
			want = ArrayStart
			kind = ArrayEnd
		}
		if len(s.stack) == 0 || s.stack[len(s.stack)-1] != want {
			return s.fault(errs.Structural, s.pos, s.pos, s.pos+1, Null)
		}
		s.stack = s.stack[:len(s.stack)-1]
		s.depth--
		tok := Token{Kind: kind, Start: s.pos, End: s.pos + 1, Depth: s.depth}
		s.pos++
		return tok, scanOK, false
	case ':':
		tok := Token{Kind: Colon, Start: s.pos, End: s.pos + 1, Depth: s.depth}
		s.pos++
		return tok, scanOK, false
	default: // ','
		tok := Token{Kind: Comma, Start: s.pos, End: s.pos + 1, Depth: s.depth}
		s.pos++
		return tok, scanOK, false
	}
}

// scanLiteral matches an exact literal (true/false/null) at s.pos.
func (s *Stream) scanLiteral(lit string, kind Kind) (Token, scanAction, bool) {
	start := s.pos
	data := s.data
	end := start + len(lit)
	if end <= len(data) && string(data[start:end]) == lit {
		tok := Token{Kind: kind, Start: start, End: end, Depth: s.depth}
		s.pos = end
		return tok, scanOK, false
	}
	faultEnd := start
	for faultEnd < len(data) && isLetter(data[faultEnd]) {
		faultEnd++
	}
	if faultEnd == start {
		faultEnd = start + 1
	}
	return s.fault(errs.Literal, start, start, faultEnd, Null)
}

// scanNumber matches the longest valid JSON number prefix at s.pos. A
// malformed numeric-looking run (e.g. a second decimal point) is reported
// as a single Numeric fault spanning the whole run, with the fault offset
// at the first byte that breaks the grammar.
func (s *Stream) scanNumber() (Token, scanAction, bool) {
	start := s.pos
	data := s.data
	n := len(data)
	i := start

	if i < n && data[i] == '-' {
		i++
	}
	digitsStart := i
	switch {
	case i < n && data[i] == '0':
		i++
	case i < n && isDigit(data[i]):
		i++
		for i < n && isDigit(data[i]) {
			i++
		}
	default:
		return s.fault(errs.Numeric, digitsStart, start, s.numericRunEnd(start), Number)
	}

	if i < n && data[i] == '.' {
		dotPos := i
		i++
		fracStart := i
		for i < n && isDigit(data[i]) {
			i++
		}
		if i == fracStart {
			return s.fault(errs.Numeric, dotPos, start, s.numericRunEnd(start), Number)
		}
	}

	if i < n && (data[i] == 'e' || data[i] == 'E') {
		ePos := i
		i++
		if i < n && (data[i] == '+' || data[i] == '-') {
			i++
		}
		expStart := i
		for i < n && isDigit(data[i]) {
			i++
		}
		if i == expStart {
			return s.fault(errs.Numeric, ePos, start, s.numericRunEnd(start), Number)
		}
	}

	if i < n && (data[i] == '.' || isDigit(data[i])) {
		return s.fault(errs.Numeric, i, start, s.numericRunEnd(start), Number)
	}

	tok := Token{Kind: Number, Start: start, End: i, Depth: s.depth}
	s.pos = i
	return tok, scanOK, false
}

// numericRunEnd returns the end of the contiguous run of number-like bytes
// starting at start — the full extent a BestEffort repair consumes even
// though only a prefix of it matches the number grammar.
func (s *Stream) numericRunEnd(start int) int {
	data := s.data
	n := len(data)
	i := start
	for i < n {
		switch data[i] {
		case '-', '+', '.', 'e', 'E':
			i++
		default:
			if isDigit(data[i]) {
				i++
				continue
			}
			return i
		}
	}
	return i
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isLetter(b byte) bool { return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' }
