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

import (
	"turbojson/internal/capabilities"
	"turbojson/internal/errs"
	"turbojson/internal/scanner"
	"turbojson/internal/strstate"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// Stream is a resumable, pull-based tokenizer over one input buffer. Tokens
// are produced on demand by Next and also retained internally so Token(i)
// and Count() can answer without re-scanning.
type Stream struct {
	data []byte
	cls  scanner.Classification
	inStr scanner.Bitmap

	pos      int
	depth    int
	stack    []Kind // open ObjectStart/ArrayStart awaiting their close
	maxDepth int
	handler  *errs.Handler

	tokens []Token
	done   bool
	err    *errs.Context

	sawAnyToken bool
}

// New builds a Stream over data, applying opts. The BOM, if present, is
// stripped from the head and not visible in any Token's byte range (all
// offsets are relative to the BOM-stripped data).
func New(data []byte, opts Options) *Stream {
	opts = opts.withDefaults()
	if len(data) >= 3 && data[0] == bom[0] && data[1] == bom[1] && data[2] == bom[2] {
		data = data[3:]
	}
	caps := capabilities.Detect()
	cls := scanner.Classify(data, caps)
	inStr, _ := strstate.Run(data, cls, strstate.Carry{})
	return &Stream{
		data:     data,
		cls:      cls,
		inStr:    inStr,
		maxDepth: opts.MaxDepth,
		handler:  opts.Handler,
	}
}

// Err returns the fatal fault that stopped the stream, if Next stopped
// early because of one. A stream that reached EOF cleanly returns nil.
func (s *Stream) Err() *errs.Context { return s.err }

// Count returns the number of tokens produced so far (Next may still have
// more to produce).
func (s *Stream) Count() int { return len(s.tokens) }

// Token returns the token previously produced at index i. Accessing an
// index that hasn't been produced yet (i < 0 or i >= Count()) is a
// precondition violation, not a recoverable error: it panics, same as an
// out-of-range slice index.
func (s *Stream) Token(i int) Token {
	return s.tokens[i]
}

// Next produces and returns the next token, or ok=false once the stream is
// exhausted (clean EOF or a fatal fault — check Err to distinguish).
func (s *Stream) Next() (Token, bool) {
	if s.done {
		return Token{}, false
	}
	for {
		s.skipWhitespaceOutsideString()
		if s.pos >= len(s.data) {
			s.done = true
			return Token{}, false
		}
		if s.depth == 0 && s.sawAnyToken {
			return s.trailingContent()
		}
		tok, action, retry := s.scanOne()
		switch action {
		case scanOK:
			s.sawAnyToken = true
			s.tokens = append(s.tokens, tok)
			return tok, true
		case scanRetry:
			if retry {
				continue
			}
			s.done = true
			return Token{}, false
		case scanAbort:
			s.done = true
			return Token{}, false
		}
	}
}

type scanAction int

const (
	scanOK scanAction = iota
	scanRetry
	scanAbort
)

// skipWhitespaceOutsideString advances pos past any run of insignificant
// whitespace. It never advances inside a string: inStr bytes are passed
// through the string-token scan instead.
func (s *Stream) skipWhitespaceOutsideString() {
	for s.pos < len(s.data) && !s.inStr.Get(s.pos) && s.cls.WS.Get(s.pos) {
		s.pos++
	}
}

// scanOne attempts to produce exactly one token starting at s.pos (which is
// guaranteed not to be whitespace and not past the end). It returns the
// token plus a scanAction: scanOK means tok is valid and pos has been
// advanced past it; scanRetry means the caller should loop again (either
// immediately, or return false if retry is false, meaning the stream ended
// because of an aborted fault); scanAbort means a fatal fault stopped the
// stream.
func (s *Stream) scanOne() (Token, scanAction, bool) {
	b := s.data[s.pos]
	switch {
	case b == '"':
		return s.scanString()
	case scanner.IsStructural(b):
		return s.scanStructural(b)
	case b == 't':
		return s.scanLiteral("true", True)
	case b == 'f':
		return s.scanLiteral("false", False)
	case b == 'n':
		return s.scanLiteral("null", Null)
	case b == '-' || (b >= '0' && b <= '9'):
		return s.scanNumber()
	default:
		return s.fault(errs.Structural, s.pos, s.pos, s.pos+1, Null)
	}
}

// fault builds an ErrorContext at offset, asks the handler what to do, and
// translates the RecoveryAction into a scanOne-style result. spanStart and
// faultEnd delimit the full malformed span (e.g. an entire malformed
// numeric run); on ActionRepair the replacement token's [Start, End) still
// marks that span — offset itself may point partway into it (e.g. the
// second '.' of a malformed number), which is what the ErrorContext reports
// — but its Data field carries the actual replacement bytes a renderer must
// emit in the span's place. repairKind is the Kind the replacement token
// carries.
func (s *Stream) fault(kind errs.Kind, offset, spanStart, faultEnd int, repairKind Kind) (Token, scanAction, bool) {
	line, col := lineCol(s.data, offset)
	ctx := errs.Context{Kind: kind, Offset: offset, Line: line, Column: col, Severity: errs.SeverityError, Message: faultMessage(kind)}
	action := s.handler.Handle(ctx)
	switch action.Action {
	case errs.ActionAbort:
		s.err = &ctx
		return Token{}, scanAbort, false
	case errs.ActionRepair:
		if len(action.RepairData) == 0 {
			s.pos = faultEnd
			return Token{}, scanRetry, true
		}
		repair := make([]byte, len(action.RepairData))
		copy(repair, action.RepairData)
		tok := Token{Kind: repairKind, Start: spanStart, End: faultEnd, Depth: s.depth, Data: repair}
		s.pos = faultEnd
		return tok, scanOK, false
	case errs.ActionContinue:
		s.pos = faultEnd
		return Token{}, scanRetry, true
	case errs.ActionSkip:
		fallthrough
	default:
		skip := action.SkipBytes
		if skip <= 0 {
			skip = 1
		}
		s.pos += skip
		return Token{}, scanRetry, true
	}
}

func faultMessage(kind errs.Kind) string {
	switch kind {
	case errs.Numeric:
		return "malformed number"
	case errs.Lexical:
		return "invalid string content"
	case errs.Literal:
		return "misspelled literal"
	case errs.Structural:
		return "structural fault"
	default:
		return kind.String() + " fault"
	}
}

// trailingContent handles non-whitespace bytes found after a complete
// top-level value closes. It is a warning-severity fault by default
// (tolerated, stream ends cleanly); an Abort strategy surfaces it as the
// stream's terminal error instead.
func (s *Stream) trailingContent() (Token, bool) {
	line, col := lineCol(s.data, s.pos)
	ctx := errs.Context{
		Kind:     ErrTrailingContent,
		Offset:   s.pos,
		Line:     line,
		Column:   col,
		Severity: errs.SeverityWarning,
		Message:  "trailing content after top-level value",
	}
	action := s.handler.Handle(ctx)
	s.done = true
	if action.Action == errs.ActionAbort {
		s.err = &ctx
	}
	return Token{}, false
}

// reportFault records a fault that cannot sensibly change the token
// currently being scanned (e.g. a raw control byte found inside a string,
// whose bytes must still pass through verbatim per the string-preservation
// invariant). It returns true if the configured strategy demands the whole
// stream abort.
func (s *Stream) reportFault(kind errs.Kind, offset int) bool {
	line, col := lineCol(s.data, offset)
	ctx := errs.Context{Kind: kind, Offset: offset, Line: line, Column: col, Severity: errs.SeverityError, Message: faultMessage(kind)}
	action := s.handler.Handle(ctx)
	if action.Action == errs.ActionAbort {
		s.err = &ctx
		return true
	}
	return false
}

func lineCol(data []byte, offset int) (line, col int) {
	line, col = 1, 1
	for i := 0; i < offset && i < len(data); i++ {
		if data[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return
}
