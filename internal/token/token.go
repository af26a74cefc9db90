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

// Package token implements the structural tokenizer: a pull-based state
// machine that consumes a classified byte span (scanner + strstate) and
// emits a lazy, resumable sequence of Tokens. The transformation pipeline
// parses through it; ECO, SPORT and TURBO work on scanner and strstate
// output directly and do not tokenize.
package token

import "turbojson/internal/errs"

// Kind identifies what a Token represents.
type Kind int

const (
	ObjectStart Kind = iota
	ObjectEnd
	ArrayStart
	ArrayEnd
	Key
	String
	Number
	True
	False
	Null
	Colon
	Comma
)

func (k Kind) String() string {
	switch k {
	case ObjectStart:
		return "ObjectStart"
	case ObjectEnd:
		return "ObjectEnd"
	case ArrayStart:
		return "ArrayStart"
	case ArrayEnd:
		return "ArrayEnd"
	case Key:
		return "Key"
	case String:
		return "String"
	case Number:
		return "Number"
	case True:
		return "True"
	case False:
		return "False"
	case Null:
		return "Null"
	case Colon:
		return "Colon"
	case Comma:
		return "Comma"
	default:
		return "Unknown"
	}
}

// Token is a half-open byte range [Start, End) into the original buffer,
// tagged with a Kind and the nesting depth it was produced at. ObjectStart
// and ArrayStart carry the depth of the container they open (their children
// are one level deeper); ObjectEnd and ArrayEnd carry the depth after they
// close, matching their opening counterpart's depth.
//
// Data is nil for an ordinary token, whose bytes are read straight out of
// [Start, End) in the source buffer. A BestEffort-repaired token carries its
// synthesized replacement (e.g. "0" for a malformed number) in Data instead
// — [Start, End) still marks the malformed span it replaces, so offsets and
// error reporting stay accurate, but rendering must use Data, not the span.
type Token struct {
	Kind  Kind
	Start int
	End   int
	Depth int
	Data  []byte
}

// Bytes returns the bytes this token contributes to rendered output: Data if
// the token was BestEffort-repaired, otherwise its source span in data.
func (t Token) Bytes(data []byte) []byte {
	if t.Data != nil {
		return t.Data
	}
	return data[t.Start:t.End]
}

// ErrTrailingContent is the errs.Kind tag used for the warning-severity fault
// raised when non-whitespace bytes follow a complete top-level value.
const ErrTrailingContent = errs.Structural
