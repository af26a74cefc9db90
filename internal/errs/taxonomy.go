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

// Package errs classifies parse and pipeline faults, decides how to recover
// from them, and accumulates them for post-run reporting. It is consulted by
// the tokenizer whenever it hits a byte sequence that doesn't fit the
// grammar; TURBO's per-worker loops do not consult it.
package errs

import "fmt"

// Kind names a category of fault, not a concrete Go error type — several
// distinct messages can share one Kind.
type Kind int

const (
	// Lexical covers invalid escapes, unterminated strings, raw control
	// bytes inside a string, and bad Unicode escapes.
	Lexical Kind = iota
	// Numeric covers malformed number literals.
	Numeric
	// Structural covers unexpected characters, depth overflow, and
	// unbalanced brackets.
	Structural
	// Literal covers misspelled true/false/null.
	Literal
	// Policy covers schema-validation failures.
	Policy
	// Resource covers allocation failure, sink write errors, and timeouts.
	// Resource faults are always fatal; see Handler.Handle.
	Resource
)

func (k Kind) String() string {
	switch k {
	case Lexical:
		return "lexical"
	case Numeric:
		return "numeric"
	case Structural:
		return "structural"
	case Literal:
		return "literal"
	case Policy:
		return "policy"
	case Resource:
		return "resource"
	default:
		return "unknown"
	}
}

// Severity is a 1..3 scale; 1 is informational (e.g. a tolerated policy
// choice), 3 is fatal.
type Severity int

const (
	SeverityWarning Severity = 1
	SeverityError   Severity = 2
	SeverityFatal   Severity = 3
)

// Context is the record pushed onto the accumulator for every fault the
// tokenizer or a pipeline stage reports.
type Context struct {
	Kind     Kind
	Offset   int
	Line     int
	Column   int
	Severity Severity
	Message  string
}

func (c Context) Error() string {
	return fmt.Sprintf("%s error at %d:%d (offset %d): %s", c.Kind, c.Line, c.Column, c.Offset, c.Message)
}

// Action names what the tokenizer should do in response to a RecoveryAction.
type Action int

const (
	// ActionContinue means keep parsing as if nothing happened (used for
	// warning-severity faults that don't require skipping any bytes).
	ActionContinue Action = iota
	// ActionSkip means advance past SkipBytes bytes and resume.
	ActionSkip
	// ActionRepair means substitute RepairData for the faulty span and
	// resume immediately after it.
	ActionRepair
	// ActionAbort means surface the fault to the caller and stop.
	ActionAbort
)

// RecoveryAction is the decision a Handler hands back to the tokenizer.
type RecoveryAction struct {
	Action     Action
	SkipBytes  int
	RepairData []byte
}
