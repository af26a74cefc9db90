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

package pipeline

import (
	"turbojson/internal/errs"
	"turbojson/internal/token"
)

// ValidateFunc is a caller-supplied schema check invoked once per token in
// stream order. A non-nil return records a Policy fault at that token's
// offset. Schema-validation details beyond this consumer interface are
// deliberately out of scope (see DESIGN.md's Open Question #3) — callers
// wanting real schema enforcement plug it in here.
type ValidateFunc func(tok token.Token, data []byte) error

// ValidateConfig configures a Validate-kind Transformation.
type ValidateConfig struct {
	// Strict aborts the whole run on the first validation error; otherwise
	// errors accumulate in the Handler and the run continues.
	Strict bool
	// Check is the schema hook. If nil, a minimal structural default runs
	// instead: duplicate object keys at the same nesting level are flagged,
	// the one schema concern every JSON consumer cares about without a full
	// schema language.
	Check ValidateFunc
}

// runValidate walks toks in order, consuming them without modification
// (tokens are never mutated or dropped by a Validate transformation; only
// Filter and Custom transformations affect what gets rendered). It returns
// the fault that stopped the run, if Strict mode or the handler's own
// strategy demanded a stop; a nil fault means the run may continue (either
// no error occurred, or permissive mode absorbed it).
func runValidate(toks []token.Token, data []byte, cfg ValidateConfig, handler *errs.Handler) *errs.Context {
	check := cfg.Check
	var seenStack []map[string]bool

	for _, tok := range toks {
		switch tok.Kind {
		case token.ObjectStart:
			seenStack = append(seenStack, map[string]bool{})
		case token.ObjectEnd:
			seenStack = seenStack[:len(seenStack)-1]
		case token.Key:
			if check == nil && len(seenStack) > 0 {
				top := seenStack[len(seenStack)-1]
				key := unquoteKey(data[tok.Start:tok.End])
				if top[key] {
					if ctx, stop := reportValidation(handler, cfg, tok, data, "duplicate object key "+key); stop {
						return ctx
					}
					continue
				}
				top[key] = true
			}
		}
		if check != nil {
			if err := check(tok, data); err != nil {
				if ctx, stop := reportValidation(handler, cfg, tok, data, err.Error()); stop {
					return ctx
				}
			}
		}
	}
	return nil
}

func reportValidation(handler *errs.Handler, cfg ValidateConfig, tok token.Token, data []byte, msg string) (*errs.Context, bool) {
	line, col := lineCol(data, tok.Start)
	ctx := errs.Context{Kind: errs.Policy, Offset: tok.Start, Line: line, Column: col, Severity: errs.SeverityError, Message: msg}
	action := handler.Handle(ctx)
	if cfg.Strict || action.Action == errs.ActionAbort {
		return &ctx, true
	}
	return nil, false
}

// lineCol converts a byte offset into a 1-based line/column pair, the same
// convention internal/token uses for its own fault reporting.
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
	return line, col
}
