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

import "turbojson/internal/token"

// CustomAction is what a Custom transformation's function asks the pipeline
// to do with the token it was just shown.
type CustomAction int

const (
	// CustomKeep leaves the token (and, for a Key, its member) untouched.
	CustomKeep CustomAction = iota
	// CustomDrop requests the token's member be omitted. Only meaningful
	// for a Key token — the pipeline has no parent-container to drop for
	// any other kind, so a Drop on a non-Key token is treated as CustomKeep
	// with no structural effect (the call still happens, for side effects
	// on UserData).
	CustomDrop
)

// CustomFunc is the function-pointer variant of a Transformation: a
// caller-provided token observer/filter with opaque UserData threaded
// through every call.
type CustomFunc func(tok token.Token, data []byte, userData any) CustomAction

// CustomConfig configures a Custom-kind Transformation.
type CustomConfig struct {
	Fn       CustomFunc
	UserData any
	// Cleanup, if set, is invoked once when the pipeline is closed (see
	// Pipeline.Close), after every Run has finished with this Transformation.
	Cleanup func(userData any)
}

// runCustom calls cfg.Fn for every token in stream order and collects the
// token indices of Key tokens whose member was asked to be dropped.
func runCustom(toks []token.Token, data []byte, cfg CustomConfig) map[int]bool {
	if cfg.Fn == nil {
		return nil
	}
	dropped := make(map[int]bool)
	for i, tok := range toks {
		if cfg.Fn(tok, data, cfg.UserData) == CustomDrop && tok.Kind == token.Key {
			dropped[i] = true
		}
	}
	return dropped
}

// applyCustomDrops marks members dropped by Custom transformations,
// AND-combined with whatever Filter transformations already decided.
func applyCustomDrops(n *node, dropped map[int]bool) {
	if len(dropped) == 0 {
		return
	}
	switch n.kind {
	case nodeObject:
		for _, m := range n.members {
			if dropped[m.keyIdx] {
				m.keep = false
				continue
			}
			if m.keep {
				applyCustomDrops(m.value, dropped)
			}
		}
	case nodeArray:
		for _, e := range n.elements {
			if e.keep {
				applyCustomDrops(e.value, dropped)
			}
		}
	}
}
