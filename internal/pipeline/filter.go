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

import "strconv"

// FilterMode selects which of FilterConfig's pattern sets governs a Filter
// transformation's decisions.
type FilterMode int

const (
	FilterInclude FilterMode = iota
	FilterExclude
)

// FilterConfig configures a Filter-kind Transformation. Supply Include XOR
// Exclude; if both are non-empty, Exclude wins (see DESIGN.md's Open
// Question resolution — the source left this combination underspecified).
type FilterConfig struct {
	Include []string
	Exclude []string
}

type compiledFilter struct {
	mode     FilterMode
	patterns [][]string
}

// compileFilter compiles cfg's patterns once, so a pipeline pays the glob
// -splitting cost a single time regardless of how many tokens it processes.
func compileFilter(cfg FilterConfig) *compiledFilter {
	if len(cfg.Exclude) > 0 {
		return &compiledFilter{mode: FilterExclude, patterns: compilePatterns(cfg.Exclude)}
	}
	return &compiledFilter{mode: FilterInclude, patterns: compilePatterns(cfg.Include)}
}

func compilePatterns(raw []string) [][]string {
	out := make([][]string, len(raw))
	for i, p := range raw {
		out[i] = splitPattern(p)
	}
	return out
}

func (f *compiledFilter) matches(path []string) bool {
	for _, p := range f.patterns {
		if matchSegments(path, p) {
			return true
		}
	}
	return false
}

// applyFilter AND-combines one Filter transformation's decision into the
// tree's keep flags (every member/element starts keep=true at parse time,
// so later filters only ever narrow the surviving set).
func applyFilter(n *node, cfg *compiledFilter) {
	switch cfg.mode {
	case FilterExclude:
		applyExclude(n, nil, cfg)
	case FilterInclude:
		applyInclude(n, nil, cfg)
	}
}

func applyExclude(n *node, path []string, cfg *compiledFilter) {
	switch n.kind {
	case nodeObject:
		for _, m := range n.members {
			if !m.keep {
				continue
			}
			childPath := appendPath(path, m.key)
			if cfg.matches(childPath) {
				m.keep = false
				continue
			}
			applyExclude(m.value, childPath, cfg)
		}
	case nodeArray:
		for i, e := range n.elements {
			if !e.keep {
				continue
			}
			childPath := appendPath(path, strconv.Itoa(i))
			if cfg.matches(childPath) {
				e.keep = false
				continue
			}
			applyExclude(e.value, childPath, cfg)
		}
	}
}

// applyInclude recursively decides keep for include-mode filtering: a field
// survives if it directly matches a pattern, or is an ancestor of some
// descendant that does. A direct match still recurses into render() rather
// than copying its raw span, since the source bytes inside a matched
// container may carry insignificant whitespace the output must not keep.
// Returns whether n itself ended up kept, so the caller knows whether it
// counts as "ancestor of a match".
func applyInclude(n *node, path []string, cfg *compiledFilter) bool {
	switch n.kind {
	case nodeObject:
		any := false
		for _, m := range n.members {
			if !m.keep {
				continue
			}
			childPath := appendPath(path, m.key)
			if cfg.matches(childPath) {
				any = true
				continue
			}
			kept := applyInclude(m.value, childPath, cfg)
			m.keep = kept
			if kept {
				any = true
			}
		}
		return any
	case nodeArray:
		any := false
		for i, e := range n.elements {
			if !e.keep {
				continue
			}
			childPath := appendPath(path, strconv.Itoa(i))
			if cfg.matches(childPath) {
				any = true
				continue
			}
			kept := applyInclude(e.value, childPath, cfg)
			e.keep = kept
			if kept {
				any = true
			}
		}
		return any
	default:
		return cfg.matches(path)
	}
}

func appendPath(path []string, seg string) []string {
	out := make([]string, len(path)+1)
	copy(out, path)
	out[len(path)] = seg
	return out
}
