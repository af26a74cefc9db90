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

// Package pipeline implements the transformation pipeline: a
// priority-ordered chain of Minify/Filter/Validate/Custom transformations
// that consumes a token stream and writes the transformed result to a
// sink. Unlike internal/modes and internal/turbo, it builds a full token
// stream (internal/token) rather than bypassing it, because filtering needs
// the ancestor-aware, whole-subtree view a raw byte scan can't give it.
package pipeline

import (
	"sort"

	"turbojson/internal/sinks"
	"turbojson/internal/token"
)

// Kind is the closed variant set of transformation behaviors. Dynamic
// dispatch across the hot loop is deliberately avoided (see the
// internal/pipeline entry in DESIGN.md): every Transformation carries exactly one of these, and
// Run switches on Kind rather than calling through an interface per token.
type Kind int

const (
	KindMinify Kind = iota
	KindFilter
	KindValidate
	KindCustom
)

func (k Kind) String() string {
	switch k {
	case KindMinify:
		return "minify"
	case KindFilter:
		return "filter"
	case KindValidate:
		return "validate"
	case KindCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Transformation is one stage of a Pipeline. Exactly one of the Kind
// -specific config fields is meaningful, selected by Kind.
type Transformation struct {
	Name     string
	Kind     Kind
	Priority int

	Minify   MinifyConfig
	Filter   FilterConfig
	Validate ValidateConfig
	Custom   CustomConfig

	seq int // insertion order, used to break Priority ties
}

// Pipeline holds a priority-ordered transformation chain and runs it as a
// single pass over a token stream.
type Pipeline struct {
	transformations []*Transformation
	nextSeq         int
	filters         []*compiledFilter
}

// New returns an empty Pipeline.
func New() *Pipeline {
	return &Pipeline{}
}

// Add appends t to the pipeline and re-sorts by (Priority ascending,
// insertion order ascending). Filter patterns are compiled immediately, so
// the cost is paid once per Add, never per Run.
func (p *Pipeline) Add(t Transformation) {
	t.seq = p.nextSeq
	p.nextSeq++
	tc := t
	p.transformations = append(p.transformations, &tc)
	sort.SliceStable(p.transformations, func(i, j int) bool {
		if p.transformations[i].Priority != p.transformations[j].Priority {
			return p.transformations[i].Priority < p.transformations[j].Priority
		}
		return p.transformations[i].seq < p.transformations[j].seq
	})

	p.filters = p.filters[:0]
	for _, tr := range p.transformations {
		if tr.Kind == KindFilter {
			p.filters = append(p.filters, compileFilter(tr.Filter))
		}
	}
}

// Close invokes every registered Custom transformation's Cleanup callback.
// Call it once when the pipeline itself is discarded, not after each Run.
func (p *Pipeline) Close() {
	for _, tr := range p.transformations {
		if tr.Kind == KindCustom && tr.Custom.Cleanup != nil {
			tr.Custom.Cleanup(tr.Custom.UserData)
		}
	}
}

// Result summarizes one Run.
type Result struct {
	TransformationsRun int
	TokensEmitted      int
	BytesOut           int
}

// Run tokenizes data, applies every transformation in priority order, and
// writes the surviving bytes to sink. Validate transformations see every
// token exactly once, unfiltered, in source order (they consume without
// modifying). Filter and Custom transformations narrow what Run finally
// renders; when the pipeline has none of either, Run degrades to a direct
// token-to-bytes copy equivalent to SPORT's output, without paying for a
// tree build.
func (p *Pipeline) Run(data []byte, opts token.Options, sink sinks.Sink) (Result, error) {
	stream := token.New(data, opts)
	var toks []token.Token
	for {
		tok, ok := stream.Next()
		if !ok {
			break
		}
		toks = append(toks, tok)
	}
	if err := stream.Err(); err != nil {
		return Result{}, err
	}

	var customDrops map[int]bool
	ran := 0
	for _, tr := range p.transformations {
		if tr.Kind == KindValidate {
			ran++
			if fault := runValidate(toks, data, tr.Validate, opts.Handler); fault != nil {
				return Result{}, *fault
			}
		}
	}
	for _, tr := range p.transformations {
		if tr.Kind == KindCustom {
			ran++
			drops := runCustom(toks, data, tr.Custom)
			if customDrops == nil {
				customDrops = drops
			} else {
				for k := range drops {
					customDrops[k] = true
				}
			}
		}
	}

	if len(p.filters) == 0 && len(customDrops) == 0 {
		out := renderFlat(toks, data)
		if _, err := sink.Write(out); err != nil {
			return Result{}, err
		}
		if err := sink.Finish(); err != nil {
			return Result{}, err
		}
		for _, tr := range p.transformations {
			if tr.Kind == KindMinify {
				ran++
			}
		}
		return Result{TransformationsRun: ran, TokensEmitted: len(toks), BytesOut: len(out)}, nil
	}

	root := buildTree(toks, data)
	for _, f := range p.filters {
		applyFilter(root, f)
	}
	if len(customDrops) > 0 {
		applyCustomDrops(root, customDrops)
	}
	ran += len(p.filters)
	for _, tr := range p.transformations {
		if tr.Kind == KindMinify {
			ran++
		}
	}

	out := render(root, data, make([]byte, 0, len(data)))
	if _, err := sink.Write(out); err != nil {
		return Result{}, err
	}
	if err := sink.Finish(); err != nil {
		return Result{}, err
	}
	return Result{TransformationsRun: ran, TokensEmitted: len(toks), BytesOut: len(out)}, nil
}

// renderFlat writes every token's own bytes, synthesizing no punctuation:
// since no Filter or Custom transformation removed anything, the original
// Colon/Comma tokens are already exactly where minified output wants them.
// A BestEffort-repaired token contributes its synthesized replacement (see
// Token.Bytes) instead of its now-malformed source span.
func renderFlat(toks []token.Token, data []byte) []byte {
	if len(toks) == 0 {
		return nil
	}
	out := make([]byte, 0, toks[len(toks)-1].End-toks[0].Start)
	for _, tok := range toks {
		out = append(out, tok.Bytes(data)...)
	}
	return out
}
