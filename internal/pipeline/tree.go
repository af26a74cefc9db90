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

type nodeKind int

const (
	nodeObject nodeKind = iota
	nodeArray
	nodeScalar
)

// node is one JSON value, rebuilt from a fully-drained token slice so that
// Filter transformations can make ancestor-aware keep decisions before any
// bytes are written. Only container nodes have members/elements; a scalar
// (String, Number, True, False, Null) is a leaf referencing its own token
// span.
type node struct {
	kind     nodeKind
	start    int
	end      int
	repair   []byte // non-nil for a nodeScalar built from a BestEffort-repaired token
	members  []*member
	elements []*element
}

// member is one object field: its Key token (quotes included, copied
// verbatim on output), the unquoted key text with escapes left as written
// (used for path matching), and
// its value subtree.
type member struct {
	keyTok token.Token
	keyIdx int
	key    string
	value  *node
	keep   bool
}

// element is one array entry.
type element struct {
	value *node
	keep  bool
}

// buildTree parses a fully-drained, well-formed token slice into a node
// tree. It assumes toks came from a Stream that ran to completion without
// aborting — callers must check Stream.Err() first.
func buildTree(toks []token.Token, data []byte) *node {
	n, _ := parseValue(toks, data, 0)
	return n
}

func parseValue(toks []token.Token, data []byte, i int) (*node, int) {
	tok := toks[i]
	switch tok.Kind {
	case token.ObjectStart:
		n := &node{kind: nodeObject, start: tok.Start}
		i++
		for toks[i].Kind != token.ObjectEnd {
			keyTok := toks[i]
			keyIdx := i
			i += 2 // key, colon
			val, next := parseValue(toks, data, i)
			i = next
			n.members = append(n.members, &member{
				keyTok: keyTok,
				keyIdx: keyIdx,
				key:    unquoteKey(data[keyTok.Start:keyTok.End]),
				value:  val,
				keep:   true,
			})
			if toks[i].Kind == token.Comma {
				i++
			}
		}
		n.end = toks[i].End
		return n, i + 1
	case token.ArrayStart:
		n := &node{kind: nodeArray, start: tok.Start}
		i++
		for toks[i].Kind != token.ArrayEnd {
			val, next := parseValue(toks, data, i)
			i = next
			n.elements = append(n.elements, &element{value: val, keep: true})
			if toks[i].Kind == token.Comma {
				i++
			}
		}
		n.end = toks[i].End
		return n, i + 1
	default:
		return &node{kind: nodeScalar, start: tok.Start, end: tok.End, repair: tok.Data}, i + 1
	}
}

// unquoteKey strips the surrounding quotes from a raw Key token span. Path
// matching operates on this literal source text (escapes are not decoded),
// which is exact for the ordinary ASCII field names filter patterns target.
func unquoteKey(raw []byte) string {
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		return string(raw[1 : len(raw)-1])
	}
	return string(raw)
}

// render serializes the tree back to minified JSON, honoring each member's
// and element's keep decisions. Punctuation is synthesized rather than
// copied from the original Colon/Comma tokens, since dropped siblings mean
// the surviving commas don't necessarily sit where the input had them.
// Every subtree is rendered recursively, never copied as a raw byte span:
// a kept container may still hold insignificant whitespace between its own
// tokens, and only recursing through render strips it.
func render(n *node, data []byte, buf []byte) []byte {
	switch n.kind {
	case nodeScalar:
		if n.repair != nil {
			return append(buf, n.repair...)
		}
		return append(buf, data[n.start:n.end]...)
	case nodeObject:
		buf = append(buf, '{')
		first := true
		for _, m := range n.members {
			if !m.keep {
				continue
			}
			if !first {
				buf = append(buf, ',')
			}
			first = false
			buf = append(buf, data[m.keyTok.Start:m.keyTok.End]...)
			buf = append(buf, ':')
			buf = render(m.value, data, buf)
		}
		return append(buf, '}')
	case nodeArray:
		buf = append(buf, '[')
		first := true
		for _, e := range n.elements {
			if !e.keep {
				continue
			}
			if !first {
				buf = append(buf, ',')
			}
			first = false
			buf = render(e.value, data, buf)
		}
		return append(buf, ']')
	default:
		return buf
	}
}
