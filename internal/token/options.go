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

// DefaultMaxDepth is the depth-overflow guard applied when Options.MaxDepth
// is left at zero.
const DefaultMaxDepth = 1000

// Options configures a Stream.
type Options struct {
	// MaxDepth bounds nesting depth; 0 means DefaultMaxDepth.
	MaxDepth int
	// Handler receives every fault the Stream encounters. A nil Handler
	// gets errs.DefaultConfig() wired in automatically.
	Handler *errs.Handler
}

func (o Options) withDefaults() Options {
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.Handler == nil {
		o.Handler = errs.NewHandler(errs.DefaultConfig())
	}
	return o
}
