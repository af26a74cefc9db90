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

package turbojson

import (
	"runtime"

	"turbojson/internal/errs"
	"turbojson/internal/modes"
)

// Options configures a Minify/MinifyStreaming call or an Engine. The zero
// value is the documented default: SPORT mode, one error handler per
// SkipAndContinue semantics, GOMAXPROCS workers for Turbo.
type Options struct {
	Mode Mode

	// Threads is TURBO's worker count. 0 means GOMAXPROCS.
	Threads int

	// WindowSize is ECO's read window in bytes. 0 means modes.DefaultWindowSize.
	WindowSize int

	// ErrHandler receives every fault encountered while tokenizing. A nil
	// value gets errs.DefaultConfig() wired in automatically.
	ErrHandler *errs.Handler
}

func (o Options) withDefaults() Options {
	if o.Threads <= 0 {
		o.Threads = runtime.GOMAXPROCS(0)
	}
	if o.WindowSize <= 0 {
		o.WindowSize = modes.DefaultWindowSize
	}
	if o.ErrHandler == nil {
		o.ErrHandler = errs.NewHandler(errs.DefaultConfig())
	}
	return o
}
