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

// Mode selects which of the three minifier implementations a call uses.
// All three are byte-identical on valid input — they differ only in memory
// profile and parallelism.
type Mode int

const (
	// Sport is the default: single-pass, whole-input-buffered minification.
	Sport Mode = iota
	// Eco streams input through a bounded-size window, trading throughput
	// for O(windowSize) memory instead of O(inputSize).
	Eco
	// Turbo splits input across a work-stealing pool of chunk workers.
	Turbo
)

func (m Mode) String() string {
	switch m {
	case Eco:
		return "eco"
	case Sport:
		return "sport"
	case Turbo:
		return "turbo"
	default:
		return "unknown"
	}
}

// ParseMode parses the CLI's --mode values. An empty or unrecognized string
// returns Sport, the documented default, with ok=false for the latter case.
func ParseMode(s string) (mode Mode, ok bool) {
	switch s {
	case "", "sport":
		return Sport, true
	case "eco":
		return Eco, true
	case "turbo":
		return Turbo, true
	default:
		return Sport, false
	}
}
