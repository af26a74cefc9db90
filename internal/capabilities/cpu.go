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

// Package capabilities detects process-scoped, immutable facts about the
// machine turbojson is running on: vector width for the structural scanner,
// and NUMA domains for the TURBO work-stealing scheduler. Both probes are
// cached after the first call and never fail; on any uncertainty they fall
// back to the safest answer (scalar, one synthetic domain).
package capabilities

import (
	"runtime"
	"sync"
)

// VectorWidth is the number of bytes the structural scanner can classify per
// SWAR (SIMD-within-a-register) step. There is no portable way to query real
// SIMD lane widths without cgo or assembly, so this reports the widest native
// machine word turbojson's bit-trick scanner can operate on.
type VectorWidth int

const (
	// VectorScalar means process one byte at a time.
	VectorScalar VectorWidth = 1
	// Vector64 means process 8 bytes at a time via uint64 SWAR tricks.
	Vector64 VectorWidth = 8
)

// Capabilities is an immutable record of what the structural scanner can do
// on this machine. It is produced once by Detect and never mutated.
type Capabilities struct {
	// VectorWidth is in bytes; see VectorWidth constants.
	VectorWidth VectorWidth
	// HasByteCompareMask reports whether the scanner can cheaply produce a
	// per-lane equality bitmask (true for the uint64 SWAR path).
	HasByteCompareMask bool
	// HasHorizontalOr reports whether a fast "any lane matched" reduction is
	// available, used for whitespace-run early exit.
	HasHorizontalOr bool
}

var (
	cpuOnce sync.Once
	cpuCaps Capabilities
)

// Detect returns the process-wide Capabilities record, probing the machine
// exactly once and caching the result for the lifetime of the process.
//
// Detect never returns an error: a probing failure (or an architecture with
// no known SWAR path) degrades to scalar capabilities rather than failing
// the caller, matching the "leaves" contract of the system overview.
func Detect() Capabilities {
	cpuOnce.Do(func() {
		cpuCaps = detect()
	})
	return cpuCaps
}

// detect performs the actual one-time probe. Go offers no portable intrinsic
// for real SIMD lane widths without cgo or assembly; rather than fabricate a
// dependency that doesn't exist in the corpus, this reports the SWAR-capable
// uint64 path on every architecture the Go toolchain supports natively
// (amd64, arm64, and other 64-bit targets all perform well with word-at-a
// -time bit tricks), and scalar on anything unexpected.
func detect() Capabilities {
	switch runtime.GOARCH {
	case "amd64", "arm64", "ppc64", "ppc64le", "riscv64", "s390x", "mips64", "mips64le":
		return Capabilities{
			VectorWidth:        Vector64,
			HasByteCompareMask: true,
			HasHorizontalOr:    true,
		}
	default:
		return Capabilities{
			VectorWidth:        VectorScalar,
			HasByteCompareMask: false,
			HasHorizontalOr:    false,
		}
	}
}

// reset is test-only: it clears the cached singleton so tests can exercise
// detect() directly without cross-test interference.
func reset() {
	cpuOnce = sync.Once{}
}
