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

// Package metrics holds lightweight, allocation-free counters for an
// engine's lifetime. Unlike the package-level atomic globals this is
// adapted from, EngineStats is a per-instance struct: a process can host
// more than one Engine (e.g. one per worker pool configuration in a
// benchmark sweep) and each needs its own independent tally.
package metrics

import (
	"sync/atomic"
	"time"
)

// EngineStats accumulates counters across every Run an Engine performs. All
// fields are atomic and safe for concurrent callers of Engine.Process.
type EngineStats struct {
	transformationsRun atomic.Int64
	tokensEmitted      atomic.Int64
	bytesIn            atomic.Int64
	bytesOut           atomic.Int64
	validationErrors   atomic.Int64
	runs               atomic.Int64
	totalNanos         atomic.Int64
}

// RecordRun folds one Run's outcome into the running totals. elapsed may be
// zero if the caller doesn't track timing.
func (s *EngineStats) RecordRun(transformationsRun, tokensEmitted, bytesIn, bytesOut, validationErrors int64, elapsed time.Duration) {
	s.transformationsRun.Add(transformationsRun)
	s.tokensEmitted.Add(tokensEmitted)
	s.bytesIn.Add(bytesIn)
	s.bytesOut.Add(bytesOut)
	s.validationErrors.Add(validationErrors)
	s.runs.Add(1)
	s.totalNanos.Add(elapsed.Nanoseconds())
}

// Snapshot is a point-in-time copy of an EngineStats' counters.
type Snapshot struct {
	TransformationsRun int64
	TokensEmitted      int64
	BytesIn            int64
	BytesOut           int64
	ValidationErrors   int64
	Runs               int64
	TotalTime          time.Duration
}

// Snapshot returns the current counter values.
func (s *EngineStats) Snapshot() Snapshot {
	return Snapshot{
		TransformationsRun: s.transformationsRun.Load(),
		TokensEmitted:      s.tokensEmitted.Load(),
		BytesIn:            s.bytesIn.Load(),
		BytesOut:           s.bytesOut.Load(),
		ValidationErrors:   s.validationErrors.Load(),
		Runs:               s.runs.Load(),
		TotalTime:          time.Duration(s.totalNanos.Load()),
	}
}

// CompressionRatio reports BytesOut/BytesIn for everything recorded so far,
// or 0 if nothing has run yet.
func (sn Snapshot) CompressionRatio() float64 {
	if sn.BytesIn == 0 {
		return 0
	}
	return float64(sn.BytesOut) / float64(sn.BytesIn)
}

// Reset zeroes every counter. Intended for tests and benchmark warm-up
// passes, not for use mid-production.
func (s *EngineStats) Reset() {
	s.transformationsRun.Store(0)
	s.tokensEmitted.Store(0)
	s.bytesIn.Store(0)
	s.bytesOut.Store(0)
	s.validationErrors.Store(0)
	s.runs.Store(0)
	s.totalNanos.Store(0)
}
