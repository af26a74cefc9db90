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
	"time"

	"turbojson/internal/metrics"
	"turbojson/internal/pipeline"
	"turbojson/internal/sinks"
	"turbojson/internal/token"
)

// Engine is the transformation-pipeline entry point: Process tokenizes its
// input once and runs every registered Transformation over it in priority
// order. Unlike Minify/MinifyStreaming, Process always goes through
// internal/pipeline and internal/token (never ECO/SPORT/TURBO's fast paths),
// since filtering and validation need the ancestor-aware token view those
// bypass.
//
// Engine carries its own independent EngineStats, so a caller running
// several configurations side by side (e.g. comparing Filter patterns) gets
// independent tallies for each — the same reason its counters live on the
// instance rather than as package globals (see internal/metrics).
type Engine struct {
	pipeline  *pipeline.Pipeline
	stats     metrics.EngineStats
	opts      token.Options
	errsSoFar int
}

// NewEngine builds an empty Engine. Register transformations with
// AddTransformation before calling Process.
func NewEngine(opts Options) *Engine {
	opts = opts.withDefaults()
	return &Engine{
		pipeline: pipeline.New(),
		opts:     token.Options{Handler: opts.ErrHandler},
	}
}

// AddTransformation registers t with the engine's pipeline. Transformations
// run in (Priority ascending, insertion-order ascending) order.
func (e *Engine) AddTransformation(t pipeline.Transformation) {
	e.pipeline.Add(t)
}

// Process tokenizes input, runs every registered transformation, and
// returns the resulting bytes.
func (e *Engine) Process(input []byte) ([]byte, error) {
	sink := sinks.NewBufferSink(len(input))
	start := time.Now()
	result, err := e.pipeline.Run(input, e.opts, sink)
	elapsed := time.Since(start)
	if err != nil {
		return nil, err
	}
	total := len(e.opts.Handler.Errors())
	newErrs := int64(total - e.errsSoFar)
	e.errsSoFar = total
	e.stats.RecordRun(int64(result.TransformationsRun), int64(result.TokensEmitted), int64(len(input)), int64(result.BytesOut), newErrs, elapsed)
	return sink.Bytes(), nil
}

// Stats returns a snapshot of every Process call's accumulated counters.
func (e *Engine) Stats() metrics.Snapshot {
	return e.stats.Snapshot()
}

// Close releases the engine's transformations, invoking every registered
// Custom transformation's Cleanup callback exactly once — a worker-stop
// final flush, adapted from "persist whatever's pending" to "let every
// transform release its resources."
func (e *Engine) Close() {
	e.pipeline.Close()
}
