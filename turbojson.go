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

// Package turbojson is a high-throughput JSON minifier with three
// interchangeable engines — ECO (bounded-memory streaming), SPORT
// (single-pass buffered), and TURBO (work-stealing parallel chunking) — plus
// an optional transformation pipeline for field filtering, schema
// validation, and caller-supplied token transforms. All three engines
// produce byte-identical output for the same valid input.
package turbojson

import (
	"bytes"
	"io"
	"sort"
	"time"

	"turbojson/internal/modes"
	"turbojson/internal/sinks"
	"turbojson/internal/turbo"
)

// Minify minifies input using the given mode and returns a single freshly
// allocated buffer. For Turbo, Options{} defaults (GOMAXPROCS workers) are
// used; call MinifyWithOptions for control over thread count.
func Minify(input []byte, mode Mode) ([]byte, error) {
	return MinifyWithOptions(input, Options{Mode: mode})
}

// MinifyWithOptions is Minify with explicit Options (thread count, window
// size). Options.ErrHandler is not consulted by any minify mode.
func MinifyWithOptions(input []byte, opts Options) ([]byte, error) {
	opts = opts.withDefaults()
	switch opts.Mode {
	case Eco:
		sink := sinks.NewBufferSink(len(input))
		if err := modes.ECO(bytes.NewReader(input), sink, opts.WindowSize); err != nil {
			return nil, err
		}
		return sink.Bytes(), nil
	case Turbo:
		if !turbo.ShouldParallelize(len(input), opts.Threads) {
			return modes.SPORTBytes(input), nil
		}
		result := turbo.Run(input, opts.Threads)
		if result.Fault != nil {
			return nil, *result.Fault
		}
		return result.Output, nil
	default:
		return modes.SPORTBytes(input), nil
	}
}

// MinifyStreaming minifies the bytes read from r and writes the result to
// w, without ever holding the whole input in memory (when mode is Eco). For
// Sport and Turbo, the reader is drained fully first, since both need the
// whole input in memory by construction.
func MinifyStreaming(r io.Reader, w io.Writer, mode Mode) error {
	return MinifyStreamingWithOptions(r, w, Options{Mode: mode})
}

// MinifyStreamingWithOptions is MinifyStreaming with explicit Options.
func MinifyStreamingWithOptions(r io.Reader, w io.Writer, opts Options) error {
	opts = opts.withDefaults()
	sink := sinks.NewWriterSink(w)
	if opts.Mode == Eco {
		return modes.ECO(r, sink, opts.WindowSize)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if opts.Mode == Turbo && turbo.ShouldParallelize(len(data), opts.Threads) {
		fault, err := turbo.StreamTo(sink, data, opts.Threads)
		if err != nil {
			return err
		}
		if fault != nil {
			return *fault
		}
		return sink.Finish()
	}
	out, err := MinifyWithOptions(data, opts)
	if err != nil {
		return err
	}
	if _, err := sink.Write(out); err != nil {
		return err
	}
	return sink.Finish()
}

// BenchmarkResult is the diagnostic summary produced by Benchmark.
type BenchmarkResult struct {
	Mode        Mode
	Iterations  int
	InputBytes  int
	OutputBytes int
	P50         time.Duration
	P95         time.Duration
	P99         time.Duration
	TotalTime   time.Duration
}

// ThroughputMBps returns the overall input throughput, in megabytes per
// second, implied by TotalTime across all iterations.
func (r BenchmarkResult) ThroughputMBps() float64 {
	if r.TotalTime <= 0 {
		return 0
	}
	totalBytes := float64(r.InputBytes) * float64(r.Iterations)
	return totalBytes / r.TotalTime.Seconds() / (1 << 20)
}

// Benchmark runs Minify(input, mode) iterations times and reports latency
// percentiles, the same p50/p95/p99-over-sorted-samples technique as the
// manual benchmark driver this is adapted from.
func Benchmark(input []byte, mode Mode, iterations int) (BenchmarkResult, error) {
	if iterations <= 0 {
		iterations = 1
	}
	samples := make([]time.Duration, 0, iterations)
	var out []byte
	start := time.Now()
	for i := 0; i < iterations; i++ {
		iterStart := time.Now()
		o, err := Minify(input, mode)
		if err != nil {
			return BenchmarkResult{}, err
		}
		samples = append(samples, time.Since(iterStart))
		out = o
	}
	total := time.Since(start)

	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	return BenchmarkResult{
		Mode:        mode,
		Iterations:  iterations,
		InputBytes:  len(input),
		OutputBytes: len(out),
		P50:         percentile(samples, 50),
		P95:         percentile(samples, 95),
		P99:         percentile(samples, 99),
		TotalTime:   total,
	}, nil
}

func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := (len(sorted) - 1) * p / 100
	return sorted[idx]
}
