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

// Command benchmarks drives turbojson.Benchmark across ECO/SPORT/TURBO for
// a sweep of synthetic input sizes and prints a latency/throughput table.
// It is a diagnostic tool, not part of the library surface.
package main

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"turbojson"
)

func main() {
	var (
		iterations = flag.Int("iterations", 200, "iterations per (mode, size) cell")
		sizesStr   = flag.String("sizes", "1024,65536,1048576", "comma-separated synthetic input sizes in bytes")
		modesStr   = flag.String("modes", "sport,eco,turbo", "comma-separated modes to sweep")
	)
	flag.Parse()

	sizes, err := parseSizes(*sizesStr)
	if err != nil {
		fmt.Println(err)
		return
	}
	modes, err := parseModes(*modesStr)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("%-7s %10s %8s %10s %10s %10s %12s\n", "mode", "input", "iters", "p50(us)", "p95(us)", "p99(us)", "MB/s")
	for _, sz := range sizes {
		input := syntheticJSON(sz)
		for _, m := range modes {
			result, err := turbojson.Benchmark(input, m, *iterations)
			if err != nil {
				fmt.Printf("%-7s %10d error: %v\n", m, sz, err)
				continue
			}
			fmt.Printf("%-7s %10s %8d %10s %10s %10s %12.1f\n",
				m, humanInt(int64(sz)), result.Iterations,
				formatMicros(result.P50), formatMicros(result.P95), formatMicros(result.P99),
				result.ThroughputMBps())
		}
	}
}

// syntheticJSON builds an array of small objects whose marshaled length is
// at least targetBytes, so every mode sees the same shape input regardless
// of sweep size.
func syntheticJSON(targetBytes int) []byte {
	const record = `{"id":1,"name":"item","tags":["a","b","c"],"active":true,"score":1.5},`
	var b strings.Builder
	b.WriteByte('[')
	for b.Len() < targetBytes {
		b.WriteString(record)
	}
	out := strings.TrimSuffix(b.String(), ",")
	return []byte(out + "]")
}

func parseSizes(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		var n int
		if _, err := fmt.Sscanf(p, "%d", &n); err != nil {
			return nil, fmt.Errorf("invalid size %q: %w", p, err)
		}
		out = append(out, n)
	}
	return out, nil
}

func parseModes(s string) ([]turbojson.Mode, error) {
	parts := strings.Split(s, ",")
	out := make([]turbojson.Mode, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		m, ok := turbojson.ParseMode(p)
		if !ok {
			return nil, fmt.Errorf("unknown mode %q", p)
		}
		out = append(out, m)
	}
	return out, nil
}

// formatMicros mirrors the rate-limiter harness's adaptive precision: more
// decimal places for sub-microsecond durations, fewer as the value grows.
func formatMicros(d time.Duration) string {
	us := float64(d) / 1e3
	if us < 1 {
		return fmt.Sprintf("%.3f", us)
	}
	if us < 100 {
		return fmt.Sprintf("%.1f", us)
	}
	return fmt.Sprintf("%.0f", us)
}

func humanInt(n int64) string {
	s := fmt.Sprintf("%d", n)
	neg := ""
	if strings.HasPrefix(s, "-") {
		neg = "-"
		s = s[1:]
	}
	var out []byte
	for i, c := range []byte(s) {
		if i != 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return neg + string(out)
}
