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

package errs

import "sort"

// Report summarizes a run's accumulated faults: total count, a per-kind
// breakdown, and a severity histogram. Built once after the run completes;
// Handler itself stays lock-light on the hot path and defers this grouping
// work to Report's caller.
type Report struct {
	Total      int
	Discarded  int
	ByKind     map[Kind]int
	BySeverity map[Severity]int
	Entries    []Context
}

// BuildReport groups the accumulated faults in h into a Report.
func BuildReport(h *Handler) Report {
	entries := h.Errors()
	r := Report{
		Total:      len(entries),
		Discarded:  h.Discarded(),
		ByKind:     make(map[Kind]int),
		BySeverity: make(map[Severity]int),
		Entries:    entries,
	}
	for _, e := range entries {
		r.ByKind[e.Kind]++
		r.BySeverity[e.Severity]++
	}
	return r
}

// KindCounts returns the per-kind counts sorted by Kind for stable,
// reproducible report output.
func (r Report) KindCounts() []struct {
	Kind  Kind
	Count int
} {
	kinds := make([]Kind, 0, len(r.ByKind))
	for k := range r.ByKind {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	out := make([]struct {
		Kind  Kind
		Count int
	}, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, struct {
			Kind  Kind
			Count int
		}{Kind: k, Count: r.ByKind[k]})
	}
	return out
}
