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

package capabilities

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Allocator names a preferred allocation strategy for a NUMA domain's
// chunk-local buffers. turbojson has no custom arena allocator of its own
// (Go's GC makes a hand-rolled arena a poor fit for short-lived chunk
// buffers), so this is an advisory label TURBO uses to decide buffer
// pre-sizing, not a real pluggable allocator.
type Allocator string

const (
	// AllocatorDefault means "use make([]byte, ...) sized to the chunk".
	AllocatorDefault Allocator = "default"
)

// Domain is one memory/CPU affinity domain, with a CPU set and a preferred
// allocator hint. TURBO workers are assigned to domains round-robin or by
// rendezvous hash (see internal/turbo); other modes ignore Topology
// entirely.
type Domain struct {
	ID        int
	CPUs      []int
	Allocator Allocator
}

// Topology is an ordered list of Domains. A machine with no NUMA exposure
// (or any probe failure) reports exactly one synthetic domain spanning all
// logical CPUs runtime.NumCPU() reports.
type Topology struct {
	Domains []Domain
}

var (
	numaOnce sync.Once
	numaTopo Topology
)

// DetectNUMA returns the process-wide Topology, probing the machine exactly
// once. It never fails: any parse error or absence of NUMA sysfs exposure
// produces the single-domain fallback.
func DetectNUMA() Topology {
	numaOnce.Do(func() {
		numaTopo = detectNUMA()
	})
	return numaTopo
}

func detectNUMA() Topology {
	if runtime.GOOS == "linux" {
		if domains := readLinuxNodes("/sys/devices/system/node"); len(domains) > 0 {
			return Topology{Domains: domains}
		}
	}
	return Topology{Domains: []Domain{{ID: 0, CPUs: allCPUs(), Allocator: AllocatorDefault}}}
}

// readLinuxNodes best-effort parses /sys/devices/system/node/node<N>/cpulist
// on Linux. Any error anywhere aborts the parse and returns nil, letting the
// caller fall back to the single synthetic domain — probing is never
// allowed to be fatal.
func readLinuxNodes(root string) []Domain {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil
	}
	var domains []Domain
	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() || !strings.HasPrefix(name, "node") {
			continue
		}
		idStr := strings.TrimPrefix(name, "node")
		id, err := strconv.Atoi(idStr)
		if err != nil {
			continue
		}
		cpus, err := readCPUList(filepath.Join(root, name, "cpulist"))
		if err != nil || len(cpus) == 0 {
			continue
		}
		domains = append(domains, Domain{ID: id, CPUs: cpus, Allocator: AllocatorDefault})
	}
	sort.Slice(domains, func(i, j int) bool { return domains[i].ID < domains[j].ID })
	return domains
}

// readCPUList parses a Linux cpulist file, e.g. "0-3,8" -> [0,1,2,3,8].
func readCPUList(path string) ([]int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cpus []int
	for _, part := range strings.Split(strings.TrimSpace(string(raw)), ",") {
		if part == "" {
			continue
		}
		if lo, hi, ok := strings.Cut(part, "-"); ok {
			loN, err1 := strconv.Atoi(lo)
			hiN, err2 := strconv.Atoi(hi)
			if err1 != nil || err2 != nil {
				continue
			}
			for c := loN; c <= hiN; c++ {
				cpus = append(cpus, c)
			}
		} else {
			n, err := strconv.Atoi(part)
			if err != nil {
				continue
			}
			cpus = append(cpus, n)
		}
	}
	return cpus, nil
}

func allCPUs() []int {
	n := runtime.NumCPU()
	cpus := make([]int, n)
	for i := range cpus {
		cpus[i] = i
	}
	return cpus
}

func resetNUMA() {
	numaOnce = sync.Once{}
}
