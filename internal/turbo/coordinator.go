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

package turbo

import (
	"hash/fnv"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/dgryski/go-rendezvous"

	"turbojson/internal/capabilities"
	"turbojson/internal/errs"
)

// cancelCheckInterval is how often, in bytes, a worker re-checks the shared
// cancellation flag while copying one chunk's surviving bytes.
const cancelCheckInterval = 64 * 1024

// Result is the outcome of a TURBO run: the stitched output and any fault
// that triggered cooperative cancellation.
type Result struct {
	Output []byte
	Fault  *errs.Context
}

// Run splits data into chunks sized for numWorkers workers, drains them
// through a work-stealing pool, and returns the deterministically stitched
// output. It never reorders bytes: the result is always byte-identical to
// modes.SPORTBytes(data) for the same input, regardless of numWorkers.
func Run(data []byte, numWorkers int) Result {
	data = stripBOM(data)
	if numWorkers < 1 {
		numWorkers = 1
	}
	chunkSize := ChunkSize(len(data), numWorkers)
	chunks := planChunks(data, chunkSize)
	if len(chunks) == 0 {
		return Result{Output: []byte{}}
	}

	deques := make([]*deque, numWorkers)
	for i := range deques {
		deques[i] = newDeque()
	}
	for _, c := range chunks {
		deques[c.Index%numWorkers].PushBack(c)
	}

	domainHint := buildDomainHints(chunks)

	var cancelled atomic.Bool
	var faultOnce sync.Once
	var fault *errs.Context

	nodeNames := make([]string, numWorkers)
	for i := range nodeNames {
		nodeNames[i] = strconv.Itoa(i)
	}
	rv := rendezvous.New(nodeNames, fnvHash)

	var wg sync.WaitGroup
	wg.Add(numWorkers)
	for id := 0; id < numWorkers; id++ {
		id := id
		go func() {
			defer wg.Done()
			runWorker(id, deques, rv, domainHint, &cancelled)
		}()
	}
	wg.Wait()

	for _, c := range chunks {
		if c.Fault != nil {
			faultOnce.Do(func() { fault = c.Fault })
		}
	}

	return Result{Output: stitch(chunks), Fault: fault}
}

// runWorker drains its own deque FIFO, then steals from the busiest peer
// (ties broken by rendezvous hashing on worker id) until every deque is
// empty.
func runWorker(id int, deques []*deque, rv *rendezvous.Rendezvous, domainHint map[int]capabilities.Domain, cancelled *atomic.Bool) {
	own := deques[id]
	for {
		c, ok := own.PopFront()
		if !ok {
			c, ok = stealFrom(id, deques, rv)
		}
		if !ok {
			return
		}
		processChunk(c, domainHint[c.Index], cancelled)
	}
}

// stealFrom picks the peer deque with the most remaining work (ties broken
// deterministically via rendezvous hashing) and steals from its back.
func stealFrom(id int, deques []*deque, rv *rendezvous.Rendezvous) (*Chunk, bool) {
	best := -1
	bestLen := 0
	var tied []int
	for i, d := range deques {
		if i == id {
			continue
		}
		l := d.Len()
		if l == 0 {
			continue
		}
		switch {
		case l > bestLen:
			bestLen = l
			best = i
			tied = append(tied[:0], i)
		case l == bestLen:
			tied = append(tied, i)
		}
	}
	if best == -1 {
		return nil, false
	}
	if len(tied) > 1 {
		best = pickByRendezvous(tied, rv)
	}
	return deques[best].StealBack()
}

func pickByRendezvous(candidates []int, rv *rendezvous.Rendezvous) int {
	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = strconv.Itoa(c)
	}
	chosen := rv.Get(names[0])
	for _, n := range names {
		if n == chosen {
			v, _ := strconv.Atoi(n)
			return v
		}
	}
	return candidates[0]
}

// processChunk strips insignificant whitespace from c.Data, checking the
// cancellation flag every cancelCheckInterval bytes. A cancelled chunk
// releases whatever output it had produced so far — partial, but the
// coordinator discards the whole result on cancellation anyway, matching
// "partial results are not published".
func processChunk(c *Chunk, domain capabilities.Domain, cancelled *atomic.Bool) {
	if cancelled.Load() {
		c.Output = nil
		return
	}
	out := make([]byte, 0, len(c.Data))
	for i, b := range c.Data {
		if i > 0 && i%cancelCheckInterval == 0 && cancelled.Load() {
			break
		}
		if c.InString.Get(i) || !c.Cls.WS.Get(i) {
			out = append(out, b)
		}
	}
	c.Output = out
	_ = domain // advisory only; see capabilities.Allocator doc.
}

// stitch concatenates each chunk's output in input order. Chunks are
// already stored in index order in the slice Run built, so a direct
// concatenation is all Run needs — StreamTo, which writes chunks as they
// complete rather than after every worker finishes, is the variant that
// needs sinkStitcher's out-of-order readiness tracking (see stream.go).
func stitch(chunks []*Chunk) []byte {
	total := 0
	for _, c := range chunks {
		total += len(c.Output)
	}
	out := make([]byte, 0, total)
	for _, c := range chunks {
		out = append(out, c.Output...)
	}
	return out
}

// buildDomainHints assigns each chunk a NUMA domain via rendezvous hashing
// over the available topology, so repeated runs give the same chunk the
// same preferred domain (data locality across multiple operations on
// similar-sized inputs) without needing real OS-level pinning, which Go
// cannot portably express.
func buildDomainHints(chunks []*Chunk) map[int]capabilities.Domain {
	topo := capabilities.DetectNUMA()
	hints := make(map[int]capabilities.Domain, len(chunks))
	if len(topo.Domains) == 0 {
		return hints
	}
	if len(topo.Domains) == 1 {
		for _, c := range chunks {
			hints[c.Index] = topo.Domains[0]
		}
		return hints
	}
	names := make([]string, len(topo.Domains))
	byName := make(map[string]capabilities.Domain, len(topo.Domains))
	for i, d := range topo.Domains {
		name := strconv.Itoa(d.ID)
		names[i] = name
		byName[name] = d
	}
	rv := rendezvous.New(names, fnvHash)
	for _, c := range chunks {
		hints[c.Index] = byName[rv.Get(strconv.Itoa(c.Index))]
	}
	return hints
}

func fnvHash(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

var bom = [3]byte{0xEF, 0xBB, 0xBF}

// stripBOM discards a leading UTF-8 byte-order mark, matching modes.SPORTBytes
// so Run's output is byte-identical to it for the same raw input.
func stripBOM(data []byte) []byte {
	if len(data) >= 3 && data[0] == bom[0] && data[1] == bom[1] && data[2] == bom[2] {
		return data[3:]
	}
	return data
}
