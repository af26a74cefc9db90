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
	"io"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/dgryski/go-rendezvous"

	"turbojson/internal/capabilities"
	"turbojson/internal/errs"
)

// StreamTo runs the same chunked, work-stealing minification as Run, but
// writes each chunk's output to w as soon as it is safe to do so instead of
// waiting for every worker to finish and assembling one combined buffer.
// Work stealing finishes chunks out of index order; sinkStitcher tracks the
// completed-but-not-yet-written ones so w always receives bytes in input
// order, the same guarantee Run's stitch gives its returned slice.
func StreamTo(w io.Writer, data []byte, numWorkers int) (*errs.Context, error) {
	data = stripBOM(data)
	if numWorkers < 1 {
		numWorkers = 1
	}
	chunkSize := ChunkSize(len(data), numWorkers)
	chunks := planChunks(data, chunkSize)
	if len(chunks) == 0 {
		return nil, nil
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

	done := make(chan *Chunk, len(chunks))
	var wg sync.WaitGroup
	wg.Add(numWorkers)
	for id := 0; id < numWorkers; id++ {
		id := id
		go func() {
			defer wg.Done()
			runWorkerStreaming(id, deques, rv, domainHint, &cancelled, done)
		}()
	}
	go func() {
		wg.Wait()
		close(done)
	}()

	st := newSinkStitcher(len(chunks))
	var writeErr error
	for c := range done {
		if c.Fault != nil {
			faultOnce.Do(func() { fault = c.Fault })
			cancelled.Store(true)
		}
		for _, ready := range st.arrive(c) {
			if writeErr == nil {
				if _, err := w.Write(ready.Output); err != nil {
					writeErr = err
					cancelled.Store(true)
				}
			}
		}
	}
	if writeErr != nil {
		return fault, writeErr
	}
	return fault, nil
}

// runWorkerStreaming is runWorker's streaming counterpart: it reports every
// chunk it finishes on done instead of leaving it for a post-hoc stitch
// pass over the whole chunk slice.
func runWorkerStreaming(id int, deques []*deque, rv *rendezvous.Rendezvous, domainHint map[int]capabilities.Domain, cancelled *atomic.Bool, done chan<- *Chunk) {
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
		done <- c
	}
}

// sinkStitcher buffers chunks that finish ahead of the next index StreamTo
// needs to write, using a ringBuffer to track which later indices have
// already arrived so draining the contiguous ready prefix never needs to
// rescan every chunk seen so far.
type sinkStitcher struct {
	next    int
	ready   *ringBuffer[int]
	pending map[int]*Chunk
}

func newSinkStitcher(n int) *sinkStitcher {
	size := 1
	for size < n {
		size <<= 1
	}
	return &sinkStitcher{
		ready:   newRingBuffer[int](size),
		pending: make(map[int]*Chunk, n),
	}
}

// arrive records c as completed and returns every chunk, in order, that is
// now safe to write: c itself if it was the one being waited on, plus any
// run of consecutive indices that had already arrived and were buffered
// behind it.
func (s *sinkStitcher) arrive(c *Chunk) []*Chunk {
	if c.Index != s.next {
		s.pending[c.Index] = c
		s.ready.InsertSorted(c.Index)
		return nil
	}
	out := []*Chunk{c}
	s.next++
	for s.ready.Len() > 0 && s.ready.Get(0) == s.next {
		idx := s.ready.Get(0)
		s.ready.RemoveBefore(1)
		out = append(out, s.pending[idx])
		delete(s.pending, idx)
		s.next++
	}
	return out
}
