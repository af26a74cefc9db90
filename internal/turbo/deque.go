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

import "sync"

// deque is a worker's local work queue: the owner drains it FIFO from the
// front (chunks were assigned to it in input order, and processing them in
// that order is simplest), while idle peers steal from the back. A plain
// mutex-protected slice is deliberately simple here — chunk counts are
// small (tens to low thousands, never per-byte), so a lock-free deque
// buys nothing a careful benchmark would show.
type deque struct {
	mu    sync.Mutex
	items []*Chunk
}

func newDeque() *deque {
	return &deque{}
}

// PushBack assigns a chunk to this worker (called by the coordinator during
// round-robin distribution, before the worker pool starts draining).
func (d *deque) PushBack(c *Chunk) {
	d.mu.Lock()
	d.items = append(d.items, c)
	d.mu.Unlock()
}

// PopFront removes and returns the owner's own next chunk, in assignment
// order.
func (d *deque) PopFront() (*Chunk, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.items) == 0 {
		return nil, false
	}
	c := d.items[0]
	d.items = d.items[1:]
	return c, true
}

// StealBack removes and returns the chunk at the tail of another worker's
// deque, keeping the victim's own FIFO front (its next-in-line work)
// undisturbed.
func (d *deque) StealBack() (*Chunk, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := len(d.items)
	if n == 0 {
		return nil, false
	}
	c := d.items[n-1]
	d.items = d.items[:n-1]
	return c, true
}

// Len reports the number of chunks currently queued, used by work-guided
// victim selection to find the busiest peer.
func (d *deque) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.items)
}
