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

package metrics

import (
	"sync"
	"testing"
	"time"
)

func TestRecordRunAccumulates(t *testing.T) {
	var s EngineStats
	s.RecordRun(1, 10, 100, 40, 0, 5*time.Millisecond)
	s.RecordRun(2, 20, 200, 80, 1, 5*time.Millisecond)

	sn := s.Snapshot()
	if sn.TransformationsRun != 3 {
		t.Fatalf("TransformationsRun = %d, want 3", sn.TransformationsRun)
	}
	if sn.TokensEmitted != 30 {
		t.Fatalf("TokensEmitted = %d, want 30", sn.TokensEmitted)
	}
	if sn.BytesIn != 300 || sn.BytesOut != 120 {
		t.Fatalf("BytesIn/Out = %d/%d, want 300/120", sn.BytesIn, sn.BytesOut)
	}
	if sn.ValidationErrors != 1 {
		t.Fatalf("ValidationErrors = %d, want 1", sn.ValidationErrors)
	}
	if sn.Runs != 2 {
		t.Fatalf("Runs = %d, want 2", sn.Runs)
	}
	if sn.TotalTime != 10*time.Millisecond {
		t.Fatalf("TotalTime = %v, want 10ms", sn.TotalTime)
	}
}

func TestCompressionRatio(t *testing.T) {
	sn := Snapshot{BytesIn: 200, BytesOut: 50}
	if got := sn.CompressionRatio(); got != 0.25 {
		t.Fatalf("CompressionRatio = %v, want 0.25", got)
	}
	var empty Snapshot
	if got := empty.CompressionRatio(); got != 0 {
		t.Fatalf("CompressionRatio on empty snapshot = %v, want 0", got)
	}
}

func TestRecordRunIsConcurrencySafe(t *testing.T) {
	var s EngineStats
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.RecordRun(1, 1, 1, 1, 0, time.Microsecond)
		}()
	}
	wg.Wait()
	if got := s.Snapshot().Runs; got != 50 {
		t.Fatalf("Runs = %d, want 50", got)
	}
}

func TestReset(t *testing.T) {
	var s EngineStats
	s.RecordRun(1, 1, 1, 1, 1, time.Second)
	s.Reset()
	sn := s.Snapshot()
	if sn.Runs != 0 || sn.TransformationsRun != 0 || sn.TotalTime != 0 {
		t.Fatalf("Reset left nonzero fields: %+v", sn)
	}
}
