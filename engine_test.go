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
	"testing"

	"turbojson/internal/pipeline"
	"turbojson/internal/token"
)

func TestEngineProcessAppliesFilter(t *testing.T) {
	e := NewEngine(Options{})
	defer e.Close()
	e.AddTransformation(pipeline.Transformation{
		Name: "drop-security",
		Kind: pipeline.KindFilter,
		Filter: pipeline.FilterConfig{
			Exclude: []string{"user.security"},
		},
	})

	got, err := e.Process([]byte(`{"user":{"name":"x","security":{"pw":"y"}}}`))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `{"user":{"name":"x"}}` {
		t.Fatalf("got %q", got)
	}
}

func TestEngineStatsAccumulateAcrossRuns(t *testing.T) {
	e := NewEngine(Options{})
	defer e.Close()

	if _, err := e.Process([]byte(`{"a":1}`)); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Process([]byte(`{"b":2}`)); err != nil {
		t.Fatal(err)
	}

	snap := e.Stats()
	if snap.Runs != 2 {
		t.Fatalf("Runs = %d, want 2", snap.Runs)
	}
	if snap.BytesIn == 0 || snap.BytesOut == 0 {
		t.Fatalf("expected nonzero byte counters, got %+v", snap)
	}
}

func TestEngineCloseRunsCustomCleanup(t *testing.T) {
	e := NewEngine(Options{})
	cleaned := false
	e.AddTransformation(pipeline.Transformation{
		Kind: pipeline.KindCustom,
		Custom: pipeline.CustomConfig{
			Fn: func(tok token.Token, data []byte, userData any) pipeline.CustomAction {
				return pipeline.CustomKeep
			},
			Cleanup: func(userData any) { cleaned = true },
		},
	})
	e.Close()
	if !cleaned {
		t.Fatal("expected Cleanup to run on Close")
	}
}
