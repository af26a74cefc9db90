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

package pipeline

import (
	"errors"
	"testing"

	"turbojson/internal/errs"
	"turbojson/internal/sinks"
	"turbojson/internal/token"
)

func runOn(t *testing.T, p *Pipeline, input string) string {
	t.Helper()
	sink := sinks.NewBufferSink(len(input))
	opts := token.Options{Handler: errs.NewHandler(errs.DefaultConfig())}
	if _, err := p.Run([]byte(input), opts, sink); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return string(sink.Bytes())
}

func TestMinifyOnlyPassthrough(t *testing.T) {
	p := New()
	p.Add(Transformation{Name: "minify", Kind: KindMinify})
	got := runOn(t, p, `{ "hello" : "world" }`)
	if got != `{"hello":"world"}` {
		t.Fatalf("got %q", got)
	}
}

func TestMinifyPreservesEscapedQuoteAndNumbers(t *testing.T) {
	p := New()
	got := runOn(t, p, `{"s":"a \" b"}`)
	if got != `{"s":"a \" b"}` {
		t.Fatalf("got %q", got)
	}
	got = runOn(t, p, `{"n": 1.0e2, "k": null, "b": true}`)
	if got != `{"n":1.0e2,"k":null,"b":true}` {
		t.Fatalf("got %q", got)
	}
}

func TestFilterExcludeDropsSubtree(t *testing.T) {
	p := New()
	p.Add(Transformation{
		Name: "drop-security", Kind: KindFilter,
		Filter: FilterConfig{Exclude: []string{"user.security"}},
	})
	got := runOn(t, p, `{"user":{"name":"x","security":{"pw":"y"}}}`)
	if got != `{"user":{"name":"x"}}` {
		t.Fatalf("got %q", got)
	}
}

func TestFilterIncludePreservesAncestors(t *testing.T) {
	p := New()
	p.Add(Transformation{
		Name: "profile-only", Kind: KindFilter,
		Filter: FilterConfig{Include: []string{"user.profile.*"}},
	})
	got := runOn(t, p, `{"user":{"name":"x","profile":{"bio":"b","age":9},"other":1}}`)
	if got != `{"user":{"profile":{"bio":"b","age":9}}}` {
		t.Fatalf("got %q", got)
	}
}

func TestFilterExcludeWinsOverIncludeWhenBothSupplied(t *testing.T) {
	p := New()
	p.Add(Transformation{
		Name: "both", Kind: KindFilter,
		Filter: FilterConfig{
			Include: []string{"user.profile.*"},
			Exclude: []string{"user.security"},
		},
	})
	got := runOn(t, p, `{"user":{"name":"x","profile":{"bio":"b"},"security":{"pw":"y"}}}`)
	// Exclude wins: the presence of Exclude patterns means Include is
	// ignored entirely, so only "user.security" is removed and everything
	// else survives (unlike include-only, which would have dropped "name").
	want := `{"user":{"name":"x","profile":{"bio":"b"}}}`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFilterIncludeOnArrayElements(t *testing.T) {
	p := New()
	p.Add(Transformation{
		Kind:   KindFilter,
		Filter: FilterConfig{Include: []string{"tags.0"}},
	})
	got := runOn(t, p, `{"tags":["a","b","c"]}`)
	if got != `{"tags":["a"]}` {
		t.Fatalf("got %q", got)
	}
}

func TestFilterDoubleStarMatchesAnyDepth(t *testing.T) {
	p := New()
	p.Add(Transformation{
		Kind:   KindFilter,
		Filter: FilterConfig{Exclude: []string{"**.secret"}},
	})
	got := runOn(t, p, `{"a":{"secret":1,"b":{"secret":2,"c":3}}}`)
	if got != `{"a":{"b":{"c":3}}}` {
		t.Fatalf("got %q", got)
	}
}

func TestValidateDuplicateKeyPermissiveAccumulates(t *testing.T) {
	p := New()
	p.Add(Transformation{Kind: KindValidate, Validate: ValidateConfig{Strict: false}})
	handler := errs.NewHandler(errs.DefaultConfig())
	sink := sinks.NewBufferSink(32)
	opts := token.Options{Handler: handler}
	if _, err := p.Run([]byte(`{"a":1,"a":2}`), opts, sink); err != nil {
		t.Fatalf("permissive mode should not abort: %v", err)
	}
	found := false
	for _, e := range handler.Errors() {
		if e.Kind == errs.Policy {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a Policy fault for the duplicate key")
	}
}

func TestValidateDuplicateKeyStrictAborts(t *testing.T) {
	p := New()
	p.Add(Transformation{Kind: KindValidate, Validate: ValidateConfig{Strict: true}})
	handler := errs.NewHandler(errs.DefaultConfig())
	sink := sinks.NewBufferSink(32)
	opts := token.Options{Handler: handler}
	_, err := p.Run([]byte(`{"a":1,"a":2}`), opts, sink)
	if err == nil {
		t.Fatal("expected strict validation to abort")
	}
}

func TestValidateCustomCheckHook(t *testing.T) {
	p := New()
	p.Add(Transformation{
		Kind: KindValidate,
		Validate: ValidateConfig{
			Strict: true,
			Check: func(tok token.Token, data []byte) error {
				if tok.Kind == token.Number {
					return errors.New("numbers are not allowed here")
				}
				return nil
			},
		},
	})
	handler := errs.NewHandler(errs.DefaultConfig())
	sink := sinks.NewBufferSink(32)
	opts := token.Options{Handler: handler}
	_, err := p.Run([]byte(`{"a":1}`), opts, sink)
	if err == nil {
		t.Fatal("expected custom check to abort on a Number token")
	}
}

func TestCustomTransformationDropsMatchingKey(t *testing.T) {
	p := New()
	p.Add(Transformation{
		Kind: KindCustom,
		Custom: CustomConfig{
			Fn: func(tok token.Token, data []byte, userData any) CustomAction {
				if tok.Kind == token.Key && string(data[tok.Start:tok.End]) == `"drop_me"` {
					return CustomDrop
				}
				return CustomKeep
			},
		},
	})
	got := runOn(t, p, `{"keep":1,"drop_me":2}`)
	if got != `{"keep":1}` {
		t.Fatalf("got %q", got)
	}
}

func TestCustomCleanupInvokedOnClose(t *testing.T) {
	called := false
	p := New()
	p.Add(Transformation{
		Kind: KindCustom,
		Custom: CustomConfig{
			Fn:      func(tok token.Token, data []byte, userData any) CustomAction { return CustomKeep },
			Cleanup: func(userData any) { called = true },
		},
	})
	p.Close()
	if !called {
		t.Fatal("expected Cleanup to run on Close")
	}
}

func TestPriorityOrderingAndInsertionTiebreak(t *testing.T) {
	p := New()
	p.Add(Transformation{Name: "b", Kind: KindMinify, Priority: 5})
	p.Add(Transformation{Name: "a", Kind: KindMinify, Priority: 5})
	p.Add(Transformation{Name: "c", Kind: KindMinify, Priority: 1})
	var order []string
	for _, tr := range p.transformations {
		order = append(order, tr.Name)
	}
	want := []string{"c", "b", "a"}
	for i, name := range want {
		if order[i] != name {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestArrayMinifyScenario(t *testing.T) {
	p := New()
	got := runOn(t, p, `[ 1 , 2 , 3 ]`)
	if got != `[1,2,3]` {
		t.Fatalf("got %q", got)
	}
}

func TestBestEffortRepairEmitsReplacementBytes(t *testing.T) {
	p := New()
	cfg := errs.DefaultConfig()
	cfg.Strategy = errs.BestEffort
	handler := errs.NewHandler(cfg)
	sink := sinks.NewBufferSink(32)
	opts := token.Options{Handler: handler}
	if _, err := p.Run([]byte(`{"x":123.456.789}`), opts, sink); err != nil {
		t.Fatalf("BestEffort run should not abort: %v", err)
	}
	if got := string(sink.Bytes()); got != `{"x":0}` {
		t.Fatalf("got %q, want %q", got, `{"x":0}`)
	}
}

func TestFilterIncludeOnPrettyPrintedContainerStillMinifies(t *testing.T) {
	p := New()
	p.Add(Transformation{
		Kind:   KindFilter,
		Filter: FilterConfig{Include: []string{"a"}},
	})
	got := runOn(t, p, `{"a": { "x" : 1 }, "b": 2}`)
	if got != `{"a":{"x":1}}` {
		t.Fatalf("got %q", got)
	}
}
