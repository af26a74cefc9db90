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

import "sync"

// Strategy selects how a Handler responds to a non-fatal fault.
type Strategy int

const (
	// SkipAndContinue advances past the faulty byte span and resumes.
	SkipAndContinue Strategy = iota
	// BestEffort substitutes a plausible replacement (0 for a bad number,
	// ? for a bad escape) and resumes immediately after the faulty span.
	BestEffort
	// Abort surfaces the first fault and stops.
	Abort
	// Custom delegates the decision to Config.CustomRecover.
	Custom
)

// CustomRecoverFunc lets a caller plug in its own recovery policy when
// Strategy is Custom.
type CustomRecoverFunc func(Context) RecoveryAction

// Config configures a Handler.
type Config struct {
	Strategy          Strategy
	MaxAccumulated    int
	SeverityThreshold Severity
	Log               bool
	CustomRecover     CustomRecoverFunc
}

// DefaultConfig returns the handler configuration used when a caller
// supplies none: skip-and-continue, accumulate up to 100 faults, report
// everything at warning severity or above, no logging.
func DefaultConfig() Config {
	return Config{
		Strategy:          SkipAndContinue,
		MaxAccumulated:     100,
		SeverityThreshold:  SeverityWarning,
		Log:                false,
	}
}

// Handler is the central fault-recovery object threaded through a tokenizer
// run. Its accumulation is mutex-guarded, so it is safe for concurrent use.
// TURBO workers do not report faults to a Handler.
type Handler struct {
	cfg Config

	mu         sync.Mutex
	accumd     []Context
	discarded  int
}

// NewHandler builds a Handler from cfg.
func NewHandler(cfg Config) *Handler {
	return &Handler{cfg: cfg}
}

// Handle records ctx (subject to the severity threshold and the
// accumulation cap) and returns the RecoveryAction the caller must apply.
// Resource faults always return ActionAbort regardless of configured
// strategy — they are never recoverable in place.
func (h *Handler) Handle(ctx Context) RecoveryAction {
	if ctx.Severity >= h.cfg.SeverityThreshold {
		h.accumulate(ctx)
	}
	if ctx.Kind == Resource {
		return RecoveryAction{Action: ActionAbort}
	}
	switch h.cfg.Strategy {
	case Abort:
		return RecoveryAction{Action: ActionAbort}
	case BestEffort:
		return RecoveryAction{Action: ActionRepair, RepairData: repairFor(ctx.Kind)}
	case Custom:
		if h.cfg.CustomRecover != nil {
			return h.cfg.CustomRecover(ctx)
		}
		return RecoveryAction{Action: ActionSkip, SkipBytes: 1}
	case SkipAndContinue:
		fallthrough
	default:
		return RecoveryAction{Action: ActionSkip, SkipBytes: 1}
	}
}

// repairFor returns the BestEffort placeholder for a given fault Kind.
func repairFor(k Kind) []byte {
	switch k {
	case Numeric:
		return []byte("0")
	case Lexical:
		return []byte("?")
	case Literal:
		return []byte("null")
	default:
		return nil
	}
}

func (h *Handler) accumulate(ctx Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.accumd) >= h.cfg.MaxAccumulated {
		h.discarded++
		return
	}
	h.accumd = append(h.accumd, ctx)
}

// Errors returns a snapshot of every accumulated Context, in the order
// accumulated. No per-chunk merging takes place: TURBO runs produce no
// accumulated Contexts.
func (h *Handler) Errors() []Context {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Context, len(h.accumd))
	copy(out, h.accumd)
	return out
}

// Discarded returns the number of faults that arrived after MaxAccumulated
// was reached and were counted but not retained.
func (h *Handler) Discarded() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.discarded
}
