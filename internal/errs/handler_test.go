package errs

import "testing"

func TestSkipAndContinueSkipsOneByte(t *testing.T) {
	h := NewHandler(DefaultConfig())
	act := h.Handle(Context{Kind: Numeric, Severity: SeverityError, Message: "bad number"})
	if act.Action != ActionSkip || act.SkipBytes != 1 {
		t.Fatalf("expected skip 1 byte, got %+v", act)
	}
}

func TestBestEffortRepairsNumeric(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Strategy = BestEffort
	h := NewHandler(cfg)
	act := h.Handle(Context{Kind: Numeric, Severity: SeverityError})
	if act.Action != ActionRepair || string(act.RepairData) != "0" {
		t.Fatalf("expected repair with 0, got %+v", act)
	}
}

func TestBestEffortRepairsLexical(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Strategy = BestEffort
	h := NewHandler(cfg)
	act := h.Handle(Context{Kind: Lexical, Severity: SeverityError})
	if act.Action != ActionRepair || string(act.RepairData) != "?" {
		t.Fatalf("expected repair with ?, got %+v", act)
	}
}

func TestAbortStrategyAborts(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Strategy = Abort
	h := NewHandler(cfg)
	act := h.Handle(Context{Kind: Structural, Severity: SeverityFatal})
	if act.Action != ActionAbort {
		t.Fatalf("expected abort, got %+v", act)
	}
}

func TestResourceFaultAlwaysAborts(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Strategy = BestEffort
	h := NewHandler(cfg)
	act := h.Handle(Context{Kind: Resource, Severity: SeverityFatal})
	if act.Action != ActionAbort {
		t.Fatalf("resource faults must always abort, got %+v", act)
	}
}

func TestCustomStrategyDelegates(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Strategy = Custom
	cfg.CustomRecover = func(ctx Context) RecoveryAction {
		return RecoveryAction{Action: ActionSkip, SkipBytes: 7}
	}
	h := NewHandler(cfg)
	act := h.Handle(Context{Kind: Lexical})
	if act.SkipBytes != 7 {
		t.Fatalf("expected custom skip of 7, got %+v", act)
	}
}

func TestAccumulationCapsAndCountsDiscarded(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxAccumulated = 2
	h := NewHandler(cfg)
	for i := 0; i < 5; i++ {
		h.Handle(Context{Kind: Numeric, Severity: SeverityError, Offset: i})
	}
	if len(h.Errors()) != 2 {
		t.Fatalf("expected 2 retained errors, got %d", len(h.Errors()))
	}
	if h.Discarded() != 3 {
		t.Fatalf("expected 3 discarded, got %d", h.Discarded())
	}
}

func TestSeverityThresholdFiltersAccumulation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SeverityThreshold = SeverityError
	h := NewHandler(cfg)
	h.Handle(Context{Kind: Structural, Severity: SeverityWarning})
	if len(h.Errors()) != 0 {
		t.Fatalf("warning below threshold should not accumulate, got %d", len(h.Errors()))
	}
	h.Handle(Context{Kind: Structural, Severity: SeverityError})
	if len(h.Errors()) != 1 {
		t.Fatalf("expected 1 accumulated error, got %d", len(h.Errors()))
	}
}

func TestBuildReportGroupsByKindAndSeverity(t *testing.T) {
	h := NewHandler(DefaultConfig())
	h.Handle(Context{Kind: Numeric, Severity: SeverityError})
	h.Handle(Context{Kind: Numeric, Severity: SeverityWarning})
	h.Handle(Context{Kind: Lexical, Severity: SeverityFatal})

	r := BuildReport(h)
	if r.Total != 3 {
		t.Fatalf("expected total 3, got %d", r.Total)
	}
	if r.ByKind[Numeric] != 2 {
		t.Fatalf("expected 2 numeric, got %d", r.ByKind[Numeric])
	}
	if r.ByKind[Lexical] != 1 {
		t.Fatalf("expected 1 lexical, got %d", r.ByKind[Lexical])
	}
	counts := r.KindCounts()
	if len(counts) != 2 {
		t.Fatalf("expected 2 distinct kinds, got %d", len(counts))
	}
}
