package capabilities

import "testing"

func TestDetectNeverFails(t *testing.T) {
	reset()
	caps := Detect()
	if caps.VectorWidth != Vector64 && caps.VectorWidth != VectorScalar {
		t.Fatalf("unexpected vector width: %v", caps.VectorWidth)
	}
}

func TestDetectIsCached(t *testing.T) {
	reset()
	a := Detect()
	b := Detect()
	if a != b {
		t.Fatalf("detect should be stable across calls: %+v != %+v", a, b)
	}
}

func TestDetectNUMAFallsBackToSingleDomain(t *testing.T) {
	resetNUMA()
	topo := DetectNUMA()
	if len(topo.Domains) == 0 {
		t.Fatal("expected at least one domain")
	}
	for _, d := range topo.Domains {
		if len(d.CPUs) == 0 {
			t.Fatalf("domain %d has no CPUs", d.ID)
		}
	}
}

func TestDetectNUMAIsCached(t *testing.T) {
	resetNUMA()
	a := DetectNUMA()
	b := DetectNUMA()
	if len(a.Domains) != len(b.Domains) {
		t.Fatalf("topology should be stable across calls")
	}
}
