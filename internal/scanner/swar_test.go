package scanner

import (
	"math/rand"
	"testing"

	"turbojson/internal/capabilities"
)

func classifyBoth(t *testing.T, data []byte) (swar, scalar Classification) {
	t.Helper()
	swar = Classify(data, capabilities.Capabilities{HasByteCompareMask: true})
	scalar = Classify(data, capabilities.Capabilities{HasByteCompareMask: false})
	return
}

func bitmapsEqual(a, b Bitmap) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := 0; i < a.Len(); i++ {
		if a.Get(i) != b.Get(i) {
			return false
		}
	}
	return true
}

func TestClassifyAgreesAcrossPaths(t *testing.T) {
	samples := [][]byte{
		[]byte(``),
		[]byte(`{"a":1,"b":[1,2,3]}`),
		[]byte("  \t\n\r  { } "),
		[]byte(`{"esc":"a\\b\"c"}`),
		[]byte(`"quote at start of an 9-byte-unaligned-remainder tail!"`),
	}
	for _, s := range samples {
		swar, scalar := classifyBoth(t, s)
		if !bitmapsEqual(swar.Struct, scalar.Struct) {
			t.Errorf("Struct mismatch for %q", s)
		}
		if !bitmapsEqual(swar.Quote, scalar.Quote) {
			t.Errorf("Quote mismatch for %q", s)
		}
		if !bitmapsEqual(swar.Escape, scalar.Escape) {
			t.Errorf("Escape mismatch for %q", s)
		}
		if !bitmapsEqual(swar.WS, scalar.WS) {
			t.Errorf("WS mismatch for %q", s)
		}
	}
}

func TestClassifyRandomAgreesAcrossPaths(t *testing.T) {
	alphabet := []byte(`{}[]:," \t\n\rabc123\\`)
	r := rand.New(rand.NewSource(1))
	for trial := 0; trial < 200; trial++ {
		n := r.Intn(40)
		data := make([]byte, n)
		for i := range data {
			data[i] = alphabet[r.Intn(len(alphabet))]
		}
		swar, scalar := classifyBoth(t, data)
		if !bitmapsEqual(swar.Struct, scalar.Struct) ||
			!bitmapsEqual(swar.Quote, scalar.Quote) ||
			!bitmapsEqual(swar.Escape, scalar.Escape) ||
			!bitmapsEqual(swar.WS, scalar.WS) {
			t.Fatalf("mismatch for %q", data)
		}
	}
}

func TestClassifyMarksExpectedPositions(t *testing.T) {
	data := []byte(`{"k": 1}`)
	c := Classify(data, capabilities.Detect())
	// positions: { " k " :   1 }
	//            0 1 2 3 4 5 6 7
	if !c.Struct.Get(0) || !c.Struct.Get(4) || !c.Struct.Get(7) {
		t.Fatal("expected struct bytes at 0, 4, 7")
	}
	if !c.Quote.Get(1) || !c.Quote.Get(3) {
		t.Fatal("expected quote bytes at 1, 3")
	}
	if !c.WS.Get(5) {
		t.Fatal("expected whitespace at 5")
	}
	if c.Escape.PopCount() != 0 {
		t.Fatal("expected no escapes")
	}
}

func TestIsWhitespaceAndIsStructural(t *testing.T) {
	for _, b := range []byte(" \t\n\r") {
		if !IsWhitespace(b) {
			t.Errorf("expected %q to be whitespace", b)
		}
	}
	for _, b := range []byte("{}[]:,") {
		if !IsStructural(b) {
			t.Errorf("expected %q to be structural", b)
		}
	}
	if IsWhitespace('a') || IsStructural('a') {
		t.Fatal("'a' should be neither")
	}
}
