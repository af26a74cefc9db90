package strstate

import (
	"testing"

	"turbojson/internal/capabilities"
	"turbojson/internal/scanner"
)

func run(t *testing.T, s string) (scanner.Bitmap, Carry) {
	t.Helper()
	data := []byte(s)
	cls := scanner.Classify(data, capabilities.Detect())
	return Run(data, cls, Carry{})
}

func TestSimpleString(t *testing.T) {
	// indices: 0:"  1:a  2:b  3:"
	bm, carry := run(t, `"ab"`)
	for i := 0; i < 4; i++ {
		if !bm.Get(i) {
			t.Errorf("position %d should be in-string", i)
		}
	}
	if carry.InString || carry.Escaped {
		t.Fatalf("expected closed string, got %+v", carry)
	}
}

func TestEscapedQuoteDoesNotClose(t *testing.T) {
	// "a\"b" -> the \" in the middle must not close the string.
	s := `"a\"b"`
	bm, carry := run(t, s)
	if carry.InString {
		t.Fatal("string should be closed by final quote")
	}
	for i := 0; i < len(s); i++ {
		if !bm.Get(i) {
			t.Errorf("position %d (%q) should be in-string", i, s[i])
		}
	}
}

func TestOutsideStringNotMarked(t *testing.T) {
	s := `{"k":"v"} `
	bm, _ := run(t, s)
	if bm.Get(0) {
		t.Fatal("'{' should not be in-string")
	}
	if bm.Get(4) {
		t.Fatal("':' should not be in-string")
	}
	if bm.Get(len(s) - 1) {
		t.Fatal("trailing space should not be in-string")
	}
}

func TestCarryAcrossChunkBoundary(t *testing.T) {
	full := `"hello world"`
	data := []byte(full)
	caps := capabilities.Detect()

	// Split mid-string, after `"hello w`.
	split := 8
	cls1 := scanner.Classify(data[:split], caps)
	bm1, carry := Run(data[:split], cls1, Carry{})
	if !carry.InString {
		t.Fatal("expected carry to report still inside string")
	}

	cls2 := scanner.Classify(data[split:], caps)
	bm2, carryOut := Run(data[split:], cls2, carry)
	if carryOut.InString {
		t.Fatal("expected string to be closed by end of second chunk")
	}

	// Every byte across both chunks except none (whole literal is a string)
	// should be marked in-string.
	for i := 0; i < split; i++ {
		if !bm1.Get(i) {
			t.Errorf("chunk1 position %d should be in-string", i)
		}
	}
	for i := 0; i < len(data)-split; i++ {
		if !bm2.Get(i) {
			t.Errorf("chunk2 position %d should be in-string", i)
		}
	}
}

func TestTrailingBackslashCarriesEscape(t *testing.T) {
	// Split right after a lone backslash inside a string: the quote that
	// follows in the next chunk must be treated as escaped, not closing.
	full := `"ab\"cd"`
	data := []byte(full)
	caps := capabilities.Detect()

	split := 4 // "ab\  |  "cd"
	cls1 := scanner.Classify(data[:split], caps)
	_, carry := Run(data[:split], cls1, Carry{})
	if !carry.Escaped {
		t.Fatal("expected trailing backslash to carry escape-pending")
	}

	cls2 := scanner.Classify(data[split:], caps)
	_, carryOut := Run(data[split:], cls2, carry)
	if carryOut.InString {
		t.Fatal("expected string closed by final quote")
	}
}
