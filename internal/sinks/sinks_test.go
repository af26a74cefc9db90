package sinks

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestBufferSinkAccumulates(t *testing.T) {
	s := NewBufferSink(0)
	s.Write([]byte("abc"))
	s.Write([]byte("def"))
	if err := s.Finish(); err != nil {
		t.Fatal(err)
	}
	if string(s.Bytes()) != "abcdef" {
		t.Fatalf("got %q", s.Bytes())
	}
}

func TestFileSinkWritesAndFlushes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")
	s, err := NewFileSink(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Write([]byte(`{"a":1}`))
	if err := s.Finish(); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `{"a":1}` {
		t.Fatalf("got %q", got)
	}
}

func TestWriterSinkWritesThrough(t *testing.T) {
	var buf bytes.Buffer
	s := NewWriterSink(&buf)
	s.Write([]byte("hello"))
	if err := s.Finish(); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "hello" {
		t.Fatalf("got %q", buf.String())
	}
}
