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

package sinks

// BufferSink accumulates written bytes into memory. Finish is a no-op;
// Bytes returns the accumulated result.
type BufferSink struct {
	buf []byte
}

// NewBufferSink allocates a BufferSink pre-sized to hint bytes, the same
// upfront-allocation discipline SPORT uses for its output buffer.
func NewBufferSink(hint int) *BufferSink {
	return &BufferSink{buf: make([]byte, 0, hint)}
}

func (s *BufferSink) Write(p []byte) (int, error) {
	s.buf = append(s.buf, p...)
	return len(p), nil
}

func (s *BufferSink) Finish() error { return nil }

// Bytes returns the accumulated output. Valid after Finish, and harmless to
// call before it since BufferSink never defers any work to Finish.
func (s *BufferSink) Bytes() []byte { return s.buf }
