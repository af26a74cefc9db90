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

// Package sinks implements the minifier's output-destination abstraction: a
// minimal write/finish capability set that lets ECO stream output
// incrementally without caring whether the caller wants an in-memory
// buffer, a file, or an arbitrary io.Writer.
package sinks

// Sink is an append-only byte destination. Write may be called many times;
// Finish is called exactly once, after the last Write, to flush any
// buffering and release resources.
type Sink interface {
	Write(p []byte) (int, error)
	Finish() error
}
