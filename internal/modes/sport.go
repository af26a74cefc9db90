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

package modes

import (
	"turbojson/internal/capabilities"
	"turbojson/internal/scanner"
	"turbojson/internal/sinks"
	"turbojson/internal/strstate"
)

// SPORTBytes minifies data in one pass, returning a single freshly
// allocated buffer sized to (at most) len(data). Preferred over ECO when
// the caller already holds the whole input in memory and wants the result
// as one contiguous allocation rather than a sequence of sink writes.
func SPORTBytes(data []byte) []byte {
	data = stripBOM(data)
	caps := capabilities.Detect()
	cls := scanner.Classify(data, caps)
	inStr, _ := strstate.Run(data, cls, strstate.Carry{})
	return stripWhitespace(data, cls, inStr)
}

// SPORT minifies data in one pass and writes the result to sink, then
// calls sink.Finish.
func SPORT(data []byte, sink sinks.Sink) error {
	out := SPORTBytes(data)
	if _, err := sink.Write(out); err != nil {
		return err
	}
	return sink.Finish()
}

func stripBOM(data []byte) []byte {
	if len(data) >= 3 && data[0] == bomBytes[0] && data[1] == bomBytes[1] && data[2] == bomBytes[2] {
		return data[3:]
	}
	return data
}
