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

import "strings"

// splitPattern compiles a dot-separated path pattern ("user.profile.*",
// "**.secret") into its segments. Compilation is purely syntactic: each
// segment is kept as either a literal, "*" (matches exactly one segment),
// or "**" (matches zero or more segments).
func splitPattern(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ".")
}

// matchSegments reports whether path matches pattern in full, honoring "*"
// (one segment, any value) and "**" (any number of segments, including
// zero). This is the same backtracking shape as shell double-star globs,
// just over path segments instead of path components.
func matchSegments(path, pattern []string) bool {
	if len(pattern) == 0 {
		return len(path) == 0
	}
	head := pattern[0]
	if head == "**" {
		if matchSegments(path, pattern[1:]) {
			return true
		}
		if len(path) == 0 {
			return false
		}
		return matchSegments(path[1:], pattern)
	}
	if len(path) == 0 {
		return false
	}
	if head != "*" && head != path[0] {
		return false
	}
	return matchSegments(path[1:], pattern[1:])
}
