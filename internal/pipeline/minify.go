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

// MinifyConfig configures a Minify-kind Transformation. Minify drops
// nothing structurally of its own accord — rendering already produces
// minified output for whatever Filter/Custom left standing (see
// internal/modes for the single-pass ECO/SPORT equivalent) — so this is an
// empty marker type today. It exists as a distinct Kind so Engine.Stats can
// report "a Minify transformation ran" and so a caller can register one
// explicitly rather than relying on implicit behavior.
type MinifyConfig struct{}
