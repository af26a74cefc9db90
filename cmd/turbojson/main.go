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

// Package main provides the turbojson CLI: the core contract only
// (positional input/output, --mode, --validate, --threads). No banner text
// or extra ergonomics flags — those are explicitly out of scope.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"turbojson"
	"turbojson/internal/errs"
	"turbojson/internal/token"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// Exit codes per the CLI core contract: 0 valid/success, 1 invalid JSON,
// 2 file-not-found, 3 other I/O or resource error.
const (
	exitOK              = 0
	exitInvalidJSON     = 1
	exitFileNotFound    = 2
	exitResourceOrUsage = 3
)

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("turbojson", flag.ContinueOnError)
	fs.SetOutput(stderr)
	modeFlag := fs.String("mode", "sport", "minifier mode: eco|sport|turbo")
	validate := fs.Bool("validate", false, "run the tokenizer and report faults; emit no output on success")
	threads := fs.Int("threads", 0, "TURBO worker count (0 means one per core)")
	if err := fs.Parse(args); err != nil {
		return exitResourceOrUsage
	}

	positional := fs.Args()
	if len(positional) < 1 {
		fmt.Fprintln(stderr, "usage: turbojson <input-file-or-dash> [<output-file-or-dash>] [--mode eco|sport|turbo] [--validate] [--threads N]")
		return exitResourceOrUsage
	}
	inputPath := positional[0]
	outputPath := "-"
	if len(positional) >= 2 {
		outputPath = positional[1]
	}

	mode, ok := turbojson.ParseMode(*modeFlag)
	if !ok {
		fmt.Fprintf(stderr, "unknown mode %q\n", *modeFlag)
		return exitResourceOrUsage
	}

	input, err := readInput(inputPath, stdin)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintln(stderr, err)
			return exitFileNotFound
		}
		fmt.Fprintln(stderr, err)
		return exitResourceOrUsage
	}

	if *validate {
		return runValidate(input, stderr)
	}

	out, err := turbojson.MinifyWithOptions(input, turbojson.Options{Mode: mode, Threads: *threads})
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitInvalidJSON
	}

	if err := writeOutput(outputPath, out, stdout); err != nil {
		fmt.Fprintln(stderr, err)
		return exitResourceOrUsage
	}
	return exitOK
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// runValidate tokenizes input without producing minified output, reporting
// every accumulated fault to stderr. Exit code 1 on any fault (fatal or
// merely accumulated), 0 if the input tokenized cleanly.
func runValidate(input []byte, stderr io.Writer) int {
	handler := errs.NewHandler(errs.DefaultConfig())
	stream := token.New(input, token.Options{Handler: handler})
	for {
		if _, ok := stream.Next(); !ok {
			break
		}
	}

	if fault := stream.Err(); fault != nil {
		fmt.Fprintln(stderr, fault.Error())
		return exitInvalidJSON
	}

	faults := handler.Errors()
	if len(faults) == 0 {
		return exitOK
	}
	for _, f := range faults {
		fmt.Fprintln(stderr, f.Error())
	}
	fmt.Fprintf(stderr, "%d error(s)\n", len(faults))
	return exitInvalidJSON
}
