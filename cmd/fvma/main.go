// This file is part of fvm - https://github.com/foxvm/fvm
//
// Copyright 2024 The fvm Authors
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

// Command fvma assembles Fox VM source into a binary ROM image.
//
// Usage:
//
//	fvma <input.fa> [<output.fb>]
//
// The output filename defaults to a.fb and must end with .fb. If any
// diagnostic is raised the output file is not written; the exit code
// stays 0 so toolchains can distinguish bad source (diagnostics on
// stderr) from a broken invocation (exit 1) or unreadable input
// (exit 2).
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/foxvm/fvm/asm"
	"github.com/foxvm/fvm/vm"
)

const defaultOutputFilename = "a.fb"

func main() {
	flag.Parse()
	if flag.NArg() < 1 || flag.NArg() > 2 {
		fmt.Fprintln(os.Stderr, "fvma -> Incorrect number of arguments passed to fvma")
		os.Exit(1)
	}

	inName := flag.Arg(0)
	f, err := os.Open(inName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fvma -> Could not open specified file: %v\n", err)
		os.Exit(2)
	}

	words, err := asm.Assemble(inName, bufio.NewReader(f))
	f.Close()
	failed := false
	if err != nil {
		failed = true
		if errs, ok := err.(asm.ErrAsm); ok {
			for _, e := range errs {
				fmt.Fprintf(os.Stderr, "fvma -> %v\n", e)
			}
		} else {
			fmt.Fprintf(os.Stderr, "fvma -> %v\n", err)
			os.Exit(2)
		}
	}

	outName := defaultOutputFilename
	if flag.NArg() == 2 {
		outName = flag.Arg(1)
		if !strings.HasSuffix(outName, ".fb") {
			fmt.Fprintln(os.Stderr, "fvma -> Output filename does not end with '.fb'")
			failed = true
		}
	}

	if failed {
		fmt.Fprintln(os.Stderr, "fvma -> Something smells fishy, so output file was not overwritten with generated binary")
		return
	}

	if err := vm.SaveROM(outName, words); err != nil {
		fmt.Fprintf(os.Stderr, "fvma -> Could not write output file: %v\n", err)
		os.Exit(2)
	}
}
