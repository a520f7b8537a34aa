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

// Command fvmr executes a Fox VM ROM image.
//
// It loads hardware/rom into main memory, opens hardware/disk for
// read+write, and runs from word 0 until the fi opcode. Bytes read on
// channel INP come from stdin, bytes stored on channel OUT go to
// stdout, diagnostics and tracebacks go to stderr.
//
// Exit codes: 0 on a clean halt, 2 when the ROM or disk file is
// missing, 3 when memory cannot be allocated, 4 on an execution error
// (with a traceback on stderr).
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/foxvm/fvm/vm"
)

var (
	romFile  = flag.String("rom", "hardware/rom", "ROM image `filename`")
	diskFile = flag.String("disk", "hardware/disk", "disk image `filename`")
	debug    = flag.Bool("debug", false, "enable debug diagnostics")
)

func main() {
	flag.Parse()

	mem, err := vm.LoadROM(*romFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fvmr -> Could not access ROM: %v\n", err)
		os.Exit(2)
	}

	disk, err := os.OpenFile(*diskFile, os.O_RDWR, 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fvmr -> Could not access Disk: %v\n", err)
		os.Exit(2)
	}
	defer disk.Close()

	stdout := bufio.NewWriter(os.Stdout)

	i, err := vm.New(mem,
		vm.Input(bufio.NewReader(os.Stdin)),
		vm.Output(stdout),
		vm.Disk(disk))
	if err != nil {
		fmt.Fprintf(os.Stderr, "fvmr -> %v\n", err)
		os.Exit(3)
	}

	err = i.Run()
	stdout.Flush()
	if err == nil {
		return
	}

	if *debug {
		fmt.Fprintf(os.Stderr, "fvmr -> %+v\n", err)
		// the wrapped cause, if any, prints its stack trace with %+v
		if e, ok := err.(*vm.Error); ok && e.Err != nil {
			fmt.Fprintf(os.Stderr, "fvmr -> cause: %+v\n", e.Err)
		}
	} else {
		fmt.Fprintf(os.Stderr, "fvmr -> %v\n", err)
	}
	i.Traceback(os.Stderr)
	disk.Close()
	os.Exit(4)
}
