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

package asm

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"github.com/foxvm/fvm/internal/fvi"
	"github.com/foxvm/fvm/vm"
)

type instruction struct {
	opcode vm.Word
	args   int
}

var mnemonics = make(map[string]instruction)

func init() {
	for op := vm.Word(0); op < vm.OpCount; op++ {
		mnemonics[vm.OpName(op)] = instruction{op, vm.OpArgs(op)}
	}
}

// Assemble compiles assembly read from the supplied io.Reader and
// returns the resulting word stream and error if any.
//
// The name parameter is used only in error messages to name the source
// of the error. If the io.Reader is a file, name should be the file
// name.
//
// If reading from r fails, the returned error wraps the read error.
// Otherwise a non-nil error is an ErrAsm value holding every diagnostic
// with its source line. The word stream is
// returned even then so callers can inspect it, but it must not be
// written out: diagnostics mean missing or wrong words.
func Assemble(name string, r io.Reader) ([]vm.Word, error) {
	source, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: read failed", name)
	}
	p := newParser(name)
	words := p.parse(source)
	if len(p.errs) > 0 {
		return words, p.errs
	}
	return words, nil
}

// Disassemble writes a disassembly of the words in the given slice at
// position pc to the specified io.Writer and returns the position of the
// next opcode and any write error. Words that are not opcodes are
// printed as bare numbers.
func Disassemble(words []vm.Word, pc int, w io.Writer) (next int, err error) {
	ew, _ := w.(*fvi.ErrWriter)
	if ew == nil {
		ew = fvi.NewErrWriter(w)
	}

	op := words[pc]
	name := vm.OpName(op)
	if name == "" {
		io.WriteString(ew, strconv.FormatUint(uint64(op), 10))
		return pc + 1, ew.Err
	}
	io.WriteString(ew, name)
	pc++
	for n := vm.OpArgs(op); n > 0; n-- {
		if pc >= len(words) {
			io.WriteString(ew, " ???")
			break
		}
		ew.Write([]byte{' '})
		io.WriteString(ew, strconv.FormatUint(uint64(words[pc]), 10))
		pc++
	}
	return pc, ew.Err
}

// DisassembleAll writes a disassembly of all words in the given slice to
// the specified io.Writer. The base argument specifies the real address
// of the first word (words[0]). It will return any write error.
func DisassembleAll(words []vm.Word, base int, w io.Writer) error {
	ew := fvi.NewErrWriter(w)
	for pc := 0; pc < len(words); {
		fmt.Fprintf(ew, "% 10d\t", base+pc)
		pc, _ = Disassemble(words, pc, ew)
		ew.Write([]byte{'\n'})
		if ew.Err != nil {
			return ew.Err
		}
	}
	return nil
}
