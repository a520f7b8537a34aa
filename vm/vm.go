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

package vm

import (
	"io"

	"github.com/pkg/errors"
)

// Word is the machine's universal unit: registers, memory cells and ROM
// words are all unsigned 64-bit integers. Arithmetic wraps around 2^64.
type Word uint64

// Register indices.
const (
	MCH = iota // memory channel selector
	MAR        // memory address register
	MDR        // memory data register
	ACC        // accumulator
	DAT        // data operand for accumulator ops
	CEA        // current execution address
	CSP        // callstack pointer

	NumRegisters = 7
)

// Memory channels, selected by the MCH register.
const (
	ChanMEM Word = 0 // main memory
	ChanINP Word = 1 // input
	ChanOUT Word = 2 // output
	ChanCST Word = 3 // callstack
)

// allocSize is the default initial callstack allocation in words.
const allocSize = 50

// Instance represents a Fox VM instance.
type Instance struct {
	reg      [NumRegisters]Word
	mem      wordBuf
	cst      wordBuf
	op       Word // opcode currently being executed, for error context
	insCount int64
	input    io.ByteReader
	output   io.Writer
	disk     io.ReadWriteSeeker
	diag     io.Writer
}

// Option interface
type Option func(*Instance) error

// Input sets the byte source backing channel INP at address 0. Reads are
// blocking; the reader is wrapped into an io.ByteReader if it does not
// implement one.
func Input(r io.Reader) Option {
	return func(i *Instance) error {
		i.input = newByteReader(r)
		return nil
	}
}

// Output sets the byte sink backing channel OUT at address 0.
func Output(w io.Writer) Option {
	return func(i *Instance) error {
		i.output = w
		return nil
	}
}

// Disk attaches the seekable byte stream backing channel INP/OUT at
// address 1.
func Disk(rw io.ReadWriteSeeker) Option {
	return func(i *Instance) error {
		i.disk = rw
		return nil
	}
}

// CallstackSize sets the initial callstack allocation in words. The
// default is 50. The callstack still grows on demand; this only avoids
// early reallocations.
func CallstackSize(size int) Option {
	return func(i *Instance) error {
		if size <= 0 {
			return errors.Errorf("invalid callstack size %d", size)
		}
		i.cst.reserve(size)
		return nil
	}
}

// Diagnostics sets the writer receiving non-fatal runtime warnings. The
// default is os.Stderr; tests point it elsewhere.
func Diagnostics(w io.Writer) Option {
	return func(i *Instance) error {
		i.diag = w
		return nil
	}
}

// SetOptions sets the provided options.
func (i *Instance) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	return nil
}

// New creates a new Fox VM instance with the given ROM image as the
// initial contents of main memory. Execution will start at word 0.
//
// All registers start at 0 except CSP, which starts at all-bits-set to
// mark the callstack empty. cl and rt keep the callstack's logical length
// equal to CSP+1 modulo 2^64; a program that writes CSP directly through
// pl or mv breaks that relationship.
func New(mem []Word, opts ...Option) (*Instance, error) {
	i := &Instance{
		mem: wordBuf{cells: mem, n: len(mem)},
	}
	i.reg[CSP] = ^Word(0)
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	if i.cst.cells == nil {
		i.cst.reserve(allocSize)
	}
	return i, nil
}

// Register returns the current contents of register r.
func (i *Instance) Register(r int) Word {
	return i.reg[r]
}

// Registers returns a copy of the register file.
func (i *Instance) Registers() [NumRegisters]Word {
	return i.reg
}

// Memory returns the live contents of main memory. Value changes are
// reflected in the instance, re-slicing is not.
func (i *Instance) Memory() []Word {
	return i.mem.cells[:i.mem.n]
}

// Callstack returns the live contents of the callstack up to its logical
// length. Entries parked beyond the length by raw channel stores are not
// included.
func (i *Instance) Callstack() []Word {
	return i.cst.cells[:i.cst.n]
}

// InstructionCount returns the number of instructions executed so far.
func (i *Instance) InstructionCount() int64 {
	return i.insCount
}
