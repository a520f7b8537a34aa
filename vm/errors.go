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

import "strconv"

// List of VM traps for Trap.
const (
	UnknownInstruction = Trap(iota)
	UnknownRegister
	UnknownChannel
	CallstackUnderflow
	ZeroDivision
	OutOfMemory
	IOError
)

var strTrap = []string{
	"encountered unknown instruction",
	"no such register",
	"attempted access to unknown MCH",
	"callstack underflow",
	"division of accumulator by zero",
	"could not allocate memory",
	"I/O error",
}

// Trap describes the reason for a fatal runtime error.
type Trap int

func (t Trap) Error() string {
	return strTrap[t]
}

// Error describes the cause and the machine context of a fatal runtime
// error. It is the error type returned by Instance.Run; the fvmr command
// feeds it back to Instance.Traceback.
type Error struct {
	Trap  Trap  // nature of the trap
	Err   error // underlying I/O or allocation error, if any
	CEA   Word  // execution address of the faulting instruction
	Op    Word  // the opcode being executed
	Value Word  // offending value for UnknownInstruction/Register/Channel
}

func (e *Error) Error() string {
	msg := e.Trap.Error()
	switch e.Trap {
	case UnknownInstruction, UnknownRegister, UnknownChannel:
		msg += " '" + strconv.FormatUint(uint64(e.Value), 10) + "'"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg + " at " + strconv.FormatUint(uint64(e.CEA), 10)
}

// Cause returns the underlying error, making Error friendly to
// pkg/errors chains.
func (e *Error) Cause() error { return e.Err }

func (i *Instance) newTrapValue(t Trap, v Word) *Error {
	return &Error{
		Trap:  t,
		CEA:   i.reg[CEA],
		Op:    i.op,
		Value: v,
	}
}

func (i *Instance) newTrap(t Trap) *Error {
	return i.newTrapValue(t, 0)
}

func (i *Instance) newIOError(err error) *Error {
	e := i.newTrap(IOError)
	e.Err = err
	return e
}
