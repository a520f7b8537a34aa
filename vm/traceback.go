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
	"fmt"
	"io"

	"github.com/foxvm/fvm/internal/fvi"
)

var registerNames = [NumRegisters]string{
	"MCH (Memory Channel)           ",
	"MAR (Memory Address Register)  ",
	"MDR (Memory Data Register)     ",
	"ACC (Accumulator)              ",
	"DAT (Data)                     ",
	"CEA (Current Execution Address)",
	"CSP (Callstack Pointer)        ",
}

// Traceback writes a human-readable dump of the machine to w: the
// register file, the callstack top first with a marker on the CSP row,
// and main memory with markers on CEA and, when MCH selects main memory,
// MAR. The fvmr command calls this on every fatal runtime error.
func (i *Instance) Traceback(w io.Writer) error {
	ew := fvi.NewErrWriter(w)

	fmt.Fprintf(ew, "fvmr -> Traceback:\n"+
		"\t---Registers---\n"+
		"\tNumber\tName                           \tCurrent Value\n")
	for r := 0; r < NumRegisters; r++ {
		fmt.Fprintf(ew, "\t%d\t%s\t%d\n", r, registerNames[r], uint64(i.reg[r]))
	}

	fmt.Fprintf(ew, "\t---Callstack---\n\tAddress\tValue\n")
	for a := i.cst.n - 1; a >= 0; a-- {
		marker := ""
		if Word(a) == i.reg[CSP] {
			marker = "\t<- CSP"
		}
		fmt.Fprintf(ew, "\t%d\t%d%s\n", a, uint64(i.cst.cells[a]), marker)
	}

	fmt.Fprintf(ew, "\t---Main Memory---\n\tAddress\tValue\n")
	for a := 0; a < i.mem.n; a++ {
		marker := ""
		if Word(a) == i.reg[CEA] {
			marker = "\t<- CEA"
		}
		if i.reg[MCH] == ChanMEM && Word(a) == i.reg[MAR] {
			marker += "\t<- MAR"
		}
		fmt.Fprintf(ew, "\t%d\t%d%s\n", a, uint64(i.mem.cells[a]), marker)
	}
	return ew.Err
}
