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

package vm_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/foxvm/fvm/asm"
	"github.com/foxvm/fvm/vm"
)

// all-bits-set, the empty-callstack CSP value
const full = ^vm.Word(0)

func setup(t *testing.T, name, code string, opts ...vm.Option) *vm.Instance {
	t.Helper()
	words, err := asm.Assemble(name, strings.NewReader(code))
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	i, err := vm.New(words, opts...)
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	return i
}

// regs is a partial register expectation: only named entries are
// checked.
type regs map[int]vm.Word

var regNames = [vm.NumRegisters]string{"MCH", "MAR", "MDR", "ACC", "DAT", "CEA", "CSP"}

func check(t *testing.T, name string, i *vm.Instance, want regs) {
	t.Helper()
	err := i.Run()
	if err != nil {
		t.Errorf("%s: %+v", name, err)
		return
	}
	for r, v := range want {
		if got := i.Register(r); got != v {
			t.Errorf("%s: %s = %d, expected %d", name, regNames[r], uint64(got), uint64(v))
		}
	}
	if t.Failed() {
		var b bytes.Buffer
		fmt.Fprintf(&b, "%s:\n", name)
		asm.DisassembleAll(i.Memory(), 0, &b)
		t.Log(b.String())
	}
}

var tests = [...]struct {
	name string
	code string
	want regs
}{
	{"halt", "fi", regs{vm.CEA: 0, vm.CSP: full}},
	{"place", "pl [5]d acc fi", regs{vm.ACC: 5, vm.CEA: 3}},
	{"move", "pl [7]d acc mv acc dat fi", regs{vm.ACC: 7, vm.DAT: 7, vm.CEA: 6}},
	{"add", "pl [3]d acc pl [4]d dat a+ fi", regs{vm.ACC: 7, vm.CEA: 7}},
	{"sub", "pl [3]d acc pl [4]d dat a- fi", regs{vm.ACC: full, vm.CEA: 7}},
	{"not", "a! fi", regs{vm.ACC: full, vm.CEA: 1}},
	{"inc", "ai ai fi", regs{vm.ACC: 2}},
	{"dec", "ad fi", regs{vm.ACC: full}},
	{"mul", "pl [6]d acc pl [7]d dat a* fi", regs{vm.ACC: 42}},
	{"div", "pl [2'6]d acc pl [5]d dat a/ fi", regs{vm.ACC: 5}},
	{"and", "pl [1100]b acc pl [1010]b dat a& fi", regs{vm.ACC: 8}},
	{"or", "pl [1100]b acc pl [1010]b dat a| fi", regs{vm.ACC: 14}},
	{"xor", "pl [1100]b acc pl [1010]b dat a^ fi", regs{vm.ACC: 6}},
	{"shl", "pl [1]d acc pl [4]d dat al fi", regs{vm.ACC: 16}},
	{"shr", "pl [ff]x acc pl [4]d dat ar fi", regs{vm.ACC: 15}},
	{"gt", "pl [2]d acc pl [1]d dat gt fi", regs{vm.ACC: 1}},
	{"lt", "pl [2]d acc pl [1]d dat lt fi", regs{vm.ACC: 0}},
	{"ge", "pl [2]d acc pl [2]d dat ge fi", regs{vm.ACC: 1}},
	{"le", "pl [3]d acc pl [2]d dat le fi", regs{vm.ACC: 0}},
	{"eq", "pl [2]d acc pl [2]d dat eq fi", regs{vm.ACC: 1}},
	{"ne", "pl [2]d acc pl [2]d dat ne fi", regs{vm.ACC: 0}},
	{"jm", "jm end pl [1]d acc end: fi", regs{vm.ACC: 0, vm.CEA: 5}},
	{"js taken", "pl [1]d acc js yes pl [9]d dat yes: fi", regs{vm.DAT: 0, vm.CEA: 8}},
	{"js not taken", "js skip pl [9]d dat skip: fi", regs{vm.DAT: 9, vm.CEA: 5}},
	{"jc taken", "jc yes pl [9]d dat yes: fi", regs{vm.DAT: 0, vm.CEA: 5}},
	{"jc not taken", "pl [1]d acc jc skip pl [9]d dat skip: fi", regs{vm.DAT: 9, vm.CEA: 8}},
	{"call and return", "cl sub fi sub: pl [42]d acc rt", regs{vm.ACC: 42, vm.CSP: full, vm.CEA: 2}},
	{"nested calls", "cl a fi a: cl b rt b: ai rt", regs{vm.ACC: 1, vm.CSP: full}},
	{"unsigned compare", "ad pl [1]d dat gt fi", regs{vm.ACC: 1}},
}

func TestCore(t *testing.T) {
	for _, test := range tests {
		i := setup(t, test.name, test.code)
		check(t, test.name, i, test.want)
	}
}

func TestCore_callstackEmptyAfterReturn(t *testing.T) {
	i := setup(t, "callstack", "cl sub fi sub: rt")
	if err := i.Run(); err != nil {
		t.Fatalf("%+v", err)
	}
	if n := len(i.Callstack()); n != 0 {
		t.Errorf("callstack length %d, expected 0", n)
	}
	if csp := i.Register(vm.CSP); csp != full {
		t.Errorf("CSP = %d, expected all-bits-set", uint64(csp))
	}
}

// while a frame is live, the callstack channel exposes the return address
// that cl pushed
func TestCore_callstackFrameRead(t *testing.T) {
	i := setup(t, "cst length", "cl sub fi sub: pl [3]d mch pl [0]d mar ld rt")
	if err := i.Run(); err != nil {
		t.Fatalf("%+v", err)
	}
	// during sub, ld on channel CST read the pushed return address
	if mdr := i.Register(vm.MDR); mdr != 0 {
		t.Errorf("MDR = %d, expected 0 (address of the cl)", uint64(mdr))
	}
}

func TestCore_memoryGrowth(t *testing.T) {
	i := setup(t, "growth",
		"pl [0]d mch pl [100]d mar pl [77]d mdr st pl [0]d mdr ld fi")
	if err := i.Run(); err != nil {
		t.Fatalf("%+v", err)
	}
	if mdr := i.Register(vm.MDR); mdr != 77 {
		t.Errorf("MDR = %d, expected 77", uint64(mdr))
	}
	mem := i.Memory()
	if len(mem) != 101 {
		t.Errorf("memory length %d, expected 101", len(mem))
	}
	if mem[100] != 77 {
		t.Errorf("mem[100] = %d, expected 77", uint64(mem[100]))
	}
}

func TestCore_traps(t *testing.T) {
	trapTests := [...]struct {
		name string
		mem  []vm.Word
		trap vm.Trap
	}{
		{"unknown instruction", []vm.Word{99}, vm.UnknownInstruction},
		{"place bad register", []vm.Word{vm.OpPlace, 1, 9, vm.OpFinish}, vm.UnknownRegister},
		{"move bad source", []vm.Word{vm.OpMove, 9, 1, vm.OpFinish}, vm.UnknownRegister},
		{"store bad channel", []vm.Word{vm.OpPlace, 9, vm.MCH, vm.OpStore, vm.OpFinish}, vm.UnknownChannel},
		{"load bad channel", []vm.Word{vm.OpPlace, 9, vm.MCH, vm.OpLoad, vm.OpFinish}, vm.UnknownChannel},
		{"zero division", []vm.Word{vm.OpPlace, 5, vm.ACC, vm.OpDiv, vm.OpFinish}, vm.ZeroDivision},
		{"callstack underflow", []vm.Word{vm.OpReturn, vm.OpFinish}, vm.CallstackUnderflow},
	}
	for _, test := range trapTests {
		i, err := vm.New(test.mem)
		if err != nil {
			t.Fatalf("%s: %v", test.name, err)
		}
		err = i.Run()
		if err == nil {
			t.Errorf("%s: expected a trap, got clean halt", test.name)
			continue
		}
		e, ok := err.(*vm.Error)
		if !ok {
			t.Errorf("%s: error %T is not a *vm.Error", test.name, err)
			continue
		}
		if e.Trap != test.trap {
			t.Errorf("%s: trap %v, expected %v", test.name, e.Trap, test.trap)
		}
	}
}

func TestCore_mnemonicRoundTrip(t *testing.T) {
	for op := vm.Word(0); op < vm.OpCount; op++ {
		name := vm.OpName(op)
		if name == "" {
			t.Fatalf("opcode %d has no mnemonic", uint64(op))
		}
		code := name
		for n := vm.OpArgs(op); n > 0; n-- {
			code += " [0]d"
		}
		words, err := asm.Assemble(name, strings.NewReader(code))
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if words[0] != op {
			t.Errorf("%s assembled to %d, expected %d", name, uint64(words[0]), uint64(op))
		}
	}
}

func TestInstructionCount(t *testing.T) {
	i := setup(t, "count", "pl [3]d acc pl [4]d dat a+ fi")
	if err := i.Run(); err != nil {
		t.Fatalf("%+v", err)
	}
	if n := i.InstructionCount(); n != 3 {
		t.Errorf("instruction count %d, expected 3", n)
	}
}
