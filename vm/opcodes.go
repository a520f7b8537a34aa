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

// Fox Virtual Machine opcodes.
const (
	OpPlace Word = iota // pl <value> <register>
	OpMove              // mv <register> <register>
	OpStore             // st
	OpLoad              // ld
	OpJump              // jm <address>
	OpJumpSet           // js <address>
	OpJumpClear         // jc <address>
	OpAdd               // a+
	OpSub               // a-
	OpNot               // a!
	OpInc               // ai
	OpDec               // ad
	OpMul               // a*
	OpDiv               // a/
	OpAnd               // a&
	OpOr                // a|
	OpXor               // a^
	OpShl               // al
	OpShr               // ar
	OpGt                // gt
	OpLt                // lt
	OpGe                // ge
	OpLe                // le
	OpEq                // eq
	OpNe                // ne
	OpCall              // cl <address>
	OpReturn            // rt
	OpFinish            // fi
)

// OpCount is the number of opcodes. OpFinish terminates the fetch loop,
// so the dispatcher only ever invokes handlers for opcodes below it.
const OpCount = 28

var opNames = [OpCount]string{
	"pl", "mv",
	"st", "ld",
	"jm", "js", "jc",
	"a+", "a-", "a!", "ai", "ad", "a*", "a/",
	"a&", "a|", "a^", "al", "ar",
	"gt", "lt", "ge", "le", "eq", "ne",
	"cl", "rt",
	"fi",
}

var opArgs = [OpCount]int{
	2, 2,
	0, 0,
	1, 1, 1,
	0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0,
	1, 0,
	0,
}

// OpName returns the assembler mnemonic for op, or "" if op is not an
// opcode.
func OpName(op Word) string {
	if op >= OpCount {
		return ""
	}
	return opNames[op]
}

// OpArgs returns the number of operand words consumed by op.
func OpArgs(op Word) int {
	if op >= OpCount {
		return 0
	}
	return opArgs[op]
}
