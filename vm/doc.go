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

// Package vm implements the Fox Virtual Machine runtime.
//
// The machine is register based: seven 64-bit registers, four memory
// channels selected through the MCH register (main memory, input, output
// and the callstack), and a fetch/execute loop over 64-bit words. A ROM
// image produced by the assembler (see the asm package) is loaded into
// main memory at boot and executed from word 0 until the fi opcode is
// fetched.
//
// All machine state lives in an Instance; there is no package level
// mutable state, so several instances can be created and run one after
// another within the same process.
//
// Instruction execution increments CEA once per cycle. Opcodes that take
// operands, or that transfer control, adjust CEA themselves before the
// post-increment; the jump family compensates by storing target-1.
package vm
