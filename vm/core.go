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

// memRead reads main memory at addr, growing it with zero words as
// needed. Operand fetches use this too, so a program running off the end
// of the loaded image sees zeros, as if the image had trailing slack.
func (i *Instance) memRead(addr Word) (Word, error) {
	if err := i.mem.extend(addr); err != nil {
		e := i.newTrap(OutOfMemory)
		e.Err = err
		return 0, e
	}
	return i.mem.cells[int(addr)], nil
}

// memWrite writes main memory at addr, growing it as needed.
func (i *Instance) memWrite(addr, v Word) error {
	if err := i.mem.extend(addr); err != nil {
		e := i.newTrap(OutOfMemory)
		e.Err = err
		return e
	}
	i.mem.cells[int(addr)] = v
	return nil
}

func b2w(b bool) Word {
	if b {
		return 1
	}
	return 0
}

// Run starts execution of the VM at the current CEA and loops until the
// fi opcode is fetched, which returns nil, or a trap occurs, which
// returns a *Error describing it. After a trap CEA still addresses the
// faulting instruction, so Traceback reports against the right state.
func (i *Instance) Run() error {
	for {
		op, err := i.memRead(i.reg[CEA])
		if err != nil {
			return err
		}
		i.op = op
		if op == OpFinish {
			return nil
		}
		if op >= OpCount {
			return i.newTrapValue(UnknownInstruction, op)
		}
		switch op {
		case OpPlace:
			v, err := i.memRead(i.reg[CEA] + 1)
			if err != nil {
				return err
			}
			r, err := i.memRead(i.reg[CEA] + 2)
			if err != nil {
				return err
			}
			if r >= NumRegisters {
				return i.newTrapValue(UnknownRegister, r)
			}
			i.reg[r] = v
			i.reg[CEA] += 2
		case OpMove:
			rs, err := i.memRead(i.reg[CEA] + 1)
			if err != nil {
				return err
			}
			rd, err := i.memRead(i.reg[CEA] + 2)
			if err != nil {
				return err
			}
			if rd >= NumRegisters {
				return i.newTrapValue(UnknownRegister, rd)
			}
			if rs >= NumRegisters {
				return i.newTrapValue(UnknownRegister, rs)
			}
			i.reg[rd] = i.reg[rs]
			i.reg[CEA] += 2
		case OpStore:
			if err := i.store(); err != nil {
				return err
			}
		case OpLoad:
			if err := i.load(); err != nil {
				return err
			}
		case OpJump:
			t, err := i.memRead(i.reg[CEA] + 1)
			if err != nil {
				return err
			}
			i.reg[CEA] = t - 1
		case OpJumpSet:
			if i.reg[ACC] != 0 {
				t, err := i.memRead(i.reg[CEA] + 1)
				if err != nil {
					return err
				}
				i.reg[CEA] = t - 1
			} else {
				i.reg[CEA]++
			}
		case OpJumpClear:
			if i.reg[ACC] == 0 {
				t, err := i.memRead(i.reg[CEA] + 1)
				if err != nil {
					return err
				}
				i.reg[CEA] = t - 1
			} else {
				i.reg[CEA]++
			}
		case OpAdd:
			i.reg[ACC] += i.reg[DAT]
		case OpSub:
			i.reg[ACC] -= i.reg[DAT]
		case OpNot:
			i.reg[ACC] = ^i.reg[ACC]
		case OpInc:
			i.reg[ACC]++
		case OpDec:
			i.reg[ACC]--
		case OpMul:
			i.reg[ACC] *= i.reg[DAT]
		case OpDiv:
			if i.reg[DAT] == 0 {
				return i.newTrap(ZeroDivision)
			}
			i.reg[ACC] /= i.reg[DAT]
		case OpAnd:
			i.reg[ACC] &= i.reg[DAT]
		case OpOr:
			i.reg[ACC] |= i.reg[DAT]
		case OpXor:
			i.reg[ACC] ^= i.reg[DAT]
		case OpShl:
			i.reg[ACC] <<= i.reg[DAT]
		case OpShr:
			i.reg[ACC] >>= i.reg[DAT]
		case OpGt:
			i.reg[ACC] = b2w(i.reg[ACC] > i.reg[DAT])
		case OpLt:
			i.reg[ACC] = b2w(i.reg[ACC] < i.reg[DAT])
		case OpGe:
			i.reg[ACC] = b2w(i.reg[ACC] >= i.reg[DAT])
		case OpLe:
			i.reg[ACC] = b2w(i.reg[ACC] <= i.reg[DAT])
		case OpEq:
			i.reg[ACC] = b2w(i.reg[ACC] == i.reg[DAT])
		case OpNe:
			i.reg[ACC] = b2w(i.reg[ACC] != i.reg[DAT])
		case OpCall:
			i.cst.n++
			i.cst.reserve(i.cst.n)
			i.reg[CSP] = Word(i.cst.n - 1)
			i.cst.cells[int(i.reg[CSP])] = i.reg[CEA]
			t, err := i.memRead(i.reg[CEA] + 1)
			if err != nil {
				return err
			}
			i.reg[CEA] = t - 1
		case OpReturn:
			if i.reg[CSP] == ^Word(0) {
				return i.newTrap(CallstackUnderflow)
			}
			// CSP may have been repointed through the register file,
			// so the read goes through the growing accessor like any
			// raw callstack access.
			top, err := i.cst.extendRaw(i.reg[CSP])
			if err != nil {
				e := i.newTrap(OutOfMemory)
				e.Err = err
				return e
			}
			i.cst.n = top
			i.reg[CEA] = i.cst.cells[top] + 1
			i.reg[CSP]--
		}
		i.reg[CEA]++
		i.insCount++
	}
}
