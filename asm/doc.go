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

// Package asm provides utility functions to assemble and disassemble Fox
// VM code.
//
// Supported assembler mnemonics:
//
//	Instructions with a number in the "args" column expect that many
//	operand words in the cells following them.
//
//	opcode	asm	args	description
//	------	---	----	------------------------------------------------------
//	0	pl	2	place value (operand 1) into register (operand 2)
//	1	mv	2	copy register (operand 1) into register (operand 2)
//	2	st	0	store MDR at the location selected by MCH and MAR
//	3	ld	0	load MDR from the location selected by MCH and MAR
//	4	jm	1	jump to address
//	5	js	1	jump to address if ACC is non-zero
//	6	jc	1	jump to address if ACC is zero
//	7	a+	0	ACC += DAT
//	8	a-	0	ACC -= DAT
//	9	a!	0	ACC = bitwise NOT ACC
//	10	ai	0	ACC += 1
//	11	ad	0	ACC -= 1
//	12	a*	0	ACC *= DAT
//	13	a/	0	ACC /= DAT
//	14	a&	0	ACC &= DAT
//	15	a|	0	ACC |= DAT
//	16	a^	0	ACC ^= DAT
//	17	al	0	ACC <<= DAT
//	18	ar	0	ACC >>= DAT
//	19	gt	0	ACC = ACC > DAT
//	20	lt	0	ACC = ACC < DAT
//	21	ge	0	ACC = ACC >= DAT
//	22	le	0	ACC = ACC <= DAT
//	23	eq	0	ACC = ACC == DAT
//	24	ne	0	ACC = ACC != DAT
//	25	cl	1	push CEA on the callstack and jump to address
//	26	rt	0	pop the callstack and resume after the matching cl
//	27	fi	0	halt
//
// All comparisons and arithmetic are unsigned 64-bit; overflow wraps.
//
// Comments:
//
// A semicolon starts a comment that runs to the end of the line:
//
//	pl [5]d acc	; load five into the accumulator
//
// Literals:
//
// Literals are bracketed and tagged with a one-character suffix naming
// their kind: [101]b binary, [ff]x hexadecimal, [17]o octal, [42]d
// decimal, [hello]s string. Numeric payloads may use single quotes as
// thousands-style separators, [1'000'000]d. String payloads are captured
// verbatim, whitespace and newlines included; a backslash escapes the
// next character, with \/ producing a backslash, \n a newline, \b a
// backspace and \r a carriage return. A string occupies one ROM word per
// character.
//
// Labels:
//
// Identifiers consist of 0-9, A-Z, a-z and underscore. A trailing colon
// binds the identifier to the current ROM address; a trailing equals
// sign binds it to the value of the following numeric literal:
//
//	loop:			; address label
//	ten= [10]d		; value label
//	pl ten dat
//	jm loop
//
// A bare identifier used where a word is expected emits the label's
// meaning. Forward references are fine: addresses are assigned during
// lexing, before emission. The channel names (mem, inp, out, cst) and
// register names (mch, mar, mdr, acc, dat, cea, csp) are built-in labels
// and always available; lookups scan built-ins first, so user
// definitions cannot override them.
package asm
