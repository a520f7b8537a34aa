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

import "github.com/foxvm/fvm/vm"

// digitValue maps a character to the value it represents as a digit.
// Digits are 0-9 and a-f, case insensitive; whether a digit fits the
// literal's radix is not checked beyond membership in this set.
func digitValue(c byte) (vm.Word, bool) {
	switch {
	case c >= '0' && c <= '9':
		return vm.Word(c - '0'), true
	case c >= 'a' && c <= 'f':
		return vm.Word(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return vm.Word(c-'A') + 10, true
	}
	return 0, false
}

// convert decodes the text of a numeric literal token into the word it
// represents. The token text still carries its `]<base>` tail; the walk
// runs right to left over the digits before it, accumulating
// digit×position and multiplying the position weight by the base at each
// step. Single quotes are separators and skipped. An invalid character
// reports a diagnostic and yields 0.
func (p *parser) convert(t *token) vm.Word {
	var base vm.Word
	switch t.text[len(t.text)-1] {
	case 'b':
		base = 2
	case 'x':
		base = 16
	case 'o':
		base = 8
	case 'd':
		base = 10
	}

	var value vm.Word
	mult := vm.Word(1)
	for k := len(t.text) - 3; k >= 0; k-- {
		c := t.text[k]
		if c == '\'' {
			continue
		}
		digit, ok := digitValue(c)
		if !ok {
			p.errorf(t.line,
				"Invalid character in literal; chars must be 0-9, A-Z, or a single-quote (') as separator, but got '%c'", c)
			return 0
		}
		value += digit * mult
		mult *= base
	}
	return value
}
