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

// labelEntry binds an identifier to its 64-bit meaning: a ROM address
// for `name:` definitions, a literal value for `name=` definitions.
type labelEntry struct {
	name    string
	meaning vm.Word
}

// labelTable is an ordered table looked up by linear scan; the first
// match wins. The built-in channel and register names are inserted
// ahead of user definitions, so they cannot be redefined, and duplicate
// user definitions resolve to the earliest one. A map would lose these
// semantics.
type labelTable []labelEntry

var builtinLabels = [...]labelEntry{
	{"cst", 3},
	{"mem", 0},
	{"inp", 1},
	{"out", 2},

	{"mch", vm.MCH},
	{"mar", vm.MAR},
	{"mdr", vm.MDR},
	{"acc", vm.ACC},
	{"dat", vm.DAT},
	{"cea", vm.CEA},
	{"csp", vm.CSP},
}

func newLabelTable() labelTable {
	t := make(labelTable, len(builtinLabels), len(builtinLabels)+16)
	copy(t, builtinLabels[:])
	return t
}

func (t labelTable) lookup(name string) (vm.Word, bool) {
	for _, e := range t {
		if e.name == name {
			return e.meaning, true
		}
	}
	return 0, false
}

func (t *labelTable) define(name string, meaning vm.Word) {
	*t = append(*t, labelEntry{name, meaning})
}

// legal identifier characters are 0-9, A-Z, a-z and underscore
func isLabelChar(c byte) bool {
	return c >= '0' && c <= '9' ||
		c >= 'A' && c <= 'Z' ||
		c >= 'a' && c <= 'z' ||
		c == '_'
}

// defineLabels is the first parser pass: it collects every label
// definition into the table, reporting illegal identifier characters
// along the way, and strips the trailing `:` or `=` from the token text
// so that later references match the bare identifier.
func (p *parser) defineLabels() {
	for idx := range p.tokens {
		t := &p.tokens[idx]
		if t.kind != tokLabelDef {
			continue
		}
		name := t.text[:len(t.text)-1]
		for k := 0; k < len(name); k++ {
			if !isLabelChar(name[k]) {
				p.errorf(t.line,
					"In label declaration for '%s', found illegal character '%c'", t.text, name[k])
			}
		}
		switch t.text[len(t.text)-1] {
		case ':':
			p.labels.define(name, t.addr)
		case '=':
			if idx+1 >= len(p.tokens) {
				p.errorf(t.line, "Expected token after variable declaration using '=', but got nothing")
				p.labels.define(name, 0)
				break
			}
			next := &p.tokens[idx+1]
			if next.kind == tokString {
				p.errorf(t.line,
					"You can't assign a label to a string: labels can only represent addresses or single values")
				p.labels.define(name, 0)
				break
			}
			p.labels.define(name, p.convert(next))
		}
		t.text = name
	}
}
