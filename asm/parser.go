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

import (
	"fmt"

	"github.com/foxvm/fvm/vm"
)

type parser struct {
	name   string
	tokens []token
	labels labelTable
	out    []vm.Word
	errs   ErrAsm
}

func newParser(name string) *parser {
	return &parser{
		name:   name,
		labels: newLabelTable(),
	}
}

func (p *parser) errorf(line int, format string, args ...interface{}) {
	p.errs = append(p.errs, Error{p.name, line, fmt.Sprintf(format, args...)})
}

func (p *parser) write(v vm.Word) {
	p.out = append(p.out, v)
}

// parse runs the full pipeline over source: lex, label collection, then
// emission in source order. Diagnostics accumulate in p.errs; emission
// continues past them so a single run surfaces every error.
func (p *parser) parse(source []byte) []vm.Word {
	p.tokens = p.lex(source)
	p.defineLabels()
	p.emit()
	return p.out
}

// emit is the second parser pass: tokens become words. Instructions emit
// their opcode, labels their meaning, numeric literals their value.
// Label definitions emit nothing. Strings emit one word per character
// after escape processing.
func (p *parser) emit() {
	for idx := range p.tokens {
		t := &p.tokens[idx]
		switch t.kind {
		case tokInstruction:
			p.write(mnemonics[t.text].opcode)
		case tokLabel:
			v, ok := p.labels.lookup(t.text)
			if !ok {
				p.errorf(t.line, "What is '%s'? Unrecognised label", t.text)
				continue
			}
			p.write(v)
		case tokString:
			p.emitString(t.text[:len(t.text)-2])
		case tokLabelDef, tokBad:
			// nothing
		default:
			p.write(p.convert(t))
		}
	}
}

// emitString writes one word per payload character. A backslash eats
// itself and remaps the next character: `\/` is a backslash, `\n` a
// newline, `\b` a backspace, `\r` a carriage return; anything else
// escaped passes through unchanged.
func (p *parser) emitString(payload string) {
	escape := false
	for k := 0; k < len(payload); k++ {
		c := payload[k]
		if !escape && c == '\\' {
			escape = true
			continue
		}
		if escape {
			switch c {
			case '/':
				c = '\\'
			case 'n':
				c = '\n'
			case 'b':
				c = '\b'
			case 'r':
				c = '\r'
			}
			escape = false
		}
		p.write(vm.Word(c))
	}
}
