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

type tokenKind int

const (
	tokInstruction tokenKind = iota
	tokLabelDef
	tokLabel
	tokString
	tokBinary
	tokHexadecimal
	tokOctal
	tokDecimal
	tokBad // unrecognised literal suffix; classified but never emitted
)

// token carries a lexeme plus the metadata the parser needs: the source
// line for diagnostics and the ROM word offset at which its emission
// will begin. String literals occupy one word per raw payload character,
// label definitions occupy none, everything else occupies one.
type token struct {
	kind tokenKind
	text string
	line int
	addr vm.Word
}

func isSpace(c byte) bool {
	return c == ';' || c == '\n' || c == ' ' || c == '\t'
}

// lex splits source into tokens. Tokens are delimited by runs of
// whitespace and comments; `[` opens a raw literal captured verbatim
// (escaped `\]` does not close it) and the character following the
// closing `]` tags the literal's kind. The running address cursor
// advances by the raw payload length for strings, by one word for
// instructions, labels and numeric literals, and not at all for label
// definitions.
func (p *parser) lex(source []byte) []token {
	var (
		tokens    []token
		buf       []byte
		comment   bool
		rawText   bool
		labelTok  bool
		line      = 1
		startLine = 1
		addr      vm.Word
		rawLen    int
		operands  int
	)

	// a synthetic trailing newline flushes the final token
	src := make([]byte, len(source), len(source)+1)
	copy(src, source)
	src = append(src, '\n')

	for i := 0; i < len(src); i++ {
		c := src[i]
		if c == '\n' {
			line++
		}
		if !rawText {
			if c == ';' {
				comment = true
			} else if c == '\n' {
				comment = false
			}
		}
		whitespace := !rawText && i+1 < len(src) && isSpace(c) && isSpace(src[i+1])
		if c == '[' && !comment {
			rawText = true
			continue
		} else if c == ']' && i > 1 && src[i-1] != '\\' {
			rawText = false
		}
		if comment || whitespace {
			continue
		}
		if !rawText {
			switch c {
			case '\n', ' ', '\t':
				c = '\n'
			case ':', '=':
				labelTok = true
			}
			if c == '\n' && len(buf) > 0 {
				t := token{text: string(buf), line: startLine, addr: addr}
				owed := operands
				if operands > 0 {
					operands--
				}
				switch n := len(t.text); {
				case n > 2 && t.text[n-2] == ']':
					switch t.text[n-1] {
					case 's':
						t.kind = tokString
					case 'b':
						t.kind = tokBinary
					case 'x':
						t.kind = tokHexadecimal
					case 'o':
						t.kind = tokOctal
					case 'd':
						t.kind = tokDecimal
					default:
						p.errorf(t.line, "Unrecognised raw-data type specifier '%c'", t.text[n-1])
						t.kind = tokBad
					}
				case t.text[n-1] == ':' || t.text[n-1] == '=':
					t.kind = tokLabelDef
				case owed == 0:
					if ins, ok := mnemonics[t.text]; ok {
						t.kind = tokInstruction
						operands = ins.args
					} else {
						t.kind = tokLabel
					}
				default:
					t.kind = tokLabel
				}
				tokens = append(tokens, t)

				buf = buf[:0]
				if labelTok {
					labelTok = false
				} else {
					if t.kind == tokString {
						addr += vm.Word(rawLen)
					} else {
						addr++
					}
					rawLen = 0
				}
			}
		} else {
			rawLen++
		}
		if c != '\n' || rawText {
			if len(buf) == 0 {
				startLine = line
			}
			buf = append(buf, c)
		}
	}
	return tokens
}
