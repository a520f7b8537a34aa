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
	"strings"
)

// Error is a single assembler diagnostic tied to a source line.
type Error struct {
	Name string // source name, as passed to Assemble
	Line int
	Msg  string
}

func (e Error) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Name, e.Line, e.Msg)
}

// ErrAsm is the list of diagnostics accumulated over a whole assembly.
// Diagnostics are non-fatal: assembly runs to completion to surface as
// many of them as possible, but any entry in the list means the output
// must not be written.
type ErrAsm []Error

func (e ErrAsm) Error() string {
	s := make([]string, len(e))
	for n, err := range e {
		s[n] = err.Error()
	}
	return strings.Join(s, "\n")
}
