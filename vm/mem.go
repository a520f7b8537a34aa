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

import (
	"bufio"
	"encoding/binary"
	"math"
	"os"

	"github.com/pkg/errors"
)

// wordBuf is a grow-on-demand buffer of words backing the MEM and CST
// channels. The allocated size (len(cells)) and the logical length (n)
// are tracked separately: raw callstack stores land beyond the logical
// length but within the allocation, and the traceback reporter only walks
// the logical length.
type wordBuf struct {
	cells []Word
	n     int
}

// index converts a machine address to a slice index, rejecting addresses
// no allocation could cover.
func index(addr Word) (int, error) {
	if addr >= math.MaxInt {
		return 0, errors.Errorf("address %d out of range", uint64(addr))
	}
	return int(addr), nil
}

// reserve grows the allocation to hold at least size words. Newly
// allocated words read as zero.
func (b *wordBuf) reserve(size int) {
	if size <= len(b.cells) {
		return
	}
	if n := 2 * len(b.cells); n > size {
		size = n
	}
	t := make([]Word, size)
	copy(t, b.cells)
	b.cells = t
}

// extend grows the logical length (and the allocation) to cover addr.
func (b *wordBuf) extend(addr Word) error {
	a, err := index(addr)
	if err != nil {
		return err
	}
	if a+1 > b.n {
		b.n = a + 1
		b.reserve(b.n)
	}
	return nil
}

// extendRaw grows the allocation only, leaving the logical length alone.
func (b *wordBuf) extendRaw(addr Word) (int, error) {
	a, err := index(addr)
	if err != nil {
		return 0, err
	}
	b.reserve(a + 1)
	return a, nil
}

// LoadROM reads a packed little-endian word image from fileName. The
// word count is the file size in bytes divided by 8; a trailing partial
// word is an error.
func LoadROM(fileName string) ([]Word, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "open failed")
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		return nil, errors.Wrap(err, "fstat failed")
	}
	sz := st.Size()
	if sz%8 != 0 {
		return nil, errors.Errorf("%v: %d bytes is not a whole number of words", fileName, sz)
	}
	if sz/8 > int64((^uint(0))>>1) { // MaxInt
		return nil, errors.Errorf("%v: file too large", fileName)
	}
	mem := make([]Word, sz/8)
	if err = binary.Read(bufio.NewReader(f), binary.LittleEndian, mem); err != nil {
		return nil, errors.Wrap(err, "load failed")
	}
	return mem, nil
}

// SaveROM writes mem to fileName as a packed little-endian word image.
// The file is removed again if the write fails part way.
func SaveROM(fileName string, mem []Word) (err error) {
	f, err := os.Create(fileName)
	if err != nil {
		return errors.Wrap(err, "create failed")
	}
	w := bufio.NewWriter(f)
	defer func() {
		f.Close()
		if err != nil {
			os.Remove(fileName)
		}
	}()
	var b [8]byte
	for _, v := range mem {
		binary.LittleEndian.PutUint64(b[:], uint64(v))
		if _, err = w.Write(b[:]); err != nil {
			return errors.Wrap(err, "write failed")
		}
	}
	if err = w.Flush(); err != nil {
		return errors.Wrap(err, "write failed")
	}
	return nil
}
