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
	"fmt"
	"io"
	"math"
	"os"

	"github.com/pkg/errors"
)

// byteReaderWrapper wraps a basic reader into an io.ByteReader.
type byteReaderWrapper struct {
	io.Reader
}

func (r *byteReaderWrapper) ReadByte() (byte, error) {
	var b [1]byte
	for {
		n, err := r.Read(b[:])
		if n > 0 {
			return b[0], nil
		}
		if err != nil {
			return 0, err
		}
	}
}

// newByteReader returns either r if it implements io.ByteReader or wraps
// it up into a byteReaderWrapper.
func newByteReader(r io.Reader) io.ByteReader {
	switch br := r.(type) {
	case nil:
		return nil
	case io.ByteReader:
		return br
	default:
		return &byteReaderWrapper{r}
	}
}

// warnf reports a non-fatal runtime warning. Execution continues.
func (i *Instance) warnf(format string, args ...interface{}) {
	w := i.diag
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintf(w, "fvmr -> Warning, "+format+"\n", args...)
}

func (i *Instance) diskSeek(offset Word) error {
	if i.disk == nil {
		return i.newIOError(errors.New("no disk attached"))
	}
	if offset > math.MaxInt64 {
		return i.newIOError(errors.Errorf("disk offset %d out of range", uint64(offset)))
	}
	if _, err := i.disk.Seek(int64(offset), io.SeekStart); err != nil {
		return i.newIOError(errors.Wrap(err, "disk seek failed"))
	}
	return nil
}

// store implements st: write MDR to the location selected by MCH and MAR.
func (i *Instance) store() error {
	switch i.reg[MCH] {
	case ChanMEM:
		return i.memWrite(i.reg[MAR], i.reg[MDR])
	case ChanINP:
		switch i.reg[MAR] {
		case 0:
			// The reference pushes the byte back into the stdin
			// stream, which no portable host can express. Dropped.
			return nil
		case 1:
			return i.diskSeek(i.reg[MDR])
		default:
			i.warnf("writing to address on MCH 1 that is currently unimplemented")
			return nil
		}
	case ChanOUT:
		switch i.reg[MAR] {
		case 0:
			if i.output == nil {
				return nil
			}
			if _, err := i.output.Write([]byte{byte(i.reg[MDR])}); err != nil {
				return i.newIOError(errors.Wrap(err, "output write failed"))
			}
			return nil
		case 1:
			if i.disk == nil {
				return i.newIOError(errors.New("no disk attached"))
			}
			if _, err := i.disk.Write([]byte{byte(i.reg[MDR])}); err != nil {
				return i.newIOError(errors.Wrap(err, "disk write failed"))
			}
			return nil
		default:
			i.warnf("writing to address on MCH 2 that is currently unimplemented")
			return nil
		}
	case ChanCST:
		a, err := i.cst.extendRaw(i.reg[MAR])
		if err != nil {
			e := i.newTrap(OutOfMemory)
			e.Err = err
			return e
		}
		i.cst.cells[a] = i.reg[MDR]
		return nil
	default:
		return i.newTrapValue(UnknownChannel, i.reg[MCH])
	}
}

// load implements ld: read the location selected by MCH and MAR into MDR.
func (i *Instance) load() error {
	switch i.reg[MCH] {
	case ChanMEM:
		v, err := i.memRead(i.reg[MAR])
		if err != nil {
			return err
		}
		i.reg[MDR] = v
		return nil
	case ChanINP:
		switch i.reg[MAR] {
		case 0:
			if i.input == nil {
				i.reg[MDR] = ^Word(0)
				return nil
			}
			b, err := i.input.ReadByte()
			if err != nil {
				// end of input reads as all-bits-set
				i.reg[MDR] = ^Word(0)
				return nil
			}
			i.reg[MDR] = Word(b)
			return nil
		case 1:
			if i.disk == nil {
				return i.newIOError(errors.New("no disk attached"))
			}
			pos, err := i.disk.Seek(0, io.SeekCurrent)
			if err != nil {
				return i.newIOError(errors.Wrap(err, "disk tell failed"))
			}
			i.reg[MDR] = Word(pos)
			return nil
		default:
			i.warnf("reading from address on MCH 1 that is currently unimplemented")
			return nil
		}
	case ChanOUT:
		switch i.reg[MAR] {
		case 0:
			// The reference reads a byte back from stdout here, which
			// is undefined behaviour on any real host. MDR reads 0.
			i.reg[MDR] = 0
			return nil
		case 1:
			if i.disk == nil {
				return i.newIOError(errors.New("no disk attached"))
			}
			var b [1]byte
			n, err := i.disk.Read(b[:])
			if n == 1 {
				i.reg[MDR] = Word(b[0])
				return nil
			}
			if err != nil && err != io.EOF {
				return i.newIOError(errors.Wrap(err, "disk read failed"))
			}
			// at end of disk MDR is left alone
			return nil
		default:
			i.warnf("reading from address on MCH 2 that is currently unimplemented")
			return nil
		}
	case ChanCST:
		a, err := i.cst.extendRaw(i.reg[MAR])
		if err != nil {
			e := i.newTrap(OutOfMemory)
			e.Err = err
			return e
		}
		i.reg[MDR] = i.cst.cells[a]
		return nil
	default:
		return i.newTrapValue(UnknownChannel, i.reg[MCH])
	}
}
