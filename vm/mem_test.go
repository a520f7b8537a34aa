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

package vm_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/foxvm/fvm/vm"
)

func TestROM_roundTrip(t *testing.T) {
	name := filepath.Join(t.TempDir(), "image.fb")
	want := []vm.Word{vm.OpPlace, 42, vm.ACC, vm.OpFinish, ^vm.Word(0)}
	if err := vm.SaveROM(name, want); err != nil {
		t.Fatalf("%+v", err)
	}
	got, err := vm.LoadROM(name)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("loaded %d words, expected %d", len(got), len(want))
	}
	for k := range want {
		if got[k] != want[k] {
			t.Errorf("word %d = %d, expected %d", k, uint64(got[k]), uint64(want[k]))
		}
	}
}

func TestROM_littleEndian(t *testing.T) {
	name := filepath.Join(t.TempDir(), "image.fb")
	if err := vm.SaveROM(name, []vm.Word{0x0102030405060708}); err != nil {
		t.Fatalf("%+v", err)
	}
	b, err := os.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{8, 7, 6, 5, 4, 3, 2, 1}
	if len(b) != len(want) {
		t.Fatalf("image is %d bytes, expected %d", len(b), len(want))
	}
	for k := range want {
		if b[k] != want[k] {
			t.Errorf("byte %d = %#x, expected %#x", k, b[k], want[k])
		}
	}
}

func TestROM_partialWord(t *testing.T) {
	name := filepath.Join(t.TempDir(), "truncated.fb")
	if err := os.WriteFile(name, []byte{27, 0, 0}, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := vm.LoadROM(name); err == nil {
		t.Error("expected an error for a truncated image")
	}
}

func TestROM_missing(t *testing.T) {
	if _, err := vm.LoadROM(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected an error for a missing image")
	}
}
