// Copyright 2024 The EMBLOCS Authors
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

package emblocs

import (
	"errors"
	"testing"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.RTPoolSize = 256
	cfg.MetaPoolSize = 1024
	return cfg
}

var notDef = &ComponentDef{
	Name: "not",
	PinDefs: []PinDef{
		{Name: "in", Type: TypeBit, Dir: DirIn},
		{Name: "out", Type: TypeBit, Dir: DirOut},
	},
	FunctionDefs: []FunctionDef{
		{Name: "funct", FP: NoFP, Func: func(k *Kernel, block BlockIdx, _ uint32) {
			in, _ := k.FindPin(block, "in")
			out, _ := k.FindPin(block, "out")
			k.SetPinValue(out, BitValue(!k.PinValue(in).Bit()))
		}},
	},
}

func TestNewBlockDuplicateName(t *testing.T) {
	k := NewKernel(testConfig())
	if _, err := k.NewBlock("inv1", notDef, nil); err != nil {
		t.Fatalf("first NewBlock: %v", err)
	}
	metaAfterFirst := k.meta.avail()
	rtAfterFirst := k.rt.avail()

	_, err := k.NewBlock("inv1", notDef, nil)
	if err == nil {
		t.Fatal("expected ErrNameExists on duplicate block name")
	}
	var kerr *KernelError
	if !errors.As(err, &kerr) || kerr.Err != ErrNameExists {
		t.Fatalf("expected ErrNameExists, got %v", err)
	}

	// The arenas are monotonic and never free, so a rejected duplicate name
	// must not have been granted any space at all: the collision has to be
	// caught before reserve/alloc, not rolled back afterward.
	if got := k.meta.avail(); got != metaAfterFirst {
		t.Errorf("meta arena free space changed on rejected duplicate: got %d, want %d", got, metaAfterFirst)
	}
	if got := k.rt.avail(); got != rtAfterFirst {
		t.Errorf("rt arena free space changed on rejected duplicate: got %d, want %d", got, rtAfterFirst)
	}
}

func TestNewBlockRejectsUnwantedPersonality(t *testing.T) {
	k := NewKernel(testConfig())
	_, err := k.NewBlock("inv1", notDef, "unexpected")
	var kerr *KernelError
	if !errors.As(err, &kerr) || kerr.Err != ErrNoPersonality {
		t.Fatalf("expected ErrNoPersonality, got %v", err)
	}
}

func TestFindPinAndFunction(t *testing.T) {
	k := NewKernel(testConfig())
	blk, err := k.NewBlock("inv1", notDef, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := k.FindPin(blk, "in"); !ok {
		t.Error("expected to find pin 'in'")
	}
	if _, ok := k.FindPin(blk, "nonexistent"); ok {
		t.Error("did not expect to find pin 'nonexistent'")
	}
	if _, ok := k.FindFunction(blk, "funct"); !ok {
		t.Error("expected to find function 'funct'")
	}
}

func TestRTPoolExhaustion(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RTPoolSize = 8 // two words
	k := NewKernel(cfg)
	if _, err := k.NewSignal("s1", TypeBit); err != nil {
		t.Fatal(err)
	}
	if _, err := k.NewSignal("s2", TypeBit); err != nil {
		t.Fatal(err)
	}
	_, err := k.NewSignal("s3", TypeBit)
	var kerr *KernelError
	if !errors.As(err, &kerr) || kerr.Err != ErrNoRTRAM {
		t.Fatalf("expected ErrNoRTRAM, got %v", err)
	}
}

func TestSignalRejectsRawType(t *testing.T) {
	k := NewKernel(testConfig())
	_, err := k.NewSignal("s1", TypeRaw)
	var kerr *KernelError
	if !errors.As(err, &kerr) || kerr.Err != ErrRawSignal {
		t.Fatalf("expected ErrRawSignal, got %v", err)
	}
}
