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

func TestLinkPinSignalTypeMismatch(t *testing.T) {
	k := NewKernel(testConfig())
	blk, _ := k.NewBlock("inv1", notDef, nil)
	pin, _ := k.FindPin(blk, "in")
	sig, _ := k.NewSignal("s1", TypeFloat)

	err := k.LinkPinSignal(pin, sig)
	var kerr *KernelError
	if !errors.As(err, &kerr) || kerr.Err != ErrTypeMismatch {
		t.Fatalf("expected ErrTypeMismatch, got %v", err)
	}
}

func TestLinkPinSignalRawBypassesTypeCheck(t *testing.T) {
	k := NewKernel(testConfig())
	blk, _ := k.NewBlock("inv1", notDef, nil)
	// AddPin directly to get a raw pin onto the block, since notDef has none.
	rawPin, err := k.AddPin(blk, PinDef{Name: "raw_in", Type: TypeRaw, Dir: DirIn})
	if err != nil {
		t.Fatal(err)
	}
	sig, _ := k.NewSignal("s1", TypeU32)
	if err := k.LinkPinSignal(rawPin, sig); err != nil {
		t.Fatalf("raw pin should accept any signal type: %v", err)
	}
	k.SetSignalValue(sig, U32Value(42))
	if got := k.PinValue(rawPin).U32(); got != 42 {
		t.Errorf("raw pin should read through to the signal's bits, got %d", got)
	}
}

func TestLinkPinSignalAlreadyLinkedWithoutImplicitUnlink(t *testing.T) {
	cfg := testConfig()
	cfg.ImplicitUnlinkOnLink = false
	k := NewKernel(cfg)
	blk, _ := k.NewBlock("inv1", notDef, nil)
	pin, _ := k.FindPin(blk, "in")
	sig1, _ := k.NewSignal("s1", TypeBit)
	sig2, _ := k.NewSignal("s2", TypeBit)

	if err := k.LinkPinSignal(pin, sig1); err != nil {
		t.Fatal(err)
	}
	err := k.LinkPinSignal(pin, sig2)
	var kerr *KernelError
	if !errors.As(err, &kerr) || kerr.Err != ErrAlreadyLinked {
		t.Fatalf("expected ErrAlreadyLinked, got %v", err)
	}
}

func TestLinkPinSignalImplicitUnlinkOnRelink(t *testing.T) {
	k := NewKernel(testConfig()) // ImplicitUnlinkOnLink defaults true
	blk, _ := k.NewBlock("inv1", notDef, nil)
	pin, _ := k.FindPin(blk, "in")
	sig1, _ := k.NewSignal("s1", TypeBit)
	sig2, _ := k.NewSignal("s2", TypeBit)

	if err := k.LinkPinSignal(pin, sig1); err != nil {
		t.Fatal(err)
	}
	if err := k.LinkPinSignal(pin, sig2); err != nil {
		t.Fatalf("implicit unlink-then-relink should succeed: %v", err)
	}
	k.SetSignalValue(sig2, BitValue(true))
	if !k.PinValue(pin).Bit() {
		t.Error("pin should now read through to sig2")
	}
}

// TestUnlinkRelinkSameSignal verifies the Open Question decision recorded
// in DESIGN.md: unlinking then relinking a pin to the signal it was already
// bound to behaves like a fresh link, except that the pin's dummy cell now
// holds whatever value was live at the moment of unlink rather than its
// zero-initialized value.
func TestUnlinkRelinkSameSignal(t *testing.T) {
	k := NewKernel(testConfig())
	blk, _ := k.NewBlock("inv1", notDef, nil)
	pin, _ := k.FindPin(blk, "in")
	sig, _ := k.NewSignal("s1", TypeBit)

	if err := k.LinkPinSignal(pin, sig); err != nil {
		t.Fatal(err)
	}
	k.SetSignalValue(sig, BitValue(true))

	if err := k.UnlinkPin(pin); err != nil {
		t.Fatal(err)
	}
	if !k.PinValue(pin).Bit() {
		t.Error("dummy cell should hold the pre-unlink value after unlink")
	}

	if err := k.LinkPinSignal(pin, sig); err != nil {
		t.Fatal(err)
	}
	k.SetSignalValue(sig, BitValue(false))
	if k.PinValue(pin).Bit() {
		t.Error("after relinking, pin should read through to the signal again")
	}
}

func TestLinkFunctionThreadFPContainment(t *testing.T) {
	k := NewKernel(testConfig())
	blk, _ := k.NewBlock("inv1", notDef, nil)
	// notDef's function is NoFP, so it may join a NoFP thread.
	noFPThread, _ := k.NewThread("t1", 1_000_000, NoFP)
	funct, _ := k.FindFunction(blk, "funct")
	if err := k.LinkFunctionThread(funct, noFPThread); err != nil {
		t.Fatalf("NoFP function should join a NoFP thread: %v", err)
	}

	hasFPDef := &ComponentDef{
		Name:         "fpuser",
		FunctionDefs: []FunctionDef{{Name: "funct", FP: HasFP, Func: func(*Kernel, BlockIdx, uint32) {}}},
	}
	blk2, _ := k.NewBlock("fp1", hasFPDef, nil)
	fpFunct, _ := k.FindFunction(blk2, "funct")
	err := k.LinkFunctionThread(fpFunct, noFPThread)
	var kerr *KernelError
	if !errors.As(err, &kerr) || kerr.Err != ErrTypeMismatch {
		t.Fatalf("expected ErrTypeMismatch linking HasFP function to NoFP thread, got %v", err)
	}
}

func TestUnlinkFunctionDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.EnableUnlinkCommand = false
	k := NewKernel(cfg)
	blk, _ := k.NewBlock("inv1", notDef, nil)
	funct, _ := k.FindFunction(blk, "funct")
	err := k.UnlinkFunction(funct)
	var kerr *KernelError
	if !errors.As(err, &kerr) || kerr.Err != ErrNotFound {
		t.Fatalf("expected ErrNotFound when unlink command disabled, got %v", err)
	}
}
