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

// LinkPinSignal binds pin to sig, mirroring bl_pin_linkto_signal. A
// TypeRaw pin accepts a signal of any type (Open Question (a): the raw
// pin is a pure bypass of the type check; it does not reinterpret bits).
// If the pin is already linked and the kernel was not configured with
// ImplicitUnlinkOnLink, the call fails with ErrAlreadyLinked; otherwise
// the previous binding is silently severed first.
func (k *Kernel) LinkPinSignal(pin PinIdx, sig SignalIdx) error {
	p := &k.pins[pin]
	s := &k.signals[sig]
	if p.dataType != s.dataType && p.dataType != TypeRaw {
		return k.fail("linking pin to signal", ErrTypeMismatch)
	}
	if p.bound != p.dummy && !k.cfg.ImplicitUnlinkOnLink {
		return k.fail("linking pin to signal", ErrAlreadyLinked)
	}
	// assigning the new binding directly undoes any previous linkage,
	// matching bl_pin_linkto_signal's single pointer-cell write.
	p.bound = s.data
	return nil
}

// UnlinkPin copies the pin's currently bound value into its dummy cell
// (so the last-observed value survives the unlink) and rebinds the pin
// to that dummy, mirroring bl_pin_unlink. Available only when the
// kernel's EnableUnlinkCommand flag is set.
func (k *Kernel) UnlinkPin(pin PinIdx) error {
	if !k.cfg.EnableUnlinkCommand {
		return k.fail("unlinking pin", ErrNotFound)
	}
	p := &k.pins[pin]
	v := k.rt.get(p.bound)
	k.rt.set(p.dummy, v)
	p.bound = p.dummy
	return nil
}

// LinkFunctionThread appends funct's runtime record to thread's
// execution list, mirroring bl_function_linkto_thread. A HasFP function
// may only join a thread that is not NoFP (Invariant 4). As with pins,
// relinking an already-linked function either fails or implicitly
// unlinks first depending on ImplicitUnlinkOnLink.
func (k *Kernel) LinkFunctionThread(funct FunctionIdx, thread ThreadIdx) error {
	f := &k.functions[funct]
	t := &k.threads[thread]
	if t.fp == NoFP && f.fp == HasFP {
		return k.fail("linking function to thread", ErrTypeMismatch)
	}
	if f.thread != noThread {
		if !k.cfg.ImplicitUnlinkOnLink {
			return k.fail("linking function to thread", ErrAlreadyLinked)
		}
		// sever the old membership directly: implicit unlink does not
		// depend on EnableUnlinkCommand, just as LinkPinSignal's doesn't.
		old := &k.threads[f.thread]
		found := false
		for i, fi := range old.functions {
			if fi == funct {
				old.functions = append(old.functions[:i], old.functions[i+1:]...)
				found = true
				break
			}
		}
		if !found {
			return k.fail("linking function to thread", ErrInternal)
		}
		f.thread = noThread
	}
	f.thread = thread
	t.functions = append(t.functions, funct)
	return nil
}

// UnlinkFunction removes funct from whatever thread it belongs to,
// mirroring bl_function_unlink. Unlinking a function that isn't linked
// to any thread is a no-op success, matching the original.
func (k *Kernel) UnlinkFunction(funct FunctionIdx) error {
	if !k.cfg.EnableUnlinkCommand {
		return k.fail("unlinking function", ErrNotFound)
	}
	f := &k.functions[funct]
	if f.thread == noThread {
		return nil
	}
	t := &k.threads[f.thread]
	for i, fi := range t.functions {
		if fi == funct {
			t.functions = append(t.functions[:i], t.functions[i+1:]...)
			f.thread = noThread
			return nil
		}
	}
	return k.fail("unlinking function", ErrInternal)
}
