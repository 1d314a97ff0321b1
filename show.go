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

import "github.com/dustin/go-humanize"

// Introspection mirrors emblocs_show.c's family of bl_show_* functions.
// Output goes to the kernel's showWriter (set via SetShowWriter); when
// none is set, calls are harmless no-ops, matching a build with the show
// command compiled out.

// ShowMemory prints the current realtime and metadata pool usage,
// mirroring bl_show_memory_status.
func (k *Kernel) ShowMemory() {
	k.show.Printf("realtime memory: %s used, %s free\n",
		humanize.Bytes(uint64(k.rt.usedWords()*4)), humanize.Bytes(uint64(k.rt.avail()*4)))
	k.show.Printf("metadata memory: %s used, %s free\n",
		humanize.Bytes(uint64(k.meta.used)), humanize.Bytes(uint64(k.meta.avail())))
}

// showRunHeader prints the run-correlation ID once at the top of a
// verbose dump, the same ID Kernel.fail attaches to every logged
// failure, so a verbose show capture can be matched back to its log
// output.
func (k *Kernel) showRunHeader() {
	if k.cfg.ShowVerbose {
		k.show.Printf("=== run %s ===\n", k.runID)
	}
}

// ShowAllBlocks lists every block in name order, mirroring
// bl_show_all_instances. It is the conventional first call of a full
// dump, so the verbose run-ID header is emitted here.
func (k *Kernel) ShowAllBlocks() {
	k.showRunHeader()
	for _, idx := range k.blockOrder {
		k.ShowBlock(idx)
	}
}

// ShowBlock prints one block's name, component, pins and functions,
// mirroring bl_show_instance.
func (k *Kernel) ShowBlock(block BlockIdx) {
	b := &k.blocks[block]
	if k.cfg.ShowVerbose {
		k.show.Printf("block %d: '%s' (component '%s', data @ %d, %d words)\n",
			block, b.name, b.compDef.Name, b.dataAddr, b.dataWords)
	} else {
		k.show.Printf("block: '%s' (component '%s')\n", b.name, b.compDef.Name)
	}
	for _, pidx := range b.pins {
		k.ShowPin(pidx)
	}
	for _, fidx := range b.functions {
		k.ShowFunction(fidx)
	}
}

// ShowPin prints one pin's name, type, direction and current value,
// plus its linkage, mirroring bl_show_pin.
func (k *Kernel) ShowPin(pin PinIdx) {
	p := &k.pins[pin]
	v := k.rt.get(p.bound)
	k.show.Printf("  pin: %-5s %-3s %-16s = %s  %s\n",
		p.dataType, p.dir, p.name, v.Format(p.dataType), k.pinLinkage(pin))
}

// pinLinkage describes what a pin is currently bound to, mirroring
// bl_show_pin_linkage: either the dummy (unlinked) or a signal name
// found by scanning every signal's data cell for a match, since pins
// hold no back-pointer to the signal they're linked to.
func (k *Kernel) pinLinkage(pin PinIdx) string {
	p := &k.pins[pin]
	if p.bound == p.dummy {
		return "(unlinked)"
	}
	for _, sidx := range k.signalOrder {
		if k.signals[sidx].data == p.bound {
			return "--> " + k.signals[sidx].name
		}
	}
	return "(linked, signal not found)"
}

// ShowFunction prints one function's name and floating-point discipline
// plus which thread, if any, it's linked into, mirroring bl_show_function.
func (k *Kernel) ShowFunction(funct FunctionIdx) {
	f := &k.functions[funct]
	thread := "(unlinked)"
	if f.thread != noThread {
		thread = "--> " + k.threads[f.thread].name
	}
	k.show.Printf("  function: %-16s fp=%v  %s\n", f.name, f.fp == HasFP, thread)
}

// ShowAllSignals lists every signal in name order, mirroring
// bl_show_all_signals.
func (k *Kernel) ShowAllSignals() {
	for _, idx := range k.signalOrder {
		k.ShowSignal(idx)
	}
}

// ShowSignal prints one signal's name, type, value, and every pin linked
// to it, mirroring bl_show_signal plus bl_show_signal_linkage's full scan
// of all pins (signals hold no back-pointer to their linked pins either).
func (k *Kernel) ShowSignal(sig SignalIdx) {
	s := &k.signals[sig]
	v := k.rt.get(s.data)
	k.show.Printf("signal: %-5s %-16s = %s\n", s.dataType, s.name, v.Format(s.dataType))
	for _, bidx := range k.blockOrder {
		for _, pidx := range k.blocks[bidx].pins {
			p := &k.pins[pidx]
			if p.bound == s.data {
				k.show.Printf("  <-- %s.%s\n", k.blocks[bidx].name, p.name)
			}
		}
	}
}

// ShowAllThreads lists every thread in name order, mirroring
// bl_show_all_threads.
func (k *Kernel) ShowAllThreads() {
	for _, idx := range k.threadOrder {
		k.ShowThread(idx)
	}
}

// ShowThread prints one thread's name, period, fp discipline and its
// function execution list in link order, mirroring bl_show_thread plus
// bl_show_function_rtdata.
func (k *Kernel) ShowThread(thread ThreadIdx) {
	t := &k.threads[thread]
	k.show.Printf("thread: '%s' period=%dns fp=%v\n", t.name, t.periodNS, t.fp == HasFP)
	for i, fidx := range t.functions {
		f := &k.functions[fidx]
		k.show.Printf("  [%d] %s.%s\n", i, k.blocks[f.block].name, f.name)
	}
}
