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

// blockRecord is the metadata for one component instance, mirroring
// bl_instance_meta_t (the original calls it "instance"; this
// reimplementation follows spec.md's "block" terminology throughout).
type blockRecord struct {
	name      string
	compDef   *ComponentDef
	dataAddr  RTAddr
	dataWords int
	pins      []PinIdx      // name-sorted, local to this block
	functions []FunctionIdx // name-sorted, local to this block
}

// pinRecord is the metadata for one pin, mirroring bl_pin_meta_t. bound
// is the cell the pin currently reads/writes; it equals dummy unless the
// pin is linked to a signal. This plays the role of the original's
// pointer cell, represented here as metadata rather than as a literal
// address stored in the RT arena: nothing in the Go kernel ever
// dereferences a pointer cell except through kernel helpers, so the
// extra indirection the original needs for its memory-mapped ABI buys
// nothing here. See DESIGN.md for the grounding note.
type pinRecord struct {
	name     string
	dataType Type
	dir      Dir
	dummy    RTAddr
	bound    RTAddr
	block    BlockIdx
}

// functionRecord is the metadata for one realtime function, mirroring
// bl_function_meta_t.
type functionRecord struct {
	name   string
	fp     FPDiscipline
	rt     RTFunction
	block  BlockIdx
	thread ThreadIdx // noThread if not linked into any thread
}

func blockName(k *Kernel) func(BlockIdx) string {
	return func(idx BlockIdx) string { return k.blocks[idx].name }
}

// NewBlock instantiates a block (component instance) named name from
// def, optionally passing personality through to a custom setup,
// mirroring bl_block_new's dispatch between bl_default_setup and a
// component-specific setup callback.
func (k *Kernel) NewBlock(name string, def *ComponentDef, personality any) (BlockIdx, error) {
	if def == nil {
		return 0, k.fail("creating block", ErrNullPointer)
	}
	if !def.NeedsPersonality && personality != nil {
		return 0, k.fail("creating block '"+name+"'", ErrNoPersonality)
	}
	if def.Setup != nil {
		return def.Setup(k, name, def, personality)
	}
	return k.defaultSetup(name, def)
}

func (k *Kernel) defaultSetup(name string, def *ComponentDef) (BlockIdx, error) {
	blk, err := k.CreateBlockWithSize(name, def, def.DataWords)
	if err != nil {
		return 0, err
	}
	for _, pd := range def.PinDefs {
		if _, err := k.AddPin(blk, pd); err != nil {
			return blk, err
		}
	}
	for _, fd := range def.FunctionDefs {
		if _, err := k.AddFunction(blk, fd); err != nil {
			return blk, err
		}
	}
	return blk, nil
}

// CreateBlockWithSize allocates a new block's metadata and RT data,
// overriding the component definition's declared size with dataWords
// (in one-word units). It is the helper custom setup functions call
// when a block's size depends on its personality, mirroring
// bl_block_create.
func (k *Kernel) CreateBlockWithSize(name string, def *ComponentDef, dataWords int) (BlockIdx, error) {
	if name == "" {
		return 0, k.fail("creating block", ErrNullPointer)
	}
	if dataWords == 0 {
		dataWords = def.DataWords
	}
	if dataWords*4 >= k.cfg.BlockDataMaxSize {
		return 0, k.fail("creating block '"+name+"'", ErrTooBig)
	}
	if _, exists := sortedFind(k.blockOrder, name, blockName(k)); exists {
		return 0, k.fail("creating block '"+name+"'", ErrNameExists)
	}
	if err := k.meta.reserve(blockMetaBytes); err != nil {
		return 0, k.fail("creating block '"+name+"'", err.(ErrNum))
	}
	addr, err := k.rt.alloc(max1(dataWords))
	if err != nil {
		return 0, k.fail("creating block '"+name+"'", err.(ErrNum))
	}
	rec := blockRecord{name: name, compDef: def, dataAddr: addr, dataWords: dataWords}
	idx := BlockIdx(len(k.blocks))
	k.blocks = append(k.blocks, rec)
	if err := sortedInsert(&k.blockOrder, idx, blockName(k)); err != nil {
		k.blocks = k.blocks[:len(k.blocks)-1]
		return 0, k.fail("creating block '"+name+"'", ErrNameExists)
	}
	return idx, nil
}

func max1(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// BlockData returns the RT arena address of block's data region, the Go
// analogue of bl_block_data_addr. Components that keep no per-block state
// beyond their pins have no use for it; it exists for ABI completeness
// and for introspection.
func (k *Kernel) BlockData(block BlockIdx) RTAddr {
	return k.blocks[block].dataAddr
}

func pinName(k *Kernel) func(PinIdx) string {
	return func(idx PinIdx) string { return k.pins[idx].name }
}

// AddPin adds a pin as defined by def to block, allocating a dummy cell
// and binding the pin to it, mirroring bl_block_add_pin.
func (k *Kernel) AddPin(block BlockIdx, def PinDef) (PinIdx, error) {
	if _, exists := sortedFind(k.blocks[block].pins, def.Name, pinName(k)); exists {
		return 0, k.fail("adding pin '"+def.Name+"'", ErrNameExists)
	}
	if err := k.meta.reserve(pinMetaBytes); err != nil {
		return 0, k.fail("adding pin '"+def.Name+"'", err.(ErrNum))
	}
	dummy, err := k.rt.alloc(1)
	if err != nil {
		return 0, k.fail("adding pin '"+def.Name+"'", err.(ErrNum))
	}
	rec := pinRecord{name: def.Name, dataType: def.Type, dir: def.Dir, dummy: dummy, bound: dummy, block: block}
	idx := PinIdx(len(k.pins))
	k.pins = append(k.pins, rec)
	blk := &k.blocks[block]
	if err := sortedInsert(&blk.pins, idx, pinName(k)); err != nil {
		k.pins = k.pins[:len(k.pins)-1]
		return 0, k.fail("adding pin '"+def.Name+"'", ErrNameExists)
	}
	return idx, nil
}

func functionName(k *Kernel) func(FunctionIdx) string {
	return func(idx FunctionIdx) string { return k.functions[idx].name }
}

// AddFunction adds a function as defined by def to block, mirroring
// bl_block_add_function. The function starts unlinked (noThread).
func (k *Kernel) AddFunction(block BlockIdx, def FunctionDef) (FunctionIdx, error) {
	if _, exists := sortedFind(k.blocks[block].functions, def.Name, functionName(k)); exists {
		return 0, k.fail("adding function '"+def.Name+"'", ErrNameExists)
	}
	if err := k.meta.reserve(functionMetaBytes); err != nil {
		return 0, k.fail("adding function '"+def.Name+"'", err.(ErrNum))
	}
	rec := functionRecord{name: def.Name, fp: def.FP, rt: def.Func, block: block, thread: noThread}
	idx := FunctionIdx(len(k.functions))
	k.functions = append(k.functions, rec)
	blk := &k.blocks[block]
	if err := sortedInsert(&blk.functions, idx, functionName(k)); err != nil {
		k.functions = k.functions[:len(k.functions)-1]
		return 0, k.fail("adding function '"+def.Name+"'", ErrNameExists)
	}
	return idx, nil
}

// FindBlock looks up a block by name, mirroring bl_block_find.
func (k *Kernel) FindBlock(name string) (BlockIdx, bool) {
	return sortedFind(k.blockOrder, name, blockName(k))
}

// FindPin looks up a pin by name within block, mirroring
// bl_pin_find_in_instance.
func (k *Kernel) FindPin(block BlockIdx, name string) (PinIdx, bool) {
	return sortedFind(k.blocks[block].pins, name, pinName(k))
}

// FindFunction looks up a function by name within block, mirroring
// bl_function_find_in_instance.
func (k *Kernel) FindFunction(block BlockIdx, name string) (FunctionIdx, bool) {
	return sortedFind(k.blocks[block].functions, name, functionName(k))
}

// PinType reports a pin's declared data type.
func (k *Kernel) PinType(pin PinIdx) Type { return k.pins[pin].dataType }

// PinValue reads the value currently behind pin (its dummy, or whatever
// signal it's linked to).
func (k *Kernel) PinValue(pin PinIdx) Value {
	p := &k.pins[pin]
	return k.rt.get(p.bound)
}

// SetPinValue writes through pin to whatever cell it's currently bound
// to, mirroring bl_pin_set.
func (k *Kernel) SetPinValue(pin PinIdx, v Value) {
	p := &k.pins[pin]
	k.rt.set(p.bound, v)
}

// approximate per-record metadata footprints, in bytes, used only to
// drive the same meta-pool accounting the original's sizeof() calls
// produced; the exact figures don't matter, only that they're consistent
// and nonzero, per the "no allocation exceeds capacity" testable property.
const (
	blockMetaBytes    = 24
	pinMetaBytes      = 16
	functionMetaBytes = 16
	signalMetaBytes   = 12
	threadMetaBytes   = 12
)
