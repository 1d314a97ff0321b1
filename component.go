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

// RTFunction is a realtime function contributed by a component: it reads
// input pins, computes, and writes output pins of the given block. It
// must be bounded-time and non-blocking; the scheduler never yields.
type RTFunction func(k *Kernel, block BlockIdx, periodNS uint32)

// PinDef declares one pin a component contributes to every block built
// from its ComponentDef, mirroring bl_pin_def_t minus the byte-offset
// field: Go pins are addressed by name within their block rather than by
// struct layout, so there is no data_offset to carry.
type PinDef struct {
	Name string
	Type Type
	Dir  Dir
}

// FunctionDef declares one realtime function a component contributes,
// mirroring bl_function_def_t.
type FunctionDef struct {
	Name string
	FP   FPDiscipline
	Func RTFunction
}

// SetupFunc is a component-specific block constructor, invoked instead of
// the kernel's default setup when a component needs to size its data or
// pin set from a personality value, mirroring bl_comp_def_t.setup.
type SetupFunc func(k *Kernel, name string, def *ComponentDef, personality any) (BlockIdx, error)

// ComponentDef is the immutable static description of a component from
// which blocks are instantiated, mirroring bl_comp_def_t. Component
// authors construct one ComponentDef per component as a package-level
// var and never mutate it after init.
type ComponentDef struct {
	Name            string
	NeedsPersonality bool
	DataWords       int // RT data reserved per block when Setup is nil
	PinDefs         []PinDef
	FunctionDefs    []FunctionDef
	// Setup, if non-nil, replaces the kernel's default block-creation
	// logic. It is responsible for calling CreateBlockWithSize, AddPin
	// and AddFunction itself, mirroring custom bl_comp_def_s.setup
	// callbacks such as those that size a block from a channel count.
	Setup SetupFunc
}
