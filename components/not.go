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

// Package components holds a small library of reference EMBLOCS
// components, minimal enough to read in one sitting but exercising the
// full component ABI (pins, functions, and in sumn's case a
// personality-driven custom setup), mirroring spec.md §8's scenarios.
package components

import "github.com/jmkasunich/emblocs"

// Not is a single-bit inverter: out = !in.
var Not = &emblocs.ComponentDef{
	Name: "not",
	PinDefs: []emblocs.PinDef{
		{Name: "in", Type: emblocs.TypeBit, Dir: emblocs.DirIn},
		{Name: "out", Type: emblocs.TypeBit, Dir: emblocs.DirOut},
	},
	FunctionDefs: []emblocs.FunctionDef{
		{Name: "funct", FP: emblocs.NoFP, Func: notFunc},
	},
}

func notFunc(k *emblocs.Kernel, block emblocs.BlockIdx, _ uint32) {
	in, _ := k.FindPin(block, "in")
	out, _ := k.FindPin(block, "out")
	k.SetPinValue(out, emblocs.BitValue(!k.PinValue(in).Bit()))
}
