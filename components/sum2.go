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

package components

import "github.com/jmkasunich/emblocs"

// Sum2 computes out = in0*gain0 + in1*gain1 + offset, the two-input
// weighted summer used in spec.md §8's linkage scenarios.
var Sum2 = &emblocs.ComponentDef{
	Name: "sum2",
	PinDefs: []emblocs.PinDef{
		{Name: "in0", Type: emblocs.TypeFloat, Dir: emblocs.DirIn},
		{Name: "in1", Type: emblocs.TypeFloat, Dir: emblocs.DirIn},
		{Name: "gain0", Type: emblocs.TypeFloat, Dir: emblocs.DirIn},
		{Name: "gain1", Type: emblocs.TypeFloat, Dir: emblocs.DirIn},
		{Name: "offset", Type: emblocs.TypeFloat, Dir: emblocs.DirIn},
		{Name: "out", Type: emblocs.TypeFloat, Dir: emblocs.DirOut},
	},
	FunctionDefs: []emblocs.FunctionDef{
		{Name: "funct", FP: emblocs.HasFP, Func: sum2Func},
	},
}

func sum2Func(k *emblocs.Kernel, block emblocs.BlockIdx, _ uint32) {
	get := func(name string) float32 {
		pin, _ := k.FindPin(block, name)
		return k.PinValue(pin).Float()
	}
	in0, in1 := get("in0"), get("in1")
	gain0, gain1 := get("gain0"), get("gain1")
	offset := get("offset")
	out, _ := k.FindPin(block, "out")
	k.SetPinValue(out, emblocs.FloatValue(in0*gain0+in1*gain1+offset))
}
