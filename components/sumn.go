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

import (
	"fmt"

	"github.com/jmkasunich/emblocs"
)

// SumN sums an arbitrary number of gained inputs, channel count fixed at
// instantiation time by its personality. It exists to exercise the
// custom-setup half of the component ABI: unlike Not and Sum2, SumN's
// pin set isn't known until a block is created, so it supplies a Setup
// function instead of a flat PinDefs list, mirroring the original's
// sized-at-setup components (e.g. a mux with a personality-chosen input
// count).
var SumN = &emblocs.ComponentDef{
	Name:             "sumn",
	NeedsPersonality: true,
	Setup:            sumNSetup,
}

// sumNSetup reads the channel count from personality (an int, or a
// string such as a parser would hand through `instance sumn foo 4`),
// creates the block, and adds 2*n+1 pins plus one function, mirroring a
// custom bl_comp_def_t.setup that sizes its instance from an argument.
func sumNSetup(k *emblocs.Kernel, name string, def *emblocs.ComponentDef, personality any) (emblocs.BlockIdx, error) {
	n, err := channelCount(personality)
	if err != nil {
		return 0, err
	}
	block, err := k.CreateBlockWithSize(name, def, 0)
	if err != nil {
		return 0, err
	}
	for i := 0; i < n; i++ {
		if _, err := k.AddPin(block, emblocs.PinDef{Name: fmt.Sprintf("in%d", i), Type: emblocs.TypeFloat, Dir: emblocs.DirIn}); err != nil {
			return block, err
		}
		if _, err := k.AddPin(block, emblocs.PinDef{Name: fmt.Sprintf("gain%d", i), Type: emblocs.TypeFloat, Dir: emblocs.DirIn}); err != nil {
			return block, err
		}
	}
	if _, err := k.AddPin(block, emblocs.PinDef{Name: "out", Type: emblocs.TypeFloat, Dir: emblocs.DirOut}); err != nil {
		return block, err
	}
	funct := func(k *emblocs.Kernel, block emblocs.BlockIdx, _ uint32) {
		var sum float32
		for i := 0; ; i++ {
			in, ok := k.FindPin(block, fmt.Sprintf("in%d", i))
			if !ok {
				break
			}
			gain, _ := k.FindPin(block, fmt.Sprintf("gain%d", i))
			sum += k.PinValue(in).Float() * k.PinValue(gain).Float()
		}
		out, _ := k.FindPin(block, "out")
		k.SetPinValue(out, emblocs.FloatValue(sum))
	}
	if _, err := k.AddFunction(block, emblocs.FunctionDef{Name: "funct", FP: emblocs.HasFP, Func: funct}); err != nil {
		return block, err
	}
	return block, nil
}

func channelCount(personality any) (int, error) {
	switch v := personality.(type) {
	case int:
		return v, nil
	case string:
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err != nil {
			return 0, fmt.Errorf("sumn personality '%s' is not a channel count", v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("sumn requires a channel-count personality")
	}
}
