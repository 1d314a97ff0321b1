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

package parser

import "testing"

func TestStrToU32(t *testing.T) {
	cases := []struct {
		in      string
		want    uint32
		wantErr bool
	}{
		{"0", 0, false},
		{"42", 42, false},
		{"4294967295", 4294967295, false},
		{"4294967296", 0, true},
		{"", 0, true},
		{"12x", 0, true},
	}
	for _, c := range cases {
		got, err := strToU32(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("strToU32(%q): expected error, got %d", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("strToU32(%q): unexpected error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("strToU32(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestStrToS32(t *testing.T) {
	cases := []struct {
		in      string
		want    int32
		wantErr bool
	}{
		{"0", 0, false},
		{"-42", -42, false},
		{"+42", 42, false},
		{"2147483647", 2147483647, false},
		{"-2147483648", -2147483648, false},
		{"2147483648", 0, true},
		{"-2147483649", 0, true},
	}
	for _, c := range cases {
		got, err := strToS32(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("strToS32(%q): expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("strToS32(%q): unexpected error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("strToS32(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestStrToBool(t *testing.T) {
	for _, s := range []string{"1", "TRUE", "true"} {
		b, err := strToBool(s)
		if err != nil || !b {
			t.Errorf("strToBool(%q) = %v, %v; want true, nil", s, b, err)
		}
	}
	for _, s := range []string{"0", "FALSE", "false"} {
		b, err := strToBool(s)
		if err != nil || b {
			t.Errorf("strToBool(%q) = %v, %v; want false, nil", s, b, err)
		}
	}
	if _, err := strToBool("maybe"); err == nil {
		t.Error("expected error for invalid bit literal")
	}
}

func TestStrToFloat(t *testing.T) {
	cases := []struct {
		in   string
		want float32
	}{
		{"0", 0},
		{"1.5", 1.5},
		{"-2.25", -2.25},
		{"3e2", 300},
		{"1.5e-1", 0.15},
	}
	for _, c := range cases {
		got, err := strToFloat(c.in)
		if err != nil {
			t.Errorf("strToFloat(%q): unexpected error: %v", c.in, err)
			continue
		}
		diff := got - c.want
		if diff < 0 {
			diff = -diff
		}
		if diff > 1e-4 {
			t.Errorf("strToFloat(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestStrToFloatRejectsOutOfRangeExponent(t *testing.T) {
	if _, err := strToFloat("1e100"); err == nil {
		t.Error("expected error for exponent magnitude over 60")
	}
}
