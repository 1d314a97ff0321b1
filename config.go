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
	"os"

	"gopkg.in/yaml.v3"
)

// Config gathers every build-time choice the original expressed as a
// preprocessor flag in emblocs_config.h into one struct passed to
// NewKernel, per spec.md's Design Notes on replacing global state with a
// kernel context.
type Config struct {
	// RTPoolSize and MetaPoolSize are arena capacities in bytes.
	RTPoolSize   int `yaml:"rt_pool_size"`
	MetaPoolSize int `yaml:"meta_pool_size"`

	// MaxNameLen mirrors BL_MAX_NAME_LEN. It is carried in the
	// configuration only: neither the kernel nor the parser checks name
	// lengths against it.
	MaxNameLen int `yaml:"max_name_len"`

	// BlockDataMaxSize bounds a single block's realtime data size,
	// mirroring BL_BLOCK_DATA_MAX_SIZE.
	BlockDataMaxSize int `yaml:"block_data_max_size"`

	// HaltOnError mirrors BL_ERROR_HALT: when true, a failing kernel call
	// invokes OnHalt before returning its error. With the default OnHalt
	// the call never returns.
	HaltOnError bool `yaml:"halt_on_error"`

	// OnHalt is invoked when HaltOnError is true and a kernel call would
	// otherwise return an error. It defaults to an infinite block so the
	// halt semantics of firmware with no recovery path are preserved,
	// but tests may substitute something that panics or records the call.
	OnHalt func() `yaml:"-"`

	// NullPointerChecks mirrors BL_NULL_POINTER_CHECKS.
	NullPointerChecks bool `yaml:"null_pointer_checks"`

	// ImplicitUnlinkOnLink mirrors BL_ENABLE_IMPLICIT_UNLINK: linking an
	// already-linked pin or function silently severs the old binding
	// first instead of failing with ErrAlreadyLinked.
	ImplicitUnlinkOnLink bool `yaml:"implicit_unlink_on_link"`

	// EnableUnlinkCommand mirrors BL_ENABLE_UNLINK.
	EnableUnlinkCommand bool `yaml:"enable_unlink_command"`

	// ShowVerbose mirrors BL_SHOW_VERBOSE: adds raw indices to show output.
	ShowVerbose bool `yaml:"show_verbose"`

	// PrintErrors mirrors BL_PRINT_ERRORS: failing kernel calls are logged
	// through the kernel's logger as well as returned. Parser diagnostics
	// that do not come from a kernel call (unknown component, unexpected
	// token, bad value) are only returned, not logged.
	PrintErrors bool `yaml:"print_errors"`
}

// DefaultConfig returns the configuration the original ships with:
// unlink and implicit-unlink enabled, null checks and error printing on,
// halt-on-error off (so a hosted binary can recover and report), verbose
// show off.
func DefaultConfig() Config {
	return Config{
		RTPoolSize:           2048,
		MetaPoolSize:         4096,
		MaxNameLen:           40,
		BlockDataMaxSize:     1024,
		HaltOnError:          false,
		NullPointerChecks:    true,
		ImplicitUnlinkOnLink: true,
		EnableUnlinkCommand:  true,
		ShowVerbose:          false,
		PrintErrors:          true,
	}
}

// LoadConfigFile reads a YAML configuration file, starting from
// DefaultConfig so a file only needs to override what it changes.
func LoadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
