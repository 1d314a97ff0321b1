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

// Command emblocsctl parses an EMBLOCS assembly file, runs its threads
// for a fixed number of ticks, and prints introspection output via a
// separate `show` subcommand, a minimal stand-in for the original's
// interactive command-line shell.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmkasunich/emblocs"
	"github.com/jmkasunich/emblocs/components"
	"github.com/jmkasunich/emblocs/parser"
)

func registry() parser.Registry {
	return parser.Registry{
		"not":  components.Not,
		"sum2": components.Sum2,
		"sumn": components.SumN,
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "emblocsctl",
		Short: "Assemble and run an EMBLOCS configuration",
		Long: `emblocsctl loads a kernel Config from YAML (or the built-in
defaults), assembles blocks, signals and threads from an EMBLOCS assembly
file, and can run the assembly's threads or print introspection output.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "kernel configuration YAML file")

	root.AddCommand(newParseCmd(&configPath))
	root.AddCommand(newRunCmd(&configPath))
	root.AddCommand(newShowCmd(&configPath))
	return root
}

func loadConfig(path string) (emblocs.Config, error) {
	if path == "" {
		return emblocs.DefaultConfig(), nil
	}
	return emblocs.LoadConfigFile(path)
}

func newParseCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file>",
		Short: "Assemble a file and report any errors, without printing the object graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			k := emblocs.NewKernel(cfg)
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			return parser.ParseFile(k, registry(), data)
		},
	}
}

func newShowCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show <file>",
		Short: "Assemble a file and print the resulting object graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			k := emblocs.NewKernel(cfg)
			k.SetShowWriter(os.Stdout)
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			if err := parser.ParseFile(k, registry(), data); err != nil {
				return err
			}
			k.ShowAllBlocks()
			k.ShowAllSignals()
			k.ShowAllThreads()
			return nil
		},
	}
}

func newRunCmd(configPath *string) *cobra.Command {
	var ticks int
	var threadName string

	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Parse an assembly file and tick a thread a fixed number of times",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			k := emblocs.NewKernel(cfg)
			k.SetShowWriter(os.Stdout)
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			if err := parser.ParseFile(k, registry(), data); err != nil {
				return err
			}
			thread, ok := k.FindThread(threadName)
			if !ok {
				return fmt.Errorf("no such thread: %s", threadName)
			}
			for i := 0; i < ticks; i++ {
				k.RunThread(thread, 0)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&ticks, "ticks", 1, "number of times to tick the thread")
	cmd.Flags().StringVar(&threadName, "thread", "", "name of the thread to run")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
