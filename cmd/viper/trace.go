package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/splanck/viper-sub015/internal/config"
	"github.com/splanck/viper-sub015/internal/vm"
)

// newTraceCmd builds the interactive trace/debug subcommand. Its
// breakpoint-prompt loop follows the teacher's internal/repl/repl.go: a
// peterh/liner line editor with a history file under os.TempDir, reading one
// command per line until the user types "run".
func newTraceCmd() *cobra.Command {
	var entry string

	cmd := &cobra.Command{
		Use:   "trace <module.il>",
		Short: "Interactively set breakpoints, then run with full instruction tracing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadAndVerify(args[0])
			if err != nil {
				return err
			}

			entryName := entry
			if entryName == "" {
				entryName = "main"
			}

			breakpoints, err := promptBreakpoints(entryName)
			if err != nil {
				return err
			}

			cfg := config.Default()
			cfg.Trace = config.TraceConfig{ILTrace: true, SourceTrace: true}
			cfg.Debug = config.DebugConfig{Enabled: true, Breakpoints: breakpoints}

			vmCfg := vm.FromConfig(cfg, os.Stdout)
			machine := vm.NewVM(m, vmCfg)

			result, trap := machine.Run(entryName, nil)
			if trap != nil {
				fmt.Fprintln(os.Stderr, red(trap.Error()))
				os.Exit(1)
			}
			printResult(machine, result)
			return nil
		},
	}

	cmd.Flags().StringVar(&entry, "entry", "main", "entry function name")
	return cmd
}

// promptBreakpoints reads "function:block" breakpoint specs from an
// interactive line editor until the user types "run" or "" (no breakpoints).
func promptBreakpoints(entryName string) ([]config.Breakpoint, error) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	histPath := filepath.Join(os.TempDir(), ".viper_trace_history")
	if f, err := os.Open(histPath); err == nil {
		line.ReadHistory(f)
		f.Close()
	}

	fmt.Println(bold("viper trace"), "— enter breakpoints as function:block, blank line or \"run\" to start")

	var bps []config.Breakpoint
	for {
		input, err := line.Prompt(cyan(entryName + "> "))
		if err != nil {
			break
		}
		input = strings.TrimSpace(input)
		if input == "" || input == "run" {
			break
		}
		line.AppendHistory(input)

		fn, block, ok := strings.Cut(input, ":")
		if !ok {
			fmt.Println(yellow("expected function:block, e.g. main:entry"))
			continue
		}
		bps = append(bps, config.Breakpoint{Function: fn, Block: block})
	}

	if f, err := os.Create(histPath); err == nil {
		line.WriteHistory(f)
		f.Close()
	}
	return bps, nil
}
