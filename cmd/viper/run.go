package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/splanck/viper-sub015/internal/config"
	"github.com/splanck/viper-sub015/internal/il"
	"github.com/splanck/viper-sub015/internal/optimize"
	"github.com/splanck/viper-sub015/internal/vm"
)

func newRunCmd() *cobra.Command {
	var (
		configPath string
		entry      string
		optPlan    string
		optimizeIt bool
	)

	cmd := &cobra.Command{
		Use:   "run <module.il> [args...]",
		Short: "Parse, verify, optionally optimize, and interpret an IL module",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadAndVerify(args[0])
			if err != nil {
				return err
			}

			entryName := entry
			if entryName == "" {
				entryName = "main"
			}

			if optimizeIt || optPlan != "" {
				plan := optimize.DefaultPlan()
				if optPlan != "" {
					plan, err = optimize.LoadPlan(optPlan)
					if err != nil {
						return err
					}
				}
				mgr, err := optimize.BuildManager(plan, optimize.Registry([]string{entryName}))
				if err != nil {
					return err
				}
				if _, err := mgr.Run(m); err != nil {
					return err
				}
			}

			cfg := config.Default()
			if configPath != "" {
				cfg, err = config.Load(configPath)
				if err != nil {
					return err
				}
			}

			machine := vm.NewVM(m, vm.FromConfig(cfg, os.Stdout))

			callArgs, err := callArgsFor(machine, m, entryName, args[1:])
			if err != nil {
				return err
			}

			result, trap := machine.Run(entryName, callArgs)
			if trap != nil {
				fmt.Fprintln(os.Stderr, red(trap.Error()))
				os.Exit(1)
			}
			printResult(machine, result)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "VMConfig YAML file (default: built-in defaults)")
	cmd.Flags().StringVar(&entry, "entry", "main", "entry function name")
	cmd.Flags().BoolVar(&optimizeIt, "optimize", false, "run the default optimization pipeline before executing")
	cmd.Flags().StringVar(&optPlan, "opt-plan", "", "optimization plan YAML file (implies --optimize)")
	return cmd
}

// callArgsFor converts the run command's trailing string arguments into
// Slots matching the entry function's declared parameter types, so a
// scenario like S1 (`viper run hello.il 42`) can pass a literal straight
// from argv.
func callArgsFor(machine *vm.VM, m *il.Module, entryName string, raw []string) ([]vm.Slot, error) {
	fn, ok := m.FindFunction(entryName)
	if !ok {
		return nil, fmt.Errorf("entry function %q not found", entryName)
	}
	if len(raw) > len(fn.Params) {
		return nil, fmt.Errorf("%s takes %d argument(s), got %d", entryName, len(fn.Params), len(raw))
	}

	out := make([]vm.Slot, len(raw))
	for i, s := range raw {
		switch fn.Params[i].Type {
		case il.F64:
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("argument %d: %w", i, err)
			}
			out[i] = vm.Slot{Kind: vm.SlotFloat, F: f}
		case il.I1:
			b, err := strconv.ParseBool(s)
			if err != nil {
				return nil, fmt.Errorf("argument %d: %w", i, err)
			}
			v := int64(0)
			if b {
				v = 1
			}
			out[i] = vm.Slot{Kind: vm.SlotInt, I: v, IsBool: true}
		case il.Str:
			out[i] = vm.Slot{Kind: vm.SlotStr, StrHandle: machine.InternString(s)}
		default:
			n, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("argument %d: %w", i, err)
			}
			out[i] = vm.Slot{Kind: vm.SlotInt, I: n}
		}
	}
	return out, nil
}

func printResult(machine *vm.VM, s vm.Slot) {
	switch s.Kind {
	case vm.SlotVoid:
		return
	case vm.SlotInt:
		if s.IsBool {
			fmt.Println(cyan(s.I != 0))
			return
		}
		fmt.Println(cyan(s.I))
	case vm.SlotFloat:
		fmt.Println(cyan(s.F))
	case vm.SlotStr:
		fmt.Println(cyan(machine.StringAt(s.StrHandle)))
	default:
		fmt.Printf("%s %v\n", cyan("=>"), s)
	}
}
