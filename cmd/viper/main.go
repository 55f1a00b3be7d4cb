// Command viper is the Viper IL driver: parse, verify, optimize, and
// interpret .il text modules (spec §4, scenarios S1-S6). Its subcommand
// shape and color conventions follow the teacher's cmd/ailang/main.go
// (flag-dispatched subcommands, fatih/color SprintFunc helpers); here the
// dispatch itself is spf13/cobra rather than a hand-rolled flag/switch, per
// the expanded spec's CLI requirements.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

// version is overridden by -ldflags at release build time, matching the
// teacher's Version/Commit/BuildTime convention.
var version = "dev"

func main() {
	root := &cobra.Command{
		Use:     "viper",
		Short:   "Viper IL driver: run, check, trace, disassemble, and format .il modules",
		Version: version,
	}

	root.AddCommand(
		newRunCmd(),
		newCheckCmd(),
		newTraceCmd(),
		newDisasmCmd(),
		newFmtCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("error"), err)
		os.Exit(1)
	}
}
