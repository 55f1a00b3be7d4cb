package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <module.il>",
		Short: "Parse and verify an IL module without executing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadAndVerify(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s %s: %d function(s), %d extern(s), %d global(s)\n",
				green("ok"), args[0], len(m.Functions), len(m.Externs), len(m.Globals))
			return nil
		},
	}
}
