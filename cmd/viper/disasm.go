package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/splanck/viper-sub015/internal/iltext"
)

func newDisasmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disasm <module.il>",
		Short: "Parse, verify, and print a module's non-canonical (diagnostic) IL text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadAndVerify(args[0])
			if err != nil {
				return err
			}
			fmt.Print(iltext.WriteText(m, false))
			return nil
		},
	}
}
