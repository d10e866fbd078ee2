package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khaotik/triton/language"
)

func newExportsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "exports",
		Short: "list the standard library's public surface",
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, e := range language.Exports().Exports() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s arity=%d  %s\n", e.Name, e.Arity, e.Doc)
			}
			return nil
		},
	}
}
