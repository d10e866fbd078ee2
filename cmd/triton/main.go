// Package main provides the triton CLI for inspecting the staged kernel
// standard library: listing exports, printing swizzle grids and dumping
// traced expression graphs.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

const version = "v0.0.1-dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "triton",
		Short:   "inspect the staged tile-kernel standard library",
		Version: version,
	}
	cmd.AddCommand(newExportsCommand())
	cmd.AddCommand(newSwizzleCommand())
	cmd.AddCommand(newTraceCommand())
	return cmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
