package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khaotik/triton/language"
)

type swizzleOptions struct {
	sizeI int
	sizeJ int
	sizeG int
}

func newSwizzleCommand() *cobra.Command {
	opts := &swizzleOptions{}
	cmd := &cobra.Command{
		Use:   "swizzle",
		Short: "print the group-major remapping of a tile grid",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd)
		},
	}
	flags := cmd.Flags()
	flags.IntVarP(&opts.sizeI, "size-i", "i", 4, "number of rows")
	flags.IntVarP(&opts.sizeJ, "size-j", "j", 4, "number of columns")
	flags.IntVarP(&opts.sizeG, "size-g", "g", 2, "rows per group")
	return cmd
}

func (o *swizzleOptions) run(cmd *cobra.Command) error {
	if o.sizeI <= 0 || o.sizeJ <= 0 || o.sizeG <= 0 {
		return fmt.Errorf("sizes must be positive, got size-i=%d size-j=%d size-g=%d",
			o.sizeI, o.sizeJ, o.sizeG)
	}

	swizzled := make([][]int, o.sizeI)
	for i := range swizzled {
		swizzled[i] = make([]int, o.sizeJ)
	}

	b := language.NewBuilder()
	for i := 0; i < o.sizeI; i++ {
		for j := 0; j < o.sizeJ; j++ {
			ni, nj, err := language.Swizzle2D(b, language.Int(i), language.Int(j), o.sizeI, o.sizeJ, o.sizeG)
			if err != nil {
				return err
			}
			niv, _ := ni.AsInt()
			njv, _ := nj.AsInt()
			swizzled[niv][njv] = i*o.sizeJ + j
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "row-major %dx%d grid, groups of %d rows:\n", o.sizeI, o.sizeJ, o.sizeG)
	for i := 0; i < o.sizeI; i++ {
		for j := 0; j < o.sizeJ; j++ {
			fmt.Fprintf(out, "%4d", i*o.sizeJ+j)
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintln(out, "swizzled:")
	for _, row := range swizzled {
		for _, v := range row {
			fmt.Fprintf(out, "%4d", v)
		}
		fmt.Fprintln(out)
	}
	return nil
}
