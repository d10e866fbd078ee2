package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khaotik/triton/language"
	"github.com/khaotik/triton/trace"
)

type traceOptions struct {
	length int
	sizeI  int
	sizeJ  int
	sizeG  int
}

func newTraceCommand() *cobra.Command {
	opts := &traceOptions{}
	cmd := &cobra.Command{
		Use:   "trace <function>",
		Short: "trace an exported function on placeholder inputs and dump the graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, args[0])
		},
	}
	flags := cmd.Flags()
	flags.IntVarP(&opts.length, "length", "n", 8, "placeholder vector length")
	flags.IntVar(&opts.sizeI, "size-i", 4, "swizzle2d: number of rows")
	flags.IntVar(&opts.sizeJ, "size-j", 4, "swizzle2d: number of columns")
	flags.IntVar(&opts.sizeG, "size-g", 2, "swizzle2d: rows per group")
	return cmd
}

func (o *traceOptions) run(cmd *cobra.Command, name string) error {
	e, ok := language.Exports().Lookup(name)
	if !ok {
		return fmt.Errorf("unknown function %q", name)
	}

	s := trace.NewSession()
	args, err := o.placeholderArgs(s, e)
	if err != nil {
		return err
	}
	r, err := s.Run(e, args...)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), r.Dump())
	return nil
}

// placeholderArgs builds symbolic inputs for an export on the session's
// builder. swizzle2d takes integer tile coordinates plus its compile-time
// sizes; everything else takes float vectors.
func (o *traceOptions) placeholderArgs(s *trace.Session, e language.Export) ([]language.Value, error) {
	if e.Name == "swizzle2d" {
		i, err := s.Placeholder("i", language.Shape{o.length}, language.Int32)
		if err != nil {
			return nil, err
		}
		j, err := s.Placeholder("j", language.Shape{o.length}, language.Int32)
		if err != nil {
			return nil, err
		}
		return []language.Value{
			i, j,
			language.Int(o.sizeI), language.Int(o.sizeJ), language.Int(o.sizeG),
		}, nil
	}

	args := make([]language.Value, e.Arity)
	for n := range args {
		v, err := s.Placeholder(fmt.Sprintf("arg%d", n), language.Shape{o.length}, language.Float32)
		if err != nil {
			return nil, err
		}
		args[n] = v
	}
	return args, nil
}
