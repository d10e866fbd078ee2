// Package trace runs exported functions against a builder and captures
// the expression graph they record. Because every exported function is
// free of side effects, re-tracing with identical arguments always
// reproduces an identical graph shape.
package trace

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/khaotik/triton/internal/expr"
	"github.com/khaotik/triton/internal/stdlib"
)

// Session is one tracing run: a builder plus an identifier used to tag
// graph dumps. Placeholder inputs and the traced function must share the
// session's builder.
type Session struct {
	id      string
	builder *expr.Builder
}

// NewSession creates a session with a fresh builder.
func NewSession() *Session {
	return &Session{
		id:      uuid.NewString(),
		builder: expr.NewBuilder(),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Builder returns the session's builder.
func (s *Session) Builder() *expr.Builder {
	return s.builder
}

// Placeholder introduces a named symbolic input on the session's builder.
func (s *Session) Placeholder(name string, shape expr.Shape, dtype expr.DataType) (expr.Value, error) {
	return s.builder.Placeholder(name, shape, dtype)
}

// Run invokes an exported function on the session's builder. The argument
// count must match the export's arity.
func (s *Session) Run(e stdlib.Export, args ...expr.Value) (*Result, error) {
	if len(args) != e.Arity {
		return nil, fmt.Errorf("%s expects %d arguments, got %d: %w",
			e.Name, e.Arity, len(args), expr.ErrInvalidArgument)
	}
	return s.RunFunc(e.Name, e.Fn, args...)
}

// RunFunc invokes an arbitrary kernel function on the session's builder.
func (s *Session) RunFunc(name string, fn stdlib.Func, args ...expr.Value) (*Result, error) {
	outs, err := fn(s.builder, args)
	if err != nil {
		return nil, fmt.Errorf("tracing %s: %w", name, err)
	}
	return &Result{
		ID:      s.id,
		Name:    name,
		Outputs: outs,
		Graph:   s.builder.Graph(),
	}, nil
}

// Trace invokes an exported function on a fresh session. Arguments are
// constants or values the caller obtained elsewhere; kernels needing
// placeholder inputs should build them through a Session instead.
func Trace(e stdlib.Export, args ...expr.Value) (*Result, error) {
	return NewSession().Run(e, args...)
}

// Result is one completed trace: the recorded graph plus the values the
// function returned.
type Result struct {
	ID      string
	Name    string
	Outputs []expr.Value
	Graph   *expr.Graph
}

// Dump renders the trace for inspection: a header line followed by the
// graph, one operation per line.
func (r *Result) Dump() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "trace %s (%s): %d nodes\n", r.Name, r.ID, r.Graph.NumNodes())
	sb.WriteString(r.Graph.String())
	outs := make([]string, len(r.Outputs))
	for i, v := range r.Outputs {
		outs[i] = v.String()
	}
	fmt.Fprintf(&sb, "return %s\n", strings.Join(outs, ", "))
	return sb.String()
}

// Backend is the contract a downstream compiler fulfills: it consumes a
// finished graph and lowers it to an executable kernel. Lowering,
// scheduling and numeric execution all live behind this interface; this
// layer only produces graphs.
type Backend interface {
	// Name identifies the backend implementation.
	Name() string

	// Lower compiles the graph rooted at the given output values.
	Lower(g *expr.Graph, outputs []expr.Value) error
}
