package expr

import (
	"fmt"
	"strings"
)

// OpKind identifies the primitive operator a graph node applies.
type OpKind int

// Primitive operators.
const (
	OpPlaceholder OpKind = iota
	OpAdd
	OpSub
	OpMul
	OpNeg
	OpFloorDiv
	OpMod
	OpFDiv
	OpExp
	OpLess
	OpGreater
	OpGreaterEqual
	OpWhere
	OpReduceMax
	OpReduceSum
	OpReshape
	OpZeros
	OpCast
)

// String returns the operator mnemonic used in graph dumps.
func (k OpKind) String() string {
	switch k {
	case OpPlaceholder:
		return "placeholder"
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMul:
		return "mul"
	case OpNeg:
		return "neg"
	case OpFloorDiv:
		return "floordiv"
	case OpMod:
		return "mod"
	case OpFDiv:
		return "fdiv"
	case OpExp:
		return "exp"
	case OpLess:
		return "less"
	case OpGreater:
		return "greater"
	case OpGreaterEqual:
		return "greater_equal"
	case OpWhere:
		return "where"
	case OpReduceMax:
		return "reduce_max"
	case OpReduceSum:
		return "reduce_sum"
	case OpReshape:
		return "reshape"
	case OpZeros:
		return "zeros"
	case OpCast:
		return "cast"
	default:
		return "unknown"
	}
}

// Rounding selects the division semantics a backend must use for fdiv
// nodes. It is a build-time configuration value, resolved before graph
// construction; it never becomes a runtime branch in the graph.
type Rounding int

const (
	// RoundFast permits the backend's fast approximate division.
	RoundFast Rounding = iota
	// RoundIEEE requires strict IEEE-754 division.
	RoundIEEE
)

// String returns the rounding-mode name.
func (r Rounding) String() string {
	if r == RoundIEEE {
		return "ieee"
	}
	return "fast"
}

// Node is one operation in an expression graph: an operator tag plus an
// ordered operand list of symbolic values and constants. Nodes are created
// only through a Builder and are immutable afterwards.
type Node struct {
	id     int
	kind   OpKind
	inputs []Value
	shape  Shape
	dtype  DataType

	// Operator attributes. axis is set for reductions, rounding for
	// fdiv, name for placeholders.
	axis     int
	rounding Rounding
	name     string
}

// ID returns the node's position in its graph.
func (n *Node) ID() int { return n.id }

// Kind returns the node's operator tag.
func (n *Node) Kind() OpKind { return n.kind }

// Inputs returns the node's ordered operand list.
func (n *Node) Inputs() []Value { return n.inputs }

// Shape returns the shape of the node's result.
func (n *Node) Shape() Shape { return n.shape }

// DType returns the element type of the node's result.
func (n *Node) DType() DataType { return n.dtype }

// Axis returns the reduction axis for reduce_max/reduce_sum nodes.
func (n *Node) Axis() int { return n.axis }

// RoundingMode returns the division semantics for fdiv nodes.
func (n *Node) RoundingMode() Rounding { return n.rounding }

// Name returns the placeholder name, if any.
func (n *Node) Name() string { return n.name }

// Graph is an append-only expression graph under construction. Nodes are
// stored in emission order, so every node's operands precede it and the
// graph is acyclic by construction.
type Graph struct {
	nodes []*Node
}

// NumNodes returns the number of nodes emitted so far.
func (g *Graph) NumNodes() int {
	return len(g.nodes)
}

// Nodes returns the nodes in emission order.
// Callers must not modify the returned slice.
func (g *Graph) Nodes() []*Node {
	return g.nodes
}

// append adds a node, assigning its id.
func (g *Graph) append(n *Node) *Node {
	n.id = len(g.nodes)
	g.nodes = append(g.nodes, n)
	return n
}

// String renders the graph as one operation per line, e.g.
//
//	%0 = placeholder[x] int32 [16]
//	%1 = mul(%0, 4) int32 [16]
func (g *Graph) String() string {
	var sb strings.Builder
	for _, n := range g.nodes {
		fmt.Fprintf(&sb, "%%%d = %s", n.id, n.kind)
		if n.kind == OpPlaceholder {
			fmt.Fprintf(&sb, "[%s]", n.name)
		}
		if len(n.inputs) > 0 {
			args := make([]string, len(n.inputs))
			for i, in := range n.inputs {
				args[i] = in.String()
			}
			fmt.Fprintf(&sb, "(%s)", strings.Join(args, ", "))
		}
		switch n.kind {
		case OpReduceMax, OpReduceSum:
			fmt.Fprintf(&sb, " axis=%d", n.axis)
		case OpFDiv:
			fmt.Fprintf(&sb, " rounding=%s", n.rounding)
		}
		fmt.Fprintf(&sb, " %s %v\n", n.dtype, n.shape)
	}
	return sb.String()
}
