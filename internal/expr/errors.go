package expr

import "errors"

// ErrInvalidArgument reports an argument that is structurally invalid at
// graph-construction time, such as a non-positive grid size or an
// incompatible shape. Arithmetic failures (division by zero, overflow) are
// not detected here; they surface when a backend evaluates the graph.
var ErrInvalidArgument = errors.New("invalid argument")
