// Copyright 2025 The Triton Go Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package language

import (
	"github.com/khaotik/triton/internal/stdlib"
)

// Export is one record of the public surface: name, callable, arity and
// documentation.
type Export = stdlib.Export

// Registry is the ordered, append-only list of exported functions.
type Registry = stdlib.Registry

// Func is the uniform callable shape of an exported function.
type Func = stdlib.Func

// exports is populated once at package load, before any reader can
// observe it, and is read-only thereafter.
var exports = stdlib.DefaultRegistry()

// Exports returns the registry of the standard library's public surface,
// in declaration order.
func Exports() *Registry {
	return exports
}
