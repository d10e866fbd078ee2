// Copyright 2025 The Triton Go Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package trace provides the public API for running exported functions
// against a builder and capturing the expression graph they record.
//
// Example:
//
//	s := trace.NewSession()
//	x, _ := s.Placeholder("x", language.Shape{16}, language.Float32)
//	e, _ := language.Exports().Lookup("softmax")
//	r, _ := s.Run(e, x)
//	fmt.Print(r.Dump())
package trace

import (
	internal "github.com/khaotik/triton/internal/trace"
	"github.com/khaotik/triton/language"
)

// Session is one tracing run over a builder.
type Session = internal.Session

// Result is one completed trace session.
type Result = internal.Result

// Backend is the lowering contract a downstream compiler fulfills.
type Backend = internal.Backend

// NewSession creates a session with a fresh builder.
func NewSession() *Session {
	return internal.NewSession()
}

// Trace invokes an exported function on a fresh session.
func Trace(e language.Export, args ...language.Value) (*Result, error) {
	return internal.Trace(e, args...)
}
