// Copyright 2026 The Relmem Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu exposes the pure-Go CPU backend.
package cpu

import (
	"github.com/relmem-ml/relmem/internal/backend/cpu"
)

// Backend is the CPU implementation of tensor.Backend.
type Backend = cpu.CPUBackend

// New creates a new CPU backend.
//
// Example:
//
//	backend := cpu.New()
//	t := tensor.Zeros[float32](tensor.Shape{3, 4}, backend)
func New() *Backend {
	return cpu.New()
}
