// Copyright 2017 The Gofvp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package linsol implements the linear solvers used to compute the pressure field
package linsol

import (
	"math"

	"github.com/cpmech/gofvp/csr"
	"github.com/cpmech/gosl/chk"
)

// Params holds linear solver parameters
type Params struct {
	Name      string  // "umfpack", "dense", "cg" or "bicgstab"
	Precond   string  // preconditioner for iterative solvers: "none", "jacobi" or "ilu0"
	Tol       float64 // tolerance on relative residual ‖b - A・x‖ / ‖b‖
	NmaxIt    int     // max number of iterations
	Symmetric bool    // matrix is symmetric
	Verbose   bool    // show messages
}

// SetDefault sets default values
func (o *Params) SetDefault() {
	o.Name = "umfpack"
	o.Precond = "ilu0"
	o.Tol = 1e-10
	o.NmaxIt = 500
}

// Stats holds statistics of the last solution
type Stats struct {
	Niter int     // number of iterations; 1 for direct solvers
	Resid float64 // final relative residual
}

// Solver solves A・x = b where A has a fixed sparse pattern
//  Note: x is used as initial guess by iterative solvers and is overwritten with the solution
type Solver interface {
	Solve(x []float64, A *csr.Matrix, b []float64) (err error) // solves A・x = b
	Stats() Stats                                              // statistics of last call to Solve
	Free()                                                     // releases resources
}

// New returns a new linear solver
func New(prms *Params) (Solver, error) {
	allocator, ok := allocators[prms.Name]
	if !ok {
		return nil, chk.Err("linear solver %q is not available", prms.Name)
	}
	return allocator(prms)
}

// allocators holds all available solvers
var allocators = map[string]func(prms *Params) (Solver, error){}

// register adds a solver allocator to the database
func register(name string, allocator func(prms *Params) (Solver, error)) {
	if _, ok := allocators[name]; ok {
		chk.Panic("linear solver %q is already registered", name)
	}
	allocators[name] = allocator
}

// residual computes ‖b - A・x‖ / ‖b‖ (or ‖b - A・x‖ if b == 0) using w as workspace
func residual(w []float64, A *csr.Matrix, x, b []float64) float64 {
	A.MulVec(w, x)
	var rr, bb float64
	for i := range b {
		rr += (b[i] - w[i]) * (b[i] - w[i])
		bb += b[i] * b[i]
	}
	if bb > 0 {
		return math.Sqrt(rr / bb)
	}
	return math.Sqrt(rr)
}

// checkDims checks the dimensions of the linear system
func checkDims(x []float64, A *csr.Matrix, b []float64) error {
	n, _ := A.Dims()
	if len(x) != n || len(b) != n {
		return chk.Err("dimensions of linear system are incorrect: A is %d×%d, len(x)=%d, len(b)=%d", n, n, len(x), len(b))
	}
	return nil
}
