// Copyright 2017 The Gofvp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linsol

import (
	"math"

	"github.com/cpmech/gofvp/csr"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

// Umfpack wraps the UMFPACK sparse direct solver from gosl
type Umfpack struct {
	prms  *Params
	tA    *la.Triplet     // triplet sized once for the pinned pattern
	pat   *csr.Pattern    // pattern used to size tA
	ls    la.SparseSolver // gosl solver
	wrk   []float64       // workspace for residual
	stats Stats
}

// add solver to factory
func init() {
	register("umfpack", func(prms *Params) (Solver, error) {
		return &Umfpack{prms: prms}, nil
	})
}

// Solve solves A・x = b
//  Note: errors raised by the factorisation are reported as SingularMatrixError
func (o *Umfpack) Solve(x []float64, A *csr.Matrix, b []float64) (err error) {

	// check
	err = checkDims(x, A, b)
	if err != nil {
		return
	}

	// gosl panics on factorisation failures
	defer func() {
		if r := recover(); r != nil {
			o.Free() // force a fresh initialisation on next call
			err = &SingularMatrixError{"umfpack", io.Sf("%v", r)}
		}
	}()

	// (re)allocate triplet if the pattern changed
	n, _ := A.Dims()
	if o.pat != A.Pat {
		o.Free()
		o.tA = new(la.Triplet)
		o.tA.Init(n, n, A.Pat.Nnz())
		o.pat = A.Pat
		o.wrk = make([]float64, n)
	}
	A.ToTriplet(o.tA)

	// initialise solver
	if o.ls == nil {
		o.ls = la.NewSparseSolver("umfpack")
		o.ls.Init(o.tA, &la.SpArgs{Symmetric: o.prms.Symmetric, Verbose: o.prms.Verbose})
	}

	// factorise and solve
	o.ls.Fact()
	o.ls.Solve(x, b, false)

	// check solution
	o.stats.Niter = 1
	o.stats.Resid = residual(o.wrk, A, x, b)
	if math.IsNaN(o.stats.Resid) || math.IsInf(o.stats.Resid, 0) {
		return &SingularMatrixError{"umfpack", "solution is not finite"}
	}
	if o.prms.Verbose {
		io.Pf("umfpack: n = %d, nnz = %d, residual = %g\n", n, A.Pat.Nnz(), o.stats.Resid)
	}
	return
}

// Stats returns statistics of the last solution
func (o *Umfpack) Stats() Stats { return o.stats }

// Free releases resources
func (o *Umfpack) Free() {
	if o.ls != nil {
		o.ls.Free()
		o.ls = nil
	}
	o.pat = nil
}
