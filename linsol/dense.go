// Copyright 2017 The Gofvp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linsol

import (
	"math"

	"github.com/cpmech/gofvp/csr"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/mat"
)

// DenseLU solves the system with a dense LU factorisation (gonum); for small grids and debugging
type DenseLU struct {
	prms  *Params
	wrk   []float64
	stats Stats
}

// add solver to factory
func init() {
	register("dense", func(prms *Params) (Solver, error) {
		return &DenseLU{prms: prms}, nil
	})
}

// Solve solves A・x = b
func (o *DenseLU) Solve(x []float64, A *csr.Matrix, b []float64) (err error) {

	// check
	err = checkDims(x, A, b)
	if err != nil {
		return
	}
	n, _ := A.Dims()

	// factorisation
	var lu mat.LU
	lu.Factorize(A.ToDense())
	cond := lu.Cond()
	if math.IsInf(cond, 0) || math.IsNaN(cond) || cond > mat.ConditionTolerance {
		return &SingularMatrixError{"dense", io.Sf("condition number = %g", cond)}
	}

	// solution
	xv := mat.NewVecDense(n, x)
	err = lu.SolveVecTo(xv, false, mat.NewVecDense(n, b))
	if err != nil {
		return &SingularMatrixError{"dense", err.Error()}
	}

	// statistics
	if len(o.wrk) != n {
		o.wrk = make([]float64, n)
	}
	o.stats.Niter = 1
	o.stats.Resid = residual(o.wrk, A, x, b)
	if o.prms.Verbose {
		io.Pf("dense: n = %d, cond = %g, residual = %g\n", n, cond, o.stats.Resid)
	}
	return
}

// Stats returns statistics of the last solution
func (o *DenseLU) Stats() Stats { return o.stats }

// Free releases resources
func (o *DenseLU) Free() {}
