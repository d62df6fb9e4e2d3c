// Copyright 2017 The Gofvp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linsol

import "github.com/cpmech/gosl/io"

// ConvergenceError reports that an iterative solver did not reach the tolerance
type ConvergenceError struct {
	Solver string  // solver name
	Niter  int     // number of iterations performed
	Resid  float64 // last relative residual
	Tol    float64 // requested tolerance
	Reason string  // e.g. "max number of iterations reached" or "breakdown"
}

func (o *ConvergenceError) Error() string {
	return io.Sf("%s did not converge after %d iterations: residual = %g > tol = %g (%s)", o.Solver, o.Niter, o.Resid, o.Tol, o.Reason)
}

// SingularMatrixError reports that the solver found the matrix to be singular
type SingularMatrixError struct {
	Solver string // solver name
	Msg    string // details given by the solver
}

func (o *SingularMatrixError) Error() string {
	return io.Sf("%s: matrix is singular: %s", o.Solver, o.Msg)
}
