// Copyright 2017 The Gofvp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linsol

import (
	"github.com/cpmech/gofvp/csr"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/floats"
)

// Krylov implements preconditioned Krylov subspace solvers
//  Method "cg":       conjugate gradients; A must be symmetric positive definite
//  Method "bicgstab": stabilised bi-conjugate gradients; general A
type Krylov struct {
	prms   *Params
	method string
	stats  Stats

	// workspace
	r, rhat, z, p, v, s, t, shat, phat []float64
}

// add solvers to factory
func init() {
	for _, method := range []string{"cg", "bicgstab"} {
		name := method
		register(name, func(prms *Params) (Solver, error) {
			return &Krylov{prms: prms, method: name}, nil
		})
	}
}

// Solve solves A・x = b using x as initial guess
func (o *Krylov) Solve(x []float64, A *csr.Matrix, b []float64) (err error) {

	// check
	err = checkDims(x, A, b)
	if err != nil {
		return
	}
	o.alloc(len(b))
	o.stats = Stats{}

	// trivial solution
	bnorm := floats.Norm(b, 2)
	if bnorm == 0 {
		for i := range x {
			x[i] = 0
		}
		return
	}

	// preconditioner
	M, err := NewPrecond(o.prms.Precond, A)
	if err != nil {
		return
	}

	// run
	if o.method == "cg" {
		err = o.cg(x, A, b, M, bnorm)
	} else {
		err = o.bicgstab(x, A, b, M, bnorm)
	}
	if o.prms.Verbose {
		io.Pf("%s: precond = %s, niter = %d, residual = %g\n", o.method, o.prms.Precond, o.stats.Niter, o.stats.Resid)
	}
	return
}

// Stats returns statistics of the last solution
func (o *Krylov) Stats() Stats { return o.stats }

// Free releases resources
func (o *Krylov) Free() {}

// cg runs the preconditioned conjugate gradient method
func (o *Krylov) cg(x []float64, A *csr.Matrix, b []float64, M Precond, bnorm float64) error {

	// r = b - A・x
	r, z, p, q := o.r, o.z, o.p, o.v
	A.MulVec(q, x)
	floats.SubTo(r, b, q)
	o.stats.Resid = floats.Norm(r, 2) / bnorm
	if o.stats.Resid <= o.prms.Tol {
		return nil
	}
	M.Apply(z, r)
	copy(p, z)
	rz := floats.Dot(r, z)

	for o.stats.Niter = 1; o.stats.Niter <= o.prms.NmaxIt; o.stats.Niter++ {
		A.MulVec(q, p)
		pq := floats.Dot(p, q)
		if pq == 0 {
			return o.failed("breakdown: pᵀ・A・p = 0")
		}
		α := rz / pq
		floats.AddScaled(x, α, p)  // x += α・p
		floats.AddScaled(r, -α, q) // r -= α・A・p
		o.stats.Resid = floats.Norm(r, 2) / bnorm
		if o.stats.Resid <= o.prms.Tol {
			return nil
		}
		M.Apply(z, r)
		rzNew := floats.Dot(r, z)
		β := rzNew / rz
		floats.AddScaledTo(p, z, β, p) // p = z + β・p
		rz = rzNew
	}
	o.stats.Niter = o.prms.NmaxIt
	return o.failed("max number of iterations reached")
}

// bicgstab runs the right-preconditioned BiCGStab method
func (o *Krylov) bicgstab(x []float64, A *csr.Matrix, b []float64, M Precond, bnorm float64) error {

	// r = b - A・x
	r, rhat, p, v, s, t, phat, shat := o.r, o.rhat, o.p, o.v, o.s, o.t, o.phat, o.shat
	A.MulVec(v, x)
	floats.SubTo(r, b, v)
	o.stats.Resid = floats.Norm(r, 2) / bnorm
	if o.stats.Resid <= o.prms.Tol {
		return nil
	}
	copy(rhat, r)
	for i := range p {
		p[i], v[i] = 0, 0
	}
	ρ, α, ω := 1.0, 1.0, 1.0

	for o.stats.Niter = 1; o.stats.Niter <= o.prms.NmaxIt; o.stats.Niter++ {
		ρNew := floats.Dot(rhat, r)
		if ρNew == 0 {
			return o.failed("breakdown: ρ = 0")
		}
		if o.stats.Niter == 1 {
			copy(p, r)
		} else {
			β := (ρNew / ρ) * (α / ω)
			floats.AddScaled(p, -ω, v)     // p = p - ω・v
			floats.AddScaledTo(p, r, β, p) // p = r + β・p
		}
		M.Apply(phat, p)
		A.MulVec(v, phat)
		den := floats.Dot(rhat, v)
		if den == 0 {
			return o.failed("breakdown: r̂ᵀ・v = 0")
		}
		α = ρNew / den
		floats.AddScaledTo(s, r, -α, v) // s = r - α・v
		if floats.Norm(s, 2)/bnorm <= o.prms.Tol {
			floats.AddScaled(x, α, phat)
			o.stats.Resid = floats.Norm(s, 2) / bnorm
			return nil
		}
		M.Apply(shat, s)
		A.MulVec(t, shat)
		tt := floats.Dot(t, t)
		if tt == 0 {
			return o.failed("breakdown: tᵀ・t = 0")
		}
		ω = floats.Dot(t, s) / tt
		floats.AddScaled(x, α, phat)
		floats.AddScaled(x, ω, shat)
		floats.AddScaledTo(r, s, -ω, t) // r = s - ω・t
		o.stats.Resid = floats.Norm(r, 2) / bnorm
		if o.stats.Resid <= o.prms.Tol {
			return nil
		}
		if ω == 0 {
			return o.failed("breakdown: ω = 0")
		}
		ρ = ρNew
	}
	o.stats.Niter = o.prms.NmaxIt
	return o.failed("max number of iterations reached")
}

// failed returns a convergence error with current statistics
func (o *Krylov) failed(reason string) error {
	return &ConvergenceError{o.method, o.stats.Niter, o.stats.Resid, o.prms.Tol, reason}
}

// alloc allocates workspace
func (o *Krylov) alloc(n int) {
	if len(o.r) == n {
		return
	}
	o.r = make([]float64, n)
	o.rhat = make([]float64, n)
	o.z = make([]float64, n)
	o.p = make([]float64, n)
	o.v = make([]float64, n)
	o.s = make([]float64, n)
	o.t = make([]float64, n)
	o.shat = make([]float64, n)
	o.phat = make([]float64, n)
}
