// Copyright 2017 The Gofvp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fvp

import (
	"math"

	"github.com/cpmech/gofvp/linsol"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/floats"
)

// State of the pressure model
type State int

// states
const (
	Uninitialized State = iota // nothing assembled or last step failed
	Assembled                  // system ready to be solved
	Solved                     // pressure field available
)

func (o State) String() string {
	switch o {
	case Assembled:
		return "assembled"
	case Solved:
		return "solved"
	}
	return "uninitialized"
}

// Pressure implements the pressure model: assembly, solution and the resulting pressure field
type Pressure struct {

	// collaborators
	Asm    *Assembler    // assembler owning matrix and right-hand side
	Solver linsol.Solver // linear solver
	Store  Storer        // receives the pressure after each solve; may be nil

	// constants
	NmaxIni int     // max number of passes in Initialize
	IniTol  float64 // tolerance on the relative change of pressure in Initialize
	Verbose bool    // show messages

	// results
	P      []float64 // [ncells] pressure field
	Nsolve int       // number of successful solves

	// internal
	state State
	x     []float64 // solution of the linear system; copied into P on success
	prev  []float64 // previous field during Initialize
	diff  []float64 // workspace
}

// NewPressure returns a new pressure model with zero field
func NewPressure(asm *Assembler, solver linsol.Solver, store Storer) *Pressure {
	return &Pressure{
		Asm:     asm,
		Solver:  solver,
		Store:   store,
		NmaxIni: 10,
		IniTol:  1e-5,
		P:       make([]float64, asm.N()),
		x:       make([]float64, asm.N()),
	}
}

// State returns the current state
func (o *Pressure) State() State { return o.state }

// Assemble assembles the linear system
func (o *Pressure) Assemble(first bool) (err error) {
	err = o.Asm.Assemble(first)
	if err != nil {
		o.state = Uninitialized
		return
	}
	o.state = Assembled
	return
}

// Solve solves the assembled system and hands the field to the storer. P is the initial guess
// and is left untouched if the solver fails
func (o *Pressure) Solve() (err error) {
	if o.state != Assembled {
		return chk.Err("cannot solve pressure system: state is %q; assemble first", o.state)
	}
	copy(o.x, o.P)
	err = o.Solver.Solve(o.x, o.Asm.A, o.Asm.F)
	if err != nil {
		o.state = Uninitialized
		return
	}
	copy(o.P, o.x)
	o.Nsolve++
	err = o.store()
	if err != nil {
		o.state = Uninitialized
		return
	}
	o.state = Solved
	if o.Verbose {
		st := o.Solver.Stats()
		io.Pf("pressure: solve # %d: niter = %d, residual = %g\n", o.Nsolve, st.Niter, st.Resid)
	}
	return
}

// Update assembles with first=false and solves. It is called once per time step.
//  Note: solveTwice is not consumed here; callers willing to refresh upwind directions
//        call Update again
func (o *Pressure) Update(solveTwice bool) (err error) {
	err = o.Assemble(false)
	if err != nil {
		return
	}
	return o.Solve()
}

// Initialize computes the initial pressure field. The first pass uses first=true; then, if
// solveTwice, assembly and solution are repeated until the relative change of the field is
// smaller than IniTol or NmaxIni passes are reached
func (o *Pressure) Initialize(solveTwice bool) (err error) {
	err = o.Assemble(true)
	if err != nil {
		return
	}
	err = o.Solve()
	if err != nil || !solveTwice {
		return
	}
	if len(o.prev) != len(o.P) {
		o.prev = make([]float64, len(o.P))
		o.diff = make([]float64, len(o.P))
	}
	for it := 1; it < o.NmaxIni; it++ {
		copy(o.prev, o.P)
		err = o.Update(false)
		if err != nil {
			return
		}
		change := o.change()
		if o.Verbose {
			io.Pf("pressure: initialisation pass %d: relative change = %g\n", it+1, change)
		}
		if change < o.IniTol {
			return
		}
	}
	if o.Verbose {
		io.Pfyel("pressure: initialisation stopped after %d passes\n", o.NmaxIni)
	}
	return
}

// Value returns the pressure of cell i
func (o *Pressure) Value(i int) float64 { return o.P[i] }

// String returns the state and the pressure field
func (o *Pressure) String() string {
	return io.Sf("state = %v\np = %v\n", o.state, o.P)
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////

// change computes ‖p - prev‖∞ / ‖p‖∞
func (o *Pressure) change() float64 {
	floats.SubTo(o.diff, o.P, o.prev)
	num := floats.Norm(o.diff, math.Inf(1))
	den := floats.Norm(o.P, math.Inf(1))
	if den == 0 {
		return num
	}
	return num / den
}

// store hands the pressure field to the storer
func (o *Pressure) store() error {
	if o.Store == nil {
		return nil
	}
	return o.Store.StorePressure(o.P)
}
