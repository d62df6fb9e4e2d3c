// Copyright 2017 The Gofvp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linsol

import (
	"errors"
	"testing"

	"github.com/cpmech/gofvp/csr"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// grid implements csr.Topology for nx×ny cells; faces: left, right, bottom, top
type grid struct{ nx, ny int }

func (o grid) Ncells() int         { return o.nx * o.ny }
func (o grid) Nfaces(cell int) int { return 4 }
func (o grid) Neighbor(cell, face int) int {
	i, j := cell%o.nx, cell/o.nx
	switch face {
	case 0:
		i--
	case 1:
		i++
	case 2:
		j--
	case 3:
		j++
	}
	if i < 0 || j < 0 || i >= o.nx || j >= o.ny {
		return -1
	}
	return i + j*o.nx
}

// laplacian returns the two-point Laplacian on g with unit coefficients plus
// dbot[i] added to the diagonal of cell i
func laplacian(tst *testing.T, g grid, dbot []float64) *csr.Matrix {
	pat, err := csr.Build(g)
	if err != nil {
		tst.Fatalf("Build failed:\n%v", err)
	}
	A := csr.NewMatrix(pat)
	for i := 0; i < g.Ncells(); i++ {
		for f := 0; f < g.Nfaces(i); f++ {
			if j := g.Neighbor(i, f); j >= 0 {
				A.AddDiag(i, 1)
				A.Set(i, j, -1)
			}
		}
		if dbot != nil {
			A.AddDiag(i, dbot[i])
		}
	}
	return A
}

func allParams() (res []*Params) {
	res = append(res, &Params{Name: "umfpack"}, &Params{Name: "dense"})
	for _, name := range []string{"cg", "bicgstab"} {
		for _, pc := range []string{"none", "jacobi", "ilu0"} {
			res = append(res, &Params{Name: name, Precond: pc, Tol: 1e-12, NmaxIt: 200})
		}
	}
	return
}

func Test_linsol01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("linsol01. single cell and 3-cell chain")

	// [[2]]・x = [10]
	A1 := laplacian(tst, grid{1, 1}, []float64{2})

	// chain with unit boundary coefficients at both ends
	A3 := laplacian(tst, grid{3, 1}, []float64{1, 0, 1})
	io.Pforan("A3 =\n%v", A3.Print("%6g"))

	for _, prms := range allParams() {
		solver, err := New(prms)
		if err != nil {
			tst.Errorf("New failed:\n%v", err)
			return
		}
		x := []float64{0}
		err = solver.Solve(x, A1, []float64{10})
		if err != nil {
			tst.Errorf("%s/%s failed:\n%v", prms.Name, prms.Precond, err)
			return
		}
		chk.Array(tst, prms.Name+"/"+prms.Precond+": x1", 1e-14, x, []float64{5})

		x = make([]float64, 3)
		err = solver.Solve(x, A3, []float64{5, 0, 0})
		if err != nil {
			tst.Errorf("%s/%s failed:\n%v", prms.Name, prms.Precond, err)
			return
		}
		chk.Array(tst, prms.Name+"/"+prms.Precond+": x3", 1e-11, x, []float64{3.75, 2.5, 1.25})
		solver.Free()
	}
}

func Test_linsol02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("linsol02. 2D grid; iterative versus direct")

	g := grid{5, 4}
	dbot := make([]float64, g.Ncells())
	b := make([]float64, g.Ncells())
	dbot[0], b[0] = 1, 10 // fixed level @ first cell
	dbot[g.Ncells()-1] = 1
	b[7] = 2
	A := laplacian(tst, g, dbot)

	ref := make([]float64, g.Ncells())
	solver, _ := New(&Params{Name: "dense"})
	err := solver.Solve(ref, A, b)
	if err != nil {
		tst.Errorf("dense failed:\n%v", err)
		return
	}
	io.Pforan("ref = %v\n", ref)

	for _, prms := range allParams() {
		solver, err = New(prms)
		if err != nil {
			tst.Errorf("New failed:\n%v", err)
			return
		}
		x := make([]float64, g.Ncells())
		err = solver.Solve(x, A, b)
		if err != nil {
			tst.Errorf("%s/%s failed:\n%v", prms.Name, prms.Precond, err)
			return
		}
		io.Pf("%-8s %-6s : niter = %3d resid = %g\n", prms.Name, prms.Precond, solver.Stats().Niter, solver.Stats().Resid)
		chk.Array(tst, prms.Name+"/"+prms.Precond, 1e-9, x, ref)
	}
}

func Test_linsol03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("linsol03. singular and non-convergent systems")

	// no boundary coefficient => singular
	A := laplacian(tst, grid{3, 1}, nil)
	b := []float64{5, 0, 0}

	for _, name := range []string{"dense", "umfpack"} {
		solver, _ := New(&Params{Name: name})
		err := solver.Solve(make([]float64, 3), A, b)
		var serr *SingularMatrixError
		if !errors.As(err, &serr) {
			tst.Errorf("%s: SingularMatrixError expected. got %v", name, err)
		}
		io.Pforan("%v\n", err)

		// same solver recovers after the failure
		x := make([]float64, 3)
		err = solver.Solve(x, laplacian(tst, grid{3, 1}, []float64{1, 0, 1}), b)
		if err != nil {
			tst.Errorf("%s: solve after singular system failed:\n%v", name, err)
			return
		}
		chk.Array(tst, name+": x", 1e-13, x, []float64{3.75, 2.5, 1.25})
		solver.Free()
	}

	// ilu0 finds a zero pivot
	solver, _ := New(&Params{Name: "cg", Precond: "ilu0", Tol: 1e-10, NmaxIt: 10})
	err := solver.Solve(make([]float64, 3), A, b)
	var serr *SingularMatrixError
	if !errors.As(err, &serr) {
		tst.Errorf("ilu0: SingularMatrixError expected. got %v", err)
	}

	// iteration budget too small
	g := grid{30, 1}
	dbot := make([]float64, 30)
	dbot[0], dbot[29] = 1, 1
	bb := make([]float64, 30)
	bb[0] = 1
	solver, _ = New(&Params{Name: "cg", Precond: "none", Tol: 1e-12, NmaxIt: 3})
	err = solver.Solve(make([]float64, 30), laplacian(tst, g, dbot), bb)
	var cerr *ConvergenceError
	if !errors.As(err, &cerr) {
		tst.Errorf("ConvergenceError expected. got %v", err)
		return
	}
	io.Pforan("%v\n", err)
	chk.Int(tst, "niter", cerr.Niter, 3)

	// zero right-hand side
	x := []float64{1, 2, 3}
	solver, _ = New(&Params{Name: "bicgstab", Precond: "jacobi", Tol: 1e-12, NmaxIt: 3})
	err = solver.Solve(x, A, make([]float64, 3))
	if err != nil {
		tst.Errorf("zero rhs failed:\n%v", err)
		return
	}
	chk.Array(tst, "x", 1e-17, x, []float64{0, 0, 0})

	// unknown solver and dimensions
	_, err = New(&Params{Name: "gauss"})
	if err == nil {
		tst.Errorf("New should have failed")
	}
	solver, _ = New(&Params{Name: "dense"})
	if solver.Solve(make([]float64, 2), A, b) == nil {
		tst.Errorf("Solve should have failed with wrong dimensions")
	}
}
