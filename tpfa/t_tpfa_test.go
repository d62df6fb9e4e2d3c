// Copyright 2017 The Gofvp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tpfa

import (
	"errors"
	"testing"

	"github.com/cpmech/gofvp/fvp"
	"github.com/cpmech/gofvp/linsol"
	"github.com/cpmech/gofvp/mdl/conduct"
	"github.com/cpmech/gofvp/mdl/fluid"
	"github.com/cpmech/gofvp/mdl/porous"
	"github.com/cpmech/gofvp/mdl/retention"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// line implements Geometry for n cells of size h aligned with axis dir
//  face 0: towards cell i-1; face 1: towards cell i+1
type line struct {
	n, ndim, dir int
	h, area      float64
}

func (o line) Ncells() int         { return o.n }
func (o line) Nfaces(cell int) int { return 2 }
func (o line) Neighbor(cell, face int) int {
	j := cell - 1 + 2*face
	if j < 0 || j >= o.n {
		return -1
	}
	return j
}
func (o line) Volume(cell int) float64         { return o.h * o.area }
func (o line) FaceArea(cell, face int) float64 { return o.area }
func (o line) Centroid(cell int) []float64 {
	x := make([]float64, o.ndim)
	x[o.dir] = (float64(cell) + 0.5) * o.h
	return x
}
func (o line) FaceCenter(cell, face int) []float64 {
	x := o.Centroid(cell)
	x[o.dir] += (float64(face) - 0.5) * o.h
	return x
}
func (o line) FaceNormal(cell, face int) []float64 {
	n := make([]float64, o.ndim)
	n[o.dir] = 2*float64(face) - 1
	return n
}

func cte(c float64) dbf.T {
	return dbf.New("cte", dbf.Params{&dbf.P{N: "c", V: c}})
}

// material returns a porous model with linear kr, pc = pcmax・(1-sw) and unit viscosities
func material(tst *testing.T, pcmax, cw float64) *porous.Model {
	cnd, _ := conduct.New("lin")
	cnd.Init(nil)
	lrm, _ := retention.New("lin")
	err := lrm.Init(dbf.Params{&dbf.P{N: "pcmax", V: pcmax}})
	if err != nil {
		tst.Fatalf("cannot initialise retention model:\n%v", err)
	}
	wet := &fluid.Model{R0: 1, C: cw, Mu: 1}
	nwt := &fluid.Model{R0: 0.5, Mu: 1}
	var mdl porous.Model
	err = mdl.Init(dbf.Params{&dbf.P{N: "phi", V: 0.5}, &dbf.P{N: "k", V: 1}}, cnd, lrm, wet, nwt)
	if err != nil {
		tst.Fatalf("cannot initialise porous model:\n%v", err)
	}
	return &mdl
}

func newEvaluator(tst *testing.T, geo Geometry, form string, grav []float64, pcmax float64, sw []float64) (*Evaluator, *fvp.Variables) {
	vars := fvp.NewVariables(geo.Ncells())
	mats := make([]*porous.Model, geo.Ncells())
	mat := material(tst, pcmax, 0.1)
	for i := range mats {
		mats[i] = mat
	}
	eval, err := NewEvaluator(geo, vars, mats, form, grav)
	if err != nil {
		tst.Fatalf("NewEvaluator failed:\n%v", err)
	}
	for i := range mats {
		err = eval.SetState(i, sw[i], 0)
		if err != nil {
			tst.Fatalf("SetState failed:\n%v", err)
		}
	}
	return eval, vars
}

func solve(tst *testing.T, geo Geometry, eval *Evaluator, vars *fvp.Variables, first bool) *fvp.Pressure {
	asm, err := fvp.NewAssembler(geo, eval, vars)
	if err != nil {
		tst.Fatalf("NewAssembler failed:\n%v", err)
	}
	solver, _ := linsol.New(&linsol.Params{Name: "dense"})
	prs := fvp.NewPressure(asm, solver, eval)
	if first {
		err = prs.Initialize(false)
	} else {
		err = prs.Update(false)
	}
	if err != nil {
		tst.Fatalf("pressure solution failed:\n%v", err)
	}
	io.Pforan("%v", asm)
	return prs
}

func Test_tpfa01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("tpfa01. horizontal flow between two Dirichlet faces")

	geo := line{n: 3, ndim: 2, dir: 0, h: 1, area: 1}
	eval, vars := newEvaluator(tst, geo, FormPw, []float64{0, -10}, 0, []float64{1, 1, 1})
	eval.Steady = true
	eval.SetBc(0, 0, &Bc{Key: "pw", Fcn: cte(10)})
	eval.SetBc(2, 1, &Bc{Key: "pw", Fcn: cte(0)})

	prs := solve(tst, geo, eval, vars, true)
	chk.Deep2(tst, "A", 1e-15, prs.Asm.A.Dense(), [][]float64{
		{3, -1, 0},
		{-1, 2, -1},
		{0, -1, 3},
	})
	chk.Array(tst, "f", 1e-15, prs.Asm.F, []float64{20, 0, 0})
	chk.Array(tst, "p", 1e-14, prs.P, []float64{25.0 / 3.0, 5, 5.0 / 3.0})
	chk.Float64(tst, "pw[1]", 1e-14, vars.Cells[1].Pw, 5)
	chk.Float64(tst, "pn[1]", 1e-14, vars.Cells[1].Pn, 5)
}

func Test_tpfa02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("tpfa02. hydrostatic column")

	geo := line{n: 4, ndim: 2, dir: 1, h: 1, area: 1}
	eval, vars := newEvaluator(tst, geo, FormPw, []float64{0, -10}, 0, []float64{1, 1, 1, 1})
	eval.Mats[0].Wet.C = 0 // incompressible
	eval.Steady = true
	err := eval.SetBc(3, 1, &Bc{Key: "pw", Fcn: cte(0)})
	if err != nil {
		tst.Errorf("SetBc failed:\n%v", err)
		return
	}
	prs := solve(tst, geo, eval, vars, false)
	chk.Array(tst, "f", 1e-13, prs.Asm.F, []float64{10, 0, 0, 0})
	chk.Array(tst, "p", 1e-13, prs.P, []float64{35, 25, 15, 5})

	// the solved state is in equilibrium: a second update gives the same field
	err = prs.Update(false)
	if err != nil {
		tst.Errorf("Update failed:\n%v", err)
		return
	}
	chk.Array(tst, "p", 1e-13, prs.P, []float64{35, 25, 15, 5})
}

func Test_tpfa03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("tpfa03. capillary terms and upwinding")

	geo := line{n: 2, ndim: 1, dir: 0, h: 1, area: 1}
	face := fvp.Face{Cell: 0, Index: 1, Neighbor: 1}
	for _, form := range []string{FormPw, FormPn, FormPglobal} {
		eval, vars := newEvaluator(tst, geo, form, nil, 10, []float64{0.8, 0.4})
		chk.Float64(tst, "pc0", 1e-14, vars.Cells[0].Pc, 2)
		chk.Float64(tst, "pc1", 1e-14, vars.Cells[1].Pc, 6)

		// arithmetic mean of mobilities
		c, err := eval.Flux(face, vars.Cells[0], true)
		if err != nil {
			tst.Errorf("Flux failed:\n%v", err)
			return
		}
		chk.Float64(tst, form+": a", 1e-15, c[fvp.MatCoef], 1)
		switch form {
		case FormPw:
			chk.Float64(tst, form+": b", 1e-14, c[fvp.RhsCoef], 0.4*(2-6))
		case FormPn:
			chk.Float64(tst, form+": b", 1e-14, c[fvp.RhsCoef], -0.6*(2-6))
		default:
			chk.Float64(tst, form+": b", 1e-17, c[fvp.RhsCoef], 0)
		}
	}

	// upstream mobilities
	eval, vars := newEvaluator(tst, geo, FormPw, nil, 10, []float64{0.8, 0.4})
	eval.StorePressure([]float64{10, 0})
	chk.Float64(tst, "pn0", 1e-14, vars.Cells[0].Pn, 12)
	chk.Float64(tst, "pn1", 1e-14, vars.Cells[1].Pn, 6)
	c, err := eval.Flux(face, vars.Cells[0], false)
	if err != nil {
		tst.Errorf("Flux failed:\n%v", err)
		return
	}
	chk.Float64(tst, "a", 1e-15, c[fvp.MatCoef], 0.8+0.2)
	chk.Float64(tst, "b", 1e-14, c[fvp.RhsCoef], 0.2*(2-6))

	// from the other side: same upstream cell
	c, err = eval.Flux(fvp.Face{Cell: 1, Index: 0, Neighbor: 0}, vars.Cells[1], false)
	if err != nil {
		tst.Errorf("Flux failed:\n%v", err)
		return
	}
	chk.Float64(tst, "a", 1e-15, c[fvp.MatCoef], 0.8+0.2)
	chk.Float64(tst, "b", 1e-14, c[fvp.RhsCoef], 0.2*(6-2))

	// global pressure => phase pressures
	eval, vars = newEvaluator(tst, geo, FormPglobal, nil, 10, []float64{0.8, 0.4})
	eval.StorePressure([]float64{10, 0})
	chk.Float64(tst, "pw0", 1e-14, vars.Cells[0].Pw, 10-0.2*2)
	chk.Float64(tst, "pn0", 1e-14, vars.Cells[0].Pn, 10+0.8*2)
}

func Test_tpfa04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("tpfa04. storage, source and boundary terms")

	geo := line{n: 1, ndim: 1, dir: 0, h: 1, area: 1}
	eval, vars := newEvaluator(tst, geo, FormPw, nil, 10, []float64{1})
	dat := vars.Cells[0]
	dat.Pold = 4

	// storage
	c, err := eval.Storage(0, dat, false)
	if err != nil {
		tst.Errorf("Storage failed:\n%v", err)
		return
	}
	chk.Array(tst, "no Δt", 1e-17, c[:], []float64{0, 0})
	eval.Dt = 2
	c, _ = eval.Storage(0, dat, false)
	chk.Array(tst, "storage", 1e-15, c[:], []float64{0.025, 0.1})
	eval.Steady = true
	c, _ = eval.Storage(0, dat, false)
	chk.Array(tst, "steady", 1e-17, c[:], []float64{0, 0})

	// source
	c, _ = eval.Source(0, dat, false)
	chk.Array(tst, "no source", 1e-17, c[:], []float64{0, 0})
	eval.SetSource(0, &Source{Qw: cte(2), Qn: cte(1)})
	c, _ = eval.Source(0, dat, false)
	chk.Array(tst, "source", 1e-15, c[:], []float64{0, 2 + 1/0.5})

	// Neumann
	face := fvp.Face{Cell: 0, Index: 1, Neighbor: -1}
	c, _ = eval.FluxOnBoundary(face, dat, false)
	chk.Array(tst, "no flow", 1e-17, c[:], []float64{0, 0})
	eval.SetBc(0, 1, &Bc{Key: "qn", Fcn: cte(3)})
	c, _ = eval.FluxOnBoundary(face, dat, false)
	chk.Array(tst, "qn", 1e-15, c[:], []float64{0, -3})

	// Dirichlet on pn converted to pw; sw = 1 => pc = 0, λw = 1, λn = 0; T = 2
	eval.SetBc(0, 1, &Bc{Key: "pn", Fcn: cte(7)})
	c, _ = eval.FluxOnBoundary(face, dat, false)
	chk.Array(tst, "pn", 1e-15, c[:], []float64{2, 14})

	// inflow of non-wetting fluid
	eval.SetState(0, 0.5, 0) // pc = 5; λw = λn = 0.5; upstream: λw = 0, λn = 1
	eval.SetBc(0, 1, &Bc{Key: "pn", Fcn: cte(7), Sw: cte(0)})
	c, _ = eval.FluxOnBoundary(face, dat, false)
	chk.Array(tst, "inflow", 1e-15, c[:], []float64{2 * (0 + 1), 2 * 1 * (7 - 5)})
	c, _ = eval.FluxOnBoundary(face, dat, true)
	chk.Array(tst, "first", 1e-15, c[:], []float64{2 * (0.25 + 0.75), 2 * (7 - 5)})
}

func Test_tpfa05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("tpfa05. errors")

	geo := line{n: 2, ndim: 1, dir: 0, h: 1, area: 1}
	vars := fvp.NewVariables(2)
	mat := material(tst, 0, 0)
	mats := []*porous.Model{mat, mat}
	_, err := NewEvaluator(geo, vars, mats, "pc", nil)
	if err == nil {
		tst.Errorf("NewEvaluator should have failed")
		return
	}
	_, err = NewEvaluator(geo, vars, mats[:1], FormPw, nil)
	if err == nil {
		tst.Errorf("NewEvaluator should have failed")
		return
	}

	eval, vars := newEvaluator(tst, geo, "", nil, 0, []float64{1, 1})
	if eval.Form != FormPw {
		tst.Errorf("default formulation should be pw")
	}
	if eval.SetBc(0, 1, &Bc{Key: "pw", Fcn: cte(0)}) == nil {
		tst.Errorf("SetBc on interior face should have failed")
	}
	if eval.SetBc(0, 0, &Bc{Key: "ux", Fcn: cte(0)}) == nil {
		tst.Errorf("SetBc with wrong key should have failed")
	}

	// non-physical saturation
	err = eval.SetState(1, 1.5, 0)
	var cerr *fvp.CoefficientError
	if !errors.As(err, &cerr) {
		tst.Errorf("CoefficientError expected. got %v", err)
		return
	}
	io.Pforan("%v\n", err)

	// the assembly aborts
	asm, _ := fvp.NewAssembler(geo, eval, vars)
	err = asm.Assemble(false)
	if !errors.As(err, &cerr) {
		tst.Errorf("CoefficientError expected. got %v", err)
		return
	}
	io.Pforan("%v\n", err)
	chk.Int(tst, "cell", cerr.Cell, 0)
	chk.Int(tst, "face", cerr.Face, 1)
}

func Test_tpfa06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("tpfa06. upwinding without potential difference")

	// equal pressures, no gravity and no capillarity
	geo := line{n: 2, ndim: 1, dir: 0, h: 1, area: 1}
	eval, vars := newEvaluator(tst, geo, FormPw, nil, 0, []float64{0.8, 0.4})
	eval.Mats[0].Nwt = &fluid.Model{R0: 0.5, Mu: 2}
	err := eval.StorePressure([]float64{10, 10})
	if err != nil {
		tst.Errorf("StorePressure failed:\n%v", err)
		return
	}

	// mean mobilities from both sides: λw = (0.8+0.4)/2, λn = (0.1+0.3)/2
	c0, err := eval.Flux(fvp.Face{Cell: 0, Index: 1, Neighbor: 1}, vars.Cells[0], false)
	if err != nil {
		tst.Errorf("Flux failed:\n%v", err)
		return
	}
	c1, err := eval.Flux(fvp.Face{Cell: 1, Index: 0, Neighbor: 0}, vars.Cells[1], false)
	if err != nil {
		tst.Errorf("Flux failed:\n%v", err)
		return
	}
	chk.Float64(tst, "a (from 0)", 1e-15, c0[fvp.MatCoef], 0.8)
	chk.Float64(tst, "a (from 1)", 1e-15, c1[fvp.MatCoef], 0.8)
	chk.Float64(tst, "b (from 0)", 1e-17, c0[fvp.RhsCoef], 0)
	chk.Float64(tst, "b (from 1)", 1e-17, c1[fvp.RhsCoef], 0)

	// conservative system: zero column sums
	asm, err := fvp.NewAssembler(geo, eval, vars)
	if err != nil {
		tst.Errorf("NewAssembler failed:\n%v", err)
		return
	}
	err = asm.Assemble(false)
	if err != nil {
		tst.Errorf("Assemble failed:\n%v", err)
		return
	}
	io.Pforan("%v", asm)
	chk.Deep2(tst, "A", 1e-15, asm.A.Dense(), [][]float64{
		{0.8, -0.8},
		{-0.8, 0.8},
	})
}
