// Copyright 2016 The Gofvp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fvm

import (
	"errors"
	"os"
	"testing"

	"github.com/cpmech/gofvp/fvp"
	"github.com/cpmech/gofvp/inp"
	"github.com/cpmech/gofvp/linsol"
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

func Test_fvm01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fvm01. steady horizontal flow")

	main, err := NewMain("../inp/data/horizontal.sim", "", true, true, chk.Verbose)
	if err != nil {
		tst.Errorf("NewMain failed:\n%v", err)
		return
	}
	err = main.Run()
	if err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}

	// pressure
	pcor := []float64{8.75, 6.25, 3.75, 1.25}
	dom := main.Dom
	io.Pforan("p = %v\n", dom.Pres.P)
	chk.Array(tst, "p", 1e-13, dom.Pres.P, pcor)
	chk.Int(tst, "nsolve", dom.Pres.Nsolve, 2)
	if dom.Pres.State() != fvp.Solved {
		tst.Errorf("state should be solved. got %v", dom.Pres.State())
	}
	for i, c := range dom.Vars.Cells {
		chk.Float64(tst, io.Sf("pw%d", i), 1e-13, c.Pw, pcor[i])
		chk.Float64(tst, io.Sf("pn%d", i), 1e-13, c.Pn, pcor[i])
	}

	// summary
	sum, err := ReadSummary(main.Sim.DirOut, main.Sim.Key, main.Sim.EncType)
	if err != nil {
		tst.Errorf("ReadSummary failed:\n%v", err)
		return
	}
	chk.Array(tst, "OutTimes", 1e-15, sum.OutTimes, []float64{0, 1})
	chk.Int(tst, "Nsolve", sum.Nsolve, 2)

	// read results back
	other, err := NewMain("../inp/data/horizontal.sim", "", false, false, false)
	if err != nil {
		tst.Errorf("NewMain failed:\n%v", err)
		return
	}
	err = other.Dom.ReadSol(sum.Dirout, sum.Fnkey, main.Sim.EncType, 1)
	if err != nil {
		tst.Errorf("ReadSol failed:\n%v", err)
		return
	}
	chk.Float64(tst, "time", 1e-15, other.Dom.Time, 1)
	chk.Array(tst, "p", 1e-15, other.Dom.Pres.P, dom.Pres.P)
	chk.Float64(tst, "pw3", 1e-15, other.Dom.Vars.Cells[3].Pw, 1.25)

	// text file
	fil, err := os.Open(out_txt_path(sum.Dirout, sum.Fnkey, 1))
	if err != nil {
		tst.Errorf("cannot open text file:\n%v", err)
		return
	}
	defer fil.Close()
	err = other.Dom.Pres.ReadText(fil)
	if err != nil {
		tst.Errorf("ReadText failed:\n%v", err)
		return
	}
	chk.Array(tst, "p", 1e-15, other.Dom.Pres.P, pcor)
}

func Test_fvm02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fvm02. hydrostatic column and injection")

	main, err := NewMain("../inp/data/column.sim", "", true, true, chk.Verbose)
	if err != nil {
		tst.Errorf("NewMain failed:\n%v", err)
		return
	}
	err = main.Run()
	if err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}

	// final state
	dom := main.Dom
	io.Pforan("p = %v\n", dom.Pres.P)
	chk.Array(tst, "p", 1e-8, dom.Pres.P, []float64{20.25, 7.5})
	chk.Float64(tst, "time", 1e-10, dom.Time, 3)
	chk.Int(tst, "nsolve", dom.Pres.Nsolve, 8)
	chk.Float64(tst, "ρw", 1e-15, dom.Vars.Cells[0].RhoW, 1)
	chk.Float64(tst, "λn", 1e-15, dom.Vars.Cells[1].LamN, 0)

	// summary
	sum, err := ReadSummary(main.Sim.DirOut, main.Sim.Key, main.Sim.EncType)
	if err != nil {
		tst.Errorf("ReadSummary failed:\n%v", err)
		return
	}
	chk.Array(tst, "OutTimes", 1e-10, sum.OutTimes, []float64{0, 1, 2, 2.5, 3})

	// hydrostatic state at the end of first stage
	other, err := NewMain("../inp/data/column.sim", "", false, false, false)
	if err != nil {
		tst.Errorf("NewMain failed:\n%v", err)
		return
	}
	err = other.Dom.ReadSol(sum.Dirout, sum.Fnkey, main.Sim.EncType, 2)
	if err != nil {
		tst.Errorf("ReadSol failed:\n%v", err)
		return
	}
	chk.Float64(tst, "time", 1e-10, other.Dom.Time, 2)
	chk.Array(tst, "p", 1e-8, other.Dom.Pres.P, []float64{15, 5})
}

func Test_fvm03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fvm03. invalid stages")

	main, err := NewMain("../inp/data/column.sim", "errors", true, false, false)
	if err != nil {
		tst.Errorf("NewMain failed:\n%v", err)
		return
	}
	stg := main.Sim.Stages[0]

	// unknown tag
	stg.FaceBcs = []*inp.FaceBc{{Tag: -99, Keys: []string{"pw"}, Funcs: []string{"zero"}}}
	if main.Dom.SetStage(0) == nil {
		tst.Errorf("SetStage should have failed with unknown face tag")
	}

	// two conditions on the same faces
	stg.FaceBcs = []*inp.FaceBc{{Tag: -13, Keys: []string{"pw", "qn"}, Funcs: []string{"zero", "zero"}}}
	if main.Dom.SetStage(0) == nil {
		tst.Errorf("SetStage should have failed with two conditions")
	}

	// saturation only
	stg.FaceBcs = []*inp.FaceBc{{Tag: -13, Keys: []string{"sw"}, Funcs: []string{"one"}}}
	if main.Dom.SetStage(0) == nil {
		tst.Errorf("SetStage should have failed without pressure or flux")
	}

	// unknown cell tag
	stg.FaceBcs = nil
	stg.EleConds = []*inp.EleCond{{Tag: -7, Keys: []string{"qw"}, Funcs: []string{"inj"}}}
	if main.Dom.SetStage(0) == nil {
		tst.Errorf("SetStage should have failed with unknown cell tag")
	}

	// no boundary conditions => singular system
	stg.EleConds = nil
	main.Dom.Pres.Solver, err = linsol.New(&linsol.Params{Name: "dense"})
	if err != nil {
		tst.Errorf("linsol.New failed:\n%v", err)
		return
	}
	err = main.Dom.SetStage(0)
	if err != nil {
		tst.Errorf("SetStage failed:\n%v", err)
		return
	}
	err = main.Dom.SetIniVals(0)
	var serr *linsol.SingularMatrixError
	if !errors.As(err, &serr) {
		tst.Errorf("SingularMatrixError expected. got %v", err)
	}
	io.Pforan("%v\n", err)
	if main.Dom.Pres.State() != fvp.Uninitialized {
		tst.Errorf("state should be uninitialized. got %v", main.Dom.Pres.State())
	}
}

func Test_fvm04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fvm04. save and read solution")

	main, err := NewMain("../inp/data/horizontal.sim", "sol", true, false, chk.Verbose)
	if err != nil {
		tst.Errorf("NewMain failed:\n%v", err)
		return
	}
	main.Sim.EncType = "json"
	dom := main.Dom
	dom.Time = 2.5
	copy(dom.Pres.P, []float64{4, 3, 2, 1})
	err = dom.SaveSol(7, chk.Verbose)
	if err != nil {
		tst.Errorf("SaveSol failed:\n%v", err)
		return
	}

	// read into a fresh domain
	other, err := NewMain("../inp/data/horizontal.sim", "sol", false, false, false)
	if err != nil {
		tst.Errorf("NewMain failed:\n%v", err)
		return
	}
	err = other.Dom.ReadSol(main.Sim.DirOut, main.Sim.Key, "json", 7)
	if err != nil {
		tst.Errorf("ReadSol failed:\n%v", err)
		return
	}
	chk.Float64(tst, "time", 1e-17, other.Dom.Time, 2.5)
	chk.Array(tst, "p", 1e-17, other.Dom.Pres.P, []float64{4, 3, 2, 1})
	chk.Float64(tst, "p0 in cell data", 1e-17, other.Dom.Vars.Cells[0].P, 4)
	if other.Dom.Pres.State() != fvp.Solved {
		tst.Errorf("state should be solved. got %v", other.Dom.Pres.State())
	}

	// missing output index
	if other.Dom.ReadSol(main.Sim.DirOut, main.Sim.Key, "json", 8) == nil {
		tst.Errorf("ReadSol should have failed with missing file")
	}
}
