// Copyright 2016 The Gofvp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fvm

import (
	"github.com/cpmech/gofvp/csr"
	"github.com/cpmech/gofvp/fvp"
	"github.com/cpmech/gofvp/inp"
	"github.com/cpmech/gofvp/linsol"
	"github.com/cpmech/gofvp/mdl/porous"
	"github.com/cpmech/gofvp/tpfa"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// Domain holds the mesh, the cell variables and the pressure model of a simulation
type Domain struct {

	// init
	Sim     *inp.Simulation // [from Main] input data
	Msh     *inp.Mesh       // mesh data
	ShowMsg bool            // show messages

	// cells
	Vars *fvp.Variables  // cell variables
	Mats []*porous.Model // [ncells] materials

	// pressure model
	Eval   *tpfa.Evaluator // coefficients
	Asm    *fvp.Assembler  // assembler
	Solver linsol.Solver   // linear solver
	Pres   *fvp.Pressure   // pressure field

	// time
	Time float64 // current time
}

// NewDomain returns a new domain
func NewDomain(sim *inp.Simulation, verbose bool) (o *Domain, err error) {

	// input
	o = new(Domain)
	o.Sim = sim
	o.Msh = sim.Mesh.Msh
	o.ShowMsg = verbose

	// cells
	n := o.Msh.Ncells()
	o.Vars = fvp.NewVariables(n)
	o.Mats, err = sim.CellMaterials()
	if err != nil {
		return nil, err
	}

	// evaluator
	o.Eval, err = tpfa.NewEvaluator(o.Msh, o.Vars, o.Mats, sim.Data.Form, sim.Data.Grav)
	if err != nil {
		return nil, err
	}
	o.Eval.Steady = sim.Data.Steady

	// assembler
	o.Asm, err = fvp.NewAssembler(o.Msh, o.Eval, o.Vars)
	if err != nil {
		return nil, chk.Err("cannot build sparse pattern:\n%v", err)
	}
	if o.ShowMsg {
		io.Pf("> Pattern: n = %d, nnz = %d, capacity hint = %d\n", n, o.Asm.A.Pat.Nnz(), csr.CapacityHint(o.Msh.Ndim, n))
	}

	// linear solver
	o.Solver, err = linsol.New(sim.LinSol.Params())
	if err != nil {
		return nil, err
	}

	// pressure model
	o.Pres = fvp.NewPressure(o.Asm, o.Solver, o.Eval)
	o.Pres.NmaxIni = sim.Solver.NmaxIni
	o.Pres.IniTol = sim.Solver.IniTol
	o.Pres.Verbose = o.ShowMsg
	return
}

// Free frees memory
func (o *Domain) Free() {
	if o.Solver != nil {
		o.Solver.Free()
	}
}

// SetStage sets boundary conditions and sources of stage
func (o *Domain) SetStage(stgidx int) (err error) {

	// reset conditions
	stg := o.Sim.Stages[stgidx]
	o.Eval.Bcs = make(map[[2]int]*tpfa.Bc)
	o.Eval.Srcs = make(map[int]*tpfa.Source)

	// face boundary conditions
	for _, fc := range stg.FaceBcs {
		fcns, err := inp.GetFuncs(o.Sim.Functions, fc.Keys, fc.Funcs)
		if err != nil {
			return chk.Err("cannot get functions of face boundary condition with tag %d:\n%v", fc.Tag, err)
		}
		bc := &tpfa.Bc{Sw: fcns["sw"]}
		for _, key := range []string{"pw", "pn", "qn"} {
			if fcn, ok := fcns[key]; ok {
				if bc.Fcn != nil {
					return chk.Err("face boundary condition with tag %d has more than one of \"pw\", \"pn\" and \"qn\"", fc.Tag)
				}
				bc.Key, bc.Fcn = key, fcn
			}
		}
		if bc.Fcn == nil {
			return chk.Err("face boundary condition with tag %d requires one of \"pw\", \"pn\" or \"qn\"", fc.Tag)
		}
		faces, ok := o.Msh.FaceTag2cells[fc.Tag]
		if !ok {
			return chk.Err("cannot find faces with tag %d", fc.Tag)
		}
		for _, cf := range faces {
			if err := o.Eval.SetBc(cf.C.Id, cf.Fid, bc); err != nil {
				return err
			}
		}
	}

	// sources
	for _, ec := range stg.EleConds {
		fcns, err := inp.GetFuncs(o.Sim.Functions, ec.Keys, ec.Funcs)
		if err != nil {
			return chk.Err("cannot get functions of cell condition with tag %d:\n%v", ec.Tag, err)
		}
		cells, ok := o.Msh.CellTag2cells[ec.Tag]
		if !ok {
			return chk.Err("cannot find cells with tag %d", ec.Tag)
		}
		src := &tpfa.Source{Qw: fcns["qw"], Qn: fcns["qn"]}
		for _, c := range cells {
			o.Eval.SetSource(c.Id, src)
		}
	}

	// message
	if o.ShowMsg {
		io.Pf("> Stage %d: %d boundary faces with conditions and %d cells with sources\n", stgidx, len(o.Eval.Bcs), len(o.Eval.Srcs))
	}
	return
}

// SetIniVals sets the initial state of stage and computes the initial pressure field
//  Note: nothing is done if the stage keeps the state of the previous one
func (o *Domain) SetIniVals(stgidx int) (err error) {

	// check
	ini := o.Sim.Stages[stgidx].Initial
	if ini == nil {
		return
	}

	// functions
	fsw, err := o.iniFunc(ini.Sw, 1)
	if err != nil {
		return
	}
	fp, err := o.iniFunc(ini.P, 0)
	if err != nil {
		return
	}
	if ini.Hydrost && o.Sim.WetMdl == nil {
		return chk.Err("hydrostatic initial state requires the wetting fluid")
	}

	// state
	for i := 0; i < o.Msh.Ncells(); i++ {
		x := o.Msh.Centroid(i)
		sw := fsw.F(o.Time, x)
		p := fp.F(o.Time, x)
		if ini.Hydrost {
			pw, _ := o.Sim.WetMdl.Calc(o.Msh.Elevation(i), o.Sim.MaxElev, o.Sim.Grav0)
			p = o.Eval.Primary(i, "pw", pw, sw)
		}
		err = o.Eval.SetState(i, sw, p)
		if err != nil {
			return
		}
		o.Pres.P[i] = p
	}

	// initial pressure: no storage
	o.Eval.Time = o.Time
	o.Eval.Dt = 0
	err = o.Pres.Initialize(o.Sim.Solver.SolveTwice)
	if err != nil {
		if o.ShowMsg {
			io.PfRed("> Cannot compute initial pressure of stage %d\n", stgidx)
		}
		return
	}
	o.Vars.Backup()
	if o.ShowMsg {
		io.Pf("> Initial pressure computed after %d solves\n", o.Pres.Nsolve)
	}
	return
}

// Step advances time by dt and updates the pressure field
func (o *Domain) Step(dt float64) (err error) {
	o.Vars.Backup()
	o.Time += dt
	o.Eval.Time = o.Time
	o.Eval.Dt = dt
	err = o.Pres.Update(o.Sim.Solver.SolveTwice)
	if err != nil && o.ShowMsg {
		io.PfRed("> Cannot update pressure at t = %g\n", o.Time)
	}
	return
}

// auxiliary //////////////////////////////////////////////////////////////////////////////////////

// iniFunc returns function named name or a constant if name is empty
func (o *Domain) iniFunc(name string, cte float64) (dbf.T, error) {
	if name == "" {
		return dbf.New("cte", dbf.Params{&dbf.P{N: "c", V: cte}}), nil
	}
	return o.Sim.Functions.Get(name)
}
