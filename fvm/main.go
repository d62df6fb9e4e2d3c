// Copyright 2016 The Gofvp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fvm implements the finite volume driver of the pressure equation
package fvm

import (
	"math"
	"time"

	"github.com/cpmech/gofvp/inp"
	"github.com/cpmech/gosl/io"
)

// tolerance to compare times
const TIMETOL = 1e-10

// Main holds all data for a simulation using the finite volume method
type Main struct {
	Sim     *inp.Simulation // simulation data
	Summary *Summary        // summary structure
	Dom     *Domain         // domain
	ShowMsg bool            // show messages

	// internal
	tidx int     // time output index
	tout float64 // next output time
}

// NewMain returns a new Main structure
//  Input:
//   simfilepath -- simulation (.sim) filename including full path
//   alias       -- word to be appended to simulation key; e.g. when running multiple solutions
//   erasePrev   -- erase previous results files
//   saveSummary -- save summary
//   verbose     -- show messages
func NewMain(simfilepath, alias string, erasePrev, saveSummary, verbose bool) (o *Main, err error) {

	// new Main object
	o = new(Main)
	o.ShowMsg = verbose

	// read input data
	o.Sim, err = inp.ReadSim(simfilepath, alias, erasePrev, true)
	if err != nil {
		return nil, err
	}
	if saveSummary {
		o.Summary = new(Summary)
	}

	// message
	if o.ShowMsg {
		io.Pf("> Simulation (.sim) file read\n")
		io.Pf("> Mesh: %v\n", o.Sim.Mesh.Msh)
	}

	// allocate domain
	o.Dom, err = NewDomain(o.Sim, verbose)
	if err != nil {
		return nil, err
	}
	return
}

// Run runs FV simulation
func (o *Main) Run() (err error) {

	// exit commands
	cputime := time.Now()
	defer func() { err = o.onexit(cputime, err) }()

	// message
	if o.ShowMsg {
		io.Pf("> Solving stages\n")
	}

	// loop over stages
	for stgidx, stg := range o.Sim.Stages {

		// skip stage?
		if stg.Skip {
			continue
		}

		// set stage
		err = o.Dom.SetStage(stgidx)
		if err != nil {
			return
		}

		// initial state
		err = o.Dom.SetIniVals(stgidx)
		if err != nil {
			return
		}
		if stg.Initial != nil {
			err = o.output()
			if err != nil {
				return
			}
		}

		// time loop
		err = o.solveStage(stg.Control.Tf, stg.Control.Dt, stg.Control.DtOut)
		if err != nil {
			return
		}
	}
	return
}

// auxiliary //////////////////////////////////////////////////////////////////////////////////////

// solveStage runs the time loop up to the final time tf
func (o *Main) solveStage(tf, dt, dtout float64) (err error) {
	o.tout = o.Dom.Time + dtout
	for tf-o.Dom.Time > TIMETOL {
		err = o.Dom.Step(math.Min(dt, tf-o.Dom.Time))
		if err != nil {
			return
		}
		if o.ShowMsg {
			io.Pf("> t = %g\n", o.Dom.Time)
		}
		if o.Dom.Time >= o.tout-TIMETOL || tf-o.Dom.Time <= TIMETOL {
			err = o.output()
			if err != nil {
				return
			}
			o.tout = o.Dom.Time + dtout
		}
	}
	return
}

// output saves results and records output time
func (o *Main) output() (err error) {
	err = o.Dom.SaveSol(o.tidx, o.ShowMsg)
	if err != nil {
		return
	}
	if o.Summary != nil {
		o.Summary.OutTimes = append(o.Summary.OutTimes, o.Dom.Time)
	}
	o.tidx++
	return
}

// onexit frees domain, prints final message with cpu time and saves summary
func (o *Main) onexit(cputime time.Time, prevErr error) (err error) {

	// clean resources
	o.Dom.Free()

	// show final message
	if o.ShowMsg {
		if prevErr == nil {
			io.PfGreen("> Success\n")
			io.Pf("> CPU time = %v\n", time.Now().Sub(cputime))
		} else {
			io.PfRed("> Failed\n")
		}
	}

	// save summary
	if o.Summary != nil {
		o.Summary.Nsolve = o.Dom.Pres.Nsolve
		err = o.Summary.Save(o.Sim.DirOut, o.Sim.Key, o.Sim.EncType, o.ShowMsg)
		if err != nil {
			return
		}
	}

	// return previous error
	if prevErr != nil {
		err = prevErr
	}
	return
}
