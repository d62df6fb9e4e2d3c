// Copyright 2017 The Gofvp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package tpfa implements the upwind two-point flux approximation of the pressure equation of
// decoupled (IMPES) two-phase flow
//  References:
//   [1] Helmig R (1997) Multiphase flow and transport processes in the subsurface.
//       Springer, Berlin
//   [2] Aziz K and Settari A (1979) Petroleum reservoir simulation. Applied Science, London
package tpfa

import (
	"github.com/cpmech/gofvp/csr"
	"github.com/cpmech/gofvp/fvp"
	"github.com/cpmech/gofvp/mdl/porous"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// pressure formulations
const (
	FormPw      = "pw"      // wetting phase pressure
	FormPn      = "pn"      // non-wetting phase pressure
	FormPglobal = "pglobal" // global (saturation weighted) pressure
)

// Geometry defines the grid geometry required by the two-point flux approximation
type Geometry interface {
	csr.Topology
	Volume(cell int) float64             // volume of cell
	Centroid(cell int) []float64         // centre of cell
	FaceArea(cell, face int) float64     // area of face
	FaceCenter(cell, face int) []float64 // centre of face
	FaceNormal(cell, face int) []float64 // unit outward normal of face
}

// Bc holds a boundary condition on a face
//  Key -- "pw" or "pn" (Dirichlet: phase pressure) or "qn" (Neumann: outward volume flux per area)
type Bc struct {
	Key string // type of condition
	Fcn dbf.T  // value of condition
	Sw  dbf.T  // wetting saturation of inflowing fluid (Dirichlet only); nil means the cell's
}

// Source holds mass source rates per volume of a cell
type Source struct {
	Qw dbf.T // wetting phase; may be nil
	Qn dbf.T // non-wetting phase; may be nil
}

// Evaluator implements fvp.Evaluator and fvp.Storer for two-phase flow
type Evaluator struct {

	// input
	Geo    Geometry        // grid geometry
	Data   fvp.CellStore   // cell states
	Mats   []*porous.Model // [ncells] material of each cell
	Form   string          // pressure formulation
	Grav   []float64       // gravity vector; e.g. [0, 0, -10]
	Steady bool            // steady simulation: no storage

	// time
	Time float64 // current time
	Dt   float64 // time step

	// conditions
	Bcs  map[[2]int]*Bc  // (cell, face) => boundary condition; absent means no flow
	Srcs map[int]*Source // cell => source
}

// NewEvaluator returns a new evaluator
func NewEvaluator(geo Geometry, data fvp.CellStore, mats []*porous.Model, form string, grav []float64) (o *Evaluator, err error) {
	switch form {
	case "":
		form = FormPw
	case FormPw, FormPn, FormPglobal:
	default:
		return nil, chk.Err("pressure formulation %q is not available; options are %q, %q and %q", form, FormPw, FormPn, FormPglobal)
	}
	n := geo.Ncells()
	if data.Ncells() != n || len(mats) != n {
		return nil, chk.Err("number of cells in data store (%d) and number of materials (%d) must be equal to the number of cells in grid (%d)", data.Ncells(), len(mats), n)
	}
	for i, m := range mats {
		if m == nil {
			return nil, chk.Err("material of cell %d is not available", i)
		}
	}
	o = &Evaluator{Geo: geo, Data: data, Mats: mats, Form: form, Grav: grav}
	o.Bcs = make(map[[2]int]*Bc)
	o.Srcs = make(map[int]*Source)
	return
}

// SetBc sets boundary condition on face of cell
func (o *Evaluator) SetBc(cell, face int, bc *Bc) error {
	if o.Geo.Neighbor(cell, face) >= 0 {
		return chk.Err("cannot set boundary condition on interior face %d of cell %d", face, cell)
	}
	switch bc.Key {
	case "pw", "pn", "qn":
	default:
		return chk.Err("boundary condition key %q is invalid; options are \"pw\", \"pn\" and \"qn\"", bc.Key)
	}
	if bc.Fcn == nil {
		return chk.Err("boundary condition %q on face %d of cell %d requires a function", bc.Key, face, cell)
	}
	o.Bcs[[2]int{cell, face}] = bc
	return nil
}

// SetSource sets source of cell
func (o *Evaluator) SetSource(cell int, src *Source) {
	o.Srcs[cell] = src
}

// SetState sets saturation and primary pressure of cell, at current and previous times, and
// updates all derived quantities
func (o *Evaluator) SetState(cell int, sw, p float64) error {
	dat := o.Data.Cell(cell)
	dat.Sw = sw
	dat.P = p
	dat.Pold = p
	return o.update(cell)
}

// Primary converts the phase pressure val ("pw" or "pn") of cell with wetting saturation sw into
// the primary variable
func (o *Evaluator) Primary(cell int, key string, val, sw float64) float64 {
	return o.primary(key, val, sw, o.Mats[cell].Pc(sw))
}

// StorePressure implements fvp.Storer: it copies the solved field into the cell data and
// updates phase pressures, densities and mobilities
func (o *Evaluator) StorePressure(p []float64) (err error) {
	for i := range p {
		o.Data.Cell(i).P = p[i]
		err = o.update(i)
		if err != nil {
			return
		}
	}
	return
}

// update computes derived quantities of cell from Sw and P
func (o *Evaluator) update(cell int) (err error) {
	dat := o.Data.Cell(cell)
	mat := o.Mats[cell]
	dat.Sn = 1.0 - dat.Sw
	dat.Pc = mat.Pc(dat.Sw)
	dat.Pw, dat.Pn = o.phasePressures(dat.P, dat.Sw, dat.Pc)
	dat.RhoW = mat.Wet.Density(dat.Pw)
	dat.RhoN = mat.Nwt.Density(dat.Pn)
	dat.MuW = mat.Wet.Viscosity()
	dat.MuN = mat.Nwt.Viscosity()
	dat.LamW, dat.LamN, err = mat.Mobilities(dat.Sw)
	if err != nil {
		return &fvp.CoefficientError{Term: "state", Cell: cell, Face: -1, Msg: err.Error()}
	}
	if msg := dat.Check(); msg != "" {
		return &fvp.CoefficientError{Term: "state", Cell: cell, Face: -1, Msg: msg}
	}
	return
}

// phasePressures computes (pw, pn) from the primary variable
func (o *Evaluator) phasePressures(p, sw, pc float64) (pw, pn float64) {
	switch o.Form {
	case FormPw:
		return p, p + pc
	case FormPn:
		return p - pc, p
	}
	return p - (1.0-sw)*pc, p + sw*pc
}

// primary computes the primary variable from a phase pressure given under key
func (o *Evaluator) primary(key string, val, sw, pc float64) float64 {
	switch o.Form {
	case FormPw:
		if key == "pn" {
			return val - pc
		}
	case FormPn:
		if key == "pw" {
			return val + pc
		}
	case FormPglobal:
		if key == "pn" {
			return val - sw*pc
		}
		return val + (1.0-sw)*pc
	}
	return val
}
