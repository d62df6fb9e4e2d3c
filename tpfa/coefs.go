// Copyright 2017 The Gofvp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tpfa

import (
	"math"

	"github.com/cpmech/gofvp/fvp"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/floats"
)

// Source computes (0, V・(qw/ρw + qn/ρn))
func (o *Evaluator) Source(cell int, dat *fvp.CellData, first bool) (c fvp.Coefs, err error) {
	src, ok := o.Srcs[cell]
	if !ok {
		return
	}
	err = check("source", cell, -1, dat)
	if err != nil {
		return
	}
	V := o.Geo.Volume(cell)
	if !(V > 0) {
		return c, &fvp.CoefficientError{Term: "source", Cell: cell, Face: -1, Msg: io.Sf("volume = %g is invalid", V)}
	}
	x := o.Geo.Centroid(cell)
	var q float64
	if src.Qw != nil {
		q += src.Qw.F(o.Time, x) / dat.RhoW
	}
	if src.Qn != nil {
		q += src.Qn.F(o.Time, x) / dat.RhoN
	}
	c[fvp.RhsCoef] = V * q
	return
}

// Storage computes (c, c・pold) with c = φ・V・(Sw・cw + Sn・cn)/Δt
func (o *Evaluator) Storage(cell int, dat *fvp.CellData, first bool) (c fvp.Coefs, err error) {
	if o.Steady || o.Dt <= 0 {
		return
	}
	err = check("storage", cell, -1, dat)
	if err != nil {
		return
	}
	V := o.Geo.Volume(cell)
	if !(V > 0) {
		return c, &fvp.CoefficientError{Term: "storage", Cell: cell, Face: -1, Msg: io.Sf("volume = %g is invalid", V)}
	}
	mat := o.Mats[cell]
	cw := mat.Wet.C / dat.RhoW
	cn := mat.Nwt.C / dat.RhoN
	s := mat.Phi * V * (dat.Sw*cw + dat.Sn*cn) / o.Dt
	c[fvp.MatCoef] = s
	c[fvp.RhsCoef] = s * dat.Pold
	return
}

// Flux computes the coefficients of the net outflow a・(pI - pJ) + b across an interior face
func (o *Evaluator) Flux(face fvp.Face, dat *fvp.CellData, first bool) (c fvp.Coefs, err error) {

	// states
	i, j, f := face.Cell, face.Neighbor, face.Index
	err = check("flux", i, f, dat)
	if err != nil {
		return
	}
	nbr := o.Data.Cell(j)
	if msg := nbr.Check(); msg != "" {
		return c, &fvp.CoefficientError{Term: "flux", Cell: i, Face: f, Msg: io.Sf("neighbour %d: %s", j, msg)}
	}

	// transmissibility
	dx := make([]float64, len(o.Geo.Centroid(i)))
	floats.SubTo(dx, o.Geo.Centroid(j), o.Geo.Centroid(i))
	d := floats.Norm(dx, 2)
	A := o.Geo.FaceArea(i, f)
	if !(d > 0) || !(A > 0) {
		return c, &fvp.CoefficientError{Term: "flux", Cell: i, Face: f, Msg: io.Sf("distance = %g and area = %g must be positive", d, A)}
	}
	n := o.Geo.FaceNormal(i, f)
	ki, kj := o.Mats[i].Perm(n), o.Mats[j].Perm(n)
	T := 2.0 * ki * kj / (ki + kj) * A / d

	// mobilities
	gdx := o.gdot(dx)
	ρw := 0.5 * (dat.RhoW + nbr.RhoW)
	ρn := 0.5 * (dat.RhoN + nbr.RhoN)
	var λw, λn float64
	if first {
		λw = 0.5 * (dat.LamW + nbr.LamW)
		λn = 0.5 * (dat.LamN + nbr.LamN)
	} else {
		λw = upwind(dat.Pw-nbr.Pw+ρw*gdx, dat.LamW, nbr.LamW)
		λn = upwind(dat.Pn-nbr.Pn+ρn*gdx, dat.LamN, nbr.LamN)
	}

	// capillary term
	var cpc float64
	switch o.Form {
	case FormPw:
		cpc = λn * (dat.Pc - nbr.Pc)
	case FormPn:
		cpc = -λw * (dat.Pc - nbr.Pc)
	}

	// coefficients
	c[fvp.MatCoef] = T * (λw + λn)
	c[fvp.RhsCoef] = T * (cpc + (λw*ρw+λn*ρn)*gdx)
	return
}

// FluxOnBoundary computes the coefficients of the outflow a・pI - b across a boundary face
func (o *Evaluator) FluxOnBoundary(face fvp.Face, dat *fvp.CellData, first bool) (c fvp.Coefs, err error) {

	// no flow
	i, f := face.Cell, face.Index
	bc, ok := o.Bcs[[2]int{i, f}]
	if !ok {
		return
	}
	err = check("boundary", i, f, dat)
	if err != nil {
		return
	}
	A := o.Geo.FaceArea(i, f)
	xf := o.Geo.FaceCenter(i, f)
	val := bc.Fcn.F(o.Time, xf)

	// Neumann
	if bc.Key == "qn" {
		c[fvp.RhsCoef] = -val * A
		return
	}

	// transmissibility
	dx := make([]float64, len(xf))
	floats.SubTo(dx, xf, o.Geo.Centroid(i))
	d := floats.Norm(dx, 2)
	if !(d > 0) || !(A > 0) {
		return c, &fvp.CoefficientError{Term: "boundary", Cell: i, Face: f, Msg: io.Sf("distance = %g and area = %g must be positive", d, A)}
	}
	mat := o.Mats[i]
	T := mat.Perm(o.Geo.FaceNormal(i, f)) * A / d

	// Dirichlet value
	pD := o.primary(bc.Key, val, dat.Sw, dat.Pc)
	pwD, pnD := o.phasePressures(pD, dat.Sw, dat.Pc)

	// mobilities
	gdx := o.gdot(dx)
	λw, λn := dat.LamW, dat.LamN
	if bc.Sw != nil {
		λwB, λnB, e := mat.Mobilities(bc.Sw.F(o.Time, xf))
		if e != nil {
			return c, &fvp.CoefficientError{Term: "boundary", Cell: i, Face: f, Msg: e.Error()}
		}
		if first {
			λw = 0.5 * (λw + λwB)
			λn = 0.5 * (λn + λnB)
		} else {
			λw = upwind(dat.Pw-pwD+dat.RhoW*gdx, λw, λwB)
			λn = upwind(dat.Pn-pnD+dat.RhoN*gdx, λn, λnB)
		}
	}
	λt := λw + λn

	// coefficients
	c[fvp.MatCoef] = T * λt
	c[fvp.RhsCoef] = T*λt*pD - T*(λw*dat.RhoW+λn*dat.RhoN)*gdx
	return
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////

// gdot computes g・dx
func (o *Evaluator) gdot(dx []float64) (res float64) {
	for k := 0; k < len(dx) && k < len(o.Grav); k++ {
		res += o.Grav[k] * dx[k]
	}
	return
}

// upwind selects the mobility of the upstream side given the potential difference from the
// owner cell to the other side. Without a potential difference both sides get the mean, so
// the face coefficient does not depend on the side it is computed from
func upwind(ΔΦ, λown, λother float64) float64 {
	switch {
	case ΔΦ > 0:
		return λown
	case ΔΦ < 0:
		return λother
	}
	return 0.5 * (λown + λother)
}

// check checks the state of the owner cell
func check(term string, cell, face int, dat *fvp.CellData) error {
	if msg := dat.Check(); msg != "" {
		return &fvp.CoefficientError{Term: term, Cell: cell, Face: face, Msg: msg}
	}
	if math.IsNaN(dat.P) {
		return &fvp.CoefficientError{Term: term, Cell: cell, Face: face, Msg: "pressure is NaN"}
	}
	return nil
}
