// Copyright 2017 The Gofvp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fvp

import (
	"math"

	"github.com/cpmech/gosl/io"
)

// CellData holds the physical state of one cell
type CellData struct {

	// saturations
	Sw float64 // wetting phase saturation
	Sn float64 // non-wetting phase saturation

	// pressures
	P    float64 // primary variable (pw, pn or global pressure) from the last solve
	Pold float64 // primary variable at the end of the previous time step
	Pw   float64 // wetting phase pressure
	Pn   float64 // non-wetting phase pressure
	Pc   float64 // capillary pressure pn - pw

	// fluid properties
	RhoW float64 // wetting phase density
	RhoN float64 // non-wetting phase density
	MuW  float64 // wetting phase viscosity
	MuN  float64 // non-wetting phase viscosity

	// mobilities
	LamW float64 // krw/μw
	LamN float64 // krn/μn
}

// Check checks whether the state is physical; returns a message describing the problem or ""
func (o *CellData) Check() string {
	if o.Sw < 0 || o.Sw > 1 || math.IsNaN(o.Sw) {
		return io.Sf("wetting saturation Sw = %g is outside [0,1]", o.Sw)
	}
	if o.Sn < 0 || o.Sn > 1 || math.IsNaN(o.Sn) {
		return io.Sf("non-wetting saturation Sn = %g is outside [0,1]", o.Sn)
	}
	if math.Abs(o.Sw+o.Sn-1) > 1e-10 {
		return io.Sf("saturations do not add up to one: Sw + Sn = %g", o.Sw+o.Sn)
	}
	if !(o.RhoW > 0) || !(o.RhoN > 0) {
		return io.Sf("densities must be positive: ρw = %g, ρn = %g", o.RhoW, o.RhoN)
	}
	if !(o.MuW > 0) || !(o.MuN > 0) {
		return io.Sf("viscosities must be positive: μw = %g, μn = %g", o.MuW, o.MuN)
	}
	if !(o.LamW >= 0) || !(o.LamN >= 0) || math.IsInf(o.LamW, 0) || math.IsInf(o.LamN, 0) {
		return io.Sf("mobilities are invalid: λw = %g, λn = %g", o.LamW, o.LamN)
	}
	return ""
}

// CellStore gives read access to the state of cells by id
type CellStore interface {
	Ncells() int          // number of cells
	Cell(i int) *CellData // state of cell i
}

// Variables implements CellStore with a dense array of cells
type Variables struct {
	Cells []*CellData
}

// NewVariables allocates n cells
func NewVariables(n int) (o *Variables) {
	o = &Variables{make([]*CellData, n)}
	for i := 0; i < n; i++ {
		o.Cells[i] = new(CellData)
	}
	return
}

// Ncells returns the number of cells
func (o *Variables) Ncells() int { return len(o.Cells) }

// Cell returns the state of cell i
func (o *Variables) Cell(i int) *CellData { return o.Cells[i] }

// Backup sets Pold = P for all cells; call it at the end of each time step
func (o *Variables) Backup() {
	for _, c := range o.Cells {
		c.Pold = c.P
	}
}
