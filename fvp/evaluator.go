// Copyright 2017 The Gofvp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fvp implements the finite volume pressure equation: the assembler of the sparse
// system, the pressure field and its update cycle
package fvp

import "github.com/cpmech/gosl/io"

// indices in Coefs
const (
	MatCoef = 0 // contribution to the matrix
	RhsCoef = 1 // contribution to the right-hand side
)

// Coefs holds the pair (matrix coefficient, right-hand side coefficient) returned by evaluators
type Coefs [2]float64

// String returns a representation of coefficients
func (o Coefs) String() string {
	return io.Sf("(%g, %g)", o[MatCoef], o[RhsCoef])
}

// Face identifies face Index of Cell
//  Neighbor is the cell across the face; negative on the boundary
type Face struct {
	Cell     int // owner cell
	Index    int // local face index in owner cell
	Neighbor int // neighbour cell or -1
}

// Boundary tells whether this face is on the boundary
func (o Face) Boundary() bool { return o.Neighbor < 0 }

// Evaluator computes the coefficients of the pressure equation for one discretization scheme
//  first -- initial pressure solve of a simulation; e.g. no upwind information is available
//  Note: dat is the state of the cell owning the entity; the state of neighbours may be obtained
//        from the evaluator's own reference to the cell data store
type Evaluator interface {
	Source(cell int, dat *CellData, first bool) (Coefs, error)          // source term
	Storage(cell int, dat *CellData, first bool) (Coefs, error)         // storage term
	Flux(face Face, dat *CellData, first bool) (Coefs, error)           // flux across interior face
	FluxOnBoundary(face Face, dat *CellData, first bool) (Coefs, error) // flux across boundary face
}

// Storer receives the pressure field after each successful solve
type Storer interface {
	StorePressure(p []float64) error
}
