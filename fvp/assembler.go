// Copyright 2017 The Gofvp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fvp

import (
	"errors"
	"math"

	"github.com/cpmech/gofvp/csr"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Assembler builds the linear system A・p = f of the pressure equation
//  Note: Topo, Eval and Data are not owned by the assembler; they must remain valid during
//        each call to Assemble. A and F are owned and overwritten by Assemble.
type Assembler struct {
	Topo csr.Topology // grid connectivity
	Eval Evaluator    // coefficients
	Data CellStore    // cell states
	A    *csr.Matrix  // system matrix on the committed pattern
	F    []float64    // right-hand side
}

// NewAssembler builds the sparse pattern and allocates the system
func NewAssembler(topo csr.Topology, eval Evaluator, data CellStore) (o *Assembler, err error) {
	if eval == nil || data == nil {
		return nil, chk.Err("assembler requires an evaluator and a cell data store")
	}
	pat, err := csr.Build(topo)
	if err != nil {
		return
	}
	if data.Ncells() != pat.N() {
		return nil, chk.Err("number of cells in data store (%d) differs from number of cells in grid (%d)", data.Ncells(), pat.N())
	}
	o = &Assembler{Topo: topo, Eval: eval, Data: data, A: csr.NewMatrix(pat), F: make([]float64, pat.N())}
	return
}

// N returns the number of unknowns
func (o *Assembler) N() int { return len(o.F) }

// Assemble computes the matrix and right-hand side. For each cell I:
//   f[I]     = source
//   interior face to J with (a,b):  f[I] -= b;  A[I][I] += a;  A[I][J] = -a
//   boundary face with (a,b):       f[I] += b;  A[I][I] += a
//   storage (a,b):                  f[I] += b;  A[I][I] += a
//  Note: on error, A and F are left partially filled and must not be used
func (o *Assembler) Assemble(first bool) (err error) {
	o.A.Zero()
	var c Coefs
	for i := 0; i < len(o.F); i++ {
		dat := o.Data.Cell(i)

		// source
		c, err = o.Eval.Source(i, dat, first)
		if err = check("source", i, -1, c, err); err != nil {
			return
		}
		o.F[i] = c[RhsCoef]

		// fluxes
		for f := 0; f < o.Topo.Nfaces(i); f++ {
			face := Face{i, f, o.Topo.Neighbor(i, f)}
			if face.Boundary() {
				c, err = o.Eval.FluxOnBoundary(face, dat, first)
				if err = check("boundary", i, f, c, err); err != nil {
					return
				}
				o.F[i] += c[RhsCoef]
				o.A.AddDiag(i, c[MatCoef])
				continue
			}
			c, err = o.Eval.Flux(face, dat, first)
			if err = check("flux", i, f, c, err); err != nil {
				return
			}
			o.F[i] -= c[RhsCoef]
			o.A.AddDiag(i, c[MatCoef])
			err = o.A.Set(i, face.Neighbor, -c[MatCoef])
			if err != nil {
				return
			}
		}

		// storage
		c, err = o.Eval.Storage(i, dat, first)
		if err = check("storage", i, -1, c, err); err != nil {
			return
		}
		o.F[i] += c[RhsCoef]
		o.A.AddDiag(i, c[MatCoef])
	}
	return
}

// String returns a dense representation of the system; use for small grids only
func (o *Assembler) String() (l string) {
	l = o.A.Print("%11.4g")
	l += "f =\n"
	for _, v := range o.F {
		l += io.Sf("%11.4g", v)
	}
	return l + "\n"
}

// check converts evaluator errors and non-finite coefficients into CoefficientError
func check(term string, cell, face int, c Coefs, err error) error {
	if err != nil {
		var cerr *CoefficientError
		if errors.As(err, &cerr) {
			return err
		}
		return &CoefficientError{term, cell, face, err.Error()}
	}
	for _, v := range c {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &CoefficientError{term, cell, face, io.Sf("coefficients %v are not finite", c)}
		}
	}
	return nil
}
