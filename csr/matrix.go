// Copyright 2017 The Gofvp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package csr

import (
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"gonum.org/v1/gonum/mat"
)

// Matrix holds the values of a square sparse matrix on a committed Pattern.
// The pattern is shared and never modified; only values change.
type Matrix struct {
	Pat  *Pattern  // committed pattern
	Vals []float64 // [nnz] values aligned with the pattern's column indices
}

// NewMatrix returns a zero matrix with the given pattern
func NewMatrix(pat *Pattern) *Matrix {
	return &Matrix{Pat: pat, Vals: make([]float64, pat.Nnz())}
}

// Dims returns the dimensions of the matrix
func (o *Matrix) Dims() (r, c int) { return o.Pat.n, o.Pat.n }

// Zero sets all values to zero
func (o *Matrix) Zero() {
	for k := range o.Vals {
		o.Vals[k] = 0
	}
}

// At returns entry (i,j); zero if (i,j) is outside the pattern
func (o *Matrix) At(i, j int) float64 {
	p := o.Pat.Find(i, j)
	if p < 0 {
		return 0
	}
	return o.Vals[p]
}

// Diag returns the diagonal entry of row i
func (o *Matrix) Diag(i int) float64 { return o.Vals[o.Pat.rowptr[i]] }

// Set sets entry (i,j) = v
func (o *Matrix) Set(i, j int, v float64) error {
	p := o.Pat.Find(i, j)
	if p < 0 {
		return &PatternViolation{i, j}
	}
	o.Vals[p] = v
	return nil
}

// Add adds v to entry (i,j)
func (o *Matrix) Add(i, j int, v float64) error {
	p := o.Pat.Find(i, j)
	if p < 0 {
		return &PatternViolation{i, j}
	}
	o.Vals[p] += v
	return nil
}

// AddDiag adds v to the diagonal entry of row i
func (o *Matrix) AddDiag(i int, v float64) {
	o.Vals[o.Pat.rowptr[i]] += v
}

// RowSum returns the sum of all entries in row i
func (o *Matrix) RowSum(i int) (sum float64) {
	for p := o.Pat.rowptr[i]; p < o.Pat.rowptr[i+1]; p++ {
		sum += o.Vals[p]
	}
	return
}

// DoRow calls fcn for each entry of row i, diagonal first
func (o *Matrix) DoRow(i int, fcn func(j int, v float64)) {
	for p := o.Pat.rowptr[i]; p < o.Pat.rowptr[i+1]; p++ {
		fcn(o.Pat.cols[p], o.Vals[p])
	}
}

// MulVec computes y = A * x
func (o *Matrix) MulVec(y, x []float64) {
	for i := 0; i < o.Pat.n; i++ {
		y[i] = 0
		for p := o.Pat.rowptr[i]; p < o.Pat.rowptr[i+1]; p++ {
			y[i] += o.Vals[p] * x[o.Pat.cols[p]]
		}
	}
}

// CopyFrom copies values from another matrix with the same pattern
func (o *Matrix) CopyFrom(other *Matrix) {
	copy(o.Vals, other.Vals)
}

// Clone returns a copy of this matrix sharing the same pattern
func (o *Matrix) Clone() *Matrix {
	m := NewMatrix(o.Pat)
	copy(m.Vals, o.Vals)
	return m
}

// ToTriplet fills a gosl triplet with the entries of this matrix.
//  Note: the triplet must have been initialised with at least Nnz entries
func (o *Matrix) ToTriplet(t *la.Triplet) {
	t.Start()
	for i := 0; i < o.Pat.n; i++ {
		for p := o.Pat.rowptr[i]; p < o.Pat.rowptr[i+1]; p++ {
			t.Put(i, o.Pat.cols[p], o.Vals[p])
		}
	}
}

// ToDense returns a dense copy of this matrix
func (o *Matrix) ToDense() *mat.Dense {
	n := o.Pat.n
	d := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for p := o.Pat.rowptr[i]; p < o.Pat.rowptr[i+1]; p++ {
			d.Set(i, o.Pat.cols[p], o.Vals[p])
		}
	}
	return d
}

// Dense returns a dense [][]float64 copy of this matrix
func (o *Matrix) Dense() (a [][]float64) {
	n := o.Pat.n
	a = make([][]float64, n)
	for i := 0; i < n; i++ {
		a[i] = make([]float64, n)
		for p := o.Pat.rowptr[i]; p < o.Pat.rowptr[i+1]; p++ {
			a[i][o.Pat.cols[p]] = o.Vals[p]
		}
	}
	return
}

// Print returns a dense representation of this matrix; use for small matrices only
func (o *Matrix) Print(nfmt string) (l string) {
	if nfmt == "" {
		nfmt = "%11.3g"
	}
	for _, row := range o.Dense() {
		for _, v := range row {
			l += io.Sf(nfmt, v)
		}
		l += "\n"
	}
	return
}
