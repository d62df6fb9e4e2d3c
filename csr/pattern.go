// Copyright 2017 The Gofvp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package csr

import "github.com/cpmech/gosl/io"

// Pattern holds the committed nonzero pattern of an N×N pressure matrix in compressed row form.
//
//   row i: cols[rowptr[i]] == i (diagonal) followed by the interior neighbours of i
//          in face traversal order
//
// A Pattern is immutable after Build returns it.
type Pattern struct {
	n      int   // number of rows == number of cells
	rowptr []int // [n+1] start of each row in cols
	cols   []int // [nnz] column indices
}

// Build computes the pattern of the pressure matrix from grid adjacency.
// Row i receives exactly 1 + InteriorCount(topo, i) entries.
//  Note: a TopologyError is returned if adjacency is not symmetric, if a neighbour is out of
//        range, refers to the cell itself or appears more than once in the same row
func Build(topo Topology) (o *Pattern, err error) {

	// new pattern
	n := topo.Ncells()
	if n < 1 {
		return nil, &TopologyError{Cell: -1, Face: -1, Neighbor: -1, Msg: "grid has no cells"}
	}
	o = &Pattern{n: n, rowptr: make([]int, n+1)}

	// pass 1: row sizes
	for i := 0; i < n; i++ {
		rowsize := 1
		for f := 0; f < topo.Nfaces(i); f++ {
			j := topo.Neighbor(i, f)
			if j < 0 {
				continue
			}
			if j >= n {
				return nil, &TopologyError{i, f, j, io.Sf("neighbour is out of range [0,%d)", n)}
			}
			if j == i {
				return nil, &TopologyError{i, f, j, "cell cannot be its own neighbour"}
			}
			rowsize++
		}
		o.rowptr[i+1] = o.rowptr[i] + rowsize
	}

	// pass 2: diagonal first then neighbours in face order
	o.cols = make([]int, o.rowptr[n])
	for i := 0; i < n; i++ {
		k := o.rowptr[i]
		o.cols[k] = i
		k++
		for f := 0; f < topo.Nfaces(i); f++ {
			j := topo.Neighbor(i, f)
			if j < 0 {
				continue
			}
			if k >= o.rowptr[i+1] {
				return nil, &TopologyError{i, f, j, "number of neighbours differs from the one counted in the first pass"}
			}
			for p := o.rowptr[i] + 1; p < k; p++ {
				if o.cols[p] == j {
					return nil, &TopologyError{i, f, j, "neighbour appears more than once"}
				}
			}
			o.cols[k] = j
			k++
		}
		if k != o.rowptr[i+1] {
			return nil, &TopologyError{i, -1, -1, io.Sf("row has %d entries but %d were counted in the first pass", k-o.rowptr[i], o.rowptr[i+1]-o.rowptr[i])}
		}
	}

	// adjacency must be symmetric
	for i := 0; i < n; i++ {
		for p := o.rowptr[i] + 1; p < o.rowptr[i+1]; p++ {
			j := o.cols[p]
			if o.Find(j, i) < 0 {
				return nil, &TopologyError{i, -1, j, io.Sf("cell %d lists %d as neighbour but %d does not list %d", i, j, j, i)}
			}
		}
	}
	return
}

// N returns the number of rows (and columns)
func (o *Pattern) N() int { return o.n }

// Nnz returns the number of nonzeros
func (o *Pattern) Nnz() int { return len(o.cols) }

// RowSize returns the number of entries in row i
func (o *Pattern) RowSize(i int) int { return o.rowptr[i+1] - o.rowptr[i] }

// Row returns a copy of the column indices of row i (diagonal first)
func (o *Pattern) Row(i int) []int {
	row := make([]int, o.RowSize(i))
	copy(row, o.cols[o.rowptr[i]:o.rowptr[i+1]])
	return row
}

// Find returns the position of entry (i,j) in the values array or -1 if (i,j) is not in the pattern
func (o *Pattern) Find(i, j int) int {
	if i < 0 || i >= o.n {
		return -1
	}
	for p := o.rowptr[i]; p < o.rowptr[i+1]; p++ {
		if o.cols[p] == j {
			return p
		}
	}
	return -1
}

// DiagPos returns the position of the diagonal entry of row i
func (o *Pattern) DiagPos(i int) int { return o.rowptr[i] }

// Span returns the range [start,end) of positions of row i
func (o *Pattern) Span(i int) (start, end int) { return o.rowptr[i], o.rowptr[i+1] }

// Col returns the column index stored at position p
func (o *Pattern) Col(p int) int { return o.cols[p] }

// String returns a small textual representation of the pattern
func (o *Pattern) String() (l string) {
	for i := 0; i < o.n; i++ {
		l += io.Sf("%4d :", i)
		for p := o.rowptr[i]; p < o.rowptr[i+1]; p++ {
			l += io.Sf(" %d", o.cols[p])
		}
		l += "\n"
	}
	return
}

// CapacityHint returns the number of nonzeros of a structured grid with ndim dimensions and n
// cells; (2・ndim+1)・n. Build does not need it because the committed pattern is exact
func CapacityHint(ndim, n int) int {
	return (2*ndim + 1) * n
}
