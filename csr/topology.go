// Copyright 2017 The Gofvp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package csr implements the sparse structure of the pressure system: the nonzero pattern
// built from grid adjacency and a matrix whose values live on that pinned pattern
package csr

// Topology defines the grid connectivity required to build the pressure system
//  Note: cells are identified by dense integer ids in [0, Ncells)
type Topology interface {
	Ncells() int                 // number of cells
	Nfaces(cell int) int         // number of faces of cell
	Neighbor(cell, face int) int // cell across face; negative if face is on the boundary
}

// InteriorCount returns the number of interior faces of cell
func InteriorCount(topo Topology, cell int) (n int) {
	for f := 0; f < topo.Nfaces(cell); f++ {
		if topo.Neighbor(cell, f) >= 0 {
			n++
		}
	}
	return
}
