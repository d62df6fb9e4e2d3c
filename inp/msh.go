// Copyright 2016 The Gofvp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// Face holds face data
type Face struct {
	Nbr int       `json:"nbr"` // neighbour cell; -1 means boundary
	Tag int       `json:"tag"` // tag of boundary face; zero means no tag
	A   float64   `json:"a"`   // area (length in 2D; 1 in 1D)
	X   []float64 `json:"x"`   // coordinates of centre
	N   []float64 `json:"n"`   // unit outward normal
}

// Cell holds cell data
type Cell struct {
	Id    int       `json:"id"`    // id
	Tag   int       `json:"tag"`   // tag
	V     float64   `json:"v"`     // volume (area in 2D; length in 1D)
	X     []float64 `json:"x"`     // coordinates of centroid
	Faces []*Face   `json:"faces"` // faces
}

// CellFaceId structure
type CellFaceId struct {
	C   *Cell // cell
	Fid int   // face id
}

// Mesh holds a finite volume mesh
type Mesh struct {

	// from JSON
	Ndim  int     `json:"ndim"`  // space dimension
	Cells []*Cell `json:"cells"` // cells

	// derived
	FnamePath  string  // complete filename path
	Xmin, Xmax float64 // min and max x-coordinate
	Ymin, Ymax float64 // min and max y-coordinate
	Zmin, Zmax float64 // min and max z-coordinate
	MaxElev    float64 // maximum elevation (along the last direction) of face centres

	// derived: maps
	CellTag2cells map[int][]*Cell      // cell tag => set of cells
	FaceTag2cells map[int][]CellFaceId // face tag => set of cells
}

// ReadMsh reads a mesh for FV analyses
func ReadMsh(dir, fn string) (o *Mesh, err error) {
	o = new(Mesh)
	o.FnamePath = filepath.Join(dir, fn)
	b, err := os.ReadFile(o.FnamePath)
	if err != nil {
		return nil, chk.Err("cannot read mesh file:\n%v", err)
	}
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("cannot unmarshal mesh file %q:\n%v", o.FnamePath, err)
	}
	err = o.init()
	if err != nil {
		return nil, chk.Err("mesh file %q is invalid:\n%v", o.FnamePath, err)
	}
	return
}

// GenGrid generates a structured grid with n[i] cells along each direction of a box with sides
// l[i] starting at the origin. Cells are numbered with x running fastest; faces are ordered as
// xmin, xmax, ymin, ymax, zmin, zmax. Boundary faces are tagged -10, -11, -12, -13, -14 and -15
// in the same order.
func GenGrid(n []int, l []float64, tag int) (o *Mesh, err error) {
	ndim := len(n)
	if ndim < 1 || ndim > 3 || len(l) != ndim {
		return nil, chk.Err("grid requires 1, 2 or 3 divisions and sides. n=%v l=%v", n, l)
	}
	h := make([]float64, ndim)
	ncells := 1
	for d := 0; d < ndim; d++ {
		if n[d] < 1 || !(l[d] > 0) {
			return nil, chk.Err("number of divisions and length along direction %d must be positive. n=%d l=%g", d, n[d], l[d])
		}
		h[d] = l[d] / float64(n[d])
		ncells *= n[d]
	}
	vol := 1.0
	for d := 0; d < ndim; d++ {
		vol *= h[d]
	}

	// strides
	stride := make([]int, ndim)
	stride[0] = 1
	for d := 1; d < ndim; d++ {
		stride[d] = stride[d-1] * n[d-1]
	}

	o = &Mesh{Ndim: ndim, Cells: make([]*Cell, ncells)}
	idx := make([]int, ndim)
	for id := 0; id < ncells; id++ {
		rem := id
		for d := ndim - 1; d >= 0; d-- {
			idx[d] = rem / stride[d]
			rem -= idx[d] * stride[d]
		}
		c := &Cell{Id: id, Tag: tag, V: vol, X: make([]float64, ndim)}
		for d := 0; d < ndim; d++ {
			c.X[d] = (float64(idx[d]) + 0.5) * h[d]
		}
		for d := 0; d < ndim; d++ {
			area := vol / h[d]
			for side := 0; side < 2; side++ {
				f := &Face{Nbr: -1, A: area, X: make([]float64, ndim), N: make([]float64, ndim)}
				copy(f.X, c.X)
				sgn := float64(2*side - 1)
				f.X[d] += sgn * 0.5 * h[d]
				f.N[d] = sgn
				j := idx[d] + 2*side - 1
				if j < 0 || j >= n[d] {
					f.Tag = -10 - 2*d - side
				} else {
					f.Nbr = id + (2*side-1)*stride[d]
				}
				c.Faces = append(c.Faces, f)
			}
		}
		o.Cells[id] = c
	}
	err = o.init()
	return
}

// Ncells returns the number of cells
func (o *Mesh) Ncells() int { return len(o.Cells) }

// Nfaces returns the number of faces of cell
func (o *Mesh) Nfaces(cell int) int { return len(o.Cells[cell].Faces) }

// Neighbor returns the cell across face or -1 on the boundary
func (o *Mesh) Neighbor(cell, face int) int { return o.Cells[cell].Faces[face].Nbr }

// Volume returns the volume of cell
func (o *Mesh) Volume(cell int) float64 { return o.Cells[cell].V }

// Centroid returns the centre of cell
func (o *Mesh) Centroid(cell int) []float64 { return o.Cells[cell].X }

// FaceArea returns the area of face
func (o *Mesh) FaceArea(cell, face int) float64 { return o.Cells[cell].Faces[face].A }

// FaceCenter returns the centre of face
func (o *Mesh) FaceCenter(cell, face int) []float64 { return o.Cells[cell].Faces[face].X }

// FaceNormal returns the unit outward normal of face
func (o *Mesh) FaceNormal(cell, face int) []float64 { return o.Cells[cell].Faces[face].N }

// Elevation returns the elevation (last coordinate) of the centre of cell
func (o *Mesh) Elevation(cell int) float64 {
	return o.Cells[cell].X[o.Ndim-1]
}

// String returns a summary of the mesh
func (o *Mesh) String() string {
	var nbry int
	for _, c := range o.Cells {
		for _, f := range c.Faces {
			if f.Nbr < 0 {
				nbry++
			}
		}
	}
	return io.Sf("ndim = %d, ncells = %d, nbryfaces = %d, x in [%g, %g], y in [%g, %g], z in [%g, %g]",
		o.Ndim, len(o.Cells), nbry, o.Xmin, o.Xmax, o.Ymin, o.Ymax, o.Zmin, o.Zmax)
}

// init checks data and computes derived quantities
func (o *Mesh) init() (err error) {

	// check
	if o.Ndim < 1 || o.Ndim > 3 {
		return chk.Err("space dimension must be 1, 2 or 3. ndim = %d is invalid", o.Ndim)
	}
	if len(o.Cells) < 1 {
		return chk.Err("at least one cell is required")
	}

	// limits
	lims := [][]float64{{math.Inf(1), math.Inf(-1)}, {0, 0}, {0, 0}}
	if o.Ndim > 1 {
		lims[1] = []float64{math.Inf(1), math.Inf(-1)}
	}
	if o.Ndim > 2 {
		lims[2] = []float64{math.Inf(1), math.Inf(-1)}
	}
	o.MaxElev = math.Inf(-1)

	// cells
	o.CellTag2cells = make(map[int][]*Cell)
	o.FaceTag2cells = make(map[int][]CellFaceId)
	for i, c := range o.Cells {
		if c.Id != i {
			return chk.Err("cells must be numbered sequentially. cell %d has id = %d", i, c.Id)
		}
		if len(c.X) != o.Ndim {
			return chk.Err("centroid of cell %d must have %d coordinates", i, o.Ndim)
		}
		if len(c.Faces) < 1 {
			return chk.Err("cell %d has no faces", i)
		}
		o.CellTag2cells[c.Tag] = append(o.CellTag2cells[c.Tag], c)
		for j, f := range c.Faces {
			if len(f.X) != o.Ndim || len(f.N) != o.Ndim {
				return chk.Err("centre and normal of face %d of cell %d must have %d components", j, i, o.Ndim)
			}
			if f.Nbr >= len(o.Cells) || f.Nbr == i {
				return chk.Err("neighbour %d of cell %d across face %d is invalid", f.Nbr, i, j)
			}
			if f.Nbr < 0 {
				f.Nbr = -1
			}
			if f.Tag < 0 {
				o.FaceTag2cells[f.Tag] = append(o.FaceTag2cells[f.Tag], CellFaceId{c, j})
			}
			for d := 0; d < o.Ndim; d++ {
				lims[d][0] = utl.Min(lims[d][0], f.X[d])
				lims[d][1] = utl.Max(lims[d][1], f.X[d])
			}
			o.MaxElev = utl.Max(o.MaxElev, f.X[o.Ndim-1])
		}
	}
	o.Xmin, o.Xmax = lims[0][0], lims[0][1]
	o.Ymin, o.Ymax = lims[1][0], lims[1][1]
	o.Zmin, o.Zmax = lims[2][0], lims[2][1]
	return
}
