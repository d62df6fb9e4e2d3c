// Copyright 2017 The Gofvp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linsol

import (
	"sort"

	"github.com/cpmech/gofvp/csr"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Precond applies z = M⁻¹・r
type Precond interface {
	Apply(z, r []float64)
}

// NewPrecond returns a preconditioner computed from A
//  name -- "none", "jacobi" or "ilu0"
func NewPrecond(name string, A *csr.Matrix) (Precond, error) {
	switch name {
	case "", "none":
		return identity{}, nil
	case "jacobi":
		return newJacobi(A)
	case "ilu0":
		return newILU0(A)
	}
	return nil, chk.Err("preconditioner %q is not available", name)
}

// identity implements M = I
type identity struct{}

func (identity) Apply(z, r []float64) { copy(z, r) }

// jacobi implements M = diag(A)
type jacobi struct {
	invd []float64
}

func newJacobi(A *csr.Matrix) (*jacobi, error) {
	n, _ := A.Dims()
	o := &jacobi{make([]float64, n)}
	for i := 0; i < n; i++ {
		d := A.Diag(i)
		if d == 0 {
			return nil, &SingularMatrixError{"jacobi", io.Sf("zero diagonal @ row %d", i)}
		}
		o.invd[i] = 1.0 / d
	}
	return o, nil
}

func (o *jacobi) Apply(z, r []float64) {
	for i, v := range r {
		z[i] = v * o.invd[i]
	}
}

// ilu0 implements the incomplete LU factorisation restricted to the pattern of A
type ilu0 struct {
	pat   *csr.Pattern
	vals  []float64 // L (unit diagonal, not stored) and U values on the pattern of A
	lower [][]int   // [n][...] positions of entries with col < row, sorted by column
	upper [][]int   // [n][...] positions of entries with col > row
}

func newILU0(A *csr.Matrix) (*ilu0, error) {

	// split rows
	pat := A.Pat
	n := pat.N()
	o := &ilu0{pat: pat, vals: make([]float64, len(A.Vals))}
	copy(o.vals, A.Vals)
	o.lower = make([][]int, n)
	o.upper = make([][]int, n)
	for i := 0; i < n; i++ {
		start, end := pat.Span(i)
		for p := start; p < end; p++ {
			j := pat.Col(p)
			if j < i {
				o.lower[i] = append(o.lower[i], p)
			} else if j > i {
				o.upper[i] = append(o.upper[i], p)
			}
		}
		sort.Slice(o.lower[i], func(a, b int) bool {
			return pat.Col(o.lower[i][a]) < pat.Col(o.lower[i][b])
		})
	}

	// factorisation (IKJ variant)
	for i := 0; i < n; i++ {
		start, end := pat.Span(i)
		for _, pik := range o.lower[i] {
			k := pat.Col(pik)
			ukk := o.vals[pat.DiagPos(k)]
			if ukk == 0 {
				return nil, &SingularMatrixError{"ilu0", io.Sf("zero pivot @ row %d", k)}
			}
			o.vals[pik] /= ukk
			lik := o.vals[pik]
			for p := start; p < end; p++ {
				j := pat.Col(p)
				if j <= k {
					continue
				}
				if q := pat.Find(k, j); q >= 0 {
					o.vals[p] -= lik * o.vals[q]
				}
			}
		}
		if o.vals[pat.DiagPos(i)] == 0 {
			return nil, &SingularMatrixError{"ilu0", io.Sf("zero pivot @ row %d", i)}
		}
	}
	return o, nil
}

func (o *ilu0) Apply(z, r []float64) {
	n := o.pat.N()

	// forward: L・y = r (y stored in z)
	for i := 0; i < n; i++ {
		sum := r[i]
		for _, p := range o.lower[i] {
			sum -= o.vals[p] * z[o.pat.Col(p)]
		}
		z[i] = sum
	}

	// backward: U・z = y
	for i := n - 1; i >= 0; i-- {
		sum := z[i]
		for _, p := range o.upper[i] {
			sum -= o.vals[p] * z[o.pat.Col(p)]
		}
		z[i] = sum / o.vals[o.pat.DiagPos(i)]
	}
}
