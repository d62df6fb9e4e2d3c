// Copyright 2016 The Gofvp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package conduct

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// BrooksCorey implements the Brooks-Corey relative permeabilities
//   krw = Se^((2+3λ)/λ)
//   krn = (1-Se)²・(1 - Se^((2+λ)/λ))
type BrooksCorey struct {
	Residual
	λ float64 // pore size distribution index
}

// add model to factory
func init() {
	allocators["bc"] = func() Model { return new(BrooksCorey) }
}

// Init initialises model
func (o *BrooksCorey) Init(prms dbf.Params) (err error) {
	o.λ = 2
	for _, p := range prms {
		if o.read(p) {
			continue
		}
		switch p.N {
		case "lam":
			o.λ = p.V
		default:
			return chk.Err("bc: parameter named %q is incorrect\n", p.N)
		}
	}
	if o.λ <= 0 {
		return chk.Err("bc: λ must be positive. lam = %g is incorrect\n", o.λ)
	}
	return o.check("bc")
}

// GetPrms gets (an example) of parameters
func (o BrooksCorey) GetPrms(example bool) dbf.Params {
	if example {
		return dbf.Params{
			&dbf.P{N: "lam", V: 2},
			&dbf.P{N: "swr", V: 0.1},
			&dbf.P{N: "snr", V: 0},
		}
	}
	return dbf.Params{
		&dbf.P{N: "lam", V: o.λ},
		&dbf.P{N: "swr", V: o.Swr},
		&dbf.P{N: "snr", V: o.Snr},
	}
}

// Krw returns krw
func (o BrooksCorey) Krw(sw float64) float64 {
	return math.Pow(o.Se(sw), (2.0+3.0*o.λ)/o.λ)
}

// Krn returns krn
func (o BrooksCorey) Krn(sw float64) float64 {
	se := o.Se(sw)
	return (1.0 - se) * (1.0 - se) * (1.0 - math.Pow(se, (2.0+o.λ)/o.λ))
}
