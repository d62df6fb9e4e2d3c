// Copyright 2016 The Gofvp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package retention

import (
	"math"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// BrooksCorey implements Brooks-Corey's model: pc(Se) := pe・Se^(-1/λ)
//  Note: Se is limited to semin to keep pc bounded
type BrooksCorey struct {
	pe    float64 // entry pressure
	λ     float64 // pore size distribution index
	swr   float64 // residual saturation of wetting phase
	snr   float64 // residual saturation of non-wetting phase
	semin float64 // minimum effective saturation
}

// add model to factory
func init() {
	allocators["bc"] = func() Model { return new(BrooksCorey) }
}

// Init initialises model
func (o *BrooksCorey) Init(prms dbf.Params) (err error) {
	o.λ, o.semin = 2, 1e-3
	for _, p := range prms {
		switch strings.ToLower(p.N) {
		case "pe":
			o.pe = p.V
		case "lam":
			o.λ = p.V
		case "swr":
			o.swr = p.V
		case "snr":
			o.snr = p.V
		case "semin":
			o.semin = p.V
		default:
			return chk.Err("bc: parameter named %q is incorrect\n", p.N)
		}
	}
	if o.pe < 0 || o.λ <= 0 || o.semin <= 0 {
		return chk.Err("bc: parameters are incorrect: pe=%g lam=%g semin=%g\n", o.pe, o.λ, o.semin)
	}
	if o.swr+o.snr >= 1 {
		return chk.Err("bc: residual saturations are incorrect: swr=%g snr=%g\n", o.swr, o.snr)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o BrooksCorey) GetPrms(example bool) dbf.Params {
	if example {
		return dbf.Params{
			&dbf.P{N: "pe", V: 1},
			&dbf.P{N: "lam", V: 2},
			&dbf.P{N: "swr", V: 0.1},
			&dbf.P{N: "snr", V: 0},
			&dbf.P{N: "semin", V: 1e-3},
		}
	}
	return dbf.Params{
		&dbf.P{N: "pe", V: o.pe},
		&dbf.P{N: "lam", V: o.λ},
		&dbf.P{N: "swr", V: o.swr},
		&dbf.P{N: "snr", V: o.snr},
		&dbf.P{N: "semin", V: o.semin},
	}
}

// Pc computes pc(sw)
func (o BrooksCorey) Pc(sw float64) float64 {
	se := effective(sw, o.swr, o.snr, o.semin)
	return o.pe * math.Pow(se, -1.0/o.λ)
}
