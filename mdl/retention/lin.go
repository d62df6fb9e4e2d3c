// Copyright 2016 The Gofvp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package retention

import (
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Lin implements a linear capillary pressure model: pc(Se) := pce + (pcmax - pce)・(1 - Se)
type Lin struct {

	// parameters
	pce   float64 // entry pressure; pc at Se = 1
	pcmax float64 // pc at Se = 0
	swr   float64 // residual saturation of wetting phase
	snr   float64 // residual saturation of non-wetting phase
}

// add model to factory
func init() {
	allocators["lin"] = func() Model { return new(Lin) }
}

// Init initialises model
func (o *Lin) Init(prms dbf.Params) (err error) {
	for _, p := range prms {
		switch strings.ToLower(p.N) {
		case "pce":
			o.pce = p.V
		case "pcmax":
			o.pcmax = p.V
		case "swr":
			o.swr = p.V
		case "snr":
			o.snr = p.V
		default:
			return chk.Err("lin: parameter named %q is incorrect\n", p.N)
		}
	}
	if o.pcmax < o.pce {
		return chk.Err("lin: pcmax=%g must not be smaller than pce=%g\n", o.pcmax, o.pce)
	}
	if o.swr+o.snr >= 1 {
		return chk.Err("lin: residual saturations are incorrect: swr=%g snr=%g\n", o.swr, o.snr)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o Lin) GetPrms(example bool) dbf.Params {
	if example {
		return dbf.Params{
			&dbf.P{N: "pce", V: 0},
			&dbf.P{N: "pcmax", V: 10},
			&dbf.P{N: "swr", V: 0},
			&dbf.P{N: "snr", V: 0},
		}
	}
	return dbf.Params{
		&dbf.P{N: "pce", V: o.pce},
		&dbf.P{N: "pcmax", V: o.pcmax},
		&dbf.P{N: "swr", V: o.swr},
		&dbf.P{N: "snr", V: o.snr},
	}
}

// Pc computes pc(sw)
func (o Lin) Pc(sw float64) float64 {
	se := effective(sw, o.swr, o.snr, 0)
	return o.pce + (o.pcmax-o.pce)*(1.0-se)
}
