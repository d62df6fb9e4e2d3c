// Copyright 2016 The Gofvp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package conduct

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Lin implements linear relative permeabilities: krw = Se, krn = 1 - Se
type Lin struct {
	Residual
}

// add model to factory
func init() {
	allocators["lin"] = func() Model { return new(Lin) }
}

// Init initialises model
func (o *Lin) Init(prms dbf.Params) (err error) {
	for _, p := range prms {
		if !o.read(p) {
			return chk.Err("lin: parameter named %q is incorrect\n", p.N)
		}
	}
	return o.check("lin")
}

// GetPrms gets (an example) of parameters
func (o Lin) GetPrms(example bool) dbf.Params {
	if example {
		return dbf.Params{
			&dbf.P{N: "swr", V: 0},
			&dbf.P{N: "snr", V: 0},
		}
	}
	return dbf.Params{
		&dbf.P{N: "swr", V: o.Swr},
		&dbf.P{N: "snr", V: o.Snr},
	}
}

// Krw returns krw
func (o Lin) Krw(sw float64) float64 {
	return o.Se(sw)
}

// Krn returns krn
func (o Lin) Krn(sw float64) float64 {
	return 1.0 - o.Se(sw)
}
