// Copyright 2016 The Gofvp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package retention implements capillary pressure models pc(sw) for two-phase flow
//  References:
//   [1] Brooks RH and Corey AT (1964) Hydraulic properties of porous media.
//       Hydrology Papers, Colorado State University, 3
//   [2] Helmig R (1997) Multiphase flow and transport processes in the subsurface.
//       Springer, Berlin
package retention

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Model implements a capillary pressure model; pc = pn - pw
type Model interface {
	Init(prms dbf.Params) error      // initialises retention model
	GetPrms(example bool) dbf.Params // gets (an example) of parameters
	Pc(sw float64) float64           // computes capillary pressure from wetting saturation
}

// New returns new retention model
func New(name string) (model Model, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'retention' database", name)
	}
	return allocator(), nil
}

// allocators holds all available models
var allocators = map[string]func() Model{}

// effective computes the effective saturation clipped to [semin,1]
func effective(sw, swr, snr, semin float64) float64 {
	se := (sw - swr) / (1.0 - swr - snr)
	if se < semin {
		return semin
	}
	if se > 1 {
		return 1
	}
	return se
}
