// Copyright 2016 The Gofvp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package porous implements the rock/soil model used by the two-phase pressure equation
//  References:
//   [1] Helmig R (1997) Multiphase flow and transport processes in the subsurface.
//       Springer, Berlin
package porous

import (
	"math"

	"github.com/cpmech/gofvp/mdl/conduct"
	"github.com/cpmech/gofvp/mdl/fluid"
	"github.com/cpmech/gofvp/mdl/retention"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Model holds material parameters for porous media
type Model struct {

	// parameters
	Phi float64    // porosity
	K   [3]float64 // intrinsic permeabilities along x, y and z

	// auxiliary models
	Cnd conduct.Model   // relative permeabilities
	Lrm retention.Model // capillary pressure; nil means pc = 0
	Wet *fluid.Model    // wetting phase properties
	Nwt *fluid.Model    // non-wetting phase properties
}

// Init initialises this structure
func (o *Model) Init(prms dbf.Params, Cnd conduct.Model, Lrm retention.Model, Wet, Nwt *fluid.Model) (err error) {

	// parameters
	var k, kx, ky, kz float64
	for _, p := range prms {
		switch p.N {
		case "phi":
			o.Phi = p.V
		case "k":
			k = p.V
		case "kx":
			kx = p.V
		case "ky":
			ky = p.V
		case "kz":
			kz = p.V
		default:
			return chk.Err("porous model: parameter named %q is incorrect\n", p.N)
		}
	}
	if k > 0 {
		o.K = [3]float64{k, k, k}
	} else {
		o.K = [3]float64{kx, ky, kz}
	}

	// check
	KMIN := 1e-30
	for i, v := range o.K {
		if v < KMIN {
			return chk.Err("porous model: permeability k%c (or k) = %g is invalid. it must be greater than or equal to %g", "xyz"[i], v, KMIN)
		}
	}
	if o.Phi <= 0 || o.Phi > 1 {
		return chk.Err("porous model: porosity phi = %g is invalid", o.Phi)
	}

	// auxiliary models
	if Cnd == nil || Wet == nil || Nwt == nil {
		return chk.Err("porous model: Cnd, Wet and Nwt models must be all non-nil\n")
	}
	o.Cnd = Cnd
	o.Lrm = Lrm
	o.Wet = Wet
	o.Nwt = Nwt
	return
}

// GetPrms gets (an example) of parameters
func (o Model) GetPrms(example bool) dbf.Params {
	if example {
		return dbf.Params{
			&dbf.P{N: "phi", V: 0.3}, // [-]
			&dbf.P{N: "k", V: 1e-12}, // [m²]
		}
	}
	return dbf.Params{
		&dbf.P{N: "phi", V: o.Phi},
		&dbf.P{N: "kx", V: o.K[0]},
		&dbf.P{N: "ky", V: o.K[1]},
		&dbf.P{N: "kz", V: o.K[2]},
	}
}

// Perm returns the permeability along the unit vector n: nᵀ・K・n
func (o Model) Perm(n []float64) (k float64) {
	for i := 0; i < len(n) && i < 3; i++ {
		k += o.K[i] * n[i] * n[i]
	}
	return
}

// Pc computes the capillary pressure pn - pw
func (o Model) Pc(sw float64) float64 {
	if o.Lrm == nil {
		return 0
	}
	return o.Lrm.Pc(sw)
}

// Mobilities computes λw = krw/μw and λn = krn/μn
func (o Model) Mobilities(sw float64) (λw, λn float64, err error) {
	λw = o.Cnd.Krw(sw) / o.Wet.Viscosity()
	λn = o.Cnd.Krn(sw) / o.Nwt.Viscosity()
	if math.IsNaN(λw) || math.IsNaN(λn) || λw < 0 || λn < 0 {
		err = chk.Err("porous model: mobilities are invalid: λw=%g λn=%g (sw=%g)", λw, λn, sw)
	}
	return
}
