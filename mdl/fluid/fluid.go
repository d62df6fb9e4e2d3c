// Copyright 2016 The Gofvp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fluid implements models for fluid density and viscosity
package fluid

import (
	"math"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Model implements a slightly compressible fluid with constant viscosity:
//   ρ(p) = R0 + C・(p - P0)   thus   dρ/dp = C
type Model struct {
	R0  float64 // intrinsic density corresponding to P0
	P0  float64 // pressure corresponding to R0
	C   float64 // compressibility coefficient; e.g. R0/Kbulk or M/(R・θ)
	Mu  float64 // dynamic viscosity
	Gas bool    // is gas instead of liquid?
}

// Init initialises this structure
func (o *Model) Init(prms dbf.Params) (err error) {
	for _, p := range prms {
		switch strings.ToLower(p.N) {
		case "r0":
			o.R0 = p.V
		case "p0":
			o.P0 = p.V
		case "c":
			o.C = p.V
		case "mu":
			o.Mu = p.V
		case "gas":
			o.Gas = p.V > 0
		default:
			return chk.Err("fluid: parameter named %q is incorrect\n", p.N)
		}
	}
	if o.R0 <= 0 {
		return chk.Err("fluid: R0 must be positive. R0 = %g is incorrect\n", o.R0)
	}
	if o.Mu <= 0 {
		return chk.Err("fluid: viscosity must be positive. Mu = %g is incorrect\n", o.Mu)
	}
	if o.C < 0 {
		return chk.Err("fluid: compressibility cannot be negative. C = %g is incorrect\n", o.C)
	}
	return
}

// GetPrms gets (an example of) parameters
//  Input:
//   example -- returns example of parameters; othewise returs current parameters
//  Note:
//   Gas variable is used to return dry air properties instead of water
func (o Model) GetPrms(example bool) dbf.Params {
	if example {
		if o.Gas {
			return dbf.Params{ // dry air
				&dbf.P{N: "R0", V: 0.0012}, // [Mg/m³]
				&dbf.P{N: "P0", V: 0.0},    // [kPa]
				&dbf.P{N: "C", V: 1.17e-5}, // [Mg/(m³・kPa)]
				&dbf.P{N: "Mu", V: 1.8e-8}, // [kPa・s]
				&dbf.P{N: "Gas", V: 1},     // [-]
			}
		}
		return dbf.Params{ // water
			&dbf.P{N: "R0", V: 1.0},    // [Mg/m³]
			&dbf.P{N: "P0", V: 0.0},    // [kPa]
			&dbf.P{N: "C", V: 4.53e-7}, // [Mg/(m³・kPa)]
			&dbf.P{N: "Mu", V: 1e-6},   // [kPa・s]
			&dbf.P{N: "Gas", V: 0},     // [-]
		}
	}
	var gas float64
	if o.Gas {
		gas = 1
	}
	return dbf.Params{
		&dbf.P{N: "R0", V: o.R0},
		&dbf.P{N: "P0", V: o.P0},
		&dbf.P{N: "C", V: o.C},
		&dbf.P{N: "Mu", V: o.Mu},
		&dbf.P{N: "Gas", V: gas},
	}
}

// Density computes the intrinsic density ρ(p)
func (o Model) Density(p float64) float64 {
	return o.R0 + o.C*(p-o.P0)
}

// Compressibility computes c = (1/ρ)・dρ/dp
func (o Model) Compressibility(p float64) float64 {
	return o.C / o.Density(p)
}

// Viscosity returns μ
func (o Model) Viscosity() float64 {
	return o.Mu
}

// Calc computes pressure and density at elevation z of a column in hydrostatic equilibrium with
// p = P0 at the top (elevation H) and gravity acceleration grav (positive constant)
func (o Model) Calc(z, H, grav float64) (p, R float64) {
	if o.C == 0 {
		p = o.P0 + o.R0*grav*(H-z)
		return p, o.R0
	}
	p = o.P0 + (o.R0/o.C)*(math.Exp(o.C*grav*(H-z))-1.0)
	R = o.R0 + o.C*(p-o.P0)
	return
}
