// Copyright 2016 The Gofvp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package conduct implements models for relative permeabilities of wetting and non-wetting phases
package conduct

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Model defines relative permeability models kr(sw)
type Model interface {
	Init(prms dbf.Params) error      // Init initialises this structure
	GetPrms(example bool) dbf.Params // gets (an example) of parameters
	Krw(sw float64) float64          // Krw returns the relative permeability of the wetting phase
	Krn(sw float64) float64          // Krn returns the relative permeability of the non-wetting phase
}

// New conductivity model
func New(name string) (model Model, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'conduct' database", name)
	}
	return allocator(), nil
}

// allocators holds all available models
var allocators = map[string]func() Model{}

// Residual holds residual saturations shared by all models
type Residual struct {
	Swr float64 // residual saturation of wetting phase
	Snr float64 // residual saturation of non-wetting phase
}

// read reads residual saturations; returns false if p is not a residual saturation
func (o *Residual) read(p *dbf.P) bool {
	switch p.N {
	case "swr":
		o.Swr = p.V
	case "snr":
		o.Snr = p.V
	default:
		return false
	}
	return true
}

// check checks residual saturations
func (o Residual) check(model string) error {
	if o.Swr < 0 || o.Snr < 0 || o.Swr+o.Snr >= 1 {
		return chk.Err("%s: residual saturations are incorrect: swr=%g snr=%g\n", model, o.Swr, o.Snr)
	}
	return nil
}

// Se computes the effective saturation clipped to [0,1]
func (o Residual) Se(sw float64) float64 {
	se := (sw - o.Swr) / (1.0 - o.Swr - o.Snr)
	if se < 0 {
		return 0
	}
	if se > 1 {
		return 1
	}
	return se
}
