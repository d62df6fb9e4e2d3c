// Copyright 2017 The Gofvp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fvp

import "github.com/cpmech/gosl/io"

// CoefficientError reports that an evaluator rejected its input
type CoefficientError struct {
	Term string // "source", "storage", "flux" or "boundary"
	Cell int    // owner cell
	Face int    // local face index; -1 for cell terms
	Msg  string // description
}

func (o *CoefficientError) Error() string {
	if o.Face < 0 {
		return io.Sf("cannot compute %s coefficients @ cell %d: %s", o.Term, o.Cell, o.Msg)
	}
	return io.Sf("cannot compute %s coefficients @ cell %d, face %d: %s", o.Term, o.Cell, o.Face, o.Msg)
}
