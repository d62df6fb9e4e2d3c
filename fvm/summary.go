// Copyright 2016 The Gofvp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fvm

import (
	"bytes"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// Summary records summary of outputs
type Summary struct {
	OutTimes []float64 // [nOutTimes] output times
	Dirout   string    // directory where results are stored
	Fnkey    string    // filename key of simulation
	Nsolve   int       // total number of linear solves
}

// Save saves summary to disc
func (o *Summary) Save(dirout, fnkey, enctype string, verbose bool) (err error) {
	o.Dirout = dirout
	o.Fnkey = fnkey
	var buf bytes.Buffer
	enc := utl.NewEncoder(&buf, enctype)
	err = enc.Encode(o)
	if err != nil {
		return chk.Err("cannot encode summary:\n%v", err)
	}
	return save_file(out_sum_path(dirout, fnkey, enctype), &buf, verbose)
}

// ReadSummary reads summary back
func ReadSummary(dirout, fnkey, enctype string) (o *Summary, err error) {
	fil, err := os.Open(out_sum_path(dirout, fnkey, enctype))
	if err != nil {
		return
	}
	defer fil.Close()
	o = new(Summary)
	dec := utl.NewDecoder(fil, enctype)
	err = dec.Decode(o)
	if err != nil {
		return nil, chk.Err("cannot decode summary:\n%v", err)
	}
	return
}
