// Copyright 2017 The Gofvp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fvp

import (
	"bufio"
	"fmt"
	goio "io"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// SerializeEntity writes the pressure of one cell as a line of text
func (o *Pressure) SerializeEntity(w goio.Writer, cell int) (err error) {
	_, err = goio.WriteString(w, io.Sf("%.17g\n", o.P[cell]))
	return
}

// DeserializeEntity reads the pressure of one cell written by SerializeEntity
func (o *Pressure) DeserializeEntity(r goio.Reader, cell int) (err error) {
	_, err = fmt.Fscan(r, &o.P[cell])
	if err != nil {
		return chk.Err("cannot read pressure of cell %d:\n%v", cell, err)
	}
	return
}

// WriteText writes one value per cell in traversal order
func (o *Pressure) WriteText(w goio.Writer) (err error) {
	bw := bufio.NewWriter(w)
	for i := range o.P {
		err = o.SerializeEntity(bw, i)
		if err != nil {
			return
		}
	}
	return bw.Flush()
}

// ReadText reads one value per cell in traversal order and marks the field as solved
func (o *Pressure) ReadText(r goio.Reader) (err error) {
	br := bufio.NewReader(r)
	for i := range o.P {
		err = o.DeserializeEntity(br, i)
		if err != nil {
			return
		}
	}
	return o.restored()
}

// Encode encodes the pressure field
func (o *Pressure) Encode(enc utl.Encoder) (err error) {
	return enc.Encode(o.P)
}

// Decode decodes the pressure field and marks it as solved
func (o *Pressure) Decode(dec utl.Decoder) (err error) {
	var p []float64
	err = dec.Decode(&p)
	if err != nil {
		return
	}
	if len(p) != len(o.P) {
		return chk.Err("cannot decode pressure field: length %d differs from number of cells %d", len(p), len(o.P))
	}
	copy(o.P, p)
	return o.restored()
}

// restored hands a restored field to the storer
func (o *Pressure) restored() (err error) {
	err = o.store()
	if err != nil {
		o.state = Uninitialized
		return
	}
	o.state = Solved
	return
}
