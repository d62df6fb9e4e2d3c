// Copyright 2016 The Gofvp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fvm

import (
	"bytes"
	"os"
	"path"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// SaveSol saves time and pressure to a file which name is set with tidx (time output index).
// A text file with one pressure value per line is saved as well
func (o *Domain) SaveSol(tidx int, verbose bool) (err error) {

	// buffer and encoder
	var buf bytes.Buffer
	enc := utl.NewEncoder(&buf, o.Sim.EncType)

	// encode
	err = enc.Encode(o.Time)
	if err != nil {
		return chk.Err("cannot encode Domain.Time\n%v", err)
	}
	err = o.Pres.Encode(enc)
	if err != nil {
		return chk.Err("cannot encode pressure\n%v", err)
	}

	// save files
	err = save_file(out_sol_path(o.Sim.DirOut, o.Sim.Key, o.Sim.EncType, tidx), &buf, verbose)
	if err != nil {
		return
	}
	buf.Reset()
	err = o.Pres.WriteText(&buf)
	if err != nil {
		return
	}
	return save_file(out_txt_path(o.Sim.DirOut, o.Sim.Key, tidx), &buf, verbose)
}

// ReadSol reads time and pressure from a file which name is set with tidx (time output index)
func (o *Domain) ReadSol(dir, fnkey, enctype string, tidx int) (err error) {

	// open file
	fil, err := os.Open(out_sol_path(dir, fnkey, enctype, tidx))
	if err != nil {
		return
	}
	defer fil.Close()

	// decode
	dec := utl.NewDecoder(fil, enctype)
	err = dec.Decode(&o.Time)
	if err != nil {
		return chk.Err("cannot decode Domain.Time\n%v", err)
	}
	err = o.Pres.Decode(dec)
	if err != nil {
		return chk.Err("cannot decode pressure\n%v", err)
	}
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

func out_sol_path(dir, fnkey, enctype string, tidx int) string {
	return path.Join(dir, io.Sf("%s_pres_%010d.%s", fnkey, tidx, enctype))
}

func out_txt_path(dir, fnkey string, tidx int) string {
	return path.Join(dir, io.Sf("%s_pres_%010d.txt", fnkey, tidx))
}

func out_sum_path(dir, fnkey, enctype string) string {
	return path.Join(dir, io.Sf("%s_sum.%s", fnkey, enctype))
}

func save_file(filename string, buf *bytes.Buffer, verbose bool) (err error) {
	fil, err := os.Create(filename)
	if err != nil {
		return
	}
	defer func() {
		if e := fil.Close(); err == nil {
			err = e
		}
	}()
	_, err = fil.Write(buf.Bytes())
	if verbose {
		io.Pfblue2("file <%s> written\n", filename)
	}
	return
}
