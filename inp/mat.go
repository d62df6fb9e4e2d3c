// Copyright 2016 The Gofvp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cpmech/gofvp/mdl/conduct"
	"github.com/cpmech/gofvp/mdl/fluid"
	"github.com/cpmech/gofvp/mdl/porous"
	"github.com/cpmech/gofvp/mdl/retention"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// Material holds material data
type Material struct {

	// input
	Name  string     `json:"name"`  // name of material
	Type  string     `json:"type"`  // type of material; e.g. "fluid", "conduct", "reten", "porous"
	Model string     `json:"model"` // name of model; e.g. "lin", "bc"; unused by "fluid" and "porous"
	Extra string     `json:"extra"` // extra information; porous: "!cnd:name !lrm:name"
	Prms  dbf.Params `json:"prms"`  // prms holds all model parameters for this material

	// derived
	Fluid   *fluid.Model    // pointer to actual fluid model
	Conduct conduct.Model   // pointer to actual conductivity model
	Reten   retention.Model // pointer to actual retention model
	Porous  *porous.Model   // pointer to actual porous model
}

// MatsData holds materials
type MatsData []*Material

// MatDb implements a database of materials
type MatDb struct {

	// input
	Functions FuncsData `json:"functions"` // all functions
	Materials MatsData  `json:"materials"` // all materials

	// derived
	Fluids   map[string]*Material // subset with materials/models: fluids
	Conducts map[string]*Material // subset with materials/models: conductivities
	Retens   map[string]*Material // subset with materials/models: retention models
	Porous   map[string]*Material // subset with materials/models: porous materials
}

// ReadMat reads all materials data from a .mat JSON file
//  wet and nwt are the names of the fluid materials filling the pores
func ReadMat(dir, fn, wet, nwt string) (mdb *MatDb, err error) {

	// read file
	b, err := os.ReadFile(filepath.Join(dir, fn))
	if err != nil {
		return nil, chk.Err("cannot read materials file:\n%v", err)
	}

	// decode
	mdb = new(MatDb)
	err = json.Unmarshal(b, mdb)
	if err != nil {
		return nil, chk.Err("cannot unmarshal materials file %q:\n%v", fn, err)
	}
	err = mdb.init(wet, nwt)
	if err != nil {
		return nil, err
	}
	return
}

// Get returns a material
//  Note: returns nil if not found
func (o MatDb) Get(name string) *Material {
	for _, mat := range o.Materials {
		if mat.Name == name {
			return mat
		}
	}
	return nil
}

// String prints materials
func (o MatsData) String() string {
	l := "{\n"
	for i, m := range o {
		if i > 0 {
			l += ",\n"
		}
		l += io.Sf("  { \"name\":%q, \"type\":%q, \"model\":%q, \"extra\":%q,\n", m.Name, m.Type, m.Model, m.Extra)
		l += io.Sf("    \"prms\":%v }", m.Prms)
	}
	l += "\n}"
	return l
}

// init splits materials into subsets and allocates models
func (o *MatDb) init(wet, nwt string) (err error) {

	// subsets
	o.Fluids = make(map[string]*Material)
	o.Conducts = make(map[string]*Material)
	o.Retens = make(map[string]*Material)
	o.Porous = make(map[string]*Material)
	for _, m := range o.Materials {
		switch m.Type {
		case "fluid":
			o.Fluids[m.Name] = m
		case "conduct":
			o.Conducts[m.Name] = m
		case "reten":
			o.Retens[m.Name] = m
		case "porous":
			o.Porous[m.Name] = m
		default:
			return chk.Err("material type %q is incorrect; options are \"fluid\", \"conduct\", \"reten\" and \"porous\"", m.Type)
		}
	}

	// alloc/init: fluids
	for _, m := range o.Fluids {
		m.Fluid = new(fluid.Model)
		err = m.Fluid.Init(m.Prms)
		if err != nil {
			return chk.Err("cannot initialise fluid material %q:\n%v", m.Name, err)
		}
	}

	// alloc/init: conducts
	for _, m := range o.Conducts {
		m.Conduct, err = conduct.New(m.Model)
		if err != nil {
			return
		}
		err = m.Conduct.Init(m.Prms)
		if err != nil {
			return chk.Err("cannot initialise conductivity material %q:\n%v", m.Name, err)
		}
	}

	// alloc/init: retens
	for _, m := range o.Retens {
		m.Reten, err = retention.New(m.Model)
		if err != nil {
			return
		}
		err = m.Reten.Init(m.Prms)
		if err != nil {
			return chk.Err("cannot initialise retention material %q:\n%v", m.Name, err)
		}
	}

	// porous materials need fluids
	if len(o.Porous) == 0 {
		return
	}
	fw, ok := o.Fluids[wet]
	if !ok {
		return chk.Err("cannot find wetting fluid material named %q", wet)
	}
	fn, ok := o.Fluids[nwt]
	if !ok {
		return chk.Err("cannot find non-wetting fluid material named %q", nwt)
	}

	// alloc/init: porous
	for _, m := range o.Porous {
		cndName, found := io.Keycode(m.Extra, "cnd")
		if !found {
			return chk.Err("porous material %q requires \"!cnd:name\" in extra", m.Name)
		}
		cnd, ok := o.Conducts[cndName]
		if !ok {
			return chk.Err("cannot find conductivity material named %q required by porous material %q", cndName, m.Name)
		}
		var lrm retention.Model
		if lrmName, found := io.Keycode(m.Extra, "lrm"); found {
			ret, ok := o.Retens[lrmName]
			if !ok {
				return chk.Err("cannot find retention material named %q required by porous material %q", lrmName, m.Name)
			}
			lrm = ret.Reten
		}
		m.Porous = new(porous.Model)
		err = m.Porous.Init(m.Prms, cnd.Conduct, lrm, fw.Fluid, fn.Fluid)
		if err != nil {
			return chk.Err("cannot initialise porous material %q:\n%v", m.Name, err)
		}
	}
	return
}
