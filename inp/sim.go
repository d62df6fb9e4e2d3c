// Copyright 2016 The Gofvp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.sim) JSON file
package inp

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"

	"github.com/cpmech/gofvp/linsol"
	"github.com/cpmech/gofvp/mdl/fluid"
	"github.com/cpmech/gofvp/mdl/porous"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// Data holds global data for simulations
type Data struct {

	// global information
	Desc    string `json:"desc"`    // description of simulation
	Matfile string `json:"matfile"` // materials file path
	DirOut  string `json:"dirout"`  // directory for output; e.g. /tmp/gofvp
	Encoder string `json:"encoder"` // encoder name; e.g. "gob" "json"

	// problem definition and options
	Form   string    `json:"form"`   // pressure formulation: "pw", "pn" or "pglobal"
	Grav   []float64 `json:"grav"`   // gravity vector; e.g. [0, -10]; nil means no gravity
	Wet    string    `json:"wet"`    // name of wetting fluid material
	Nwt    string    `json:"nwt"`    // name of non-wetting fluid material
	Steady bool      `json:"steady"` // steady simulation
}

// GridData holds data for generating a structured grid
type GridData struct {
	N   []int     `json:"n"`   // number of divisions along each direction
	L   []float64 `json:"l"`   // lengths along each direction
	Tag int       `json:"tag"` // tag of all cells; zero means -1
}

// CellMat maps cell tags to materials
type CellMat struct {
	Tag int    `json:"tag"` // tag of cell
	Mat string `json:"mat"` // name of porous material
}

// MeshData holds data defining the mesh
type MeshData struct {

	// input data
	Mshfile   string     `json:"mshfile"`   // file path of file with mesh data
	AbsPath   bool       `json:"abspath"`   // mesh filename is given in absolute path
	Grid      *GridData  `json:"grid"`      // structured grid; used if mshfile is empty
	CellsData []*CellMat `json:"cellsdata"` // materials of cells

	// derived
	Msh *Mesh // the mesh
}

// LinSolData holds data for linear solvers
type LinSolData struct {
	Name      string  `json:"name"`      // "umfpack", "dense", "cg" or "bicgstab"
	Precond   string  `json:"precond"`   // preconditioner of iterative solvers: "none", "jacobi" or "ilu0"
	Tol       float64 `json:"tol"`       // tolerance of iterative solvers
	NmaxIt    int     `json:"nmaxit"`    // max number of iterations of iterative solvers
	Symmetric bool    `json:"symmetric"` // use symmetric solver
	Verbose   bool    `json:"verbose"`   // verbose?
}

// SolverData holds data for the pressure solver
type SolverData struct {
	SolveTwice bool    `json:"solvetwice"` // repeat initial solve to refresh upwind directions
	NmaxIni    int     `json:"nmaxini"`    // max number of initial passes
	IniTol     float64 `json:"initol"`     // tolerance on relative change of pressure during initial passes
}

// FaceBc holds face boundary condition
type FaceBc struct {
	Tag   int      `json:"tag"`   // tag of face
	Keys  []string `json:"keys"`  // key indicating type of bcs: pw, pn, qn or sw (inflow saturation)
	Funcs []string `json:"funcs"` // name of function. ex: zero, load, myfunction1, etc.
	Extra string   `json:"extra"` // extra information
}

// EleCond holds cell condition
type EleCond struct {
	Tag   int      `json:"tag"`   // tag of cell
	Keys  []string `json:"keys"`  // key indicating type of condition: qw or qn (mass source rate per volume)
	Funcs []string `json:"funcs"` // name of function. ex: inj, none
	Extra string   `json:"extra"` // extra information
}

// IniData holds data for setting the initial state
type IniData struct {
	Sw      string `json:"sw"`      // function giving initial wetting saturation; empty means one
	P       string `json:"p"`       // function giving initial primary pressure; empty means zero
	Hydrost bool   `json:"hydrost"` // compute wetting pressure from hydrostatic column instead of p
}

// TimeControl holds data for defining the simulation time stepping
type TimeControl struct {
	Tf    float64 `json:"tf"`    // final time
	Dt    float64 `json:"dt"`    // time step size
	DtOut float64 `json:"dtout"` // time step size for output
}

// Stage holds stage data
type Stage struct {
	Desc     string      `json:"desc"`     // description of simulation stage
	Skip     bool        `json:"skip"`     // do not run stage
	Initial  *IniData    `json:"initial"`  // initial state; nil means keep state from previous stage
	EleConds []*EleCond  `json:"eleconds"` // cell conditions (sources)
	FaceBcs  []*FaceBc   `json:"facebcs"`  // face boundary conditions
	Control  TimeControl `json:"control"`  // time control
}

// Simulation holds all simulation data
type Simulation struct {

	// input
	Data      Data       `json:"data"`      // stores global simulation data
	Functions FuncsData  `json:"functions"` // stores all boundary condition functions
	Mesh      MeshData   `json:"mesh"`      // mesh
	LinSol    LinSolData `json:"linsol"`    // linear solver data
	Solver    SolverData `json:"solver"`    // pressure solver data
	Stages    []*Stage   `json:"stages"`    // stores all stages

	// derived
	DirOut    string       // directory to save results
	Key       string       // simulation key; e.g. mysim01.sim => mysim01 or mysim01-alias
	EncType   string       // encoder type
	Ndim      int          // space dimension
	MaxElev   float64      // maximum elevation
	Grav0     float64      // magnitude of gravity
	MatModels *MatDb       // materials and models
	WetMdl    *fluid.Model // wetting fluid
	NwtMdl    *fluid.Model // non-wetting fluid
}

// ReadSim reads all simulation data from a .sim JSON file
func ReadSim(simfilepath, alias string, erasePrev, createDirOut bool) (o *Simulation, err error) {

	// read file
	b, err := os.ReadFile(simfilepath)
	if err != nil {
		return nil, chk.Err("cannot read simulation file %q:\n%v", simfilepath, err)
	}

	// set default values
	o = new(Simulation)
	o.Solver.SetDefault()
	o.LinSol.SetDefault()

	// decode
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("cannot unmarshal simulation file %q:\n%v", simfilepath, err)
	}

	// input directory and filename key
	dir := os.ExpandEnv(filepath.Dir(simfilepath))
	fnkey := io.FnKey(filepath.Base(simfilepath))
	o.Key = fnkey
	if alias != "" {
		o.Key += "-" + alias
	}

	// output directory
	o.DirOut = o.Data.DirOut
	if o.DirOut == "" {
		o.DirOut = "/tmp/gofvp/" + fnkey
	}

	// encoder type
	o.EncType = o.Data.Encoder
	if o.EncType != "gob" && o.EncType != "json" {
		o.EncType = "gob"
	}

	// create directory
	if createDirOut {
		err = os.MkdirAll(o.DirOut, 0777)
		if err != nil {
			return nil, chk.Err("cannot create directory for output results (%s): %v", o.DirOut, err)
		}
	}

	// erase previous simulation results
	if erasePrev {
		io.RemoveAll(io.Sf("%s/%s*", o.DirOut, o.Key))
	}

	// set solver constants
	o.Solver.PostProcess()

	// mesh
	err = o.Mesh.read(dir)
	if err != nil {
		return nil, err
	}
	o.Ndim = o.Mesh.Msh.Ndim
	o.MaxElev = o.Mesh.Msh.MaxElev

	// gravity
	if len(o.Data.Grav) > 0 && len(o.Data.Grav) != o.Ndim {
		return nil, chk.Err("gravity vector must have %d components. grav = %v is invalid", o.Ndim, o.Data.Grav)
	}
	for _, g := range o.Data.Grav {
		o.Grav0 += g * g
	}
	o.Grav0 = math.Sqrt(o.Grav0)

	// materials
	o.MatModels, err = ReadMat(dir, o.Data.Matfile, o.Data.Wet, o.Data.Nwt)
	if err != nil {
		return nil, err
	}
	if m, ok := o.MatModels.Fluids[o.Data.Wet]; ok {
		o.WetMdl = m.Fluid
	}
	if m, ok := o.MatModels.Fluids[o.Data.Nwt]; ok {
		o.NwtMdl = m.Fluid
	}

	// stages
	if len(o.Stages) < 1 {
		return nil, chk.Err("at least one stage is required")
	}
	for i, stg := range o.Stages {
		err = stg.check(o.Functions)
		if err != nil {
			return nil, chk.Err("stage %d is invalid:\n%v", i, err)
		}
	}
	if o.Stages[0].Initial == nil {
		o.Stages[0].Initial = new(IniData)
	}
	return
}

// CellMaterials returns the porous material of each cell
func (o *Simulation) CellMaterials() (mats []*porous.Model, err error) {
	tag2mat := make(map[int]*porous.Model)
	for _, cd := range o.Mesh.CellsData {
		m, ok := o.MatModels.Porous[cd.Mat]
		if !ok {
			return nil, chk.Err("cannot find porous material named %q for cells with tag %d", cd.Mat, cd.Tag)
		}
		tag2mat[cd.Tag] = m.Porous
	}
	mats = make([]*porous.Model, len(o.Mesh.Msh.Cells))
	for i, c := range o.Mesh.Msh.Cells {
		m, ok := tag2mat[c.Tag]
		if !ok {
			return nil, chk.Err("cannot find material for cell %d with tag %d", i, c.Tag)
		}
		mats[i] = m
	}
	return
}

// SetDefault sets defaults values
func (o *LinSolData) SetDefault() {
	o.Name = "umfpack"
	o.Precond = "ilu0"
	o.Tol = 1e-10
	o.NmaxIt = 500
}

// Params returns the parameters of linear solvers
func (o LinSolData) Params() *linsol.Params {
	return &linsol.Params{
		Name:      o.Name,
		Precond:   o.Precond,
		Tol:       o.Tol,
		NmaxIt:    o.NmaxIt,
		Symmetric: o.Symmetric,
		Verbose:   o.Verbose,
	}
}

// SetDefault sets defaults values
func (o *SolverData) SetDefault() {
	o.NmaxIni = 10
	o.IniTol = 1e-5
}

// PostProcess performs a post-processing of the just read json file
func (o *SolverData) PostProcess() {
	if o.NmaxIni < 1 {
		o.NmaxIni = 1
	}
	if o.IniTol < 0 {
		o.IniTol = 0
	}
}

// GetFuncs returns the functions of a condition given the keys and names of functions
func GetFuncs(functions FuncsData, keys, funcs []string) (res map[string]dbf.T, err error) {
	if len(keys) != len(funcs) {
		return nil, chk.Err("number of keys (%d) must be equal to number of functions (%d)", len(keys), len(funcs))
	}
	res = make(map[string]dbf.T)
	for i, key := range keys {
		res[key], err = functions.Get(funcs[i])
		if err != nil {
			return
		}
	}
	return
}

// auxiliary //////////////////////////////////////////////////////////////////////////////////////

// read reads or generates the mesh
func (o *MeshData) read(dir string) (err error) {
	if o.Mshfile != "" {
		if o.AbsPath {
			dir = ""
		}
		o.Msh, err = ReadMsh(dir, o.Mshfile)
		return
	}
	if o.Grid == nil {
		return chk.Err("either mshfile or grid must be given in mesh data")
	}
	tag := o.Grid.Tag
	if tag == 0 {
		tag = -1
	}
	o.Msh, err = GenGrid(o.Grid.N, o.Grid.L, tag)
	return
}

// check checks keys and functions of a stage and fixes time control
func (o *Stage) check(functions FuncsData) (err error) {
	for _, bc := range o.FaceBcs {
		for _, key := range bc.Keys {
			switch key {
			case "pw", "pn", "qn", "sw":
			default:
				return chk.Err("face boundary condition key %q is invalid; options are \"pw\", \"pn\", \"qn\" and \"sw\"", key)
			}
		}
		_, err = GetFuncs(functions, bc.Keys, bc.Funcs)
		if err != nil {
			return
		}
	}
	for _, ec := range o.EleConds {
		for _, key := range ec.Keys {
			if key != "qw" && key != "qn" {
				return chk.Err("cell condition key %q is invalid; options are \"qw\" and \"qn\"", key)
			}
		}
		_, err = GetFuncs(functions, ec.Keys, ec.Funcs)
		if err != nil {
			return
		}
	}
	if o.Initial != nil {
		for _, name := range []string{o.Initial.Sw, o.Initial.P} {
			if name != "" {
				_, err = functions.Get(name)
				if err != nil {
					return
				}
			}
		}
	}

	// fix Tf, Dt and DtOut
	if o.Control.Tf < 1e-14 {
		o.Control.Tf = 1
	}
	if o.Control.Dt < 1e-14 {
		o.Control.Dt = 1
	}
	if o.Control.DtOut < o.Control.Dt {
		o.Control.DtOut = o.Control.Dt
	}
	return
}
