// Copyright 2017 The Gofvp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package csr

import "github.com/cpmech/gosl/io"

// TopologyError reports inconsistent grid adjacency found while building the pattern
type TopologyError struct {
	Cell     int    // cell whose row is being built
	Face     int    // local face index; -1 if not related to a specific face
	Neighbor int    // neighbour reported across face; -1 if not applicable
	Msg      string // description
}

func (o *TopologyError) Error() string {
	if o.Face < 0 {
		return io.Sf("topology error @ cell %d: %s", o.Cell, o.Msg)
	}
	return io.Sf("topology error @ cell %d, face %d (neighbour %d): %s", o.Cell, o.Face, o.Neighbor, o.Msg)
}

// PatternViolation reports an attempt to write an entry that is not in the committed pattern
type PatternViolation struct {
	Row int
	Col int
}

func (o *PatternViolation) Error() string {
	return io.Sf("pattern violation: entry (%d,%d) is not in the sparse pattern", o.Row, o.Col)
}
