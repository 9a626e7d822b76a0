/*
 * atom.go, part of qmzone.
 *
 *
 * Copyright 2026 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 * qmzone is currently developed at the Universidad de Santiago de Chile
 * (USACH)
 *
 */

package qmzone

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// Atom is one ATOM or HETATM record of a structure file. Id is the PDB
// serial number and identifies the atom everywhere in this module. The
// Occupancy and Bfactor fields double as the persisted markers for the
// QM and Active regions (see region.go); they are the only fields the
// editing engine ever mutates.
type Atom struct {
	Name      string
	Id        int
	Molname   string //name of the residue the atom belongs to
	Molid     int    //serial number of that residue
	ICode     string //residue insertion code, "" for none
	Chain     string
	Coord     r3.Vec
	Occupancy float64
	Bfactor   float64
	Symbol    string
	Het       bool     // is hetatm in the pdb file?
	Res       *Residue //back-reference, for display only
}

// Residue groups the atoms of one residue, in file order. Its identity is
// the (Molid, ICode) pair; Chain disambiguates equal pairs in different
// chains.
type Residue struct {
	Molid int
	ICode string
	Name  string
	Chain string
	Atoms []*Atom
}

// DisplayID returns the residue serial number with the insertion code
// appended, the way structure files and reports show it (e.g. "52A").
func (R *Residue) DisplayID() string {
	return fmt.Sprintf("%d%s", R.Molid, R.ICode)
}

// Atomer is the interface for anything that can hand out its atoms in a
// stable order.
type Atomer interface {
	Atom(v int) *Atom
	Len() int
}

// Model is a parsed structure: the ordered atom list plus the residue
// grouping over it. It is built once per command invocation and owned by
// that invocation; nothing here is safe for concurrent mutation.
type Model struct {
	atoms    []*Atom
	residues []*Residue
	bySerial map[int]*Atom
}

// NewModel builds a Model from residues in file order, wiring the atom
// back-references and the serial lookup. If two atoms share a serial
// number the first one read wins.
func NewModel(residues []*Residue) *Model {
	M := &Model{residues: residues, bySerial: make(map[int]*Atom)}
	for _, res := range residues {
		for _, at := range res.Atoms {
			at.Res = res
			M.atoms = append(M.atoms, at)
			if _, dup := M.bySerial[at.Id]; !dup {
				M.bySerial[at.Id] = at
			}
		}
	}
	return M
}

// Atom returns the atom at position v in file order. Out-of-range v panics.
func (M *Model) Atom(v int) *Atom { return M.atoms[v] }

// Len returns the number of atoms in the model.
func (M *Model) Len() int { return len(M.atoms) }

// Residues returns the residue list in file order. The slice is shared,
// not copied; callers must not alter it.
func (M *Model) Residues() []*Residue { return M.residues }

// BySerial resolves an atom by its serial number.
func (M *Model) BySerial(serial int) (*Atom, error) {
	at, ok := M.bySerial[serial]
	if !ok {
		return nil, newError(KindResolution, fmt.Sprintf("no atom found with serial number: %d", serial))
	}
	return at, nil
}

// Universe returns the serial numbers of every atom in the model, sorted
// ascending. The negation of a selection term complements against this set.
func (M *Model) Universe() []int {
	u := make([]int, 0, len(M.atoms))
	for _, at := range M.atoms {
		u = append(u, at.Id)
	}
	sort.Ints(u)
	return u
}
