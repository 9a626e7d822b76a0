/*
 * stats.go, part of qmzone.
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

	"golang.org/x/sync/errgroup"
)

// RegionCount is the atom and residue tally of one region. A residue
// counts as soon as at least one of its atoms is a member.
type RegionCount struct {
	Region   Region
	Atoms    int
	Residues int
}

// Stats summarizes region membership over a whole model.
type Stats struct {
	Regions       []RegionCount //in AllRegions order
	TotalAtoms    int
	TotalResidues int
}

// GetStats tallies every region in one pass over the residues. The pass is
// read-only and partitioned over a worker group; partial tallies merge at
// the end.
func GetStats(M *Model) *Stats {
	if M == nil {
		panic(ErrNilModel)
	}
	residues := M.Residues()
	n := len(residues)
	w := nworkers(n)
	chunk := (n + w - 1) / w
	parts := make([][]RegionCount, w)
	var g errgroup.Group
	for i := 0; i < w; i++ {
		lo := i * chunk
		hi := min(lo+chunk, n)
		slot := i
		g.Go(func() error {
			counts := make([]RegionCount, len(AllRegions))
			for k, r := range AllRegions {
				counts[k].Region = r
			}
			for _, res := range residues[lo:hi] {
				for k, r := range AllRegions {
					inres := 0
					for _, at := range res.Atoms {
						if at.InRegion(r) {
							inres++
						}
					}
					counts[k].Atoms += inres
					if inres > 0 {
						counts[k].Residues++
					}
				}
			}
			parts[slot] = counts
			return nil
		})
	}
	g.Wait() //the closures above always return nil
	st := &Stats{Regions: make([]RegionCount, len(AllRegions)), TotalResidues: n, TotalAtoms: M.Len()}
	for k, r := range AllRegions {
		st.Regions[k].Region = r
	}
	for _, p := range parts {
		for k := range p {
			st.Regions[k].Atoms += p[k].Atoms
			st.Regions[k].Residues += p[k].Residues
		}
	}
	return st
}

// ResidueRow is one line of the per-residue detail listing of a region.
type ResidueRow struct {
	ResID   string //residue serial number with insertion code
	Name    string
	Atoms   int //atoms in the residue
	Members int //atoms of it in the region
}

// ResidueDetail lists, in file order, every residue with at least one atom
// in region r. No such residue is an empty-result error, not an empty
// table.
func ResidueDetail(M *Model, r Region) ([]ResidueRow, error) {
	var rows []ResidueRow
	for _, res := range M.Residues() {
		members := 0
		for _, at := range res.Atoms {
			if at.InRegion(r) {
				members++
			}
		}
		if members > 0 {
			rows = append(rows, ResidueRow{ResID: res.DisplayID(), Name: res.Name, Atoms: len(res.Atoms), Members: members})
		}
	}
	if rows == nil {
		return nil, newError(KindEmptyResult, fmt.Sprintf("no residues found in region %s", r))
	}
	return rows, nil
}

// AtomRow is one line of the per-atom detail listing of a region. QM and
// Active carry the raw occupancy and b-factor values as stored.
type AtomRow struct {
	Serial  int
	Name    string
	ResID   string
	ResName string
	QM      float64
	Active  float64
}

// AtomDetail lists, in file order, every atom in region r. No such atom is
// an empty-result error, not an empty table.
func AtomDetail(M *Model, r Region) ([]AtomRow, error) {
	var rows []AtomRow
	for i := 0; i < M.Len(); i++ {
		at := M.Atom(i)
		if !at.InRegion(r) {
			continue
		}
		rows = append(rows, AtomRow{
			Serial:  at.Id,
			Name:    at.Name,
			ResID:   at.Res.DisplayID(),
			ResName: at.Res.Name,
			QM:      at.Occupancy,
			Active:  at.Bfactor,
		})
	}
	if rows == nil {
		return nil, newError(KindEmptyResult, fmt.Sprintf("no atoms found in region %s", r))
	}
	return rows, nil
}
