/*
 * region.go, part of qmzone.
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
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Region is one of the three classifications an atom can carry for a QM/MM
// setup. QM1 and QM2 are mutually exclusive per atom (the editing logic
// enforces that); Active is independent of both.
type Region int

const (
	QM1 Region = iota + 1
	QM2
	Active
)

// AllRegions lists the regions in display order.
var AllRegions = []Region{QM1, QM2, Active}

func (r Region) String() string {
	switch r {
	case QM1:
		return "QM1"
	case QM2:
		return "QM2"
	case Active:
		return "Active"
	}
	panic(ErrBadRegion)
}

// The region membership of an atom is persisted in two repurposed fields
// of the PDB record: occupancy for the QM level and b-factor for Active.
// These exact values round-trip through the fixed %6.2f columns, so
// membership tests compare with == on purpose.
const (
	qm1Occupancy  = 1.00
	qm2Occupancy  = 2.00
	activeBfactor = 1.00
)

// InRegion reports whether the atom currently carries region r.
func (A *Atom) InRegion(r Region) bool {
	switch r {
	case QM1:
		return A.Occupancy == qm1Occupancy
	case QM2:
		return A.Occupancy == qm2Occupancy
	case Active:
		return A.Bfactor == activeBfactor
	}
	panic(ErrBadRegion)
}

//setAtomRegion writes (assign) or zeroes (clear) the sentinel for r on one
//atom. Both QM levels clear to the same 0.00 occupancy.
func setAtomRegion(A *Atom, r Region, assign bool) {
	switch r {
	case QM1:
		if assign {
			A.Occupancy = qm1Occupancy
		} else {
			A.Occupancy = 0
		}
	case QM2:
		if assign {
			A.Occupancy = qm2Occupancy
		} else {
			A.Occupancy = 0
		}
	case Active:
		if assign {
			A.Bfactor = activeBfactor
		} else {
			A.Bfactor = 0
		}
	default:
		panic(ErrBadRegion)
	}
}

// Members returns the serial numbers of every atom currently in region r,
// sorted ascending.
func Members(M *Model, r Region) []int {
	if M == nil {
		panic(ErrNilModel)
	}
	return scanSerials(M, func(A *Atom) bool { return A.InRegion(r) })
}

//minParallel is the atom count under which whole-model scans stay
//sequential; goroutines don't pay off on small structures.
const minParallel = 512

func nworkers(n int) int {
	w := runtime.GOMAXPROCS(0)
	if n < minParallel || w < 2 {
		return 1
	}
	if w > n {
		w = n
	}
	return w
}

//scanSerials collects, in parallel, the serials of the atoms that satisfy
//keep. Each worker owns a contiguous partition of the atom range and its
//own result slot, so there is no sharing to lock.
func scanSerials(M Atomer, keep func(*Atom) bool) []int {
	n := M.Len()
	w := nworkers(n)
	parts := make([][]int, w)
	chunk := (n + w - 1) / w
	var g errgroup.Group
	for i := 0; i < w; i++ {
		lo := i * chunk
		hi := min(lo+chunk, n)
		slot := i
		g.Go(func() error {
			var got []int
			for j := lo; j < hi; j++ {
				if at := M.Atom(j); keep(at) {
					got = append(got, at.Id)
				}
			}
			parts[slot] = got
			return nil
		})
	}
	g.Wait() //the closures above always return nil
	var out []int
	for _, p := range parts {
		out = append(out, p...)
	}
	sort.Ints(out)
	return out
}
