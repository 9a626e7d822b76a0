/*
 * eval.go, part of qmzone.
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

package sel

import (
	"sort"
	"strings"

	"github.com/rmera/qmzone"
	"github.com/rmera/qmzone/prox"
)

// Partial restricts resid and resname selections to part of each matched
// residue. It has no effect on the other term types.
type Partial int

const (
	Whole Partial = iota
	Backbone
	Sidechain
)

func isBackbone(name string) bool {
	return name == "N" || name == "CA" || name == "C" || name == "O"
}

func keepPartial(A *qmzone.Atom, part Partial) bool {
	switch part {
	case Whole:
		return true
	case Backbone:
		return isBackbone(A.Name)
	case Sidechain:
		return !isBackbone(A.Name)
	default:
		panic("sel: unknown partial filter")
	}
}

const errNoIndex = qmzone.PanicMsg("sel: sphere predicate requires a proximity index")

// Eval resolves a parsed expression against a model, returning the
// matched serial numbers sorted ascending. Terms combine strictly left
// to right; And intersects, Or unions. A negated term is complemented
// against the full atom universe before it is combined. ID and name
// terms are membership tests, so an unknown serial or name just matches
// nothing; sphere terms go through ix and keep its resolution and
// empty-sphere errors. ix may be nil if no term needs it.
func Eval(sels []Selection, conjs []Conjunction, M *qmzone.Model, ix *prox.Index, part Partial) ([]int, error) {
	if M == nil {
		panic(qmzone.ErrNilModel)
	}
	if len(conjs) != len(sels)-1 {
		panic(qmzone.PanicMsg("sel: conjunction list must be one element shorter than the selection list"))
	}
	acc, err := evalOne(sels[0], M, ix, part)
	if err != nil {
		return nil, err
	}
	for i, c := range conjs {
		next, err := evalOne(sels[i+1], M, ix, part)
		if err != nil {
			return nil, err
		}
		switch c {
		case And:
			for k := range acc {
				if !next[k] {
					delete(acc, k)
				}
			}
		case Or:
			for k := range next {
				acc[k] = true
			}
		default:
			panic("sel: unknown conjunction")
		}
	}
	out := make([]int, 0, len(acc))
	for k := range acc {
		out = append(out, k)
	}
	sort.Ints(out)
	return out, nil
}

func evalOne(s Selection, M *qmzone.Model, ix *prox.Index, part Partial) (map[int]bool, error) {
	set := make(map[int]bool)
	switch s := s.(type) {
	case IDList:
		for _, id := range s.IDs {
			if _, err := M.BySerial(id); err == nil {
				set[id] = true
			}
		}
	case NameList:
		want := lowered(s.Names)
		for i := 0; i < M.Len(); i++ {
			A := M.Atom(i)
			if want[strings.ToLower(A.Name)] {
				set[A.Id] = true
			}
		}
	case ResidList:
		want := make(map[int]bool, len(s.IDs))
		for _, id := range s.IDs {
			want[id] = true
		}
		for _, R := range M.Residues() {
			if !want[R.Molid] {
				continue
			}
			addResidue(set, R, part)
		}
	case ResnameList:
		want := lowered(s.Names)
		for _, R := range M.Residues() {
			if !want[strings.ToLower(R.Name)] {
				continue
			}
			addResidue(set, R, part)
		}
	case Sphere:
		if ix == nil {
			panic(errNoIndex)
		}
		ids, err := ix.AtomSphere(s.Origin, s.Radius, false)
		if err != nil {
			return nil, errDecorate(err, "Eval")
		}
		for _, id := range ids {
			set[id] = true
		}
	case ResSphere:
		if ix == nil {
			panic(errNoIndex)
		}
		ids, err := ix.ResidueSphere(s.Origin, s.Radius, false)
		if err != nil {
			return nil, errDecorate(err, "Eval")
		}
		for _, id := range ids {
			set[id] = true
		}
	default:
		panic("sel: unknown selection type")
	}
	if s.Inverted() {
		inv := make(map[int]bool, M.Len())
		for i := 0; i < M.Len(); i++ {
			if id := M.Atom(i).Id; !set[id] {
				inv[id] = true
			}
		}
		set = inv
	}
	return set, nil
}

func addResidue(set map[int]bool, R *qmzone.Residue, part Partial) {
	for _, A := range R.Atoms {
		if keepPartial(A, part) {
			set[A.Id] = true
		}
	}
}

func lowered(names []string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[strings.ToLower(n)] = true
	}
	return m
}

//errDecorate asserts that err implements qmzone.Error and decorates it
//with the caller's name before returning it.
func errDecorate(err error, caller string) error {
	err2 := err.(qmzone.Error)
	err2.Decorate(caller)
	return err2
}
