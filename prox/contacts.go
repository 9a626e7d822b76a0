/*
 * contacts.go, part of qmzone.
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

package prox

import (
	"fmt"
	"math"
	"runtime"
	"sort"

	"github.com/rmera/qmzone"
	"golang.org/x/sync/errgroup"
)

// Mode selects the distance criterion of a pairwise proximity search.
type Mode int

const (
	//Clashes reports pairs closer than 1.0 A, a distance no two
	//non-bonded atoms reach in a sane structure.
	Clashes Mode = iota + 1
	//Contacts reports pairs within the van der Waals radius of the
	//pair member later in file order.
	Contacts
)

func (m Mode) String() string {
	switch m {
	case Clashes:
		return "clashes"
	case Contacts:
		return "contacts"
	default:
		panic("prox: unknown contact search mode")
	}
}

const clashRadius = 1.0

// Contact is one reported pair. A is the member earlier in file order,
// B the later one whose radius set the threshold in contact mode.
type Contact struct {
	A, B     *qmzone.Atom
	Distance float64
}

func (c Contact) String() string {
	return fmt.Sprintf("%s %s %d%s - %s %s %d%s: %.2f A",
		c.A.Name, c.A.Molname, c.A.Molid, c.A.ICode,
		c.B.Name, c.B.Molname, c.B.Molid, c.B.ICode, c.Distance)
}

//excluded reports whether the pair (partner, outer) is chemistry rather
//than trouble: atoms of one residue are bonded or nearly so, and the
//peptide bond puts the C of residue n about 1.3 A from the N of residue
//n+1.
func excluded(partner, outer point) bool {
	if partner.at.Res != nil && partner.at.Res == outer.at.Res {
		return true
	}
	if partner.at.Name == "C" && outer.at.Name == "N" &&
		partner.at.Res != nil && outer.at.Res != nil &&
		partner.at.Res.Chain == outer.at.Res.Chain &&
		partner.at.Res.Molid+1 == outer.at.Res.Molid {
		return true
	}
	return false
}

// FindContacts runs the pairwise search over the whole index and returns
// the surviving pairs ordered by the later pair member's file position.
// Each pair is reported once, from its later member, so the threshold in
// contact mode is always the later member's van der Waals radius; an atom
// whose element has no tabulated radius makes the whole search fail. An
// empty result is a KindEmptyResult error, like an empty sphere.
func (ix *Index) FindContacts(mode Mode) ([]Contact, error) {
	n := len(ix.order)
	w := runtime.GOMAXPROCS(0)
	if w < 2 || n < 64 {
		w = 1
	}
	if w > n && n > 0 {
		w = n
	}
	parts := make([][]Contact, w)
	chunk := (n + w - 1) / w
	var g errgroup.Group
	for i := 0; i < w; i++ {
		lo := i * chunk
		hi := min(lo+chunk, n)
		slot := i
		g.Go(func() error {
			var got []Contact
			for j := lo; j < hi; j++ {
				outer := ix.order[j]
				radius := clashRadius
				if mode == Contacts {
					var err error
					radius, err = qmzone.VdwRadius(outer.at.Symbol)
					if err != nil {
						return errDecorate(err, "FindContacts")
					}
				}
				var hits []point
				for _, q := range ix.within(outer, radius) {
					if q.ord >= outer.ord || excluded(q, outer) {
						continue
					}
					hits = append(hits, q)
				}
				//the keeper hands hits back in heap order; file order
				//keeps the report stable between runs
				sort.Slice(hits, func(a, b int) bool { return hits[a].ord < hits[b].ord })
				for _, q := range hits {
					d := math.Sqrt(q.Distance(outer))
					got = append(got, Contact{A: q.at, B: outer.at, Distance: d})
				}
			}
			parts[slot] = got
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var out []Contact
	for _, p := range parts {
		out = append(out, p...)
	}
	if len(out) == 0 {
		return nil, &Error{message: fmt.Sprintf("no %s found", mode), kind: qmzone.KindEmptyResult}
	}
	return out, nil
}
