/*
 * prox.go, part of qmzone.
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

//Package prox answers proximity questions about a structure: which atoms
//sit inside a sphere, which residues a sphere touches, and which atom
//pairs clash or make van der Waals contact. Everything runs over a k-d
//tree bulk-loaded from the model coordinates; the index is built once per
//command and never mutated.
package prox

import (
	"fmt"
	"sort"

	"github.com/rmera/qmzone"
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

//point is one indexed atom: its coordinate plus the back-references the
//queries report through. ord is the atom's position in file order, the
//tie-break space for contact pairs.
type point struct {
	vec r3.Vec
	at  *qmzone.Atom
	ord int
}

func (p point) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(point)
	switch d {
	case 0:
		return p.vec.X - q.vec.X
	case 1:
		return p.vec.Y - q.vec.Y
	case 2:
		return p.vec.Z - q.vec.Z
	default:
		panic("illegal dimension")
	}
}

func (p point) Dims() int { return 3 }

//Distance returns the squared Euclidean distance, as the kdtree package
//expects; radius arguments are squared before they meet it.
func (p point) Distance(c kdtree.Comparable) float64 {
	q := c.(point)
	return r3.Norm2(r3.Sub(p.vec, q.vec))
}

type points []point

func (p points) Index(i int) kdtree.Comparable         { return p[i] }
func (p points) Len() int                              { return len(p) }
func (p points) Pivot(d kdtree.Dim) int                { return plane{points: p, Dim: d}.Pivot() }
func (p points) Slice(start, end int) kdtree.Interface { return p[start:end] }

type plane struct {
	kdtree.Dim
	points
}

func (p plane) Less(i, j int) bool {
	switch p.Dim {
	case 0:
		return p.points[i].vec.X < p.points[j].vec.X
	case 1:
		return p.points[i].vec.Y < p.points[j].vec.Y
	case 2:
		return p.points[i].vec.Z < p.points[j].vec.Z
	default:
		panic("illegal dimension")
	}
}

func (p plane) Pivot() int { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }

func (p plane) Slice(start, end int) kdtree.SortSlicer {
	p.points = p.points[start:end]
	return p
}

func (p plane) Swap(i, j int) {
	p.points[i], p.points[j] = p.points[j], p.points[i]
}

// Index is a read-only spatial index over the atoms of one model.
type Index struct {
	tree     *kdtree.Tree
	order    []point //file order, for the contact outer loop
	bySerial map[int]point
}

// NewIndex bulk-loads the k-d tree from the atoms of m in file order.
func NewIndex(m qmzone.Atomer) *Index {
	n := m.Len()
	ps := make(points, 0, n)
	bySerial := make(map[int]point, n)
	for i := 0; i < n; i++ {
		at := m.Atom(i)
		p := point{vec: at.Coord, at: at, ord: i}
		ps = append(ps, p)
		if _, dup := bySerial[at.Id]; !dup {
			bySerial[at.Id] = p
		}
	}
	order := make([]point, len(ps))
	copy(order, ps)
	//kdtree.New reorders its argument while building, hence the copy above
	return &Index{tree: kdtree.New(ps, false), order: order, bySerial: bySerial}
}

//origin resolves the query origin by serial number.
func (ix *Index) origin(serial int) (point, error) {
	p, ok := ix.bySerial[serial]
	if !ok {
		return point{}, &Error{
			message: fmt.Sprintf("no atom found with serial number: %d", serial),
			kind:    qmzone.KindResolution,
		}
	}
	return p, nil
}

//within collects every indexed point with squared distance <= radius² of p.
func (ix *Index) within(p point, radius float64) []point {
	keep := kdtree.NewDistKeeper(radius * radius)
	ix.tree.NearestSet(keep, p)
	var hits []point
	for _, c := range keep.Heap {
		if c.Comparable == nil {
			continue
		}
		hits = append(hits, c.Comparable.(point))
	}
	return hits
}

// AtomSphere returns, sorted ascending, the serials of every atom whose
// squared distance to the atom with the given origin serial is at most
// radius squared (the boundary belongs to the sphere). The origin atom
// itself is dropped unless includeSelf. An empty result is an error: an
// empty spatial selection is almost always a mistyped serial or radius.
func (ix *Index) AtomSphere(origin int, radius float64, includeSelf bool) ([]int, error) {
	p, err := ix.origin(origin)
	if err != nil {
		return nil, errDecorate(err, "AtomSphere")
	}
	seen := make(map[int]bool)
	var out []int
	for _, q := range ix.within(p, radius) {
		if !includeSelf && q.at == p.at {
			continue
		}
		if !seen[q.at.Id] {
			seen[q.at.Id] = true
			out = append(out, q.at.Id)
		}
	}
	if out == nil {
		return nil, &Error{message: "calculated sphere doesn't contain any atoms", kind: qmzone.KindEmptyResult}
	}
	sort.Ints(out)
	return out, nil
}

// ResidueSphere expands every sphere hit to its whole owning residue and
// returns the union of their atoms' serials, sorted ascending. The
// origin's own residue is dropped entirely unless includeSelf. Same
// empty-result behavior as AtomSphere.
func (ix *Index) ResidueSphere(origin int, radius float64, includeSelf bool) ([]int, error) {
	p, err := ix.origin(origin)
	if err != nil {
		return nil, errDecorate(err, "ResidueSphere")
	}
	resSeen := make(map[*qmzone.Residue]bool)
	seen := make(map[int]bool)
	var out []int
	for _, q := range ix.within(p, radius) {
		res := q.at.Res
		if res == nil || resSeen[res] {
			continue
		}
		resSeen[res] = true
		if !includeSelf && res == p.at.Res {
			continue
		}
		for _, at := range res.Atoms {
			if !seen[at.Id] {
				seen[at.Id] = true
				out = append(out, at.Id)
			}
		}
	}
	if out == nil {
		return nil, &Error{message: "calculated sphere doesn't contain any atoms", kind: qmzone.KindEmptyResult}
	}
	sort.Ints(out)
	return out, nil
}

//Error is the concrete error type of this package. It implements
//qmzone.Error.
type Error struct {
	message string
	kind    qmzone.Kind
	deco    []string
}

func (err *Error) Error() string { return err.message }

func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

func (err *Error) Kind() qmzone.Kind { return err.kind }

//errDecorate asserts that err implements qmzone.Error and decorates it
//with the caller's name before returning it.
func errDecorate(err error, caller string) error {
	err2 := err.(qmzone.Error)
	err2.Decorate(caller)
	return err2
}
