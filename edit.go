/*
 * edit.go, part of qmzone.
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
	"strings"

	"golang.org/x/sync/errgroup"
)

// Op selects between the two region mutations.
type Op int

const (
	Assign Op = iota + 1
	Clear
)

func (o Op) String() string {
	switch o {
	case Assign:
		return "Assign"
	case Clear:
		return "Clear"
	}
	panic(ErrBadOp)
}

//inverse returns the op that undoes o.
func (o Op) inverse() Op {
	switch o {
	case Assign:
		return Clear
	case Clear:
		return Assign
	}
	panic(ErrBadOp)
}

// SetRegion is the unchecked mutation mode: it unconditionally writes
// (Assign) or zeroes (Clear) the sentinel of region r on every listed
// atom. Serials absent from the model are skipped. It is meant for
// conflict-resolution substeps and for undo/redo replay, where the caller
// already computed exactly the atoms that must change; everything
// user-facing goes through ApplyChecked instead.
func SetRegion(M *Model, serials []int, r Region, op Op) {
	if M == nil {
		panic(ErrNilModel)
	}
	n := len(serials)
	w := nworkers(n)
	chunk := (n + w - 1) / w
	var g errgroup.Group
	for i := 0; i < w; i++ {
		lo := i * chunk
		hi := min(lo+chunk, n)
		g.Go(func() error {
			//each worker owns its span of the (deduplicated) serial
			//list, so no two workers ever write to the same atom
			for _, s := range serials[lo:hi] {
				if at, ok := M.bySerial[s]; ok {
					setAtomRegion(at, r, op == Assign)
				}
			}
			return nil
		})
	}
	g.Wait() //the closures above always return nil
}

//verifySerials returns a Resolution error naming every requested serial
//that does not exist in the model. The selection layer normally filters
//these out already; this is the edit engine's own check.
func verifySerials(M *Model, serials []int) error {
	var missing []string
	for _, s := range serials {
		if _, ok := M.bySerial[s]; !ok {
			missing = append(missing, fmt.Sprintf("%d", s))
		}
	}
	if missing != nil {
		return newError(KindResolution, "no atom(s) found with serial number(s): "+strings.Join(missing, ", "))
	}
	return nil
}

// ApplyChecked is the checked mutation mode. It scans the current
// membership of region r, reduces the requested set to the atoms the edit
// actually changes (Assign skips current members, Clear keeps only current
// members), applies the unchecked write over that subset and returns it,
// sorted, so the caller can record an accurate EditOp. An edit that would
// change nothing fails with a no-op error instead of pretending success.
func ApplyChecked(M *Model, serials []int, r Region, op Op) ([]int, error) {
	if M == nil {
		panic(ErrNilModel)
	}
	if err := verifySerials(M, serials); err != nil {
		return nil, errDecorate(err, "ApplyChecked")
	}
	members := make(map[int]bool)
	for _, s := range Members(M, r) {
		members[s] = true
	}
	seen := make(map[int]bool, len(serials))
	var actual []int
	for _, s := range serials {
		if seen[s] {
			continue
		}
		seen[s] = true
		switch op {
		case Assign:
			if !members[s] {
				actual = append(actual, s)
			}
		case Clear:
			if members[s] {
				actual = append(actual, s)
			}
		default:
			panic(ErrBadOp)
		}
	}
	if len(actual) == 0 {
		var msg string
		if op == Assign {
			msg = fmt.Sprintf("nothing to do: all selected atoms are already in %s", r)
		} else {
			msg = fmt.Sprintf("nothing to do: none of the selected atoms is in %s", r)
		}
		return nil, newError(KindNoOpEdit, msg)
	}
	sort.Ints(actual)
	SetRegion(M, actual, r, op)
	return actual, nil
}

// AddToQM assigns the given atoms to QM level target (QM1 or QM2), first
// clearing any of them from the other QM level so no atom ever carries
// both. It returns the EditOps actually applied, in application order:
// [Clear(other), Assign(target)] when the other level overlapped the
// request, [Assign(target)] when it did not. A clear that finds no overlap
// is not an error, just an empty effect.
func AddToQM(M *Model, serials []int, target Region) ([]EditOp, error) {
	var other Region
	switch target {
	case QM1:
		other = QM2
	case QM2:
		other = QM1
	default:
		panic(ErrBadRegion)
	}
	ops := make([]EditOp, 0, 2)
	cleared, err := ApplyChecked(M, serials, other, Clear)
	if err != nil && ErrorKind(err) != KindNoOpEdit {
		return nil, errDecorate(err, "AddToQM")
	}
	if err == nil {
		ops = append(ops, NewEditOp(Clear, other, cleared))
	}
	//the serials already verified above, and atoms just cleared from the
	//other level cannot be in the target one, so this never partially fails
	//after a non-empty clear: it either applies or the whole action was a no-op.
	actual, err := ApplyChecked(M, serials, target, Assign)
	if err != nil {
		return nil, errDecorate(err, "AddToQM")
	}
	return append(ops, NewEditOp(Assign, target, actual)), nil
}

// AddToActive assigns the given atoms to Active; no conflict resolution is
// involved since Active is independent of the QM levels.
func AddToActive(M *Model, serials []int) ([]EditOp, error) {
	actual, err := ApplyChecked(M, serials, Active, Assign)
	if err != nil {
		return nil, errDecorate(err, "AddToActive")
	}
	return []EditOp{NewEditOp(Assign, Active, actual)}, nil
}

// Remove clears the given atoms from region r, checked.
func Remove(M *Model, serials []int, r Region) ([]EditOp, error) {
	actual, err := ApplyChecked(M, serials, r, Clear)
	if err != nil {
		return nil, errDecorate(err, "Remove")
	}
	return []EditOp{NewEditOp(Clear, r, actual)}, nil
}

// ClearRegion empties region r no matter what it holds, returning the
// Clear op built from the membership read before the reset (that is what
// an undo needs). An already empty region is a no-op error.
func ClearRegion(M *Model, r Region) (EditOp, error) {
	members := Members(M, r)
	if len(members) == 0 {
		return EditOp{}, newError(KindNoOpEdit, fmt.Sprintf("region %s holds no atoms", r))
	}
	SetRegion(M, members, r, Clear)
	return NewEditOp(Clear, r, members), nil
}

// Reset is the global form of ClearRegion: one Clear op per region that is
// currently non-empty, applied in AllRegions order. With every region
// already empty there is nothing to record and it fails as a no-op.
func Reset(M *Model) ([]EditOp, error) {
	var ops []EditOp
	for _, r := range AllRegions {
		op, err := ClearRegion(M, r)
		if err != nil {
			continue //only a no-op can come out of ClearRegion
		}
		ops = append(ops, op)
	}
	if len(ops) == 0 {
		return nil, newError(KindNoOpEdit, "no region holds any atoms")
	}
	return ops, nil
}
