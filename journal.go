/*
 * journal.go, part of qmzone.
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
)

// EditOp is one atomic, invertible region mutation: region r was assigned
// to, or cleared from, exactly these atoms. It is immutable once created;
// undo and redo replay it through the unchecked mutation mode, since the
// recorded set is by construction exactly what changed.
type EditOp struct {
	Op      Op
	Region  Region
	Serials []int //sorted, deduplicated, never aliased to caller memory
}

// NewEditOp copies, deduplicates and sorts the serial set.
func NewEditOp(op Op, r Region, serials []int) EditOp {
	seen := make(map[int]bool, len(serials))
	set := make([]int, 0, len(serials))
	for _, s := range serials {
		if !seen[s] {
			seen[s] = true
			set = append(set, s)
		}
	}
	sort.Ints(set)
	return EditOp{Op: op, Region: r, Serials: set}
}

// Redo applies the op exactly as recorded.
func (E EditOp) Redo(M *Model) {
	SetRegion(M, E.Serials, E.Region, E.Op)
}

// Undo applies the inverse op over the same atoms.
func (E EditOp) Undo(M *Model) {
	SetRegion(M, E.Serials, E.Region, E.Op.inverse())
}

func (E EditOp) String() string {
	return fmt.Sprintf("%s %s (%d atoms)", E.Op, E.Region, len(E.Serials))
}

// Revertable is anything the journal can replay in both directions.
type Revertable interface {
	Undo(M *Model)
	Redo(M *Model)
}

// Action is the ordered EditOp sequence produced by one user command, for
// example the [Clear(QM2), Assign(QM1)] pair of a cross-region add. Redo
// walks it in list order, undo in reverse: both QM levels live in the
// occupancy field, so unwinding a cross-region pair front to back would
// let the inverted Assign zero out what the inverted Clear just restored.
type Action []EditOp

func (A Action) Undo(M *Model) {
	for i := len(A) - 1; i >= 0; i-- {
		A[i].Undo(M)
	}
}

func (A Action) Redo(M *Model) {
	for _, op := range A {
		op.Redo(M)
	}
}

func (A Action) String() string {
	switch len(A) {
	case 0:
		return "no-op"
	case 1:
		return A[0].String()
	}
	s := A[0].String()
	for _, op := range A[1:] {
		s += " + " + op.String()
	}
	return s
}

// Journal stacks the actions of a session. A cursor separates what is in
// effect (before it) from what has been undone (after it); recording a new
// action while actions are undone drops the undone tail, as every editor
// does. The zero value is ready to use.
type Journal struct {
	acts   []Revertable
	cursor int
}

// Record pushes the action of a just-applied command.
func (J *Journal) Record(r Revertable) {
	if J.cursor < len(J.acts) {
		J.acts = J.acts[:J.cursor]
	}
	J.acts = append(J.acts, r)
	J.cursor++
}

// UndoDepth returns how many actions can be undone right now.
func (J *Journal) UndoDepth() int { return J.cursor }

// RedoDepth returns how many undone actions can be redone right now.
func (J *Journal) RedoDepth() int { return len(J.acts) - J.cursor }

// Undo reverts up to n actions (n < 1 means 1), newest first, and returns
// how many it reverted. With nothing to undo it fails without touching the
// model.
func (J *Journal) Undo(M *Model, n int) (int, error) {
	if n < 1 {
		n = 1
	}
	if J.cursor == 0 {
		return 0, newError(KindNoOpEdit, "nothing to undo")
	}
	if n > J.cursor {
		n = J.cursor
	}
	for i := 0; i < n; i++ {
		J.cursor--
		if J.cursor < 0 {
			panic(ErrJournalBounds)
		}
		J.acts[J.cursor].Undo(M)
	}
	return n, nil
}

// Redo reapplies up to n undone actions (n < 1 means 1), oldest first, and
// returns how many it reapplied. With nothing to redo it fails without
// touching the model.
func (J *Journal) Redo(M *Model, n int) (int, error) {
	if n < 1 {
		n = 1
	}
	avail := len(J.acts) - J.cursor
	if avail == 0 {
		return 0, newError(KindNoOpEdit, "nothing to redo")
	}
	if n > avail {
		n = avail
	}
	for i := 0; i < n; i++ {
		if J.cursor >= len(J.acts) {
			panic(ErrJournalBounds)
		}
		J.acts[J.cursor].Redo(M)
		J.cursor++
	}
	return n, nil
}
