/*
 * journal_test.go, part of qmzone.
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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditOpUndoRedo(Te *testing.T) {
	M := testModel()
	op := NewEditOp(Assign, QM1, []int{2, 1, 2})
	assert.Equal(Te, []int{1, 2}, op.Serials)
	op.Redo(M)
	assert.Equal(Te, []int{1, 2}, Members(M, QM1))
	op.Undo(M)
	assert.Empty(Te, Members(M, QM1))
	assert.Equal(Te, "Assign QM1 (2 atoms)", op.String())
}

// An action produced by a cross-region add touches the occupancy field
// twice over the same atom. Undoing it must give back the original QM
// level, which only works when the ops unwind newest first.
func TestActionCrossRegionUndo(Te *testing.T) {
	M := testModel()
	SetRegion(M, []int{5}, QM1, Assign)
	at, err := M.BySerial(5)
	require.NoError(Te, err)
	require.Equal(Te, 1.00, at.Occupancy)

	act := Action{
		NewEditOp(Clear, QM1, []int{5}),
		NewEditOp(Assign, QM2, []int{5}),
	}
	act.Redo(M)
	assert.Equal(Te, 2.00, at.Occupancy)
	assert.Empty(Te, Members(M, QM1))
	assert.Equal(Te, []int{5}, Members(M, QM2))

	act.Undo(M)
	assert.Equal(Te, 1.00, at.Occupancy)
	assert.Equal(Te, []int{5}, Members(M, QM1))
	assert.Empty(Te, Members(M, QM2))

	assert.Equal(Te, "Clear QM1 (1 atoms) + Assign QM2 (1 atoms)", act.String())
}

func TestJournal(Te *testing.T) {
	M := testModel()
	var J Journal

	apply := func(r Region, serial int) {
		act := Action{NewEditOp(Assign, r, []int{serial})}
		act.Redo(M)
		J.Record(act)
	}
	apply(QM1, 1)
	apply(QM2, 2)
	apply(Active, 3)
	assert.Equal(Te, 3, J.UndoDepth())
	assert.Equal(Te, 0, J.RedoDepth())

	//newest first
	n, err := J.Undo(M, 2)
	require.NoError(Te, err)
	assert.Equal(Te, 2, n)
	assert.Equal(Te, []int{1}, Members(M, QM1))
	assert.Empty(Te, Members(M, QM2))
	assert.Empty(Te, Members(M, Active))
	assert.Equal(Te, 1, J.UndoDepth())
	assert.Equal(Te, 2, J.RedoDepth())

	//oldest undone first
	n, err = J.Redo(M, 1)
	require.NoError(Te, err)
	assert.Equal(Te, 1, n)
	assert.Equal(Te, []int{2}, Members(M, QM2))
	assert.Empty(Te, Members(M, Active))

	//recording over an undone tail drops it
	apply(Active, 4)
	assert.Equal(Te, 3, J.UndoDepth())
	assert.Equal(Te, 0, J.RedoDepth())

	//n beyond the available depth clamps
	n, err = J.Undo(M, 10)
	require.NoError(Te, err)
	assert.Equal(Te, 3, n)
	for _, r := range AllRegions {
		assert.Empty(Te, Members(M, r))
	}
	_, err = J.Undo(M, 1)
	require.Error(Te, err)
	assert.Equal(Te, KindNoOpEdit, ErrorKind(err))
	assert.Contains(Te, err.Error(), "nothing to undo")

	n, err = J.Redo(M, 10)
	require.NoError(Te, err)
	assert.Equal(Te, 3, n)
	assert.Equal(Te, []int{1}, Members(M, QM1))
	assert.Equal(Te, []int{2}, Members(M, QM2))
	assert.Equal(Te, []int{4}, Members(M, Active))
	_, err = J.Redo(M, 1)
	require.Error(Te, err)
	assert.Equal(Te, KindNoOpEdit, ErrorKind(err))
	assert.Contains(Te, err.Error(), "nothing to redo")

	//undo defaults to a single step when n is zero or negative
	n, err = J.Undo(M, 0)
	require.NoError(Te, err)
	assert.Equal(Te, 1, n)
	assert.Empty(Te, Members(M, Active))
}
