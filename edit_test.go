/*
 * edit_test.go, part of qmzone.
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

func TestSetRegionAndMembers(Te *testing.T) {
	M := testModel()
	SetRegion(M, []int{3, 1, 99}, QM1, Assign) //unknown serials are skipped
	assert.Equal(Te, []int{1, 3}, Members(M, QM1))
	at, err := M.BySerial(1)
	require.NoError(Te, err)
	assert.Equal(Te, 1.00, at.Occupancy)
	assert.Equal(Te, 0.00, at.Bfactor)

	SetRegion(M, []int{1}, QM2, Assign) //unchecked: silently overwrites QM1
	assert.Equal(Te, 2.00, at.Occupancy)
	assert.Equal(Te, []int{1}, Members(M, QM2))
	assert.Equal(Te, []int{3}, Members(M, QM1))

	SetRegion(M, []int{1, 3}, Active, Assign)
	assert.Equal(Te, 1.00, at.Bfactor)
	assert.Equal(Te, 2.00, at.Occupancy) //Active never touches occupancy
	SetRegion(M, []int{1}, Active, Clear)
	assert.Equal(Te, []int{3}, Members(M, Active))
}

func TestApplyCheckedAssign(Te *testing.T) {
	M := testModel()
	actual, err := ApplyChecked(M, []int{3, 1, 2}, QM1, Assign)
	require.NoError(Te, err)
	assert.Equal(Te, []int{1, 2, 3}, actual)
	assert.Equal(Te, []int{1, 2, 3}, Members(M, QM1))

	//the exact same edit again changes nothing and says so
	_, err = ApplyChecked(M, []int{1, 2, 3}, QM1, Assign)
	require.Error(Te, err)
	assert.Equal(Te, KindNoOpEdit, ErrorKind(err))
	assert.Contains(Te, err.Error(), "already in QM1")
	assert.Equal(Te, []int{1, 2, 3}, Members(M, QM1))

	//partial overlap narrows to the atoms that actually change
	actual, err = ApplyChecked(M, []int{3, 4}, QM1, Assign)
	require.NoError(Te, err)
	assert.Equal(Te, []int{4}, actual)
	assert.Equal(Te, []int{1, 2, 3, 4}, Members(M, QM1))

	//duplicated input serials count once
	actual, err = ApplyChecked(M, []int{5, 5, 4}, QM1, Assign)
	require.NoError(Te, err)
	assert.Equal(Te, []int{5}, actual)
}

func TestApplyCheckedClear(Te *testing.T) {
	M := testModel()
	_, err := ApplyChecked(M, []int{1, 2, 3, 4}, QM2, Assign)
	require.NoError(Te, err)

	actual, err := ApplyChecked(M, []int{4, 2, 10}, QM2, Clear)
	require.NoError(Te, err)
	assert.Equal(Te, []int{2, 4}, actual)
	assert.Equal(Te, []int{1, 3}, Members(M, QM2))

	_, err = ApplyChecked(M, []int{2, 4}, QM2, Clear)
	require.Error(Te, err)
	assert.Equal(Te, KindNoOpEdit, ErrorKind(err))
	assert.Contains(Te, err.Error(), "none of the selected atoms is in QM2")
}

func TestApplyCheckedResolution(Te *testing.T) {
	M := testModel()
	_, err := ApplyChecked(M, []int{1, 99, 120}, QM1, Assign)
	require.Error(Te, err)
	assert.Equal(Te, KindResolution, ErrorKind(err))
	assert.Contains(Te, err.Error(), "99, 120")
	//a failed resolution must not half-apply the edit
	assert.Empty(Te, Members(M, QM1))
}

func TestAddToQM(Te *testing.T) {
	M := testModel()
	_, err := ApplyChecked(M, []int{5}, QM1, Assign)
	require.NoError(Te, err)

	//atom 5 sits in QM1, so promoting it to QM2 must clear it there first
	ops, err := AddToQM(M, []int{5, 6}, QM2)
	require.NoError(Te, err)
	require.Len(Te, ops, 2)
	assert.Equal(Te, EditOp{Op: Clear, Region: QM1, Serials: []int{5}}, ops[0])
	assert.Equal(Te, EditOp{Op: Assign, Region: QM2, Serials: []int{5, 6}}, ops[1])
	assert.Empty(Te, Members(M, QM1))
	assert.Equal(Te, []int{5, 6}, Members(M, QM2))
	at, err := M.BySerial(5)
	require.NoError(Te, err)
	assert.Equal(Te, 2.00, at.Occupancy)

	//no overlap with the other level: a single Assign op
	ops, err = AddToQM(M, []int{7}, QM1)
	require.NoError(Te, err)
	require.Len(Te, ops, 1)
	assert.Equal(Te, EditOp{Op: Assign, Region: QM1, Serials: []int{7}}, ops[0])

	//everything already in place: the whole action is a no-op
	_, err = AddToQM(M, []int{5, 6}, QM2)
	require.Error(Te, err)
	assert.Equal(Te, KindNoOpEdit, ErrorKind(err))
}

func TestAddToActiveAndRemove(Te *testing.T) {
	M := testModel()
	ops, err := AddToActive(M, []int{2, 1})
	require.NoError(Te, err)
	require.Len(Te, ops, 1)
	assert.Equal(Te, EditOp{Op: Assign, Region: Active, Serials: []int{1, 2}}, ops[0])
	assert.Equal(Te, []int{1, 2}, Members(M, Active))

	ops, err = Remove(M, []int{1, 14}, Active)
	require.NoError(Te, err)
	require.Len(Te, ops, 1)
	assert.Equal(Te, EditOp{Op: Clear, Region: Active, Serials: []int{1}}, ops[0])
	assert.Equal(Te, []int{2}, Members(M, Active))

	_, err = Remove(M, []int{1, 14}, Active)
	require.Error(Te, err)
	assert.Equal(Te, KindNoOpEdit, ErrorKind(err))
}

func TestClearRegionAndReset(Te *testing.T) {
	M := testModel()
	_, err := ClearRegion(M, QM1)
	require.Error(Te, err)
	assert.Equal(Te, KindNoOpEdit, ErrorKind(err))

	SetRegion(M, []int{1, 2}, QM1, Assign)
	op, err := ClearRegion(M, QM1)
	require.NoError(Te, err)
	assert.Equal(Te, EditOp{Op: Clear, Region: QM1, Serials: []int{1, 2}}, op)
	assert.Empty(Te, Members(M, QM1))

	SetRegion(M, []int{1}, QM1, Assign)
	SetRegion(M, []int{2}, QM2, Assign)
	SetRegion(M, []int{3, 4}, Active, Assign)
	ops, err := Reset(M)
	require.NoError(Te, err)
	require.Len(Te, ops, 3)
	assert.Equal(Te, EditOp{Op: Clear, Region: QM1, Serials: []int{1}}, ops[0])
	assert.Equal(Te, EditOp{Op: Clear, Region: QM2, Serials: []int{2}}, ops[1])
	assert.Equal(Te, EditOp{Op: Clear, Region: Active, Serials: []int{3, 4}}, ops[2])
	for _, r := range AllRegions {
		assert.Empty(Te, Members(M, r))
	}
	at, err := M.BySerial(1)
	require.NoError(Te, err)
	assert.Equal(Te, 0.00, at.Occupancy)

	_, err = Reset(M)
	require.Error(Te, err)
	assert.Equal(Te, KindNoOpEdit, ErrorKind(err))
	assert.Contains(Te, err.Error(), "no region holds any atoms")
}
