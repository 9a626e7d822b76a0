/*
 * pdb_test.go, part of qmzone.
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
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDBRead(Te *testing.T) {
	M, err := ReadPDB("test/small.pdb")
	require.NoError(Te, err)
	require.Equal(Te, 15, M.Len())
	require.Len(Te, M.Residues(), 6)

	at, err := M.BySerial(2)
	require.NoError(Te, err)
	assert.Equal(Te, "CA", at.Name)
	assert.Equal(Te, "ALA", at.Molname)
	assert.Equal(Te, 1, at.Molid)
	assert.Equal(Te, "A", at.Chain)
	assert.InDelta(Te, 1.5, at.Coord.X, 1e-9)
	assert.False(Te, at.Het)

	cu, err := M.BySerial(14)
	require.NoError(Te, err)
	assert.True(Te, cu.Het)
	assert.Equal(Te, "CU", cu.Symbol)
	r, err := VdwRadius(cu.Symbol)
	require.NoError(Te, err)
	assert.Equal(Te, 2.00, r)

	//the fixture carries one atom per region sentinel
	assert.Equal(Te, []int{1}, Members(M, QM1))
	assert.Equal(Te, []int{2}, Members(M, QM2))
	assert.Equal(Te, []int{3}, Members(M, Active))
}

//TestPDBRoundTrip writes the test structure back out and reads it again,
//checking that identities, coordinates and the region sentinels survive
//unchanged.
func TestPDBRoundTrip(Te *testing.T) {
	M, err := ReadPDB("test/small.pdb")
	require.NoError(Te, err)
	SetRegion(M, []int{5, 13}, QM2, Assign)
	SetRegion(M, []int{5}, Active, Assign)

	path := filepath.Join(Te.TempDir(), "out.pdb")
	require.NoError(Te, WritePDB(path, M))
	M2, err := ReadPDB(path)
	require.NoError(Te, err)

	require.Equal(Te, M.Len(), M2.Len())
	for i := 0; i < M.Len(); i++ {
		a, b := M.Atom(i), M2.Atom(i)
		assert.Equal(Te, a.Id, b.Id)
		assert.Equal(Te, a.Name, b.Name)
		assert.Equal(Te, a.Molname, b.Molname)
		assert.Equal(Te, a.Molid, b.Molid)
		assert.Equal(Te, a.Coord, b.Coord)
		assert.Equal(Te, a.Occupancy, b.Occupancy)
		assert.Equal(Te, a.Bfactor, b.Bfactor)
	}
	assert.Equal(Te, []int{2, 5, 13}, Members(M2, QM2))
	assert.Equal(Te, []int{3, 5}, Members(M2, Active))
}

func TestPDBGzip(Te *testing.T) {
	M, err := ReadPDB("test/small.pdb")
	require.NoError(Te, err)
	path := filepath.Join(Te.TempDir(), "out.pdb.gz")
	require.NoError(Te, WritePDB(path, M))
	M2, err := ReadPDB(path)
	require.NoError(Te, err)
	require.Equal(Te, M.Len(), M2.Len())
	at, err := M2.BySerial(15)
	require.NoError(Te, err)
	assert.InDelta(Te, 2.6, at.Coord.Y, 1e-9)
	assert.Equal(Te, []int{1}, Members(M2, QM1))
}

func TestPDBReadErrors(Te *testing.T) {
	_, err := ReadPDBFrom(strings.NewReader("REMARK nothing here\nEND\n"))
	require.Error(Te, err)
	assert.Equal(Te, KindEmptyResult, ErrorKind(err))

	//a mangled coordinate field must name the line
	bad := "ATOM      1  N   ALA A   1       x.000   0.000   0.000  0.00  0.00           N\n"
	_, err = ReadPDBFrom(strings.NewReader(bad))
	require.Error(Te, err)
	assert.Contains(Te, err.Error(), "line 1")
}

func TestPDBReadStopsAtEnd(Te *testing.T) {
	two := "ATOM      1  N   ALA A   1       0.000   0.000   0.000  0.00  0.00           N\n" +
		"ENDMDL\n" +
		"ATOM      2  CA  ALA A   1       1.500   0.000   0.000  0.00  0.00           C\n"
	M, err := ReadPDBFrom(strings.NewReader(two))
	require.NoError(Te, err)
	assert.Equal(Te, 1, M.Len())
}
