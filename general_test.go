/*
 * general_test.go, part of qmzone.
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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

//testModel builds the structure of test/small.pdb in code: a three-residue
//peptide stretched along x, two waters and a far-away copper ion. All
//region fields start at zero.
func testModel() *Model {
	mk := func(id int, name, sym string, x, y, z float64) *Atom {
		return &Atom{Id: id, Name: name, Symbol: sym, Coord: r3.Vec{X: x, Y: y, Z: z}}
	}
	res := func(molid int, name string, atoms ...*Atom) *Residue {
		for _, at := range atoms {
			at.Molname = name
			at.Molid = molid
			at.Chain = "A"
		}
		return &Residue{Molid: molid, Name: name, Chain: "A", Atoms: atoms}
	}
	return NewModel([]*Residue{
		res(1, "ALA",
			mk(1, "N", "N", 0, 0, 0),
			mk(2, "CA", "C", 1.5, 0, 0),
			mk(3, "C", "C", 3.0, 0, 0),
			mk(4, "O", "O", 3.0, 1.2, 0),
			mk(5, "CB", "C", 1.5, 1.5, 0),
		),
		res(2, "GLY",
			mk(6, "N", "N", 4.3, 0, 0),
			mk(7, "CA", "C", 5.8, 0, 0),
			mk(8, "C", "C", 7.3, 0, 0),
			mk(9, "O", "O", 7.3, 1.2, 0),
		),
		res(3, "HIS",
			mk(10, "N", "N", 8.6, 0, 0),
			mk(11, "CA", "C", 10.1, 0, 0),
			mk(12, "C", "C", 11.6, 0, 0),
		),
		res(4, "HOH", mk(13, "O", "O", 1.5, 2.3, 0)),
		res(5, "CU", mk(14, "CU", "Cu", 20, 20, 20)),
		res(6, "HOH", mk(15, "O", "O", 3.0, 2.6, 0)),
	})
}

func TestModelLookups(Te *testing.T) {
	M := testModel()
	require.Equal(Te, 15, M.Len())
	require.Len(Te, M.Residues(), 6)
	at, err := M.BySerial(13)
	require.NoError(Te, err)
	assert.Equal(Te, "HOH", at.Molname)
	assert.Same(Te, M.Residues()[3], at.Res)
	_, err = M.BySerial(99)
	require.Error(Te, err)
	assert.Equal(Te, KindResolution, ErrorKind(err))
	assert.Equal(Te, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}, M.Universe())
}

func TestMeasurements(Te *testing.T) {
	M := testModel()
	d, err := Distance(M, 1, 2)
	require.NoError(Te, err)
	assert.InDelta(Te, 1.5, d, 1e-9)
	//N-CA-C is a straight line, C3 sees CA and O at a right angle
	a, err := Angle(M, 1, 2, 3)
	require.NoError(Te, err)
	assert.InDelta(Te, 180.0, a, 1e-6)
	a, err = Angle(M, 2, 3, 4)
	require.NoError(Te, err)
	assert.InDelta(Te, 90.0, a, 1e-6)
	//CB, CA, C and O are coplanar with CB and O on the same side
	dh, err := Dihedral(M, 5, 2, 3, 4)
	require.NoError(Te, err)
	assert.InDelta(Te, 0.0, dh, 1e-6)
	_, err = Distance(M, 1, 99)
	require.Error(Te, err)
	assert.Equal(Te, KindResolution, ErrorKind(err))
}

func TestGetStats(Te *testing.T) {
	M := testModel()
	SetRegion(M, []int{1, 2, 5}, QM1, Assign)
	SetRegion(M, []int{13}, QM2, Assign)
	SetRegion(M, []int{1, 6, 7}, Active, Assign)
	st := GetStats(M)
	require.Len(Te, st.Regions, 3)
	assert.Equal(Te, RegionCount{Region: QM1, Atoms: 3, Residues: 1}, st.Regions[0])
	assert.Equal(Te, RegionCount{Region: QM2, Atoms: 1, Residues: 1}, st.Regions[1])
	assert.Equal(Te, RegionCount{Region: Active, Atoms: 3, Residues: 2}, st.Regions[2])
	assert.Equal(Te, 15, st.TotalAtoms)
	assert.Equal(Te, 6, st.TotalResidues)

	rows, err := ResidueDetail(M, QM1)
	require.NoError(Te, err)
	require.Len(Te, rows, 1)
	assert.Equal(Te, ResidueRow{ResID: "1", Name: "ALA", Atoms: 5, Members: 3}, rows[0])

	arows, err := AtomDetail(M, Active)
	require.NoError(Te, err)
	require.Len(Te, arows, 3)
	assert.Equal(Te, 1, arows[0].Serial)
	assert.Equal(Te, 1.00, arows[0].QM) //atom 1 is also QM1
	assert.Equal(Te, 1.00, arows[0].Active)
	assert.Equal(Te, "GLY", arows[1].ResName)

	_, err = ResidueDetail(testModel(), QM2)
	require.Error(Te, err)
	assert.Equal(Te, KindEmptyResult, ErrorKind(err))
}

func TestRadiusLookup(Te *testing.T) {
	r, err := VdwRadius("CU")
	require.NoError(Te, err)
	assert.Equal(Te, 2.00, r)
	r, err = VdwRadius("fe")
	require.NoError(Te, err)
	assert.Equal(Te, 1.96, r)
	r, err = CovRadius("C")
	require.NoError(Te, err)
	assert.Equal(Te, 0.76, r)
	_, err = VdwRadius("Xq")
	require.Error(Te, err)
	assert.Equal(Te, KindMissingData, ErrorKind(err))
	assert.Contains(Te, err.Error(), "no radius found for given atom type")
}

func TestLoadRadii(Te *testing.T) {
	path := filepath.Join(Te.TempDir(), "radii.yaml")
	content := "vdw:\n  Xw: 1.23\ncov:\n  xw: 0.99\n"
	require.NoError(Te, os.WriteFile(path, []byte(content), 0o644))
	require.NoError(Te, LoadRadii(path))
	r, err := VdwRadius("XW")
	require.NoError(Te, err)
	assert.Equal(Te, 1.23, r)
	r, err = CovRadius("Xw")
	require.NoError(Te, err)
	assert.Equal(Te, 0.99, r)
}

func TestErrorDecoration(Te *testing.T) {
	_, err := Distance(testModel(), 1, 99)
	require.Error(Te, err)
	err2, ok := err.(Error)
	require.True(Te, ok)
	deco := err2.Decorate("")
	assert.Contains(Te, deco, "Distance")
}
