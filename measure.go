/*
 * measure.go, part of qmzone.
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
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

//appzero is used to correct floating point errors. Everything equal or
//less than this is considered zero.
const appzero float64 = 0.0000001

const rad2deg = 180 / math.Pi

//coords resolves the given serials to coordinates, in order.
func coords(M *Model, serials ...int) ([]r3.Vec, error) {
	vs := make([]r3.Vec, 0, len(serials))
	for _, s := range serials {
		at, err := M.BySerial(s)
		if err != nil {
			return nil, err
		}
		vs = append(vs, at.Coord)
	}
	return vs, nil
}

// Distance returns the distance in Å between two atoms given by serial
// number.
func Distance(M *Model, a, b int) (float64, error) {
	v, err := coords(M, a, b)
	if err != nil {
		return 0, errDecorate(err, "Distance")
	}
	return r3.Norm(r3.Sub(v[1], v[0])), nil
}

//vecAngle calculates the angle in radians between two vectors, clamping
//the acos argument against floating point drift.
func vecAngle(v1, v2 r3.Vec) float64 {
	argument := r3.Dot(v1, v2) / (r3.Norm(v1) * r3.Norm(v2))
	if math.Abs(argument-1) <= appzero {
		argument = 1
	} else if math.Abs(argument+1) <= appzero {
		argument = -1
	}
	angle := math.Acos(argument)
	if math.Abs(angle) <= appzero {
		return 0.00
	}
	return angle
}

// Angle returns the a-b-c angle in degrees, vertex at b, atoms given by
// serial number.
func Angle(M *Model, a, b, c int) (float64, error) {
	v, err := coords(M, a, b, c)
	if err != nil {
		return 0, errDecorate(err, "Angle")
	}
	return vecAngle(r3.Sub(v[0], v[1]), r3.Sub(v[2], v[1])) * rad2deg, nil
}

// Dihedral returns the dihedral in degrees between the plane through
// a, b, c and the plane through b, c, d, atoms given by serial number.
func Dihedral(M *Model, a, b, c, d int) (float64, error) {
	v, err := coords(M, a, b, c, d)
	if err != nil {
		return 0, errDecorate(err, "Dihedral")
	}
	bma := r3.Sub(v[1], v[0])
	cmb := r3.Sub(v[2], v[1])
	dmc := r3.Sub(v[3], v[2])
	first := r3.Dot(r3.Scale(r3.Norm(cmb), bma), r3.Cross(cmb, dmc))
	second := r3.Dot(r3.Cross(bma, cmb), r3.Cross(cmb, dmc))
	return math.Atan2(first, second) * rad2deg, nil
}
