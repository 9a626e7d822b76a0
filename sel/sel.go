/*
 * sel.go, part of qmzone.
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

//Package sel implements the atom selection mini-language:
//
//	expr       := term (ws conjunction ws term)*
//	conjunction:= "and" | "&" | "or" | "|"
//	term       := negation? predicate
//	negation   := ("!" | "not") ws?
//	predicate  := id_pred | name_pred | sphere_pred
//	id_pred    := ("id"|"resid") ws? number_list
//	name_pred  := ("name"|"resname"|"resn") ws? name_list
//	sphere_pred:= ("sphere"|"s"|"ressphere"|"rs") ws? unsigned_int ws+ float
//	number_list:= range_or_num ("," range_or_num)*
//	range_or_num:= unsigned_int (("-"|":") unsigned_int)?
//	name_list  := alphanumeric_token ("," alphanumeric_token)*
//
//Keywords are case-insensitive. Ranges are inclusive on both ends and may
//be given in either direction; lists come out deduplicated and sorted.
//There is no operator precedence: conjunctions combine strictly left to
//right, so "a and b or c" means "(a and b) or c".
package sel

import (
	"fmt"
	"strings"

	"github.com/rmera/qmzone"
)

// Conjunction joins two consecutive terms of an expression.
type Conjunction int

const (
	And Conjunction = iota + 1
	Or
)

func (c Conjunction) String() string {
	switch c {
	case And:
		return "and"
	case Or:
		return "or"
	default:
		panic("sel: unknown conjunction")
	}
}

// Selection is one predicate term of a parsed expression. The concrete
// types form a closed set; consumers switch over them.
type Selection interface {
	//Inverted reports whether the term carries a negation prefix.
	Inverted() bool
	selection()
}

// IDList selects atoms by serial number.
type IDList struct {
	IDs    []int
	Invert bool
}

// NameList selects atoms by name, case-insensitively.
type NameList struct {
	Names  []string
	Invert bool
}

// ResidList selects all atoms of the residues with the given serial
// numbers, whatever their insertion codes.
type ResidList struct {
	IDs    []int
	Invert bool
}

// ResnameList selects all atoms of the residues with the given names,
// case-insensitively.
type ResnameList struct {
	Names  []string
	Invert bool
}

// Sphere selects the atoms within Radius of the atom with serial number
// Origin, the origin itself excluded.
type Sphere struct {
	Origin int
	Radius float64
	Invert bool
}

// ResSphere selects the full residues touched by the sphere, the
// origin's own residue excluded.
type ResSphere struct {
	Origin int
	Radius float64
	Invert bool
}

func (s IDList) Inverted() bool      { return s.Invert }
func (s NameList) Inverted() bool    { return s.Invert }
func (s ResidList) Inverted() bool   { return s.Invert }
func (s ResnameList) Inverted() bool { return s.Invert }
func (s Sphere) Inverted() bool      { return s.Invert }
func (s ResSphere) Inverted() bool   { return s.Invert }

func (s IDList) selection()      {}
func (s NameList) selection()    {}
func (s ResidList) selection()   {}
func (s ResnameList) selection() {}
func (s Sphere) selection()      {}
func (s ResSphere) selection()   {}

//The expected-token descriptions a ParseError can carry.
const (
	expEOI         = "the end of input"
	expSelection   = "selection keyword: 'id/name/resid/resname/sphere/ressphere'"
	expConjunction = "conjunction: 'and'/'or'"
	expName        = "name of atom or residue"
	expNumber      = "number or a range of numbers, e.g. '23' or '4-8'"
	expRangeEnd    = "number for end of range"
	expOrigin      = "origin atom ID"
	expRadius      = "sphere radius"
)

// ParseError reports where parsing stopped and what would have been
// accepted there. Offset is a byte offset into Input. It implements
// qmzone.Error with kind qmzone.KindParse.
type ParseError struct {
	Input    string
	Offset   int
	Expected []string
	deco     []string
}

//Error renders the offending input with the failure offset marked,
//followed by the accepted alternatives.
func (err *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("error while parsing selection input:\n\n")
	b.WriteString(err.Input)
	b.WriteString("\n")
	b.WriteString(strings.Repeat(" ", err.Offset))
	b.WriteString("^---\n")
	fmt.Fprintf(&b, "expected: %s", strings.Join(err.Expected, " OR\n"))
	return b.String()
}

func (err *ParseError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

func (err *ParseError) Kind() qmzone.Kind { return qmzone.KindParse }
