/*
 * parse.go, part of qmzone.
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

package sel

import (
	"sort"
	"strconv"
	"strings"
)

// Parse parses a full selection expression and returns the terms plus
// the conjunctions joining them; the second list is always one element
// shorter than the first. The returned error, if any, is a *ParseError.
func Parse(input string) ([]Selection, []Conjunction, error) {
	p := &parser{in: input}
	var sels []Selection
	var conjs []Conjunction
	s, err := p.term()
	if err != nil {
		return nil, nil, err
	}
	sels = append(sels, s)
	for {
		mark := p.pos
		p.ws()
		if p.eof() {
			return sels, conjs, nil
		}
		if p.pos == mark {
			//the term above ended at something that is neither
			//whitespace nor the end of the input
			return nil, nil, p.fail(expConjunction, expEOI)
		}
		c, err := p.conjunction()
		if err != nil {
			return nil, nil, err
		}
		if !p.ws() {
			return nil, nil, p.fail(expSelection)
		}
		s, err := p.term()
		if err != nil {
			return nil, nil, err
		}
		conjs = append(conjs, c)
		sels = append(sels, s)
	}
}

type parser struct {
	in  string
	pos int
}

func (p *parser) eof() bool { return p.pos >= len(p.in) }

func (p *parser) fail(expected ...string) *ParseError {
	return &ParseError{Input: p.in, Offset: p.pos, Expected: expected}
}

//ws consumes spaces and tabs, reporting whether it consumed anything.
func (p *parser) ws() bool {
	start := p.pos
	for !p.eof() && (p.in[p.pos] == ' ' || p.in[p.pos] == '\t') {
		p.pos++
	}
	return p.pos > start
}

//lit consumes s if the input continues with it, case-insensitively.
//Keywords are matched longest-first by the callers, so there is no word
//boundary check here: "notname cu" is a negated name selection.
func (p *parser) lit(s string) bool {
	if len(p.in)-p.pos < len(s) {
		return false
	}
	if !strings.EqualFold(p.in[p.pos:p.pos+len(s)], s) {
		return false
	}
	p.pos += len(s)
	return true
}

func (p *parser) term() (Selection, error) {
	invert := false
	if p.lit("!") || p.lit("not") {
		invert = true
		p.ws()
	}
	switch {
	case p.lit("ressphere"), p.lit("rs"):
		origin, radius, err := p.sphereValues()
		if err != nil {
			return nil, err
		}
		return ResSphere{Origin: origin, Radius: radius, Invert: invert}, nil
	case p.lit("resname"), p.lit("resn"):
		names, err := p.nameList()
		if err != nil {
			return nil, err
		}
		return ResnameList{Names: names, Invert: invert}, nil
	case p.lit("resid"):
		ids, err := p.numberList()
		if err != nil {
			return nil, err
		}
		return ResidList{IDs: ids, Invert: invert}, nil
	case p.lit("sphere"), p.lit("s"):
		origin, radius, err := p.sphereValues()
		if err != nil {
			return nil, err
		}
		return Sphere{Origin: origin, Radius: radius, Invert: invert}, nil
	case p.lit("name"):
		names, err := p.nameList()
		if err != nil {
			return nil, err
		}
		return NameList{Names: names, Invert: invert}, nil
	case p.lit("id"):
		ids, err := p.numberList()
		if err != nil {
			return nil, err
		}
		return IDList{IDs: ids, Invert: invert}, nil
	}
	return nil, p.fail(expSelection)
}

func (p *parser) conjunction() (Conjunction, error) {
	switch {
	case p.lit("and"), p.lit("&"):
		return And, nil
	case p.lit("or"), p.lit("|"):
		return Or, nil
	}
	return 0, p.fail(expConjunction, expEOI)
}

//unsigned consumes a run of decimal digits. It does not move p.pos on
//failure, so the error offset points at the offending character.
func (p *parser) unsigned(expected string) (int, error) {
	start := p.pos
	for !p.eof() && p.in[p.pos] >= '0' && p.in[p.pos] <= '9' {
		p.pos++
	}
	if p.pos == start {
		return 0, p.fail(expected)
	}
	n, err := strconv.Atoi(p.in[start:p.pos])
	if err != nil {
		p.pos = start
		return 0, p.fail(expected)
	}
	return n, nil
}

//numberList parses the comma-separated numbers and ranges of an id or
//resid predicate, flattens the ranges and returns the values sorted and
//deduplicated. Range bounds may come in either order.
func (p *parser) numberList() ([]int, error) {
	p.ws()
	var out []int
	for {
		lo, err := p.unsigned(expNumber)
		if err != nil {
			return nil, err
		}
		if p.lit("-") || p.lit(":") {
			hi, err := p.unsigned(expRangeEnd)
			if err != nil {
				return nil, err
			}
			if hi < lo {
				lo, hi = hi, lo
			}
			for v := lo; v <= hi; v++ {
				out = append(out, v)
			}
		} else {
			out = append(out, lo)
		}
		if !p.lit(",") {
			break
		}
	}
	sort.Ints(out)
	return dedupInts(out), nil
}

//nameList parses the comma-separated alphanumeric tokens of a name,
//resname or resn predicate, sorted and deduplicated with case preserved;
//matching against the model is case-insensitive but happens later.
func (p *parser) nameList() ([]string, error) {
	p.ws()
	var out []string
	for {
		tok := p.alphanumeric()
		if tok == "" {
			return nil, p.fail(expName)
		}
		out = append(out, tok)
		if !p.lit(",") {
			break
		}
	}
	sort.Strings(out)
	return dedupStrings(out), nil
}

func (p *parser) alphanumeric() string {
	start := p.pos
	for !p.eof() {
		c := p.in[p.pos]
		if c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' {
			p.pos++
			continue
		}
		break
	}
	return p.in[start:p.pos]
}

func (p *parser) sphereValues() (int, float64, error) {
	p.ws()
	origin, err := p.unsigned(expOrigin)
	if err != nil {
		return 0, 0, err
	}
	if !p.ws() {
		return 0, 0, p.fail(expRadius)
	}
	radius, ok := p.float()
	if !ok {
		return 0, 0, p.fail(expRadius)
	}
	return origin, radius, nil
}

//float consumes a floating point number: optional sign, digits with an
//optional fractional part, optional exponent. p.pos is unchanged when
//nothing parseable is found.
func (p *parser) float() (float64, bool) {
	start := p.pos
	i := p.pos
	if i < len(p.in) && (p.in[i] == '+' || p.in[i] == '-') {
		i++
	}
	digits := func() bool {
		got := false
		for i < len(p.in) && p.in[i] >= '0' && p.in[i] <= '9' {
			i++
			got = true
		}
		return got
	}
	whole := digits()
	frac := false
	if i < len(p.in) && p.in[i] == '.' {
		i++
		frac = digits()
	}
	if !whole && !frac {
		return 0, false
	}
	if i < len(p.in) && (p.in[i] == 'e' || p.in[i] == 'E') {
		j := i + 1
		if j < len(p.in) && (p.in[j] == '+' || p.in[j] == '-') {
			j++
		}
		k := j
		for k < len(p.in) && p.in[k] >= '0' && p.in[k] <= '9' {
			k++
		}
		if k > j {
			i = k
		}
	}
	f, err := strconv.ParseFloat(p.in[start:i], 64)
	if err != nil {
		return 0, false
	}
	p.pos = i
	return f, true
}

func dedupInts(sorted []int) []int {
	if len(sorted) < 2 {
		return sorted
	}
	out := sorted[:1]
	for _, v := range sorted[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

func dedupStrings(sorted []string) []string {
	if len(sorted) < 2 {
		return sorted
	}
	out := sorted[:1]
	for _, v := range sorted[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}
