/*
 * atomicdata.go, part of qmzone.
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
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//A map for assigning covalent radii to elements
//Values from Cordero et al., 2008 (DOI:10.1039/B801115J)
//Note that just common "bio-elements" are present
var symbolCovrad = map[string]float64{
	"H":  0.31,
	"C":  0.76, //the sp3 radius
	"O":  0.66,
	"N":  0.71,
	"P":  1.07,
	"S":  1.05,
	"Se": 1.2,
	"K":  2.03,
	"Ca": 1.76,
	"Mg": 1.41,
	"Cl": 1.02,
	"Na": 1.66,
	"Cu": 1.32,
	"Zn": 1.22,
	"Co": 1.5,  // hs
	"Fe": 1.52, //hs
	"Mn": 1.61, //hs
	"Cr": 1.39,
	"Si": 1.11,
	"Be": 0.96,
	"F":  0.57,
	"Br": 1.2,
	"I":  1.39,
}

//A map for assigning van der Waals radii to elements
//Values from 10.1021/j100785a001 and 10.1021/jp8111556
//metal radii from 10.1023/A:1011625728803
//Note that just common "bio-elements" are present
var symbolVdwrad = map[string]float64{
	"H":  1.10,
	"C":  1.70, //the sp3 radius
	"O":  1.52,
	"N":  1.55,
	"P":  1.80,
	"S":  1.80,
	"Se": 1.90,
	"K":  2.75,
	"Ca": 2.31,
	"Mg": 1.73,
	"Cl": 1.75,
	"Na": 2.27,
	"Cu": 2.00,
	"Zn": 2.02,
	"Co": 1.95,
	"Fe": 1.96,
	"Mn": 1.96,
	"Cr": 1.97,
	"Si": 2.10,
	"Be": 1.53,
	"F":  1.47,
	"Br": 1.83,
	"I":  1.98,
}

// VdwRadius returns the tabulated van der Waals radius for the element
// symbol given (case normalized, so "FE" and "fe" both work). Contact
// detection uses these values as per-atom thresholds, so an element
// missing from the table is an error, not a zero.
func VdwRadius(symbol string) (float64, error) {
	r, ok := symbolVdwrad[normalizeSymbol(symbol)]
	if !ok {
		return 0, newError(KindMissingData, fmt.Sprintf("no radius found for given atom type: %s", symbol))
	}
	return r, nil
}

// CovRadius returns the tabulated covalent radius for the element symbol
// given, with the same normalization and error behavior as VdwRadius.
func CovRadius(symbol string) (float64, error) {
	r, ok := symbolCovrad[normalizeSymbol(symbol)]
	if !ok {
		return 0, newError(KindMissingData, fmt.Sprintf("no covalent radius found for given atom type: %s", symbol))
	}
	return r, nil
}

//normalizeSymbol turns "FE", "fe" and "Fe" into "Fe".
func normalizeSymbol(symbol string) string {
	s := strings.TrimSpace(symbol)
	if s == "" {
		return s
	}
	s = strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
	return s
}

//radiiFile is the shape of the optional user override file.
type radiiFile struct {
	Vdw map[string]float64 `yaml:"vdw"`
	Cov map[string]float64 `yaml:"cov"`
}

// LoadRadii overlays the built-in radius tables with values from a YAML
// file of the form:
//
//	vdw:
//	  C: 1.75
//	cov:
//	  FE: 1.32
//
// It is meant to be called once at startup, before any lookup. The tables
// are read-only afterwards.
func LoadRadii(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var rf radiiFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return fmt.Errorf("radii file %s: %w", path, err)
	}
	for k, v := range rf.Vdw {
		symbolVdwrad[normalizeSymbol(k)] = v
	}
	for k, v := range rf.Cov {
		symbolCovrad[normalizeSymbol(k)] = v
	}
	return nil
}
