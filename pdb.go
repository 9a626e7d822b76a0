/*
 * pdb.go, part of qmzone.
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
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"gonum.org/v1/gonum/spatial/r3"
)

//This tries to guess a chemical element symbol from a PDB atom name,
//mostly based on AMBER names. It only deals with some common bio-elements.
func symbolFromName(name string) (string, error) {
	symbol := ""
	if len(name) == 4 || name[0] == 'H' { //only Hs get 4-char names in amber
		symbol = "H"
	} else if name[0] == 'C' { //Ca is not considered here
		switch name {
		case "CU":
			symbol = "Cu"
		case "CO":
			symbol = "Co"
		case "CL":
			symbol = "Cl"
		default:
			symbol = "C"
		}
	} else if name[0] == 'N' {
		if name == "NA" {
			symbol = "Na"
		} else {
			symbol = "N"
		}
	} else if name[0] == 'O' {
		symbol = "O"
	} else if name[0] == 'P' {
		symbol = "P"
	} else if name[0] == 'S' {
		if name == "SE" {
			symbol = "Se"
		} else {
			symbol = "S"
		}
	} else if strings.HasPrefix(name, "ZN") {
		symbol = "Zn"
	} else if strings.HasPrefix(name, "FE") {
		symbol = "Fe"
	}
	if symbol == "" {
		return symbol, fmt.Errorf("couldn't guess symbol from PDB name %q", name)
	}
	return symbol, nil
}

//Parses a valid ATOM or HETATM line of a PDB file. Columns follow the
//fixed PDB format; occupancy and b-factor carry the region sentinels so
//they are parsed even when a sloppy writer left them blank (blank = 0).
func readPDBLine(line string) (*Atom, error) {
	if len(line) < 66 {
		return nil, fmt.Errorf("ATOM/HETATM line too short (%d chars)", len(line))
	}
	err := make([]error, 7) //accumulate errors to check at the end of the read line
	atom := new(Atom)
	atom.Het = strings.HasPrefix(line, "HETATM")
	atom.Id, err[0] = strconv.Atoi(strings.TrimSpace(line[6:12]))
	atom.Name = strings.TrimSpace(line[12:16])
	atom.Molname = strings.TrimSpace(line[17:20])
	atom.Chain = strings.TrimSpace(line[21:22])
	atom.Molid, err[1] = strconv.Atoi(strings.TrimSpace(line[22:26]))
	atom.ICode = strings.TrimSpace(line[26:27])
	var x, y, z float64
	x, err[2] = strconv.ParseFloat(strings.TrimSpace(line[30:38]), 64)
	y, err[3] = strconv.ParseFloat(strings.TrimSpace(line[38:46]), 64)
	z, err[4] = strconv.ParseFloat(strings.TrimSpace(line[46:54]), 64)
	atom.Coord = r3.Vec{X: x, Y: y, Z: z}
	atom.Occupancy, err[5] = parseMaybeBlank(line[54:60])
	atom.Bfactor, err[6] = parseMaybeBlank(line[60:66])
	if len(line) >= 78 {
		atom.Symbol = strings.TrimSpace(line[76:78])
	}
	//if the symbol column was absent we guess it from the atom name and
	//leave it empty on failure; only contact detection needs it, and that
	//one errors out per-atom when the radius lookup comes up empty
	if atom.Symbol == "" {
		atom.Symbol, _ = symbolFromName(atom.Name)
	}
	for i := range err {
		if err[i] != nil {
			return nil, err[i]
		}
	}
	return atom, nil
}

func parseMaybeBlank(field string) (float64, error) {
	s := strings.TrimSpace(field)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

// ReadPDBFrom parses one structure from r: every ATOM and HETATM record up
// to the first ENDMDL or END (only the first MODEL of a multi-model file
// is read). Atoms are grouped into residues by their (chain, residue
// number, insertion code); other record types are skipped.
func ReadPDBFrom(r io.Reader) (*Model, error) {
	var residues []*Residue
	var cur *Residue
	buf := bufio.NewReader(r)
	lineno := 0
	for {
		line, err := buf.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		if line != "" {
			lineno++
			trimmed := strings.TrimRight(line, "\r\n")
			switch {
			case strings.HasPrefix(trimmed, "ATOM  ") || strings.HasPrefix(trimmed, "HETATM"):
				at, err2 := readPDBLine(trimmed)
				if err2 != nil {
					return nil, fmt.Errorf("pdb line %d: %w", lineno, err2)
				}
				if cur == nil || cur.Molid != at.Molid || cur.ICode != at.ICode || cur.Chain != at.Chain {
					cur = &Residue{Molid: at.Molid, ICode: at.ICode, Name: at.Molname, Chain: at.Chain}
					residues = append(residues, cur)
				}
				cur.Atoms = append(cur.Atoms, at)
			case strings.HasPrefix(trimmed, "TER"):
				cur = nil
			case strings.HasPrefix(trimmed, "ENDMDL") || strings.HasPrefix(trimmed, "END"):
				goto done
			}
		}
		if err == io.EOF {
			break
		}
	}
done:
	if len(residues) == 0 {
		return nil, newError(KindEmptyResult, "no ATOM or HETATM records found")
	}
	return NewModel(residues), nil
}

// ReadPDB reads a structure from a PDB file, transparently gunzipping when
// the name ends in .gz.
func ReadPDB(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var r io.Reader = f
	if strings.HasSuffix(strings.ToLower(path), ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		r = gz
	}
	return ReadPDBFrom(r)
}

// WritePDBTo writes the model as ATOM/HETATM records, with TER lines at
// chain changes and a final END. Coordinates go out as %8.3f and occupancy
// and b-factor as %6.2f, so the region sentinels survive a round-trip
// bit-exact.
func WritePDBTo(w io.Writer, M *Model) error {
	if M == nil {
		panic(ErrNilModel)
	}
	fmt.Fprint(w, "REMARK     WRITTEN WITH QMZONE\n")
	chainprev := M.Atom(0).Chain //to know when the chain changes
	for i := 0; i < M.Len(); i++ {
		at := M.Atom(i)
		if at.Chain != chainprev {
			fmt.Fprintln(w, "TER")
			chainprev = at.Chain
		}
		first := "ATOM"
		if at.Het {
			first = "HETATM"
		}
		var err error
		if len(at.Name) < 4 {
			_, err = fmt.Fprintf(w, "%-6s%5d  %-3s %3s %1s%4d%1s   %8.3f%8.3f%8.3f%6.2f%6.2f          %2s  \n",
				first, at.Id, at.Name, at.Molname, at.Chain, at.Molid, icodeCol(at.ICode),
				at.Coord.X, at.Coord.Y, at.Coord.Z, at.Occupancy, at.Bfactor, at.Symbol)
		} else if len(at.Name) == 4 {
			_, err = fmt.Fprintf(w, "%-6s%5d %4s %3s %1s%4d%1s   %8.3f%8.3f%8.3f%6.2f%6.2f          %2s  \n",
				first, at.Id, at.Name, at.Molname, at.Chain, at.Molid, icodeCol(at.ICode),
				at.Coord.X, at.Coord.Y, at.Coord.Z, at.Occupancy, at.Bfactor, at.Symbol)
		} else {
			err = fmt.Errorf("can't print PDB line for atom %d: name %q too long", at.Id, at.Name)
		}
		if err != nil {
			return err
		}
	}
	fmt.Fprint(w, "END\n")
	return nil
}

func icodeCol(icode string) string {
	if icode == "" {
		return " "
	}
	return icode
}

// WritePDB writes the model to a file, gzipping when the name ends in .gz.
func WritePDB(path string, M *Model) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()
	if strings.HasSuffix(strings.ToLower(path), ".gz") {
		gz := gzip.NewWriter(out)
		if err := WritePDBTo(gz, M); err != nil {
			gz.Close()
			return err
		}
		return gz.Close()
	}
	return WritePDBTo(out, M)
}
