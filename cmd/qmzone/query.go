/*
 * query.go, part of qmzone.
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

package main

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/rmera/qmzone"
	"github.com/rmera/qmzone/sel"
	"github.com/spf13/cobra"
)

func newQueryCmd(s *session) *cobra.Command {
	var atoms, residues bool
	var measure string
	cmd := &cobra.Command{
		Use:   "query [flags] SELECTION...",
		Short: "List the atoms or residues a selection matches",
		Long: `Evaluate a selection against the structure and print what it matched,
as atoms (default) or as residues. With --measure, skip the selection and
print the distance, angle or dihedral over the given 2, 3 or 4 atom
serials instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var out string
			var err error
			switch {
			case measure != "":
				out, err = doMeasure(s, measure)
			case residues:
				out, err = doQueryResidues(s, args)
			default:
				out, err = doQueryAtoms(s, args)
			}
			if err != nil {
				return err
			}
			cmd.Print(out)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&atoms, "atoms", "t", false, "list matched atoms (the default)")
	cmd.Flags().BoolVarP(&residues, "residues", "r", false, "list matched residues instead of atoms")
	cmd.Flags().StringVarP(&measure, "measure", "m", "", "measure over 2-4 comma-separated atom serials")
	cmd.MarkFlagsMutuallyExclusive("atoms", "residues")
	return cmd
}

func doQueryAtoms(s *session, args []string) (string, error) {
	ids, err := s.evalSelection(args, sel.Whole)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Serial", "Name", "Residue", "Resname", "Chain"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	for _, id := range ids {
		at, err := s.M.BySerial(id)
		if err != nil {
			return "", err
		}
		table.Append([]string{
			strconv.Itoa(at.Id), at.Name, at.Res.DisplayID(), at.Molname, at.Chain,
		})
	}
	table.SetFooter([]string{"Atoms", strconv.Itoa(len(ids)), "", "", ""})
	table.Render()
	return buf.String(), nil
}

func doQueryResidues(s *session, args []string) (string, error) {
	ids, err := s.evalSelection(args, sel.Whole)
	if err != nil {
		return "", err
	}
	matched := make(map[int]bool, len(ids))
	for _, id := range ids {
		matched[id] = true
	}
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Residue", "Name", "Chain", "Matched", "Atoms"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	count := 0
	for _, res := range s.M.Residues() {
		hits := 0
		for _, at := range res.Atoms {
			if matched[at.Id] {
				hits++
			}
		}
		if hits == 0 {
			continue
		}
		count++
		table.Append([]string{
			res.DisplayID(), res.Name, res.Chain,
			strconv.Itoa(hits), strconv.Itoa(len(res.Atoms)),
		})
	}
	table.SetFooter([]string{"Residues", strconv.Itoa(count), "", "", ""})
	table.Render()
	return buf.String(), nil
}

//doMeasure resolves the --measure argument: 2 serials give a distance,
//3 an angle, 4 a dihedral.
func doMeasure(s *session, arg string) (string, error) {
	if err := s.load(); err != nil {
		return "", err
	}
	fields := strings.Split(arg, ",")
	serials := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return "", fmt.Errorf("--measure wants comma-separated atom serials, got '%s'", arg)
		}
		serials = append(serials, n)
	}
	switch len(serials) {
	case 2:
		d, err := qmzone.Distance(s.M, serials[0], serials[1])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("distance(%d, %d) = %.3f A\n", serials[0], serials[1], d), nil
	case 3:
		a, err := qmzone.Angle(s.M, serials[0], serials[1], serials[2])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("angle(%d, %d, %d) = %.2f deg\n", serials[0], serials[1], serials[2], a), nil
	case 4:
		dh, err := qmzone.Dihedral(s.M, serials[0], serials[1], serials[2], serials[3])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("dihedral(%d, %d, %d, %d) = %.2f deg\n", serials[0], serials[1], serials[2], serials[3], dh), nil
	}
	return "", errors.New("--measure wants 2 (distance), 3 (angle) or 4 (dihedral) atom serials")
}
