/*
 * edit.go, part of qmzone.
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
	"errors"
	"fmt"
	"log/slog"

	"github.com/rmera/qmzone"
	"github.com/rmera/qmzone/sel"
	"github.com/spf13/cobra"
)

//editFlags is the flag surface shared by add and remove.
type editFlags struct {
	qm1, qm2, active    bool
	sidechain, backbone bool
}

func (f *editFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&f.qm1, "qm1", "q", false, "edit the QM1 region")
	cmd.Flags().BoolVarP(&f.qm2, "qm2", "o", false, "edit the QM2 region")
	cmd.Flags().BoolVarP(&f.active, "active", "a", false, "edit the active region")
	cmd.Flags().BoolVarP(&f.sidechain, "sidechain", "d", false, "keep only sidechain atoms of matched residues")
	cmd.Flags().BoolVarP(&f.backbone, "backbone", "b", false, "keep only backbone atoms (N/CA/C/O) of matched residues")
	cmd.MarkFlagsMutuallyExclusive("qm1", "qm2", "active")
	cmd.MarkFlagsMutuallyExclusive("sidechain", "backbone")
}

func (f *editFlags) region() (qmzone.Region, bool) {
	switch {
	case f.qm1:
		return qmzone.QM1, true
	case f.qm2:
		return qmzone.QM2, true
	case f.active:
		return qmzone.Active, true
	}
	return 0, false
}

func (f *editFlags) partial() sel.Partial {
	switch {
	case f.sidechain:
		return sel.Sidechain
	case f.backbone:
		return sel.Backbone
	}
	return sel.Whole
}

func newAddCmd(s *session) *cobra.Command {
	var flags editFlags
	cmd := &cobra.Command{
		Use:   "add (-q|-o|-a) [flags] SELECTION...",
		Short: "Assign the matched atoms to a region",
		Long: `Evaluate the selection and assign every matched atom to the chosen
region. An atom assigned to one QM level leaves the other one first; no
atom ever carries both. Assigning atoms that are all already in place is
reported as an error and changes nothing.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, ok := flags.region()
			if !ok {
				return errors.New("add needs a region: -q (QM1), -o (QM2) or -a (active)")
			}
			out, err := doAdd(s, r, flags.partial(), args)
			if err != nil {
				return err
			}
			cmd.Println(out)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newRemoveCmd(s *session) *cobra.Command {
	var flags editFlags
	cmd := &cobra.Command{
		Use:   "remove [(-q|-o|-a)] [flags] [SELECTION...]",
		Short: "Clear matched atoms from a region, or reset everything",
		Long: `With a region and a selection, clear the matched atoms from that
region. With a region alone, empty the region. With neither, wipe every
region of the structure. Clearing atoms that are not in the region is
reported as an error and changes nothing.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := doRemove(s, &flags, args)
			if err != nil {
				return err
			}
			cmd.Println(out)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func doAdd(s *session, r qmzone.Region, part sel.Partial, args []string) (string, error) {
	ids, err := s.evalSelection(args, part)
	if err != nil {
		return "", err
	}
	var ops []qmzone.EditOp
	switch r {
	case qmzone.QM1, qmzone.QM2:
		ops, err = qmzone.AddToQM(s.M, ids, r)
	case qmzone.Active:
		ops, err = qmzone.AddToActive(s.M, ids)
	}
	if err != nil {
		return "", err
	}
	s.J.Record(qmzone.Action(ops))
	assigned := ops[len(ops)-1]
	slog.Info("region edit applied", "op", assigned.String())
	return fmt.Sprintf("%d atom(s) assigned to %s", len(assigned.Serials), r), nil
}

func doRemove(s *session, flags *editFlags, args []string) (string, error) {
	r, hasRegion := flags.region()
	if !hasRegion && len(args) > 0 {
		return "", errors.New("remove needs a region flag unless resetting everything")
	}
	if err := s.load(); err != nil {
		return "", err
	}
	if !hasRegion {
		ops, err := qmzone.Reset(s.M)
		if err != nil {
			return "", err
		}
		s.J.Record(qmzone.Action(ops))
		slog.Info("all regions reset", "ops", len(ops))
		return "all regions cleared", nil
	}
	if len(args) == 0 {
		op, err := qmzone.ClearRegion(s.M, r)
		if err != nil {
			return "", err
		}
		s.J.Record(qmzone.Action{op})
		slog.Info("region cleared", "op", op.String())
		return fmt.Sprintf("%d atom(s) cleared from %s", len(op.Serials), r), nil
	}
	ids, err := s.evalSelection(args, flags.partial())
	if err != nil {
		return "", err
	}
	ops, err := qmzone.Remove(s.M, ids, r)
	if err != nil {
		return "", err
	}
	s.J.Record(qmzone.Action(ops))
	slog.Info("region edit applied", "op", ops[0].String())
	return fmt.Sprintf("%d atom(s) cleared from %s", len(ops[0].Serials), r), nil
}
