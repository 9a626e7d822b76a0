/*
 * root.go, part of qmzone.
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
	"os"
	"strings"

	"github.com/rmera/qmzone"
	"github.com/rmera/qmzone/prox"
	"github.com/rmera/qmzone/sel"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const rootLongDescription = `qmzone prepares PDB structures for multiscale (QM/MM) calculations: it
marks QM and active regions through the occupancy and b-factor columns,
reports on the regions already present and finds steric trouble.

Atoms are selected with a small expression language:

  id 11,12,40-45        atom serial numbers, with inclusive ranges
  resid 7:9             residue numbers, ':' and '-' both delimit ranges
  name CA,CB            atom names
  resname HIS,HEM       residue names
  sphere 2589 6.0       atoms within 6 A of atom 2589
  ressphere 2589 6.0    whole residues within 6 A of atom 2589

Any keyword may be negated with '!' or 'not'; terms chain strictly left
to right with 'and'/'or' ('&'/'|').

The structure file comes right before the subcommand:

  qmzone 1cpb.pdb add -q ressphere 2589 6.0
  qmzone 1cpb.pdb analyze -q -r
  qmzone 1cpb.pdb.gz write -f marked.pdb`

//session is the state every command works on: one structure, built lazily
//from the positional file argument, one proximity index over it and one
//edit journal. The one-shot CLI uses a fresh session per invocation; the
//shell and batch runner keep theirs across commands.
type session struct {
	path string
	M    *qmzone.Model
	ix   *prox.Index
	J    qmzone.Journal
}

func (s *session) load() error {
	if s.M != nil {
		return nil
	}
	if s.path == "" {
		return errors.New("no structure file given; usage: qmzone FILE COMMAND")
	}
	M, err := qmzone.ReadPDB(s.path)
	if err != nil {
		return err
	}
	s.M = M
	slog.Info("structure loaded", "path", s.path, "atoms", M.Len(), "residues", len(M.Residues()))
	return nil
}

//index builds the k-d tree on first use. Edits only touch the occupancy
//and b-factor columns, never coordinates, so it stays valid for the whole
//session.
func (s *session) index() *prox.Index {
	if s.ix == nil {
		s.ix = prox.NewIndex(s.M)
	}
	return s.ix
}

func needsIndex(sels []sel.Selection) bool {
	for _, s := range sels {
		switch s.(type) {
		case sel.Sphere, sel.ResSphere:
			return true
		}
	}
	return false
}

//evalSelection parses and resolves the selection words of a command line.
//A selection that matches nothing is an error here: every caller is about
//to print or edit the matched atoms.
func (s *session) evalSelection(args []string, part sel.Partial) ([]int, error) {
	if err := s.load(); err != nil {
		return nil, err
	}
	input := strings.Join(args, " ")
	sels, conjs, err := sel.Parse(input)
	if err != nil {
		return nil, err
	}
	var ix *prox.Index
	if needsIndex(sels) {
		ix = s.index()
	}
	ids, err := sel.Eval(sels, conjs, s.M, ix, part)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("the selection '%s' matched no atoms", input)
	}
	slog.Debug("selection evaluated", "input", input, "matched", len(ids))
	return ids, nil
}

func newRootCmd(s *session) *cobra.Command {
	root := &cobra.Command{
		Use:           "qmzone FILE COMMAND",
		Short:         "QM/MM region setup for PDB structures",
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			configureLogger()
			if path := viper.GetString(radiiFileKey); path != "" {
				if err := qmzone.LoadRadii(path); err != nil {
					return err
				}
				slog.Info("element radii overridden", "path", path)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if batchFile != "" {
				return runBatch(cmd, s, batchFile)
			}
			return cmd.Help()
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.config/qmzone/qmzone.yaml)")
	root.PersistentFlags().String("color", defaultColor, "colorize output: auto/always/never")
	bindFlagToConfig(root.PersistentFlags().Lookup("color"), colorKey)
	root.PersistentFlags().String("radii", "", "YAML file overriding element radii")
	bindFlagToConfig(root.PersistentFlags().Lookup("radii"), radiiFileKey)
	root.Flags().StringVar(&batchFile, "command-file", "", "run the command lines of this file against FILE")

	root.AddCommand(
		newQueryCmd(s),
		newAnalyzeCmd(s),
		newAddCmd(s),
		newRemoveCmd(s),
		newWriteCmd(s),
		newShellCmd(s),
		newVersionCmd(),
	)
	return root
}

//isCommandName reports whether arg names a subcommand of root, so that
//Execute can tell the structure file from a bare "qmzone help" call.
func isCommandName(root *cobra.Command, arg string) bool {
	if arg == "help" || arg == "completion" || arg == cobra.ShellCompRequestCmd || arg == cobra.ShellCompNoDescRequestCmd {
		return true
	}
	for _, c := range root.Commands() {
		if c.Name() == arg {
			return true
		}
		for _, alias := range c.Aliases {
			if alias == arg {
				return true
			}
		}
	}
	return false
}

// Execute peels the positional structure file off the argument list and
// hands the rest to cobra. This is called by main.main().
func Execute() {
	s := &session{}
	root := newRootCmd(s)
	args := os.Args[1:]
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") && !isCommandName(root, args[0]) {
		s.path = args[0]
		args = args[1:]
	}
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "qmzone: %v\n", err)
		os.Exit(1)
	}
}
