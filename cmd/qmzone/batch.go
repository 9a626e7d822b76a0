/*
 * batch.go, part of qmzone.
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
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

//batchFile holds the --command-file flag of the root command.
var batchFile string

//splitCommands turns the text of a command file into individual command
//lines: one per line, and '/' chains several on one line. Blank pieces
//are skipped.
func splitCommands(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		for _, piece := range strings.Split(line, "/") {
			if piece = strings.TrimSpace(piece); piece != "" {
				out = append(out, piece)
			}
		}
	}
	return out
}

func isExitCommand(line string) bool {
	switch strings.TrimSpace(line) {
	case "exit", "quit", "e", "q":
		return true
	}
	return false
}

//runBatch feeds the command lines of path to one session, so the edits
//accumulate on a single model and a single journal. A failing line stops
//the run; a mutating line either applies whole or not at all, so stopping
//leaves nothing half-done.
func runBatch(cmd *cobra.Command, s *session, path string) error {
	text, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	for _, line := range splitCommands(string(text)) {
		if isExitCommand(line) {
			return nil
		}
		out, err := execLine(s, line)
		if err != nil {
			return fmt.Errorf("command '%s': %w", line, err)
		}
		if out != "" {
			cmd.Print(out)
			if !strings.HasSuffix(out, "\n") {
				cmd.Println()
			}
		}
	}
	return nil
}

//execLine runs one shell/batch command line against the session. It
//builds a fresh command tree per line, so flag state never leaks from one
//line to the next, and the flag surface stays exactly the CLI's.
func execLine(s *session, line string) (string, error) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return "", nil
	}
	root := &cobra.Command{
		Use:           "qmzone",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newQueryCmd(s),
		newAnalyzeCmd(s),
		newAddCmd(s),
		newRemoveCmd(s),
		newWriteCmd(s),
		newUndoCmd(s),
		newRedoCmd(s),
		newVersionCmd(),
	)
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

//stepCount reads the optional [n] argument of undo and redo.
func stepCount(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("'%s' is not a step count", args[0])
	}
	return n, nil
}

func newUndoCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "undo [n]",
		Short: "Revert the last n edits (default 1)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := stepCount(args)
			if err != nil {
				return err
			}
			if err := s.load(); err != nil {
				return err
			}
			done, err := s.J.Undo(s.M, n)
			if err != nil {
				return err
			}
			cmd.Printf("undid %d edit(s), %d left\n", done, s.J.UndoDepth())
			return nil
		},
	}
}

func newRedoCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "redo [n]",
		Short: "Reapply the last n undone edits (default 1)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := stepCount(args)
			if err != nil {
				return err
			}
			if err := s.load(); err != nil {
				return err
			}
			done, err := s.J.Redo(s.M, n)
			if err != nil {
				return err
			}
			cmd.Printf("redid %d edit(s), %d more undone\n", done, s.J.RedoDepth())
			return nil
		},
	}
}
