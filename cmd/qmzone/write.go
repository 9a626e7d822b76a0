/*
 * write.go, part of qmzone.
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
	"fmt"
	"log/slog"

	"github.com/rmera/qmzone"
	"github.com/spf13/cobra"
)

func newWriteCmd(s *session) *cobra.Command {
	var file string
	var overwrite bool
	cmd := &cobra.Command{
		Use:   "write [-f FILE | -w]",
		Short: "Write the structure with its current region marks",
		Long: `Write the structure, region sentinels included, to standard output, to
the file given with -f, or with -w back over the input file. A name
ending in .gz comes out gzip-compressed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := s.load(); err != nil {
				return err
			}
			if !overwrite && file == "" {
				return qmzone.WritePDBTo(cmd.OutOrStdout(), s.M)
			}
			out, err := doWrite(s, file, overwrite)
			if err != nil {
				return err
			}
			cmd.Println(out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "write to this file instead of standard output")
	cmd.Flags().BoolVarP(&overwrite, "overwrite", "w", false, "write back over the input file")
	cmd.MarkFlagsMutuallyExclusive("file", "overwrite")
	return cmd
}

func doWrite(s *session, file string, overwrite bool) (string, error) {
	if err := s.load(); err != nil {
		return "", err
	}
	target := file
	if overwrite {
		target = s.path
	}
	if target == "" {
		return "", fmt.Errorf("write needs -f FILE or -w in this mode")
	}
	if err := qmzone.WritePDB(target, s.M); err != nil {
		return "", err
	}
	slog.Info("structure written", "path", target, "atoms", s.M.Len())
	return fmt.Sprintf("structure written to %s", target), nil
}
