/*
 * analyze.go, part of qmzone.
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
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/rmera/qmzone"
	"github.com/rmera/qmzone/prox"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	severeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	headingStyle = lipgloss.NewStyle().Bold(true)
)

//analyzeOptions mirrors the analyze flag surface so the shell dispatcher
//can drive the same code path.
type analyzeOptions struct {
	region   qmzone.Region //0: no detail table
	residues bool
	mode     prox.Mode //0: no pair report
	plotFile string
}

func newAnalyzeCmd(s *session) *cobra.Command {
	var qm1, qm2, active, atoms, residues, clashes, contacts bool
	var plotFile string
	cmd := &cobra.Command{
		Use:   "analyze [flags]",
		Short: "Report regions, clashes and contacts",
		Long: `Print the atom and residue counts of every region. A region flag adds a
detail table of that region, per atom (-t, the default) or per residue
(-r). The pair reports scan the whole structure: --clashes lists atom
pairs of different residues closer than 1.0 A, --contacts pairs closer
than the van der Waals radius of the later atom. Bonded neighbors across
a peptide bond are skipped. --plot writes a histogram of the reported
pair distances as a PNG file.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := analyzeOptions{residues: residues, plotFile: plotFile}
			switch {
			case qm1:
				opts.region = qmzone.QM1
			case qm2:
				opts.region = qmzone.QM2
			case active:
				opts.region = qmzone.Active
			}
			switch {
			case clashes:
				opts.mode = prox.Clashes
			case contacts:
				opts.mode = prox.Contacts
			}
			out, err := doAnalyze(s, opts)
			if err != nil {
				return err
			}
			cmd.Print(out)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&qm1, "qm1", "q", false, "detail table for the QM1 region")
	cmd.Flags().BoolVarP(&qm2, "qm2", "o", false, "detail table for the QM2 region")
	cmd.Flags().BoolVarP(&active, "active", "a", false, "detail table for the active region")
	cmd.Flags().BoolVarP(&atoms, "atoms", "t", false, "per-atom detail (the default)")
	cmd.Flags().BoolVarP(&residues, "residues", "r", false, "per-residue detail")
	cmd.Flags().BoolVarP(&clashes, "clashes", "c", false, "report clashing atom pairs")
	cmd.Flags().BoolVarP(&contacts, "contacts", "n", false, "report atom pairs in vdW contact")
	cmd.Flags().StringVar(&plotFile, "plot", "", "write a distance histogram PNG of the pair report")
	cmd.MarkFlagsMutuallyExclusive("qm1", "qm2", "active")
	cmd.MarkFlagsMutuallyExclusive("atoms", "residues")
	cmd.MarkFlagsMutuallyExclusive("clashes", "contacts")
	return cmd
}

func doAnalyze(s *session, opts analyzeOptions) (string, error) {
	if err := s.load(); err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(renderSummary(qmzone.GetStats(s.M)))
	if opts.region != 0 {
		detail, err := renderDetail(s.M, opts.region, opts.residues)
		if err != nil {
			return "", err
		}
		b.WriteString("\n")
		b.WriteString(detail)
	}
	if opts.mode != 0 {
		report, err := renderPairs(s, opts.mode, opts.plotFile)
		if err != nil {
			return "", err
		}
		b.WriteString("\n")
		b.WriteString(report)
	}
	return b.String(), nil
}

func renderSummary(st *qmzone.Stats) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Region", "Atoms", "Residues"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	for _, rc := range st.Regions {
		table.Append([]string{rc.Region.String(), strconv.Itoa(rc.Atoms), strconv.Itoa(rc.Residues)})
	}
	table.SetFooter([]string{"Total", strconv.Itoa(st.TotalAtoms), strconv.Itoa(st.TotalResidues)})
	table.Render()
	return buf.String()
}

func renderDetail(M *qmzone.Model, r qmzone.Region, residues bool) (string, error) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	if residues {
		rows, err := qmzone.ResidueDetail(M, r)
		if err != nil {
			return "", err
		}
		table.SetHeader([]string{"Residue", "Name", "Atoms", "In " + r.String()})
		for _, row := range rows {
			table.Append([]string{row.ResID, row.Name, strconv.Itoa(row.Atoms), strconv.Itoa(row.Members)})
		}
	} else {
		rows, err := qmzone.AtomDetail(M, r)
		if err != nil {
			return "", err
		}
		table.SetHeader([]string{"Serial", "Name", "Residue", "Resname", "QM", "Active"})
		for _, row := range rows {
			table.Append([]string{
				strconv.Itoa(row.Serial), row.Name, row.ResID, row.ResName,
				fmt.Sprintf("%.2f", row.QM), fmt.Sprintf("%.2f", row.Active),
			})
		}
	}
	table.Render()
	return styled(r.String()+" region\n", headingStyle) + buf.String(), nil
}

//renderPairs prints one line per reported pair, the worst offenders
//colored by how deep the two atoms sit in each other.
func renderPairs(s *session, mode prox.Mode, plotFile string) (string, error) {
	rows, err := s.index().FindContacts(mode)
	if err != nil {
		return "", err
	}
	slog.Info("pair scan done", "mode", mode.String(), "pairs", len(rows))
	var b strings.Builder
	fmt.Fprintf(&b, "%d %s:\n", len(rows), mode)
	for _, c := range rows {
		line := c.String()
		switch {
		case c.Distance <= 0.5:
			line = styled(line, severeStyle)
		case c.Distance <= 0.75:
			line = styled(line, warningStyle)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if plotFile != "" {
		if err := plotDistances(rows, mode, plotFile); err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "distance histogram written to %s\n", plotFile)
	}
	return b.String(), nil
}

func styled(text string, style lipgloss.Style) string {
	if !colorEnabled() {
		return text
	}
	return style.Render(text)
}

func plotDistances(rows []prox.Contact, mode prox.Mode, file string) error {
	vals := make(plotter.Values, 0, len(rows))
	for _, c := range rows {
		vals = append(vals, c.Distance)
	}
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s distance distribution", mode)
	p.X.Label.Text = "distance (A)"
	p.Y.Label.Text = "pairs"
	h, err := plotter.NewHist(vals, 16)
	if err != nil {
		return err
	}
	p.Add(h)
	return p.Save(12*vg.Centimeter, 8*vg.Centimeter, file)
}
