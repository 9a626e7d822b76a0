/*
 * shell.go, part of qmzone.
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
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

const scrollbackLimit = 400

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	echoStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func newShellCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Edit the structure interactively",
		Long: `Open an interactive session on the structure. Every CLI command works
here without the file argument, and the session adds:

  undo [n]    revert the last n edits
  redo [n]    reapply the last n undone edits
  exit        leave (also quit, e, q)

A failing command prints its error and the session goes on. Edits pile
up in memory; 'write' puts them on disk.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := s.load(); err != nil {
				return err
			}
			_, err := tea.NewProgram(newShellModel(s)).Run()
			return err
		},
	}
}

type shellModel struct {
	s        *session
	input    textinput.Model
	lines    []string
	quitting bool
}

func newShellModel(s *session) shellModel {
	ti := textinput.New()
	ti.Prompt = styled("qmzone> ", promptStyle)
	ti.Placeholder = "analyze, add -q id 1-5, undo, write -w, exit"
	ti.Focus()
	banner := fmt.Sprintf("%s: %d atoms, %d residues. 'help' lists the commands.",
		s.path, s.M.Len(), len(s.M.Residues()))
	return shellModel{s: s, input: ti, lines: []string{banner}}
}

func (m shellModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m shellModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			line := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			if line == "" {
				return m, nil
			}
			m.echo(line)
			if isExitCommand(line) {
				m.quitting = true
				return m, tea.Quit
			}
			m.run(line)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *shellModel) echo(line string) {
	m.append(styled("qmzone> ", echoStyle) + line)
}

func (m *shellModel) run(line string) {
	out, err := execLine(m.s, line)
	if err != nil {
		m.append(styled(err.Error(), errorStyle))
		return
	}
	if out = strings.TrimRight(out, "\n"); out != "" {
		m.append(out)
	}
}

func (m *shellModel) append(chunk string) {
	m.lines = append(m.lines, strings.Split(chunk, "\n")...)
	if over := len(m.lines) - scrollbackLimit; over > 0 {
		m.lines = m.lines[over:]
	}
}

func (m shellModel) View() string {
	var b strings.Builder
	for _, l := range m.lines {
		b.WriteString(l)
		b.WriteString("\n")
	}
	if !m.quitting {
		b.WriteString(m.input.View())
	}
	b.WriteString("\n")
	return b.String()
}
