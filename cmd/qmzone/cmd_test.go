/*
 * cmd_test.go, part of qmzone.
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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rmera/qmzone"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = "../../test/small.pdb"

func TestSplitCommands(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", nil},
		{"single", "analyze", []string{"analyze"}},
		{"lines", "add -q id 1\nremove -q id 1\n", []string{"add -q id 1", "remove -q id 1"}},
		{"slashes", "add -q id 1/add -a id 2", []string{"add -q id 1", "add -a id 2"}},
		{"mixed", "add -q id 1/undo\n\n write -w ", []string{"add -q id 1", "undo", "write -w"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitCommands(tt.text))
		})
	}
}

func TestIsExitCommand(t *testing.T) {
	for _, in := range []string{"exit", "quit", "e", "q", " exit "} {
		assert.True(t, isExitCommand(in), in)
	}
	for _, in := range []string{"query", "exit now", ""} {
		assert.False(t, isExitCommand(in), in)
	}
}

func TestStepCount(t *testing.T) {
	n, err := stepCount(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, err = stepCount([]string{"4"})
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	_, err = stepCount([]string{"zero"})
	require.Error(t, err)
	_, err = stepCount([]string{"0"})
	require.Error(t, err)
}

func TestIsCommandName(t *testing.T) {
	root := newRootCmd(&session{})
	for _, in := range []string{"query", "analyze", "add", "remove", "write", "shell", "version", "help"} {
		assert.True(t, isCommandName(root, in), in)
	}
	assert.False(t, isCommandName(root, "structure.pdb"))
}

func TestExecLineQuery(t *testing.T) {
	s := &session{path: fixture}
	out, err := execLine(s, "query resname ala")
	require.NoError(t, err)
	assert.Contains(t, out, "ALA")
	assert.Contains(t, out, "CB")

	out, err = execLine(s, "query -r resid 2")
	require.NoError(t, err)
	assert.Contains(t, out, "GLY")

	out, err = execLine(s, "query -m 1,2")
	require.NoError(t, err)
	assert.Contains(t, out, "distance(1, 2) = 1.500 A")

	_, err = execLine(s, "query id 99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "matched no atoms")

	_, err = execLine(s, "frobnicate")
	require.Error(t, err)
}

func TestExecLineEditAndJournal(t *testing.T) {
	s := &session{path: fixture}
	out, err := execLine(s, "add -q id 4,5")
	require.NoError(t, err)
	assert.Contains(t, out, "2 atom(s) assigned to QM1")
	assert.Equal(t, []int{1, 4, 5}, qmzone.Members(s.M, qmzone.QM1))

	//promoting atom 5 to QM2 clears it from QM1 first
	_, err = execLine(s, "add -o id 5")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 4}, qmzone.Members(s.M, qmzone.QM1))
	assert.Equal(t, []int{2, 5}, qmzone.Members(s.M, qmzone.QM2))

	out, err = execLine(s, "undo")
	require.NoError(t, err)
	assert.Contains(t, out, "undid 1 edit(s)")
	assert.Equal(t, []int{1, 4, 5}, qmzone.Members(s.M, qmzone.QM1))
	assert.Equal(t, []int{2}, qmzone.Members(s.M, qmzone.QM2))

	_, err = execLine(s, "redo")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 5}, qmzone.Members(s.M, qmzone.QM2))

	//bare remove wipes every region, and is one undoable action
	_, err = execLine(s, "remove")
	require.NoError(t, err)
	for _, r := range qmzone.AllRegions {
		assert.Empty(t, qmzone.Members(s.M, r))
	}
	_, err = execLine(s, "undo")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 4}, qmzone.Members(s.M, qmzone.QM1))
	assert.Equal(t, []int{2, 5}, qmzone.Members(s.M, qmzone.QM2))
	assert.Equal(t, []int{3}, qmzone.Members(s.M, qmzone.Active))

	//a no-op edit reports as an error and records nothing, so the next
	//undo steps past it to the cross-region add
	_, err = execLine(s, "add -o id 2,5")
	require.Error(t, err)
	out, err = execLine(s, "undo")
	require.NoError(t, err)
	assert.Contains(t, out, "undid 1 edit(s)")
	assert.Equal(t, []int{1, 4, 5}, qmzone.Members(s.M, qmzone.QM1))
	assert.Equal(t, []int{2}, qmzone.Members(s.M, qmzone.QM2))

	_, err = execLine(s, "undo")
	require.NoError(t, err)
	assert.Equal(t, []int{1}, qmzone.Members(s.M, qmzone.QM1))
	_, err = execLine(s, "undo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to undo")
}

func TestExecLineAnalyze(t *testing.T) {
	s := &session{path: fixture}
	out, err := execLine(s, "analyze")
	require.NoError(t, err)
	assert.Contains(t, out, "QM1")
	assert.Contains(t, out, "TOTAL")

	out, err = execLine(s, "analyze -c")
	require.NoError(t, err)
	assert.Contains(t, out, "1 clashes:")
	assert.Contains(t, out, "CB ALA 1 - O HOH 4: 0.80 A")

	out, err = execLine(s, "analyze -q -r")
	require.NoError(t, err)
	assert.Contains(t, out, "ALA")
}

func TestRunBatch(t *testing.T) {
	dir := t.TempDir()
	outPDB := filepath.Join(dir, "marked.pdb")
	script := "add -a id 6,7/query -r resid 2\nwrite -f " + outPDB + "\n"
	scriptPath := filepath.Join(dir, "commands.txt")
	require.NoError(t, os.WriteFile(scriptPath, []byte(script), 0o644))

	s := &session{path: fixture}
	cmd := &cobra.Command{}
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	require.NoError(t, runBatch(cmd, s, scriptPath))
	assert.Contains(t, buf.String(), "2 atom(s) assigned to Active")
	assert.Contains(t, buf.String(), "GLY")

	M, err := qmzone.ReadPDB(outPDB)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 6, 7}, qmzone.Members(M, qmzone.Active))
}

func TestVersionCmd(t *testing.T) {
	cmd := newVersionCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())
	output := out.String()
	if strings.Contains(output, "version: unknown") {
		return
	}
	assert.Contains(t, output, "qmzone version")
	assert.Contains(t, output, "go version")
}
