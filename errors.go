/*
 * errors.go, part of qmzone.
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

// Kind classifies the recoverable failure conditions produced while
// resolving, querying or editing a structure. Every error that crosses a
// package boundary in this module carries one.
type Kind int

const (
	KindOther Kind = iota
	//KindParse: the selection text could not be parsed.
	KindParse
	//KindResolution: a referenced atom or residue does not exist in the model.
	KindResolution
	//KindEmptyResult: a valid query matched nothing.
	KindEmptyResult
	//KindNoOpEdit: a checked edit would not change any atom.
	KindNoOpEdit
	//KindMissingData: an element lacks a tabulated radius.
	KindMissingData
)

// Error is the interface for errors in qmzone and its subpackages. The
// Decorate method adds and retrieves information from the error, without
// changing its type or wrapping it in something else. If passed an empty
// string it returns the current decoration slice without adding to it.
// The slice should contain the functions in the calling stack, each
// optionally followed by extra information: "FunctionName: Extra info".
type Error interface {
	Error() string
	Decorate(string) []string
	Kind() Kind
}

// CError is the concrete error type for qmzone. It implements Error.
type CError struct {
	msg  string
	kind Kind
	deco []string
}

func (err *CError) Error() string { return err.msg }

func (err *CError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

func (err *CError) Kind() Kind { return err.kind }

// newError builds a *CError of the given kind. The message should be
// readable on its own at the command boundary.
func newError(kind Kind, msg string) *CError {
	return &CError{msg: msg, kind: kind}
}

// ErrorKind returns the Kind carried by err, or KindOther if err is not
// one of ours (or is nil).
func ErrorKind(err error) Kind {
	if err == nil {
		return KindOther
	}
	if err2, ok := err.(Error); ok {
		return err2.Kind()
	}
	return KindOther
}

// errDecorate asserts that err implements Error and decorates it with the
// caller's name before returning it. Calling it with anything else is a
// programming error and panics.
func errDecorate(err error, caller string) error {
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}

// PanicMsg is the type used for the errors that cause this module to panic:
// all of them indicate a bug in the caller, never a recoverable condition.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNilModel      = PanicMsg("qmzone: nil model given")
	ErrBadRegion     = PanicMsg("qmzone: invalid Region value")
	ErrBadOp         = PanicMsg("qmzone: invalid edit operation value")
	ErrJournalBounds = PanicMsg("qmzone: journal cursor out of bounds")
)
