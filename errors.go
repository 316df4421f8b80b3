/*
 * errors.go, part of cycy.
 *
 * Copyright 2024 The cycy authors
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
 */

package cycy

import (
	"errors"
	"fmt"
	"strings"
)

//Kind classifies the errors of the conversion stages.
type Kind int

const (
	KindIO       Kind = iota
	MissingInput      //a file that the stage needs is not there
	SchemaDrift       //an expected column is absent
	Malformed         //the content of a file can't be parsed
	Unsupported       //a parameter outside the supported set
)

func (K Kind) String() string {
	switch K {
	case MissingInput:
		return "missing input"
	case SchemaDrift:
		return "schema drift"
	case Malformed:
		return "malformed input"
	case Unsupported:
		return "unsupported"
	default:
		return "i/o"
	}
}

//Error is the error type returned by all the packages in cycy.
//Decorate allows to add the name of each function the error goes through
//on its way up, without wrapping it into something else.
type Error struct {
	Kind     Kind
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
	err      error
}

//NewError returns a new *Error. cause can be nil.
func NewError(kind Kind, filename, message string, critical bool, cause error, deco ...string) *Error {
	return &Error{Kind: kind, message: message, filename: filename, critical: critical, err: cause, deco: deco}
}

func (E *Error) Error() string {
	msg := E.message
	if E.filename != "" {
		msg = fmt.Sprintf("%s: %s", E.filename, msg)
	}
	if E.err != nil {
		msg = msg + ": " + E.err.Error()
	}
	if len(E.deco) > 0 {
		msg = msg + " (" + strings.Join(E.deco, " <- ") + ")"
	}
	return msg
}

//Decorate adds deco to the trail of callers and returns the trail.
//An empty string just returns the current trail.
func (E *Error) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//FileName returns the file the error is associated to, if any.
func (E *Error) FileName() string { return E.filename }

//Critical returns true if the stage that produced the error can't go on.
func (E *Error) Critical() bool { return E.critical }

func (E *Error) Unwrap() error { return E.err }

//ErrDecorate decorates err with caller if err is, or wraps, an *Error.
//Other errors are returned unchanged.
func ErrDecorate(err error, caller string) error {
	var e *Error
	if errors.As(err, &e) {
		e.Decorate(caller)
	}
	return err
}

//IsCritical reports whether err should stop the pipeline. Errors that are
//not *Error are always critical.
func IsCritical(err error) bool {
	if err == nil {
		return false
	}
	var e *Error
	if errors.As(err, &e) {
		return e.critical
	}
	return true
}

//KindOf returns the Kind of err, and false if err is not an *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return KindIO, false
}
