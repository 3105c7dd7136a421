// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// RuntimeError - state could not be read, carries the underlying cause
type RuntimeError struct {
	Message string
	Err     error
}

// NewRuntimeError - wrap a cause with a diagnostic message
func NewRuntimeError(message string, err error) *RuntimeError {
	return &RuntimeError{
		Message: message,
		Err:     err,
	}
}

func (e *RuntimeError) Error() string {
	if nil == e.Err {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

// Unwrap - the underlying cause
func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// IsErrRuntime - true for a runtime error
func IsErrRuntime(e error) bool { _, ok := e.(*RuntimeError); return ok }
