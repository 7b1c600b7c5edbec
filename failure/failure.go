// Copyright 2026 The rebound Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package failure

import (
	"context"
	"errors"
)

// A Class is the failure classification of a concluded HTTP request
// attempt, as reported by function Classify().
//
// The class None means the attempt did not fail from the perspective
// of retry coordination, or in other words that there is nothing to
// retry.
//
// All other classes indicate a failed attempt. Each class is subject
// to its own retry rule, so classification is the first step of every
// retry decision.
type Class int

const (
	// None indicates a successful attempt: a response was received and
	// its status code is below 400.
	None Class = iota
	// Response indicates the attempt produced an HTTP response whose
	// status code is 400 or higher. Whether a Response failure is worth
	// retrying depends on the specific status code.
	Response
	// Transport indicates the attempt produced no usable HTTP response:
	// the connection failed, was refused or reset, timed out, or broke
	// while the response body was being read. Loss of connectivity
	// surfaces as a Transport failure.
	Transport
	// Cancelled indicates the attempt error was caused by cancellation
	// of the request's own context. A Cancelled failure is never worth
	// retrying, since the caller has walked away from the request.
	Cancelled
)

var classNames = []string{
	"None",
	"Response",
	"Transport",
	"Cancelled",
}

// Classify returns the failure class of a concluded attempt, described
// by the attempt's HTTP response status code and its error. A nil
// error with a status code below 400 produces None. Pass a zero status
// code if the attempt produced no response.
//
// In assessing cancellation, Classify looks at wrapped cause errors
// contained within err, not just err itself. A deadline-exceeded cause
// is classified Transport, not Cancelled: an attempt that timed out
// has some prospect of succeeding on retry, while cancellation is
// final.
func Classify(statusCode int, err error) Class {
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return Cancelled
		}
		return Transport
	}
	if statusCode >= 400 {
		return Response
	}
	return None
}

// IsTimeout indicates whether err was caused by a client-side timeout.
// It returns true if the error or any of its wrapped causes has a
// Timeout() function that reports true.
//
// IsTimeout never checks if an error has a Temporary() function that
// returns true, as the semantics of Temporary() aren't entirely clear.
func IsTimeout(err error) bool {
	var timeout hasTimeout
	return errors.As(err, &timeout) && timeout.Timeout()
}

// Name returns the name of the failure class.
func (c Class) Name() string {
	return classNames[int(c)]
}

// String returns the name of the failure class.
func (c Class) String() string {
	return c.Name()
}

type hasTimeout interface {
	Timeout() bool
}
