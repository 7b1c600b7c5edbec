// Copyright 2026 The rebound Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"time"

	"github.com/gogama/rebound/request"
)

// A Policy controls if and how retries are done in an HTTP request
// plan execution. In particular, after every attempt during the HTTP
// request plan execution, a Policy decides whether a retry should be
// done and, if so, how long the wait period should be before retrying
// the attempt.
//
// Implementations of Policy must be safe for concurrent use by multiple
// goroutines.
//
// A Policy is composed of the Decider and Waiter interfaces. While you
// can implement Policy yourself, it may be more efficient to use one
// of the built-in retry policies, DefaultPolicy or Never, or to construct
// your policy using the NewPolicy constructor using existing Decider
// and Waiter implementations.
type Policy interface {
	Decider
	Waiter
}

// DefaultPolicy is a general-purpose retry policy suitable for common
// use cases. It composes a zero-value Evaluator, which classifies
// status codes with DefaultRetryable and performs no recovery side
// effects, with DefaultSchedule for wait time calculations.
//
// Note that rebound.Client does not fall back on DefaultPolicy: a
// client with a nil retry policy builds an equivalent policy whose
// Evaluator is bound to the client's own recovery coordinator.
var DefaultPolicy Policy = NewPolicy(&Evaluator{}, DefaultSchedule)

// Never is a policy that never retries. It is useful if you want to use
// the other features of rebound.Client but do not want retries.
var Never Policy = NewPolicy(Times(0), DefaultSchedule)

type policy struct {
	decider Decider
	waiter  Waiter
}

// NewPolicy composes a Decider and a Waiter into a retry Policy.
//
// NewPolicy panics if d or w is nil.
func NewPolicy(d Decider, w Waiter) Policy {
	if d == nil {
		panic("rebound/retry: nil decider")
	}
	if w == nil {
		panic("rebound/retry: nil waiter")
	}
	return policy{decider: d, waiter: w}
}

func (p policy) Decide(e *request.Execution) bool {
	return p.decider.Decide(e)
}

func (p policy) Wait(e *request.Execution) time.Duration {
	return p.waiter.Wait(e)
}
