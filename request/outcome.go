// Copyright 2026 The rebound Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

// An Outcome labels how a plan execution concluded. It distinguishes
// plain success from success that needed retries, and failure that was
// never retried from failure that survived, or interrupted, the retry
// path.
//
// The Outcome field of an Execution holds OutcomePending until the
// execution ends, so handlers observing an execution mid-flight see
// OutcomePending while handlers observing the end of the execution see
// the terminal value.
type Outcome int

const (
	// OutcomePending indicates the execution has not ended yet. It is
	// the zero value.
	OutcomePending Outcome = iota
	// OutcomeSuccess indicates the initial attempt succeeded, so no
	// retry was needed.
	OutcomeSuccess
	// OutcomeRetriedSuccess indicates the execution succeeded on a
	// retry attempt after one or more failures.
	OutcomeRetriedSuccess
	// OutcomeRejected indicates the initial attempt failed and no
	// retry was made: the failure was judged not retryable, the plan
	// opted out of retry, or the plan's context ended before a retry
	// could run.
	OutcomeRejected
	// OutcomeExhausted indicates the last attempt failed after the
	// execution's retry budget was spent. No retry was considered and
	// the final attempt's failure is what the caller sees.
	OutcomeExhausted
	// OutcomeRetryFailed indicates a retry attempt itself failed, or
	// was cut short by the plan's context, and no further retry was
	// made. The retry's own failure is what the caller sees, in place
	// of the failure that triggered the retry.
	OutcomeRetryFailed
)

var outcomeNames = []string{
	"Pending",
	"Success",
	"RetriedSuccess",
	"Rejected",
	"Exhausted",
	"RetryFailed",
}

// Name returns the name of the outcome.
func (o Outcome) Name() string {
	return outcomeNames[int(o)]
}

// String returns the name of the outcome.
func (o Outcome) String() string {
	return o.Name()
}
