// Copyright 2026 The rebound Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"net/http"

	"github.com/gogama/rebound/failure"
	"github.com/gogama/rebound/recovery"
	"github.com/gogama/rebound/request"
)

// An Evaluator is a Decider which judges each failed attempt by its
// failure class and triggers the matching recovery side effect on the
// way:
//
//   - A response failure is retried if the status code classification
//     says so. A 401 (Unauthorized) response additionally triggers the
//     token refresh coordinated by Recovery; the refresh runs as a
//     side effect and its outcome never changes the verdict, which is
//     fixed by the classification before the refresh starts.
//
//   - A transport failure is always retried. Since a transport failure
//     carries no status code, there is nothing to classify, and the
//     attempt is presumed worth repeating. If the failure coincides
//     with an offline connectivity probe result, it additionally
//     triggers the no-connectivity notification coordinated by
//     Recovery.
//
//   - A cancelled attempt is never retried.
//
// Decide blocks while a recovery side effect runs on the calling
// request's account, so it may suspend for up to the coordinator's
// grace duration plus the collaborator's own running time. Errors
// returned by recovery collaborators are recorded in the execution's
// RecoveryErr field and do not affect the verdict.
//
// The zero-value Evaluator is valid: it classifies with
// DefaultRetryable and performs no recovery side effects.
type Evaluator struct {
	// Retryable classifies a response status code as worth retrying or
	// not. If Retryable is nil, DefaultRetryable is used. When a token
	// refresh function is configured on Recovery, include 401 in the
	// classification to retry the request with the refreshed token.
	Retryable func(statusCode int) bool

	// Recovery coordinates the token refresh and no-connectivity
	// notification side effects. If Recovery is nil, the evaluator
	// judges retryability without side effects.
	Recovery *recovery.Coordinator
}

// Decide reports whether the most recent failed attempt in the
// execution should be retried, running any recovery side effect the
// failure calls for before returning.
func (v *Evaluator) Decide(e *request.Execution) bool {
	switch e.Failure() {
	case failure.Response:
		retryable := v.retryable(e.StatusCode())
		if e.StatusCode() == http.StatusUnauthorized {
			if err := v.Recovery.OnUnauthorized(e.Plan.Context()); err != nil {
				e.RecoveryErr = err
			}
		}
		return retryable
	case failure.Transport:
		if err := v.Recovery.OnTransportFailure(e.Plan.Context()); err != nil {
			e.RecoveryErr = err
		}
		return true
	default:
		return false
	}
}

func (v *Evaluator) retryable(statusCode int) bool {
	if v.Retryable != nil {
		return v.Retryable(statusCode)
	}

	return DefaultRetryable(statusCode)
}

// DefaultRetryable is the status code classification used by an
// Evaluator whose Retryable field is nil. It classifies 429 (Too Many
// Requests), 502 (Bad Gateway), 503 (Service Unavailable), and 504
// (Gateway Timeout) as retryable, and every other status code,
// including 401, as not retryable.
func DefaultRetryable(statusCode int) bool {
	switch statusCode {
	case http.StatusTooManyRequests,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}
