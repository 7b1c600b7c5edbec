// Copyright 2026 The rebound Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package retry decides whether failed attempts within an HTTP request
// plan execution should be retried, and how long to wait before each
// retry.
//
// The interface Policy bundles the two halves of that decision: a
// Decider says whether to retry and a Waiter says how long to wait
// first. Combine any Decider with any Waiter using NewPolicy:
//
//	policy := retry.NewPolicy(
//		&retry.Evaluator{Recovery: coordinator},
//		retry.Schedule{time.Second, 5 * time.Second},
//	)
//
// Evaluator is the failure-class-aware decider at the heart of the
// retry coordination done by package rebound. It consults a status
// code classification for response failures and treats transport-level
// failures as always retryable, while cancelled attempts are never
// retried. A 401 response or an offline transport failure additionally
// runs the matching recovery side effect through the evaluator's
// coordinator. Simpler deciders can be assembled from Times, Before,
// StatusCode, and TransportErr using DeciderFunc.And and
// DeciderFunc.Or.
//
// Schedule is the list-based waiter: one duration per retry, sticking
// at the final entry once the list is exhausted. NewExpWaiter
// constructs a jittered exponential waiter as an alternative, and
// ScheduleFromBackOff bridges backoff policies from the
// github.com/cenkalti/backoff module into fixed schedules.
package retry
