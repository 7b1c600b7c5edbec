// Copyright 2026 The rebound Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/gogama/rebound/request"
)

// DefaultSchedule is the wait schedule used when no explicit retry
// delays are configured. It waits one second before every retry.
var DefaultSchedule = Schedule{time.Second}

// A Schedule is a Waiter which reads the retry wait time from an
// ordered list of durations, one entry per retry.
//
// The first retry waits for the first entry, the second retry for the
// second entry, and so on. Once the list is exhausted the schedule
// sticks at its final entry, so Schedule{time.Second, 5 * time.Second}
// waits one second before the first retry and five seconds before
// every subsequent retry. The empty schedule waits zero before every
// retry.
type Schedule []time.Duration

// Wait returns the wait duration the schedule assigns to the next
// retry of the given execution.
func (s Schedule) Wait(e *request.Execution) time.Duration {
	if len(s) == 0 {
		return 0
	}

	i := e.Attempt
	if i > len(s)-1 {
		i = len(s) - 1
	}

	return s[i]
}

// ScheduleFromBackOff samples the first n waits from a backoff policy
// and returns them as a Schedule, giving a quick way to build an
// exponential schedule:
//
//	s := retry.ScheduleFromBackOff(backoff.NewExponentialBackOff(), 8)
//
// The policy is Reset before sampling, and sampling stops early if the
// policy returns backoff.Stop, so the returned schedule may be shorter
// than n. The sampled waits are fixed at construction time: any
// randomization the policy applies happens once, not per execution.
//
// ScheduleFromBackOff panics if b is nil or n is negative.
func ScheduleFromBackOff(b backoff.BackOff, n int) Schedule {
	if b == nil {
		panic("rebound/retry: nil backoff")
	}
	if n < 0 {
		panic("rebound/retry: negative schedule length")
	}

	b.Reset()
	s := make(Schedule, 0, n)
	for i := 0; i < n; i++ {
		d := b.NextBackOff()
		if d == backoff.Stop {
			break
		}
		s = append(s, d)
	}

	return s
}
