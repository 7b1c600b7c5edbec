// Copyright 2026 The rebound Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package recovery

import (
	"context"
	"time"

	"github.com/gogama/rebound/connectivity"
)

// DefaultGrace is the default bound on how long a request waits for a
// token refresh already in flight on behalf of another request. It is
// used when the Coordinator's Grace field is not set.
const DefaultGrace = 2 * time.Second

// A Coordinator runs the recovery side effects shared by all requests
// retried through one client: refreshing an expired auth token, and
// notifying the application of lost connectivity. Each side effect is
// guarded so that at most one run is active at a time no matter how
// many failing requests trigger it concurrently.
//
// Coordinator must not be copied after first use. All methods are safe
// to call on a nil *Coordinator and from multiple goroutines; a nil
// coordinator simply performs no side effects.
type Coordinator struct {
	// RefreshToken refreshes the auth token after a request fails with
	// HTTP status 401 Unauthorized. The first request to observe the
	// 401 invokes RefreshToken and waits for it to finish; requests
	// observing a 401 while a refresh is already active wait for it up
	// to the grace duration instead of starting another one. If
	// RefreshToken is nil, a 401 triggers no refresh at all.
	//
	// The context passed to RefreshToken is detached from the
	// triggering request, since the refreshed token is shared by every
	// in-flight request: cancelling one request must not abort the
	// refresh. The coordinator applies no timeout of its own.
	RefreshToken func(ctx context.Context) error

	// AccessToken returns the current Authorization header value for
	// outgoing requests. Retried requests have their Authorization
	// header rebuilt from AccessToken, picking up any token installed
	// by RefreshToken in the meantime. If AccessToken is nil, retried
	// requests keep their original headers.
	AccessToken func() string

	// Probe reports the current network reachability class. It is
	// consulted after every transport-level failure to decide whether
	// the failure coincides with loss of connectivity. If Probe is
	// nil, transport failures never trigger the Navigate side effect.
	Probe connectivity.Probe

	// Navigate tells the application that connectivity is gone, for
	// example by navigating to an offline screen. The first request
	// whose transport failure coincides with an offline probe result
	// invokes Navigate and waits for it to finish; requests observing
	// the same condition while a navigation is already active skip it
	// without waiting. If Navigate is nil, offline probe results are
	// ignored.
	//
	// Like RefreshToken, Navigate receives a context detached from the
	// triggering request.
	Navigate func(ctx context.Context) error

	// Grace bounds how long a request waits for a token refresh that
	// is already active on behalf of another request. If Grace is not
	// positive, DefaultGrace is used.
	Grace time.Duration

	refresh flight
	notify  flight
}

// OnUnauthorized coordinates the token refresh triggered by an HTTP
// 401 response. If no refresh is active, the calling request leads
// one: RefreshToken runs synchronously and its error, if any, is
// returned. If a refresh is already active, the calling request
// follows it: OnUnauthorized blocks until the active refresh
// concludes, the grace duration elapses, or ctx is done, whichever
// happens first, and the leader's outcome is not reported to the
// follower.
//
// OnUnauthorized never affects the retry verdict for the triggering
// request: it is a side effect run before the retry, not a check the
// retry depends on.
func (c *Coordinator) OnUnauthorized(ctx context.Context) error {
	if c == nil || c.RefreshToken == nil {
		return nil
	}

	leader, done := c.refresh.begin()
	if leader {
		defer c.refresh.end()
		return c.RefreshToken(context.WithoutCancel(ctx))
	}

	grace := time.NewTimer(c.grace())
	defer grace.Stop()
	select {
	case <-done:
		return nil
	case <-grace.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// OnTransportFailure coordinates the no-connectivity notification
// triggered by a transport-level failure. The probe is consulted
// first; if it reports anything but an offline status, nothing
// happens. Otherwise, if no notification is active, the calling
// request leads one: Navigate runs synchronously and its error, if
// any, is returned. If a notification is already active, the calling
// request skips it immediately, without any grace wait.
func (c *Coordinator) OnTransportFailure(ctx context.Context) error {
	if c == nil || c.Probe == nil || c.Navigate == nil {
		return nil
	}

	if !c.Probe.Status(ctx).Offline() {
		return nil
	}

	leader, _ := c.notify.begin()
	if !leader {
		return nil
	}
	defer c.notify.end()

	return c.Navigate(context.WithoutCancel(ctx))
}

// Credential returns the current Authorization header value from
// AccessToken. The second return value is false if no AccessToken
// function is configured.
func (c *Coordinator) Credential() (string, bool) {
	if c == nil || c.AccessToken == nil {
		return "", false
	}

	return c.AccessToken(), true
}

func (c *Coordinator) grace() time.Duration {
	if c.Grace > 0 {
		return c.Grace
	}

	return DefaultGrace
}
