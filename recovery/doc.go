// Copyright 2026 The rebound Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package recovery coordinates the side effects that make retrying
// worthwhile: refreshing an expired auth token after a 401 response,
// and notifying the application when a transport failure coincides
// with loss of connectivity.
//
// Both side effects are shared by every in-flight request on a client,
// so the Coordinator runs each under a single-flight guard: one
// request leads the operation while concurrent requests either follow
// it with a bounded wait (token refresh) or skip it outright
// (no-connectivity notification).
package recovery
