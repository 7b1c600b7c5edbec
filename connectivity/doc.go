// Copyright 2026 The rebound Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package connectivity declares the probe contract through which the
// retry layer learns about network reachability. The retry layer never
// measures connectivity itself: the application supplies a Probe, and
// the recovery coordinator consults it after transport-level failures.
package connectivity
