// Copyright 2026 The rebound Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package connectivity

import (
	"context"
)

// A Status describes the network reachability class reported by a
// Probe.
//
// The zero value is None, meaning no network connectivity at all.
// Every other status means some network path is available, without
// any promise that a particular remote host is reachable through it.
type Status int

const (
	// None indicates no network connectivity.
	None Status = iota
	// Mobile indicates a cellular data connection.
	Mobile
	// WiFi indicates a Wi-Fi connection.
	WiFi
	// Ethernet indicates a wired connection.
	Ethernet
	// VPN indicates a virtual private network tunnel.
	VPN
	// Bluetooth indicates a Bluetooth tether.
	Bluetooth
	// Other indicates a network connection of an unidentified kind.
	// Probes which cannot determine the status should report Other
	// rather than None, so that transient probe trouble is not
	// mistaken for loss of connectivity.
	Other
)

var statusNames = []string{
	"None",
	"Mobile",
	"WiFi",
	"Ethernet",
	"VPN",
	"Bluetooth",
	"Other",
}

// Offline indicates whether the status means there is no network
// connectivity at all.
func (s Status) Offline() bool {
	return s == None
}

// Name returns the name of the connectivity status.
func (s Status) Name() string {
	return statusNames[int(s)]
}

// String returns the name of the connectivity status.
func (s Status) String() string {
	return s.Name()
}

// A Probe reports the current network reachability class. The retry
// layer consults the probe after a transport-level failure to decide
// whether the failure coincides with loss of connectivity.
//
// Implementations must be safe for concurrent use by multiple
// goroutines.
type Probe interface {
	Status(ctx context.Context) Status
}

// The ProbeFunc type is an adapter to allow the use of ordinary
// functions as connectivity probes. If f is a function with
// appropriate signature, then ProbeFunc(f) is a Probe that calls f.
type ProbeFunc func(ctx context.Context) Status

// Status calls f(ctx).
func (f ProbeFunc) Status(ctx context.Context) Status {
	return f(ctx)
}

// Fixed is a Probe that always reports the same status. It is useful
// in tests and in applications which track connectivity externally
// and update the probe wholesale.
type Fixed Status

// Status returns the fixed status.
func (p Fixed) Status(_ context.Context) Status {
	return Status(p)
}
