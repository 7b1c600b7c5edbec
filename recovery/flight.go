// Copyright 2026 The rebound Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package recovery

import (
	"sync"
)

// A flight is a single-flight guard for one logical operation: at most
// one run of the operation is active at a time, and callers arriving
// while a run is active can observe its completion instead of starting
// a second run.
//
// The guard does not deduplicate results, unlike
// golang.org/x/sync/singleflight, because callers here need to learn
// whether they lead or follow before the operation completes: a
// follower applies its own bounded wait rather than blocking for the
// leader's full duration.
type flight struct {
	mu   sync.Mutex
	done chan struct{}
}

// begin claims or observes the guarded operation. If no run is active,
// begin starts one and reports leader == true; the caller must call
// end when its run concludes. Otherwise begin reports leader == false,
// and the returned channel is closed when the active run concludes.
func (f *flight) begin() (leader bool, done <-chan struct{}) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.done == nil {
		f.done = make(chan struct{})
		return true, f.done
	}

	return false, f.done
}

// end concludes the active run, releasing every caller waiting on the
// channel begin returned. Only the leader may call end, exactly once
// per begin.
func (f *flight) end() {
	f.mu.Lock()
	defer f.mu.Unlock()

	close(f.done)
	f.done = nil
}
