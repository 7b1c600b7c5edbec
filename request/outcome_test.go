// Copyright 2026 The rebound Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutcomeName(t *testing.T) {
	assert.Equal(t, "Pending", OutcomePending.Name())
	assert.Equal(t, "Success", OutcomeSuccess.Name())
	assert.Equal(t, "RetriedSuccess", OutcomeRetriedSuccess.Name())
	assert.Equal(t, "Rejected", OutcomeRejected.Name())
	assert.Equal(t, "Exhausted", OutcomeExhausted.Name())
	assert.Equal(t, "RetryFailed", OutcomeRetryFailed.Name())
}

func TestOutcomeString(t *testing.T) {
	outcomes := []Outcome{
		OutcomePending,
		OutcomeSuccess,
		OutcomeRetriedSuccess,
		OutcomeRejected,
		OutcomeExhausted,
		OutcomeRetryFailed,
	}
	for _, o := range outcomes {
		assert.Equal(t, o.Name(), o.String())
	}
}
