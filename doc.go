// Copyright 2026 The rebound Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package rebound provides a retry-coordinating HTTP client which sits
between the application and the HTTP transport: it decides whether a
failed request is worth retrying, waits out a backoff schedule,
coordinates the recovery side effects shared by all in-flight requests
(token refresh and no-connectivity notification), rebuilds
credentials, and re-issues the request.

Create a Client to begin making requests.

	client := &rebound.Client{}
	p, err := request.NewPlan("GET", "https://www.example.com", nil)
	...
	ex, err := client.Do(p)

The zero-value client retries each request at most once, waiting one
second first, and retries only transport-level failures and responses
whose status is 429, 502, 503, or 504. Size the retry behavior with
MaxRetries and a wait schedule, and wire in the application's recovery
collaborators with a recovery.Coordinator:

	client := &rebound.Client{
		MaxRetries:  2,
		RetryPolicy: retry.NewPolicy(
			&retry.Evaluator{Recovery: coordinator},
			retry.Schedule{time.Second, 3 * time.Second},
		),
		Recovery: coordinator,
	}

where the coordinator names the collaborators once for all requests:

	coordinator := &recovery.Coordinator{
		RefreshToken: tokens.Refresh,
		AccessToken:  tokens.Current,
		Probe:        connectivity.ProbeFunc(network.Status),
		Navigate:     ui.ShowOfflineScreen,
	}

A request which must not be retried under any circumstances can opt
out, which also suppresses every retry-related side effect for it:

	p.NoRetry = true

For control over how the client sends HTTP requests and receives HTTP
responses, use a custom HTTPDoer. For example, use a GoLang standard
HTTP client:

	doer := &http.Client{
		..., // See package "net/http" for detailed documentation
	}
	client := &rebound.Client{
		HTTPDoer: doer,
	}

For control over the client's individual attempt timeouts, set a custom
timeout policy using package timeout:

	client := &rebound.Client{
		TimeoutPolicy: timeout.Fixed(10*time.Second)
	}

To log one structured record per retry, set a Logger; and to hook into
the fine-grained details of the client's request execution logic,
install a handler into the appropriate handler chain:

	handlers := &rebound.HandlerGroup{}
	handlers.PushBack(rebound.BeforeAttempt, rebound.HandlerFunc(
		func(_ rebound.Event, e *request.Execution) {
			log.Printf("Attempt %d to %s", e.Attempt, e.Request.URL.String())
		})
	)
	client := &rebound.Client{
		Handlers: handlers,
		Logger:   slog.Default(),
	}

Every finished execution carries a request.Outcome labelling how it
concluded: success on the first attempt, success after retries,
rejection without a retry, exhaustion of the retry budget, or failure
of a retried attempt.
*/
package rebound
