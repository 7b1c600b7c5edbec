// Copyright 2026 The rebound Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rebound

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"golang.org/x/net/http/httpguts"

	"github.com/gogama/rebound/failure"
	"github.com/gogama/rebound/recovery"
	"github.com/gogama/rebound/request"
	"github.com/gogama/rebound/retry"
	"github.com/gogama/rebound/timeout"
)

// DefaultMaxRetries is the retry budget used when Client.MaxRetries is
// zero: at most one retry per plan execution.
const DefaultMaxRetries = 1

var emptyHandlers = HandlerGroup{}

// defaultDoer is shared by all zero-value clients so they pool
// connections together.
var defaultDoer HTTPDoer = cleanhttp.DefaultPooledClient()

// A Client is a retrying HTTP client which coordinates recovery across
// all the requests it executes. Its zero value is a valid
// configuration.
//
// The zero value client uses a pooled HTTP client from the
// hashicorp/go-cleanhttp module as the HTTPDoer, timeout.DefaultPolicy
// as the timeout policy, DefaultMaxRetries as the retry budget, a
// retry policy composed of a retry.Evaluator and retry.DefaultSchedule,
// no recovery coordinator, an empty handler group (no event
// handlers/plug-ins), and no retry logger.
//
// Client's HTTPDoer typically has an internal state (cached TCP
// connections) so Client instances should be reused instead of created
// as needed. Client is safe for concurrent use by multiple goroutines.
//
// A Client is higher-level than an HTTPDoer. The HTTPDoer is responsible
// for all details of sending the HTTP request and receiving the response,
// while Client builds on top of the HTTPDoer's feature set. For example,
// the HTTPDoer is responsible for redirects, so consult the HTTPDoer's
// documentation to understand how redirects are handled. Typically the
// Go standard HTTP client (http.Client) will be used as the HTTPDoer,
// but this is not required.
//
// On top of the HTTP request features provided by the HTTPDoer, Client
// adds the following features:
//
// • Client reads and buffers the entire HTTP response body into a
// []byte (returned as the Execution.Body field);
//
// • Client retries failed request attempts using a customizable retry
// policy, within the per-execution retry budget set by MaxRetries;
//
// • Client coordinates the recovery side effects shared by all
// in-flight executions (the token refresh triggered by a 401 response,
// and the no-connectivity notification triggered by an offline
// transport failure) through its Recovery coordinator, and rebuilds
// the Authorization header of retried attempts from the coordinator's
// access token;
//
// • Client labels every finished execution with a request.Outcome and,
// if a Logger is configured, emits one structured log record per
// retry;
//
// • Client sets individual request attempt timeouts using a
// customizable timeout policy; and
//
// • Client invokes user-provided handler functions at designated plug-in
// points within the attempt/retry loop, allowing new features to be
// mixed in from outside libraries.
//
// Instead of consuming an http.Request, which is only suitable for
// making a one-off request attempt, Client.Do consumes a request.Plan,
// which is suitable for making multiple attempts if necessary (the
// plan execution logic converts the plan into an http.Request per
// attempt); and instead of producing an http.Response, Client.Do
// returns a request.Execution, which contains metadata about the plan
// execution as well as a fully-buffered response body.
type Client struct {
	// HTTPDoer specifies the mechanics of sending HTTP requests and
	// receiving responses.
	//
	// If HTTPDoer is nil, a shared pooled client constructed with
	// cleanhttp.DefaultPooledClient is used.
	HTTPDoer HTTPDoer
	// MaxRetries bounds the number of retries in one plan execution.
	// Once a failed attempt has exhausted the budget, the failure is
	// propagated to the caller without consulting the retry policy, so
	// no retry-related side effect runs on exhaustion.
	//
	// If MaxRetries is zero, DefaultMaxRetries is used. A negative
	// value disables retries entirely.
	MaxRetries int
	// RetryPolicy decides when to retry failed attempts and how long
	// to sleep after a failed attempt before retrying. The policy is
	// only consulted while the retry budget has room.
	//
	// If RetryPolicy is nil, the client uses a policy composed of a
	// retry.Evaluator bound to the client's Recovery coordinator and
	// retry.DefaultSchedule.
	RetryPolicy retry.Policy
	// TimeoutPolicy specifies how to set timeouts on individual request
	// attempts.
	//
	// If TimeoutPolicy is nil, timeout.DefaultPolicy is used.
	TimeoutPolicy timeout.Policy
	// Recovery coordinates the token refresh and no-connectivity
	// notification side effects across all plan executions done by the
	// client, and supplies the access token used to rebuild the
	// Authorization header of retried attempts.
	//
	// If Recovery is nil, no recovery side effect ever runs and retried
	// attempts keep the plan's original headers.
	//
	// A custom RetryPolicy is responsible for its own recovery wiring:
	// build it around a retry.Evaluator referencing the same
	// coordinator, otherwise only the header rebuild will use it.
	Recovery *recovery.Coordinator
	// Handlers allows custom handler chains to be invoked when
	// designated events occur during execution of a request plan.
	//
	// If Handlers is nil, no custom handlers will be run.
	Handlers *HandlerGroup
	// Logger, if non-nil, receives one structured log record per retry,
	// emitted just before the client suspends for the retry wait. The
	// record carries the plan ID, the one-based number of the upcoming
	// retry, the retry budget, the wait duration, and the cause of the
	// retry.
	//
	// If Logger is nil, retries are not logged.
	Logger *slog.Logger
}

// Do executes an HTTP request plan and returns the results, following
// timeout and retry policy set on Client, and low-level policy set on
// the underlying HTTPDoer.
//
// The result returned is the result after the final HTTP request
// attempt made during the plan execution, as determined by the retry
// budget and the retry policy. The failure that stopped the execution
// is never masked: when a retry is rejected, or the budget is
// exhausted, the returned execution and error describe the final
// attempt unmodified, and the execution's Outcome field labels how
// the execution concluded.
//
// An error is returned if, after doing any retries allowed by the
// retry budget and policy, the final attempt resulted in an error. An
// attempt may end in error due to failure to speak HTTP (for example a
// network connectivity problem), or because of policy in the retrying
// client (such as timeout), or because of policy on the underlying
// HTTPDoer (for example relating to redirects). A non-2XX status code
// in the final attempt does not result in an error.
//
// The returned Execution is never nil, but may contain a nil Response
// and will contain a nil Body if an error occurred (if the initial
// HTTP request caused an error, both Response and Body are nil, but if
// the initial HTTP request succeeded and the error occurred while
// reading Body from the request, then Response is non-nil but body
// is nil). If an error was returned, the Err field of the Execution
// always references the same error.
//
// If the returned error is nil, the returned Execution will contain
// both a non-nil Response and a non-nil Body (although Body may have
// zero length).
//
// Any returned error will be of type *url.Error. The url.Error's
// Timeout method, and the Execution's Timeout method, will return
// true if the final request attempt timed out.
func (c *Client) Do(p *request.Plan) (*request.Execution, error) {
	e := request.Execution{
		Plan:    p,
		NoRetry: p.NoRetry,
	}

	doer := c.doer()
	maxRetries := c.maxRetries()

	timeoutPolicy := c.TimeoutPolicy
	if timeoutPolicy == nil {
		timeoutPolicy = timeout.DefaultPolicy
	}

	retryPolicy := c.RetryPolicy
	if retryPolicy == nil {
		retryPolicy = retry.NewPolicy(&retry.Evaluator{Recovery: c.Recovery}, retry.DefaultSchedule)
	}

	handlers := c.Handlers
	if handlers == nil {
		handlers = &emptyHandlers
	}
	handlers.run(BeforeExecutionStart, &e)
	p = e.Plan
	if p == nil {
		panic("rebound: plan deleted from execution")
	}
	e.Start = time.Now()

	exhausted := false

RetryLoop:
	for {
		c.sendAndReceive(p, &e, doer, handlers, timeoutPolicy)
		if e.Timeout() {
			e.AttemptTimeouts++
			handlers.run(AfterAttemptTimeout, &e)
		}
		handlers.run(AfterAttempt, &e)
		planCtxErr := p.Context().Err()
		if planCtxErr != nil {
			if planCtxErr == context.DeadlineExceeded {
				handlers.run(AfterPlanTimeout, &e)
			}
			break
		}
		if e.Failure() == failure.None {
			break
		}
		if e.NoRetry {
			break
		}
		if e.Attempt >= maxRetries {
			exhausted = true
			break
		}
		if !retryPolicy.Decide(&e) {
			break
		}
		wait := retryPolicy.Wait(&e)
		c.logRetry(&e, maxRetries, wait)
		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-p.Context().Done():
			timer.Stop()
			if p.Context().Err() == context.DeadlineExceeded {
				handlers.run(AfterPlanTimeout, &e)
			}
			break RetryLoop
		}
		e.Attempt++
	}

	e.Outcome = outcomeOf(&e, exhausted)
	e.End = time.Now()
	handlers.run(AfterExecutionEnd, &e)
	return &e, e.Err
}

func (c *Client) sendAndReceive(p *request.Plan, e *request.Execution, doer HTTPDoer, handlers *HandlerGroup, timeoutPolicy timeout.Policy) {
	// The timeout policy sees the previous attempt's failure, so consult
	// it before clearing the per-attempt state.
	ctx, cancel := context.WithTimeout(p.Context(), timeoutPolicy.Timeout(e))
	defer cancel()
	e.Response = nil
	e.Err = nil
	e.Body = nil
	e.Request = p.ToRequest(ctx)
	if e.Attempt > 0 {
		e.Request.Header = c.retryHeader(p)
	}
	handlers.run(BeforeAttempt, e)
	var err error
	e.Response, err = doer.Do(e.Request)
	if err != nil {
		e.Err = urlErrorWrap(p, err)
	} else {
		readBody(p, e, handlers)
	}
}

// retryHeader rebuilds the outgoing headers for a retried attempt: a
// copy of the plan's headers with the Authorization header overwritten
// from the recovery coordinator's access token, so the retry picks up
// any token installed by a refresh since the plan was built.
func (c *Client) retryHeader(p *request.Plan) http.Header {
	h := p.Header.Clone()
	if h == nil {
		h = make(http.Header)
	}
	if token, ok := c.Recovery.Credential(); ok && token != "" && httpguts.ValidHeaderFieldValue(token) {
		h.Set("Authorization", token)
	}
	return h
}

func readBody(p *request.Plan, e *request.Execution, handlers *HandlerGroup) {
	resp := e.Response
	defer func() {
		_ = resp.Body.Close()
	}()
	handlers.run(BeforeReadBody, e)
	if e.Response == nil {
		panic("rebound: attempt response was nilled")
	}
	if e.Response.Body == nil {
		panic("rebound: attempt response body was nilled")
	}
	var err error
	e.Body, err = io.ReadAll(e.Response.Body)
	if err != nil {
		e.Err = urlErrorWrap(p, err)
	}
}

func (c *Client) logRetry(e *request.Execution, maxRetries int, wait time.Duration) {
	if c.Logger == nil {
		return
	}

	c.Logger.LogAttrs(e.Plan.Context(), slog.LevelInfo, "retrying request",
		slog.String("request", e.Plan.ID),
		slog.Int("attempt", e.Attempt+1),
		slog.Int("max_retries", maxRetries),
		slog.Duration("delay", wait),
		slog.String("cause", retryCause(e)))
}

func retryCause(e *request.Execution) string {
	if e.Err != nil {
		return e.Err.Error()
	}

	return "HTTP " + strconv.Itoa(e.StatusCode())
}

func outcomeOf(e *request.Execution, exhausted bool) request.Outcome {
	if e.Failure() == failure.None {
		if e.Attempt == 0 {
			return request.OutcomeSuccess
		}
		return request.OutcomeRetriedSuccess
	}
	if exhausted {
		return request.OutcomeExhausted
	}
	if e.Attempt == 0 {
		return request.OutcomeRejected
	}
	return request.OutcomeRetryFailed
}

// CloseIdleConnections invokes the same method on the client's
// underlying HTTPDoer.
//
// If the HTTPDoer has no CloseIdleConnections method, this method does
// nothing.
//
// If the HTTPDoer does have a CloseIdleConnections method, then the
// effect of this method depends entirely on its implementation in the
// HTTPDoer. For example, the http.Client type forwards the call to its
// Transport, but only if the Transport itself has a CloseIdleConnections
// method (otherwise it does nothing).
func (c *Client) CloseIdleConnections() {
	doer := c.doer()
	if ic, ok := doer.(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}

func (c *Client) doer() HTTPDoer {
	if c.HTTPDoer == nil {
		return defaultDoer
	}

	return c.HTTPDoer
}

func (c *Client) maxRetries() int {
	if c.MaxRetries == 0 {
		return DefaultMaxRetries
	}
	if c.MaxRetries < 0 {
		return 0
	}

	return c.MaxRetries
}

func urlErrorWrap(p *request.Plan, err error) error {
	if _, ok := err.(*url.Error); ok {
		return err
	}

	return &url.Error{
		Op:  urlErrorOp(p.Method),
		URL: p.URL.String(),
		Err: err,
	}
}

// urlErrorOp is lifted verbatim from net/http/client.go
func urlErrorOp(method string) string {
	if method == "" {
		return "Get"
	}
	return method[:1] + strings.ToLower(method[1:])
}
