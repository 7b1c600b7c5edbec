// Copyright 2026 The rebound Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package failure classifies the result of an HTTP request attempt
// into the small taxonomy the retry layer reasons about: success,
// response failure, transport failure, and cancellation. This is the
// vocabulary shared by retry deciders, recovery side effects, and
// retry log records.
//
// Package failure is extremely lightweight, as it depends only on the
// standard library packages "context" and "errors", so it doesn't
// bring any significant dependencies when imported as a standalone
// package.
package failure
