// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ratelimit - per service request throttling
package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/registryd/fault"
)

// longest time a request is held before it is refused
const maximumWait = 5 * time.Second

// Limit - throttle a single request
func Limit(limiter *rate.Limiter) error {
	return wait(limiter, 1)
}

// LimitN - throttle a request that returns count items
//
// an out of range count still costs one token
func LimitN(limiter *rate.Limiter, count int, maximumCount int) error {
	if count <= 0 || count > maximumCount {
		if err := wait(limiter, 1); nil != err {
			return err
		}
		return fault.InvalidCount
	}
	return wait(limiter, count)
}

func wait(limiter *rate.Limiter, n int) error {
	ctx, cancel := context.WithTimeout(context.Background(), maximumWait)
	defer cancel()

	if err := limiter.WaitN(ctx, n); nil != err {
		return fault.RateLimiting
	}
	return nil
}
