// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/registryd/background"
)

type ticker struct {
	ticks   int64
	stopped int32
	label   string
}

func (p *ticker) Run(args interface{}, shutdown <-chan struct{}) {
	labels := args.(map[*ticker]string)
	p.label = labels[p]

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-time.After(time.Millisecond):
			atomic.AddInt64(&p.ticks, 1)
		}
	}
	atomic.StoreInt32(&p.stopped, 1)
}

func TestStartStop(t *testing.T) {
	one := &ticker{}
	two := &ticker{}
	labels := map[*ticker]string{one: "one", two: "two"}

	p := background.Start(background.Processes{one, two}, labels)
	time.Sleep(30 * time.Millisecond)
	p.Stop()

	for _, item := range []*ticker{one, two} {
		assert.Equal(t, int32(1), atomic.LoadInt32(&item.stopped), "%s not stopped", item.label)
		assert.NotZero(t, atomic.LoadInt64(&item.ticks), "%s never ran", item.label)
	}
	assert.Equal(t, "one", one.label)

	// stopping twice is harmless
	p.Stop()
}
