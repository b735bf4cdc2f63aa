// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/registryd/counter"
)

func TestCounter(t *testing.T) {
	var c counter.Counter
	assert.True(t, c.IsZero(), "not zero at start")

	for i := 0; i < 5; i += 1 {
		c.Increment()
	}
	assert.Equal(t, uint64(5), c.Uint64(), "after increment")

	c.Decrement()
	c.Decrement()
	assert.Equal(t, uint64(3), c.Uint64(), "after decrement")
	assert.Equal(t, uint64(5), c.Peak(), "peak")

	c.Increment()
	assert.Equal(t, uint64(5), c.Peak(), "peak moved below maximum")
}

func TestConcurrentConnections(t *testing.T) {
	var c counter.Counter
	var wg sync.WaitGroup

	for i := 0; i < 50; i += 1 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Increment()
			c.Decrement()
		}()
	}
	wg.Wait()

	assert.True(t, c.IsZero(), "connections left open")
	assert.True(t, c.Peak() >= 1 && c.Peak() <= 50, "peak out of range: %d", c.Peak())
}
