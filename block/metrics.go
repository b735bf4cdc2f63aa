// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package block

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// transaction outcomes
const (
	outcomeSuccess  = "success"
	outcomeFailed   = "failed"
	outcomeRejected = "rejected"
)

var (
	blocksApplied = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "registry",
		Name:      "blocks_applied_total",
		Help:      "Blocks applied to the store.",
	})

	transactionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "registry",
			Name:      "transactions_total",
			Help:      "Transactions by outcome: success, failed (fee charged) or rejected (not included).",
		},
		[]string{"outcome"},
	)

	blockHeight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "registry",
		Name:      "block_height",
		Help:      "Number of the latest applied block.",
	})

	registerOnce sync.Once
)

// RegisterMetrics - add the block metrics to the default registry
func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(blocksApplied, transactionsTotal, blockHeight)
	})
}
