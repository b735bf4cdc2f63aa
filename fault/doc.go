// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of each error so that errors compare
// with == and keep their class; errors that crossed a process boundary
// as text are recovered with Lookup.
package fault
