// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package client - submit signed registry transactions, wait for their
// inclusion and read registry state
//
// two backends are provided: an in-memory emulator that applies one
// block per submission, and a remote backend that speaks JSON-RPC to
// a registryd node
//
//   c := client.New(client.NewEmulator(log))
//   pending, err := c.SignAndSubmit(ctx, keyPair, &transactionrecord.RegisterUser{UserId: id}, fees.RegistrationFee)
//   ...
//   applied, err := pending.Wait(ctx)
//
// Wait returns the registry error of a message that failed; the
// transaction was still included and its fee paid
package client
