// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package client_test

import (
	"context"
	"crypto/tls"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/registryd/background"
	"github.com/bitmark-inc/registryd/chain"
	"github.com/bitmark-inc/registryd/client"
	"github.com/bitmark-inc/registryd/counter"
	"github.com/bitmark-inc/registryd/event"
	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/fees"
	"github.com/bitmark-inc/registryd/producer"
	"github.com/bitmark-inc/registryd/reservoir"
	"github.com/bitmark-inc/registryd/rpc/certificate"
	"github.com/bitmark-inc/registryd/rpc/fixtures"
	"github.com/bitmark-inc/registryd/rpc/listeners"
	"github.com/bitmark-inc/registryd/rpc/server"
	tr "github.com/bitmark-inc/registryd/transactionrecord"
)

// a node: store, pool, block producer and RPC listener
func startNode(t *testing.T) (string, [32]byte) {
	log := logger.New("node")
	store, executor := fixtures.Chain(t)
	pool := reservoir.New(log, executor, time.Minute)

	p := producer.New(log, executor, pool, nil, 10*time.Millisecond)
	processes := background.Start(background.Processes{p}, nil)
	t.Cleanup(processes.Stop)

	var count counter.Counter
	rpcServer := server.Create(log, "test", chain.Testing, store, pool, &count)

	cer, key := fixtures.Certificate(t)
	tlsConfig, fingerprint, err := certificate.Get(log, "test", cer, key)
	require.Nil(t, err)

	listener, err := listeners.NewRPC(&listeners.RPCConfiguration{
		MaximumConnections: 5,
		Bandwidth:          10e6,
		Listen:             []string{"127.0.0.1:0"},
	}, log, &count, rpcServer, tlsConfig, fingerprint)
	require.Nil(t, err)
	require.Nil(t, listener.Serve())
	t.Cleanup(listener.Stop)

	return listener.Addresses()[0], fingerprint
}

func TestRemote(t *testing.T) {
	address, fingerprint := startNode(t)

	remote, err := client.NewRemote(address, client.PinnedTLSConfig(fingerprint))
	require.Nil(t, err)
	defer remote.Close()

	c := client.New(remote)
	c.SetPollInterval(5 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	alice := mustId("alice")
	applied, err := c.Apply(ctx, aliceKey, &tr.RegisterUser{UserId: alice}, fees.RegistrationFee)
	require.Nil(t, err)
	assert.Equal(t, &event.UserRegistered{UserId: alice}, applied.Result, "wrong result")
	assert.True(t, applied.BlockNumber >= 1, "wrong block")

	user, err := c.GetUser(ctx, alice)
	require.Nil(t, err)
	require.NotNil(t, user)
	assert.Equal(t, aliceKey.Account(), user.Account, "wrong account")

	// typed registry error over the wire
	_, err = c.Apply(ctx, bobKey, &tr.RegisterUser{UserId: alice}, fees.RegistrationFee)
	assert.Equal(t, fault.IdAlreadyTaken, err, "wrong error")

	// typed submission error over the wire
	_, err = c.SignAndSubmit(ctx, aliceKey, &tr.RegisterOrg{OrgId: mustId("acme")}, fees.BaseFee)
	assert.Equal(t, fault.InsufficientFee, err, "wrong submit error")

	nonce, err := c.AccountNonce(ctx, aliceKey.Account())
	require.Nil(t, err)
	assert.Equal(t, uint64(1), nonce, "wrong nonce")

	missing, err := c.GetOrg(ctx, mustId("acme"))
	assert.Nil(t, err)
	assert.Nil(t, missing, "absent org")
}

func TestRemoteFingerprintMismatch(t *testing.T) {
	address, fingerprint := startNode(t)
	fingerprint[0] ^= 0xff

	_, err := client.NewRemote(address, client.PinnedTLSConfig(fingerprint))
	assert.NotNil(t, err, "connected to the wrong certificate")

	_, err = client.NewRemote(address, &tls.Config{})
	assert.NotNil(t, err, "self signed certificate verified")
}
