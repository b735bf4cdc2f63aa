// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package query_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/block"
	"github.com/bitmark-inc/registryd/chain"
	"github.com/bitmark-inc/registryd/digest"
	"github.com/bitmark-inc/registryd/event"
	"github.com/bitmark-inc/registryd/fees"
	"github.com/bitmark-inc/registryd/genesis"
	"github.com/bitmark-inc/registryd/identifier"
	"github.com/bitmark-inc/registryd/query"
	"github.com/bitmark-inc/registryd/storage"
	tr "github.com/bitmark-inc/registryd/transactionrecord"
)

const testingDirName = "testing"

func TestMain(m *testing.M) {
	_ = os.RemoveAll(testingDirName)
	_ = os.Mkdir(testingDirName, 0o700)

	_ = logger.Initialise(logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	})

	result := m.Run()

	logger.Finalise()
	_ = os.RemoveAll(testingDirName)
	os.Exit(result)
}

func sign(executor *block.Executor, keyPair *account.KeyPair, nonce uint64, fee uint64, message tr.Message) tr.Packed {
	tx := &tr.Transaction{
		Message:     message,
		Author:      keyPair.Account(),
		Nonce:       nonce,
		GenesisHash: executor.GenesisHash(),
		Fee:         fee,
	}
	tx.Sign(keyPair)
	return tx.Pack()
}

func TestQueries(t *testing.T) {
	store, err := storage.OpenMemory()
	require.Nil(t, err)
	defer store.Close()

	_, err = genesis.Initialise(store, genesis.DevelopmentParameters(chain.Testing, 0))
	require.Nil(t, err)
	executor, err := block.NewExecutor(logger.New("query"), store)
	require.Nil(t, err)

	alice := account.KeyPairFromString("Alice")
	bob := account.KeyPairFromString("Bob")
	aliceId, _ := identifier.NewId("alice")
	bobId, _ := identifier.NewId("bob")
	appName, _ := identifier.NewProjectName("app")
	toolName, _ := identifier.NewProjectName("tool")
	c0 := digest.NewDigest([]byte("c0"))

	packed := []tr.Packed{
		sign(executor, alice, 0, fees.RegistrationFee, &tr.RegisterUser{UserId: aliceId}),
		sign(executor, bob, 0, fees.RegistrationFee, &tr.RegisterUser{UserId: bobId}),
		sign(executor, alice, 1, fees.BaseFee, &tr.RegisterProject{ProjectName: appName, ProjectDomain: identifier.User(aliceId), CheckpointId: c0}),
		sign(executor, bob, 1, fees.BaseFee, &tr.RegisterProject{ProjectName: toolName, ProjectDomain: identifier.User(bobId), CheckpointId: c0}),
		sign(executor, alice, 2, fees.RegistrationFee, &tr.RegisterUser{UserId: bobId}),
	}
	b, rejected, err := executor.ApplyBlock(nil, 1, packed)
	require.Nil(t, err)
	require.Empty(t, rejected)

	snapshot, err := store.Snapshot()
	require.Nil(t, err)
	defer snapshot.Release()

	users, err := query.ListUsers(snapshot)
	require.Nil(t, err)
	assert.Len(t, users, 2, "wrong user count")

	orgs, err := query.ListOrgs(snapshot)
	require.Nil(t, err)
	assert.Empty(t, orgs, "unexpected orgs")

	all, err := query.ListProjects(snapshot, nil)
	require.Nil(t, err)
	assert.Len(t, all, 2, "wrong project count")

	domain := identifier.User(bobId)
	some, err := query.ListProjects(snapshot, &domain)
	require.Nil(t, err)
	require.Len(t, some, 1, "domain filter")
	assert.Equal(t, toolName, some[0].Name, "wrong project")

	status, found, err := query.Included(snapshot, packed[4].Id())
	require.Nil(t, err)
	require.True(t, found, "included transaction not found")
	assert.Equal(t, query.StateIncluded, status.State)
	assert.Equal(t, b.Hash(), status.BlockHash, "wrong block hash")
	assert.Equal(t, uint64(4), status.Position, "wrong position")

	events := block.TransactionEvents(status.Events, status.Position)
	require.Len(t, events, 1, "failed transaction events")
	failed, ok := events[0].(*event.ExtrinsicFailed)
	require.True(t, ok, "not a failure event")
	assert.NotEmpty(t, failed.Error)

	_, found, err = query.Included(snapshot, digest.NewDigest([]byte("nothing")))
	assert.Nil(t, err)
	assert.False(t, found, "unknown transaction found")
}
