// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/background"
	"github.com/bitmark-inc/registryd/block"
	"github.com/bitmark-inc/registryd/chain"
	"github.com/bitmark-inc/registryd/configuration"
	"github.com/bitmark-inc/registryd/event"
	"github.com/bitmark-inc/registryd/genesis"
	"github.com/bitmark-inc/registryd/storage"
	tr "github.com/bitmark-inc/registryd/transactionrecord"
)

const testingDirName = "testing"

func TestMain(m *testing.M) {
	os.RemoveAll(testingDirName)
	os.Mkdir(testingDirName, 0o700)

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
	os.RemoveAll(testingDirName)
	os.Exit(result)
}

type fakeProducer struct {
	sync.Mutex
	author *account.Account
	sets   int
}

func (f *fakeProducer) Author() *account.Account {
	f.Lock()
	defer f.Unlock()
	return f.author
}

func (f *fakeProducer) SetAuthor(author *account.Account) {
	f.Lock()
	defer f.Unlock()
	f.author = author
	f.sets += 1
}

func (f *fakeProducer) count() int {
	f.Lock()
	defer f.Unlock()
	return f.sets
}

func writeAuthor(t *testing.T, fileName string, author string) {
	text := `return { data_directory = ".", chain = "local", block_author = "` + author + `" }`
	require.Nil(t, os.WriteFile(fileName, []byte(text), 0o600))
}

func TestReload(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "registryd.conf")
	charlie := account.KeyPairFromString("Charlie").Account()
	writeAuthor(t, fileName, charlie.String())

	p := &fakeProducer{}
	r := &reloader{
		log:      logger.New("reload"),
		fileName: fileName,
		producer: p,
	}

	r.reload()
	assert.Equal(t, &charlie, p.Author())
	assert.Equal(t, 1, p.count())

	// unchanged author is not reapplied
	r.reload()
	assert.Equal(t, 1, p.count())

	// bad configuration keeps the current author
	writeAuthor(t, fileName, "not-an-account")
	r.reload()
	assert.Equal(t, &charlie, p.Author())

	writeAuthor(t, fileName, "")
	r.reload()
	assert.Nil(t, p.Author())
	assert.Equal(t, 2, p.count())
}

func TestReloadOnChange(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "registryd.conf")
	writeAuthor(t, fileName, "")

	watcher, err := configuration.NewWatcher(fileName, logger.New("watcher"))
	require.Nil(t, err)

	p := &fakeProducer{}
	r := &reloader{
		log:      logger.New("reload"),
		fileName: fileName,
		watcher:  watcher,
		producer: p,
	}
	processes := background.Start(background.Processes{watcher, r}, nil)
	defer processes.Stop()

	dave := account.KeyPairFromString("Dave").Account()
	writeAuthor(t, fileName, dave.String())

	deadline := time.Now().Add(5 * time.Second)
	for nil == p.Author() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	assert.Equal(t, &dave, p.Author())
}

func TestDumpBlock(t *testing.T) {
	store, err := storage.OpenMemory()
	require.Nil(t, err)
	defer store.Close()

	_, err = genesis.Initialise(store, genesis.DevelopmentParameters(chain.Local, 0))
	require.Nil(t, err)
	executor, err := block.NewExecutor(logger.New("block"), store)
	require.Nil(t, err)

	tx := &tr.Transaction{
		Message:     &tr.RegisterUser{UserId: "alice"},
		Nonce:       0,
		GenesisHash: executor.GenesisHash(),
		Fee:         10,
	}
	tx.Sign(account.KeyPairFromString("Alice"))
	_, _, err = executor.ApplyBlock(nil, 1, []tr.Packed{tx.Pack()})
	require.Nil(t, err)

	result, err := dumpBlock(store, 1)
	require.Nil(t, err)
	assert.Equal(t, uint64(1), result.Header.Number)
	require.Len(t, result.Transactions, 1)
	assert.Equal(t, tx.Id(), result.Transactions[0].TxId)

	names := []string{}
	for _, e := range result.Transactions[0].Events {
		names = append(names, e.Type)
	}
	assert.Contains(t, names, event.Name(&event.UserRegistered{}))
	assert.Contains(t, names, event.Name(&event.ExtrinsicSuccess{}))

	_, err = dumpBlock(store, 2)
	assert.NotNil(t, err)
}

func TestSampleConfiguration(t *testing.T) {
	text, err := os.ReadFile("registryd.conf.sample")
	require.Nil(t, err)

	fileName := filepath.Join(t.TempDir(), "registryd.conf")
	require.Nil(t, os.WriteFile(fileName, text, 0o600))

	c, err := configuration.Get(fileName, nil)
	require.Nil(t, err)
	assert.Equal(t, chain.Local, c.Chain)
	assert.Equal(t, uint64(50), c.ClientRPC.MaximumConnections)
	assert.Equal(t, filepath.Join(filepath.Dir(fileName), "registryd-rpc.crt"), c.ClientRPC.Certificate)
	assert.Equal(t, "info", c.Logging.Levels["rpc-server"])
}
