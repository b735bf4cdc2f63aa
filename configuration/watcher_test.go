// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/registryd/background"
	"github.com/bitmark-inc/registryd/configuration"
)

const eventTimeout = 5 * time.Second

func TestWatcher(t *testing.T) {
	fileName := writeFile(t, `return {}`)
	other := filepath.Join(filepath.Dir(fileName), "other.conf")

	w, err := configuration.NewWatcher(fileName, logger.New("watcher"))
	require.Nil(t, err)

	processes := background.Start(background.Processes{w}, nil)
	defer processes.Stop()

	// unrelated files in the same directory are ignored
	require.Nil(t, os.WriteFile(other, []byte("x"), 0o600))
	require.Nil(t, os.WriteFile(fileName, []byte(`return { chain = "local" }`), 0o600))

	select {
	case <-w.Change():
	case <-time.After(eventTimeout):
		t.Fatal("no change event")
	}

	require.Nil(t, os.Remove(fileName))
	select {
	case <-w.Remove():
	case <-time.After(eventTimeout):
		t.Fatal("no remove event")
	}
}

func TestWatcherMissingFile(t *testing.T) {
	_, err := configuration.NewWatcher(filepath.Join(t.TempDir(), "missing"), logger.New("watcher"))
	assert.NotNil(t, err)
}
