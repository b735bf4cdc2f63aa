// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared setup for the RPC tests
package fixtures

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/bitmark-inc/certgen"
	"github.com/bitmark-inc/logger"
)

const (
	dir = "testing"

	// LogCategory - logger channel used by the tests
	LogCategory = "testing"
)

// SetupTestLogger - log only critical messages to a scratch directory
func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	_ = logger.Initialise(logging)
}

// TeardownTestLogger - stop logging and remove the scratch directory
func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}

// Certificate - a fresh self-signed PEM certificate and key for localhost
func Certificate(t *testing.T) (string, string) {
	cert, key, err := certgen.NewTLSCertPair("registryd test", time.Now().Add(time.Hour), false, []string{"127.0.0.1"})
	if nil != err {
		t.Fatalf("certificate generation error: %s", err)
	}
	return string(cert), string(key)
}
