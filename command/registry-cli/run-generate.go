// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/registryd/account"
)

type generateResult struct {
	Account account.Account `json:"account"`
	Key     string          `json:"key"`
}

// print a new random key pair; nothing is stored
func (s *session) runGenerate(c *cli.Context) error {
	keyPair, err := account.NewKeyPair()
	if nil != err {
		return err
	}
	return printJson(s.w, generateResult{
		Account: keyPair.Account(),
		Key:     keyPair.String(),
	})
}
